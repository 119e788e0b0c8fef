package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/flick/internal/mpeg"
	"github.com/llehouerou/flick/internal/mpris"
)

func (m Model) watchRemote() tea.Cmd {
	if m.remote == nil {
		return nil
	}
	return WatchRemote(m.remote.Commands())
}

// publish hands the current state to the remote controller.
func (m Model) publish() {
	if m.remote == nil {
		return
	}
	level := m.level
	if m.muted {
		level = 0
	}
	m.remote.Publish(mpris.Snapshot{
		Path:     m.meta.Path,
		Title:    m.meta.Title,
		Artist:   m.meta.Artist,
		Status:   m.handle.Status(),
		Position: m.handle.Time(),
		Length:   m.handle.Length(),
		Volume:   level,
	})
}

func (m Model) handleRemote(c mpris.Command) (tea.Model, tea.Cmd) {
	m.log.Debug().Int("command", int(c.Kind)).Msg("remote")

	switch c.Kind {
	case mpris.CmdPlay:
		if m.handle.Status() != mpeg.StatusPlaying {
			m.togglePlay()
		}
	case mpris.CmdPause:
		if m.handle.Status() == mpeg.StatusPlaying {
			m.handle.Pause()
		}
	case mpris.CmdPlayPause:
		m.togglePlay()
	case mpris.CmdStop:
		m.handle.Stop()
		m.saveResume()
	case mpris.CmdSeek:
		m.seek(c.Seconds)
	case mpris.CmdSetPosition:
		m.seek(c.Seconds - m.handle.Time())
	case mpris.CmdSetVolume:
		m.level = clamp01(c.Level)
		m.muted = false
		m.applyVolume()
		m.persistVolume()
	case mpris.CmdQuit:
		m.saveResume()
		return m, tea.Quit
	}
	m.publish()
	return m, m.watchRemote()
}
