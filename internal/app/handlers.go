package app

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/flick/internal/errmsg"
	"github.com/llehouerou/flick/internal/keymap"
	"github.com/llehouerou/flick/internal/movie"
	"github.com/llehouerou/flick/internal/mpeg"
)

const (
	volumeSteps = 20 // 5% per key press
	longSeek    = 4
)

func (m Model) handleAction(a keymap.Action) (tea.Model, tea.Cmd) {
	if a == "" {
		return m, nil
	}
	m.log.Debug().Str("action", string(a)).Msg("key")

	switch a {
	case keymap.ActionQuit:
		m.saveResume()
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
	case keymap.ActionToggleInfo:
		m.showInfo = !m.showInfo
	case keymap.ActionPlayPause:
		m.togglePlay()
	case keymap.ActionStop:
		m.handle.Stop()
		m.saveResume()
	case keymap.ActionRewind:
		m.handle.Rewind()
	case keymap.ActionSeekForward:
		m.seek(m.cfg.GetSkipSeconds())
	case keymap.ActionSeekBack:
		m.seek(-m.cfg.GetSkipSeconds())
	case keymap.ActionSeekForward4:
		m.seek(longSeek * m.cfg.GetSkipSeconds())
	case keymap.ActionSeekBack4:
		m.seek(-longSeek * m.cfg.GetSkipSeconds())
	case keymap.ActionVolumeUp:
		m.changeVolume(1.0 / volumeSteps)
	case keymap.ActionVolumeDown:
		m.changeVolume(-1.0 / volumeSteps)
	case keymap.ActionToggleMute:
		m.muted = !m.muted
		m.applyVolume()
		m.persistVolume()
	case keymap.ActionToggleVideo:
		m.toggleVideo()
	case keymap.ActionForgetResume:
		m.forgetResume()
	}
	return m, nil
}

func (m *Model) togglePlay() {
	switch m.handle.Status() {
	case mpeg.StatusStopped:
		if l := m.handle.Length(); l > 0 && m.handle.Time() >= l {
			m.handle.Rewind()
		}
		m.handle.Play()
	case mpeg.StatusPlaying, mpeg.StatusPaused:
		m.handle.Pause()
	case mpeg.StatusError:
		m.message = "Stream is unplayable"
	}
}

func (m *Model) seek(seconds float64) {
	if err := m.handle.Skip(seconds); err != nil {
		m.message = errmsg.Format(errmsg.OpMovieSkip, err)
	}
}

// changeVolume moves the level by delta and snaps it to the volume step grid.
func (m *Model) changeVolume(delta float64) {
	m.level = clamp01(math.Round((m.level+delta)*volumeSteps) / volumeSteps)
	m.muted = false
	m.applyVolume()
	m.persistVolume()
}

func (m *Model) applyVolume() {
	level := m.level
	if m.muted {
		level = 0
	}
	if err := m.handle.SetVolume(level); err != nil {
		m.message = errmsg.Format(errmsg.OpMovieVolume, err)
	}
}

func (m *Model) toggleVideo() {
	if m.surface == nil || !m.handle.HasVideo() {
		m.message = "No video stream"
		return
	}
	target := movie.OnSurface(m.surface)
	if m.handle.Display() != nil {
		target = movie.NoTarget()
	}
	if err := m.handle.SetDisplay(target); err != nil {
		m.message = errmsg.Format(errmsg.OpMovieDisplay, err)
	}
}

func (m *Model) forgetResume() {
	if m.state == nil || m.meta.Path == "" {
		return
	}
	if err := m.state.ClearResume(m.meta.Path); err != nil {
		m.message = errmsg.Format(errmsg.OpResumeClear, err)
		return
	}
	m.message = "Resume position forgotten"
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
