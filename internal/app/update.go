package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/flick/internal/mpeg"
	"github.com/llehouerou/flick/internal/mpris"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		m.onTick()
		m.publish()
		return m, TickCmd(m.interval)

	case StderrMsg:
		m.message = string(msg)
		return m, WatchStderr(m.stderr)

	case mpris.Command:
		return m.handleRemote(msg)

	case tea.KeyMsg:
		return m.handleAction(m.keys.Resolve(msg.String()))
	}
	return m, nil
}

// onTick records the position when the transport changes state, so that
// a pause or the end of the stream is persisted promptly.
func (m *Model) onTick() {
	st := m.handle.Status()
	if st != m.lastStatus {
		m.log.Debug().
			Str("from", m.lastStatus.String()).
			Str("to", st.String()).
			Msg("status changed")
		m.saveResume()
	}
	if st == mpeg.StatusError && m.lastStatus != mpeg.StatusError {
		m.message = "Playback failed, see log"
	}
	m.lastStatus = st
}
