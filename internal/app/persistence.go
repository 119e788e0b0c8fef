package app

import (
	"github.com/llehouerou/flick/internal/errmsg"
	"github.com/llehouerou/flick/internal/state"
)

// saveResume queues the current position. Positions that are not worth
// resuming from clear the entry instead.
func (m *Model) saveResume() {
	if m.state == nil || m.meta.Path == "" {
		return
	}
	m.state.SaveResume(state.Resume{
		Path:     m.meta.Path,
		Title:    m.meta.Title,
		Position: m.handle.Time(),
		Length:   m.handle.Length(),
	})
}

func (m *Model) persistVolume() {
	if m.state == nil {
		return
	}
	if err := m.state.SaveVolume(m.level, m.muted); err != nil {
		m.message = errmsg.Format(errmsg.OpVolumeSave, err)
	}
}
