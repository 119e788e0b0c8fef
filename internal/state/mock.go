package state

import (
	"sort"
	"sync"
)

// Mock is a test double for Manager.
type Mock struct {
	mu      sync.Mutex
	resumes map[string]Resume
	volume  *VolumeState
	closed  bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{
		resumes: make(map[string]Resume),
	}
}

func (m *Mock) SaveResume(r Resume) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !r.Worthwhile() {
		delete(m.resumes, r.Path)
		return
	}
	m.resumes[r.Path] = r
}

func (m *Mock) GetResume(path string) (*Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[path]
	if !ok {
		return nil, nil //nolint:nilnil // no saved position
	}
	return &r, nil
}

func (m *Mock) RecentResumes(limit int) ([]Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Resume, 0, len(m.resumes))
	for _, r := range m.resumes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Mock) ClearResume(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.resumes, path)
	return nil
}

func (m *Mock) GetVolume() (*VolumeState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.volume == nil {
		return nil, nil //nolint:nilnil // nothing saved yet
	}
	v := *m.volume
	return &v, nil
}

func (m *Mock) SaveVolume(volume float64, muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = &VolumeState{Volume: volume, Muted: muted}
	return nil
}

func (m *Mock) Flush() error { return nil }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
