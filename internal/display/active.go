package display

import "sync"

var (
	activeMu sync.Mutex
	active   *Surface
)

// SetMode creates a new active display surface, replacing any previous one.
// The display keeps its own reference; the returned surface may be used
// without retaining it for as long as the mode is set.
func SetMode(w, h int) (*Surface, error) {
	s, err := New(w, h)
	if err != nil {
		return nil, err
	}

	activeMu.Lock()
	prev := active
	active = s
	activeMu.Unlock()

	if prev != nil {
		_ = prev.Release()
	}
	return s, nil
}

// Active returns the current display surface, or nil if no mode is set.
func Active() *Surface {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}

// Quit drops the display's reference to the active surface.
func Quit() {
	activeMu.Lock()
	prev := active
	active = nil
	activeMu.Unlock()

	if prev != nil {
		_ = prev.Release()
	}
}
