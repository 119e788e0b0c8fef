package movie

import (
	"fmt"
	"math"
)

// Play starts or resumes output.
func (h *Handle) Play() { h.engine.Play() }

// Stop halts output. The engine decides whether the position is kept.
func (h *Handle) Stop() { h.engine.Stop() }

// Pause toggles between paused and playing.
func (h *Handle) Pause() { h.engine.Pause() }

// Rewind moves playback back to the start of the stream.
func (h *Handle) Rewind() { h.engine.Rewind() }

// Skip advances playback by seconds. Zero and negative values are passed to
// the engine unchanged; NaN and infinities are rejected.
func (h *Handle) Skip(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("%w: skip seconds must be finite, got %v", ErrInvalidArgument, seconds)
	}
	h.engine.Skip(seconds)
	return nil
}

// SetVolume sets the output volume from a 0.0-1.0 level. Out-of-range levels
// are clamped.
func (h *Handle) SetVolume(level float64) error {
	if math.IsNaN(level) {
		return fmt.Errorf("%w: volume is NaN", ErrInvalidArgument)
	}
	h.volume = clampVolume(level)
	h.engine.SetVolume(h.volume)
	return nil
}

// Volume returns the last volume percentage sent to the engine.
func (h *Handle) Volume() int { return h.volume }

// clampVolume converts a level to an integer percentage in [0,100].
func clampVolume(level float64) int {
	pct := level * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}
