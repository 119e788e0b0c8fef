package movie

import (
	"image"

	"github.com/llehouerou/flick/internal/display"
	"github.com/llehouerou/flick/internal/mpeg"
)

// SetDisplay directs video output to target, with the frame's top-left
// corner at pos (default (0,0)). NoTarget detaches and disables video.
//
// The target is validated before anything changes: on error the previous
// render target stays attached.
func (h *Handle) SetDisplay(target Target, pos ...image.Point) error {
	if err := target.validate(); err != nil {
		return err
	}
	at, err := position(pos)
	if err != nil {
		return err
	}
	next := target.surface
	if next != nil {
		// Retain before the previous target is dropped: re-attaching the
		// surface that is already active must not free it.
		if err := next.Retain(); err != nil {
			return ErrInvalidArgument
		}
	}

	prev := h.target
	h.engine.EnableVideo(false)
	if next == nil {
		h.engine.SetDisplay(nil, mpeg.Region{})
	}
	h.target = next
	if prev != nil {
		_ = prev.Release()
	}

	if next == nil {
		h.log.Debug().Str("source", h.name).Msg("display detached")
		return nil
	}

	h.engine.SetDisplay(next, mpeg.Region{})
	h.engine.Move(at.X, at.Y)
	h.engine.EnableVideo(true)

	w, hh := next.Size()
	h.log.Debug().
		Str("source", h.name).
		Int("x", at.X).Int("y", at.Y).
		Int("surface_w", w).Int("surface_h", hh).
		Msg("display attached")
	return nil
}

// Display returns the current render target, or nil.
func (h *Handle) Display() *display.Surface { return h.target }
