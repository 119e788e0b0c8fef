// Package display provides pixel surfaces that video output can be blitted
// onto, and the process-wide active display surface.
package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/llehouerou/flick/internal/refcount"
)

// ErrSurfaceReleased is returned when the pixels of a surface are requested
// after its last reference was released.
var ErrSurfaceReleased = errors.New("surface released")

// Surface is an RGBA pixel buffer shared between its creator and any
// playback handle using it as a render target.
type Surface struct {
	mu   sync.Mutex
	img  *image.RGBA
	refs *refcount.Counter
}

// New creates a w x h surface cleared to black. The caller holds the only
// reference.
func New(w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", w, h)
	}
	s := &Surface{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	s.refs = refcount.New(s.free)
	return s, nil
}

func (s *Surface) free() {
	s.mu.Lock()
	s.img = nil
	s.mu.Unlock()
}

// Bounds returns the surface rectangle, or the empty rectangle once released.
func (s *Surface) Bounds() image.Rectangle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return image.Rectangle{}
	}
	return s.img.Bounds()
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (w, h int) {
	b := s.Bounds()
	return b.Dx(), b.Dy()
}

// Lock must be held while writing to the buffer returned by Pixels.
func (s *Surface) Lock() { s.mu.Lock() }

// Unlock releases the pixel lock.
func (s *Surface) Unlock() { s.mu.Unlock() }

// Pixels unwraps the surface to its raw pixel buffer. The caller must hold
// the lock for the whole time it touches the buffer.
func (s *Surface) Pixels() (*image.RGBA, error) {
	if s.img == nil {
		return nil, ErrSurfaceReleased
	}
	return s.img, nil
}

// Snapshot returns a copy of the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return nil
	}
	cp := image.NewRGBA(s.img.Bounds())
	copy(cp.Pix, s.img.Pix)
	return cp
}

// Fill paints the whole surface with c.
func (s *Surface) Fill(c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Retain adds a reference to the surface.
func (s *Surface) Retain() error { return s.refs.Retain() }

// Release drops a reference. The pixel buffer is freed with the last one.
func (s *Surface) Release() error { return s.refs.Release() }

// RefCount returns the number of live references.
func (s *Surface) RefCount() int { return s.refs.Count() }

// Alive reports whether the surface still has references.
func (s *Surface) Alive() bool { return s.refs.Alive() }
