// Package mpeg defines the contract of an MPEG decoding engine: the
// operations a playback handle drives and the metadata it reads back.
package mpeg

import (
	"image"
	"io"
)

// Info is a metadata snapshot of an open stream.
type Info struct {
	HasVideo     bool
	HasAudio     bool
	Width        int
	Height       int
	FPS          float64
	CurrentFrame int
	CurrentTime  float64 // seconds
	TotalTime    float64 // seconds
}

// Target is a blit destination for decoded video frames.
type Target interface {
	Lock()
	Unlock()
	// Pixels returns the raw buffer; only valid while locked.
	Pixels() (*image.RGBA, error)
}

// Region restricts output to part of a target. The zero value means the
// whole target.
type Region struct {
	Rect image.Rectangle
}

// Empty reports whether the region is the whole-target default.
func (r Region) Empty() bool { return r.Rect.Empty() }

// Engine is one decoder instance bound to one stream.
type Engine interface {
	// Error returns the last internal error, or "" if none.
	Error() string
	Info() Info

	SetDisplay(t Target, clip Region)
	Move(x, y int)
	Scale(w, h int)
	EnableVideo(on bool)
	EnableAudio(on bool)
	// SetVolume takes a percentage in [0,100].
	SetVolume(v int)

	Play()
	Stop()
	Pause()
	Rewind()
	Skip(seconds float64)
	Status() Status

	// Delete stops playback and frees the instance. Terminal.
	Delete()
}

// Opener creates engines. Both methods return nil when no instance could be
// created at all; an instance that failed to parse the stream is returned
// with a non-empty Error().
type Opener interface {
	OpenPath(path string) Engine
	OpenStream(r io.ReadSeeker, size int64) Engine
}
