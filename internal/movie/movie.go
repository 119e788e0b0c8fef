// Package movie provides the playback handle: one decoding engine instance
// together with the render surface and source file it shares with the
// caller.
package movie

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/llehouerou/flick/internal/display"
	"github.com/llehouerou/flick/internal/logging"
	"github.com/llehouerou/flick/internal/mpeg"
	"github.com/llehouerou/flick/internal/resource"
)

// Handle owns one engine instance for its whole lifetime. It is not safe for
// concurrent use; the engine may run its own goroutines.
type Handle struct {
	engine mpeg.Engine
	target *display.Surface
	file   *resource.File
	volume int
	closed bool
	name   string
	log    zerolog.Logger
}

// Open creates a handle for src. On failure nothing is left allocated: the
// engine, if it was created, is deleted and the file reference dropped.
func Open(src Source, opts ...Option) (*Handle, error) {
	o := options{autoDisplay: true}
	for _, opt := range opts {
		opt(&o)
	}

	if err := src.validate(); err != nil {
		return nil, err
	}

	opener := o.opener
	if opener == nil {
		opener = defaultOpener
	}
	if opener == nil {
		return nil, ErrNotInitialized
	}

	log := logging.WithComponent("movie")
	if o.logger != nil {
		log = *o.logger
	}

	var (
		engine mpeg.Engine
		file   *resource.File
	)
	switch src.kind {
	case sourcePath:
		engine = opener.OpenPath(src.path)
	case sourceFile:
		stream, err := src.file.Stream()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		if err := src.file.Retain(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		file = src.file
		engine = opener.OpenStream(stream, src.file.Size())
	}

	if engine == nil {
		releaseFile(file)
		log.Debug().Str("source", src.String()).Msg("engine creation failed")
		return nil, ErrCreation
	}
	if msg := engine.Error(); msg != "" {
		engine.Delete()
		releaseFile(file)
		log.Debug().Str("source", src.String()).Str("error", msg).Msg("engine reported error")
		return nil, &DecodeError{Msg: msg}
	}

	h := &Handle{
		engine: engine,
		file:   file,
		volume: 100,
		name:   src.String(),
		log:    log,
	}

	engine.EnableAudio(o.audio)

	if o.autoDisplay {
		if screen := display.Active(); screen != nil && screen.Retain() == nil {
			h.target = screen
			engine.SetDisplay(screen, mpeg.Region{})
			engine.Move(0, 0)
			engine.EnableVideo(true)
		}
	}

	info := engine.Info()
	engine.Scale(o.scaled(info.Width, info.Height))

	log.Debug().
		Str("source", h.name).
		Int("width", info.Width).
		Int("height", info.Height).
		Bool("video", info.HasVideo).
		Bool("audio", info.HasAudio).
		Bool("display", h.target != nil).
		Msg("movie opened")

	return h, nil
}

func releaseFile(f *resource.File) {
	if f != nil {
		_ = f.Release()
	}
}

// Close deletes the engine, then drops the render target reference, then the
// source file reference.
func (h *Handle) Close() error {
	if h.closed {
		return ErrClosed
	}
	h.closed = true

	h.engine.Delete()
	if h.target != nil {
		_ = h.target.Release()
		h.target = nil
	}
	if h.file != nil {
		_ = h.file.Release()
		h.file = nil
	}

	h.log.Debug().Str("source", h.name).Msg("movie closed")
	return nil
}

// Name returns the path or file name the movie was opened from.
func (h *Handle) Name() string { return h.name }
