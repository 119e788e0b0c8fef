package movie

import (
	"github.com/rs/zerolog"

	"github.com/llehouerou/flick/internal/mpeg"
)

type options struct {
	opener      mpeg.Opener
	logger      *zerolog.Logger
	autoDisplay bool
	audio       bool
	scale       float64
}

// Option configures Open.
type Option func(*options)

// WithOpener uses o instead of the opener installed by Setup.
func WithOpener(o mpeg.Opener) Option {
	return func(opts *options) { opts.opener = o }
}

// WithLogger sets the handle's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(opts *options) { opts.logger = &l }
}

// WithAutoDisplay controls whether the active display surface, if any, is
// adopted as the initial render target. Enabled by default.
func WithAutoDisplay(on bool) Option {
	return func(opts *options) { opts.autoDisplay = on }
}

// WithAudio leaves audio output enabled after construction. Audio is off by
// default.
func WithAudio(on bool) Option {
	return func(opts *options) { opts.audio = on }
}

// WithScale sets the output frame size to the native size times factor.
// Factors that are not positive keep the native size.
func WithScale(factor float64) Option {
	return func(opts *options) { opts.scale = factor }
}

func (o options) scaled(w, h int) (int, int) {
	return ScaledSize(w, h, o.scale)
}

// ScaledSize returns the native size w x h times factor, at least 1x1.
// Factors that are not positive keep the native size.
func ScaledSize(w, h int, factor float64) (int, int) {
	if factor <= 0 || factor == 1 {
		return w, h
	}
	return max(int(float64(w)*factor), 1), max(int(float64(h)*factor), 1)
}
