package movie

import "github.com/llehouerou/flick/internal/mpeg"

// Every query asks the engine for a fresh snapshot.

func (h *Handle) HasVideo() bool { return h.engine.Info().HasVideo }

func (h *Handle) HasAudio() bool { return h.engine.Info().HasAudio }

// Size returns the native video frame size in pixels.
func (h *Handle) Size() (width, height int) {
	info := h.engine.Info()
	return info.Width, info.Height
}

// Frame returns the index of the current decoded frame.
func (h *Handle) Frame() int { return h.engine.Info().CurrentFrame }

// Time returns the playback position in seconds. Some engines only report
// this coarsely.
func (h *Handle) Time() float64 { return h.engine.Info().CurrentTime }

// Length returns the stream duration in seconds.
func (h *Handle) Length() float64 { return h.engine.Info().TotalTime }

// Busy reports whether the engine is playing. A paused movie is not busy.
func (h *Handle) Busy() bool { return h.engine.Status() == mpeg.StatusPlaying }

// Status returns the engine transport state.
func (h *Handle) Status() mpeg.Status { return h.engine.Status() }

// Info returns the full metadata snapshot.
func (h *Handle) Info() mpeg.Info { return h.engine.Info() }
