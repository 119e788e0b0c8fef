package movie

import (
	"image"

	"github.com/llehouerou/flick/internal/display"
	"github.com/llehouerou/flick/internal/mpeg"
)

// Interface defines the playback handle contract for dependency injection
// and testing.
type Interface interface {
	Play()
	Stop()
	Pause()
	Rewind()
	Skip(seconds float64) error
	SetVolume(level float64) error
	Volume() int
	SetDisplay(target Target, pos ...image.Point) error
	Display() *display.Surface
	HasVideo() bool
	HasAudio() bool
	Size() (width, height int)
	Frame() int
	Time() float64
	Length() float64
	Busy() bool
	Status() mpeg.Status
	Info() mpeg.Info
	Name() string
	Close() error
}

// Verify Handle implements Interface at compile time.
var _ Interface = (*Handle)(nil)
