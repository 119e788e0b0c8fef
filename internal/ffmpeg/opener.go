// Package ffmpeg implements the MPEG engine contract on top of the ffmpeg
// and ffprobe command line tools, with audio played through the beep
// speaker.
package ffmpeg

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/flick/internal/logging"
	"github.com/llehouerou/flick/internal/mpeg"
)

const probeTimeout = 30 * time.Second

// Config selects the tools and audio output settings.
type Config struct {
	FFmpeg      string
	FFprobe     string
	SampleRate  int
	AudioBuffer time.Duration
}

// Opener creates ffmpeg-backed engines.
type Opener struct {
	cfg Config
	log zerolog.Logger
}

var _ mpeg.Opener = (*Opener)(nil)

// NewOpener returns an opener. Empty tool names default to ffmpeg and
// ffprobe on PATH.
func NewOpener(cfg Config) *Opener {
	if cfg.FFmpeg == "" {
		cfg.FFmpeg = "ffmpeg"
	}
	if cfg.FFprobe == "" {
		cfg.FFprobe = "ffprobe"
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	if cfg.AudioBuffer <= 0 {
		cfg.AudioBuffer = 100 * time.Millisecond
	}
	return &Opener{cfg: cfg, log: logging.WithComponent("ffmpeg")}
}

// OpenPath returns nil when the tools are missing. An unreadable or
// non-MPEG path yields an engine whose Error() is set.
func (o *Opener) OpenPath(path string) mpeg.Engine {
	if !o.toolsAvailable() {
		return nil
	}
	return o.open(source{path: path})
}

// OpenStream reads r lazily while playing, from independent section
// readers when r supports ReadAt. Other readers are spooled to a temporary
// file first.
func (o *Opener) OpenStream(r io.ReadSeeker, size int64) mpeg.Engine {
	if !o.toolsAvailable() || r == nil {
		return nil
	}
	if ra, ok := r.(io.ReaderAt); ok && size > 0 {
		return o.open(source{ra: ra, size: size})
	}

	tmp, err := spool(r)
	if err != nil {
		o.log.Warn().Err(err).Msg("spool stream")
		return nil
	}
	return o.open(source{path: tmp, tmp: tmp})
}

func (o *Opener) toolsAvailable() bool {
	for _, bin := range []string{o.cfg.FFmpeg, o.cfg.FFprobe} {
		if _, err := exec.LookPath(bin); err != nil {
			o.log.Warn().Err(err).Str("bin", bin).Msg("tool not found")
			return false
		}
	}
	return true
}

func (o *Opener) open(src source) *Engine {
	e := newEngine(o.cfg, src, o.log)

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	input, stdin := src.input()
	info, err := probe(ctx, o.cfg.FFprobe, input, stdin)
	if err != nil {
		e.fail(err.Error())
		return e
	}
	e.setInfo(info)
	o.log.Debug().
		Str("source", src.String()).
		Int("width", info.Width).
		Int("height", info.Height).
		Float64("fps", info.FPS).
		Float64("length", info.TotalTime).
		Msg("probed")
	return e
}

func spool(r io.ReadSeeker) (string, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	f, err := os.CreateTemp("", "flick-*.mpg")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
