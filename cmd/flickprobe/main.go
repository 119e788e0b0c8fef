// Headless check of the ffmpeg engine: opens a movie, logs its stream info
// and plays it for a few seconds into an off-screen surface.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/flick/internal/config"
	"github.com/llehouerou/flick/internal/display"
	"github.com/llehouerou/flick/internal/ffmpeg"
	"github.com/llehouerou/flick/internal/logging"
	"github.com/llehouerou/flick/internal/movie"
	"github.com/llehouerou/flick/internal/ui/playerbar"
)

const pollInterval = 500 * time.Millisecond

type options struct {
	seconds float64
	audio   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "flickprobe [flags] <file>",
		Short:         "Open a movie headless and play a few seconds of it",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			logging.Configure(logging.Config{
				Level:  "debug",
				Output: zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly},
			})
			return run(opts, args[0])
		},
	}
	cmd.Flags().Float64VarP(&opts.seconds, "seconds", "s", 3, "How long to play")
	cmd.Flags().BoolVarP(&opts.audio, "audio", "a", false, "Enable audio output")
	return cmd
}

func run(opts options, path string) error {
	log := logging.WithComponent("flickprobe")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ac := cfg.GetAudioConfig()
	movie.Setup(ffmpeg.NewOpener(ffmpeg.Config{
		FFmpeg:      cfg.FFmpeg(),
		FFprobe:     cfg.FFprobe(),
		SampleRate:  ac.SampleRate,
		AudioBuffer: time.Duration(ac.BufferMs) * time.Millisecond,
	}))

	h, err := movie.Open(movie.FromPath(path), movie.WithAudio(opts.audio))
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer h.Close()

	info := h.Info()
	log.Info().
		Str("source", h.Name()).
		Bool("video", info.HasVideo).
		Int("width", info.Width).
		Int("height", info.Height).
		Float64("fps", info.FPS).
		Bool("audio", info.HasAudio).
		Str("length", playerbar.FormatSeconds(info.TotalTime)).
		Msg("opened")

	if h.HasVideo() {
		w, hh := h.Size()
		surf, err := display.SetMode(w, hh)
		if err != nil {
			return fmt.Errorf("create surface: %w", err)
		}
		defer display.Quit()
		if err := h.SetDisplay(movie.OnSurface(surf)); err != nil {
			return fmt.Errorf("attach surface: %w", err)
		}
	}

	h.Play()
	deadline := time.Now().Add(time.Duration(opts.seconds * float64(time.Second)))
	for time.Now().Before(deadline) && h.Busy() {
		time.Sleep(pollInterval)
		log.Info().
			Str("status", h.Status().String()).
			Int("frame", h.Frame()).
			Str("time", playerbar.FormatSeconds(h.Time())).
			Msg("playing")
	}
	h.Stop()
	log.Info().
		Str("time", playerbar.FormatSeconds(h.Time())).
		Int("frame", h.Frame()).
		Msg("stopped")
	return nil
}
