package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/flick/internal/app"
	"github.com/llehouerou/flick/internal/config"
	"github.com/llehouerou/flick/internal/display"
	"github.com/llehouerou/flick/internal/errmsg"
	"github.com/llehouerou/flick/internal/ffmpeg"
	"github.com/llehouerou/flick/internal/logging"
	"github.com/llehouerou/flick/internal/meta"
	"github.com/llehouerou/flick/internal/movie"
	"github.com/llehouerou/flick/internal/mpris"
	"github.com/llehouerou/flick/internal/resource"
	"github.com/llehouerou/flick/internal/state"
	"github.com/llehouerou/flick/internal/stderr"
	"github.com/llehouerou/flick/internal/ui/preview"
)

const stderrBuffer = 64

type flags struct {
	config  string
	noVideo bool
	audio   bool
	fd      int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "flick [flags] <file>",
		Short:         "Play MPEG-1 movies in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && f.fd < 0 {
				return errors.New("a file or --fd is required")
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			err := run(f, path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "Read configuration from this file only")
	cmd.Flags().BoolVar(&f.noVideo, "no-video", false, "Play without video output")
	cmd.Flags().BoolVarP(&f.audio, "audio", "a", false, "Enable audio output")
	cmd.Flags().IntVar(&f.fd, "fd", -1, "Read the movie from an open file descriptor")

	cmd.AddCommand(newRecentCmd())
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// setupLogging points the logger at the configured file. On failure it
// tells warn and leaves logging disabled.
func setupLogging(cfg *config.Config, warn io.Writer) *os.File {
	lc := cfg.GetLogConfig()
	out, err := logging.OpenFile(lc.File)
	if err != nil {
		fmt.Fprintf(warn, "flick: logging disabled: %v\n", err)
		return nil
	}
	logging.Configure(logging.Config{Level: lc.Level, Output: out})
	return out
}

func openerFor(cfg *config.Config) *ffmpeg.Opener {
	ac := cfg.GetAudioConfig()
	return ffmpeg.NewOpener(ffmpeg.Config{
		FFmpeg:      cfg.FFmpeg(),
		FFprobe:     cfg.FFprobe(),
		SampleRate:  ac.SampleRate,
		AudioBuffer: time.Duration(ac.BufferMs) * time.Millisecond,
	})
}

// openSource returns the movie source and its display metadata. The
// returned release drops the caller's reference to an fd-backed file.
func openSource(f flags, path string) (movie.Source, meta.Info, func(), error) {
	if f.fd < 0 {
		info, err := meta.Read(path)
		if err != nil {
			info = meta.Info{Path: path, Title: meta.TitleFromName(path)}
		}
		return movie.FromPath(path), info, func() {}, nil
	}

	//nolint:gosec // fd comes from the command line
	file, err := resource.Wrap(os.NewFile(uintptr(f.fd), fmt.Sprintf("fd:%d", f.fd)))
	if err != nil {
		return movie.Source{}, meta.Info{}, nil, err
	}
	info := meta.Info{Title: meta.TitleFromName(path), Size: file.Size()}
	if path == "" {
		info.Title = file.Name()
	}
	return movie.FromFile(file), info, func() { _ = file.Release() }, nil
}

func run(f flags, path string) error {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if logFile := setupLogging(cfg, os.Stderr); logFile != nil {
		defer logFile.Close()
	}
	log := logging.WithComponent("main")

	movie.Setup(openerFor(cfg))

	src, info, release, err := openSource(f, path)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpMovieOpen, err))
	}
	vc := cfg.GetVideoConfig()
	h, err := movie.Open(src,
		movie.WithAudio(f.audio || cfg.GetAudioConfig().Enabled),
		movie.WithScale(vc.Scale),
		movie.WithAutoDisplay(false),
	)
	release()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpMovieOpen, err))
	}

	var surf *display.Surface
	if h.HasVideo() && !f.noVideo {
		w, hh := h.Size()
		surf, err = display.SetMode(movie.ScaledSize(w, hh, vc.Scale))
		if err == nil {
			defer display.Quit()
			err = h.SetDisplay(movie.OnSurface(surf))
		}
		if err != nil {
			_ = h.Close()
			return errors.New(errmsg.Format(errmsg.OpMovieDisplay, err))
		}
	}

	var st state.Interface
	if mgr, err := state.Open(); err != nil {
		log.Warn().Err(err).Msg("state unavailable, positions will not be saved")
	} else {
		st = mgr
		defer mgr.Close()
	}

	var lines <-chan string
	capture, err := stderr.Start(stderrBuffer)
	if err != nil {
		log.Warn().Err(err).Msg("stderr capture unavailable")
	} else {
		lines = capture.Lines()
		defer capture.Stop()
	}

	var remote app.Remote
	if adapter, err := mpris.New(); err != nil {
		log.Warn().Err(err).Msg("mpris unavailable")
	} else {
		remote = adapter
		defer adapter.Close()
	}

	model := app.New(app.Options{
		Handle:   h,
		Meta:     info,
		Surface:  surf,
		Renderer: preview.Detect(),
		State:    st,
		Config:   cfg,
		Stderr:   lines,
		Remote:   remote,
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if m, ok := final.(app.Model); ok {
		model = m
	}
	if cerr := model.Close(); cerr != nil && !errors.Is(cerr, movie.ErrClosed) {
		log.Warn().Err(cerr).Msg("close movie")
	}
	return err
}
