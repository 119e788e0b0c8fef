package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/flick/internal/config"
	"github.com/llehouerou/flick/internal/display"
	"github.com/llehouerou/flick/internal/errmsg"
	"github.com/llehouerou/flick/internal/keymap"
	"github.com/llehouerou/flick/internal/logging"
	"github.com/llehouerou/flick/internal/meta"
	"github.com/llehouerou/flick/internal/movie"
	"github.com/llehouerou/flick/internal/mpeg"
	"github.com/llehouerou/flick/internal/mpris"
	"github.com/llehouerou/flick/internal/state"
	"github.com/llehouerou/flick/internal/ui/playerbar"
	"github.com/llehouerou/flick/internal/ui/preview"
)

// Remote is an external controller, such as the MPRIS bus adapter. The
// model publishes its state on every tick and applies the commands.
type Remote interface {
	Publish(mpris.Snapshot)
	Commands() <-chan mpris.Command
}

// Options wires the model's collaborators.
type Options struct {
	Handle   movie.Interface
	Meta     meta.Info
	Surface  *display.Surface // nil when there is no video
	Renderer preview.Renderer
	State    state.Interface
	Config   *config.Config
	Keys     *keymap.Resolver
	Stderr   <-chan string
	Remote   Remote
}

// Model is the Bubble Tea model of the player.
type Model struct {
	handle   movie.Interface
	meta     meta.Info
	surface  *display.Surface
	renderer preview.Renderer
	state    state.Interface
	cfg      *config.Config
	keys     *keymap.Resolver
	stderr   <-chan string
	remote   Remote
	log      zerolog.Logger

	interval   time.Duration
	width      int
	height     int
	level      float64 // volume 0-1, kept while muted
	muted      bool
	showInfo   bool
	showHelp   bool
	message    string
	lastStatus mpeg.Status
}

// New builds the model, restoring the saved volume and resume position.
func New(opts Options) Model {
	if opts.Keys == nil {
		opts.Keys = keymap.Default()
	}
	if opts.Renderer == nil {
		opts.Renderer = preview.HalfBlock{}
	}
	if opts.Config == nil {
		opts.Config = &config.Config{}
	}

	info := opts.Handle.Info()
	m := Model{
		handle:     opts.Handle,
		meta:       opts.Meta,
		surface:    opts.Surface,
		renderer:   opts.Renderer,
		state:      opts.State,
		cfg:        opts.Config,
		keys:       opts.Keys,
		stderr:     opts.Stderr,
		remote:     opts.Remote,
		log:        logging.WithComponent("app"),
		interval:   tickInterval(info.HasVideo, info.FPS),
		level:      opts.Config.GetAudioConfig().Level(),
		lastStatus: opts.Handle.Status(),
	}

	m.restoreVolume()
	m.applyVolume()
	m.restoreResume()
	return m
}

func (m *Model) restoreVolume() {
	if m.state == nil {
		return
	}
	v, err := m.state.GetVolume()
	if err != nil {
		m.log.Warn().Err(err).Msg("load volume")
		return
	}
	if v == nil {
		return
	}
	m.level = v.Volume
	m.muted = v.Muted
}

func (m *Model) restoreResume() {
	if m.state == nil || !m.cfg.ResumeEnabled() || m.meta.Path == "" {
		return
	}
	r, err := m.state.GetResume(m.meta.Path)
	if err != nil {
		m.message = errmsg.Format(errmsg.OpResumeLoad, err)
		return
	}
	if r == nil || !r.Worthwhile() {
		return
	}
	if err := m.handle.Skip(r.Position); err != nil {
		m.message = errmsg.Format(errmsg.OpMovieSkip, err)
		return
	}
	m.message = "Resumed at " + playerbar.FormatSeconds(r.Position)
	m.log.Debug().Str("path", m.meta.Path).Float64("position", r.Position).Msg("resumed")
}

// Init starts playback and the refresh loop.
func (m Model) Init() tea.Cmd {
	m.handle.Play()
	m.publish()
	return tea.Batch(TickCmd(m.interval), WatchStderr(m.stderr), m.watchRemote())
}

// Close stops playback and releases the handle. The state manager is
// flushed with the final position first.
func (m Model) Close() error {
	m.saveResume()
	return m.handle.Close()
}
