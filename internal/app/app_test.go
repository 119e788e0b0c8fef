package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/flick/internal/config"
	"github.com/llehouerou/flick/internal/display"
	"github.com/llehouerou/flick/internal/meta"
	"github.com/llehouerou/flick/internal/movie"
	"github.com/llehouerou/flick/internal/mpeg"
	"github.com/llehouerou/flick/internal/mpris"
	"github.com/llehouerou/flick/internal/state"
	"github.com/llehouerou/flick/internal/ui/preview"
)

const testPath = "/videos/clip.mpg"

type fixture struct {
	model   Model
	handle  *movie.Handle
	engine  *mpeg.Mock
	state   *state.Mock
	surface *display.Surface
}

func newFixture(t *testing.T, st *state.Mock) *fixture {
	t.Helper()
	op := mpeg.NewMockOpener()
	op.Info.TotalTime = 120
	h, err := movie.Open(movie.FromPath(testPath), movie.WithOpener(op), movie.WithAutoDisplay(false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	surf, err := display.New(320, 240)
	require.NoError(t, err)
	t.Cleanup(func() { _ = surf.Release() })
	require.NoError(t, h.SetDisplay(movie.OnSurface(surf)))

	if st == nil {
		st = state.NewMock()
	}
	m := New(Options{
		Handle:   h,
		Meta:     meta.Info{Path: testPath, Title: "Clip"},
		Surface:  surf,
		Renderer: preview.HalfBlock{},
		State:    st,
		Config:   &config.Config{},
	})
	return &fixture{model: m, handle: h, engine: op.Last(), state: st, surface: surf}
}

func (f *fixture) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := f.model.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok)
	f.model = m
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_RestoresResumePosition(t *testing.T) {
	st := state.NewMock()
	st.SaveResume(state.Resume{Path: testPath, Position: 30, Length: 120})

	f := newFixture(t, st)

	assert.InDelta(t, 30, f.handle.Time(), 1e-9)
	assert.Contains(t, f.model.message, "0:30")
}

func TestNew_ResumeDisabled(t *testing.T) {
	st := state.NewMock()
	st.SaveResume(state.Resume{Path: testPath, Position: 30, Length: 120})
	off := false

	op := mpeg.NewMockOpener()
	h, err := movie.Open(movie.FromPath(testPath), movie.WithOpener(op), movie.WithAutoDisplay(false))
	require.NoError(t, err)
	defer h.Close()

	New(Options{Handle: h, Meta: meta.Info{Path: testPath}, State: st, Config: &config.Config{Resume: &off}})

	assert.Zero(t, h.Time())
}

func TestNew_RestoresVolume(t *testing.T) {
	st := state.NewMock()
	require.NoError(t, st.SaveVolume(0.4, false))

	f := newFixture(t, st)

	assert.Equal(t, 40, f.handle.Volume())
	assert.Equal(t, 40, f.engine.Volume())
}

func TestNew_ConfigVolumeWhenNothingSaved(t *testing.T) {
	op := mpeg.NewMockOpener()
	h, err := movie.Open(movie.FromPath(testPath), movie.WithOpener(op), movie.WithAutoDisplay(false))
	require.NoError(t, err)
	defer h.Close()

	half := 0.5
	cfg := &config.Config{Audio: config.AudioConfig{Volume: &half}}
	New(Options{Handle: h, State: state.NewMock(), Config: cfg})

	assert.Equal(t, 50, h.Volume())
}

func TestInit_StartsPlayback(t *testing.T) {
	f := newFixture(t, nil)

	cmd := f.model.Init()

	assert.NotNil(t, cmd)
	assert.Equal(t, mpeg.StatusPlaying, f.handle.Status())
}

func TestPlayPause(t *testing.T) {
	f := newFixture(t, nil)
	f.model.Init()

	f.send(t, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, mpeg.StatusPaused, f.handle.Status())

	f.send(t, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, mpeg.StatusPlaying, f.handle.Status())
}

func TestPlayPause_RewindsAtEnd(t *testing.T) {
	f := newFixture(t, nil)
	f.engine.SetTime(120)

	f.send(t, runes("p"))

	assert.Equal(t, mpeg.StatusPlaying, f.handle.Status())
	assert.Zero(t, f.handle.Time())
}

func TestSeek(t *testing.T) {
	f := newFixture(t, nil)
	f.engine.SetTime(50)

	f.send(t, tea.KeyMsg{Type: tea.KeyRight})
	assert.InDelta(t, 55, f.handle.Time(), 1e-9)

	f.send(t, tea.KeyMsg{Type: tea.KeyLeft})
	assert.InDelta(t, 50, f.handle.Time(), 1e-9)

	f.send(t, runes("L"))
	assert.InDelta(t, 70, f.handle.Time(), 1e-9)

	f.send(t, runes("H"))
	assert.InDelta(t, 50, f.handle.Time(), 1e-9)
}

func TestStopAndRewind(t *testing.T) {
	f := newFixture(t, nil)
	f.model.Init()
	f.engine.SetTime(42)

	f.send(t, runes("s"))
	assert.Equal(t, mpeg.StatusStopped, f.handle.Status())

	r, err := f.state.GetResume(testPath)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.InDelta(t, 42, r.Position, 1e-9)

	f.send(t, runes("r"))
	assert.Zero(t, f.handle.Time())
}

func TestVolumeKeys(t *testing.T) {
	f := newFixture(t, nil)

	f.send(t, runes("-"))
	assert.Equal(t, 95, f.handle.Volume())

	v, err := f.state.GetVolume()
	require.NoError(t, err)
	assert.InDelta(t, 0.95, v.Volume, 1e-9)

	f.send(t, runes("+"))
	f.send(t, runes("+"))
	assert.Equal(t, 100, f.handle.Volume())
}

func TestVolumeKeys_StayOnStepGrid(t *testing.T) {
	f := newFixture(t, nil)

	for i := 1; i <= 20; i++ {
		f.send(t, runes("-"))
		assert.Equal(t, 100-5*i, f.handle.Volume(), "after %d presses", i)
	}
	f.send(t, runes("-"))
	assert.Equal(t, 0, f.handle.Volume())

	for i := 1; i <= 20; i++ {
		f.send(t, runes("+"))
		assert.Equal(t, 5*i, f.handle.Volume(), "after %d presses", i)
	}
}

func TestVolumeKeys_SnapOffGridLevel(t *testing.T) {
	st := state.NewMock()
	require.NoError(t, st.SaveVolume(0.33, false))
	f := newFixture(t, st)
	assert.Equal(t, 33, f.handle.Volume())

	f.send(t, runes("-"))
	assert.Equal(t, 30, f.handle.Volume())
}

func TestToggleMute(t *testing.T) {
	f := newFixture(t, nil)

	f.send(t, runes("m"))
	assert.Equal(t, 0, f.handle.Volume())
	v, _ := f.state.GetVolume()
	assert.True(t, v.Muted)

	f.send(t, runes("m"))
	assert.Equal(t, 100, f.handle.Volume())
}

func TestVolumeUp_Unmutes(t *testing.T) {
	f := newFixture(t, nil)
	f.send(t, runes("m"))
	f.send(t, runes("-"))

	assert.False(t, f.model.muted)
	assert.Equal(t, 95, f.handle.Volume())
}

func TestToggleVideo(t *testing.T) {
	f := newFixture(t, nil)
	refs := f.surface.RefCount()

	f.send(t, runes("v"))
	assert.Nil(t, f.handle.Display())
	assert.False(t, f.engine.VideoEnabled())
	assert.Equal(t, refs-1, f.surface.RefCount())

	f.send(t, runes("v"))
	assert.Same(t, f.surface, f.handle.Display())
	assert.True(t, f.engine.VideoEnabled())
	assert.Equal(t, refs, f.surface.RefCount())
}

func TestToggleVideo_NoSurface(t *testing.T) {
	op := mpeg.NewMockOpener()
	h, err := movie.Open(movie.FromPath(testPath), movie.WithOpener(op), movie.WithAutoDisplay(false))
	require.NoError(t, err)
	defer h.Close()
	m := New(Options{Handle: h})

	next, _ := m.Update(runes("v"))

	assert.Equal(t, "No video stream", next.(Model).message)
}

func TestForgetResume(t *testing.T) {
	st := state.NewMock()
	st.SaveResume(state.Resume{Path: testPath, Position: 30, Length: 120})
	f := newFixture(t, st)

	f.send(t, tea.KeyMsg{Type: tea.KeyCtrlR})

	r, err := st.GetResume(testPath)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestQuit_SavesResume(t *testing.T) {
	f := newFixture(t, nil)
	f.engine.SetTime(42)

	cmd := f.send(t, runes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	r, err := f.state.GetResume(testPath)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.InDelta(t, 42, r.Position, 1e-9)
}

func TestTick_EndOfStreamClearsResume(t *testing.T) {
	st := state.NewMock()
	st.SaveResume(state.Resume{Path: testPath, Position: 30, Length: 120})
	f := newFixture(t, st)
	f.model.Init()
	f.send(t, TickMsg{})

	f.engine.SetTime(120)
	f.engine.Stop()
	cmd := f.send(t, TickMsg{})

	assert.NotNil(t, cmd)
	r, err := st.GetResume(testPath)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestTick_ReportsError(t *testing.T) {
	f := newFixture(t, nil)
	f.model.Init()
	f.send(t, TickMsg{})

	f.engine.Fail("corrupt packet")
	f.send(t, TickMsg{})

	assert.Equal(t, "Playback failed, see log", f.model.message)
	assert.Equal(t, mpeg.StatusError, f.model.lastStatus)

	f.send(t, runes("p"))
	assert.Equal(t, "Stream is unplayable", f.model.message)
}

func TestStderrMsg(t *testing.T) {
	lines := make(chan string, 1)
	f := newFixture(t, nil)
	f.model.stderr = lines

	cmd := f.send(t, StderrMsg("[mp3 @ 0x1] invalid frame"))

	assert.Equal(t, "[mp3 @ 0x1] invalid frame", f.model.message)
	require.NotNil(t, cmd)
	lines <- "next"
	assert.Equal(t, StderrMsg("next"), cmd())
}

func TestWatchStderr_Nil(t *testing.T) {
	assert.Nil(t, WatchStderr(nil))
}

func TestView(t *testing.T) {
	f := newFixture(t, nil)
	f.send(t, tea.WindowSizeMsg{Width: 80, Height: 30})

	out := f.model.View()
	assert.Contains(t, out, "Clip")
	assert.Contains(t, out, "▀")

	f.send(t, runes("i"))
	assert.Contains(t, f.model.View(), "Output")

	f.send(t, runes("?"))
	assert.Contains(t, f.model.View(), "Seek forward")
	assert.Contains(t, f.model.View(), "space/p")
}

func TestView_NoSize(t *testing.T) {
	f := newFixture(t, nil)
	assert.Empty(t, f.model.View())
}

func TestView_VideoDetached(t *testing.T) {
	f := newFixture(t, nil)
	f.send(t, tea.WindowSizeMsg{Width: 80, Height: 30})
	f.send(t, runes("v"))

	assert.NotContains(t, f.model.View(), "▀")
}

func TestPreviewCells(t *testing.T) {
	tests := []struct {
		name             string
		w, h, cols, rows int
		wantCols         int
		wantRows         int
	}{
		{"width bound", 320, 240, 64, 100, 64, 24},
		{"height bound", 320, 240, 64, 12, 32, 12},
		{"empty", 0, 0, 64, 12, 0, 0},
		{"no room", 320, 240, 64, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r := previewCells(tt.w, tt.h, tt.cols, tt.rows)
			assert.Equal(t, tt.wantCols, c)
			assert.Equal(t, tt.wantRows, r)
		})
	}
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, barInterval, tickInterval(false, 25))
	assert.Equal(t, barInterval, tickInterval(true, 0))
	assert.Equal(t, 40_000_000, int(tickInterval(true, 25)))
	assert.Equal(t, 33_333_333, int(tickInterval(true, 60)))
}

type fakeRemote struct {
	cmds chan mpris.Command
	last mpris.Snapshot
	n    int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{cmds: make(chan mpris.Command, 1)}
}

func (r *fakeRemote) Publish(s mpris.Snapshot) {
	r.last = s
	r.n++
}

func (r *fakeRemote) Commands() <-chan mpris.Command { return r.cmds }

func newRemoteFixture(t *testing.T) (*fixture, *fakeRemote) {
	t.Helper()
	f := newFixture(t, nil)
	r := newFakeRemote()
	f.model.remote = r
	return f, r
}

func TestRemote_PublishesOnTick(t *testing.T) {
	f, r := newRemoteFixture(t)
	f.model.meta.Artist = "Someone"
	f.model.Init()
	f.engine.SetTime(7)

	f.send(t, TickMsg{})

	assert.Equal(t, mpris.Snapshot{
		Path:     testPath,
		Title:    "Clip",
		Artist:   "Someone",
		Status:   mpeg.StatusPlaying,
		Position: 7,
		Length:   120,
		Volume:   1,
	}, r.last)

	f.send(t, runes("m"))
	f.send(t, TickMsg{})
	assert.Zero(t, r.last.Volume)
}

func TestRemote_Transport(t *testing.T) {
	f, r := newRemoteFixture(t)

	cmd := f.send(t, mpris.Command{Kind: mpris.CmdPlay})
	assert.Equal(t, mpeg.StatusPlaying, f.handle.Status())
	require.NotNil(t, cmd, "remote commands keep being watched")
	assert.Equal(t, mpeg.StatusPlaying, r.last.Status)

	f.send(t, mpris.Command{Kind: mpris.CmdPlay})
	assert.Equal(t, mpeg.StatusPlaying, f.handle.Status(), "play while playing must not pause")

	f.send(t, mpris.Command{Kind: mpris.CmdPause})
	assert.Equal(t, mpeg.StatusPaused, f.handle.Status())
	f.send(t, mpris.Command{Kind: mpris.CmdPause})
	assert.Equal(t, mpeg.StatusPaused, f.handle.Status(), "pause while paused must not resume")

	f.send(t, mpris.Command{Kind: mpris.CmdPlayPause})
	assert.Equal(t, mpeg.StatusPlaying, f.handle.Status())

	f.send(t, mpris.Command{Kind: mpris.CmdStop})
	assert.Equal(t, mpeg.StatusStopped, f.handle.Status())
}

func TestRemote_SeekAndPosition(t *testing.T) {
	f, _ := newRemoteFixture(t)
	f.engine.SetTime(40)

	f.send(t, mpris.Command{Kind: mpris.CmdSeek, Seconds: -10})
	assert.InDelta(t, 30, f.handle.Time(), 1e-9)

	f.send(t, mpris.Command{Kind: mpris.CmdSetPosition, Seconds: 90})
	assert.InDelta(t, 90, f.handle.Time(), 1e-9)
}

func TestRemote_SetVolumeUnmutes(t *testing.T) {
	f, _ := newRemoteFixture(t)
	f.send(t, runes("m"))

	f.send(t, mpris.Command{Kind: mpris.CmdSetVolume, Level: 0.25})

	assert.Equal(t, 25, f.handle.Volume())
	v, err := f.state.GetVolume()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, v.Volume, 1e-9)
	assert.False(t, v.Muted)
}

func TestRemote_Quit(t *testing.T) {
	f, _ := newRemoteFixture(t)
	f.engine.SetTime(42)

	cmd := f.send(t, mpris.Command{Kind: mpris.CmdQuit})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	r, err := f.state.GetResume(testPath)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.InDelta(t, 42, r.Position, 1e-9)
}

func TestWatchRemote(t *testing.T) {
	assert.Nil(t, WatchRemote(nil))

	cmds := make(chan mpris.Command, 1)
	cmds <- mpris.Command{Kind: mpris.CmdStop}
	assert.Equal(t, mpris.Command{Kind: mpris.CmdStop}, WatchRemote(cmds)())
}
