package mpeg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"sync"
)

// MockOpener is a test double for Opener. It counts live instances so that
// leaks on failure paths are observable.
type MockOpener struct {
	mu sync.Mutex

	// Info is copied into every created engine.
	Info Info
	// FailCreate makes both Open methods return nil.
	FailCreate bool
	// CreateError is reported by new engines through Error().
	CreateError string
	// OnDelete, if set, runs inside Delete before the engine is torn down.
	OnDelete func(*Mock)

	live    int
	created []*Mock
	streams []io.ReadSeeker
}

// NewMockOpener returns an opener producing 320x240 25fps video-only engines.
func NewMockOpener() *MockOpener {
	return &MockOpener{
		Info: Info{HasVideo: true, Width: 320, Height: 240, FPS: 25, TotalTime: 10},
	}
}

func (o *MockOpener) OpenPath(path string) Engine {
	return o.open(path, nil)
}

func (o *MockOpener) OpenStream(r io.ReadSeeker, size int64) Engine {
	return o.open(fmt.Sprintf("stream(%d)", size), r)
}

func (o *MockOpener) open(name string, r io.ReadSeeker) Engine {
	o.mu.Lock()
	defer o.mu.Unlock()
	if r != nil {
		o.streams = append(o.streams, r)
	}
	if o.FailCreate {
		return nil
	}
	m := &Mock{
		opener: o,
		source: name,
		info:   o.Info,
		err:    o.CreateError,
		status: StatusStopped,
		volume: 100,
		video:  true,
		audio:  o.Info.HasAudio,
	}
	o.live++
	o.created = append(o.created, m)
	return m
}

func (o *MockOpener) released() {
	o.mu.Lock()
	o.live--
	o.mu.Unlock()
}

// Live returns the number of engines created and not yet deleted.
func (o *MockOpener) Live() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.live
}

// Created returns every engine created so far.
func (o *MockOpener) Created() []*Mock {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*Mock(nil), o.created...)
}

// Last returns the most recently created engine, or nil.
func (o *MockOpener) Last() *Mock {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.created) == 0 {
		return nil
	}
	return o.created[len(o.created)-1]
}

// Streams returns the readers handed to OpenStream.
func (o *MockOpener) Streams() []io.ReadSeeker {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]io.ReadSeeker(nil), o.streams...)
}

// Mock is a deterministic in-process Engine.
type Mock struct {
	mu sync.Mutex

	opener  *MockOpener
	source  string
	info    Info
	err     string
	status  Status
	volume  int
	video   bool
	audio   bool
	target  Target
	offset  image.Point
	scale   image.Point
	deleted bool
	calls   []string
}

var _ Engine = (*Mock)(nil)

func (m *Mock) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *Mock) Error() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Mock) Info() Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	info := m.info
	if info.FPS > 0 {
		info.CurrentFrame = int(info.CurrentTime * info.FPS)
	}
	return info
}

func (m *Mock) SetDisplay(t Target, clip Region) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SetDisplay")
	m.target = t
}

func (m *Mock) Move(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Move(%d,%d)", x, y)
	m.offset = image.Pt(x, y)
}

func (m *Mock) Scale(w, h int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Scale(%d,%d)", w, h)
	m.scale = image.Pt(w, h)
}

func (m *Mock) EnableVideo(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("EnableVideo(%t)", on)
	m.video = on
}

func (m *Mock) EnableAudio(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("EnableAudio(%t)", on)
	m.audio = on
}

func (m *Mock) SetVolume(v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SetVolume(%d)", v)
	m.volume = v
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Play")
	m.status = StatusPlaying
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Stop")
	m.status = StatusStopped
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Pause")
	switch m.status {
	case StatusPlaying:
		m.status = StatusPaused
	case StatusPaused:
		m.status = StatusPlaying
	case StatusStopped, StatusError:
		// Nothing to pause
	}
}

func (m *Mock) Rewind() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Rewind")
	m.info.CurrentTime = 0
}

func (m *Mock) Skip(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Skip(%g)", seconds)
	m.info.CurrentTime += seconds
}

func (m *Mock) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Mock) Delete() {
	m.mu.Lock()
	if m.deleted {
		m.mu.Unlock()
		panic("mpeg: engine deleted twice")
	}
	m.record("Delete")
	m.mu.Unlock()

	if m.opener != nil {
		m.opener.mu.Lock()
		hook := m.opener.OnDelete
		m.opener.mu.Unlock()
		if hook != nil {
			hook(m)
		}
	}

	m.mu.Lock()
	m.deleted = true
	m.status = StatusStopped
	m.target = nil
	m.mu.Unlock()

	if m.opener != nil {
		m.opener.released()
	}
}

// Test helpers

// Calls returns the recorded operations in order.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// ResetCalls clears the call log.
func (m *Mock) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *Mock) Source() string { return m.source }

func (m *Mock) Target() Target {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target
}

func (m *Mock) VideoEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.video
}

func (m *Mock) AudioEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.audio
}

func (m *Mock) Volume() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) Offset() image.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offset
}

func (m *Mock) ScaleSize() image.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scale
}

func (m *Mock) Deleted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleted
}

// Fail puts the engine into the error state with msg, as a real engine
// does on an unrecoverable stream error.
func (m *Mock) Fail(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = msg
	m.status = StatusError
}

// SetTime moves the playback clock.
func (m *Mock) SetTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.info.CurrentTime = seconds
}

// RenderFrame blits a solid frame of colour c onto the current target at the
// current offset, as a real engine would for one decoded picture. It reports
// whether anything was drawn.
func (m *Mock) RenderFrame(c color.Color) bool {
	m.mu.Lock()
	t, on, off, w, h := m.target, m.video, m.offset, m.info.Width, m.info.Height
	m.mu.Unlock()

	if t == nil || !on {
		return false
	}
	t.Lock()
	defer t.Unlock()
	px, err := t.Pixels()
	if err != nil {
		return false
	}
	dst := image.Rect(off.X, off.Y, off.X+w, off.Y+h).Intersect(px.Bounds())
	if dst.Empty() {
		return false
	}
	draw.Draw(px, dst, image.NewUniform(c), image.Point{}, draw.Src)
	return true
}
