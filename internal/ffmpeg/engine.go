package ffmpeg

import (
	"context"
	"image"
	"math"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/flick/internal/mpeg"
)

// Engine plays one stream. Video and audio are decoded by separate ffmpeg
// processes that are restarted from the current position whenever playback
// resumes or seeks.
type Engine struct {
	cfg Config
	src source
	log zerolog.Logger
	now func() time.Time

	mu      sync.Mutex
	info    mpeg.Info
	err     string
	status  mpeg.Status
	pos     float64 // seconds, as of started
	started time.Time
	videoOn bool
	audioOn bool
	target  mpeg.Target
	clip    mpeg.Region
	offset  image.Point
	size    image.Point
	volume  int
	sess    *session
	deleted bool

	wg sync.WaitGroup
}

var _ mpeg.Engine = (*Engine)(nil)

// session is one continuous run of playback.
type session struct {
	ctx    context.Context
	cancel context.CancelFunc
	audio  *audioOut
}

func (s *session) stop() {
	s.cancel()
	if s.audio != nil {
		s.audio.stop()
		s.audio = nil
	}
}

func newEngine(cfg Config, src source, log zerolog.Logger) *Engine {
	return &Engine{
		cfg:     cfg,
		src:     src,
		log:     log,
		now:     time.Now,
		status:  mpeg.StatusStopped,
		videoOn: true,
		audioOn: true,
		volume:  100,
	}
}

func (e *Engine) fail(msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = msg
	e.status = mpeg.StatusError
}

func (e *Engine) setInfo(info mpeg.Info) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.info = info
	e.size = image.Pt(info.Width, info.Height)
}

func (e *Engine) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *Engine) Info() mpeg.Info {
	e.mu.Lock()
	defer e.mu.Unlock()
	info := e.info
	info.CurrentTime = e.currentLocked()
	if info.HasVideo {
		info.CurrentFrame = int(info.CurrentTime * info.FPS)
	}
	return info
}

// currentLocked returns the playback position in seconds.
func (e *Engine) currentLocked() float64 {
	t := e.pos
	if e.status == mpeg.StatusPlaying {
		t += e.now().Sub(e.started).Seconds()
	}
	return e.clampLocked(t)
}

func (e *Engine) clampLocked(t float64) float64 {
	if t < 0 {
		return 0
	}
	if total := e.info.TotalTime; total > 0 && t > total {
		return total
	}
	return t
}

func (e *Engine) SetDisplay(t mpeg.Target, clip mpeg.Region) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.target = t
	e.clip = clip
}

func (e *Engine) Move(x, y int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.offset = image.Pt(x, y)
}

func (e *Engine) Scale(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.size = image.Pt(w, h)
}

func (e *Engine) EnableVideo(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.videoOn = on
}

func (e *Engine) EnableAudio(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.audioOn == on {
		return
	}
	e.audioOn = on

	s := e.sess
	if s == nil || !e.info.HasAudio {
		return
	}
	if on {
		e.startAudioLocked(s, e.currentLocked())
		return
	}
	if s.audio != nil {
		s.audio.stop()
		s.audio = nil
	}
	if !e.info.HasVideo {
		e.startClockLocked(s, e.currentLocked())
	}
}

func (e *Engine) SetVolume(v int) {
	v = min(max(v, 0), 100)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = v
	if e.sess != nil && e.sess.audio != nil {
		e.sess.audio.setVolume(v)
	}
}

func (e *Engine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted || e.status == mpeg.StatusError || e.status == mpeg.StatusPlaying {
		return
	}
	e.startLocked()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != mpeg.StatusPlaying && e.status != mpeg.StatusPaused {
		return
	}
	e.pos = e.currentLocked()
	e.stopLocked()
	e.status = mpeg.StatusStopped
}

// Pause toggles between playing and paused.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.status {
	case mpeg.StatusPlaying:
		e.pos = e.currentLocked()
		e.stopLocked()
		e.status = mpeg.StatusPaused
	case mpeg.StatusPaused:
		e.startLocked()
	}
}

func (e *Engine) Rewind() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seekLocked(0)
}

func (e *Engine) Skip(seconds float64) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seekLocked(e.currentLocked() + seconds)
}

func (e *Engine) seekLocked(t float64) {
	if e.status == mpeg.StatusError {
		return
	}
	t = e.clampLocked(t)
	if e.status == mpeg.StatusPlaying {
		e.stopLocked()
		e.pos = t
		e.startLocked()
		return
	}
	e.pos = t
}

func (e *Engine) Status() mpeg.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Delete stops playback and waits for every decoder process to exit.
func (e *Engine) Delete() {
	e.mu.Lock()
	if e.deleted {
		e.mu.Unlock()
		return
	}
	e.deleted = true
	e.stopLocked()
	if e.status != mpeg.StatusError {
		e.status = mpeg.StatusStopped
	}
	e.target = nil
	e.mu.Unlock()

	e.wg.Wait()
	if e.src.tmp != "" {
		if err := os.Remove(e.src.tmp); err != nil {
			e.log.Warn().Err(err).Str("path", e.src.tmp).Msg("remove spooled stream")
		}
	}
}

func (e *Engine) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{ctx: ctx, cancel: cancel}
	e.sess = s
	e.status = mpeg.StatusPlaying
	e.started = e.now()
	at := e.pos

	if e.info.HasVideo {
		e.wg.Add(1)
		go e.runVideo(s, at)
	}
	if e.info.HasAudio && e.audioOn {
		e.startAudioLocked(s, at)
	}
	if !e.info.HasVideo && s.audio == nil {
		e.startClockLocked(s, at)
	}
}

func (e *Engine) stopLocked() {
	if e.sess == nil {
		return
	}
	e.sess.stop()
	e.sess = nil
}

// finish ends s when its stream ran out. Stale sessions are ignored.
func (e *Engine) finish(s *session) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess != s {
		return
	}
	e.pos = e.currentLocked()
	if e.info.TotalTime > 0 {
		e.pos = e.info.TotalTime
	}
	e.stopLocked()
	e.status = mpeg.StatusStopped
	e.log.Debug().Str("source", e.src.String()).Msg("end of stream")
}

// startClockLocked ends s after the remaining duration when no decoder
// output drives end-of-stream detection.
func (e *Engine) startClockLocked(s *session, at float64) {
	total := e.info.TotalTime
	if total <= 0 {
		return
	}
	remaining := time.Duration((total - at) * float64(time.Second))
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		timer := time.NewTimer(remaining)
		defer timer.Stop()
		select {
		case <-s.ctx.Done():
		case <-timer.C:
			e.finish(s)
		}
	}()
}

// sleepUntil waits for t, returning false if ctx ends first.
func sleepUntil(ctx context.Context, t time.Time) bool {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	buf []byte
	max int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = b.buf[over:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
