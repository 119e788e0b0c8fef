package ffmpeg

import (
	"bufio"
	"context"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker(rate int, buffer time.Duration) error {
	speakerOnce.Do(func() {
		sr := beep.SampleRate(rate)
		speakerErr = speaker.Init(sr, sr.N(buffer))
	})
	return speakerErr
}

// audioOut is one ffmpeg PCM decoder feeding the speaker.
type audioOut struct {
	cancel context.CancelFunc
	ctrl   *beep.Ctrl
	volume *effects.Volume
}

func (a *audioOut) stop() {
	a.cancel()
	speaker.Lock()
	a.ctrl.Streamer = nil
	speaker.Unlock()
}

func (a *audioOut) setVolume(v int) {
	speaker.Lock()
	a.volume.Volume = levelToVolume(v)
	a.volume.Silent = v == 0
	speaker.Unlock()
}

// levelToVolume converts a 0-100 percentage to beep's base-2 volume:
// 100 -> 0, 50 -> -1, 25 -> -2, 0 -> -10.
func levelToVolume(v int) float64 {
	level := float64(v) / 100
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

func (e *Engine) audioArgs(at float64, input string) []string {
	args := []string{"-hide_banner", "-loglevel", "error"}
	if at > 0 {
		args = append(args, "-ss", formatSeconds(at))
	}
	return append(args,
		"-i", input,
		"-vn",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ac", "2",
		"-ar", strconv.Itoa(e.cfg.SampleRate),
		"pipe:1",
	)
}

// startAudioLocked attaches a PCM decoder starting at at to s. Failures
// leave the session silent.
func (e *Engine) startAudioLocked(s *session, at float64) {
	if err := initSpeaker(e.cfg.SampleRate, e.cfg.AudioBuffer); err != nil {
		e.log.Warn().Err(err).Msg("speaker unavailable")
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	input, stdin := e.src.input()
	// #nosec G204 - binary comes from config
	cmd := exec.CommandContext(ctx, e.cfg.FFmpeg, e.audioArgs(at, input)...)
	cmd.Stdin = stdin
	stderr := &tailBuffer{max: maxStderr}
	cmd.Stderr = stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		e.log.Error().Err(err).Msg("audio pipe")
		return
	}
	if err := cmd.Start(); err != nil {
		cancel()
		e.log.Error().Err(err).Msg("start audio decoder")
		return
	}

	pcm := newPCMStreamer(bufio.NewReaderSize(stdout, 64*1024))
	a := &audioOut{
		cancel: cancel,
		ctrl:   &beep.Ctrl{Streamer: pcm, Paused: false},
	}
	a.volume = &effects.Volume{
		Streamer: a.ctrl,
		Base:     2,
		Volume:   levelToVolume(e.volume),
		Silent:   e.volume == 0,
	}
	s.audio = a

	hasVideo := e.info.HasVideo
	speaker.Play(beep.Seq(a.volume, beep.Callback(func() {
		// Runs under the speaker lock.
		if !hasVideo {
			go e.finishAudio(s, a)
		}
	})))

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		select {
		case <-pcm.done:
		case <-ctx.Done():
		}
		err := cmd.Wait()
		if ctx.Err() == nil && err != nil {
			e.log.Warn().
				Err(err).
				Str("stderr", strings.TrimSpace(stderr.String())).
				Msg("audio decoder exited")
		}
	}()
}

// finishAudio ends an audio-only session once its decoder drained.
func (e *Engine) finishAudio(s *session, a *audioOut) {
	e.mu.Lock()
	current := e.sess == s && s.audio == a
	e.mu.Unlock()
	if current {
		e.finish(s)
	}
}
