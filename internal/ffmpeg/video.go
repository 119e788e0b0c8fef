package ffmpeg

import (
	"bufio"
	"errors"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/nfnt/resize"

	"github.com/llehouerou/flick/internal/mpeg"
)

func (e *Engine) videoArgs(at float64, input string) []string {
	args := []string{"-hide_banner", "-loglevel", "error"}
	if at > 0 {
		args = append(args, "-ss", formatSeconds(at))
	}
	return append(args,
		"-i", input,
		"-an",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	)
}

// runVideo decodes frames from at onwards and paces them to the stream's
// frame rate.
func (e *Engine) runVideo(s *session, at float64) {
	defer e.wg.Done()

	e.mu.Lock()
	w, h, fps := e.info.Width, e.info.Height, e.info.FPS
	e.mu.Unlock()

	input, stdin := e.src.input()
	// #nosec G204 - binary comes from config
	cmd := exec.CommandContext(s.ctx, e.cfg.FFmpeg, e.videoArgs(at, input)...)
	cmd.Stdin = stdin
	stderr := &tailBuffer{max: maxStderr}
	cmd.Stderr = stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		e.log.Error().Err(err).Msg("video pipe")
		e.finish(s)
		return
	}
	if err := cmd.Start(); err != nil {
		e.log.Error().Err(err).Msg("start video decoder")
		e.finish(s)
		return
	}

	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	r := bufio.NewReaderSize(stdout, len(frame.Pix))
	start := time.Now()
	interval := time.Duration(float64(time.Second) / fps)
	for n := 0; ; n++ {
		if _, err := io.ReadFull(r, frame.Pix); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) && s.ctx.Err() == nil {
				e.log.Warn().Err(err).Msg("read video frame")
			}
			break
		}
		if !sleepUntil(s.ctx, start.Add(time.Duration(n)*interval)) {
			break
		}
		e.blit(frame)
	}

	// Drain so the process is not blocked writing when we wait on it.
	_, _ = io.Copy(io.Discard, r)
	err = cmd.Wait()
	if s.ctx.Err() != nil {
		return
	}
	if err != nil {
		e.log.Warn().
			Err(err).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Msg("video decoder exited")
	}
	e.finish(s)
}

// blit copies frame onto the current target at the configured offset and
// size, clipped to the target and the clip region.
func (e *Engine) blit(frame *image.RGBA) {
	e.mu.Lock()
	t, on, off, size, clip := e.target, e.videoOn, e.offset, e.size, e.clip
	e.mu.Unlock()
	if !on || t == nil {
		return
	}

	var src image.Image = frame
	if size != frame.Rect.Size() {
		src = resize.Resize(uint(size.X), uint(size.Y), frame, resize.Bilinear) //nolint:gosec // positive sizes
	}
	drawFrame(t, src, off, clip)
}

func drawFrame(t mpeg.Target, src image.Image, off image.Point, clip mpeg.Region) {
	t.Lock()
	defer t.Unlock()
	px, err := t.Pixels()
	if err != nil {
		return
	}

	b := src.Bounds()
	r := b.Sub(b.Min).Add(off).Intersect(px.Bounds())
	if !clip.Empty() {
		r = r.Intersect(clip.Rect)
	}
	if r.Empty() {
		return
	}
	draw.Draw(px, r, src, b.Min.Add(r.Min.Sub(off)), draw.Src)
}
