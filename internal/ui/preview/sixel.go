package preview

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-sixel"
	"github.com/nfnt/resize"
)

// placeCounter makes every Overlay string unique so Bubble Tea's diff
// renderer never skips re-sending the image.
var placeCounter uint64

// Sixel emits the whole encoded frame on every overlay.
type Sixel struct {
	mu    sync.Mutex
	data  string
	cellW int
	cellH int
}

func NewSixel() *Sixel {
	cellW, cellH := getCellSize()
	return &Sixel{cellW: cellW, cellH: cellH}
}

func (s *Sixel) Name() string { return "sixel" }

func (s *Sixel) Render(img image.Image, cols, rows int) string {
	// One row of margin keeps the terminal from scrolling near the bottom.
	w, h := fit(img, cols*s.cellW, max(rows-1, 1)*s.cellH)
	if w == 0 {
		return blank(cols, rows)
	}
	//nolint:gosec // dimensions are small, no overflow risk
	scaled := resize.Resize(uint(w), uint(h), img, resize.Bilinear)

	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	enc.Dither = true
	if err := enc.Encode(scaled); err == nil {
		s.mu.Lock()
		s.data = buf.String()
		s.mu.Unlock()
	}
	return blank(cols, rows)
}

func (s *Sixel) Overlay(row, col int) string {
	s.mu.Lock()
	data := s.data
	s.mu.Unlock()
	if data == "" {
		return ""
	}

	seq := atomic.AddUint64(&placeCounter, 1)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	sb.WriteString(data)
	fmt.Fprintf(&sb, "\x1b[u\x1b[%dm\x1b[0m", seq%255+1)
	return sb.String()
}

func (s *Sixel) Clear() string {
	s.mu.Lock()
	s.data = ""
	s.mu.Unlock()
	return ""
}
