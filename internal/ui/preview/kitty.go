package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/nfnt/resize"
)

// Kitty graphics protocol escape sequences
const (
	escStart  = "\x1b_G"
	escEnd    = "\x1b\\"
	chunkSize = 4096
	frameID   = 1
)

// Kitty re-transmits each frame under one image ID; placing it again
// replaces the previous placement.
type Kitty struct {
	mu       sync.Mutex
	transmit string
	cols     int
	rows     int
	cellW    int
	cellH    int
}

func NewKitty() *Kitty {
	cellW, cellH := getCellSize()
	return &Kitty{cellW: cellW, cellH: cellH}
}

func (k *Kitty) Name() string { return "kitty" }

func (k *Kitty) Render(img image.Image, cols, rows int) string {
	w, h := fit(img, cols*k.cellW, rows*k.cellH)
	if w == 0 {
		return blank(cols, rows)
	}
	//nolint:gosec // dimensions are small, no overflow risk
	scaled := resize.Resize(uint(w), uint(h), img, resize.Bilinear)

	seq, err := TransmitImage(scaled, frameID)
	k.mu.Lock()
	if err == nil {
		k.transmit = seq
	}
	k.cols, k.rows = cols, rows
	k.mu.Unlock()
	return blank(cols, rows)
}

func (k *Kitty) Overlay(row, col int) string {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.transmit == "" {
		return ""
	}
	return k.transmit + PlaceImage(frameID, row, col, k.cols, k.rows)
}

func (k *Kitty) Clear() string {
	k.mu.Lock()
	k.transmit = ""
	k.mu.Unlock()
	return DeleteImage(frameID)
}

// TransmitImage encodes img as PNG and returns the chunked transmit-only
// (a=t) sequence for image id.
func TransmitImage(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	var sb strings.Builder
	for i := 0; i < len(encoded); i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			// f=100: PNG, q=2: suppress responses
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}
	return sb.String(), nil
}

// PlaceImage displays image id at the 1-based (row, col), sized in cells.
// Placement ID 1 is fixed so each call replaces the last one.
func PlaceImage(id uint32, row, col, width, height int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, width, height, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// DeleteImage deletes image id and its placements.
func DeleteImage(id uint32) string {
	return fmt.Sprintf("%sa=d,d=i,i=%d,q=2;%s", escStart, id, escEnd)
}
