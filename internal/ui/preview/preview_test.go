package preview

import (
	"encoding/base64"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{"wide into square", 320, 240, 40, 40, 40, 30},
		{"tall into wide", 100, 200, 80, 20, 10, 20},
		{"exact", 16, 9, 16, 9, 16, 9},
		{"empty box", 16, 9, 0, 9, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fit(image.Rect(0, 0, tt.w, tt.h), tt.maxW, tt.maxH)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestHalfBlock_Size(t *testing.T) {
	out := HalfBlock{}.Render(solid(64, 32, color.White), 20, 10)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	for _, l := range lines {
		assert.Equal(t, 20, lipgloss.Width(l))
	}
	assert.Contains(t, lines[0], upperHalf)
	assert.Empty(t, HalfBlock{}.Overlay(1, 1))
}

func TestHalfBlock_EmptyImage(t *testing.T) {
	out := HalfBlock{}.Render(image.NewRGBA(image.Rect(0, 0, 0, 0)), 4, 2)
	assert.Equal(t, "    \n    ", out)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff0000", hex(color.RGBA{R: 255, A: 255}))
	assert.Equal(t, "#000000", hex(color.Black))
}

func TestTransmitImage_Chunks(t *testing.T) {
	// Noise defeats PNG compression so the payload spans several chunks.
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = byte(i * 7919 % 251)
	}

	seq, err := TransmitImage(img, 3)
	require.NoError(t, err)

	parts := strings.Split(strings.TrimSuffix(seq, escEnd), escEnd)
	require.Greater(t, len(parts), 1)
	assert.True(t, strings.HasPrefix(parts[0], escStart+"a=t,f=100,i=3,q=2,m=1;"))
	assert.True(t, strings.HasPrefix(parts[len(parts)-1], escStart+"m=0;"))

	var payload strings.Builder
	for _, p := range parts {
		_, data, ok := strings.Cut(p, ";")
		require.True(t, ok)
		payload.WriteString(data)
	}
	_, err = base64.StdEncoding.DecodeString(payload.String())
	assert.NoError(t, err)
}

func TestPlaceAndDelete(t *testing.T) {
	assert.Equal(t,
		"\x1b[s\x1b[2;5H\x1b_Ga=p,i=1,p=1,c=10,r=4,C=1,q=2;\x1b\\\x1b[u",
		PlaceImage(1, 2, 5, 10, 4))
	assert.Equal(t, "\x1b_Ga=d,d=i,i=1,q=2;\x1b\\", DeleteImage(1))
}

func TestKitty_RenderOverlay(t *testing.T) {
	k := &Kitty{cellW: 8, cellH: 16}
	assert.Empty(t, k.Overlay(1, 1), "nothing rendered yet")

	out := k.Render(solid(32, 32, color.White), 4, 2)
	assert.Equal(t, "    \n    ", out)

	overlay := k.Overlay(3, 1)
	assert.Contains(t, overlay, "a=t,f=100")
	assert.Contains(t, overlay, "c=4,r=2")

	assert.Equal(t, DeleteImage(frameID), k.Clear())
	assert.Empty(t, k.Overlay(3, 1))
}

func TestSixel_RenderOverlay(t *testing.T) {
	s := &Sixel{cellW: 8, cellH: 16}
	s.Render(solid(16, 16, color.RGBA{B: 255, A: 255}), 4, 3)

	a := s.Overlay(1, 1)
	b := s.Overlay(1, 1)
	require.NotEmpty(t, a)
	assert.Contains(t, a, "\x1bP")
	assert.NotEqual(t, a, b, "each overlay is unique")

	s.Clear()
	assert.Empty(t, s.Overlay(1, 1))
}

func TestDetect_Override(t *testing.T) {
	t.Setenv("FLICK_IMAGE_PROTOCOL", "blocks")
	assert.Equal(t, "blocks", Detect().Name())

	t.Setenv("FLICK_IMAGE_PROTOCOL", "kitty")
	assert.Equal(t, "kitty", Detect().Name())

	t.Setenv("FLICK_IMAGE_PROTOCOL", "sixel")
	assert.Equal(t, "sixel", Detect().Name())
}

func TestDetect_Environment(t *testing.T) {
	for _, k := range []string{
		"FLICK_IMAGE_PROTOCOL", "CONTOUR_PROFILE", "KITTY_WINDOW_ID",
		"GHOSTTY_RESOURCES_DIR", "TERM_PROGRAM", "KONSOLE_VERSION",
	} {
		t.Setenv(k, "")
	}

	t.Setenv("TERM", "xterm-kitty")
	assert.True(t, IsKittySupported())

	t.Setenv("CONTOUR_PROFILE", "default")
	assert.False(t, IsKittySupported())
	assert.True(t, IsSixelSupported())

	t.Setenv("CONTOUR_PROFILE", "")
	t.Setenv("TERM", "dumb")
	assert.Equal(t, "blocks", Detect().Name())
}
