package display

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.w, tt.h)
			assert.Error(t, err)
		})
	}
}

func TestSurface_PixelsAndSize(t *testing.T) {
	s, err := New(4, 3)
	require.NoError(t, err)

	w, h := s.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)

	s.Lock()
	px, err := s.Pixels()
	s.Unlock()
	require.NoError(t, err)
	assert.Len(t, px.Pix, 4*3*4)
	assert.Equal(t, color.RGBA{A: 0xff}, px.RGBAAt(0, 0))
}

func TestSurface_Fill(t *testing.T) {
	s, err := New(2, 2)
	require.NoError(t, err)

	red := color.RGBA{R: 0xff, A: 0xff}
	s.Fill(red)

	snap := s.Snapshot()
	assert.Equal(t, red, snap.RGBAAt(1, 1))
}

func TestSurface_ReleaseFreesPixels(t *testing.T) {
	s, err := New(2, 2)
	require.NoError(t, err)
	require.NoError(t, s.Retain())
	assert.Equal(t, 2, s.RefCount())

	require.NoError(t, s.Release())
	_, err = s.Pixels()
	require.NoError(t, err, "pixels must stay valid while a reference remains")

	require.NoError(t, s.Release())
	assert.False(t, s.Alive())
	_, err = s.Pixels()
	assert.ErrorIs(t, err, ErrSurfaceReleased)
	assert.Nil(t, s.Snapshot())
	assert.Equal(t, 0, s.Bounds().Dx())
}

func TestActiveDisplay(t *testing.T) {
	t.Cleanup(Quit)

	assert.Nil(t, Active())

	first, err := SetMode(8, 8)
	require.NoError(t, err)
	assert.Same(t, first, Active())

	require.NoError(t, first.Retain())
	second, err := SetMode(16, 16)
	require.NoError(t, err)
	assert.Same(t, second, Active())
	assert.Equal(t, 1, first.RefCount(), "display must release the replaced surface")

	Quit()
	assert.Nil(t, Active())
	assert.False(t, second.Alive())
	require.NoError(t, first.Release())
}

func TestSurface_ZeroValueIsDead(t *testing.T) {
	var s Surface

	assert.False(t, s.Alive())
	assert.Equal(t, 0, s.RefCount())
	assert.Error(t, s.Retain())
	assert.Error(t, s.Release())
	assert.Nil(t, s.Snapshot())
}
