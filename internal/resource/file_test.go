package resource

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mpg")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.mpg"))
	assert.Error(t, err)
}

func TestOpen_Directory(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.Error(t, err)
}

func TestWrap_Nil(t *testing.T) {
	_, err := Wrap(nil)
	assert.Error(t, err)
}

func TestStream_IndependentReaders(t *testing.T) {
	f, err := Open(writeTemp(t, "0123456789"))
	require.NoError(t, err)
	defer f.Release()

	assert.Equal(t, int64(10), f.Size())

	a, err := f.Stream()
	require.NoError(t, err)
	b, err := f.Stream()
	require.NoError(t, err)

	buf := make([]byte, 4)
	_, err = io.ReadFull(a, buf)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(buf))

	all, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(all), "second stream must start at offset 0")
}

func TestRelease_ClosesOnLastReference(t *testing.T) {
	f, err := Open(writeTemp(t, "data"))
	require.NoError(t, err)

	require.NoError(t, f.Retain())
	require.NoError(t, f.Release())
	assert.False(t, f.Closed())

	require.NoError(t, f.Release())
	assert.True(t, f.Closed())
	assert.Equal(t, 0, f.RefCount())

	_, err = f.Stream()
	assert.ErrorIs(t, err, ErrClosed)
}
