package refcount

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_StartsWithOneReference(t *testing.T) {
	c := New(nil)
	assert.Equal(t, 1, c.Count())
	assert.True(t, c.Alive())
}

func TestCounter_HookRunsOnLastRelease(t *testing.T) {
	calls := 0
	c := New(func() { calls++ })

	require.NoError(t, c.Retain())
	require.NoError(t, c.Release())
	assert.Equal(t, 0, calls, "hook must not run while references remain")

	require.NoError(t, c.Release())
	assert.Equal(t, 1, calls)
	assert.False(t, c.Alive())
}

func TestCounter_ReleaseAfterZero(t *testing.T) {
	calls := 0
	c := New(func() { calls++ })
	require.NoError(t, c.Release())

	assert.ErrorIs(t, c.Release(), ErrReleased)
	assert.ErrorIs(t, c.Retain(), ErrReleased)
	assert.Equal(t, 1, calls, "hook must run exactly once")
	assert.Equal(t, 0, c.Count())
}

func TestCounter_ConcurrentRetainRelease(t *testing.T) {
	calls := 0
	c := New(func() { calls++ })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Retain(); err == nil {
				_ = c.Release()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, c.Count())
	require.NoError(t, c.Release())
	assert.Equal(t, 1, calls)
}

func TestCounter_NilIsDead(t *testing.T) {
	var c *Counter

	assert.ErrorIs(t, c.Retain(), ErrReleased)
	assert.ErrorIs(t, c.Release(), ErrReleased)
	assert.Equal(t, 0, c.Count())
	assert.False(t, c.Alive())
}
