//go:build !windows

package stderr

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	c, err := Start(4)
	require.NoError(t, err)

	fmt.Fprintln(os.Stderr, "  ALSA lib pcm.c: underrun  ")
	fmt.Fprintln(os.Stderr, "")

	select {
	case line := <-c.Lines():
		assert.Equal(t, "ALSA lib pcm.c: underrun", line)
	case <-time.After(2 * time.Second):
		t.Fatal("line not captured")
	}

	c.Stop()
	_, open := <-c.Lines()
	assert.False(t, open, "Lines closes on Stop")
}
