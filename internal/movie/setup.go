package movie

import (
	"sync"

	"github.com/llehouerou/flick/internal/mpeg"
)

var (
	setupOnce     sync.Once
	defaultOpener mpeg.Opener
)

// Setup installs the process-wide engine opener used by Open. It must run
// before the first handle is constructed; only the first call has effect.
func Setup(o mpeg.Opener) {
	setupOnce.Do(func() {
		defaultOpener = o
	})
}
