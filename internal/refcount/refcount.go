// Package refcount provides explicit shared ownership for resources handed
// between a caller and a playback handle.
package refcount

import (
	"errors"
	"sync"
)

// ErrReleased is returned when retaining or releasing a counter whose last
// reference is already gone.
var ErrReleased = errors.New("resource already released")

// Counter tracks references to a shared resource. A new Counter holds one
// reference (the creator's). The release hook runs exactly once, when the
// count drops to zero. A nil Counter is dead: it reports no references and
// refuses Retain and Release.
type Counter struct {
	mu     sync.Mutex
	count  int
	onZero func()
}

// New returns a counter holding a single reference.
func New(onZero func()) *Counter {
	return &Counter{count: 1, onZero: onZero}
}

// Retain adds a reference.
func (c *Counter) Retain() error {
	if c == nil {
		return ErrReleased
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count <= 0 {
		return ErrReleased
	}
	c.count++
	return nil
}

// Release drops a reference and runs the release hook if it was the last one.
func (c *Counter) Release() error {
	if c == nil {
		return ErrReleased
	}
	c.mu.Lock()
	if c.count <= 0 {
		c.mu.Unlock()
		return ErrReleased
	}
	c.count--
	last := c.count == 0
	fn := c.onZero
	c.mu.Unlock()

	if last && fn != nil {
		fn()
	}
	return nil
}

// Count returns the number of live references.
func (c *Counter) Count() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Alive reports whether at least one reference remains.
func (c *Counter) Alive() bool {
	return c.Count() > 0
}
