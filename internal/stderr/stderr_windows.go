//go:build windows

// Package stderr provides a no-op implementation for Windows.
package stderr

import "os"

// Capture is inert on Windows.
type Capture struct {
	lines chan string
}

// Start returns a capture that never receives anything.
func Start(int) (*Capture, error) {
	return &Capture{lines: make(chan string)}, nil
}

// Lines never yields until Stop.
func (c *Capture) Lines() <-chan string { return c.lines }

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop closes Lines.
func (c *Capture) Stop() { close(c.lines) }
