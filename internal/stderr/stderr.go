//go:build !windows

// Package stderr redirects file descriptor 2 into a channel while the
// terminal UI owns the screen. The audio backend's C code and child
// processes write there directly, bypassing os.Stderr.
package stderr

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Capture holds a redirected stderr.
type Capture struct {
	orig  int
	r, w  *os.File
	lines chan string
	done  chan struct{}
}

// Start redirects fd 2. Lines beyond buffer unread ones are dropped. On
// error the original stderr is left untouched and the program can carry on
// without capture.
func Start(buffer int) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		orig:  orig,
		r:     r,
		w:     w,
		lines: make(chan string, buffer),
		done:  make(chan struct{}),
	}
	go c.pump()
	return c, nil
}

func (c *Capture) pump() {
	defer close(c.done)
	defer close(c.lines)
	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
			// full, drop
		}
	}
}

// Lines receives captured lines until Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes to the real stderr, bypassing capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = unix.Write(c.orig, []byte(msg))
}

// Stop restores the original stderr and closes Lines.
func (c *Capture) Stop() {
	_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = unix.Close(c.orig)
	c.w.Close()
	<-c.done
	c.r.Close()
}
