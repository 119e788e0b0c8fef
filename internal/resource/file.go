// Package resource wraps open source files so that they can be shared with
// a decoding engine that keeps reading them after construction returns.
package resource

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/llehouerou/flick/internal/refcount"
)

// ErrClosed is returned by Stream once the last reference is released.
var ErrClosed = errors.New("file resource closed")

// File is a reference-counted open file. The underlying *os.File is closed
// when the last reference is released.
type File struct {
	mu     sync.Mutex
	f      *os.File
	name   string
	size   int64
	closed bool
	refs   *refcount.Counter
}

// Open opens path for reading.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := Wrap(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Wrap takes ownership of an already open file.
func Wrap(f *os.File) (*File, error) {
	if f == nil {
		return nil, errors.New("nil file")
	}
	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", f.Name(), err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", f.Name())
	}
	r := &File{f: f, name: f.Name(), size: st.Size()}
	r.refs = refcount.New(r.close)
	return r, nil
}

func (r *File) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.f.Close()
	r.closed = true
}

// Name returns the file name.
func (r *File) Name() string { return r.name }

// Size returns the file size in bytes at open time.
func (r *File) Size() int64 { return r.size }

// Stream returns an independent reader over the whole file. Streams stay
// usable only while the file has references.
func (r *File) Stream() (io.ReadSeeker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	return io.NewSectionReader(r.f, 0, r.size), nil
}

// Closed reports whether the underlying file was closed.
func (r *File) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Retain adds a reference.
func (r *File) Retain() error { return r.refs.Retain() }

// Release drops a reference, closing the file with the last one.
func (r *File) Release() error { return r.refs.Release() }

// RefCount returns the number of live references.
func (r *File) RefCount() int { return r.refs.Count() }
