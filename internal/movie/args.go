package movie

import (
	"fmt"
	"image"

	"github.com/llehouerou/flick/internal/display"
	"github.com/llehouerou/flick/internal/resource"
)

type sourceKind int

const (
	sourceInvalid sourceKind = iota
	sourcePath
	sourceFile
)

// Source is what a movie is opened from: a path or an open file. The zero
// value is invalid.
type Source struct {
	kind sourceKind
	path string
	file *resource.File
}

// FromPath opens the movie by name; the engine reads the path itself.
func FromPath(path string) Source {
	return Source{kind: sourcePath, path: path}
}

// FromFile opens the movie from an already open file. The handle keeps a
// reference to f until it is closed.
func FromFile(f *resource.File) Source {
	return Source{kind: sourceFile, file: f}
}

func (s Source) validate() error {
	switch s.kind {
	case sourcePath:
		if s.path == "" {
			return fmt.Errorf("%w: empty path", ErrInvalidArgument)
		}
	case sourceFile:
		if s.file == nil {
			return fmt.Errorf("%w: nil file", ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("%w: source must be a path or an open file", ErrInvalidArgument)
	}
	return nil
}

func (s Source) String() string {
	switch s.kind {
	case sourcePath:
		return s.path
	case sourceFile:
		if s.file != nil {
			return s.file.Name()
		}
	}
	return "<invalid>"
}

// Target is a render destination: a surface or explicitly none. The zero
// value is invalid.
type Target struct {
	surface *display.Surface
	none    bool
}

// OnSurface directs video output to s.
func OnSurface(s *display.Surface) Target {
	return Target{surface: s}
}

// NoTarget disables video output.
func NoTarget() Target {
	return Target{none: true}
}

func (t Target) validate() error {
	if t.none {
		return nil
	}
	if t.surface == nil {
		return fmt.Errorf("%w: destination must be a surface", ErrInvalidArgument)
	}
	if !t.surface.Alive() {
		return fmt.Errorf("%w: destination surface was released", ErrInvalidArgument)
	}
	return nil
}

func position(pos []image.Point) (image.Point, error) {
	switch len(pos) {
	case 0:
		return image.Point{}, nil
	case 1:
		return pos[0], nil
	default:
		return image.Point{}, fmt.Errorf("%w: at most one position", ErrInvalidArgument)
	}
}
