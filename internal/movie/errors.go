package movie

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for an unsupported source or target.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCreation is returned when the engine could not be instantiated.
	ErrCreation = errors.New("cannot create movie")
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("decode error")
	// ErrNotInitialized is returned by Open before Setup installed an opener.
	ErrNotInitialized = errors.New("movie: no engine opener installed")
	// ErrClosed is returned when closing a handle twice.
	ErrClosed = errors.New("movie closed")
)

// DecodeError carries the message the engine reported right after creation.
type DecodeError struct {
	Msg string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s", e.Msg)
}

// Is makes errors.Is(err, ErrDecode) hold for any DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
