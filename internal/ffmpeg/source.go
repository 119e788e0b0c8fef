package ffmpeg

import (
	"fmt"
	"io"
)

// source is either a path ffmpeg opens itself or a random-access stream fed
// on stdin.
type source struct {
	path string
	ra   io.ReaderAt
	size int64
	tmp  string // spooled file to remove on delete
}

// input returns the ffmpeg input argument and, for streams, a fresh reader
// for the process's stdin.
func (s source) input() (string, io.Reader) {
	if s.path != "" {
		return s.path, nil
	}
	return "pipe:0", io.NewSectionReader(s.ra, 0, s.size)
}

func (s source) String() string {
	if s.path != "" && s.tmp == "" {
		return s.path
	}
	return fmt.Sprintf("stream(%d bytes)", s.size)
}
