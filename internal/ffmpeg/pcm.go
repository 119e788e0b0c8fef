package ffmpeg

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
)

var _ beep.Streamer = (*pcmStreamer)(nil)

// pcmStreamer decodes interleaved stereo s16le samples.
type pcmStreamer struct {
	r       io.Reader
	err     error
	readBuf []byte
	done    chan struct{}
	ended   bool
}

func newPCMStreamer(r io.Reader) *pcmStreamer {
	return &pcmStreamer{
		r:       r,
		readBuf: make([]byte, 8192),
		done:    make(chan struct{}),
	}
}

// Stream implements beep.Streamer.
func (p *pcmStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if p.ended {
		return 0, false
	}

	// 4 bytes per sample (stereo 16-bit)
	bytesNeeded := len(samples) * 4
	if len(p.readBuf) < bytesNeeded {
		p.readBuf = make([]byte, bytesNeeded)
	}

	bytesRead, err := io.ReadFull(p.r, p.readBuf[:bytesNeeded])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		p.err = err
	}

	n = bytesRead / 4
	for i := range n {
		offset := i * 4
		left := int16(binary.LittleEndian.Uint16(p.readBuf[offset:]))    //nolint:gosec // audio samples
		right := int16(binary.LittleEndian.Uint16(p.readBuf[offset+2:])) //nolint:gosec // audio samples
		samples[i][0] = float64(left) / 32768.0
		samples[i][1] = float64(right) / 32768.0
	}

	if err != nil {
		p.end()
	}
	if n == 0 {
		return 0, false
	}
	return n, true
}

// Err implements beep.Streamer.
func (p *pcmStreamer) Err() error {
	return p.err
}

func (p *pcmStreamer) end() {
	if !p.ended {
		p.ended = true
		close(p.done)
	}
}
