package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/llehouerou/flick/internal/mpeg"
)

const maxStderr = 4096

type probeData struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width,omitempty"`
		Height       int    `json:"height,omitempty"`
		AvgFrameRate string `json:"avg_frame_rate,omitempty"`
		RFrameRate   string `json:"r_frame_rate,omitempty"`
		Duration     string `json:"duration,omitempty"`
	} `json:"streams"`
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
}

// probe runs ffprobe on input (a path, or "pipe:0" with stdin set).
func probe(ctx context.Context, bin, input string, stdin io.Reader) (mpeg.Info, error) {
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		input,
	}

	// #nosec G204 - binary comes from config, input is a path or pipe:0
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = stdin
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > maxStderr {
			msg = msg[:maxStderr] + "..."
		}
		if msg == "" {
			return mpeg.Info{}, fmt.Errorf("ffprobe failed: %w", err)
		}
		return mpeg.Info{}, errors.New(msg)
	}
	return parseProbe(out)
}

func parseProbe(out []byte) (mpeg.Info, error) {
	var data probeData
	if err := json.Unmarshal(out, &data); err != nil {
		return mpeg.Info{}, fmt.Errorf("json decode: %w", err)
	}

	var info mpeg.Info
	var streamDuration float64
	for _, s := range data.Streams {
		if s.CodecName == "" {
			continue
		}
		switch s.CodecType {
		case "video":
			if info.HasVideo {
				continue
			}
			info.HasVideo = true
			info.Width = s.Width
			info.Height = s.Height
			info.FPS = parseRate(s.AvgFrameRate)
			if info.FPS == 0 {
				info.FPS = parseRate(s.RFrameRate)
			}
			streamDuration = max(streamDuration, parseSeconds(s.Duration))
		case "audio":
			info.HasAudio = true
			streamDuration = max(streamDuration, parseSeconds(s.Duration))
		}
	}

	if !info.HasVideo && !info.HasAudio {
		return mpeg.Info{}, errors.New("no playable video or audio stream")
	}
	if info.HasVideo && (info.Width <= 0 || info.Height <= 0) {
		return mpeg.Info{}, fmt.Errorf("invalid video size %dx%d", info.Width, info.Height)
	}
	if info.HasVideo && info.FPS <= 0 {
		info.FPS = 25
	}

	info.TotalTime = parseSeconds(data.Format.Duration)
	if info.TotalTime == 0 {
		info.TotalTime = streamDuration
	}
	return info, nil
}

// parseRate parses ffprobe's "num/den" frame rates.
func parseRate(s string) float64 {
	if s == "" || s == "0/0" {
		return 0
	}
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

func parseSeconds(s string) float64 {
	if s == "" || s == "N/A" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
