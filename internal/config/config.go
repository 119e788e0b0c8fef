package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "flick"

type Config struct {
	FFmpegBin   string  `koanf:"ffmpeg_bin"`   // default: "ffmpeg" from PATH
	FFprobeBin  string  `koanf:"ffprobe_bin"`  // default: derived from ffmpeg_bin, else PATH
	SkipSeconds float64 `koanf:"skip_seconds"` // step for the seek keys (default: 5)
	Resume      *bool   `koanf:"resume"`       // remember the position per file (default: true)

	Audio AudioConfig `koanf:"audio"`
	Video VideoConfig `koanf:"video"`
	Log   LogConfig   `koanf:"log"`
}

// AudioConfig holds audio output settings.
type AudioConfig struct {
	Enabled    bool     `koanf:"enabled"`     // audio is off unless enabled
	SampleRate int      `koanf:"sample_rate"` // speaker rate (default: 44100)
	BufferMs   int      `koanf:"buffer_ms"`   // speaker buffer (default: 100)
	Volume     *float64 `koanf:"volume"`      // initial level 0.0-1.0 (default: 1.0)
}

// Level returns the initial volume level, 1.0 when unset.
func (a AudioConfig) Level() float64 {
	if a.Volume == nil {
		return 1.0
	}
	return min(max(*a.Volume, 0), 1)
}

// VideoConfig holds preview settings.
type VideoConfig struct {
	PreviewWidth int     `koanf:"preview_width"` // preview width in cells (default: 64)
	Scale        float64 `koanf:"scale"`         // output scale factor (default: 1.0)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", ... (default: "info")
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/flick/flick.log
}

// Load reads the user and local config files, the local one winning.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order; missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.FFmpegBin = expandPath(strings.TrimSpace(cfg.FFmpegBin))
	cfg.FFprobeBin = expandPath(strings.TrimSpace(cfg.FFprobeBin))
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/flick/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// FFmpeg returns the ffmpeg binary to run.
func (c *Config) FFmpeg() string {
	if c.FFmpegBin == "" {
		return "ffmpeg"
	}
	return c.FFmpegBin
}

// FFprobe returns the ffprobe binary to run. Without an explicit setting it
// is looked up next to a concrete ffmpeg path, then on PATH.
func (c *Config) FFprobe() string {
	return resolveFFprobe(c.FFprobeBin, c.FFmpegBin, os.Stat)
}

func resolveFFprobe(ffprobeBin, ffmpegBin string, stat func(string) (os.FileInfo, error)) string {
	if ffprobeBin != "" {
		return ffprobeBin
	}
	// Only derive from a concrete path, never guess from a bare "ffmpeg".
	if strings.ContainsRune(ffmpegBin, '/') && filepath.Base(ffmpegBin) == "ffmpeg" {
		candidate := filepath.Join(filepath.Dir(ffmpegBin), "ffprobe")
		if fi, err := stat(candidate); err == nil && !fi.IsDir() {
			return candidate
		}
	}
	return "ffprobe"
}

// ResumeEnabled reports whether playback positions are remembered.
func (c *Config) ResumeEnabled() bool {
	return c.Resume == nil || *c.Resume
}

// GetSkipSeconds returns the seek step with the default applied.
func (c *Config) GetSkipSeconds() float64 {
	if c.SkipSeconds <= 0 {
		return 5
	}
	return c.SkipSeconds
}

// GetAudioConfig returns the audio configuration with defaults applied.
func (c *Config) GetAudioConfig() AudioConfig {
	cfg := c.Audio

	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	if cfg.BufferMs <= 0 {
		cfg.BufferMs = 100
	}
	level := cfg.Level()
	cfg.Volume = &level

	return cfg
}

// GetVideoConfig returns the video configuration with defaults applied.
func (c *Config) GetVideoConfig() VideoConfig {
	cfg := c.Video

	if cfg.PreviewWidth <= 0 {
		cfg.PreviewWidth = 64
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1.0
	}

	return cfg
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.File == "" {
		cfg.File = filepath.Join(xdg.StateHome, appName, appName+".log")
	}

	return cfg
}
