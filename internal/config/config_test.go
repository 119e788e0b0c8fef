//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/bin/ffmpeg",
			expected: filepath.Join(home, "bin", "ffmpeg"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/usr/bin/ffmpeg",
			expected: "/usr/bin/ffmpeg",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) != 2 {
		t.Fatalf("getConfigPaths() returned %d paths, want 2", len(paths))
	}
	if paths[1] != "config.toml" {
		t.Errorf("last config path = %q, want %q", paths[1], "config.toml")
	}
	if filepath.Base(filepath.Dir(paths[0])) != appName {
		t.Errorf("first config path = %q, want it under %q", paths[0], appName)
	}
}

func TestLoadFrom_LastWins(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "user.toml")
	local := filepath.Join(dir, "local.toml")

	require.NoError(t, os.WriteFile(user, []byte(`
ffmpeg_bin = "/opt/ffmpeg/bin/ffmpeg"
skip_seconds = 10
resume = false

[audio]
enabled = true
volume = 0.4

[log]
level = "debug"
`), 0o600))
	require.NoError(t, os.WriteFile(local, []byte(`
skip_seconds = 2.5

[video]
preview_width = 40
`), 0o600))

	cfg, err := LoadFrom(user, local, filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpeg())
	assert.InDelta(t, 2.5, cfg.GetSkipSeconds(), 1e-9)
	assert.False(t, cfg.ResumeEnabled())
	assert.True(t, cfg.GetAudioConfig().Enabled)
	assert.InDelta(t, 0.4, cfg.GetAudioConfig().Level(), 1e-9)
	assert.Equal(t, 40, cfg.GetVideoConfig().PreviewWidth)
	assert.Equal(t, "debug", cfg.GetLogConfig().Level)
}

func TestLoadFrom_SilentStartVolume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[audio]\nvolume = 0.0\n"), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Audio.Volume)
	assert.Zero(t, cfg.GetAudioConfig().Level())
}

func TestAudioConfig_LevelClamps(t *testing.T) {
	tests := []struct {
		name string
		vol  *float64
		want float64
	}{
		{"unset", nil, 1.0},
		{"zero", ptr(0.0), 0},
		{"half", ptr(0.5), 0.5},
		{"too loud", ptr(1.5), 1.0},
		{"negative", ptr(-0.2), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AudioConfig{Volume: tt.vol}
			assert.InDelta(t, tt.want, a.Level(), 1e-9)
			assert.InDelta(t, tt.want, (&Config{Audio: a}).GetAudioConfig().Level(), 1e-9)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestLoadFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("skip_seconds = ["), 0o600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	assert.Equal(t, "ffmpeg", cfg.FFmpeg())
	assert.True(t, cfg.ResumeEnabled())
	assert.InDelta(t, 5.0, cfg.GetSkipSeconds(), 1e-9)

	audio := cfg.GetAudioConfig()
	assert.False(t, audio.Enabled)
	assert.Equal(t, 44100, audio.SampleRate)
	assert.Equal(t, 100, audio.BufferMs)
	assert.InDelta(t, 1.0, audio.Level(), 1e-9)

	video := cfg.GetVideoConfig()
	assert.Equal(t, 64, video.PreviewWidth)
	assert.InDelta(t, 1.0, video.Scale, 1e-9)

	logCfg := cfg.GetLogConfig()
	assert.Equal(t, "info", logCfg.Level)
	assert.Equal(t, "flick.log", filepath.Base(logCfg.File))
}

type fakeInfo struct{ dir bool }

func (f fakeInfo) Name() string       { return "ffprobe" }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return 0o755 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.dir }
func (f fakeInfo) Sys() any           { return nil }

func TestResolveFFprobe(t *testing.T) {
	exists := func(string) (os.FileInfo, error) { return fakeInfo{}, nil }
	missing := func(string) (os.FileInfo, error) { return nil, errors.New("not found") }

	tests := []struct {
		name    string
		ffprobe string
		ffmpeg  string
		stat    func(string) (os.FileInfo, error)
		want    string
	}{
		{"explicit wins", "/x/ffprobe", "/opt/bin/ffmpeg", exists, "/x/ffprobe"},
		{"derived from concrete ffmpeg", "", "/opt/bin/ffmpeg", exists, "/opt/bin/ffprobe"},
		{"derived candidate missing", "", "/opt/bin/ffmpeg", missing, "ffprobe"},
		{"bare ffmpeg not guessed", "", "ffmpeg", exists, "ffprobe"},
		{"renamed ffmpeg not guessed", "", "/opt/bin/ffmpeg6", exists, "ffprobe"},
		{"nothing configured", "", "", exists, "ffprobe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveFFprobe(tt.ffprobe, tt.ffmpeg, tt.stat))
		})
	}
}
