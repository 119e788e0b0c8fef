package render

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "Movie", "Movie"},
		{"control", "a\x07b\nc", "abc"},
		{"tab kept", "a\tb", "a\tb"},
		{"invalid utf8", "a\xffb", "ab"},
		{"nbsp", "a\u00a0b", "a b"},
		{"wide", "映画", "映画"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a long…", Truncate("a long title", 7))
	assert.LessOrEqual(t, runewidth.StringWidth(Truncate("映画のタイトル", 5)), 5)
	assert.Empty(t, Truncate("x", 0))
}

func TestTruncateStyled(t *testing.T) {
	styled := "\x1b[1mbold title\x1b[0m"
	out := TruncateStyled(styled, 5)
	assert.Equal(t, 5, ansi.StringWidth(out))
	assert.Equal(t, "bold…", ansi.Strip(out))
	assert.Empty(t, TruncateStyled(styled, 0))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", Pad("ab", 5))
	assert.Equal(t, "abcdef", Pad("abcdef", 3))
}
