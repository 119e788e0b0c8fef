// Package preview draws display surfaces in the terminal, either as
// coloured half-block characters or through a graphics protocol.
package preview

import (
	"image"
	"os"
	"strings"
)

// Renderer turns surface snapshots into terminal output.
type Renderer interface {
	Name() string
	// Render returns the text occupying cols x rows cells. Graphics
	// renderers return a blank placeholder and draw in Overlay.
	Render(img image.Image, cols, rows int) string
	// Overlay returns escape sequences drawing the last frame with its
	// top-left cell at the 1-based (row, col).
	Overlay(row, col int) string
	// Clear removes anything Overlay left on screen.
	Clear() string
}

// Detect picks the best renderer for the current terminal.
//
// FLICK_IMAGE_PROTOCOL overrides detection with "kitty", "sixel" or
// "blocks".
func Detect() Renderer {
	switch os.Getenv("FLICK_IMAGE_PROTOCOL") {
	case "kitty":
		return NewKitty()
	case "sixel":
		return NewSixel()
	case "blocks":
		return HalfBlock{}
	}

	if IsKittySupported() {
		return NewKitty()
	}
	if IsSixelSupported() {
		return NewSixel()
	}
	return HalfBlock{}
}

// IsKittySupported checks if the terminal supports Kitty graphics protocol.
func IsKittySupported() bool {
	// Contour sets CONTOUR_PROFILE but doesn't support Kitty protocol, and
	// inherits variables from the terminal it was launched from.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" || os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if version := os.Getenv("KONSOLE_VERSION"); len(version) >= 4 && version[:4] >= "2204" {
		return true
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// IsSixelSupported checks if the terminal supports Sixel graphics.
func IsSixelSupported() bool {
	term := os.Getenv("TERM")
	switch os.Getenv("TERM_PROGRAM") {
	case "vscode", "mintty", "iTerm.app", "contour":
		return true
	}
	return term == "foot" || term == "foot-extra" || os.Getenv("CONTOUR_PROFILE") != ""
}

// blank returns cols x rows spaces so lipgloss measures the image area.
func blank(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	line := strings.Repeat(" ", cols)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// fit returns the largest w x h with img's aspect ratio inside maxW x maxH.
func fit(img image.Image, maxW, maxH int) (w, h int) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	w, h = maxW, b.Dy()*maxW/b.Dx()
	if h > maxH {
		w, h = b.Dx()*maxH/b.Dy(), maxH
	}
	return max(w, 1), max(h, 1)
}
