package preview

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

const upperHalf = "▀"

// HalfBlock draws two pixel rows per cell: the foreground colours the top
// half and the background the bottom half.
type HalfBlock struct{}

func (HalfBlock) Name() string { return "blocks" }

func (HalfBlock) Render(img image.Image, cols, rows int) string {
	w, h := fit(img, cols, rows*2)
	if w == 0 {
		return blank(cols, rows)
	}
	//nolint:gosec // dimensions are small, no overflow risk
	small := resize.Resize(uint(w), uint(h), img, resize.Bilinear)

	lines := make([]string, 0, rows)
	for y := 0; y < h; y += 2 {
		var sb strings.Builder
		for x := range w {
			top := hex(small.At(x, y))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(top))
			if y+1 < h {
				style = style.Background(lipgloss.Color(hex(small.At(x, y+1))))
			}
			sb.WriteString(style.Render(upperHalf))
		}
		if pad := cols - w; pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
		}
		lines = append(lines, sb.String())
	}
	for len(lines) < rows {
		lines = append(lines, strings.Repeat(" ", cols))
	}
	return strings.Join(lines, "\n")
}

func (HalfBlock) Overlay(int, int) string { return "" }

func (HalfBlock) Clear() string { return "" }

func hex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Clamped().Hex()
}
