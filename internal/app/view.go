package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/flick/internal/keymap"
	"github.com/llehouerou/flick/internal/ui/playerbar"
	"github.com/llehouerou/flick/internal/ui/render"
	"github.com/llehouerou/flick/internal/ui/styles"
)

var helpContexts = []string{"global", "playback", "output"}

// View renders the preview above the info panel, help and player bar.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	s := playerbar.NewState(m.handle, m.meta, m.muted)
	bar := playerbar.Render(s, m.width)

	var below []string
	if m.showInfo {
		below = append(below, playerbar.RenderInfo(s, m.renderer.Name(), m.width))
	}
	if m.showHelp {
		below = append(below, m.renderHelp())
	}
	if m.message != "" {
		below = append(below, styles.T().S().Muted.Render(render.Truncate(m.message, m.width)))
	}
	below = append(below, bar)
	bottom := lipgloss.JoinVertical(lipgloss.Left, below...)

	avail := max(m.height-lipgloss.Height(bottom), 0)
	top, overlay := m.renderPreview(avail)
	gap := avail
	if top != "" {
		top += "\n"
		gap -= lipgloss.Height(top) - 1
	}
	return top + strings.Repeat("\n", max(gap, 0)) + bottom + overlay
}

// renderPreview returns the preview text and the graphics overlay drawn on
// top of it. A detached display clears any graphics left behind.
func (m Model) renderPreview(avail int) (string, string) {
	surf := m.handle.Display()
	if surf == nil || !surf.Alive() {
		return "", m.renderer.Clear()
	}
	cols, rows := previewCells(surf.Bounds().Dx(), surf.Bounds().Dy(),
		min(m.cfg.GetVideoConfig().PreviewWidth, m.width), avail)
	if cols == 0 || rows == 0 {
		return "", m.renderer.Clear()
	}
	text := m.renderer.Render(surf.Snapshot(), cols, rows)
	return text, m.renderer.Overlay(1, 1)
}

// previewCells sizes the preview to maxCols, keeping the aspect ratio with
// cells twice as tall as they are wide, and shrinks it to fit maxRows.
func previewCells(w, h, maxCols, maxRows int) (cols, rows int) {
	if w <= 0 || h <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	cols = maxCols
	rows = (cols*h + w) / (2 * w)
	if rows > maxRows {
		rows = maxRows
		cols = rows * 2 * w / h
	}
	return min(cols, maxCols), max(rows, 1)
}

func (m Model) renderHelp() string {
	key := styles.T().S().Playing
	desc := styles.T().S().Base
	var lines []string
	for _, ctx := range helpContexts {
		for _, b := range keymap.ByContext(ctx) {
			keys := m.keys.KeysFor(b.Action)
			if len(keys) == 0 {
				continue
			}
			names := make([]string, len(keys))
			for i, k := range keys {
				if k == " " {
					k = "space"
				}
				names[i] = k
			}
			lines = append(lines, key.Render(render.Pad(strings.Join(names, "/"), 22))+desc.Render(b.Description))
		}
	}
	return styles.PanelStyle(true).
		Padding(0, 1).
		Width(max(m.width-2, 0)).
		Render(strings.Join(lines, "\n"))
}
