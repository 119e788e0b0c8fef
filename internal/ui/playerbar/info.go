package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/flick/internal/ui/render"
	"github.com/llehouerou/flick/internal/ui/styles"
)

// RenderInfo renders the stream info panel: one "label  value" row per
// property.
func RenderInfo(s State, renderer string, width int) string {
	rows := [][2]string{
		{"Status", s.Status.String()},
		{"Video", videoDesc(s)},
		{"Audio", yesNo(s.HasAudio)},
		{"Frame", fmt.Sprintf("%d", s.Frame)},
		{"Time", fmt.Sprintf("%s / %s", FormatSeconds(s.Position), FormatSeconds(s.Length))},
		{"Output", outputDesc(s, renderer)},
	}
	if s.FileSize != "" {
		rows = append(rows, [2]string{"Size", s.FileSize})
	}

	label := styles.T().S().Muted
	value := styles.T().S().Base
	inner := max(width-4, 10)

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		l := label.Render(render.Pad(r[0], 8))
		v := value.Render(render.Truncate(r[1], inner-lipgloss.Width(l)))
		lines = append(lines, l+v)
	}
	return styles.PanelStyle(false).
		Padding(0, 1).
		Width(max(width-2, 0)).
		Render(strings.Join(lines, "\n"))
}

func videoDesc(s State) string {
	if !s.HasVideo {
		return "none"
	}
	return fmt.Sprintf("%dx%d @ %.2f fps", s.Width, s.Height, s.FPS)
}

func outputDesc(s State, renderer string) string {
	if !s.HasVideo {
		return "audio only"
	}
	if !s.VideoOn {
		return "detached"
	}
	return renderer
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
