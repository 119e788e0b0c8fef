// Package playerbar renders the transport status line and the stream info
// panel.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/flick/internal/meta"
	"github.com/llehouerou/flick/internal/movie"
	"github.com/llehouerou/flick/internal/mpeg"
	"github.com/llehouerou/flick/internal/ui/render"
	"github.com/llehouerou/flick/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	stopSymbol  = "■"
	errorSymbol = "✗"
)

// Height is the bar's height including its border.
const Height = 3

// State holds everything needed to render the player bar.
type State struct {
	Status   mpeg.Status
	Title    string
	Position float64 // seconds
	Length   float64 // seconds
	Frame    int
	FPS      float64
	Width    int
	Height   int
	HasVideo bool
	HasAudio bool
	VideoOn  bool
	Volume   int
	Muted    bool
	FileSize string
}

// NewState snapshots h once.
func NewState(h movie.Interface, m meta.Info, muted bool) State {
	info := h.Info()
	return State{
		Status:   h.Status(),
		Title:    m.Title,
		Position: info.CurrentTime,
		Length:   info.TotalTime,
		Frame:    info.CurrentFrame,
		FPS:      info.FPS,
		Width:    info.Width,
		Height:   info.Height,
		HasVideo: info.HasVideo,
		HasAudio: info.HasAudio,
		VideoOn:  h.Display() != nil,
		Volume:   h.Volume(),
		Muted:    muted,
		FileSize: m.SizeString(),
	}
}

// Render returns the bordered status line for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0)
	sep := "   "

	status := statusSymbol(s.Status)
	timeStr := fmt.Sprintf("%s / %s", FormatSeconds(s.Position), FormatSeconds(s.Length))
	volume := RenderVolume(s.Volume, s.Muted)

	fixed := lipgloss.Width(status) + 2 + lipgloss.Width(timeStr) + lipgloss.Width(volume) + len(sep)*3
	minBar := 10
	maxTitle := max(innerWidth-fixed-minBar, 8)

	title := s.Title
	if title == "" {
		title = "Untitled"
	}
	title = render.Truncate(title, maxTitle)
	titleWidth := lipgloss.Width(title)

	var styledTitle string
	if s.Status == mpeg.StatusPlaying {
		styledTitle = styles.ApplyGradient(title, styles.T().Primary, styles.T().Secondary)
	} else {
		styledTitle = styles.T().S().Title.Render(title)
	}

	barWidth := max(innerWidth-fixed-titleWidth, 5)
	bar := RenderProgress(ratio(s.Position, s.Length), barWidth)

	var content strings.Builder
	content.WriteString(styledTitle)
	content.WriteString(sep)
	content.WriteString(statusStyle(s.Status).Render(status))
	content.WriteString("  ")
	content.WriteString(bar)
	content.WriteString(sep)
	content.WriteString(styles.T().S().Muted.Render(timeStr))
	content.WriteString(sep)
	content.WriteString(volume)

	line := render.TruncateStyled(content.String(), innerWidth)
	return styles.PanelStyle(s.Status == mpeg.StatusPlaying).
		Padding(0, 2).
		Width(max(width-2, 0)).
		Render(line)
}

func statusSymbol(st mpeg.Status) string {
	switch st {
	case mpeg.StatusPlaying:
		return playSymbol
	case mpeg.StatusPaused:
		return pauseSymbol
	case mpeg.StatusError:
		return errorSymbol
	default:
		return stopSymbol
	}
}

func statusStyle(st mpeg.Status) lipgloss.Style {
	switch st {
	case mpeg.StatusPlaying:
		return styles.T().S().Playing
	case mpeg.StatusPaused:
		return styles.T().S().Paused
	case mpeg.StatusError:
		return styles.T().S().Error
	default:
		return styles.T().S().Muted
	}
}

func ratio(pos, length float64) float64 {
	if length <= 0 {
		return 0
	}
	return min(max(pos/length, 0), 1)
}

// FormatSeconds renders m:ss, or h:mm:ss from an hour up.
func FormatSeconds(sec float64) string {
	d := time.Duration(max(sec, 0) * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
