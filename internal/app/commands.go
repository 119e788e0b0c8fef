package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/flick/internal/mpris"
)

const (
	maxPreviewFPS = 30
	barInterval   = 250 * time.Millisecond
)

// TickCmd returns a command that sends TickMsg after d.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchStderr returns a command that waits for the next captured line.
func WatchStderr(lines <-chan string) tea.Cmd {
	if lines == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil
		}
		return StderrMsg(line)
	}
}

// WatchRemote returns a command that waits for the next remote command.
func WatchRemote(cmds <-chan mpris.Command) tea.Cmd {
	if cmds == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-cmds
		if !ok {
			return nil
		}
		return c
	}
}

// tickInterval refreshes at the frame rate, capped, or at the bar rate for
// streams without video.
func tickInterval(hasVideo bool, fps float64) time.Duration {
	if !hasVideo || fps <= 0 {
		return barInterval
	}
	return time.Duration(float64(time.Second) / min(fps, maxPreviewFPS))
}
