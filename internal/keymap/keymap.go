package keymap

// Binding ties keys to an action, with help text.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "output"
}

// All contains all key bindings for help generation.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" ", "p"}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionRewind, []string{"home", "r"}, "Rewind", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek back", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek forward", "playback"},
	{ActionSeekBack4, []string{"shift+left", "H"}, "Seek back (long)", "playback"},
	{ActionSeekForward4, []string{"shift+right", "L"}, "Seek forward (long)", "playback"},
	{ActionForgetResume, []string{"ctrl+r"}, "Forget resume position", "playback"},

	// Output
	{ActionVolumeUp, []string{"+", "=", "up"}, "Volume up", "output"},
	{ActionVolumeDown, []string{"-", "down"}, "Volume down", "output"},
	{ActionToggleMute, []string{"m"}, "Mute", "output"},
	{ActionToggleVideo, []string{"v"}, "Toggle video", "output"},
	{ActionToggleInfo, []string{"i"}, "Stream info", "output"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Default returns a resolver over All.
func Default() *Resolver {
	return NewResolver(All)
}
