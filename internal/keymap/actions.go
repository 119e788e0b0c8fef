// Package keymap defines key bindings and action dispatch for the player.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause    Action = "play_pause"
	ActionStop         Action = "stop"
	ActionRewind       Action = "rewind"
	ActionSeekForward  Action = "seek_forward"
	ActionSeekBack     Action = "seek_back"
	ActionSeekForward4 Action = "seek_forward_long" // 4x the skip step
	ActionSeekBack4    Action = "seek_back_long"    // 4x the skip step
	ActionVolumeUp     Action = "volume_up"         // +5%
	ActionVolumeDown   Action = "volume_down"       // -5%
	ActionToggleMute   Action = "toggle_mute"       // m
	ActionToggleVideo  Action = "toggle_video"      // v - detach/attach display
	ActionToggleInfo   Action = "toggle_info"       // i - stream info panel
	ActionForgetResume Action = "forget_resume"     // ctrl+r
)
