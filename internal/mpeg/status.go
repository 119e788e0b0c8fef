package mpeg

// Status is the engine's transport state.
//
//	Stopped --play--> Playing --pause--> Paused --pause--> Playing
//	   ^                 |                  |
//	   +------stop-------+-------stop-------+
//
// Error is reported when the engine hit an unrecoverable stream error.
type Status int

const (
	StatusError Status = iota - 1
	StatusStopped
	StatusPlaying
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "Error"
	case StatusStopped:
		return "Stopped"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}
