package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	SaveResume(r Resume)
	GetResume(path string) (*Resume, error)
	RecentResumes(limit int) ([]Resume, error)
	ClearResume(path string) error
	GetVolume() (*VolumeState, error)
	SaveVolume(volume float64, muted bool) error
	Flush() error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
