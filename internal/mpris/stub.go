//go:build !linux

package mpris

// New returns an adapter that is not registered on any bus. Publish still
// works and Commands never fires.
func New() (*Adapter, error) {
	return newAdapter(), nil
}
