// Package mpris exposes the player on the D-Bus session bus as an MPRIS
// media player. Bus calls are turned into Commands for the UI loop, which
// owns the playback handle; property reads are answered from the last
// published Snapshot.
package mpris

import (
	"sync"

	"github.com/llehouerou/flick/internal/mpeg"
)

const commandBuffer = 16

// Snapshot is the player state served to bus clients.
type Snapshot struct {
	Path     string
	Title    string
	Artist   string
	Status   mpeg.Status
	Position float64 // seconds
	Length   float64 // seconds
	Volume   float64 // 0.0-1.0
}

// CommandKind identifies a bus request.
type CommandKind int

const (
	CmdPlay CommandKind = iota
	CmdPause
	CmdPlayPause
	CmdStop
	CmdSeek        // relative, by Seconds
	CmdSetPosition // absolute, to Seconds
	CmdSetVolume   // to Level
	CmdQuit
)

// Command is a request from a bus client.
type Command struct {
	Kind    CommandKind
	Seconds float64
	Level   float64
}

// Adapter connects the player to MPRIS.
type Adapter struct {
	mu   sync.Mutex
	snap Snapshot
	cmds chan Command
	stop func() error
}

func newAdapter() *Adapter {
	return &Adapter{cmds: make(chan Command, commandBuffer)}
}

// Publish replaces the state served to bus clients.
func (a *Adapter) Publish(s Snapshot) {
	a.mu.Lock()
	a.snap = s
	a.mu.Unlock()
}

// Snapshot returns the last published state.
func (a *Adapter) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap
}

// Commands delivers bus requests. The channel is never closed.
func (a *Adapter) Commands() <-chan Command {
	return a.cmds
}

// send queues c, dropping it when the UI loop is behind.
func (a *Adapter) send(c Command) {
	select {
	case a.cmds <- c:
	default:
	}
}

// Close releases the bus connection.
func (a *Adapter) Close() error {
	if a.stop == nil {
		return nil
	}
	return a.stop()
}
