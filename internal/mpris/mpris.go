//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/flick/internal/logging"
	"github.com/llehouerou/flick/internal/mpeg"
)

const microsPerSecond = 1e6

// New registers the player on the session bus and starts serving it.
func New() (*Adapter, error) {
	a := newAdapter()
	srv := server.NewServer("flick", &rootAdapter{a: a}, &playerAdapter{a: a})
	a.stop = srv.Stop

	log := logging.WithComponent("mpris")
	go func() {
		if err := srv.Listen(); err != nil {
			log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()
	return a, nil
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	a *Adapter
}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	r.a.send(Command{Kind: CmdQuit})
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return true, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Flick", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"video/mpeg", "audio/mpeg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	a *Adapter
}

func (p *playerAdapter) Next() error {
	return nil // Single movie
}

func (p *playerAdapter) Previous() error {
	return nil // Single movie
}

func (p *playerAdapter) Pause() error {
	p.a.send(Command{Kind: CmdPause})
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.a.send(Command{Kind: CmdPlayPause})
	return nil
}

func (p *playerAdapter) Stop() error {
	p.a.send(Command{Kind: CmdStop})
	return nil
}

func (p *playerAdapter) Play() error {
	p.a.send(Command{Kind: CmdPlay})
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.a.send(Command{Kind: CmdSeek, Seconds: float64(offset) / microsPerSecond})
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.a.send(Command{Kind: CmdSetPosition, Seconds: float64(position) / microsPerSecond})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.a.Snapshot().Status {
	case mpeg.StatusPlaying:
		return types.PlaybackStatusPlaying, nil
	case mpeg.StatusPaused:
		return types.PlaybackStatusPaused, nil
	case mpeg.StatusStopped, mpeg.StatusError:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.a.Snapshot()
	if s.Path == "" && s.Title == "" {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(s.Path + s.Title)),
		Length:  types.Microseconds(s.Length * microsPerSecond),
		Title:   s.Title,
	}
	if s.Artist != "" {
		meta.Artist = []string{s.Artist}
	}
	if art := FindPoster(s.Path); art != "" {
		meta.ArtUrl = "file://" + art
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.a.Snapshot().Volume, nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	p.a.send(Command{Kind: CmdSetVolume, Level: level})
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return int64(p.a.Snapshot().Position * microsPerSecond), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.a.Snapshot().Status != mpeg.StatusError, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(key string) string {
	h := fnv.New64a()
	h.Write([]byte(key))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
