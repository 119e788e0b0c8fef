package state

import (
	"database/sql"
	"errors"
)

// VolumeState represents the saved volume state.
type VolumeState struct {
	Volume float64
	Muted  bool
}

// GetVolume returns the saved volume state, or nil if none was saved.
func (m *Manager) GetVolume() (*VolumeState, error) {
	var volume float64
	var muted bool

	row := m.db.QueryRow(`SELECT volume, muted FROM player_state WHERE id = 1`)
	err := row.Scan(&volume, &muted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nothing saved yet
	}
	if err != nil {
		return nil, err
	}

	return &VolumeState{Volume: volume, Muted: muted}, nil
}

// SaveVolume persists the volume level to the database.
func (m *Manager) SaveVolume(volume float64, muted bool) error {
	_, err := m.db.Exec(`
		INSERT INTO player_state (id, volume, muted)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			muted = excluded.muted
	`, volume, muted)
	return err
}
