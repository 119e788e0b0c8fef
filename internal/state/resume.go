package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/flick/internal/db"
)

// Positions this close to either end are not worth resuming.
const (
	minResume  = 1.0
	endMargin  = 2.0
	maxHistory = 100
)

// Resume is a saved playback position for one file.
type Resume struct {
	Path      string
	Title     string
	Position  float64 // seconds
	Length    float64 // seconds, 0 if unknown
	UpdatedAt time.Time
}

// Worthwhile reports whether playback should restart from r.Position.
func (r Resume) Worthwhile() bool {
	if r.Position < minResume {
		return false
	}
	return r.Length <= 0 || r.Position < r.Length-endMargin
}

// GetResume returns the saved position for path, or nil if none.
func (m *Manager) GetResume(path string) (*Resume, error) {
	return getResume(m.db, path)
}

// RecentResumes returns up to limit entries, most recent first.
func (m *Manager) RecentResumes(limit int) ([]Resume, error) {
	rows, err := m.db.Query(`
		SELECT path, title, position, length, updated_at
		FROM resume_positions
		ORDER BY updated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// ClearResume forgets path immediately, including any pending save.
func (m *Manager) ClearResume(path string) error {
	m.saveMu.Lock()
	delete(m.pending, path)
	m.saveMu.Unlock()

	_, err := m.db.Exec(`DELETE FROM resume_positions WHERE path = ?`, path)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResume(s scanner) (*Resume, error) {
	var r Resume
	var title sql.NullString
	var updated int64
	if err := s.Scan(&r.Path, &title, &r.Position, &r.Length, &updated); err != nil {
		return nil, err
	}
	r.Title = db.NullStringValue(title)
	r.UpdatedAt = time.Unix(updated, 0)
	return &r, nil
}

func getResume(conn *sql.DB, path string) (*Resume, error) {
	row := conn.QueryRow(`
		SELECT path, title, position, length, updated_at
		FROM resume_positions
		WHERE path = ?
	`, path)
	r, err := scanResume(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved position
	}
	return r, err
}

// saveResumes upserts worthwhile positions, deletes finished ones and trims
// the history.
func saveResumes(conn *sql.DB, batch []Resume) error {
	return db.WithTx(conn, func(tx *sql.Tx) error {
		for _, r := range batch {
			if !r.Worthwhile() {
				if _, err := tx.Exec(`DELETE FROM resume_positions WHERE path = ?`, r.Path); err != nil {
					return err
				}
				continue
			}

			updated := r.UpdatedAt
			if updated.IsZero() {
				updated = time.Now()
			}
			_, err := tx.Exec(`
				INSERT INTO resume_positions (path, title, position, length, updated_at)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(path) DO UPDATE SET
					title = excluded.title,
					position = excluded.position,
					length = excluded.length,
					updated_at = excluded.updated_at
			`, r.Path, db.NullString(r.Title), r.Position, r.Length, updated.Unix())
			if err != nil {
				return err
			}
		}

		_, err := tx.Exec(`
			DELETE FROM resume_positions
			WHERE path NOT IN (
				SELECT path FROM resume_positions ORDER BY updated_at DESC LIMIT ?
			)
		`, maxHistory)
		return err
	})
}
