package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "flick"
	dbFileName   = "flick.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]Resume
}

// Open opens the state database under the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the state database at dbPath, creating it if needed.
func OpenPath(dbPath string) (*Manager, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// One connection keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, pending: make(map[string]Resume)}, nil
}

func (m *Manager) Close() error {
	if err := m.Flush(); err != nil {
		m.db.Close()
		return err
	}
	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// SaveResume records a resume position. Writes are debounced; Flush or
// Close persists them immediately.
func (m *Manager) SaveResume(r Resume) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending[r.Path] = r

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		_ = m.Flush()
	})
}

// Flush writes pending resume positions.
func (m *Manager) Flush() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}
	pending := m.pending
	m.pending = make(map[string]Resume)
	m.saveMu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	batch := make([]Resume, 0, len(pending))
	for _, r := range pending {
		batch = append(batch, r)
	}
	return saveResumes(m.db, batch)
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
