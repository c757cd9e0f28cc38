package database

import (
	"database/sql"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/mgufindo/ffb-swt/internal/storage"
	"github.com/mgufindo/ffb-swt/pkg/types"
)

// StorageKey is the fixed key the serialized database blob lives under.
const StorageKey = "palm_oil_database"

// scratchFile is the working copy of the database inside DataDir. The blob
// in the key-value store is the source of truth; the scratch file is
// recreated from it on every Initialize.
const scratchFile = "fleet.db"

// Manager owns the single database handle and its persistence lifecycle.
// All access is single-writer; the mutex only guards lifecycle transitions.
type Manager struct {
	mu     sync.Mutex
	store  storage.Store
	config types.Config
	db     *sql.DB
}

// NewManager returns a Manager persisting to the given store.
func NewManager(store storage.Store, config types.Config) *Manager {
	return &Manager{store: store, config: config}
}

// Initialize opens the database, restoring it from the stored blob when one
// exists and creating a fresh, schema-initialized, seeded database otherwise.
// Idempotent: an already-open handle is returned as-is. A corrupted blob
// propagates as an error so the caller can decide to Reset.
func (m *Manager) Initialize() (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return m.db, nil
	}

	if err := m.config.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(m.config.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	blob, found, err := m.store.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("reading stored database: %w", err)
	}

	scratch := m.scratchPath()
	_ = os.Remove(scratch)

	if found {
		raw, err := base64.StdEncoding.DecodeString(blob)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrCorruptedBlob, err)
		}
		if err := os.WriteFile(scratch, raw, 0o644); err != nil {
			return nil, fmt.Errorf("writing scratch database: %w", err)
		}
	}

	db, err := sql.Open("sqlite", scratch)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if found {
		// Force a header read; garbage bytes surface here, not on first use.
		var version int
		if err := db.QueryRow("PRAGMA schema_version").Scan(&version); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %v", types.ErrCorruptedBlob, err)
		}
		logrus.WithField("component", "database").Info("database restored from storage")
	} else {
		if err := initSchema(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("initializing schema: %w", err)
		}
		logrus.WithField("component", "database").Info("new database created")
	}

	if err := seedInitialData(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding initial data: %w", err)
	}

	m.db = db
	return db, nil
}

// DB returns the open handle. Callers must Initialize first.
func (m *Manager) DB() (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil, types.ErrNotInitialized
	}
	return m.db, nil
}

// Save serializes the database and overwrites the stored blob. No-op when
// nothing is open.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	if m.db == nil {
		return nil
	}

	// VACUUM INTO produces a consistent point-in-time copy of the open
	// database. The target must not exist.
	snapshot := filepath.Join(m.config.DataDir, fmt.Sprintf(".save-%d.db", time.Now().UnixNano()))
	if _, err := m.db.Exec("VACUUM INTO ?", snapshot); err != nil {
		return fmt.Errorf("snapshotting database: %w", err)
	}
	defer os.Remove(snapshot)

	raw, err := os.ReadFile(snapshot)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	if err := m.store.Set(StorageKey, base64.StdEncoding.EncodeToString(raw)); err != nil {
		return fmt.Errorf("storing database blob: %w", err)
	}
	logrus.WithField("component", "database").Debug("database saved to storage")
	return nil
}

// Reset deletes the stored blob and drops the in-memory handle without
// saving, so the next Initialize starts clean. This is the recovery action
// for a corrupted blob.
func (m *Manager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		if err := m.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		m.db = nil
	}
	_ = os.Remove(m.scratchPath())

	if err := m.store.Delete(StorageKey); err != nil {
		return fmt.Errorf("deleting stored database: %w", err)
	}
	logrus.WithField("component", "database").Info("database deleted from storage")
	return nil
}

// Close saves, then releases the handle. Idempotent.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}
	if err := m.saveLocked(); err != nil {
		return err
	}
	if err := m.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	m.db = nil
	_ = os.Remove(m.scratchPath())
	return nil
}

func (m *Manager) scratchPath() string {
	return filepath.Join(m.config.DataDir, scratchFile)
}
