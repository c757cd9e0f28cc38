package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgufindo/ffb-swt/internal/storage"
	"github.com/mgufindo/ffb-swt/pkg/types"
)

// newTestManager returns a Manager over a fresh file store and data dir.
func newTestManager(t *testing.T) (*Manager, storage.Store) {
	t.Helper()

	dir := t.TempDir()
	store := storage.NewFileStore(filepath.Join(dir, "store.json"))
	m := NewManager(store, types.Config{DataDir: filepath.Join(dir, "data")})
	t.Cleanup(func() { m.Close() })
	return m, store
}

func TestManagerInitializeFresh(t *testing.T) {
	m, _ := newTestManager(t)

	db, err := m.Initialize()
	require.NoError(t, err)

	var tables int
	err = db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'").Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 7, tables)

	var users int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&users))
	assert.Equal(t, 3, users)
}

func TestManagerInitializeIdempotent(t *testing.T) {
	m, _ := newTestManager(t)

	first, err := m.Initialize()
	require.NoError(t, err)
	second, err := m.Initialize()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestManagerDBRequiresInitialize(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.DB()
	assert.ErrorIs(t, err, types.ErrNotInitialized)
}

func TestManagerSaveRoundTrip(t *testing.T) {
	m, store := newTestManager(t)

	db, err := m.Initialize()
	require.NoError(t, err)

	userID := mustUser(t, db, "roundtrip@mill.com", types.RoleClient, "x")
	mustDriver(t, db, "Persisted Driver", userID)
	require.NoError(t, m.Close())

	_, found, err := store.Get(StorageKey)
	require.NoError(t, err)
	require.True(t, found, "close should persist a blob")

	// A new manager over the same store must see the saved data.
	m2 := NewManager(store, m.config)
	t.Cleanup(func() { m2.Close() })
	db2, err := m2.Initialize()
	require.NoError(t, err)

	var name string
	err = db2.QueryRow("SELECT name FROM drivers WHERE name = ?", "Persisted Driver").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "Persisted Driver", name)
}

func TestManagerSaveWithoutHandleIsNoop(t *testing.T) {
	m, store := newTestManager(t)

	require.NoError(t, m.Save())

	_, found, err := store.Get(StorageKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestManagerCorruptedBlob(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "not base64", blob: "%%% not base64 %%%"},
		{name: "base64 of garbage", blob: "Z2FyYmFnZSBieXRlcywgbm90IGEgZGF0YWJhc2U="},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, store := newTestManager(t)
			require.NoError(t, store.Set(StorageKey, tc.blob))

			_, err := m.Initialize()
			assert.ErrorIs(t, err, types.ErrCorruptedBlob)
		})
	}
}

func TestManagerResetThenInitialize(t *testing.T) {
	m, store := newTestManager(t)

	db, err := m.Initialize()
	require.NoError(t, err)
	mustUser(t, db, "extra@mill.com", types.RoleClient, "x")
	require.NoError(t, m.Close())

	require.NoError(t, m.Reset())
	_, found, err := store.Get(StorageKey)
	require.NoError(t, err)
	assert.False(t, found, "reset should delete the blob")

	db2, err := m.Initialize()
	require.NoError(t, err)

	var users int
	require.NoError(t, db2.QueryRow("SELECT COUNT(*) FROM users").Scan(&users))
	assert.Equal(t, 3, users, "fresh environment should hold only seed accounts")
}

func TestManagerCloseIdempotent(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Initialize()
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestManagerRequiresDataDir(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	m := NewManager(store, types.Config{})

	_, err := m.Initialize()
	assert.ErrorIs(t, err, types.ErrDataDirEmpty)
}
