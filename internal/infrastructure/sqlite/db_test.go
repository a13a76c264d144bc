package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesFileAndDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "lattice.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.FileExists(t, path)
}

func TestNewDB_AppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lattice.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var name string
	err = db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'recents'`,
	).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "recents", name)
}

func TestNewDB_IdempotentReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lattice.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening applies no new migrations and succeeds.
	db, err = NewDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestOpenReadOnly_RejectsMissingFile(t *testing.T) {
	_, err := OpenReadOnly(filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
}

func TestOpenReadOnly_RejectsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.db")
	db, err := NewDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ro, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer func() { _ = ro.Close() }()

	_, err = ro.Exec(`CREATE TABLE t (x INTEGER)`)
	require.Error(t, err)
}
