package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesKVTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='kv_entries'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv_entries", name)

	_, err = db.Exec(`INSERT INTO kv_entries (key, value, updated_at) VALUES ('k', 'v', 'now')`)
	require.NoError(t, err)
}

func TestOpenDB_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "milestones.db")
	db, err := OpenDB(path)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO kv_entries (key, value) VALUES ('projects', '{}')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := OpenDB(path)
	require.NoError(t, err)
	defer reopened.Close()

	var value string
	require.NoError(t, reopened.QueryRow(`SELECT value FROM kv_entries WHERE key = 'projects'`).Scan(&value))
	assert.Equal(t, "{}", value)
}
