package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/huangsam/lineup/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexExists(t *testing.T, path, name string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?", name).Scan(&count)
	require.NoError(t, err)
	return count > 0
}

func TestMigrateHistorySQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	result, err := MigrateHistory(schema.SQLiteBackend, path, -1)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, uint(0), result.FromVersion)
	assert.Equal(t, uint(2), result.ToVersion)
	assert.True(t, indexExists(t, path, "idx_lineup_runs_run_uuid"))

	result, err = MigrateHistory(schema.SQLiteBackend, path, -1)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, uint(2), result.ToVersion)

	result, err = MigrateHistory(schema.SQLiteBackend, path, 1)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, uint(2), result.FromVersion)
	assert.Equal(t, uint(1), result.ToVersion)
	assert.False(t, indexExists(t, path, "idx_lineup_runs_run_uuid"))

	_, err = MigrateHistory(schema.SQLiteBackend, path, 0)
	require.NoError(t, err)
}

func TestMigratedSchemaServesStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	_, err := MigrateHistory(schema.SQLiteBackend, path, -1)
	require.NoError(t, err)

	store, err := NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalRuns)
}

func TestMigrateHistoryUnsupported(t *testing.T) {
	_, err := MigrateHistory(schema.NoneBackend, "", -1)
	assert.Error(t, err)

	_, err = MigrateHistory(schema.MySQLBackend, "not a dsn", -1)
	assert.Error(t, err)
}
