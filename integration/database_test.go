//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setBackendEnv points the cache and the run history at one database.
func setBackendEnv(t *testing.T, backend, connStr string) {
	t.Setenv("LINEUP_CACHE_BACKEND", backend)
	t.Setenv("LINEUP_CACHE_DB_CONNECT", connStr)
	t.Setenv("LINEUP_HISTORY_BACKEND", backend)
	t.Setenv("LINEUP_HISTORY_DB_CONNECT", connStr)
}

// exerciseBackend runs the store-facing commands against the configured backend.
func exerciseBackend(t *testing.T) {
	_, err := runLineupCommand(t, "cache", "clear")
	require.NoError(t, err)

	_, err = runLineupCommand(t, "history", "clear")
	require.NoError(t, err)

	_, err = runLineupCommand(t, "history", "migrate")
	require.NoError(t, err)

	_, err = runLineupCommand(t, "optimize", "testdata/squad.csv", "--limit", "5")
	require.NoError(t, err)

	out, err := runLineupCommand(t, "solve", "testdata/matrix.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "cached: false")

	out, err = runLineupCommand(t, "solve", "testdata/matrix.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "cached: true")

	out, err = runLineupCommand(t, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected: true")

	out, err = runLineupCommand(t, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 3")

	exportBase := filepath.Join(t.TempDir(), "history")
	_, err = runLineupCommand(t, "history", "export", "--output-file", exportBase)
	require.NoError(t, err)
	_, err = os.Stat(exportBase + ".lineup_runs.parquet")
	assert.NoError(t, err)
	_, err = os.Stat(exportBase + ".lineup_assignments.parquet")
	assert.NoError(t, err)
}

// TestLineupWithMySQL tests the lineup CLI with a MySQL backend.
func TestLineupWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "lineup",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	setBackendEnv(t, "mysql", fmt.Sprintf("root:secret123@tcp(%s:%s)/lineup?parseTime=true", host, port.Port()))
	exerciseBackend(t)
}

// TestLineupWithPostgres tests the lineup CLI with a PostgreSQL backend.
func TestLineupWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	setBackendEnv(t, "postgresql", fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port()))
	exerciseBackend(t)
}
