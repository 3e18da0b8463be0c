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

// exerciseHistoryBackend runs the full history lifecycle against one backend.
func exerciseHistoryBackend(t *testing.T, backend, connStr string) {
	t.Helper()
	dir := t.TempDir()
	env := []string{
		"PRESETTER_HISTORY_BACKEND=" + backend,
		"PRESETTER_HISTORY_DB_CONNECT=" + connStr,
	}

	_, err := runPresetter(t, dir, env, "", "history", "clear")
	require.NoError(t, err)

	out, err := runPresetter(t, dir, env, "", "history", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "version")

	_, err = runPresetter(t, dir, env, "", "evaluate", "metric_a=85", "metric_b=40", "metric_c=30")
	require.NoError(t, err)

	_, err = runPresetter(t, dir, env, "80\n60\n40\n70\n", "survey", "--save=false")
	require.NoError(t, err)

	out, err = runPresetter(t, dir, env, "", "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, backend)

	exportBase := filepath.Join(dir, "presets")
	_, err = runPresetter(t, dir, env, "", "history", "export", "--output-file", exportBase)
	require.NoError(t, err)
	assert.FileExists(t, exportBase+".sessions.parquet")
	assert.FileExists(t, exportBase+".matches.parquet")

	_, err = runPresetter(t, dir, env, "", "history", "clear")
	require.NoError(t, err)
}

// TestPresetterWithMySQL tests the presetter CLI with a MySQL history backend.
func TestPresetterWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "presetter",
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

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/presetter", host, port.Port())
	exerciseHistoryBackend(t, "mysql", connStr)
}

// TestPresetterWithPostgres tests the presetter CLI with a PostgreSQL history backend.
func TestPresetterWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
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

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseHistoryBackend(t, "postgresql", connStr)
}

// TestPresetterWithSQLite runs the same lifecycle against a throwaway SQLite file.
func TestPresetterWithSQLite(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "history.db")
	exerciseHistoryBackend(t, "sqlite", dbFile)
	_, err := os.Stat(dbFile)
	assert.True(t, os.IsNotExist(err), "clear should remove the SQLite file")
}
