package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite_InvalidMode(t *testing.T) {
	_, err := OpenSQLite("x.sqlite", "bogus", 0)
	assert.Error(t, err)
}

func TestOpenSQLite_WriteModeAndMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.sqlite")

	conn, err := OpenSQLite(path, "write", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, RunMigrations(conn))

	// Migrations are idempotent.
	require.NoError(t, RunMigrations(conn))

	var n int
	require.NoError(t, conn.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name IN ('datasets','analysis_runs')`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN("meta.sqlite", "write")
	assert.Contains(t, dsn, "_journal_mode=WAL")
	assert.Contains(t, dsn, "_txlock=immediate")

	dsn = buildDSN("meta.sqlite", "read")
	assert.NotContains(t, dsn, "_txlock")
}
