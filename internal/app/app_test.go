package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudidomingues/censotec/internal/config"
	"github.com/rudidomingues/censotec/internal/domain"
	"github.com/rudidomingues/censotec/internal/engine"
)

func TestNew_WiresServices(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{MetaDBPath: filepath.Join(t.TempDir(), "meta.sqlite")}

	writeDB, readDB, err := OpenMetastore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = writeDB.Close()
		_ = readDB.Close()
	})

	eng, err := engine.Open("", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })

	a, err := New(Deps{Cfg: cfg, Engine: eng, WriteDB: writeDB, ReadDB: readDB, Logger: logger})
	require.NoError(t, err)
	require.NotNil(t, a.Services.Ingestion)
	require.NotNil(t, a.Services.Analysis)
	require.NotNil(t, a.Services.Charts)

	// End to end through the wired services: ingest, then analyze.
	csvPath := filepath.Join(t.TempDir(), "censo.csv")
	csv := "CO_ENTIDADE,TEM_ESTRUTURA_TEC,taxa_aprovacao\n" +
		"1,1,0.9\n2,1,0.8\n3,0,0.6\n4,0,0.5\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0o600))

	ctx := context.Background()
	_, err = a.Services.Ingestion.Ingest(ctx, "censo", csvPath, domain.DefaultColumnMapping())
	require.NoError(t, err)

	res, err := a.Services.Analysis.TTest(ctx, "censo", 0.05)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NWithTech)

	runs, err := a.Runs.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestOpenMetastore_BadPath(t *testing.T) {
	cfg := &config.Config{MetaDBPath: filepath.Join(t.TempDir(), "missing-dir", "sub", "meta.sqlite")}
	_, _, err := OpenMetastore(cfg)
	assert.Error(t, err)
}
