package synth

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudidomingues/censotec/internal/domain"
	"github.com/rudidomingues/censotec/internal/engine"
)

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synth.csv")
	require.NoError(t, Generate(path, Options{N: 200, Seed: 7}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 201)
	assert.Equal(t, "CO_ENTIDADE,IN_LABORATORIO_INFORMATICA,IN_INTERNET,IN_EQUIP_ALUNO,TEM_ESTRUTURA_TEC,taxa_aprovacao", lines[0])

	withTech := 0
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		require.Len(t, fields, 6)

		rate, err := strconv.ParseFloat(fields[5], 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rate, 0.0)
		assert.LessOrEqual(t, rate, 1.0)

		if fields[4] == "1" {
			withTech++
			// With-tech schools carry at least one component indicator.
			assert.True(t, fields[1] == "1" || fields[2] == "1" || fields[3] == "1", line)
		} else {
			assert.Equal(t, []string{"0", "0", "0"}, fields[1:4], line)
		}
	}
	assert.Equal(t, 110, withTech) // 200 * 0.55
}

func TestGenerate_Reproducible(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")

	require.NoError(t, Generate(a, Options{N: 50, Seed: 42}))
	require.NoError(t, Generate(b, Options{N: 50, Seed: 42}))

	da, err := os.ReadFile(a)
	require.NoError(t, err)
	db, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestGenerate_Validation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synth.csv")

	var verr *domain.ValidationError
	assert.ErrorAs(t, Generate(path, Options{N: 3}), &verr)
	assert.ErrorAs(t, Generate(path, Options{WithTechShare: 1.5}), &verr)
}

func TestGenerate_Ingestable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng, err := engine.Open("", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })

	path := filepath.Join(t.TempDir(), "synth.csv")
	require.NoError(t, Generate(path, Options{N: 100}))

	report, err := eng.LoadCSV(context.Background(), "ds_synth", path, domain.DefaultColumnMapping())
	require.NoError(t, err)
	assert.Equal(t, int64(100), report.Rows)
	assert.Equal(t, int64(55), report.WithTech)
	assert.Equal(t, int64(45), report.WithoutTech)
}
