package engine

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudidomingues/censotec/internal/domain"
)

func testEngine(t *testing.T) (*Engine, context.Context) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e, err := Open("", logger) // in-memory
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e, context.Background()
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const combinedCSV = `CO_ENTIDADE,TEM_ESTRUTURA_TEC,taxa_aprovacao
11000010,1,0.84
11000020,1,0.91
11000030,0,0.62
11000040,0,0.71
11000050,1,0.88
`

func TestLoadCSV_CombinedFlag(t *testing.T) {
	e, ctx := testEngine(t)

	report, err := e.LoadCSV(ctx, "schools", writeCSV(t, combinedCSV), domain.DefaultColumnMapping())
	require.NoError(t, err)

	assert.Equal(t, int64(5), report.Rows)
	assert.Equal(t, int64(3), report.WithTech)
	assert.Equal(t, int64(2), report.WithoutTech)
}

func TestLoadCSV_ComponentIndicators(t *testing.T) {
	e, ctx := testEngine(t)

	csv := `CO_ENTIDADE,IN_LABORATORIO_INFORMATICA,IN_INTERNET,IN_EQUIP_ALUNO,taxa_aprovacao
1,1,0,0,0.8
2,0,1,0,0.7
3,0,0,1,0.9
4,0,0,0,0.6
`
	report, err := e.LoadCSV(ctx, "schools", writeCSV(t, csv), domain.DefaultColumnMapping())
	require.NoError(t, err)

	// has_tech is the OR of the three component indicators.
	assert.Equal(t, int64(3), report.WithTech)
	assert.Equal(t, int64(1), report.WithoutTech)
}

func TestLoadCSV_PartitionIsExhaustiveAndDisjoint(t *testing.T) {
	e, ctx := testEngine(t)

	_, err := e.LoadCSV(ctx, "schools", writeCSV(t, combinedCSV), domain.DefaultColumnMapping())
	require.NoError(t, err)

	withTech, withoutTech, err := e.GroupValues(ctx, "schools")
	require.NoError(t, err)

	assert.Len(t, withTech, 3)
	assert.Len(t, withoutTech, 2)
	assert.ElementsMatch(t, []float64{0.84, 0.91, 0.88}, withTech)
	assert.ElementsMatch(t, []float64{0.62, 0.71}, withoutTech)
}

func TestLoadCSV_RejectsOutOfRangePassRate(t *testing.T) {
	e, ctx := testEngine(t)

	csv := `CO_ENTIDADE,TEM_ESTRUTURA_TEC,taxa_aprovacao
1,1,0.8
2,0,1.2
`
	_, err := e.LoadCSV(ctx, "schools", writeCSV(t, csv), domain.DefaultColumnMapping())
	require.Error(t, err)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "outside [0,1]")

	// The rejected load must leave no table behind.
	_, _, err = e.GroupValues(ctx, "schools")
	var nferr *domain.NotFoundError
	assert.ErrorAs(t, err, &nferr)
}

func TestLoadCSV_MissingColumn(t *testing.T) {
	e, ctx := testEngine(t)

	csv := `CO_ENTIDADE,TEM_ESTRUTURA_TEC
1,1
`
	_, err := e.LoadCSV(ctx, "schools", writeCSV(t, csv), domain.DefaultColumnMapping())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "taxa_aprovacao")
}

func TestLoadCSV_MissingFile(t *testing.T) {
	e, ctx := testEngine(t)

	_, err := e.LoadCSV(ctx, "schools", filepath.Join(t.TempDir(), "missing.csv"), domain.DefaultColumnMapping())
	var nferr *domain.NotFoundError
	assert.ErrorAs(t, err, &nferr)
}

func TestRecords(t *testing.T) {
	e, ctx := testEngine(t)

	_, err := e.LoadCSV(ctx, "schools", writeCSV(t, combinedCSV), domain.DefaultColumnMapping())
	require.NoError(t, err)

	records, err := e.Records(ctx, "schools", 0)
	require.NoError(t, err)
	require.Len(t, records, 5)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.PassRate, 0.0)
		assert.LessOrEqual(t, r.PassRate, 1.0)
		assert.NotEmpty(t, r.SchoolID)
	}

	limited, err := e.Records(ctx, "schools", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDropTable_MissingIsNotAnError(t *testing.T) {
	e, ctx := testEngine(t)
	assert.NoError(t, e.DropTable(ctx, "never_created"))
}
