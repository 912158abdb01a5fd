package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudidomingues/censotec/internal/db"
	"github.com/rudidomingues/censotec/internal/domain"
)

func setupDB(t *testing.T) (*sql.DB, context.Context) {
	t.Helper()

	conn, err := db.OpenSQLite(t.TempDir()+"/meta.sqlite", "write", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.RunMigrations(conn))
	return conn, context.Background()
}

func sampleDataset(name string) *domain.Dataset {
	return &domain.Dataset{
		Name:        name,
		SourcePath:  "/data/" + name + ".csv",
		TableName:   "ds_" + name,
		Rows:        100,
		WithTech:    60,
		WithoutTech: 40,
		SourceMTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDatasetRepo_UpsertAndGet(t *testing.T) {
	conn, ctx := setupDB(t)
	repo := NewDatasetRepo(conn)

	created, err := repo.Upsert(ctx, sampleDataset("censo2025"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(60), created.WithTech)
	assert.False(t, created.IngestedAt.IsZero())

	got, err := repo.GetByName(ctx, "censo2025")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "/data/censo2025.csv", got.SourcePath)
}

func TestDatasetRepo_UpsertReplacesByName(t *testing.T) {
	conn, ctx := setupDB(t)
	repo := NewDatasetRepo(conn)

	first, err := repo.Upsert(ctx, sampleDataset("censo2025"))
	require.NoError(t, err)

	updated := sampleDataset("censo2025")
	updated.Rows = 200
	second, err := repo.Upsert(ctx, updated)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "upsert keeps the original row")
	assert.Equal(t, int64(200), second.Rows)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDatasetRepo_GetMissing(t *testing.T) {
	conn, ctx := setupDB(t)
	repo := NewDatasetRepo(conn)

	_, err := repo.GetByName(ctx, "nope")
	var nferr *domain.NotFoundError
	assert.ErrorAs(t, err, &nferr)
}

func TestDatasetRepo_Delete(t *testing.T) {
	conn, ctx := setupDB(t)
	repo := NewDatasetRepo(conn)

	_, err := repo.Upsert(ctx, sampleDataset("censo2025"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "censo2025"))

	var nferr *domain.NotFoundError
	assert.ErrorAs(t, repo.Delete(ctx, "censo2025"), &nferr)
}

func sampleRun(dataset string, p float64) *domain.AnalysisRun {
	return &domain.AnalysisRun{
		DatasetName: dataset,
		Alpha:       0.05,
		TStatistic:  4.0,
		DegreesFree: 8,
		PValue:      p,
		Significant: p < 0.05,
		NWithTech:   60,
		NWithout:    40,
	}
}

func TestRunRepo_CreateAndList(t *testing.T) {
	conn, ctx := setupDB(t)
	repo := NewRunRepo(conn)

	created, err := repo.Create(ctx, sampleRun("censo2025", 0.004))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Significant)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, sampleRun("censo2025", 0.2))
	require.NoError(t, err)
	_, err = repo.Create(ctx, sampleRun("other", 0.01))
	require.NoError(t, err)

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byDataset, err := repo.ListByDataset(ctx, "censo2025", 0)
	require.NoError(t, err)
	require.Len(t, byDataset, 2)
	// Newest first (UUIDv7 ids are time-ordered within the same second).
	assert.InDelta(t, 0.2, byDataset[0].PValue, 1e-12)
	assert.False(t, byDataset[0].Significant)
}

func TestRunRepo_ListLimit(t *testing.T) {
	conn, ctx := setupDB(t)
	repo := NewRunRepo(conn)

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, sampleRun("censo2025", 0.01))
		require.NoError(t, err)
	}

	limited, err := repo.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}
