package repository

import (
	"context"
	"database/sql"

	"github.com/rudidomingues/censotec/internal/domain"
)

var _ domain.RunRepository = (*RunRepo)(nil)

// RunRepo implements domain.RunRepository using SQLite.
type RunRepo struct {
	db *sql.DB
}

// NewRunRepo creates a new RunRepo.
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// Create persists an analysis run and returns the stored row.
func (r *RunRepo) Create(ctx context.Context, run *domain.AnalysisRun) (*domain.AnalysisRun, error) {
	if run.ID == "" {
		run.ID = domain.NewID()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (id, dataset_name, alpha, t_statistic, degrees_free, p_value, significant, n_with_tech, n_without, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		run.ID, run.DatasetName, run.Alpha, run.TStatistic, run.DegreesFree,
		run.PValue, boolToInt(run.Significant), run.NWithTech, run.NWithout)
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.getByID(ctx, run.ID)
}

// List returns the most recent analysis runs across all datasets.
func (r *RunRepo) List(ctx context.Context, limit int) ([]*domain.AnalysisRun, error) {
	return r.list(ctx, `
		SELECT id, dataset_name, alpha, t_statistic, degrees_free, p_value, significant, n_with_tech, n_without, created_at
		FROM analysis_runs ORDER BY created_at DESC, id DESC LIMIT ?`, normalizeLimit(limit))
}

// ListByDataset returns the most recent runs for one dataset.
func (r *RunRepo) ListByDataset(ctx context.Context, datasetName string, limit int) ([]*domain.AnalysisRun, error) {
	return r.list(ctx, `
		SELECT id, dataset_name, alpha, t_statistic, degrees_free, p_value, significant, n_with_tech, n_without, created_at
		FROM analysis_runs WHERE dataset_name = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		datasetName, normalizeLimit(limit))
}

func (r *RunRepo) getByID(ctx context.Context, id string) (*domain.AnalysisRun, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, dataset_name, alpha, t_statistic, degrees_free, p_value, significant, n_with_tech, n_without, created_at
		FROM analysis_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return run, nil
}

func (r *RunRepo) list(ctx context.Context, query string, args ...any) ([]*domain.AnalysisRun, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*domain.AnalysisRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func scanRun(row rowScanner) (*domain.AnalysisRun, error) {
	var run domain.AnalysisRun
	var significant int64
	err := row.Scan(&run.ID, &run.DatasetName, &run.Alpha, &run.TStatistic,
		&run.DegreesFree, &run.PValue, &significant, &run.NWithTech, &run.NWithout, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	run.Significant = significant != 0
	return &run, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
