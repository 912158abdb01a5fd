package repository

import (
	"context"
	"database/sql"

	"github.com/rudidomingues/censotec/internal/domain"
)

var _ domain.DatasetRepository = (*DatasetRepo)(nil)

// DatasetRepo implements domain.DatasetRepository using SQLite.
type DatasetRepo struct {
	db *sql.DB
}

// NewDatasetRepo creates a new DatasetRepo.
func NewDatasetRepo(db *sql.DB) *DatasetRepo {
	return &DatasetRepo{db: db}
}

// Upsert registers a dataset, replacing any previous registration with the
// same name. The ID is generated when empty.
func (r *DatasetRepo) Upsert(ctx context.Context, d *domain.Dataset) (*domain.Dataset, error) {
	if d.ID == "" {
		d.ID = domain.NewID()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO datasets (id, name, source_path, table_name, rows, with_tech, without_tech, source_mtime, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET
			source_path  = excluded.source_path,
			table_name   = excluded.table_name,
			rows         = excluded.rows,
			with_tech    = excluded.with_tech,
			without_tech = excluded.without_tech,
			source_mtime = excluded.source_mtime,
			ingested_at  = CURRENT_TIMESTAMP`,
		d.ID, d.Name, d.SourcePath, d.TableName, d.Rows, d.WithTech, d.WithoutTech, d.SourceMTime)
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByName(ctx, d.Name)
}

// GetByName returns the dataset registered under name.
func (r *DatasetRepo) GetByName(ctx context.Context, name string) (*domain.Dataset, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, source_path, table_name, rows, with_tech, without_tech, source_mtime, ingested_at
		FROM datasets WHERE name = ?`, name)
	d, err := scanDataset(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return d, nil
}

// List returns all registered datasets, most recently ingested first.
func (r *DatasetRepo) List(ctx context.Context) ([]*domain.Dataset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, source_path, table_name, rows, with_tech, without_tech, source_mtime, ingested_at
		FROM datasets ORDER BY ingested_at DESC, name`)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*domain.Dataset
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Delete removes a dataset registration.
func (r *DatasetRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("dataset %q not found", name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDataset(row rowScanner) (*domain.Dataset, error) {
	var d domain.Dataset
	err := row.Scan(&d.ID, &d.Name, &d.SourcePath, &d.TableName,
		&d.Rows, &d.WithTech, &d.WithoutTech, &d.SourceMTime, &d.IngestedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
