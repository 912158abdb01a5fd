package domain

import "context"

// DatasetRepository persists registered datasets in the metastore.
type DatasetRepository interface {
	Upsert(ctx context.Context, d *Dataset) (*Dataset, error)
	GetByName(ctx context.Context, name string) (*Dataset, error)
	List(ctx context.Context) ([]*Dataset, error)
	Delete(ctx context.Context, name string) error
}

// RunRepository persists analysis-run history.
type RunRepository interface {
	Create(ctx context.Context, r *AnalysisRun) (*AnalysisRun, error)
	List(ctx context.Context, limit int) ([]*AnalysisRun, error)
	ListByDataset(ctx context.Context, datasetName string, limit int) ([]*AnalysisRun, error)
}
