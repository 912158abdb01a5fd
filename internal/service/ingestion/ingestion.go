// Package ingestion implements dataset ingestion: fetching CSV sources,
// loading them into the analysis engine, and registering them in the
// metastore.
package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/rudidomingues/censotec/internal/domain"
	"github.com/rudidomingues/censotec/internal/engine"
)

var datasetNameRE = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// Service loads CSV datasets into DuckDB and keeps their registrations in
// the metastore. S3 sources are supported when a fetcher is configured.
type Service struct {
	engine   *engine.Engine
	datasets domain.DatasetRepository
	fetcher  *S3Fetcher // nil when S3 is not configured
	logger   *slog.Logger
}

// NewService creates an ingestion Service. fetcher may be nil.
func NewService(eng *engine.Engine, datasets domain.DatasetRepository, fetcher *S3Fetcher, logger *slog.Logger) *Service {
	return &Service{
		engine:   eng,
		datasets: datasets,
		fetcher:  fetcher,
		logger:   logger.With("component", "ingestion"),
	}
}

// Ingest loads the CSV at source into the engine under the given dataset
// name and registers (or re-registers) it in the metastore. source may be a
// local path or an s3:// URI.
func (s *Service) Ingest(ctx context.Context, name, source string, mapping domain.ColumnMapping) (*domain.Dataset, error) {
	if !datasetNameRE.MatchString(name) {
		return nil, domain.ErrValidation("invalid dataset name %q: use lowercase letters, digits, and underscores", name)
	}

	localPath := source
	if strings.HasPrefix(source, "s3://") {
		if s.fetcher == nil {
			return nil, domain.ErrValidation("s3:// source requires S3 configuration (CENSOTEC_S3_* env vars)")
		}
		tmpDir, err := os.MkdirTemp("", "censotec-fetch-*")
		if err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
		defer os.RemoveAll(tmpDir) //nolint:errcheck
		localPath, err = s.fetcher.Fetch(ctx, source, tmpDir)
		if err != nil {
			return nil, err
		}
	}

	info, err := os.Stat(localPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound("dataset file %q not found", localPath)
		}
		return nil, fmt.Errorf("stat %s: %w", localPath, err)
	}

	table := tableName(name)
	report, err := s.engine.LoadCSV(ctx, table, localPath, mapping)
	if err != nil {
		return nil, err
	}

	ds, err := s.datasets.Upsert(ctx, &domain.Dataset{
		Name:        name,
		SourcePath:  source,
		TableName:   table,
		Rows:        report.Rows,
		WithTech:    report.WithTech,
		WithoutTech: report.WithoutTech,
		SourceMTime: info.ModTime().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("dataset registered", "dataset", name, "source", source, "rows", ds.Rows)
	return ds, nil
}

// Get returns a registered dataset by name.
func (s *Service) Get(ctx context.Context, name string) (*domain.Dataset, error) {
	return s.datasets.GetByName(ctx, name)
}

// List returns all registered datasets.
func (s *Service) List(ctx context.Context) ([]*domain.Dataset, error) {
	return s.datasets.List(ctx)
}

// Delete removes a dataset registration and drops its engine table.
func (s *Service) Delete(ctx context.Context, name string) error {
	ds, err := s.datasets.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.engine.DropTable(ctx, ds.TableName); err != nil {
		return err
	}
	return s.datasets.Delete(ctx, name)
}

// Rescan re-ingests every registered local dataset whose source file changed
// since it was loaded. Returns the number of datasets refreshed. s3://
// sources are skipped; object storage has no cheap mtime probe here.
func (s *Service) Rescan(ctx context.Context) (int, error) {
	all, err := s.datasets.List(ctx)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, ds := range all {
		if strings.HasPrefix(ds.SourcePath, "s3://") {
			continue
		}
		info, err := os.Stat(ds.SourcePath)
		if err != nil {
			s.logger.Warn("rescan: source missing", "dataset", ds.Name, "source", ds.SourcePath)
			continue
		}
		if !info.ModTime().UTC().After(ds.SourceMTime) {
			continue
		}
		if _, err := s.Ingest(ctx, ds.Name, ds.SourcePath, domain.DefaultColumnMapping()); err != nil {
			s.logger.Error("rescan: re-ingest failed", "dataset", ds.Name, "error", err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

// Restore re-loads registered datasets whose engine table is missing, which
// happens when the engine runs in memory and the process restarted. s3://
// sources are not restored automatically.
func (s *Service) Restore(ctx context.Context) error {
	all, err := s.datasets.List(ctx)
	if err != nil {
		return err
	}

	for _, ds := range all {
		exists, err := s.engine.TableExists(ctx, ds.TableName)
		if err != nil {
			return err
		}
		if exists || strings.HasPrefix(ds.SourcePath, "s3://") {
			continue
		}
		if _, err := s.engine.LoadCSV(ctx, ds.TableName, ds.SourcePath, domain.DefaultColumnMapping()); err != nil {
			s.logger.Warn("restore: reload failed", "dataset", ds.Name, "source", ds.SourcePath, "error", err)
			continue
		}
		s.logger.Info("dataset table restored", "dataset", ds.Name)
	}
	return nil
}

// tableName derives the engine table name for a dataset.
func tableName(dataset string) string {
	return "ds_" + dataset
}
