// Package analysis implements the statistical pipeline of the study:
// per-group descriptive statistics and the Welch t-test, with run history
// recorded in the metastore.
package analysis

import (
	"context"
	"log/slog"

	"github.com/rudidomingues/censotec/internal/domain"
	"github.com/rudidomingues/censotec/internal/engine"
	"github.com/rudidomingues/censotec/internal/stats"
)

// Service runs descriptive statistics and hypothesis tests over ingested
// datasets.
type Service struct {
	engine   *engine.Engine
	datasets domain.DatasetRepository
	runs     domain.RunRepository
	logger   *slog.Logger
}

// NewService creates an analysis Service.
func NewService(eng *engine.Engine, datasets domain.DatasetRepository, runs domain.RunRepository, logger *slog.Logger) *Service {
	return &Service{
		engine:   eng,
		datasets: datasets,
		runs:     runs,
		logger:   logger.With("component", "analysis"),
	}
}

// GroupValues returns the pass rates of both infrastructure groups for a
// registered dataset.
func (s *Service) GroupValues(ctx context.Context, datasetName string) (withTech, withoutTech []float64, err error) {
	ds, err := s.datasets.GetByName(ctx, datasetName)
	if err != nil {
		return nil, nil, err
	}
	return s.engine.GroupValues(ctx, ds.TableName)
}

// Summary computes per-group descriptive statistics for a dataset. Groups
// with no observations are omitted rather than reported as zeros.
func (s *Service) Summary(ctx context.Context, datasetName string) (*domain.DatasetSummary, error) {
	ds, err := s.datasets.GetByName(ctx, datasetName)
	if err != nil {
		return nil, err
	}

	withTech, withoutTech, err := s.engine.GroupValues(ctx, ds.TableName)
	if err != nil {
		return nil, err
	}

	summary := &domain.DatasetSummary{Dataset: ds}
	for _, g := range []struct {
		name   string
		values []float64
	}{
		{domain.GroupWithTech, withTech},
		{domain.GroupWithoutTech, withoutTech},
	} {
		if len(g.values) == 0 {
			continue
		}
		gs, err := stats.Describe(g.name, g.values)
		if err != nil {
			return nil, err
		}
		summary.Groups = append(summary.Groups, gs)
	}
	return summary, nil
}

// TTest runs the Welch t-test comparing mean pass rates between the two
// infrastructure groups and records the run in the metastore.
func (s *Service) TTest(ctx context.Context, datasetName string, alpha float64) (*domain.TTestResult, error) {
	ds, err := s.datasets.GetByName(ctx, datasetName)
	if err != nil {
		return nil, err
	}

	withTech, withoutTech, err := s.engine.GroupValues(ctx, ds.TableName)
	if err != nil {
		return nil, err
	}

	result, err := stats.WelchTTest(withTech, withoutTech, alpha)
	if err != nil {
		return nil, err
	}

	if _, err := s.runs.Create(ctx, &domain.AnalysisRun{
		DatasetName: datasetName,
		Alpha:       result.Alpha,
		TStatistic:  result.TStatistic,
		DegreesFree: result.DegreesFree,
		PValue:      result.PValue,
		Significant: result.Significant,
		NWithTech:   int64(result.NWithTech),
		NWithout:    int64(result.NWithout),
	}); err != nil {
		return nil, err
	}

	s.logger.Info("t-test recorded",
		"dataset", datasetName,
		"t", result.TStatistic,
		"p", result.PValue,
		"significant", result.Significant)
	return result, nil
}

// Runs lists recorded analysis runs, optionally filtered to one dataset.
func (s *Service) Runs(ctx context.Context, datasetName string, limit int) ([]*domain.AnalysisRun, error) {
	if datasetName != "" {
		return s.runs.ListByDataset(ctx, datasetName, limit)
	}
	return s.runs.List(ctx, limit)
}
