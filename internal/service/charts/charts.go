// Package charts renders the study's SVG visualizations: pass-rate charts
// per dataset and reference histograms of the standard distributions.
package charts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rudidomingues/censotec/internal/chart"
	"github.com/rudidomingues/censotec/internal/domain"
	"github.com/rudidomingues/censotec/internal/sampler"
	"github.com/rudidomingues/censotec/internal/service/analysis"
	"github.com/rudidomingues/censotec/internal/stats"
)

// Chart kinds for a dataset.
const (
	KindHistogram = "histogram"
	KindBoxplot   = "boxplot"
	KindMeans     = "means"
)

// Group histogram bin count, matching the study's group charts.
const groupHistBins = 15

// Service renders SVG charts from ingested datasets and sampled
// distributions.
type Service struct {
	analysis *analysis.Service
	logger   *slog.Logger
}

// NewService creates a charts Service.
func NewService(analysisSvc *analysis.Service, logger *slog.Logger) *Service {
	return &Service{analysis: analysisSvc, logger: logger.With("component", "charts")}
}

// Render writes one dataset chart of the given kind to w.
func (s *Service) Render(ctx context.Context, datasetName, kind string, w io.Writer) error {
	withTech, withoutTech, err := s.analysis.GroupValues(ctx, datasetName)
	if err != nil {
		return err
	}

	switch kind {
	case KindHistogram:
		return renderGroupHistogram(w, withTech, withoutTech)
	case KindBoxplot:
		return renderGroupBoxplot(w, withTech, withoutTech)
	case KindMeans:
		return renderGroupMeans(w, withTech, withoutTech)
	default:
		return domain.ErrValidation("unknown chart kind %q (want %s, %s, or %s)",
			kind, KindHistogram, KindBoxplot, KindMeans)
	}
}

// WriteDataset renders all three dataset charts into dir concurrently and
// returns the written file paths, sorted.
func (s *Service) WriteDataset(ctx context.Context, datasetName, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	kinds := []string{KindHistogram, KindBoxplot, KindMeans}
	paths := make([]string, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			path := filepath.Join(dir, fmt.Sprintf("%s_%s.svg", datasetName, kind))
			if err := s.writeFile(gctx, path, func(w io.Writer) error {
				return s.Render(gctx, datasetName, kind, w)
			}); err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(paths)
	s.logger.Info("dataset charts written", "dataset", datasetName, "dir", dir)
	return paths, nil
}

// WriteReference renders the reference distribution histograms into dir
// concurrently and returns the written file paths, sorted.
func (s *Service) WriteReference(_ context.Context, dir string, seed uint64) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	samples, err := sampler.Reference(seed)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(samples))
	var g errgroup.Group
	for i, rs := range samples {
		g.Go(func() error {
			var h chart.Histogram
			var err error
			if rs.Discrete {
				h, err = chart.BuildDiscreteHistogram(rs.Values)
			} else {
				h, err = chart.BuildHistogram(rs.Values, rs.Bins)
			}
			if err != nil {
				return err
			}

			path := filepath.Join(dir, fmt.Sprintf("reference_%s.svg", rs.Name))
			if err := s.writeFile(context.Background(), path, func(w io.Writer) error {
				return chart.RenderHistogram(w, rs.Title, []chart.HistSeries{
					{Name: rs.Title, Hist: h, Color: chart.Color(i)},
				})
			}); err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(paths)
	s.logger.Info("reference charts written", "dir", dir, "count", len(paths))
	return paths, nil
}

func (s *Service) writeFile(_ context.Context, path string, render func(io.Writer) error) error {
	f, err := os.Create(path) //nolint:gosec // path is derived from caller-controlled dir
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func renderGroupHistogram(w io.Writer, withTech, withoutTech []float64) error {
	series := make([]chart.HistSeries, 0, 2)
	if len(withTech) > 0 {
		h, err := chart.BuildHistogram(withTech, groupHistBins)
		if err != nil {
			return err
		}
		series = append(series, chart.HistSeries{Name: "With tech", Hist: h, Color: chart.Color(0)})
	}
	if len(withoutTech) > 0 {
		h, err := chart.BuildHistogram(withoutTech, groupHistBins)
		if err != nil {
			return err
		}
		series = append(series, chart.HistSeries{Name: "Without tech", Hist: h, Color: chart.Color(1)})
	}
	return chart.RenderHistogram(w, "Pass rate by infrastructure group", series)
}

func renderGroupBoxplot(w io.Writer, withTech, withoutTech []float64) error {
	entries := make([]chart.BoxplotEntry, 0, 2)
	if len(withoutTech) > 0 {
		b, err := chart.BuildBoxplot(withoutTech)
		if err != nil {
			return err
		}
		entries = append(entries, chart.BoxplotEntry{Label: "Without tech", Box: b, Color: chart.Color(1)})
	}
	if len(withTech) > 0 {
		b, err := chart.BuildBoxplot(withTech)
		if err != nil {
			return err
		}
		entries = append(entries, chart.BoxplotEntry{Label: "With tech", Box: b, Color: chart.Color(0)})
	}
	return chart.RenderBoxplot(w, "Pass rate boxplot", entries)
}

func renderGroupMeans(w io.Writer, withTech, withoutTech []float64) error {
	bars := make([]chart.Bar, 0, 2)
	if len(withTech) > 0 {
		gs, err := stats.Describe(domain.GroupWithTech, withTech)
		if err != nil {
			return err
		}
		bars = append(bars, chart.Bar{Label: "With tech", Value: gs.Mean})
	}
	if len(withoutTech) > 0 {
		gs, err := stats.Describe(domain.GroupWithoutTech, withoutTech)
		if err != nil {
			return err
		}
		bars = append(bars, chart.Bar{Label: "Without tech", Value: gs.Mean})
	}
	return chart.RenderBars(w, "Mean pass rate by group", bars)
}
