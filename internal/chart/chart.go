// Package chart builds histogram, boxplot, and bar chart models from sample
// data and renders them as standalone SVG documents.
package chart

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/rudidomingues/censotec/internal/domain"
)

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Color returns the palette color for series index i.
func Color(i int) string {
	return defaultColors[i%len(defaultColors)]
}

// Bin is one histogram bucket over [Lo, Hi).
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Histogram is a binned view of one sample.
type Histogram struct {
	Bins     []Bin
	MaxCount int
}

// BuildHistogram bins values into binCount equal-width buckets spanning the
// data range. The maximum value lands in the last bin.
func BuildHistogram(values []float64, binCount int) (Histogram, error) {
	if len(values) == 0 {
		return Histogram{}, domain.ErrValidation("histogram needs at least one value")
	}
	if binCount < 1 {
		return Histogram{}, domain.ErrValidation("histogram bin count must be positive, got %d", binCount)
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		// Degenerate range: one bin holding everything.
		return Histogram{
			Bins:     []Bin{{Lo: lo, Hi: hi, Count: len(values)}},
			MaxCount: len(values),
		}, nil
	}

	width := (hi - lo) / float64(binCount)
	bins := make([]Bin, binCount)
	for i := range bins {
		bins[i] = Bin{Lo: lo + float64(i)*width, Hi: lo + float64(i+1)*width}
	}

	maxCount := 0
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= binCount {
			idx = binCount - 1
		}
		bins[idx].Count++
		if bins[idx].Count > maxCount {
			maxCount = bins[idx].Count
		}
	}

	return Histogram{Bins: bins, MaxCount: maxCount}, nil
}

// BuildDiscreteHistogram bins integer-valued samples with one bucket per
// integer, centered the way the study draws discrete distributions.
func BuildDiscreteHistogram(values []float64) (Histogram, error) {
	if len(values) == 0 {
		return Histogram{}, domain.ErrValidation("histogram needs at least one value")
	}

	lo := int(math.Floor(values[0]))
	hi := lo
	for _, v := range values {
		n := int(math.Round(v))
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}

	bins := make([]Bin, hi-lo+1)
	for i := range bins {
		center := float64(lo + i)
		bins[i] = Bin{Lo: center - 0.5, Hi: center + 0.5}
	}

	maxCount := 0
	for _, v := range values {
		idx := int(math.Round(v)) - lo
		bins[idx].Count++
		if bins[idx].Count > maxCount {
			maxCount = bins[idx].Count
		}
	}

	return Histogram{Bins: bins, MaxCount: maxCount}, nil
}

// Boxplot is the five-number summary with 1.5×IQR whiskers and outliers.
type Boxplot struct {
	Min       float64
	Q1        float64
	Median    float64
	Q3        float64
	Max       float64
	WhiskerLo float64
	WhiskerHi float64
	Outliers  []float64
}

// BuildBoxplot computes the boxplot summary of values.
func BuildBoxplot(values []float64) (Boxplot, error) {
	if len(values) == 0 {
		return Boxplot{}, domain.ErrValidation("boxplot needs at least one value")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	b := Boxplot{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}

	iqr := b.Q3 - b.Q1
	loFence := b.Q1 - 1.5*iqr
	hiFence := b.Q3 + 1.5*iqr

	b.WhiskerLo = b.Max
	b.WhiskerHi = b.Min
	for _, v := range sorted {
		if v < loFence || v > hiFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		if v < b.WhiskerLo {
			b.WhiskerLo = v
		}
		if v > b.WhiskerHi {
			b.WhiskerHi = v
		}
	}

	return b, nil
}

// Bar is one bar in a group bar chart.
type Bar struct {
	Label string
	Value float64
}
