// Package stats implements the descriptive statistics and hypothesis test
// used by the school census study.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/rudidomingues/censotec/internal/domain"
)

// Describe computes the descriptive statistics of values for one group.
// The returned GroupStats mirrors a pandas describe() row plus mode and
// skewness. Returns a ValidationError for an empty group.
func Describe(group string, values []float64) (domain.GroupStats, error) {
	if len(values) == 0 {
		return domain.GroupStats{}, domain.ErrValidation("group %q has no observations", group)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	gs := domain.GroupStats{
		Group:  group,
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Mode:   Mode(values),
	}

	// Sample variance and skewness need at least two observations.
	if len(values) > 1 {
		gs.Variance = stat.Variance(values, nil)
		gs.StdDev = math.Sqrt(gs.Variance)
	}
	if len(values) > 2 {
		gs.Skewness = stat.Skew(values, nil)
	}

	return gs, nil
}

// Mode returns the most frequent value after rounding to two decimals
// (pass rates are reported with two decimals in the census). Ties break
// toward the smallest value.
func Mode(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[roundTo2(v)]++
	}

	best := math.Inf(1)
	bestCount := 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best = v
			bestCount = c
		}
	}
	return best
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
