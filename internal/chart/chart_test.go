package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHistogram(t *testing.T) {
	values := []float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 1.0}

	h, err := BuildHistogram(values, 5)
	require.NoError(t, err)
	require.Len(t, h.Bins, 5)

	total := 0
	for _, b := range h.Bins {
		total += b.Count
		assert.Less(t, b.Lo, b.Hi)
	}
	assert.Equal(t, len(values), total, "every value lands in exactly one bin")
	// Max value 1.0 goes to the last bin, not out of range.
	assert.GreaterOrEqual(t, h.Bins[4].Count, 1)
}

func TestBuildHistogram_DegenerateRange(t *testing.T) {
	h, err := BuildHistogram([]float64{0.5, 0.5, 0.5}, 10)
	require.NoError(t, err)
	require.Len(t, h.Bins, 1)
	assert.Equal(t, 3, h.Bins[0].Count)
}

func TestBuildHistogram_Invalid(t *testing.T) {
	_, err := BuildHistogram(nil, 5)
	assert.Error(t, err)
	_, err = BuildHistogram([]float64{1}, 0)
	assert.Error(t, err)
}

func TestBuildDiscreteHistogram(t *testing.T) {
	values := []float64{0, 1, 1, 2, 2, 2, 4}

	h, err := BuildDiscreteHistogram(values)
	require.NoError(t, err)
	require.Len(t, h.Bins, 5) // integers 0..4

	assert.Equal(t, 1, h.Bins[0].Count)
	assert.Equal(t, 2, h.Bins[1].Count)
	assert.Equal(t, 3, h.Bins[2].Count)
	assert.Equal(t, 0, h.Bins[3].Count)
	assert.Equal(t, 1, h.Bins[4].Count)
	assert.Equal(t, 3, h.MaxCount)
	// Bins are centered on the integer.
	assert.InDelta(t, -0.5, h.Bins[0].Lo, 1e-12)
	assert.InDelta(t, 0.5, h.Bins[0].Hi, 1e-12)
}

func TestBuildBoxplot(t *testing.T) {
	// 0.95 sits far above the rest and must be flagged as an outlier.
	values := []float64{0.50, 0.52, 0.53, 0.54, 0.55, 0.56, 0.57, 0.58, 0.95}

	b, err := BuildBoxplot(values)
	require.NoError(t, err)

	assert.InDelta(t, 0.50, b.Min, 1e-12)
	assert.InDelta(t, 0.95, b.Max, 1e-12)
	assert.Less(t, b.Q1, b.Median)
	assert.Less(t, b.Median, b.Q3)
	require.Len(t, b.Outliers, 1)
	assert.InDelta(t, 0.95, b.Outliers[0], 1e-12)
	assert.Less(t, b.WhiskerHi, 0.95, "whisker stops before the outlier")
}

func TestRenderHistogram_ProducesSVG(t *testing.T) {
	h1, err := BuildHistogram([]float64{0.6, 0.7, 0.8, 0.9}, 4)
	require.NoError(t, err)
	h2, err := BuildHistogram([]float64{0.4, 0.5, 0.6}, 4)
	require.NoError(t, err)

	var sb strings.Builder
	err = RenderHistogram(&sb, "Pass rate by group", []HistSeries{
		{Name: "With tech", Hist: h1, Color: Color(0)},
		{Name: "Without tech", Hist: h2, Color: Color(1)},
	})
	require.NoError(t, err)

	out := sb.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Pass rate by group")
	assert.Contains(t, out, "With tech")
	assert.Contains(t, out, "rect")
}

func TestRenderBoxplot_ProducesSVG(t *testing.T) {
	b, err := BuildBoxplot([]float64{0.5, 0.6, 0.7, 0.8, 0.9})
	require.NoError(t, err)

	var sb strings.Builder
	err = RenderBoxplot(&sb, "Boxplot", []BoxplotEntry{
		{Label: "Without tech", Box: b, Color: Color(1)},
	})
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "Without tech")
}

func TestRenderBars_ProducesSVG(t *testing.T) {
	var sb strings.Builder
	err := RenderBars(&sb, "Mean pass rate", []Bar{
		{Label: "With tech", Value: 0.82},
		{Label: "Without tech", Value: 0.71},
	})
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "Mean pass rate")
}

func TestRender_EmptyInputsRejected(t *testing.T) {
	var sb strings.Builder
	assert.Error(t, RenderHistogram(&sb, "x", nil))
	assert.Error(t, RenderBoxplot(&sb, "x", nil))
	assert.Error(t, RenderBars(&sb, "x", nil))
}
