package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestDescribe_HandComputedReference(t *testing.T) {
	// Symmetric series around 0.7; variance 0.1/4 = 0.025.
	values := []float64{0.5, 0.6, 0.7, 0.8, 0.9}

	gs, err := Describe("with_tech", values)
	require.NoError(t, err)

	assert.Equal(t, "with_tech", gs.Group)
	assert.Equal(t, 5, gs.Count)
	assert.InDelta(t, 0.7, gs.Mean, tol)
	assert.InDelta(t, 0.025, gs.Variance, tol)
	assert.InDelta(t, 0.15811388300841897, gs.StdDev, tol)
	assert.InDelta(t, 0.5, gs.Min, tol)
	assert.InDelta(t, 0.6, gs.Q1, tol)
	assert.InDelta(t, 0.7, gs.Median, tol)
	assert.InDelta(t, 0.8, gs.Q3, tol)
	assert.InDelta(t, 0.9, gs.Max, tol)
	assert.InDelta(t, 0.0, gs.Skewness, tol)
}

func TestDescribe_SingleObservation(t *testing.T) {
	gs, err := Describe("without_tech", []float64{0.42})
	require.NoError(t, err)

	assert.Equal(t, 1, gs.Count)
	assert.InDelta(t, 0.42, gs.Mean, tol)
	assert.InDelta(t, 0.42, gs.Min, tol)
	assert.InDelta(t, 0.42, gs.Max, tol)
	assert.Equal(t, 0.0, gs.Variance)
	assert.Equal(t, 0.0, gs.StdDev)
}

func TestDescribe_EmptyGroup(t *testing.T) {
	_, err := Describe("with_tech", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no observations")
}

func TestMode(t *testing.T) {
	// 0.75 appears twice after rounding (0.751 -> 0.75).
	values := []float64{0.6, 0.75, 0.751, 0.9}
	assert.InDelta(t, 0.75, Mode(values), tol)
}

func TestMode_TieBreaksTowardSmallest(t *testing.T) {
	values := []float64{0.3, 0.3, 0.8, 0.8}
	assert.InDelta(t, 0.3, Mode(values), tol)
}
