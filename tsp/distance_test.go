package tsp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-tsp/tsp"
)

func TestNewDistanceMatrix_SymmetricZeroDiagonal(t *testing.T) {
	cs := rippledCircle(17)
	dist, err := tsp.NewDistanceMatrix(cs)
	require.NoError(t, err)
	require.Equal(t, 17, dist.Size())

	var i, j int
	for i = 0; i < dist.Size(); i++ {
		dii, err := dist.At(i, i)
		require.NoError(t, err)
		require.Zero(t, dii)
		for j = i + 1; j < dist.Size(); j++ {
			dij, _ := dist.At(i, j)
			dji, _ := dist.At(j, i)
			require.Equal(t, dij, dji, "asymmetric entry (%d,%d)", i, j)
			require.Positive(t, dij)
		}
	}
}

func TestNewDistanceMatrix_Euclidean(t *testing.T) {
	dist, err := tsp.NewDistanceMatrix(cities([][2]float64{{0, 0}, {3, 4}, {3, 0}}))
	require.NoError(t, err)

	d01, err := dist.At(0, 1)
	require.NoError(t, err)
	mustFloatClose(t, d01, 5, epsTiny)

	row, err := dist.Row(2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 4, 0}, row, epsTiny)
}

func TestNewDistanceMatrix_InvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		cities []tsp.City
	}{
		{"empty", nil},
		{"single city", cities([][2]float64{{1, 1}})},
		{"NaN coordinate", cities([][2]float64{{0, 0}, {math.NaN(), 1}})},
		{"Inf coordinate", cities([][2]float64{{0, 0}, {1, math.Inf(-1)}})},
		{"index out of order", []tsp.City{{Index: 1}, {Index: 0, X: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tsp.NewDistanceMatrix(tc.cities)
			require.ErrorIs(t, err, tsp.ErrInvalidInput)
		})
	}
}

func TestNewDistanceMatrixFromRows(t *testing.T) {
	dist, err := tsp.NewDistanceMatrixFromRows([][]float64{
		{0, 2, 3},
		{2, 0, 4},
		{3, 4, 0},
	})
	require.NoError(t, err)
	d, _ := dist.At(2, 1)
	assert.Equal(t, 4.0, d)

	bad := map[string][][]float64{
		"ragged":     {{0, 1}, {1}},
		"asymmetric": {{0, 1}, {2, 0}},
		"negative":   {{0, -1}, {-1, 0}},
		"diagonal":   {{1, 1}, {1, 0}},
		"infinite":   {{0, math.Inf(1)}, {math.Inf(1), 0}},
		"too small":  {{0}},
	}
	for name, rows := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := tsp.NewDistanceMatrixFromRows(rows)
			require.ErrorIs(t, err, tsp.ErrInvalidInput)
		})
	}
}

func TestDistanceMatrix_AtOutOfRange(t *testing.T) {
	dist, err := tsp.NewDistanceMatrix(square())
	require.NoError(t, err)

	_, err = dist.At(-1, 0)
	require.ErrorIs(t, err, tsp.ErrInvalidInput)
	_, err = dist.At(0, 4)
	require.ErrorIs(t, err, tsp.ErrInvalidInput)

	var nilDist *tsp.DistanceMatrix
	require.Zero(t, nilDist.Size())
	_, err = nilDist.At(0, 0)
	require.ErrorIs(t, err, tsp.ErrInvalidInput)
}

func TestNewDistanceMatrixFromRows_ExactlySymmetric(t *testing.T) {
	// Within the 1e-12 tolerance, so accepted, but not bit-identical.
	dist, err := tsp.NewDistanceMatrixFromRows([][]float64{
		{0, 1, 2},
		{1 + 1e-13, 0, 3},
		{2, 3 - 1e-13, 0},
	})
	require.NoError(t, err)

	d01, _ := dist.At(0, 1)
	d10, _ := dist.At(1, 0)
	require.Equal(t, d01, d10)
	assert.Equal(t, 1.0, d10, "upper triangle wins")

	d12, _ := dist.At(1, 2)
	d21, _ := dist.At(2, 1)
	require.Equal(t, d12, d21)

	fwd, err := tsp.TourCost(dist, []int{0, 1, 2, 0})
	require.NoError(t, err)
	rev, err := tsp.TourCost(dist, []int{0, 2, 1, 0})
	require.NoError(t, err)
	require.Equal(t, fwd, rev)
}
