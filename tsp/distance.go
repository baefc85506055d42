// Package tsp - symmetric Euclidean distance matrix.
//
// DistanceMatrix wraps an n×n matrix.Dense. Solvers read its flat row-major
// slice (index i*n + j) directly for cache-friendly scans in hot loops.
// It is built once per instance and never mutated afterwards, so a single
// value may be shared read-only by any number of solvers and goroutines.
//
// Complexity quicksheet:
//   - NewDistanceMatrix: O(n²) time and space (upper triangle computed, mirrored).
//   - At: O(1) bounds-checked; at: O(1) unchecked (package-internal hot path).
package tsp

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvlath-tsp/matrix"
)

// DistanceMatrix is an immutable symmetric, zero-diagonal distance table.
type DistanceMatrix struct {
	n    int           // number of cities
	mat  *matrix.Dense // owned storage
	data []float64     // mat.Raw(), len == n*n
}

func newDistanceMatrix(mat *matrix.Dense) *DistanceMatrix {
	return &DistanceMatrix{n: mat.Rows(), mat: mat, data: mat.Raw()}
}

// NewDistanceMatrix computes the pairwise Euclidean distance of cities.
//
// Contract:
//   - len(cities) ≥ 2, cities[i].Index == i, all coordinates finite;
//     otherwise ErrInvalidInput.
//   - Result is symmetric with an exact zero diagonal.
//
// Complexity: O(n²).
func NewDistanceMatrix(cities []City) (*DistanceMatrix, error) {
	if err := validateCities(cities); err != nil {
		return nil, err
	}

	n := len(cities)
	mat, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			_ = mat.Set(i, j, math.Hypot(cities[i].X-cities[j].X, cities[i].Y-cities[j].Y))
		}
	}
	if err = matrix.MirrorUpper(mat); err != nil {
		return nil, err
	}

	return newDistanceMatrix(mat), nil
}

// NewDistanceMatrixFromRows copies an explicit table after validating it
// (square, n ≥ 2, finite, non-negative, zero diagonal, symmetric within 1e-12).
// The upper triangle wins: the stored table is exactly symmetric, so a tour
// and its reverse always cost the same.
// Use it for instances given by EDGE_WEIGHT sections rather than coordinates.
//
// Complexity: O(n²).
func NewDistanceMatrixFromRows(rows [][]float64) (*DistanceMatrix, error) {
	n, err := validateRows(rows, symTol)
	if err != nil {
		return nil, err
	}
	mat, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var i int
	for i = 0; i < n; i++ {
		_ = mat.Set(i, i, 0) // exact zeros on the diagonal
	}
	if err = matrix.MirrorUpper(mat); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return newDistanceMatrix(mat), nil
}

// Size returns the number of cities.
func (m *DistanceMatrix) Size() int {
	if m == nil {
		return 0
	}

	return m.n
}

// At returns the distance between cities i and j.
// Out-of-range indices yield ErrInvalidInput instead of a panic.
func (m *DistanceMatrix) At(i, j int) (float64, error) {
	if m == nil {
		return 0, fmt.Errorf("%w: nil distance matrix", ErrInvalidInput)
	}
	d, err := m.mat.At(i, j)
	if errors.Is(err, matrix.ErrIndexOutOfBounds) {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return d, err
}

// Row returns a copy of row i.
func (m *DistanceMatrix) Row(i int) ([]float64, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil distance matrix", ErrInvalidInput)
	}
	row, err := m.mat.Row(i)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return row, nil
}

// at is the unchecked accessor used inside solvers after validation.
func (m *DistanceMatrix) at(i, j int) float64 { return m.data[i*m.n+j] }

// String prints the matrix one row per line; intended for tests and debugging.
func (m *DistanceMatrix) String() string {
	if m == nil {
		return "<nil>"
	}

	return m.mat.String()
}
