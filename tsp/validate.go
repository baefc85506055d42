// Package tsp - validation utilities shared by all heuristic solvers.
//
// This file contains small, side-effect free helpers that:
//  1. Validate Options per algorithm (budgets, population, rates).
//  2. Validate explicit distance matrices (shape, diagonal, negativity, ∞, symmetry).
//  3. Validate city sets before a DistanceMatrix is built.
//
// Design principles:
//   - Deterministic, no logging, no panics on user input.
//   - Only sentinels from types.go, wrapped with the offending position.
//   - O(n²) worst-case where n is the matrix size.
package tsp

import (
	"fmt"
	"math"
)

// symTol is a structural tolerance for symmetry/diagonal checks in matrices.
// It is independent from Options.Eps (which governs "improvement" in local search).
const symTol = 1e-12

// validateOptions checks the knobs the given algorithm actually reads.
//
// Complexity: O(1).
func validateOptions(algo Algorithm, opts Options) error {
	if opts.Eps < 0 || math.IsNaN(opts.Eps) {
		return fmt.Errorf("%w: eps %v must be >= 0", ErrInvalidConfiguration, opts.Eps)
	}

	switch algo {
	case NearestNeighborAlgo:
		return nil
	case TwoOptNN:
		return validateTwoOptOptions(opts)
	case GeneticAlgo:
		return validateGeneticOptions(opts)
	case KohonenSOM:
		return validateKohonenOptions(opts)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, algo)
	}
}

// validateTwoOptOptions: the pass budget must be positive.
func validateTwoOptOptions(opts Options) error {
	if opts.TwoOptMaxPasses < 1 {
		return fmt.Errorf("%w: two-opt pass budget %d must be >= 1", ErrInvalidConfiguration, opts.TwoOptMaxPasses)
	}

	return nil
}

// validateGeneticOptions enforces population ≥ 2, generations ≥ 1,
// tournament ≥ 1, rates in [0,1] and 0 ≤ elitism < population.
func validateGeneticOptions(opts Options) error {
	if opts.PopulationSize < 2 {
		return fmt.Errorf("%w: population size %d must be >= 2", ErrInvalidConfiguration, opts.PopulationSize)
	}
	if opts.Generations < 1 {
		return fmt.Errorf("%w: generation count %d must be >= 1", ErrInvalidConfiguration, opts.Generations)
	}
	if opts.TournamentSize < 1 {
		return fmt.Errorf("%w: tournament size %d must be >= 1", ErrInvalidConfiguration, opts.TournamentSize)
	}
	if !unitInterval(opts.CrossoverRate) {
		return fmt.Errorf("%w: crossover rate %v outside [0,1]", ErrInvalidConfiguration, opts.CrossoverRate)
	}
	if !unitInterval(opts.MutationRate) {
		return fmt.Errorf("%w: mutation rate %v outside [0,1]", ErrInvalidConfiguration, opts.MutationRate)
	}
	if opts.Elitism < 0 || opts.Elitism >= opts.PopulationSize {
		return fmt.Errorf("%w: elitism %d outside [0,%d)", ErrInvalidConfiguration, opts.Elitism, opts.PopulationSize)
	}

	return nil
}

// validateKohonenOptions enforces iterations ≥ 1, factor ≥ 1 and rates in (0,1].
func validateKohonenOptions(opts Options) error {
	if opts.KohonenIterations < 1 {
		return fmt.Errorf("%w: kohonen iterations %d must be >= 1", ErrInvalidConfiguration, opts.KohonenIterations)
	}
	if opts.NeuronFactor < 1 {
		return fmt.Errorf("%w: neuron factor %d must be >= 1", ErrInvalidConfiguration, opts.NeuronFactor)
	}
	if !openUnitInterval(opts.LearningRate) {
		return fmt.Errorf("%w: learning rate %v outside (0,1]", ErrInvalidConfiguration, opts.LearningRate)
	}
	if !openUnitInterval(opts.LearningDecay) {
		return fmt.Errorf("%w: learning decay %v outside (0,1]", ErrInvalidConfiguration, opts.LearningDecay)
	}
	if !openUnitInterval(opts.RadiusDecay) {
		return fmt.Errorf("%w: radius decay %v outside (0,1]", ErrInvalidConfiguration, opts.RadiusDecay)
	}

	return nil
}

func unitInterval(p float64) bool     { return p >= 0 && p <= 1 }
func openUnitInterval(p float64) bool { return p > 0 && p <= 1 }

// validateStartVertex verifies that start∈[0..n-1].
//
// Complexity: O(1).
func validateStartVertex(n int, start int) error {
	if start < 0 || start >= n {
		return fmt.Errorf("%w: start vertex %d outside [0,%d)", ErrInvalidInput, start, n)
	}

	return nil
}

// validateCities enforces n ≥ 2, finite coordinates and Index == position.
//
// Complexity: O(n).
func validateCities(cities []City) error {
	var n = len(cities)
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 cities, got %d", ErrInvalidInput, n)
	}

	var (
		i int
		c City
	)
	for i = 0; i < n; i++ {
		c = cities[i]
		if c.Index != i {
			return fmt.Errorf("%w: city at position %d has index %d", ErrInvalidInput, i, c.Index)
		}
		if !finite(c.X) || !finite(c.Y) {
			return fmt.Errorf("%w: city %d has non-finite coordinates (%v, %v)", ErrInvalidInput, i, c.X, c.Y)
		}
	}

	return nil
}

// validateRows performs full validation of an explicit distance table:
//   - square, n ≥ 2,
//   - diagonal ≈ 0 (|a_ii| ≤ tol),
//   - finite, non-negative off-diagonal entries,
//   - |a_ij − a_ji| ≤ tol.
//
// Returns n on success.
//
// Complexity: O(n²).
func validateRows(rows [][]float64, tol float64) (int, error) {
	var n = len(rows)
	if n < 2 {
		return 0, fmt.Errorf("%w: need at least 2 rows, got %d", ErrInvalidInput, n)
	}

	var (
		i, j int
		aij  float64
	)
	for i = 0; i < n; i++ {
		if len(rows[i]) != n {
			return 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidInput, i, len(rows[i]), n)
		}
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			aij = rows[i][j]
			if !finite(aij) {
				return 0, fmt.Errorf("%w: entry (%d,%d) is not finite", ErrInvalidInput, i, j)
			}
			if i == j {
				if math.Abs(aij) > tol {
					return 0, fmt.Errorf("%w: diagonal entry (%d,%d)=%v is not zero", ErrInvalidInput, i, i, aij)
				}
				continue
			}
			if aij < 0 {
				return 0, fmt.Errorf("%w: entry (%d,%d)=%v is negative", ErrInvalidInput, i, j, aij)
			}
			if j > i && math.Abs(aij-rows[j][i]) > tol {
				return 0, fmt.Errorf("%w: entries (%d,%d) and (%d,%d) differ", ErrInvalidInput, i, j, j, i)
			}
		}
	}

	return n, nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// errDegenerate reports a nil matrix or an instance with fewer than two cities.
func errDegenerate(dist *DistanceMatrix) error {
	return fmt.Errorf("%w: need at least 2 cities, got %d", ErrInvalidInput, dist.Size())
}
