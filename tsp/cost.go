// Package tsp - cost utilities shared by all heuristic solvers.
//
// This file provides small, allocation-free helpers to compute the total
// length of a Hamiltonian cycle represented by a city index tour.
//
// Design:
//   - TourCost is the checked public entry point (strict sentinels).
//   - tourCost is the unchecked hot-path variant for already validated tours.
//   - Reported costs are rounded to 1e-9.
//
// Complexity:
//   - O(n) time for a tour of length n+1, O(1) extra space.
package tsp

import (
	"fmt"
	"math"
)

// roundScale is the precision reported costs are rounded to.
const roundScale = 1e9

// TourCost sums dist over the edges tour[i]→tour[i+1].
//
// Contract:
//   - dist non-nil; tour has at least 2 entries, each in [0..n-1].
//   - The tour is not required to be a permutation (use ValidateTour for that),
//     so the function also prices open paths.
//
// Errors: ErrInvalidInput on nil matrix, short tour or out-of-range index.
//
// Complexity: O(n).
func TourCost(dist *DistanceMatrix, tour []int) (float64, error) {
	if dist == nil {
		return 0, fmt.Errorf("%w: nil distance matrix", ErrInvalidInput)
	}
	if len(tour) < 2 {
		return 0, fmt.Errorf("%w: tour of length %d", ErrInvalidInput, len(tour))
	}

	var (
		n   = dist.n
		i   int
		u   int
		sum float64
	)
	for i = 0; i < len(tour); i++ {
		u = tour[i]
		if u < 0 || u >= n {
			return 0, fmt.Errorf("%w: tour position %d holds city %d outside [0,%d)", ErrInvalidInput, i, u, n)
		}
		if i > 0 {
			sum += dist.at(tour[i-1], u)
		}
	}

	return round1e9(sum), nil
}

// tourCost is the unchecked variant of TourCost (no rounding either):
// callers guarantee every index is in range.
//
// Complexity: O(n).
func tourCost(dist *DistanceMatrix, tour []int) float64 {
	var (
		sum float64
		i   int
	)
	for i = 1; i < len(tour); i++ {
		sum += dist.at(tour[i-1], tour[i])
	}

	return sum
}

// cycleCost prices an open permutation as a closed cycle (perm[n-1]→perm[0]
// included). Used by the genetic solver, whose chromosomes are open.
//
// Complexity: O(n).
func cycleCost(dist *DistanceMatrix, perm []int) float64 {
	var n = len(perm)
	if n < 2 {
		return 0
	}

	return tourCost(dist, perm) + dist.at(perm[n-1], perm[0])
}

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
