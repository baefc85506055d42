// Package tsp - unified dispatcher for the heuristic solvers.
//
// This file provides the canonical entry points to run an algorithm:
//
//   - NewProblem: validate cities and build their DistanceMatrix once.
//   - Solve: validate options, route to the requested algorithm and enforce
//     the output invariants shared by every solver.
//
// Design principles:
//   - Deterministic: seed routing to randomized heuristics; no time-based randomness.
//   - Strict sentinels: only errors from types.go, wrapped with context.
//   - Stable cost: every returned cost is recomputed on the problem's matrix
//     and rounded to 1e−9 to prevent FP drift.
package tsp

import (
	"context"
	"fmt"
	"time"
)

// Problem is one instance ready to be solved: its cities and the
// DistanceMatrix built from them. A Problem is read-only once built and may
// be shared by several sequential or concurrent Solve calls.
type Problem struct {
	Cities []City
	Dist   *DistanceMatrix
}

// NewProblem validates cities and builds their distance matrix.
//
// Errors: ErrInvalidInput when len(cities) < 2, indices are not 0..n-1 in
// order, or a coordinate is not finite.
//
// Complexity: O(n²).
func NewProblem(cities []City) (*Problem, error) {
	dist, err := NewDistanceMatrix(cities)
	if err != nil {
		return nil, err
	}

	return &Problem{Cities: cities, Dist: dist}, nil
}

// Size returns the number of cities of the problem.
func (p *Problem) Size() int {
	if p == nil {
		return 0
	}

	return p.Dist.Size()
}

// Solve runs algo on p.
//
// Routing:
//   - NearestNeighborAlgo: greedy construction from opts.StartVertex.
//   - TwoOptNN: nearest-neighbor seed, then best-improvement 2-opt;
//     Elapsed covers both stages. Cancellation after the seed is built
//     returns the seed with Interrupted=true.
//   - GeneticAlgo: tournament/OX1/swap GA with elitism.
//   - KohonenSOM: elastic-ring self-organizing map.
//
// Contracts:
//   - p non-nil with n ≥ 2 cities (ErrInvalidInput otherwise).
//   - opts valid for algo (ErrInvalidConfiguration otherwise).
//   - The returned tour passes ValidateTour(tour, n, opts.StartVertex).
//
// Complexity: per algorithm, see the respective files.
func Solve(ctx context.Context, algo Algorithm, p *Problem, opts Options) (TSResult, error) {
	if p == nil || p.Dist == nil || p.Dist.n < 2 {
		return TSResult{}, fmt.Errorf("%w: need at least 2 cities, got %d", ErrInvalidInput, p.Size())
	}
	if err := validateOptions(algo, opts); err != nil {
		return TSResult{}, err
	}

	var (
		res TSResult
		err error
	)
	switch algo {
	case NearestNeighborAlgo:
		res, err = NearestNeighbor(ctx, p.Dist, opts)

	case TwoOptNN:
		var began = time.Now()
		var seed TSResult
		seed, err = NearestNeighbor(ctx, p.Dist, opts)
		if err != nil {
			return TSResult{}, err
		}
		res, err = TwoOpt(ctx, p.Dist, seed.Tour, opts)
		res.Elapsed = time.Since(began)

	case GeneticAlgo:
		res, err = Genetic(ctx, p.Dist, opts)

	case KohonenSOM:
		res, err = Kohonen(ctx, p.Cities, p.Dist, opts)

	default:
		return TSResult{}, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, algo)
	}
	if err != nil {
		return TSResult{}, err
	}

	if err = ValidateTour(res.Tour, p.Dist.n, opts.StartVertex); err != nil {
		return TSResult{}, fmt.Errorf("%v produced an invalid tour: %w", algo, err)
	}
	res.Cost = round1e9(tourCost(p.Dist, res.Tour))

	return res, nil
}
