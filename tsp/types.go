// Package tsp - shared types and sentinel errors.
//
// Every exported function of this package returns one of the sentinels
// below (possibly wrapped with call-site context). Callers MUST match them
// with errors.Is; messages are prefixed with "tsp:" for easy grepping.
package tsp

import (
	"errors"
	"time"
)

var (
	// ErrInvalidInput signals malformed coordinates, a degenerate instance
	// (fewer than two cities), a malformed distance matrix or a malformed tour.
	ErrInvalidInput = errors.New("tsp: invalid input")

	// ErrInvalidConfiguration signals bad solver parameters: non-positive
	// population size, generation count, iteration budget, rates out of range.
	ErrInvalidConfiguration = errors.New("tsp: invalid configuration")

	// ErrMissingReference signals that no optimal tour is available to compute
	// an error percentage. It is non-fatal: callers degrade the result instead.
	ErrMissingReference = errors.New("tsp: missing reference tour")

	// ErrUnsupportedAlgorithm is returned by the dispatcher for unknown algorithms.
	ErrUnsupportedAlgorithm = errors.New("tsp: unsupported algorithm")
)

// City is a point of the instance. Index is unique in [0..N-1] and stable
// for the lifetime of the instance.
type City struct {
	Index int
	X, Y  float64
}

// TSResult holds the outcome of a TSP solver.
type TSResult struct {
	// Algorithm that produced the tour.
	Algorithm Algorithm

	// Tour is the sequence of city indices, starting and ending at the start city.
	// For n cities, len(Tour) == n+1 and Tour[0]==Tour[n].
	Tour []int

	// Cost is the total length of the cycle, evaluated on the solver's matrix.
	Cost float64

	// Elapsed is the wall-clock time spent inside the solver.
	Elapsed time.Duration

	// Iterations counts 2-opt passes, GA generations or SOM steps actually run.
	Iterations int

	// Interrupted is true when the context stopped the solver early;
	// Tour is then the best solution found so far.
	Interrupted bool

	// History holds the best-ever cost after each generation (genetic only).
	History []float64
}
