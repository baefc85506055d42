// Package tsp_test provides lightweight testing helpers shared across *_test.go
// files in this package.
package tsp_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-tsp/tsp"
)

// -----------------------------------------------------------------------------
// Constants - single source of truth for test knobs
// -----------------------------------------------------------------------------

const (
	// epsTiny matches tsp.DefaultEps (1e-12).
	epsTiny = 1e-12

	// seedDet is a deterministic seed for RNG-based components.
	seedDet = int64(7)

	// startV is the canonical start vertex used across tests.
	startV = 0
)

// -----------------------------------------------------------------------------
// Generic helpers (repeaters, assertions, numeric closeness)
// -----------------------------------------------------------------------------

// Repeat runs fn N times. Useful for determinism/stability checks.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	var i int
	for i = 0; i < n; i++ {
		fn(t)
	}
}

// mustFloatClose asserts closeness of two float64 values under an absolute tolerance.
func mustFloatClose(t *testing.T, got, want, abs float64) {
	t.Helper()
	require.InDeltaf(t, want, got, abs, "float mismatch: got=%.17g want=%.17g", got, want)
}

// -----------------------------------------------------------------------------
// Geometric generators
// -----------------------------------------------------------------------------

// cities wraps 2D points into indexed cities.
func cities(pts [][2]float64) []tsp.City {
	out := make([]tsp.City, len(pts))
	var i int
	for i = range pts {
		out[i] = tsp.City{Index: i, X: pts[i][0], Y: pts[i][1]}
	}

	return out
}

// square returns the 4 corners of a 10×10 square in perimeter order.
func square() []tsp.City {
	return cities([][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}})
}

// rippledCircle places n cities on a circle with a deterministic radial ripple
// so that no two edges have the same length.
func rippledCircle(n int) []tsp.City {
	pts := make([][2]float64, n)
	var (
		i     int
		th, r float64
	)
	for i = 0; i < n; i++ {
		th = 2 * math.Pi * float64((i*7)%n) / float64(n) // scrambled angular order
		r = 100 + 3*float64((i*5)%11)
		pts[i] = [2]float64{r * math.Cos(th), r * math.Sin(th)}
	}

	return cities(pts)
}

// scattered returns n pseudo-random cities from a fixed linear congruential
// sequence; stable across Go versions unlike math/rand streams.
func scattered(n int) []tsp.City {
	pts := make([][2]float64, n)
	var (
		x uint32 = 12345
		i int
	)
	next := func() float64 {
		x = x*1103515245 + 12345
		return float64((x >> 16) % 1000)
	}
	for i = 0; i < n; i++ {
		pts[i] = [2]float64{next(), next()}
	}

	return cities(pts)
}

// mustProblem builds a Problem or fails the test.
func mustProblem(t testing.TB, cs []tsp.City) *tsp.Problem {
	t.Helper()
	p, err := tsp.NewProblem(cs)
	require.NoError(t, err)

	return p
}

// fastOptions returns defaults with GA/SOM budgets small enough for unit tests.
func fastOptions(opts ...tsp.Option) tsp.Options {
	base := []tsp.Option{
		tsp.WithSeed(seedDet),
		tsp.WithPopulation(30),
		tsp.WithGenerations(60),
		tsp.WithKohonenIterations(20_000),
	}

	return tsp.NewOptions(append(base, opts...)...)
}

// countdownCtx reports cancellation after its first `left` Err() calls.
// It makes mid-run interruption deterministic for solvers that poll ctx.Err().
type countdownCtx struct {
	context.Context
	left int
}

func newCountdownCtx(left int) *countdownCtx {
	return &countdownCtx{Context: context.Background(), left: left}
}

func (c *countdownCtx) Err() error {
	if c.left <= 0 {
		return context.Canceled
	}
	c.left--

	return nil
}
