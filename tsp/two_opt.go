// Package tsp - 2-opt local search engine (best-improvement).
//
// TwoOpt repeatedly applies the single most improving 2-opt move of a full
// neighbourhood scan until no move improves the tour.
//   - Move (i,k), 1 ≤ i < k ≤ n−1, reverses segment T[i..k].
//     Δ = w(a,c) + w(b,d) − w(a,b) − w(c,d), with a=T[i−1], b=T[i], c=T[k], d=T[k+1].
//   - A pass scans every (i,k) and applies only the minimum Δ, if Δ < −Eps.
//     Ties keep the first pair in scan order, so passes are reproducible.
//
// Termination is a local optimum (no single reversal shortens the tour),
// not a global one. This is the intended behaviour of the heuristic.
//
// Design:
//   - Deterministic scanning order; no RNG usage.
//   - The seed tour is copied; the working buffer is owned by this call only.
//   - ctx checked between passes; on cancellation the best tour so far is
//     returned with Interrupted=true and a nil error.
//   - Cost stabilized to 1e−9 via round1e9.
//
// Complexity:
//   - One pass: O(n²) candidate checks + O(n) for the applied reversal.
//   - Overall: O(passes·n²) time, O(n) extra space.
package tsp

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// TwoOpt improves seed by best-improvement 2-opt. The seed must be a closed
// tour of dist starting at opts.StartVertex; it is not modified.
//
// Guarantees: the returned cost is ≤ the seed cost, the returned tour is
// valid and starts at opts.StartVertex.
//
// Errors: ErrInvalidInput (nil matrix, invalid seed), ErrInvalidConfiguration
// (TwoOptMaxPasses < 1 or Eps < 0). A ctx that is already done yields the
// validated seed with Interrupted=true and a nil error.
func TwoOpt(ctx context.Context, dist *DistanceMatrix, seed []int, opts Options) (TSResult, error) {
	var began = time.Now()
	if dist == nil || dist.n < 2 {
		return TSResult{}, errDegenerate(dist)
	}
	if err := validateOptions(TwoOptNN, opts); err != nil {
		return TSResult{}, err
	}
	var n = dist.n
	if err := ValidateTour(seed, n, opts.StartVertex); err != nil {
		return TSResult{}, fmt.Errorf("two-opt seed: %w", err)
	}

	cur := slices.Clone(seed)
	cost := tourCost(dist, cur)

	var (
		eps         = opts.Eps
		passes      int
		interrupted bool
	)
	for passes < opts.TwoOptMaxPasses {
		if ctx.Err() != nil {
			interrupted = true
			break
		}

		var (
			a, b, c, d int     // boundary endpoints around (i,k)
			i, k       int     // candidate cut indices
			delta      float64 // candidate Δ (negative is good)
			bestDelta  = -eps  // only strictly better than −eps qualifies
			bestI      = -1
			bestK      = -1
		)
		for i = 1; i <= n-2; i++ {
			a = cur[i-1]
			b = cur[i]
			for k = i + 1; k <= n-1; k++ {
				c = cur[k]
				d = cur[k+1]
				delta = (dist.at(a, c) + dist.at(b, d)) - (dist.at(a, b) + dist.at(c, d))
				if delta < bestDelta {
					bestDelta, bestI, bestK = delta, i, k
				}
			}
		}
		if bestI == -1 {
			break // local optimum under the 2-opt neighbourhood
		}
		if err := reverseArcInPlace(cur, bestI, bestK); err != nil {
			return TSResult{}, err
		}
		cost += bestDelta
		passes++
	}

	if err := CanonicalizeOrientationInPlace(cur); err != nil {
		return TSResult{}, err
	}
	if err := ValidateTour(cur, n, opts.StartVertex); err != nil {
		return TSResult{}, err
	}

	// Recompute from the matrix rather than trusting the accumulated deltas.
	cost = tourCost(dist, cur)

	return TSResult{
		Algorithm:   TwoOptNN,
		Tour:        cur,
		Cost:        round1e9(cost),
		Elapsed:     time.Since(began),
		Iterations:  passes,
		Interrupted: interrupted,
	}, nil
}
