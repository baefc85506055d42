package tsp

import (
	"context"
	"time"
)

// NearestNeighbor builds a tour greedily: starting at opts.StartVertex it
// repeatedly moves to the closest unvisited city and finally closes the cycle.
//
// Ties are broken by the smallest city index (strict < in a left-to-right
// scan), so the result is fully deterministic for a given matrix.
//
// ctx is only checked once up front: construction is a single O(n²) sweep
// and never needs to be interrupted midway.
//
// Complexity: O(n²) time, O(n) space.
func NearestNeighbor(ctx context.Context, dist *DistanceMatrix, opts Options) (TSResult, error) {
	var began = time.Now()
	if err := ctx.Err(); err != nil {
		return TSResult{}, err
	}
	if dist == nil || dist.n < 2 {
		return TSResult{}, errDegenerate(dist)
	}
	if err := validateStartVertex(dist.n, opts.StartVertex); err != nil {
		return TSResult{}, err
	}

	var (
		n       = dist.n
		visited = make([]bool, n)
		tour    = make([]int, 0, n+1)
		cur     = opts.StartVertex
		step    int
		v       int
		best    int
		bestD   float64
		d       float64
		cost    float64
	)
	visited[cur] = true
	tour = append(tour, cur)

	for step = 1; step < n; step++ {
		best = -1
		for v = 0; v < n; v++ {
			if visited[v] {
				continue
			}
			d = dist.at(cur, v)
			if best == -1 || d < bestD {
				best, bestD = v, d
			}
		}
		visited[best] = true
		tour = append(tour, best)
		cost += bestD
		cur = best
	}
	cost += dist.at(cur, opts.StartVertex)
	tour = append(tour, opts.StartVertex)

	return TSResult{
		Algorithm:  NearestNeighborAlgo,
		Tour:       tour,
		Cost:       round1e9(cost),
		Elapsed:    time.Since(began),
		Iterations: n - 1,
	}, nil
}
