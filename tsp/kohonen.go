// Package tsp - Kohonen self-organizing map (elastic ring) heuristic.
//
// A ring of NeuronFactor·n neurons is trained on the city coordinates,
// normalized into the unit square with the aspect ratio preserved:
//
//	for each step:
//	  c      ← random city
//	  w      ← neuron nearest to c (winner)
//	  h(j)   ← exp(−ring(w,j)² / (2·width²)),  width = max(⌊radius/10⌋, 1)
//	  n_j   += lr · h(j) · (c − n_j)
//	  lr    *= LearningDecay;  radius *= RadiusDecay
//
// Training stops after KohonenIterations steps, or earlier once radius < 1
// or lr < 0.001 (the ring no longer moves). The tour visits cities in the
// order of their winner neuron along the ring (ties by city index).
//
// The neighbourhood update is restricted to ring distance ≤ 4·width; the
// Gaussian weight beyond that is below exp(−8).
//
// Complexity: O(iterations·m) time with m = NeuronFactor·n, O(m) space.
package tsp

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"time"
)

const (
	somMinLearningRate = 0.001
	somCtxCheckEvery   = 1024
)

// Kohonen runs the self-organizing map heuristic. cities and dist must
// describe the same instance (len(cities) == dist.Size()).
//
// On ctx cancellation the ring trained so far is decoded into a tour and
// returned with Interrupted=true.
//
// Errors: ErrInvalidInput (mismatched or invalid cities), ErrInvalidConfiguration.
func Kohonen(ctx context.Context, cities []City, dist *DistanceMatrix, opts Options) (TSResult, error) {
	var began = time.Now()
	if err := ctx.Err(); err != nil {
		return TSResult{}, err
	}
	if err := validateOptions(KohonenSOM, opts); err != nil {
		return TSResult{}, err
	}
	if dist == nil || dist.n < 2 {
		return TSResult{}, errDegenerate(dist)
	}
	if len(cities) != dist.n {
		return TSResult{}, fmt.Errorf("%w: %d cities for a %dx%d matrix", ErrInvalidInput, len(cities), dist.n, dist.n)
	}
	if err := validateCities(cities); err != nil {
		return TSResult{}, err
	}
	if err := validateStartVertex(dist.n, opts.StartVertex); err != nil {
		return TSResult{}, err
	}

	var (
		n       = dist.n
		m       = opts.NeuronFactor * n
		rng     = rngFromSeed(opts.Seed)
		pts     = normalizeCities(cities)
		ring    = make([][2]float64, m)
		lr      = opts.LearningRate
		radius  = float64(m)
		step    int
		stopped bool
	)
	for i := range ring {
		ring[i] = [2]float64{rng.Float64(), rng.Float64()}
	}

	for step = 0; step < opts.KohonenIterations; step++ {
		if step%somCtxCheckEvery == 0 && ctx.Err() != nil {
			stopped = true
			break
		}
		if radius < 1 || lr < somMinLearningRate {
			break
		}
		c := pts[rng.Intn(n)]
		w := nearestNeuron(ring, c)
		pullRing(ring, w, c, lr, math.Max(math.Floor(radius/10), 1))

		lr *= opts.LearningDecay
		radius *= opts.RadiusDecay
	}

	tour := decodeRing(ring, pts, opts.StartVertex)

	return TSResult{
		Algorithm:   KohonenSOM,
		Tour:        tour,
		Cost:        round1e9(tourCost(dist, tour)),
		Elapsed:     time.Since(began),
		Iterations:  step,
		Interrupted: stopped,
	}, nil
}

// normalizeCities maps coordinates into [0,1]² using a single scale for
// both axes. A zero span (all cities on one point) maps everything to 0.
func normalizeCities(cities []City) [][2]float64 {
	var (
		minX, minY = math.Inf(1), math.Inf(1)
		maxX, maxY = math.Inf(-1), math.Inf(-1)
	)
	for _, c := range cities {
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}

	out := make([][2]float64, len(cities))
	for i, c := range cities {
		out[i] = [2]float64{(c.X - minX) / span, (c.Y - minY) / span}
	}

	return out
}

// nearestNeuron returns the index of the neuron closest to p (first on ties).
func nearestNeuron(ring [][2]float64, p [2]float64) int {
	var (
		best  int
		bestD = math.Inf(1)
		d     float64
	)
	for j := range ring {
		dx, dy := ring[j][0]-p[0], ring[j][1]-p[1]
		d = dx*dx + dy*dy
		if d < bestD {
			best, bestD = j, d
		}
	}

	return best
}

// pullRing moves neurons around winner w toward p with a Gaussian weight
// over ring distance.
func pullRing(ring [][2]float64, w int, p [2]float64, lr, width float64) {
	var (
		m      = len(ring)
		reach  = int(math.Ceil(4 * width))
		twoVar = 2 * width * width
	)
	if 2*reach+1 > m {
		reach = (m - 1) / 2
	}
	for off := -reach; off <= reach; off++ {
		j := ((w+off)%m + m) % m
		h := lr * math.Exp(-float64(off*off)/twoVar)
		ring[j][0] += h * (p[0] - ring[j][0])
		ring[j][1] += h * (p[1] - ring[j][1])
	}
}

// decodeRing orders cities by their winner neuron and closes the tour at start.
func decodeRing(ring [][2]float64, pts [][2]float64, start int) []int {
	var (
		n      = len(pts)
		winner = make([]int, n)
		order  = make([]int, n)
	)
	for i := range pts {
		winner[i] = nearestNeuron(ring, pts[i])
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if c := cmp.Compare(winner[a], winner[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	return rotateOpen(order, start)
}
