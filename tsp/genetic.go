// Package tsp - genetic algorithm metaheuristic.
//
// State machine of one run:
//
//	Initialize → [Evaluate → Select → Crossover → Mutate → Replace]×Generations → Terminate
//
// Operators (fixed choices):
//   - Chromosome: open permutation of 0..n-1; fitness = closed cycle length (lower is better).
//   - Selection: tournament of opts.TournamentSize draws with replacement; ties keep
//     the first drawn. O(k) per selection and insensitive to fitness scale.
//   - Crossover: ordered crossover (OX1), applied with probability CrossoverRate;
//     otherwise the child copies its first parent. Offspring are always permutations.
//   - Mutation: swap of two distinct positions with probability MutationRate.
//   - Replacement: a freshly allocated next generation; the opts.Elitism best
//     individuals are copied first, unchanged.
//
// Determinism: every random draw comes from one *rand.Rand seeded by opts.Seed.
// Ownership: parents and offspring never share backing arrays.
//
// Complexity: O(G·P·n) time, O(P·n) space.
package tsp

import (
	"cmp"
	"context"
	"math/rand"
	"slices"
	"time"
)

// individual is a chromosome plus its cached fitness.
type individual struct {
	perm []int
	cost float64
}

func newIndividual(dist *DistanceMatrix, perm []int) individual {
	return individual{perm: perm, cost: cycleCost(dist, perm)}
}

func (ind individual) clone() individual {
	return individual{perm: slices.Clone(ind.perm), cost: ind.cost}
}

// Genetic evolves opts.PopulationSize random tours for opts.Generations
// generations and returns the best tour ever observed, rotated to
// opts.StartVertex. TSResult.History[g] holds the best-ever cost after
// generation g and never increases.
//
// On ctx cancellation the best tour so far is returned with Interrupted=true.
//
// Errors: ErrInvalidInput (nil/degenerate matrix, bad start vertex),
// ErrInvalidConfiguration (see validateGeneticOptions).
func Genetic(ctx context.Context, dist *DistanceMatrix, opts Options) (TSResult, error) {
	var began = time.Now()
	if err := ctx.Err(); err != nil {
		return TSResult{}, err
	}
	if err := validateOptions(GeneticAlgo, opts); err != nil {
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
		rng     = rngFromSeed(opts.Seed)
		pop     = make([]individual, opts.PopulationSize)
		history = make([]float64, 0, opts.Generations)
		i       int
	)

	// Initialize + Evaluate.
	for i = range pop {
		pop[i] = newIndividual(dist, permRange(n, rng))
	}
	best := pop[fittest(pop)].clone()

	var (
		gen         int
		interrupted bool
	)
	for gen = 0; gen < opts.Generations; gen++ {
		if ctx.Err() != nil {
			interrupted = true
			break
		}
		pop = nextGeneration(dist, pop, opts, rng)

		if j := fittest(pop); pop[j].cost < best.cost {
			best = pop[j].clone()
		}
		history = append(history, round1e9(best.cost))
	}

	tour := rotateOpen(best.perm, opts.StartVertex)

	return TSResult{
		Algorithm:   GeneticAlgo,
		Tour:        tour,
		Cost:        round1e9(tourCost(dist, tour)),
		Elapsed:     time.Since(began),
		Iterations:  gen,
		Interrupted: interrupted,
		History:     history,
	}, nil
}

// nextGeneration builds a fresh population from pop: elites first, then
// offspring of tournament-selected parents.
func nextGeneration(dist *DistanceMatrix, pop []individual, opts Options, rng *rand.Rand) []individual {
	var next = make([]individual, 0, len(pop))

	// Elitism: copy the k best, ties by position for reproducibility.
	if opts.Elitism > 0 {
		order := make([]int, len(pop))
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(pop[a].cost, pop[b].cost) })
		for _, idx := range order[:opts.Elitism] {
			next = append(next, pop[idx].clone())
		}
	}

	var (
		p1, p2 individual
		child  []int
	)
	for len(next) < len(pop) {
		p1 = tournament(pop, opts.TournamentSize, rng)
		p2 = tournament(pop, opts.TournamentSize, rng)
		if rng.Float64() < opts.CrossoverRate {
			child = orderedCrossover(p1.perm, p2.perm, rng)
		} else {
			child = slices.Clone(p1.perm)
		}
		if rng.Float64() < opts.MutationRate {
			swapMutation(child, rng)
		}
		next = append(next, newIndividual(dist, child))
	}

	return next
}

// fittest returns the index of the lowest-cost individual (first on ties).
func fittest(pop []individual) int {
	var best int
	for i := 1; i < len(pop); i++ {
		if pop[i].cost < pop[best].cost {
			best = i
		}
	}

	return best
}

// tournament draws k individuals with replacement and returns the fittest.
// The winner is returned by value; callers must not mutate its perm.
func tournament(pop []individual, k int, rng *rand.Rand) individual {
	var winner = pop[rng.Intn(len(pop))]
	for i := 1; i < k; i++ {
		if c := pop[rng.Intn(len(pop))]; c.cost < winner.cost {
			winner = c
		}
	}

	return winner
}

// orderedCrossover (OX1): the child inherits p1[lo..hi] in place, and the
// remaining positions, starting right after hi and wrapping around, are
// filled with the missing cities in the order they appear in p2 from hi+1.
// Parents are only read; the child is a fresh slice.
//
// Complexity: O(n).
func orderedCrossover(p1, p2 []int, rng *rand.Rand) []int {
	var (
		n     = len(p1)
		child = make([]int, n)
		used  = make([]bool, n)
		lo    = rng.Intn(n)
		hi    = rng.Intn(n)
		i     int
	)
	if lo > hi {
		lo, hi = hi, lo
	}
	for i = lo; i <= hi; i++ {
		child[i] = p1[i]
		used[p1[i]] = true
	}

	var (
		pos = (hi + 1) % n
		g   int
	)
	for i = 0; i < n; i++ {
		g = p2[(hi+1+i)%n]
		if used[g] {
			continue
		}
		child[pos] = g
		used[g] = true
		pos = (pos + 1) % n
	}

	return child
}

// swapMutation exchanges two distinct random positions of perm in place.
func swapMutation(perm []int, rng *rand.Rand) {
	var n = len(perm)
	if n < 2 {
		return
	}
	i := rng.Intn(n)
	j := (i + 1 + rng.Intn(n-1)) % n
	perm[i], perm[j] = perm[j], perm[i]
}
