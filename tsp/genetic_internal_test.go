package tsp

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedCrossover_ProducesPermutations(t *testing.T) {
	var (
		rng = rngFromSeed(3)
		n   = 9
		p1  = permRange(n, rng)
		p2  = permRange(n, rng)
	)
	p1c, p2c := slices.Clone(p1), slices.Clone(p2)

	var i int
	for i = 0; i < 200; i++ {
		child := orderedCrossover(p1, p2, rng)
		require.NoError(t, ValidatePermutation(child, n))
	}
	require.Equal(t, p1c, p1, "parent 1 mutated")
	require.Equal(t, p2c, p2, "parent 2 mutated")
}

func TestOrderedCrossover_IdenticalParents(t *testing.T) {
	var (
		rng = rngFromSeed(5)
		p   = []int{4, 2, 0, 3, 1}
	)
	// OX1 of a permutation with itself reproduces it.
	require.Equal(t, p, orderedCrossover(p, p, rng))
}

func TestSwapMutation_ExactlyTwoPositions(t *testing.T) {
	var rng = rngFromSeed(11)

	var i int
	for i = 0; i < 100; i++ {
		perm := permRange(6, rng)
		before := slices.Clone(perm)
		swapMutation(perm, rng)

		var diff, j int
		for j = range perm {
			if perm[j] != before[j] {
				diff++
			}
		}
		require.Equal(t, 2, diff)
	}
}

func TestTournament_FullSizeReturnsFittest(t *testing.T) {
	var (
		rng = rngFromSeed(2)
		pop = []individual{{cost: 5}, {cost: 1}, {cost: 3}}
	)
	// With many draws the minimum is practically always sampled.
	require.Equal(t, 1.0, tournament(pop, 64, rng).cost)
	require.Equal(t, 1, fittest(pop))
}
