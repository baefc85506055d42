package tsp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-tsp/tsp"
)

func TestGenetic_ValidTourAndHistory(t *testing.T) {
	const n = 15
	p := mustProblem(t, scattered(n))
	opts := fastOptions()

	res, err := tsp.Genetic(context.Background(), p.Dist, opts)
	require.NoError(t, err)
	require.NoError(t, tsp.ValidateTour(res.Tour, n, startV))
	assert.Equal(t, tsp.GeneticAlgo, res.Algorithm)
	assert.Equal(t, opts.Generations, res.Iterations)
	require.Len(t, res.History, opts.Generations)

	var g int
	for g = 1; g < len(res.History); g++ {
		require.LessOrEqual(t, res.History[g], res.History[g-1], "history increased at generation %d", g)
	}
	mustFloatClose(t, res.Cost, res.History[len(res.History)-1], 1e-6)

	cost, err := tsp.TourCost(p.Dist, res.Tour)
	require.NoError(t, err)
	mustFloatClose(t, res.Cost, cost, 1e-9)
}

func TestGenetic_Deterministic(t *testing.T) {
	p := mustProblem(t, scattered(12))
	opts := fastOptions()

	first, err := tsp.Genetic(context.Background(), p.Dist, opts)
	require.NoError(t, err)
	Repeat(t, 2, func(t *testing.T) {
		again, err := tsp.Genetic(context.Background(), p.Dist, opts)
		require.NoError(t, err)
		assert.Equal(t, first.Tour, again.Tour)
		assert.Equal(t, first.Cost, again.Cost)
		assert.Equal(t, first.History, again.History)
	})
}

func TestGenetic_SolvesSquare(t *testing.T) {
	p := mustProblem(t, square())

	res, err := tsp.Genetic(context.Background(), p.Dist, fastOptions())
	require.NoError(t, err)
	mustFloatClose(t, res.Cost, 40, epsTiny)
}

func TestGenetic_NoElitismStillValid(t *testing.T) {
	p := mustProblem(t, scattered(10))

	res, err := tsp.Genetic(context.Background(), p.Dist, fastOptions(tsp.WithElitism(0), tsp.WithCrossoverRate(0), tsp.WithMutationRate(1)))
	require.NoError(t, err)
	require.NoError(t, tsp.ValidateTour(res.Tour, 10, startV))
}

func TestGenetic_Interrupted(t *testing.T) {
	p := mustProblem(t, scattered(10))

	// entry check plus two generations succeed
	res, err := tsp.Genetic(newCountdownCtx(3), p.Dist, fastOptions())
	require.NoError(t, err)
	assert.True(t, res.Interrupted)
	assert.Equal(t, 2, res.Iterations)
	assert.Len(t, res.History, 2)
	require.NoError(t, tsp.ValidateTour(res.Tour, 10, startV))
}

func TestGenetic_InvalidConfiguration(t *testing.T) {
	p := mustProblem(t, square())
	cases := map[string]tsp.Options{
		"population 1":       fastOptions(tsp.WithPopulation(1)),
		"zero generations":   fastOptions(tsp.WithGenerations(0)),
		"zero tournament":    fastOptions(tsp.WithTournamentSize(0)),
		"crossover above 1":  fastOptions(tsp.WithCrossoverRate(1.5)),
		"negative mutation":  fastOptions(tsp.WithMutationRate(-0.1)),
		"elitism = pop size": fastOptions(tsp.WithPopulation(10), tsp.WithElitism(10)),
		"negative elitism":   fastOptions(tsp.WithElitism(-1)),
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tsp.Genetic(context.Background(), p.Dist, opts)
			require.ErrorIs(t, err, tsp.ErrInvalidConfiguration)
		})
	}
}
