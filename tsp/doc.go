// Package tsp provides Travelling Salesman Problem heuristics on a
// precomputed symmetric Euclidean distance matrix.
//
// Solvers:
//
//	NearestNeighbor  greedy construction from the start city, O(n²);
//	                 ties go to the smallest city index.
//	TwoOpt           best-improvement 2-opt from a seed tour, O(n²) per pass;
//	                 never worsens the seed.
//	Genetic          tournament selection, ordered crossover, swap mutation
//	                 and elitism, O(generations·population·n).
//	Kohonen          elastic-ring self-organizing map, O(iterations·neurons).
//
// All solvers share one contract: they read a *DistanceMatrix (never mutate
// it) and return a TSResult whose Tour is closed (len == n+1, starts and ends
// at Options.StartVertex) and whose Cost is evaluated on that same matrix.
//
// Long runs accept a context.Context and check it between passes or
// generations; on cancellation they return the best tour found so far with
// TSResult.Interrupted set instead of an error.
//
// Use Solve with a Problem (cities + matrix) to run any algorithm by name.
package tsp
