// Package tsp - seeded randomness for the genetic and Kohonen solvers.
//
// Every randomized run owns one *rand.Rand built from Options.Seed; nothing
// reads the global source or the clock. A *rand.Rand is not safe for
// concurrent use, so parallel runs derive their own seeds with DeriveSeed.
package tsp

import "math/rand"

// defaultRNGSeed replaces a zero seed so the zero Options stay reproducible.
const defaultRNGSeed int64 = 1

func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// DeriveSeed maps (parent, stream) to an independent seed with the
// SplitMix64 finalizer. The harness gives each (instance, algorithm) pair
// its own stream so results do not depend on which worker ran first.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb

	return int64(x ^ (x >> 31))
}

// permRange returns a random permutation of 0..n-1 drawn from rng
// (Fisher-Yates, last index first).
func permRange(n int, rng *rand.Rand) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}

	return p
}
