package tsp

import (
	"fmt"
	"strings"
)

// Algorithm selects a solver in the dispatcher.
type Algorithm int

const (
	// NearestNeighborAlgo is the greedy construction from the start city.
	NearestNeighborAlgo Algorithm = iota

	// TwoOptNN runs best-improvement 2-opt seeded by the nearest-neighbor tour.
	TwoOptNN

	// GeneticAlgo evolves a population of random tours.
	GeneticAlgo

	// KohonenSOM fits an elastic ring of neurons to the cities.
	KohonenSOM
)

// Algorithms lists every algorithm in dispatcher order.
var Algorithms = []Algorithm{NearestNeighborAlgo, TwoOptNN, GeneticAlgo, KohonenSOM}

var algorithmNames = [...]string{
	NearestNeighborAlgo: "nearest-neighbor",
	TwoOptNN:            "two-opt",
	GeneticAlgo:         "genetic",
	KohonenSOM:          "kohonen",
}

// String returns the canonical selector name.
func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}

	return algorithmNames[a]
}

// ParseAlgorithm maps a selector name to an Algorithm. Matching is
// case-insensitive; legacy labels of the result files are accepted too.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest-neighbor", "nearest_neighbor", "nn", "plus_proche_voisin":
		return NearestNeighborAlgo, nil
	case "two-opt", "2-opt", "2opt", "two_opt":
		return TwoOptNN, nil
	case "genetic", "ga", "genetique":
		return GeneticAlgo, nil
	case "kohonen", "som":
		return KohonenSOM, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
}

// Default knob values. They match the sizes used by the benchmark harness on
// TSPLIB instances of 22..225 cities.
const (
	DefaultEps               = 1e-12
	DefaultTwoOptMaxPasses   = 10_000
	DefaultPopulationSize    = 100
	DefaultGenerations       = 500
	DefaultTournamentSize    = 3
	DefaultCrossoverRate     = 0.9
	DefaultMutationRate      = 0.02
	DefaultElitism           = 1
	DefaultNeuronFactor      = 8
	DefaultKohonenIterations = 100_000
	DefaultLearningRate      = 0.8
	DefaultLearningDecay     = 0.99997
	DefaultRadiusDecay       = 0.9997
)

// Options configures every solver of the package. A zero Options is NOT
// valid; start from DefaultOptions and override fields or apply Option funcs.
//
// StartVertex     – city every returned tour starts and ends at.
// Eps             – 2-opt accepts a move only when Δ < −Eps.
// TwoOptMaxPasses – upper bound on applied 2-opt passes (must be > 0).
// Seed            – RNG seed for genetic/kohonen; 0 ⇒ fixed default stream.
// PopulationSize, Generations, TournamentSize, CrossoverRate, MutationRate,
// Elitism         – genetic algorithm knobs.
// NeuronFactor, KohonenIterations, LearningRate, LearningDecay,
// RadiusDecay     – self-organizing map knobs.
type Options struct {
	StartVertex     int
	Eps             float64
	TwoOptMaxPasses int
	Seed            int64

	PopulationSize int
	Generations    int
	TournamentSize int
	CrossoverRate  float64
	MutationRate   float64
	Elitism        int

	NeuronFactor      int
	KohonenIterations int
	LearningRate      float64
	LearningDecay     float64
	RadiusDecay       float64
}

// Option is a functional option over Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		StartVertex:       0,
		Eps:               DefaultEps,
		TwoOptMaxPasses:   DefaultTwoOptMaxPasses,
		Seed:              0,
		PopulationSize:    DefaultPopulationSize,
		Generations:       DefaultGenerations,
		TournamentSize:    DefaultTournamentSize,
		CrossoverRate:     DefaultCrossoverRate,
		MutationRate:      DefaultMutationRate,
		Elitism:           DefaultElitism,
		NeuronFactor:      DefaultNeuronFactor,
		KohonenIterations: DefaultKohonenIterations,
		LearningRate:      DefaultLearningRate,
		LearningDecay:     DefaultLearningDecay,
		RadiusDecay:       DefaultRadiusDecay,
	}
}

// NewOptions applies opts on top of DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// WithSeed sets the RNG seed of the randomized solvers.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithStartVertex sets the city every tour starts at.
func WithStartVertex(v int) Option {
	return func(o *Options) { o.StartVertex = v }
}

// WithTwoOptMaxPasses bounds the number of applied 2-opt passes.
func WithTwoOptMaxPasses(n int) Option {
	return func(o *Options) { o.TwoOptMaxPasses = n }
}

// WithPopulation sets the genetic population size.
func WithPopulation(n int) Option {
	return func(o *Options) { o.PopulationSize = n }
}

// WithGenerations sets the number of genetic generations.
func WithGenerations(n int) Option {
	return func(o *Options) { o.Generations = n }
}

// WithTournamentSize sets how many individuals compete per selection.
func WithTournamentSize(k int) Option {
	return func(o *Options) { o.TournamentSize = k }
}

// WithMutationRate sets the per-offspring swap mutation probability.
func WithMutationRate(p float64) Option {
	return func(o *Options) { o.MutationRate = p }
}

// WithCrossoverRate sets the probability of applying ordered crossover.
func WithCrossoverRate(p float64) Option {
	return func(o *Options) { o.CrossoverRate = p }
}

// WithElitism sets how many best individuals survive unchanged.
func WithElitism(k int) Option {
	return func(o *Options) { o.Elitism = k }
}

// WithKohonenIterations sets the number of SOM training steps.
func WithKohonenIterations(n int) Option {
	return func(o *Options) { o.KohonenIterations = n }
}

// WithNeuronFactor sets neurons per city of the SOM ring.
func WithNeuronFactor(k int) Option {
	return func(o *Options) { o.NeuronFactor = k }
}

// Validate checks the knobs algo reads. It returns ErrInvalidConfiguration
// for out-of-range values and ErrUnsupportedAlgorithm for unknown algorithms.
func (o Options) Validate(algo Algorithm) error {
	return validateOptions(algo, o)
}
