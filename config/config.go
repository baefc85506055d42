// Package config holds the benchmark CLI configuration, read from YAML.
//
// Every field has a default (see Default); a file only needs the keys it
// overrides. Command-line flags are applied on top by the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlath-tsp/instance"
	"github.com/katalvlaran/lvlath-tsp/logging"
	"github.com/katalvlaran/lvlath-tsp/tsp"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Instance set selectors.
const (
	SetTSPLIB = "tsplib"
	SetRandom = "random"
)

// Config is the full CLI configuration.
type Config struct {
	Algorithms []string      `yaml:"algorithms"`
	Set        string        `yaml:"set"`
	Instances  []string      `yaml:"instances"`
	DataDir    string        `yaml:"data-dir"`
	Sizes      []int         `yaml:"sizes"`
	Workers    int           `yaml:"workers"`
	Timeout    time.Duration `yaml:"timeout"`
	LogLevel   string        `yaml:"log-level"`

	Solver SolverConfig `yaml:"solver"`
	Output OutputConfig `yaml:"output"`
}

// SolverConfig mirrors the tsp.Options knobs.
type SolverConfig struct {
	Seed            int64   `yaml:"seed"`
	TwoOptMaxPasses int     `yaml:"two-opt-max-passes"`
	Genetic         GAConf  `yaml:"genetic"`
	Kohonen         SOMConf `yaml:"kohonen"`
}

type GAConf struct {
	Population    int     `yaml:"population"`
	Generations   int     `yaml:"generations"`
	Tournament    int     `yaml:"tournament"`
	CrossoverRate float64 `yaml:"crossover-rate"`
	MutationRate  float64 `yaml:"mutation-rate"`
	Elitism       int     `yaml:"elitism"`
}

type SOMConf struct {
	Iterations    int     `yaml:"iterations"`
	NeuronFactor  int     `yaml:"neuron-factor"`
	LearningRate  float64 `yaml:"learning-rate"`
	LearningDecay float64 `yaml:"learning-decay"`
	RadiusDecay   float64 `yaml:"radius-decay"`
}

// OutputConfig names the optional result sinks; empty disables a sink.
type OutputConfig struct {
	XLSX        string `yaml:"xlsx"`
	CSV         string `yaml:"csv"`
	DB          string `yaml:"db"`
	PlotsDir    string `yaml:"plots"`
	MetricsAddr string `yaml:"metrics-addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	d := tsp.DefaultOptions()

	return Config{
		Algorithms: []string{"all"},
		Set:        SetTSPLIB,
		DataDir:    "data",
		Sizes:      []int{10, 50, 100},
		Workers:    4,
		LogLevel:   "info",
		Solver: SolverConfig{
			Seed:            d.Seed,
			TwoOptMaxPasses: d.TwoOptMaxPasses,
			Genetic: GAConf{
				Population:    d.PopulationSize,
				Generations:   d.Generations,
				Tournament:    d.TournamentSize,
				CrossoverRate: d.CrossoverRate,
				MutationRate:  d.MutationRate,
				Elitism:       d.Elitism,
			},
			Kohonen: SOMConf{
				Iterations:    d.KohonenIterations,
				NeuronFactor:  d.NeuronFactor,
				LearningRate:  d.LearningRate,
				LearningDecay: d.LearningDecay,
				RadiusDecay:   d.RadiusDecay,
			},
		},
	}
}

// Load reads a YAML file over Default() and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML over Default() and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseAlgorithms resolves the configured selector names; "all" expands to
// every algorithm. Duplicates are dropped, order is kept.
func (c Config) ParseAlgorithms() ([]tsp.Algorithm, error) {
	var (
		out  []tsp.Algorithm
		seen = make(map[tsp.Algorithm]bool)
	)
	for _, name := range c.Algorithms {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			for _, a := range tsp.Algorithms {
				if !seen[a] {
					seen[a] = true
					out = append(out, a)
				}
			}
			continue
		}
		a, err := tsp.ParseAlgorithm(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no algorithm selected", ErrInvalidConfig)
	}

	return out, nil
}

// InstanceNames returns the instances to run: the explicit list if any,
// otherwise the TSPLIB set or one random instance per size.
func (c Config) InstanceNames() []string {
	if len(c.Instances) > 0 {
		return c.Instances
	}
	if c.Set == SetRandom {
		return instance.RandomNames(c.Sizes)
	}

	return instance.TSPLIBSet
}

// SolverOptions converts the solver section to tsp.Options.
func (c Config) SolverOptions() tsp.Options {
	s := c.Solver
	o := tsp.DefaultOptions()
	o.Seed = s.Seed
	o.TwoOptMaxPasses = s.TwoOptMaxPasses
	o.PopulationSize = s.Genetic.Population
	o.Generations = s.Genetic.Generations
	o.TournamentSize = s.Genetic.Tournament
	o.CrossoverRate = s.Genetic.CrossoverRate
	o.MutationRate = s.Genetic.MutationRate
	o.Elitism = s.Genetic.Elitism
	o.KohonenIterations = s.Kohonen.Iterations
	o.NeuronFactor = s.Kohonen.NeuronFactor
	o.LearningRate = s.Kohonen.LearningRate
	o.LearningDecay = s.Kohonen.LearningDecay
	o.RadiusDecay = s.Kohonen.RadiusDecay

	return o
}

// Validate checks the CLI-level fields. Solver knobs are validated by the
// harness against the algorithms that read them.
func (c Config) Validate() error {
	if _, err := c.ParseAlgorithms(); err != nil {
		return err
	}
	if c.Set != SetTSPLIB && c.Set != SetRandom {
		return fmt.Errorf("%w: set %q, want %s or %s", ErrInvalidConfig, c.Set, SetTSPLIB, SetRandom)
	}
	if c.Set == SetRandom && len(c.Instances) == 0 {
		if len(c.Sizes) == 0 {
			return fmt.Errorf("%w: random set needs at least one size", ErrInvalidConfig)
		}
		for _, n := range c.Sizes {
			if n < 1 || n > instance.RandomWindow+1 {
				return fmt.Errorf("%w: random size %d outside [1,%d]", ErrInvalidConfig, n, instance.RandomWindow+1)
			}
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d must be >= 1", ErrInvalidConfig, c.Workers)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %v", ErrInvalidConfig, c.Timeout)
	}

	return nil
}
