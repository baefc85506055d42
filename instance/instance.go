// Package instance loads named TSP instances: city coordinates plus, when
// available, a reference optimal tour.
//
// Sources:
//   - DirLoader reads TSPLIB files (or the plain "id x y" variant) from a directory.
//   - RandomLoader generates reproducible demo instances named "random-<n>".
//   - Chain tries several loaders in order.
//
// Loaders never build distance matrices; that is the caller's job, done once
// per instance.
package instance

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlath-tsp/tsp"
)

var (
	// ErrUnknownInstance is returned when no loader can resolve a name.
	ErrUnknownInstance = errors.New("instance: unknown instance")

	// ErrMalformed is returned for unreadable coordinate or tour files.
	ErrMalformed = errors.New("instance: malformed file")
)

// TSPLIBSet lists the benchmark instances of the original study, smallest first.
var TSPLIBSet = []string{
	"ulysses22", "att48", "berlin52", "st70", "kroC100", "ch150", "gr202", "tsp225",
}

// Instance is a named set of cities with an optional reference tour.
//
// Optimal is an open order of 0-based city indices; nil when no reference
// is known. It is never mutated by consumers.
type Instance struct {
	Name    string
	Cities  []tsp.City
	Optimal []int
}

// Size returns the number of cities.
func (in Instance) Size() int { return len(in.Cities) }

// Loader resolves an instance name.
type Loader interface {
	Load(ctx context.Context, name string) (Instance, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, name string) (Instance, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, name string) (Instance, error) { return f(ctx, name) }

// Chain returns a Loader that asks each loader in turn and returns the first
// answer that is not ErrUnknownInstance.
func Chain(loaders ...Loader) Loader {
	return LoaderFunc(func(ctx context.Context, name string) (Instance, error) {
		for _, l := range loaders {
			in, err := l.Load(ctx, name)
			if errors.Is(err, ErrUnknownInstance) {
				continue
			}
			return in, err
		}

		return Instance{}, fmt.Errorf("%w: %q", ErrUnknownInstance, name)
	})
}
