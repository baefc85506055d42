package instance

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlath-tsp/tsp"
)

// RandomWindow bounds generated coordinates to [0, RandomWindow].
const RandomWindow = 1000

const randomPrefix = "random-"

// Random generates n cities with integer coordinates in [0, RandomWindow],
// all x values distinct and all y values distinct. rng is the only source
// of randomness.
//
// Errors: tsp.ErrInvalidInput when n < 1 or n > RandomWindow+1.
func Random(n int, rng *rand.Rand) (Instance, error) {
	if n < 1 || n > RandomWindow+1 {
		return Instance{}, fmt.Errorf("%w: random instance of %d cities outside [1,%d]", tsp.ErrInvalidInput, n, RandomWindow+1)
	}

	var (
		xs     = rng.Perm(RandomWindow + 1)
		ys     = rng.Perm(RandomWindow + 1)
		cities = make([]tsp.City, n)
		i      int
	)
	for i = 0; i < n; i++ {
		cities[i] = tsp.City{Index: i, X: float64(xs[i]), Y: float64(ys[i])}
	}

	return Instance{Name: RandomName(n), Cities: cities}, nil
}

// RandomName is the name RandomLoader resolves to an n-city instance.
func RandomName(n int) string { return randomPrefix + strconv.Itoa(n) }

// RandomNames maps sizes to instance names.
func RandomNames(sizes []int) []string {
	out := make([]string, len(sizes))
	for i, n := range sizes {
		out[i] = RandomName(n)
	}

	return out
}

// RandomLoader resolves "random-<n>" names. The stream of each size is
// derived from Seed, so a name always yields the same cities.
type RandomLoader struct {
	Seed int64
}

// Load implements Loader.
func (l RandomLoader) Load(ctx context.Context, name string) (Instance, error) {
	if err := ctx.Err(); err != nil {
		return Instance{}, err
	}
	digits, ok := strings.CutPrefix(name, randomPrefix)
	if !ok {
		return Instance{}, fmt.Errorf("%w: %q", ErrUnknownInstance, name)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Instance{}, fmt.Errorf("%w: %q", ErrUnknownInstance, name)
	}

	return Random(n, rand.New(rand.NewSource(tsp.DeriveSeed(l.Seed, uint64(n)))))
}
