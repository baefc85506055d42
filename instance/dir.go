package instance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	coordSuffixes = []string{".tsp", ".txt"}
	tourSuffixes  = []string{".opt.tour", "_opt_tour.txt", ".tour"}
)

// DirLoader reads instances from Dir. For a name it looks for
// <name>.tsp or <name>.txt, and for the reference tour
// <name>.opt.tour, <name>_opt_tour.txt or <name>.tour. A missing tour file
// leaves Optimal nil.
type DirLoader struct {
	Dir string
}

// Load implements Loader.
func (l DirLoader) Load(ctx context.Context, name string) (Instance, error) {
	if err := ctx.Err(); err != nil {
		return Instance{}, err
	}

	coordPath, ok := firstExisting(l.Dir, name, coordSuffixes)
	if !ok {
		return Instance{}, fmt.Errorf("%w: %q not found in %s", ErrUnknownInstance, name, l.Dir)
	}
	in, err := readFile(coordPath, ReadTSPLIB)
	if err != nil {
		return Instance{}, fmt.Errorf("%s: %w", coordPath, err)
	}
	in.Name = name

	if tourPath, ok := firstExisting(l.Dir, name, tourSuffixes); ok {
		in.Optimal, err = readFile(tourPath, ReadTour)
		if err != nil {
			return Instance{}, fmt.Errorf("%s: %w", tourPath, err)
		}
	}

	return in, nil
}

func firstExisting(dir, name string, suffixes []string) (string, bool) {
	for _, s := range suffixes {
		p := filepath.Join(dir, name+s)
		st, err := os.Stat(p)
		if err == nil && !st.IsDir() {
			return p, true
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			// unreadable but present: let the open report it
			return p, true
		}
	}

	return "", false
}

func readFile[T any](path string, parse func(r io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()

	return parse(f)
}
