package instance

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlath-tsp/tsp"
)

// ReadTSPLIB parses a TSPLIB coordinate file.
//
// Recognized:
//   - "NAME : x" and "DIMENSION : n" headers (other headers are skipped),
//   - NODE_COORD_SECTION or DISPLAY_DATA_SECTION rows "id x y",
//   - EOF terminator.
//
// Files without any section header are read as plain "id x y" rows.
// Node ids are 1-based as in TSPLIB (0-based when the smallest id is 0) and
// must cover the range without gaps; node id k becomes city k-1. Rows may
// come in any order.
// EDGE_WEIGHT_SECTION instances are rejected: only coordinates are supported.
func ReadTSPLIB(r io.Reader) (Instance, error) {
	var (
		in        Instance
		rows      []nodeRow
		dimension = -1
		inSection bool
		seen      = make(map[int]bool)
		sc        = bufio.NewScanner(r)
		lineNo    int
	)
	for sc.Scan() {
		lineNo++
		tokens := strings.Fields(sc.Text())
		if len(tokens) == 0 {
			continue
		}
		key := strings.TrimSuffix(strings.ToUpper(tokens[0]), ":")

		switch {
		case key == "EOF":
			return finishTSPLIB(in, rows, dimension)

		case key == "NODE_COORD_SECTION" || key == "DISPLAY_DATA_SECTION":
			inSection = true
			continue

		case key == "EDGE_WEIGHT_SECTION":
			return Instance{}, fmt.Errorf("%w: line %d: explicit edge weights are not supported", ErrMalformed, lineNo)
		}

		if id, err := strconv.Atoi(tokens[0]); err == nil && len(tokens) == 3 {
			x, errX := strconv.ParseFloat(tokens[1], 64)
			y, errY := strconv.ParseFloat(tokens[2], 64)
			if errX != nil || errY != nil {
				return Instance{}, fmt.Errorf("%w: line %d: bad coordinates %q", ErrMalformed, lineNo, sc.Text())
			}
			if seen[id] {
				return Instance{}, fmt.Errorf("%w: line %d: duplicate node id %d", ErrMalformed, lineNo, id)
			}
			seen[id] = true
			rows = append(rows, nodeRow{id: id, x: x, y: y})
			continue
		}
		if inSection {
			return Instance{}, fmt.Errorf("%w: line %d: unexpected %q in coordinate section", ErrMalformed, lineNo, sc.Text())
		}

		name, value := header(sc.Text())
		switch strings.ToUpper(name) {
		case "NAME":
			in.Name = value
		case "DIMENSION":
			d, err := strconv.Atoi(value)
			if err != nil || d < 0 {
				return Instance{}, fmt.Errorf("%w: line %d: bad DIMENSION %q", ErrMalformed, lineNo, value)
			}
			dimension = d
		}
	}
	if err := sc.Err(); err != nil {
		return Instance{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return finishTSPLIB(in, rows, dimension)
}

type nodeRow struct {
	id   int
	x, y float64
}

// finishTSPLIB places every row at its id. Ids are unique at this point.
func finishTSPLIB(in Instance, rows []nodeRow, dimension int) (Instance, error) {
	n := len(rows)
	if n == 0 {
		return Instance{}, fmt.Errorf("%w: no coordinates", ErrMalformed)
	}
	if dimension >= 0 && dimension != n {
		return Instance{}, fmt.Errorf("%w: DIMENSION %d but %d coordinates", ErrMalformed, dimension, n)
	}

	base := 1
	if slices.MinFunc(rows, func(a, b nodeRow) int { return a.id - b.id }).id == 0 {
		base = 0
	}
	in.Cities = make([]tsp.City, n)
	for _, r := range rows {
		i := r.id - base
		if i < 0 || i >= n {
			return Instance{}, fmt.Errorf("%w: node id %d outside %d..%d", ErrMalformed, r.id, base, n-1+base)
		}
		in.Cities[i] = tsp.City{Index: i, X: r.x, Y: r.y}
	}

	return in, nil
}

// header splits "KEY : value" (or "KEY: value").
func header(line string) (string, string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return strings.TrimSpace(line), ""
	}

	return strings.TrimSpace(key), strings.TrimSpace(value)
}

// ReadTour parses a TSPLIB tour file (TOUR_SECTION terminated by -1 or EOF)
// or a plain list of node ids, one or more per line.
//
// Ids are 1-based as in TSPLIB unless the smallest id is 0, in which case
// they are taken as already 0-based. The result is an open 0-based order
// that must be a permutation of 0..n-1.
func ReadTour(r io.Reader) ([]int, error) {
	var (
		ids       []int
		inSection bool
		sc        = bufio.NewScanner(r)
		lineNo    int
	)
scan:
	for sc.Scan() {
		lineNo++
		tokens := strings.Fields(sc.Text())
		if len(tokens) == 0 {
			continue
		}
		key := strings.ToUpper(tokens[0])
		switch key {
		case "EOF", "-1":
			break scan
		case "TOUR_SECTION":
			inSection = true
			continue
		}

		nums := make([]int, 0, len(tokens))
		for _, tok := range tokens {
			v, err := strconv.Atoi(tok)
			if err != nil {
				nums = nil
				break
			}
			nums = append(nums, v)
		}
		if nums == nil {
			if inSection {
				return nil, fmt.Errorf("%w: line %d: unexpected %q in tour section", ErrMalformed, lineNo, sc.Text())
			}
			continue // header line
		}
		if i := slices.Index(nums, -1); i >= 0 {
			ids = append(ids, nums[:i]...)
			break
		}
		ids = append(ids, nums...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: empty tour", ErrMalformed)
	}

	if slices.Min(ids) != 0 {
		for i := range ids {
			ids[i]--
		}
	}
	if err := tsp.ValidatePermutation(ids, len(ids)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return ids, nil
}
