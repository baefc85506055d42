// Package tsp - tour helpers shared by the solvers and the harness.
//
// A closed tour over n cities has n+1 entries, starts and ends at the same
// city and lists every city of [0,n) once in its first n positions. Nothing
// here reads distances.
package tsp

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidatePermutation reports ErrInvalidInput unless perm lists each city of
// [0,n) exactly once.
func ValidatePermutation(perm []int, n int) error {
	if n <= 0 || len(perm) != n {
		return fmt.Errorf("%w: permutation of length %d, want %d", ErrInvalidInput, len(perm), n)
	}
	seen := make([]bool, n)
	for _, v := range perm {
		switch {
		case v < 0 || v >= n:
			return fmt.Errorf("%w: city %d outside [0,%d)", ErrInvalidInput, v, n)
		case seen[v]:
			return fmt.Errorf("%w: city %d appears twice", ErrInvalidInput, v)
		}
		seen[v] = true
	}

	return nil
}

// MakeTourFromPermutation closes perm into a tour that begins at start.
// Reference tours read from disk go through here before being priced.
func MakeTourFromPermutation(perm []int, n int, start int) ([]int, error) {
	if err := ValidatePermutation(perm, n); err != nil {
		return nil, err
	}
	if err := validateStartVertex(n, start); err != nil {
		return nil, err
	}

	return rotateOpen(perm, start), nil
}

// rotateOpen returns a new closed tour: perm shifted so start comes first,
// then start again. start must occur in perm.
func rotateOpen(perm []int, start int) []int {
	n := len(perm)
	at := 0
	for at < n && perm[at] != start {
		at++
	}
	tour := make([]int, 0, n+1)
	tour = append(tour, perm[at:]...)
	tour = append(tour, perm[:at]...)

	return append(tour, start)
}

// ValidateTour reports ErrInvalidInput unless tour is a closed tour over n
// cities beginning and ending at start.
func ValidateTour(tour []int, n int, start int) error {
	if n <= 0 || len(tour) != n+1 {
		return fmt.Errorf("%w: tour of length %d, want %d", ErrInvalidInput, len(tour), n+1)
	}
	if err := validateStartVertex(n, start); err != nil {
		return err
	}
	if tour[0] != start || tour[n] != start {
		return fmt.Errorf("%w: tour must start and end at %d, got %d…%d", ErrInvalidInput, start, tour[0], tour[n])
	}

	return ValidatePermutation(tour[:n], n)
}

// CanonicalizeOrientationInPlace picks one of the two directions of a
// closed tour: the neighbour after the start must be the smaller of the two.
// Symmetric instances only.
func CanonicalizeOrientationInPlace(tour []int) error {
	if len(tour) < 3 {
		return fmt.Errorf("%w: tour of length %d", ErrInvalidInput, len(tour))
	}
	last := len(tour) - 1
	if tour[0] != tour[last] {
		return fmt.Errorf("%w: tour is not closed", ErrInvalidInput)
	}
	if last >= 3 && tour[1] > tour[last-1] {
		return reverseArcInPlace(tour, 1, last-1)
	}

	return nil
}

// reverseArcInPlace reverses tour[i..k] of a closed tour, 1 ≤ i < k ≤ n-1.
// The endpoints stay where they are.
func reverseArcInPlace(tour []int, i, k int) error {
	last := len(tour) - 1
	if last < 2 || tour[0] != tour[last] {
		return fmt.Errorf("%w: tour is not closed", ErrInvalidInput)
	}
	if i < 1 || k > last-1 || i >= k {
		return fmt.Errorf("%w: segment [%d..%d] outside [1..%d]", ErrInvalidInput, i, k, last-1)
	}
	for ; i < k; i, k = i+1, k-1 {
		tour[i], tour[k] = tour[k], tour[i]
	}

	return nil
}

// DebugString formats a closed tour as "[0 3 1 2 | 0]".
func DebugString(tour []int) string {
	if len(tour) == 0 {
		return "[]"
	}
	var (
		last = len(tour) - 1
		b    strings.Builder
	)
	b.WriteByte('[')
	for i, v := range tour[:last] {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteString(" | ")
	b.WriteString(strconv.Itoa(tour[last]))
	b.WriteByte(']')

	return b.String()
}
