// Package report renders benchmark results for people: an XLSX workbook,
// a CSV table and PNG tour maps. Writers only read the ResultSet.
package report

import (
	"errors"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlath-tsp/bench"
)

// ErrNoTour is returned when plotting a failed record.
var ErrNoTour = errors.New("report: record has no tour")

// Columns is the header shared by the CSV and the "results" sheet.
var Columns = []string{
	"Algorithm", "Dataset", "Cities", "Solution", "Distance",
	"Error (%)", "Computation time (s)", "Interrupted", "Note",
}

// row flattens a record in Columns order. Absent values are empty strings.
func row(r bench.ResultRecord) []string {
	var errPct, distance, elapsed string
	if r.ErrorPct != nil {
		errPct = strconv.FormatFloat(*r.ErrorPct, 'f', 4, 64)
	}
	if !r.Failed() {
		distance = strconv.FormatFloat(r.Distance, 'f', 4, 64)
		elapsed = strconv.FormatFloat(r.Elapsed.Seconds(), 'f', 6, 64)
	}

	return []string{
		r.Algorithm.String(),
		r.Instance,
		strconv.Itoa(r.Cities),
		FormatTour(r.Tour),
		distance,
		errPct,
		elapsed,
		strconv.FormatBool(r.Interrupted),
		r.Note,
	}
}

// FormatTour joins city indices with spaces ("0 3 1 2 0").
func FormatTour(tour []int) string {
	var b strings.Builder
	for i, v := range tour {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}
