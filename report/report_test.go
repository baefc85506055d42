package report_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/lvlath-tsp/bench"
	"github.com/katalvlaran/lvlath-tsp/report"
	"github.com/katalvlaran/lvlath-tsp/tsp"
)

func squareCities() []tsp.City {
	return []tsp.City{{Index: 0}, {Index: 1, Y: 10}, {Index: 2, X: 10, Y: 10}, {Index: 3, X: 10}}
}

func sampleSet() *bench.ResultSet {
	zero := 0.0
	return &bench.ResultSet{
		RunID: "run-1",
		Records: []bench.ResultRecord{
			{RunID: "run-1", Algorithm: tsp.NearestNeighborAlgo, Instance: "square", Cities: 4,
				Tour: []int{0, 1, 2, 3, 0}, Distance: 40, ErrorPct: &zero, Elapsed: 1500 * time.Microsecond},
			{RunID: "run-1", Algorithm: tsp.GeneticAlgo, Instance: "square", Cities: 4,
				Tour: []int{0, 1, 2, 3, 0}, Distance: 40, Elapsed: time.Millisecond,
				Note: "no reference tour"},
			{RunID: "run-1", Algorithm: tsp.NearestNeighborAlgo, Instance: "single", Cities: 1,
				Note: "tsp: invalid input"},
		},
	}
}

func TestFormatTour(t *testing.T) {
	assert.Equal(t, "0 3 1 2 0", report.FormatTour([]int{0, 3, 1, 2, 0}))
	assert.Equal(t, "", report.FormatTour(nil))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, sampleSet()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, report.Columns, rows[0])

	first := rows[1]
	assert.Equal(t, []string{"nearest-neighbor", "square", "4", "0 1 2 3 0", "40.0000", "0.0000"}, first[:6])
	assert.Equal(t, "0.001500", first[6])
	assert.Equal(t, "false", first[7])

	// missing reference: empty error column
	assert.Equal(t, "", rows[2][5])
	assert.Equal(t, "no reference tour", rows[2][8])

	failed := rows[3]
	assert.Equal(t, []string{"nearest-neighbor", "single", "1", "", "", "", "", "false", "tsp: invalid input"}, failed)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, report.WriteXLSX(path, sampleSet()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{report.ResultsSheet, report.SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(report.ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, report.Columns, rows[0])
	assert.Equal(t, []string{"nearest-neighbor", "square", "4", "0 1 2 3 0", "40", "0"}, rows[1][:6])
	assert.Equal(t, "tsp: invalid input", rows[3][8])
	assert.Equal(t, "", rows[3][4])

	sum, err := f.GetRows(report.SummarySheet)
	require.NoError(t, err)
	require.Len(t, sum, 3)
	assert.Equal(t, report.SummaryColumns, sum[0])
	assert.Equal(t, []string{"nearest-neighbor", "2", "1", "1"}, sum[1][:4])
	assert.Equal(t, []string{"genetic", "1", "0", "0"}, sum[2][:4])
}

func TestWriteXLSX_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "results.xlsx")
	assert.Error(t, report.WriteXLSX(path, sampleSet()))
}

func TestPlotTours(t *testing.T) {
	dir := t.TempDir()
	set := sampleSet()

	written, err := report.PlotTours(dir, set, map[string][]tsp.City{"square": squareCities()})
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, filepath.Join(dir, "square_nearest-neighbor.png"), written[0])

	for _, p := range written {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestPlotTour_Errors(t *testing.T) {
	dir := t.TempDir()
	set := sampleSet()

	err := report.PlotTour(filepath.Join(dir, "x.png"), nil, set.Records[2])
	assert.ErrorIs(t, err, report.ErrNoTour)

	bad := set.Records[0]
	bad.Tour = []int{0, 9, 0}
	assert.Error(t, report.PlotTour(filepath.Join(dir, "y.png"), squareCities(), bad))
}
