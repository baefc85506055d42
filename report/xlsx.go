package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/lvlath-tsp/bench"
)

// Sheet names of the workbook written by WriteXLSX.
const (
	ResultsSheet = "results"
	SummarySheet = "summary"
)

// SummaryColumns is the header of the "summary" sheet.
var SummaryColumns = []string{
	"Algorithm", "Runs", "Failed", "Scored", "Mean error (%)", "Std dev error (%)",
	"Mean time (s)", "Total distance",
}

// WriteXLSX saves set to path as a workbook with a "results" sheet (one
// row per record, numeric cells where a value exists) and a "summary" sheet.
func WriteXLSX(path string, set *bench.ResultSet) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes "results".
	if err := f.SetSheetName(f.GetSheetName(0), ResultsSheet); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := writeHeader(f, ResultsSheet, Columns); err != nil {
		return err
	}
	for i, r := range set.Records {
		if err := writeRecord(f, i+2, r); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := writeHeader(f, SummarySheet, SummaryColumns); err != nil {
		return err
	}
	for i, s := range set.Summary() {
		values := []any{
			s.Algorithm.String(), s.Runs, s.Failed, s.Scored,
			s.MeanErrorPct, s.StdDevErrorPct, s.MeanElapsed.Seconds(), s.TotalDistance,
		}
		if err := setRow(f, SummarySheet, i+2, values); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}

	return nil
}

func writeHeader(f *excelize.File, sheet string, cols []string) error {
	values := make([]any, len(cols))
	for i, c := range cols {
		values[i] = c
	}

	return setRow(f, sheet, 1, values)
}

func writeRecord(f *excelize.File, rowNum int, r bench.ResultRecord) error {
	values := []any{
		r.Algorithm.String(), r.Instance, r.Cities, FormatTour(r.Tour),
		nil, nil, nil, r.Interrupted, r.Note,
	}
	if !r.Failed() {
		values[4] = r.Distance
		values[6] = r.Elapsed.Seconds()
	}
	if r.ErrorPct != nil {
		values[5] = *r.ErrorPct
	}

	return setRow(f, ResultsSheet, rowNum, values)
}

// setRow writes values left to right; nil leaves the cell empty.
func setRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	for j, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		if err = f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("report: %s!%s: %w", sheet, cell, err)
		}
	}

	return nil
}
