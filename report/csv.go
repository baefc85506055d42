package report

import (
	"encoding/csv"
	"io"

	"github.com/katalvlaran/lvlath-tsp/bench"
)

// WriteCSV writes a header line and one row per record.
func WriteCSV(w io.Writer, set *bench.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range set.Records {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
