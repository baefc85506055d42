package report

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/katalvlaran/lvlath-tsp/bench"
	"github.com/katalvlaran/lvlath-tsp/tsp"
)

// PlotTour draws the cities as points and rec's tour as a closed polyline,
// then saves the image to path (format from the extension, e.g. .png).
func PlotTour(path string, cities []tsp.City, rec bench.ResultRecord) error {
	if rec.Failed() {
		return fmt.Errorf("%w: %s/%s", ErrNoTour, rec.Instance, rec.Algorithm)
	}

	pts := make(plotter.XYs, len(cities))
	for i, c := range cities {
		pts[i].X, pts[i].Y = c.X, c.Y
	}
	path2 := make(plotter.XYs, len(rec.Tour))
	for i, v := range rec.Tour {
		if v < 0 || v >= len(cities) {
			return fmt.Errorf("report: tour city %d outside %d cities", v, len(cities))
		}
		path2[i] = pts[v]
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s / %s (%.2f)", rec.Instance, rec.Algorithm, rec.Distance)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	line, err := plotter.NewLine(path2)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(line, scatter)

	if err = p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}

	return nil
}

// PlotName is the file name PlotTours uses for rec: "<instance>_<algorithm>.png".
func PlotName(rec bench.ResultRecord) string {
	return rec.Instance + "_" + rec.Algorithm.String() + ".png"
}

// PlotTours writes one PlotName image per successful record into dir.
// cities maps an instance name to its cities; instances without an entry
// are skipped. It returns the paths written.
func PlotTours(dir string, set *bench.ResultSet, cities map[string][]tsp.City) ([]string, error) {
	var written []string
	for _, r := range set.Records {
		cs, ok := cities[r.Instance]
		if !ok || r.Failed() {
			continue
		}
		p := filepath.Join(dir, PlotName(r))
		if err := PlotTour(p, cs, r); err != nil {
			return written, err
		}
		written = append(written, p)
	}

	return written, nil
}
