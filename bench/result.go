package bench

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvlath-tsp/tsp"
)

// ResultRecord is the outcome of one algorithm on one instance.
//
// ErrorPct is nil when no valid reference is known; Note then says why.
// A record with an empty Tour is a failure; Note carries the cause.
type ResultRecord struct {
	RunID       string
	Algorithm   tsp.Algorithm
	Instance    string
	Cities      int
	Tour        []int
	Distance    float64
	ErrorPct    *float64
	Elapsed     time.Duration
	Interrupted bool
	Note        string
}

// Failed reports whether the record has no tour.
func (r ResultRecord) Failed() bool { return len(r.Tour) == 0 }

// ResultSet holds every record of one harness run, in instance order then
// algorithm order. Records are only ever appended.
type ResultSet struct {
	RunID   string
	Started time.Time
	Elapsed time.Duration
	Records []ResultRecord
}

func (s *ResultSet) add(recs ...ResultRecord) {
	s.Records = append(s.Records, recs...)
}

// Failures counts failed records.
func (s *ResultSet) Failures() int {
	var n int
	for _, r := range s.Records {
		if r.Failed() {
			n++
		}
	}

	return n
}

// AlgorithmSummary aggregates the records of one algorithm.
//
// Error statistics cover only records with an ErrorPct (Scored of them);
// StdDevErrorPct is the sample standard deviation and 0 below two samples.
type AlgorithmSummary struct {
	Algorithm      tsp.Algorithm
	Runs           int
	Failed         int
	Scored         int
	MeanErrorPct   float64
	StdDevErrorPct float64
	MeanElapsed    time.Duration
	TotalDistance  float64
}

// Summary aggregates records per algorithm, in order of first appearance.
func (s *ResultSet) Summary() []AlgorithmSummary {
	var (
		order   []tsp.Algorithm
		errs    = make(map[tsp.Algorithm][]float64)
		elapsed = make(map[tsp.Algorithm][]float64)
		sums    = make(map[tsp.Algorithm]*AlgorithmSummary)
	)
	for _, r := range s.Records {
		sum, ok := sums[r.Algorithm]
		if !ok {
			sum = &AlgorithmSummary{Algorithm: r.Algorithm}
			sums[r.Algorithm] = sum
			order = append(order, r.Algorithm)
		}
		sum.Runs++
		if r.Failed() {
			sum.Failed++
			continue
		}
		sum.TotalDistance += r.Distance
		elapsed[r.Algorithm] = append(elapsed[r.Algorithm], float64(r.Elapsed))
		if r.ErrorPct != nil {
			errs[r.Algorithm] = append(errs[r.Algorithm], *r.ErrorPct)
		}
	}

	out := make([]AlgorithmSummary, 0, len(order))
	for _, a := range order {
		sum := sums[a]
		if xs := errs[a]; len(xs) > 0 {
			sum.Scored = len(xs)
			if len(xs) == 1 {
				sum.MeanErrorPct = xs[0]
			} else {
				sum.MeanErrorPct, sum.StdDevErrorPct = stat.MeanStdDev(xs, nil)
			}
		}
		if xs := elapsed[a]; len(xs) > 0 {
			sum.MeanElapsed = time.Duration(stat.Mean(xs, nil))
		}
		out = append(out, *sum)
	}

	return out
}
