package bench_test

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"golang.org/x/exp/slog"

	"github.com/katalvlaran/lvlath-tsp/bench"
	"github.com/katalvlaran/lvlath-tsp/instance"
	"github.com/katalvlaran/lvlath-tsp/logging"
	"github.com/katalvlaran/lvlath-tsp/tsp"
)

func squareCities() []tsp.City {
	return []tsp.City{{Index: 0}, {Index: 1, Y: 10}, {Index: 2, X: 10, Y: 10}, {Index: 3, X: 10}}
}

// memLoader serves fixed in-memory instances and falls back to random ones.
func memLoader() instance.Loader {
	fixed := map[string]instance.Instance{
		"square":        {Name: "square", Cities: squareCities(), Optimal: []int{0, 1, 2, 3}},
		"square-noref":  {Name: "square-noref", Cities: squareCities()},
		"square-longer": {Name: "square-longer", Cities: squareCities(), Optimal: []int{0, 2, 1, 3}},
		"square-short":  {Name: "square-short", Cities: squareCities(), Optimal: []int{0, 1, 2}},
		"single":        {Name: "single", Cities: []tsp.City{{Index: 0, X: 1, Y: 1}}},
	}
	mem := instance.LoaderFunc(func(_ context.Context, name string) (instance.Instance, error) {
		in, ok := fixed[name]
		if !ok {
			return instance.Instance{}, instance.ErrUnknownInstance
		}
		return in, nil
	})

	return instance.Chain(mem, instance.RandomLoader{Seed: 3})
}

func fastSolverOptions() tsp.Options {
	return tsp.NewOptions(
		tsp.WithSeed(11),
		tsp.WithPopulation(20),
		tsp.WithGenerations(30),
		tsp.WithKohonenIterations(5_000),
	)
}

type HarnessSuite struct {
	suite.Suite
	h *bench.Harness
}

func (s *HarnessSuite) SetupTest() {
	s.h = bench.NewHarness(memLoader(),
		bench.WithWorkers(3),
		bench.WithSolverOptions(fastSolverOptions()),
		bench.WithLogger(logging.New(io.Discard, slog.LevelDebug)),
	)
}

func (s *HarnessSuite) TestRecordsOrderedByInstanceThenAlgorithm() {
	names := []string{"random-15", "square", "random-8"}
	set, err := s.h.Run(context.Background(), names, tsp.Algorithms)
	s.Require().NoError(err)
	s.Require().Len(set.Records, len(names)*len(tsp.Algorithms))
	s.NotEmpty(set.RunID)

	var i int
	for _, name := range names {
		for _, algo := range tsp.Algorithms {
			r := set.Records[i]
			s.Equal(name, r.Instance)
			s.Equal(algo, r.Algorithm)
			s.Equal(set.RunID, r.RunID)
			s.False(r.Failed(), r.Note)
			s.NoError(tsp.ValidateTour(r.Tour, r.Cities, 0))
			i++
		}
	}
}

func (s *HarnessSuite) TestErrorZeroWhenOptimal() {
	set, err := s.h.Run(context.Background(), []string{"square"}, []tsp.Algorithm{tsp.NearestNeighborAlgo, tsp.TwoOptNN})
	s.Require().NoError(err)

	for _, r := range set.Records {
		s.Require().NotNil(r.ErrorPct)
		s.Equal(0.0, *r.ErrorPct)
		s.Equal(40.0, r.Distance)
		s.Empty(r.Note)
	}
}

func (s *HarnessSuite) TestErrorNeverNegative() {
	names := []string{"random-10", "random-25", "square", "square-longer"}
	set, err := s.h.Run(context.Background(), names, tsp.Algorithms)
	s.Require().NoError(err)

	for _, r := range set.Records {
		if r.ErrorPct != nil {
			s.GreaterOrEqual(*r.ErrorPct, 0.0, "%s/%s", r.Instance, r.Algorithm)
		}
	}
}

func (s *HarnessSuite) TestPartialRecords() {
	set, err := s.h.Run(context.Background(), []string{"square-noref", "square-longer", "square-short"}, []tsp.Algorithm{tsp.NearestNeighborAlgo})
	s.Require().NoError(err)
	s.Require().Len(set.Records, 3)

	noRef, longer, short := set.Records[0], set.Records[1], set.Records[2]
	s.Nil(noRef.ErrorPct)
	s.Equal(tsp.ErrMissingReference.Error(), noRef.Note)
	s.Equal(40.0, noRef.Distance)

	// the reference is longer than the tour found: no negative error
	s.Nil(longer.ErrorPct)
	s.Contains(longer.Note, "longer than the found tour")
	s.False(longer.Failed())

	s.Nil(short.ErrorPct)
	s.Contains(short.Note, "invalid reference tour")
}

func (s *HarnessSuite) TestFailuresAreIsolated() {
	names := []string{"single", "nowhere", "square"}
	set, err := s.h.Run(context.Background(), names, []tsp.Algorithm{tsp.NearestNeighborAlgo, tsp.GeneticAlgo})
	s.Require().NoError(err)
	s.Require().Len(set.Records, 6)
	s.Equal(4, set.Failures())

	for _, r := range set.Records[:2] {
		s.True(r.Failed())
		s.Contains(r.Note, tsp.ErrInvalidInput.Error())
		s.Equal(1, r.Cities)
	}
	for _, r := range set.Records[2:4] {
		s.True(r.Failed())
		s.Contains(r.Note, "load:")
	}
	for _, r := range set.Records[4:] {
		s.False(r.Failed())
		s.NotNil(r.ErrorPct)
	}
}

func (s *HarnessSuite) TestRunsAreIndependentAndReproducible() {
	names := []string{"random-12", "square"}
	a, err := s.h.Run(context.Background(), names, tsp.Algorithms)
	s.Require().NoError(err)
	b, err := s.h.Run(context.Background(), names, tsp.Algorithms)
	s.Require().NoError(err)

	s.NotEqual(a.RunID, b.RunID)
	s.Require().Len(b.Records, len(a.Records))
	for i := range a.Records {
		s.Equal(a.Records[i].Tour, b.Records[i].Tour)
		s.Equal(a.Records[i].Distance, b.Records[i].Distance)
	}
	b.Records[0].Tour[1] = -1
	s.NotEqual(-1, a.Records[0].Tour[1])
}

func (s *HarnessSuite) TestConfigurationErrors() {
	_, err := s.h.Run(context.Background(), []string{"square"}, nil)
	s.ErrorIs(err, bench.ErrNoAlgorithms)

	_, err = s.h.Run(context.Background(), nil, tsp.Algorithms)
	s.ErrorIs(err, bench.ErrNoInstances)

	_, err = s.h.Run(context.Background(), []string{"square"}, []tsp.Algorithm{tsp.Algorithm(17)})
	s.ErrorIs(err, tsp.ErrUnsupportedAlgorithm)

	bad := bench.NewHarness(memLoader(), bench.WithSolverOptions(tsp.NewOptions(tsp.WithPopulation(1))))
	_, err = bad.Run(context.Background(), []string{"square"}, []tsp.Algorithm{tsp.GeneticAlgo})
	s.ErrorIs(err, tsp.ErrInvalidConfiguration)

	// the same options are fine for an algorithm that ignores them
	_, err = bad.Run(context.Background(), []string{"square"}, []tsp.Algorithm{tsp.NearestNeighborAlgo})
	s.NoError(err)
}

func (s *HarnessSuite) TestTimeoutDegradesRecords() {
	h := bench.NewHarness(memLoader(),
		bench.WithTimeout(time.Nanosecond),
		bench.WithLogger(logging.New(io.Discard, slog.LevelInfo)),
	)
	set, err := h.Run(context.Background(), []string{"random-30", "random-40"}, tsp.Algorithms)
	s.Require().NoError(err)
	s.Len(set.Records, 8)

	for _, r := range set.Records {
		if r.Failed() {
			s.Contains(r.Note, context.DeadlineExceeded.Error())
		}
	}
}

func (s *HarnessSuite) TestMetrics() {
	reg := prometheus.NewRegistry()
	m := bench.NewMetrics(reg)
	h := bench.NewHarness(memLoader(),
		bench.WithSolverOptions(fastSolverOptions()),
		bench.WithMetrics(m),
		bench.WithLogger(logging.New(io.Discard, slog.LevelInfo)),
	)

	_, err := h.Run(context.Background(), []string{"square", "single"}, []tsp.Algorithm{tsp.NearestNeighborAlgo})
	s.Require().NoError(err)

	s.Equal(1.0, testutil.ToFloat64(m.Runs))
	s.Equal(2.0, testutil.ToFloat64(m.Records.WithLabelValues("nearest-neighbor")))
	s.Equal(1.0, testutil.ToFloat64(m.Failures.WithLabelValues("nearest-neighbor")))
	s.Equal(0.0, testutil.ToFloat64(m.ErrorPercent.WithLabelValues("nearest-neighbor", "square")))
}

func TestHarnessSuite(t *testing.T) {
	suite.Run(t, new(HarnessSuite))
}

func TestResultSet_Summary(t *testing.T) {
	pct := func(v float64) *float64 { return &v }
	set := &bench.ResultSet{Records: []bench.ResultRecord{
		{Algorithm: tsp.TwoOptNN, Tour: []int{0, 1, 0}, Distance: 10, ErrorPct: pct(1), Elapsed: 2 * time.Millisecond},
		{Algorithm: tsp.NearestNeighborAlgo, Tour: []int{0, 1, 0}, Distance: 12, ErrorPct: pct(4), Elapsed: time.Millisecond},
		{Algorithm: tsp.TwoOptNN, Tour: []int{0, 1, 0}, Distance: 20, ErrorPct: pct(3), Elapsed: 4 * time.Millisecond},
		{Algorithm: tsp.TwoOptNN, Tour: []int{0, 1, 0}, Distance: 5, Elapsed: 6 * time.Millisecond},
		{Algorithm: tsp.TwoOptNN, Note: "load: boom"},
	}}

	sum := set.Summary()
	if len(sum) != 2 {
		t.Fatalf("want 2 summaries, got %d", len(sum))
	}
	two, nn := sum[0], sum[1]
	if two.Algorithm != tsp.TwoOptNN || nn.Algorithm != tsp.NearestNeighborAlgo {
		t.Fatalf("unexpected order: %v, %v", two.Algorithm, nn.Algorithm)
	}
	if two.Runs != 4 || two.Failed != 1 || two.Scored != 2 {
		t.Fatalf("counts: %+v", two)
	}
	if two.MeanErrorPct != 2 || math.Abs(two.StdDevErrorPct-math.Sqrt2) > 1e-12 {
		t.Fatalf("error stats: mean=%v sd=%v", two.MeanErrorPct, two.StdDevErrorPct)
	}
	if two.MeanElapsed != 4*time.Millisecond || two.TotalDistance != 35 {
		t.Fatalf("elapsed/distance: %v %v", two.MeanElapsed, two.TotalDistance)
	}
	if nn.Scored != 1 || nn.MeanErrorPct != 4 || nn.StdDevErrorPct != 0 {
		t.Fatalf("single sample: %+v", nn)
	}
	if set.Failures() != 1 {
		t.Fatalf("failures: %d", set.Failures())
	}
}

func TestLoaderErrorsAreNotConfigErrors(t *testing.T) {
	h := bench.NewHarness(instance.LoaderFunc(func(context.Context, string) (instance.Instance, error) {
		return instance.Instance{}, errors.New("disk on fire")
	}), bench.WithLogger(logging.New(io.Discard, slog.LevelInfo)))

	set, err := h.Run(context.Background(), []string{"a"}, []tsp.Algorithm{tsp.NearestNeighborAlgo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set.Records[0].Failed() || set.Records[0].Note != "load: disk on fire" {
		t.Fatalf("unexpected record: %+v", set.Records[0])
	}
}
