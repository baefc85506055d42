// Package bench runs the tsp heuristics over named instances and records
// tour length, percentage error against a reference tour and elapsed time.
//
// A Harness run:
//
//	for each instance (in parallel, bounded by workers):
//	  load → build DistanceMatrix once → price the reference tour
//	  for each algorithm (in order): Solve → ResultRecord
//
// Failures never abort the batch: a load or solver error becomes a record
// whose Note carries the cause. Only configuration errors are returned.
package bench

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/exp/slog"

	"github.com/katalvlaran/lvlath-tsp/instance"
	"github.com/katalvlaran/lvlath-tsp/tsp"
)

var (
	// ErrNoAlgorithms is returned by Run when no algorithm is selected.
	ErrNoAlgorithms = errors.New("bench: no algorithms selected")

	// ErrNoInstances is returned by Run when no instance is named.
	ErrNoInstances = errors.New("bench: no instances selected")
)

// refTolerance is the relative slack under which a found tour shorter than
// the reference still counts as equal to it.
const refTolerance = 1e-9

// Harness runs algorithms over instances. A Harness is safe for sequential
// reuse; every Run gets its own ResultSet.
type Harness struct {
	loader  instance.Loader
	workers int
	timeout time.Duration
	opts    tsp.Options
	log     *slog.Logger
	metrics *Metrics
}

// Option configures a Harness.
type Option func(*Harness)

// WithWorkers bounds how many instances run at once (default GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(h *Harness) {
		if n > 0 {
			h.workers = n
		}
	}
}

// WithTimeout bounds a whole Run; 0 disables the bound. On expiry running
// solvers return their best tour so far and later ones fail fast.
func WithTimeout(d time.Duration) Option {
	return func(h *Harness) { h.timeout = d }
}

// WithSolverOptions sets the base solver options. The harness derives a
// distinct seed per (instance, algorithm) from opts.Seed.
func WithSolverOptions(opts tsp.Options) Option {
	return func(h *Harness) { h.opts = opts }
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.log = l
		}
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(h *Harness) { h.metrics = m }
}

// NewHarness returns a Harness reading instances from loader.
func NewHarness(loader instance.Loader, opts ...Option) *Harness {
	h := &Harness{
		loader:  loader,
		workers: runtime.GOMAXPROCS(0),
		opts:    tsp.DefaultOptions(),
		log:     slog.Default(),
	}
	for _, fn := range opts {
		fn(h)
	}

	return h
}

// Run executes every algorithm on every named instance.
//
// Records come back in the order of names, then algos. Errors are returned
// only for an empty selection or invalid solver options; everything else is
// reported per record.
func (h *Harness) Run(ctx context.Context, names []string, algos []tsp.Algorithm) (*ResultSet, error) {
	if len(algos) == 0 {
		return nil, ErrNoAlgorithms
	}
	if len(names) == 0 {
		return nil, ErrNoInstances
	}
	for _, a := range algos {
		if err := h.opts.Validate(a); err != nil {
			return nil, err
		}
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	set := &ResultSet{RunID: uuid.NewString(), Started: time.Now()}
	log := h.log.With("run", set.RunID)
	if h.metrics != nil {
		h.metrics.Runs.Inc()
	}
	log.Info("run started", "instances", len(names), "algorithms", len(algos), "workers", h.workers)

	// One slot per instance: workers never share state.
	var (
		perInstance = make([][]ResultRecord, len(names))
		p           = pool.New().WithMaxGoroutines(h.workers)
	)
	for i, name := range names {
		i, name := i, name
		p.Go(func() {
			perInstance[i] = h.runInstance(ctx, log, set.RunID, name, algos)
		})
	}
	p.Wait()

	for _, recs := range perInstance {
		for _, r := range recs {
			h.metrics.observe(r)
		}
		set.add(recs...)
	}
	set.Elapsed = time.Since(set.Started)
	log.Info("run finished", "records", len(set.Records), "failures", set.Failures(), "elapsed", set.Elapsed)

	return set, nil
}

// runInstance loads one instance, builds its matrix once and runs every
// algorithm on it sequentially.
func (h *Harness) runInstance(ctx context.Context, log *slog.Logger, runID, name string, algos []tsp.Algorithm) []ResultRecord {
	var recs = make([]ResultRecord, 0, len(algos))
	failAll := func(n int, note string) []ResultRecord {
		log.Warn("instance failed", "instance", name, "cause", note)
		for _, a := range algos {
			recs = append(recs, ResultRecord{RunID: runID, Algorithm: a, Instance: name, Cities: n, Note: note})
		}
		return recs
	}

	in, err := h.loader.Load(ctx, name)
	if err != nil {
		return failAll(0, "load: "+err.Error())
	}
	p, err := tsp.NewProblem(in.Cities)
	if err != nil {
		return failAll(in.Size(), err.Error())
	}
	optimal, refNote := referenceCost(p, in.Optimal)
	log.Debug("instance started", "instance", name, "cities", p.Size(), "reference", optimal)

	for _, algo := range algos {
		rec := ResultRecord{RunID: runID, Algorithm: algo, Instance: name, Cities: p.Size()}

		opts := h.opts
		opts.Seed = tsp.DeriveSeed(h.opts.Seed, streamID(name, algo))
		res, err := tsp.Solve(ctx, algo, p, opts)
		if err != nil {
			rec.Note = "solve: " + err.Error()
			log.Warn("solver failed", "instance", name, "algorithm", algo.String(), "err", err)
			recs = append(recs, rec)
			continue
		}

		rec.Tour = res.Tour
		rec.Distance = res.Cost
		rec.Elapsed = res.Elapsed
		rec.Interrupted = res.Interrupted
		rec.ErrorPct, rec.Note = errorPercent(res.Cost, optimal, refNote)
		if res.Interrupted {
			rec.Note = joinNotes("interrupted, best tour so far", rec.Note)
		}
		log.Debug("solver finished", "instance", name, "algorithm", algo.String(),
			"distance", res.Cost, "elapsed", res.Elapsed)
		recs = append(recs, rec)
	}

	return recs
}

// referenceCost prices the reference tour on p's matrix. A negative cost
// means no usable reference; the note then says why.
func referenceCost(p *tsp.Problem, optimal []int) (float64, string) {
	if optimal == nil {
		return -1, tsp.ErrMissingReference.Error()
	}
	tour, err := tsp.MakeTourFromPermutation(optimal, p.Size(), 0)
	if err != nil {
		return -1, fmt.Sprintf("invalid reference tour: %v", err)
	}
	cost, err := tsp.TourCost(p.Dist, tour)
	if err != nil || cost <= 0 {
		return -1, fmt.Sprintf("invalid reference tour: cost %v, %v", cost, err)
	}

	return cost, ""
}

// errorPercent returns 100·(found−optimal)/optimal, or nil with a note when
// there is no valid reference or the reference is longer than the found
// tour beyond refTolerance. A reported error is therefore never negative.
func errorPercent(found, optimal float64, refNote string) (*float64, string) {
	if optimal <= 0 {
		return nil, refNote
	}
	if found < optimal*(1-refTolerance) {
		return nil, fmt.Sprintf("reference tour (%.6g) is longer than the found tour; error omitted", optimal)
	}
	pct := 100 * (found - optimal) / optimal
	if pct < 0 {
		pct = 0
	}

	return &pct, ""
}

// streamID identifies the random stream of an (instance, algorithm) pair
// independently of scheduling order.
func streamID(name string, algo tsp.Algorithm) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))

	return h.Sum64() ^ uint64(algo+1)
}

func joinNotes(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}

	return a + "; " + b
}
