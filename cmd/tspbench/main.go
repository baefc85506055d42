// Command tspbench runs the TSP heuristics over a set of instances and
// reports tour length, error against the known optimum and time per
// algorithm.
//
//	tspbench -set random -sizes 50,100 -algo all -xlsx results.xlsx
//	tspbench -config bench.yaml -metrics-addr :9090
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	"github.com/katalvlaran/lvlath-tsp/bench"
	"github.com/katalvlaran/lvlath-tsp/config"
	"github.com/katalvlaran/lvlath-tsp/instance"
	"github.com/katalvlaran/lvlath-tsp/logging"
	"github.com/katalvlaran/lvlath-tsp/report"
	"github.com/katalvlaran/lvlath-tsp/store"
	"github.com/katalvlaran/lvlath-tsp/tsp"
)

// Exit codes.
const (
	exitOK     = 0
	exitOutput = 1
	exitConfig = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "tspbench:", err)
		}
		return exitConfig
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	log := logging.New(stderr, level)

	algos, err := cfg.ParseAlgorithms()
	if err != nil {
		log.Error("configuration", "err", err)
		return exitConfig
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := bench.NewMetrics(reg)
	if cfg.Output.MetricsAddr != "" {
		srv := serveMetrics(cfg.Output.MetricsAddr, reg, log)
		defer shutdown(srv)
	}

	loader := instance.Chain(
		instance.DirLoader{Dir: cfg.DataDir},
		instance.RandomLoader{Seed: cfg.Solver.Seed},
	)
	h := bench.NewHarness(loader,
		bench.WithWorkers(cfg.Workers),
		bench.WithTimeout(cfg.Timeout),
		bench.WithSolverOptions(cfg.SolverOptions()),
		bench.WithLogger(log),
		bench.WithMetrics(metrics),
	)

	set, err := h.Run(ctx, cfg.InstanceNames(), algos)
	if err != nil {
		log.Error("configuration", "err", err)
		return exitConfig
	}

	printRecords(stdout, set)
	printSummary(stdout, set)

	if err = writeOutputs(ctx, cfg.Output, set, loader, log); err != nil {
		log.Error("output", "err", err)
		return exitOutput
	}

	return exitOK
}

// parseFlags loads the optional -config file and applies the flags that
// were set on the command line on top of it.
func parseFlags(args []string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("tspbench", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "YAML configuration `file`")
		algo       = fs.String("algo", "all", "comma list of nearest-neighbor|two-opt|genetic|kohonen|all")
		set        = fs.String("set", config.SetTSPLIB, "instance set: tsplib|random")
		instances  = fs.String("instances", "", "comma list of instance names (overrides -set)")
		dataDir    = fs.String("data", "data", "directory holding <name>.tsp and <name>.opt.tour files")
		sizes      = fs.String("sizes", "10,50,100", "comma list of city counts for -set random")
		seed       = fs.Int64("seed", 1, "base random seed")
		workers    = fs.Int("workers", 4, "instances solved in parallel")
		timeout    = fs.Duration("timeout", 0, "bound on the whole run, 0 for none")
		xlsx       = fs.String("xlsx", "", "write results workbook to `file`")
		csvPath    = fs.String("csv", "", "write results CSV to `file`")
		db         = fs.String("db", "", "append results to SQLite `file`")
		plots      = fs.String("plots", "", "write PNG tour maps into `dir`")
		metrics    = fs.String("metrics-addr", "", "serve Prometheus /metrics on `addr`")
		logLevel   = fs.String("log-level", "info", "debug|info|warn|error")
	)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	if fs.NArg() > 0 {
		return config.Config{}, fmt.Errorf("%w: unexpected arguments %v", config.ErrInvalidConfig, fs.Args())
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return config.Config{}, err
		}
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "algo":
			cfg.Algorithms = splitList(*algo)
		case "set":
			cfg.Set = *set
		case "instances":
			cfg.Instances = splitList(*instances)
		case "data":
			cfg.DataDir = *dataDir
		case "sizes":
			var perr error
			if cfg.Sizes, perr = parseSizes(*sizes); perr != nil {
				err = perr
			}
		case "seed":
			cfg.Solver.Seed = *seed
		case "workers":
			cfg.Workers = *workers
		case "timeout":
			cfg.Timeout = *timeout
		case "xlsx":
			cfg.Output.XLSX = *xlsx
		case "csv":
			cfg.Output.CSV = *csvPath
		case "db":
			cfg.Output.DB = *db
		case "plots":
			cfg.Output.PlotsDir = *plots
		case "metrics-addr":
			cfg.Output.MetricsAddr = *metrics
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err != nil {
		return config.Config{}, err
	}

	return cfg, cfg.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

func parseSizes(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: size %q", config.ErrInvalidConfig, part)
		}
		out = append(out, n)
	}

	return out, nil
}

func serveMetrics(addr string, reg *prometheus.Registry, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics server", "addr", addr, "err", err)
		}
	}()
	log.Info("metrics", "addr", addr)

	return srv
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func printRecords(w io.Writer, set *bench.ResultSet) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tINSTANCE\tCITIES\tDISTANCE\tERROR %\tTIME\tNOTE")
	for _, r := range set.Records {
		dist, pct, elapsed := "-", "-", "-"
		if !r.Failed() {
			dist = strconv.FormatFloat(r.Distance, 'f', 2, 64)
			elapsed = r.Elapsed.Round(time.Microsecond).String()
		}
		if r.ErrorPct != nil {
			pct = strconv.FormatFloat(*r.ErrorPct, 'f', 2, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n", r.Algorithm, r.Instance, r.Cities, dist, pct, elapsed, r.Note)
	}
	tw.Flush()
}

func printSummary(w io.Writer, set *bench.ResultSet) {
	fmt.Fprintf(w, "\nrun %s: %d records, %d failed, %s\n", set.RunID, len(set.Records), set.Failures(),
		set.Elapsed.Round(time.Millisecond))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tRUNS\tFAILED\tMEAN ERROR %\tSTDDEV\tMEAN TIME")
	for _, s := range set.Summary() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%.2f\t%s\n", s.Algorithm, s.Runs, s.Failed,
			s.MeanErrorPct, s.StdDevErrorPct, s.MeanElapsed.Round(time.Microsecond))
	}
	tw.Flush()
}

// writeOutputs feeds every configured sink. All sinks are attempted; the
// first error is returned.
func writeOutputs(ctx context.Context, out config.OutputConfig, set *bench.ResultSet, loader instance.Loader, log *slog.Logger) error {
	var errs []error

	if out.XLSX != "" {
		if err := report.WriteXLSX(out.XLSX, set); err != nil {
			errs = append(errs, err)
		} else {
			log.Info("wrote workbook", "path", out.XLSX)
		}
	}
	if out.CSV != "" {
		if err := writeCSVFile(out.CSV, set); err != nil {
			errs = append(errs, err)
		} else {
			log.Info("wrote csv", "path", out.CSV)
		}
	}
	if out.DB != "" {
		if err := appendToStore(ctx, out.DB, set); err != nil {
			errs = append(errs, err)
		} else {
			log.Info("stored run", "db", out.DB, "run", set.RunID)
		}
	}
	if out.PlotsDir != "" {
		paths, err := writePlots(ctx, out.PlotsDir, set, loader)
		if err != nil {
			errs = append(errs, err)
		}
		log.Info("wrote plots", "dir", out.PlotsDir, "count", len(paths))
	}

	if len(errs) > 0 {
		return errs[0]
	}

	return nil
}

func writeCSVFile(path string, set *bench.ResultSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = report.WriteCSV(f, set); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func appendToStore(ctx context.Context, path string, set *bench.ResultSet) error {
	s, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Append(ctx, set)
}

// writePlots reloads each instance that has at least one tour and draws
// every successful record.
func writePlots(ctx context.Context, dir string, set *bench.ResultSet, loader instance.Loader) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	cities := make(map[string][]tsp.City)
	for _, r := range set.Records {
		if r.Failed() {
			continue
		}
		if _, ok := cities[r.Instance]; ok {
			continue
		}
		in, err := loader.Load(ctx, r.Instance)
		if err != nil {
			return nil, err
		}
		cities[r.Instance] = in.Cities
	}

	return report.PlotTours(dir, set, cities)
}
