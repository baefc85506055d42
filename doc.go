// Package lvlathtsp is a workbench for Travelling Salesman heuristics on
// Euclidean city sets: solvers, a benchmark harness and the plumbing to
// load instances and keep results.
//
// What is inside?
//
//	tsp/       nearest-neighbor, 2-opt, genetic algorithm, Kohonen map
//	instance/  TSPLIB and plain "id x y" readers, random instances, loaders
//	bench/     parallel harness, percent error vs. optimum, Prometheus metrics
//	report/    XLSX workbook, CSV table, PNG tour maps
//	store/     append-only SQLite archive of runs
//	config/    YAML configuration for the CLI
//	logging/   compact slog text handler
//	cmd/tspbench  the benchmark command
//
// Quick start:
//
//	p, _ := tsp.NewProblem(cities)
//	res, err := tsp.Solve(ctx, tsp.TwoOptNN, p, tsp.DefaultOptions())
//
// or from the shell:
//
//	go run ./cmd/tspbench -set random -sizes 50,100 -algo all
//
// Every solver is deterministic for a fixed seed, honors context
// cancellation by returning the best tour found so far, and never panics
// on user input: errors are sentinels matched with errors.Is.
package lvlathtsp
