// Package store keeps benchmark result sets in a SQLite file so runs can be
// compared over time. Storage is append-only: a run is written once, in one
// transaction, and never updated.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/lvlath-tsp/bench"
	"github.com/katalvlaran/lvlath-tsp/tsp"
)

var (
	// ErrRunExists is returned when appending a run id already stored.
	ErrRunExists = errors.New("store: run already stored")
	// ErrRunNotFound is returned by Load for an unknown run id.
	ErrRunNotFound = errors.New("store: run not found")
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	started    INTEGER NOT NULL,
	elapsed_ns INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS records (
	run_id      TEXT    NOT NULL REFERENCES runs(run_id),
	seq         INTEGER NOT NULL,
	algorithm   TEXT    NOT NULL,
	instance    TEXT    NOT NULL,
	cities      INTEGER NOT NULL,
	tour        TEXT    NOT NULL,
	distance    REAL    NOT NULL,
	error_pct   REAL,
	elapsed_ns  INTEGER NOT NULL,
	interrupted INTEGER NOT NULL,
	note        TEXT    NOT NULL,
	PRIMARY KEY (run_id, seq)
);`

// Store is a SQLite-backed archive of result sets. It is safe for
// concurrent use.
type Store struct {
	db *sql.DB
}

// RunInfo describes one stored run.
type RunInfo struct {
	RunID   string
	Started time.Time
	Elapsed time.Duration
	Records int
}

// Open opens (or creates) the database at path and ensures the schema.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// one writer; also keeps ":memory:" on a single connection
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", path, err)
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append writes set and all its records in one transaction.
func (s *Store) Append(ctx context.Context, set *bench.ResultSet) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var n int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE run_id = ?`, set.RunID).Scan(&n); err != nil {
		return fmt.Errorf("store: lookup run: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %s", ErrRunExists, set.RunID)
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO runs (run_id, started, elapsed_ns) VALUES (?, ?, ?)`,
		set.RunID, set.Started.UnixNano(), int64(set.Elapsed)); err != nil {
		return fmt.Errorf("store: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records
		(run_id, seq, algorithm, instance, cities, tour, distance, error_pct, elapsed_ns, interrupted, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for i, r := range set.Records {
		var errPct sql.NullFloat64
		if r.ErrorPct != nil {
			errPct = sql.NullFloat64{Float64: *r.ErrorPct, Valid: true}
		}
		if _, err = stmt.ExecContext(ctx, set.RunID, i, r.Algorithm.String(), r.Instance, r.Cities,
			encodeTour(r.Tour), r.Distance, errPct, int64(r.Elapsed), r.Interrupted, r.Note); err != nil {
			return fmt.Errorf("store: insert record %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}

	return nil
}

// Load reads back a stored run with its records in their original order.
func (s *Store) Load(ctx context.Context, runID string) (*bench.ResultSet, error) {
	set := &bench.ResultSet{RunID: runID}
	var started, elapsed int64
	err := s.db.QueryRowContext(ctx, `SELECT started, elapsed_ns FROM runs WHERE run_id = ?`, runID).
		Scan(&started, &elapsed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load run: %w", err)
	}
	set.Started = time.Unix(0, started)
	set.Elapsed = time.Duration(elapsed)

	rows, err := s.db.QueryContext(ctx, `SELECT algorithm, instance, cities, tour, distance, error_pct,
		elapsed_ns, interrupted, note FROM records WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: load records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r         = bench.ResultRecord{RunID: runID}
			algo, tr  string
			errPct    sql.NullFloat64
			elapsedNs int64
		)
		if err = rows.Scan(&algo, &r.Instance, &r.Cities, &tr, &r.Distance, &errPct,
			&elapsedNs, &r.Interrupted, &r.Note); err != nil {
			return nil, fmt.Errorf("store: scan record: %w", err)
		}
		if r.Algorithm, err = tsp.ParseAlgorithm(algo); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		if r.Tour, err = decodeTour(tr); err != nil {
			return nil, err
		}
		if errPct.Valid {
			v := errPct.Float64
			r.ErrorPct = &v
		}
		r.Elapsed = time.Duration(elapsedNs)
		set.Records = append(set.Records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: load records: %w", err)
	}

	return set, nil
}

// Runs lists stored runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT r.run_id, r.started, r.elapsed_ns,
		(SELECT COUNT(*) FROM records c WHERE c.run_id = r.run_id)
		FROM runs r ORDER BY r.started, r.run_id`)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var (
			info             RunInfo
			started, elapsed int64
		)
		if err = rows.Scan(&info.RunID, &started, &elapsed, &info.Records); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		info.Started = time.Unix(0, started)
		info.Elapsed = time.Duration(elapsed)
		out = append(out, info)
	}

	return out, rows.Err()
}

func encodeTour(tour []int) string {
	parts := make([]string, len(tour))
	for i, v := range tour {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, " ")
}

func decodeTour(s string) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	tour := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("store: tour %q: %w", s, err)
		}
		tour[i] = v
	}

	return tour, nil
}

// Records returns the records of a stored run in their original order.
func (s *Store) Records(ctx context.Context, runID string) ([]bench.ResultRecord, error) {
	set, err := s.Load(ctx, runID)
	if err != nil {
		return nil, err
	}

	return set.Records, nil
}
