package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/crosspath/internal/analysis"
	"github.com/banshee-data/crosspath/internal/intersect"
	"github.com/banshee-data/crosspath/internal/timeutil"
)

// ErrRunNotFound is returned by GetRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded analysis invocation.
type Run struct {
	RunID      string  `json:"run_id"`
	CreatedAt  int64   `json:"created_at"` // unix nanoseconds
	SourcePath string  `json:"source_path"`
	Digest     string  `json:"input_digest"` // trajectory.Fingerprint of the input
	Solver     string  `json:"solver"`
	Plane      string  `json:"plane"`
	WindowLow  float64 `json:"window_low"`
	WindowHigh float64 `json:"window_high"`
	Horizon    float64 `json:"horizon"`
	Entities   int     `json:"entities"`
	Pairs      int     `json:"pairs"`
	Count      int     `json:"count"`
	DurationMs int64   `json:"duration_ms"`
}

// RunFromResult builds an unsaved Run describing res.
func RunFromResult(res *analysis.Result, sourcePath, digest string, horizon float64) *Run {
	return &Run{
		SourcePath: sourcePath,
		Digest:     digest,
		Solver:     res.Solver,
		Plane:      res.Plane.String(),
		WindowLow:  res.Window.Low,
		WindowHigh: res.Window.High,
		Horizon:    horizon,
		Entities:   res.Entities,
		Pairs:      res.Pairs,
		Count:      res.Count,
		DurationMs: res.Duration.Milliseconds(),
	}
}

// RunStore persists analysis runs and their qualifying pairs.
type RunStore struct {
	db    *sql.DB
	clock timeutil.Clock
}

// NewRunStore creates a new RunStore stamping runs with the wall clock.
func NewRunStore(db *DB) *RunStore {
	return NewRunStoreWithClock(db, timeutil.RealClock{})
}

// NewRunStoreWithClock creates a RunStore that takes CreatedAt from clock.
func NewRunStoreWithClock(db *DB, clock timeutil.Clock) *RunStore {
	return &RunStore{db: db.DB, clock: clock}
}

// InsertRun persists run. If RunID is empty, a UUID is generated.
func (s *RunStore) InsertRun(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = s.clock.Now().UnixNano()
	}

	_, err := s.db.Exec(`
		INSERT INTO analysis_runs (
			run_id, created_at, source_path, input_digest, solver, plane,
			window_low, window_high, horizon,
			entities, pairs, hit_count, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.CreatedAt, run.SourcePath, run.Digest, run.Solver, run.Plane,
		run.WindowLow, run.WindowHigh, run.Horizon,
		run.Entities, run.Pairs, run.Count, run.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// InsertHits stores the qualifying pairs of a run in one transaction.
func (s *RunStore) InsertHits(runID string, hits []analysis.Hit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO analysis_run_hits (run_id, entity_a, entity_b, x, y)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert hit: %w", err)
	}
	defer stmt.Close()

	for _, h := range hits {
		if _, err := stmt.Exec(runID, h.A, h.B, h.Point.X, h.Point.Y); err != nil {
			return fmt.Errorf("insert hit (%d, %d): %w", h.A, h.B, err)
		}
	}
	return tx.Commit()
}

const runColumns = `run_id, created_at, source_path, input_digest, solver, plane,
		       window_low, window_high, horizon,
		       entities, pairs, hit_count, duration_ms`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var r Run
	err := row.Scan(
		&r.RunID, &r.CreatedAt, &r.SourcePath, &r.Digest, &r.Solver, &r.Plane,
		&r.WindowLow, &r.WindowHigh, &r.Horizon,
		&r.Entities, &r.Pairs, &r.Count, &r.DurationMs,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRun returns a single run by ID.
func (s *RunStore) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM analysis_runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", runID, ErrRunNotFound)
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	return r, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive
// limit returns every run.
func (s *RunStore) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}
	return s.queryRuns(`
		SELECT `+runColumns+`
		FROM analysis_runs
		ORDER BY created_at DESC, run_id
		LIMIT ?`, limit)
}

// ListRunsByDigest returns the runs recorded for one input, newest first.
func (s *RunStore) ListRunsByDigest(digest string) ([]*Run, error) {
	return s.queryRuns(`
		SELECT `+runColumns+`
		FROM analysis_runs
		WHERE input_digest = ?
		ORDER BY created_at DESC, run_id`, digest)
}

func (s *RunStore) queryRuns(query string, args ...any) ([]*Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListHits returns the stored pairs of a run in enumeration order.
func (s *RunStore) ListHits(runID string) ([]analysis.Hit, error) {
	rows, err := s.db.Query(`
		SELECT entity_a, entity_b, x, y
		FROM analysis_run_hits
		WHERE run_id = ?
		ORDER BY entity_a, entity_b`, runID)
	if err != nil {
		return nil, fmt.Errorf("query hits: %w", err)
	}
	defer rows.Close()

	var hits []analysis.Hit
	for rows.Next() {
		var h analysis.Hit
		var p intersect.Point
		if err := rows.Scan(&h.A, &h.B, &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("scan hit row: %w", err)
		}
		h.Point = p
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
