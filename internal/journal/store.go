package journal

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tracksort/internal/config"
)

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one organizing run, finished or in progress.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool
	Source     string
	Counts     Counts
}

// Finished reports whether the run was closed out.
func (r Run) Finished() bool { return !r.FinishedAt.IsZero() }

// Counts aggregates per-status totals for a run.
type Counts struct {
	Processed int
	Succeeded int
	Unmatched int
	Failed    int
	Skipped   int
}

// Result is the recorded outcome for one file within a run.
type Result struct {
	RunID       string
	File        string
	Status      string
	Artist      string
	Title       string
	Destination string
	Error       string
	CreatedAt   time.Time
}

// Open initializes or connects to the journal database under the log dir.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "journal.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// StartRun inserts a new run row and returns it.
func (s *Store) StartRun(ctx context.Context, source string, dryRun bool) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		DryRun:    dryRun,
		Source:    source,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, dry_run, source) VALUES (?, ?, ?, ?)`,
		run.ID, run.StartedAt.Format(time.RFC3339Nano), boolToInt(run.DryRun), run.Source,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the run finished and stores its aggregate counts.
func (s *Store) FinishRun(ctx context.Context, runID string, counts Counts) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, processed = ?, succeeded = ?, unmatched = ?, failed = ?, skipped = ?
         WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		counts.Processed, counts.Succeeded, counts.Unmatched, counts.Failed, counts.Skipped,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: run %s not found", runID)
	}
	return nil
}

// RecordResult appends one per-file outcome to a run.
func (s *Store) RecordResult(ctx context.Context, result Result) error {
	createdAt := result.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (run_id, file, status, artist, title, destination, error, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID, result.File, result.Status,
		result.Artist, result.Title, result.Destination, result.Error,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, dry_run, source, processed, succeeded, unmatched, failed, skipped
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  string
			finishedAt sql.NullString
			dryRun     int
		)
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &dryRun, &run.Source,
			&run.Counts.Processed, &run.Counts.Succeeded, &run.Counts.Unmatched,
			&run.Counts.Failed, &run.Counts.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.DryRun = dryRun != 0
		run.StartedAt = parseTimestamp(startedAt)
		if finishedAt.Valid {
			run.FinishedAt = parseTimestamp(finishedAt.String)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RunResults returns all per-file outcomes for one run in insertion order.
func (s *Store) RunResults(ctx context.Context, runID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, file, status, artist, title, destination, error, created_at
         FROM results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			result    Result
			createdAt string
		)
		if err := rows.Scan(&result.RunID, &result.File, &result.Status,
			&result.Artist, &result.Title, &result.Destination, &result.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		result.CreatedAt = parseTimestamp(createdAt)
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
