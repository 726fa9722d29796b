// Package store keeps a durable history of digest runs in SQLite.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		feeds      INTEGER NOT NULL DEFAULT 0,
		articles   INTEGER NOT NULL DEFAULT 0,
		sources    INTEGER NOT NULL DEFAULT 0,
		files      INTEGER NOT NULL DEFAULT 0,
		status     TEXT NOT NULL,
		error      TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
`

// run status values
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusNoOp      = "noop"
)

// Run is a single digest run record
type Run struct {
	ID        int64     `db:"id"`
	StartedAt time.Time `db:"started_at"`
	Feeds     int       `db:"feeds"`
	Articles  int       `db:"articles"`
	Sources   int       `db:"sources"`
	Files     int       `db:"files"`
	Status    string    `db:"status"`
	Error     string    `db:"error"`
}

// Store provides access to the run history database
type Store struct {
	db *sqlx.DB
}

// New opens the run history database and creates the schema if needed
func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer avoids most lock contention

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordRun appends a run record, retrying on transient SQLite lock errors
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO runs (started_at, feeds, articles, sources, files, status, error)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		res, err := s.db.ExecContext(ctx, query,
			run.StartedAt, run.Feeds, run.Articles, run.Sources, run.Files, run.Status, run.Error)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("record run: %w", err)}
		}
		if id, err := res.LastInsertId(); err == nil {
			run.ID = id
		}
		return nil
	})
}

// ListRuns returns the most recent runs, newest first
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	err := s.db.SelectContext(ctx, &runs,
		`SELECT id, started_at, feeds, articles, sources, files, status, error
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
