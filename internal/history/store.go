// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists verification runs in a SQLite database so the
// outcome of successive builds can be compared and exported.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/portfolio-site/pkg/types"
)

const dbFile = "history.db"

// Store manages the run history database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultHistoryDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and export files.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			passed INTEGER NOT NULL,
			checks INTEGER NOT NULL,
			failures INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS checks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			page TEXT NOT NULL,
			found INTEGER NOT NULL,
			description TEXT NOT NULL,
			kind TEXT,
			pattern TEXT,
			want INTEGER,
			got INTEGER,
			passed INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checks_run_id ON checks(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_checks_page ON checks(page)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a report and all of its checks in one transaction and
// returns the new run ID.
func (s *Store) Record(ctx context.Context, report types.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, duration_ms, passed, checks, failures)
		 VALUES (?, ?, ?, ?, ?)`,
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.Duration.Milliseconds(),
		report.Passed(),
		report.CheckCount(),
		len(report.Failures()),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO checks (run_id, page, found, description, kind, pattern, want, got, passed, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range report.Pages {
		for _, c := range p.Checks {
			_, err := stmt.ExecContext(ctx,
				runID, c.Page, p.Found, c.Expectation.Description,
				string(c.Expectation.Kind), c.Expectation.Pattern, c.Expectation.Count,
				c.Got, c.Passed, c.Error,
			)
			if err != nil {
				return 0, fmt.Errorf("inserting check %s/%s: %w", c.Page, c.Expectation.Description, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Prune deletes all but the newest keep runs and returns the number removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	return res.RowsAffected()
}
