// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/portfolio-site/pkg/types"
)

// defaultLimit caps List when no limit is given.
const defaultLimit = 20

// RunSummary is one stored verification run.
type RunSummary struct {
	ID         int64         `json:"id" yaml:"id"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	Passed     bool          `json:"passed" yaml:"passed"`
	CheckCount int           `json:"check_count" yaml:"check_count"`
	Failures   int           `json:"failures" yaml:"failures"`
}

// ListOptions filters List.
type ListOptions struct {
	// FailedOnly restricts results to runs with at least one failure.
	FailedOnly bool

	// Page restricts results to runs with a failed check on this page.
	Page string

	// Limit caps the number of runs. Zero uses the default (20).
	Limit int
}

// List returns stored runs, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]RunSummary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT r.id, r.started_at, r.duration_ms, r.passed, r.checks, r.failures
		FROM runs r WHERE 1=1`)
	if opts.FailedOnly {
		qb.WriteString(` AND r.passed = 0`)
	}
	if opts.Page != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM checks c WHERE c.run_id = r.id AND c.page = ? AND c.passed = 0)`)
		args = append(args, opts.Page)
	}
	qb.WriteString(` ORDER BY r.id DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			r          RunSummary
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&r.ID, &startedAt, &durationMS, &r.Passed, &r.CheckCount, &r.Failures); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing started_at of run %d: %w", r.ID, err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Checks returns the stored checks of a run in insertion order.
func (s *Store) Checks(ctx context.Context, runID int64) ([]types.CheckResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT page, description, kind, pattern, want, got, passed, error
		 FROM checks WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying checks for run %d: %w", runID, err)
	}
	defer rows.Close()

	var checks []types.CheckResult
	for rows.Next() {
		var (
			c    types.CheckResult
			kind string
		)
		if err := rows.Scan(&c.Page, &c.Expectation.Description, &kind, &c.Expectation.Pattern,
			&c.Expectation.Count, &c.Got, &c.Passed, &c.Error); err != nil {
			return nil, fmt.Errorf("scanning check: %w", err)
		}
		c.Expectation.Kind = types.ExpectationKind(kind)
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(checks) == 0 {
		var n int
		if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM runs WHERE id = ?`, runID).Scan(&n); err != nil {
			return nil, fmt.Errorf("looking up run %d: %w", runID, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("run %d not found", runID)
		}
	}
	return checks, nil
}
