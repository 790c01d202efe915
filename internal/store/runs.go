package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/pgqlcheck/internal/report"
)

// ErrRunNotFound is returned when a run ID is not in the store.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded check run.
type Run struct {
	ID          string    `json:"id"`
	Seq         int64     `json:"seq"`
	StartedAt   time.Time `json:"started_at"`
	Version     string    `json:"lang_version"`
	Queries     int       `json:"queries"`
	Failed      int       `json:"failed"`
	Errors      int       `json:"errors"`
	Diagnostics int       `json:"diagnostics"`
}

// RecordRun stores a report as a new run. langVersion is the run-level
// language version; individual queries keep their own. The run and all its
// rows are written in one transaction.
func (s *Store) RecordRun(ctx context.Context, r *report.Report, langVersion string) (Run, error) {
	run := Run{
		ID:          uuid.Must(uuid.NewV7()).String(),
		StartedAt:   s.now().UTC().Truncate(time.Second),
		Version:     langVersion,
		Queries:     r.Summary.Queries,
		Failed:      r.Summary.Failed,
		Errors:      r.Summary.Errors,
		Diagnostics: r.Summary.Diagnostics,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return Run{}, fmt.Errorf("record run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, started_at, lang_version, queries, failed, errors, diagnostics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Seq, run.StartedAt.Format(time.RFC3339), run.Version,
		run.Queries, run.Failed, run.Errors, run.Diagnostics)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	for i, q := range r.Queries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO query_results (run_id, seq, name, source, lang_version, status, error)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, q.Name, q.Source, q.Version, q.Status, q.Error)
		if err != nil {
			return Run{}, fmt.Errorf("record query %q: %w", q.Name, err)
		}
		for j, d := range q.Diagnostics {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO diagnostics (run_id, query_seq, seq, code, kind, severity, pos, node, message)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, run.ID, i, j, d.Code, d.Kind, d.Severity, d.Pos, d.Node, d.Message)
			if err != nil {
				return Run{}, fmt.Errorf("record diagnostic of %q: %w", q.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}
	return run, nil
}

// Runs returns recorded runs, most recent first. limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, seq, started_at, lang_version, queries, failed, errors, diagnostics
		FROM runs
		ORDER BY seq DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, started_at, lang_version, queries, failed, errors, diagnostics
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run     Run
		started string
	)
	err := sc.Scan(&run.ID, &run.Seq, &started, &run.Version, &run.Queries, &run.Failed, &run.Errors, &run.Diagnostics)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt, err = time.Parse(time.RFC3339, started)
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: started_at: %w", run.ID, err)
	}
	return run, nil
}

// Results returns the per-query results of a run, with their diagnostics,
// in the order they were recorded.
func (s *Store) Results(ctx context.Context, runID string) ([]report.Query, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, name, source, lang_version, status, error
		FROM query_results
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}

	var (
		results []report.Query
		seqs    []int
	)
	for rows.Next() {
		var (
			q   report.Query
			seq int
		)
		if err := rows.Scan(&seq, &q.Name, &q.Source, &q.Version, &q.Status, &q.Error); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, q)
		seqs = append(seqs, seq)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	for i, seq := range seqs {
		entries, err := s.diagnostics(ctx, runID, seq)
		if err != nil {
			return nil, err
		}
		results[i].Diagnostics = entries
	}
	return results, nil
}

func (s *Store) diagnostics(ctx context.Context, runID string, querySeq int) ([]report.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, kind, severity, pos, node, message
		FROM diagnostics
		WHERE run_id = ? AND query_seq = ?
		ORDER BY seq ASC
	`, runID, querySeq)
	if err != nil {
		return nil, fmt.Errorf("query diagnostics: %w", err)
	}
	defer rows.Close()

	var entries []report.Entry
	for rows.Next() {
		var e report.Entry
		if err := rows.Scan(&e.Code, &e.Kind, &e.Severity, &e.Pos, &e.Node, &e.Message); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diagnostics: %w", err)
	}
	return entries, nil
}

// CountByKind returns the number of recorded diagnostics per kind across all
// runs.
func (s *Store) CountByKind(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*) FROM diagnostics GROUP BY kind ORDER BY kind COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("count diagnostics: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}
