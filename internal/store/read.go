package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const runColumns = `
	id, started_at, ruleset_path, lexicon_path, ruleset_hash, lexicon_hash,
	engine_version, rule_language_version, options,
	categories, rules, rewrites, words, changed`

// ListRuns returns the most recent runs, newest first.
// A limit of 0 or less returns every run.
//
// Returns an empty slice (not nil) if no runs are recorded.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT` + runColumns + `
		FROM runs
		ORDER BY started_at DESC, id COLLATE BINARY DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
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

// ReadRun returns one run and its output lines in seq order.
// Returns an error wrapping ErrRunNotFound for an unknown ID.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, []Output, error) {
	row := s.db.QueryRowContext(ctx, `SELECT`+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, nil, err
	}

	outputs, err := s.readOutputs(ctx, id)
	if err != nil {
		return Run{}, nil, err
	}
	return run, outputs, nil
}

// RunsWithRuleSet returns runs recorded for a rule set hash, newest first.
func (s *Store) RunsWithRuleSet(ctx context.Context, ruleSetHash string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT`+runColumns+`
		FROM runs
		WHERE ruleset_hash = ?
		ORDER BY started_at DESC, id COLLATE BINARY DESC
	`, ruleSetHash)
	if err != nil {
		return nil, fmt.Errorf("query runs by rule set: %w", err)
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

func (s *Store) readOutputs(ctx context.Context, runID string) ([]Output, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, word, line
		FROM outputs
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outputs: %w", err)
	}
	defer rows.Close()

	outputs := []Output{}
	for rows.Next() {
		var o Output
		if err := rows.Scan(&o.Seq, &o.Word, &o.Line); err != nil {
			return nil, fmt.Errorf("scan output: %w", err)
		}
		outputs = append(outputs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outputs: %w", err)
	}
	return outputs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(r rowScanner) (Run, error) {
	var (
		run       Run
		startedAt string
		optsJSON  string
	)
	err := r.Scan(
		&run.ID,
		&startedAt,
		&run.RuleSetPath,
		&run.LexiconPath,
		&run.RuleSetHash,
		&run.LexiconHash,
		&run.EngineVersion,
		&run.RuleLanguageVersion,
		&optsJSON,
		&run.Counts.Categories,
		&run.Counts.Rules,
		&run.Counts.Rewrites,
		&run.Counts.Words,
		&run.Counts.Changed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	if run.StartedAt, err = parseTime(startedAt); err != nil {
		return Run{}, err
	}
	if run.Options, err = unmarshalOptions(optsJSON); err != nil {
		return Run{}, err
	}
	return run, nil
}
