package store

import (
	"context"
	"fmt"
)

// WriteRun inserts a run and its output lines in one transaction.
// Uses ON CONFLICT DO NOTHING for idempotency - writing the same run ID
// twice keeps the first record.
//
// Output Seq values must be unique within the run.
func (s *Store) WriteRun(ctx context.Context, run Run, outputs []Output) error {
	optsJSON, err := marshalOptions(run.Options)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, started_at, ruleset_path, lexicon_path, ruleset_hash, lexicon_hash,
		 engine_version, rule_language_version, options,
		 categories, rules, rewrites, words, changed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		formatTime(run.StartedAt),
		run.RuleSetPath,
		run.LexiconPath,
		run.RuleSetHash,
		run.LexiconHash,
		run.EngineVersion,
		run.RuleLanguageVersion,
		optsJSON,
		run.Counts.Categories,
		run.Counts.Rules,
		run.Counts.Rewrites,
		run.Counts.Words,
		run.Counts.Changed,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Already recorded.
		return tx.Commit()
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO outputs (run_id, seq, word, line)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write run outputs: prepare: %w", err)
	}
	defer stmt.Close()

	for _, o := range outputs {
		if _, err := stmt.ExecContext(ctx, run.ID, o.Seq, o.Word, o.Line); err != nil {
			return fmt.Errorf("write run output %d: %w", o.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: commit: %w", err)
	}
	return nil
}

// DeleteRun removes a run and its outputs. Deleting an unknown ID returns
// ErrRunNotFound.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete run %s: %w", id, ErrRunNotFound)
	}
	return nil
}
