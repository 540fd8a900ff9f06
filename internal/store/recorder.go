package store

import (
	"context"
	"fmt"
)

// Recorder stamps runs with an ID and a start time before writing them.
type Recorder struct {
	store *Store
	ids   IDGenerator
	clock Clock
}

// NewRecorder creates a recorder. A nil ids uses UUIDv7Generator and a nil
// clock uses SystemClock.
func NewRecorder(s *Store, ids IDGenerator, clock Clock) *Recorder {
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Recorder{store: s, ids: ids, clock: clock}
}

// Record assigns run.ID and run.StartedAt, writes the run with its outputs
// and returns the stamped run.
func (r *Recorder) Record(ctx context.Context, run Run, outputs []Output) (Run, error) {
	run.ID = r.ids.Generate()
	run.StartedAt = r.clock.Now()
	if err := r.store.WriteRun(ctx, run, outputs); err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// OutputsFromLines pairs word lines with their output lines, numbered from 0.
// words and lines must have the same length.
func OutputsFromLines(words, lines []string) ([]Output, error) {
	if len(words) != len(lines) {
		return nil, fmt.Errorf("have %d output lines for %d words", len(lines), len(words))
	}
	out := make([]Output, len(words))
	for i := range words {
		out[i] = Output{Seq: i, Word: words[i], Line: lines[i]}
	}
	return out, nil
}
