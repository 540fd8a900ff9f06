package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schyrsivochter/soundchange/internal/engine"
	"github.com/schyrsivochter/soundchange/internal/ir"
	"github.com/schyrsivochter/soundchange/internal/pipeline"
	"github.com/schyrsivochter/soundchange/internal/store"
	"github.com/schyrsivochter/soundchange/internal/testutil"
)

// Harness is the scenario execution engine.
// It runs scenarios with a deterministic clock and run IDs.
type Harness struct {
	store    *store.Store
	recorder *store.Recorder
	logger   *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory store for isolation.
//
// Execution flow:
// 1. Prepare the rule set (rule-set errors abort the scenario)
// 2. Transduce and format every word with a single worker
// 3. Record the run in the store
// 4. Compare the output with expect and evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store: st,
		recorder: store.NewRecorder(st,
			testutil.NewSequenceIDGenerator("run"),
			testutil.NewDeterministicClock(testutil.DefaultClockStart)),
		logger: slog.New(slog.DiscardHandler),
	}
	return h.run(ctx, scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	opts := scenarioOptions(scenario)
	opts.Logger = h.logger

	batch, err := pipeline.Prepare(scenarioInput(scenario), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rule set: %w", err)
	}

	sink := &pipeline.SliceSink{}
	counts, err := batch.Run(ctx, scenario.Words, 1, sink)
	if err != nil {
		return nil, fmt.Errorf("failed to run batch: %w", err)
	}

	result := NewResult()
	result.Lines = sink.Lines()
	result.Counts = counts

	run, err := h.record(ctx, scenario, opts, counts, result.Lines)
	if err != nil {
		return nil, err
	}
	result.RunID = run.ID

	checkExpect(result, scenario.Expect)

	actx := &AssertionContext{
		Ctx:   ctx,
		Store: h.store,
		Batch: batch,
		RunID: run.ID,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) record(ctx context.Context, s *Scenario, opts pipeline.Options, counts pipeline.Result, lines []string) (store.Run, error) {
	outputs, err := store.OutputsFromLines(s.Words, lines)
	if err != nil {
		return store.Run{}, err
	}
	run := store.Run{
		RuleSetHash:         ir.RuleSetHash(s.Categories, s.Rewrites, s.Rules),
		LexiconHash:         ir.LexiconHash(s.Words),
		EngineVersion:       ir.EngineVersion,
		RuleLanguageVersion: ir.RuleLanguageVersion,
		Options: store.RunOptions{
			OutFormat:     opts.OutFormat,
			Template:      opts.Template,
			RewriteOutput: opts.RewriteOutput,
			Normalize:     opts.Normalize,
		},
		Counts: store.RunCounts(counts),
	}
	return h.recorder.Record(ctx, run, outputs)
}

func scenarioInput(s *Scenario) pipeline.Input {
	return pipeline.Input{
		Categories: s.Categories,
		Rules:      s.Rules,
		Rewrites:   s.Rewrites,
		Words:      s.Words,
	}
}

func scenarioOptions(s *Scenario) pipeline.Options {
	return pipeline.Options{
		OutFormat:     s.OutFormat,
		Template:      s.Template,
		RewriteOutput: s.RewriteOutput,
		Workers:       1,
		Normalize:     true,
		MaxScanFactor: engine.DefaultMaxScanFactor,
	}
}

// checkExpect compares the output with the expected lines.
func checkExpect(result *Result, expect []string) {
	if expect == nil {
		return
	}
	for i, want := range expect {
		if i >= len(result.Lines) {
			result.AddError(fmt.Sprintf("line %d: expected %q, got nothing", i+1, want))
			continue
		}
		if got := result.Lines[i]; got != want {
			result.AddError(fmt.Sprintf("line %d: expected %q, got %q", i+1, want, got))
		}
	}
}
