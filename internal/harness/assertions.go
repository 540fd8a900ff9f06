package harness

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/schyrsivochter/soundchange/internal/pipeline"
	"github.com/schyrsivochter/soundchange/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes the full output to help debug the failure.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Output   []string // Full output for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Output) > 0 {
		fmt.Fprintf(&buf, "\nFull output:\n")
		for i, line := range e.Output {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, line)
		}
	}
	return buf.String()
}

// assertOutputContains checks that some output line equals assertion.Line.
func assertOutputContains(lines []string, assertion Assertion) error {
	for _, line := range lines {
		if line == assertion.Line {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertOutputContains,
		Expected: fmt.Sprintf("line %q", assertion.Line),
		Actual:   "not found in output",
		Output:   lines,
	}
}

// assertOutputOrder checks that the lines appear in the given order.
// Lines don't need to be consecutive.
func assertOutputOrder(lines []string, assertion Assertion) error {
	next := 0
	for i, want := range assertion.Lines {
		found := -1
		for j := next; j < len(lines); j++ {
			if lines[j] == want {
				found = j
				break
			}
		}
		if found < 0 {
			actual := fmt.Sprintf("missing line %q", want)
			if i > 0 {
				actual = fmt.Sprintf("line %q not found after %q", want, assertion.Lines[i-1])
			}
			return &AssertionError{
				Type:     AssertOutputOrder,
				Expected: fmt.Sprintf("lines in order: %q", assertion.Lines),
				Actual:   actual,
				Output:   lines,
			}
		}
		next = found + 1
	}
	return nil
}

// assertChangedCount checks the number of words some rule changed.
func assertChangedCount(counts pipeline.Result, assertion Assertion) error {
	if counts.Changed != assertion.Count {
		return &AssertionError{
			Type:     AssertChangedCount,
			Expected: fmt.Sprintf("%d changed words", assertion.Count),
			Actual:   fmt.Sprintf("%d changed words of %d", counts.Changed, counts.Words),
		}
	}
	return nil
}

// assertRuleApplies traces one word and checks whether the named rule
// changed it.
func assertRuleApplies(batch *pipeline.Batch, assertion Assertion) error {
	want := assertion.Applies == nil || *assertion.Applies

	steps, err := batch.Trace(assertion.Word)
	if err != nil {
		return fmt.Errorf("%s: trace %q: %w", AssertRuleApplies, assertion.Word, err)
	}

	var fired []string
	got := false
	for _, s := range steps {
		fired = append(fired, s.Rule.Raw)
		if s.Rule.Raw == assertion.Rule {
			got = true
		}
	}
	if got == want {
		return nil
	}

	verb := "to change"
	if !want {
		verb = "not to change"
	}
	return &AssertionError{
		Type:     AssertRuleApplies,
		Expected: fmt.Sprintf("rule %q %s %q", assertion.Rule, verb, assertion.Word),
		Actual:   fmt.Sprintf("rules that changed it: %q", fired),
	}
}

// assertStoredOutput reads the recorded run back and checks one output line.
func assertStoredOutput(ctx context.Context, st *store.Store, runID string, assertion Assertion) error {
	_, outputs, err := st.ReadRun(ctx, runID)
	if errors.Is(err, store.ErrRunNotFound) {
		return &AssertionError{
			Type:     AssertStoredOutput,
			Expected: fmt.Sprintf("run %s in history", runID),
			Actual:   "run not found",
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", AssertStoredOutput, err)
	}

	for _, o := range outputs {
		if o.Seq != assertion.Seq {
			continue
		}
		if o.Line != assertion.Line {
			return &AssertionError{
				Type:     AssertStoredOutput,
				Expected: fmt.Sprintf("seq %d = %q", assertion.Seq, assertion.Line),
				Actual:   fmt.Sprintf("seq %d = %q (word %q)", o.Seq, o.Line, o.Word),
			}
		}
		return nil
	}
	return &AssertionError{
		Type:     AssertStoredOutput,
		Expected: fmt.Sprintf("seq %d in run %s", assertion.Seq, runID),
		Actual:   fmt.Sprintf("run has %d outputs", len(outputs)),
	}
}

// AssertionContext provides what assertions beyond the output need.
type AssertionContext struct {
	Ctx   context.Context
	Store *store.Store
	Batch *pipeline.Batch
	RunID string
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertOutputContains:
			err = assertOutputContains(result.Lines, assertion)
		case AssertOutputOrder:
			err = assertOutputOrder(result.Lines, assertion)
		case AssertChangedCount:
			err = assertChangedCount(result.Counts, assertion)
		case AssertRuleApplies:
			if actx == nil || actx.Batch == nil {
				err = fmt.Errorf("assertion[%d]: rule_applies requires a prepared batch", i)
			} else {
				err = assertRuleApplies(actx.Batch, assertion)
			}
		case AssertStoredOutput:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: stored_output requires database context", i)
			} else {
				err = assertStoredOutput(actx.Ctx, actx.Store, actx.RunID, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}
