package engine

import (
	"fmt"

	"github.com/schyrsivochter/soundchange/internal/compiler"
	"github.com/schyrsivochter/soundchange/internal/ir"
)

// Transducer threads a word through an ordered rule list.
type Transducer struct {
	rules []*compiler.CompiledRule
	exec  *Executor
}

// Step records one rule that changed a word.
type Step struct {
	Rule   ir.Rule `json:"rule"`
	Before string  `json:"before"`
	After  string  `json:"after"`
}

// NewTransducer creates a transducer for rules compiled against reg.
//
// The rules slice is copied; rule order is application order.
func NewTransducer(rules []*compiler.CompiledRule, reg *ir.Registry, opts ...Option) *Transducer {
	rulesCopy := make([]*compiler.CompiledRule, len(rules))
	copy(rulesCopy, rules)
	return &Transducer{
		rules: rulesCopy,
		exec:  NewExecutor(reg, opts...),
	}
}

// Len returns the number of rules.
func (t *Transducer) Len() int {
	return len(t.rules)
}

// Transduce applies every rule in order to w.Text. The gloss is carried
// through untouched.
func (t *Transducer) Transduce(w ir.Word) (ir.Transduction, error) {
	out := w.Text
	for _, r := range t.rules {
		next, err := t.exec.Apply(out, r)
		if err != nil {
			return ir.Transduction{}, fmt.Errorf("rule line %d: %w", r.Rule.Line, err)
		}
		out = next
	}
	return ir.Transduction{Input: w.Text, Output: out, Gloss: w.Gloss}, nil
}

// Trace applies every rule in order to text and returns one Step per rule
// that changed it. Rules that leave the word as it was are omitted.
func (t *Transducer) Trace(text string) ([]Step, error) {
	var steps []Step
	cur := text
	for _, r := range t.rules {
		next, err := t.exec.Apply(cur, r)
		if err != nil {
			return steps, fmt.Errorf("rule line %d: %w", r.Rule.Line, err)
		}
		if next != cur {
			steps = append(steps, Step{Rule: r.Rule, Before: cur, After: next})
		}
		cur = next
	}
	return steps, nil
}
