package pipeline

import (
	"strings"

	"github.com/schyrsivochter/soundchange/internal/ir"
)

// Rewriter applies literal rewrite rules in both directions.
type Rewriter struct {
	rules []ir.RewriteRule
}

// NewRewriter creates a rewriter applying rules in order.
func NewRewriter(rules []ir.RewriteRule) *Rewriter {
	rulesCopy := make([]ir.RewriteRule, len(rules))
	copy(rulesCopy, rules)
	return &Rewriter{rules: rulesCopy}
}

// Forward replaces every Original with its Substitute, rule by rule.
func (rw *Rewriter) Forward(s string) string {
	for _, r := range rw.rules {
		if r.Original == "" {
			continue
		}
		s = strings.ReplaceAll(s, r.Original, r.Substitute)
	}
	return s
}

// Reverse replaces every Substitute with its Original, in the same rule
// order as Forward.
func (rw *Rewriter) Reverse(s string) string {
	for _, r := range rw.rules {
		if r.Substitute == "" {
			continue
		}
		s = strings.ReplaceAll(s, r.Substitute, r.Original)
	}
	return s
}

// Len returns the number of rewrite rules.
func (rw *Rewriter) Len() int {
	return len(rw.rules)
}
