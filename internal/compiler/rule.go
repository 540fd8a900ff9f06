package compiler

import (
	"errors"
	"strings"

	"github.com/schyrsivochter/soundchange/internal/ir"
)

// CompiledRule is a rule with its environment and optional exception
// compiled against one registry.
type CompiledRule struct {
	Rule ir.Rule

	Main   *Pattern
	Except *Pattern // nil when the rule has no exception

	// BareEpenthesis is set when both the target and the before-context
	// are empty. The executor then steps one position past every insertion.
	BareEpenthesis bool
}

// CompileRule compiles rule against reg.
//
// Errors are always *RuleSetError: E205 for an environment or exception
// without exactly one anchor, E206 for malformed pattern syntax.
func CompileRule(rule ir.Rule, reg *ir.Registry) (*CompiledRule, error) {
	before, after, err := splitAnchor(rule, rule.Environment, "environment")
	if err != nil {
		return nil, err
	}
	main, err := CompilePattern(rule.Target, before, after, reg)
	if err != nil {
		return nil, patternFailure(rule, err)
	}

	cr := &CompiledRule{
		Rule:           rule,
		Main:           main,
		BareEpenthesis: rule.Target == "" && before == "",
	}

	if rule.Exception != "" {
		xb, xa, err := splitAnchor(rule, rule.Exception, "exception")
		if err != nil {
			return nil, err
		}
		cr.Except, err = CompilePattern(rule.Target, xb, xa, reg)
		if err != nil {
			return nil, patternFailure(rule, err)
		}
	}
	return cr, nil
}

// CompileRules compiles every rule in order, stopping at the first error.
func CompileRules(rules []ir.Rule, reg *ir.Registry) ([]*CompiledRule, error) {
	compiled := make([]*CompiledRule, 0, len(rules))
	for _, r := range rules {
		cr, err := CompileRule(r, reg)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, cr)
	}
	return compiled, nil
}

// Check reports every rule-set error in one pass instead of stopping at the
// first. Rewrites are applied to category and rule lines first, as a batch
// run would. A category error leaves the registry built from the valid
// category lines so rule checking can still proceed.
func Check(categoryLines, rewriteLines, ruleLines []string) []*RuleSetError {
	var errs []*RuleSetError
	collect := func(err error) {
		var rse *RuleSetError
		if errors.As(err, &rse) {
			errs = append(errs, rse)
		}
	}

	rewrites, err := ParseRewrites(rewriteLines)
	if err != nil {
		collect(err)
		rewrites = nil
	}
	forward := func(s string) string {
		for _, rw := range rewrites {
			if rw.Original == "" {
				continue
			}
			s = strings.ReplaceAll(s, rw.Original, rw.Substitute)
		}
		return s
	}

	var cats []ir.Category
	for i, line := range categoryLines {
		cat, err := parseCategory(i+1, forward(line))
		if err != nil {
			collect(err)
			continue
		}
		if cat != nil {
			cats = append(cats, *cat)
		}
	}
	reg := ir.NewRegistry(cats)

	for i, line := range ruleLines {
		rule, err := parseRule(i+1, forward(line))
		if err != nil {
			collect(err)
			continue
		}
		if rule == nil {
			continue
		}
		if _, err := CompileRule(*rule, reg); err != nil {
			collect(err)
		}
	}
	return errs
}

func splitAnchor(rule ir.Rule, env, what string) (string, string, error) {
	if strings.Count(env, string(ir.Anchor)) != 1 {
		return "", "", &RuleSetError{
			Code:   ErrAnchor,
			Line:   rule.Line,
			Text:   rule.Raw,
			Reason: what + " must contain exactly one underscore",
		}
	}
	before, after, _ := strings.Cut(env, string(ir.Anchor))
	return before, after, nil
}

func patternFailure(rule ir.Rule, err error) *RuleSetError {
	return &RuleSetError{
		Code:   ErrPatternSyntax,
		Line:   rule.Line,
		Text:   rule.Raw,
		Reason: err.Error(),
	}
}
