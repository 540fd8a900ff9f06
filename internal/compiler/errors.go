package compiler

import (
	"errors"
	"fmt"
)

// Rule-set error codes (E200-E299)
const (
	ErrCategorySeparator = "E201" // category line without exactly one '='
	ErrCategoryID        = "E202" // category identifier not exactly one character
	ErrRewriteSeparator  = "E203" // rewrite line without exactly one '|'
	ErrRuleSeparators    = "E204" // rule line with a '/' count outside {2,3}
	ErrAnchor            = "E205" // environment or exception without exactly one '_'
	ErrPatternSyntax     = "E206" // malformed brackets, optional groups or gemination
)

// RuleSetError is the single error taxonomy for configuration problems in
// categories, rewrite rules and sound change rules. It carries the offending
// raw line and a human-readable reason.
type RuleSetError struct {
	Code   string `json:"code"`
	Line   int    `json:"line,omitempty"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Error implements the error interface.
func (e *RuleSetError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %q: %s", e.Code, e.Line, e.Text, e.Reason)
	}
	return fmt.Sprintf("[%s] %q: %s", e.Code, e.Text, e.Reason)
}

// IsRuleSetError returns true if err is (or wraps) a RuleSetError.
func IsRuleSetError(err error) bool {
	var rse *RuleSetError
	return errors.As(err, &rse)
}

// PatternError reports a malformed rule-language expression. CompileRule
// turns it into a RuleSetError carrying the whole rule.
type PatternError struct {
	Expr   string
	Offset int // rune offset into Expr
	Reason string
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Reason, e.Offset, e.Expr)
}
