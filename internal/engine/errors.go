package engine

import (
	"errors"
	"fmt"
)

// RuntimeError represents an internal failure while applying rules.
//
// Unlike compiler.RuleSetError these are not caused by malformed input;
// they signal that a scan did not terminate within its bound.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Rule is the raw text of the rule being applied.
	Rule string

	// Word is the word as it stood when the error was raised.
	Word string

	// Details contains additional context.
	Details map[string]string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeScanOverrun indicates a rule pass exceeded its iteration quota.
	ErrCodeScanOverrun RuntimeErrorCode = "SCAN_OVERRUN"

	// ErrCodeMatch indicates the regexp engine failed while matching.
	ErrCodeMatch RuntimeErrorCode = "MATCH_FAILED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("%s: %s (rule=%q, word=%q)", e.Code, e.Message, e.Rule, e.Word)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsScanOverrun returns true if the error is a scan overrun.
// Uses errors.As to handle wrapped errors.
func IsScanOverrun(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeScanOverrun
	}
	return false
}

// NewScanOverrunError creates a RuntimeError for an exceeded scan quota.
func NewScanOverrunError(rule, word string, steps, limit int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeScanOverrun,
		Message: fmt.Sprintf("scan exceeded iteration limit (%d > %d)", steps, limit),
		Rule:    rule,
		Word:    word,
		Details: map[string]string{
			"steps": fmt.Sprintf("%d", steps),
			"limit": fmt.Sprintf("%d", limit),
		},
	}
}

func newMatchError(rule, word string, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeMatch,
		Message: err.Error(),
		Rule:    rule,
		Word:    word,
	}
}
