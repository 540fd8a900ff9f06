package harness

import "github.com/schyrsivochter/soundchange/internal/pipeline"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// RunID identifies the run in the harness's history store.
	RunID string `json:"run_id"`

	// Lines are the formatted output lines, one per word.
	Lines []string `json:"lines"`

	// Counts summarises the batch.
	Counts pipeline.Result `json:"counts"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Lines:  []string{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
