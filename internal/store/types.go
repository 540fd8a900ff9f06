package store

import (
	"errors"
	"time"
)

// ErrRunNotFound is returned by ReadRun for an unknown ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded batch.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`

	RuleSetPath string `json:"ruleset_path,omitempty"`
	LexiconPath string `json:"lexicon_path,omitempty"`
	RuleSetHash string `json:"ruleset_hash"`
	LexiconHash string `json:"lexicon_hash"`

	EngineVersion       string `json:"engine_version"`
	RuleLanguageVersion string `json:"rule_language_version"`

	Options RunOptions `json:"options"`
	Counts  RunCounts  `json:"counts"`
}

// RunOptions are the settings that influence a run's output.
type RunOptions struct {
	OutFormat     int    `json:"out_format"`
	Template      string `json:"template,omitempty"`
	RewriteOutput bool   `json:"rewrite_output"`
	Normalize     bool   `json:"normalize"`
}

// RunCounts summarises a run.
type RunCounts struct {
	Categories int `json:"categories"`
	Rules      int `json:"rules"`
	Rewrites   int `json:"rewrites"`
	Words      int `json:"words"`
	Changed    int `json:"changed"`
}

// Output is one output line of a run, with the word line it came from.
type Output struct {
	Seq  int    `json:"seq"`
	Word string `json:"word"`
	Line string `json:"line"`
}
