package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Rule set lines, in the same form as a .sc file.
	Categories []string `yaml:"categories,omitempty"`
	Rewrites   []string `yaml:"rewrites,omitempty"`
	Rules      []string `yaml:"rules,omitempty"`

	// Words are the lexicon lines, glosses included.
	Words []string `yaml:"words"`

	// Output settings. Template overrides OutFormat when set.
	OutFormat     int    `yaml:"out_format,omitempty"`
	Template      string `yaml:"template,omitempty"`
	RewriteOutput bool   `yaml:"rewrite_output,omitempty"`

	// Expect, when present, is the complete output, one line per word.
	Expect []string `yaml:"expect,omitempty"`

	// Assertions check individual properties of the run.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Assertion checks one property of a scenario run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Line is the expected output line (output_contains, stored_output).
	Line string `yaml:"line,omitempty"`

	// Lines is the expected order of output lines (output_order).
	Lines []string `yaml:"lines,omitempty"`

	// Count is the expected number of changed words (changed_count).
	Count int `yaml:"count,omitempty"`

	// Word and Rule name one word and one rule line (rule_applies).
	Word string `yaml:"word,omitempty"`
	Rule string `yaml:"rule,omitempty"`

	// Applies is the expected outcome of rule_applies. Nil means true.
	Applies *bool `yaml:"applies,omitempty"`

	// Seq is the output position in the recorded run (stored_output).
	Seq int `yaml:"seq,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains = "output_contains"
	AssertOutputOrder    = "output_order"
	AssertChangedCount   = "changed_count"
	AssertRuleApplies    = "rule_applies"
	AssertStoredOutput   = "stored_output"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Words) == 0 {
		return fmt.Errorf("words list is required and must be non-empty")
	}
	if s.Expect == nil && len(s.Assertions) == 0 {
		return fmt.Errorf("expect or assertions is required")
	}
	if s.Expect != nil && len(s.Expect) != len(s.Words) {
		return fmt.Errorf("expect has %d lines for %d words", len(s.Expect), len(s.Words))
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputContains:
		// An empty line is a valid expectation.
	case AssertOutputOrder:
		if len(a.Lines) == 0 {
			return fmt.Errorf("assertions[%d]: lines list is required for output_order", index)
		}
	case AssertChangedCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for changed_count", index)
		}
	case AssertRuleApplies:
		if a.Word == "" {
			return fmt.Errorf("assertions[%d]: word is required for rule_applies", index)
		}
		if a.Rule == "" {
			return fmt.Errorf("assertions[%d]: rule is required for rule_applies", index)
		}
	case AssertStoredOutput:
		if a.Seq < 0 {
			return fmt.Errorf("assertions[%d]: seq must be non-negative for stored_output", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
