package ir

import "strings"

// Rule is one parsed sound change rule "target/replacement/environment[/exception]".
//
// All four fields are raw rule-language strings. Environment and Exception
// each contain exactly one Anchor once the rule has compiled; Exception may
// be empty.
type Rule struct {
	Target      string `json:"target"`
	Replacement string `json:"replacement"`
	Environment string `json:"environment"`
	Exception   string `json:"exception,omitempty"`

	// Raw is the rule line after rewriting, used in error messages and traces.
	Raw string `json:"raw"`

	// Line is the 1-based position of the rule in its input block.
	Line int `json:"line,omitempty"`
}

// String renders the rule back to rule-language form.
func (r Rule) String() string {
	parts := []string{r.Target, r.Replacement, r.Environment}
	if r.Exception != "" {
		parts = append(parts, r.Exception)
	}
	return strings.Join(parts, string(FieldSeparator))
}

// IsMetathesis reports whether the replacement is the metathesis sentinel.
func (r Rule) IsMetathesis() bool {
	return r.Replacement == Metathesis
}

// IsEpenthesis reports whether the rule inserts text without consuming any.
func (r Rule) IsEpenthesis() bool {
	return r.Target == ""
}

// RewriteRule is a literal substring substitution "original|substitute".
type RewriteRule struct {
	Original   string `json:"original"`
	Substitute string `json:"substitute"`
}

// Word is one lexicon entry. Only Text is transduced.
type Word struct {
	Text  string `json:"text"`
	Gloss string `json:"gloss,omitempty"`
}

// Transduction is the outcome of running every rule over one word.
type Transduction struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Gloss  string `json:"gloss,omitempty"`
}
