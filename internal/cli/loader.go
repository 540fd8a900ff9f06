package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/schyrsivochter/soundchange/internal/pipeline"
)

// bom is removed once from the start of loaded files.
const bom = "\ufeff"

// RuleSet holds the raw lines of a rule set file.
type RuleSet struct {
	Categories []string `json:"categories" yaml:"categories"`
	Rewrites   []string `json:"rewrites" yaml:"rewrites"`
	Rules      []string `json:"rules" yaml:"rules"`
}

// Input combines the rule set with lexicon lines for the pipeline.
func (rs *RuleSet) Input(words []string) pipeline.Input {
	return pipeline.Input{
		Categories: rs.Categories,
		Rules:      rs.Rules,
		Rewrites:   rs.Rewrites,
		Words:      words,
	}
}

// LoadError represents an error that occurred while loading a file.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ruleSetKeys are the fields accepted in YAML and CUE rule sets.
var ruleSetKeys = []string{"categories", "rewrites", "rules"}

// LoadRuleSet reads a rule set, choosing the format by extension:
// .yaml/.yml and .cue are structured documents, anything else is an .sc
// file.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLRuleSet(path, data)
	case ".cue":
		return parseCUERuleSet(path, data)
	default:
		return ParseSC(string(data)), nil
	}
}

// ParseSC splits .sc content into categories, rewrites and rules.
//
// A line containing "=" is a category; otherwise a line containing "/" or
// "→" is a rule; otherwise a line containing "|" is a rewrite. Other lines
// are dropped.
func ParseSC(content string) *RuleSet {
	content = strings.Replace(content, bom, "", 1)
	rs := &RuleSet{}
	for _, line := range splitLines(content) {
		switch {
		case strings.Contains(line, "="):
			rs.Categories = append(rs.Categories, line)
		case strings.Contains(line, "/"), strings.Contains(line, "→"):
			rs.Rules = append(rs.Rules, line)
		case strings.Contains(line, "|"):
			rs.Rewrites = append(rs.Rewrites, line)
		}
	}
	return rs
}

// FormatSC renders rs as .sc content: categories, a blank line, rewrites,
// a blank line, rules.
func FormatSC(rs *RuleSet) string {
	return strings.Join(rs.Categories, "\n") + "\n\n" +
		strings.Join(rs.Rewrites, "\n") + "\n\n" +
		strings.Join(rs.Rules, "\n") + "\n"
}

// LoadLexicon reads word lines from a lexicon file. Leading and trailing
// blank lines are dropped; blank lines between words are kept.
func LoadLexicon(path string) ([]string, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLexicon(string(data)), nil
}

// ParseLexicon splits lexicon content into word lines.
func ParseLexicon(content string) []string {
	content = strings.TrimSpace(strings.Replace(content, bom, "", 1))
	if content == "" {
		return nil
	}
	return splitLines(content)
}

func parseYAMLRuleSet(path string, data []byte) (*RuleSet, error) {
	var rs RuleSet
	dec := yaml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, []byte(bom))))
	dec.KnownFields(true)
	if err := dec.Decode(&rs); err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Path: path, Message: "parsing YAML rule set", Err: err}
	}
	return &rs, nil
}

func parseCUERuleSet(path string, data []byte) (*RuleSet, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Path: path, Message: "building CUE value", Err: err}
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Path: path, Message: "rule set is not concrete", Err: err}
	}

	iter, err := value.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Path: path, Message: "rule set must be a struct", Err: err}
	}
	for iter.Next() {
		if !slices.Contains(ruleSetKeys, iter.Label()) {
			return nil, &LoadError{
				Code:    ErrCodeLoadFailed,
				Path:    path,
				Message: fmt.Sprintf("unknown field %q", iter.Label()),
			}
		}
	}

	var rs RuleSet
	if err := value.Decode(&rs); err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Path: path, Message: "decoding CUE rule set", Err: err}
	}
	return &rs, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "file not found", Err: err}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Path: path, Message: "reading file", Err: err}
	}
	return data, nil
}

// splitLines splits on \n, \r\n and \r.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
