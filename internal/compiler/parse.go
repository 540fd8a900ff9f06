package compiler

import (
	"strings"
	"unicode/utf8"

	"github.com/schyrsivochter/soundchange/internal/ir"
)

// ParseRewrites parses "original|substitute" lines, in order.
// Blank lines are skipped; the two halves are not trimmed.
func ParseRewrites(lines []string) ([]ir.RewriteRule, error) {
	var rewrites []ir.RewriteRule
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Count(line, string(ir.RewriteSeparator)) != 1 {
			return nil, &RuleSetError{
				Code:   ErrRewriteSeparator,
				Line:   i + 1,
				Text:   line,
				Reason: "rewrite rule must contain exactly one pipe",
			}
		}
		orig, sub, _ := strings.Cut(line, string(ir.RewriteSeparator))
		rewrites = append(rewrites, ir.RewriteRule{Original: orig, Substitute: sub})
	}
	return rewrites, nil
}

// ParseCategories parses "K=members" lines into a registry.
//
// Lines are expected to be rewritten already. Surrounding whitespace is
// trimmed from the line but not from either side of the '='.
func ParseCategories(lines []string) (*ir.Registry, error) {
	var cats []ir.Category
	for i, raw := range lines {
		cat, err := parseCategory(i+1, raw)
		if err != nil {
			return nil, err
		}
		if cat != nil {
			cats = append(cats, *cat)
		}
	}
	return ir.NewRegistry(cats), nil
}

// parseCategory returns nil, nil for blank lines.
func parseCategory(lineNo int, raw string) (*ir.Category, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil, nil
	}
	if strings.Count(line, string(ir.CategorySep)) != 1 {
		return nil, &RuleSetError{
			Code:   ErrCategorySeparator,
			Line:   lineNo,
			Text:   line,
			Reason: "category must contain exactly one equals sign",
		}
	}
	key, members, _ := strings.Cut(line, string(ir.CategorySep))
	if utf8.RuneCountInString(key) != 1 {
		return nil, &RuleSetError{
			Code:   ErrCategoryID,
			Line:   lineNo,
			Text:   line,
			Reason: "category identifier must be exactly one character",
		}
	}
	id, _ := utf8.DecodeRuneInString(key)
	return &ir.Category{ID: id, Members: []rune(members)}, nil
}

// ParseRules parses "target/replacement/environment[/exception]" lines.
//
// Blank lines and lines starting with '*' are skipped. The arrow '→' is
// accepted as a field separator. Environments are not validated here; see
// CompileRule.
func ParseRules(lines []string) ([]ir.Rule, error) {
	var rules []ir.Rule
	for i, raw := range lines {
		rule, err := parseRule(i+1, raw)
		if err != nil {
			return nil, err
		}
		if rule != nil {
			rules = append(rules, *rule)
		}
	}
	return rules, nil
}

// parseRule returns nil, nil for blank and comment lines.
func parseRule(lineNo int, raw string) (*ir.Rule, error) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, string(ir.CommentPrefix)) {
		return nil, nil
	}
	line = strings.ReplaceAll(line, string(ir.Arrow), string(ir.FieldSeparator))

	fields := strings.Split(line, string(ir.FieldSeparator))
	switch len(fields) {
	case 3:
		fields = append(fields, "")
	case 4:
	default:
		return nil, &RuleSetError{
			Code:   ErrRuleSeparators,
			Line:   lineNo,
			Text:   line,
			Reason: "sound change rule must contain two or three slashes",
		}
	}

	return &ir.Rule{
		Target:      fields[0],
		Replacement: fields[1],
		Environment: fields[2],
		Exception:   fields[3],
		Raw:         line,
		Line:        lineNo,
	}, nil
}
