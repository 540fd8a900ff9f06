package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schyrsivochter/soundchange/internal/compiler"
	"github.com/schyrsivochter/soundchange/internal/ir"
)

var testCategories = []string{
	"V=aeiou",
	"C=ptcqbdgmnlrhs",
	"S=ptk",
	"Z=bd",
}

// buildTransducer parses and compiles rule lines against testCategories.
func buildTransducer(t *testing.T, ruleLines []string, opts ...Option) *Transducer {
	t.Helper()
	reg, err := compiler.ParseCategories(testCategories)
	require.NoError(t, err)
	rules, err := compiler.ParseRules(ruleLines)
	require.NoError(t, err)
	compiled, err := compiler.CompileRules(rules, reg)
	require.NoError(t, err)
	return NewTransducer(compiled, reg, opts...)
}

// transduce runs text (already padded) through ruleLines.
func transduce(t *testing.T, text string, ruleLines ...string) string {
	t.Helper()
	out, err := buildTransducer(t, ruleLines).Transduce(ir.Word{Text: text})
	require.NoError(t, err)
	return out.Output
}
