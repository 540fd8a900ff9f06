package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schyrsivochter/soundchange/internal/ir"
)

// =============================================================================
// Rewrite Parsing Tests
// =============================================================================

func TestParseRewrites(t *testing.T) {
	rws, err := ParseRewrites([]string{"lh|lj", "", "  ", "nh|ñ"})
	require.NoError(t, err)
	assert.Equal(t, []ir.RewriteRule{
		{Original: "lh", Substitute: "lj"},
		{Original: "nh", Substitute: "ñ"},
	}, rws)
}

func TestParseRewrites_HalvesNotTrimmed(t *testing.T) {
	rws, err := ParseRewrites([]string{"a |b"})
	require.NoError(t, err)
	require.Len(t, rws, 1)
	assert.Equal(t, "a ", rws[0].Original)
}

func TestParseRewrites_SeparatorCount(t *testing.T) {
	for _, line := range []string{"lhlj", "a|b|c"} {
		_, err := ParseRewrites([]string{line})
		var rse *RuleSetError
		require.ErrorAs(t, err, &rse, line)
		assert.Equal(t, ErrRewriteSeparator, rse.Code)
		assert.Equal(t, line, rse.Text)
		assert.Equal(t, 1, rse.Line)
	}
}

// =============================================================================
// Category Parsing Tests
// =============================================================================

func TestParseCategories(t *testing.T) {
	reg, err := ParseCategories([]string{"V=aeiou", "", " C=ptk ", "E="})
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())

	c, ok := reg.Lookup('C')
	require.True(t, ok)
	assert.Equal(t, "ptk", string(c))

	e, ok := reg.Lookup('E')
	require.True(t, ok)
	assert.Empty(t, e)
}

func TestParseCategories_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		code string
	}{
		{"no equals", "Vaeiou", ErrCategorySeparator},
		{"two equals", "V=ae=iou", ErrCategorySeparator},
		{"long identifier", "VV=aeiou", ErrCategoryID},
		{"empty identifier", "=aeiou", ErrCategoryID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCategories([]string{"C=ptk", tt.line})
			var rse *RuleSetError
			require.ErrorAs(t, err, &rse)
			assert.Equal(t, tt.code, rse.Code)
			assert.Equal(t, 2, rse.Line)
			assert.Contains(t, rse.Error(), tt.code)
		})
	}
}

// =============================================================================
// Rule Parsing Tests
// =============================================================================

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]string{
		"* comment",
		"",
		"p//V_t",
		"  c→g/V_V/_l  ",
	})
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, ir.Rule{
		Target: "p", Replacement: "", Environment: "V_t", Exception: "",
		Raw: "p//V_t", Line: 3,
	}, rules[0])

	assert.Equal(t, "c", rules[1].Target)
	assert.Equal(t, "g", rules[1].Replacement)
	assert.Equal(t, "V_V", rules[1].Environment)
	assert.Equal(t, "_l", rules[1].Exception)
	assert.Equal(t, "c/g/V_V/_l", rules[1].Raw)
}

func TestParseRules_SeparatorCount(t *testing.T) {
	for _, line := range []string{"a/b", "a/b/_/_/x", "ab"} {
		_, err := ParseRules([]string{line})
		var rse *RuleSetError
		require.ErrorAs(t, err, &rse, line)
		assert.Equal(t, ErrRuleSeparators, rse.Code)
	}
}
