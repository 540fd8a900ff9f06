package engine

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schyrsivochter/soundchange/internal/ir"
)

var sampleWords = []string{" adoptare ", " iocus ", " civitatem ", " filia ", " ", " a "}

// =============================================================================
// Properties
// =============================================================================

func TestTransduce_EmptyRuleListIsIdentity(t *testing.T) {
	tr := buildTransducer(t, nil)
	for _, w := range sampleWords {
		out, err := tr.Transduce(ir.Word{Text: w, Gloss: " ‣ x"})
		require.NoError(t, err)
		assert.Equal(t, w, out.Output)
		assert.Equal(t, w, out.Input)
		assert.Equal(t, " ‣ x", out.Gloss)
	}
}

func TestTransduce_PureDeletionLength(t *testing.T) {
	tests := []struct {
		rule   string
		target string
		word   string
	}{
		{"p//_", "p", " papapa "},
		{"ab//_", "ab", " abcab "},
		{"t//V_V", "t", " atata "},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			out := transduce(t, tt.word, tt.rule)
			removed := utf8.RuneCountInString(tt.word) - utf8.RuneCountInString(out)
			assert.Zero(t, removed%utf8.RuneCountInString(tt.target))
			occurrences := removed / utf8.RuneCountInString(tt.target)
			assert.Positive(t, occurrences)
			assert.Equal(t, strings.Count(tt.word, tt.target)-strings.Count(out, tt.target), occurrences)
		})
	}
}

func TestTransduce_EpenthesisNeverShrinksAndTerminates(t *testing.T) {
	for _, rule := range []string{"/e/_", "/e/_s", "/e/s_", "/e/#_", "/ə/C_C"} {
		tr := buildTransducer(t, []string{rule})
		for _, w := range []string{" st ", " strata ", " ", " a "} {
			out, err := tr.Transduce(ir.Word{Text: w})
			require.NoError(t, err, "%s on %q", rule, w)
			assert.GreaterOrEqual(t, utf8.RuneCountInString(out.Output), utf8.RuneCountInString(w),
				"%s on %q", rule, w)
		}
	}
}

func TestTransduce_MetathesisIsSelfInverse(t *testing.T) {
	rule := `[ab][ab]/\\/x_x`
	once := transduce(t, " xabx ", rule)
	assert.Equal(t, " xbax ", once)
	assert.Equal(t, " xabx ", transduce(t, " xabx ", rule, rule))
}

func TestTransduce_ExceptionIsPerOccurrence(t *testing.T) {
	// Both environments hold somewhere in the word; only the occurrence
	// whose own target satisfies the exception is kept.
	assert.Equal(t, " atreta ", transduce(t, " atrata ", "a/e/_t/_tr"))
}

func TestTransduce_GeminationRepeatsReplacement(t *testing.T) {
	assert.Equal(t, " axxa ", transduce(t, " aka ", "k/x²/_"))
}

func TestTransduce_ShortDestinationCategoryDrops(t *testing.T) {
	assert.Equal(t, " aa ", transduce(t, " aka ", "S/Z/V_V"))
	assert.Equal(t, " aba ", transduce(t, " apa ", "S/Z/V_V"))
}

// =============================================================================
// Scenarios
// =============================================================================

func TestTransduce_Adoptare(t *testing.T) {
	assert.Equal(t, " adotare ", transduce(t, " adoptare ", "p//V_t"))
}

func TestTransduce_Iocus(t *testing.T) {
	assert.Equal(t, " jocus ", transduce(t, " iocus ", "i/j/_V"))
}

func TestTransduce_RulesApplyInOrder(t *testing.T) {
	assert.Equal(t, " adotari ", transduce(t, " adoptare ", "p//V_t", "e/i/_#"))
	// once p has become b the deletion no longer sees it
	assert.Equal(t, " adobtare ", transduce(t, " adoptare ", "p/b/_", "p//V_t"))
	assert.Equal(t, " adotare ", transduce(t, " adoptare ", "p//V_t", "p/b/_"))
}

// =============================================================================
// Trace
// =============================================================================

func TestTrace_OnlyChangingRules(t *testing.T) {
	tr := buildTransducer(t, []string{"p//V_t", "x/y/_", "e/i/_#"})
	steps, err := tr.Trace(" adoptare ")
	require.NoError(t, err)
	require.Len(t, steps, 2)

	assert.Equal(t, "p//V_t", steps[0].Rule.Raw)
	assert.Equal(t, " adoptare ", steps[0].Before)
	assert.Equal(t, " adotare ", steps[0].After)

	assert.Equal(t, "e/i/_#", steps[1].Rule.Raw)
	assert.Equal(t, 3, steps[1].Rule.Line)
	assert.Equal(t, " adotari ", steps[1].After)
}

func TestNewTransducer_CopiesRules(t *testing.T) {
	tr := buildTransducer(t, []string{"p//V_t"})
	assert.Equal(t, 1, tr.Len())
}
