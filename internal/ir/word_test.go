package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWord(t *testing.T) {
	tests := []struct {
		line string
		want Word
	}{
		{"lector", Word{Text: "lector"}},
		{"acy ‣ asu", Word{Text: "acy ", Gloss: " ‣ asu"}},
		{"acy‣", Word{Text: "acy", Gloss: " ‣"}},
		{"‣ only gloss", Word{Text: "", Gloss: " ‣ only gloss"}},
		{"a ‣ b ‣ c", Word{Text: "a ", Gloss: " ‣ b ‣ c"}},
		{"", Word{}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWord(tt.line))
		})
	}
}

func TestPadUnpad(t *testing.T) {
	assert.Equal(t, " word ", Pad("word"))
	assert.Equal(t, " word ", Pad("  word \t"))
	assert.Equal(t, "  ", Pad(""))
	assert.Equal(t, "word", Unpad(" word "))
}

func TestRule_String(t *testing.T) {
	r := Rule{Target: "p", Environment: "V_t"}
	assert.Equal(t, "p//V_t", r.String())

	r.Exception = "_s"
	assert.Equal(t, "p//V_t/_s", r.String())
}

func TestRule_Kinds(t *testing.T) {
	assert.True(t, Rule{Replacement: `\\`}.IsMetathesis())
	assert.False(t, Rule{Replacement: `\`}.IsMetathesis())
	assert.True(t, Rule{Replacement: "e"}.IsEpenthesis())
	assert.False(t, Rule{Target: "a"}.IsEpenthesis())
}
