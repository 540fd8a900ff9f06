package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes content to a scenario file in a temp directory.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: voicing
description: "Voicing between vowels"
categories: ["V=aeiou", "S=ptk", "Z=bdg"]
rules: ["S/Z/V_V"]
words: ["apa", "ata ‣ gloss"]
out_format: 1
expect: ["apa → aba", "ata → ada ‣ gloss"]
assertions:
  - type: changed_count
    count: 2
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "voicing", scenario.Name)
	assert.Equal(t, "Voicing between vowels", scenario.Description)
	assert.Len(t, scenario.Categories, 3)
	assert.Equal(t, []string{"S/Z/V_V"}, scenario.Rules)
	assert.Equal(t, 1, scenario.OutFormat)
	assert.Len(t, scenario.Expect, 2)
	require.Len(t, scenario.Assertions, 1)
	assert.Equal(t, AssertChangedCount, scenario.Assertions[0].Type)
	assert.Equal(t, 2, scenario.Assertions[0].Count)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, "name: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_UnknownFieldsRejected(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: d
words: [a]
expect: [a]
assertion:
  - type: changed_count
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assertion")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nwords: [a]\nexpect: [a]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nwords: [a]\nexpect: [a]\n",
			wantErr: "description is required",
		},
		{
			name:    "missing words",
			content: "name: n\ndescription: d\nexpect: []\n",
			wantErr: "words list is required",
		},
		{
			name:    "nothing to check",
			content: "name: n\ndescription: d\nwords: [a]\n",
			wantErr: "expect or assertions is required",
		},
		{
			name:    "expect length mismatch",
			content: "name: n\ndescription: d\nwords: [a, b]\nexpect: [a]\n",
			wantErr: "expect has 1 lines for 2 words",
		},
		{
			name:    "unknown assertion type",
			content: "name: n\ndescription: d\nwords: [a]\nassertions:\n  - type: trace_contains\n",
			wantErr: `unknown assertion type "trace_contains"`,
		},
		{
			name:    "assertion without type",
			content: "name: n\ndescription: d\nwords: [a]\nassertions:\n  - count: 1\n",
			wantErr: "assertions[0]: type is required",
		},
		{
			name:    "output_order without lines",
			content: "name: n\ndescription: d\nwords: [a]\nassertions:\n  - type: output_order\n",
			wantErr: "lines list is required",
		},
		{
			name:    "negative changed_count",
			content: "name: n\ndescription: d\nwords: [a]\nassertions:\n  - type: changed_count\n    count: -1\n",
			wantErr: "count must be non-negative",
		},
		{
			name:    "rule_applies without word",
			content: "name: n\ndescription: d\nwords: [a]\nassertions:\n  - type: rule_applies\n    rule: a/b/_\n",
			wantErr: "word is required",
		},
		{
			name:    "rule_applies without rule",
			content: "name: n\ndescription: d\nwords: [a]\nassertions:\n  - type: rule_applies\n    word: a\n",
			wantErr: "rule is required",
		},
		{
			name:    "negative stored_output seq",
			content: "name: n\ndescription: d\nwords: [a]\nassertions:\n  - type: stored_output\n    seq: -2\n",
			wantErr: "seq must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_ChangedCountZeroAllowed(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: untouched
description: d
words: [a]
assertions:
  - type: changed_count
    count: 0
`))
	require.NoError(t, err)
	assert.Equal(t, 0, scenario.Assertions[0].Count)
}

func TestParseScenario_AppliesDefaultsToNil(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: n
description: d
words: [a]
assertions:
  - type: rule_applies
    word: a
    rule: a/b/_
  - type: rule_applies
    word: a
    rule: a/b/_
    applies: false
`))
	require.NoError(t, err)
	assert.Nil(t, scenario.Assertions[0].Applies)
	require.NotNil(t, scenario.Assertions[1].Applies)
	assert.False(t, *scenario.Assertions[1].Applies)
}

func TestLoadExampleScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			assert.NotEmpty(t, scenario.Name)
		})
	}
}
