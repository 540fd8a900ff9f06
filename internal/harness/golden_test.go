package harness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schyrsivochter/soundchange/internal/pipeline"
)

func TestMarshalSnapshot_Format(t *testing.T) {
	result := &Result{
		Lines:  []string{"a → b", "<x>"},
		Counts: pipeline.Result{Categories: 1, Rules: 2, Words: 2, Changed: 1},
	}

	data, err := MarshalSnapshot("fmt", result)
	require.NoError(t, err)

	want := `{
  "scenario_name": "fmt",
  "counts": {
    "categories": 1,
    "rules": 2,
    "rewrites": 0,
    "words": 2,
    "changed": 1
  },
  "lines": [
    "a → b",
    "<x>"
  ]
}
`
	assert.Equal(t, want, string(data))
}

func TestMarshalSnapshot_Deterministic(t *testing.T) {
	result, err := Run(latinScenario())
	require.NoError(t, err)

	first, err := MarshalSnapshot("latin", result)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := MarshalSnapshot("latin", result)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	var snap Snapshot
	require.NoError(t, json.Unmarshal(first, &snap))
	assert.Equal(t, "latin", snap.ScenarioName)
	assert.Equal(t, result.Lines, snap.Lines)
}

func TestAssertGolden_FromResult(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/processes.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	// Compared against testdata/golden/processes.golden.
	require.NoError(t, AssertGolden(t, "processes", result))
}
