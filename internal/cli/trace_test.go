package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceCommand_Text(t *testing.T) {
	scPath, _ := writeLatinFiles(t)

	buf := &bytes.Buffer{}
	cmd := NewTraceCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{scPath, "fīliam"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Trace: fīliam\n")
	assert.Contains(t, out, "   1  [sm]//_#  fīliam → fīlia\n")
	assert.Contains(t, out, "   2  i/j/_V    fīlia → fīlja\n")
	assert.Contains(t, out, "   3  L/V/_     fīlja → filja\n")
	assert.Contains(t, out, "Output: filja\n")
	assert.Contains(t, out, "Stats: 3 of 13 rules changed the word\n")
}

func TestTraceCommand_RewriteOutputFromRoot(t *testing.T) {
	scPath, _ := writeLatinFiles(t)

	out, err := executeRoot(t, "--config", writeFile(t, t.TempDir(), "sca.yaml", "rewrite_output: true\nout_format: 1\n"),
		"trace", scPath, "fīliam")
	require.NoError(t, err)
	assert.Contains(t, out, "Output: fīliam → filha\n")
}

func TestTraceCommand_Unchanged(t *testing.T) {
	scPath, _ := writeLatinFiles(t)

	buf := &bytes.Buffer{}
	cmd := NewTraceCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{scPath, "ponte"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No rule changed the word.")
	assert.Contains(t, buf.String(), "Output: ponte\n")
	assert.Contains(t, buf.String(), "Stats: 0 of 13 rules")
}

func TestTraceCommand_JSON(t *testing.T) {
	scPath, _ := writeLatinFiles(t)

	buf := &bytes.Buffer{}
	cmd := NewTraceCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{scPath, "lector ‣ reader"})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string      `json:"status"`
		Data   TraceResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "lector ‣ reader", resp.Data.Word)
	assert.Equal(t, "leitor ‣ reader", resp.Data.Output)
	require.Len(t, resp.Data.Steps, 1)
	assert.Equal(t, "c/i/F_t", resp.Data.Steps[0].Rule.Raw)
	assert.Equal(t, 9, resp.Data.Steps[0].Rule.Line)
	assert.Equal(t, 13, resp.Data.Stats.Rules)
	assert.Equal(t, 1, resp.Data.Stats.Changed)
}

func TestTraceCommand_RuleSetError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.sc", "a/e/V\n")

	buf := &bytes.Buffer{}
	cmd := NewTraceCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "ta"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "E205")
}

func TestTraceCommand_MissingArgs(t *testing.T) {
	cmd := NewTraceCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"rules.sc"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg")
}
