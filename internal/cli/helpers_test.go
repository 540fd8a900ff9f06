package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schyrsivochter/soundchange/internal/testutil"
)

// writeFile writes content to name inside dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeLatinFiles writes the Latin example as latin.sc and latin.lex.
func writeLatinFiles(t *testing.T) (scPath, lexPath string) {
	t.Helper()
	dir := t.TempDir()
	rs := testutil.LatinExample()
	scPath = writeFile(t, dir, "latin.sc", FormatSC(&RuleSet{
		Categories: rs.Categories,
		Rewrites:   rs.Rewrites,
		Rules:      rs.Rules,
	}))
	lexPath = writeFile(t, dir, "latin.lex", strings.Join(rs.Words, "\n")+"\n")
	return scPath, lexPath
}

// executeRoot runs the root command with args and returns stdout.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// latinOutput is the Latin example's expected stdout in format 0.
func latinOutput() string {
	return strings.Join(testutil.LatinExpected, "\n") + "\n"
}
