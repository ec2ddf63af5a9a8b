package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/cxql/internal/cli/output"
	"github.com/leapstack-labs/cxql/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand_CleanProject(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, _, err := execute(t, NewCheckCommand(), "", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "users.cxql")
	assert.Contains(t, out, "helpers.cxql")
	assert.NotContains(t, out, "notes.txt")
	assert.Contains(t, out, "OK 3 files checked, no syntax errors")
	testutil.AssertNoANSI(t, out)
}

func TestCheckCommand_Failures(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	testutil.WriteSource(t, dir, "broken.cxql", "let a = [1, 2\nlet b = 3\n")

	out, _, err := execute(t, NewCheckCommand(), "", dir)
	require.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, filepath.Join(dir, "broken.cxql")+":2:1")
	assert.Contains(t, out, "Summary: 1 errors in 1 of 4 files")
	testutil.AssertValidMarkdown(t, out)
}

func TestCheckCommand_JSON(t *testing.T) {
	testutil.LoadTestConfig(t, "output: json\n")
	dir := t.TempDir()
	good := testutil.WriteSource(t, dir, "good.cxql", "let a = 1\nlet b = 2\n")
	bad := testutil.WriteSource(t, dir, "bad.cxql", "let a = )\n")

	out, _, err := execute(t, NewCheckCommand(), "", good, bad)
	require.ErrorIs(t, err, ErrSyntax)

	var doc output.CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, output.CheckSummary{Files: 2, FilesFailed: 1, Errors: 1}, doc.Summary)
	require.Len(t, doc.Files, 2)

	byPath := map[string]output.FileResult{}
	for _, f := range doc.Files {
		byPath[f.Path] = f
	}
	assert.Equal(t, 2, byPath[good].Statements)
	assert.Empty(t, byPath[good].Diagnostics)
	require.Len(t, byPath[bad].Diagnostics, 1)
	assert.Equal(t, 9, byPath[bad].Diagnostics[0].Column)
}

func TestCheckCommand_CustomExtensions(t *testing.T) {
	testutil.LoadTestConfig(t, "extensions: [\".pipe\"]\n")
	dir := testutil.SetupTestProject(t)
	testutil.WriteSource(t, dir, "only.pipe", "let a = 1\n")

	out, _, err := execute(t, NewCheckCommand(), "", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "only.pipe")
	assert.NotContains(t, out, "users.cxql")
	assert.Contains(t, out, "1 files checked")
}

func TestCheckCommand_NoFiles(t *testing.T) {
	out, _, err := execute(t, NewCheckCommand(), "", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No source files found")
}
