package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/cxql/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_Tree(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, out string)
	}{
		{
			name: "sexp by default",
			check: func(t *testing.T, out string) {
				want := "(program\n  (let_statement\n    (identifier \"x\")\n    (number \"1\")\n  )\n)\n"
				assert.Equal(t, want, out)
			},
		},
		{
			name: "json tree",
			args: []string{"--tree", "json"},
			check: func(t *testing.T, out string) {
				var doc map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &doc))
				assert.Equal(t, "program", doc["type"])
				require.Len(t, doc["children"], 1)
			},
		},
		{
			name: "yaml tree",
			args: []string{"--tree", "yaml"},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "type: program")
				assert.Contains(t, out, "type: let_statement")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, NewParseCommand(), "let x = 1", tt.args...)
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestParseCommand_TreeFormatFromConfig(t *testing.T) {
	testutil.LoadTestConfig(t, "tree_format: yaml\n")

	out, _, err := execute(t, NewParseCommand(), "a + 1")
	require.NoError(t, err)
	assert.Contains(t, out, "type: binary_expression")
}

func TestParseCommand_File(t *testing.T) {
	path := testutil.WriteSource(t, t.TempDir(), "a.cxql", "connect db() as d\n")

	out, _, err := execute(t, NewParseCommand(), "", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(connect_statement")

	_, _, err = execute(t, NewParseCommand(), "", filepath.Join(t.TempDir(), "missing.cxql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestParseCommand_SyntaxErrors(t *testing.T) {
	src := "let x =\nlet y = 2"

	t.Run("diagnostics only", func(t *testing.T) {
		out, _, err := execute(t, NewParseCommand(), src)
		require.ErrorIs(t, err, ErrSyntax)
		assert.Contains(t, out, "<stdin>:2:1")
		assert.Contains(t, out, `unexpected "let", expected expression`)
		assert.Contains(t, out, "   2 | let y = 2")
		assert.NotContains(t, out, "(program")
		testutil.AssertValidMarkdown(t, out)
	})

	t.Run("partial tree", func(t *testing.T) {
		out, _, err := execute(t, NewParseCommand(), src, "--partial")
		require.ErrorIs(t, err, ErrSyntax)
		assert.Contains(t, out, "(program")
		assert.Contains(t, out, "(ERROR)")
		assert.Contains(t, out, `(identifier "y")`)
	})
}

func TestParseCommand_JSONOutput(t *testing.T) {
	testutil.LoadTestConfig(t, "output: json\n")

	out, _, err := execute(t, NewParseCommand(), "let x =", "--tree", "sexp")
	require.ErrorIs(t, err, ErrSyntax)

	var doc ParseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "<stdin>", doc.Path)
	assert.False(t, doc.OK)
	assert.Equal(t, "program", doc.Tree["type"])
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, []string{"expression"}, doc.Errors[0].Expected)
	assert.Equal(t, "end of input", doc.Errors[0].Found)
}
