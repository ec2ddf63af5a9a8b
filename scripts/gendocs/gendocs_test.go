package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(2, "Options")
	w.Table([]string{"Option", "Description"}, [][]string{{InlineCode("--tree"), "sexp | json"}})

	assert.Equal(t, "## Options\n\n| Option | Description |\n| --- | --- |\n| `--tree` | sexp \\| json |\n\n", string(w.Bytes()))
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Print the tree", cleanDescription("print   the\n tree"))
	assert.Empty(t, cleanDescription("  "))
}

func TestCleanExample(t *testing.T) {
	in := "  # Check\n  cxql check\n\n    nested"
	assert.Equal(t, "# Check\ncxql check\n\n  nested", cleanExample(in))
}

func TestGenerateDocs(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, generateCLIDocs(filepath.Join(dir, "cli")))
	for _, name := range []string{"index.md", "parse.md", "check.md", "fmt.md", "serve.md"} {
		data, err := os.ReadFile(filepath.Join(dir, "cli", name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), generatedMarker)
	}

	require.NoError(t, generateSyntaxDocs(filepath.Join(dir, "language")))
	data, err := os.ReadFile(filepath.Join(dir, "language", "syntax.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "`connect`")
	assert.Contains(t, string(data), "`where`")
	assert.Contains(t, string(data), "connect postgres($url) as db")
}
