package commands

import (
	"os"
	"testing"

	"github.com/leapstack-labs/cxql/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFmtCommand_Stdin(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{
			name:  "normalizes spacing",
			input: "let   x=1+2",
			want:  "let x = 1 + 2\n",
		},
		{
			name:  "explicit indent",
			input: "with db { let a = 1\n a }",
			args:  []string{"--indent", "4"},
			want:  "with db {\n    let a = 1\n    a\n}\n",
		},
		{
			name:  "legacy connect",
			input: "connect(pg($url), as = db)",
			want:  "connect pg($url) as db\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, NewFmtCommand(), tt.input, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFmtCommand_IndentFromConfig(t *testing.T) {
	testutil.LoadTestConfig(t, "format:\n  indent: 3\n")

	out, _, err := execute(t, NewFmtCommand(), "with db { let a = 1\n}")
	require.NoError(t, err)
	assert.Equal(t, "with db {\n   let a = 1\n}\n", out)
}

func TestFmtCommand_Write(t *testing.T) {
	dir := t.TempDir()
	messy := testutil.WriteSource(t, dir, "messy.cxql", "let a=1\nlet b=[1,2]")
	clean := testutil.WriteSource(t, dir, "clean.cxql", "let c = 3\n")

	out, _, err := execute(t, NewFmtCommand(), "", "-w", messy, clean)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(messy)
	require.NoError(t, err)
	assert.Equal(t, "let a = 1\nlet b = [1, 2]\n", string(data))

	data, err = os.ReadFile(clean)
	require.NoError(t, err)
	assert.Equal(t, "let c = 3\n", string(data))
}

func TestFmtCommand_List(t *testing.T) {
	dir := t.TempDir()
	messy := testutil.WriteSource(t, dir, "messy.cxql", "f( x )")
	clean := testutil.WriteSource(t, dir, "clean.cxql", "f(x)\n")

	out, _, err := execute(t, NewFmtCommand(), "", "-l", messy, clean)
	require.NoError(t, err)
	assert.Equal(t, messy+"\n", out)

	data, err := os.ReadFile(messy)
	require.NoError(t, err)
	assert.Equal(t, "f( x )", string(data), "list must not rewrite files")
}

func TestFmtCommand_SyntaxErrorsLeaveFileUntouched(t *testing.T) {
	dir := t.TempDir()
	broken := testutil.WriteSource(t, dir, "broken.cxql", "let a = (1 +\n")
	fine := testutil.WriteSource(t, dir, "fine.cxql", "let b=2")

	out, _, err := execute(t, NewFmtCommand(), "", "-w", broken, fine)
	require.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), "1 of 2 files not formatted")
	assert.Contains(t, out, broken+":")

	data, err := os.ReadFile(broken)
	require.NoError(t, err)
	assert.Equal(t, "let a = (1 +\n", string(data))

	data, err = os.ReadFile(fine)
	require.NoError(t, err)
	assert.Equal(t, "let b = 2\n", string(data))
}
