package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode(t *testing.T) {
	assert.Equal(t, ModeJSON, Mode("json"))
	assert.Equal(t, ModeText, Mode("text"))
	assert.Equal(t, ModeMarkdown, Mode("markdown"))
	assert.Equal(t, ModeAuto, Mode(""))
	assert.Equal(t, ModeAuto, Mode("html"))
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
		{ModeText, false, ModeText},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_NonTTYHasNoANSI(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeText)

	r.Header(1, "Results")
	r.Success("all good")
	r.StatusLine("a.cxql", "error", "2 errors")
	r.Error("boom")

	assert.NotContains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "OK all good")
	assert.Contains(t, out.String(), "[error] a.cxql 2 errors")
	assert.Equal(t, "ERROR boom\n", errOut.String())
}

func TestRenderer_MarkdownHeader(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeAuto)
	r.Header(2, "Files")
	assert.Equal(t, "## Files\n\n", out.String())
}

func TestRenderer_JSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeJSON)
	require.NoError(t, r.JSON(CheckSummary{Files: 2, Errors: 1}))
	assert.JSONEq(t, `{"files": 2, "files_failed": 0, "errors": 1}`, out.String())
}

func TestMarkdownHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Sub", FormatHeader(3, "Sub"))
	assert.Equal(t, "- **files**: 3", FormatKeyValue("files", 3))
	assert.Equal(t, "```cxql\nlet a = 1\n```", FormatCodeBlock("cxql", "let a = 1\n"))
}
