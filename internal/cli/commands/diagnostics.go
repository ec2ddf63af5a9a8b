package commands

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/cxql/internal/cli/output"
	"github.com/leapstack-labs/cxql/pkg/parser"
)

func toDiagnostics(errs parser.ErrorList) []output.Diagnostic {
	out := make([]output.Diagnostic, 0, len(errs))
	for _, e := range errs {
		out = append(out, output.Diagnostic{
			Line:     e.Pos.Line,
			Column:   e.Pos.Column,
			Offset:   e.Pos.Offset,
			Expected: e.Expected,
			Found:    e.Found,
			Message:  e.Message(),
		})
	}
	return out
}

// renderDiagnostics prints each error with the offending source line and a
// caret under the error position.
func renderDiagnostics(r *output.Renderer, path, src string, errs parser.ErrorList) {
	markdown := r.EffectiveMode() == output.ModeMarkdown
	for _, e := range errs {
		loc := fmt.Sprintf("%s:%d:%d", path, e.Pos.Line, e.Pos.Column)
		excerpt := sourceExcerpt(src, e.Pos)

		if markdown {
			r.Println(fmt.Sprintf("- **%s** %s", loc, e.Message()))
			if excerpt != "" {
				r.Println(output.FormatCodeBlock("", excerpt))
			}
			continue
		}

		s := r.Styles()
		r.Printf("%s: %s %s\n", s.Path.Render(loc), s.Error.Render("error:"), e.Message())
		if excerpt != "" {
			r.Println(s.Muted.Render(excerpt))
		}
	}
}

// sourceExcerpt renders the line containing pos with a caret below it.
func sourceExcerpt(src string, pos parser.Position) string {
	if pos.Offset < 0 || pos.Offset > len(src) {
		return ""
	}
	start := strings.LastIndexByte(src[:pos.Offset], '\n') + 1
	end := strings.IndexByte(src[pos.Offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += pos.Offset
	}
	line := strings.TrimRight(src[start:end], "\r")

	gutter := fmt.Sprintf("%4d | ", pos.Line)
	var pad strings.Builder
	for _, ch := range src[start:pos.Offset] {
		if ch == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	blank := strings.Repeat(" ", utf8.RuneCountInString(gutter)-2) + "| "
	return gutter + line + "\n" + blank + pad.String() + "^"
}
