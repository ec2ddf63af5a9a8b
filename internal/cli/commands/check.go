package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/cxql/internal/cli/output"
	"github.com/leapstack-labs/cxql/internal/loader"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Paths []string
	Watch bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check source files for syntax errors",
		Long: `Discover cxql files under the given paths, parse them in parallel and
report every syntax error found.

Directories are searched recursively for files with a configured extension
(see "extensions" in cxql.yaml). Exits with a non-zero status when any file
has errors. With --watch the files are checked again whenever they change.`,
		Example: `  # Check the current directory
  cxql check

  # Check specific paths with JSON output
  cxql check pipelines/ extra.cxql -o json

  # Re-check on every change
  cxql check --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			if len(opts.Paths) == 0 {
				opts.Paths = []string{"."}
			}
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-check when files change")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	l := cmdCtx.Loader()
	ctx := cmd.Context()

	files, err := l.Load(ctx, opts.Paths)
	if err != nil {
		return err
	}
	failed := renderCheckResults(r, files)

	if !opts.Watch {
		if failed {
			return ErrSyntax
		}
		return nil
	}

	r.Muted(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", strings.Join(opts.Paths, ", ")))
	return l.Watch(ctx, opts.Paths, func(files []*loader.File) {
		r.Println()
		renderCheckResults(r, files)
	})
}

// renderCheckResults prints a per-file table, the diagnostics of failing
// files and a summary. It reports whether any file failed.
func renderCheckResults(r *output.Renderer, files []*loader.File) bool {
	summary := output.CheckSummary{Files: len(files)}
	for _, f := range files {
		summary.Errors += len(f.Errors)
		if !f.OK() {
			summary.FilesFailed++
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		doc := output.CheckOutput{Summary: summary, Files: []output.FileResult{}}
		for _, f := range files {
			res := output.FileResult{
				Path:        f.Path,
				Diagnostics: toDiagnostics(f.Errors),
			}
			if f.Program != nil {
				res.Statements = len(f.Program.Statements)
			}
			if f.Err != nil {
				res.Error = f.Err.Error()
			}
			doc.Files = append(doc.Files, res)
		}
		_ = r.JSON(doc)
		return summary.FilesFailed > 0
	}

	if len(files) == 0 {
		r.Muted("No source files found")
		return false
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"File", "Statements", "Errors", "Status"})
	for _, f := range files {
		statements := 0
		if f.Program != nil {
			statements = len(f.Program.Statements)
		}
		status := "ok"
		switch {
		case f.Err != nil:
			status = "unreadable"
		case len(f.Errors) > 0:
			status = "failed"
		}
		t.AppendRow(table.Row{f.Path, statements, len(f.Errors), status})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(t.RenderMarkdown())
	} else {
		t.SetStyle(table.StyleLight)
		r.Println(t.Render())
	}

	if summary.FilesFailed > 0 {
		r.Println()
		for _, f := range files {
			if f.Err != nil {
				r.Error(f.Err.Error())
				continue
			}
			renderDiagnostics(r, f.Path, f.Source, f.Errors)
		}
		r.Println()
	}

	if summary.FilesFailed == 0 {
		r.Success(fmt.Sprintf("%d files checked, no syntax errors", summary.Files))
	} else {
		r.Printf("Summary: %d errors in %d of %d files\n", summary.Errors, summary.FilesFailed, summary.Files)
	}
	return summary.FilesFailed > 0
}
