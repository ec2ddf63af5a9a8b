package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/cxql/pkg/format"
	"github.com/leapstack-labs/cxql/pkg/parser"
	"github.com/spf13/cobra"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write  bool // rewrite files in place
	List   bool // only list files whose formatting differs
	Indent int
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Format source files",
		Long: `Pretty-print cxql source files in canonical form.

Files with syntax errors are never rewritten: their diagnostics are printed
and the command exits with a non-zero status. Without --write the formatted
source is printed to standard output. Reads standard input when no file is
given.`,
		Example: `  # Print the formatted file
  cxql fmt pipeline.cxql

  # Rewrite files in place
  cxql fmt -w *.cxql

  # List files that are not formatted
  cxql fmt -l *.cxql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{stdinPath}
			}
			return runFmt(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write result to the source file instead of stdout")
	cmd.Flags().BoolVarP(&opts.List, "list", "l", false, "List files whose formatting differs")
	cmd.Flags().IntVar(&opts.Indent, "indent", 0, "Spaces per indentation level (default from config)")

	return cmd
}

func runFmt(cmd *cobra.Command, paths []string, opts *FmtOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	indent := opts.Indent
	if indent <= 0 {
		indent = cmdCtx.Cfg.Format.Indent
	}

	failed := 0
	for _, path := range paths {
		src, err := readSource(cmd, path)
		if err != nil {
			return err
		}

		prog, errs := parser.ParseProgram(src)
		if len(errs) > 0 {
			renderDiagnostics(r, displayName(path), src, errs)
			failed++
			continue
		}
		formatted := format.Program(prog, format.WithIndent(indent))

		switch {
		case opts.List:
			if formatted != src {
				r.Println(displayName(path))
			}
		case opts.Write && path != stdinPath:
			if formatted == src {
				continue
			}
			if err := writeFileKeepMode(path, formatted); err != nil {
				return err
			}
			cmdCtx.Logger.Info("formatted", "file", path)
		default:
			r.Printf("%s", formatted)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files not formatted", ErrSyntax, failed, len(paths))
	}
	return nil
}

func writeFileKeepMode(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
