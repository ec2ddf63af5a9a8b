package commands

import (
	"fmt"

	"github.com/leapstack-labs/cxql/internal/cli/output"
	"github.com/leapstack-labs/cxql/pkg/ast"
	"github.com/leapstack-labs/cxql/pkg/parser"
	"github.com/spf13/cobra"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Tree    string // sexp, json or yaml; empty uses tree_format from config
	Partial bool   // print the tree even when there are syntax errors
}

// ParseOutput is the JSON document written by parse in json output mode.
type ParseOutput struct {
	Path   string              `json:"path"`
	OK     bool                `json:"ok"`
	Tree   map[string]any      `json:"tree"`
	Errors []output.Diagnostic `json:"errors"`
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a file and print its syntax tree",
		Long: `Parse a cxql source file and print the resulting syntax tree.

When the file has syntax errors the diagnostics are printed instead and the
command exits with a non-zero status. Use --partial to print the recovered
tree as well. Reads standard input when the file is "-" or omitted.`,
		Example: `  # Print the tree as an S-expression
  cxql parse pipeline.cxql

  # Print the tree as YAML
  cxql parse pipeline.cxql --tree yaml

  # Parse from stdin
  echo 'let a = 1' | cxql parse`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := stdinPath
			if len(args) > 0 {
				path = args[0]
			}
			return runParse(cmd, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Tree, "tree", "", "Tree format: sexp, json, yaml")
	cmd.Flags().BoolVar(&opts.Partial, "partial", false, "Print the recovered tree even when there are errors")

	_ = cmd.RegisterFlagCompletionFunc("tree", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"sexp", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runParse(cmd *cobra.Command, path string, opts *ParseOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	src, err := readSource(cmd, path)
	if err != nil {
		return err
	}

	prog, errs := parser.ParseProgram(src)
	cmdCtx.Logger.Debug("parsed", "file", displayName(path),
		"statements", len(prog.Statements), "errors", len(errs))

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(ParseOutput{
			Path:   displayName(path),
			OK:     len(errs) == 0,
			Tree:   ast.ToMap(prog),
			Errors: toDiagnostics(errs),
		}); err != nil {
			return err
		}
		return syntaxError(path, errs)
	}

	treeFormat := opts.Tree
	if treeFormat == "" {
		treeFormat = cmdCtx.Cfg.TreeFormat
	}

	if len(errs) > 0 {
		renderDiagnostics(r, displayName(path), src, errs)
		if !opts.Partial {
			return syntaxError(path, errs)
		}
		r.Println()
	}

	if err := writeTree(r.Writer(), prog, treeFormat); err != nil {
		return err
	}
	return syntaxError(path, errs)
}

func syntaxError(path string, errs parser.ErrorList) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d in %s", ErrSyntax, len(errs), displayName(path))
}
