package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/cxql/internal/cli/output"
	"github.com/leapstack-labs/cxql/pkg/parser"
	"github.com/leapstack-labs/cxql/pkg/token"
	"github.com/spf13/cobra"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a file",
		Long: `Run the lexer over a file and print every token with its position.

Keywords are shown by their spelling. Lexical errors (unterminated strings,
invalid characters) are listed after the table. Reads standard input when
the file is "-" or omitted.`,
		Example: `  cxql tokens pipeline.cxql
  echo '$"hi {name}"' | cxql tokens -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := stdinPath
			if len(args) > 0 {
				path = args[0]
			}
			return runTokens(cmd, path)
		},
	}
}

// tokenKind names a token type, resolving words to their keyword.
func tokenKind(tok token.Token) token.TokenType {
	if tok.Type == token.IDENT {
		return token.LookupIdent(tok.Literal)
	}
	return tok.Type
}

func runTokens(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	src, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	tokens, lexErrs := parser.TokenizeWithErrors(src)

	var lexFailure error
	if len(lexErrs) > 0 {
		lexFailure = fmt.Errorf("%w: %d lexical errors in %s", ErrSyntax, len(lexErrs), displayName(path))
	}

	if r.EffectiveMode() == output.ModeJSON {
		doc := output.TokensOutput{Tokens: make([]output.TokenRow, 0, len(tokens))}
		for _, tok := range tokens {
			doc.Tokens = append(doc.Tokens, output.TokenRow{
				Kind:   tokenKind(tok).String(),
				Lexeme: tok.Literal,
				Line:   tok.Pos.Line,
				Column: tok.Pos.Column,
				Start:  tok.Pos.Offset,
				End:    tok.End.Offset,
			})
		}
		for _, e := range lexErrs {
			doc.Errors = append(doc.Errors, output.Diagnostic{
				Line:    e.Pos.Line,
				Column:  e.Pos.Column,
				Offset:  e.Pos.Offset,
				Message: e.Message,
			})
		}
		if err := r.JSON(doc); err != nil {
			return err
		}
		return lexFailure
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Kind", "Lexeme", "Position", "Span"})
	for i, tok := range tokens {
		t.AppendRow(table.Row{
			i,
			tokenKind(tok).String(),
			fmt.Sprintf("%q", tok.Literal),
			tok.Pos.String(),
			fmt.Sprintf("%d-%d", tok.Pos.Offset, tok.End.Offset),
		})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(t.RenderMarkdown())
	} else {
		t.SetStyle(table.StyleLight)
		r.Println(t.Render())
	}

	for _, e := range lexErrs {
		r.Error(fmt.Sprintf("%s:%s: %s", displayName(path), e.Pos, e.Message))
	}
	return lexFailure
}
