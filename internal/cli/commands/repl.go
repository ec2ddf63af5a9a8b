package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/cxql/internal/cli/output"
	"github.com/leapstack-labs/cxql/pkg/format"
	"github.com/leapstack-labs/cxql/pkg/parser"
	"github.com/leapstack-labs/cxql/pkg/token"
	"github.com/spf13/cobra"
)

const (
	replPrompt             = "cxql> "
	replContinuationPrompt = " ...> "
)

// REPL display modes.
const (
	replModeTree   = "tree"
	replModeFmt    = "fmt"
	replModeTokens = "tokens"
)

// REPLOptions holds options for the repl command.
type REPLOptions struct {
	HistoryFile string
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	opts := &REPLOptions{}
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive parser shell",
		Long: `Start an interactive shell that parses each entered program and prints
its syntax tree, its formatted source or its tokens.

Input continues on the next line while brackets are open or the line ends
with an operator. Type .help for the list of dot-commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.HistoryFile, "history-file", "", "History file (default ~/.cxql_history)")

	return cmd
}

func runREPL(cmd *cobra.Command, opts *REPLOptions) error {
	cmdCtx := NewCommandContext(cmd)

	historyFile := opts.HistoryFile
	if historyFile == "" {
		historyFile = cmdCtx.Cfg.REPL.HistoryFile
	}
	if historyFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			historyFile = filepath.Join(home, ".cxql_history")
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	session := newREPLSession(cmdCtx.Renderer, cmdCtx.Cfg.TreeFormat, cmdCtx.Cfg.Format.Indent)

	cmdCtx.Renderer.Println("cxql interactive parser")
	cmdCtx.Renderer.Println("Type .help for commands, .quit to exit")
	cmdCtx.Renderer.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if session.handleLine(line) {
			break
		}
		if session.pending() {
			rl.SetPrompt(replContinuationPrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}

	return nil
}

// replSession holds the state of one interactive session independent of
// the terminal, so it can be driven line by line.
type replSession struct {
	r          *output.Renderer
	mode       string
	treeFormat string
	indent     int
	buf        strings.Builder
}

func newREPLSession(r *output.Renderer, treeFormat string, indent int) *replSession {
	if treeFormat == "" {
		treeFormat = "sexp"
	}
	return &replSession{r: r, mode: replModeTree, treeFormat: treeFormat, indent: indent}
}

func (s *replSession) pending() bool { return s.buf.Len() > 0 }

func (s *replSession) reset() { s.buf.Reset() }

// handleLine processes one input line and reports whether the session should end.
func (s *replSession) handleLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !s.pending() {
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ".") {
			return s.handleDotCommand(trimmed)
		}
	}

	if s.pending() {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(line)

	src := s.buf.String()
	if needsMoreInput(src) && trimmed != "" {
		return false
	}
	s.buf.Reset()
	s.evaluate(src)
	return false
}

func (s *replSession) evaluate(src string) {
	if s.mode == replModeTokens {
		tokens, _ := parser.TokenizeWithErrors(src)
		for _, tok := range tokens {
			s.r.Printf("%-14s %-20q %s\n", tokenKind(tok), tok.Literal, tok.Pos)
		}
		return
	}

	prog, errs := parser.ParseProgram(src)
	if len(errs) > 0 {
		renderDiagnostics(s.r, "<input>", src, errs)
		return
	}

	switch s.mode {
	case replModeFmt:
		s.r.Printf("%s", format.Program(prog, format.WithIndent(s.indent)))
	default:
		if err := writeTree(s.r.Writer(), prog, s.treeFormat); err != nil {
			s.r.Error(err.Error())
		}
	}
}

func (s *replSession) handleDotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		s.r.Println(replHelp)

	case ".mode":
		if len(parts) < 2 {
			s.r.Println("mode: " + s.mode)
			return false
		}
		switch parts[1] {
		case replModeTree, replModeFmt, replModeTokens:
			s.mode = parts[1]
		default:
			s.r.Error("Usage: .mode tree|fmt|tokens")
		}

	case ".tree":
		if len(parts) < 2 {
			s.r.Println("tree format: " + s.treeFormat)
			return false
		}
		switch parts[1] {
		case "sexp", "json", "yaml":
			s.treeFormat = parts[1]
			s.mode = replModeTree
		default:
			s.r.Error("Usage: .tree sexp|json|yaml")
		}

	default:
		s.r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return false
}

// needsMoreInput reports whether src has unclosed brackets or ends with a
// token that cannot end a program.
func needsMoreInput(src string) bool {
	depth := 0
	var last token.TokenType = token.EOF
	for _, tok := range parser.Tokenize(src) {
		switch tok.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			depth--
		case token.EOF:
			continue
		}
		last = tokenKind(tok)
	}
	if depth > 0 {
		return true
	}
	switch last {
	case token.ASSIGN, token.ARROW, token.PIPE, token.COMMA, token.DOT,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE,
		token.AND, token.OR, token.NOT, token.AS:
		return true
	}
	return false
}

const replHelp = `
Commands:
  .help                  Show this help message
  .mode tree|fmt|tokens  Print the syntax tree, the formatted source or the tokens
  .tree sexp|json|yaml   Choose the tree format (switches to tree mode)
  .quit / .exit          Exit the REPL

Tips:
  - Input continues while brackets are open or a line ends with an operator
  - Enter an empty line to force evaluation of pending input
  - Use arrow keys to navigate history`

func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".mode",
			readline.PcItem(replModeTree),
			readline.PcItem(replModeFmt),
			readline.PcItem(replModeTokens),
		),
		readline.PcItem(".tree",
			readline.PcItem("sexp"),
			readline.PcItem("json"),
			readline.PcItem("yaml"),
		),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
