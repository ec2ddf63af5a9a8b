package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/cxql/internal/cli"
	"github.com/leapstack-labs/cxql/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCLIDocs writes index.md plus one page per command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	commands := visibleCommands(rootCmd)

	if err := writePage(outDir, "index.md", cliIndex(rootCmd, commands)); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}

	for _, cmd := range commands {
		if err := writePage(outDir, cmd.Name()+".md", commandPage(cmd, commands)); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
	}
	return nil
}

func writePage(outDir, name string, w *MarkdownWriter) error {
	if err := os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated %s", name)
	return nil
}

// visibleCommands returns the documented subcommands of root.
func visibleCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

func cliIndex(rootCmd *cobra.Command, commands []*cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for cxql")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(rootCmd.Long)

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/cxql/cmd/cxql@latest")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range commands {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Configuration")
	w.Paragraph("Settings are read from defaults, then " + InlineCode("cxql.yaml") +
		" (searched upward from the working directory, or given with " + InlineCode("--config") +
		"), then " + InlineCode("CXQL_*") + " environment variables, then command-line flags. Later sources take precedence.")
	w.Table([]string{"Key", "Environment", "Default", "Description"}, configRows(config.Default()))

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Syntax errors found, or another error (see the output)"},
	})

	return w
}

// configRows documents each configuration key with its default value.
func configRows(def *config.Config) [][]string {
	keys := []struct {
		key, desc string
		value     any
	}{
		{"output", "Output format: auto, text, markdown, json", def.Output},
		{"verbose", "Debug logging", def.Verbose},
		{"log_level", "Log level: debug, info, warn, error", def.LogLevel},
		{"extensions", "Source file extensions searched by check", strings.Join(def.Extensions, ", ")},
		{"concurrency", "Files parsed in parallel (0 = number of CPUs)", def.Concurrency},
		{"tree_format", "Tree format for parse: sexp, json, yaml", def.TreeFormat},
		{"format.indent", "Spaces per indentation level for fmt", def.Format.Indent},
		{"serve.addr", "Listen address for serve", def.Serve.Addr},
		{"repl.history_file", "REPL history file (empty = ~/.cxql_history)", def.REPL.HistoryFile},
	}

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		env := "CXQL_" + strings.ToUpper(strings.ReplaceAll(k.key, ".", "_"))
		value := fmt.Sprint(k.value)
		if value != "" {
			value = InlineCode(value)
		}
		rows = append(rows, []string{InlineCode(k.key), InlineCode(env), value, k.desc})
	}
	return rows
}

func commandPage(cmd *cobra.Command, all []*cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	var related []string
	for _, other := range all {
		if other != cmd {
			related = append(related, fmt.Sprintf("[%s](/cli/%s)", InlineCode(other.Name()), other.Name()))
		}
	}
	w.Header(2, "See Also")
	w.Paragraph(strings.Join(related, " · ") + " · [global options](/cli/#global-options)")

	return w
}

// writeFlagsTable writes one row per visible flag.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name = InlineCode("-"+f.Shorthand) + ", " + name
		}
		def := f.DefValue
		if def != "" && def != "[]" && def != "false" {
			def = InlineCode(def)
		} else if def == "[]" {
			def = ""
		}
		rows = append(rows, []string{name, f.Value.Type(), def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Type", "Default", "Description"}, rows)
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || indent < common {
			common = indent
		}
	}

	for i, line := range lines {
		if len(line) >= common && common > 0 {
			lines[i] = line[common:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
