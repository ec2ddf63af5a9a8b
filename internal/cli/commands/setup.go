package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/cxql/internal/cli/config"
	"github.com/leapstack-labs/cxql/internal/cli/output"
	"github.com/leapstack-labs/cxql/internal/loader"
	"github.com/spf13/cobra"
)

// ErrSyntax is returned by commands that found syntax errors. The
// diagnostics themselves have already been rendered.
var ErrSyntax = errors.New("syntax errors found")

// stdinPath is the file argument that reads source from standard input.
const stdinPath = "-"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the context for cmd from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Loader returns a file loader configured from the current settings.
func (c *CommandContext) Loader() *loader.Loader {
	return loader.New(loader.Options{
		Extensions:  c.Cfg.Extensions,
		Concurrency: c.Cfg.Workers(),
		Logger:      c.Logger,
	})
}

// getConfig returns the current configuration, or defaults when the
// command runs without the root command having loaded one.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// readSource reads a file, or standard input when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// displayName is how a source path appears in diagnostics.
func displayName(path string) string {
	if path == stdinPath {
		return "<stdin>"
	}
	return path
}
