package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "output format")
	flags.String("log-level", "", "log level")
	flags.String("tree", "", "tree format")
	flags.Int("indent", 0, "indent")
	flags.String("addr", "", "listen address")
	flags.StringSlice("ext", nil, "extensions")
	flags.Bool("watch", false, "unrelated flag")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, []string{".cxql"}, cfg.Extensions)
	assert.Equal(t, DefaultTreeFormat, cfg.TreeFormat)
	assert.Equal(t, DefaultIndent, cfg.Format.Indent)
	assert.Equal(t, DefaultAddr, cfg.Serve.Addr)
	assert.Empty(t, cfg.ConfigFile)
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := writeConfig(t, dir, "cxql.yaml", `output: json
tree_format: yaml
concurrency: 3
extensions: [".cxql", ".cx"]
format:
  indent: 4
serve:
  addr: ":9000"
repl:
  history_file: /tmp/history
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "yaml", cfg.TreeFormat)
	assert.Equal(t, 3, cfg.Workers())
	assert.Equal(t, []string{".cxql", ".cx"}, cfg.Extensions)
	assert.Equal(t, 4, cfg.Format.Indent)
	assert.Equal(t, ":9000", cfg.Serve.Addr)
	assert.Equal(t, "/tmp/history", cfg.REPL.HistoryFile)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_SearchesUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	writeConfig(t, root, "cxql.yml", "output: markdown\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.Output)
	assert.Equal(t, "cxql.yml", filepath.Base(cfg.ConfigFile))
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), "cxql.yaml", "output: json\nserve:\n  addr: \":1\"\n")
	t.Setenv("CXQL_OUTPUT", "text")
	t.Setenv("CXQL_SERVE_ADDR", ":2")
	t.Setenv("CXQL_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output, "env var should override config file")
	assert.Equal(t, ":2", cfg.Serve.Addr, "nested keys are reachable from env")
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), "cxql.yaml", "output: json\nformat:\n  indent: 4\n")
	t.Setenv("CXQL_OUTPUT", "markdown")

	flags := newFlags()
	require.NoError(t, flags.Set("output", "text"))
	require.NoError(t, flags.Set("indent", "3"))
	require.NoError(t, flags.Set("tree", "json"))
	require.NoError(t, flags.Set("ext", ".cx,.q"))
	require.NoError(t, flags.Set("watch", "true"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output, "flag value should override config file and env var")
	assert.Equal(t, 3, cfg.Format.Indent)
	assert.Equal(t, "json", cfg.TreeFormat)
	assert.Equal(t, []string{".cx", ".q"}, cfg.Extensions)
}

func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("CXQL_TREE_FORMAT", "yaml")

	// Changed is false for every flag here.
	cfg, err := LoadConfig("", newFlags())
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.TreeFormat)
	assert.Equal(t, DefaultOutput, cfg.Output)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("invalid yaml", func(t *testing.T) {
		ResetConfig()
		path := writeConfig(t, t.TempDir(), "cxql.yaml", "output: [unclosed\n")
		_, err := LoadConfig(path, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("missing explicit file", func(t *testing.T) {
		ResetConfig()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		ResetConfig()
		path := writeConfig(t, t.TempDir(), "cxql.yaml", "tree_format: xml\n")
		_, err := LoadConfig(path, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tree_format")
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"uppercase log level", func(c *Config) { c.LogLevel = "DEBUG" }, ""},
		{"bad output", func(c *Config) { c.Output = "html" }, "invalid output"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "invalid log_level"},
		{"negative concurrency", func(c *Config) { c.Concurrency = -1 }, "concurrency"},
		{"zero indent", func(c *Config) { c.Format.Indent = 0 }, "format.indent"},
		{"no extensions", func(c *Config) { c.Extensions = nil }, "extensions"},
		{"extension without dot", func(c *Config) { c.Extensions = []string{"cxql"} }, "must start with a dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log_level", envKey("CXQL_LOG_LEVEL"))
	assert.Equal(t, "format.indent", envKey("CXQL_FORMAT_INDENT"))
	assert.Equal(t, "repl.history_file", envKey("CXQL_REPL_HISTORY_FILE"))
	assert.Equal(t, "tree_format", envKey("CXQL_TREE_FORMAT"))
}

func TestLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	var buf bytes.Buffer
	cfg := Default()
	cfg.Verbose = true
	logger := NewLogger(&buf, cfg)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)

	GetLogger(ctx).Debug("parsed", "file", "a.cxql")
	assert.Contains(t, buf.String(), "file=a.cxql")

	buf.Reset()
	cfg.Verbose = false
	NewLogger(&buf, cfg).Debug("hidden")
	assert.Empty(t, buf.String())
}
