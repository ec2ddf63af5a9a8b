// Package config provides configuration management for the cxql CLI.
//
// Values are layered with koanf: built-in defaults, then cxql.yaml (or
// cxql.yml), then CXQL_* environment variables, then explicitly set flags.
package config

import "runtime"

// FormatConfig holds options for the pretty-printer.
type FormatConfig struct {
	Indent int `koanf:"indent"`
}

// ServeConfig holds options for the HTTP parse service.
type ServeConfig struct {
	Addr string `koanf:"addr"`
}

// REPLConfig holds options for the interactive shell.
type REPLConfig struct {
	HistoryFile string `koanf:"history_file"`
}

// Config holds all CLI configuration options.
type Config struct {
	Output      string       `koanf:"output"`
	Verbose     bool         `koanf:"verbose"`
	LogLevel    string       `koanf:"log_level"`
	Extensions  []string     `koanf:"extensions"`
	Concurrency int          `koanf:"concurrency"`
	TreeFormat  string       `koanf:"tree_format"`
	Format      FormatConfig `koanf:"format"`
	Serve       ServeConfig  `koanf:"serve"`
	REPL        REPLConfig   `koanf:"repl"`

	// ConfigFile is the file the values were read from, if any.
	ConfigFile string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel   = "info"
	DefaultTreeFormat = "sexp"
	DefaultIndent     = 2
	DefaultAddr       = "127.0.0.1:8787"
	DefaultExtension  = ".cxql"
)

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Output:     DefaultOutput,
		LogLevel:   DefaultLogLevel,
		Extensions: []string{DefaultExtension},
		TreeFormat: DefaultTreeFormat,
		Format:     FormatConfig{Indent: DefaultIndent},
		Serve:      ServeConfig{Addr: DefaultAddr},
	}
}

// Workers returns the number of files parsed in parallel.
func (c *Config) Workers() int {
	if c.Concurrency <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Concurrency
}
