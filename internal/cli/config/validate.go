package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	validOutputs     = []string{"auto", "text", "markdown", "json"}
	validLogLevels   = []string{"debug", "info", "warn", "error"}
	validTreeFormats = []string{"sexp", "json", "yaml"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(validOutputs, c.Output) {
		return fmt.Errorf("invalid output %q: must be one of %s", c.Output, strings.Join(validOutputs, ", "))
	}
	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log_level %q: must be one of %s", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if !slices.Contains(validTreeFormats, c.TreeFormat) {
		return fmt.Errorf("invalid tree_format %q: must be one of %s", c.TreeFormat, strings.Join(validTreeFormats, ", "))
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.Format.Indent < 1 || c.Format.Indent > 8 {
		return fmt.Errorf("format.indent must be between 1 and 8, got %d", c.Format.Indent)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must list at least one file extension")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}
