package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/leapstack-labs/cxql/pkg/ast"
	"gopkg.in/yaml.v3"
)

// writeTree prints node as an S-expression, JSON or YAML document.
func writeTree(w io.Writer, node ast.Node, treeFormat string) error {
	switch treeFormat {
	case "", "sexp":
		_, err := io.WriteString(w, ast.Dump(node))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ast.ToMap(node))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ast.ToMap(node)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown tree format %q: must be sexp, json or yaml", treeFormat)
	}
}
