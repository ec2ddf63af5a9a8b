package format

import (
	"strings"

	"github.com/leapstack-labs/cxql/pkg/ast"
	"github.com/leapstack-labs/cxql/pkg/parser"
)

// Program formats a whole program, one statement per line.
func Program(prog *ast.Program, opts ...Option) string {
	p := newPrinter(opts...)
	p.formatProgram(prog)
	return p.String()
}

// Expr formats a single expression without a trailing newline.
func Expr(e ast.Expr, opts ...Option) string {
	p := newPrinter(opts...)
	p.formatExpr(e, precLowest)
	return strings.TrimSuffix(p.String(), "\n")
}

// Source parses src and formats it. Sources with syntax errors are not
// formatted; the parser.ErrorList is returned instead.
func Source(src string, opts ...Option) (string, error) {
	prog, errs := parser.ParseProgram(src)
	if len(errs) > 0 {
		return "", errs
	}
	return Program(prog, opts...), nil
}
