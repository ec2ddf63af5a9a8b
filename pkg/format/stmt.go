package format

import (
	"github.com/leapstack-labs/cxql/pkg/ast"
)

func (p *Printer) formatProgram(prog *ast.Program) {
	if prog == nil {
		return
	}
	for _, stmt := range prog.Statements {
		p.formatStatement(stmt)
		p.writeln()
	}
}

func (p *Printer) formatStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		p.formatLet(s)
	case *ast.ConnectStatement:
		p.write("connect ")
		p.formatExpr(s.Source, precLowest)
		p.write(" as ")
		p.formatIdent(s.Alias)
	case *ast.WithStatement:
		p.write("with ")
		p.formatIdent(s.Alias)
		p.space()
		p.formatBlock(s.Body)
	case ast.Expr:
		p.formatExpr(s, precLowest)
	}
}

func (p *Printer) formatLet(s *ast.LetStatement) {
	p.write("let ")
	p.formatIdent(s.Name)
	p.write(" = ")
	p.formatExpr(s.Value, precLowest)
}

// formatBlock prints {} when empty, { result } when the block only has a
// result, and one item per line otherwise.
func (p *Printer) formatBlock(b *ast.Block) {
	if b == nil || (len(b.Lets) == 0 && b.Result == nil) {
		p.write("{}")
		return
	}

	if len(b.Lets) == 0 {
		p.write("{ ")
		p.formatExpr(b.Result, precLowest)
		p.write(" }")
		return
	}

	p.write("{")
	p.writeln()
	p.indent()
	for _, let := range b.Lets {
		p.formatLet(let)
		p.writeln()
	}
	if b.Result != nil {
		p.formatExpr(b.Result, precLowest)
		p.writeln()
	}
	p.dedent()
	p.write("}")
}

func (p *Printer) formatIdent(id *ast.Identifier) {
	if id != nil {
		p.write(id.Name)
	}
}
