package format

import (
	"github.com/leapstack-labs/cxql/pkg/ast"
	"github.com/leapstack-labs/cxql/pkg/token"
)

// Binding strength of each expression form, loosest first. An operand whose
// precedence is below the minimum required by its position is parenthesized.
const (
	precLowest         = iota // arrow
	precOr                    // or
	precAnd                   // and
	precNot                   // not
	precEquality              // == !=
	precComparison            // < > <= >=
	precAdditive              // + - |
	precMultiplicative        // * / %
	precUnary                 // -
	precCall                  // f(x)
	precMember                // a.b
	precPrimary               // literals, names, brackets
)

// complexityThreshold is the record size above which properties are
// printed one per line.
const complexityThreshold = 5

func precedence(e ast.Expr) int {
	switch expr := e.(type) {
	case *ast.ArrowExpression:
		return precLowest
	case *ast.BinaryExpression:
		return binaryPrecedence(expr.Op)
	case *ast.LogicalNotExpression:
		return precNot
	case *ast.Pipeline:
		return precAdditive
	case *ast.UnaryExpression:
		return precUnary
	case *ast.FunctionCall:
		return precCall
	case *ast.MemberExpression:
		return precMember
	default:
		return precPrimary
	}
}

func binaryPrecedence(op token.TokenType) int {
	switch op {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQ, token.NE:
		return precEquality
	case token.LT, token.GT, token.LE, token.GE:
		return precComparison
	case token.PLUS, token.MINUS:
		return precAdditive
	default:
		return precMultiplicative
	}
}

// formatExpr prints e, wrapping it in parentheses when it binds looser than min.
func (p *Printer) formatExpr(e ast.Expr, minPrec int) {
	if e == nil {
		return
	}
	if precedence(e) < minPrec {
		p.write("(")
		p.formatExpr(e, precLowest)
		p.write(")")
		return
	}

	switch expr := e.(type) {
	case *ast.Identifier:
		p.write(expr.Name)
	case *ast.NumberLiteral:
		p.write(expr.Value)
	case *ast.StringLiteral:
		p.formatString(expr)
	case *ast.BooleanLiteral:
		if expr.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *ast.NullLiteral:
		p.write("null")
	case *ast.VariableReference:
		p.write("$" + expr.Name)
	case *ast.FStringLiteral:
		p.formatFString(expr)
	case *ast.ListLiteral:
		p.write("[")
		p.formatList(len(expr.Elements), func(i int) {
			p.formatExpr(expr.Elements[i], precLowest)
		}, ",", false)
		p.write("]")
	case *ast.RecordLiteral:
		p.formatRecord(expr)
	case *ast.Block:
		p.formatBlock(expr)
	case *ast.IfExpression:
		p.formatIf(expr)
	case *ast.ArrowExpression:
		p.formatIdent(expr.Param)
		p.write(" => ")
		p.formatExpr(expr.Body, precLowest)
	case *ast.BinaryExpression:
		prec := binaryPrecedence(expr.Op)
		p.formatExpr(expr.Left, prec)
		p.space()
		p.write(expr.Op.String())
		p.space()
		p.formatExpr(expr.Right, prec+1)
	case *ast.LogicalNotExpression:
		p.write("not ")
		p.formatExpr(expr.Operand, precNot)
	case *ast.UnaryExpression:
		p.write(expr.Op.String())
		p.formatExpr(expr.Operand, precUnary)
	case *ast.Pipeline:
		p.formatPipeline(expr)
	case *ast.MemberExpression:
		p.formatExpr(expr.Object, precCall)
		p.write(".")
		p.formatIdent(expr.Property)
	case *ast.FunctionCall:
		p.formatExpr(expr.Callee, precCall)
		p.write("(")
		p.formatList(len(expr.Args), func(i int) {
			p.formatArgument(expr.Args[i])
		}, ",", false)
		p.write(")")
	}
}

// formatPipeline prints stages joined by |. A nested pipeline as the first
// stage, or any additive expression after it, needs parentheses to keep its
// shape when reparsed.
func (p *Printer) formatPipeline(pipe *ast.Pipeline) {
	for i, stage := range pipe.Stages {
		if i > 0 {
			p.write(" | ")
			p.formatExpr(stage, precMultiplicative)
			continue
		}
		if _, nested := stage.(*ast.Pipeline); nested {
			p.write("(")
			p.formatExpr(stage, precLowest)
			p.write(")")
			continue
		}
		p.formatExpr(stage, precAdditive)
	}
}

func (p *Printer) formatArgument(arg ast.Argument) {
	switch a := arg.(type) {
	case *ast.KeywordArgument:
		p.formatIdent(a.Name)
		p.write(" = ")
		p.formatExpr(a.Value, precLowest)
	case *ast.LabeledBlock:
		p.write(a.Label)
		if a.TypeTag != nil {
			p.write(": ")
			p.formatIdent(a.TypeTag)
		}
		p.space()
		p.formatRecord(a.Body)
	case ast.Expr:
		p.formatExpr(a, precLowest)
	}
}

func (p *Printer) formatRecord(r *ast.RecordLiteral) {
	if r == nil || len(r.Properties) == 0 {
		p.write("{}")
		return
	}

	formatProp := func(i int) {
		prop := r.Properties[i]
		switch k := prop.Key.(type) {
		case *ast.StringLiteral:
			p.formatString(k)
		case *ast.Identifier:
			p.write(k.Name)
		}
		p.write(": ")
		p.formatExpr(prop.Value, precLowest)
	}

	if exprComplexity(r) <= complexityThreshold {
		p.write("{")
		p.formatList(len(r.Properties), formatProp, ",", false)
		p.write("}")
		return
	}

	p.write("{")
	p.writeln()
	p.indent()
	p.formatList(len(r.Properties), formatProp, ",", true)
	p.writeln()
	p.dedent()
	p.write("}")
}

func (p *Printer) formatIf(e *ast.IfExpression) {
	p.write("if ")
	p.formatBlock(e.Condition)
	p.space()
	p.formatBlock(e.Consequent)
	if e.Alternative != nil {
		p.write(" else ")
		p.formatBlock(e.Alternative)
	}
}

func (p *Printer) formatString(s *ast.StringLiteral) {
	q := string(s.Quote)
	if s.Quote == 0 {
		q = `"`
	}
	p.write(q + s.Value + q)
}

func (p *Printer) formatFString(fs *ast.FStringLiteral) {
	p.write(`$"`)
	for _, part := range fs.Parts {
		switch pt := part.(type) {
		case *ast.FStringText:
			p.write(pt.Value)
		case *ast.Interpolation:
			p.write("{")
			p.formatExpr(pt.Expr, precLowest)
			p.write("}")
		}
	}
	p.write(`"`)
}

// exprComplexity estimates how much room an expression needs when printed.
func exprComplexity(e ast.Node) int {
	switch expr := e.(type) {
	case nil:
		return 0
	case *ast.RecordLiteral:
		score := 1
		for _, prop := range expr.Properties {
			score += exprComplexity(prop.Value)
		}
		return score
	case *ast.ListLiteral:
		score := 1
		for _, elem := range expr.Elements {
			score += exprComplexity(elem)
		}
		return score
	case *ast.FunctionCall:
		score := 2
		for _, arg := range expr.Args {
			score += exprComplexity(arg)
		}
		return score
	case *ast.BinaryExpression:
		return 1 + exprComplexity(expr.Left) + exprComplexity(expr.Right)
	default:
		score := 1
		for _, child := range ast.Children(e) {
			score += exprComplexity(child)
		}
		return score
	}
}
