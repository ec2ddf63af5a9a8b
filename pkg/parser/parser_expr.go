package parser

import (
	"github.com/leapstack-labs/cxql/pkg/ast"
)

// Expression grammar, one function per precedence level (loosest first):
//
//	arrow          → or ['=>' arrow]                      0, right
//	or             → and (OR and)*                        1, left
//	and            → not (AND not)*                       2, left
//	not            → NOT not | equality                   3, prefix
//	equality       → comparison (('=='|'!=') comparison)* 4, left
//	comparison     → additive (('<'|'>'|'<='|'>=') additive)*  5, left
//	additive       → multiplicative (('+'|'-'|'|') multiplicative)*  6, left
//	multiplicative → unary (('*'|'/'|'%') unary)*         7, left
//	unary          → '-' unary | postfix                  8, prefix
//	postfix        → primary ('(' args ')' | '.' name)*   9 and 10
//
// A run of '|' at the additive level becomes one Pipeline. A pipeline that
// appears as an operand of '+' or '-' ends the run, so a later '|' starts a
// new pipeline with that binary expression as its first stage.

// parseExpression parses a full expression.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseArrow()
}

// parseArrow parses: or ['=>' arrow]
// The parameter must be a single, unparenthesized identifier.
func (p *Parser) parseArrow() ast.Expr {
	startTok := p.cur()
	left := p.parseOr()
	if !p.check(TOKEN_ARROW) {
		return left
	}
	p.advance()

	arrow := &ast.ArrowExpression{}
	if param, ok := left.(*ast.Identifier); ok && startTok.Type == TOKEN_IDENT {
		arrow.Param = param
	} else {
		p.errorAt(startTok, expectIdentifier)
	}
	arrow.Body = p.parseArrow()
	arrow.Span = p.spanFrom(startTok.Pos)
	return arrow
}

// parseOr parses: and (OR and)*
func (p *Parser) parseOr() ast.Expr {
	start := p.cur().Pos
	left := p.parseAnd()
	for p.check(TOKEN_OR) {
		op := p.advance().Type
		right := p.parseAnd()
		left = p.binary(start, left, op, right)
	}
	return left
}

// parseAnd parses: not (AND not)*
func (p *Parser) parseAnd() ast.Expr {
	start := p.cur().Pos
	left := p.parseNot()
	for p.check(TOKEN_AND) {
		op := p.advance().Type
		right := p.parseNot()
		left = p.binary(start, left, op, right)
	}
	return left
}

// parseNot parses: NOT not | equality
func (p *Parser) parseNot() ast.Expr {
	if !p.check(TOKEN_NOT) {
		return p.parseEquality()
	}
	start := p.advance().Pos
	expr := &ast.LogicalNotExpression{Operand: p.parseNot()}
	expr.Span = p.spanFrom(start)
	return expr
}

// parseEquality parses: comparison (('=='|'!=') comparison)*
func (p *Parser) parseEquality() ast.Expr {
	start := p.cur().Pos
	left := p.parseComparison()
	for p.check(TOKEN_EQ) || p.check(TOKEN_NE) {
		op := p.advance().Type
		right := p.parseComparison()
		left = p.binary(start, left, op, right)
	}
	return left
}

// parseComparison parses: additive (('<'|'>'|'<='|'>=') additive)*
func (p *Parser) parseComparison() ast.Expr {
	start := p.cur().Pos
	left := p.parseAdditive()
	for {
		switch p.cur().Type {
		case TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE:
			op := p.advance().Type
			right := p.parseAdditive()
			left = p.binary(start, left, op, right)
		default:
			return left
		}
	}
}

// parseAdditive parses: multiplicative (('+'|'-'|'|') multiplicative)*
func (p *Parser) parseAdditive() ast.Expr {
	start := p.cur().Pos
	left := p.parseMultiplicative()

	var pipe *ast.Pipeline // pipeline built by this loop, while it is still left
	for {
		switch p.cur().Type {
		case TOKEN_PLUS, TOKEN_MINUS:
			op := p.advance().Type
			right := p.parseMultiplicative()
			left = p.binary(start, left, op, right)
			pipe = nil
		case TOKEN_PIPE:
			p.advance()
			stage := p.parseMultiplicative()
			if pipe == nil {
				pipe = &ast.Pipeline{Stages: []ast.Expr{left}}
				left = pipe
			}
			pipe.Stages = append(pipe.Stages, stage)
			pipe.Span = p.spanFrom(start)
		default:
			return left
		}
	}
}

// parseMultiplicative parses: unary (('*'|'/'|'%') unary)*
func (p *Parser) parseMultiplicative() ast.Expr {
	start := p.cur().Pos
	left := p.parseUnary()
	for {
		switch p.cur().Type {
		case TOKEN_STAR, TOKEN_SLASH, TOKEN_PERCENT:
			op := p.advance().Type
			right := p.parseUnary()
			left = p.binary(start, left, op, right)
		default:
			return left
		}
	}
}

// parseUnary parses: '-' unary | postfix
func (p *Parser) parseUnary() ast.Expr {
	if !p.check(TOKEN_MINUS) {
		return p.parsePostfix()
	}
	tok := p.advance()
	expr := &ast.UnaryExpression{Op: tok.Type, Operand: p.parseUnary()}
	expr.Span = p.spanFrom(tok.Pos)
	return expr
}

// parsePostfix parses a primary followed by any number of member accesses
// and call argument lists, applied left to right.
func (p *Parser) parsePostfix() ast.Expr {
	start := p.cur().Pos
	expr := p.parsePrimary()
	for {
		switch p.cur().Type {
		case TOKEN_DOT:
			p.advance()
			member := &ast.MemberExpression{Object: expr, Property: p.parseName()}
			member.Span = p.spanFrom(start)
			expr = member
		case TOKEN_LPAREN:
			call := &ast.FunctionCall{Callee: expr, Args: p.parseCallArguments()}
			call.Span = p.spanFrom(start)
			expr = call
		default:
			return expr
		}
	}
}

// binary builds a binary expression spanning from start.
func (p *Parser) binary(start Position, left ast.Expr, op TokenType, right ast.Expr) *ast.BinaryExpression {
	expr := &ast.BinaryExpression{Left: left, Op: op, Right: right}
	expr.Span = p.spanFrom(start)
	return expr
}

// canStartExpression reports whether a token of type t can begin an expression.
func canStartExpression(t TokenType) bool {
	switch t {
	case TOKEN_NUMBER, TOKEN_STRING, TOKEN_VARIABLE, TOKEN_FSTRING_OPEN,
		TOKEN_TRUE, TOKEN_FALSE, TOKEN_NULL, TOKEN_IF, TOKEN_IDENT,
		TOKEN_LPAREN, TOKEN_LBRACKET, TOKEN_LBRACE, TOKEN_MINUS, TOKEN_NOT:
		return true
	}
	return false
}
