package parser

import (
	"github.com/leapstack-labs/cxql/pkg/ast"
)

// Statement grammar:
//
//	statement  → let_stmt | connect    | with_stmt | expr
//	let_stmt   → LET IDENT '=' expr
//	connect    → CONNECT expr AS IDENT
//	           | CONNECT '(' expr ',' AS '=' IDENT ','? ')'
//	with_stmt  → WITH IDENT block
//	block      → '{' let_stmt* expr? '}'
//	if_expr    → IF block block [ELSE block]

// parseStatement parses one top-level statement. A token that cannot start
// a statement yields an ErrorExpr at its position.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case TOKEN_LET:
		return p.parseLetStatement()
	case TOKEN_CONNECT:
		return p.parseConnectStatement()
	case TOKEN_WITH:
		return p.parseWithStatement()
	}

	if !canStartExpression(p.cur().Type) {
		p.errorAt(p.cur(), expectStatement)
		return errorExpr(p.cur())
	}
	return p.parseExpression()
}

// parseLetStatement parses: LET IDENT '=' expr
func (p *Parser) parseLetStatement() *ast.LetStatement {
	start := p.advance().Pos // consume LET
	stmt := &ast.LetStatement{}

	stmt.Name = p.parseIdentifier()
	if p.expect(TOKEN_ASSIGN) {
		stmt.Value = p.parseExpression()
	} else {
		stmt.Value = errorExpr(p.cur())
	}

	stmt.Span = p.spanFrom(start)
	return stmt
}

// parseConnectStatement parses both connect forms. The call-like form is
// tried first when CONNECT is directly followed by '('; if it does not
// match, the tokens are reparsed as the canonical form.
func (p *Parser) parseConnectStatement() *ast.ConnectStatement {
	start := p.advance().Pos // consume CONNECT

	if p.check(TOKEN_LPAREN) {
		snap := p.save()
		if stmt, ok := p.parseLegacyConnect(); ok {
			stmt.Span = p.spanFrom(start)
			return stmt
		}
		p.restore(snap)
	}

	stmt := &ast.ConnectStatement{}
	stmt.Source = p.parseExpression()
	if p.expect(TOKEN_AS) {
		stmt.Alias = p.parseIdentifier()
	}
	stmt.Span = p.spanFrom(start)
	return stmt
}

// parseLegacyConnect parses '(' expr ',' AS '=' IDENT ','? ')'.
// It reports false when the input does not begin with '(' expr ',' AS '='.
// Past that prefix the statement is committed to this form and any error
// in the alias or the closing parenthesis is kept.
func (p *Parser) parseLegacyConnect() (*ast.ConnectStatement, bool) {
	p.advance() // consume (

	source := p.parseExpression()
	if !p.match(TOKEN_COMMA) || !p.match(TOKEN_AS) || !p.match(TOKEN_ASSIGN) {
		return nil, false
	}

	stmt := &ast.ConnectStatement{Source: source}
	stmt.Alias = p.parseIdentifier()
	if stmt.Alias != nil {
		p.match(TOKEN_COMMA)
	}
	p.closeDelimited(TOKEN_LPAREN, TOKEN_RPAREN)
	return stmt, true
}

// parseWithStatement parses: WITH IDENT block
func (p *Parser) parseWithStatement() *ast.WithStatement {
	start := p.advance().Pos // consume WITH
	stmt := &ast.WithStatement{}
	stmt.Alias = p.parseIdentifier()
	stmt.Body = p.parseBlock()
	stmt.Span = p.spanFrom(start)
	return stmt
}

// parseBlock parses: '{' let_stmt* expr? '}'
// Callers use it where only a block is allowed, so {} is an empty block.
func (p *Parser) parseBlock() *ast.Block {
	start := p.cur().Pos
	block := &ast.Block{}

	if !p.check(TOKEN_LBRACE) {
		p.errorAt(p.cur(), quoted(TOKEN_LBRACE))
		block.Span = p.spanFrom(start)
		return block
	}
	p.advance()

	for p.check(TOKEN_LET) {
		block.Lets = append(block.Lets, p.parseLetStatement())
		if p.stuck() {
			p.synchronize()
		}
	}

	if !p.check(TOKEN_RBRACE) && !p.check(TOKEN_EOF) {
		block.Result = p.parseExpression()
	}

	if !p.match(TOKEN_RBRACE) {
		p.errorAt(p.cur(), quoted(TOKEN_RBRACE))
		p.skipBalanced(TOKEN_LBRACE, TOKEN_RBRACE)
	}

	block.Span = p.spanFrom(start)
	return block
}

// parseIfExpression parses: IF block block [ELSE block]
func (p *Parser) parseIfExpression() *ast.IfExpression {
	start := p.advance().Pos // consume IF
	expr := &ast.IfExpression{}
	expr.Condition = p.parseBlock()
	expr.Consequent = p.parseBlock()
	if p.match(TOKEN_ELSE) {
		expr.Alternative = p.parseBlock()
	}
	expr.Span = p.spanFrom(start)
	return expr
}

// parseIdentifier parses a plain identifier. Keywords are not accepted.
// On failure an error is recorded and nil is returned.
func (p *Parser) parseIdentifier() *ast.Identifier {
	if !p.check(TOKEN_IDENT) {
		p.errorAt(p.cur(), expectIdentifier)
		return nil
	}
	return identFrom(p.advance())
}

// parseName parses a name where keywords are also accepted.
func (p *Parser) parseName() *ast.Identifier {
	if !isName(p.cur()) {
		p.errorAt(p.cur(), expectIdentifier)
		return nil
	}
	return identFrom(p.advance())
}

func identFrom(tok Token) *ast.Identifier {
	return &ast.Identifier{
		NodeInfo: ast.NodeInfo{Span: tok.Span()},
		Name:     tok.Literal,
	}
}
