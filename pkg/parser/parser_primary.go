package parser

import (
	"github.com/leapstack-labs/cxql/pkg/ast"
)

// Primary expression grammar:
//
//	primary  → NUMBER | STRING | VARIABLE | fstring | TRUE | FALSE | NULL
//	         | if_expr | IDENT | '(' expr ')' | list | record | block
//	list     → '[' [expr (',' expr)* ','?] ']'
//	record   → '{' [property (',' property)* ','?] '}'
//	property → (name | STRING) ':' expr
//	fstring  → FSTRING_OPEN (FSTRING_TEXT | '{' expr '}')* FSTRING_CLOSE

// parsePrimary parses a primary expression. Reserved words and tokens that
// cannot start an expression yield an error and an *ast.ErrorExpr.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case TOKEN_NUMBER:
		p.advance()
		return &ast.NumberLiteral{NodeInfo: ast.NodeInfo{Span: tok.Span()}, Value: tok.Literal}

	case TOKEN_STRING:
		p.advance()
		return stringFrom(tok)

	case TOKEN_VARIABLE:
		p.advance()
		return &ast.VariableReference{NodeInfo: ast.NodeInfo{Span: tok.Span()}, Name: tok.Literal[1:]}

	case TOKEN_FSTRING_OPEN:
		return p.parseFString()

	case TOKEN_TRUE, TOKEN_FALSE:
		p.advance()
		return &ast.BooleanLiteral{NodeInfo: ast.NodeInfo{Span: tok.Span()}, Value: tok.Type == TOKEN_TRUE}

	case TOKEN_NULL:
		p.advance()
		return &ast.NullLiteral{NodeInfo: ast.NodeInfo{Span: tok.Span()}}

	case TOKEN_IF:
		return p.parseIfExpression()

	case TOKEN_IDENT:
		p.advance()
		return identFrom(tok)

	case TOKEN_LPAREN:
		p.advance()
		expr := p.parseExpression()
		if !p.match(TOKEN_RPAREN) {
			p.errorAt(p.cur(), quoted(TOKEN_RPAREN))
			p.skipBalanced(TOKEN_LPAREN, TOKEN_RPAREN)
		}
		return expr

	case TOKEN_LBRACKET:
		return p.parseList()

	case TOKEN_LBRACE:
		if p.isRecordStart() {
			return p.parseRecord()
		}
		return p.parseBlock()
	}

	p.errorAt(tok, expectExpression)
	return errorExpr(tok)
}

// parseList parses: '[' [expr (',' expr)* ','?] ']'
func (p *Parser) parseList() *ast.ListLiteral {
	start := p.advance().Pos // consume [
	list := &ast.ListLiteral{}

	for !p.check(TOKEN_RBRACKET) && !p.check(TOKEN_EOF) {
		list.Elements = append(list.Elements, p.parseExpression())
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.closeDelimited(TOKEN_LBRACKET, TOKEN_RBRACKET)

	list.Span = p.spanFrom(start)
	return list
}

// isRecordStart decides between a record literal and a block at '{'.
//
// A record is '{' '}' or '{' key ':' ...; no block can begin with a key
// followed by a colon, so this agrees with trying a record first and
// falling back to a block. Positions that only allow a block call
// parseBlock directly, which is how {} becomes an empty block there.
func (p *Parser) isRecordStart() bool {
	next := p.peekAt(1)
	if next.Type == TOKEN_RBRACE {
		return true
	}
	if !isName(next) && next.Type != TOKEN_STRING {
		return false
	}
	return p.peekAt(2).Type == TOKEN_COLON
}

// parseRecord parses: '{' [property (',' property)* ','?] '}'
func (p *Parser) parseRecord() *ast.RecordLiteral {
	start := p.cur().Pos
	rec := &ast.RecordLiteral{}

	if !p.match(TOKEN_LBRACE) {
		p.errorAt(p.cur(), quoted(TOKEN_LBRACE))
		rec.Span = p.spanFrom(start)
		return rec
	}

	for !p.check(TOKEN_RBRACE) && !p.check(TOKEN_EOF) {
		prop := p.parseProperty()
		if prop == nil {
			break
		}
		rec.Properties = append(rec.Properties, prop)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	if !p.stuck() {
		p.closeDelimited(TOKEN_LBRACE, TOKEN_RBRACE)
	} else {
		p.skipBalanced(TOKEN_LBRACE, TOKEN_RBRACE)
	}

	rec.Span = p.spanFrom(start)
	return rec
}

// parseProperty parses: (name | STRING) ':' expr
func (p *Parser) parseProperty() *ast.Property {
	start := p.cur().Pos
	prop := &ast.Property{}

	switch tok := p.cur(); {
	case isName(tok):
		prop.Key = identFrom(p.advance())
	case tok.Type == TOKEN_STRING:
		prop.Key = stringFrom(p.advance())
	default:
		p.errorAt(tok, expectKey)
		return nil
	}

	if p.expect(TOKEN_COLON) {
		prop.Value = p.parseExpression()
	} else {
		prop.Value = errorExpr(p.cur())
	}

	prop.Span = p.spanFrom(start)
	return prop
}

// parseFString parses an f-string, recursing into full expressions for
// each interpolation.
func (p *Parser) parseFString() *ast.FStringLiteral {
	start := p.advance().Pos // consume $"
	fs := &ast.FStringLiteral{}

	for {
		tok := p.cur()
		switch tok.Type {
		case TOKEN_FSTRING_TEXT:
			p.advance()
			fs.Parts = append(fs.Parts, &ast.FStringText{
				NodeInfo: ast.NodeInfo{Span: tok.Span()},
				Value:    tok.Literal,
			})

		case TOKEN_LBRACE:
			p.advance()
			interp := &ast.Interpolation{Expr: p.parseExpression()}
			if !p.match(TOKEN_RBRACE) {
				p.errorAt(p.cur(), quoted(TOKEN_RBRACE))
				p.skipInterpolation()
			}
			interp.Span = p.spanFrom(tok.Pos)
			fs.Parts = append(fs.Parts, interp)

		case TOKEN_FSTRING_CLOSE:
			p.advance()
			fs.Span = p.spanFrom(start)
			return fs

		default:
			// Only an unterminated f-string ends without a closing quote.
			p.errorAt(tok, `"\""`)
			fs.Span = p.spanFrom(start)
			return fs
		}
	}
}

// skipInterpolation skips the rest of a malformed interpolation, up to and
// including its closing brace.
func (p *Parser) skipInterpolation() {
	depth := 0
	for {
		switch p.cur().Type {
		case TOKEN_EOF, TOKEN_ILLEGAL, TOKEN_FSTRING_CLOSE:
			return
		case TOKEN_LBRACE:
			depth++
		case TOKEN_RBRACE:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
		}
		p.advance()
	}
}

func stringFrom(tok Token) *ast.StringLiteral {
	lit := tok.Literal
	return &ast.StringLiteral{
		NodeInfo: ast.NodeInfo{Span: tok.Span()},
		Value:    lit[1 : len(lit)-1],
		Quote:    lit[0],
	}
}
