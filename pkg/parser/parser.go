// Package parser provides CXQL lexing and parsing.
//
// # Usage
//
//	prog, err := parser.Parse(src)
//	if err != nil {
//	    // prog is still a best-effort tree; err is a parser.ErrorList
//	}
//
// The parser never aborts. When a production fails it records a
// SyntaxError, leaves an *ast.ErrorExpr in the tree and skips ahead to the
// next statement boundary.
//
// # Grammar Overview
//
//	program    → statement*
//	statement  → let_stmt | connect_stmt | with_stmt | expr
//	let_stmt   → LET IDENT '=' expr
//	connect    → CONNECT expr AS IDENT | CONNECT '(' expr ',' AS '=' IDENT ','? ')'
//	with_stmt  → WITH IDENT block
//	block      → '{' let_stmt* expr? '}'
//	expr       → arrow
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"github.com/leapstack-labs/cxql/pkg/ast"
	"github.com/leapstack-labs/cxql/pkg/token"
)

// Parser parses a token stream into an AST.
type Parser struct {
	tokens []Token
	pos    int // index of the current token
	errors ErrorList
	errPos int // offset of the most recent error report, -1 if none
}

// NewParser creates a parser over tokens produced by Tokenize. Words are
// reclassified into keyword tokens here. A trailing EOF is added if missing.
func NewParser(tokens []Token) *Parser {
	toks := make([]Token, 0, len(tokens)+1)
	for _, tok := range tokens {
		if tok.Type == TOKEN_IDENT {
			tok.Type = token.LookupIdent(tok.Literal)
		}
		toks = append(toks, tok)
	}
	if len(toks) == 0 || toks[len(toks)-1].Type != TOKEN_EOF {
		var end Position
		if len(toks) > 0 {
			end = toks[len(toks)-1].End
		} else {
			end = Position{Line: 1, Column: 1}
		}
		toks = append(toks, Token{Type: TOKEN_EOF, Pos: end, End: end})
	}
	return &Parser{tokens: toks, errPos: -1}
}

// ParseProgram parses src and returns the tree together with every syntax
// error found. The tree is returned even when errors exist.
func ParseProgram(src string) (*ast.Program, ErrorList) {
	p := NewParser(Tokenize(src))
	prog := p.ParseProgram()
	return prog, p.Errors()
}

// Parse parses src. The returned error is nil or an ErrorList.
func Parse(src string) (*ast.Program, error) {
	prog, errs := ParseProgram(src)
	return prog, errs.Err()
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string) (ast.Expr, error) {
	p := NewParser(Tokenize(src))
	expr := p.parseExpression()
	if !p.check(TOKEN_EOF) {
		p.errorAt(p.cur(), "end of input")
	}
	return expr, p.errors.Err()
}

// Errors returns the syntax errors recorded so far, in discovery order.
func (p *Parser) Errors() ErrorList {
	return p.errors
}

// ParseProgram parses statements until end of input.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}

	for !p.check(TOKEN_EOF) {
		before := p.pos

		prog.Statements = append(prog.Statements, p.parseStatement())

		if p.stuck() {
			p.synchronize()
			// Nothing is open at the top level, so a brace here is debris
			// from the failed statement.
			if p.check(TOKEN_RBRACE) {
				p.advance()
			}
		}
		if p.pos == before {
			p.advance()
		}
	}

	prog.Span = token.Span{
		Start: Position{Line: 1, Column: 1, Offset: 0},
		End:   p.cur().End,
	}
	return prog
}

// ---------- Token Helpers ----------

// cur returns the current token.
func (p *Parser) cur() Token {
	return p.tokens[p.pos]
}

// peekAt returns the token n positions ahead, clamped to EOF.
func (p *Parser) peekAt(n int) Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		i = len(p.tokens) - 1
	}
	return p.tokens[i]
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.cur().Type == t
}

// checkPeek returns true if the token after the current one is of the given type.
func (p *Parser) checkPeek(t TokenType) bool {
	return p.peekAt(1).Type == t
}

// advance consumes the current token and returns it. EOF is never consumed.
func (p *Parser) advance() Token {
	tok := p.cur()
	if tok.Type != TOKEN_EOF {
		p.pos++
	}
	return tok
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise records an error.
func (p *Parser) expect(t TokenType) bool {
	if p.match(t) {
		return true
	}
	p.errorAt(p.cur(), quoted(t))
	return false
}

// prevEnd returns the end position of the last consumed token.
func (p *Parser) prevEnd() Position {
	if p.pos == 0 {
		return p.tokens[0].Pos
	}
	return p.tokens[p.pos-1].End
}

// spanFrom returns the span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start Position) token.Span {
	end := p.prevEnd()
	if end.Offset < start.Offset {
		end = start
	}
	return token.Span{Start: start, End: end}
}

// isName reports whether tok may be used where a name is expected:
// record keys, keyword argument names and member properties.
func isName(tok Token) bool {
	return tok.Type == TOKEN_IDENT || token.IsKeyword(tok.Type)
}

// ---------- Errors and Recovery ----------

// errorAt records a syntax error at tok. At most one error is kept per
// source offset.
func (p *Parser) errorAt(tok Token, expected ...string) {
	p.errPos = tok.Pos.Offset
	for _, e := range p.errors {
		if e.Pos.Offset == tok.Pos.Offset {
			return
		}
	}
	p.errors = append(p.errors, &SyntaxError{
		Pos:      tok.Pos,
		Expected: expected,
		Found:    describeToken(tok),
	})
}

// errorExpr returns a placeholder for a construct that failed at tok.
func errorExpr(tok Token) *ast.ErrorExpr {
	return &ast.ErrorExpr{NodeInfo: ast.NodeInfo{Span: token.Span{Start: tok.Pos, End: tok.Pos}}}
}

// stuck reports whether the most recent error was raised at the current
// token, meaning the parser stopped there without consuming it.
func (p *Parser) stuck() bool {
	return p.errPos >= 0 && p.errPos == p.cur().Pos.Offset
}

// atBoundary reports whether the current token starts a statement or closes a block.
func (p *Parser) atBoundary() bool {
	switch p.cur().Type {
	case TOKEN_LET, TOKEN_CONNECT, TOKEN_IF, TOKEN_WITH, TOKEN_RBRACE, TOKEN_EOF:
		return true
	}
	return false
}

// synchronize skips tokens until a statement boundary. Illegal tokens
// skipped on the way are still reported.
func (p *Parser) synchronize() {
	for !p.atBoundary() {
		if p.check(TOKEN_ILLEGAL) {
			p.errorAt(p.cur())
		}
		p.advance()
	}
}

// skipBalanced skips to the token closing the current open delimiter and
// consumes it. Parentheses and brackets also stop before a let or connect
// at the same nesting level, since neither can appear inside them.
func (p *Parser) skipBalanced(open, closer TokenType) {
	depth := 0
	for !p.check(TOKEN_EOF) {
		tok := p.cur()
		switch tok.Type {
		case open:
			depth++
		case closer:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
		case TOKEN_LET, TOKEN_CONNECT:
			if depth == 0 && closer != TOKEN_RBRACE {
				return
			}
		case TOKEN_ILLEGAL:
			p.errorAt(tok)
		}
		p.advance()
	}
}

// closeDelimited consumes the closing delimiter of a list, call or record.
// When something else is found an error lists what was acceptable and the
// rest of the construct is skipped.
func (p *Parser) closeDelimited(open, closer TokenType) {
	if p.match(closer) {
		return
	}
	p.errorAt(p.cur(), quoted(TOKEN_COMMA), quoted(closer))
	p.skipBalanced(open, closer)
}

// snapshot captures parser state for trial parses.
type snapshot struct {
	pos    int
	nerrs  int
	errPos int
}

func (p *Parser) save() snapshot {
	return snapshot{pos: p.pos, nerrs: len(p.errors), errPos: p.errPos}
}

func (p *Parser) restore(s snapshot) {
	p.pos = s.pos
	p.errors = p.errors[:s.nerrs]
	p.errPos = s.errPos
}
