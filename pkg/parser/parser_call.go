package parser

import (
	"github.com/leapstack-labs/cxql/pkg/ast"
	"github.com/leapstack-labs/cxql/pkg/token"
)

// Call argument grammar:
//
//	args      → '(' [argument (',' argument)* ','?] ')'
//	argument  → LABEL [':' IDENT] record     labeled block
//	          | name '=' expr                keyword argument
//	          | expr                         positional
//
// LABEL is one of the words accepted by token.IsLabel. Arguments of each
// kind may appear in any order.

// parseCallArguments parses a parenthesized argument list.
func (p *Parser) parseCallArguments() []ast.Argument {
	p.advance() // consume (

	var args []ast.Argument
	for !p.check(TOKEN_RPAREN) && !p.check(TOKEN_EOF) {
		args = append(args, p.parseArgument())
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.closeDelimited(TOKEN_LPAREN, TOKEN_RPAREN)
	return args
}

// parseArgument parses a single call argument.
func (p *Parser) parseArgument() ast.Argument {
	if p.isLabeledBlockStart() {
		return p.parseLabeledBlock()
	}
	if isName(p.cur()) && p.checkPeek(TOKEN_ASSIGN) {
		return p.parseKeywordArgument()
	}
	return p.parseExpression()
}

// isLabeledBlockStart reports whether the current token begins
// label { ... } or label: Type { ... }.
func (p *Parser) isLabeledBlockStart() bool {
	tok := p.cur()
	if !isName(tok) || !token.IsLabel(tok.Literal) {
		return false
	}
	switch p.peekAt(1).Type {
	case TOKEN_LBRACE:
		return true
	case TOKEN_COLON:
		return p.peekAt(2).Type == TOKEN_IDENT && p.peekAt(3).Type == TOKEN_LBRACE
	}
	return false
}

// parseLabeledBlock parses: LABEL [':' IDENT] record
func (p *Parser) parseLabeledBlock() *ast.LabeledBlock {
	labelTok := p.advance()
	lb := &ast.LabeledBlock{Label: labelTok.Literal}
	if p.match(TOKEN_COLON) {
		lb.TypeTag = p.parseIdentifier()
	}
	lb.Body = p.parseRecord()
	lb.Span = p.spanFrom(labelTok.Pos)
	return lb
}

// parseKeywordArgument parses: name '=' expr
func (p *Parser) parseKeywordArgument() *ast.KeywordArgument {
	nameTok := p.advance()
	p.advance() // consume =
	arg := &ast.KeywordArgument{
		Name:  identFrom(nameTok),
		Value: p.parseExpression(),
	}
	arg.Span = p.spanFrom(nameTok.Pos)
	return arg
}
