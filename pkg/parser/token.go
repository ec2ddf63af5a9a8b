package parser

import "github.com/leapstack-labs/cxql/pkg/token"

// TokenType is an alias for token.TokenType.
type TokenType = token.TokenType

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position

//nolint:revive // TOKEN_* names are intentionally ALL_CAPS to match the token package
const (
	// Special tokens
	TOKEN_EOF     = token.EOF
	TOKEN_ILLEGAL = token.ILLEGAL

	// Literals
	TOKEN_IDENT         = token.IDENT
	TOKEN_NUMBER        = token.NUMBER
	TOKEN_STRING        = token.STRING
	TOKEN_VARIABLE      = token.VARIABLE
	TOKEN_FSTRING_OPEN  = token.FSTRING_OPEN
	TOKEN_FSTRING_TEXT  = token.FSTRING_TEXT
	TOKEN_FSTRING_CLOSE = token.FSTRING_CLOSE

	// Punctuation
	TOKEN_LPAREN   = token.LPAREN
	TOKEN_RPAREN   = token.RPAREN
	TOKEN_LBRACKET = token.LBRACKET
	TOKEN_RBRACKET = token.RBRACKET
	TOKEN_LBRACE   = token.LBRACE
	TOKEN_RBRACE   = token.RBRACE
	TOKEN_COMMA    = token.COMMA
	TOKEN_COLON    = token.COLON
	TOKEN_DOT      = token.DOT

	// Operators
	TOKEN_PIPE    = token.PIPE
	TOKEN_ARROW   = token.ARROW
	TOKEN_PLUS    = token.PLUS
	TOKEN_MINUS   = token.MINUS
	TOKEN_STAR    = token.STAR
	TOKEN_SLASH   = token.SLASH
	TOKEN_PERCENT = token.PERCENT
	TOKEN_LT      = token.LT
	TOKEN_GT      = token.GT
	TOKEN_LE      = token.LE
	TOKEN_GE      = token.GE
	TOKEN_EQ      = token.EQ
	TOKEN_NE      = token.NE
	TOKEN_ASSIGN  = token.ASSIGN

	// Keywords
	TOKEN_AND     = token.AND
	TOKEN_AS      = token.AS
	TOKEN_CONNECT = token.CONNECT
	TOKEN_ELSE    = token.ELSE
	TOKEN_FALSE   = token.FALSE
	TOKEN_IF      = token.IF
	TOKEN_LET     = token.LET
	TOKEN_NOT     = token.NOT
	TOKEN_NULL    = token.NULL
	TOKEN_OR      = token.OR
	TOKEN_TRUE    = token.TRUE
	TOKEN_WITH    = token.WITH
)
