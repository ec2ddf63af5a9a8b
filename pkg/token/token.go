// Package token defines the lexical tokens of CXQL.
//
// Words are never reserved by the lexer: every word is scanned as IDENT and
// the parser reclassifies it with LookupIdent. Label keywords used by
// labeled call arguments form a closed set, see IsLabel.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // FSTRING_* names follow the ALL_CAPS token convention
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT         // fetch, user-id
	NUMBER        // 42, 3.14, 1e-3
	STRING        // "text", 'text'
	VARIABLE      // $name
	FSTRING_OPEN  // $"
	FSTRING_TEXT  // literal run inside an f-string
	FSTRING_CLOSE // closing " of an f-string

	// Punctuation
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	LBRACE   // {
	RBRACE   // }
	COMMA    // ,
	COLON    // :
	DOT      // .

	// Operators
	PIPE    // |
	ARROW   // =>
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	LT      // <
	GT      // >
	LE      // <=
	GE      // >=
	EQ      // ==
	NE      // !=
	ASSIGN  // =

	// Keywords (alphabetical)
	AND
	AS
	CONNECT
	ELSE
	FALSE
	IF
	LET
	NOT
	NULL
	OR
	TRUE
	WITH
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:         "IDENT",
	NUMBER:        "NUMBER",
	STRING:        "STRING",
	VARIABLE:      "VARIABLE",
	FSTRING_OPEN:  "FSTRING_OPEN",
	FSTRING_TEXT:  "FSTRING_TEXT",
	FSTRING_CLOSE: "FSTRING_CLOSE",

	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	LBRACE:   "{",
	RBRACE:   "}",
	COMMA:    ",",
	COLON:    ":",
	DOT:      ".",

	PIPE:    "|",
	ARROW:   "=>",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	LT:      "<",
	GT:      ">",
	LE:      "<=",
	GE:      ">=",
	EQ:      "==",
	NE:      "!=",
	ASSIGN:  "=",

	AND:     "and",
	AS:      "as",
	CONNECT: "connect",
	ELSE:    "else",
	FALSE:   "false",
	IF:      "if",
	LET:     "let",
	NOT:     "not",
	NULL:    "null",
	OR:      "or",
	TRUE:    "true",
	WITH:    "with",
}

// keywords maps keyword spellings to their token types. Matching is case-sensitive.
var keywords = map[string]TokenType{
	"and":     AND,
	"as":      AS,
	"connect": CONNECT,
	"else":    ELSE,
	"false":   FALSE,
	"if":      IF,
	"let":     LET,
	"not":     NOT,
	"null":    NULL,
	"or":      OR,
	"true":    TRUE,
	"with":    WITH,
}

// labels is the closed set of labels accepted before a labeled call argument.
// Adding a label is a one-line change here.
var labels = map[string]bool{
	"where":  true,
	"with":   true,
	"set":    true,
	"using":  true,
	"params": true,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsLabel reports whether word may introduce a labeled block argument.
func IsLabel(word string) bool {
	return labels[word]
}

// Labels returns the label keywords in a stable order.
func Labels() []string {
	return []string{"where", "with", "set", "using", "params"}
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= AND && t <= WITH
}

// IsOperator returns true if the token type is an operator.
func IsOperator(t TokenType) bool {
	return t >= PIPE && t <= ASSIGN
}

// Token represents a lexical token with position information.
// Pos is the position of the first byte and End the position just past the last.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	End     Position
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End}
}
