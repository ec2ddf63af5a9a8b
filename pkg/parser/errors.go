package parser

import (
	"fmt"
	"strings"
)

// SyntaxError is a recoverable parse failure: what the parser expected at a
// position and what it found there instead.
type SyntaxError struct {
	Pos      Position
	Expected []string
	Found    string
}

// Message returns the error text without position information.
func (e *SyntaxError) Message() string {
	if len(e.Expected) == 0 {
		return e.Found
	}
	return fmt.Sprintf(ErrUnexpectedToken, e.Found, joinExpected(e.Expected))
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message())
}

func joinExpected(expected []string) string {
	switch len(expected) {
	case 1:
		return expected[0]
	case 2:
		return expected[0] + " or " + expected[1]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// ErrorList is the ordered list of syntax errors found by one parse call.
type ErrorList []*SyntaxError

// Error implements the error interface. It reports the first error and how
// many more follow.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// Err returns nil for an empty list and the list itself otherwise.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Common error messages
const (
	ErrUnexpectedToken     = "unexpected %s, expected %s"
	ErrUnterminatedString  = "unterminated string"
	ErrUnterminatedFString = "unterminated f-string"
	ErrInvalidCharacter    = "invalid character %q"
)

// Descriptions used in SyntaxError.Expected.
const (
	expectExpression = "expression"
	expectIdentifier = "identifier"
	expectKey        = "record key"
	expectStatement  = "statement"
)

// describeToken returns the text used for a token in SyntaxError.Found.
func describeToken(tok Token) string {
	switch tok.Type {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_ILLEGAL:
		lit := tok.Literal
		switch {
		case strings.HasPrefix(lit, `$"`):
			return ErrUnterminatedFString
		case strings.HasPrefix(lit, `"`), strings.HasPrefix(lit, `'`):
			return ErrUnterminatedString
		}
		return fmt.Sprintf(ErrInvalidCharacter, lit)
	case TOKEN_FSTRING_TEXT:
		return fmt.Sprintf("f-string text %q", tok.Literal)
	}
	return fmt.Sprintf("%q", tok.Literal)
}

// quoted wraps a token spelling for use in SyntaxError.Expected.
func quoted(t TokenType) string {
	return fmt.Sprintf("%q", t.String())
}
