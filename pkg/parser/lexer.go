package parser

import (
	"fmt"
	"unicode/utf8"
)

// lexMode is the scanning mode of a frame on the lexer's mode stack.
type lexMode int

const (
	modeCode    lexMode = iota // ordinary code
	modeFString                // literal text between $" and "
	modeInterp                 // code inside an f-string {...}
)

// frame is an entry of the lexer mode stack.
type frame struct {
	mode  lexMode
	depth int      // nesting of plain braces inside an interpolation
	open  Position // where an f-string frame was opened
}

// Lexer tokenizes CXQL input.
//
// F-strings are scanned with a mode stack: $" pushes a text frame, { inside
// that text pushes a code frame, and the matching } pops back to text. This
// lets interpolations hold any expression, including nested f-strings.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	stack []frame

	// Errors collects lexical problems. Each one also appears in the token
	// stream as an ILLEGAL token, so the parser reports it as well.
	Errors []*LexError
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
		stack: []frame{{mode: modeCode}},
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	if l.pos < len(l.input) && l.pos < l.readPos && l.input[l.pos] == '\n' {
		l.line++
		l.col = 0
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// peekCharN returns the character n positions ahead of the current one.
func (l *Lexer) peekCharN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// atEOF reports whether all input has been consumed.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

func (l *Lexer) top() *frame {
	return &l.stack[len(l.stack)-1]
}

func (l *Lexer) push(f frame) {
	l.stack = append(l.stack, f)
}

func (l *Lexer) pop() {
	if len(l.stack) > 1 {
		l.stack = l.stack[:len(l.stack)-1]
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	if l.top().mode == modeFString {
		return l.nextFStringToken()
	}

	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	if l.atEOF() {
		if tok, ok := l.unterminatedFString(); ok {
			return tok
		}
		return Token{Type: TOKEN_EOF, Pos: pos, End: pos}
	}

	switch l.ch {
	case '(':
		return l.single(TOKEN_LPAREN, pos)
	case ')':
		return l.single(TOKEN_RPAREN, pos)
	case '[':
		return l.single(TOKEN_LBRACKET, pos)
	case ']':
		return l.single(TOKEN_RBRACKET, pos)
	case '{':
		if t := l.top(); t.mode == modeInterp {
			t.depth++
		}
		return l.single(TOKEN_LBRACE, pos)
	case '}':
		if t := l.top(); t.mode == modeInterp {
			if t.depth == 0 {
				l.pop()
			} else {
				t.depth--
			}
		}
		return l.single(TOKEN_RBRACE, pos)
	case ',':
		return l.single(TOKEN_COMMA, pos)
	case ':':
		return l.single(TOKEN_COLON, pos)
	case '.':
		return l.single(TOKEN_DOT, pos)
	case '|':
		return l.single(TOKEN_PIPE, pos)
	case '+':
		return l.single(TOKEN_PLUS, pos)
	case '-':
		return l.single(TOKEN_MINUS, pos)
	case '*':
		return l.single(TOKEN_STAR, pos)
	case '/':
		return l.single(TOKEN_SLASH, pos)
	case '%':
		return l.single(TOKEN_PERCENT, pos)
	case '=':
		switch l.peekChar() {
		case '>':
			return l.double(TOKEN_ARROW, pos)
		case '=':
			return l.double(TOKEN_EQ, pos)
		}
		return l.single(TOKEN_ASSIGN, pos)
	case '<':
		if l.peekChar() == '=' {
			return l.double(TOKEN_LE, pos)
		}
		return l.single(TOKEN_LT, pos)
	case '>':
		if l.peekChar() == '=' {
			return l.double(TOKEN_GE, pos)
		}
		return l.single(TOKEN_GT, pos)
	case '!':
		if l.peekChar() == '=' {
			return l.double(TOKEN_NE, pos)
		}
		return l.illegalRune(pos)
	case '"', '\'':
		return l.readString(pos)
	case '$':
		switch {
		case l.peekChar() == '"':
			tok := l.double(TOKEN_FSTRING_OPEN, pos)
			l.push(frame{mode: modeFString, open: pos})
			return tok
		case isLetter(l.peekChar()):
			l.readChar() // skip '$'
			l.readIdentifier()
			return l.tokenFrom(TOKEN_VARIABLE, pos)
		}
		return l.illegalRune(pos)
	}

	switch {
	case isLetter(l.ch):
		l.readIdentifier()
		return l.tokenFrom(TOKEN_IDENT, pos)
	case isDigit(l.ch):
		l.readNumber()
		return l.tokenFrom(TOKEN_NUMBER, pos)
	default:
		return l.illegalRune(pos)
	}
}

// nextFStringToken scans one token of f-string text mode.
func (l *Lexer) nextFStringToken() Token {
	pos := l.currentPos()
	switch {
	case l.atEOF():
		tok, _ := l.unterminatedFString()
		return tok
	case l.ch == '"':
		l.pop()
		return l.single(TOKEN_FSTRING_CLOSE, pos)
	case l.ch == '{':
		l.push(frame{mode: modeInterp})
		return l.single(TOKEN_LBRACE, pos)
	}

	for !l.atEOF() && l.ch != '"' && l.ch != '{' {
		l.readChar()
	}
	return l.tokenFrom(TOKEN_FSTRING_TEXT, pos)
}

// unterminatedFString reports the innermost f-string still open at end of
// input as an ILLEGAL token anchored at its $" and resets the mode stack so
// the next call yields EOF.
func (l *Lexer) unterminatedFString() (Token, bool) {
	for i := len(l.stack) - 1; i > 0; i-- {
		f := l.stack[i]
		if f.mode != modeFString {
			continue
		}
		l.stack = l.stack[:1]
		l.addError(f.open, ErrUnterminatedFString)
		return Token{
			Type:    TOKEN_ILLEGAL,
			Literal: l.input[f.open.Offset:],
			Pos:     f.open,
			End:     l.currentPos(),
		}, true
	}
	pos := l.currentPos()
	return Token{Type: TOKEN_EOF, Pos: pos, End: pos}, false
}

// single consumes one character and returns a token of type t.
func (l *Lexer) single(t TokenType, pos Position) Token {
	l.readChar()
	return l.tokenFrom(t, pos)
}

// double consumes two characters and returns a token of type t.
func (l *Lexer) double(t TokenType, pos Position) Token {
	l.readChar()
	l.readChar()
	return l.tokenFrom(t, pos)
}

// tokenFrom builds a token spanning from pos to the current position.
func (l *Lexer) tokenFrom(t TokenType, pos Position) Token {
	return Token{
		Type:    t,
		Literal: l.input[pos.Offset:l.pos],
		Pos:     pos,
		End:     l.currentPos(),
	}
}

// illegalRune consumes one UTF-8 encoded rune and returns it as ILLEGAL.
func (l *Lexer) illegalRune(pos Position) Token {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	for i := 0; i < size; i++ {
		l.readChar()
	}
	l.addError(pos, fmt.Sprintf(ErrInvalidCharacter, string(r)))
	return l.tokenFrom(TOKEN_ILLEGAL, pos)
}

func (l *Lexer) addError(pos Position, msg string) {
	l.Errors = append(l.Errors, &LexError{Pos: pos, Message: msg})
}

// skipWhitespaceAndComments skips whitespace and # line comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '#' {
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
			continue
		}

		break
	}
}

// readString reads a single- or double-quoted string. Escapes are kept
// verbatim in the literal. An unterminated string consumes the rest of the
// input and becomes an ILLEGAL token anchored at the opening quote.
func (l *Lexer) readString(pos Position) Token {
	quote := l.ch
	l.readChar() // skip opening quote

	for !l.atEOF() {
		switch l.ch {
		case quote:
			l.readChar() // skip closing quote
			return l.tokenFrom(TOKEN_STRING, pos)
		case '\\':
			l.readChar()
			if l.atEOF() {
				continue
			}
		}
		l.readChar()
	}

	l.addError(pos, ErrUnterminatedString)
	return l.tokenFrom(TOKEN_ILLEGAL, pos)
}

// readIdentifier reads [a-zA-Z][a-zA-Z0-9_-]*.
func (l *Lexer) readIdentifier() {
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '-' {
		l.readChar()
	}
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
// The fraction and exponent are only consumed when digits follow them.
func (l *Lexer) readNumber() {
	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekCharN(2))) {
			l.readChar() // skip 'e' or 'E'
			if l.ch == '+' || l.ch == '-' {
				l.readChar() // skip sign
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
}

// isLetter returns true if ch is an ASCII letter.
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input, ending with EOF.
// It never fails: unrecognized input becomes ILLEGAL tokens.
func Tokenize(input string) []Token {
	tokens, _ := TokenizeWithErrors(input)
	return tokens
}

// TokenizeWithErrors returns all tokens from the input together with the
// lexical errors found along the way.
func TokenizeWithErrors(input string) ([]Token, []*LexError) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	return tokens, l.Errors
}
