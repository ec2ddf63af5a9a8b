// Package format regenerates CXQL source from a syntax tree.
//
// Output is deterministic: the same tree always prints the same text, and
// parsing the printed text of an error-free tree yields an equal tree.
package format

import (
	"bytes"
	"strings"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 2

// Printer handles CXQL formatting with indentation.
type Printer struct {
	output      *bytes.Buffer
	indentSize  int
	depth       int
	atLineStart bool
}

// Option configures a Printer.
type Option func(*Printer)

// WithIndent sets the number of spaces per nesting level.
func WithIndent(n int) Option {
	return func(p *Printer) {
		if n > 0 {
			p.indentSize = n
		}
	}
}

func newPrinter(opts ...Option) *Printer {
	p := &Printer{
		output:      &bytes.Buffer{},
		indentSize:  DefaultIndent,
		atLineStart: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// String returns the formatted output.
func (p *Printer) String() string {
	out := strings.TrimRight(p.output.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*p.indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.write(" ")
}

// formatList prints count items with sep between them. When multiline is
// set each item goes on its own line.
func (p *Printer) formatList(count int, format func(i int), sep string, multiline bool) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
			if multiline {
				p.writeln()
			} else {
				p.space()
			}
		}
	}
}
