package format

import (
	"testing"

	"github.com/leapstack-labs/cxql/pkg/ast"
	"github.com/leapstack-labs/cxql/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Output(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "spacing normalized",
			input:    "let   x=1+2*3",
			expected: "let x = 1 + 2 * 3\n",
		},
		{
			name:     "needed parentheses kept",
			input:    "(1+2)*3",
			expected: "(1 + 2) * 3\n",
		},
		{
			name:     "redundant parentheses dropped",
			input:    "((a)) + (b * c)",
			expected: "a + b * c\n",
		},
		{
			name:     "curried arrow",
			input:    "a=>b=>a+b",
			expected: "a => b => a + b\n",
		},
		{
			name:     "nested pipeline as first stage",
			input:    "(a|b)|c",
			expected: "(a | b) | c\n",
		},
		{
			name:     "nested pipeline as later stage",
			input:    "a|(b|c)",
			expected: "a | (b | c)\n",
		},
		{
			name:     "call arguments",
			input:    "f( x,k=1 , where{a:1} ,params : T{b:2},)",
			expected: "f(x, k = 1, where {a: 1}, params: T {b: 2})\n",
		},
		{
			name:     "legacy connect printed canonically",
			input:    `connect(pg("u"), as = db)`,
			expected: "connect pg(\"u\") as db\n",
		},
		{
			name:     "block with lets is multiline",
			input:    "with db { let a = 1\n a }",
			expected: "with db {\n  let a = 1\n  a\n}\n",
		},
		{
			name:     "result only blocks inline",
			input:    "if {x} {1} else {}",
			expected: "if { x } { 1 } else {}\n",
		},
		{
			name:     "fstring",
			input:    `$"hi {name | upper()}!"`,
			expected: "$\"hi {name | upper()}!\"\n",
		},
		{
			name:     "not over and",
			input:    "not(a and b)",
			expected: "not (a and b)\n",
		},
		{
			name:     "unary over sum",
			input:    "-(a+b)",
			expected: "-(a + b)\n",
		},
		{
			name:     "member of unary",
			input:    "(-a).b",
			expected: "(-a).b\n",
		},
		{
			name:     "large record is multiline",
			input:    "{a:1,b:2,c:3,d:4,e:5}",
			expected: "{\n  a: 1,\n  b: 2,\n  c: 3,\n  d: 4,\n  e: 5\n}\n",
		},
		{
			name:     "string quotes preserved",
			input:    `['a', "b"]`,
			expected: "['a', \"b\"]\n",
		},
		{
			name:     "comments dropped",
			input:    "# setup\nlet a = 1 # one\n\n\nlet b = 2",
			expected: "let a = 1\nlet b = 2\n",
		},
		{
			name:     "empty program",
			input:    "  # nothing\n",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Program(prog))
		})
	}
}

func TestFormat_Indent(t *testing.T) {
	prog, err := parser.Parse("with db { let a = {b: 1}\n}")
	require.NoError(t, err)
	assert.Equal(t, "with db {\n    let a = {b: 1}\n}\n", Program(prog, WithIndent(4)))
}

func TestFormat_Expr(t *testing.T) {
	e, err := parser.ParseExpression("x  =>  x.y")
	require.NoError(t, err)
	assert.Equal(t, "x => x.y", Expr(e))
}

func TestFormat_SourceRejectsErrors(t *testing.T) {
	out, err := Source("let a = ")
	require.Error(t, err)
	assert.Empty(t, out)

	out, err = Source("let a=1")
	require.NoError(t, err)
	assert.Equal(t, "let a = 1\n", out)
}

var roundTripCorpus = []string{
	"let x = 1",
	"2 + 3 * 4",
	"8 - 3 - 2",
	"a - (b - c)",
	"a / (b * c) % d",
	"1.5e-3 % 2 / 3",
	"a => b => a + b",
	"f(x => x * 2)",
	"users | filter(u => u.age >= 18 and not u.banned) | map(u => u.name)",
	"(a | b) | c",
	"a | (b | c)",
	"a | b + c | d",
	"a + (b | c)",
	"(a + b) * c",
	"-(-a)",
	"- -a",
	"not not a",
	"(not a) == b",
	"a or b and c",
	"(a or b) and c",
	"a == b != c",
	"a < b <= c",
	"(a == b) < c",
	"f(a)(b).c.d(e)",
	"(x => x)(1)",
	"$v.field",
	"x.if",
	`{a: 1, "b": [1, 2, {}], c: {d: null}}`,
	`{if: 1, let: 2, "with space": 3}`,
	"{}",
	"[]",
	"[{}, [], true, false, null]",
	"let v = {\n  let a = 1\n  let b = a * 2\n  a + b\n}",
	"let w = { x }",
	"if { a > 1 } { 'big' } else { 'small' }",
	"if {} {}",
	"if { a } { b }(c)",
	"if {x} {1} + 2",
	"with db {\n  let r = query(users, where { active: true })\n  r\n}",
	"with db {}",
	"connect postgres($url) as pg",
	"connect(postgres($url), as = pg)",
	"connect (a | b) | c as d",
	`$"Hello {user.name}, you have {count(items | filter(i => i.new))} new {$"item{s}"}"`,
	`$"{ {a: 1}.a }"`,
	`$""`,
	"query(t, params: P {limit: 10, offset: 0}, with {}, set {x: 1})",
	"f(a, k = b => b, where {z: 1},)",
	"let big = {name: 'n', tags: ['a', 'b'], nested: {x: 1, y: [2, 3]}, n: 4}",
	"let a = 1\nlet b = a | f\nconnect c(a, b) as d\nwith d { b }\n",
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, src := range roundTripCorpus {
		t.Run(src, func(t *testing.T) {
			first, err := parser.Parse(src)
			require.NoError(t, err)

			printed := Program(first)
			second, err := parser.Parse(printed)
			require.NoError(t, err, "printed:\n%s", printed)

			assert.True(t, ast.Equal(first, second), "printed:\n%s\nfirst:\n%s\nsecond:\n%s",
				printed, ast.Dump(first), ast.Dump(second))
			assert.Equal(t, printed, Program(second), "formatting is not idempotent")
		})
	}
}
