package ast_test

import (
	"testing"

	"github.com/leapstack-labs/cxql/pkg/ast"
	"github.com/leapstack-labs/cxql/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	return prog
}

func TestInspectVisitsInSourceOrder(t *testing.T) {
	prog := mustParse(t, "let a = f(x, k = 2) | g")

	var kinds []string
	ast.Inspect(prog, func(n ast.Node) bool {
		if n != nil {
			kinds = append(kinds, ast.Kind(n))
		}
		return true
	})

	assert.Equal(t, []string{
		"program",
		"let_statement",
		"identifier", // a
		"pipeline",
		"function_call",
		"identifier", // f
		"identifier", // x
		"keyword_argument",
		"identifier", // k
		"number",
		"identifier", // g
	}, kinds)
}

func TestInspectSkipsChildren(t *testing.T) {
	prog := mustParse(t, "f(g(h(1)))")

	calls := 0
	ast.Inspect(prog, func(n ast.Node) bool {
		if _, ok := n.(*ast.FunctionCall); ok {
			calls++
			return false
		}
		return true
	})
	assert.Equal(t, 1, calls)
}

type countingVisitor struct {
	enter, leave int
}

func (v *countingVisitor) Visit(n ast.Node) ast.Visitor {
	if n == nil {
		v.leave++
		return nil
	}
	v.enter++
	return v
}

func TestWalkPairsEnterAndLeave(t *testing.T) {
	prog := mustParse(t, `if { a } { [1, 2] } else { $"{b}" }`)
	v := &countingVisitor{}
	ast.Walk(v, prog)
	assert.Positive(t, v.enter)
	assert.Equal(t, v.enter, v.leave)
}

func TestNodeAt(t *testing.T) {
	src := "let total = price * qty"
	prog := mustParse(t, src)

	tests := []struct {
		name   string
		offset int
		kind   string
		text   string
	}{
		{"let keyword", 0, "let_statement", src},
		{"binding name", 5, "identifier", "total"},
		{"operator", 18, "binary_expression", "price * qty"},
		{"right operand", 21, "identifier", "qty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := ast.NodeAt(prog, tt.offset)
			require.NotNil(t, n)
			assert.Equal(t, tt.kind, ast.Kind(n))
			span := n.GetSpan()
			assert.Equal(t, tt.text, src[span.Start.Offset:span.End.Offset])
		})
	}

	assert.Nil(t, ast.NodeAt(prog, len(src)+5))
}

func TestPathAt(t *testing.T) {
	prog := mustParse(t, "f(a.b)")
	path := ast.PathAt(prog, 4) // the "b"

	var kinds []string
	for _, n := range path {
		kinds = append(kinds, ast.Kind(n))
	}
	assert.Equal(t, []string{"program", "function_call", "member_expression", "identifier"}, kinds)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"whitespace and comments ignored", "let a = 1 + 2", "let a =\n  1 +   2 # sum", true},
		{"different operator", "1 + 2", "1 - 2", false},
		{"different literal", "'a'", "'b'", false},
		{"quote style differs", `"a"`, `'a'`, false},
		{"different arity", "f(a)", "f(a, b)", false},
		{"different kind", "[a]", "{a: a}", false},
		{"labeled block label", "f(where {})", "f(using {})", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ast.Equal(mustParse(t, tt.a), mustParse(t, tt.b)))
		})
	}

	t.Run("nil handling", func(t *testing.T) {
		var id *ast.Identifier
		assert.True(t, ast.Equal(nil, nil))
		assert.True(t, ast.Equal(id, nil))
		assert.False(t, ast.Equal(&ast.Identifier{Name: "a"}, nil))
	})

	t.Run("missing fields compared by position", func(t *testing.T) {
		cond := &ast.Block{Result: &ast.Identifier{Name: "c"}}
		alt := &ast.Block{Result: &ast.Identifier{Name: "a"}}
		assert.False(t, ast.Equal(
			&ast.IfExpression{Condition: cond, Alternative: alt},
			&ast.IfExpression{Condition: cond, Consequent: alt},
		))

		x := &ast.Identifier{Name: "x"}
		assert.False(t, ast.Equal(
			&ast.ArrowExpression{Body: x},
			&ast.ArrowExpression{Param: x},
		))
		assert.True(t, ast.Equal(
			&ast.ArrowExpression{Body: x},
			&ast.ArrowExpression{Body: &ast.Identifier{Name: "x"}},
		))

		assert.False(t, ast.Equal(
			&ast.ConnectStatement{Source: x},
			&ast.ConnectStatement{Alias: x},
		))
	})
}

func TestDump(t *testing.T) {
	prog := mustParse(t, `let x = not f(1, "s") | true`)

	want := `(program
  (let_statement
    (identifier "x")
    (logical_not_expression
      (pipeline
        (function_call
          (identifier "f")
          (number "1")
          (string "s")
        )
        (boolean true)
      )
    )
  )
)
`
	assert.Equal(t, want, ast.Dump(prog))
}

func TestDumpError(t *testing.T) {
	prog, _ := parser.ParseProgram("let x =")
	assert.Contains(t, ast.Dump(prog), "(ERROR)")
}

func TestToMap(t *testing.T) {
	prog := mustParse(t, "a + 1")
	m := ast.ToMap(prog)

	assert.Equal(t, "program", m["type"])
	children := m["children"].([]any)
	require.Len(t, children, 1)

	bin := children[0].(map[string]any)
	assert.Equal(t, "binary_expression", bin["type"])
	assert.Equal(t, "+", bin["operator"])

	span := bin["span"].(map[string]any)
	start := span["start"].(map[string]any)
	end := span["end"].(map[string]any)
	assert.Equal(t, 0, start["offset"])
	assert.Equal(t, 5, end["offset"])

	operands := bin["children"].([]any)
	require.Len(t, operands, 2)
	assert.Equal(t, "a", operands[0].(map[string]any)["name"])
	assert.Equal(t, "1", operands[1].(map[string]any)["value"])

	assert.Nil(t, ast.ToMap(nil))
}

func TestExpressionsArePositionalArguments(t *testing.T) {
	prog := mustParse(t, "f(x, k = 1, where {a: 1}, y | g)")
	call := prog.Statements[0].(*ast.FunctionCall)
	require.Len(t, call.Args, 4)

	for _, i := range []int{0, 3} {
		e, ok := call.Args[i].(ast.Expr)
		require.True(t, ok, "argument %d is %T", i, call.Args[i])
		var arg ast.Argument = e
		assert.Equal(t, call.Args[i], arg)
	}
	assert.IsType(t, &ast.KeywordArgument{}, call.Args[1])
	assert.IsType(t, &ast.LabeledBlock{}, call.Args[2])
}
