package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind returns the snake_case name of a node's variant, e.g. "let_statement".
func Kind(node Node) string {
	switch node.(type) {
	case *Program:
		return "program"
	case *LetStatement:
		return "let_statement"
	case *ConnectStatement:
		return "connect_statement"
	case *WithStatement:
		return "with_statement"
	case *Block:
		return "block"
	case *IfExpression:
		return "if_expression"
	case *BinaryExpression:
		return "binary_expression"
	case *UnaryExpression:
		return "unary_expression"
	case *LogicalNotExpression:
		return "logical_not_expression"
	case *Pipeline:
		return "pipeline"
	case *ArrowExpression:
		return "arrow_expression"
	case *MemberExpression:
		return "member_expression"
	case *FunctionCall:
		return "function_call"
	case *KeywordArgument:
		return "keyword_argument"
	case *LabeledBlock:
		return "labeled_block"
	case *ListLiteral:
		return "list"
	case *RecordLiteral:
		return "record"
	case *Property:
		return "property"
	case *Identifier:
		return "identifier"
	case *NumberLiteral:
		return "number"
	case *StringLiteral:
		return "string"
	case *BooleanLiteral:
		return "boolean"
	case *NullLiteral:
		return "null"
	case *VariableReference:
		return "variable"
	case *FStringLiteral:
		return "fstring"
	case *FStringText:
		return "fstring_text"
	case *Interpolation:
		return "interpolation"
	case *ErrorExpr:
		return "ERROR"
	default:
		return fmt.Sprintf("%T", node)
	}
}

// attr is a named scalar field of a node.
type attr struct {
	key   string
	value any
}

// attributes returns the scalar (non-child) fields of a node in a fixed order.
func attributes(node Node) []attr {
	switch n := node.(type) {
	case *Identifier:
		return []attr{{"name", n.Name}}
	case *NumberLiteral:
		return []attr{{"value", n.Value}}
	case *StringLiteral:
		return []attr{{"value", n.Value}, {"quote", string(n.Quote)}}
	case *BooleanLiteral:
		return []attr{{"value", n.Value}}
	case *VariableReference:
		return []attr{{"name", n.Name}}
	case *FStringText:
		return []attr{{"value", n.Value}}
	case *BinaryExpression:
		return []attr{{"operator", n.Op.String()}}
	case *UnaryExpression:
		return []attr{{"operator", n.Op.String()}}
	case *LabeledBlock:
		return []attr{{"label", n.Label}}
	}
	return nil
}

// Dump renders a node as a deterministic S-expression, one node per line,
// indented by depth. Spans are omitted.
func Dump(node Node) string {
	var sb strings.Builder
	dump(&sb, node, 0)
	return sb.String()
}

func dump(sb *strings.Builder, node Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteByte('(')
	sb.WriteString(Kind(node))
	for _, a := range attributes(node) {
		if a.key == "quote" {
			continue
		}
		sb.WriteByte(' ')
		switch v := a.value.(type) {
		case string:
			sb.WriteString(strconv.Quote(v))
		default:
			fmt.Fprint(sb, v)
		}
	}
	children := Children(node)
	if len(children) == 0 {
		sb.WriteString(")\n")
		return
	}
	sb.WriteByte('\n')
	for _, c := range children {
		dump(sb, c, depth+1)
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(")\n")
}
