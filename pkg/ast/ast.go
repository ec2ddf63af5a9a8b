// Package ast declares the syntax tree produced by the CXQL parser.
//
// Every node embeds NodeInfo and records the contiguous source span it was
// parsed from. A tree is built once per parse call; nodes own their children
// and nothing in this package mutates a tree after construction.
package ast

import "github.com/leapstack-labs/cxql/pkg/token"

// Node is implemented by every syntax tree node.
type Node interface {
	GetSpan() token.Span
}

// Statement is a top-level program item. Every expression is also a statement.
type Statement interface {
	Node
	stmtNode()
}

// Expr represents an expression. Every expression is also a statement and
// a positional call argument.
type Expr interface {
	Statement
	exprNode()
	argNode()
}

// Argument is an element of a call's argument list: a positional expression,
// a KeywordArgument or a LabeledBlock.
type Argument interface {
	Node
	argNode()
}

// FStringPart is a segment of an f-string: FStringText or Interpolation.
type FStringPart interface {
	Node
	fstringPart()
}

// NodeInfo provides common fields for all AST nodes.
type NodeInfo struct {
	Span token.Span
}

// GetSpan returns the node's source span.
func (n *NodeInfo) GetSpan() token.Span {
	return n.Span
}

// ---------- Program and Statements ----------

// Program is the root of a parsed source file.
type Program struct {
	NodeInfo
	Statements []Statement
}

// LetStatement binds a name: let name = value.
type LetStatement struct {
	NodeInfo
	Name  *Identifier
	Value Expr
}

// ConnectStatement opens a named connection: connect source as alias.
type ConnectStatement struct {
	NodeInfo
	Source Expr
	Alias  *Identifier
}

// WithStatement scopes a block under an alias: with alias { ... }.
type WithStatement struct {
	NodeInfo
	Alias *Identifier
	Body  *Block
}

func (*LetStatement) stmtNode()     {}
func (*ConnectStatement) stmtNode() {}
func (*WithStatement) stmtNode()    {}

// ---------- Compound Expressions ----------

// Block is a brace-delimited sequence of let statements with an optional
// trailing result expression.
type Block struct {
	NodeInfo
	Lets   []*LetStatement
	Result Expr // nil when the block has no trailing expression
}

// IfExpression is if cond { } else { }. All three parts are blocks.
type IfExpression struct {
	NodeInfo
	Condition   *Block
	Consequent  *Block
	Alternative *Block // nil without an else branch
}

// BinaryExpression is an infix arithmetic, comparison or logical operation.
type BinaryExpression struct {
	NodeInfo
	Left  Expr
	Op    token.TokenType
	Right Expr
}

// UnaryExpression is a prefix arithmetic operation (unary minus).
type UnaryExpression struct {
	NodeInfo
	Op      token.TokenType
	Operand Expr
}

// LogicalNotExpression is not operand.
type LogicalNotExpression struct {
	NodeInfo
	Operand Expr
}

// Pipeline is a left-to-right chain of stages joined by |.
type Pipeline struct {
	NodeInfo
	Stages []Expr
}

// ArrowExpression is a single-parameter lambda: param => body.
type ArrowExpression struct {
	NodeInfo
	Param *Identifier
	Body  Expr
}

// MemberExpression is object.property.
type MemberExpression struct {
	NodeInfo
	Object   Expr
	Property *Identifier
}

// FunctionCall is callee(args...).
type FunctionCall struct {
	NodeInfo
	Callee Expr
	Args   []Argument
}

// KeywordArgument is a name = value call argument.
type KeywordArgument struct {
	NodeInfo
	Name  *Identifier
	Value Expr
}

// LabeledBlock is a call argument of the form label { ... } or
// label: Type { ... }. The body is always a record literal.
type LabeledBlock struct {
	NodeInfo
	Label   string
	TypeTag *Identifier // nil when untyped
	Body    *RecordLiteral
}

func (*KeywordArgument) argNode() {}
func (*LabeledBlock) argNode()    {}

// ListLiteral is [elements...].
type ListLiteral struct {
	NodeInfo
	Elements []Expr
}

// RecordLiteral is {key: value, ...}. Duplicate keys are kept in source order.
type RecordLiteral struct {
	NodeInfo
	Properties []*Property
}

// Property is a single key: value entry of a record literal.
// Key is either an *Identifier or a *StringLiteral.
type Property struct {
	NodeInfo
	Key   Expr
	Value Expr
}

// KeyName returns the property key as plain text.
func (p *Property) KeyName() string {
	switch k := p.Key.(type) {
	case *Identifier:
		return k.Name
	case *StringLiteral:
		return k.Value
	}
	return ""
}

// ---------- Literals and Names ----------

// Identifier is a bare name.
type Identifier struct {
	NodeInfo
	Name string
}

// NumberLiteral keeps the number lexeme as written.
type NumberLiteral struct {
	NodeInfo
	Value string
}

// StringLiteral holds the text between the quotes with escapes left verbatim.
type StringLiteral struct {
	NodeInfo
	Value string
	Quote byte // '"' or '\''
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	NodeInfo
	Value bool
}

// NullLiteral is null.
type NullLiteral struct {
	NodeInfo
}

// VariableReference is $name. Name excludes the dollar sign.
type VariableReference struct {
	NodeInfo
	Name string
}

// FStringLiteral is $"text {expr} text".
type FStringLiteral struct {
	NodeInfo
	Parts []FStringPart
}

// FStringText is a literal run inside an f-string.
type FStringText struct {
	NodeInfo
	Value string
}

// Interpolation is a {expr} segment inside an f-string.
type Interpolation struct {
	NodeInfo
	Expr Expr
}

func (*FStringText) fstringPart()   {}
func (*Interpolation) fstringPart() {}

// ErrorExpr is a placeholder inserted where the parser failed to match a construct.
type ErrorExpr struct {
	NodeInfo
}

// ---------- Marker methods ----------

func (*Block) exprNode()                {}
func (*IfExpression) exprNode()         {}
func (*BinaryExpression) exprNode()     {}
func (*UnaryExpression) exprNode()      {}
func (*LogicalNotExpression) exprNode() {}
func (*Pipeline) exprNode()             {}
func (*ArrowExpression) exprNode()      {}
func (*MemberExpression) exprNode()     {}
func (*FunctionCall) exprNode()         {}
func (*ListLiteral) exprNode()          {}
func (*RecordLiteral) exprNode()        {}
func (*Identifier) exprNode()           {}
func (*NumberLiteral) exprNode()        {}
func (*StringLiteral) exprNode()        {}
func (*BooleanLiteral) exprNode()       {}
func (*NullLiteral) exprNode()          {}
func (*VariableReference) exprNode()    {}
func (*FStringLiteral) exprNode()       {}
func (*ErrorExpr) exprNode()            {}

func (*Block) stmtNode()                {}
func (*IfExpression) stmtNode()         {}
func (*BinaryExpression) stmtNode()     {}
func (*UnaryExpression) stmtNode()      {}
func (*LogicalNotExpression) stmtNode() {}
func (*Pipeline) stmtNode()             {}
func (*ArrowExpression) stmtNode()      {}
func (*MemberExpression) stmtNode()     {}
func (*FunctionCall) stmtNode()         {}
func (*ListLiteral) stmtNode()          {}
func (*RecordLiteral) stmtNode()        {}
func (*Identifier) stmtNode()           {}
func (*NumberLiteral) stmtNode()        {}
func (*StringLiteral) stmtNode()        {}
func (*BooleanLiteral) stmtNode()       {}
func (*NullLiteral) stmtNode()          {}
func (*VariableReference) stmtNode()    {}
func (*FStringLiteral) stmtNode()       {}
func (*ErrorExpr) stmtNode()            {}

func (*Block) argNode()                {}
func (*IfExpression) argNode()         {}
func (*BinaryExpression) argNode()     {}
func (*UnaryExpression) argNode()      {}
func (*LogicalNotExpression) argNode() {}
func (*Pipeline) argNode()             {}
func (*ArrowExpression) argNode()      {}
func (*MemberExpression) argNode()     {}
func (*FunctionCall) argNode()         {}
func (*ListLiteral) argNode()          {}
func (*RecordLiteral) argNode()        {}
func (*Identifier) argNode()           {}
func (*NumberLiteral) argNode()        {}
func (*StringLiteral) argNode()        {}
func (*BooleanLiteral) argNode()       {}
func (*NullLiteral) argNode()          {}
func (*VariableReference) argNode()    {}
func (*FStringLiteral) argNode()       {}
func (*ErrorExpr) argNode()            {}
