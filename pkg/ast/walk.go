package ast

// Visitor is called by Walk for each node. If the returned visitor w is not
// nil, Walk visits each child of node with w, then calls w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree rooted at node in depth-first, source order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		Walk(v, child)
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree depth-first calling f for each node.
// Children are skipped when f returns false. After the children of a node
// have been visited f is called with nil.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Children returns the direct children of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			add(s)
		}
	case *LetStatement:
		if n.Name != nil {
			add(n.Name)
		}
		add(n.Value)
	case *ConnectStatement:
		add(n.Source)
		if n.Alias != nil {
			add(n.Alias)
		}
	case *WithStatement:
		if n.Alias != nil {
			add(n.Alias)
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *Block:
		for _, l := range n.Lets {
			add(l)
		}
		add(n.Result)
	case *IfExpression:
		for _, b := range []*Block{n.Condition, n.Consequent, n.Alternative} {
			if b != nil {
				add(b)
			}
		}
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *UnaryExpression:
		add(n.Operand)
	case *LogicalNotExpression:
		add(n.Operand)
	case *Pipeline:
		for _, s := range n.Stages {
			add(s)
		}
	case *ArrowExpression:
		if n.Param != nil {
			add(n.Param)
		}
		add(n.Body)
	case *MemberExpression:
		add(n.Object)
		if n.Property != nil {
			add(n.Property)
		}
	case *FunctionCall:
		add(n.Callee)
		for _, a := range n.Args {
			add(a)
		}
	case *KeywordArgument:
		if n.Name != nil {
			add(n.Name)
		}
		add(n.Value)
	case *LabeledBlock:
		if n.TypeTag != nil {
			add(n.TypeTag)
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *ListLiteral:
		for _, e := range n.Elements {
			add(e)
		}
	case *RecordLiteral:
		for _, p := range n.Properties {
			add(p)
		}
	case *Property:
		add(n.Key)
		add(n.Value)
	case *FStringLiteral:
		for _, p := range n.Parts {
			add(p)
		}
	case *Interpolation:
		add(n.Expr)
	}
	return out
}

// PathAt returns the chain of nodes from root down to the innermost node whose
// span contains offset. It returns nil when root does not contain offset.
func PathAt(root Node, offset int) []Node {
	if root == nil || !root.GetSpan().Contains(offset) {
		return nil
	}
	path := []Node{root}
	for {
		var next Node
		for _, child := range Children(path[len(path)-1]) {
			if child.GetSpan().Contains(offset) {
				next = child
				break
			}
		}
		if next == nil {
			return path
		}
		path = append(path, next)
	}
}

// NodeAt returns the innermost node containing offset, or nil.
func NodeAt(root Node, offset int) Node {
	path := PathAt(root, offset)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}
