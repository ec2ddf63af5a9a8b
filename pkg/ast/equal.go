package ast

import "reflect"

// Equal reports whether a and b are structurally equal. Source spans are ignored.
func Equal(a, b Node) bool {
	aNil, bNil := isNil(a), isNil(b)
	if aNil || bNil {
		return aNil == bNil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	aa, ba := attributes(a), attributes(b)
	if len(aa) != len(ba) {
		return false
	}
	for i := range aa {
		if aa[i] != ba[i] {
			return false
		}
	}

	ac, bc := slots(a), slots(b)
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

// slots returns the children of node with absent optional fields kept as
// nil entries, so a missing field only matches a missing field in the same
// position.
func slots(node Node) []Node {
	switch n := node.(type) {
	case *LetStatement:
		return []Node{n.Name, n.Value}
	case *ConnectStatement:
		return []Node{n.Source, n.Alias}
	case *WithStatement:
		return []Node{n.Alias, n.Body}
	case *Block:
		out := make([]Node, 0, len(n.Lets)+1)
		for _, l := range n.Lets {
			out = append(out, l)
		}
		return append(out, n.Result)
	case *IfExpression:
		return []Node{n.Condition, n.Consequent, n.Alternative}
	case *ArrowExpression:
		return []Node{n.Param, n.Body}
	case *MemberExpression:
		return []Node{n.Object, n.Property}
	case *KeywordArgument:
		return []Node{n.Name, n.Value}
	case *LabeledBlock:
		return []Node{n.TypeTag, n.Body}
	}
	return Children(node)
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
