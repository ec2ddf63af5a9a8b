package ast

import "github.com/leapstack-labs/cxql/pkg/token"

// ToMap converts a node into nested maps and slices suitable for JSON or YAML
// encoding. Each map carries "type", "span", the node's scalar fields and,
// when present, "children".
func ToMap(node Node) map[string]any {
	if isNil(node) {
		return nil
	}
	m := map[string]any{
		"type": Kind(node),
		"span": spanMap(node.GetSpan()),
	}
	for _, a := range attributes(node) {
		m[a.key] = a.value
	}
	children := Children(node)
	if len(children) > 0 {
		list := make([]any, 0, len(children))
		for _, c := range children {
			list = append(list, ToMap(c))
		}
		m["children"] = list
	}
	return m
}

func spanMap(s token.Span) map[string]any {
	return map[string]any{
		"start": positionMap(s.Start),
		"end":   positionMap(s.End),
	}
}

func positionMap(p token.Position) map[string]any {
	return map[string]any{
		"line":   p.Line,
		"column": p.Column,
		"offset": p.Offset,
	}
}
