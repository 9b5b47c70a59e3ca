package ast

import "github.com/ardnew/snow/lang/token"

// ToMap converts n into nested maps and slices suitable for JSON or YAML
// encoding. Every map carries the node "kind" and its "span".
func ToMap(n Node) map[string]any {
	m := map[string]any{
		"kind": n.Kind(),
		"span": spanMap(n.Span()),
	}

	switch n := n.(type) {
	case *NumberLiteral:
		m["value"] = n.Value

	case *StringLiteral:
		m["value"] = n.Value

	case *VarAccess:
		m["name"] = n.Name

	case *VarAssign:
		m["name"] = n.Name
		m["value"] = ToMap(n.Value)

	case *WalrusAssign:
		m["name"] = n.Name
		m["value"] = ToMap(n.Value)

	case *BinaryOperation:
		m["op"] = n.Op.Type.Symbol()
		m["left"] = ToMap(n.Left)
		m["right"] = ToMap(n.Right)

	case *Comparison:
		m["op"] = n.Op.Type.Symbol()
		m["left"] = ToMap(n.Left)
		m["right"] = ToMap(n.Right)

	case *ComparisonChain:
		list := make([]any, len(n.Comparisons))
		for i, c := range n.Comparisons {
			list[i] = ToMap(c)
		}

		m["comparisons"] = list

	case *Out:
		m["child"] = ToMap(n.Child)

	case *If:
		m["cond"] = ToMap(n.Cond)
		m["children"] = ToList(n.Children)

		if n.Else != nil {
			m["else"] = ToList(n.Else)
		}

	case *Loop:
		m["children"] = ToList(n.Children)

	case *Repeat:
		m["count"] = ToMap(n.Count)
		m["children"] = ToList(n.Children)
	}

	return m
}

// ToList converts each node with [ToMap].
func ToList(nodes []Node) []any {
	list := make([]any, len(nodes))
	for i, n := range nodes {
		list[i] = ToMap(n)
	}

	return list
}

func spanMap(s token.Span) map[string]any {
	return map[string]any{"start": s.Start, "end": s.End}
}
