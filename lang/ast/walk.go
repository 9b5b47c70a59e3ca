package ast

import "iter"

// Children returns the direct sub-nodes of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *VarAssign:
		return []Node{n.Value}

	case *WalrusAssign:
		return []Node{n.Value}

	case *BinaryOperation:
		return []Node{n.Left, n.Right}

	case *Comparison:
		return []Node{n.Left, n.Right}

	case *ComparisonChain:
		out := make([]Node, len(n.Comparisons))
		for i, c := range n.Comparisons {
			out[i] = c
		}

		return out

	case *Out:
		return []Node{n.Child}

	case *If:
		out := make([]Node, 0, 1+len(n.Children)+len(n.Else))
		out = append(out, n.Cond)
		out = append(out, n.Children...)

		return append(out, n.Else...)

	case *Loop:
		return n.Children

	case *Repeat:
		return append([]Node{n.Count}, n.Children...)

	default:
		return nil
	}
}

// Walk returns a depth-first, pre-order iterator over nodes and all of their
// descendants.
func Walk(nodes ...Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool

		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}

			for _, c := range Children(n) {
				if !visit(c) {
					return false
				}
			}

			return true
		}

		for _, n := range nodes {
			if !visit(n) {
				return
			}
		}
	}
}

// Assigned returns the distinct names bound by VarAssign and WalrusAssign
// nodes anywhere in nodes, in first-seen order.
func Assigned(nodes ...Node) []string {
	seen := make(map[string]struct{})

	var names []string

	for n := range Walk(nodes...) {
		var name string

		switch n := n.(type) {
		case *VarAssign:
			name = n.Name
		case *WalrusAssign:
			name = n.Name
		default:
			continue
		}

		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return names
}
