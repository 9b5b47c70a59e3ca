// Package ast defines the syntax tree produced by the snow parser.
//
// [Node] is a closed set of variants; code outside this package switches over
// the concrete pointer types. Nodes are built once by the parser and are never
// mutated afterward, so a parsed program may be shared between interpreters.
package ast

import (
	"strconv"
	"strings"

	"github.com/ardnew/snow/lang/token"
)

// Node is implemented by every syntax tree variant.
type Node interface {
	// Span returns the source range the node was parsed from.
	Span() token.Span
	// Kind returns the variant name, e.g. "BinaryOperation".
	Kind() string
	String() string

	node()
}

// NumberLiteral is an integer or floating-point literal.
// Value is an int64 or a float64.
type NumberLiteral struct {
	Value any
	Loc   token.Span
}

// StringLiteral is a double-quoted literal.
type StringLiteral struct {
	Value string
	Loc   token.Span
}

// VarAccess reads a variable or builtin.
type VarAccess struct {
	Name string
	Loc  token.Span
}

// VarAssign binds Name to Value and evaluates to Void.
type VarAssign struct {
	Name  string
	Value Node
	Loc   token.Span
}

// WalrusAssign binds Name to Value and evaluates to the bound value.
type WalrusAssign struct {
	Name  string
	Value Node
	Loc   token.Span
}

// BinaryOperation is one of + - * / applied to two operands.
type BinaryOperation struct {
	Left  Node
	Op    token.Token
	Right Node
}

// Comparison is a single pairwise comparison.
type Comparison struct {
	Left  Node
	Op    token.Token
	Right Node
}

// ComparisonChain holds the pairwise comparisons of an expression such as
// a < b < c, which parses to (a < b), (b < c). The chain is true when any
// one of its comparisons is true.
type ComparisonChain struct {
	Comparisons []*Comparison
}

// Out writes the text of Child to the output sink.
type Out struct {
	Child Node
	Loc   token.Span
}

// If runs Children when Cond is truthy, otherwise Else. Else is nil when the
// statement has no else branch.
type If struct {
	Cond     Node
	Children []Node
	Else     []Node
	Loc      token.Span
}

// Loop runs Children until a Break is observed.
type Loop struct {
	Children []Node
	Loc      token.Span
}

// Repeat runs Children Count times.
type Repeat struct {
	Count    Node
	Children []Node
	Loc      token.Span
}

// Break exits the innermost running Loop or Repeat.
type Break struct {
	Loc token.Span
}

func (n *NumberLiteral) Span() token.Span { return n.Loc }
func (n *StringLiteral) Span() token.Span { return n.Loc }
func (n *VarAccess) Span() token.Span     { return n.Loc }
func (n *VarAssign) Span() token.Span     { return n.Loc }
func (n *WalrusAssign) Span() token.Span  { return n.Loc }
func (n *Out) Span() token.Span           { return n.Loc }
func (n *If) Span() token.Span            { return n.Loc }
func (n *Loop) Span() token.Span          { return n.Loc }
func (n *Repeat) Span() token.Span        { return n.Loc }
func (n *Break) Span() token.Span         { return n.Loc }

func (n *BinaryOperation) Span() token.Span { return n.Left.Span().Join(n.Right.Span()) }
func (n *Comparison) Span() token.Span      { return n.Left.Span().Join(n.Right.Span()) }

func (n *ComparisonChain) Span() token.Span {
	if len(n.Comparisons) == 0 {
		return token.Span{}
	}

	first := n.Comparisons[0].Span()
	last := n.Comparisons[len(n.Comparisons)-1].Span()

	return first.Join(last)
}

func (*NumberLiteral) Kind() string   { return "Number" }
func (*StringLiteral) Kind() string   { return "String" }
func (*VarAccess) Kind() string       { return "VarAccess" }
func (*VarAssign) Kind() string       { return "VarAssign" }
func (*WalrusAssign) Kind() string    { return "WalrusAssign" }
func (*BinaryOperation) Kind() string { return "BinaryOperation" }
func (*Comparison) Kind() string      { return "Comparison" }
func (*ComparisonChain) Kind() string { return "ComparisonChain" }
func (*Out) Kind() string             { return "Out" }
func (*If) Kind() string              { return "If" }
func (*Loop) Kind() string            { return "Loop" }
func (*Repeat) Kind() string          { return "Repeat" }
func (*Break) Kind() string           { return "Break" }

func (*NumberLiteral) node()   {}
func (*StringLiteral) node()   {}
func (*VarAccess) node()       {}
func (*VarAssign) node()       {}
func (*WalrusAssign) node()    {}
func (*BinaryOperation) node() {}
func (*Comparison) node()      {}
func (*ComparisonChain) node() {}
func (*Out) node()             {}
func (*If) node()              {}
func (*Loop) node()            {}
func (*Repeat) node()          {}
func (*Break) node()           {}

func (n *NumberLiteral) String() string {
	switch v := n.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return "?"
	}
}

func (n *StringLiteral) String() string { return strconv.Quote(n.Value) }
func (n *VarAccess) String() string     { return n.Name }

func (n *VarAssign) String() string {
	return "(" + n.Name + " = " + n.Value.String() + ")"
}

func (n *WalrusAssign) String() string {
	return "(" + n.Name + " := " + n.Value.String() + ")"
}

func (n *BinaryOperation) String() string {
	return "(" + n.Left.String() + " " + n.Op.Type.Symbol() + " " + n.Right.String() + ")"
}

func (n *Comparison) String() string {
	return "(" + n.Left.String() + " " + n.Op.Type.Symbol() + " " + n.Right.String() + ")"
}

func (n *ComparisonChain) String() string {
	parts := make([]string, len(n.Comparisons))
	for i, c := range n.Comparisons {
		parts[i] = c.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func (n *Out) String() string { return "out " + n.Child.String() }

func (n *If) String() string {
	s := "if " + n.Cond.String() + " " + block(n.Children)
	if n.Else != nil {
		s += " else " + block(n.Else)
	}

	return s
}

func (n *Loop) String() string   { return "loop " + block(n.Children) }
func (n *Repeat) String() string { return "repeat " + n.Count.String() + " " + block(n.Children) }
func (*Break) String() string    { return "break" }

func block(nodes []Node) string {
	if len(nodes) == 0 {
		return "{}"
	}

	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}

	return "{ " + strings.Join(parts, "; ") + " }"
}
