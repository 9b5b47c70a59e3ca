// Package token defines the lexical tokens of the snow language.
package token

import (
	"fmt"
	"strconv"
)

// Type identifies the lexical class of a [Token].
type Type int

const (
	EOF Type = iota // end of input

	Keyword // keyword
	Ident   // identifier
	Int     // integer
	Float   // float
	String  // string

	Add // +
	Sub // -
	Mul // *
	Div // /

	Lt    // <
	Gt    // >
	LtEq  // <=
	GtEq  // >=
	DbEq  // ==
	NotEq // !=

	Eq     // =
	Walrus // :=

	LParen // (
	RParen // )
	LCurly // {
	RCurly // }
)

var typeName = [...]string{
	EOF:     "EOF",
	Keyword: "KEYWORD",
	Ident:   "ID",
	Int:     "INT",
	Float:   "FLOAT",
	String:  "STRING",
	Add:     "ADD",
	Sub:     "MIN",
	Mul:     "MUL",
	Div:     "DIV",
	Lt:      "LT",
	Gt:      "GT",
	LtEq:    "LTEQ",
	GtEq:    "GTEQ",
	DbEq:    "DBEQ",
	NotEq:   "NOTEQ",
	Eq:      "EQ",
	Walrus:  "WALRUS",
	LParen:  "LPAREN",
	RParen:  "RPAREN",
	LCurly:  "LCURLY",
	RCurly:  "RCURLY",
}

var typeSymbol = [...]string{
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Div:    "/",
	Lt:     "<",
	Gt:     ">",
	LtEq:   "<=",
	GtEq:   ">=",
	DbEq:   "==",
	NotEq:  "!=",
	Eq:     "=",
	Walrus: ":=",
	LParen: "(",
	RParen: ")",
	LCurly: "{",
	RCurly: "}",
}

// String returns the upper-case tag name of t, e.g. "INT" or "ADD".
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeName) {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}

	return typeName[t]
}

// Symbol returns the source spelling of operator and punctuation types, or the
// empty string for every other type.
func (t Type) Symbol() string {
	if t < 0 || int(t) >= len(typeSymbol) {
		return ""
	}

	return typeSymbol[t]
}

// IsComparison reports whether t is one of the six comparison operators.
func (t Type) IsComparison() bool {
	return t >= Lt && t <= NotEq
}

// IsAdditive reports whether t is + or -.
func (t Type) IsAdditive() bool { return t == Add || t == Sub }

// IsMultiplicative reports whether t is * or /.
func (t Type) IsMultiplicative() bool { return t == Mul || t == Div }

// Keywords of the language.
const (
	KwOut    = "out"
	KwIf     = "if"
	KwElse   = "else"
	KwLoop   = "loop"
	KwRepeat = "repeat"
	KwBreak  = "break"
)

var keywords = map[string]struct{}{
	KwOut:    {},
	KwIf:     {},
	KwElse:   {},
	KwLoop:   {},
	KwRepeat: {},
	KwBreak:  {},
}

// IsKeyword reports whether s is a reserved keyword.
func IsKeyword(s string) bool {
	_, ok := keywords[s]

	return ok
}

// Keywords returns the reserved keywords in declaration order.
func Keywords() []string {
	return []string{KwOut, KwIf, KwElse, KwLoop, KwRepeat, KwBreak}
}

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`
}

// Join returns the smallest span covering both s and o.
func (s Span) Join(o Span) Span {
	return Span{Start: min(s.Start, o.Start), End: max(s.End, o.End)}
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return s.End - s.Start }

func (s Span) String() string {
	return strconv.Itoa(s.Start) + ":" + strconv.Itoa(s.End)
}

// Token is a single lexical unit.
//
// Value holds the keyword or identifier text (string), the literal value of
// Int (int64), Float (float64) and String (string) tokens, and nil otherwise.
type Token struct {
	Type  Type
	Value any
	Span  Span
}

// Is reports whether tok has type t and, when text is non-empty, whether its
// payload equals text. It is used to match specific keywords.
func (tok Token) Is(t Type, text ...string) bool {
	if tok.Type != t {
		return false
	}

	for _, s := range text {
		if v, ok := tok.Value.(string); ok && v == s {
			return true
		}
	}

	return len(text) == 0
}

// Text returns the payload of Keyword, Ident and String tokens, or the empty
// string for all other types.
func (tok Token) Text() string {
	s, _ := tok.Value.(string)

	return s
}

// String formats tok as TYPE or TYPE(value), e.g. "INT(1)" or "ADD".
func (tok Token) String() string {
	switch v := tok.Value.(type) {
	case nil:
		return tok.Type.String()

	case string:
		if tok.Type == String {
			return tok.Type.String() + "(" + strconv.Quote(v) + ")"
		}

		return tok.Type.String() + "(" + v + ")"

	case float64:
		return tok.Type.String() + "(" + strconv.FormatFloat(v, 'g', -1, 64) + ")"

	default:
		return fmt.Sprintf("%s(%v)", tok.Type, v)
	}
}
