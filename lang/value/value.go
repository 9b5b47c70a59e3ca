// Package value defines the runtime values of the snow interpreter.
//
// [Value] is a closed union of [Number], [Boolean], [Void], [String] and
// [Function]. Values are immutable and each carries the span of the
// expression that produced it.
package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/ardnew/snow/lang/token"
)

// Type tags the variant of a [Value].
type Type int

const (
	TypeNumber Type = iota
	TypeBoolean
	TypeVoid
	TypeString
	TypeFunction
)

func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "Number"
	case TypeBoolean:
		return "Boolean"
	case TypeVoid:
		return "Void"
	case TypeString:
		return "String"
	case TypeFunction:
		return "Function"
	default:
		return "Unknown"
	}
}

// Value is implemented by every runtime value variant.
type Value interface {
	Type() Type
	// TypeName is the name reported in error messages: int, float, bool,
	// void, str or func.
	TypeName() string
	Span() token.Span
	// String is the text written by an out statement.
	String() string
	// Truthy reports how the value behaves as an if condition.
	Truthy() bool

	value()
}

// Number is an integer or a floating-point number.
type Number struct {
	i     int64
	f     float64
	float bool
	loc   token.Span
}

// Int returns an integer Number.
func Int(v int64, loc token.Span) Number { return Number{i: v, loc: loc} }

// Float returns a floating-point Number.
func Float(v float64, loc token.Span) Number { return Number{f: v, float: true, loc: loc} }

// IsInt reports whether n has integer representation.
func (n Number) IsInt() bool { return !n.float }

// Int64 returns the integer value of n and whether n is an integer.
func (n Number) Int64() (int64, bool) { return n.i, !n.float }

// Float64 returns n converted to float64.
func (n Number) Float64() float64 {
	if n.float {
		return n.f
	}

	return float64(n.i)
}

func (Number) Type() Type { return TypeNumber }

func (n Number) TypeName() string {
	if n.float {
		return "float"
	}

	return "int"
}

func (n Number) Span() token.Span { return n.loc }
func (n Number) Truthy() bool     { return n.Float64() != 0 }

func (n Number) String() string {
	if !n.float {
		return strconv.FormatInt(n.i, 10)
	}

	return formatFloat(n.f)
}

// formatFloat writes f in its shortest form, keeping a ".0" suffix on
// integral values so that floats stay distinguishable from ints.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}

// Boolean is True or False.
type Boolean struct {
	V   bool
	Loc token.Span
}

// Bool returns a Boolean.
func Bool(v bool, loc token.Span) Boolean { return Boolean{V: v, Loc: loc} }

func (Boolean) Type() Type         { return TypeBoolean }
func (Boolean) TypeName() string   { return "bool" }
func (b Boolean) Span() token.Span { return b.Loc }
func (b Boolean) Truthy() bool     { return b.V }

func (b Boolean) String() string {
	if b.V {
		return "True"
	}

	return "False"
}

// Void is the value of statements.
type Void struct {
	Loc token.Span
}

// NewVoid returns Void at loc.
func NewVoid(loc token.Span) Void { return Void{Loc: loc} }

func (Void) Type() Type         { return TypeVoid }
func (Void) TypeName() string   { return "void" }
func (v Void) Span() token.Span { return v.Loc }
func (Void) Truthy() bool       { return false }
func (Void) String() string     { return "Void" }

// String is a text value.
type String struct {
	V   string
	Loc token.Span
}

// Str returns a String.
func Str(v string, loc token.Span) String { return String{V: v, Loc: loc} }

func (String) Type() Type         { return TypeString }
func (String) TypeName() string   { return "str" }
func (s String) Span() token.Span { return s.Loc }
func (s String) Truthy() bool     { return s.V != "" }
func (s String) String() string   { return s.V }

// Function is a named function value. Functions can be bound and printed
// but the interpreter never calls them.
type Function struct {
	Name   string
	Params []string
	Loc    token.Span
}

func (Function) Type() Type         { return TypeFunction }
func (Function) TypeName() string   { return "func" }
func (f Function) Span() token.Span { return f.Loc }
func (Function) Truthy() bool       { return true }
func (f Function) String() string   { return "function '" + f.Name + "'" }

func (Number) value()   {}
func (Boolean) value()  {}
func (Void) value()     {}
func (String) value()   {}
func (Function) value() {}

// WithSpan returns a copy of v that carries loc instead of its own span.
func WithSpan(v Value, loc token.Span) Value {
	switch v := v.(type) {
	case Number:
		v.loc = loc

		return v
	case Boolean:
		v.Loc = loc

		return v
	case Void:
		v.Loc = loc

		return v
	case String:
		v.Loc = loc

		return v
	case Function:
		v.Loc = loc

		return v
	default:
		return v
	}
}

// Operable reports whether v may be used as an arithmetic operand: Numbers,
// and Booleans as 0 or 1.
func Operable(v Value) bool {
	switch v.(type) {
	case Number, Boolean:
		return true
	default:
		return false
	}
}

// AsNumber converts an operable value to a Number; Booleans become the
// integers 0 and 1.
func AsNumber(v Value) (Number, bool) {
	switch v := v.(type) {
	case Number:
		return v, true
	case Boolean:
		if v.V {
			return Int(1, v.Loc), true
		}

		return Int(0, v.Loc), true
	default:
		return Number{}, false
	}
}
