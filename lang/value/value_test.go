package value

import (
	"math"
	"testing"

	"github.com/ardnew/snow/lang/token"
)

func TestValue_String(t *testing.T) {
	var loc token.Span

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"int", Int(42, loc), "42"},
		{"negative int", Int(-7, loc), "-7"},
		{"integral float", Float(2, loc), "2.0"},
		{"fractional float", Float(3.5, loc), "3.5"},
		{"large float", Float(1e21, loc), "1e+21"},
		{"inf", Float(math.Inf(1), loc), "inf"},
		{"negative inf", Float(math.Inf(-1), loc), "-inf"},
		{"nan", Float(math.NaN(), loc), "nan"},
		{"true", Bool(true, loc), "True"},
		{"false", Bool(false, loc), "False"},
		{"void", NewVoid(loc), "Void"},
		{"string", Str("hi there", loc), "hi there"},
		{"function", Function{Name: "f"}, "function 'f'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	var loc token.Span

	tests := []struct {
		v    Value
		want bool
	}{
		{Int(0, loc), false},
		{Int(3, loc), true},
		{Float(0, loc), false},
		{Float(0.1, loc), true},
		{Bool(true, loc), true},
		{Bool(false, loc), false},
		{NewVoid(loc), false},
		{Str("", loc), false},
		{Str("x", loc), true},
		{Function{Name: "f"}, true},
	}

	for _, tt := range tests {
		if got := tt.v.Truthy(); got != tt.want {
			t.Errorf("%s(%s).Truthy() = %v, want %v", tt.v.TypeName(), tt.v, got, tt.want)
		}
	}
}

func TestValue_TypeName(t *testing.T) {
	var loc token.Span

	tests := map[string]Value{
		"int":   Int(1, loc),
		"float": Float(1, loc),
		"bool":  Bool(true, loc),
		"void":  NewVoid(loc),
		"str":   Str("", loc),
		"func":  Function{},
	}

	for want, v := range tests {
		if got := v.TypeName(); got != want {
			t.Errorf("TypeName() = %q, want %q", got, want)
		}
	}
}

func TestAsNumber(t *testing.T) {
	var loc token.Span

	n, ok := AsNumber(Bool(true, loc))
	if i, isInt := n.Int64(); !ok || !isInt || i != 1 {
		t.Errorf("AsNumber(True) = %v, %v", n, ok)
	}

	n, ok = AsNumber(Bool(false, loc))
	if i, isInt := n.Int64(); !ok || !isInt || i != 0 {
		t.Errorf("AsNumber(False) = %v, %v", n, ok)
	}

	if _, ok := AsNumber(Str("1", loc)); ok {
		t.Errorf("AsNumber accepted a string")
	}

	if Operable(NewVoid(loc)) || !Operable(Float(1, loc)) {
		t.Errorf("Operable misclassified void or float")
	}
}

func TestWithSpan(t *testing.T) {
	loc := token.Span{Start: 3, End: 5}

	for _, v := range []Value{
		Int(1, token.Span{}),
		Bool(true, token.Span{}),
		NewVoid(token.Span{}),
		Str("a", token.Span{}),
		Function{Name: "f"},
	} {
		got := WithSpan(v, loc)
		if got.Span() != loc {
			t.Errorf("WithSpan(%s).Span() = %v, want %v", v.TypeName(), got.Span(), loc)
		}

		if got.String() != v.String() {
			t.Errorf("WithSpan changed %s text to %q", v, got)
		}
	}
}
