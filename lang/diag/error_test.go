package diag

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestError_Is_MatchesKindSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{"lex", Lex(3, "invalid character '$'"), ErrLex, true},
		{"syntax", Syntax(0, "unexpected token"), ErrSyntax, true},
		{"type", Type(1, "bad"), ErrType, true},
		{"undefined", Undefined(0, "x"), ErrUndefined, true},
		{"override", Override(0, "True"), ErrOverride, true},
		{"zero division", ZeroDivision(2), ErrZeroDivision, true},
		{"kind mismatch", Type(1, "bad"), ErrSyntax, false},
		{"wrapped", fmt.Errorf("run: %w", Undefined(0, "x")), ErrUndefined, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.sentinel); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.sentinel, got, tt.want)
			}
		})
	}
}

func TestError_Error_IncludesKindAndMessage(t *testing.T) {
	err := Undefined(4, "x")

	if got, want := err.Error(), "UndefinedError: 'x' is not defined"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if got, want := err.Summary("main.snow"), "<main.snow> UndefinedError: 'x' is not defined"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestError_Wrap_PreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Lex(0, "read failed").Wrap(cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped error to match cause")
	}

	if !strings.HasSuffix(err.Error(), ": boom") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestError_LogValue_Attributes(t *testing.T) {
	err := Override(7, "True").With(slog.String("phase", "eval"))

	got := map[string]string{}
	for _, a := range err.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"kind":   "OverrideError",
		"offset": "7",
		"name":   "True",
		"phase":  "eval",
	}

	for k, v := range want {
		if got[k] != v {
			t.Errorf("attr %q = %q, want %q", k, got[k], v)
		}
	}
}

func TestKind_Phase(t *testing.T) {
	tests := []struct {
		kind Kind
		want Phase
	}{
		{KindLex, PhaseLex},
		{KindSyntax, PhaseParse},
		{KindType, PhaseEval},
		{KindUndefined, PhaseEval},
		{KindOverride, PhaseEval},
		{KindZeroDivision, PhaseEval},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Phase(); got != tt.want {
				t.Errorf("Phase() = %q, want %q", got, tt.want)
			}
		})
	}
}
