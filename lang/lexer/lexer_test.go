package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/snow/lang/diag"
	"github.com/ardnew/snow/lang/token"
)

func tokenStrings(toks []token.Token) string {
	s := make([]string, len(toks))
	for i, tok := range toks {
		s[i] = tok.String()
	}

	return strings.Join(s, " ")
}

func TestLex_Sequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "addition",
			input: "1+2",
			want:  "INT(1) ADD INT(2) EOF",
		},
		{
			name:  "empty",
			input: "",
			want:  "EOF",
		},
		{
			name:  "whitespace only",
			input: " \t\n ",
			want:  "EOF",
		},
		{
			name:  "keywords and identifiers",
			input: "out if else loop repeat break outer _x1",
			want:  "KEYWORD(out) KEYWORD(if) KEYWORD(else) KEYWORD(loop) KEYWORD(repeat) KEYWORD(break) ID(outer) ID(_x1) EOF",
		},
		{
			name:  "floats",
			input: "2.5 .5 3.",
			want:  "FLOAT(2.5) FLOAT(0.5) FLOAT(3) EOF",
		},
		{
			name:  "comparisons",
			input: "< > <= >= == !=",
			want:  "LT GT LTEQ GTEQ DBEQ NOTEQ EOF",
		},
		{
			name:  "assignments",
			input: "a = 1 b := 2",
			want:  "ID(a) EQ INT(1) ID(b) WALRUS INT(2) EOF",
		},
		{
			name:  "punctuation",
			input: "{ ( ) }",
			want:  "LCURLY LPAREN RPAREN RCURLY EOF",
		},
		{
			name:  "arithmetic",
			input: "1-2*3/4",
			want:  "INT(1) MIN INT(2) MUL INT(3) DIV INT(4) EOF",
		},
		{
			name:  "string with escapes",
			input: `"a\"b\n"`,
			want:  `STRING("a\"b\n") EOF`,
		},
		{
			name:  "comment to end of line",
			input: "out 1 # ignored $\nout 2",
			want:  "KEYWORD(out) INT(1) KEYWORD(out) INT(2) EOF",
		},
		{
			name:  "no spaces",
			input: "a:=b<=c",
			want:  "ID(a) WALRUS ID(b) LTEQ ID(c) EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("lex error: %v", err)
			}

			if got := tokenStrings(toks); got != tt.want {
				t.Errorf("Lex(%q)\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestLex_Spans(t *testing.T) {
	toks, err := Lex("ab <= 12.5")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	want := []token.Span{
		{Start: 0, End: 2},
		{Start: 3, End: 5},
		{Start: 6, End: 10},
		{Start: 10, End: 10},
	}

	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}

	for i, span := range want {
		if toks[i].Span != span {
			t.Errorf("token %d (%s) span = %s, want %s", i, toks[i], toks[i].Span, span)
		}
	}
}

func TestLex_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
	}{
		{"dollar", "out 1 $", 6},
		{"lone colon", "a : 1", 2},
		{"lone bang", "1 ! 2", 2},
		{"unterminated string", `out "abc`, 4},
		{"string across newline", "out \"a\nb\"", 4},
		{"non-ascii symbol", "1 ∑ 2", 2},
		{"integer overflow", "99999999999999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Lex(tt.input)
			if err == nil {
				t.Fatalf("expected error, got tokens %s", tokenStrings(toks))
			}

			if toks != nil {
				t.Errorf("expected no tokens alongside error, got %s", tokenStrings(toks))
			}

			if !errors.Is(err, diag.ErrLex) {
				t.Errorf("expected LexError, got %v", err)
			}

			e, ok := diag.As(err)
			if !ok {
				t.Fatalf("expected *diag.Error, got %T", err)
			}

			if e.Offset != tt.offset {
				t.Errorf("error offset = %d, want %d", e.Offset, tt.offset)
			}
		})
	}
}

func TestLex_UnicodeIdentifier(t *testing.T) {
	toks, err := Lex("größe = 1")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	if toks[0].Type != token.Ident || toks[0].Text() != "größe" {
		t.Errorf("expected identifier größe, got %s", toks[0])
	}

	if toks[1].Span.Start != len("größe ") {
		t.Errorf("expected byte offsets, got %s", toks[1].Span)
	}
}
