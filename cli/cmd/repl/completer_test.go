package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/snow/lang/interp"
	"github.com/ardnew/snow/lang/token"
	"github.com/ardnew/snow/lang/value"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "(fo", 3, "fo", 1, 3},
		{"after_walrus", "x := fo", 7, "fo", 5, 7},
		{"after_comparison", "a >= fo", 7, "fo", 5, 7},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscore", "out _tmp1", 9, "_tmp1", 4, 9},
		{"inside_block", "loop {br", 8, "br", 6, 8},
		{"cursor_clamped", "foo", 10, "foo", 0, 3},
		{"unicode", "x = héllo", 10, "héllo", 4, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestInLiteral(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
		want   bool
	}{
		{"plain", "out x", 4, false},
		{"open_string", `out "ab`, 7, true},
		{"closed_string", `out "ab" + x`, 11, false},
		{"escaped_quote", `out "a\"b`, 9, true},
		{"escaped_backslash", `out "a\\" + x`, 12, false},
		{"comment", "out 1 # note", 12, true},
		{"hash_in_string", `out "#" + x`, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inLiteral(tt.input, tt.offset); got != tt.want {
				t.Errorf("inLiteral(%q, %d) = %v, want %v", tt.input, tt.offset, got, tt.want)
			}
		})
	}
}

func TestEvalCandidates(t *testing.T) {
	env := interp.NewEnvironment()
	env.Set("total", value.Int(1, token.Span{}))
	env.Set("out_count", value.Int(2, token.Span{}))

	got := evalCandidates(env)

	if !slices.IsSorted(got) {
		t.Errorf("candidates not sorted: %v", got)
	}

	if len(slices.Compact(slices.Clone(got))) != len(got) {
		t.Errorf("candidates contain duplicates: %v", got)
	}

	for _, want := range []string{"out", "repeat", "True", "Void", "total", "out_count"} {
		if !slices.Contains(got, want) {
			t.Errorf("candidates %v missing %q", got, want)
		}
	}
}

func TestComputeMatches(t *testing.T) {
	env := interp.NewEnvironment()
	env.Set("counter", value.Int(0, token.Span{}))

	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  string // expected best match, "" for none
	}{
		{"keyword", modeEval, "rep", "repeat"},
		{"variable", modeEval, "out coun", "counter"},
		{"builtin", modeEval, "x = Tru", "True"},
		{"number", modeEval, "1", ""},
		{"string", modeEval, `out "cou`, ""},
		{"command", modeCtrl, "res", "reset"},
		{"empty", modeEval, "out ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, env)
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.SetCursor(len(tt.input))

			matches, _, _, _ := m.computeMatches()

			if tt.want == "" {
				if len(matches) != 0 {
					t.Errorf("got %d matches, want none", len(matches))
				}

				return
			}

			if len(matches) == 0 || matches[0].Str != tt.want {
				t.Errorf("best match for %q = %v, want %q", tt.input, matches, tt.want)
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	env := interp.NewEnvironment()

	m := newTestModel(t, env)
	m.input.SetValue("e")
	m.input.SetCursor(1)

	matches, _, _, _ := m.computeMatches()
	if len(matches) < 2 {
		t.Fatalf("want several matches, got %v", matches)
	}

	if got := renderCandidateBar(matches, -1, false, 0); got != "" {
		t.Errorf("zero width rendered %q", got)
	}

	full := renderCandidateBar(matches, 0, true, 200)
	short := renderCandidateBar(matches, 0, true, len(matches[0].Str)+1)

	if len(short) >= len(full) {
		t.Errorf("narrow bar %q not shorter than %q", short, full)
	}
}
