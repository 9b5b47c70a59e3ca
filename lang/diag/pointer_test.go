package diag

import (
	"strings"
	"testing"
)

func TestLocate(t *testing.T) {
	src := "a = 1\nout a $\n"

	tests := []struct {
		name   string
		offset int
		line   int
		column int
	}{
		{"start", 0, 1, 1},
		{"same line", 4, 1, 5},
		{"after newline", 6, 2, 1},
		{"second line", 12, 2, 7},
		{"past end", 100, 3, 1},
		{"negative", -5, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := Locate(src, tt.offset)
			if pos.Line != tt.line || pos.Column != tt.column {
				t.Errorf("Locate(%d) = %s, want %d:%d", tt.offset, pos, tt.line, tt.column)
			}
		})
	}
}

func TestPoint_CaretUnderColumn(t *testing.T) {
	src := "a = 1\nout a $"

	got := Point(src, 12)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}

	if lines[0] != "  2 | out a $" {
		t.Errorf("unexpected source line %q", lines[0])
	}

	if col, want := strings.Index(lines[1], "^"), strings.Index(lines[0], "$"); col != want {
		t.Errorf("caret at column %d, want %d", col, want)
	}
}

func TestError_Detail(t *testing.T) {
	src := "out x"
	got := Undefined(4, "x").Detail("t.snow", src)

	for _, want := range []string{
		"  1 | out x",
		"t.snow:1:5",
		"<t.snow> UndefinedError: 'x' is not defined",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Detail() missing %q in:\n%s", want, got)
		}
	}
}
