package diag

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Position is a resolved source location.
type Position struct {
	Offset int // byte offset
	Line   int // 1-based
	Column int // 1-based, in runes
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Locate converts a byte offset into src to a line and column. Offsets past
// the end of src resolve to the position just after the last character.
func Locate(src string, offset int) Position {
	offset = max(0, min(offset, len(src)))

	pos := Position{Offset: offset, Line: 1, Column: 1}

	for _, r := range src[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}

	return pos
}

// Point renders the source line containing offset, prefixed by its line
// number, with a caret under the offending column:
//
//	3 | a = 1 + $
//	            ^
func Point(src string, offset int) string {
	pos := Locate(src, offset)

	lines := strings.Split(src, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	line := lines[pos.Line-1]
	num := strconv.Itoa(pos.Line)

	var b strings.Builder

	b.WriteString("  ")
	b.WriteString(num)
	b.WriteString(" | ")
	b.WriteString(strings.ReplaceAll(line, "\t", " "))
	b.WriteByte('\n')

	// 2 leading spaces + " | " (3 chars)
	b.WriteString(strings.Repeat(" ", len(num)+5))
	b.WriteString(strings.Repeat(" ", caretColumn(line, pos.Column)))
	b.WriteString("^\n")

	return b.String()
}

// caretColumn returns the number of cells preceding column col of line.
func caretColumn(line string, col int) int {
	n := col - 1
	if c := utf8.RuneCountInString(line); n > c {
		n = c
	}

	return max(n, 0)
}
