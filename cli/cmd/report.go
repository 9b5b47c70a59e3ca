package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/snow/lang/diag"
	"github.com/ardnew/snow/pkg"
)

// reporter renders script errors. Colors are used only when the writer is a
// terminal.
type reporter struct {
	w       io.Writer
	source  lipgloss.Style
	caret   lipgloss.Style
	where   lipgloss.Style
	summary lipgloss.Style
}

func newReporter(w io.Writer) reporter {
	r := lipgloss.NewRenderer(w)

	return reporter{
		w:       w,
		source:  r.NewStyle(),
		caret:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		where:   r.NewStyle().Faint(true),
		summary: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// report writes err for the script named file. Errors from the language
// phases show the offending source line with a caret under the error offset,
// the file position, and the "<file> Kind: message" summary. Other errors are
// written as a single line.
func (r reporter) report(file, src string, err error) error {
	e, ok := diag.As(err)
	if !ok {
		_, werr := fmt.Fprintln(r.w, r.summary.Render(pkg.Name+": "+err.Error()))

		return werr
	}

	var b strings.Builder

	if e.Offset >= 0 {
		if lines := strings.SplitAfter(diag.Point(src, e.Offset), "\n"); len(lines) >= 2 {
			b.WriteString(r.source.Render(strings.TrimSuffix(lines[0], "\n")))
			b.WriteByte('\n')
			b.WriteString(r.caret.Render(strings.TrimSuffix(lines[1], "\n")))
			b.WriteByte('\n')
		}

		b.WriteString(r.where.Render(file + ":" + diag.Locate(src, e.Offset).String()))
		b.WriteByte('\n')
	}

	b.WriteString(r.summary.Render(e.Summary(file)))
	b.WriteByte('\n')

	_, werr := io.WriteString(r.w, b.String())

	return werr
}
