package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of a pretty handler, bound to the renderer of its
// output so that colors are dropped when the output is not a terminal.
type palette struct {
	key, str, num, time, null lipgloss.Style
	yes, no                   lipgloss.Style
	trace, debug, info, warn  lipgloss.Style
	err                       lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		time:  fg("4"),
		null:  fg("8"),
		yes:   fg("2"),
		no:    fg("1"),
		trace: fg("5"),
		debug: fg("4"),
		info:  fg("2").Bold(true),
		warn:  fg("3").Bold(true),
		err:   fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler writes records either as a single styled line of key=value
// pairs or as indented JSON with styled keys.
type prettyHandler struct {
	opts   slog.HandlerOptions
	format Format
	style  palette
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyHandler(w io.Writer, format Format, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		format: format,
		style:  newPalette(w),
		mu:     &sync.Mutex{},
		w:      w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(c.attrs[:len(c.attrs):len(c.attrs)], nest(h.groups, attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(c.groups[:len(c.groups):len(c.groups)], name)

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	head := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		head = append(head, slog.Time(slog.TimeKey, r.Time))
	}

	head = append(head, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			head = append(head, slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	head = append(head, slog.String(slog.MessageKey, r.Message))

	body := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		body = append(body, a)

		return true
	})

	attrs := make([]slog.Attr, 0, len(head)+len(h.attrs)+len(body))
	attrs = append(attrs, h.replace(nil, head)...)
	attrs = append(attrs, h.attrs...)
	attrs = append(attrs, nest(h.groups, body)...)

	var buf bytes.Buffer

	if h.format == FormatJSON {
		h.writeObject(&buf, attrs, 1)
	} else {
		h.writeLine(&buf, "", attrs)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// replace applies the configured ReplaceAttr to top-level attrs and drops
// the ones it empties.
func (h *prettyHandler) replace(groups []string, attrs []slog.Attr) []slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return attrs
	}

	out := attrs[:0]

	for _, a := range attrs {
		// Keep the raw level so it can be styled by severity.
		if a.Key == slog.LevelKey {
			out = append(out, a)

			continue
		}

		if a = h.opts.ReplaceAttr(groups, a); !a.Equal(slog.Attr{}) {
			out = append(out, a)
		}
	}

	return out
}

// nest wraps attrs in the open groups, innermost last.
func nest(groups []string, attrs []slog.Attr) []slog.Attr {
	for i := len(groups) - 1; i >= 0; i-- {
		if len(attrs) == 0 {
			return nil
		}

		attrs = []slog.Attr{{Key: groups[i], Value: slog.GroupValue(attrs...)}}
	}

	return attrs
}

func (h *prettyHandler) writeLine(buf *bytes.Buffer, prefix string, attrs []slog.Attr) {
	for _, a := range attrs {
		v := a.Value.Resolve()

		if v.Kind() == slog.KindGroup {
			h.writeLine(buf, prefix+a.Key+".", v.Group())

			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(prefix + a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.text(v))
	}
}

func (h *prettyHandler) text(v slog.Value) string {
	s := h.style

	switch v.Kind() {
	case slog.KindString:
		return s.str.Render(v.String())
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return s.num.Render(v.String())
	case slog.KindDuration:
		return s.num.Render(v.Duration().String())
	case slog.KindTime:
		return s.time.Render(v.Time().Format(time.RFC3339))
	case slog.KindBool:
		if v.Bool() {
			return s.yes.Render("true")
		}

		return s.no.Render("false")
	case slog.KindAny:
		switch a := v.Any().(type) {
		case slog.Level:
			return s.level(a).Render(strings.ToUpper(Level(a).String()))
		case nil:
			return s.null.Render("null")
		case error:
			return s.str.Render(a.Error())
		}
	}

	return s.str.Render(fmt.Sprint(v.Any()))
}

func (h *prettyHandler) writeObject(buf *bytes.Buffer, attrs []slog.Attr, depth int) {
	indent := strings.Repeat("  ", depth)

	buf.WriteString("{")

	for i, a := range attrs {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString("\n" + indent)
		buf.WriteString(h.style.key.Render(strconv.Quote(a.Key)))
		buf.WriteString(": ")

		v := a.Value.Resolve()
		if v.Kind() == slog.KindGroup {
			h.writeObject(buf, v.Group(), depth+1)

			continue
		}

		buf.WriteString(h.json(v))
	}

	buf.WriteString("\n" + indent[2:] + "}")
}

func (h *prettyHandler) json(v slog.Value) string {
	s := h.style

	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return s.num.Render(v.String())
	case slog.KindBool:
		return h.text(v)
	case slog.KindAny:
		switch a := v.Any().(type) {
		case slog.Level:
			return s.level(a).Render(strconv.Quote(strings.ToUpper(Level(a).String())))
		case nil:
			return s.null.Render("null")
		case error:
			return s.str.Render(strconv.Quote(a.Error()))
		case json.Marshaler:
			if b, err := a.MarshalJSON(); err == nil {
				return s.str.Render(string(b))
			}
		}
	case slog.KindTime:
		return s.time.Render(strconv.Quote(v.Time().Format(time.RFC3339)))
	}

	return s.str.Render(strconv.Quote(v.String()))
}
