// Package diag defines the error taxonomy shared by every phase of the snow
// pipeline and renders errors against the source text they refer to.
package diag

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Kind names the class of an [Error]. The string form is what users see,
// e.g. "SyntaxError".
type Kind string

const (
	KindLex          Kind = "LexError"
	KindSyntax       Kind = "SyntaxError"
	KindType         Kind = "TypeError"
	KindUndefined    Kind = "UndefinedError"
	KindOverride     Kind = "OverrideError"
	KindZeroDivision Kind = "ZeroDivisionError"
)

// Phase returns the pipeline phase that reports errors of kind k.
func (k Kind) Phase() Phase {
	switch k {
	case KindLex:
		return PhaseLex
	case KindSyntax:
		return PhaseParse
	default:
		return PhaseEval
	}
}

// Phase identifies a pipeline stage.
type Phase string

const (
	PhaseLex   Phase = "lex"
	PhaseParse Phase = "parse"
	PhaseEval  Phase = "eval"
)

// Sentinel errors, one per kind, for use with [errors.Is].
var (
	ErrLex          = New(KindLex, -1, "invalid character")
	ErrSyntax       = New(KindSyntax, -1, "unexpected token")
	ErrType         = New(KindType, -1, "unsupported operand type")
	ErrUndefined    = New(KindUndefined, -1, "undefined identifier")
	ErrOverride     = New(KindOverride, -1, "cannot override builtin")
	ErrZeroDivision = New(KindZeroDivision, -1, "division by zero")
)

// Error is a positioned, user-facing error produced by the lexer, parser or
// interpreter. It implements both error and slog.LogValuer.
type Error struct {
	Kind    Kind
	Offset  int // byte offset into the source, -1 when unknown
	Message string

	err   error
	attrs []slog.Attr
}

// New returns an Error of the given kind at offset.
func New(kind Kind, offset int, msg string) *Error {
	return &Error{Kind: kind, Offset: offset, Message: msg}
}

// Lex returns a LexError at offset.
func Lex(offset int, msg string) *Error { return New(KindLex, offset, msg) }

// Syntax returns a SyntaxError at offset.
func Syntax(offset int, msg string) *Error { return New(KindSyntax, offset, msg) }

// Type returns a TypeError at offset.
func Type(offset int, msg string) *Error { return New(KindType, offset, msg) }

// Undefined returns an UndefinedError naming the identifier.
func Undefined(offset int, name string) *Error {
	return New(KindUndefined, offset, "'"+name+"' is not defined").
		With(slog.String("name", name))
}

// Override returns an OverrideError naming the builtin.
func Override(offset int, name string) *Error {
	return New(KindOverride, offset, "Cannot override builtin: '"+name+"'").
		With(slog.String("name", name))
}

// ZeroDivision returns a ZeroDivisionError at offset.
func ZeroDivision(offset int) *Error {
	return New(KindZeroDivision, offset, "division by zero")
}

// Error implements the error interface as "<Kind>: <message>".
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.Message != "" {
		part = append(part, e.Message)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return string(e.Kind) + ": " + strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same kind. Positions and
// messages are ignored, so every error matches its kind's sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind
}

// Phase returns the pipeline phase that produced e.
func (e *Error) Phase() Phase { return e.Kind.Phase() }

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Kind:    e.Kind,
		Offset:  e.Offset,
		Message: e.Message,
		err:     err,
		attrs:   e.attrs,
	}
}

// With returns a copy of e with the given attributes appended for structured
// logging.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		Kind:    e.Kind,
		Offset:  e.Offset,
		Message: e.Message,
		err:     e.err,
		attrs:   newAttrs,
	}
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	attrs = append(attrs,
		slog.String("kind", string(e.Kind)),
		slog.String("error", e.Message),
	)

	if e.Offset >= 0 {
		attrs = append(attrs, slog.Int("offset", e.Offset))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Summary formats the one-line report "<file> Kind: message".
func (e *Error) Summary(file string) string {
	return "<" + file + "> " + e.Error()
}

// Detail formats the caret pointer into src followed by the summary line.
func (e *Error) Detail(file, src string) string {
	var b strings.Builder

	if e.Offset >= 0 {
		pos := Locate(src, e.Offset)

		b.WriteString(Point(src, e.Offset))
		b.WriteString(file)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(pos.Line))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(pos.Column))
		b.WriteByte('\n')
	}

	b.WriteString(e.Summary(file))

	return b.String()
}

// As extracts the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error

	ok := errors.As(err, &e)

	return e, ok
}
