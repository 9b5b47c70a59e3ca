package lang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/klauspost/readahead"

	"github.com/ardnew/snow/lang/ast"
	"github.com/ardnew/snow/lang/interp"
	"github.com/ardnew/snow/lang/lexer"
	"github.com/ardnew/snow/lang/parser"
	"github.com/ardnew/snow/lang/token"
	"github.com/ardnew/snow/lang/value"
	"github.com/ardnew/snow/log"
)

// ErrReadSource wraps failures to read program text.
var ErrReadSource = errors.New("read source")

// Option configures the facade functions.
type Option func(*options)

type options struct {
	logger log.Logger
	interp []interp.Option
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger used for phase timings, cache activity and the
// interpreter's trace output.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithInterp passes opts to the interpreter created by [Run].
func WithInterp(opts ...interp.Option) Option {
	return func(o *options) { o.interp = append(o.interp, opts...) }
}

// Lex returns the tokens of src, ending with EOF.
func Lex(src string) ([]token.Token, error) { return lexer.Lex(src) }

// Parse lexes and parses src without consulting the cache.
func Parse(src string) ([]ast.Node, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}

	return parser.Parse(toks)
}

// Run compiles src and evaluates it, writing program output to out. It
// returns the value of the last statement.
func Run(ctx context.Context, src string, out io.Writer, opts ...Option) (value.Value, error) {
	o := makeOptions(opts...)

	nodes, err := compile(ctx, src, o)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	in := interp.New(nodes, out, append([]interp.Option{interp.WithLogger(o.logger)}, o.interp...)...)

	v, err := in.Run(ctx)

	o.logger.DebugContext(ctx, "eval",
		slog.Duration("elapsed", time.Since(start)),
		slog.Bool("ok", err == nil),
	)

	return v, err
}

// ReadSource reads all of r as program text.
func ReadSource(ctx context.Context, r io.Reader, opts ...Option) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadSource, err)
	}

	makeOptions(opts...).logger.TraceContext(ctx, "read source",
		slog.Int("bytes", len(data)),
	)

	return string(data), nil
}

// ReadFile reads the program text of the named file.
func ReadFile(ctx context.Context, name string, opts ...Option) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	defer f.Close()

	return ReadSource(ctx, f, opts...)
}
