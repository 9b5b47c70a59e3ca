package lang

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/snow/lang/ast"
)

// cache maps the xxh3 hash of a source text to its *compiled entry.
//
//nolint:gochecknoglobals
var cache sync.Map

// compiled holds the parse result of one source text. The once guards the
// parse so that concurrent callers with the same source parse it only once.
type compiled struct {
	once  sync.Once
	src   string
	nodes []ast.Node
	err   error
}

// Compile lexes and parses src, returning a cached result when the same text
// has been compiled before. Errors are cached as well. The returned nodes
// are shared between callers and must not be modified.
func Compile(ctx context.Context, src string, opts ...Option) ([]ast.Node, error) {
	return compile(ctx, src, makeOptions(opts...))
}

func compile(ctx context.Context, src string, o options) ([]ast.Node, error) {
	key := xxh3.HashString(src)

	entry := &compiled{src: src}

	v, hit := cache.LoadOrStore(key, entry)
	if c, ok := v.(*compiled); ok {
		entry = c
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("hash", strconv.FormatUint(key, 16)),
		slog.Bool("hit", hit),
	)

	if entry.src != src {
		o.logger.DebugContext(ctx, "cache collision",
			slog.String("hash", strconv.FormatUint(key, 16)),
		)

		return Parse(src)
	}

	entry.once.Do(func() {
		start := time.Now()

		entry.nodes, entry.err = Parse(src)

		o.logger.DebugContext(ctx, "compile",
			slog.Int("bytes", len(src)),
			slog.Int("statements", len(entry.nodes)),
			slog.Duration("elapsed", time.Since(start)),
			slog.Bool("ok", entry.err == nil),
		)
	})

	return entry.nodes, entry.err
}

// ClearCache discards every cached compilation.
func ClearCache() {
	cache.Clear()
}
