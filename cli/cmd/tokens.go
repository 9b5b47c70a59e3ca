package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/snow/lang"
)

// Tokens prints the token stream of a script.
type Tokens struct {
	Spans bool `help:"Include the byte span of each token." short:"s"`

	File string `arg:"" default:"-" help:"Script file, searched along --path, or '-' for stdin." name:"file"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := loadScript(ctx, t.File)
	if err != nil {
		return err
	}

	stdout, stderr := streams(ctx)

	toks, err := lang.Lex(s.src)
	if err != nil {
		if rerr := newReporter(stderr).report(s.name, s.src, err); rerr != nil {
			return ErrWriteOutput.Wrap(rerr)
		}

		return ErrScriptFailed.With(slog.String("file", s.name)).Wrap(err)
	}

	for _, tok := range toks {
		if t.Spans {
			_, err = fmt.Fprintf(stdout, "%-8s %s\n", tok.Span, tok)
		} else {
			_, err = fmt.Fprintln(stdout, tok)
		}

		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}

// loadScript resolves and reads a single script.
func loadScript(ctx context.Context, name string) (script, error) {
	scripts, err := loadScripts(ctx, []string{name})
	if err != nil {
		return script{}, err
	}

	return scripts[0], nil
}
