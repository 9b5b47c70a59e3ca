package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/ardnew/snow/lang"
	"github.com/ardnew/snow/lang/interp"
	"github.com/ardnew/snow/log"
)

// Run executes scripts.
type Run struct {
	Define []string `help:"Bind NAME to the value of the expr-lang expression EXPR before each script runs." placeholder:"NAME=EXPR" short:"D"`

	Files []string `arg:"" default:"-" help:"Script files to run, searched along --path, or '-' for stdin." name:"file"`
}

// Run executes the run command. Scripts run in order, each in a fresh
// environment, and the first failing script stops the command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	globals, err := defines(r.Define)
	if err != nil {
		return err
	}

	scripts, err := loadScripts(ctx, r.Files)
	if err != nil {
		return err
	}

	stdout, stderr := streams(ctx)
	report := newReporter(stderr)

	for _, s := range scripts {
		start := time.Now()

		_, err := lang.Run(ctx, s.src, stdout,
			lang.WithLogger(log.Default()),
			lang.WithInterp(interp.WithGlobals(globals)),
		)

		log.DebugContext(ctx, "script finished",
			slog.String("file", s.name),
			slog.Duration("elapsed", time.Since(start)),
			slog.Bool("ok", err == nil),
		)

		if err != nil {
			if rerr := report.report(s.name, s.src, err); rerr != nil {
				return ErrWriteOutput.Wrap(rerr)
			}

			return ErrScriptFailed.With(slog.String("file", s.name)).Wrap(err)
		}
	}

	return nil
}
