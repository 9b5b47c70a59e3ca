package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/snow/cli/cmd/repl"
	"github.com/ardnew/snow/lang"
	"github.com/ardnew/snow/lang/interp"
	"github.com/ardnew/snow/log"
)

// Repl starts an interactive session.
type Repl struct {
	Define []string `help:"Bind NAME to the value of the expr-lang expression EXPR before the session starts." placeholder:"NAME=EXPR" short:"D"`

	History bool `default:"true" help:"Keep input history in the cache directory." negatable:""`

	Files []string `arg:"" help:"Scripts to run before the session starts; their bindings stay available." name:"file" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	env, err := r.environment(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, env, r.cacheDir(ctx), log.Default())
}

// environment binds the definitions and runs the preloaded scripts in a new
// environment.
func (r *Repl) environment(ctx context.Context) (*interp.Environment, error) {
	globals, err := defines(r.Define)
	if err != nil {
		return nil, err
	}

	env := interp.NewEnvironment()
	for name, v := range globals {
		env.Set(name, v)
	}

	if len(r.Files) == 0 {
		return env, nil
	}

	scripts, err := loadScripts(ctx, r.Files)
	if err != nil {
		return nil, err
	}

	stdout, stderr := streams(ctx)
	report := newReporter(stderr)

	for _, s := range scripts {
		_, err := lang.Run(ctx, s.src, stdout,
			lang.WithLogger(log.Default()),
			lang.WithInterp(interp.WithEnvironment(env)),
		)
		if err != nil {
			if rerr := report.report(s.name, s.src, err); rerr != nil {
				return nil, ErrWriteOutput.Wrap(rerr)
			}

			return nil, ErrScriptFailed.With(slog.String("file", s.name)).Wrap(err)
		}

		log.DebugContext(ctx, "script preloaded",
			slog.String("file", s.name),
			slog.Int("bindings", env.Len()),
		)
	}

	return env, nil
}

// cacheDir returns the directory that holds the history file, or "" to keep
// history in memory.
func (r *Repl) cacheDir(ctx context.Context) string {
	if !r.History {
		return ""
	}

	ktx := kongContextFrom(ctx)
	if ktx == nil || ktx.Model == nil {
		return ""
	}

	dir := ktx.Model.Vars()[CacheIdentifier]
	if dir == "" {
		return ""
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.WarnContext(ctx, "history disabled",
			slog.String("path", dir),
			slog.String("error", err.Error()),
		)

		return ""
	}

	return dir
}
