package interp

import (
	"github.com/ardnew/snow/lang/value"
	"github.com/ardnew/snow/log"
)

// Option configures an [Interpreter].
type Option func(*Interpreter)

// WithLogger sets the logger that receives trace output for the run.
// The zero [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(in *Interpreter) { in.logger = logger }
}

// WithEnvironment runs the program against env instead of a fresh one, so
// that bindings persist across runs that share it.
func WithEnvironment(env *Environment) Option {
	return func(in *Interpreter) {
		if env != nil {
			in.env = env
		}
	}
}

// WithGlobals binds each of vars in the environment before the first
// statement runs. Binding a builtin name fails the run with an OverrideError.
func WithGlobals(vars map[string]value.Value) Option {
	return func(in *Interpreter) {
		if in.globals == nil {
			in.globals = make(map[string]value.Value, len(vars))
		}

		for name, v := range vars {
			in.globals[name] = v
		}
	}
}
