package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/ardnew/snow/lang/interp"
	"github.com/ardnew/snow/lang/lexer"
	"github.com/ardnew/snow/lang/token"
	"github.com/ardnew/snow/lang/value"
)

// defines evaluates each NAME=EXPR definition with expr-lang and returns the
// resulting bindings. Expressions may call env(name) to read the process
// environment and may refer to names defined earlier in the list.
//
//	--define n=10 --define limit='n * 2' --define home='env("HOME")'
func defines(defs []string) (map[string]value.Value, error) {
	vars := make(map[string]value.Value, len(defs))
	env := map[string]any{"env": os.Getenv}

	for _, def := range defs {
		name, source, ok := strings.Cut(def, "=")
		name = strings.TrimSpace(name)

		if !ok {
			return nil, ErrDefine.With(slog.String("define", def)).
				Wrap(errors.New("expected NAME=EXPR"))
		}

		if err := checkName(name); err != nil {
			return nil, ErrDefine.With(slog.String("define", def)).Wrap(err)
		}

		program, err := expr.Compile(source, expr.Env(env))
		if err != nil {
			return nil, ErrDefine.With(slog.String("define", def)).Wrap(err)
		}

		out, err := expr.Run(program, env)
		if err != nil {
			return nil, ErrDefine.With(slog.String("define", def)).Wrap(err)
		}

		v, err := toValue(out)
		if err != nil {
			return nil, ErrDefine.With(slog.String("define", def)).Wrap(err)
		}

		vars[name] = v
		env[name] = out
	}

	return vars, nil
}

// checkName reports whether name lexes as a single identifier that a script
// could assign.
func checkName(name string) error {
	toks, err := lexer.Lex(name)
	if err != nil || len(toks) != 2 || !toks[0].Is(token.Ident, name) {
		return fmt.Errorf("%q is not an identifier", name)
	}

	if interp.IsBuiltin(name) {
		return fmt.Errorf("cannot redefine builtin %q", name)
	}

	return nil
}

// toValue converts an expr-lang result to a script value.
func toValue(v any) (value.Value, error) {
	var loc token.Span

	switch v := v.(type) {
	case nil:
		return value.NewVoid(loc), nil
	case bool:
		return value.Bool(v, loc), nil
	case string:
		return value.Str(v, loc), nil
	case int:
		return value.Int(int64(v), loc), nil
	case int8:
		return value.Int(int64(v), loc), nil
	case int16:
		return value.Int(int64(v), loc), nil
	case int32:
		return value.Int(int64(v), loc), nil
	case int64:
		return value.Int(v, loc), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return value.Float(float64(v), loc), nil
		}

		return value.Int(int64(v), loc), nil
	case uint8:
		return value.Int(int64(v), loc), nil
	case uint16:
		return value.Int(int64(v), loc), nil
	case uint32:
		return value.Int(int64(v), loc), nil
	case uint64:
		if v > math.MaxInt64 {
			return value.Float(float64(v), loc), nil
		}

		return value.Int(int64(v), loc), nil
	case float32:
		return value.Float(float64(v), loc), nil
	case float64:
		return value.Float(v, loc), nil
	default:
		return nil, fmt.Errorf("unsupported result type %T", v)
	}
}
