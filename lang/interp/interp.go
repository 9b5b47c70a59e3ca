// Package interp evaluates a snow syntax tree.
//
// An [Interpreter] walks the statements of one program in order against a
// single flat [Environment], writing the text of every out statement to its
// output sink. The first error aborts the run.
//
// Loop and repeat statements share one break flag per interpreter. Break sets
// the flag; the innermost loop consumes it when it next checks, after each
// statement of its body, and exits. An if statement never checks the flag, so
// statements after a break in the same if body still run before the enclosing
// loop exits.
package interp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/snow/lang/ast"
	"github.com/ardnew/snow/lang/diag"
	"github.com/ardnew/snow/lang/value"
	"github.com/ardnew/snow/log"
)

// Interpreter runs one parsed program.
type Interpreter struct {
	nodes   []ast.Node
	out     io.Writer
	env     *Environment
	globals map[string]value.Value
	logger  log.Logger

	broke bool
}

// New returns an Interpreter for nodes that writes program output to out.
// A nil out discards output.
func New(nodes []ast.Node, out io.Writer, opts ...Option) *Interpreter {
	if out == nil {
		out = io.Discard
	}

	in := &Interpreter{nodes: nodes, out: out}

	for _, opt := range opts {
		opt(in)
	}

	if in.env == nil {
		in.env = NewEnvironment()
	}

	return in
}

// Environment returns the environment the program runs against.
func (in *Interpreter) Environment() *Environment { return in.env }

// Run evaluates every statement in order and returns the value of the last
// one, or nil for an empty program.
//
// The context only carries logging attributes. It is never polled, so a loop
// without a reachable break runs until the process ends.
func (in *Interpreter) Run(ctx context.Context) (result value.Value, err error) {
	in.logger.TraceContext(ctx, "run start",
		slog.Int("statements", len(in.nodes)),
		slog.Int("bindings", in.env.Len()),
	)

	defer func() {
		if err != nil {
			in.logger.DebugContext(ctx, "run failed", slog.Any("error", err))

			return
		}

		in.logger.TraceContext(ctx, "run finish", slog.Int("bindings", in.env.Len()))
	}()

	for _, name := range slices.Sorted(maps.Keys(in.globals)) {
		if IsBuiltin(name) {
			return nil, diag.Override(-1, name)
		}

		in.env.Set(name, in.globals[name])
	}

	for _, n := range in.nodes {
		if result, err = in.eval(ctx, n); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (in *Interpreter) eval(ctx context.Context, n ast.Node) (value.Value, error) {
	switch n := n.(type) {
	case *ast.NumberLiteral:
		switch v := n.Value.(type) {
		case int64:
			return value.Int(v, n.Loc), nil
		case float64:
			return value.Float(v, n.Loc), nil
		}

		panic(fmt.Sprintf("interp: number literal holds %T", n.Value))

	case *ast.StringLiteral:
		return value.Str(n.Value, n.Loc), nil

	case *ast.VarAccess:
		return in.access(n)

	case *ast.VarAssign:
		if _, err := in.assign(ctx, n.Name, n.Value, n.Loc.Start); err != nil {
			return nil, err
		}

		return value.NewVoid(n.Loc), nil

	case *ast.WalrusAssign:
		return in.assign(ctx, n.Name, n.Value, n.Loc.Start)

	case *ast.BinaryOperation:
		left, err := in.eval(ctx, n.Left)
		if err != nil {
			return nil, err
		}

		right, err := in.eval(ctx, n.Right)
		if err != nil {
			return nil, err
		}

		return arithmetic(n.Op, left, right, n.Span())

	case *ast.Comparison:
		return in.compare(ctx, n)

	case *ast.ComparisonChain:
		for _, c := range n.Comparisons {
			v, err := in.compare(ctx, c)
			if err != nil {
				return nil, err
			}

			if v.Truthy() {
				return value.Bool(true, n.Span()), nil
			}
		}

		return value.Bool(false, n.Span()), nil

	case *ast.Out:
		v, err := in.eval(ctx, n.Child)
		if err != nil {
			return nil, err
		}

		if _, err := fmt.Fprintln(in.out, v.String()); err != nil {
			return nil, fmt.Errorf("write output: %w", err)
		}

		return value.NewVoid(n.Loc), nil

	case *ast.If:
		cond, err := in.eval(ctx, n.Cond)
		if err != nil {
			return nil, err
		}

		body := n.Children
		if !cond.Truthy() {
			body = n.Else
		}

		for _, c := range body {
			if _, err := in.eval(ctx, c); err != nil {
				return nil, err
			}
		}

		return value.NewVoid(n.Loc), nil

	case *ast.Loop:
		for pass := 0; ; pass++ {
			exit, err := in.pass(ctx, n.Children)
			if err != nil {
				return nil, err
			}

			if exit {
				in.logger.TraceContext(ctx, "loop exit", slog.Int("passes", pass+1))

				return value.NewVoid(n.Loc), nil
			}
		}

	case *ast.Repeat:
		return in.repeat(ctx, n)

	case *ast.Break:
		in.broke = true

		return value.NewVoid(n.Loc), nil
	}

	panic(fmt.Sprintf("interp: unhandled node %T", n))
}

func (in *Interpreter) access(n *ast.VarAccess) (value.Value, error) {
	if v, ok := in.env.Get(n.Name); ok {
		return value.WithSpan(v, n.Loc), nil
	}

	if v, ok := Builtin(n.Name); ok {
		return value.WithSpan(v, n.Loc), nil
	}

	return nil, diag.Undefined(n.Loc.Start, n.Name)
}

// assign evaluates expr and binds its value to name.
func (in *Interpreter) assign(
	ctx context.Context,
	name string,
	expr ast.Node,
	offset int,
) (value.Value, error) {
	v, err := in.eval(ctx, expr)
	if err != nil {
		return nil, err
	}

	if IsBuiltin(name) {
		return nil, diag.Override(offset, name)
	}

	in.env.Set(name, v)

	return v, nil
}

func (in *Interpreter) repeat(ctx context.Context, n *ast.Repeat) (value.Value, error) {
	v, err := in.eval(ctx, n.Count)
	if err != nil {
		return nil, err
	}

	num, ok := v.(value.Number)
	if !ok || !num.IsInt() {
		return nil, diag.Type(n.Count.Span().Start,
			"repeat count must be an integer, got '"+v.TypeName()+"'").
			With(slog.String("type", v.TypeName()))
	}

	count, _ := num.Int64()

	for i := range count {
		exit, err := in.pass(ctx, n.Children)
		if err != nil {
			return nil, err
		}

		if exit {
			in.logger.TraceContext(ctx, "repeat exit",
				slog.Int64("iteration", i+1),
				slog.Int64("count", count),
			)

			break
		}
	}

	return value.NewVoid(n.Loc), nil
}

// pass evaluates one iteration of a loop body. It reports whether the break
// flag was raised, clearing it.
func (in *Interpreter) pass(ctx context.Context, body []ast.Node) (bool, error) {
	for _, c := range body {
		if _, err := in.eval(ctx, c); err != nil {
			return false, err
		}

		if in.broke {
			in.broke = false

			return true, nil
		}
	}

	if in.broke {
		in.broke = false

		return true, nil
	}

	return false, nil
}
