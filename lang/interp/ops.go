package interp

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/ardnew/snow/lang/ast"
	"github.com/ardnew/snow/lang/diag"
	"github.com/ardnew/snow/lang/token"
	"github.com/ardnew/snow/lang/value"
)

// arithmetic applies one of + - * / to operable operands. Integer operands
// produce an integer for + - * unless the result overflows, in which case
// it is computed in floating point. Division always produces a float.
func arithmetic(op token.Token, left, right value.Value, loc token.Span) (value.Value, error) {
	l, lok := value.AsNumber(left)
	r, rok := value.AsNumber(right)

	if !lok || !rok {
		return nil, diag.Type(op.Span.Start, fmt.Sprintf(
			"unsupported operand type(s) for %s: %s and %s",
			op.Type.Symbol(), left.TypeName(), right.TypeName(),
		)).With(
			slog.String("op", op.Type.Symbol()),
			slog.String("left", left.TypeName()),
			slog.String("right", right.TypeName()),
		)
	}

	if op.Type == token.Div {
		if r.Float64() == 0 {
			return nil, diag.ZeroDivision(op.Span.Start)
		}

		return value.Float(l.Float64()/r.Float64(), loc), nil
	}

	a, aInt := l.Int64()
	b, bInt := r.Int64()

	if aInt && bInt {
		if v, ok := intOp(op.Type, a, b); ok {
			return value.Int(v, loc), nil
		}
	}

	x, y := l.Float64(), r.Float64()

	switch op.Type {
	case token.Add:
		return value.Float(x+y, loc), nil
	case token.Sub:
		return value.Float(x-y, loc), nil
	case token.Mul:
		return value.Float(x*y, loc), nil
	}

	panic("interp: unhandled arithmetic operator " + op.Type.String())
}

// intOp computes a op b, reporting false when the result overflows int64.
func intOp(op token.Type, a, b int64) (int64, bool) {
	switch op {
	case token.Add:
		s := a + b

		return s, (s > a) == (b > 0)
	case token.Sub:
		s := a - b

		return s, (s < a) == (b > 0)
	case token.Mul:
		if a == 0 || b == 0 {
			return 0, true
		}

		p := a * b
		if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, false
		}

		return p, true
	default:
		return 0, false
	}
}

func (in *Interpreter) compare(ctx context.Context, c *ast.Comparison) (value.Value, error) {
	left, err := in.eval(ctx, c.Left)
	if err != nil {
		return nil, err
	}

	right, err := in.eval(ctx, c.Right)
	if err != nil {
		return nil, err
	}

	ok, err := relate(c.Op, left, right)
	if err != nil {
		return nil, err
	}

	return value.Bool(ok, c.Span()), nil
}

// relate evaluates left op right. Equality is defined between any two
// values; ordering only between two operable values or two strings.
func relate(op token.Token, left, right value.Value) (bool, error) {
	switch op.Type {
	case token.DbEq:
		return equal(left, right), nil
	case token.NotEq:
		return !equal(left, right), nil
	}

	var order int

	switch l := left.(type) {
	case value.String:
		r, ok := right.(value.String)
		if !ok {
			return false, incomparable(op, left, right)
		}

		order = cmp.Compare(l.V, r.V)

	default:
		ln, lok := value.AsNumber(left)
		rn, rok := value.AsNumber(right)

		if !lok || !rok {
			return false, incomparable(op, left, right)
		}

		if math.IsNaN(ln.Float64()) || math.IsNaN(rn.Float64()) {
			return false, nil
		}

		order = compareNumbers(ln, rn)
	}

	switch op.Type {
	case token.Lt:
		return order < 0, nil
	case token.Gt:
		return order > 0, nil
	case token.LtEq:
		return order <= 0, nil
	case token.GtEq:
		return order >= 0, nil
	}

	panic("interp: unhandled comparison operator " + op.Type.String())
}

func equal(left, right value.Value) bool {
	if ln, ok := value.AsNumber(left); ok {
		rn, ok := value.AsNumber(right)

		return ok && compareNumbers(ln, rn) == 0 && !math.IsNaN(ln.Float64())
	}

	switch l := left.(type) {
	case value.String:
		r, ok := right.(value.String)

		return ok && l.V == r.V
	case value.Void:
		_, ok := right.(value.Void)

		return ok
	case value.Function:
		r, ok := right.(value.Function)

		return ok && l.Name == r.Name
	}

	return false
}

func compareNumbers(l, r value.Number) int {
	a, aInt := l.Int64()
	b, bInt := r.Int64()

	if aInt && bInt {
		return cmp.Compare(a, b)
	}

	return cmp.Compare(l.Float64(), r.Float64())
}

func incomparable(op token.Token, left, right value.Value) *diag.Error {
	return diag.Type(op.Span.Start, fmt.Sprintf(
		"Cannot use '%s' between type '%s' and '%s'",
		op.Type.Symbol(), left.TypeName(), right.TypeName(),
	)).With(
		slog.String("op", op.Type.Symbol()),
		slog.String("left", left.TypeName()),
		slog.String("right", right.TypeName()),
	)
}
