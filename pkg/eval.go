package chibi

import (
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Evaluator walks a syntax tree. Children are evaluated left to right before
// their parent, so print output follows post-order.
type Evaluator struct {
	out io.Writer
	log zerolog.Logger
}

func NewEvaluator(out io.Writer) *Evaluator {
	return &Evaluator{
		out: out,
		log: zerolog.Nop(),
	}
}

func (e *Evaluator) WithLogger(log zerolog.Logger) *Evaluator {
	e.log = log
	return e
}

func (e *Evaluator) Eval(expr Expr) (int64, error) {
	switch ex := expr.(type) {
	case *LiteralExpr:
		return ex.Value, nil
	case *BinaryExpr:
		return e.binaryExpression(ex)
	case *PrintExpr:
		v, err := e.Eval(ex.Operand)
		if err != nil {
			return 0, err
		}

		if _, err := fmt.Fprintf(e.out, "%d\n", v); err != nil {
			return 0, errors.Wrap(err, "writing print output")
		}

		e.log.Debug().Int64("value", v).Msg("print")
		return v, nil
	default:
		return 0, errors.Errorf("unexpected expression %T", expr)
	}
}

func (e *Evaluator) binaryExpression(expr *BinaryExpr) (int64, error) {
	v1, err := e.Eval(expr.Op1)
	if err != nil {
		return 0, err
	}

	v2, err := e.Eval(expr.Op2)
	if err != nil {
		return 0, err
	}

	var (
		v  int64
		ok bool
	)

	switch expr.Operation {
	case BinaryAddition:
		v, ok = addInt64(v1, v2)
	case BinarySubtraction:
		v, ok = subInt64(v1, v2)
	case BinaryMultiplication:
		v, ok = mulInt64(v1, v2)
	case BinaryDivision:
		if v2 == 0 {
			return 0, &EvalError{Expr: expr, Err: ErrDivisionByZero}
		}

		v, ok = divInt64(v1, v2)
	default:
		return 0, errors.Errorf("unexpected binary op: %s", expr.Operation)
	}

	if !ok {
		return 0, &EvalError{Expr: expr, Err: ErrOverflow}
	}

	return v, nil
}

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func subInt64(a, b int64) (int64, bool) {
	c := a - b
	return c, (c < a) == (b > 0)
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	c := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return c, false
	}

	return c, c/b == a
}

// divInt64 truncates toward zero. Only MinInt64 / -1 overflows.
func divInt64(a, b int64) (int64, bool) {
	if a == math.MinInt64 && b == -1 {
		return a, false
	}

	return a / b, true
}
