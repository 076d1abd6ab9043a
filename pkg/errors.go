package chibi

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnexpectedEOF  = errors.New("unexpected end of input")
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("integer overflow")
)

// ParseError reports a token the grammar could not accept. Pos is the index of
// the offending token, or the token count when the input ran out.
type ParseError struct {
	Pos    int
	Token  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("parse error at token %d: %s", e.Pos, e.Reason)
	}

	return fmt.Sprintf("parse error at token %d '%s': %s", e.Pos, e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EvalError wraps ErrDivisionByZero or ErrOverflow with the offending operation.
type EvalError struct {
	Expr Expr
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating %s: %s", e.Expr, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
