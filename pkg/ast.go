package chibi

import (
	"fmt"
	"strconv"
)

// Expr is a node of the syntax tree. String renders the node with every
// binary operation parenthesised, which parses back to an equivalent tree.
type Expr interface {
	fmt.Stringer
	expr()
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
)

var binaryOps = map[TokenType]BinaryOp{
	TokenPlus:  BinaryAddition,
	TokenMinus: BinarySubtraction,
	TokenMulti: BinaryMultiplication,
	TokenDiv:   BinaryDivision,
}

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

func (e *BinaryExpr) String() string {
	return "(" + e.Op1.String() + " " + string(e.Operation) + " " + e.Op2.String() + ")"
}

type LiteralExpr struct {
	Value int64
}

func (e *LiteralExpr) String() string {
	return strconv.FormatInt(e.Value, 10)
}

// PrintExpr evaluates to its operand and emits the value as a side effect.
type PrintExpr struct {
	Operand Expr
}

func (e *PrintExpr) String() string {
	return "print(" + e.Operand.String() + ")"
}

func (*BinaryExpr) expr()  {}
func (*LiteralExpr) expr() {}
func (*PrintExpr) expr()   {}
