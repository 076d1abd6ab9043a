package chibi

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pkg/errors"
)

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) (value.Value, error) {
	if val, ok := l.vals[id]; ok {
		return val, nil
	}

	return nil, errors.Errorf("undefined identifier: %s", id)
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

type IR interface {
	fmt.Stringer
}

type LLVMIRBuilder struct {
	mod    *ir.Module
	block  *ir.Block
	values *ValueLookup
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:    ir.NewModule(),
		values: NewValueLookup(),
	}

	defineBuiltins(builder)
	return builder
}

func (b *LLVMIRBuilder) recursiveLoad(expr Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return constant.NewInt(types.I64, e.Value), nil
	case *BinaryExpr:
		return b.binaryExpression(e)
	case *PrintExpr:
		v, err := b.recursiveLoad(e.Operand)
		if err != nil {
			return nil, err
		}

		return b.call("print", v)
	default:
		return nil, errors.Errorf("unexpected expression %T", expr)
	}
}

func (b *LLVMIRBuilder) binaryExpression(expr *BinaryExpr) (value.Value, error) {
	v1, err := b.recursiveLoad(expr.Op1)
	if err != nil {
		return nil, err
	}

	v2, err := b.recursiveLoad(expr.Op2)
	if err != nil {
		return nil, err
	}

	switch expr.Operation {
	case BinaryAddition:
		return b.call("add", v1, v2)
	case BinarySubtraction:
		return b.call("sub", v1, v2)
	case BinaryMultiplication:
		return b.call("mul", v1, v2)
	case BinaryDivision:
		return b.call("div", v1, v2)
	default:
		return nil, errors.Errorf("unexpected binary op: %s", expr.Operation)
	}
}

func (b *LLVMIRBuilder) call(name string, args ...value.Value) (value.Value, error) {
	f, err := b.values.Get(name)
	if err != nil {
		return nil, err
	}

	return b.block.NewCall(f, args...), nil
}

// LLVMGenerator lowers one expression into a module whose main prints the
// result as "= <value>".
type LLVMGenerator struct {
	expr Expr
}

func NewLLVMGenerator(expr Expr) *LLVMGenerator {
	return &LLVMGenerator{
		expr: expr,
	}
}

func (g LLVMGenerator) Do() (IR, error) {
	builder := NewLLVMIRBuilder()

	mainFunc := builder.mod.NewFunc("main", types.I32)
	builder.block = mainFunc.NewBlock("")

	v, err := builder.recursiveLoad(g.expr)
	if err != nil {
		return nil, err
	}

	if _, err := builder.call("result", v); err != nil {
		return nil, err
	}

	builder.block.NewRet(constant.NewInt(types.I32, 0))
	return builder.mod, nil
}
