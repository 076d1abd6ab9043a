package chibi

import (
	"math"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

func defineBuiltins(b *LLVMIRBuilder) {
	printf := b.mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true
	b.values.Set("printf", printf)

	abort := b.mod.NewFunc("abort", types.Void)
	b.values.Set("abort", abort)

	defineBuiltinFunc(b, "print", builtinPrintf("._print_fmt", "%lld\n"))
	defineBuiltinFunc(b, "result", builtinPrintf("._result_fmt", "= %lld\n"))
	defineBuiltinFunc(b, "add", builtinChecked("llvm.sadd.with.overflow.i64"))
	defineBuiltinFunc(b, "sub", builtinChecked("llvm.ssub.with.overflow.i64"))
	defineBuiltinFunc(b, "mul", builtinChecked("llvm.smul.with.overflow.i64"))
	defineBuiltinFunc(b, "div", builtinDiv)
}

type funcDefinition = func(b *LLVMIRBuilder) *ir.Func

func defineBuiltinFunc(b *LLVMIRBuilder, name string, definition funcDefinition) {
	f := definition(b)
	f.SetName(name)
	b.values.Set(name, f)
}

// builtinPrintf defines an i64 -> i64 function that prints its argument with
// format and returns it unchanged.
func builtinPrintf(global, format string) funcDefinition {
	return func(b *LLVMIRBuilder) *ir.Func {
		f := b.mod.NewFunc("", types.I64, ir.NewParam("v", types.I64))
		block := f.NewBlock("")

		zero := constant.NewInt(types.I32, 0)

		chars := constant.NewCharArrayFromString(format + "\x00")
		formatGlob := b.mod.NewGlobalDef(global, chars)
		formatGlob.Immutable = true

		fmtAddr := constant.NewGetElementPtr(chars.Typ, formatGlob, zero, zero)

		printf, _ := b.values.Get("printf")
		block.NewCall(printf, fmtAddr, f.Params[0])

		block.NewRet(f.Params[0])

		return f
	}
}

// builtinChecked wraps an overflow intrinsic so the result aborts instead of
// wrapping around.
func builtinChecked(intrinsic string) funcDefinition {
	return func(b *LLVMIRBuilder) *ir.Func {
		resultType := types.NewStruct(types.I64, types.I1)
		op := b.mod.NewFunc(intrinsic, resultType, ir.NewParam("a", types.I64), ir.NewParam("b", types.I64))

		lhs := ir.NewParam("a", types.I64)
		rhs := ir.NewParam("b", types.I64)
		f := b.mod.NewFunc("", types.I64, lhs, rhs)

		entry := f.NewBlock("entry")
		fail := f.NewBlock("overflow")
		ok := f.NewBlock("ok")

		res := entry.NewCall(op, lhs, rhs)
		overflow := entry.NewExtractValue(res, 1)
		entry.NewCondBr(overflow, fail, ok)

		abort, _ := b.values.Get("abort")
		fail.NewCall(abort)
		fail.NewUnreachable()

		ok.NewRet(ok.NewExtractValue(res, 0))

		return f
	}
}

// builtinDiv is sdiv that aborts on a zero divisor and on MinInt64 / -1
// instead of leaving them undefined.
func builtinDiv(b *LLVMIRBuilder) *ir.Func {
	lhs := ir.NewParam("a", types.I64)
	rhs := ir.NewParam("b", types.I64)
	f := b.mod.NewFunc("", types.I64, lhs, rhs)

	entry := f.NewBlock("entry")
	nonZero := f.NewBlock("nonzero")
	fail := f.NewBlock("fail")
	ok := f.NewBlock("ok")

	isZero := entry.NewICmp(enum.IPredEQ, rhs, constant.NewInt(types.I64, 0))
	entry.NewCondBr(isZero, fail, nonZero)

	isMin := nonZero.NewICmp(enum.IPredEQ, lhs, constant.NewInt(types.I64, math.MinInt64))
	isNegOne := nonZero.NewICmp(enum.IPredEQ, rhs, constant.NewInt(types.I64, -1))
	nonZero.NewCondBr(nonZero.NewAnd(isMin, isNegOne), fail, ok)

	abort, _ := b.values.Get("abort")
	fail.NewCall(abort)
	fail.NewUnreachable()

	ok.NewRet(ok.NewSDiv(lhs, rhs))

	return f
}
