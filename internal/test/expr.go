package test

import (
	"math/rand"
	"strconv"
	"strings"
)

var operators = []string{"+", "-", "*", "/"}

// GetRandomExpr builds a well-formed expression with size binary operators.
// Literals are 1..99 and every divisor is a non-zero literal, so up to about
// eight operators cannot overflow or divide by zero.
func GetRandomExpr(rnd *rand.Rand, size int) string {
	var sb strings.Builder
	writeExpr(rnd, &sb, size)

	return sb.String()
}

func writeExpr(rnd *rand.Rand, sb *strings.Builder, size int) {
	if size == 0 {
		writeLiteral(rnd, sb)
		return
	}

	op := operators[rnd.Intn(len(operators))]
	if op == "/" {
		writeOperand(rnd, sb, size-1)
		sb.WriteString(" / ")
		writeLiteral(rnd, sb)
		return
	}

	left := rnd.Intn(size)
	writeOperand(rnd, sb, left)
	sb.WriteString(" " + op + " ")
	writeOperand(rnd, sb, size-1-left)
}

func writeOperand(rnd *rand.Rand, sb *strings.Builder, size int) {
	switch {
	case size == 0:
		writeLiteral(rnd, sb)
	case rnd.Intn(4) == 0:
		sb.WriteString("print(")
		writeExpr(rnd, sb, size)
		sb.WriteString(")")
	default:
		sb.WriteString("(")
		writeExpr(rnd, sb, size)
		sb.WriteString(")")
	}
}

func writeLiteral(rnd *rand.Rand, sb *strings.Builder) {
	sb.WriteString(strconv.Itoa(rnd.Intn(99) + 1))
}
