package sem

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestValueArithmetic(t *testing.T) {
	be.Equal(t, BinaryOp(MakeInt(2), "+", MakeInt(3)), MakeInt(5))
	be.Equal(t, BinaryOp(MakeInt(7), "-", MakeInt(2)), MakeInt(5))
	be.Equal(t, BinaryOp(MakeInt(6), "*", MakeInt(7)), MakeInt(42))
	be.Equal(t, BinaryOp(MakeInt(7), "/", MakeInt(2)), MakeInt(3))
	be.Equal(t, BinaryOp(MakeInt(7), "%", MakeInt(2)), MakeInt(1))

	be.Equal(t, BinaryOp(MakeFloat(1.5), "+", MakeFloat(0.5)), MakeFloat(2))
	be.Equal(t, BinaryOp(MakeString("go"), "+", MakeString("script")), MakeString("goscript"))
	be.Equal(t, BinaryOp(MakeBool(true), "&&", MakeBool(false)), MakeBool(false))
}

func TestValueDivisionByZero(t *testing.T) {
	be.True(t, !BinaryOp(MakeInt(1), "/", MakeInt(0)).IsKnown())
	be.True(t, !BinaryOp(MakeInt(1), "%", MakeInt(0)).IsKnown())
	be.True(t, !BinaryOp(MakeFloat(1), "/", MakeFloat(0)).IsKnown())
}

func TestValueMismatchedKinds(t *testing.T) {
	be.True(t, !BinaryOp(MakeInt(1), "+", MakeString("x")).IsKnown())
	be.True(t, !BinaryOp(MakeInt(1), "+", Value{}).IsKnown())
	be.True(t, !Compare(MakeInt(1), "==", MakeBool(true)).IsKnown())
}

func TestValueUnary(t *testing.T) {
	be.Equal(t, UnaryOp("-", MakeInt(3)), MakeInt(-3))
	be.Equal(t, UnaryOp("+", MakeInt(3)), MakeInt(3))
	be.Equal(t, UnaryOp("-", MakeFloat(2.5)), MakeFloat(-2.5))
	be.Equal(t, UnaryOp("!", MakeBool(true)), MakeBool(false))
	be.True(t, !UnaryOp("!", MakeInt(1)).IsKnown())
}

func TestValueCompare(t *testing.T) {
	be.Equal(t, Compare(MakeInt(1), "<", MakeInt(2)), MakeBool(true))
	be.Equal(t, Compare(MakeInt(2), "<=", MakeInt(2)), MakeBool(true))
	be.Equal(t, Compare(MakeInt(3), ">", MakeInt(3)), MakeBool(false))
	be.Equal(t, Compare(MakeString("a"), "<", MakeString("b")), MakeBool(true))
	be.Equal(t, Compare(MakeBool(true), "!=", MakeBool(false)), MakeBool(true))
	be.True(t, !Compare(MakeBool(true), "<", MakeBool(false)).IsKnown())
}
