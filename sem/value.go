package sem

import (
	"fmt"
	"strconv"
)

// ValueKind discriminates the kinds of constant values.
type ValueKind int

// Enumeration of value kinds.  UnknownValue is the zero value: it represents
// "not a constant" or a constant whose computation failed.  The value slot of
// a recorded expression is therefore never absent, merely unknown.
const (
	UnknownValue ValueKind = iota
	BoolValue
	IntValue
	FloatValue
	StringValue
)

// Value is a constant value.  Values are small tagged records, not arena
// entities: they are copied freely.
type Value struct {
	Kind ValueKind

	b bool
	i int64
	f float64
	s string
}

// MakeBool returns a boolean value.
func MakeBool(b bool) Value { return Value{Kind: BoolValue, b: b} }

// MakeInt returns an integer value.
func MakeInt(i int64) Value { return Value{Kind: IntValue, i: i} }

// MakeFloat returns a floating point value.
func MakeFloat(f float64) Value { return Value{Kind: FloatValue, f: f} }

// MakeString returns a string value.
func MakeString(s string) Value { return Value{Kind: StringValue, s: s} }

// IsKnown returns whether the value is an actual constant.
func (v Value) IsKnown() bool { return v.Kind != UnknownValue }

// Bool returns the payload of a boolean value.
func (v Value) Bool() bool {
	v.assertKind(BoolValue)
	return v.b
}

// Int returns the payload of an integer value.
func (v Value) Int() int64 {
	v.assertKind(IntValue)
	return v.i
}

// Float returns the payload of a floating point value.
func (v Value) Float() float64 {
	v.assertKind(FloatValue)
	return v.f
}

// Str returns the payload of a string value.
func (v Value) Str() string {
	v.assertKind(StringValue)
	return v.s
}

func (v Value) String() string {
	switch v.Kind {
	case BoolValue:
		return strconv.FormatBool(v.b)
	case IntValue:
		return strconv.FormatInt(v.i, 10)
	case FloatValue:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case StringValue:
		return strconv.Quote(v.s)
	default:
		return "<unknown>"
	}
}

func (v Value) assertKind(kind ValueKind) {
	if v.Kind != kind {
		panic(fmt.Sprintf("sem: value accessor used on wrong value kind %d", v.Kind))
	}
}

// -----------------------------------------------------------------------------

// UnaryOp applies a unary operator to a constant value.  It returns an
// unknown value if the operator does not apply.
func UnaryOp(op string, v Value) Value {
	switch v.Kind {
	case IntValue:
		switch op {
		case "+":
			return v
		case "-":
			return MakeInt(-v.i)
		}
	case FloatValue:
		switch op {
		case "+":
			return v
		case "-":
			return MakeFloat(-v.f)
		}
	case BoolValue:
		if op == "!" {
			return MakeBool(!v.b)
		}
	}

	return Value{}
}

// BinaryOp folds a binary operator over two constant values of the same kind.
// Division by a zero constant and mismatched kinds yield an unknown value; the
// caller is responsible for diagnosing them.
func BinaryOp(x Value, op string, y Value) Value {
	if x.Kind != y.Kind {
		return Value{}
	}

	switch x.Kind {
	case IntValue:
		switch op {
		case "+":
			return MakeInt(x.i + y.i)
		case "-":
			return MakeInt(x.i - y.i)
		case "*":
			return MakeInt(x.i * y.i)
		case "/":
			if y.i == 0 {
				return Value{}
			}
			return MakeInt(x.i / y.i)
		case "%":
			if y.i == 0 {
				return Value{}
			}
			return MakeInt(x.i % y.i)
		}
	case FloatValue:
		switch op {
		case "+":
			return MakeFloat(x.f + y.f)
		case "-":
			return MakeFloat(x.f - y.f)
		case "*":
			return MakeFloat(x.f * y.f)
		case "/":
			if y.f == 0 {
				return Value{}
			}
			return MakeFloat(x.f / y.f)
		}
	case StringValue:
		if op == "+" {
			return MakeString(x.s + y.s)
		}
	case BoolValue:
		switch op {
		case "&&":
			return MakeBool(x.b && y.b)
		case "||":
			return MakeBool(x.b || y.b)
		}
	}

	return Value{}
}

// Compare folds a comparison operator over two constant values of the same
// kind, yielding a boolean value or an unknown value if the comparison does
// not apply.
func Compare(x Value, op string, y Value) Value {
	if x.Kind != y.Kind {
		return Value{}
	}

	switch x.Kind {
	case IntValue:
		return compareOrdered(op, x.i == y.i, x.i < y.i)
	case FloatValue:
		return compareOrdered(op, x.f == y.f, x.f < y.f)
	case StringValue:
		return compareOrdered(op, x.s == y.s, x.s < y.s)
	case BoolValue:
		switch op {
		case "==":
			return MakeBool(x.b == y.b)
		case "!=":
			return MakeBool(x.b != y.b)
		}
	}

	return Value{}
}

func compareOrdered(op string, eq, lt bool) Value {
	switch op {
	case "==":
		return MakeBool(eq)
	case "!=":
		return MakeBool(!eq)
	case "<":
		return MakeBool(lt)
	case "<=":
		return MakeBool(lt || eq)
	case ">":
		return MakeBool(!lt && !eq)
	case ">=":
		return MakeBool(!lt)
	}

	return Value{}
}
