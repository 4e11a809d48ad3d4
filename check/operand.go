package check

import (
	"fmt"

	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/sem"
)

// OperandMode describes what an expression denotes: nothing at all, a value,
// a type, a constant, an addressable variable, a builtin awaiting a call, or a
// map index whose use decides between one and two result values.
type OperandMode int

// Enumeration of operand modes.
const (
	// InvalidMode marks an operand whose checking failed.  Invalid operands
	// are never recorded; downstream checks treat them as already diagnosed.
	InvalidMode OperandMode = iota

	// NoValueMode marks a call of a function with no results.
	NoValueMode

	// BuiltinMode marks a builtin function outside of a call.
	BuiltinMode

	// TypExprMode marks an expression denoting a type.
	TypExprMode

	// ConstantMode marks a constant expression with a known or unknown value.
	ConstantMode

	// VariableMode marks an addressable variable.
	VariableMode

	// MapIndexMode marks a map index expression, which may be used in either
	// single-value or comma-ok form.
	MapIndexMode

	// ValueMode marks a plain computed value.
	ValueMode

	// CommaOKMode marks an expression used in comma-ok form.
	CommaOKMode
)

func (m OperandMode) String() string {
	switch m {
	case NoValueMode:
		return "no value"
	case BuiltinMode:
		return "built-in"
	case TypExprMode:
		return "type"
	case ConstantMode:
		return "constant"
	case VariableMode:
		return "variable"
	case MapIndexMode:
		return "map index expression"
	case ValueMode:
		return "value"
	case CommaOKMode:
		return "comma, ok expression"
	default:
		return "invalid operand"
	}
}

// operand is the intermediate result of checking one expression: the mode it
// was used in, the expression itself, its type, its constant value if any, and
// the builtin identity for builtin operands.  Operands are transient; their
// durable form is the TypeAndValue recorded against the expression.
type operand struct {
	mode    OperandMode
	expr    ast.Expr
	typ     sem.TypeKey
	val     sem.Value
	builtin sem.BuiltinID
}

// setInvalid marks the operand as failed with the invalid placeholder type.
func (x *operand) setInvalid(invalid sem.TypeKey) {
	x.mode = InvalidMode
	x.typ = invalid
	x.val = sem.Value{}
}

// describe renders the operand for diagnostic output.
func (x *operand) describe(a *sem.Arena) string {
	if x.mode == ConstantMode && x.val.IsKnown() {
		return fmt.Sprintf("%s (constant of type %s)", x.val, a.TypeString(x.typ))
	}

	if x.typ != sem.NoType {
		return fmt.Sprintf("%s of type %s", x.mode, a.TypeString(x.typ))
	}

	return x.mode.String()
}
