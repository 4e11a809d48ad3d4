package check

import (
	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/sem"
)

// TypeAndValue reports the mode, type, and constant value of an expression.
// The value slot is never absent: non-constant expressions carry an unknown
// value.
type TypeAndValue struct {
	Mode  OperandMode
	Type  sem.TypeKey
	Value sem.Value
}

// IsType returns whether the expression denoted a type.
func (tv TypeAndValue) IsType() bool {
	return tv.Mode == TypExprMode
}

// IsValue returns whether the expression denoted a value.
func (tv TypeAndValue) IsValue() bool {
	switch tv.Mode {
	case ConstantMode, VariableMode, MapIndexMode, ValueMode, CommaOKMode:
		return true
	}

	return false
}

// Selection describes a resolved method selection `x.m`.
type Selection struct {
	// Obj is the selected method.
	Obj sem.ObjKey

	// Recv is the type of the selection's receiver expression.
	Recv sem.TypeKey
}

// Initializer describes one step of package initialization: a single variable,
// or a list of variables initialized together from one call, along with the
// initializing expression.
type Initializer struct {
	Lhs []sem.ObjKey
	Rhs ast.Expr
}

// TypeInfo is the recorded-results store filled in during checking.  Every map
// must be allocated before checking begins; results accumulate across files
// and are never removed.
type TypeInfo struct {
	// Types maps expressions to their modes, types, and values.
	Types map[ast.Expr]TypeAndValue

	// Defs maps identifiers to the objects they declare.  The recorded span of
	// a defining identifier starts exactly at its object's declaration span.
	Defs map[*ast.Ident]sem.ObjKey

	// Uses maps identifiers to the objects they refer to.
	Uses map[*ast.Ident]sem.ObjKey

	// Implicits maps nodes to objects declared without a defining identifier:
	// anonymous function parameters and plain imports.
	Implicits map[ast.Node]sem.ObjKey

	// Selections maps selector expressions to their resolved method
	// selections.  Qualified identifiers are not selections; they appear in
	// Uses instead.
	Selections map[*ast.SelectorExpr]*Selection

	// Scopes maps files and statement nodes to the scopes they open.
	Scopes map[ast.Node]sem.ScopeKey

	// InitOrder is the order in which package level variables must be
	// initialized, respecting initialization dependencies.
	InitOrder []*Initializer
}

// NewTypeInfo creates a recorded-results store with all maps allocated.
func NewTypeInfo() *TypeInfo {
	return &TypeInfo{
		Types:      make(map[ast.Expr]TypeAndValue),
		Defs:       make(map[*ast.Ident]sem.ObjKey),
		Uses:       make(map[*ast.Ident]sem.ObjKey),
		Implicits:  make(map[ast.Node]sem.ObjKey),
		Selections: make(map[*ast.SelectorExpr]*Selection),
		Scopes:     make(map[ast.Node]sem.ScopeKey),
	}
}

// TypeOf returns the type of the given expression, or NoType if the expression
// was not recorded.
func (info *TypeInfo) TypeOf(e ast.Expr) sem.TypeKey {
	if tv, ok := info.Types[e]; ok {
		return tv.Type
	}

	return sem.NoType
}

// ObjectOf returns the object defined or used by the given identifier, or
// NoObj.  If the identifier both defines and uses an object, the definition
// wins.
func (info *TypeInfo) ObjectOf(id *ast.Ident) sem.ObjKey {
	if obj, ok := info.Defs[id]; ok {
		return obj
	}

	if obj, ok := info.Uses[id]; ok {
		return obj
	}

	return sem.NoObj
}

// -----------------------------------------------------------------------------

// RecordTypeAndValue records the mode, type, and value of an expression.
// Expressions whose checking failed are not recorded.
func (info *TypeInfo) RecordTypeAndValue(e ast.Expr, mode OperandMode, typ sem.TypeKey, val sem.Value) {
	if mode == InvalidMode {
		return
	}

	info.Types[e] = TypeAndValue{Mode: mode, Type: typ, Value: val}
}

// RecordBuiltinType records the call-site specific signature of a builtin
// against the call's function expression and every parenthesized form of it.
func (info *TypeInfo) RecordBuiltinType(f ast.Expr, sig sem.TypeKey) {
	for {
		info.Types[f] = TypeAndValue{Mode: BuiltinMode, Type: sig}

		p, ok := f.(*ast.ParenExpr)
		if !ok {
			break
		}

		f = p.X
	}
}

// RecordDef records that an identifier declares the given object.
func (info *TypeInfo) RecordDef(id *ast.Ident, obj sem.ObjKey) {
	info.Defs[id] = obj
}

// RecordUse records that an identifier refers to the given object.
func (info *TypeInfo) RecordUse(id *ast.Ident, obj sem.ObjKey) {
	info.Uses[id] = obj
}

// RecordImplicit records that a node declares the given object without a
// defining identifier.
func (info *TypeInfo) RecordImplicit(node ast.Node, obj sem.ObjKey) {
	info.Implicits[node] = obj
}

// RecordSelection records a resolved method selection.  The selected
// identifier is additionally recorded as a use of the method.
func (info *TypeInfo) RecordSelection(e *ast.SelectorExpr, sel *Selection) {
	info.RecordUse(e.Sel, sel.Obj)
	info.Selections[e] = sel
}

// RecordScope records the scope opened by a file or statement node.
func (info *TypeInfo) RecordScope(node ast.Node, scope sem.ScopeKey) {
	info.Scopes[node] = scope
}
