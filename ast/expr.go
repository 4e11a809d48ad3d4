package ast

import "github.com/ndrsllwngr/goscript/report"

// Expr represents an expression, simple or complex.  All expression nodes
// implement the `Expr` interface.  Type expressions are ordinary expressions:
// whether an expression denotes a type or a value is decided during checking.
type Expr interface {
	Node

	exprNode()
}

// ExprBase is the base struct for all expression nodes.
type ExprBase struct {
	NodeBase
}

func (eb ExprBase) exprNode() {}

// NewExprBaseOn creates a new expression base with the given span.
func NewExprBaseOn(span *report.TextSpan) ExprBase {
	return ExprBase{NodeBase: NewNodeBaseOn(span)}
}

// NewExprBaseOver creates a new expression base spanning over two spans.
func NewExprBaseOver(start, end *report.TextSpan) ExprBase {
	return ExprBase{NodeBase: NewNodeBaseOver(start, end)}
}

// -----------------------------------------------------------------------------

// Ident represents a single identifier.
type Ident struct {
	ExprBase

	Name string
}

// Enumeration of literal kinds.
const (
	IntLit = iota
	FloatLit
	StringLit
	RuneLit
)

// Literal represents a single literal value.
type Literal struct {
	ExprBase

	// Kind is one of the enumerated literal kinds.
	Kind int

	// Value is the literal text with quotes removed and escapes resolved.
	Value string
}

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	ExprBase

	X Expr
}

// SelectorExpr represents a selection `x.sel`: a qualified identifier or a
// method selection.
type SelectorExpr struct {
	ExprBase

	X   Expr
	Sel *Ident
}

// CallExpr represents a function call, builtin call, or conversion.
type CallExpr struct {
	ExprBase

	Fn   Expr
	Args []Expr
}

// IndexExpr represents an index operation `x[i]`.
type IndexExpr struct {
	ExprBase

	X     Expr
	Index Expr
}

// UnaryExpr represents a prefix unary operation.
type UnaryExpr struct {
	ExprBase

	Op string
	X  Expr
}

// BinaryExpr represents a binary operation.
type BinaryExpr struct {
	ExprBase

	Op       string
	Lhs, Rhs Expr
}

// FuncLit represents a function literal.
type FuncLit struct {
	ExprBase

	Type *FuncTypeExpr
	Body *BlockStmt
}

// -----------------------------------------------------------------------------

// StarExpr represents a pointer type expression `*T`.
type StarExpr struct {
	ExprBase

	Elem Expr
}

// SliceTypeExpr represents a slice type expression `[]T`.
type SliceTypeExpr struct {
	ExprBase

	Elem Expr
}

// MapTypeExpr represents a map type expression `map[K]V`.
type MapTypeExpr struct {
	ExprBase

	Key   Expr
	Value Expr
}

// Param represents a single parameter or result of a function type.  Anonymous
// parameters have a nil name: the object they declare is recorded as an
// implicit of this node.
type Param struct {
	NodeBase

	Name *Ident
	Type Expr
}

// FuncTypeExpr represents a function type expression: the signature of a
// function declaration, function literal, or interface method.
type FuncTypeExpr struct {
	ExprBase

	Params  []*Param
	Results []*Param
}

// MethodSig represents one method signature inside an interface type.
type MethodSig struct {
	NodeBase

	Name *Ident
	Type *FuncTypeExpr
}

// InterfaceTypeExpr represents an interface type expression.
type InterfaceTypeExpr struct {
	ExprBase

	Methods []*MethodSig
}

// -----------------------------------------------------------------------------

// Unparen returns the expression with any enclosing parentheses removed.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}

		e = p.X
	}
}
