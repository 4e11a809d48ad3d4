package ast

// Decl represents a constant, variable, type, or function declaration.  All
// declaration nodes implement the `Decl` interface.
type Decl interface {
	Node

	declNode()
}

// DeclBase is the base struct for all declaration nodes.
type DeclBase struct {
	NodeBase
}

func (db DeclBase) declNode() {}

// -----------------------------------------------------------------------------

// ValueSpec represents one name group within a constant or variable
// declaration: a list of names with an optional type and an optional list of
// initializer expressions.
type ValueSpec struct {
	NodeBase

	Names  []*Ident
	Type   Expr
	Values []Expr
}

// ConstDecl represents a constant declaration.  Specs with no values inherit
// the previous spec's type and values, with iota counting the spec index.
type ConstDecl struct {
	DeclBase

	Specs []*ValueSpec
}

// VarDecl represents a variable declaration.
type VarDecl struct {
	DeclBase

	Specs []*ValueSpec
}

// TypeDecl represents a type declaration `type Name Target`.
type TypeDecl struct {
	DeclBase

	Name   *Ident
	Target Expr
}

// FuncDecl represents a function or method declaration.
type FuncDecl struct {
	DeclBase

	// Recv is the method receiver, or nil for a plain function.
	Recv *Param

	Name      *Ident
	Signature *FuncTypeExpr

	// Body is nil for functions declared without a body.
	Body *BlockStmt
}
