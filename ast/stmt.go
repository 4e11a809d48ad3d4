package ast

// Stmt represents a statement.  All statement nodes implement the `Stmt`
// interface.
type Stmt interface {
	Node

	stmtNode()
}

// StmtBase is the base struct for all statement nodes.
type StmtBase struct {
	NodeBase
}

func (sb StmtBase) stmtNode() {}

// -----------------------------------------------------------------------------

// BlockStmt represents a braced block of statements.
type BlockStmt struct {
	StmtBase

	Stmts []Stmt
}

// DeclStmt represents a local constant, variable, or type declaration used in
// statement position.
type DeclStmt struct {
	StmtBase

	Decl Decl
}

// ShortVarDecl represents a short variable declaration `x, y := ...`.
type ShortVarDecl struct {
	StmtBase

	Names  []*Ident
	Values []Expr
}

// AssignStmt represents an assignment `x, y = ...`.
type AssignStmt struct {
	StmtBase

	Lhs []Expr
	Rhs []Expr
}

// ExprStmt represents an expression used in statement position.
type ExprStmt struct {
	StmtBase

	X Expr
}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	StmtBase

	Results []Expr
}

// IfStmt represents an if statement with an optional init statement and an
// optional else branch (either a block or another if statement).
type IfStmt struct {
	StmtBase

	Init Stmt
	Cond Expr
	Body *BlockStmt
	Else Stmt
}

// ForStmt represents a for loop.  Any of the three header clauses may be nil.
type ForStmt struct {
	StmtBase

	Init Stmt
	Cond Expr
	Post Stmt
	Body *BlockStmt
}

// LabeledStmt represents a labeled statement `L: stmt`.
type LabeledStmt struct {
	StmtBase

	Label *Ident
	Stmt  Stmt
}

// Enumeration of branch statement kinds.
const (
	BreakBranch = iota
	ContinueBranch
	GotoBranch
)

// BranchStmt represents a break, continue, or goto statement.
type BranchStmt struct {
	StmtBase

	// Kind is one of the enumerated branch kinds.
	Kind int

	// Label is the optional branch target.  It is required for goto.
	Label *Ident
}
