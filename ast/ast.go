package ast

import "github.com/ndrsllwngr/goscript/report"

// The abstract interface for all AST nodes.
type Node interface {
	// The text span of the AST node.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type NodeBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewNodeBaseOn creates a new AST node base with the given span.
func NewNodeBaseOn(span *report.TextSpan) NodeBase {
	return NodeBase{span: span}
}

// NewNodeBaseOver creates a new AST node base spanning over two spans.
func NewNodeBaseOver(start, end *report.TextSpan) NodeBase {
	return NodeBase{span: report.NewSpanOver(start, end)}
}

func (nb NodeBase) Span() *report.TextSpan {
	return nb.span
}

// -----------------------------------------------------------------------------

// File represents a parsed source file: its package clause, its import
// declarations, and its top level declarations.
type File struct {
	NodeBase

	// AbsPath is the absolute path to the source file.
	AbsPath string

	// ReprPath is the representative path of the source file: the form used in
	// diagnostic output.
	ReprPath string

	// PkgName is the identifier of the package clause.
	PkgName *Ident

	// Imports is the list of import declarations in source order.
	Imports []*ImportDecl

	// Decls is the list of top level declarations in source order.
	Decls []Decl
}

// ImportDecl represents a single import declaration.
type ImportDecl struct {
	NodeBase

	// Alias is the local name of the import: nil for a plain import, or an
	// identifier which may be a rename, the dot `.` of a dot import, or the
	// blank identifier.
	Alias *Ident

	// Path is the unquoted import path.
	Path string

	// PathSpan is the span of the quoted import path literal.
	PathSpan *report.TextSpan
}
