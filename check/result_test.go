package check

import (
	"testing"

	"github.com/nalgeon/be"
	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/sem"
)

func TestRecordedConstantExpression(t *testing.T) {
	tc := checkFiles(t, "package main\n\nvar n = 2 + 3\n")

	be.True(t, tc.errors.IsEmpty())

	rhs := tc.files[0].Decls[0].(*ast.VarDecl).Specs[0].Values[0]
	tv, ok := tc.info.Types[rhs]
	be.True(t, ok)
	be.Equal(t, tv.Mode, ConstantMode)
	be.Equal(t, tv.Value, sem.MakeInt(5))

	// The expression was re-typed from untyped int when the variable's type
	// was defaulted.
	be.Equal(t, tv.Type, tc.arena.Universe.Basic(sem.Int))
	be.True(t, tv.IsValue())
}

func TestRecordedValueIsNeverAbsent(t *testing.T) {
	tc := checkFiles(t, `package main

var xs = make([]int, 3)
`)

	be.True(t, tc.errors.IsEmpty())

	rhs := tc.files[0].Decls[0].(*ast.VarDecl).Specs[0].Values[0]
	tv, ok := tc.info.Types[rhs]
	be.True(t, ok)
	be.Equal(t, tv.Mode, ValueMode)

	// Non-constant expressions carry an unknown value rather than no value.
	be.True(t, !tv.Value.IsKnown())
}

func TestBuiltinSignatureRecordedThroughParens(t *testing.T) {
	tc := checkFiles(t, "package main\n\nvar n = ((len))(\"hi\")\n")

	be.True(t, tc.errors.IsEmpty())
	be.Equal(t, tc.obj("n").Type, tc.arena.Universe.Basic(sem.Int))

	call := tc.files[0].Decls[0].(*ast.VarDecl).Specs[0].Values[0].(*ast.CallExpr)

	// The call-site signature is recorded for the function expression and
	// every parenthesized form of it.
	outer := call.Fn.(*ast.ParenExpr)
	inner := outer.X.(*ast.ParenExpr)
	id := inner.X.(*ast.Ident)

	for _, e := range []ast.Expr{outer, inner, id} {
		tv, ok := tc.info.Types[e]
		be.True(t, ok)
		be.Equal(t, tv.Mode, BuiltinMode)
		be.Equal(t, tc.arena.Type(tv.Type).Kind, sem.SignatureType)
	}

	// len of a constant string folds to a constant.
	tv := tc.info.Types[ast.Expr(call)]
	be.Equal(t, tv.Mode, ConstantMode)
	be.Equal(t, tv.Value, sem.MakeInt(2))
}

func TestCommaOkRecording(t *testing.T) {
	tc := checkFiles(t, `package main

func f(m map[string]int) int {
	v, ok := (m["k"])
	if ok {
		return v
	}

	return 0
}
`)

	be.True(t, tc.errors.IsEmpty())

	paren := tc.files[0].Decls[0].(*ast.FuncDecl).Body.Stmts[0].(*ast.ShortVarDecl).Values[0].(*ast.ParenExpr)
	index := paren.X.(*ast.IndexExpr)

	// Both the parenthesized form and the index expression are rewritten to a
	// two-value tuple.
	for _, e := range []ast.Expr{paren, index} {
		tv, ok := tc.info.Types[e]
		be.True(t, ok)
		be.Equal(t, tv.Mode, CommaOKMode)

		tuple := tc.arena.Type(tv.Type)
		be.Equal(t, tuple.Kind, sem.TupleType)
		be.Equal(t, tuple.TupleLen(), 2)

		vars := tuple.TupleVars()
		be.Equal(t, tc.arena.Obj(vars[0]).Type, tc.arena.Universe.Basic(sem.Int))
		be.Equal(t, tc.arena.Obj(vars[1]).Type, tc.arena.Universe.Basic(sem.UntypedBool))
	}

	// The declared ok variable gets the defaulted bool type.
	for id, objKey := range tc.info.Defs {
		if id.Name == "ok" {
			be.Equal(t, tc.arena.Obj(objKey).Type, tc.arena.Universe.Basic(sem.Bool))
		}
	}
}

func TestRecordedScopes(t *testing.T) {
	tc := checkFiles(t, `package main

func f(n int) int {
	if n > 0 {
		return n
	}

	for i := 0; i < 3; i = i + 1 {
		n = n + i
	}

	return n
}
`)

	be.True(t, tc.errors.IsEmpty())

	// The file, the function body, the if statement, and the for statement
	// each open a recorded scope.
	file := tc.files[0]
	_, ok := tc.info.Scopes[file]
	be.True(t, ok)

	body := file.Decls[0].(*ast.FuncDecl).Body
	bodyScope, ok := tc.info.Scopes[body]
	be.True(t, ok)
	be.Equal(t, tc.arena.Scope(bodyScope).Lookup("n") != sem.NoObj, true)

	_, ok = tc.info.Scopes[body.Stmts[0]]
	be.True(t, ok)
	_, ok = tc.info.Scopes[body.Stmts[1]]
	be.True(t, ok)
}

func TestRecordedImplicits(t *testing.T) {
	tc := checkFiles(t, `package main

import "nosuch"

func apply(f func(int) int, n int) int {
	return f(n)
}
`)

	// The plain import declares its package name without a defining
	// identifier.
	imp := tc.files[0].Imports[0]
	obj, ok := tc.info.Implicits[imp]
	be.True(t, ok)
	be.Equal(t, tc.arena.Obj(obj).Kind, sem.PkgNameObj)

	// So does an anonymous parameter in a function type.
	params := tc.files[0].Decls[0].(*ast.FuncDecl).Signature.Params
	inner := params[0].Type.(*ast.FuncTypeExpr)
	_, ok = tc.info.Implicits[inner.Params[0]]
	be.True(t, ok)
}

func TestSelectionRecordsUse(t *testing.T) {
	tc := checkFiles(t, `package main

type Counter int

func (c Counter) Next() Counter {
	return c + 1
}

var start Counter
var next = start.Next()
`)

	be.True(t, tc.errors.IsEmpty())

	var sel *ast.SelectorExpr
	for e := range tc.info.Selections {
		sel = e
	}

	be.True(t, sel != nil)
	selection := tc.info.Selections[sel]
	be.Equal(t, tc.arena.Obj(selection.Obj).Name, "Next")
	be.Equal(t, selection.Recv, tc.obj("Counter").Type)

	// The selected identifier is also recorded as a use of the method.
	be.Equal(t, tc.info.Uses[sel.Sel], selection.Obj)
}

func TestObjectOfPrefersDefs(t *testing.T) {
	tc := checkFiles(t, "package main\n\nvar x = 1\n\nvar y = x\n")

	be.True(t, tc.errors.IsEmpty())

	for id := range tc.info.Defs {
		if id.Name == "x" {
			be.Equal(t, tc.info.ObjectOf(id), tc.info.Defs[id])
		}
	}

	for id := range tc.info.Uses {
		if id.Name == "x" {
			be.Equal(t, tc.info.ObjectOf(id), tc.info.Uses[id])
		}
	}
}
