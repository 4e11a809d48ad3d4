package sem

import (
	"testing"

	"github.com/nalgeon/be"
	"github.com/ndrsllwngr/goscript/report"
)

func spanAt(line, col int) *report.TextSpan {
	return &report.TextSpan{StartLine: line, StartCol: col, EndLine: line, EndCol: col}
}

func TestScopeInsertKeepsFirstBinding(t *testing.T) {
	a := NewArena()
	scopeKey := a.NewScope(a.Universe.Scope, "block")
	scope := a.Scope(scopeKey)

	first := a.InsertObject(NewVar(spanAt(0, 0), NoPkg, "x", NoType))
	second := a.InsertObject(NewVar(spanAt(1, 0), NoPkg, "x", NoType))

	be.Equal(t, scope.Insert("x", first), NoObj)
	be.Equal(t, scope.Insert("x", second), first)

	// The original binding survives the attempted redeclaration.
	be.Equal(t, scope.Lookup("x"), first)
	be.Equal(t, scope.Len(), 1)
}

func TestScopeBlankNeverInserted(t *testing.T) {
	a := NewArena()
	scopeKey := a.NewScope(a.Universe.Scope, "block")
	scope := a.Scope(scopeKey)

	obj := a.InsertObject(NewVar(spanAt(0, 0), NoPkg, BlankName, NoType))
	be.Equal(t, scope.Insert(BlankName, obj), NoObj)
	be.Equal(t, scope.Insert(BlankName, obj), NoObj)
	be.Equal(t, scope.Lookup(BlankName), NoObj)
	be.Equal(t, scope.Len(), 0)
}

func TestScopeLookupIsNotRecursive(t *testing.T) {
	a := NewArena()
	outerKey := a.NewScope(a.Universe.Scope, "outer")
	innerKey := a.NewScope(outerKey, "inner")

	obj := a.InsertObject(NewVar(spanAt(0, 0), NoPkg, "x", NoType))
	a.Scope(outerKey).Insert("x", obj)

	be.Equal(t, a.Scope(innerKey).Lookup("x"), NoObj)
	be.Equal(t, a.Scope(outerKey).Lookup("x"), obj)
}

func TestLookupParentWalksToUniverse(t *testing.T) {
	a := NewArena()
	outerKey := a.NewScope(a.Universe.Scope, "outer")
	innerKey := a.NewScope(outerKey, "inner")

	scopeKey, obj := a.LookupParent(innerKey, "int")
	be.Equal(t, scopeKey, a.Universe.Scope)
	be.Equal(t, a.Obj(obj).Kind, TypeNameObj)

	_, missing := a.LookupParent(innerKey, "nosuchname")
	be.Equal(t, missing, NoObj)
}

func TestLookupParentShadowing(t *testing.T) {
	a := NewArena()
	outerKey := a.NewScope(a.Universe.Scope, "outer")
	innerKey := a.NewScope(outerKey, "inner")

	shadow := a.InsertObject(NewVar(spanAt(0, 0), NoPkg, "int", NoType))
	a.Scope(outerKey).Insert("int", shadow)

	scopeKey, obj := a.LookupParent(innerKey, "int")
	be.Equal(t, scopeKey, outerKey)
	be.Equal(t, obj, shadow)
}

func TestScopeNamesAreSorted(t *testing.T) {
	a := NewArena()
	scopeKey := a.NewScope(a.Universe.Scope, "block")
	scope := a.Scope(scopeKey)

	for _, name := range []string{"c", "a", "b"} {
		scope.Insert(name, a.InsertObject(NewVar(spanAt(0, 0), NoPkg, name, NoType)))
	}

	be.Equal(t, scope.Names(), []string{"a", "b", "c"})
}
