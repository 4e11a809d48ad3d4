package sem

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestUniversePredeclared(t *testing.T) {
	a := NewArena()
	scope := a.Scope(a.Universe.Scope)

	for _, name := range []string{"int", "bool", "string", "byte", "rune", "true", "false", "iota", "nil", "len", "make", "append"} {
		be.True(t, scope.Lookup(name) != NoObj)
	}

	// Untyped kinds exist as types but carry no predeclared name.
	be.True(t, a.Universe.Basic(UntypedInt) != NoType)
	be.Equal(t, scope.Lookup("untyped int"), NoObj)

	be.Equal(t, a.Obj(scope.Lookup("true")).ConstValue(), MakeBool(true))
	be.Equal(t, a.Obj(a.Universe.Nil).Kind, NilObj)
	be.Equal(t, a.Obj(scope.Lookup("len")).Builtin(), BuiltinLen)

	// byte and rune alias the predeclared integer types.
	be.Equal(t, a.Obj(scope.Lookup("byte")).Type, a.Universe.Basic(Uint8))
	be.Equal(t, a.Obj(scope.Lookup("rune")).Type, a.Universe.Basic(Int32))
}

func TestArenaKeysAreStable(t *testing.T) {
	a := NewArena()

	obj := a.InsertObject(NewVar(nil, NoPkg, "x", NoType))
	typ := a.InsertType(NewSlice(a.Universe.Basic(Int)))

	for i := 0; i < 100; i++ {
		a.InsertObject(NewVar(nil, NoPkg, "y", NoType))
		a.InsertType(NewPointer(a.Universe.Basic(Bool)))
	}

	be.Equal(t, a.Obj(obj).Name, "x")
	be.Equal(t, a.Type(typ).Kind, SliceType)
}

func TestNewPackageScopeChainsToUniverse(t *testing.T) {
	a := NewArena()
	pkgKey := a.NewPackage("fmt", "fmt")
	pkg := a.Pkg(pkgKey)

	be.Equal(t, a.Scope(pkg.Scope()).Parent(), a.Universe.Scope)
	be.True(t, !pkg.Complete())

	pkg.MarkComplete()
	be.True(t, pkg.Complete())
	be.Equal(t, pkg.String(), "package fmt (fmt)")
}

func TestUnsafePackage(t *testing.T) {
	a := NewArena()
	unsafe := a.Pkg(a.Universe.Unsafe)

	be.Equal(t, unsafe.Path(), "unsafe")
	be.Equal(t, unsafe.Name(), "unsafe")
}

func TestTypeString(t *testing.T) {
	a := NewArena()
	intKey := a.Universe.Basic(Int)
	strKey := a.Universe.Basic(Str)

	be.Equal(t, a.TypeString(intKey), "int")
	be.Equal(t, a.TypeString(a.InsertType(NewPointer(intKey))), "*int")
	be.Equal(t, a.TypeString(a.InsertType(NewSlice(strKey))), "[]string")
	be.Equal(t, a.TypeString(a.InsertType(NewMap(strKey, intKey))), "map[string]int")
	be.Equal(t, a.TypeString(NoType), "<unknown>")

	name := a.InsertObject(NewTypeName(nil, NoPkg, "Celsius", NoType))
	named := a.InsertType(NewNamed(name))
	a.Obj(name).Type = named
	be.Equal(t, a.TypeString(named), "Celsius")
}

func TestDeclInfoDeps(t *testing.T) {
	a := NewArena()
	d := NewDeclInfo(0)

	x := a.InsertObject(NewVar(nil, NoPkg, "x", NoType))
	y := a.InsertObject(NewVar(nil, NoPkg, "y", NoType))

	be.True(t, !d.HasDep(x))
	d.AddDep(x)
	d.AddDep(x)
	d.AddDep(y)

	be.True(t, d.HasDep(x))
	be.True(t, d.HasDep(y))
	be.Equal(t, len(d.Deps()), 2)
}
