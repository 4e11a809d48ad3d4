package check

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/report"
	"github.com/ndrsllwngr/goscript/sem"
	"github.com/ndrsllwngr/goscript/syntax"
)

// importerFunc adapts a function to the Importer interface.
type importerFunc func(path string) (sem.PackageKey, error)

func (f importerFunc) Import(path string) (sem.PackageKey, error) {
	return f(path)
}

// testCheck bundles the results of checking a set of source strings.
type testCheck struct {
	arena      *sem.Arena
	pkg        sem.PackageKey
	info       *TypeInfo
	errors     *report.ErrorList
	softErrors *report.ErrorList
	files      []*ast.File
	err        error
}

func parseTestFiles(t *testing.T, srcs ...string) []*ast.File {
	t.Helper()

	files := make([]*ast.File, len(srcs))
	for i, src := range srcs {
		name := fmt.Sprintf("file%d.gs", i+1)
		file, err := syntax.ParseFile(name, name, strings.NewReader(src))
		be.Err(t, err, nil)
		files[i] = file
	}

	return files
}

func checkFilesWith(t *testing.T, arena *sem.Arena, imp Importer, srcs ...string) *testCheck {
	t.Helper()

	tc := &testCheck{
		arena:      arena,
		info:       NewTypeInfo(),
		errors:     report.NewErrorList(),
		softErrors: report.NewErrorList(),
	}

	tc.files = parseTestFiles(t, srcs...)
	tc.pkg = arena.NewPackage("main", "")

	checker := NewChecker(arena, &Config{Importer: imp}, tc.pkg, tc.info, tc.errors, tc.softErrors)
	tc.err = checker.Check(tc.files)
	return tc
}

func checkFiles(t *testing.T, srcs ...string) *testCheck {
	t.Helper()
	return checkFilesWith(t, sem.NewArena(), nil, srcs...)
}

// obj resolves a name in the checked package's scope.
func (tc *testCheck) obj(name string) *sem.Object {
	key := tc.arena.Scope(tc.arena.Pkg(tc.pkg).Scope()).Lookup(name)
	if key == sem.NoObj {
		return nil
	}

	return tc.arena.Obj(key)
}

func (tc *testCheck) messages(el *report.ErrorList) []string {
	msgs := []string{}
	for _, d := range el.Diagnostics() {
		msgs = append(msgs, d.Message)
	}

	return msgs
}

func containsMessage(msgs []string, substr string) bool {
	for _, msg := range msgs {
		if strings.Contains(msg, substr) {
			return true
		}
	}

	return false
}

// -----------------------------------------------------------------------------

func TestPackageNameMismatchIsFatal(t *testing.T) {
	tc := checkFiles(t, "package a\n", "package b\n")

	be.True(t, tc.err != nil)
	be.True(t, strings.Contains(tc.err.Error(), "expected a, found b"))

	// A fatal condition stops checking before the package completes.
	be.True(t, !tc.arena.Pkg(tc.pkg).Complete())

	// The fatal diagnostic is also recorded in the hard-error list.
	be.True(t, containsMessage(tc.messages(tc.errors), "expected a, found b"))
}

func TestBlankPackageNameIsFatal(t *testing.T) {
	tc := checkFiles(t, "package _\n")

	be.True(t, tc.err != nil)
	be.True(t, strings.Contains(tc.err.Error(), "invalid package name _"))
	be.True(t, containsMessage(tc.messages(tc.errors), "invalid package name _"))
}

func TestLaterBlankPackageNameIsMismatch(t *testing.T) {
	tc := checkFiles(t, "package a\n", "package _\n")

	// The blank-name test applies only to the file that names the package; a
	// later blank clause mismatches that name like any other.
	be.True(t, tc.err != nil)
	be.True(t, strings.Contains(tc.err.Error(), "expected a, found _"))
	be.True(t, containsMessage(tc.messages(tc.errors), "expected a, found _"))
}

func TestPackageCompletesDespiteErrors(t *testing.T) {
	tc := checkFiles(t, "package main\n\nvar x = zog\n")

	be.Err(t, tc.err, nil)
	be.Equal(t, tc.arena.Pkg(tc.pkg).Name(), "main")
	be.True(t, tc.arena.Pkg(tc.pkg).Complete())

	be.Equal(t, tc.messages(tc.errors), []string{"undefined: zog"})
	be.Equal(t, tc.obj("x").Type, tc.arena.Universe.Invalid)
}

// -----------------------------------------------------------------------------

func TestConstIota(t *testing.T) {
	tc := checkFiles(t, `package main

const (
	A = iota
	B
	C
)
`)

	be.Err(t, tc.err, nil)
	be.True(t, tc.errors.IsEmpty())

	be.Equal(t, tc.obj("A").ConstValue(), sem.MakeInt(0))
	be.Equal(t, tc.obj("B").ConstValue(), sem.MakeInt(1))
	be.Equal(t, tc.obj("C").ConstValue(), sem.MakeInt(2))

	// Constants without a declared type keep their untyped type.
	be.Equal(t, tc.obj("A").Type, tc.arena.Universe.Basic(sem.UntypedInt))
}

func TestConstDeclaredType(t *testing.T) {
	tc := checkFiles(t, "package main\n\nconst size int = 3 * 7\n")

	be.True(t, tc.errors.IsEmpty())
	be.Equal(t, tc.obj("size").Type, tc.arena.Universe.Basic(sem.Int))
	be.Equal(t, tc.obj("size").ConstValue(), sem.MakeInt(21))
}

func TestConstRequiresConstantInit(t *testing.T) {
	tc := checkFiles(t, "package main\n\nvar x = 1\n\nconst c = x\n")

	be.True(t, containsMessage(tc.messages(tc.errors), "is not constant"))
}

func TestVarDefaultTypes(t *testing.T) {
	tc := checkFiles(t, `package main

var i = 42
var f = 1.5
var s = "hi"
var b = true
`)

	be.True(t, tc.errors.IsEmpty())
	be.Equal(t, tc.obj("i").Type, tc.arena.Universe.Basic(sem.Int))
	be.Equal(t, tc.obj("f").Type, tc.arena.Universe.Basic(sem.Float64))
	be.Equal(t, tc.obj("s").Type, tc.arena.Universe.Basic(sem.Str))
	be.Equal(t, tc.obj("b").Type, tc.arena.Universe.Basic(sem.Bool))
}

// -----------------------------------------------------------------------------

func TestDefsStartAtDeclaration(t *testing.T) {
	tc := checkFiles(t, `package main

var answer = 1

func double() int {
	return answer * 2
}
`)

	be.True(t, tc.errors.IsEmpty())

	var defs, uses int
	for id, objKey := range tc.info.Defs {
		if id.Name == "answer" {
			defs++
			be.True(t, id.Span().Same(tc.arena.Obj(objKey).Pos))
		}
	}

	for id, objKey := range tc.info.Uses {
		if id.Name == "answer" {
			uses++
			be.True(t, !id.Span().Same(tc.arena.Obj(objKey).Pos))
		}
	}

	be.Equal(t, defs, 1)
	be.Equal(t, uses, 1)
}

func TestRedeclarationKeepsFirstObject(t *testing.T) {
	tc := checkFiles(t, "package main\n\nvar x = 1\nvar x = 2\n")

	be.True(t, containsMessage(tc.messages(tc.errors), "x redeclared in this block"))

	// The surviving binding is the first declaration.
	be.Equal(t, tc.obj("x").Pos.StartLine, 2)
}

// -----------------------------------------------------------------------------

func TestShortVarDeclRebindsExisting(t *testing.T) {
	tc := checkFiles(t, `package main

func f() int {
	x := 1
	x, y := 2, 3
	return x + y
}
`)

	be.True(t, tc.errors.IsEmpty())

	// The second x does not declare a new variable: one definition, and the
	// rebinding occurrence is recorded as a use.
	var defs, uses int
	for id := range tc.info.Defs {
		if id.Name == "x" {
			defs++
		}
	}

	for id := range tc.info.Uses {
		if id.Name == "x" && id.Span().StartLine == 4 && id.Span().StartCol == 1 {
			uses++
		}
	}

	be.Equal(t, defs, 1)
	be.Equal(t, uses, 1)
}

func TestShortVarDeclNeedsNewVariable(t *testing.T) {
	tc := checkFiles(t, `package main

func f() {
	x := 1
	x := 2
}
`)

	be.Equal(t, tc.messages(tc.errors), []string{"no new variables on left side of :="})

	d := tc.errors.Diagnostics()[0]
	be.Equal(t, d.Span.String(), "5:7")
}

func TestShortVarDeclBlankIsAlwaysNew(t *testing.T) {
	tc := checkFiles(t, `package main

func f() {
	x := 1
	x, _ := 2, 3
}
`)

	// The blank identifier does not count as a new variable.
	be.Equal(t, tc.messages(tc.errors), []string{"no new variables on left side of :="})
}

// -----------------------------------------------------------------------------

func TestFakeImportSuppressesLookupFailures(t *testing.T) {
	tc := checkFiles(t, `package main

import "nosuch/pkg"

var a = pkg.Missing
var b = pkg.Other(1, "two")
`)

	// The broken import is diagnosed exactly once; everything reached through
	// the fake package stays silent.
	be.Equal(t, tc.messages(tc.errors), []string{"could not import nosuch/pkg (no importer)"})
	be.True(t, tc.softErrors.IsEmpty())

	be.Equal(t, tc.obj("a").Type, tc.arena.Universe.Invalid)
	be.Equal(t, tc.obj("b").Type, tc.arena.Universe.Invalid)
}

func TestUnusedImports(t *testing.T) {
	arena := sem.NewArena()
	fmtKey := arena.NewPackage("fmt", "fmt")
	arena.Pkg(fmtKey).MarkComplete()

	imp := importerFunc(func(path string) (sem.PackageKey, error) {
		if path == "fmt" {
			return fmtKey, nil
		}

		return sem.NoPkg, fmt.Errorf("unknown path %s", path)
	})

	tc := checkFilesWith(t, arena, imp, `package main

import "fmt"
import f "fmt"
`)

	be.True(t, tc.errors.IsEmpty())

	msgs := tc.messages(tc.softErrors)
	be.Equal(t, len(msgs), 2)
	be.True(t, containsMessage(msgs, `"fmt" imported and not used as f`))
	be.True(t, containsMessage(msgs, `"fmt" imported and not used`))
}

func TestDotImport(t *testing.T) {
	arena := sem.NewArena()
	mathx := arena.NewPackage("mathx", "mathx")

	scope := arena.Scope(arena.Pkg(mathx).Scope())
	pi := arena.InsertObject(sem.NewConst(nil, mathx, "Pi", arena.Universe.Basic(sem.UntypedFloat), sem.MakeFloat(3.14159)))
	scope.Insert("Pi", pi)
	hidden := arena.InsertObject(sem.NewConst(nil, mathx, "hidden", arena.Universe.Basic(sem.UntypedInt), sem.MakeInt(1)))
	scope.Insert("hidden", hidden)
	arena.Pkg(mathx).MarkComplete()

	imp := importerFunc(func(path string) (sem.PackageKey, error) {
		return mathx, nil
	})

	tc := checkFilesWith(t, arena, imp, `package main

import . "mathx"

var tau = Pi * 2
`)

	be.True(t, tc.errors.IsEmpty())
	be.True(t, tc.softErrors.IsEmpty())
	be.Equal(t, tc.obj("tau").Type, tc.arena.Universe.Basic(sem.Float64))

	// Only exported names enter the file scope.
	be.True(t, tc.obj("hidden") == nil)
}

func TestUnusedDotImport(t *testing.T) {
	arena := sem.NewArena()
	mathx := arena.NewPackage("mathx", "mathx")
	pi := arena.InsertObject(sem.NewConst(nil, mathx, "Pi", arena.Universe.Basic(sem.UntypedFloat), sem.MakeFloat(3.14159)))
	arena.Scope(arena.Pkg(mathx).Scope()).Insert("Pi", pi)
	arena.Pkg(mathx).MarkComplete()

	imp := importerFunc(func(path string) (sem.PackageKey, error) {
		return mathx, nil
	})

	tc := checkFilesWith(t, arena, imp, "package main\n\nimport . \"mathx\"\n")

	be.True(t, tc.errors.IsEmpty())
	be.Equal(t, tc.messages(tc.softErrors), []string{`"mathx" imported and not used`})
}

func TestDotImportUsedInOneFileOnly(t *testing.T) {
	arena := sem.NewArena()
	mathx := arena.NewPackage("mathx", "mathx")
	pi := arena.InsertObject(sem.NewConst(nil, mathx, "Pi", arena.Universe.Basic(sem.UntypedFloat), sem.MakeFloat(3.14159)))
	arena.Scope(arena.Pkg(mathx).Scope()).Insert("Pi", pi)
	arena.Pkg(mathx).MarkComplete()

	imp := importerFunc(func(path string) (sem.PackageKey, error) {
		return mathx, nil
	})

	tc := checkFilesWith(t, arena, imp,
		"package main\n\nimport . \"mathx\"\n\nvar tau = Pi * 2\n",
		"package main\n\nimport . \"mathx\"\n")

	be.True(t, tc.errors.IsEmpty())

	// Using Pi in the first file retires that file's import only; the second
	// file's dot import stays unused.
	diags := tc.softErrors.Diagnostics()
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].ReprPath, "file2.gs")
	be.Equal(t, diags[0].Message, `"mathx" imported and not used`)
}

func TestUnusedImportsInDeclarationOrder(t *testing.T) {
	arena := sem.NewArena()
	pkgs := map[string]sem.PackageKey{}
	for _, name := range []string{"zebra", "alpha"} {
		key := arena.NewPackage(name, name)
		arena.Pkg(key).MarkComplete()
		pkgs[name] = key
	}

	imp := importerFunc(func(path string) (sem.PackageKey, error) {
		return pkgs[path], nil
	})

	tc := checkFilesWith(t, arena, imp, "package main\n\nimport \"zebra\"\nimport \"alpha\"\n")

	be.True(t, tc.errors.IsEmpty())

	// Diagnostics follow the declaration order of the imports, not the
	// alphabetical order of the file scope.
	be.Equal(t, tc.messages(tc.softErrors), []string{
		`"zebra" imported and not used`,
		`"alpha" imported and not used`,
	})
}

func TestQualifiedIdent(t *testing.T) {
	arena := sem.NewArena()
	mathx := arena.NewPackage("mathx", "mathx")
	pi := arena.InsertObject(sem.NewConst(nil, mathx, "Pi", arena.Universe.Basic(sem.UntypedFloat), sem.MakeFloat(3.14159)))
	arena.Scope(arena.Pkg(mathx).Scope()).Insert("Pi", pi)
	secret := arena.InsertObject(sem.NewVar(nil, mathx, "secret", arena.Universe.Basic(sem.Int)))
	arena.Scope(arena.Pkg(mathx).Scope()).Insert("secret", secret)
	arena.Pkg(mathx).MarkComplete()

	imp := importerFunc(func(path string) (sem.PackageKey, error) {
		return mathx, nil
	})

	tc := checkFilesWith(t, arena, imp, `package main

import "mathx"

var a = mathx.Pi
var b = mathx.secret
var c = mathx.Absent
`)

	msgs := tc.messages(tc.errors)
	be.True(t, containsMessage(msgs, "secret not exported by package mathx"))
	be.True(t, containsMessage(msgs, "Absent not declared by package mathx"))
	be.Equal(t, tc.obj("a").Type, tc.arena.Universe.Basic(sem.Float64))
}

// -----------------------------------------------------------------------------

func TestTypeDeclAndMethods(t *testing.T) {
	tc := checkFiles(t, `package main

type Celsius float64

func (c Celsius) Double() Celsius {
	return c + c
}

var boiling Celsius = 100
var twice = boiling.Double()
`)

	be.True(t, tc.errors.IsEmpty())

	celsius := tc.obj("Celsius")
	be.Equal(t, tc.arena.Type(celsius.Type).Kind, sem.NamedType)
	be.Equal(t, tc.arena.Type(celsius.Type).Underlying(), tc.arena.Universe.Basic(sem.Float64))
	be.Equal(t, len(tc.arena.Type(celsius.Type).Methods()), 1)

	be.Equal(t, tc.obj("twice").Type, celsius.Type)
}

func TestRecursiveTypeBehindIndirectionIsLegal(t *testing.T) {
	tc := checkFiles(t, `package main

type Tree []Tree
type Link *Link
type Index map[string]Index
`)

	be.True(t, tc.errors.IsEmpty())
	be.Equal(t, tc.arena.Type(tc.arena.Type(tc.obj("Tree").Type).Underlying()).Kind, sem.SliceType)
}

func TestInvalidRecursiveType(t *testing.T) {
	tc := checkFiles(t, "package main\n\ntype Loop Loop\n")

	be.True(t, containsMessage(tc.messages(tc.errors), "invalid recursive type Loop"))
	be.Equal(t, tc.arena.Type(tc.obj("Loop").Type).Underlying(), tc.arena.Universe.Invalid)
}

func TestInitializationCycle(t *testing.T) {
	tc := checkFiles(t, "package main\n\nvar a = b\nvar b = a\n")

	msgs := tc.messages(tc.errors)
	be.Equal(t, len(msgs), 1)
	be.True(t, strings.Contains(msgs[0], "initialization cycle"))

	// Cycle members are still placed, in source order.
	be.Equal(t, len(tc.info.InitOrder), 2)
	be.Equal(t, tc.arena.Obj(tc.info.InitOrder[0].Lhs[0]).Name, "a")
	be.Equal(t, tc.arena.Obj(tc.info.InitOrder[1].Lhs[0]).Name, "b")
}

func TestSelfCycleThroughFunction(t *testing.T) {
	tc := checkFiles(t, `package main

var a = f()

func f() int {
	return a
}
`)

	msgs := tc.messages(tc.errors)
	be.Equal(t, len(msgs), 1)
	be.True(t, strings.Contains(msgs[0], "initialization cycle for a"))
	be.True(t, strings.Contains(msgs[0], "a refers to f"))
	be.True(t, strings.Contains(msgs[0], "f refers to a"))
}

// -----------------------------------------------------------------------------

func TestLabels(t *testing.T) {
	tc := checkFiles(t, `package main

func f(n int) {
	goto done
	for i := 0; i < n; i = i + 1 {
		continue
	}

done:
	return
}
`)

	// Goto may target a label declared later in the body.
	be.True(t, tc.errors.IsEmpty())
	be.True(t, tc.softErrors.IsEmpty())
}

func TestUnusedLabelIsSoft(t *testing.T) {
	tc := checkFiles(t, `package main

func f() {
unused:
	return
}
`)

	be.True(t, tc.errors.IsEmpty())
	be.Equal(t, tc.messages(tc.softErrors), []string{"label unused defined and not used"})
}

func TestBranchOutsideLoop(t *testing.T) {
	tc := checkFiles(t, `package main

func f() {
	break
}

func g() {
	continue
}
`)

	msgs := tc.messages(tc.errors)
	be.True(t, containsMessage(msgs, "break not in for statement"))
	be.True(t, containsMessage(msgs, "continue not in for statement"))
}

func TestValueEvaluatedButNotUsed(t *testing.T) {
	tc := checkFiles(t, `package main

func f() {
	1 + 2
	println(3)
}
`)

	be.True(t, tc.errors.IsEmpty())
	be.Equal(t, tc.messages(tc.softErrors), []string{"1 + 2 evaluated but not used"})
}
