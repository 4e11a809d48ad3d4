package syntax

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/ndrsllwngr/goscript/ast"
)

func parseSrc(t *testing.T, src string) *ast.File {
	t.Helper()

	file, err := ParseFile("/tmp/test.gs", "test.gs", strings.NewReader(src))
	be.Err(t, err, nil)
	return file
}

func TestParsePackageClause(t *testing.T) {
	file := parseSrc(t, "package main\n")
	be.Equal(t, file.PkgName.Name, "main")
	be.Equal(t, file.ReprPath, "test.gs")
	be.Equal(t, len(file.Decls), 0)
}

func TestParseImports(t *testing.T) {
	file := parseSrc(t, `package main

import "fmt"
import f "fmt"
import . "strings"
import (
	"sort"
	_ "unsafe"
)
`)

	be.Equal(t, len(file.Imports), 5)
	be.Equal(t, file.Imports[0].Path, "fmt")
	be.True(t, file.Imports[0].Alias == nil)
	be.Equal(t, file.Imports[1].Alias.Name, "f")
	be.Equal(t, file.Imports[2].Alias.Name, ".")
	be.Equal(t, file.Imports[3].Path, "sort")
	be.Equal(t, file.Imports[4].Alias.Name, "_")
}

func TestParseValueDecls(t *testing.T) {
	file := parseSrc(t, `package main

const answer = 42

const (
	a, b = 1, 2
	c    = iota
)

var x int
var y, z = f()
`)

	be.Equal(t, len(file.Decls), 4)

	single := file.Decls[0].(*ast.ConstDecl)
	be.Equal(t, len(single.Specs), 1)
	be.Equal(t, single.Specs[0].Names[0].Name, "answer")

	group := file.Decls[1].(*ast.ConstDecl)
	be.Equal(t, len(group.Specs), 2)
	be.Equal(t, len(group.Specs[0].Names), 2)

	vx := file.Decls[2].(*ast.VarDecl)
	be.True(t, vx.Specs[0].Type != nil)
	be.True(t, vx.Specs[0].Values == nil)

	vyz := file.Decls[3].(*ast.VarDecl)
	be.Equal(t, len(vyz.Specs[0].Names), 2)
	be.Equal(t, len(vyz.Specs[0].Values), 1)
}

func TestParseTypeDecl(t *testing.T) {
	file := parseSrc(t, `package main

type Celsius float64
type Row []int
type Index map[string]int
type Reader interface {
	Read(buf []uint8) int
}
`)

	be.Equal(t, len(file.Decls), 4)

	celsius := file.Decls[0].(*ast.TypeDecl)
	be.Equal(t, celsius.Name.Name, "Celsius")

	row := file.Decls[1].(*ast.TypeDecl)
	_ = row.Target.(*ast.SliceTypeExpr)

	index := file.Decls[2].(*ast.TypeDecl)
	_ = index.Target.(*ast.MapTypeExpr)

	reader := file.Decls[3].(*ast.TypeDecl)
	iface := reader.Target.(*ast.InterfaceTypeExpr)
	be.Equal(t, len(iface.Methods), 1)
	be.Equal(t, iface.Methods[0].Name.Name, "Read")
}

func TestParseFuncDecl(t *testing.T) {
	file := parseSrc(t, `package main

func add(a, b int) int {
	return a + b
}

func (c Celsius) String() string { return "" }

func external(n int)
`)

	add := file.Decls[0].(*ast.FuncDecl)
	be.Equal(t, add.Name.Name, "add")
	be.True(t, add.Recv == nil)
	be.Equal(t, len(add.Signature.Params), 2)
	be.Equal(t, len(add.Signature.Results), 1)
	be.True(t, add.Body != nil)

	method := file.Decls[1].(*ast.FuncDecl)
	be.True(t, method.Recv != nil)
	be.Equal(t, method.Recv.Name.Name, "c")

	external := file.Decls[2].(*ast.FuncDecl)
	be.True(t, external.Body == nil)
}

func TestParseExprPrecedence(t *testing.T) {
	file := parseSrc(t, `package main

func f() {
	x = a + b*c
	y = -a * b
	z = a < b && c != d
}
`)

	body := file.Decls[0].(*ast.FuncDecl).Body

	sum := body.Stmts[0].(*ast.AssignStmt).Rhs[0].(*ast.BinaryExpr)
	be.Equal(t, sum.Op, "+")
	prod := sum.Rhs.(*ast.BinaryExpr)
	be.Equal(t, prod.Op, "*")

	neg := body.Stmts[1].(*ast.AssignStmt).Rhs[0].(*ast.BinaryExpr)
	be.Equal(t, neg.Op, "*")
	_ = neg.Lhs.(*ast.UnaryExpr)

	and := body.Stmts[2].(*ast.AssignStmt).Rhs[0].(*ast.BinaryExpr)
	be.Equal(t, and.Op, "&&")
}

func TestParseStatements(t *testing.T) {
	file := parseSrc(t, `package main

func f(xs []int) int {
	total := 0
	for i := 0; i < len(xs); i = i + 1 {
		if xs[i] < 0 {
			continue
		}

		total = total + xs[i]
	}

loop:
	for {
		break loop
	}

	return total
}
`)

	body := file.Decls[0].(*ast.FuncDecl).Body
	be.Equal(t, len(body.Stmts), 4)

	_ = body.Stmts[0].(*ast.ShortVarDecl)

	forStmt := body.Stmts[1].(*ast.ForStmt)
	be.True(t, forStmt.Init != nil)
	be.True(t, forStmt.Cond != nil)
	be.True(t, forStmt.Post != nil)

	labeled := body.Stmts[2].(*ast.LabeledStmt)
	be.Equal(t, labeled.Label.Name, "loop")
	bare := labeled.Stmt.(*ast.ForStmt)
	be.True(t, bare.Cond == nil)

	_ = body.Stmts[3].(*ast.ReturnStmt)
}

func TestParseSelectorsAndCalls(t *testing.T) {
	file := parseSrc(t, `package main

func f() {
	fmt.Println(len("hi"), m["k"])
}
`)

	body := file.Decls[0].(*ast.FuncDecl).Body
	call := body.Stmts[0].(*ast.ExprStmt).X.(*ast.CallExpr)

	sel := call.Fn.(*ast.SelectorExpr)
	be.Equal(t, sel.Sel.Name, "Println")
	be.Equal(t, len(call.Args), 2)

	_ = call.Args[0].(*ast.CallExpr)
	_ = call.Args[1].(*ast.IndexExpr)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing package clause", "import \"fmt\"\n"},
		{"var without type or init", "package main\nvar x\n"},
		{"non-name in short var decl", "package main\nfunc f() {\n\tx[0] := 1\n}\n"},
		{"goto without label", "package main\nfunc f() {\n\tgoto\n}\n"},
		{"unbalanced paren", "package main\nvar x = (1 + 2\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFile("/tmp/test.gs", "test.gs", strings.NewReader(tc.src))
			be.True(t, err != nil)
		})
	}
}
