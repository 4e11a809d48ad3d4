package check

import (
	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/report"
	"github.com/ndrsllwngr/goscript/sem"
)

// exprInfo holds the provisional checking result of an untyped expression.
// The entry is updated in place when context forces the expression to a typed
// type and flushed into the recorded results once all files are checked.
type exprInfo struct {
	mode OperandMode
	typ  sem.TypeKey
	val  sem.Value
}

// filesContext is the per-check-run state: it lives exactly as long as one
// Check call and is discarded afterwards.
type filesContext struct {
	// files is the checked file set in the order given by the caller.
	files []*ast.File

	// fileScopes holds the scope of each file, indexed like files.
	fileScopes []sem.ScopeKey

	// unusedDotImports tracks, per file scope, the dot imports whose bindings
	// were never referenced, keyed by imported package.
	unusedDotImports map[sem.ScopeKey]map[sem.PackageKey]*report.TextSpan

	// fileImports records the import bindings of each file in declaration
	// order, indexed like files.  Named imports carry their package name
	// object; dot imports carry NoObj.
	fileImports [][]importBinding

	// dotImportPkgs maps each dot-imported binding to the package it came
	// from, so a reference can retire the corresponding unused entry.  The
	// key carries the file scope because the same object may be bound by dot
	// imports in several files.
	dotImportPkgs map[dotImportKey]sem.PackageKey

	// methods maps each package level type name to the methods declared on
	// it, in collection order.
	methods map[sem.ObjKey][]sem.ObjKey

	// funcs maps each package level function object to its declaration node.
	funcs map[sem.ObjKey]*ast.FuncDecl

	// untyped holds the provisional results of untyped expressions.
	untyped map[ast.Expr]exprInfo

	// delayed is the queue of deferred actions.  Actions run strictly in
	// queue order after all declarations are checked; an action may append
	// further actions behind those already queued.
	delayed []func()

	// objPath is the stack of package level objects currently being checked.
	// An object reached while already on the stack closes a definition cycle.
	objPath []sem.ObjKey
}

type dotImportKey struct {
	scope sem.ScopeKey
	obj   sem.ObjKey
}

// importBinding is one import of a file: the bound package name object, or
// NoObj for a dot import, and the imported package.
type importBinding struct {
	obj sem.ObjKey
	pkg sem.PackageKey
}

func newFilesContext(files []*ast.File) *filesContext {
	return &filesContext{
		files:            files,
		unusedDotImports: make(map[sem.ScopeKey]map[sem.PackageKey]*report.TextSpan),
		dotImportPkgs:    make(map[dotImportKey]sem.PackageKey),
		methods:          make(map[sem.ObjKey][]sem.ObjKey),
		funcs:            make(map[sem.ObjKey]*ast.FuncDecl),
		untyped:          make(map[ast.Expr]exprInfo),
	}
}

// -----------------------------------------------------------------------------

// objContext is the per-object state: which declaration is being checked and
// under what circumstances.  It is saved and restored around every nested
// checking context.
type objContext struct {
	// decl is the declaration whose initializer or body is being checked, or
	// NoDecl outside of package level declaration checking.  Dependencies are
	// recorded only while decl is set.
	decl sem.DeclKey

	// scope is the current lexical scope.
	scope sem.ScopeKey

	// iota is the spec index within the enclosing constant declaration, or -1
	// outside of one.
	iota int

	// sig is the signature of the enclosing function, or NoType.
	sig sem.TypeKey

	// labels is the label scope of the enclosing function, or NoScope.
	labels sem.ScopeKey

	// fileIdx is the index of the file being checked.
	fileIdx int

	// loopDepth is the nesting depth of enclosing for statements.
	loopDepth int
}

func newObjContext() objContext {
	return objContext{
		decl:   sem.NoDecl,
		scope:  sem.NoScope,
		iota:   -1,
		sig:    sem.NoType,
		labels: sem.NoScope,
	}
}

// -----------------------------------------------------------------------------

// later queues a deferred action behind all currently queued actions.
func (c *Checker) later(f func()) {
	c.fctx.delayed = append(c.fctx.delayed, f)
}

// processDelayed drains the deferred action queue in order.  Actions queued
// while draining run after all earlier ones.
func (c *Checker) processDelayed() {
	for i := 0; i < len(c.fctx.delayed); i++ {
		c.fctx.delayed[i]()
	}

	c.fctx.delayed = nil
}

// push adds an object to the path of objects currently being checked.
func (c *Checker) push(obj sem.ObjKey) {
	c.fctx.objPath = append(c.fctx.objPath, obj)
}

// pop removes the most recently pushed object from the path.
func (c *Checker) pop() {
	c.fctx.objPath = c.fctx.objPath[:len(c.fctx.objPath)-1]
}

// pathIndex returns the position of the object on the current path, or -1.
func (c *Checker) pathIndex(obj sem.ObjKey) int {
	for i, o := range c.fctx.objPath {
		if o == obj {
			return i
		}
	}

	return -1
}

// addDeclDep records that the declaration currently being checked depends on
// the given package level object.  Dependencies on local objects and on other
// packages' objects are not tracked.
func (c *Checker) addDeclDep(to sem.ObjKey) {
	if c.octx.decl == sem.NoDecl {
		return
	}

	if _, ok := c.objMap[to]; !ok {
		return
	}

	c.arena.Decl(c.octx.decl).AddDep(to)
}
