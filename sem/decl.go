package sem

import "github.com/ndrsllwngr/goscript/ast"

// DeclInfo is the dependency bookkeeping record for one package level
// declaration.  It is created when the declaration is collected, mutated only
// while that declaration's own initializer or body is being checked, and read
// once when the initializer order is computed.
type DeclInfo struct {
	// File is the index of the declaring file within the checked file set.
	File int

	// Lhs is the list of left hand side objects for a multi-value variable
	// initialization, or nil.
	Lhs []ObjKey

	// TypeExpr is the declared type expression, or nil.
	TypeExpr ast.Expr

	// Init is the initializer expression, or nil.
	Init ast.Expr

	// Body is the function body, or nil for non-function declarations and
	// functions declared without a body.
	Body *ast.BlockStmt

	// IotaIdx is the spec index within an enclosing constant declaration; it
	// is -1 for non-constant declarations.
	IotaIdx int

	// deps is the set of other package level objects this declaration's
	// initializer or body depends on.
	deps map[ObjKey]struct{}
}

// NewDeclInfo creates a new declaration info record for the given file index.
func NewDeclInfo(file int) *DeclInfo {
	return &DeclInfo{File: file, IotaIdx: -1}
}

// AddDep records a dependency on another package level object.
func (d *DeclInfo) AddDep(obj ObjKey) {
	if d.deps == nil {
		d.deps = make(map[ObjKey]struct{})
	}

	d.deps[obj] = struct{}{}
}

// HasDep returns whether the declaration depends on the given object.
func (d *DeclInfo) HasDep(obj ObjKey) bool {
	_, ok := d.deps[obj]
	return ok
}

// Deps returns the declaration's dependency set in unspecified order.
func (d *DeclInfo) Deps() []ObjKey {
	deps := make([]ObjKey, 0, len(d.deps))
	for dep := range d.deps {
		deps = append(deps, dep)
	}

	return deps
}

// HasInitializer returns whether the declaration carries an initializer
// expression or function body.
func (d *DeclInfo) HasInitializer() bool {
	return d.Init != nil || d.Body != nil
}
