package check

import (
	"fmt"

	"github.com/ndrsllwngr/goscript/sem"
)

// objDecl ensures that a package level object has a type, checking its
// declaration on first demand.  Reaching an object that is already on the
// path of objects under check closes a definition cycle.
func (c *Checker) objDecl(objKey sem.ObjKey) {
	obj := c.arena.Obj(objKey)
	if obj.Type != sem.NoType {
		return
	}

	if i := c.pathIndex(objKey); i >= 0 {
		c.cycleError(c.fctx.objPath[i:])
		return
	}

	declKey, ok := c.objMap[objKey]
	if !ok {
		return
	}

	c.push(objKey)
	defer c.pop()

	saved := c.octx
	defer func() { c.octx = saved }()

	decl := c.arena.Decl(declKey)
	c.octx = newObjContext()
	c.octx.decl = declKey
	c.octx.fileIdx = decl.File
	c.octx.scope = c.fctx.fileScopes[decl.File]

	switch obj.Kind {
	case sem.ConstObj:
		c.octx.iota = decl.IotaIdx
		c.constDecl(objKey, decl)
	case sem.VarObj:
		c.varDecl(objKey, decl)
	case sem.TypeNameObj:
		c.typeDecl(objKey, decl)
	case sem.FuncObj:
		c.funcDecl(objKey, declKey)
	}
}

// cycleError reports a definition cycle among the given objects with a single
// diagnostic and marks every member invalid so re-entry stays silent.
func (c *Checker) cycleError(cycle []sem.ObjKey) {
	first := c.arena.Obj(cycle[0])

	var msg string
	if len(cycle) == 1 {
		msg = fmt.Sprintf("initialization cycle: %s refers to itself", first.Name)
	} else {
		msg = fmt.Sprintf("initialization cycle for %s", first.Name)
		for i, objKey := range cycle {
			next := cycle[(i+1)%len(cycle)]
			msg += fmt.Sprintf("\n\t%s refers to %s", c.arena.Obj(objKey).Name, c.arena.Obj(next).Name)
		}
	}

	c.errorf(first.Pos, "%s", msg)

	for _, objKey := range cycle {
		c.arena.Obj(objKey).Type = c.invalid()
	}
}

// -----------------------------------------------------------------------------

// constDecl checks a package level constant declaration.
func (c *Checker) constDecl(objKey sem.ObjKey, decl *sem.DeclInfo) {
	obj := c.arena.Obj(objKey)

	declared := sem.NoType
	if decl.TypeExpr != nil {
		declared = c.typExpr(decl.TypeExpr)
	}

	if decl.Init == nil {
		obj.Type = c.invalid()
		return
	}

	var x operand
	c.expr(&x, decl.Init)

	// The object may have been marked invalid while the initializer closed a
	// cycle back to it.
	if obj.Type != sem.NoType {
		return
	}

	if x.mode == InvalidMode {
		obj.Type = c.invalid()
		return
	}

	if x.mode != ConstantMode {
		c.errorf(x.expr.Span(), "%s is not constant", x.describe(c.arena))
		obj.Type = c.invalid()
		return
	}

	if declared != sem.NoType {
		c.convertUntyped(&x, declared)
		if x.mode == InvalidMode {
			obj.Type = c.invalid()
			return
		}

		obj.Type = declared
	} else {
		obj.Type = x.typ
	}

	obj.SetConstValue(x.val)
}

// varDecl checks a package level variable declaration.  Variables sharing one
// initializer are all typed the first time any of them is reached.
func (c *Checker) varDecl(objKey sem.ObjKey, decl *sem.DeclInfo) {
	if decl.Lhs != nil {
		c.varDeclMulti(decl)
		return
	}

	obj := c.arena.Obj(objKey)

	declared := sem.NoType
	if decl.TypeExpr != nil {
		declared = c.typExpr(decl.TypeExpr)
	}

	if decl.Init == nil {
		if declared == sem.NoType {
			declared = c.invalid()
		}

		obj.Type = declared
		return
	}

	var x operand
	c.expr(&x, decl.Init)

	if obj.Type != sem.NoType {
		return
	}

	if x.mode == InvalidMode {
		if declared == sem.NoType {
			declared = c.invalid()
		}

		obj.Type = declared
		return
	}

	if declared != sem.NoType {
		c.assign(&x, declared)
		obj.Type = declared
		return
	}

	obj.Type = c.defaultType(&x)
}

// varDeclMulti checks a declaration initializing several variables from one
// multi-valued expression.
func (c *Checker) varDeclMulti(decl *sem.DeclInfo) {
	declared := sem.NoType
	if decl.TypeExpr != nil {
		declared = c.typExpr(decl.TypeExpr)
	}

	var x operand
	c.expr(&x, decl.Init)

	types := c.multiValue(&x, len(decl.Lhs))
	for i, lhsKey := range decl.Lhs {
		lhs := c.arena.Obj(lhsKey)
		if lhs.Type != sem.NoType {
			continue
		}

		switch {
		case declared != sem.NoType:
			lhs.Type = declared
		case types == nil:
			lhs.Type = c.invalid()
		default:
			lhs.Type = types[i]
		}
	}
}

// multiValue resolves an operand expected to produce n values into its n
// component types, reporting an arity mismatch otherwise.  A map index
// operand used with n == 2 takes its comma-ok form.
func (c *Checker) multiValue(x *operand, n int) []sem.TypeKey {
	if x.mode == InvalidMode {
		return nil
	}

	if x.mode == MapIndexMode && n == 2 {
		ok := c.basic(sem.UntypedBool)
		c.recordCommaOkTypes(x.expr, x.typ, ok)
		return []sem.TypeKey{x.typ, ok}
	}

	if t := c.arena.Type(x.typ); t.Kind == sem.TupleType {
		vars := t.TupleVars()
		if len(vars) != n {
			c.errorf(x.expr.Span(), "assignment mismatch: %d variables but %d values", n, len(vars))
			return nil
		}

		types := make([]sem.TypeKey, n)
		for i, v := range vars {
			types[i] = c.arena.Obj(v).Type
		}

		return types
	}

	c.errorf(x.expr.Span(), "assignment mismatch: %d variables but 1 value", n)
	return nil
}

// -----------------------------------------------------------------------------

// typeDecl checks a package level type declaration.  The named type is
// created and bound to its object before the definition is resolved so that
// recursion through an indirection is legal; direct cycles are caught by
// walking the chain of underlying types once all declarations are in.
func (c *Checker) typeDecl(objKey sem.ObjKey, decl *sem.DeclInfo) {
	obj := c.arena.Obj(objKey)

	named := c.arena.InsertType(sem.NewNamed(objKey))
	obj.Type = named

	u := c.typExpr(decl.TypeExpr)
	c.arena.Type(named).SetUnderlying(u)

	fileIdx := c.octx.fileIdx
	c.later(func() {
		saved := c.octx
		c.octx = newObjContext()
		c.octx.fileIdx = fileIdx
		c.validUnderlying(objKey, named)
		c.octx = saved
	})

	for _, m := range c.fctx.methods[objKey] {
		c.arena.Type(named).AddMethod(m)
	}
}

// validUnderlying reports a type definition that chains back to itself with
// no indirection in between.
func (c *Checker) validUnderlying(objKey sem.ObjKey, named sem.TypeKey) {
	cur := c.arena.Type(named).Underlying()
	for cur != sem.NoType {
		if cur == named {
			obj := c.arena.Obj(objKey)
			c.errorf(obj.Pos, "invalid recursive type %s", obj.Name)
			c.arena.Type(named).SetUnderlying(c.invalid())
			return
		}

		t := c.arena.Type(cur)
		if t.Kind != sem.NamedType {
			return
		}

		cur = t.Underlying()
	}
}

// funcDecl checks a package level function or method declaration.  The body
// is queued for deferred checking so functions may refer to declarations in
// any order.
func (c *Checker) funcDecl(objKey sem.ObjKey, declKey sem.DeclKey) {
	obj := c.arena.Obj(objKey)
	fdecl := c.fctx.funcs[objKey]

	sig := c.funcSignature(fdecl.Recv, fdecl.Signature)
	obj.Type = sig

	if fdecl.Body != nil {
		fileIdx := c.octx.fileIdx
		c.later(func() {
			c.funcBody(declKey, fileIdx, sig, fdecl)
		})
	}
}
