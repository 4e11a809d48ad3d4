package check

import (
	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/sem"
)

// funcBody checks the body of a package level function or method.
// Dependencies recorded while the body is checked are attributed to the
// function's declaration.
func (c *Checker) funcBody(declKey sem.DeclKey, fileIdx int, sig sem.TypeKey, fdecl *ast.FuncDecl) {
	saved := c.octx
	c.octx = newObjContext()
	c.octx.decl = declKey
	c.octx.fileIdx = fileIdx
	c.octx.scope = c.fctx.fileScopes[fileIdx]
	c.octx.sig = sig

	c.funcScopeBody(sig, fdecl.Body, "function "+fdecl.Name.Name)
	c.octx = saved
}

// funcScopeBody opens the function scope, binds the receiver, parameters, and
// named results into it, and checks the body statements.  The body block and
// the function share one scope.
func (c *Checker) funcScopeBody(sig sem.TypeKey, body *ast.BlockStmt, label string) {
	scope := c.arena.NewScope(c.octx.scope, label)
	c.octx.scope = scope
	c.info.RecordScope(body, scope)

	sigT := c.arena.Type(sig)
	if recv := sigT.Recv(); recv != sem.NoObj {
		c.bindVar(scope, recv)
	}

	for _, param := range c.arena.Type(sigT.Params()).TupleVars() {
		c.bindVar(scope, param)
	}

	for _, result := range c.arena.Type(sigT.Results()).TupleVars() {
		c.bindVar(scope, result)
	}

	// Labels live in their own scope so they never shadow values.  Each
	// function body, including every function literal, gets a fresh one.
	c.octx.labels = c.arena.NewScope(sem.NoScope, "labels "+label)

	savedUses := c.labelUses
	c.labelUses = make(map[sem.ObjKey]bool)

	c.walkLabels(body.Stmts)
	c.stmtList(body.Stmts)

	labelScope := c.arena.Scope(c.octx.labels)
	for _, name := range labelScope.Names() {
		obj := labelScope.Lookup(name)
		if !c.labelUses[obj] {
			c.softErrorf(c.arena.Obj(obj).Pos, "label %s defined and not used", name)
		}
	}

	c.labelUses = savedUses
}

func (c *Checker) bindVar(scope sem.ScopeKey, obj sem.ObjKey) {
	if name := c.arena.Obj(obj).Name; name != "" {
		c.arena.Scope(scope).Insert(name, obj)
	}
}

// walkLabels declares every label of the function body up front, so branch
// statements may target labels declared later in the source.  Function
// literal bodies are left to their own label scopes.
func (c *Checker) walkLabels(stmts []ast.Stmt) {
	for _, s := range stmts {
		switch s := s.(type) {
		case *ast.LabeledStmt:
			obj := c.arena.InsertObject(sem.NewLabel(s.Label.Span(), c.pkg, s.Label.Name))
			c.info.RecordDef(s.Label, obj)

			if prev := c.arena.Scope(c.octx.labels).Insert(s.Label.Name, obj); prev != sem.NoObj {
				c.errorf(s.Label.Span(), "label %s already declared at %s", s.Label.Name, c.arena.Obj(prev).Pos)
			}

			c.walkLabels([]ast.Stmt{s.Stmt})
		case *ast.BlockStmt:
			c.walkLabels(s.Stmts)
		case *ast.IfStmt:
			c.walkLabels(s.Body.Stmts)
			if s.Else != nil {
				c.walkLabels([]ast.Stmt{s.Else})
			}
		case *ast.ForStmt:
			c.walkLabels(s.Body.Stmts)
		}
	}
}

// -----------------------------------------------------------------------------

func (c *Checker) stmtList(stmts []ast.Stmt) {
	for _, s := range stmts {
		c.stmt(s)
	}
}

func (c *Checker) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.BlockStmt:
		saved := c.octx.scope
		c.octx.scope = c.arena.NewScope(saved, "block")
		c.info.RecordScope(s, c.octx.scope)
		c.stmtList(s.Stmts)
		c.octx.scope = saved
	case *ast.DeclStmt:
		c.localDecl(s.Decl)
	case *ast.ShortVarDecl:
		c.shortVarDecl(s)
	case *ast.AssignStmt:
		c.assignStmt(s)
	case *ast.ExprStmt:
		var x operand
		c.expr(&x, s.X)
		if x.mode != InvalidMode && x.mode != NoValueMode {
			if _, ok := ast.Unparen(s.X).(*ast.CallExpr); !ok {
				c.softErrorf(s.X.Span(), "%s evaluated but not used", exprString(s.X))
			}
		}
	case *ast.ReturnStmt:
		c.returnStmt(s)
	case *ast.IfStmt:
		c.ifStmt(s)
	case *ast.ForStmt:
		c.forStmt(s)
	case *ast.LabeledStmt:
		c.stmt(s.Stmt)
	case *ast.BranchStmt:
		c.branchStmt(s)
	}
}

// -----------------------------------------------------------------------------

// shortVarDecl checks a short variable declaration.  Names already bound to a
// variable in the current scope are rebound and recorded as uses; other names
// declare new variables.  At least one name must be new.
func (c *Checker) shortVarDecl(s *ast.ShortVarDecl) {
	types := c.shortVarTypes(s)

	scope := c.arena.Scope(c.octx.scope)
	newVars := 0

	for i, name := range s.Names {
		t := c.invalid()
		if types != nil {
			t = types[i]
		}

		if name.Name == sem.BlankName {
			obj := c.arena.InsertObject(sem.NewVar(name.Span(), c.pkg, name.Name, t))
			c.info.RecordDef(name, obj)
			continue
		}

		if prev := scope.Lookup(name.Name); prev != sem.NoObj && c.arena.Obj(prev).Kind == sem.VarObj {
			c.info.RecordUse(name, prev)
			if types != nil && !c.typeAssignable(t, c.arena.Obj(prev).Type) {
				c.errorf(name.Span(), "cannot use value of type %s as %s in assignment",
					c.arena.TypeString(t), c.arena.TypeString(c.arena.Obj(prev).Type))
			}

			continue
		}

		obj := c.arena.InsertObject(sem.NewVar(name.Span(), c.pkg, name.Name, t))
		c.declare(c.octx.scope, name, obj)
		newVars++
	}

	if newVars == 0 {
		c.errorf(s.Values[0].Span(), "no new variables on left side of :=")
	}
}

// shortVarTypes resolves the right hand side of a short variable declaration
// into one type per declared name, or nil if checking failed.
func (c *Checker) shortVarTypes(s *ast.ShortVarDecl) []sem.TypeKey {
	n := len(s.Names)

	if len(s.Values) == n {
		types := make([]sem.TypeKey, n)
		for i, value := range s.Values {
			var x operand
			c.expr(&x, value)
			if x.mode == InvalidMode {
				types[i] = c.invalid()
				continue
			}

			types[i] = c.defaultType(&x)
		}

		return types
	}

	if len(s.Values) != 1 {
		c.errorf(s.Span(), "assignment mismatch: %d variables but %d values", n, len(s.Values))
		return nil
	}

	var x operand
	c.expr(&x, s.Values[0])
	types := c.multiValue(&x, n)
	for i, t := range types {
		types[i] = c.defaultOf(t)
	}

	return types
}

// defaultOf maps an untyped type to its typed counterpart for use as a
// declared variable type.
func (c *Checker) defaultOf(t sem.TypeKey) sem.TypeKey {
	switch c.basicKindOf(t) {
	case sem.UntypedInt:
		return c.basic(sem.Int)
	case sem.UntypedFloat:
		return c.basic(sem.Float64)
	case sem.UntypedBool:
		return c.basic(sem.Bool)
	case sem.UntypedString:
		return c.basic(sem.Str)
	case sem.UntypedNil:
		return c.invalid()
	default:
		return t
	}
}

// typeAssignable reports plain type-to-type assignability, used where no
// operand is at hand.
func (c *Checker) typeAssignable(t, target sem.TypeKey) bool {
	x := operand{mode: ValueMode, typ: t}
	return c.assignableTo(&x, target)
}

// -----------------------------------------------------------------------------

// assignStmt checks an assignment.  Targets must be addressable variables,
// map index expressions, or the blank identifier.
func (c *Checker) assignStmt(s *ast.AssignStmt) {
	targets := make([]sem.TypeKey, len(s.Lhs))
	for i, lhs := range s.Lhs {
		if id, ok := ast.Unparen(lhs).(*ast.Ident); ok && id.Name == sem.BlankName {
			targets[i] = sem.NoType
			continue
		}

		var x operand
		c.expr(&x, lhs)

		switch x.mode {
		case InvalidMode:
			targets[i] = c.invalid()
		case VariableMode, MapIndexMode:
			targets[i] = x.typ
		default:
			c.errorf(lhs.Span(), "cannot assign to %s", exprString(lhs))
			targets[i] = c.invalid()
		}
	}

	if len(s.Rhs) == len(s.Lhs) {
		for i, rhs := range s.Rhs {
			var x operand
			c.expr(&x, rhs)
			if x.mode == InvalidMode || targets[i] == sem.NoType {
				continue
			}

			c.assign(&x, targets[i])
		}

		return
	}

	if len(s.Rhs) != 1 {
		c.errorf(s.Span(), "assignment mismatch: %d variables but %d values", len(s.Lhs), len(s.Rhs))
		return
	}

	var x operand
	c.expr(&x, s.Rhs[0])
	types := c.multiValue(&x, len(s.Lhs))

	for i, t := range types {
		if targets[i] == sem.NoType {
			continue
		}

		if !c.typeAssignable(t, targets[i]) {
			c.errorf(s.Rhs[0].Span(), "cannot use value of type %s as %s in assignment",
				c.arena.TypeString(t), c.arena.TypeString(targets[i]))
		}
	}
}

// returnStmt checks a return statement against the enclosing signature.  A
// bare return is allowed when every result is named.
func (c *Checker) returnStmt(s *ast.ReturnStmt) {
	if c.octx.sig == sem.NoType {
		c.errorf(s.Span(), "return outside of function")
		return
	}

	results := c.arena.Type(c.arena.Type(c.octx.sig).Results()).TupleVars()

	if len(s.Results) == 0 && len(results) > 0 {
		for _, r := range results {
			if c.arena.Obj(r).Name == "" {
				c.errorf(s.Span(), "wrong number of return values (want %d, got 0)", len(results))
				return
			}
		}

		return
	}

	if len(s.Results) != len(results) {
		c.errorf(s.Span(), "wrong number of return values (want %d, got %d)", len(results), len(s.Results))
		return
	}

	for i, res := range s.Results {
		var x operand
		c.expr(&x, res)
		if x.mode != InvalidMode {
			c.assignTo(&x, c.arena.Obj(results[i]).Type, "return statement")
		}
	}
}

func (c *Checker) ifStmt(s *ast.IfStmt) {
	saved := c.octx.scope
	c.octx.scope = c.arena.NewScope(saved, "if")
	c.info.RecordScope(s, c.octx.scope)

	if s.Init != nil {
		c.stmt(s.Init)
	}

	var cond operand
	c.expr(&cond, s.Cond)
	if cond.mode != InvalidMode && !sem.IsBoolean(c.basicKindOf(cond.typ)) {
		c.errorf(s.Cond.Span(), "non-boolean condition in if statement")
	}

	c.stmt(s.Body)
	if s.Else != nil {
		c.stmt(s.Else)
	}

	c.octx.scope = saved
}

func (c *Checker) forStmt(s *ast.ForStmt) {
	saved := c.octx.scope
	c.octx.scope = c.arena.NewScope(saved, "for")
	c.info.RecordScope(s, c.octx.scope)

	if s.Init != nil {
		c.stmt(s.Init)
	}

	if s.Cond != nil {
		var cond operand
		c.expr(&cond, s.Cond)
		if cond.mode != InvalidMode && !sem.IsBoolean(c.basicKindOf(cond.typ)) {
			c.errorf(s.Cond.Span(), "non-boolean condition in for statement")
		}
	}

	if s.Post != nil {
		c.stmt(s.Post)
	}

	c.octx.loopDepth++
	c.stmt(s.Body)
	c.octx.loopDepth--

	c.octx.scope = saved
}

func (c *Checker) branchStmt(s *ast.BranchStmt) {
	if s.Label != nil {
		obj := sem.NoObj
		if c.octx.labels != sem.NoScope {
			obj = c.arena.Scope(c.octx.labels).Lookup(s.Label.Name)
		}

		if obj == sem.NoObj {
			c.errorf(s.Label.Span(), "label %s not declared", s.Label.Name)
			return
		}

		c.info.RecordUse(s.Label, obj)
		c.labelUses[obj] = true
		return
	}

	if c.octx.loopDepth == 0 {
		switch s.Kind {
		case ast.BreakBranch:
			c.errorf(s.Span(), "break not in for statement")
		case ast.ContinueBranch:
			c.errorf(s.Span(), "continue not in for statement")
		}
	}
}

// -----------------------------------------------------------------------------

// localDecl checks a declaration in statement position.  Local objects are
// declared sequentially: each name becomes visible only after its own
// initializer has been checked.
func (c *Checker) localDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.ConstDecl:
		c.localConstDecl(d)
	case *ast.VarDecl:
		c.localVarDecl(d)
	case *ast.TypeDecl:
		c.localTypeDecl(d)
	}
}

func (c *Checker) localConstDecl(d *ast.ConstDecl) {
	savedIota := c.octx.iota
	defer func() { c.octx.iota = savedIota }()

	var inherited *ast.ValueSpec
	for specIdx, spec := range d.Specs {
		c.octx.iota = specIdx

		source := spec
		if spec.Type == nil && spec.Values == nil {
			if inherited == nil {
				c.errorf(spec.Span(), "missing init expr for %s", spec.Names[0].Name)
				continue
			}

			source = inherited
		} else {
			inherited = spec
		}

		declared := sem.NoType
		if source.Type != nil {
			declared = c.typExpr(source.Type)
		}

		for nameIdx, name := range spec.Names {
			typ := c.invalid()
			val := sem.Value{}

			if nameIdx < len(source.Values) {
				var x operand
				c.expr(&x, source.Values[nameIdx])

				switch {
				case x.mode == InvalidMode:
				case x.mode != ConstantMode:
					c.errorf(x.expr.Span(), "%s is not constant", x.describe(c.arena))
				case declared != sem.NoType:
					c.convertUntyped(&x, declared)
					if x.mode != InvalidMode {
						typ = declared
						val = x.val
					}
				default:
					typ = x.typ
					val = x.val
				}
			} else {
				c.errorf(name.Span(), "missing init expr for %s", name.Name)
			}

			obj := c.arena.InsertObject(sem.NewConst(name.Span(), c.pkg, name.Name, typ, val))
			c.declare(c.octx.scope, name, obj)
		}
	}
}

func (c *Checker) localVarDecl(d *ast.VarDecl) {
	for _, spec := range d.Specs {
		declared := sem.NoType
		if spec.Type != nil {
			declared = c.typExpr(spec.Type)
		}

		var types []sem.TypeKey
		switch {
		case len(spec.Values) == 0:
			// Type only.
		case len(spec.Values) == len(spec.Names):
			types = make([]sem.TypeKey, len(spec.Values))
			for i, value := range spec.Values {
				var x operand
				c.expr(&x, value)
				if x.mode == InvalidMode {
					types[i] = c.invalid()
					continue
				}

				if declared != sem.NoType {
					c.assign(&x, declared)
					types[i] = declared
				} else {
					types[i] = c.defaultType(&x)
				}
			}
		case len(spec.Values) == 1:
			var x operand
			c.expr(&x, spec.Values[0])
			types = c.multiValue(&x, len(spec.Names))
			for i, t := range types {
				types[i] = c.defaultOf(t)
			}
		default:
			c.errorf(spec.Span(), "assignment mismatch: %d variables but %d values", len(spec.Names), len(spec.Values))
		}

		for i, name := range spec.Names {
			typ := declared
			if typ == sem.NoType {
				typ = c.invalid()
				if types != nil && i < len(types) {
					typ = types[i]
				}
			}

			obj := c.arena.InsertObject(sem.NewVar(name.Span(), c.pkg, name.Name, typ))
			c.declare(c.octx.scope, name, obj)
		}
	}
}

func (c *Checker) localTypeDecl(d *ast.TypeDecl) {
	obj := c.arena.InsertObject(sem.NewTypeName(d.Name.Span(), c.pkg, d.Name.Name, sem.NoType))
	named := c.arena.InsertType(sem.NewNamed(obj))
	c.arena.Obj(obj).Type = named

	// The name is visible inside its own definition so local recursion
	// through an indirection is legal.
	c.declare(c.octx.scope, d.Name, obj)

	c.arena.Type(named).SetUnderlying(c.typExpr(d.Target))
	c.validUnderlying(obj, named)
}
