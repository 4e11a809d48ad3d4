package check

import (
	"strconv"
	"strings"

	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/sem"
)

// expr checks an expression expected to denote a value or type and records the
// result.  Results of untyped expressions stay provisional until the whole
// file set has been checked, since a later context may force them to a typed
// type.
func (c *Checker) expr(x *operand, e ast.Expr) {
	c.rawExpr(x, e)
	c.record(x)
}

func (c *Checker) record(x *operand) {
	if x.mode == InvalidMode || x.expr == nil {
		return
	}

	if sem.IsUntyped(c.basicKindOf(x.typ)) {
		c.fctx.untyped[x.expr] = exprInfo{mode: x.mode, typ: x.typ, val: x.val}
		return
	}

	c.info.RecordTypeAndValue(x.expr, x.mode, x.typ, x.val)
}

func (c *Checker) rawExpr(x *operand, e ast.Expr) {
	x.expr = e
	x.mode = InvalidMode
	x.typ = c.invalid()
	x.val = sem.Value{}

	switch e := e.(type) {
	case *ast.Ident:
		c.ident(x, e)
	case *ast.Literal:
		c.literal(x, e)
	case *ast.ParenExpr:
		c.expr(x, e.X)
		x.expr = e
	case *ast.SelectorExpr:
		c.selector(x, e)
	case *ast.CallExpr:
		c.call(x, e)
	case *ast.IndexExpr:
		c.index(x, e)
	case *ast.UnaryExpr:
		c.unary(x, e)
	case *ast.BinaryExpr:
		c.binary(x, e)
	case *ast.FuncLit:
		c.funcLit(x, e)
	case *ast.StarExpr, *ast.SliceTypeExpr, *ast.MapTypeExpr, *ast.FuncTypeExpr, *ast.InterfaceTypeExpr:
		x.mode = TypExprMode
		x.typ = c.typExprInternal(e)
	default:
		c.errorf(e.Span(), "invalid expression")
	}
}

// -----------------------------------------------------------------------------

// ident resolves an identifier by walking the scope chain outward from the
// current scope.
func (c *Checker) ident(x *operand, e *ast.Ident) {
	x.expr = e

	if e.Name == sem.BlankName {
		c.errorf(e.Span(), "cannot use _ as value")
		return
	}

	foundScope, objKey := c.arena.LookupParent(c.octx.scope, e.Name)
	if objKey == sem.NoObj {
		c.errorf(e.Span(), "undefined: %s", e.Name)
		return
	}

	c.info.RecordUse(e, objKey)

	// A dot-imported binding retires the unused entry of the file scope the
	// binding was found in, not that of any other file importing the same
	// package.
	if pkg, ok := c.fctx.dotImportPkgs[dotImportKey{scope: foundScope, obj: objKey}]; ok {
		delete(c.fctx.unusedDotImports[foundScope], pkg)
	}

	if objKey == c.arena.Universe.Iota {
		if c.octx.iota < 0 {
			c.errorf(e.Span(), "cannot use iota outside constant declaration")
			return
		}

		x.mode = ConstantMode
		x.typ = c.basic(sem.UntypedInt)
		x.val = sem.MakeInt(int64(c.octx.iota))
		return
	}

	obj := c.arena.Obj(objKey)
	if obj.Type == sem.NoType {
		c.objDecl(objKey)
	}

	c.addDeclDep(objKey)

	switch obj.Kind {
	case sem.ConstObj:
		x.mode = ConstantMode
		x.typ = obj.Type
		x.val = obj.ConstValue()
	case sem.TypeNameObj:
		x.mode = TypExprMode
		x.typ = obj.Type
	case sem.VarObj:
		x.mode = VariableMode
		x.typ = obj.Type
	case sem.FuncObj:
		x.mode = ValueMode
		x.typ = obj.Type
	case sem.NilObj:
		x.mode = ValueMode
		x.typ = obj.Type
	case sem.BuiltinObj:
		x.mode = BuiltinMode
		x.builtin = obj.Builtin()
	case sem.PkgNameObj:
		obj.MarkUsed()
		c.errorf(e.Span(), "use of package %s not in selector", obj.Name)
	}
}

func (c *Checker) literal(x *operand, e *ast.Literal) {
	switch e.Kind {
	case ast.IntLit:
		i, err := strconv.ParseInt(strings.ReplaceAll(e.Value, "_", ""), 10, 64)
		if err != nil {
			c.errorf(e.Span(), "invalid integer literal %s", e.Value)
			return
		}

		x.mode = ConstantMode
		x.typ = c.basic(sem.UntypedInt)
		x.val = sem.MakeInt(i)
	case ast.FloatLit:
		f, err := strconv.ParseFloat(strings.ReplaceAll(e.Value, "_", ""), 64)
		if err != nil {
			c.errorf(e.Span(), "invalid floating point literal %s", e.Value)
			return
		}

		x.mode = ConstantMode
		x.typ = c.basic(sem.UntypedFloat)
		x.val = sem.MakeFloat(f)
	case ast.StringLit:
		x.mode = ConstantMode
		x.typ = c.basic(sem.UntypedString)
		x.val = sem.MakeString(e.Value)
	case ast.RuneLit:
		var r int64
		for _, ch := range e.Value {
			r = int64(ch)
			break
		}

		x.mode = ConstantMode
		x.typ = c.basic(sem.UntypedInt)
		x.val = sem.MakeInt(r)
	}
}

// -----------------------------------------------------------------------------

// selector checks a selection `x.sel`: a qualified identifier if x names an
// imported package, or a method selection otherwise.
func (c *Checker) selector(x *operand, e *ast.SelectorExpr) {
	x.expr = e

	if id, ok := ast.Unparen(e.X).(*ast.Ident); ok {
		if _, objKey := c.arena.LookupParent(c.octx.scope, id.Name); objKey != sem.NoObj {
			if obj := c.arena.Obj(objKey); obj.Kind == sem.PkgNameObj {
				c.info.RecordUse(id, objKey)
				obj.MarkUsed()
				c.qualifiedIdent(x, e, obj.Imported())
				return
			}
		}
	}

	var recv operand
	c.expr(&recv, e.X)
	if recv.mode == InvalidMode {
		return
	}

	if recv.mode == TypExprMode {
		c.errorf(e.Span(), "invalid selector on type %s", c.arena.TypeString(recv.typ))
		return
	}

	m := c.lookupMethod(recv.typ, e.Sel.Name)
	if m == sem.NoObj {
		c.errorf(e.Sel.Span(), "%s.%s undefined (type %s has no field or method %s)",
			exprString(e.X), e.Sel.Name, c.arena.TypeString(recv.typ), e.Sel.Name)
		return
	}

	if c.arena.Obj(m).Type == sem.NoType {
		c.objDecl(m)
	}

	c.addDeclDep(m)
	c.info.RecordSelection(e, &Selection{Obj: m, Recv: recv.typ})

	x.mode = ValueMode
	x.typ = c.arena.Obj(m).Type
}

// qualifiedIdent resolves the selection of an exported name from an imported
// package.  Every lookup failure against a fake package is suppressed: one
// broken import must not cascade into spurious diagnostics.
func (c *Checker) qualifiedIdent(x *operand, e *ast.SelectorExpr, imported sem.PackageKey) {
	pkg := c.arena.Pkg(imported)
	objKey := c.arena.Scope(pkg.Scope()).Lookup(e.Sel.Name)

	if objKey == sem.NoObj {
		if !pkg.Fake() {
			c.errorf(e.Sel.Span(), "%s not declared by package %s", e.Sel.Name, pkg.Name())
		}

		return
	}

	obj := c.arena.Obj(objKey)
	if !obj.Exported() {
		c.errorf(e.Sel.Span(), "%s not exported by package %s", e.Sel.Name, pkg.Name())
		return
	}

	c.info.RecordUse(e.Sel, objKey)

	switch obj.Kind {
	case sem.ConstObj:
		x.mode = ConstantMode
		x.typ = obj.Type
		x.val = obj.ConstValue()
	case sem.TypeNameObj:
		x.mode = TypExprMode
		x.typ = obj.Type
	case sem.VarObj:
		x.mode = VariableMode
		x.typ = obj.Type
	case sem.FuncObj:
		x.mode = ValueMode
		x.typ = obj.Type
	default:
		c.errorf(e.Sel.Span(), "cannot refer to %s.%s", pkg.Name(), e.Sel.Name)
	}
}

// lookupMethod finds a method by name on the named type behind the given
// type, looking through one pointer indirection, or in the method set of an
// interface.
func (c *Checker) lookupMethod(typ sem.TypeKey, name string) sem.ObjKey {
	t := c.arena.Type(typ)
	if t.Kind == sem.PointerType {
		typ = t.Elem()
		t = c.arena.Type(typ)
	}

	var methods []sem.ObjKey
	switch t.Kind {
	case sem.NamedType:
		methods = t.Methods()
		if u := c.under(typ); u != sem.NoType && c.arena.Type(u).Kind == sem.InterfaceType {
			methods = append(methods, c.arena.Type(u).Methods()...)
		}
	case sem.InterfaceType:
		methods = t.Methods()
	default:
		return sem.NoObj
	}

	for _, m := range methods {
		if c.arena.Obj(m).Name == name {
			return m
		}
	}

	return sem.NoObj
}

// -----------------------------------------------------------------------------

// call checks a call expression: a conversion, a builtin call, or an ordinary
// function call.
func (c *Checker) call(x *operand, e *ast.CallExpr) {
	x.expr = e

	var f operand
	c.expr(&f, e.Fn)

	switch f.mode {
	case InvalidMode:
		// Still check the arguments so their errors are reported.
		for _, arg := range e.Args {
			var a operand
			c.expr(&a, arg)
		}

		return
	case TypExprMode:
		c.conversion(x, e, f.typ)
		return
	case BuiltinMode:
		c.builtin(x, e, f.builtin)
		return
	}

	sigKey := c.under(f.typ)
	sig := c.arena.Type(sigKey)
	if sig.Kind != sem.SignatureType {
		c.errorf(e.Fn.Span(), "invalid operation: cannot call non-function %s", exprString(e.Fn))
		return
	}

	params := c.arena.Type(sig.Params()).TupleVars()
	switch {
	case len(e.Args) < len(params):
		c.errorf(e.Span(), "not enough arguments in call to %s", exprString(e.Fn))
	case len(e.Args) > len(params):
		c.errorf(e.Args[len(params)].Span(), "too many arguments in call to %s", exprString(e.Fn))
	}

	for i, arg := range e.Args {
		var a operand
		c.expr(&a, arg)
		if i < len(params) && a.mode != InvalidMode {
			c.assignTo(&a, c.arena.Obj(params[i]).Type, "argument")
		}
	}

	results := c.arena.Type(sig.Results()).TupleVars()
	switch len(results) {
	case 0:
		x.mode = NoValueMode
		x.typ = sig.Results()
	case 1:
		x.mode = ValueMode
		x.typ = c.arena.Obj(results[0]).Type
	default:
		x.mode = ValueMode
		x.typ = sig.Results()
	}
}

// conversion checks a conversion T(v).
func (c *Checker) conversion(x *operand, e *ast.CallExpr, target sem.TypeKey) {
	if len(e.Args) != 1 {
		c.errorf(e.Span(), "wrong number of arguments in conversion to %s", c.arena.TypeString(target))
		return
	}

	var a operand
	c.expr(&a, e.Args[0])
	if a.mode == InvalidMode {
		return
	}

	if !c.convertible(&a, target) {
		c.errorf(e.Args[0].Span(), "cannot convert %s to type %s", a.describe(c.arena), c.arena.TypeString(target))
		return
	}

	x.typ = target
	x.mode = ValueMode

	tk := c.basicKindOf(target)
	if a.mode == ConstantMode && tk != sem.InvalidBasic {
		x.mode = ConstantMode
		x.val = convertValue(a.val, tk)
	}
}

// convertible reports whether an operand can be converted to the target type.
func (c *Checker) convertible(a *operand, target sem.TypeKey) bool {
	if c.assignableTo(a, target) {
		return true
	}

	ak := c.basicKindOf(a.typ)
	tk := c.basicKindOf(target)

	if sem.IsNumeric(ak) && sem.IsNumeric(tk) {
		return true
	}

	return sem.IsString(ak) && sem.IsString(tk)
}

// convertValue adapts a constant value's representation to the given basic
// kind.
func convertValue(v sem.Value, kind sem.BasicKind) sem.Value {
	switch {
	case v.Kind == sem.IntValue && (kind == sem.Float32 || kind == sem.Float64 || kind == sem.UntypedFloat):
		return sem.MakeFloat(float64(v.Int()))
	case v.Kind == sem.FloatValue && sem.IsInteger(kind):
		return sem.MakeInt(int64(v.Float()))
	}

	return v
}

// index checks an index expression on a slice, map, or string.
func (c *Checker) index(x *operand, e *ast.IndexExpr) {
	x.expr = e

	var base operand
	c.expr(&base, e.X)

	var idx operand
	c.expr(&idx, e.Index)

	if base.mode == InvalidMode {
		return
	}

	switch t := c.arena.Type(c.under(base.typ)); t.Kind {
	case sem.SliceType:
		c.wantInteger(&idx)
		x.mode = VariableMode
		x.typ = t.Elem()
	case sem.MapType:
		if idx.mode != InvalidMode {
			c.assignTo(&idx, t.KeyType(), "map index")
		}

		x.mode = MapIndexMode
		x.typ = t.Elem()
	case sem.BasicType:
		if sem.IsString(t.Basic()) {
			c.wantInteger(&idx)
			x.mode = ValueMode
			x.typ = c.basic(sem.Uint8)
			return
		}

		c.errorf(e.Span(), "invalid operation: cannot index %s", c.arena.TypeString(base.typ))
	case sem.InvalidType:
	default:
		c.errorf(e.Span(), "invalid operation: cannot index %s", c.arena.TypeString(base.typ))
	}
}

func (c *Checker) wantInteger(idx *operand) {
	if idx.mode == InvalidMode {
		return
	}

	if !sem.IsInteger(c.basicKindOf(idx.typ)) {
		c.errorf(idx.expr.Span(), "index %s must be integer", idx.describe(c.arena))
	}
}

// -----------------------------------------------------------------------------

func (c *Checker) unary(x *operand, e *ast.UnaryExpr) {
	x.expr = e

	var v operand
	c.rawExpr(&v, e.X)

	// *T in expression position denotes a pointer type.
	if e.Op == "*" && v.mode == TypExprMode {
		c.record(&v)
		x.mode = TypExprMode
		x.typ = c.arena.InsertType(sem.NewPointer(v.typ))
		return
	}

	c.record(&v)
	if v.mode == InvalidMode {
		return
	}

	switch e.Op {
	case "*":
		t := c.arena.Type(c.under(v.typ))
		if t.Kind != sem.PointerType {
			c.errorf(e.Span(), "invalid operation: cannot indirect %s", v.describe(c.arena))
			return
		}

		x.mode = VariableMode
		x.typ = t.Elem()
	case "-", "+":
		if !sem.IsNumeric(c.basicKindOf(v.typ)) {
			c.errorf(e.Span(), "invalid operation: operator %s not defined on %s", e.Op, v.describe(c.arena))
			return
		}

		x.mode = ValueMode
		x.typ = v.typ
		if v.mode == ConstantMode {
			x.mode = ConstantMode
			x.val = sem.UnaryOp(e.Op, v.val)
		}
	case "!":
		if !sem.IsBoolean(c.basicKindOf(v.typ)) {
			c.errorf(e.Span(), "invalid operation: operator ! not defined on %s", v.describe(c.arena))
			return
		}

		x.mode = ValueMode
		x.typ = v.typ
		if v.mode == ConstantMode {
			x.mode = ConstantMode
			x.val = sem.UnaryOp("!", v.val)
		}
	}
}

func (c *Checker) binary(x *operand, e *ast.BinaryExpr) {
	x.expr = e

	var l, r operand
	c.expr(&l, e.Lhs)
	c.expr(&r, e.Rhs)

	if l.mode == InvalidMode || r.mode == InvalidMode {
		return
	}

	switch e.Op {
	case "==", "!=", "<", "<=", ">", ">=":
		c.comparison(x, &l, &r, e.Op)
	case "&&", "||":
		if !sem.IsBoolean(c.basicKindOf(l.typ)) || !sem.IsBoolean(c.basicKindOf(r.typ)) {
			c.errorf(e.Span(), "invalid operation: operator %s not defined on %s", e.Op, l.describe(c.arena))
			return
		}

		x.mode = ValueMode
		x.typ = l.typ
		if sem.IsUntyped(c.basicKindOf(r.typ)) != sem.IsUntyped(c.basicKindOf(l.typ)) {
			x.typ = c.basic(sem.Bool)
		}

		if l.mode == ConstantMode && r.mode == ConstantMode {
			x.mode = ConstantMode
			x.val = sem.BinaryOp(l.val, e.Op, r.val)
		}
	default:
		c.arithmetic(x, &l, &r, e)
	}
}

func (c *Checker) comparison(x *operand, l, r *operand, op string) {
	if !c.mergeOperands(l, r, x.expr) {
		return
	}

	lk := c.basicKindOf(l.typ)
	ordered := sem.IsNumeric(lk) || sem.IsString(lk)
	if (op != "==" && op != "!=") && !ordered && lk != sem.InvalidBasic {
		c.errorf(x.expr.Span(), "invalid operation: operator %s not defined on %s", op, l.describe(c.arena))
		return
	}

	x.mode = ValueMode
	x.typ = c.basic(sem.UntypedBool)
	if l.mode == ConstantMode && r.mode == ConstantMode {
		x.mode = ConstantMode
		x.val = sem.Compare(l.val, op, r.val)
	}
}

func (c *Checker) arithmetic(x *operand, l, r *operand, e *ast.BinaryExpr) {
	if !c.mergeOperands(l, r, e) {
		return
	}

	lk := c.basicKindOf(l.typ)
	switch e.Op {
	case "+":
		if !sem.IsNumeric(lk) && !sem.IsString(lk) {
			c.errorf(e.Span(), "invalid operation: operator + not defined on %s", l.describe(c.arena))
			return
		}
	case "-", "*", "/":
		if !sem.IsNumeric(lk) {
			c.errorf(e.Span(), "invalid operation: operator %s not defined on %s", e.Op, l.describe(c.arena))
			return
		}
	case "%":
		if !sem.IsInteger(lk) {
			c.errorf(e.Span(), "invalid operation: operator %% not defined on %s", l.describe(c.arena))
			return
		}
	}

	if (e.Op == "/" || e.Op == "%") && r.mode == ConstantMode && r.val.IsKnown() && isZero(r.val) {
		c.errorf(e.Rhs.Span(), "invalid operation: division by zero")
		return
	}

	x.mode = ValueMode
	x.typ = l.typ
	if l.mode == ConstantMode && r.mode == ConstantMode {
		x.mode = ConstantMode
		x.val = sem.BinaryOp(l.val, e.Op, r.val)
	}
}

// mergeOperands brings the two operands of a binary operation to a common
// type, reporting a mismatch if both are typed and different.
func (c *Checker) mergeOperands(l, r *operand, e ast.Expr) bool {
	lu := sem.IsUntyped(c.basicKindOf(l.typ))
	ru := sem.IsUntyped(c.basicKindOf(r.typ))

	switch {
	case lu && !ru:
		c.convertUntyped(l, r.typ)
		if l.mode == InvalidMode {
			return false
		}
	case ru && !lu:
		c.convertUntyped(r, l.typ)
		if r.mode == InvalidMode {
			return false
		}
	case lu && ru:
		// An untyped int and an untyped float mix as untyped float.
		lk, rk := c.basicKindOf(l.typ), c.basicKindOf(r.typ)
		if lk == sem.UntypedInt && rk == sem.UntypedFloat {
			l.typ = r.typ
			l.val = convertValue(l.val, sem.UntypedFloat)
		} else if lk == sem.UntypedFloat && rk == sem.UntypedInt {
			r.typ = l.typ
			r.val = convertValue(r.val, sem.UntypedFloat)
		}
	default:
		if !c.identical(l.typ, r.typ) {
			c.errorf(e.Span(), "invalid operation: mismatched types %s and %s",
				c.arena.TypeString(l.typ), c.arena.TypeString(r.typ))
			return false
		}
	}

	return true
}

func isZero(v sem.Value) bool {
	switch v.Kind {
	case sem.IntValue:
		return v.Int() == 0
	case sem.FloatValue:
		return v.Float() == 0
	}

	return false
}

// -----------------------------------------------------------------------------

func (c *Checker) funcLit(x *operand, e *ast.FuncLit) {
	sig := c.funcSignature(nil, e.Type)

	saved := c.octx
	c.octx.sig = sig
	c.octx.labels = sem.NoScope
	c.octx.loopDepth = 0
	c.funcScopeBody(sig, e.Body, "function literal")
	c.octx = saved

	x.mode = ValueMode
	x.typ = sig
}

// -----------------------------------------------------------------------------

// under resolves a type to its underlying type, following the chain of named
// types.  An unresolved or cyclic chain yields the invalid type.
func (c *Checker) under(t sem.TypeKey) sem.TypeKey {
	for depth := 0; depth < 64; depth++ {
		if t == sem.NoType {
			return c.invalid()
		}

		tt := c.arena.Type(t)
		if tt.Kind != sem.NamedType {
			return t
		}

		t = tt.Underlying()
	}

	return c.invalid()
}

// basicKindOf returns the basic kind underlying the given type, or
// InvalidBasic for non-basic types.
func (c *Checker) basicKindOf(t sem.TypeKey) sem.BasicKind {
	if t == sem.NoType {
		return sem.InvalidBasic
	}

	u := c.arena.Type(c.under(t))
	if u.Kind != sem.BasicType {
		return sem.InvalidBasic
	}

	return u.Basic()
}

// identical reports whether two types are structurally identical.  Named
// types are identical only to themselves.
func (c *Checker) identical(a, b sem.TypeKey) bool {
	if a == b {
		return true
	}

	if a == sem.NoType || b == sem.NoType {
		return false
	}

	ta, tb := c.arena.Type(a), c.arena.Type(b)
	if ta.Kind != tb.Kind {
		return false
	}

	switch ta.Kind {
	case sem.InvalidType:
		return true
	case sem.BasicType:
		return ta.Basic() == tb.Basic()
	case sem.PointerType, sem.SliceType:
		return c.identical(ta.Elem(), tb.Elem())
	case sem.MapType:
		return c.identical(ta.KeyType(), tb.KeyType()) && c.identical(ta.Elem(), tb.Elem())
	case sem.TupleType:
		va, vb := ta.TupleVars(), tb.TupleVars()
		if len(va) != len(vb) {
			return false
		}

		for i := range va {
			if !c.identical(c.arena.Obj(va[i]).Type, c.arena.Obj(vb[i]).Type) {
				return false
			}
		}

		return true
	case sem.SignatureType:
		return c.identical(ta.Params(), tb.Params()) && c.identical(ta.Results(), tb.Results())
	case sem.InterfaceType:
		ma, mb := ta.Methods(), tb.Methods()
		if len(ma) != len(mb) {
			return false
		}

		for i := range ma {
			oa, ob := c.arena.Obj(ma[i]), c.arena.Obj(mb[i])
			if oa.Name != ob.Name || !c.identical(oa.Type, ob.Type) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// assignableTo reports whether an operand may be assigned to the target type.
func (c *Checker) assignableTo(x *operand, target sem.TypeKey) bool {
	if x.typ == c.invalid() || target == c.invalid() {
		return true
	}

	if c.identical(x.typ, target) {
		return true
	}

	xt := c.arena.Type(x.typ)
	tt := c.arena.Type(target)

	// Untyped values are assignable when representable in the target.
	if xk := c.basicKindOf(x.typ); xt.Kind == sem.BasicType && sem.IsUntyped(xk) {
		return c.representable(xk, target)
	}

	// A named and an unnamed type with identical underlying types assign
	// either way.
	if (xt.Kind == sem.NamedType) != (tt.Kind == sem.NamedType) {
		if c.identical(c.under(x.typ), c.under(target)) {
			return true
		}
	}

	// Any type whose method set covers the interface implements it.
	if ut := c.arena.Type(c.under(target)); ut.Kind == sem.InterfaceType {
		return c.implements(x.typ, c.under(target))
	}

	return false
}

// representable reports whether an untyped basic kind is representable in the
// target type.
func (c *Checker) representable(kind sem.BasicKind, target sem.TypeKey) bool {
	tk := c.basicKindOf(target)

	switch kind {
	case sem.UntypedInt:
		return sem.IsNumeric(tk) || tk == sem.UntypedInt || tk == sem.UntypedFloat
	case sem.UntypedFloat:
		return tk == sem.Float32 || tk == sem.Float64 || tk == sem.UntypedFloat
	case sem.UntypedBool:
		return sem.IsBoolean(tk)
	case sem.UntypedString:
		return sem.IsString(tk)
	case sem.UntypedNil:
		switch c.arena.Type(c.under(target)).Kind {
		case sem.PointerType, sem.SliceType, sem.MapType, sem.SignatureType, sem.InterfaceType:
			return true
		}

		return false
	}

	return false
}

// implements reports whether the method set of typ covers every method of the
// given interface type.
func (c *Checker) implements(typ, iface sem.TypeKey) bool {
	for _, want := range c.arena.Type(iface).Methods() {
		m := c.lookupMethod(typ, c.arena.Obj(want).Name)
		if m == sem.NoObj {
			return false
		}
	}

	return true
}

// convertUntyped forces an untyped operand to the target type, updating its
// provisional recorded result.  Typed operands pass through unchanged.
func (c *Checker) convertUntyped(x *operand, target sem.TypeKey) {
	if x.mode == InvalidMode {
		return
	}

	xk := c.basicKindOf(x.typ)
	if c.arena.Type(x.typ).Kind != sem.BasicType || !sem.IsUntyped(xk) {
		return
	}

	if target == c.invalid() {
		x.setInvalid(c.invalid())
		return
	}

	if sem.IsUntyped(c.basicKindOf(target)) && c.arena.Type(target).Kind == sem.BasicType {
		return
	}

	if !c.representable(xk, target) {
		c.errorf(x.expr.Span(), "cannot convert %s to type %s", x.describe(c.arena), c.arena.TypeString(target))
		x.setInvalid(c.invalid())
		return
	}

	x.typ = target
	if x.mode == ConstantMode {
		x.val = convertValue(x.val, c.basicKindOf(target))
	}

	if info, ok := c.fctx.untyped[x.expr]; ok {
		info.typ = target
		info.val = x.val
		c.fctx.untyped[x.expr] = info
	}
}

// defaultType resolves an operand to its default type: untyped constants get
// their typed counterparts, untyped nil is an error.
func (c *Checker) defaultType(x *operand) sem.TypeKey {
	var target sem.TypeKey

	switch c.basicKindOf(x.typ) {
	case sem.UntypedInt:
		target = c.basic(sem.Int)
	case sem.UntypedFloat:
		target = c.basic(sem.Float64)
	case sem.UntypedBool:
		target = c.basic(sem.Bool)
	case sem.UntypedString:
		target = c.basic(sem.Str)
	case sem.UntypedNil:
		c.errorf(x.expr.Span(), "use of untyped nil")
		return c.invalid()
	default:
		return x.typ
	}

	c.convertUntyped(x, target)
	return target
}

// assignTo checks that an operand is assignable to the target type in the
// given context.
func (c *Checker) assignTo(x *operand, target sem.TypeKey, context string) {
	c.convertUntyped(x, target)
	if x.mode == InvalidMode {
		return
	}

	if !c.assignableTo(x, target) {
		c.errorf(x.expr.Span(), "cannot use %s as %s value in %s", x.describe(c.arena), c.arena.TypeString(target), context)
		x.setInvalid(c.invalid())
	}
}

// assign checks a single-value assignment to a variable of the given type.
func (c *Checker) assign(x *operand, target sem.TypeKey) {
	c.assignTo(x, target, "assignment")
}

// recordCommaOkTypes rewrites the recorded result of an expression used in
// comma-ok form: the expression and every parenthesized form of it become a
// tuple of two fresh unnamed variables carrying the value and ok types.
func (c *Checker) recordCommaOkTypes(e ast.Expr, t0, t1 sem.TypeKey) {
	v0 := c.arena.InsertObject(sem.NewVar(nil, c.pkg, "", t0))
	v1 := c.arena.InsertObject(sem.NewVar(nil, c.pkg, "", t1))
	tuple := c.arena.InsertType(sem.NewTuple([]sem.ObjKey{v0, v1}))

	for {
		c.info.RecordTypeAndValue(e, CommaOKMode, tuple, sem.Value{})
		delete(c.fctx.untyped, e)

		p, ok := e.(*ast.ParenExpr)
		if !ok {
			break
		}

		e = p.X
	}
}
