package check

import (
	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/sem"
)

// builtin checks a call of a predeclared builtin function.  Builtins have no
// fixed signature; the call-site specific signature is built from the actual
// arguments and recorded against the call's function expression.
func (c *Checker) builtin(x *operand, e *ast.CallExpr, id sem.BuiltinID) {
	switch id {
	case sem.BuiltinLen, sem.BuiltinCap:
		name := "len"
		if id == sem.BuiltinCap {
			name = "cap"
		}

		var a operand
		if !c.builtinArgs(e, name, 1, 1, &a) {
			return
		}

		t := c.arena.Type(c.under(a.typ))
		switch {
		case t.Kind == sem.SliceType:
		case t.Kind == sem.MapType && id == sem.BuiltinLen:
		case t.Kind == sem.BasicType && sem.IsString(t.Basic()) && id == sem.BuiltinLen:
			if a.mode == ConstantMode && a.val.Kind == sem.StringValue {
				x.mode = ConstantMode
				x.val = sem.MakeInt(int64(len(a.val.Str())))
			}
		case t.Kind == sem.InvalidType:
			return
		default:
			c.errorf(e.Args[0].Span(), "invalid argument %s for %s", a.describe(c.arena), name)
			return
		}

		if x.mode != ConstantMode {
			x.mode = ValueMode
		}

		x.typ = c.basic(sem.Int)
		c.info.RecordBuiltinType(e.Fn, c.makeSig(x.typ, a.typ))
	case sem.BuiltinNew:
		if len(e.Args) != 1 {
			c.errorf(e.Span(), "wrong number of arguments in call to new")
			return
		}

		t := c.typExpr(e.Args[0])
		x.mode = ValueMode
		x.typ = c.arena.InsertType(sem.NewPointer(t))
		c.info.RecordBuiltinType(e.Fn, c.makeSig(x.typ, t))
	case sem.BuiltinMake:
		if len(e.Args) < 1 {
			c.errorf(e.Span(), "not enough arguments in call to make")
			return
		}

		t := c.typExpr(e.Args[0])
		var max int
		switch c.arena.Type(c.under(t)).Kind {
		case sem.SliceType:
			max = 3
			if len(e.Args) < 2 {
				c.errorf(e.Span(), "not enough arguments in call to make")
				return
			}
		case sem.MapType:
			max = 2
		case sem.InvalidType:
			return
		default:
			c.errorf(e.Args[0].Span(), "cannot make %s", c.arena.TypeString(t))
			return
		}

		if len(e.Args) > max {
			c.errorf(e.Args[max].Span(), "too many arguments in call to make")
			return
		}

		argTypes := []sem.TypeKey{t}
		for _, arg := range e.Args[1:] {
			var a operand
			c.expr(&a, arg)
			if a.mode != InvalidMode && !sem.IsInteger(c.basicKindOf(a.typ)) {
				c.errorf(arg.Span(), "size argument %s must be integer", a.describe(c.arena))
			}

			argTypes = append(argTypes, c.basic(sem.Int))
		}

		x.mode = ValueMode
		x.typ = t
		c.info.RecordBuiltinType(e.Fn, c.makeSig(t, argTypes...))
	case sem.BuiltinAppend:
		if len(e.Args) < 1 {
			c.errorf(e.Span(), "not enough arguments in call to append")
			return
		}

		var s operand
		c.expr(&s, e.Args[0])
		if s.mode == InvalidMode {
			return
		}

		t := c.arena.Type(c.under(s.typ))
		if t.Kind != sem.SliceType {
			c.errorf(e.Args[0].Span(), "first argument to append must be a slice; have %s", s.describe(c.arena))
			return
		}

		argTypes := []sem.TypeKey{s.typ}
		for _, arg := range e.Args[1:] {
			var a operand
			c.expr(&a, arg)
			if a.mode != InvalidMode {
				c.assignTo(&a, t.Elem(), "append")
			}

			argTypes = append(argTypes, t.Elem())
		}

		x.mode = ValueMode
		x.typ = s.typ
		c.info.RecordBuiltinType(e.Fn, c.makeSig(s.typ, argTypes...))
	case sem.BuiltinCopy:
		var dst, src operand
		if !c.builtinArgs2(e, "copy", &dst, &src) {
			return
		}

		dt := c.arena.Type(c.under(dst.typ))
		if dt.Kind != sem.SliceType {
			c.errorf(e.Args[0].Span(), "invalid argument %s for copy", dst.describe(c.arena))
			return
		}

		st := c.arena.Type(c.under(src.typ))
		srcOk := st.Kind == sem.SliceType && c.identical(st.Elem(), dt.Elem())
		srcOk = srcOk || (st.Kind == sem.BasicType && sem.IsString(st.Basic()) && c.identical(dt.Elem(), c.basic(sem.Uint8)))
		if !srcOk {
			c.errorf(e.Args[1].Span(), "invalid argument %s for copy", src.describe(c.arena))
			return
		}

		x.mode = ValueMode
		x.typ = c.basic(sem.Int)
		c.info.RecordBuiltinType(e.Fn, c.makeSig(x.typ, dst.typ, src.typ))
	case sem.BuiltinDelete:
		var m, k operand
		if !c.builtinArgs2(e, "delete", &m, &k) {
			return
		}

		mt := c.arena.Type(c.under(m.typ))
		if mt.Kind != sem.MapType {
			c.errorf(e.Args[0].Span(), "first argument to delete must be a map; have %s", m.describe(c.arena))
			return
		}

		if k.mode != InvalidMode {
			c.assignTo(&k, mt.KeyType(), "delete")
		}

		x.mode = NoValueMode
		x.typ = c.invalid()
		c.info.RecordBuiltinType(e.Fn, c.makeSig(sem.NoType, m.typ, mt.KeyType()))
	case sem.BuiltinPanic:
		var a operand
		if !c.builtinArgs(e, "panic", 1, 1, &a) {
			return
		}

		x.mode = NoValueMode
		x.typ = c.invalid()
		c.info.RecordBuiltinType(e.Fn, c.makeSig(sem.NoType, c.defaultOf(a.typ)))
	case sem.BuiltinPrint, sem.BuiltinPrintln:
		var argTypes []sem.TypeKey
		for _, arg := range e.Args {
			var a operand
			c.expr(&a, arg)
			argTypes = append(argTypes, c.defaultOf(a.typ))
		}

		x.mode = NoValueMode
		x.typ = c.invalid()
		c.info.RecordBuiltinType(e.Fn, c.makeSig(sem.NoType, argTypes...))
	}
}

// builtinArgs checks the argument count of a builtin call and evaluates the
// first argument.
func (c *Checker) builtinArgs(e *ast.CallExpr, name string, min, max int, a *operand) bool {
	if len(e.Args) < min {
		c.errorf(e.Span(), "not enough arguments in call to %s", name)
		return false
	}

	if len(e.Args) > max {
		c.errorf(e.Args[max].Span(), "too many arguments in call to %s", name)
		return false
	}

	c.expr(a, e.Args[0])
	return a.mode != InvalidMode
}

func (c *Checker) builtinArgs2(e *ast.CallExpr, name string, a, b *operand) bool {
	if !c.builtinArgs(e, name, 2, 2, a) {
		return false
	}

	c.expr(b, e.Args[1])
	return b.mode != InvalidMode
}

// makeSig builds a signature type over the given parameter types, with a
// single result unless the result type is absent.
func (c *Checker) makeSig(result sem.TypeKey, params ...sem.TypeKey) sem.TypeKey {
	var paramVars []sem.ObjKey
	for _, t := range params {
		paramVars = append(paramVars, c.arena.InsertObject(sem.NewVar(nil, sem.NoPkg, "", t)))
	}

	var resultVars []sem.ObjKey
	if result != sem.NoType {
		resultVars = append(resultVars, c.arena.InsertObject(sem.NewVar(nil, sem.NoPkg, "", result)))
	}

	paramTuple := c.arena.InsertType(sem.NewTuple(paramVars))
	resultTuple := c.arena.InsertType(sem.NewTuple(resultVars))
	return c.arena.InsertType(sem.NewSignature(sem.NoObj, paramTuple, resultTuple))
}
