package check

import (
	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/sem"
)

// typExpr checks an expression expected to denote a type and returns the type
// it denotes, or the invalid placeholder type.  The expression and its
// identifiers are recorded.
func (c *Checker) typExpr(e ast.Expr) sem.TypeKey {
	t := c.typExprInternal(e)
	c.info.RecordTypeAndValue(e, TypExprMode, t, sem.Value{})
	return t
}

func (c *Checker) typExprInternal(e ast.Expr) sem.TypeKey {
	switch e := e.(type) {
	case *ast.Ident:
		var x operand
		c.ident(&x, e)

		switch x.mode {
		case TypExprMode:
			return x.typ
		case InvalidMode:
			return c.invalid()
		default:
			c.errorf(e.Span(), "%s is not a type", e.Name)
			return c.invalid()
		}
	case *ast.SelectorExpr:
		var x operand
		c.selector(&x, e)

		switch x.mode {
		case TypExprMode:
			return x.typ
		case InvalidMode:
			return c.invalid()
		default:
			c.errorf(e.Span(), "%s.%s is not a type", exprString(e.X), e.Sel.Name)
			return c.invalid()
		}
	case *ast.ParenExpr:
		return c.typExpr(e.X)
	case *ast.StarExpr:
		return c.arena.InsertType(sem.NewPointer(c.typExpr(e.Elem)))
	case *ast.SliceTypeExpr:
		return c.arena.InsertType(sem.NewSlice(c.typExpr(e.Elem)))
	case *ast.MapTypeExpr:
		key := c.typExpr(e.Key)
		return c.arena.InsertType(sem.NewMap(key, c.typExpr(e.Value)))
	case *ast.FuncTypeExpr:
		return c.funcSignature(nil, e)
	case *ast.InterfaceTypeExpr:
		return c.interfaceType(e)
	default:
		c.errorf(e.Span(), "expression is not a type")
		return c.invalid()
	}
}

// -----------------------------------------------------------------------------

// funcSignature checks a function type expression, with an optional method
// receiver, into a signature type.  Parameter and result objects are created
// here; they are bound into a function scope only when a body is checked.
func (c *Checker) funcSignature(recv *ast.Param, ftype *ast.FuncTypeExpr) sem.TypeKey {
	recvObj := sem.NoObj
	if recv != nil {
		recvObj = c.declareParam(recv)
	}

	params := c.arena.InsertType(sem.NewTuple(c.paramVars(ftype.Params)))
	results := c.arena.InsertType(sem.NewTuple(c.paramVars(ftype.Results)))

	return c.arena.InsertType(sem.NewSignature(recvObj, params, results))
}

func (c *Checker) paramVars(fields []*ast.Param) []sem.ObjKey {
	var vars []sem.ObjKey
	for _, field := range fields {
		vars = append(vars, c.declareParam(field))
	}

	return vars
}

// declareParam creates the variable object of one parameter or result.  A
// named parameter records its defining identifier; an anonymous one is
// recorded as an implicit of the parameter node.
func (c *Checker) declareParam(field *ast.Param) sem.ObjKey {
	typ := c.typExpr(field.Type)

	if field.Name != nil {
		obj := c.arena.InsertObject(sem.NewVar(field.Name.Span(), c.pkg, field.Name.Name, typ))
		c.info.RecordDef(field.Name, obj)
		return obj
	}

	obj := c.arena.InsertObject(sem.NewVar(field.Span(), c.pkg, "", typ))
	c.info.RecordImplicit(field, obj)
	return obj
}

// interfaceType checks an interface type expression.  Each method becomes a
// function object owned by the interface.
func (c *Checker) interfaceType(e *ast.InterfaceTypeExpr) sem.TypeKey {
	var methods []sem.ObjKey
	seen := make(map[string]bool)

	for _, m := range e.Methods {
		if seen[m.Name.Name] {
			c.errorf(m.Name.Span(), "duplicate method %s", m.Name.Name)
			continue
		}

		seen[m.Name.Name] = true

		sig := c.funcSignature(nil, m.Type)
		obj := c.arena.InsertObject(sem.NewFunc(m.Name.Span(), c.pkg, m.Name.Name, sig))
		c.info.RecordDef(m.Name, obj)
		methods = append(methods, obj)
	}

	return c.arena.InsertType(sem.NewInterface(methods))
}

// -----------------------------------------------------------------------------

// exprString renders an expression for diagnostic output.
func exprString(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.Literal:
		return e.Value
	case *ast.ParenExpr:
		return "(" + exprString(e.X) + ")"
	case *ast.SelectorExpr:
		return exprString(e.X) + "." + e.Sel.Name
	case *ast.CallExpr:
		return exprString(e.Fn) + "(...)"
	case *ast.IndexExpr:
		return exprString(e.X) + "[" + exprString(e.Index) + "]"
	case *ast.UnaryExpr:
		return e.Op + exprString(e.X)
	case *ast.BinaryExpr:
		return exprString(e.Lhs) + " " + e.Op + " " + exprString(e.Rhs)
	default:
		return "expression"
	}
}
