package check

import (
	"strings"

	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/report"
	"github.com/ndrsllwngr/goscript/sem"
)

// collectObjects walks every file of the package and declares all package
// level objects: it resolves imports into the file scopes and inserts the
// package's own declarations into the package scope.  No types are computed
// and no identifiers are resolved here beyond receiver base types.
func (c *Checker) collectObjects() {
	pkgScope := c.arena.Pkg(c.pkg).Scope()

	var imports []sem.PackageKey
	seenImports := make(map[sem.PackageKey]bool)

	type methodRef struct {
		base *ast.Ident
		obj  sem.ObjKey
	}
	var methodRefs []methodRef

	for fileIdx, file := range c.fctx.files {
		c.octx.fileIdx = fileIdx

		fileScope := c.arena.NewScope(pkgScope, "file "+file.ReprPath)
		c.fctx.fileScopes = append(c.fctx.fileScopes, fileScope)
		c.fctx.fileImports = append(c.fctx.fileImports, nil)
		c.info.RecordScope(file, fileScope)

		for _, imp := range file.Imports {
			pkgKey := c.importPackage(imp)
			if !seenImports[pkgKey] {
				seenImports[pkgKey] = true
				imports = append(imports, pkgKey)
			}

			c.declareImport(fileScope, imp, pkgKey)
		}

		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.ConstDecl:
				c.collectConstDecl(fileIdx, d)
			case *ast.VarDecl:
				c.collectVarDecl(fileIdx, d)
			case *ast.TypeDecl:
				obj := c.arena.InsertObject(sem.NewTypeName(d.Name.Span(), c.pkg, d.Name.Name, sem.NoType))
				info := sem.NewDeclInfo(fileIdx)
				info.TypeExpr = d.Target
				c.declarePkgObj(d.Name, obj, c.arena.InsertDecl(info))
			case *ast.FuncDecl:
				obj := c.arena.InsertObject(sem.NewFunc(d.Name.Span(), c.pkg, d.Name.Name, sem.NoType))

				info := sem.NewDeclInfo(fileIdx)
				info.Body = d.Body
				declKey := c.arena.InsertDecl(info)

				c.info.RecordDef(d.Name, obj)
				c.objMap[obj] = declKey
				c.fctx.funcs[obj] = d

				if d.Recv != nil {
					if base := receiverBase(d.Recv.Type); base != nil {
						methodRefs = append(methodRefs, methodRef{base: base, obj: obj})
					} else {
						c.errorf(d.Recv.Span(), "invalid receiver type")
					}
				} else if d.Name.Name == "init" {
					// init functions are never inserted into the package
					// scope and so cannot be referred to.
					if len(d.Signature.Params) > 0 || len(d.Signature.Results) > 0 {
						c.errorf(d.Name.Span(), "func init must have no arguments and no return values")
					}
				} else {
					c.declare(pkgScope, d.Name, obj)
				}
			}
		}
	}

	c.arena.Pkg(c.pkg).SetImports(imports)

	// A name may not be declared in both a file scope and the package scope.
	for fileIdx, fileScope := range c.fctx.fileScopes {
		c.octx.fileIdx = fileIdx
		scope := c.arena.Scope(fileScope)

		for _, name := range scope.Names() {
			if prev := c.arena.Scope(pkgScope).Lookup(name); prev != sem.NoObj {
				obj := c.arena.Obj(scope.Lookup(name))
				c.errorf(obj.Pos, "%s redeclared in this block\n\tother declaration at %s", name, c.arena.Obj(prev).Pos)
			}
		}
	}

	// Resolve receiver base types now that the package scope is populated.
	for _, ref := range methodRefs {
		baseObj := c.arena.Scope(pkgScope).Lookup(ref.base.Name)
		if baseObj == sem.NoObj || c.arena.Obj(baseObj).Kind != sem.TypeNameObj {
			d := c.fctx.funcs[ref.obj]
			c.octx.fileIdx = c.arena.Decl(c.objMap[ref.obj]).File
			c.errorf(d.Recv.Span(), "invalid receiver type %s", ref.base.Name)
			continue
		}

		c.fctx.methods[baseObj] = append(c.fctx.methods[baseObj], ref.obj)
	}
}

// receiverBase returns the base type name of a receiver type expression,
// unwrapping a single pointer indirection and any parentheses.
func receiverBase(e ast.Expr) *ast.Ident {
	e = ast.Unparen(e)
	if star, ok := e.(*ast.StarExpr); ok {
		e = ast.Unparen(star.Elem)
	}

	id, _ := e.(*ast.Ident)
	return id
}

// -----------------------------------------------------------------------------

// collectConstDecl declares the constants of one constant declaration.  A
// spec with neither type nor values inherits both from the last spec that had
// them; iota counts specs from the top of the declaration.
func (c *Checker) collectConstDecl(fileIdx int, d *ast.ConstDecl) {
	var inherited *ast.ValueSpec

	for specIdx, spec := range d.Specs {
		source := spec
		if spec.Type == nil && spec.Values == nil {
			if inherited == nil {
				c.errorf(spec.Span(), "missing init expr for %s", spec.Names[0].Name)
			}

			source = inherited
		} else {
			inherited = spec
		}

		for nameIdx, name := range spec.Names {
			obj := c.arena.InsertObject(sem.NewConst(name.Span(), c.pkg, name.Name, sem.NoType, sem.Value{}))

			info := sem.NewDeclInfo(fileIdx)
			info.IotaIdx = specIdx
			if source != nil {
				info.TypeExpr = source.Type
				if nameIdx < len(source.Values) {
					info.Init = source.Values[nameIdx]
				} else {
					c.errorf(name.Span(), "missing init expr for %s", name.Name)
				}
			}

			c.declarePkgObj(name, obj, c.arena.InsertDecl(info))
		}

		if source != nil && len(source.Values) > len(spec.Names) && source == spec {
			c.errorf(spec.Values[len(spec.Names)].Span(), "extra init expr")
		}
	}
}

// collectVarDecl declares the variables of one variable declaration.  A spec
// initializing several names from a single expression shares one declaration
// record between all of its objects.
func (c *Checker) collectVarDecl(fileIdx int, d *ast.VarDecl) {
	for _, spec := range d.Specs {
		switch {
		case len(spec.Values) == 1 && len(spec.Names) > 1:
			info := sem.NewDeclInfo(fileIdx)
			info.TypeExpr = spec.Type
			info.Init = spec.Values[0]
			declKey := c.arena.InsertDecl(info)

			for _, name := range spec.Names {
				obj := c.arena.InsertObject(sem.NewVar(name.Span(), c.pkg, name.Name, sem.NoType))
				info.Lhs = append(info.Lhs, obj)
				c.declarePkgObj(name, obj, declKey)
			}
		default:
			if len(spec.Values) > 0 && len(spec.Values) != len(spec.Names) {
				c.errorf(spec.Span(), "assignment mismatch: %d variables but %d values", len(spec.Names), len(spec.Values))
			}

			for nameIdx, name := range spec.Names {
				obj := c.arena.InsertObject(sem.NewVar(name.Span(), c.pkg, name.Name, sem.NoType))

				info := sem.NewDeclInfo(fileIdx)
				info.TypeExpr = spec.Type
				if nameIdx < len(spec.Values) {
					info.Init = spec.Values[nameIdx]
				}

				c.declarePkgObj(name, obj, c.arena.InsertDecl(info))
			}
		}
	}
}

// declarePkgObj records the defining identifier of a package level object,
// inserts it into the package scope, and registers its declaration record.
func (c *Checker) declarePkgObj(id *ast.Ident, obj sem.ObjKey, decl sem.DeclKey) {
	c.declare(c.arena.Pkg(c.pkg).Scope(), id, obj)
	c.objMap[obj] = decl
}

// declare records the defining identifier of an object and inserts it into
// the given scope.  A redeclaration leaves the previous binding in place and
// reports a hard error; the blank identifier is never bound.
func (c *Checker) declare(scope sem.ScopeKey, id *ast.Ident, obj sem.ObjKey) {
	c.info.RecordDef(id, obj)

	if prev := c.arena.Scope(scope).Insert(id.Name, obj); prev != sem.NoObj {
		c.errorf(id.Span(), "%s redeclared in this block\n\tother declaration at %s", id.Name, c.arena.Obj(prev).Pos)
	}
}

// -----------------------------------------------------------------------------

// importPackage resolves one import declaration to a package.  A failed
// import is reported once and replaced by a fake package so later references
// through it stay silent.
func (c *Checker) importPackage(imp *ast.ImportDecl) sem.PackageKey {
	path := imp.Path

	if path == "unsafe" {
		return c.arena.Universe.Unsafe
	}

	if c.conf.Importer != nil {
		pkgKey, err := c.conf.Importer.Import(path)
		if err == nil {
			return pkgKey
		}

		c.errorf(imp.PathSpan, "could not import %s (%s)", path, err)
	} else {
		c.errorf(imp.PathSpan, "could not import %s (no importer)", path)
	}

	if fake, ok := c.fakes[path]; ok {
		return fake
	}

	name := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		name = path[i+1:]
	}

	fake := c.arena.NewPackage(path, name)
	c.arena.Pkg(fake).MarkFake()
	c.arena.Pkg(fake).MarkComplete()
	c.fakes[path] = fake
	return fake
}

// declareImport binds one resolved import in the given file scope: as a
// package name, as the exported bindings of a dot import, or not at all for a
// blank import.
func (c *Checker) declareImport(fileScope sem.ScopeKey, imp *ast.ImportDecl, pkgKey sem.PackageKey) {
	pkg := c.arena.Pkg(pkgKey)

	if imp.Alias != nil && imp.Alias.Name == "." {
		c.declareDotImport(fileScope, imp, pkgKey)
		return
	}

	name := pkg.Name()
	pos := imp.PathSpan
	if imp.Alias != nil {
		name = imp.Alias.Name
		pos = imp.Alias.Span()
	}

	obj := c.arena.InsertObject(sem.NewPkgName(pos, c.pkg, name, pkgKey))

	if imp.Alias != nil {
		c.info.RecordDef(imp.Alias, obj)
	} else {
		c.info.RecordImplicit(imp, obj)
	}

	if name == sem.BlankName {
		return
	}

	if prev := c.arena.Scope(fileScope).Insert(name, obj); prev != sem.NoObj {
		c.errorf(pos, "%s redeclared in this block\n\tother declaration at %s", name, c.arena.Obj(prev).Pos)
		return
	}

	c.addImportBinding(importBinding{obj: obj, pkg: pkgKey})
}

// addImportBinding appends an import binding to the current file's list.
func (c *Checker) addImportBinding(b importBinding) {
	c.fctx.fileImports[len(c.fctx.fileImports)-1] = append(c.fctx.fileImports[len(c.fctx.fileImports)-1], b)
}

// declareDotImport inserts every exported object of the imported package
// directly into the file scope and registers the import for unused tracking.
func (c *Checker) declareDotImport(fileScope sem.ScopeKey, imp *ast.ImportDecl, pkgKey sem.PackageKey) {
	scope := c.arena.Scope(c.arena.Pkg(pkgKey).Scope())

	for _, name := range scope.Names() {
		objKey := scope.Lookup(name)
		if !c.arena.Obj(objKey).Exported() {
			continue
		}

		if prev := c.arena.Scope(fileScope).Insert(name, objKey); prev != sem.NoObj {
			c.errorf(imp.PathSpan, "%s redeclared in this block\n\tother declaration at %s", name, c.arena.Obj(prev).Pos)
			continue
		}

		c.fctx.dotImportPkgs[dotImportKey{scope: fileScope, obj: objKey}] = pkgKey
	}

	unused := c.fctx.unusedDotImports[fileScope]
	if unused == nil {
		unused = make(map[sem.PackageKey]*report.TextSpan)
		c.fctx.unusedDotImports[fileScope] = unused
	}

	unused[pkgKey] = imp.PathSpan
	c.addImportBinding(importBinding{obj: sem.NoObj, pkg: pkgKey})
}
