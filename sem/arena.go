package sem

// Arena is the container of all managed entities: declared objects, types,
// packages, scopes, and declaration info records live in per-category stores
// addressed by opaque keys.  Every cross-entity reference is a key lookup,
// never a direct link, so arbitrarily cyclic entity graphs (scope trees,
// mutually recursive types, declaration dependencies) involve no ownership
// cycles.
//
// The stores are append-only: insertion returns a fresh key, keys stay valid
// for the lifetime of the arena, and insertions into one category never
// disturb keys of another.  Nothing is ever deleted; entries live until the
// whole arena is discarded.  A key from the wrong category, like any
// out-of-range key, fails the bounds check and panics: misuse is a
// programming error, not a recoverable condition.
type Arena struct {
	objects []*Object
	types   []*Type
	pkgs    []*Package
	scopes  []*Scope
	decls   []*DeclInfo

	// Universe holds the predeclared entities shared by all packages.
	Universe *Universe
}

// NewArena creates a new arena holding the universe scope, the predeclared
// objects and types, and the unsafe package.  An arena may be shared across
// multiple packages checked in import order.
func NewArena() *Arena {
	a := &Arena{}

	uniScope := a.NewScope(NoScope, "universe")
	a.Universe = &Universe{Scope: uniScope, basics: make(map[BasicKind]TypeKey)}
	a.defineUniverse()

	unsafeScope := a.NewScope(uniScope, "package unsafe")
	a.Universe.Unsafe = a.insertPackage(&Package{path: "unsafe", name: "unsafe", scope: unsafeScope})

	return a
}

// -----------------------------------------------------------------------------

// NewScope creates a new scope chained to the given parent scope, or to no
// scope at all for the universe scope.  The new scope is registered as a
// child of its parent unless the parent is the universe scope.
func (a *Arena) NewScope(parent ScopeKey, label string) ScopeKey {
	key := ScopeKey(len(a.scopes))
	a.scopes = append(a.scopes, newScope(parent, label))

	if parent != NoScope && (a.Universe == nil || parent != a.Universe.Scope) {
		p := a.scopes[parent]
		p.children = append(p.children, key)
	}

	return key
}

// Scope returns the scope identified by the given key.
func (a *Arena) Scope(key ScopeKey) *Scope {
	return a.scopes[key]
}

// InsertObject adds an object to the arena and returns its key.
func (a *Arena) InsertObject(obj *Object) ObjKey {
	key := ObjKey(len(a.objects))
	a.objects = append(a.objects, obj)
	return key
}

// Obj returns the object identified by the given key.
func (a *Arena) Obj(key ObjKey) *Object {
	return a.objects[key]
}

// InsertType adds a type to the arena and returns its key.
func (a *Arena) InsertType(t *Type) TypeKey {
	key := TypeKey(len(a.types))
	a.types = append(a.types, t)
	return key
}

// Type returns the type identified by the given key.
func (a *Arena) Type(key TypeKey) *Type {
	return a.types[key]
}

// NewPackage creates a new package with a fresh scope chained to the universe
// scope.
func (a *Arena) NewPackage(path, name string) PackageKey {
	scope := a.NewScope(a.Universe.Scope, "package "+path)
	return a.insertPackage(&Package{path: path, name: name, scope: scope})
}

func (a *Arena) insertPackage(pkg *Package) PackageKey {
	key := PackageKey(len(a.pkgs))
	a.pkgs = append(a.pkgs, pkg)
	return key
}

// Pkg returns the package identified by the given key.
func (a *Arena) Pkg(key PackageKey) *Package {
	return a.pkgs[key]
}

// InsertDecl adds a declaration info record to the arena and returns its key.
func (a *Arena) InsertDecl(d *DeclInfo) DeclKey {
	key := DeclKey(len(a.decls))
	a.decls = append(a.decls, d)
	return key
}

// Decl returns the declaration info record identified by the given key.
func (a *Arena) Decl(key DeclKey) *DeclInfo {
	return a.decls[key]
}

// -----------------------------------------------------------------------------

// LookupParent resolves a name by walking from the given scope outward
// through the parent chain until a binding is found or the universe scope is
// exhausted.  It returns the scope the binding was found in along with the
// bound object, or NoScope and NoObj.
func (a *Arena) LookupParent(scope ScopeKey, name string) (ScopeKey, ObjKey) {
	for scope != NoScope {
		if obj := a.scopes[scope].Lookup(name); obj != NoObj {
			return scope, obj
		}

		scope = a.scopes[scope].parent
	}

	return NoScope, NoObj
}

// TypeString returns a representative string for the given type for purposes
// of diagnostic output.
func (a *Arena) TypeString(key TypeKey) string {
	if key == NoType {
		return "<unknown>"
	}

	t := a.types[key]
	switch t.Kind {
	case BasicType:
		return t.name
	case PointerType:
		return "*" + a.TypeString(t.elem)
	case SliceType:
		return "[]" + a.TypeString(t.elem)
	case MapType:
		return "map[" + a.TypeString(t.key) + "]" + a.TypeString(t.elem)
	case TupleType:
		s := "("
		for i, v := range t.vars {
			if i > 0 {
				s += ", "
			}
			s += a.TypeString(a.objects[v].Type)
		}
		return s + ")"
	case SignatureType:
		return "func" + a.TypeString(t.params) + " " + a.TypeString(t.results)
	case InterfaceType:
		return "interface"
	case NamedType:
		return a.objects[t.obj].Name
	default:
		return "<invalid>"
	}
}
