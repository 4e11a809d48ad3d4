package sem

import "sort"

// BlankName is the reserved placeholder name.  It is accepted by callers of
// Insert but never actually bound in any scope.
const BlankName = "_"

// Scope is a single lexical binding table.  Scopes form a strict tree rooted
// at the universe scope: every scope except the universe scope has a parent,
// and a scope records its children for introspection.  A scope maps names to
// object keys; at most one binding exists per non-blank name.
type Scope struct {
	// parent is the enclosing scope, or NoScope for the universe scope.
	parent ScopeKey

	// children is the ordered list of nested scopes.
	children []ScopeKey

	// elems maps declared names to their objects.
	elems map[string]ObjKey

	// label is a short description of the scope used for debugging output:
	// eg. "universe", "package main", "file main.gs", "function f".
	label string
}

func newScope(parent ScopeKey, label string) *Scope {
	return &Scope{
		parent: parent,
		elems:  make(map[string]ObjKey),
		label:  label,
	}
}

// Parent returns the enclosing scope, or NoScope for the universe scope.
func (s *Scope) Parent() ScopeKey {
	return s.parent
}

// Children returns the ordered list of nested scopes.
func (s *Scope) Children() []ScopeKey {
	return s.children
}

// Label returns the scope's debugging description.
func (s *Scope) Label() string {
	return s.label
}

// Len returns the number of bindings in the scope.
func (s *Scope) Len() int {
	return len(s.elems)
}

// Names returns the sorted list of names bound directly in the scope.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.elems))
	for name := range s.elems {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Lookup returns the object bound directly in this scope under the given
// name, or NoObj.  It does not consult the parent chain: walking outward is a
// distinct operation built on repeated Lookup (see Arena.LookupParent).
func (s *Scope) Lookup(name string) ObjKey {
	if obj, ok := s.elems[name]; ok {
		return obj
	}

	return NoObj
}

// Insert attempts to bind name to obj in this scope.  If the name is already
// bound directly in this scope, the previous object is returned and the
// binding is left unchanged.  Otherwise the binding is created and NoObj is
// returned.  The blank name is never inserted.
func (s *Scope) Insert(name string, obj ObjKey) ObjKey {
	if name == BlankName {
		return NoObj
	}

	if prev, ok := s.elems[name]; ok {
		return prev
	}

	s.elems[name] = obj
	return NoObj
}
