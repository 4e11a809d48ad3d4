package sem

// The entity stores of the arena are addressed by opaque, stable keys: plain
// indices into per-category stores.  Keys carry no information beyond which
// category they index; using a key against the wrong category is a programming
// error, not a runtime-recoverable condition.

// ObjKey identifies a declared object in the arena.
type ObjKey int

// TypeKey identifies a type in the arena.
type TypeKey int

// PackageKey identifies a package in the arena.
type PackageKey int

// ScopeKey identifies a scope in the arena.
type ScopeKey int

// DeclKey identifies a declaration info record in the arena.
type DeclKey int

// Sentinel values for "no entity".  Valid keys are always non-negative.
const (
	NoObj   ObjKey     = -1
	NoType  TypeKey    = -1
	NoPkg   PackageKey = -1
	NoScope ScopeKey   = -1
	NoDecl  DeclKey    = -1
)
