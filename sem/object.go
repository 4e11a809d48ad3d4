package sem

import (
	"unicode"
	"unicode/utf8"

	"github.com/ndrsllwngr/goscript/report"
)

// ObjKind discriminates the different kinds of declared objects.
type ObjKind int

// Enumeration of object kinds.
const (
	VarObj ObjKind = iota
	ConstObj
	FuncObj
	TypeNameObj
	PkgNameObj
	LabelObj
	BuiltinObj
	NilObj
)

func (k ObjKind) String() string {
	switch k {
	case VarObj:
		return "variable"
	case ConstObj:
		return "constant"
	case FuncObj:
		return "function"
	case TypeNameObj:
		return "type"
	case PkgNameObj:
		return "package name"
	case LabelObj:
		return "label"
	case BuiltinObj:
		return "builtin"
	default:
		return "nil"
	}
}

// Object represents a single declared entity: a variable, constant, function,
// type name, package name, label, or predeclared object.  One struct carries
// all kinds; the kind tag selects which payload fields are meaningful, and the
// payloads are reached through kind-checked accessors.
type Object struct {
	// Kind is the object kind tag.
	Kind ObjKind

	// Name is the declared name of the object.
	Name string

	// Pos is the span of the identifier that declares the object.  It is nil
	// for predeclared objects.
	Pos *report.TextSpan

	// Pkg is the owning package, or NoPkg for predeclared objects.
	Pkg PackageKey

	// Type is the type of the object.  It is NoType until checking assigns
	// one; a failed check assigns the invalid placeholder type instead.
	Type TypeKey

	// val is the constant value.  Only meaningful for ConstObj.
	val Value

	// imported is the denoted package.  Only meaningful for PkgNameObj.
	imported PackageKey

	// used tracks whether an import's package name was ever referenced.  Only
	// meaningful for PkgNameObj.
	used bool

	// builtin is the builtin function identity.  Only meaningful for
	// BuiltinObj.
	builtin BuiltinID
}

// NewVar creates a new variable object.
func NewVar(pos *report.TextSpan, pkg PackageKey, name string, typ TypeKey) *Object {
	return &Object{Kind: VarObj, Name: name, Pos: pos, Pkg: pkg, Type: typ}
}

// NewConst creates a new constant object.
func NewConst(pos *report.TextSpan, pkg PackageKey, name string, typ TypeKey, val Value) *Object {
	return &Object{Kind: ConstObj, Name: name, Pos: pos, Pkg: pkg, Type: typ, val: val}
}

// NewFunc creates a new function object.
func NewFunc(pos *report.TextSpan, pkg PackageKey, name string, sig TypeKey) *Object {
	return &Object{Kind: FuncObj, Name: name, Pos: pos, Pkg: pkg, Type: sig}
}

// NewTypeName creates a new type name object.
func NewTypeName(pos *report.TextSpan, pkg PackageKey, name string, typ TypeKey) *Object {
	return &Object{Kind: TypeNameObj, Name: name, Pos: pos, Pkg: pkg, Type: typ}
}

// NewPkgName creates a new package name object denoting the given imported
// package.
func NewPkgName(pos *report.TextSpan, pkg PackageKey, name string, imported PackageKey) *Object {
	return &Object{Kind: PkgNameObj, Name: name, Pos: pos, Pkg: pkg, Type: NoType, imported: imported}
}

// NewLabel creates a new label object.
func NewLabel(pos *report.TextSpan, pkg PackageKey, name string) *Object {
	return &Object{Kind: LabelObj, Name: name, Pos: pos, Pkg: pkg, Type: NoType}
}

// -----------------------------------------------------------------------------

// ConstValue returns the value of a constant object.
func (o *Object) ConstValue() Value {
	o.assertKind(ConstObj)
	return o.val
}

// SetConstValue sets the value of a constant object.
func (o *Object) SetConstValue(v Value) {
	o.assertKind(ConstObj)
	o.val = v
}

// Imported returns the package denoted by a package name object.
func (o *Object) Imported() PackageKey {
	o.assertKind(PkgNameObj)
	return o.imported
}

// MarkUsed marks a package name object as referenced.
func (o *Object) MarkUsed() {
	o.assertKind(PkgNameObj)
	o.used = true
}

// Used returns whether a package name object was ever referenced.
func (o *Object) Used() bool {
	o.assertKind(PkgNameObj)
	return o.used
}

// Builtin returns the identity of a builtin function object.
func (o *Object) Builtin() BuiltinID {
	o.assertKind(BuiltinObj)
	return o.builtin
}

// Exported returns whether the object's name starts with an upper case letter.
func (o *Object) Exported() bool {
	r, _ := utf8.DecodeRuneInString(o.Name)
	return unicode.IsUpper(r)
}

func (o *Object) assertKind(kind ObjKind) {
	if o.Kind != kind {
		panic("sem: accessor used on wrong object kind: " + o.Kind.String())
	}
}
