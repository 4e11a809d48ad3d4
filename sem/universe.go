package sem

// BuiltinID identifies a predeclared builtin function.
type BuiltinID int

// Enumeration of builtin functions.
const (
	BuiltinLen BuiltinID = iota
	BuiltinCap
	BuiltinMake
	BuiltinNew
	BuiltinAppend
	BuiltinCopy
	BuiltinDelete
	BuiltinPanic
	BuiltinPrint
	BuiltinPrintln
)

// Universe holds the keys of the predeclared entities: the parentless
// universe scope that roots the scope tree, the predeclared basic types, and
// the unsafe package.
type Universe struct {
	// Scope is the outermost, parentless scope holding predeclared names.
	Scope ScopeKey

	// Unsafe is the predeclared unsafe package.
	Unsafe PackageKey

	// Invalid is the placeholder type substituted for failed checks.
	Invalid TypeKey

	// Iota is the predeclared iota object; its value depends on the constant
	// declaration being checked and is supplied by the checker.
	Iota ObjKey

	// Nil is the predeclared nil object.
	Nil ObjKey

	basics map[BasicKind]TypeKey
}

// Basic returns the key of the predeclared basic type of the given kind.
func (u *Universe) Basic(kind BasicKind) TypeKey {
	return u.basics[kind]
}

// -----------------------------------------------------------------------------

var basicNames = []struct {
	kind BasicKind
	name string
}{
	{Bool, "bool"},
	{Int, "int"},
	{Int8, "int8"},
	{Int16, "int16"},
	{Int32, "int32"},
	{Int64, "int64"},
	{Uint, "uint"},
	{Uint8, "uint8"},
	{Uint16, "uint16"},
	{Uint32, "uint32"},
	{Uint64, "uint64"},
	{Float32, "float32"},
	{Float64, "float64"},
	{Str, "string"},
	{UntypedBool, "untyped bool"},
	{UntypedInt, "untyped int"},
	{UntypedFloat, "untyped float"},
	{UntypedString, "untyped string"},
	{UntypedNil, "untyped nil"},
}

var builtinNames = map[BuiltinID]string{
	BuiltinLen:     "len",
	BuiltinCap:     "cap",
	BuiltinMake:    "make",
	BuiltinNew:     "new",
	BuiltinAppend:  "append",
	BuiltinCopy:    "copy",
	BuiltinDelete:  "delete",
	BuiltinPanic:   "panic",
	BuiltinPrint:   "print",
	BuiltinPrintln: "println",
}

// defineUniverse populates the universe scope with the predeclared types,
// constants, and builtin functions.
func (a *Arena) defineUniverse() {
	uni := a.Universe
	scope := a.scopes[uni.Scope]

	uni.Invalid = a.InsertType(NewInvalid())

	for _, b := range basicNames {
		tkey := a.InsertType(NewBasic(b.kind, b.name))
		uni.basics[b.kind] = tkey

		// Untyped kinds exist only as the types of constant expressions; they
		// have no predeclared name.
		if !IsUntyped(b.kind) {
			obj := NewTypeName(nil, NoPkg, b.name, tkey)
			scope.Insert(b.name, a.InsertObject(obj))
		}
	}

	// Predeclared type aliases.
	scope.Insert("byte", a.InsertObject(NewTypeName(nil, NoPkg, "byte", uni.basics[Uint8])))
	scope.Insert("rune", a.InsertObject(NewTypeName(nil, NoPkg, "rune", uni.basics[Int32])))

	// Predeclared constants.
	untypedBool := uni.basics[UntypedBool]
	scope.Insert("true", a.InsertObject(NewConst(nil, NoPkg, "true", untypedBool, MakeBool(true))))
	scope.Insert("false", a.InsertObject(NewConst(nil, NoPkg, "false", untypedBool, MakeBool(false))))

	// The value of iota is contextual; the stored object carries no value of
	// its own.
	uni.Iota = a.InsertObject(NewConst(nil, NoPkg, "iota", uni.basics[UntypedInt], Value{}))
	scope.Insert("iota", uni.Iota)

	uni.Nil = a.InsertObject(&Object{Kind: NilObj, Name: "nil", Pkg: NoPkg, Type: uni.basics[UntypedNil]})
	scope.Insert("nil", uni.Nil)

	// Builtin functions have call-site specific signatures; their object type
	// stays invalid until a call records one.
	for id, name := range builtinNames {
		obj := &Object{Kind: BuiltinObj, Name: name, Pkg: NoPkg, Type: uni.Invalid, builtin: id}
		scope.Insert(name, a.InsertObject(obj))
	}
}
