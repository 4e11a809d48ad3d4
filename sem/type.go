package sem

// TypeKind discriminates the different kinds of types.
type TypeKind int

// Enumeration of type kinds.
const (
	InvalidType TypeKind = iota
	BasicType
	PointerType
	SliceType
	MapType
	TupleType
	SignatureType
	InterfaceType
	NamedType
)

// BasicKind discriminates the predeclared basic types.
type BasicKind int

// Enumeration of basic type kinds.
const (
	InvalidBasic BasicKind = iota

	Bool
	Int
	Int8
	Int16
	Int32
	Int64
	Uint
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Str

	UntypedBool
	UntypedInt
	UntypedFloat
	UntypedString
	UntypedNil
)

// Type represents a single type: one struct carries all kinds, with the kind
// tag selecting which payload fields are meaningful.  Payloads are reached
// through kind-checked accessors.  Types reference other types and objects
// only through arena keys.
type Type struct {
	// Kind is the type kind tag.
	Kind TypeKind

	// basic and name describe a basic type.
	basic BasicKind
	name  string

	// key and elem describe pointer, slice, and map types.
	key  TypeKey
	elem TypeKey

	// vars is the ordered variable list of a tuple type.
	vars []ObjKey

	// params and results are the parameter and result tuples of a signature.
	params  TypeKey
	results TypeKey

	// recv is the receiver of a method signature, or NoObj.
	recv ObjKey

	// methods is the method set of an interface or named type.
	methods []ObjKey

	// obj and underlying describe a named type.
	obj        ObjKey
	underlying TypeKey
}

// NewInvalid creates the invalid placeholder type.
func NewInvalid() *Type {
	return &Type{Kind: InvalidType}
}

// NewBasic creates a new basic type.
func NewBasic(kind BasicKind, name string) *Type {
	return &Type{Kind: BasicType, basic: kind, name: name}
}

// NewPointer creates a new pointer type.
func NewPointer(elem TypeKey) *Type {
	return &Type{Kind: PointerType, elem: elem}
}

// NewSlice creates a new slice type.
func NewSlice(elem TypeKey) *Type {
	return &Type{Kind: SliceType, elem: elem}
}

// NewMap creates a new map type.
func NewMap(key, elem TypeKey) *Type {
	return &Type{Kind: MapType, key: key, elem: elem}
}

// NewTuple creates a new tuple type over the given variables.
func NewTuple(vars []ObjKey) *Type {
	return &Type{Kind: TupleType, vars: vars}
}

// NewSignature creates a new signature type.  The params and results keys must
// identify tuple types; recv may be NoObj.
func NewSignature(recv ObjKey, params, results TypeKey) *Type {
	return &Type{Kind: SignatureType, recv: recv, params: params, results: results}
}

// NewInterface creates a new interface type with the given method set.
func NewInterface(methods []ObjKey) *Type {
	return &Type{Kind: InterfaceType, methods: methods}
}

// NewNamed creates a new named type for the given type name object.  The
// underlying type starts out unset and is assigned once the definition has
// been checked.
func NewNamed(obj ObjKey) *Type {
	return &Type{Kind: NamedType, obj: obj, underlying: NoType}
}

// -----------------------------------------------------------------------------

// Basic returns the basic kind of a basic type.
func (t *Type) Basic() BasicKind {
	t.assertKind(BasicType)
	return t.basic
}

// BasicName returns the name of a basic type.
func (t *Type) BasicName() string {
	t.assertKind(BasicType)
	return t.name
}

// KeyType returns the key type of a map type.
func (t *Type) KeyType() TypeKey {
	t.assertKind(MapType)
	return t.key
}

// Elem returns the element type of a pointer, slice, or map type.
func (t *Type) Elem() TypeKey {
	if t.Kind != PointerType && t.Kind != SliceType && t.Kind != MapType {
		panic("sem: Elem used on non-composite type")
	}

	return t.elem
}

// TupleVars returns the ordered variables of a tuple type.
func (t *Type) TupleVars() []ObjKey {
	t.assertKind(TupleType)
	return t.vars
}

// TupleLen returns the arity of a tuple type.
func (t *Type) TupleLen() int {
	t.assertKind(TupleType)
	return len(t.vars)
}

// Recv returns the receiver of a signature type, or NoObj.
func (t *Type) Recv() ObjKey {
	t.assertKind(SignatureType)
	return t.recv
}

// Params returns the parameter tuple of a signature type.
func (t *Type) Params() TypeKey {
	t.assertKind(SignatureType)
	return t.params
}

// Results returns the result tuple of a signature type.
func (t *Type) Results() TypeKey {
	t.assertKind(SignatureType)
	return t.results
}

// Methods returns the method set of an interface or named type.
func (t *Type) Methods() []ObjKey {
	if t.Kind != InterfaceType && t.Kind != NamedType {
		panic("sem: Methods used on type without a method set")
	}

	return t.methods
}

// AddMethod appends a method to the method set of a named type.
func (t *Type) AddMethod(m ObjKey) {
	t.assertKind(NamedType)
	t.methods = append(t.methods, m)
}

// TypeName returns the type name object of a named type.
func (t *Type) TypeName() ObjKey {
	t.assertKind(NamedType)
	return t.obj
}

// Underlying returns the underlying type of a named type, or NoType if the
// definition has not been checked yet.
func (t *Type) Underlying() TypeKey {
	t.assertKind(NamedType)
	return t.underlying
}

// SetUnderlying assigns the underlying type of a named type.
func (t *Type) SetUnderlying(u TypeKey) {
	t.assertKind(NamedType)
	t.underlying = u
}

func (t *Type) assertKind(kind TypeKind) {
	if t.Kind != kind {
		panic("sem: type accessor used on wrong type kind")
	}
}

// -----------------------------------------------------------------------------

// IsUntyped returns whether the basic kind is an untyped constant kind.
func IsUntyped(k BasicKind) bool {
	return k >= UntypedBool
}

// IsNumeric returns whether the basic kind is an integer or floating point
// kind, typed or untyped.
func IsNumeric(k BasicKind) bool {
	return (k >= Int && k <= Float64) || k == UntypedInt || k == UntypedFloat
}

// IsInteger returns whether the basic kind is an integer kind, typed or
// untyped.
func IsInteger(k BasicKind) bool {
	return (k >= Int && k <= Uint64) || k == UntypedInt
}

// IsBoolean returns whether the basic kind is a boolean kind.
func IsBoolean(k BasicKind) bool {
	return k == Bool || k == UntypedBool
}

// IsString returns whether the basic kind is a string kind.
func IsString(k BasicKind) bool {
	return k == Str || k == UntypedString
}
