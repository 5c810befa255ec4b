package schema

// A Descriptor is the structural description of a type — the input the
// derivation engine consumes. Descriptors are supplied explicitly by the
// caller or built from Go types via Describe; the engine itself performs no
// reflection.
type Descriptor interface {
	descriptor()
}

// PrimitiveDesc describes a primitive type.
type PrimitiveDesc struct {
	Kind   Kind
	Format string
}

// ArrayDesc describes a collection of Element.
type ArrayDesc struct {
	Element Descriptor
}

// OptionalDesc describes a value of Element that may be absent.
type OptionalDesc struct {
	Element Descriptor
}

// FieldDesc describes one field of a product type, in declaration order.
type FieldDesc struct {
	// Name is the declared field name, before any naming policy runs.
	Name string
	Type Descriptor
	// Default is the encoded default value applied when the field is
	// missing from input, or nil.
	Default any
	// Meta carries explicit per-field metadata overlaid after derivation.
	Meta *Meta
}

// ProductDesc describes a record type with ordered fields.
type ProductDesc struct {
	// Name is the type name, used for registry lookup and recursion
	// detection. Anonymous products leave it empty.
	Name   string
	Fields []FieldDesc
	// Meta carries explicit whole-type metadata.
	Meta *Meta
}

// VariantDesc describes one alternative of a coproduct type.
type VariantDesc struct {
	// Name is the variant's type name. The encoded label defaults to Name
	// transformed by the naming policy.
	Name string
	// Label overrides the derived label when non-empty.
	Label string
	Type  Descriptor
}

// CoproductDesc describes a tagged union with ordered variants.
type CoproductDesc struct {
	Name     string
	Variants []VariantDesc
	Meta     *Meta
}

// RefDesc is a named reference to a type whose schema must be resolved
// through the registry — a manual binding, a lazy binding, or the
// in-progress placeholder of a recursive derivation.
type RefDesc struct {
	Name string
}

func (PrimitiveDesc) descriptor() {}
func (ArrayDesc) descriptor()     {}
func (OptionalDesc) descriptor()  {}
func (ProductDesc) descriptor()   {}
func (CoproductDesc) descriptor() {}
func (RefDesc) descriptor()       {}
