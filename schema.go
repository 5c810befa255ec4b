package schema

import (
	"reflect"
	"slices"
	"strconv"
)

// Kind identifies the structural shape of a Schema node.
type Kind int

// Schema kinds. The first block are primitives; Array, Optional, Product,
// and Coproduct are composite.
const (
	KindString Kind = iota
	KindInteger
	KindNumber
	KindBoolean
	KindBinary
	KindDate
	KindDateTime
	KindArray
	KindOptional
	KindProduct
	KindCoproduct
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindBinary:
		return "binary"
	case KindDate:
		return "date"
	case KindDateTime:
		return "date-time"
	case KindArray:
		return "array"
	case KindOptional:
		return "optional"
	case KindProduct:
		return "product"
	case KindCoproduct:
		return "coproduct"
	default:
		return "unknown"
	}
}

// Field is a named component of a Product schema.
type Field struct {
	Name   string
	Schema *Schema
}

// WithName returns a copy of the field with the given encoded name.
func (f Field) WithName(name string) Field {
	f.Name = name
	return f
}

// WithDescription returns a copy of the field whose schema carries the given
// description.
func (f Field) WithDescription(desc string) Field {
	f.Schema = f.Schema.WithDescription(desc)
	return f
}

// WithDefault returns a copy of the field whose schema carries the given
// encoded default value.
func (f Field) WithDefault(value any) Field {
	f.Schema = f.Schema.WithDefault(value)
	return f
}

// WithExample returns a copy of the field whose schema carries the given
// encoded example.
func (f Field) WithExample(value any) Field {
	f.Schema = f.Schema.WithExample(value)
	return f
}

// WithFormat returns a copy of the field whose schema carries the given
// format string.
func (f Field) WithFormat(format string) Field {
	f.Schema = f.Schema.WithFormat(format)
	return f
}

// WithDeprecated returns a copy of the field whose schema is marked
// deprecated.
func (f Field) WithDeprecated() Field {
	f.Schema = f.Schema.WithDeprecated()
	return f
}

// WithValidator returns a copy of the field whose schema has the given
// validators appended.
func (f Field) WithValidator(vs ...Validator) Field {
	f.Schema = f.Schema.WithValidator(vs...)
	return f
}

// Variant is one alternative of a Coproduct schema. Label doubles as the
// discriminator value when a discriminator field is configured.
type Variant struct {
	Label  string
	Schema *Schema
}

// Schema describes the wire-level shape of a type plus attached metadata.
// A Schema is an immutable value: every WithX method returns a new Schema
// and leaves the receiver untouched. Structural sharing between the old and
// new value is permitted and expected.
type Schema struct {
	Kind Kind

	// Element is the contained schema for Array and Optional kinds.
	Element *Schema
	// Fields is the ordered field list for Product kinds. Names are unique.
	Fields []Field
	// Variants is the ordered alternative list for Coproduct kinds. Labels
	// are unique.
	Variants []Variant
	// Discriminator is the encoded field name whose value identifies a
	// Coproduct variant. Empty when no discriminator is configured.
	Discriminator string

	// Name is the source type name, when known. Used for registry lookup,
	// recursion detection, and documentation references.
	Name string

	Description string
	Default     any
	Example     any
	Format      string
	Deprecated  bool
	Validators  []Validator
}

// Primitive returns a schema for a primitive kind.
func Primitive(kind Kind) *Schema {
	return &Schema{Kind: kind}
}

// ArrayOf returns a schema describing a collection of element.
func ArrayOf(element *Schema) *Schema {
	return &Schema{Kind: KindArray, Element: element}
}

// Optional returns a schema describing a value that may be absent.
func Optional(element *Schema) *Schema {
	return &Schema{Kind: KindOptional, Element: element}
}

// Product returns a schema for a record with the given ordered fields.
// Field names must be unique; a duplicate is a *ConstructionError.
func Product(fields ...Field) (*Schema, error) {
	if err := checkFieldNames("", fields); err != nil {
		return nil, err
	}
	return &Schema{Kind: KindProduct, Fields: fields}, nil
}

// Coproduct returns a schema for a tagged union with the given ordered
// variants. Variant labels must be unique; a duplicate is a
// *ConstructionError. The discriminator field, if any, is attached
// afterwards via AddDiscriminatorField or configured during derivation.
func Coproduct(variants ...Variant) (*Schema, error) {
	if err := checkVariantLabels("", variants); err != nil {
		return nil, err
	}
	return &Schema{Kind: KindCoproduct, Variants: variants}, nil
}

// MustProduct is like Product but panics on error. It simplifies wiring-time
// schema registration, where a malformed schema is a programming defect.
func MustProduct(fields ...Field) *Schema {
	s, err := Product(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// MustCoproduct is like Coproduct but panics on error.
func MustCoproduct(variants ...Variant) *Schema {
	s, err := Coproduct(variants...)
	if err != nil {
		panic(err)
	}
	return s
}

// clone returns a shallow copy with its own validator slice. Composite
// children remain shared.
func (s *Schema) clone() *Schema {
	c := *s
	c.Validators = slices.Clone(s.Validators)
	return &c
}

// WithName returns a copy of the schema with the given type name.
func (s *Schema) WithName(name string) *Schema {
	c := s.clone()
	c.Name = name
	return c
}

// WithDescription returns a copy of the schema with the given description.
func (s *Schema) WithDescription(desc string) *Schema {
	c := s.clone()
	c.Description = desc
	return c
}

// WithDefault returns a copy of the schema with the given default value.
// The value is the encoded (wire-shaped) default.
func (s *Schema) WithDefault(value any) *Schema {
	c := s.clone()
	c.Default = value
	return c
}

// WithExample returns a copy of the schema with the given encoded example.
func (s *Schema) WithExample(value any) *Schema {
	c := s.clone()
	c.Example = value
	return c
}

// WithFormat returns a copy of the schema with the given format string.
func (s *Schema) WithFormat(format string) *Schema {
	c := s.clone()
	c.Format = format
	return c
}

// WithDeprecated returns a copy of the schema marked deprecated.
func (s *Schema) WithDeprecated() *Schema {
	c := s.clone()
	c.Deprecated = true
	return c
}

// WithValidator returns a copy of the schema with the given validators
// appended. Existing validators are kept; the full set is a conjunction.
func (s *Schema) WithValidator(vs ...Validator) *Schema {
	c := s.clone()
	c.Validators = append(c.Validators, vs...)
	return c
}

// Equal reports whether two schemas are structurally equal. It tolerates
// recursive schemas by treating a revisited node pair as equal.
func (s *Schema) Equal(o *Schema) bool {
	return schemaEqual(s, o, make(map[[2]*Schema]bool))
}

func schemaEqual(a, b *Schema, seen map[[2]*Schema]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	key := [2]*Schema{a, b}
	if seen[key] {
		return true
	}
	seen[key] = true

	if a.Kind != b.Kind ||
		a.Discriminator != b.Discriminator ||
		a.Name != b.Name ||
		a.Description != b.Description ||
		a.Format != b.Format ||
		a.Deprecated != b.Deprecated {
		return false
	}
	if !valueEqual(a.Default, b.Default) || !valueEqual(a.Example, b.Example) {
		return false
	}
	if !validatorsEqual(a.Validators, b.Validators) {
		return false
	}
	if !schemaEqual(a.Element, b.Element, seen) {
		return false
	}
	if len(a.Fields) != len(b.Fields) || len(a.Variants) != len(b.Variants) {
		return false
	}
	for i := range a.Fields {
		if a.Fields[i].Name != b.Fields[i].Name {
			return false
		}
		if !schemaEqual(a.Fields[i].Schema, b.Fields[i].Schema, seen) {
			return false
		}
	}
	for i := range a.Variants {
		if a.Variants[i].Label != b.Variants[i].Label {
			return false
		}
		if !schemaEqual(a.Variants[i].Schema, b.Variants[i].Schema, seen) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func checkFieldNames(typeName string, fields []Field) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return &ConstructionError{Type: typeName, Detail: "duplicate field name " + strconv.Quote(f.Name)}
		}
		seen[f.Name] = true
	}
	return nil
}

func checkVariantLabels(typeName string, variants []Variant) error {
	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		if seen[v.Label] {
			return &ConstructionError{Type: typeName, Detail: "duplicate variant label " + strconv.Quote(v.Label)}
		}
		seen[v.Label] = true
	}
	return nil
}
