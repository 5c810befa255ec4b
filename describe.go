package schema

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Describe builds a type descriptor from a Go type, so Go structs can feed
// the derivation engine without hand-writing descriptors. Field names come
// from `json` tags, metadata from `doc`, `format`, `default`, `example`, and
// `deprecated` tags, and validators from the constraint tags `minimum`,
// `maximum`, `pattern`, `enum`, `minLength`, `maxLength`, `minItems`, and
// `maxItems`.
//
// Pointer fields and fields tagged `optional:"true"` describe optional
// values. Recursive struct types produce a named reference back to the
// enclosing type. Named interface types produce a reference that must be
// bound in the registry; maps, channels, and functions are not describable.
func Describe(t reflect.Type) (Descriptor, error) {
	return describe(t, make(map[reflect.Type]bool))
}

// DescribeType is the generic convenience form of Describe.
func DescribeType[T any]() (Descriptor, error) {
	return Describe(reflect.TypeFor[T]())
}

// DeriveType describes T and derives its schema in one step.
func DeriveType[T any](cfg Config, reg *Registry) (*Schema, error) {
	desc, err := DescribeType[T]()
	if err != nil {
		return nil, err
	}
	return Derive(desc, cfg, reg)
}

func describe(t reflect.Type, seen map[reflect.Type]bool) (Descriptor, error) {
	// Well-known types first.
	switch t {
	case reflect.TypeFor[time.Time]():
		return PrimitiveDesc{Kind: KindDateTime}, nil
	case reflect.TypeFor[time.Duration]():
		return PrimitiveDesc{Kind: KindString, Format: "duration"}, nil
	}

	//exhaustive:ignore
	switch t.Kind() {
	case reflect.Pointer:
		el, err := describe(t.Elem(), seen)
		if err != nil {
			return nil, err
		}
		return OptionalDesc{Element: el}, nil
	case reflect.String:
		return PrimitiveDesc{Kind: KindString}, nil
	case reflect.Bool:
		return PrimitiveDesc{Kind: KindBoolean}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return PrimitiveDesc{Kind: KindInteger}, nil
	case reflect.Float32, reflect.Float64:
		return PrimitiveDesc{Kind: KindNumber}, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return PrimitiveDesc{Kind: KindBinary}, nil
		}
		el, err := describe(t.Elem(), seen)
		if err != nil {
			return nil, err
		}
		return ArrayDesc{Element: el}, nil
	case reflect.Array:
		el, err := describe(t.Elem(), seen)
		if err != nil {
			return nil, err
		}
		return ArrayDesc{Element: el}, nil
	case reflect.Struct:
		return describeStruct(t, seen)
	case reflect.Interface:
		// Opaque: the schema must come from a registry binding.
		if t.Name() == "" {
			return nil, &DerivationError{Type: t.String()}
		}
		return RefDesc{Name: t.Name()}, nil
	default:
		return nil, &DerivationError{Type: t.String()}
	}
}

func describeStruct(t reflect.Type, seen map[reflect.Type]bool) (Descriptor, error) {
	if t.Name() != "" {
		if seen[t] {
			// Recursive reference back to the enclosing type; the deriver
			// resolves it to the in-progress node.
			return RefDesc{Name: t.Name()}, nil
		}
		seen[t] = true
		defer delete(seen, t)
	}

	desc := ProductDesc{Name: t.Name()}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonFieldName(f)
		if name == "-" {
			continue
		}

		fd, err := describe(f.Type, seen)
		if err != nil {
			return nil, err
		}
		if f.Type.Kind() != reflect.Pointer && f.Tag.Get("optional") == "true" {
			fd = OptionalDesc{Element: fd}
		}

		field := FieldDesc{Name: name, Type: fd, Meta: fieldMeta(f)}
		if tag := f.Tag.Get("default"); tag != "" {
			field.Default = parseTagValue(f.Type, tag)
		}
		desc.Fields = append(desc.Fields, field)
	}
	return desc, nil
}

// jsonFieldName returns the encoded field name for a struct field.
func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

// fieldMeta builds the metadata bundle declared through struct tags, or nil
// when the field carries none.
func fieldMeta(f reflect.StructField) *Meta {
	m := Meta{
		Description: f.Tag.Get("doc"),
		Format:      f.Tag.Get("format"),
		Deprecated:  f.Tag.Get("deprecated") == "true",
	}
	if tag := f.Tag.Get("example"); tag != "" {
		m.Example = parseTagValue(f.Type, tag)
	}
	m.Validator = tagValidator(f)

	if m.Description == "" && m.Format == "" && !m.Deprecated && m.Example == nil && m.Validator == nil {
		return nil
	}
	return &m
}

// tagValidator converts the constraint tags on a field into a validator, or
// nil when the field carries none.
func tagValidator(f reflect.StructField) Validator {
	var vs []Validator

	if tag := f.Tag.Get("minimum"); tag != "" {
		if bound, err := strconv.ParseFloat(tag, 64); err == nil {
			vs = append(vs, Min(bound))
		}
	}
	if tag := f.Tag.Get("maximum"); tag != "" {
		if bound, err := strconv.ParseFloat(tag, 64); err == nil {
			vs = append(vs, Max(bound))
		}
	}
	if tag := f.Tag.Get("pattern"); tag != "" {
		vs = append(vs, Pattern(tag))
	}
	if tag := f.Tag.Get("enum"); tag != "" {
		allowed := make([]any, 0, 4)
		for _, v := range strings.Split(tag, ",") {
			allowed = append(allowed, v)
		}
		vs = append(vs, Enumeration(allowed...))
	}
	if tag := f.Tag.Get("minLength"); tag != "" {
		if n, err := strconv.Atoi(tag); err == nil {
			vs = append(vs, MinLength(n))
		}
	}
	if tag := f.Tag.Get("maxLength"); tag != "" {
		if n, err := strconv.Atoi(tag); err == nil {
			vs = append(vs, MaxLength(n))
		}
	}
	if tag := f.Tag.Get("minItems"); tag != "" {
		if n, err := strconv.Atoi(tag); err == nil {
			vs = append(vs, MinItems(n))
		}
	}
	if tag := f.Tag.Get("maxItems"); tag != "" {
		if n, err := strconv.Atoi(tag); err == nil {
			vs = append(vs, MaxItems(n))
		}
	}

	switch len(vs) {
	case 0:
		return nil
	case 1:
		return vs[0]
	default:
		return All(vs...)
	}
}

// parseTagValue parses a tag literal into the field's value space, falling
// back to the raw string.
func parseTagValue(t reflect.Type, raw string) any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	//exhaustive:ignore
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	case reflect.Float32, reflect.Float64:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}
