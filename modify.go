package schema

import (
	"slices"
	"strings"
)

// segment is one step of a FieldPath: either a named product field or a
// descent into a container's element.
type segment struct {
	name string
	each bool
}

// FieldPath locates a sub-schema within a larger schema for targeted
// modification. Paths are immutable builder values:
//
//	schema.Path("fruits").Each().Field("amount")
//
// addresses the amount field of every element of the fruits collection.
type FieldPath struct {
	segments []segment
}

// Path starts a field path at the named product field.
func Path(field string) FieldPath {
	return FieldPath{segments: []segment{{name: field}}}
}

// Field extends the path with a named product field.
func (p FieldPath) Field(name string) FieldPath {
	return p.extend(segment{name: name})
}

// Each extends the path with a descent into the contained element of an
// Array, an Optional, or a custom container registered via WithUnwrapper.
// For an Optional the transform applies to the schema shape regardless of
// whether a concrete value is present.
func (p FieldPath) Each() FieldPath {
	return p.extend(segment{each: true})
}

func (p FieldPath) extend(s segment) FieldPath {
	segs := slices.Clone(p.segments)
	return FieldPath{segments: append(segs, s)}
}

// String renders the path for error messages, e.g. "fruits.each.amount".
func (p FieldPath) String() string {
	parts := make([]string, len(p.segments))
	for i, s := range p.segments {
		if s.each {
			parts[i] = "each"
			continue
		}
		parts[i] = s.name
	}
	return strings.Join(parts, ".")
}

// Unwrapper lets an Each segment descend into a custom container schema.
// It reports whether it recognizes s as a container; if so it returns the
// element schema and a rebuild function producing a new container around a
// replaced element.
type Unwrapper func(s *Schema) (elem *Schema, rebuild func(*Schema) *Schema, ok bool)

// ModifyOption configures a modification pass.
type ModifyOption func(*modifier)

// WithUnwrapper registers a custom container unwrapper consulted by Each
// segments after the built-in Array and Optional handling.
func WithUnwrapper(u Unwrapper) ModifyOption {
	return func(m *modifier) {
		m.unwrappers = append(m.unwrappers, u)
	}
}

type modifier struct {
	path       FieldPath
	unwrappers []Unwrapper
}

// Modify applies transform to exactly the sub-schema located by path and
// returns a new root schema with that one node replaced. Every node off the
// path is shared with the original. If a segment does not match the schema
// shape at that point the result is a *PathError and no modification is
// applied.
func Modify(root *Schema, path FieldPath, transform func(*Schema) *Schema, opts ...ModifyOption) (*Schema, error) {
	m := &modifier{path: path}
	for _, opt := range opts {
		opt(m)
	}
	return m.apply(root, path.segments, transform)
}

// ModifyUnsafe is the unchecked variant of Modify: the path is a raw
// sequence of encoded field names with no upfront guarantee that it matches
// the schema shape. Containers between fields are descended implicitly, so
// "fruits", "amount" reaches the amount field of the fruits elements; custom
// containers descend through the same WithUnwrapper options as Modify.
// Resolution failures surface the same *PathError as Modify. Prefer Modify
// with an explicit FieldPath; this entry point trades safety for brevity.
func ModifyUnsafe(root *Schema, fields []string, transform func(*Schema) *Schema, opts ...ModifyOption) (*Schema, error) {
	path := FieldPath{}
	for _, f := range fields {
		path = path.extend(segment{name: f, each: true})
	}
	m := &modifier{path: path}
	for _, opt := range opts {
		opt(m)
	}
	return m.apply(root, path.segments, transform)
}

func (m *modifier) apply(s *Schema, segs []segment, transform func(*Schema) *Schema) (*Schema, error) {
	if len(segs) == 0 {
		return transform(s), nil
	}
	seg := segs[0]

	// A pure each segment descends one container level. An unsafe segment
	// (name + each) first strips any containers, then matches the field.
	if seg.each && seg.name == "" {
		return m.descend(s, segs[1:], transform)
	}
	if seg.each && seg.name != "" {
		if _, _, ok := m.unwrap(s); ok {
			return m.descend(s, segs, transform)
		}
	}

	if s.Kind != KindProduct {
		return nil, &PathError{Path: m.path.String(), Segment: seg.name, Got: s.Kind}
	}
	for i, f := range s.Fields {
		if f.Name != seg.name {
			continue
		}
		ns, err := m.apply(f.Schema, segs[1:], transform)
		if err != nil {
			return nil, err
		}
		c := s.clone()
		c.Fields = slices.Clone(s.Fields)
		c.Fields[i].Schema = ns
		return c, nil
	}
	return nil, &PathError{Path: m.path.String(), Segment: seg.name, Got: s.Kind}
}

// descend rewrites one container level around the modified element.
func (m *modifier) descend(s *Schema, rest []segment, transform func(*Schema) *Schema) (*Schema, error) {
	elem, rebuild, ok := m.unwrap(s)
	if !ok {
		return nil, &PathError{Path: m.path.String(), Segment: "each", Got: s.Kind}
	}
	ns, err := m.apply(elem, rest, transform)
	if err != nil {
		return nil, err
	}
	return rebuild(ns), nil
}

// unwrap resolves the element of a container schema: Array and Optional are
// built in, then registered unwrappers are consulted in order.
func (m *modifier) unwrap(s *Schema) (*Schema, func(*Schema) *Schema, bool) {
	if s.Kind == KindArray || s.Kind == KindOptional {
		return s.Element, func(el *Schema) *Schema {
			c := s.clone()
			c.Element = el
			return c
		}, true
	}
	for _, u := range m.unwrappers {
		if elem, rebuild, ok := u(s); ok {
			return elem, rebuild, true
		}
	}
	return nil, nil, false
}
