package schema

// Meta is a bundle of explicitly declared metadata for a field or a whole
// type, overlaid onto the derived schema after structural assembly. Zero
// fields are left as derived. It is the explicit replacement for
// annotation-style metadata: supplied alongside the type descriptor rather
// than read from language attributes.
type Meta struct {
	// EncodedName overrides the field's encoded name. It wins over the
	// naming policy, which has already run by the time metadata is applied.
	EncodedName string
	Description string
	Default     any
	Example     any
	Format      string
	Deprecated  bool
	// Validator is appended to the node's validator conjunction, never
	// replacing validators already present.
	Validator Validator
}

// Annotate overlays a metadata bundle onto a schema node, returning a new
// node. A nil bundle returns the schema unchanged.
func Annotate(s *Schema, m *Meta) *Schema {
	if m == nil {
		return s
	}
	c := s.clone()
	if m.Description != "" {
		c.Description = m.Description
	}
	if m.Default != nil {
		c.Default = m.Default
	}
	if m.Example != nil {
		c.Example = m.Example
	}
	if m.Format != "" {
		c.Format = m.Format
	}
	if m.Deprecated {
		c.Deprecated = true
	}
	if m.Validator != nil {
		c.Validators = append(c.Validators, m.Validator)
	}
	return c
}

// annotateField overlays field metadata: the schema node via Annotate, and
// the encoded name if overridden.
func annotateField(f Field, m *Meta) Field {
	if m == nil {
		return f
	}
	if m.EncodedName != "" {
		f.Name = m.EncodedName
	}
	f.Schema = Annotate(f.Schema, m)
	return f
}

// annotateInPlace overlays whole-type metadata directly onto s. Used only
// during derivation, where the node under construction may already be
// referenced by a recursive component and must keep its identity.
func annotateInPlace(s *Schema, m *Meta) {
	if m == nil {
		return
	}
	if m.Description != "" {
		s.Description = m.Description
	}
	if m.Default != nil {
		s.Default = m.Default
	}
	if m.Example != nil {
		s.Example = m.Example
	}
	if m.Format != "" {
		s.Format = m.Format
	}
	if m.Deprecated {
		s.Deprecated = true
	}
	if m.Validator != nil {
		s.Validators = append(s.Validators, m.Validator)
	}
}
