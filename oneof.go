package schema

// OneOf is a discriminated coproduct schema paired with the discriminator
// extraction logic for a concrete instance type T. The schema side serves
// documentation; Match serves runtime-adjacent label lookup. Dispatching on
// the label is the codec collaborator's job.
type OneOf[T any, D comparable] struct {
	extract func(T) D
	render  func(D) string
	schema  *Schema
	labels  map[string]bool
}

// OneOfUsingField builds a Coproduct schema discriminated by the named
// field. The extractor pulls the discriminator value out of an instance and
// render turns it into the encoded label; each (label, schema) pair becomes
// one variant keyed by its label.
func OneOfUsingField[T any, D comparable](field string, extract func(T) D, render func(D) string, variants ...Variant) (*OneOf[T, D], error) {
	s, err := Coproduct(variants...)
	if err != nil {
		return nil, err
	}
	s.Discriminator = field

	labels := make(map[string]bool, len(variants))
	for _, v := range variants {
		labels[v.Label] = true
	}
	return &OneOf[T, D]{
		extract: extract,
		render:  render,
		schema:  s,
		labels:  labels,
	}, nil
}

// Schema returns the discriminated Coproduct schema.
func (o *OneOf[T, D]) Schema() *Schema { return o.schema }

// Match maps a concrete instance to its variant label. ok is false when the
// rendered discriminator value matches no declared variant.
func (o *OneOf[T, D]) Match(v T) (label string, ok bool) {
	label = o.render(o.extract(v))
	return label, o.labels[label]
}

// AddDiscriminatorField returns a copy of an already-derived Coproduct
// schema with the discriminator field name attached. The optional mapping
// renames variant labels (current label to discriminator value); variant
// schemas themselves are never altered. Calling it on a non-Coproduct schema
// is a *ConstructionError.
func AddDiscriminatorField(name string, s *Schema, mapping map[string]string) (*Schema, error) {
	if s.Kind != KindCoproduct {
		return nil, &ConstructionError{Type: s.Name, Detail: "discriminator on " + s.Kind.String() + " schema"}
	}

	c := s.clone()
	c.Discriminator = name
	if len(mapping) > 0 {
		variants := make([]Variant, len(s.Variants))
		copy(variants, s.Variants)
		for i, v := range variants {
			if label, ok := mapping[v.Label]; ok {
				variants[i].Label = label
			}
		}
		if err := checkVariantLabels(s.Name, variants); err != nil {
			return nil, err
		}
		c.Variants = variants
	}
	return c, nil
}
