package schema

// Derive builds a Schema from a type descriptor. For every component type it
// first consults the registry — a manual binding always takes precedence over
// structural derivation — and otherwise recurses into the descriptor. The
// root descriptor itself is always derived structurally, so deriving a type
// that is already registered rebuilds it rather than returning the binding.
//
// Derivation is pure and deterministic: deriving the same descriptor twice
// with the same configuration and registry produces structurally equal
// schemas. A nil registry is treated as empty.
//
// Recursive types terminate: when a product or coproduct re-enters its own
// derivation (directly or transitively), the engine resolves the reference to
// the in-progress node, so the finished schema refers back to itself rather
// than nesting infinitely.
func Derive(desc Descriptor, cfg Config, reg *Registry) (*Schema, error) {
	d := &deriver{
		cfg:        cfg,
		reg:        reg,
		inProgress: make(map[string]*Schema),
	}
	return d.derive(desc, true)
}

type deriver struct {
	cfg Config
	reg *Registry
	// inProgress maps type names to their placeholder nodes for the
	// duration of their own derivation, breaking recursion.
	inProgress map[string]*Schema
}

// resolve looks up a component type by name: the in-progress placeholder
// first (recursion short-circuit), then the registry.
func (d *deriver) resolve(name string) (*Schema, bool) {
	if name == "" {
		return nil, false
	}
	if s, ok := d.inProgress[name]; ok {
		return s, true
	}
	if d.reg != nil {
		if s, ok := d.reg.Lookup(name); ok {
			return s, true
		}
	}
	return nil, false
}

func (d *deriver) derive(desc Descriptor, root bool) (*Schema, error) {
	switch t := desc.(type) {
	case PrimitiveDesc:
		s := Primitive(t.Kind)
		if t.Format != "" {
			s.Format = t.Format
		}
		return s, nil

	case ArrayDesc:
		el, err := d.derive(t.Element, false)
		if err != nil {
			return nil, err
		}
		return ArrayOf(el), nil

	case OptionalDesc:
		el, err := d.derive(t.Element, false)
		if err != nil {
			return nil, err
		}
		return Optional(el), nil

	case RefDesc:
		if s, ok := d.resolve(t.Name); ok {
			return s, nil
		}
		return nil, &DerivationError{Type: t.Name}

	case ProductDesc:
		return d.deriveProduct(t, root)

	case CoproductDesc:
		return d.deriveCoproduct(t, root)

	default:
		return nil, &DerivationError{Type: "unknown descriptor"}
	}
}

func (d *deriver) deriveProduct(t ProductDesc, root bool) (*Schema, error) {
	if !root {
		if s, ok := d.resolve(t.Name); ok {
			return s, nil
		}
	}

	// The placeholder keeps its identity through field derivation so a
	// recursive component resolves to this very node.
	s := &Schema{Kind: KindProduct, Name: t.Name}
	if t.Name != "" {
		d.inProgress[t.Name] = s
		defer delete(d.inProgress, t.Name)
	}

	fields := make([]Field, 0, len(t.Fields))
	for _, fd := range t.Fields {
		fs, err := d.derive(fd.Type, false)
		if err != nil {
			return nil, err
		}
		if fd.Default != nil {
			fs = fs.WithDefault(fd.Default)
		}
		f := Field{Name: d.cfg.EncodedName(fd.Name), Schema: fs}
		fields = append(fields, annotateField(f, fd.Meta))
	}
	if err := checkFieldNames(t.Name, fields); err != nil {
		return nil, err
	}
	s.Fields = fields
	annotateInPlace(s, t.Meta)
	return s, nil
}

func (d *deriver) deriveCoproduct(t CoproductDesc, root bool) (*Schema, error) {
	if !root {
		if s, ok := d.resolve(t.Name); ok {
			return s, nil
		}
	}

	s := &Schema{Kind: KindCoproduct, Name: t.Name}
	if t.Name != "" {
		d.inProgress[t.Name] = s
		defer delete(d.inProgress, t.Name)
	}

	variants := make([]Variant, 0, len(t.Variants))
	for _, vd := range t.Variants {
		vs, err := d.derive(vd.Type, false)
		if err != nil {
			return nil, err
		}
		label := vd.Label
		if label == "" {
			label = d.cfg.EncodedName(vd.Name)
		}
		variants = append(variants, Variant{Label: label, Schema: vs})
	}
	if err := checkVariantLabels(t.Name, variants); err != nil {
		return nil, err
	}
	s.Variants = variants
	s.Discriminator = d.cfg.Discriminator()
	annotateInPlace(s, t.Meta)
	return s, nil
}
