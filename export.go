package schema

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Doc is a JSON-Schema-style rendering of a Schema for documentation
// consumers. It carries structure, metadata, and validator constraints; it
// performs no encoding or decoding of values.
type Doc struct {
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Example     any    `json:"example,omitempty" yaml:"example,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	Properties map[string]*Doc `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required   []string        `json:"required,omitempty" yaml:"required,omitempty"`
	Items      *Doc            `json:"items,omitempty" yaml:"items,omitempty"`

	OneOf         []*Doc            `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	Discriminator *DocDiscriminator `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`

	Enum             []any    `json:"enum,omitempty" yaml:"enum,omitempty"`
	Pattern          string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MinLength        *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength        *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	MinItems         *int     `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems         *int     `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	Ref  string          `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Defs map[string]*Doc `json:"$defs,omitempty" yaml:"$defs,omitempty"`
}

// DocDiscriminator documents a coproduct's discriminator field and the
// mapping from discriminator value to variant.
type DocDiscriminator struct {
	PropertyName string            `json:"propertyName" yaml:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

// Export renders a Schema tree into a documentation document. Named schemas
// reached through a recursive reference are hoisted into $defs on the root
// document and referenced with $ref, so recursive schemas render finitely.
func Export(s *Schema) *Doc {
	e := &exporter{
		building: make(map[*Schema]string),
		cyclic:   make(map[string]*Doc),
	}
	doc := e.export(s)
	if len(e.cyclic) > 0 {
		if doc.Ref != "" {
			// The root itself is cyclic; wrap the reference so $defs has a
			// place to live.
			doc = &Doc{Ref: doc.Ref}
		}
		doc.Defs = e.cyclic
	}
	return doc
}

// WriteJSON writes the document as indented JSON.
func (d *Doc) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WriteYAML writes the document as YAML.
func (d *Doc) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // flushed by Encode
	return enc.Encode(d)
}

type exporter struct {
	// building maps schema nodes under export to their reference names.
	building map[*Schema]string
	// cyclic collects the bodies of schemas that turned out to be
	// self-referential, keyed by name, for the root document's $defs.
	cyclic map[string]*Doc
}

func (e *exporter) export(s *Schema) *Doc {
	if s == nil {
		return &Doc{}
	}
	if name, ok := e.building[s]; ok {
		// Back-edge of a recursive schema.
		e.cyclic[name] = nil
		return &Doc{Ref: "#/$defs/" + name}
	}
	if s.Name != "" {
		e.building[s] = s.Name
		defer delete(e.building, s)
	}

	doc := &Doc{
		Title:       s.Name,
		Description: s.Description,
		Default:     s.Default,
		Example:     s.Example,
		Format:      s.Format,
		Deprecated:  s.Deprecated,
	}
	e.exportShape(s, doc)
	e.exportValidators(s.Validators, doc)

	if s.Name != "" {
		if _, ok := e.cyclic[s.Name]; ok {
			e.cyclic[s.Name] = doc
			return &Doc{Ref: "#/$defs/" + s.Name}
		}
	}
	return doc
}

func (e *exporter) exportShape(s *Schema, doc *Doc) {
	switch s.Kind {
	case KindString:
		doc.Type = "string"
	case KindInteger:
		doc.Type = "integer"
	case KindNumber:
		doc.Type = "number"
	case KindBoolean:
		doc.Type = "boolean"
	case KindBinary:
		doc.Type = "string"
		if doc.Format == "" {
			doc.Format = "byte"
		}
	case KindDate:
		doc.Type = "string"
		if doc.Format == "" {
			doc.Format = "date"
		}
	case KindDateTime:
		doc.Type = "string"
		if doc.Format == "" {
			doc.Format = "date-time"
		}
	case KindArray:
		doc.Type = "array"
		doc.Items = e.export(s.Element)
	case KindOptional:
		// Optionality is expressed by omission from required; the shape is
		// the element's, with the wrapper's own metadata winning.
		inner := e.export(s.Element)
		merge := *inner
		if doc.Title != "" {
			merge.Title = doc.Title
		}
		if doc.Description != "" {
			merge.Description = doc.Description
		}
		if doc.Default != nil {
			merge.Default = doc.Default
		}
		if doc.Example != nil {
			merge.Example = doc.Example
		}
		if doc.Format != "" {
			merge.Format = doc.Format
		}
		if doc.Deprecated {
			merge.Deprecated = true
		}
		*doc = merge
	case KindProduct:
		doc.Type = "object"
		doc.Properties = make(map[string]*Doc, len(s.Fields))
		for _, f := range s.Fields {
			doc.Properties[f.Name] = e.export(f.Schema)
			if f.Schema.Kind != KindOptional {
				doc.Required = append(doc.Required, f.Name)
			}
		}
	case KindCoproduct:
		doc.OneOf = make([]*Doc, len(s.Variants))
		mapping := make(map[string]string, len(s.Variants))
		for i, v := range s.Variants {
			doc.OneOf[i] = e.export(v.Schema)
			title := v.Schema.Name
			if title == "" {
				title = v.Label
			}
			mapping[v.Label] = title
		}
		if s.Discriminator != "" {
			doc.Discriminator = &DocDiscriminator{
				PropertyName: s.Discriminator,
				Mapping:      mapping,
			}
		}
	}
}

// exportValidators folds validator constraints into the document. Each
// validators land on the items document when one exists.
func (e *exporter) exportValidators(vs []Validator, doc *Doc) {
	for _, v := range vs {
		switch t := v.(type) {
		case MinValidator:
			if t.Exclusive {
				doc.ExclusiveMinimum = ptr(t.Bound)
				continue
			}
			doc.Minimum = ptr(t.Bound)
		case MaxValidator:
			if t.Exclusive {
				doc.ExclusiveMaximum = ptr(t.Bound)
				continue
			}
			doc.Maximum = ptr(t.Bound)
		case PatternValidator:
			doc.Pattern = t.Expr
		case EnumValidator:
			doc.Enum = t.Allowed
		case MinLengthValidator:
			doc.MinLength = ptr(t.N)
		case MaxLengthValidator:
			doc.MaxLength = ptr(t.N)
		case MinItemsValidator:
			doc.MinItems = ptr(t.N)
		case MaxItemsValidator:
			doc.MaxItems = ptr(t.N)
		case EachValidator:
			if doc.Items != nil {
				e.exportValidators([]Validator{t.Inner}, doc.Items)
			}
		case AllValidator:
			e.exportValidators(t, doc)
		}
	}
}

func ptr[T any](v T) *T { return &v }
