// Package schema is a typed schema description engine for Go. A Schema is
// declared once as data — structure, metadata, and validators — and that
// single value is interpreted by collaborators to produce documentation,
// codec hints, and validation, without this package performing any
// serialization itself.
//
// Schemas are derived from type descriptors (or directly from Go types via
// reflection) and refined afterwards:
//
//	s, err := schema.DeriveType[Basket](
//	    schema.NewConfig(schema.WithNaming(schema.SnakeCase)),
//	    nil,
//	)
//
// Derived schemas are immutable values; every refinement returns a new
// Schema and leaves the original untouched:
//
//	s, err = schema.Modify(s, schema.Path("fruits").Each().Field("amount"),
//	    func(n *schema.Schema) *schema.Schema {
//	        return n.WithDescription("How many fruits?")
//	    })
//
// Coproducts (tagged unions) carry an ordered variant list and an optional
// discriminator field; OneOfUsingField builds one from an explicit
// discriminator extractor:
//
//	entity, err := schema.OneOfUsingField("kind",
//	    func(e Entity) string { return e.Kind() },
//	    func(k string) string { return k },
//	    schema.Variant{Label: "person", Schema: person},
//	    schema.Variant{Label: "org", Schema: org},
//	)
//
// The finished Schema tree is exposed to documentation renderers via Export,
// which produces a JSON-Schema-style document writable as JSON or YAML.
package schema
