// Command sample demonstrates the github.com/bjaus/schema engine on a small
// model: structural derivation, manual bindings, coproduct discrimination,
// path-based modification, and documentation export.
//
// Run:
//
//	go run ./cmd/sample                — print the basket document as JSON
//	go run ./cmd/sample -yaml          — print it as YAML
//	go run ./cmd/sample -entity        — print the discriminated coproduct
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bjaus/schema"
)

// FruitAmount is one line of a basket.
type FruitAmount struct {
	Fruit  string `json:"fruit" minLength:"1"`
	Amount int    `json:"amount" minimum:"1" doc:"Count of this fruit"`
}

// Basket is a bag of fruit.
type Basket struct {
	Fruits []FruitAmount `json:"fruits" minItems:"1"`
}

// Person and Organization are the two Entity variants.
type Person struct {
	Name string `json:"name"`
	Age  int    `json:"age" minimum:"0"`
}

type Organization struct {
	LegalName string `json:"legal_name"`
}

func main() {
	yamlFlag := flag.Bool("yaml", false, "Print YAML instead of JSON")
	entityFlag := flag.Bool("entity", false, "Print the Entity coproduct instead of Basket")
	flag.Parse()

	doc, err := build(*entityFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sample:", err)
		os.Exit(1)
	}

	if *yamlFlag {
		err = doc.WriteYAML(os.Stdout)
	} else {
		err = doc.WriteJSON(os.Stdout)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "sample:", err)
		os.Exit(1)
	}
}

func build(entity bool) (*schema.Doc, error) {
	cfg := schema.NewConfig(
		schema.WithNaming(schema.SnakeCase),
		schema.WithDiscriminator("kind"),
	)

	if entity {
		s, err := entitySchema(cfg)
		if err != nil {
			return nil, err
		}
		return schema.Export(s), nil
	}

	s, err := basketSchema(cfg)
	if err != nil {
		return nil, err
	}
	return schema.Export(s), nil
}

func basketSchema(cfg schema.Config) (*schema.Schema, error) {
	s, err := schema.DeriveType[Basket](cfg, nil)
	if err != nil {
		return nil, err
	}

	// Refine a nested node after derivation.
	return schema.Modify(s, schema.Path("fruits").Each().Field("amount"),
		func(n *schema.Schema) *schema.Schema {
			return n.WithDescription("How many fruits?").WithExample(int64(3))
		})
}

func entitySchema(cfg schema.Config) (*schema.Schema, error) {
	person, err := schema.DeriveType[Person](cfg, nil)
	if err != nil {
		return nil, err
	}
	org, err := schema.DeriveType[Organization](cfg, nil)
	if err != nil {
		return nil, err
	}

	oneOf, err := schema.OneOfUsingField("kind",
		func(kind string) string { return kind },
		func(kind string) string { return kind },
		schema.Variant{Label: "person", Schema: person},
		schema.Variant{Label: "org", Schema: org},
	)
	if err != nil {
		return nil, err
	}
	return oneOf.Schema(), nil
}
