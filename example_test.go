package schema_test

import (
	"fmt"
	"os"

	"github.com/bjaus/schema"
)

func ExampleDeriveType() {
	type FruitAmount struct {
		Fruit  string `json:"fruit"`
		Amount int    `json:"amount" minimum:"1"`
	}
	type Basket struct {
		Fruits []FruitAmount `json:"fruits"`
	}

	s, err := schema.DeriveType[Basket](schema.NewConfig(), nil)
	if err != nil {
		panic(err)
	}

	fmt.Println(s.Kind, s.Fields[0].Name, s.Fields[0].Schema.Kind)
	// Output: product fruits array
}

func ExampleModify() {
	type FruitAmount struct {
		Fruit  string `json:"fruit"`
		Amount int    `json:"amount"`
	}
	type Basket struct {
		Fruits []FruitAmount `json:"fruits"`
	}

	s, err := schema.DeriveType[Basket](schema.NewConfig(), nil)
	if err != nil {
		panic(err)
	}

	s, err = schema.Modify(s, schema.Path("fruits").Each().Field("amount"),
		func(n *schema.Schema) *schema.Schema {
			return n.WithDescription("How many fruits?")
		})
	if err != nil {
		panic(err)
	}

	fmt.Println(s.Fields[0].Schema.Element.Fields[1].Schema.Description)
	// Output: How many fruits?
}

func ExampleExport() {
	type FruitAmount struct {
		Fruit  string `json:"fruit"`
		Amount int    `json:"amount"`
	}

	s, err := schema.DeriveType[FruitAmount](schema.NewConfig(), nil)
	if err != nil {
		panic(err)
	}

	if err := schema.Export(s).WriteJSON(os.Stdout); err != nil {
		panic(err)
	}
	// Output:
	// {
	//   "type": "object",
	//   "title": "FruitAmount",
	//   "properties": {
	//     "amount": {
	//       "type": "integer"
	//     },
	//     "fruit": {
	//       "type": "string"
	//     }
	//   },
	//   "required": [
	//     "fruit",
	//     "amount"
	//   ]
	// }
}
