package schema_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/schema"
)

func TestDescribe_primitives(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		typ    reflect.Type
		expect schema.Descriptor
	}{
		"string": {
			typ:    reflect.TypeFor[string](),
			expect: schema.PrimitiveDesc{Kind: schema.KindString},
		},
		"int": {
			typ:    reflect.TypeFor[int](),
			expect: schema.PrimitiveDesc{Kind: schema.KindInteger},
		},
		"uint32": {
			typ:    reflect.TypeFor[uint32](),
			expect: schema.PrimitiveDesc{Kind: schema.KindInteger},
		},
		"float64": {
			typ:    reflect.TypeFor[float64](),
			expect: schema.PrimitiveDesc{Kind: schema.KindNumber},
		},
		"bool": {
			typ:    reflect.TypeFor[bool](),
			expect: schema.PrimitiveDesc{Kind: schema.KindBoolean},
		},
		"time.Time": {
			typ:    reflect.TypeFor[time.Time](),
			expect: schema.PrimitiveDesc{Kind: schema.KindDateTime},
		},
		"time.Duration": {
			typ:    reflect.TypeFor[time.Duration](),
			expect: schema.PrimitiveDesc{Kind: schema.KindString, Format: "duration"},
		},
		"[]byte": {
			typ:    reflect.TypeFor[[]byte](),
			expect: schema.PrimitiveDesc{Kind: schema.KindBinary},
		},
		"[]string": {
			typ:    reflect.TypeFor[[]string](),
			expect: schema.ArrayDesc{Element: schema.PrimitiveDesc{Kind: schema.KindString}},
		},
		"pointer": {
			typ:    reflect.TypeFor[*string](),
			expect: schema.OptionalDesc{Element: schema.PrimitiveDesc{Kind: schema.KindString}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := schema.Describe(tc.typ)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, got)
		})
	}
}

func TestDescribe_struct(t *testing.T) {
	t.Parallel()

	type FruitAmount struct {
		Fruit  string `json:"fruit"`
		Amount int    `json:"amount" doc:"How many fruits?" minimum:"1"`
		Hidden string `json:"-"`
		note   string //nolint:unused // exercises unexported skipping
	}

	desc, err := schema.DescribeType[FruitAmount]()
	require.NoError(t, err)

	pd, ok := desc.(schema.ProductDesc)
	require.True(t, ok)
	assert.Equal(t, "FruitAmount", pd.Name)
	require.Len(t, pd.Fields, 2)

	assert.Equal(t, "fruit", pd.Fields[0].Name)
	assert.Nil(t, pd.Fields[0].Meta)

	amount := pd.Fields[1]
	assert.Equal(t, "amount", amount.Name)
	require.NotNil(t, amount.Meta)
	assert.Equal(t, "How many fruits?", amount.Meta.Description)
	assert.Equal(t, schema.Min(1), amount.Meta.Validator)
}

func TestDescribe_constraint_tags(t *testing.T) {
	t.Parallel()

	type Constrained struct {
		Name   string   `json:"name" minLength:"1" maxLength:"64" pattern:"^[a-z]+$"`
		Color  string   `json:"color" enum:"red,green,blue"`
		Count  int      `json:"count" minimum:"0" maximum:"100"`
		Labels []string `json:"labels" minItems:"1" maxItems:"5"`
	}

	desc, err := schema.DescribeType[Constrained]()
	require.NoError(t, err)
	pd := desc.(schema.ProductDesc)

	require.Len(t, pd.Fields, 4)
	assert.Equal(t,
		schema.All(schema.Pattern("^[a-z]+$"), schema.MinLength(1), schema.MaxLength(64)),
		pd.Fields[0].Meta.Validator,
	)
	assert.Equal(t,
		schema.Enumeration("red", "green", "blue"),
		pd.Fields[1].Meta.Validator,
	)
	assert.Equal(t,
		schema.All(schema.Min(0), schema.Max(100)),
		pd.Fields[2].Meta.Validator,
	)
	assert.Equal(t,
		schema.All(schema.MinItems(1), schema.MaxItems(5)),
		pd.Fields[3].Meta.Validator,
	)
}

func TestDescribe_default_and_deprecated_tags(t *testing.T) {
	t.Parallel()

	type Settings struct {
		Retries int    `json:"retries" default:"3" example:"5"`
		Legacy  string `json:"legacy" deprecated:"true"`
	}

	desc, err := schema.DescribeType[Settings]()
	require.NoError(t, err)
	pd := desc.(schema.ProductDesc)

	assert.Equal(t, int64(3), pd.Fields[0].Default)
	assert.Equal(t, int64(5), pd.Fields[0].Meta.Example)
	assert.True(t, pd.Fields[1].Meta.Deprecated)
}

func TestDescribe_recursive_struct(t *testing.T) {
	t.Parallel()

	type Node struct {
		Value    string `json:"value"`
		Children []Node `json:"children"`
	}

	desc, err := schema.DescribeType[Node]()
	require.NoError(t, err)
	pd := desc.(schema.ProductDesc)

	require.Len(t, pd.Fields, 2)
	arr, ok := pd.Fields[1].Type.(schema.ArrayDesc)
	require.True(t, ok)
	assert.Equal(t, schema.RefDesc{Name: "Node"}, arr.Element)
}

func TestDescribe_unsupported_types(t *testing.T) {
	t.Parallel()

	tests := map[string]reflect.Type{
		"map":  reflect.TypeFor[map[string]int](),
		"chan": reflect.TypeFor[chan int](),
		"func": reflect.TypeFor[func()](),
		"any":  reflect.TypeFor[any](),
	}

	for name, typ := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := schema.Describe(typ)
			var derr *schema.DerivationError
			require.ErrorAs(t, err, &derr)
		})
	}
}

func TestDeriveType_end_to_end(t *testing.T) {
	t.Parallel()

	type FruitAmount struct {
		Fruit  string `json:"fruit"`
		Amount int    `json:"amount"`
	}
	type Basket struct {
		Fruits []FruitAmount `json:"fruits"`
	}

	s, err := schema.DeriveType[Basket](schema.NewConfig(), nil)
	require.NoError(t, err)

	require.Equal(t, schema.KindProduct, s.Kind)
	require.Len(t, s.Fields, 1)
	fruits := s.Fields[0]
	assert.Equal(t, "fruits", fruits.Name)
	require.Equal(t, schema.KindArray, fruits.Schema.Kind)

	elem := fruits.Schema.Element
	require.Equal(t, schema.KindProduct, elem.Kind)
	require.Len(t, elem.Fields, 2)
	assert.Equal(t, "fruit", elem.Fields[0].Name)
	assert.Equal(t, "amount", elem.Fields[1].Name)
}

func TestDeriveType_recursive(t *testing.T) {
	t.Parallel()

	type Node struct {
		Children []Node `json:"children"`
	}

	s, err := schema.DeriveType[Node](schema.NewConfig(), nil)
	require.NoError(t, err)

	require.Len(t, s.Fields, 1)
	assert.Same(t, s, s.Fields[0].Schema.Element)
}
