package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/schema"
)

func TestAnnotate_overlays_metadata(t *testing.T) {
	t.Parallel()

	base := schema.Primitive(schema.KindInteger).
		WithDescription("derived").
		WithDefault(int64(1)).
		WithValidator(schema.Min(0))

	got := schema.Annotate(base, &schema.Meta{
		Description: "declared",
		Default:     int64(2),
		Example:     int64(5),
		Format:      "int32",
		Deprecated:  true,
		Validator:   schema.Max(10),
	})

	// Declared metadata replaces derived values...
	assert.Equal(t, "declared", got.Description)
	assert.Equal(t, int64(2), got.Default)
	assert.Equal(t, int64(5), got.Example)
	assert.Equal(t, "int32", got.Format)
	assert.True(t, got.Deprecated)

	// ...except validators, which append into the conjunction.
	require.Len(t, got.Validators, 2)
	assert.Equal(t, schema.Min(0), got.Validators[0])
	assert.Equal(t, schema.Max(10), got.Validators[1])

	// The derived schema is untouched.
	assert.Equal(t, "derived", base.Description)
	assert.Len(t, base.Validators, 1)
}

func TestAnnotate_zero_fields_keep_derived_values(t *testing.T) {
	t.Parallel()

	base := schema.Primitive(schema.KindString).
		WithDescription("derived").
		WithFormat("uuid")

	got := schema.Annotate(base, &schema.Meta{Example: "d4f0"})

	assert.Equal(t, "derived", got.Description)
	assert.Equal(t, "uuid", got.Format)
	assert.Equal(t, "d4f0", got.Example)
}

func TestAnnotate_nil_meta(t *testing.T) {
	t.Parallel()

	base := schema.Primitive(schema.KindString)
	assert.Same(t, base, schema.Annotate(base, nil))
}
