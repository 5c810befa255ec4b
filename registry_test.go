package schema_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/schema"
)

func TestRegistry_lookup(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	s := schema.Primitive(schema.KindString)
	reg.Register("UserID", s)

	got, ok := reg.Lookup("UserID")
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = reg.Lookup("Unknown")
	assert.False(t, ok)
}

func TestRegistry_last_registration_wins(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	first := schema.Primitive(schema.KindString)
	second := schema.Primitive(schema.KindInteger)

	reg.Register("UserID", first)
	reg.Register("UserID", second)

	got, ok := reg.Lookup("UserID")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestRegistry_lazy_resolves_once(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	calls := 0
	reg.RegisterLazy("Node", func() *schema.Schema {
		calls++
		return schema.Primitive(schema.KindString)
	})

	first, ok := reg.Lookup("Node")
	require.True(t, ok)
	second, ok := reg.Lookup("Node")
	require.True(t, ok)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestRegistry_lazy_resolves_once_under_concurrency(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	var calls atomic.Int32
	reg.RegisterLazy("Node", func() *schema.Schema {
		calls.Add(1)
		time.Sleep(5 * time.Millisecond)
		return schema.Primitive(schema.KindString)
	})

	const lookups = 16
	results := make([]*schema.Schema, lookups)

	var wg sync.WaitGroup
	for i := range lookups {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, ok := reg.Lookup("Node")
			assert.True(t, ok)
			results[i] = got
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := 1; i < lookups; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestRegistry_names(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	reg.Register("A", schema.Primitive(schema.KindString))
	reg.Register("B", schema.Primitive(schema.KindInteger))

	assert.ElementsMatch(t, []string{"A", "B"}, reg.Names())
}
