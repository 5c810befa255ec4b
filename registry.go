package schema

import "sync"

// Registry holds pre-supplied schema bindings keyed by type name. During
// derivation a binding takes precedence over structural derivation for any
// component type. The most recently registered binding for a name wins.
//
// A Registry is safe for concurrent use, though callers typically populate
// it once at startup and only read it afterwards.
type Registry struct {
	mu       sync.Mutex
	bindings map[string]*binding
}

type binding struct {
	resolve sync.Once
	schema  *Schema
	lazy    func() *Schema
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]*binding)}
}

// Register binds a schema to a type name, replacing any previous binding.
func (r *Registry) Register(name string, s *Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[name] = &binding{schema: s}
}

// RegisterLazy binds a deferred schema to a type name. The function runs at
// most once, on first lookup. Lazy bindings are how callers supply schemas
// for self-referential types: the binding is available for reference before
// the schema it produces is fully built.
func (r *Registry) RegisterLazy(name string, fn func() *Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[name] = &binding{lazy: fn}
}

// Lookup returns the schema bound to name, resolving a lazy binding on first
// use. Concurrent first lookups run the binding's function exactly once; the
// others block until it finishes and see the same schema.
func (r *Registry) Lookup(name string) (*Schema, bool) {
	r.mu.Lock()
	b, ok := r.bindings[name]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}

	b.resolve.Do(func() {
		if b.lazy != nil {
			b.schema = b.lazy()
			b.lazy = nil
		}
	})
	return b.schema, true
}

// Names returns the bound type names, in no particular order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		names = append(names, name)
	}
	return names
}
