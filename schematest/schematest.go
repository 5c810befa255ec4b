// Package schematest provides test helpers for comparing schema values.
package schematest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bjaus/schema"
)

// options make schema comparisons well-behaved: custom and mapped validators
// compare by ID, since function values have no useful equality.
func options() []cmp.Option {
	return []cmp.Option{
		cmp.Comparer(func(a, b schema.CustomValidator) bool {
			return a.ID == b.ID
		}),
		cmp.Comparer(func(a, b schema.MappedValidator) bool {
			return a.ID == b.ID
		}),
	}
}

// Diff returns a human-readable diff between two schemas, or empty when they
// are equal.
func Diff(want, got *schema.Schema) string {
	return cmp.Diff(want, got, options()...)
}

// RequireEqual fails the test immediately when two schemas differ, printing
// a structural diff.
func RequireEqual(t testing.TB, want, got *schema.Schema) {
	t.Helper()
	if diff := Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

// RequireDocEqual fails the test immediately when two exported documents
// differ.
func RequireDocEqual(t testing.TB, want, got *schema.Doc) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("doc mismatch (-want +got):\n%s", diff)
	}
}
