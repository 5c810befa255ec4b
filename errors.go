package schema

import "fmt"

// ConstructionError reports malformed schema construction input, such as a
// Product with duplicate field names or a Coproduct with duplicate variant
// labels. It is raised at construction time and never silently dropped.
type ConstructionError struct {
	Type   string // the offending type name, if known
	Detail string
}

// Error returns the construction failure message.
func (e *ConstructionError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schema: construct %s: %s", e.Type, e.Detail)
	}
	return "schema: construct: " + e.Detail
}

// DerivationError reports that a component type has no reachable schema —
// no manual binding in the registry and no derivable structural description.
// It is a wiring-time defect, not a recoverable runtime condition.
type DerivationError struct {
	Type string
}

// Error returns the derivation failure message.
func (e *DerivationError) Error() string {
	return fmt.Sprintf("schema: no derivable schema for type %q", e.Type)
}

// PathError reports that a modification path segment does not match the
// actual schema shape at that point. No partial modification is applied.
type PathError struct {
	Path    string // the full path expression
	Segment string // the segment that failed to resolve
	Got     Kind   // the kind actually found at that point
}

// Error returns the path resolution failure message.
func (e *PathError) Error() string {
	return fmt.Sprintf("schema: path %q: segment %q does not match %s schema", e.Path, e.Segment, e.Got)
}
