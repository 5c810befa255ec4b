package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Validator is a composable constraint on decoded values. Validators attached
// to a schema node form a conjunction: all must hold. This package only
// composes and exposes validators; enforcement at request/response time is
// the validation collaborator's job, with Check as the reference evaluation.
type Validator interface {
	// Check evaluates the validator against a decoded Go value and returns
	// all violations found. The field argument is the path prefix used in
	// violation messages.
	Check(field string, value any) []Violation
}

// Violation describes a single constraint failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// MinValidator requires a numeric value to be at least (or, when Exclusive,
// strictly greater than) Bound.
type MinValidator struct {
	Bound     float64
	Exclusive bool
}

// MaxValidator requires a numeric value to be at most (or, when Exclusive,
// strictly less than) Bound.
type MaxValidator struct {
	Bound     float64
	Exclusive bool
}

// PatternValidator requires a string value to match Expr, an RE2 regular
// expression.
type PatternValidator struct {
	Expr string
}

// EnumValidator requires the value to be one of Allowed.
type EnumValidator struct {
	Allowed []any
}

// MinLengthValidator requires a string of at least N characters.
type MinLengthValidator struct {
	N int
}

// MaxLengthValidator requires a string of at most N characters.
type MaxLengthValidator struct {
	N int
}

// MinItemsValidator requires a collection of at least N items.
type MinItemsValidator struct {
	N int
}

// MaxItemsValidator requires a collection of at most N items.
type MaxItemsValidator struct {
	N int
}

// CustomValidator wraps an arbitrary predicate. ID identifies the predicate
// for documentation and equality; Fn returns a non-nil error on violation.
type CustomValidator struct {
	ID string
	Fn func(value any) error
}

// EachValidator applies Inner to every element of a contained collection
// rather than to the collection itself.
type EachValidator struct {
	Inner Validator
}

// MappedValidator applies Inner to a projection of the value. ID identifies
// the projection for documentation and equality.
type MappedValidator struct {
	ID         string
	Projection func(value any) any
	Inner      Validator
}

// AllValidator is the conjunction of its members.
type AllValidator []Validator

// Min returns a validator requiring value >= bound.
func Min(bound float64) Validator { return MinValidator{Bound: bound} }

// MinExclusive returns a validator requiring value > bound.
func MinExclusive(bound float64) Validator { return MinValidator{Bound: bound, Exclusive: true} }

// Max returns a validator requiring value <= bound.
func Max(bound float64) Validator { return MaxValidator{Bound: bound} }

// MaxExclusive returns a validator requiring value < bound.
func MaxExclusive(bound float64) Validator { return MaxValidator{Bound: bound, Exclusive: true} }

// Pattern returns a validator requiring a string to match the RE2 expression.
func Pattern(expr string) Validator { return PatternValidator{Expr: expr} }

// Enumeration returns a validator requiring membership in allowed.
func Enumeration(allowed ...any) Validator { return EnumValidator{Allowed: allowed} }

// MinLength returns a validator requiring a string of at least n characters.
func MinLength(n int) Validator { return MinLengthValidator{N: n} }

// MaxLength returns a validator requiring a string of at most n characters.
func MaxLength(n int) Validator { return MaxLengthValidator{N: n} }

// MinItems returns a validator requiring a collection of at least n items.
func MinItems(n int) Validator { return MinItemsValidator{N: n} }

// MaxItems returns a validator requiring a collection of at most n items.
func MaxItems(n int) Validator { return MaxItemsValidator{N: n} }

// Custom returns a validator wrapping fn. The id identifies the predicate in
// documentation and schema equality checks.
func Custom(id string, fn func(value any) error) Validator {
	return CustomValidator{ID: id, Fn: fn}
}

// Each returns a validator applying inner to every element of a contained
// collection.
func Each(inner Validator) Validator { return EachValidator{Inner: inner} }

// Mapped returns a validator applying inner to the projection of the value.
// The id identifies the projection in documentation and equality checks.
func Mapped(id string, projection func(value any) any, inner Validator) Validator {
	return MappedValidator{ID: id, Projection: projection, Inner: inner}
}

// All returns the conjunction of the given validators.
func All(vs ...Validator) Validator { return AllValidator(vs) }

// Check implements Validator.
func (v MinValidator) Check(field string, value any) []Violation {
	f, ok := asFloat64(value)
	if !ok {
		return nil
	}
	if v.Exclusive && f <= v.Bound {
		return []Violation{{Field: field, Message: fmt.Sprintf("must be greater than %v", v.Bound), Value: value}}
	}
	if !v.Exclusive && f < v.Bound {
		return []Violation{{Field: field, Message: fmt.Sprintf("must be at least %v", v.Bound), Value: value}}
	}
	return nil
}

// Check implements Validator.
func (v MaxValidator) Check(field string, value any) []Violation {
	f, ok := asFloat64(value)
	if !ok {
		return nil
	}
	if v.Exclusive && f >= v.Bound {
		return []Violation{{Field: field, Message: fmt.Sprintf("must be less than %v", v.Bound), Value: value}}
	}
	if !v.Exclusive && f > v.Bound {
		return []Violation{{Field: field, Message: fmt.Sprintf("must be at most %v", v.Bound), Value: value}}
	}
	return nil
}

// Check implements Validator.
func (v PatternValidator) Check(field string, value any) []Violation {
	s, ok := asString(value)
	if !ok {
		return nil
	}
	if matched, err := regexp.MatchString(v.Expr, s); err != nil || !matched {
		return []Violation{{Field: field, Message: "must match pattern " + v.Expr, Value: value}}
	}
	return nil
}

// Check implements Validator.
func (v EnumValidator) Check(field string, value any) []Violation {
	for _, a := range v.Allowed {
		if valueEqual(a, value) {
			return nil
		}
	}
	return []Violation{{Field: field, Message: fmt.Sprintf("must be one of %s", renderEnum(v.Allowed)), Value: value}}
}

// Check implements Validator.
func (v MinLengthValidator) Check(field string, value any) []Violation {
	s, ok := asString(value)
	if !ok {
		return nil
	}
	if len(s) < v.N {
		return []Violation{{Field: field, Message: fmt.Sprintf("must be at least %d characters", v.N), Value: value}}
	}
	return nil
}

// Check implements Validator.
func (v MaxLengthValidator) Check(field string, value any) []Violation {
	s, ok := asString(value)
	if !ok {
		return nil
	}
	if len(s) > v.N {
		return []Violation{{Field: field, Message: fmt.Sprintf("must be at most %d characters", v.N), Value: value}}
	}
	return nil
}

// Check implements Validator.
func (v MinItemsValidator) Check(field string, value any) []Violation {
	n, ok := itemCount(value)
	if !ok {
		return nil
	}
	if n < v.N {
		return []Violation{{Field: field, Message: fmt.Sprintf("must have at least %d items", v.N), Value: n}}
	}
	return nil
}

// Check implements Validator.
func (v MaxItemsValidator) Check(field string, value any) []Violation {
	n, ok := itemCount(value)
	if !ok {
		return nil
	}
	if n > v.N {
		return []Violation{{Field: field, Message: fmt.Sprintf("must have at most %d items", v.N), Value: n}}
	}
	return nil
}

// Check implements Validator.
func (v CustomValidator) Check(field string, value any) []Violation {
	if v.Fn == nil {
		return nil
	}
	if err := v.Fn(value); err != nil {
		return []Violation{{Field: field, Message: err.Error(), Value: value}}
	}
	return nil
}

// Check implements Validator. It iterates slice and array values; any other
// value is checked directly against the inner validator.
func (v EachValidator) Check(field string, value any) []Violation {
	if v.Inner == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return v.Inner.Check(field, value)
	}
	var errs []Violation
	for i := range rv.Len() {
		path := field + "[" + strconv.Itoa(i) + "]"
		errs = append(errs, v.Inner.Check(path, rv.Index(i).Interface())...)
	}
	return errs
}

// Check implements Validator.
func (v MappedValidator) Check(field string, value any) []Violation {
	if v.Inner == nil {
		return nil
	}
	if v.Projection != nil {
		value = v.Projection(value)
	}
	return v.Inner.Check(field, value)
}

// Check implements Validator.
func (v AllValidator) Check(field string, value any) []Violation {
	var errs []Violation
	for _, inner := range v {
		errs = append(errs, inner.Check(field, value)...)
	}
	return errs
}

// CheckValue evaluates every validator attached to this schema node against
// a decoded value and returns all violations.
func (s *Schema) CheckValue(field string, value any) []Violation {
	var errs []Violation
	for _, v := range s.Validators {
		errs = append(errs, v.Check(field, value)...)
	}
	return errs
}

func validatorsEqual(a, b []Validator) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !validatorEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// validatorEqual compares validators structurally. Custom validators compare
// by ID since function values have no useful equality.
func validatorEqual(a, b Validator) bool {
	switch av := a.(type) {
	case CustomValidator:
		bv, ok := b.(CustomValidator)
		return ok && av.ID == bv.ID
	case EachValidator:
		bv, ok := b.(EachValidator)
		return ok && validatorEqual(av.Inner, bv.Inner)
	case MappedValidator:
		bv, ok := b.(MappedValidator)
		return ok && av.ID == bv.ID && validatorEqual(av.Inner, bv.Inner)
	case AllValidator:
		bv, ok := b.(AllValidator)
		return ok && validatorsEqual(av, bv)
	case EnumValidator:
		bv, ok := b.(EnumValidator)
		return ok && reflect.DeepEqual(av.Allowed, bv.Allowed)
	default:
		return a == b
	}
}

func asString(value any) (string, bool) {
	if s, ok := value.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func asFloat64(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	//exhaustive:ignore
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func itemCount(value any) (int, bool) {
	rv := reflect.ValueOf(value)
	//exhaustive:ignore
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

func renderEnum(allowed []any) string {
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
