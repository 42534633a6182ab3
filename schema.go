package fieldops

import (
	"errors"
	"fmt"
)

var (
	ErrNoFields       = errors.New("fieldops: at least one field selector must be supplied")
	ErrNilAccessor    = errors.New("fieldops: nil accessor")
	ErrNilBuilder     = errors.New("fieldops: nil constructor")
	ErrDuplicateField = errors.New("fieldops: duplicate field")
)

// A Field selects one value of type V from an aggregate of type T.
type Field[T any, V Real] struct {
	Name string
	Get  func(T) V
}

// Accessor returns a Field with the given name and getter.
func Accessor[T any, V Real](name string, get func(T) V) Field[T, V] {
	return Field[T, V]{Name: name, Get: get}
}

// A Schema is the registration of an aggregate type T whose operable
// fields all have type V. It holds the ordered field list and a
// constructor taking the field values positionally, in the same order.
//
// A Schema is immutable after construction and safe for concurrent use.
type Schema[T any, V Real] struct {
	fields []Field[T, V]
	build  func(...V) T
}

// NewSchema registers an aggregate type. build must accept exactly
// len(fields) values in field order.
func NewSchema[T any, V Real](build func(...V) T, fields ...Field[T, V]) (*Schema[T, V], error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	if build == nil {
		return nil, ErrNilBuilder
	}
	seen := map[string]bool{}
	for i, f := range fields {
		if f.Get == nil {
			return nil, fmt.Errorf("field #%d (%q): %w", i, f.Name, ErrNilAccessor)
		}
		if f.Name == "" {
			continue
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("%q: %w", f.Name, ErrDuplicateField)
		}
		seen[f.Name] = true
	}
	return &Schema[T, V]{
		fields: append([]Field[T, V](nil), fields...),
		build:  build,
	}, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema[T any, V Real](build func(...V) T, fields ...Field[T, V]) *Schema[T, V] {
	s, err := NewSchema(build, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of registered fields.
func (s *Schema[T, V]) Len() int { return len(s.fields) }

// Names returns the field names in declared order.
func (s *Schema[T, V]) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Project returns the values of x's fields in declared order.
// The returned slice is owned by the caller.
func (s *Schema[T, V]) Project(x T) []V {
	vals := make([]V, len(s.fields))
	for i, f := range s.fields {
		vals[i] = f.Get(x)
	}
	return vals
}

// Build constructs a T from vals, which must have one value per field.
func (s *Schema[T, V]) Build(vals []V) T {
	if len(vals) != len(s.fields) {
		panic(fmt.Sprintf("fieldops: Build got %d values for %d fields", len(vals), len(s.fields)))
	}
	return s.build(vals...)
}
