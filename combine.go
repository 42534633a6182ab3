package fieldops

import "fmt"

// Combine returns the slice whose i'th element is op(a[i], b[i]).
// a and b must have the same length.
func Combine[V any](a, b []V, op func(V, V) V) []V {
	if len(a) != len(b) {
		panic(fmt.Sprintf("fieldops: Combine of %d and %d values", len(a), len(b)))
	}
	out := make([]V, len(a))
	for i := range a {
		out[i] = op(a[i], b[i])
	}
	return out
}

func add[V Real](a, b V) V { return a + b }
func sub[V Real](a, b V) V { return a - b }
func mul[V Real](a, b V) V { return a * b }
func div[V Real](a, b V) V { return a / b }

func (s *Schema[T, V]) apply(a, b T, op func(V, V) V) T {
	return s.Build(Combine(s.Project(a), s.Project(b), op))
}

// Add returns the field-wise sum a + b.
func (s *Schema[T, V]) Add(a, b T) T { return s.apply(a, b, add[V]) }

// Sub returns the field-wise difference a - b.
func (s *Schema[T, V]) Sub(a, b T) T { return s.apply(a, b, sub[V]) }

// Mul returns the field-wise product a * b.
func (s *Schema[T, V]) Mul(a, b T) T { return s.apply(a, b, mul[V]) }

// Div returns the field-wise quotient a / b. An integer field divided by
// zero panics.
func (s *Schema[T, V]) Div(a, b T) T { return s.apply(a, b, div[V]) }

// AddAssign sets *dst to s.Add(*dst, b).
func (s *Schema[T, V]) AddAssign(dst *T, b T) { *dst = s.Add(*dst, b) }

// SubAssign sets *dst to s.Sub(*dst, b).
func (s *Schema[T, V]) SubAssign(dst *T, b T) { *dst = s.Sub(*dst, b) }

// MulAssign sets *dst to s.Mul(*dst, b).
func (s *Schema[T, V]) MulAssign(dst *T, b T) { *dst = s.Mul(*dst, b) }

// DivAssign sets *dst to s.Div(*dst, b).
func (s *Schema[T, V]) DivAssign(dst *T, b T) { *dst = s.Div(*dst, b) }
