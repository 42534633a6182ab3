package fieldops

import "fmt"

// EqualValues reports whether a and b are equal at every position.
func EqualValues[V comparable](a, b []V) bool {
	if len(a) != len(b) {
		panic(fmt.Sprintf("fieldops: comparing %d and %d values", len(a), len(b)))
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// LessValues reports whether a sorts before b lexicographically: the
// first position where one side is less decides, and equal sequences
// are not less.
func LessValues[V Real](a, b []V) bool {
	if len(a) != len(b) {
		panic(fmt.Sprintf("fieldops: comparing %d and %d values", len(a), len(b)))
	}
	for i := range a {
		if a[i] < b[i] {
			return true
		}
		if b[i] < a[i] {
			return false
		}
	}
	return false
}

// Equal reports whether every field of a equals the same field of b.
func (s *Schema[T, V]) Equal(a, b T) bool {
	return EqualValues(s.Project(a), s.Project(b))
}

// NotEqual is !s.Equal(a, b).
func (s *Schema[T, V]) NotEqual(a, b T) bool { return !s.Equal(a, b) }

// Less compares a and b lexicographically in field order.
func (s *Schema[T, V]) Less(a, b T) bool {
	return LessValues(s.Project(a), s.Project(b))
}

// LessEqual is !s.Less(b, a).
func (s *Schema[T, V]) LessEqual(a, b T) bool { return !s.Less(b, a) }

// Greater is s.Less(b, a).
func (s *Schema[T, V]) Greater(a, b T) bool { return s.Less(b, a) }

// GreaterEqual is !s.Less(a, b).
func (s *Schema[T, V]) GreaterEqual(a, b T) bool { return !s.Less(a, b) }

// Compare returns -1 if a is less than b, +1 if b is less than a, and 0
// otherwise. It can be passed to slices.SortFunc.
func (s *Schema[T, V]) Compare(a, b T) int {
	return compareFromLess(s.Less, a, b)
}

func compareFromLess[T any](less func(a, b T) bool, a, b T) int {
	switch {
	case less(a, b):
		return -1
	case less(b, a):
		return 1
	default:
		return 0
	}
}
