package fieldops

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNotStruct       = errors.New("fieldops: not a struct type")
	ErrUnknownField    = errors.New("fieldops: no such exported field")
	ErrUnsupportedKind = errors.New("fieldops: field kind does not support arithmetic and ordering")
)

type kindClass int

const (
	signedClass kindClass = iota
	unsignedClass
	floatClass
)

func classOf(k reflect.Kind) (kindClass, bool) {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signedClass, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsignedClass, true
	case reflect.Float32, reflect.Float64:
		return floatClass, true
	}
	return 0, false
}

type namedField struct {
	name  string
	index int
	class kindClass
	typ   reflect.Type
}

// A Struct is the registration of struct type T by field name. Fields
// may have different numeric types; each operation uses the field's own
// type, so an int8 field wraps at 8 bits.
//
// If the names do not cover every field of T, results of the arithmetic
// operations take the unlisted fields from the left operand.
type Struct[T any] struct {
	typ    reflect.Type
	fields []namedField
}

// ByName registers struct type T with the given exported field names, in
// the order they are to be combined and compared.
func ByName[T any](names ...string) (*Struct[T], error) {
	if len(names) == 0 {
		return nil, ErrNoFields
	}
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s: %w", typ, ErrNotStruct)
	}
	seen := map[string]bool{}
	var fields []namedField
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("%s.%s: %w", typ, name, ErrDuplicateField)
		}
		seen[name] = true
		sf, ok := typ.FieldByName(name)
		if !ok || !sf.IsExported() || len(sf.Index) != 1 {
			return nil, fmt.Errorf("%s.%s: %w", typ, name, ErrUnknownField)
		}
		class, ok := classOf(sf.Type.Kind())
		if !ok {
			return nil, fmt.Errorf("%s.%s has type %s: %w", typ, name, sf.Type, ErrUnsupportedKind)
		}
		fields = append(fields, namedField{name: name, index: sf.Index[0], class: class, typ: sf.Type})
	}
	return &Struct[T]{typ: typ, fields: fields}, nil
}

// MustByName is like ByName but panics on error.
func MustByName[T any](names ...string) *Struct[T] {
	s, err := ByName[T](names...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of registered fields.
func (s *Struct[T]) Len() int { return len(s.fields) }

// Names returns the registered field names in order.
func (s *Struct[T]) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Project returns the values of x's registered fields in order.
func (s *Struct[T]) Project(x T) []any {
	v := reflect.ValueOf(x)
	vals := make([]any, len(s.fields))
	for i, f := range s.fields {
		vals[i] = v.Field(f.index).Interface()
	}
	return vals
}

// Build returns a T whose registered fields are set from vals in order
// and whose other fields are zero. Each value must be assignable to its
// field.
func (s *Struct[T]) Build(vals []any) T {
	if len(vals) != len(s.fields) {
		panic(fmt.Sprintf("fieldops: Build got %d values for %d fields", len(vals), len(s.fields)))
	}
	out := reflect.New(s.typ).Elem()
	for i, f := range s.fields {
		out.Field(f.index).Set(reflect.ValueOf(vals[i]))
	}
	return out.Interface().(T)
}

type arithOp int

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
)

func applySigned(op arithOp, x, y int64) int64 {
	switch op {
	case opAdd:
		return x + y
	case opSub:
		return x - y
	case opMul:
		return x * y
	default:
		return x / y
	}
}

func applyUnsigned(op arithOp, x, y uint64) uint64 {
	switch op {
	case opAdd:
		return x + y
	case opSub:
		return x - y
	case opMul:
		return x * y
	default:
		return x / y
	}
}

func applyFloat(op arithOp, x, y float64) float64 {
	switch op {
	case opAdd:
		return x + y
	case opSub:
		return x - y
	case opMul:
		return x * y
	default:
		return x / y
	}
}

func (s *Struct[T]) apply(a, b T, op arithOp) T {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	out := reflect.New(s.typ).Elem()
	out.Set(av)
	for _, f := range s.fields {
		x, y, dst := av.Field(f.index), bv.Field(f.index), out.Field(f.index)
		// The Set* methods truncate to the field's width.
		switch f.class {
		case signedClass:
			dst.SetInt(applySigned(op, x.Int(), y.Int()))
		case unsignedClass:
			dst.SetUint(applyUnsigned(op, x.Uint(), y.Uint()))
		case floatClass:
			dst.SetFloat(applyFloat(op, x.Float(), y.Float()))
		}
	}
	return out.Interface().(T)
}

// Add returns the field-wise sum a + b.
func (s *Struct[T]) Add(a, b T) T { return s.apply(a, b, opAdd) }

// Sub returns the field-wise difference a - b.
func (s *Struct[T]) Sub(a, b T) T { return s.apply(a, b, opSub) }

// Mul returns the field-wise product a * b.
func (s *Struct[T]) Mul(a, b T) T { return s.apply(a, b, opMul) }

// Div returns the field-wise quotient a / b.
func (s *Struct[T]) Div(a, b T) T { return s.apply(a, b, opDiv) }

func (s *Struct[T]) AddAssign(dst *T, b T) { *dst = s.Add(*dst, b) }
func (s *Struct[T]) SubAssign(dst *T, b T) { *dst = s.Sub(*dst, b) }
func (s *Struct[T]) MulAssign(dst *T, b T) { *dst = s.Mul(*dst, b) }
func (s *Struct[T]) DivAssign(dst *T, b T) { *dst = s.Div(*dst, b) }

// cmpField returns -1, 0 or +1 for field f of a and b. Unordered float
// pairs (NaN) report 0, matching a sequence of < tests that are all false.
func cmpField(f namedField, x, y reflect.Value) int {
	switch f.class {
	case signedClass:
		return cmpOrdered(x.Int(), y.Int())
	case unsignedClass:
		return cmpOrdered(x.Uint(), y.Uint())
	default:
		return cmpOrdered(x.Float(), y.Float())
	}
}

func cmpOrdered[V Real](x, y V) int {
	switch {
	case x < y:
		return -1
	case y < x:
		return 1
	default:
		return 0
	}
}

func eqField(f namedField, x, y reflect.Value) bool {
	switch f.class {
	case signedClass:
		return x.Int() == y.Int()
	case unsignedClass:
		return x.Uint() == y.Uint()
	default:
		return x.Float() == y.Float()
	}
}

// Equal reports whether every registered field of a equals that of b.
func (s *Struct[T]) Equal(a, b T) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	for _, f := range s.fields {
		if !eqField(f, av.Field(f.index), bv.Field(f.index)) {
			return false
		}
	}
	return true
}

// NotEqual is !s.Equal(a, b).
func (s *Struct[T]) NotEqual(a, b T) bool { return !s.Equal(a, b) }

// Less compares a and b lexicographically in registration order.
func (s *Struct[T]) Less(a, b T) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	for _, f := range s.fields {
		switch cmpField(f, av.Field(f.index), bv.Field(f.index)) {
		case -1:
			return true
		case 1:
			return false
		}
	}
	return false
}

// LessEqual is !s.Less(b, a).
func (s *Struct[T]) LessEqual(a, b T) bool { return !s.Less(b, a) }

// Greater is s.Less(b, a).
func (s *Struct[T]) Greater(a, b T) bool { return s.Less(b, a) }

// GreaterEqual is !s.Less(a, b).
func (s *Struct[T]) GreaterEqual(a, b T) bool { return !s.Less(a, b) }

// Compare returns -1, 0 or +1 as a is less than, neither, or greater than b.
func (s *Struct[T]) Compare(a, b T) int { return compareFromLess(s.Less, a, b) }

// Format renders the registered fields of x as "(v0, v1, ...)".
func (s *Struct[T]) Format(x T) string { return FormatValues(s.Project(x)) }
