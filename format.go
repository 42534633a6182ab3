package fieldops

import (
	"fmt"
	"strings"
)

// FormatValues renders vals as "(v0, v1, ..., vn-1)" using each value's
// default format.
func FormatValues[V any](vals []V) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range vals {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, v)
	}
	b.WriteByte(')')
	return b.String()
}

// Format renders the fields of x in declared order.
func (s *Schema[T, V]) Format(x T) string {
	return FormatValues(s.Project(x))
}
