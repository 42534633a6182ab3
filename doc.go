// Package fieldops provides field-wise arithmetic, comparison and
// formatting for aggregate types.
//
// A type opts in once by registering its ordered field list, either as
// accessors with a positional constructor:
//
//	var points = fieldops.MustSchema(
//		func(v ...float64) Point { return Point{v[0], v[1]} },
//		fieldops.Accessor("X", func(p Point) float64 { return p.X }),
//		fieldops.Accessor("Y", func(p Point) float64 { return p.Y }),
//	)
//
// or by field name, using reflection:
//
//	var colors = fieldops.MustByName[Color]("R", "G", "B", "A")
//
// Every binary operator applies independently to each same-position pair
// of fields and rebuilds a value of the type. Arithmetic is exactly that
// of the field type: integers wrap, floats follow IEEE 754, and integer
// division by zero panics. Nothing is clamped.
//
// Equality is the conjunction of field equalities. Ordering is
// lexicographic in declared order, and LessEqual, Greater and
// GreaterEqual are derived from Less. Compound assignment is always the
// binary operator followed by assignment.
//
// For methods on the type itself, see the fieldopgen command, which
// generates the same operators as Go source.
package fieldops
