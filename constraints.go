package fieldops

import "golang.org/x/exp/constraints"

// Real is satisfied by the types that support all of + - * / == and <.
type Real interface {
	constraints.Integer | constraints.Float
}
