package calldata

import "github.com/smartcontractkit/deal-console/codec/descriptor"

// wordSize is the size of an ABI word in bytes.
const wordSize = 32

// ElementSizeOf returns the width, in hex characters, t occupies in the head of its enclosing
// encoding: one word for dynamic types and elementary types, the sum of the members for static
// tuples and fixed arrays. Tuples without components and unsupported types take one word.
func ElementSizeOf(t descriptor.Type) int {
	return headSize(t) * 2
}

func headSize(t descriptor.Type) int {
	if t.IsDynamic() {
		return wordSize
	}
	switch t.Kind {
	case descriptor.KindArray:
		return t.Size * headSize(*t.Elem)
	case descriptor.KindTuple:
		if t.Opaque {
			return wordSize
		}

		return tupleHeadSize(t)
	default:
		return wordSize
	}
}

// tupleHeadSize returns the size of the heads of the components of t, which is where the
// encoding of a tuple starts regardless of whether it is dynamic.
func tupleHeadSize(t descriptor.Type) int {
	size := 0
	for _, c := range t.Components {
		size += headSize(c)
	}

	return size
}
