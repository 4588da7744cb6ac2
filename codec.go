package bitpack

import (
	"fmt"

	"github.com/wippyai/bitpack/errors"
)

// Codec is the packing contract for values of type V. A codec has a
// fixed bit width independent of any value's runtime content, reads
// exactly Width bits from a buffer, and writes exactly Width bits
// without disturbing neighboring bits in shared bytes.
//
// Both operations require offset + Width() <= 8*len(buf); violations
// panic with a structured *errors.Error.
type Codec[V any] interface {
	// Width returns the codec's bit width. Codecs are stateless values,
	// so the width is available without a V instance and doubles as the
	// width accessor for call sites holding a value.
	Width() int

	// Unpack reads Width bits starting at bit offset off and returns the
	// reconstructed value. The buffer is not mutated.
	Unpack(buf []byte, off int) V

	// Pack writes v's Width bits starting at bit offset off. Only bytes
	// overlapping [off, off+Width) are touched, and bits outside that
	// range in the boundary bytes keep their previous contents.
	Pack(v V, buf []byte, off int)
}

// Any is the dynamically typed face of a codec. Every concrete codec in
// this package implements both Codec[V] and Any; Group composes members
// through Any since Go cannot express a heterogeneous list of Codec[V]
// with differing V.
type Any interface {
	Kind() Kind
	Width() int
	String() string

	// PackAny packs v, which must hold the codec's value type.
	PackAny(v any, buf []byte, off int)

	// UnpackAny unpacks and returns the codec's value type.
	UnpackAny(buf []byte, off int) any
}

// assertValue narrows a dynamic value for PackAny implementations,
// panicking with a structured error on the wrong Go type.
func assertValue[V any](c Any, v any) V {
	val, ok := v.(V)
	if !ok {
		panic(errors.TypeMismatch(errors.OpPack, c.String(), fmt.Sprintf("%T", v)))
	}
	return val
}
