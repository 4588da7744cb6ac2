package bitpack

import (
	"fmt"

	"github.com/wippyai/bitpack/errors"
	"github.com/wippyai/bitpack/internal/bitio"
)

// ArrayCodec packs a fixed number of elements of one codec back to back:
// element i occupies bits [off + i*E, off + (i+1)*E) where E is the
// element width. Elements are independent; abutting is purely a
// consequence of the cumulative offsets.
type ArrayCodec[V any] struct {
	elem Codec[V]
	n    int
}

// Array returns a codec for exactly n elements of elem. Values are
// slices of length n; Pack panics on any other length. n must be
// non-negative.
func Array[V any](elem Codec[V], n int) ArrayCodec[V] {
	if n < 0 {
		panic(errors.New(errors.OpPack, errors.KindLengthMismatch).
			Detail("negative array length %d", n).
			Build())
	}
	debugf("array: %d elements of width %d", n, elem.Width())
	return ArrayCodec[V]{elem: elem, n: n}
}

func (ArrayCodec[V]) Kind() Kind { return KindArray }

func (c ArrayCodec[V]) Width() int { return c.n * c.elem.Width() }

// Len returns the element count.
func (c ArrayCodec[V]) Len() int { return c.n }

// Elem returns the element codec.
func (c ArrayCodec[V]) Elem() Codec[V] { return c.elem }

func (c ArrayCodec[V]) String() string {
	if s, ok := any(c.elem).(fmt.Stringer); ok {
		return fmt.Sprintf("%s[%d]", s, c.n)
	}
	return fmt.Sprintf("array[%d]", c.n)
}

func (c ArrayCodec[V]) Unpack(buf []byte, off int) []V {
	bitio.Check(errors.OpUnpack, buf, off, c.Width())
	e := c.elem.Width()
	out := make([]V, c.n)
	for i := range out {
		out[i] = c.elem.Unpack(buf, off+i*e)
	}
	return out
}

func (c ArrayCodec[V]) Pack(v []V, buf []byte, off int) {
	if len(v) != c.n {
		panic(errors.LengthMismatch(errors.OpPack, c.String(), c.n, len(v)))
	}
	bitio.Check(errors.OpPack, buf, off, c.Width())
	e := c.elem.Width()
	for i, x := range v {
		c.elem.Pack(x, buf, off+i*e)
	}
}

func (c ArrayCodec[V]) UnpackAny(buf []byte, off int) any {
	return c.Unpack(buf, off)
}

func (c ArrayCodec[V]) PackAny(v any, buf []byte, off int) {
	c.Pack(assertValue[[]V](c, v), buf, off)
}
