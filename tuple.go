package bitpack

import (
	"fmt"

	"github.com/wippyai/bitpack/errors"
	"github.com/wippyai/bitpack/internal/bitio"
)

// Typed tuples of arity 2-4. Each codec is defined as a head member plus
// a tail tuple: the head packs at the base offset and the tail at the
// base offset plus the head's width, so the arity generalizes by nesting
// while member offsets stay a running sum with no gaps. Group covers
// higher arities without the nesting.

// Tuple2 is a heterogeneous pair.
type Tuple2[A, B any] struct {
	A A
	B B
}

// Tuple3 is a heterogeneous triple.
type Tuple3[A, B, C any] struct {
	A A
	B B
	C C
}

// Tuple4 is a heterogeneous quadruple.
type Tuple4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

// Tuple2Codec packs a Tuple2 as two consecutive fields.
type Tuple2Codec[A, B any] struct {
	a Codec[A]
	b Codec[B]
}

// Pair returns the codec for (a, b).
func Pair[A, B any](a Codec[A], b Codec[B]) Tuple2Codec[A, B] {
	return Tuple2Codec[A, B]{a: a, b: b}
}

func (Tuple2Codec[A, B]) Kind() Kind { return KindTuple }

func (c Tuple2Codec[A, B]) Width() int { return c.a.Width() + c.b.Width() }

func (c Tuple2Codec[A, B]) String() string {
	return "(" + codecName(c.a) + ", " + codecName(c.b) + ")"
}

func (c Tuple2Codec[A, B]) Unpack(buf []byte, off int) Tuple2[A, B] {
	return Tuple2[A, B]{
		A: c.a.Unpack(buf, off),
		B: c.b.Unpack(buf, off+c.a.Width()),
	}
}

func (c Tuple2Codec[A, B]) Pack(v Tuple2[A, B], buf []byte, off int) {
	bitio.Check(errors.OpPack, buf, off, c.Width())
	c.a.Pack(v.A, buf, off)
	c.b.Pack(v.B, buf, off+c.a.Width())
}

func (c Tuple2Codec[A, B]) UnpackAny(buf []byte, off int) any {
	return c.Unpack(buf, off)
}

func (c Tuple2Codec[A, B]) PackAny(v any, buf []byte, off int) {
	c.Pack(assertValue[Tuple2[A, B]](c, v), buf, off)
}

// Tuple3Codec packs a Tuple3 as a head field and a pair tail.
type Tuple3Codec[A, B, C any] struct {
	head Codec[A]
	tail Tuple2Codec[B, C]
}

// Triple returns the codec for (a, b, c).
func Triple[A, B, C any](a Codec[A], b Codec[B], c Codec[C]) Tuple3Codec[A, B, C] {
	return Tuple3Codec[A, B, C]{head: a, tail: Pair(b, c)}
}

func (Tuple3Codec[A, B, C]) Kind() Kind { return KindTuple }

func (c Tuple3Codec[A, B, C]) Width() int { return c.head.Width() + c.tail.Width() }

func (c Tuple3Codec[A, B, C]) String() string {
	return "(" + codecName(c.head) + ", " + codecName(c.tail.a) + ", " + codecName(c.tail.b) + ")"
}

func (c Tuple3Codec[A, B, C]) Unpack(buf []byte, off int) Tuple3[A, B, C] {
	h := c.head.Unpack(buf, off)
	t := c.tail.Unpack(buf, off+c.head.Width())
	return Tuple3[A, B, C]{A: h, B: t.A, C: t.B}
}

func (c Tuple3Codec[A, B, C]) Pack(v Tuple3[A, B, C], buf []byte, off int) {
	bitio.Check(errors.OpPack, buf, off, c.Width())
	c.head.Pack(v.A, buf, off)
	c.tail.Pack(Tuple2[B, C]{A: v.B, B: v.C}, buf, off+c.head.Width())
}

func (c Tuple3Codec[A, B, C]) UnpackAny(buf []byte, off int) any {
	return c.Unpack(buf, off)
}

func (c Tuple3Codec[A, B, C]) PackAny(v any, buf []byte, off int) {
	c.Pack(assertValue[Tuple3[A, B, C]](c, v), buf, off)
}

// Tuple4Codec packs a Tuple4 as a head field and a triple tail.
type Tuple4Codec[A, B, C, D any] struct {
	head Codec[A]
	tail Tuple3Codec[B, C, D]
}

// Quad returns the codec for (a, b, c, d).
func Quad[A, B, C, D any](a Codec[A], b Codec[B], c Codec[C], d Codec[D]) Tuple4Codec[A, B, C, D] {
	return Tuple4Codec[A, B, C, D]{head: a, tail: Triple(b, c, d)}
}

func (Tuple4Codec[A, B, C, D]) Kind() Kind { return KindTuple }

func (c Tuple4Codec[A, B, C, D]) Width() int { return c.head.Width() + c.tail.Width() }

func (c Tuple4Codec[A, B, C, D]) String() string {
	return "(" + codecName(c.head) + ", " + codecName(c.tail.head) + ", " +
		codecName(c.tail.tail.a) + ", " + codecName(c.tail.tail.b) + ")"
}

func (c Tuple4Codec[A, B, C, D]) Unpack(buf []byte, off int) Tuple4[A, B, C, D] {
	h := c.head.Unpack(buf, off)
	t := c.tail.Unpack(buf, off+c.head.Width())
	return Tuple4[A, B, C, D]{A: h, B: t.A, C: t.B, D: t.C}
}

func (c Tuple4Codec[A, B, C, D]) Pack(v Tuple4[A, B, C, D], buf []byte, off int) {
	bitio.Check(errors.OpPack, buf, off, c.Width())
	c.head.Pack(v.A, buf, off)
	c.tail.Pack(Tuple3[B, C, D]{A: v.B, B: v.C, C: v.D}, buf, off+c.head.Width())
}

func (c Tuple4Codec[A, B, C, D]) UnpackAny(buf []byte, off int) any {
	return c.Unpack(buf, off)
}

func (c Tuple4Codec[A, B, C, D]) PackAny(v any, buf []byte, off int) {
	c.Pack(assertValue[Tuple4[A, B, C, D]](c, v), buf, off)
}

func codecName(c any) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return "?"
}
