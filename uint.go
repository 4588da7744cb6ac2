package bitpack

import (
	"unsafe"

	"github.com/wippyai/bitpack/internal/bitio"
)

// UnsignedInts is a constraint for unsigned integer types, including the
// pointer-sized uint and uintptr.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// SignedInts is a constraint for signed integer types, including the
// pointer-sized int.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// UintCodec packs an unsigned integer of T's native width, most
// significant bit first. One generic implementation covers every width;
// the shift/merge arithmetic lives in internal/bitio.
type UintCodec[T UnsignedInts] struct{}

// Uint returns the codec for unsigned integer type T. The width is
// 8*sizeof(T): Uint[uint16]() is a 16-bit codec, Uint[uint]() covers the
// pointer-sized integer.
func Uint[T UnsignedInts]() UintCodec[T] { return UintCodec[T]{} }

func (UintCodec[T]) Width() int {
	var v T
	return int(unsafe.Sizeof(v)) * 8
}

func (c UintCodec[T]) Kind() Kind {
	switch c.Width() {
	case 8:
		return KindU8
	case 16:
		return KindU16
	case 32:
		return KindU32
	default:
		return KindU64
	}
}

func (c UintCodec[T]) String() string { return c.Kind().String() }

func (c UintCodec[T]) Unpack(buf []byte, off int) T {
	return T(bitio.ReadBits(buf, off, c.Width()))
}

func (c UintCodec[T]) Pack(v T, buf []byte, off int) {
	bitio.WriteBits(uint64(v), buf, off, c.Width())
}

func (c UintCodec[T]) UnpackAny(buf []byte, off int) any {
	return c.Unpack(buf, off)
}

func (c UintCodec[T]) PackAny(v any, buf []byte, off int) {
	c.Pack(assertValue[T](c, v), buf, off)
}

// IntCodec packs a signed integer of T's native width. It shares the
// unsigned codec's bit layout: the two's-complement bit pattern is
// reinterpreted, never converted arithmetically, so packing -1 as an s8
// and 255 as a u8 produce identical bytes.
type IntCodec[T SignedInts] struct{}

// Int returns the codec for signed integer type T.
func Int[T SignedInts]() IntCodec[T] { return IntCodec[T]{} }

func (IntCodec[T]) Width() int {
	var v T
	return int(unsafe.Sizeof(v)) * 8
}

func (c IntCodec[T]) Kind() Kind {
	switch c.Width() {
	case 8:
		return KindS8
	case 16:
		return KindS16
	case 32:
		return KindS32
	default:
		return KindS64
	}
}

func (c IntCodec[T]) String() string { return c.Kind().String() }

func (c IntCodec[T]) Unpack(buf []byte, off int) T {
	w := c.Width()
	u := bitio.ReadBits(buf, off, w)
	// Sign-extend from bit w-1.
	return T(int64(u<<(64-w)) >> (64 - w))
}

func (c IntCodec[T]) Pack(v T, buf []byte, off int) {
	// uint64(v) sign-extends; WriteBits keeps the low Width bits, which
	// is exactly the two's-complement pattern.
	bitio.WriteBits(uint64(v), buf, off, c.Width())
}

func (c IntCodec[T]) UnpackAny(buf []byte, off int) any {
	return c.Unpack(buf, off)
}

func (c IntCodec[T]) PackAny(v any, buf []byte, off int) {
	c.Pack(assertValue[T](c, v), buf, off)
}
