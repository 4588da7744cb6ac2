package bitpack

import (
	"github.com/wippyai/bitpack/errors"
	"github.com/wippyai/bitpack/internal/bitio"
)

// U128 is an unsigned 128-bit integer, held as two 64-bit halves. Go has
// no native 128-bit integer type; the pair is laid out big-endian when
// packed, Hi before Lo.
type U128 struct {
	Hi, Lo uint64
}

// I128 is a signed 128-bit integer with the same bit pattern as U128:
// Hi carries the sign.
type I128 struct {
	Hi int64
	Lo uint64
}

// U128Codec packs a U128 as two consecutive 64-bit big-endian fields.
type U128Codec struct{}

// Uint128 returns the 128-bit unsigned integer codec.
func Uint128() U128Codec { return U128Codec{} }

func (U128Codec) Kind() Kind     { return KindU128 }
func (U128Codec) Width() int     { return 128 }
func (U128Codec) String() string { return KindU128.String() }

func (c U128Codec) Unpack(buf []byte, off int) U128 {
	bitio.Check(errors.OpUnpack, buf, off, c.Width())
	return U128{
		Hi: bitio.ReadBits(buf, off, 64),
		Lo: bitio.ReadBits(buf, off+64, 64),
	}
}

func (c U128Codec) Pack(v U128, buf []byte, off int) {
	bitio.Check(errors.OpPack, buf, off, c.Width())
	bitio.WriteBits(v.Hi, buf, off, 64)
	bitio.WriteBits(v.Lo, buf, off+64, 64)
}

func (c U128Codec) UnpackAny(buf []byte, off int) any {
	return c.Unpack(buf, off)
}

func (c U128Codec) PackAny(v any, buf []byte, off int) {
	c.Pack(assertValue[U128](c, v), buf, off)
}

// I128Codec packs an I128 by reinterpreting its bit pattern as U128.
type I128Codec struct{}

// Int128 returns the 128-bit signed integer codec.
func Int128() I128Codec { return I128Codec{} }

func (I128Codec) Kind() Kind     { return KindS128 }
func (I128Codec) Width() int     { return 128 }
func (I128Codec) String() string { return KindS128.String() }

func (c I128Codec) Unpack(buf []byte, off int) I128 {
	u := Uint128().Unpack(buf, off)
	return I128{Hi: int64(u.Hi), Lo: u.Lo}
}

func (c I128Codec) Pack(v I128, buf []byte, off int) {
	Uint128().Pack(U128{Hi: uint64(v.Hi), Lo: v.Lo}, buf, off)
}

func (c I128Codec) UnpackAny(buf []byte, off int) any {
	return c.Unpack(buf, off)
}

func (c I128Codec) PackAny(v any, buf []byte, off int) {
	c.Pack(assertValue[I128](c, v), buf, off)
}
