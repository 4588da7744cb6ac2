package bitpack

import (
	"github.com/wippyai/bitpack/internal/bitio"
)

// BoolCodec packs a boolean into a single bit.
type BoolCodec struct{}

// Bool returns the 1-bit boolean codec.
func Bool() BoolCodec { return BoolCodec{} }

func (BoolCodec) Kind() Kind     { return KindBool }
func (BoolCodec) Width() int     { return 1 }
func (BoolCodec) String() string { return KindBool.String() }

func (BoolCodec) Unpack(buf []byte, off int) bool {
	return bitio.ReadBit(buf, off)
}

func (BoolCodec) Pack(v bool, buf []byte, off int) {
	bitio.WriteBit(v, buf, off)
}

func (c BoolCodec) UnpackAny(buf []byte, off int) any {
	return c.Unpack(buf, off)
}

func (c BoolCodec) PackAny(v any, buf []byte, off int) {
	c.Pack(assertValue[bool](c, v), buf, off)
}
