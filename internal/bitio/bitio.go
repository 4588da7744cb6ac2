// Package bitio implements the bit-addressing arithmetic shared by every
// codec: reading and writing fields of up to 64 bits at arbitrary bit
// offsets within a byte slice.
//
// Bit order is big-endian throughout: within a byte, bit 0 is the most
// significant (leftmost) bit, and across bytes, lower byte indices hold
// more significant bits of a multi-byte field. A field is never required
// to start or end on a byte boundary; boundary bytes are merged with
// their existing contents so that neighboring fields sharing a byte are
// left untouched.
package bitio

import (
	"github.com/wippyai/bitpack/errors"
)

// Check enforces the capacity precondition offset + width <= len(buf) * 8.
// Violations panic with a structured *errors.Error; the check is always
// on, since callers cross the library boundary with buffers of unverified
// size. No caller mutates the buffer before its Check passes.
func Check(op errors.Op, buf []byte, off, width int) {
	if off < 0 || len(buf)*8-off < width {
		panic(errors.ShortBuffer(op, width, off, len(buf)*8))
	}
}

// ReadBit returns the bit at absolute bit position off.
func ReadBit(buf []byte, off int) bool {
	Check(errors.OpUnpack, buf, off, 1)
	return buf[off>>3]&(1<<(7-off&7)) != 0
}

// WriteBit sets or clears the bit at absolute bit position off.
func WriteBit(bit bool, buf []byte, off int) {
	Check(errors.OpPack, buf, off, 1)
	if bit {
		buf[off>>3] |= 1 << (7 - off&7)
	} else {
		buf[off>>3] &^= 1 << (7 - off&7)
	}
}

// ReadBits reads a width-bit unsigned value starting at bit offset off,
// 0 < width <= 64. The first bit read becomes the most significant bit of
// the result.
func ReadBits(buf []byte, off, width int) uint64 {
	Check(errors.OpUnpack, buf, off, width)

	byteIdx := off >> 3
	bitIdx := off & 7

	// Byte-aligned whole bytes: straight big-endian copy.
	if bitIdx == 0 && width&7 == 0 {
		var v uint64
		for n := width; n > 0; n -= 8 {
			v = v<<8 | uint64(buf[byteIdx])
			byteIdx++
		}
		return v
	}

	// Start byte.
	first := 8 - bitIdx
	if width <= first {
		return uint64(buf[byteIdx]>>(first-width)) & mask(width)
	}
	v := uint64(buf[byteIdx]) & mask(first)
	rem := width - first
	byteIdx++

	// Whole bytes.
	for rem >= 8 {
		v = v<<8 | uint64(buf[byteIdx])
		byteIdx++
		rem -= 8
	}

	// Trailing partial byte borrows its top rem bits.
	if rem > 0 {
		v = v<<rem | uint64(buf[byteIdx]>>(8-rem))
	}
	return v
}

// WriteBits writes the low width bits of v starting at bit offset off,
// 0 < width <= 64, most significant bit first. Bits outside
// [off, off+width) in the boundary bytes keep their previous contents;
// interior bytes are overwritten.
func WriteBits(v uint64, buf []byte, off, width int) {
	Check(errors.OpPack, buf, off, width)
	v &= mask(width)

	byteIdx := off >> 3
	bitIdx := off & 7

	// Byte-aligned whole bytes: straight big-endian copy, no merging.
	if bitIdx == 0 && width&7 == 0 {
		for n := width - 8; n >= 0; n -= 8 {
			buf[byteIdx] = byte(v >> n)
			byteIdx++
		}
		return
	}

	// Field contained in a single byte.
	first := 8 - bitIdx
	if width <= first {
		shift := first - width
		m := byte(mask(width)) << shift
		buf[byteIdx] = buf[byteIdx]&^m | byte(v)<<shift&m
		return
	}

	// Start byte: merge into its low `first` bits.
	rem := width - first
	m := byte(mask(first))
	buf[byteIdx] = buf[byteIdx]&^m | byte(v>>rem)&m
	byteIdx++

	// Whole bytes.
	for rem >= 8 {
		rem -= 8
		buf[byteIdx] = byte(v >> rem)
		byteIdx++
	}

	// Trailing partial byte: merge into its top rem bits.
	if rem > 0 {
		m := byte(mask(rem)) << (8 - rem)
		buf[byteIdx] = buf[byteIdx]&^m | byte(v)<<(8-rem)&m
	}
}

func mask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return 1<<width - 1
}
