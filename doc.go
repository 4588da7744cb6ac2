// Package bitpack packs and unpacks fixed-width values at arbitrary bit
// offsets in a byte slice.
//
// Unlike byte-aligned serialization, every value occupies exactly its
// semantic bit width with no padding: successive fields may start and end
// at non-byte-aligned positions and share individual bytes. Packing a
// field never disturbs neighboring bits in the bytes it shares.
//
// # Bit Layout
//
// Bit order is big-endian, both within a byte and across bytes:
//
//	byte  0               1               2 ...
//	     +---------------+---------------+-
//	     |0 1 2 3 4 5 6 7|8 9 ...        |
//	     +---------------+---------------+-
//	      ^ bit 0 is the most significant bit of byte 0
//
// A multi-bit value is stored most-significant-bit first. Packing the
// 16-bit value 42 at bit offset 3 into a 3-byte buffer produces:
//
//	[0b00000000, 0b00000101, 0b01000000]
//
// # Key Types
//
//	Codec[V]   - The contract: fixed bit width, Pack, Unpack
//	Any        - Dynamically typed face of a codec, for heterogeneous groups
//	Bool       - 1-bit boolean
//	Uint/Int   - Unsigned/signed integers of widths 8/16/32/64 and pointer size
//	Uint128    - 128-bit integers over the U128/I128 pair types
//	Array      - N elements of one codec, element i at offset + i*elemWidth
//	Group      - Heterogeneous fixed-arity tuple with cumulative offsets
//	Pair/...   - Typed tuples of arity 2-4
//
// # Quick Start
//
//	u16 := bitpack.Uint[uint16]()
//	buf := make([]byte, 3)
//	u16.Pack(42, buf, 3)
//	v := u16.Unpack(buf, 3) // 42
//
// Codecs hold no state and are pure functions of their inputs; the buffer
// is borrowed only for the duration of one call. Calls on different
// buffers may run concurrently without coordination. Concurrent Pack
// calls on the same buffer are safe only for disjoint byte ranges: two
// fields that share a byte at an offset boundary must serialize their
// writes.
//
// The single error condition is insufficient buffer capacity
// (offset + width > 8*len(buf)). It is treated as a programmer error and
// enforced by an always-on check that panics with a structured
// *errors.Error before any byte is written.
package bitpack
