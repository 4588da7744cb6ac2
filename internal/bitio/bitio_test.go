package bitio

import (
	"encoding/binary"
	"errors"
	"testing"

	bperrors "github.com/wippyai/bitpack/errors"
)

func TestWriteBits_ConformanceVector(t *testing.T) {
	// u16 value 42 at bit offset 3 is the normative layout vector.
	buf := make([]byte, 3)
	WriteBits(42, buf, 3, 16)

	want := []byte{0b0000_0000, 0b0000_0101, 0b0100_0000}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("byte %d: got %08b, want %08b", i, buf[i], want[i])
		}
	}

	if got := ReadBits(buf, 3, 16); got != 42 {
		t.Errorf("read back: got %d, want 42", got)
	}
}

func TestReadWriteBits_Sweep(t *testing.T) {
	values := []uint64{0, 1, 42, 0xA5, 0xDEAD, 0xDEADBEEF, 0x0123456789ABCDEF, ^uint64(0)}

	for width := 1; width <= 64; width++ {
		for off := 0; off <= 16; off++ {
			buf := make([]byte, width/8+3)
			for _, v := range values {
				want := v
				if width < 64 {
					want &= 1<<width - 1
				}
				WriteBits(v, buf, off, width)
				if got := ReadBits(buf, off, width); got != want {
					t.Fatalf("width %d offset %d: got %#x, want %#x", width, off, got, want)
				}
			}
		}
	}
}

func TestWriteBits_PreservesNeighbors(t *testing.T) {
	backgrounds := []byte{0x00, 0xFF, 0xAA, 0x55}

	for _, bg := range backgrounds {
		for width := 1; width <= 64; width++ {
			for off := 0; off <= 16; off++ {
				buf := make([]byte, width/8+3)
				for i := range buf {
					buf[i] = bg
				}
				WriteBits(^uint64(0), buf, off, width)
				WriteBits(0, buf, off, width)

				// All field bits are zero again; everything else must
				// still hold the background pattern.
				for bit := 0; bit < len(buf)*8; bit++ {
					inField := bit >= off && bit < off+width
					got := ReadBit(buf, bit)
					want := !inField && bg&(1<<(7-bit%8)) != 0
					if got != want {
						t.Fatalf("bg %08b width %d offset %d: bit %d got %v, want %v",
							bg, width, off, bit, got, want)
					}
				}
			}
		}
	}
}

func TestWriteBits_AlignedMatchesBigEndian(t *testing.T) {
	// Byte-aligned whole-byte writes are a straight big-endian copy.
	v := uint64(0x0123456789ABCDEF)

	for _, width := range []int{8, 16, 32, 64} {
		for _, byteOff := range []int{0, 1, 2} {
			buf := make([]byte, 11)
			WriteBits(v, buf, byteOff*8, width)

			var be [8]byte
			binary.BigEndian.PutUint64(be[:], v)
			want := be[8-width/8:]
			for i, b := range want {
				if buf[byteOff+i] != b {
					t.Errorf("width %d byte offset %d: byte %d got %02x, want %02x",
						width, byteOff, i, buf[byteOff+i], b)
				}
			}
		}
	}
}

func TestReadWriteBit(t *testing.T) {
	buf := make([]byte, 2)

	WriteBit(true, buf, 0)
	if buf[0] != 0b1000_0000 {
		t.Errorf("bit 0: got %08b, want 10000000", buf[0])
	}
	WriteBit(true, buf, 15)
	if buf[1] != 0b0000_0001 {
		t.Errorf("bit 15: got %08b, want 00000001", buf[1])
	}
	WriteBit(false, buf, 0)
	if buf[0] != 0 {
		t.Errorf("cleared bit 0: got %08b, want 0", buf[0])
	}

	if !ReadBit(buf, 15) {
		t.Error("bit 15: got false, want true")
	}
	if ReadBit(buf, 0) {
		t.Error("bit 0: got true, want false")
	}
}

func TestCheck_Panics(t *testing.T) {
	tests := []struct {
		name  string
		buf   []byte
		off   int
		width int
	}{
		{"empty buffer", nil, 0, 1},
		{"off past end", make([]byte, 2), 16, 1},
		{"width past end", make([]byte, 2), 8, 9},
		{"negative offset", make([]byte, 2), -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				err, ok := r.(error)
				if !ok {
					t.Fatalf("panic value is %T, not error", r)
				}
				if !errors.Is(err, &bperrors.Error{Op: bperrors.OpUnpack, Kind: bperrors.KindShortBuffer}) {
					t.Errorf("unexpected panic error: %v", err)
				}
			}()
			Check(bperrors.OpUnpack, tt.buf, tt.off, tt.width)
		})
	}

	t.Run("exact fit does not panic", func(t *testing.T) {
		Check(bperrors.OpUnpack, make([]byte, 2), 0, 16)
		Check(bperrors.OpUnpack, make([]byte, 2), 15, 1)
	})
}

func FuzzReadWriteBits(f *testing.F) {
	f.Add(uint64(42), 3, 16)
	f.Add(^uint64(0), 7, 64)
	f.Add(uint64(0), 0, 1)

	f.Fuzz(func(t *testing.T, v uint64, off, width int) {
		if width < 1 || width > 64 || off < 0 || off > 64 {
			t.Skip()
		}
		buf := make([]byte, (off+width+7)/8+1)
		WriteBits(v, buf, off, width)
		want := v
		if width < 64 {
			want &= 1<<width - 1
		}
		if got := ReadBits(buf, off, width); got != want {
			t.Fatalf("width %d offset %d: got %#x, want %#x", width, off, got, want)
		}
	})
}
