package bitpack

import (
	"bytes"
	"slices"
	"testing"

	"github.com/wippyai/bitpack/errors"
)

func roundTripSlice[V comparable](t *testing.T, c ArrayCodec[V], v []V) {
	t.Helper()
	buf := make([]byte, c.Width()/8+3)
	for off := 0; off <= 16; off++ {
		c.Pack(v, buf, off)
		if got := c.Unpack(buf, off); !slices.Equal(got, v) {
			t.Fatalf("offset %d: got %v, want %v", off, got, v)
		}
	}
}

func TestArrayRoundTrip(t *testing.T) {
	t.Run("bool_14", func(t *testing.T) {
		v := make([]bool, 14)
		for i := range v {
			v[i] = i%3 == 0
		}
		roundTripSlice(t, Array(Bool(), 14), v)
	})

	t.Run("bool_64", func(t *testing.T) {
		v := make([]bool, 64)
		for i := range v {
			v[i] = i%2 == 1
		}
		roundTripSlice(t, Array(Bool(), 64), v)
	})

	t.Run("u8_4", func(t *testing.T) {
		roundTripSlice(t, Array(Uint[uint8](), 4), []uint8{0x01, 0xFF, 0x80, 0x7F})
	})

	t.Run("u16_3", func(t *testing.T) {
		roundTripSlice(t, Array(Uint[uint16](), 3), []uint16{42, 0xFFFF, 0x8001})
	})

	t.Run("s32_2", func(t *testing.T) {
		roundTripSlice(t, Array(Int[int32](), 2), []int32{-1, 1 << 30})
	})

	t.Run("empty", func(t *testing.T) {
		c := Array(Uint[uint8](), 0)
		if c.Width() != 0 {
			t.Errorf("width: got %d, want 0", c.Width())
		}
		roundTripSlice(t, c, []uint8{})
	})
}

func TestArrayWidth(t *testing.T) {
	tests := []struct {
		name  string
		codec Any
		width int
	}{
		{"bool[14]", Array(Bool(), 14), 14},
		{"u8[4]", Array(Uint[uint8](), 4), 32},
		{"u16[3]", Array(Uint[uint16](), 3), 48},
		{"u128[2]", Array(Uint128(), 2), 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.codec.Width(); got != tt.width {
				t.Errorf("width: got %d, want %d", got, tt.width)
			}
		})
	}
}

func TestArrayElementPlacement(t *testing.T) {
	// Element i must land exactly where packing it by hand at
	// off + i*E does.
	c := Array(Uint[uint8](), 3)
	elems := []uint8{0xAB, 0xCD, 0xEF}

	for off := 0; off <= 16; off++ {
		composite := make([]byte, 7)
		manual := make([]byte, 7)

		c.Pack(elems, composite, off)
		for i, e := range elems {
			Uint[uint8]().Pack(e, manual, off+i*8)
		}

		if !bytes.Equal(composite, manual) {
			t.Errorf("offset %d: composite %08b != manual %08b", off, composite, manual)
		}
	}
}

func TestArrayLengthMismatchPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(*errors.Error)
		if !ok {
			t.Fatalf("panic value is %T, want *errors.Error", r)
		}
		if err.Kind != errors.KindLengthMismatch {
			t.Errorf("kind: got %q, want %q", err.Kind, errors.KindLengthMismatch)
		}
	}()
	Array(Uint[uint8](), 4).Pack([]uint8{1, 2, 3}, make([]byte, 8), 0)
}

func TestArrayAccessors(t *testing.T) {
	c := Array(Uint[uint16](), 5)
	if c.Len() != 5 {
		t.Errorf("len: got %d, want 5", c.Len())
	}
	if c.Elem().Width() != 16 {
		t.Errorf("elem width: got %d, want 16", c.Elem().Width())
	}
}
