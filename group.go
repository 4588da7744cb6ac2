package bitpack

import (
	"strings"

	"github.com/wippyai/bitpack/errors"
	"github.com/wippyai/bitpack/internal/bitio"
)

// UnitCodec is the zero-width no-op codec. It is the recursion base case
// for tuple composition and packs/unpacks the empty struct.
type UnitCodec struct{}

// Unit returns the zero-width codec.
func Unit() UnitCodec { return UnitCodec{} }

func (UnitCodec) Kind() Kind     { return KindUnit }
func (UnitCodec) Width() int     { return 0 }
func (UnitCodec) String() string { return "()" }

func (UnitCodec) Unpack(buf []byte, off int) struct{} { return struct{}{} }

func (UnitCodec) Pack(v struct{}, buf []byte, off int) {}

func (c UnitCodec) UnpackAny(buf []byte, off int) any { return struct{}{} }

func (c UnitCodec) PackAny(v any, buf []byte, off int) {}

// GroupCodec packs a fixed sequence of heterogeneous members with no
// gaps: member i starts at off plus the sum of the widths of members
// 0..i. Member bit offsets are computed once at construction, the same
// way a byte-level layout calculator precomputes field offsets, except
// that bit layouts have no alignment so the offsets are a plain running
// sum.
type GroupCodec struct {
	members []Any
	offs    []int
	width   int
}

// Group returns a codec over members in declaration order. Values are
// []any slices with one entry per member, each holding that member's
// value type. Group() with no members is a zero-width no-op codec.
func Group(members ...Any) GroupCodec {
	offs := make([]int, len(members))
	width := 0
	for i, m := range members {
		offs[i] = width
		width += m.Width()
	}
	debugf("group: %d members, width %d", len(members), width)
	return GroupCodec{members: members, offs: offs, width: width}
}

func (GroupCodec) Kind() Kind { return KindTuple }

func (c GroupCodec) Width() int { return c.width }

// Len returns the member count.
func (c GroupCodec) Len() int { return len(c.members) }

// Member returns the i'th member codec.
func (c GroupCodec) Member(i int) Any { return c.members[i] }

// Offset returns the i'th member's bit offset relative to the group's
// start.
func (c GroupCodec) Offset(i int) int { return c.offs[i] }

func (c GroupCodec) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, m := range c.members {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (c GroupCodec) Unpack(buf []byte, off int) []any {
	bitio.Check(errors.OpUnpack, buf, off, c.width)
	out := make([]any, len(c.members))
	for i, m := range c.members {
		out[i] = m.UnpackAny(buf, off+c.offs[i])
	}
	return out
}

func (c GroupCodec) Pack(vs []any, buf []byte, off int) {
	if len(vs) != len(c.members) {
		panic(errors.LengthMismatch(errors.OpPack, c.String(), len(c.members), len(vs)))
	}
	bitio.Check(errors.OpPack, buf, off, c.width)
	for i, m := range c.members {
		m.PackAny(vs[i], buf, off+c.offs[i])
	}
}

func (c GroupCodec) UnpackAny(buf []byte, off int) any {
	return c.Unpack(buf, off)
}

func (c GroupCodec) PackAny(v any, buf []byte, off int) {
	c.Pack(assertValue[[]any](c, v), buf, off)
}
