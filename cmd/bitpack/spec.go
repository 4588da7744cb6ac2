package main

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/wippyai/bitpack"
)

// field is one entry of a layout spec: an optional name and its codec.
type field struct {
	name  string
	codec bitpack.Any
}

var primCodecs = map[string]bitpack.Any{
	"bool": bitpack.Bool(),
	"u8":   bitpack.Uint[uint8](),
	"u16":  bitpack.Uint[uint16](),
	"u32":  bitpack.Uint[uint32](),
	"u64":  bitpack.Uint[uint64](),
	"u128": bitpack.Uint128(),
	"s8":   bitpack.Int[int8](),
	"s16":  bitpack.Int[int16](),
	"s32":  bitpack.Int[int32](),
	"s64":  bitpack.Int[int64](),
	"s128": bitpack.Int128(),
	"unit": bitpack.Unit(),
}

// parseSpec parses a comma-separated layout description, e.g.
//
//	flags:u8, ok:bool, bool[14], (u16, bool), id:u64
//
// Each entry is TYPE or NAME:TYPE. TYPE is a primitive name, TYPE[N] for
// an array, or a parenthesized group of comma-separated types.
func parseSpec(s string) ([]field, error) {
	parts, err := splitTop(s, ',')
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty spec")
	}

	fields := make([]field, 0, len(parts))
	for i, part := range parts {
		name := fmt.Sprintf("f%d", i)
		typeStr := part
		if idx := strings.IndexByte(part, ':'); idx >= 0 && !strings.HasPrefix(part, "(") {
			name = strings.TrimSpace(part[:idx])
			typeStr = part[idx+1:]
		}
		codec, err := parseType(strings.TrimSpace(typeStr))
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		fields = append(fields, field{name: name, codec: codec})
	}
	return fields, nil
}

func parseType(s string) (bitpack.Any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty type")
	}

	// Array suffix.
	if strings.HasSuffix(s, "]") {
		open := strings.LastIndexByte(s, '[')
		if open < 0 {
			return nil, fmt.Errorf("unmatched ] in %q", s)
		}
		n, err := strconv.Atoi(s[open+1 : len(s)-1])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad array length in %q", s)
		}
		elem, err := parseType(s[:open])
		if err != nil {
			return nil, err
		}
		return arrayOf(elem, n)
	}

	// Group.
	if strings.HasPrefix(s, "(") {
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("unmatched ( in %q", s)
		}
		inner, err := splitTop(s[1:len(s)-1], ',')
		if err != nil {
			return nil, err
		}
		members := make([]bitpack.Any, len(inner))
		for i, m := range inner {
			c, err := parseType(m)
			if err != nil {
				return nil, err
			}
			members[i] = c
		}
		return bitpack.Group(members...), nil
	}

	if c, ok := primCodecs[s]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown type %q", s)
}

// arrayOf builds the typed array codec for a dynamically parsed element.
func arrayOf(elem bitpack.Any, n int) (bitpack.Any, error) {
	switch e := elem.(type) {
	case bitpack.BoolCodec:
		return bitpack.Array(e, n), nil
	case bitpack.UintCodec[uint8]:
		return bitpack.Array(e, n), nil
	case bitpack.UintCodec[uint16]:
		return bitpack.Array(e, n), nil
	case bitpack.UintCodec[uint32]:
		return bitpack.Array(e, n), nil
	case bitpack.UintCodec[uint64]:
		return bitpack.Array(e, n), nil
	case bitpack.IntCodec[int8]:
		return bitpack.Array(e, n), nil
	case bitpack.IntCodec[int16]:
		return bitpack.Array(e, n), nil
	case bitpack.IntCodec[int32]:
		return bitpack.Array(e, n), nil
	case bitpack.IntCodec[int64]:
		return bitpack.Array(e, n), nil
	case bitpack.U128Codec:
		return bitpack.Array(e, n), nil
	case bitpack.I128Codec:
		return bitpack.Array(e, n), nil
	case bitpack.GroupCodec:
		return bitpack.Array[[]any](e, n), nil
	default:
		return nil, fmt.Errorf("cannot build array of %s", elem)
	}
}

// splitTop splits on sep at nesting depth zero, trimming whitespace and
// dropping empty entries at the ends.
func splitTop(s string, sep byte) ([]string, error) {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses in %q", s)
			}
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses in %q", s)
	}
	if last := strings.TrimSpace(s[start:]); last != "" {
		parts = append(parts, last)
	}
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

// parseValue parses a textual value for a codec. Group members and array
// elements are separated by semicolons; a nested group or array value is
// wrapped in parentheses, e.g. (1;true);(2;false) for (u8, bool)[2].
func parseValue(c bitpack.Any, s string) (any, error) {
	s = strings.TrimSpace(s)

	switch cc := c.(type) {
	case bitpack.GroupCodec:
		if outerParens(s) {
			s = s[1 : len(s)-1]
		}
		parts, err := splitTop(s, ';')
		if err != nil {
			return nil, err
		}
		if len(parts) != cc.Len() {
			return nil, fmt.Errorf("%s: want %d values, got %d", cc, cc.Len(), len(parts))
		}
		vs := make([]any, len(parts))
		for i := range parts {
			v, err := parseValue(cc.Member(i), parts[i])
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		return vs, nil
	case bitpack.ArrayCodec[bool]:
		return parseElems(cc, s)
	case bitpack.ArrayCodec[uint8]:
		return parseElems(cc, s)
	case bitpack.ArrayCodec[uint16]:
		return parseElems(cc, s)
	case bitpack.ArrayCodec[uint32]:
		return parseElems(cc, s)
	case bitpack.ArrayCodec[uint64]:
		return parseElems(cc, s)
	case bitpack.ArrayCodec[int8]:
		return parseElems(cc, s)
	case bitpack.ArrayCodec[int16]:
		return parseElems(cc, s)
	case bitpack.ArrayCodec[int32]:
		return parseElems(cc, s)
	case bitpack.ArrayCodec[int64]:
		return parseElems(cc, s)
	case bitpack.ArrayCodec[bitpack.U128]:
		return parseElems(cc, s)
	case bitpack.ArrayCodec[bitpack.I128]:
		return parseElems(cc, s)
	case bitpack.ArrayCodec[[]any]:
		return parseElems(cc, s)
	}

	return parsePrim(c, s)
}

// outerParens reports whether s is a single parenthesized token, so the
// surrounding pair belongs to the value itself rather than to siblings.
func outerParens(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return false
			}
		}
	}
	return true
}

func parseElems[V any](c bitpack.ArrayCodec[V], s string) (any, error) {
	parts, err := splitTop(s, ';')
	if err != nil {
		return nil, err
	}
	if len(parts) != c.Len() {
		return nil, fmt.Errorf("%s: want %d elements, got %d", c, c.Len(), len(parts))
	}
	elem, ok := any(c.Elem()).(bitpack.Any)
	if !ok {
		return nil, fmt.Errorf("%s: element codec has no dynamic form", c)
	}
	out := make([]V, len(parts))
	for i, p := range parts {
		v, err := parseValue(elem, p)
		if err != nil {
			return nil, err
		}
		out[i] = v.(V)
	}
	return out, nil
}

func parsePrim(c bitpack.Any, s string) (any, error) {
	switch c.Kind() {
	case bitpack.KindBool:
		return strconv.ParseBool(s)
	case bitpack.KindU8, bitpack.KindU16, bitpack.KindU32, bitpack.KindU64:
		v, err := strconv.ParseUint(s, 0, c.Width())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		switch c.Width() {
		case 8:
			return uint8(v), nil
		case 16:
			return uint16(v), nil
		case 32:
			return uint32(v), nil
		default:
			return v, nil
		}
	case bitpack.KindS8, bitpack.KindS16, bitpack.KindS32, bitpack.KindS64:
		v, err := strconv.ParseInt(s, 0, c.Width())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		switch c.Width() {
		case 8:
			return int8(v), nil
		case 16:
			return int16(v), nil
		case 32:
			return int32(v), nil
		default:
			return v, nil
		}
	case bitpack.KindU128, bitpack.KindS128:
		return parse128(c.Kind(), s)
	case bitpack.KindUnit:
		return struct{}{}, nil
	default:
		return nil, fmt.Errorf("cannot parse value for %s", c)
	}
}

func parse128(k bitpack.Kind, s string) (any, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("%s: bad integer %q", k, s)
	}

	signed := k == bitpack.KindS128
	if signed {
		min := new(big.Int).Lsh(big.NewInt(-1), 127)
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
		if v.Cmp(min) < 0 || v.Cmp(max) > 0 {
			return nil, fmt.Errorf("s128: %s out of range", s)
		}
		if v.Sign() < 0 {
			v.Add(v, new(big.Int).Lsh(big.NewInt(1), 128))
		}
	} else {
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
		if v.Sign() < 0 || v.Cmp(max) > 0 {
			return nil, fmt.Errorf("u128: %s out of range", s)
		}
	}

	lo := new(big.Int).And(v, new(big.Int).SetUint64(^uint64(0))).Uint64()
	hi := new(big.Int).Rsh(v, 64).Uint64()
	if signed {
		return bitpack.I128{Hi: int64(hi), Lo: lo}, nil
	}
	return bitpack.U128{Hi: hi, Lo: lo}, nil
}

// formatValue renders an unpacked value the way parseValue accepts it.
func formatValue(v any) string {
	switch v := v.(type) {
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			if g, ok := e.([]any); ok {
				parts[i] = "(" + formatValue(g) + ")"
			} else {
				parts[i] = formatValue(e)
			}
		}
		return strings.Join(parts, ";")
	case [][]any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = "(" + formatValue(e) + ")"
		}
		return strings.Join(parts, ";")
	case bitpack.U128:
		return u128String(v.Hi, v.Lo)
	case bitpack.I128:
		if v.Hi < 0 {
			// Negate the two's-complement pair for display.
			lo := -v.Lo
			hi := ^uint64(v.Hi)
			if v.Lo == 0 {
				hi++
			}
			return "-" + u128String(hi, lo)
		}
		return u128String(uint64(v.Hi), v.Lo)
	case struct{}:
		return "()"
	}

	rv := fmt.Sprintf("%v", v)
	if strings.HasPrefix(rv, "[") && strings.HasSuffix(rv, "]") {
		// Slices print space-separated; rejoin with semicolons.
		return strings.Join(strings.Fields(rv[1:len(rv)-1]), ";")
	}
	return rv
}

func u128String(hi, lo uint64) string {
	v := new(big.Int).SetUint64(hi)
	v.Lsh(v, 64)
	v.Or(v, new(big.Int).SetUint64(lo))
	return v.String()
}
