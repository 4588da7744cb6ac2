package main

import (
	"reflect"
	"testing"

	"github.com/wippyai/bitpack"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		spec   string
		names  []string
		widths []int
	}{
		{"u8", []string{"f0"}, []int{8}},
		{"flags:u8, ok:bool, id:u16", []string{"flags", "ok", "id"}, []int{8, 1, 16}},
		{"bool[14]", []string{"f0"}, []int{14}},
		{"hdr:(u16, bool), body:u8[4]", []string{"hdr", "body"}, []int{17, 32}},
		{"(u8, (bool, u16))[2]", []string{"f0"}, []int{50}},
		{"big:u128, sbig:s128", []string{"big", "sbig"}, []int{128, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			fields, err := parseSpec(tt.spec)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if len(fields) != len(tt.names) {
				t.Fatalf("field count: got %d, want %d", len(fields), len(tt.names))
			}
			for i := range fields {
				if fields[i].name != tt.names[i] {
					t.Errorf("field %d name: got %q, want %q", i, fields[i].name, tt.names[i])
				}
				if got := fields[i].codec.Width(); got != tt.widths[i] {
					t.Errorf("field %d width: got %d, want %d", i, got, tt.widths[i])
				}
			}
		})
	}
}

func TestParseSpecErrors(t *testing.T) {
	specs := []string{
		"",
		"u9",
		"u8[",
		"u8[x]",
		"(u8, bool",
		"u8)",
		"name:",
	}
	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			if _, err := parseSpec(spec); err == nil {
				t.Errorf("expected error for %q", spec)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		typ  string
		in   string
		want any
	}{
		{"bool", "true", true},
		{"u8", "255", uint8(255)},
		{"u16", "0xBEEF", uint16(0xBEEF)},
		{"u32", "42", uint32(42)},
		{"u64", "18446744073709551615", uint64(18446744073709551615)},
		{"s8", "-1", int8(-1)},
		{"s64", "-42", int64(-42)},
		{"u128", "340282366920938463463374607431768211455", bitpack.U128{Hi: ^uint64(0), Lo: ^uint64(0)}},
		{"u128", "1", bitpack.U128{Lo: 1}},
		{"s128", "-1", bitpack.I128{Hi: -1, Lo: ^uint64(0)}},
		{"u8[3]", "1;2;3", []uint8{1, 2, 3}},
		{"bool[2]", "true;false", []bool{true, false}},
		{"(u8, bool)", "7;true", []any{uint8(7), true}},
		{"(u8, (bool, u16))", "7;(true;513)", []any{uint8(7), []any{true, uint16(513)}}},
		{"(u8, bool)[2]", "(1;true);(2;false)", [][]any{{uint8(1), true}, {uint8(2), false}}},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"="+tt.in, func(t *testing.T) {
			codec, err := parseType(tt.typ)
			if err != nil {
				t.Fatalf("parse type: %v", err)
			}
			got, err := parseValue(codec, tt.in)
			if err != nil {
				t.Fatalf("parse value: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseValueErrors(t *testing.T) {
	tests := []struct {
		typ string
		in  string
	}{
		{"u8", "256"},
		{"u8", "abc"},
		{"s8", "128"},
		{"u128", "-1"},
		{"s128", "170141183460469231731687303715884105728"},
		{"u8[3]", "1;2"},
		{"(u8, bool)", "7"},
		{"(u8, bool)[2]", "(1;true)"},
		{"(u8, bool)[2]", "(1;true);(2;false);(3;true)"},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"="+tt.in, func(t *testing.T) {
			codec, err := parseType(tt.typ)
			if err != nil {
				t.Fatalf("parse type: %v", err)
			}
			if _, err := parseValue(codec, tt.in); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseValueRoundTrip(t *testing.T) {
	// Values survive pack, unpack and re-render.
	fields, err := parseSpec("flags:u8, ok:bool, id:u16, data:u8[3]")
	if err != nil {
		t.Fatal(err)
	}

	members := make([]bitpack.Any, len(fields))
	for i, f := range fields {
		members[i] = f.codec
	}
	group := bitpack.Group(members...)

	ins := []string{"0xA5", "true", "513", "1;2;3"}
	vs := make([]any, len(fields))
	for i := range fields {
		v, err := parseValue(fields[i].codec, ins[i])
		if err != nil {
			t.Fatalf("field %d: %v", i, err)
		}
		vs[i] = v
	}

	buf := make([]byte, (3+group.Width()+7)/8)
	group.Pack(vs, buf, 3)
	out := group.Unpack(buf, 3)

	wantRendered := []string{"165", "true", "513", "1;2;3"}
	for i := range out {
		if got := formatValue(out[i]); got != wantRendered[i] {
			t.Errorf("field %d: rendered %q, want %q", i, got, wantRendered[i])
		}
	}
}

func TestGroupArrayRoundTrip(t *testing.T) {
	codec, err := parseType("(u8, bool)[2]")
	if err != nil {
		t.Fatalf("parse type: %v", err)
	}
	v, err := parseValue(codec, "(7;true);(0xFF;false)")
	if err != nil {
		t.Fatalf("parse value: %v", err)
	}

	buf := make([]byte, (3+codec.Width()+7)/8)
	codec.PackAny(v, buf, 3)
	out := codec.UnpackAny(buf, 3)

	if got, want := formatValue(out), "(7;true);(255;false)"; got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestFormatValue128(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{bitpack.U128{Hi: 1, Lo: 0}, "18446744073709551616"},
		{bitpack.I128{Hi: -1, Lo: ^uint64(0)}, "-1"},
		{bitpack.I128{Hi: 0, Lo: 42}, "42"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.v); got != tt.want {
			t.Errorf("formatValue(%v): got %q, want %q", tt.v, got, tt.want)
		}
	}
}
