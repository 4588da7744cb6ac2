package bitpack

// Kind identifies a codec's shape, mostly for diagnostics and tooling.
type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindS8
	KindU16
	KindS16
	KindU32
	KindS32
	KindU64
	KindS64
	KindU128
	KindS128
	KindUnit
	KindArray
	KindTuple
)

var kindNames = [...]string{
	KindBool:  "bool",
	KindU8:    "u8",
	KindS8:    "s8",
	KindU16:   "u16",
	KindS16:   "s16",
	KindU32:   "u32",
	KindS32:   "s32",
	KindU64:   "u64",
	KindS64:   "s64",
	KindU128:  "u128",
	KindS128:  "s128",
	KindUnit:  "unit",
	KindArray: "array",
	KindTuple: "tuple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k is a single boolean or integer field
// rather than a composite.
func (k Kind) IsPrimitive() bool {
	return k <= KindS128
}

// Signed reports whether k is a signed integer kind.
func (k Kind) Signed() bool {
	switch k {
	case KindS8, KindS16, KindS32, KindS64, KindS128:
		return true
	}
	return false
}
