package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Op indicates which codec operation detected the error
type Op string

const (
	OpPack   Op = "pack"   // value to buffer
	OpUnpack Op = "unpack" // buffer to value
)

// Kind categorizes the error
type Kind string

const (
	KindShortBuffer    Kind = "short_buffer"    // buffer too small for width at offset
	KindLengthMismatch Kind = "length_mismatch" // slice length does not match codec arity
	KindTypeMismatch   Kind = "type_mismatch"   // dynamic value has the wrong Go type
)

// Error is the structured error type used throughout the library.
// Codecs never return errors; every Kind is a programmer error and is
// raised as a panic carrying an *Error.
type Error struct {
	Op      Op
	Kind    Kind
	Codec   string // codec name, e.g. "u16" or "(u8, bool)"
	GoType  string // offending Go type, for type mismatches
	Width   int    // bits required
	Offset  int    // bit offset of the attempted access
	BufBits int    // bits available in the buffer
	Detail  string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Op))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Codec != "" {
		b.WriteString(": ")
		b.WriteString(e.Codec)
	}

	if e.Width > 0 {
		b.WriteString(": need ")
		b.WriteString(strconv.Itoa(e.Width))
		b.WriteString(" bits at bit offset ")
		b.WriteString(strconv.Itoa(e.Offset))
		b.WriteString(", buffer has ")
		b.WriteString(strconv.Itoa(e.BufBits))
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		b.WriteString(" - ")
		b.WriteString(e.Detail)
	}

	return b.String()
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Op == t.Op && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op Op, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
}

// Codec sets the codec name
func (b *Builder) Codec(name string) *Builder {
	b.err.Codec = name
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Span sets the bit span context: required width, bit offset and buffer capacity
func (b *Builder) Span(width, offset, bufBits int) *Builder {
	b.err.Width = width
	b.err.Offset = offset
	b.err.BufBits = bufBits
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ShortBuffer creates a buffer capacity error
func ShortBuffer(op Op, width, offset, bufBits int) *Error {
	return &Error{
		Op:      op,
		Kind:    KindShortBuffer,
		Width:   width,
		Offset:  offset,
		BufBits: bufBits,
	}
}

// LengthMismatch creates a slice arity error
func LengthMismatch(op Op, codec string, want, got int) *Error {
	return &Error{
		Op:     op,
		Kind:   KindLengthMismatch,
		Codec:  codec,
		Detail: fmt.Sprintf("want %d elements, got %d", want, got),
	}
}

// TypeMismatch creates a dynamic type error
func TypeMismatch(op Op, codec, goType string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindTypeMismatch,
		Codec:  codec,
		GoType: goType,
	}
}
