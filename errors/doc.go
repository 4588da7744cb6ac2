// Package errors provides structured error types for the bitpack library.
//
// Errors are categorized by Op (which operation detected the problem) and
// Kind (error category). Every Kind is a precondition violation by the
// caller, so codecs raise these as panic payloads rather than returning
// them: a failed check means the program is wrong, not the input.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.OpPack, errors.KindShortBuffer).
//		Codec("u16").
//		Span(16, 40, 48).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ShortBuffer(errors.OpPack, 16, 40, 48)
//	err := errors.LengthMismatch(errors.OpPack, "u8[4]", 4, 3)
//
// All errors implement the standard error interface and support errors.Is.
package errors
