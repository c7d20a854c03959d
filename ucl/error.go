package ucl

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
// The first four are the language's error kinds: every failure surfaced by
// a parse wraps exactly one of them, so callers can classify with
// [errors.Is].
var (
	ErrSyntax    = NewError("syntax error")
	ErrReference = NewError("reference error")
	ErrType      = NewError("type error")
	ErrInclusion = NewError("inclusion error")

	ErrReadInput        = NewError("failed to read input")
	ErrMaxDepthExceeded = NewError("maximum recursion depth exceeded")
	ErrInvalidValueType = NewError("invalid value type")

	ErrQueryCompile = NewError("failed to compile query")
	ErrQueryRun     = NewError("failed to run query")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target shares this error's base message.
// Sentinel identity survives Wrap and With, which both derive new values.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)

	return ok && te.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Position locates a point in the expanded source.
type Position struct {
	Offset int // byte offset, zero-based
	Line   int // line number, one-based
	Column int // column number, one-based
}

// WithPosition attaches a source position to the error.
func (e *Error) WithPosition(pos Position) *Error {
	return e.With(
		slog.Int("line", pos.Line),
		slog.Int("column", pos.Column),
		slog.Int("offset", pos.Offset),
	)
}

// WithLine attaches a line number to the error.
// Used by stages that track lines but not columns.
func (e *Error) WithLine(line int) *Error {
	return e.With(slog.Int("line", line))
}

// WithFragment attaches the offending source fragment to the error.
func (e *Error) WithFragment(text string) *Error {
	return e.With(slog.String("fragment", text))
}

// withLine attaches the source line to an error raised while that line
// was being processed. The error's kind is preserved.
func withLine(err error, line int) error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee.WithLine(line)
	}

	return err
}
