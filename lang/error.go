package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
//nolint:gochecknoglobals
var (
	ErrParse     = NewError("parse failed")
	ErrReadInput = NewError("failed to read input")
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

// Is reports whether target is the sentinel this error was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg && t.err == nil
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
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With adds attributes to the error for structured logging.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{msg: e.msg, err: e.err, attrs: newAttrs}
}

// ParseError reports the syntax errors found in Source.
type ParseError struct {
	Errors []SyntaxError
	Source string
}

// NewParseError returns a ParseError for errs found in source.
func NewParseError(errs []SyntaxError, source string) *ParseError {
	return &ParseError{Errors: errs, Source: source}
}

// Error returns every message, one per line.
func (e *ParseError) Error() string {
	if len(e.Errors) == 0 {
		return ErrParse.Error()
	}

	return strings.Join(e.Messages(), "\n")
}

// Unwrap lets errors.Is match [ErrParse].
func (e *ParseError) Unwrap() error { return ErrParse }

// Messages returns the errors formatted as "Line[n]: message".
func (e *ParseError) Messages() []string {
	out := make([]string, len(e.Errors))
	for i, se := range e.Errors {
		out[i] = se.String()
	}

	return out
}

// Snippet renders the source line of the first error with a caret under the
// offending column. It is empty if the line is out of range.
func (e *ParseError) Snippet() string {
	if len(e.Errors) == 0 {
		return ""
	}

	first := e.Errors[0]
	lines := strings.Split(strings.ReplaceAll(e.Source, "\r\n", "\n"), "\n")

	if first.Line < 1 || first.Line > len(lines) {
		return ""
	}

	var src strings.Builder

	num := strconv.Itoa(first.Line)

	src.WriteString("  ")
	src.WriteString(num)
	src.WriteString(" | ")
	src.WriteString(lines[first.Line-1])
	src.WriteRune('\n')

	// 2 leading spaces + " | "
	padding := strings.Repeat(" ", len(num)+5)
	if first.Column > 1 {
		padding += strings.Repeat(" ", first.Column-1)
	}

	src.WriteString(padding + "^\n")

	return src.String()
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int("count", len(e.Errors))}
	if len(e.Errors) > 0 {
		attrs = append(attrs, slog.String("first", e.Errors[0].String()))
	}

	return slog.GroupValue(attrs...)
}
