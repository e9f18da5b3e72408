package rexlang

import "fmt"

// --- Positioned errors ------------------------------------------------------

// Error is the error type shared by all rexlang packages. Every error carries
// a numeric code (defined per package) and the input position it was detected
// at: a 1-based line and a 0-based column. Warnings use the same type, but are
// collected by the parser instead of being returned.
type Error struct {
	Code      int
	Message   string
	Line, Col int
}

// NewError creates a positioned error.
func NewError(code int, line, col int, msg string) *Error {
	return &Error{Code: code, Message: msg, Line: line, Col: col}
}

// FormatError creates a positioned error with a formatted message.
func FormatError(code int, line, col int, msg string, args ...interface{}) *Error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return NewError(code, line, col, msg)
}

// Error renders the diagnostic with its line:column prefix.
func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// ErrorCode extracts the rexlang error code from an error, or 0 if err is not
// a *rexlang.Error.
func ErrorCode(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return 0
}
