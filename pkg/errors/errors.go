// Package errors provides structured error types for gridglob.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI, and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into three groups:
//   - Input errors: NOT_FOUND, UNSUPPORTED_EDGE, INVALID_*, CYCLE, DUPLICATE_ID.
//     These are expected-but-rare problems with the caller's tree or
//     constraints. The caller decides whether to abort or skip.
//   - INTEGRITY_VIOLATION: an engine defect. It is raised as a panic value by
//     the grid engine and must never be caught and continued.
//   - INTERNAL_ERROR / UNSUPPORTED: everything else.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "element %q not in tree", id)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // skip the constraint
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidConstraint Code = "INVALID_CONSTRAINT"
	ErrCodeInvalidID         Code = "INVALID_ID"
	ErrCodeUnsupportedEdge   Code = "UNSUPPORTED_EDGE"
	ErrCodeDuplicateID       Code = "DUPLICATE_ID"
	ErrCodeCycle             Code = "CYCLE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Engine defects
	ErrCodeIntegrity Code = "INTEGRITY_VIOLATION"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code,
// so a NOT_FOUND wrapped inside an INVALID_INPUT still matches NOT_FOUND.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Describe joins the messages along err's chain of coded errors with ": ",
// leaving out the codes. A cause without a code contributes its full text.
func Describe(err error) string {
	var parts []string
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			parts = append(parts, err.Error())
			break
		}
		parts = append(parts, e.Message)
		err = e.Cause
	}
	return strings.Join(parts, ": ")
}

// IsInputError reports whether err carries one of the codes that describe a
// problem with the caller's tree or constraints (as opposed to an engine
// defect or an I/O failure). Batch callers use it to decide what may be
// skipped.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeUnsupportedEdge, ErrCodeInvalidConstraint, ErrCodeCycle:
		return true
	}
	return false
}
