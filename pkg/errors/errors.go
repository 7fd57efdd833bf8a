// Package errors provides structured error types for blobposter.
//
// Every failure that reaches a user surface (CLI, HTTP) carries a
// machine-readable [Code] so callers can map it to an exit message or a
// status code without string matching.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Missing resources (expired downloads, unknown presets)
//   - RENDER_FAILED: The export collaborator could not encode a canvas
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSeed, "seed must be an integer: %q", raw)
//	if errors.Is(err, errors.ErrCodeInvalidSeed) {
//	    // fall back to an unseeded render
//	}
//
//	err := errors.Wrap(errors.ErrCodeRenderFailed, origErr, "encode %s", format)
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidSeed       Code = "INVALID_SEED"
	ErrCodeInvalidPalette    Code = "INVALID_PALETTE"
	ErrCodeInvalidPreset     Code = "INVALID_PRESET"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidRange      Code = "INVALID_RANGE"
	ErrCodeInvalidCanvas     Code = "INVALID_CANVAS"
	ErrCodeInvalidBackground Code = "INVALID_BACKGROUND"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Rendering errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"

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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err carries one of the INVALID_* codes.
func IsValidation(err error) bool {
	return strings.HasPrefix(string(GetCode(err)), "INVALID_")
}

// UserMessage returns the message to show a user, without the code prefix.
// Validation errors include their cause, which explains what was wrong
// with the input; other causes are internal detail and are left out.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil && IsValidation(e) {
		return e.Message + ": " + UserMessage(e.Cause)
	}
	return e.Message
}

// HTTPStatus maps err to a response status: 400 for validation errors,
// 404 for NOT_FOUND, 501 for UNSUPPORTED and 500 otherwise.
func HTTPStatus(err error) int {
	switch code := GetCode(err); {
	case IsValidation(err):
		return http.StatusBadRequest
	case code == ErrCodeNotFound:
		return http.StatusNotFound
	case code == ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// ExitCode maps err to a process exit status: 0 for nil, 2 for validation
// errors (bad flags or config) and 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsValidation(err):
		return 2
	default:
		return 1
	}
}
