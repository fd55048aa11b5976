// Package errors provides structured error types for graph loading.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the loader, sources and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// The load configuration itself never fails; these codes are how loaders
// report configuration values they cannot honor.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - UNRESOLVABLE_*: References to data the source does not have
//   - SOURCE_*: Failures reading the backing store
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidBatchSize, "batch size %d", size)
//	if errors.Is(err, errors.ErrCodeInvalidBatchSize) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSource, origErr, "scan nodes")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidConcurrency Code = "INVALID_CONCURRENCY"
	ErrCodeInvalidBatchSize   Code = "INVALID_BATCH_SIZE"
	ErrCodeInvalidDirection   Code = "INVALID_DIRECTION"
	ErrCodeInvalidProperty    Code = "INVALID_PROPERTY"
	ErrCodeInvalidLabel       Code = "INVALID_LABEL"
	ErrCodeInvalidProfile     Code = "INVALID_PROFILE"

	// Unresolvable references
	ErrCodeUnresolvableProperty Code = "UNRESOLVABLE_PROPERTY"

	// Source errors
	ErrCodeSource      Code = "SOURCE_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED_SOURCE"

	// Runtime errors
	ErrCodeCanceled Code = "CANCELED"
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
