// Package errors provides structured error types for the geofacet library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI, and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (grid construction, options)
//   - *_REGIONS: Grid/data cross-check failures
//   - RENDER_FAILURE: A per-facet callback failure (non-fatal at run level)
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidEntity, "entity code is blank at index %d", i)
//	if errors.Is(err, errors.ErrCodeInvalidEntity) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderFailure, cause, "facet %q", code)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Grid construction errors
	ErrCodeInvalidEntity    Code = "INVALID_ENTITY"
	ErrCodeInvalidPosition  Code = "INVALID_POSITION"
	ErrCodePositionConflict Code = "POSITION_CONFLICT"
	ErrCodeShapeMismatch    Code = "SHAPE_MISMATCH"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"

	// Orchestration errors
	ErrCodeEmptyInput     Code = "EMPTY_INPUT"
	ErrCodeColumnNotFound Code = "COLUMN_NOT_FOUND"
	ErrCodeInvalidOption  Code = "INVALID_OPTION"
	ErrCodeMissingRegions Code = "MISSING_REGIONS"
	ErrCodeExtraRegions   Code = "EXTRA_REGIONS"

	// Per-facet render errors
	ErrCodeRenderFailure Code = "RENDER_FAILURE"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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

// As finds the first error in err's chain that matches target.
// It is a convenience re-export of the standard library's errors.As so
// callers need not import both packages.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for a coded error with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// coder is implemented by error types that carry a Code without being *Error.
type coder interface {
	Code() Code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
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

// RegionsError reports a grid/data cross-check failure along with the
// offending region codes. The code is ErrCodeMissingRegions when grid
// entries have no data, or ErrCodeExtraRegions when the data names
// entities absent from the grid.
type RegionsError struct {
	ErrCode Code     // MISSING_REGIONS or EXTRA_REGIONS
	Regions []string // Sorted upper-cased region codes
}

// Error implements the error interface.
func (e *RegionsError) Error() string {
	if e.ErrCode == ErrCodeExtraRegions {
		return fmt.Sprintf("%s: data contains regions not in the grid: %v", e.ErrCode, e.Regions)
	}
	return fmt.Sprintf("%s: grid regions without data: %v", e.ErrCode, e.Regions)
}

// Code returns the error code for this error type.
func (e *RegionsError) Code() Code {
	return e.ErrCode
}
