package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Resolution errors
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// Sync errors
	ErrInvalidEntry  ErrorCode = "INVALID_ENTRY"
	ErrMissingSource ErrorCode = "MISSING_SOURCE"
	ErrPrompt        ErrorCode = "PROMPT"

	// External process errors
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// DotfError represents a structured error with code and details
type DotfError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotfError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotfError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotfError) Is(target error) bool {
	var targetErr *DotfError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotfError with the given code and message
func New(code ErrorCode, message string) *DotfError {
	return &DotfError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotfError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotfError {
	return &DotfError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotfError.
// Callers must check err first: a nil *DotfError stored in an error
// interface is not a nil error.
func Wrap(err error, code ErrorCode, message string) *DotfError {
	if err == nil {
		return nil
	}
	return &DotfError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotfError {
	if err == nil {
		return nil
	}
	return &DotfError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotfError) WithDetail(key string, value interface{}) *DotfError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dotfErr *DotfError
	if errors.As(err, &dotfErr) {
		return dotfErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotfError
func GetErrorCode(err error) ErrorCode {
	var dotfErr *DotfError
	if errors.As(err, &dotfErr) {
		return dotfErr.Code
	}
	return ErrUnknown
}
