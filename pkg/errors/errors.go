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
	ErrCanceled     ErrorCode = "CANCELED"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Template errors
	ErrTemplateInvalid ErrorCode = "TEMPLATE_INVALID"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileExists   ErrorCode = "FILE_EXISTS"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileMove     ErrorCode = "FILE_MOVE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"

	// Manifest errors
	ErrManifestRead  ErrorCode = "MANIFEST_READ"
	ErrManifestWrite ErrorCode = "MANIFEST_WRITE"
)

// SfoError represents a structured error with code and details
type SfoError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SfoError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SfoError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an SfoError with the same code.
func (e *SfoError) Is(target error) bool {
	var targetErr *SfoError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SfoError with the given code and message
func New(code ErrorCode, message string) *SfoError {
	return &SfoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SfoError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SfoError {
	return &SfoError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an SfoError. Callers check err != nil
// first: a nil err yields a nil *SfoError, which must not be returned as an
// error since the interface value would be non-nil.
func Wrap(err error, code ErrorCode, message string) *SfoError {
	if err == nil {
		return nil
	}
	return &SfoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message. Like Wrap, a nil
// err yields a nil *SfoError.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SfoError {
	if err == nil {
		return nil
	}
	return &SfoError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error. It is a no-op on a nil receiver.
func (e *SfoError) WithDetail(key string, value interface{}) *SfoError {
	if e == nil {
		return nil
	}
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *SfoError) WithDetails(details map[string]interface{}) *SfoError {
	if e == nil {
		return nil
	}
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var sfoErr *SfoError
	if errors.As(err, &sfoErr) {
		return sfoErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an SfoError
func GetErrorCode(err error) ErrorCode {
	var sfoErr *SfoError
	if errors.As(err, &sfoErr) {
		return sfoErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an SfoError
func GetErrorDetails(err error) map[string]interface{} {
	var sfoErr *SfoError
	if errors.As(err, &sfoErr) {
		return sfoErr.Details
	}
	return nil
}

// IsConfigError reports whether err should stop a run before any file is touched.
func IsConfigError(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrConfigInvalid, ErrTemplateInvalid:
		return true
	}
	return false
}
