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

	// Rule compilation errors
	ErrUnbalancedBracket    ErrorCode = "UNBALANCED_BRACKET"
	ErrMalformedAlternation ErrorCode = "MALFORMED_ALTERNATION"
	ErrUnsupportedGroup     ErrorCode = "UNSUPPORTED_GROUP"
	ErrInvalidRegex         ErrorCode = "INVALID_REGEX"
	ErrRuleInvalid          ErrorCode = "RULE_INVALID"

	// Rewrite errors
	ErrMatchTimeout ErrorCode = "MATCH_TIMEOUT"

	// Source errors
	ErrSourceRead  ErrorCode = "SOURCE_READ"
	ErrSourceWrite ErrorCode = "SOURCE_WRITE"

	// Journal errors
	ErrJournalRead  ErrorCode = "JOURNAL_READ"
	ErrJournalWrite ErrorCode = "JOURNAL_WRITE"
	ErrJournalEmpty ErrorCode = "JOURNAL_EMPTY"
)

// Detail keys shared by the compile errors
const (
	DetailPosition = "position"
	DetailPattern  = "pattern"
)

// CorrectorError represents a structured error with code and details
type CorrectorError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CorrectorError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CorrectorError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CorrectorError) Is(target error) bool {
	var targetErr *CorrectorError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CorrectorError with the given code and message
func New(code ErrorCode, message string) *CorrectorError {
	return &CorrectorError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CorrectorError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CorrectorError {
	return &CorrectorError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CorrectorError
func Wrap(err error, code ErrorCode, message string) *CorrectorError {
	if err == nil {
		return nil
	}
	return &CorrectorError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CorrectorError {
	if err == nil {
		return nil
	}
	return &CorrectorError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CorrectorError) WithDetail(key string, value interface{}) *CorrectorError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *CorrectorError) WithDetails(details map[string]interface{}) *CorrectorError {
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
	var corrErr *CorrectorError
	if errors.As(err, &corrErr) {
		return corrErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CorrectorError
func GetErrorCode(err error) ErrorCode {
	var corrErr *CorrectorError
	if errors.As(err, &corrErr) {
		return corrErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a CorrectorError
func GetErrorDetails(err error) map[string]interface{} {
	var corrErr *CorrectorError
	if errors.As(err, &corrErr) {
		return corrErr.Details
	}
	return nil
}

// GetPosition returns the DSL position recorded on a compile error.
// The second return value is false when the error carries no position.
func GetPosition(err error) (int, bool) {
	details := GetErrorDetails(err)
	if details == nil {
		return 0, false
	}
	pos, ok := details[DetailPosition].(int)
	return pos, ok
}
