package model

import "errors"

// Sentinel errors for store-related failures. Callers should use
// errors.Is against these rather than string-matching. The memory and
// postgres stores and the Engine in this module do not return them.
var (
	ErrTupleNotFound    = errors.New("relcore: tuple not found")
	ErrStoreUnavailable = errors.New("relcore: tuple store unavailable")
)

// Error codes mirror the numeric taxonomy OpenFGA-derived tooling expects,
// so callers that already branch on a validation error code (e.g. a
// gRPC gateway) don't need a second error vocabulary for relcore.
const (
	ErrorCodeValidation    = 2000
	ErrorCodeInvalidSchema = 2001
	ErrorCodeInvalidTuple  = 2002
)

// ValidationError is returned by Schema and store validation with a
// machine-readable code alongside the human message.
type ValidationError struct {
	Code    int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrorCode returns the numeric code of a ValidationError.
func (e *ValidationError) ErrorCode() int {
	return e.Code
}

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NewValidationError constructs a ValidationError with the given code.
func NewValidationError(code int, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}
