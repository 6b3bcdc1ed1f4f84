package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Cause is the underlying error, if any. It is never serialized.
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches domain errors by code so wrapped copies of a sentinel still match it
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound               = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput           = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidDateFormat      = NewDomainError("INVALID_DATE_FORMAT", "Date is not in a recognised format")
	ErrStoreUnavailable       = NewDomainError("STORE_UNAVAILABLE", "Storage is temporarily unavailable")
	ErrConcurrentModification = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrDuplicateRequest       = NewDomainError("DUPLICATE_REQUEST", "Request has already been processed")
)

// NewStoreUnavailable wraps a persistence failure as a retryable domain error.
// Errors that are already domain errors are returned unchanged.
func NewStoreUnavailable(err error) error {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return err
	}
	return &DomainError{
		Code:    ErrStoreUnavailable.Code,
		Message: ErrStoreUnavailable.Message,
		Cause:   err,
	}
}

// NewInvalidInput returns an INVALID_INPUT error with a specific message
func NewInvalidInput(message string) *DomainError {
	return NewDomainError(ErrInvalidInput.Code, message)
}

// IsRetryable reports whether the caller may retry the operation unchanged
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
