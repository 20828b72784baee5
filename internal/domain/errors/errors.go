package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateAccount   = errors.New("account number already registered")
	ErrDuplicateIDNumber  = errors.New("ID number already registered")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid account number or password")

	// Payment errors
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidCurrency        = errors.New("invalid currency")
	ErrInvalidProvider        = errors.New("invalid provider")
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenRevoked = errors.New("token revoked")

	// Idempotency errors
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidInput     = errors.New("invalid input")
)

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError carries the field -> message map produced by form
// validation. It is constructed only when at least one field failed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// NewValidationErrors creates a validation error carrying every failing field.
func NewValidationErrors(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
