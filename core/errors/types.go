// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// InvalidRequestError represents a request the caller can fix
type InvalidRequestError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request on field '%s': %s", e.Field, e.Message)
}

// TransientError represents an infrastructure failure that may clear on retry,
// such as the store being unreachable or the connection pool being exhausted
type TransientError struct {
	Op      string
	Message string
	Err     error
}

// Error implements the error interface
func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient failure in %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("transient failure in %s: %s", e.Op, e.Message)
}

// Unwrap exposes the underlying cause
func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsInvalidRequest checks if an error is an InvalidRequestError
func IsInvalidRequest(err error) bool {
	var invalidErr *InvalidRequestError
	return errors.As(err, &invalidErr)
}

// IsTransient checks if an error is a TransientError
func IsTransient(err error) bool {
	var transientErr *TransientError
	return errors.As(err, &transientErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
