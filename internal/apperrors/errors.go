package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized indicates that the caller lacks the capability required for an operation.
var ErrUnauthorized = errors.New("unauthorized")

// ErrPrecondition indicates that the store is not in a state that allows the operation
// (unsupported currency, no migration in progress, ...). Nothing was mutated.
var ErrPrecondition = errors.New("precondition failed")

// AppError carries an HTTP-ish status code alongside a wrapped infrastructure error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError returns an error that matches ErrValidation with errors.Is.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// NewPreconditionError returns an error that matches ErrPrecondition with errors.Is.
func NewPreconditionError(message string) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, message)
}
