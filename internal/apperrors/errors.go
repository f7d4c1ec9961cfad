package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the request conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict")

// ErrInvalidState indicates an operation that the resource's lifecycle does not allow.
// It is a Conflict for callers.
var ErrInvalidState = fmt.Errorf("%w: invalid state", ErrConflict)

// ErrForbidden indicates the caller is known but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates the caller could not be identified.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish code and a message alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// FieldError describes one violated input constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the full list of violated constraints for one input.
// It matches ErrValidation with errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Forbidden builds an error that wraps ErrForbidden with a message meant for the end user.
func Forbidden(message string) error {
	return &AppError{Code: 403, Message: message, Err: ErrForbidden}
}

// Conflict builds an error that wraps ErrConflict with a message meant for the end user.
func Conflict(message string) error {
	return &AppError{Code: 409, Message: message, Err: ErrConflict}
}

// InvalidState builds an error that wraps ErrInvalidState with a message meant for the end user.
func InvalidState(message string) error {
	return &AppError{Code: 409, Message: message, Err: ErrInvalidState}
}

// UserMessage returns the message of the outermost AppError, or fallback.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
