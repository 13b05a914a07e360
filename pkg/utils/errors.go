package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`

	cause error
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *CustomError) Unwrap() error {
	return e.cause
}

// WithCause attaches the error that triggered e. The cause is logged, never rendered.
func (e *CustomError) WithCause(err error) *CustomError {
	e.cause = err
	return e
}

// Common error constructors
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Kind:    "invalid_request",
		Message: message,
	}
}

func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Kind:    "internal_error",
		Message: message,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Kind:    "validation_failed",
		Message: "Validation failed",
		Detail:  detail,
	}
}

// NewNotFoundError reports an entity that is absent or not visible to the caller's organization
func NewNotFoundError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Kind:    "not_found",
		Message: message,
	}
}

func NewConflictError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusConflict,
		Kind:    "conflict",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusUnauthorized,
		Kind:    "unauthorized",
		Message: message,
	}
}

func NewForbiddenError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusForbidden,
		Kind:    "forbidden",
		Message: message,
	}
}

func NewTooManyRequestsError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusTooManyRequests,
		Kind:    "rate_limited",
		Message: message,
	}
}

func NewServiceUnavailableError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusServiceUnavailable,
		Kind:    "unavailable",
		Message: message,
	}
}

// NewLLMError reports a failure of the text-completion provider
func NewLLMError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Kind:    "llm_failed",
		Message: "LLM processing failed",
		Detail:  detail,
	}
}

// AsCustomError extracts a *CustomError from err's chain
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsCode reports whether err carries a CustomError with the given HTTP code
func IsCode(err error, code int) bool {
	ce, ok := AsCustomError(err)
	return ok && ce.Code == code
}
