// Package errors defines structured error codes for chat operations.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of chat failure.
type ErrorCode string

const (
	// ErrCodeUnauthorized indicates a missing or invalid user identity.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeNotFound indicates the referenced conversation does not exist
	// or belongs to someone else.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTooManyRequests indicates the concurrent turn limit was hit.
	ErrCodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	// ErrCodeLLMUnavailable indicates no model backend is configured.
	ErrCodeLLMUnavailable ErrorCode = "LLM_UNAVAILABLE"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// ChatError is a structured error carrying a code the transport layer
// maps onto HTTP status and the SSE error event.
type ChatError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ChatError) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the code to an HTTP status.
func (e *ChatError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	case ErrCodeLLMUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *ChatError {
	return &ChatError{Code: ErrCodeUnauthorized, Message: msg}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *ChatError {
	return &ChatError{Code: ErrCodeInvalidArgument, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *ChatError {
	return &ChatError{Code: ErrCodeNotFound, Message: msg}
}

// TooManyRequests creates a concurrency limit error.
func TooManyRequests(msg string) *ChatError {
	return &ChatError{Code: ErrCodeTooManyRequests, Message: msg}
}

// LLMUnavailable creates an LLM unavailable error.
func LLMUnavailable(msg string) *ChatError {
	return &ChatError{Code: ErrCodeLLMUnavailable, Message: msg}
}

// Internal wraps an unexpected failure.
func Internal(msg string, cause error) *ChatError {
	return &ChatError{Code: ErrCodeInternal, Message: msg, Cause: cause}
}
