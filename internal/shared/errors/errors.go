package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error types.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrBadRequest       = errors.New("bad request")
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrTemplateNotFound = errors.New("template not found")
	ErrGeneration       = errors.New("generation failed")
	ErrInternal         = errors.New("internal error")
)

// AppError represents an application error with HTTP status and error code.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON error envelope returned by all handlers.
// Every surfaced error carries a request identifier so operators can
// correlate a user-visible failure with logs.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// NewAppError creates a new application error.
func NewAppError(code string, message string, statusCode int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// Common error constructors.

// Validation creates a validation error for a malformed request field.
func Validation(message string) *AppError {
	return &AppError{
		Code:       "validation_error",
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Err:        ErrBadRequest,
	}
}

// BadRequest creates a bad request error.
func BadRequest(message string) *AppError {
	return &AppError{
		Code:       "bad_request",
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Err:        ErrBadRequest,
	}
}

// NotFound creates a not found error.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "not_found",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
		Err:        ErrNotFound,
	}
}

// RateLimited creates a rate limit error. Quota violations are rejected
// with 403 rather than 429; the client identifier is self-reported, so
// the rejection is a policy refusal rather than a retry hint.
func RateLimited(message string) *AppError {
	if message == "" {
		message = "rate limit exceeded, please try again later"
	}
	return &AppError{
		Code:       "rate_limit_exceeded",
		Message:    message,
		StatusCode: http.StatusForbidden,
		Err:        ErrRateLimited,
	}
}

// TemplateNotFound creates an error for an unregistered ad type or tone
// reaching the prompt registry. With boundary validation in place this
// indicates a configuration bug, so it surfaces as a 500.
func TemplateNotFound(message string) *AppError {
	return &AppError{
		Code:       "template_not_found",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        ErrTemplateNotFound,
	}
}

// GenerationFailed wraps an upstream text or image generation failure.
func GenerationFailed(message string, err error) *AppError {
	return &AppError{
		Code:       "generation_failed",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        fmt.Errorf("%w: %w", ErrGeneration, err),
	}
}

// Internal creates an internal error.
func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       "internal_error",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToResponse converts an AppError to the wire envelope.
func (e *AppError) ToResponse(requestID string) ErrorResponse {
	return ErrorResponse{
		Error:     e.Code,
		Message:   e.Message,
		RequestID: requestID,
	}
}

// GetStatusCode returns the appropriate HTTP status code for an error.
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimited):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// GetCode returns the machine-readable code for an error.
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "internal_error"
}
