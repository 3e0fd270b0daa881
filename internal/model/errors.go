package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is the error half of the response envelope. It serializes as
// {"success": false, "message": ..., "errors": [...]} to match the wire
// contract clients already depend on.
type APIError struct {
	Status  int          `json:"-"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type errorEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the error as a JSON response
func (e *APIError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Success: false,
		Message: e.Message,
		Errors:  e.Errors,
	})
}

// Common error constructors

func NewValidationError(errors []FieldError) *APIError {
	message := "One or more fields failed validation"
	if len(errors) > 0 {
		message = errors[0].Message
	}
	return &APIError{
		Status:  http.StatusBadRequest,
		Message: message,
		Errors:  errors,
	}
}

func NewBadRequestError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *APIError {
	if message == "" {
		message = "Not authorized"
	}
	return &APIError{
		Status:  http.StatusUnauthorized,
		Message: message,
	}
}

func NewForbiddenError(message string) *APIError {
	return &APIError{
		Status:  http.StatusForbidden,
		Message: message,
	}
}

func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewConflictError reports a duplicate-state rejection. The original API
// contract uses 400 for these (e.g. saving an already-saved event), so we
// keep that rather than 409.
func NewConflictError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

func NewInternalError(message string) *APIError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &APIError{
		Status:  http.StatusInternalServerError,
		Message: message,
	}
}

func NewMethodNotAllowedError(allowed string) *APIError {
	return &APIError{
		Status:  http.StatusMethodNotAllowed,
		Message: fmt.Sprintf("Only %s method is allowed", allowed),
	}
}

func NewRateLimitError(retryAfter int) *APIError {
	return &APIError{
		Status:  http.StatusTooManyRequests,
		Message: fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter),
	}
}
