package handler

import (
	"errors"
	"log/slog"

	"github.com/forgo/gather/api/internal/model"
	"github.com/forgo/gather/api/internal/service"
)

// MapServiceError converts a service error to an API error response.
// This centralizes error handling logic for all handlers, ensuring
// consistent HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.APIError {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError("Invalid email or password")

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotEventOrganizer):
		return model.NewForbiddenError("Not authorized to modify this event")

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("User")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("Event")
	case errors.Is(err, service.ErrSavedEventNotFound):
		return model.NewNotFoundError("Saved event")

	// ===== Conflict Errors → 400 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError("Email is already registered")
	case errors.Is(err, service.ErrEventAlreadySaved):
		return model.NewConflictError("Event is already saved")

	// ===== Scheduling Errors → 400 =====
	case errors.Is(err, service.ErrEventTooSoon):
		return model.NewValidationError([]model.FieldError{
			{Field: "date", Message: "Event must start at least 60 minutes from now"},
		})
	}

	// Anything else is unexpected; log the detail, hide it from the client
	slog.Error("unhandled service error", slog.Any("error", err))
	return model.NewInternalError("")
}
