package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// ===== Event Errors =====
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrNotEventOrganizer = errors.New("not the event organizer")
	ErrEventTooSoon      = errors.New("event must start at least 60 minutes from now")
)

// ===== Saved Event Errors =====
var (
	ErrEventAlreadySaved  = errors.New("event already saved")
	ErrSavedEventNotFound = errors.New("saved event not found")
)
