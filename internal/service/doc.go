// Package service implements the business rules sitting between HTTP
// handlers and repositories: credential checks, ownership checks, the
// minimum lead time for event scheduling, pagination, and the assembly of
// organizer details onto events.
//
// Services return the sentinel errors in errors.go; handlers translate
// those into HTTP responses in one place.
package service
