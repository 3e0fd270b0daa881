package model

import (
	"strings"
	"time"
)

// User represents a registered account
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"` // Never expose password hash
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// UserRef is the organizer projection attached to events: just enough to
// show who is hosting, never the hash or timestamps.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Ref returns the public projection of a user
func (u *User) Ref() *UserRef {
	return &UserRef{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

const (
	minPasswordLength = 6
	maxPasswordLength = 128
	maxNameLength     = 100
	maxEmailLength    = 254
)

// RegisterRequest is the POST /api/auth/register body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs all field rules and reports every failure
func (r *RegisterRequest) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	} else if len(strings.TrimSpace(r.Name)) > maxNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "Name must be at most 100 characters"})
	}

	if !IsValidEmail(strings.TrimSpace(r.Email)) {
		errs = append(errs, FieldError{Field: "email", Message: "Valid email is required"})
	}

	if len(r.Password) < minPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	} else if len(r.Password) > maxPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at most 128 characters"})
	}

	return errs
}

// LoginRequest is the POST /api/auth/login body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs all field rules and reports every failure
func (r *LoginRequest) Validate() []FieldError {
	var errs []FieldError

	if !IsValidEmail(strings.TrimSpace(r.Email)) {
		errs = append(errs, FieldError{Field: "email", Message: "Valid email is required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}

	return errs
}

// IsValidEmail performs a shape check: non-empty local part, an @, and a
// dot in the domain. Full RFC 5322 parsing buys nothing here.
func IsValidEmail(email string) bool {
	if email == "" || len(email) > maxEmailLength {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}
