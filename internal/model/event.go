package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Categories is the closed category set. Both the request validators and
// the categories endpoint consume this slice; there is deliberately no
// second copy anywhere.
var Categories = []string{
	"Music",
	"Sports",
	"Arts",
	"Technology",
	"Business",
	"Food",
	"Health",
	"Education",
	"Lifestyle",
	"Environment",
	"Entertainment",
	"Other",
}

// IsValidCategory reports whether s is a member of Categories
func IsValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// MinLeadTime is how far in the future an event's combined date+time must
// be at the moment it is created or rescheduled.
const MinLeadTime = 60 * time.Minute

const (
	maxEventNameLength        = 100
	maxEventDescriptionLength = 1000
	maxEventLocationLength    = 200
)

var (
	// YYYY-M-D or YYYY-MM-DD; month and day are zero-padded on write
	dateRegex = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
	// HH:MM, 24-hour
	timeRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// IsValidDate reports whether s has an acceptable date shape and names a
// real calendar day.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := parseDateParts(s)
	return err == nil
}

// IsValidTime reports whether s is an HH:MM 24-hour clock reading
func IsValidTime(s string) bool {
	return timeRegex.MatchString(s)
}

// NormalizeDate zero-pads the month and day components, so "2026-3-7"
// becomes "2026-03-07". The input must already have a valid date shape.
func NormalizeDate(s string) string {
	d, err := parseDateParts(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// CombineDateTime combines a date string and an HH:MM time string into a
// single instant in the given location. The location is pinned by
// configuration rather than inherited from the process environment.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := parseDateParts(date)
	if err != nil {
		return time.Time{}, err
	}

	if !timeRegex.MatchString(clock) {
		return time.Time{}, fmt.Errorf("invalid time %q", clock)
	}
	hm := strings.SplitN(clock, ":", 2)
	hour, _ := strconv.Atoi(hm[0])
	minute, _ := strconv.Atoi(hm[1])

	return time.Date(d.year, time.Month(d.month), d.day, hour, minute, 0, 0, loc), nil
}

type dateParts struct {
	year, month, day int
}

func parseDateParts(s string) (dateParts, error) {
	if !dateRegex.MatchString(s) {
		return dateParts{}, fmt.Errorf("invalid date %q", s)
	}
	parts := strings.Split(s, "-")
	year, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])

	// time.Date silently normalizes overflow (Feb 30 -> Mar 2); round-trip
	// to reject dates that don't exist.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return dateParts{}, fmt.Errorf("invalid date %q", s)
	}

	return dateParts{year: year, month: month, day: day}, nil
}

// Event represents a listed event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        string    `json:"date"` // YYYY-MM-DD, zero-padded
	Time        string    `json:"time"` // HH:MM, 24-hour
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	OrganizerID string    `json:"organizer_id"`
	Organizer   *UserRef  `json:"organizer,omitempty"` // attached by the service
	StartsAt    time.Time `json:"starts_at"`           // combined instant, UTC
	IsPast      bool      `json:"is_past"`             // derived at read time
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// CreateEventRequest is the POST /api/events body
type CreateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
}

// Validate runs all field rules and reports every failure
func (r *CreateEventRequest) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	} else if len(strings.TrimSpace(r.Name)) > maxEventNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "Name must be at most 100 characters"})
	}

	if strings.TrimSpace(r.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Message: "Description is required"})
	} else if len(strings.TrimSpace(r.Description)) > maxEventDescriptionLength {
		errs = append(errs, FieldError{Field: "description", Message: "Description must be at most 1000 characters"})
	}

	if !IsValidDate(r.Date) {
		errs = append(errs, FieldError{Field: "date", Message: "Date must be in YYYY-MM-DD format"})
	}

	if !IsValidTime(r.Time) {
		errs = append(errs, FieldError{Field: "time", Message: "Time must be in HH:MM format (24-hour)"})
	}

	if strings.TrimSpace(r.Location) == "" {
		errs = append(errs, FieldError{Field: "location", Message: "Location is required"})
	} else if len(strings.TrimSpace(r.Location)) > maxEventLocationLength {
		errs = append(errs, FieldError{Field: "location", Message: "Location must be at most 200 characters"})
	}

	if !IsValidCategory(r.Category) {
		errs = append(errs, FieldError{Field: "category", Message: "Category is invalid"})
	}

	return errs
}

// UpdateEventRequest is the PUT /api/events/{id} body. Absent fields keep
// their stored values.
type UpdateEventRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Location    *string `json:"location,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// Validate runs all field rules on the supplied fields only
func (r *UpdateEventRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			errs = append(errs, FieldError{Field: "name", Message: "Name cannot be empty"})
		} else if len(strings.TrimSpace(*r.Name)) > maxEventNameLength {
			errs = append(errs, FieldError{Field: "name", Message: "Name must be at most 100 characters"})
		}
	}

	if r.Description != nil {
		if strings.TrimSpace(*r.Description) == "" {
			errs = append(errs, FieldError{Field: "description", Message: "Description cannot be empty"})
		} else if len(strings.TrimSpace(*r.Description)) > maxEventDescriptionLength {
			errs = append(errs, FieldError{Field: "description", Message: "Description must be at most 1000 characters"})
		}
	}

	if r.Date != nil && !IsValidDate(*r.Date) {
		errs = append(errs, FieldError{Field: "date", Message: "Date must be in YYYY-MM-DD format"})
	}

	if r.Time != nil && !IsValidTime(*r.Time) {
		errs = append(errs, FieldError{Field: "time", Message: "Time must be in HH:MM format (24-hour)"})
	}

	if r.Location != nil {
		if strings.TrimSpace(*r.Location) == "" {
			errs = append(errs, FieldError{Field: "location", Message: "Location cannot be empty"})
		} else if len(strings.TrimSpace(*r.Location)) > maxEventLocationLength {
			errs = append(errs, FieldError{Field: "location", Message: "Location must be at most 200 characters"})
		}
	}

	if r.Category != nil && !IsValidCategory(*r.Category) {
		errs = append(errs, FieldError{Field: "category", Message: "Category is invalid"})
	}

	return errs
}

// Empty reports whether the update carries no fields at all
func (r *UpdateEventRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.Date == nil &&
		r.Time == nil && r.Location == nil && r.Category == nil
}

// EventFilter narrows event listings. Category is an exact match; Location
// and Search are case-insensitive substring matches on location and name.
type EventFilter struct {
	Category    string
	Location    string
	Search      string
	IncludePast bool
}

// Pagination constants for the list endpoint
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

// ClampLimit forces limit into [1, MaxPageLimit], defaulting when unset
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// ClampPage forces page to at least 1
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// EventPage is one page of a filtered listing
type EventPage struct {
	Events []*Event
	Total  int
	Page   int
	Pages  int
	Limit  int
}

// UserEvents partitions an organizer's events around now
type UserEvents struct {
	Upcoming []*Event `json:"upcoming"`
	Past     []*Event `json:"past"`
}

// UserStats are the organizer/saved counters for the stats endpoint
type UserStats struct {
	CreatedCount  int `json:"createdCount"`
	UpcomingCount int `json:"upcomingCount"`
	PastCount     int `json:"pastCount"`
	SavedCount    int `json:"savedCount"`
}
