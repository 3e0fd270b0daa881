package model

import "time"

// SavedEvent links a user to an event they bookmarked
type SavedEvent struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	EventID string    `json:"event_id"`
	SavedOn time.Time `json:"saved_on"`
}

// SavedEventDetail is a saved-list entry with the event attached
type SavedEventDetail struct {
	ID      string    `json:"id"`
	SavedOn time.Time `json:"saved_on"`
	Event   *Event    `json:"event"`
}

// SavedEvents partitions a user's saved list around now
type SavedEvents struct {
	Upcoming []*SavedEventDetail `json:"upcoming"`
	Past     []*SavedEventDetail `json:"past"`
}
