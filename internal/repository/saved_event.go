package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/gather/api/internal/database"
	"github.com/forgo/gather/api/internal/model"
)

// SavedEventRepository handles saved-event data access
type SavedEventRepository struct {
	db database.Database
}

// NewSavedEventRepository creates a new saved event repository
func NewSavedEventRepository(db database.Database) *SavedEventRepository {
	return &SavedEventRepository{db: db}
}

// Create saves an event for a user. The (user, event) unique index turns a
// concurrent double-save into database.ErrDuplicate instead of a second row.
func (r *SavedEventRepository) Create(ctx context.Context, userID, eventID string) (*model.SavedEvent, error) {
	query := `
		CREATE saved_event CONTENT {
			user: type::record($user),
			event: type::record($event),
			saved_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"user":  ensureRecordID("user", userID),
		"event": ensureRecordID("event", eventID),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("%w: event already saved", database.ErrDuplicate)
		}
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok || len(rows) == 0 {
		return nil, fmt.Errorf("no result returned")
	}

	saved, err := parseSavedEventRecord(rows[0])
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, fmt.Errorf("unexpected result format")
	}
	return saved, nil
}

// Get retrieves the saved-event row for a user/event pair, nil when absent
func (r *SavedEventRepository) Get(ctx context.Context, userID, eventID string) (*model.SavedEvent, error) {
	query := `
		SELECT * FROM saved_event
		WHERE user = type::record($user) AND event = type::record($event)
		LIMIT 1
	`
	vars := map[string]interface{}{
		"user":  ensureRecordID("user", userID),
		"event": ensureRecordID("event", eventID),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseSavedEventRecord(result)
}

// Delete removes the saved-event row for a user/event pair
func (r *SavedEventRepository) Delete(ctx context.Context, userID, eventID string) error {
	query := `DELETE saved_event WHERE user = type::record($user) AND event = type::record($event)`
	vars := map[string]interface{}{
		"user":  ensureRecordID("user", userID),
		"event": ensureRecordID("event", eventID),
	}

	return r.db.Execute(ctx, query, vars)
}

// GetByUser retrieves a user's saved events, most recently saved first
func (r *SavedEventRepository) GetByUser(ctx context.Context, userID string) ([]*model.SavedEvent, error) {
	query := `SELECT * FROM saved_event WHERE user = type::record($user) ORDER BY saved_on DESC`
	vars := map[string]interface{}{"user": ensureRecordID("user", userID)}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return nil, fmt.Errorf("unexpected result format")
	}

	saved := make([]*model.SavedEvent, 0, len(rows))
	for _, row := range rows {
		s, err := parseSavedEventRecord(row)
		if err != nil {
			return nil, err
		}
		if s != nil {
			saved = append(saved, s)
		}
	}
	return saved, nil
}

// CountByUser returns how many events a user has saved
func (r *SavedEventRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT count() FROM saved_event WHERE user = type::record($user) GROUP ALL`
	vars := map[string]interface{}{"user": ensureRecordID("user", userID)}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	data, ok := unwrapRecord(result)
	if !ok {
		return 0, nil
	}
	return extractCountValue(data["count"]), nil
}

// DeleteByEvent removes every saved-event row pointing at an event. Called
// when the event itself is deleted so saved lists don't accumulate dangling
// references.
func (r *SavedEventRepository) DeleteByEvent(ctx context.Context, eventID string) error {
	query := `DELETE saved_event WHERE event = type::record($event)`
	vars := map[string]interface{}{"event": ensureRecordID("event", eventID)}

	return r.db.Execute(ctx, query, vars)
}

func parseSavedEventRecord(result interface{}) (*model.SavedEvent, error) {
	data, ok := unwrapRecord(result)
	if !ok {
		return nil, nil
	}

	return &model.SavedEvent{
		ID:      convertSurrealID(data["id"]),
		UserID:  convertSurrealID(data["user"]),
		EventID: convertSurrealID(data["event"]),
		SavedOn: getTime(data, "saved_on"),
	}, nil
}
