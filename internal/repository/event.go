package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forgo/gather/api/internal/database"
	"github.com/forgo/gather/api/internal/model"
)

// EventRepository handles event data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		CREATE event CONTENT {
			name: $name,
			description: $description,
			date: $date,
			time: $time,
			location: $location,
			category: $category,
			organizer: type::record($organizer),
			starts_at: $starts_at,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"name":        event.Name,
		"description": event.Description,
		"date":        event.Date,
		"time":        event.Time,
		"location":    event.Location,
		"category":    event.Category,
		"organizer":   ensureRecordID("user", event.OrganizerID),
		"starts_at":   event.StartsAt,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	event.ID = created.ID
	event.CreatedOn = created.CreatedOn
	event.UpdatedOn = created.UpdatedOn
	return nil
}

// Get retrieves an event by ID, nil when absent
func (r *EventRepository) Get(ctx context.Context, eventID string) (*model.Event, error) {
	query := `SELECT * FROM type::record($event_id)`
	vars := map[string]interface{}{"event_id": ensureRecordID("event", eventID)}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEventRecord(result)
}

// Update applies field updates and returns the record after the write
func (r *EventRepository) Update(ctx context.Context, eventID string, updates map[string]interface{}) (*model.Event, error) {
	query := `UPDATE type::record($event_id) SET updated_on = time::now()`
	vars := map[string]interface{}{"event_id": ensureRecordID("event", eventID)}

	for key, value := range updates {
		query += ", " + key + " = $" + key
		vars[key] = value
	}
	query += ` RETURN AFTER`

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEventRecord(result)
}

// Delete deletes an event
func (r *EventRepository) Delete(ctx context.Context, eventID string) error {
	query := `DELETE type::record($event_id)`
	vars := map[string]interface{}{"event_id": ensureRecordID("event", eventID)}

	return r.db.Execute(ctx, query, vars)
}

// List retrieves one page of events matching the filter, soonest first.
// Past events are excluded unless the filter opts in.
func (r *EventRepository) List(ctx context.Context, filter model.EventFilter, now time.Time, offset, limit int) ([]*model.Event, error) {
	query, vars := buildEventFilter(`SELECT * FROM event`, filter, now)
	query += ` ORDER BY starts_at ASC LIMIT $limit START $start`
	vars["limit"] = limit
	vars["start"] = offset

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseEventRecords(result)
}

// Count returns the total number of events matching the filter
func (r *EventRepository) Count(ctx context.Context, filter model.EventFilter, now time.Time) (int, error) {
	query, vars := buildEventFilter(`SELECT count() FROM event`, filter, now)
	query += ` GROUP ALL`

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

// GetByOrganizer retrieves all events created by a user, soonest first
func (r *EventRepository) GetByOrganizer(ctx context.Context, organizerID string) ([]*model.Event, error) {
	query := `SELECT * FROM event WHERE organizer = type::record($organizer) ORDER BY starts_at ASC`
	vars := map[string]interface{}{"organizer": ensureRecordID("user", organizerID)}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseEventRecords(result)
}

// GetByIDs retrieves events in one round trip, keyed by record ID
func (r *EventRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*model.Event, error) {
	events := make(map[string]*model.Event, len(ids))
	if len(ids) == 0 {
		return events, nil
	}

	records := make([]string, 0, len(ids))
	for _, id := range ids {
		records = append(records, ensureRecordID("event", id))
	}

	query := `SELECT * FROM array::map($ids, |$id| type::record($id))`
	vars := map[string]interface{}{"ids": records}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return nil, fmt.Errorf("unexpected result format")
	}

	for _, row := range rows {
		event, err := parseEventRecord(row)
		if err != nil {
			return nil, err
		}
		if event != nil {
			events[event.ID] = event
		}
	}
	return events, nil
}

// buildEventFilter appends WHERE conditions for the filter to a base query
func buildEventFilter(base string, filter model.EventFilter, now time.Time) (string, map[string]interface{}) {
	vars := map[string]interface{}{}
	var conds []string

	if filter.Category != "" {
		conds = append(conds, `category = $category`)
		vars["category"] = filter.Category
	}
	if filter.Location != "" {
		conds = append(conds, `string::contains(string::lowercase(location), string::lowercase($location))`)
		vars["location"] = filter.Location
	}
	if filter.Search != "" {
		conds = append(conds, `string::contains(string::lowercase(name), string::lowercase($search))`)
		vars["search"] = filter.Search
	}
	if !filter.IncludePast {
		conds = append(conds, `starts_at >= $now`)
		vars["now"] = now
	}

	query := base
	for i, cond := range conds {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	return query, vars
}

func parseEventRecord(result interface{}) (*model.Event, error) {
	data, ok := unwrapRecord(result)
	if !ok {
		return nil, nil
	}

	return &model.Event{
		ID:          convertSurrealID(data["id"]),
		Name:        getString(data, "name"),
		Description: getString(data, "description"),
		Date:        getString(data, "date"),
		Time:        getString(data, "time"),
		Location:    getString(data, "location"),
		Category:    getString(data, "category"),
		OrganizerID: convertSurrealID(data["organizer"]),
		StartsAt:    getTime(data, "starts_at"),
		CreatedOn:   getTime(data, "created_on"),
		UpdatedOn:   getTime(data, "updated_on"),
	}, nil
}

func parseEventRecords(result interface{}) ([]*model.Event, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return nil, fmt.Errorf("unexpected result format")
	}

	events := make([]*model.Event, 0, len(rows))
	for _, row := range rows {
		event, err := parseEventRecord(row)
		if err != nil {
			return nil, err
		}
		if event != nil {
			events = append(events, event)
		}
	}
	return events, nil
}
