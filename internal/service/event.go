package service

import (
	"context"
	"time"

	"github.com/forgo/gather/api/internal/model"
)

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Get(ctx context.Context, eventID string) (*model.Event, error)
	Update(ctx context.Context, eventID string, updates map[string]interface{}) (*model.Event, error)
	Delete(ctx context.Context, eventID string) error
	List(ctx context.Context, filter model.EventFilter, now time.Time, offset, limit int) ([]*model.Event, error)
	Count(ctx context.Context, filter model.EventFilter, now time.Time) (int, error)
	GetByOrganizer(ctx context.Context, organizerID string) ([]*model.Event, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*model.Event, error)
}

// SavedEventRepository defines the interface for saved-event storage
type SavedEventRepository interface {
	Create(ctx context.Context, userID, eventID string) (*model.SavedEvent, error)
	Get(ctx context.Context, userID, eventID string) (*model.SavedEvent, error)
	Delete(ctx context.Context, userID, eventID string) error
	GetByUser(ctx context.Context, userID string) ([]*model.SavedEvent, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	DeleteByEvent(ctx context.Context, eventID string) error
}

// EventService handles event listing, scheduling and ownership rules
type EventService struct {
	eventRepo EventRepository
	userRepo  UserRepository
	savedRepo SavedEventRepository
	location  *time.Location
	now       func() time.Time
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	EventRepo EventRepository
	UserRepo  UserRepository
	SavedRepo SavedEventRepository

	// Location interprets event date+time strings. Defaults to UTC.
	Location *time.Location

	// Now overrides the clock in tests. Defaults to time.Now.
	Now func() time.Time
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &EventService{
		eventRepo: cfg.EventRepo,
		userRepo:  cfg.UserRepo,
		savedRepo: cfg.SavedRepo,
		location:  loc,
		now:       now,
	}
}

// Categories returns the allowed event categories
func (s *EventService) Categories() []string {
	return model.Categories
}

// List returns one page of events matching the filter, soonest first
func (s *EventService) List(ctx context.Context, filter model.EventFilter, page, limit int) (*model.EventPage, error) {
	page = model.ClampPage(page)
	limit = model.ClampLimit(limit)
	now := s.now().UTC()

	total, err := s.eventRepo.Count(ctx, filter, now)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.List(ctx, filter, now, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	if err := s.attachOrganizers(ctx, events); err != nil {
		return nil, err
	}
	for _, e := range events {
		e.IsPast = e.StartsAt.Before(now)
	}

	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}

	return &model.EventPage{
		Events: events,
		Total:  total,
		Page:   page,
		Pages:  pages,
		Limit:  limit,
	}, nil
}

// Get retrieves one event with its organizer attached
func (s *EventService) Get(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if err := s.attachOrganizers(ctx, []*model.Event{event}); err != nil {
		return nil, err
	}
	event.IsPast = event.StartsAt.Before(s.now().UTC())
	return event, nil
}

// Create schedules a new event for the given organizer. The combined
// date+time must be at least MinLeadTime in the future.
func (s *EventService) Create(ctx context.Context, organizerID string, req *model.CreateEventRequest) (*model.Event, error) {
	startsAt, err := model.CombineDateTime(req.Date, req.Time, s.location)
	if err != nil {
		return nil, err
	}
	if startsAt.Before(s.now().Add(model.MinLeadTime)) {
		return nil, ErrEventTooSoon
	}

	event := &model.Event{
		Name:        req.Name,
		Description: req.Description,
		Date:        model.NormalizeDate(req.Date),
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
		OrganizerID: organizerID,
		StartsAt:    startsAt.UTC(),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	if err := s.attachOrganizers(ctx, []*model.Event{event}); err != nil {
		return nil, err
	}
	return event, nil
}

// Update modifies an event's fields. Only the organizer may update, and a
// rescheduled event must still honor the minimum lead time.
func (s *EventService) Update(ctx context.Context, userID, eventID string, req *model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if event.OrganizerID != userID {
		return nil, ErrNotEventOrganizer
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}

	if req.Date != nil || req.Time != nil {
		date := event.Date
		if req.Date != nil {
			date = *req.Date
		}
		clock := event.Time
		if req.Time != nil {
			clock = *req.Time
		}

		startsAt, err := model.CombineDateTime(date, clock, s.location)
		if err != nil {
			return nil, err
		}
		if startsAt.Before(s.now().Add(model.MinLeadTime)) {
			return nil, ErrEventTooSoon
		}

		updates["date"] = model.NormalizeDate(date)
		updates["time"] = clock
		updates["starts_at"] = startsAt.UTC()
	}

	updated, err := s.eventRepo.Update(ctx, event.ID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrEventNotFound
	}

	if err := s.attachOrganizers(ctx, []*model.Event{updated}); err != nil {
		return nil, err
	}
	updated.IsPast = updated.StartsAt.Before(s.now().UTC())
	return updated, nil
}

// Delete removes an event and every saved-event row pointing at it. Only
// the organizer may delete.
func (s *EventService) Delete(ctx context.Context, userID, eventID string) error {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	if event.OrganizerID != userID {
		return ErrNotEventOrganizer
	}

	if err := s.eventRepo.Delete(ctx, event.ID); err != nil {
		return err
	}
	return s.savedRepo.DeleteByEvent(ctx, event.ID)
}

// UserEvents returns the events a user organizes, split around now.
// Upcoming events are soonest first; past events are most recent first.
func (s *EventService) UserEvents(ctx context.Context, userID string) (*model.UserEvents, error) {
	events, err := s.eventRepo.GetByOrganizer(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.attachOrganizers(ctx, events); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	result := &model.UserEvents{
		Upcoming: []*model.Event{},
		Past:     []*model.Event{},
	}
	for _, e := range events {
		e.IsPast = e.StartsAt.Before(now)
		if e.IsPast {
			// Events arrive soonest first; prepending flips past to most recent first
			result.Past = append([]*model.Event{e}, result.Past...)
		} else {
			result.Upcoming = append(result.Upcoming, e)
		}
	}
	return result, nil
}

// Stats returns the organizer and saved-event counters for a user
func (s *EventService) Stats(ctx context.Context, userID string) (*model.UserStats, error) {
	events, err := s.eventRepo.GetByOrganizer(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	stats := &model.UserStats{CreatedCount: len(events)}
	for _, e := range events {
		if e.StartsAt.Before(now) {
			stats.PastCount++
		} else {
			stats.UpcomingCount++
		}
	}

	saved, err := s.savedRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.SavedCount = saved
	return stats, nil
}

// attachOrganizers resolves organizer details for a batch of events in one
// repository round trip.
func (s *EventService) attachOrganizers(ctx context.Context, events []*model.Event) error {
	if len(events) == 0 {
		return nil
	}

	seen := map[string]bool{}
	ids := make([]string, 0, len(events))
	for _, e := range events {
		if e.OrganizerID != "" && !seen[e.OrganizerID] {
			seen[e.OrganizerID] = true
			ids = append(ids, e.OrganizerID)
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, e := range events {
		if u, ok := users[e.OrganizerID]; ok {
			e.Organizer = u.Ref()
		}
	}
	return nil
}
