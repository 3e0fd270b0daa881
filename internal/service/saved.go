package service

import (
	"context"
	"errors"
	"time"

	"github.com/forgo/gather/api/internal/database"
	"github.com/forgo/gather/api/internal/model"
)

// SavedEventService handles per-user saved event lists
type SavedEventService struct {
	savedRepo SavedEventRepository
	eventRepo EventRepository
	userRepo  UserRepository
	now       func() time.Time
}

// SavedEventServiceConfig holds configuration for the saved event service
type SavedEventServiceConfig struct {
	SavedRepo SavedEventRepository
	EventRepo EventRepository
	UserRepo  UserRepository

	// Now overrides the clock in tests. Defaults to time.Now.
	Now func() time.Time
}

// NewSavedEventService creates a new saved event service
func NewSavedEventService(cfg SavedEventServiceConfig) *SavedEventService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &SavedEventService{
		savedRepo: cfg.SavedRepo,
		eventRepo: cfg.EventRepo,
		userRepo:  cfg.UserRepo,
		now:       now,
	}
}

// Save bookmarks an event for a user. Saving a missing event fails, as
// does saving the same event twice.
func (s *SavedEventService) Save(ctx context.Context, userID, eventID string) (*model.SavedEvent, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	saved, err := s.savedRepo.Create(ctx, userID, event.ID)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEventAlreadySaved
		}
		return nil, err
	}
	return saved, nil
}

// Unsave removes an event from a user's saved list
func (s *SavedEventService) Unsave(ctx context.Context, userID, eventID string) error {
	saved, err := s.savedRepo.Get(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if saved == nil {
		return ErrSavedEventNotFound
	}

	return s.savedRepo.Delete(ctx, userID, eventID)
}

// IsSaved reports whether a user has saved an event
func (s *SavedEventService) IsSaved(ctx context.Context, userID, eventID string) (bool, error) {
	saved, err := s.savedRepo.Get(ctx, userID, eventID)
	if err != nil {
		return false, err
	}
	return saved != nil, nil
}

// List returns a user's saved events with full event and organizer details,
// split around now. Within each partition entries keep their most recently
// saved first order. Rows whose event has since disappeared are dropped.
func (s *SavedEventService) List(ctx context.Context, userID string) (*model.SavedEvents, error) {
	saved, err := s.savedRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	eventIDs := make([]string, 0, len(saved))
	for _, row := range saved {
		eventIDs = append(eventIDs, row.EventID)
	}

	events, err := s.eventRepo.GetByIDs(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	organizerIDs := make([]string, 0, len(events))
	seen := map[string]bool{}
	for _, e := range events {
		if e.OrganizerID != "" && !seen[e.OrganizerID] {
			seen[e.OrganizerID] = true
			organizerIDs = append(organizerIDs, e.OrganizerID)
		}
	}
	organizers, err := s.userRepo.GetByIDs(ctx, organizerIDs)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	result := &model.SavedEvents{
		Upcoming: []*model.SavedEventDetail{},
		Past:     []*model.SavedEventDetail{},
	}
	for _, row := range saved {
		event, ok := events[row.EventID]
		if !ok {
			continue
		}
		if u, ok := organizers[event.OrganizerID]; ok {
			event.Organizer = u.Ref()
		}
		event.IsPast = event.StartsAt.Before(now)

		detail := &model.SavedEventDetail{
			ID:      row.ID,
			SavedOn: row.SavedOn,
			Event:   event,
		}
		if event.IsPast {
			result.Past = append(result.Past, detail)
		} else {
			result.Upcoming = append(result.Upcoming, detail)
		}
	}
	return result, nil
}
