package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/forgo/gather/api/internal/database"
	"github.com/forgo/gather/api/internal/model"
)

// Hand-rolled in-memory repositories shared by the service tests.

type mockUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*model.User{}}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user:%d", m.nextID)
	user.CreatedOn = time.Now()
	user.UpdatedOn = user.CreatedOn
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByIDs(_ context.Context, ids []string) (map[string]*model.User, error) {
	result := map[string]*model.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			copied := *u
			result[id] = &copied
		}
	}
	return result, nil
}

func (m *mockUserRepo) add(id, name, email string) *model.User {
	u := &model.User{ID: id, Name: name, Email: email}
	m.users[id] = u
	return u
}

type mockEventRepo struct {
	events map[string]*model.Event
	nextID int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: map[string]*model.Event{}}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	m.nextID++
	event.ID = fmt.Sprintf("event:%d", m.nextID)
	event.CreatedOn = time.Now()
	event.UpdatedOn = event.CreatedOn
	stored := *event
	m.events[event.ID] = &stored
	return nil
}

func (m *mockEventRepo) Get(_ context.Context, eventID string) (*model.Event, error) {
	if e, ok := m.events[eventID]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, nil
}

func (m *mockEventRepo) Update(_ context.Context, eventID string, updates map[string]interface{}) (*model.Event, error) {
	e, ok := m.events[eventID]
	if !ok {
		return nil, nil
	}
	for key, value := range updates {
		switch key {
		case "name":
			e.Name = value.(string)
		case "description":
			e.Description = value.(string)
		case "date":
			e.Date = value.(string)
		case "time":
			e.Time = value.(string)
		case "location":
			e.Location = value.(string)
		case "category":
			e.Category = value.(string)
		case "starts_at":
			e.StartsAt = value.(time.Time)
		}
	}
	e.UpdatedOn = time.Now()
	copied := *e
	return &copied, nil
}

func (m *mockEventRepo) Delete(_ context.Context, eventID string) error {
	delete(m.events, eventID)
	return nil
}

func (m *mockEventRepo) matching(filter model.EventFilter, now time.Time) []*model.Event {
	var matched []*model.Event
	for _, e := range m.events {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Location != "" && !strings.Contains(strings.ToLower(e.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if !filter.IncludePast && e.StartsAt.Before(now) {
			continue
		}
		copied := *e
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartsAt.Before(matched[j].StartsAt)
	})
	return matched
}

func (m *mockEventRepo) List(_ context.Context, filter model.EventFilter, now time.Time, offset, limit int) ([]*model.Event, error) {
	matched := m.matching(filter, now)
	if offset >= len(matched) {
		return []*model.Event{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (m *mockEventRepo) Count(_ context.Context, filter model.EventFilter, now time.Time) (int, error) {
	return len(m.matching(filter, now)), nil
}

func (m *mockEventRepo) GetByOrganizer(_ context.Context, organizerID string) ([]*model.Event, error) {
	var matched []*model.Event
	for _, e := range m.events {
		if e.OrganizerID == organizerID {
			copied := *e
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartsAt.Before(matched[j].StartsAt)
	})
	return matched, nil
}

func (m *mockEventRepo) GetByIDs(_ context.Context, ids []string) (map[string]*model.Event, error) {
	result := map[string]*model.Event{}
	for _, id := range ids {
		if e, ok := m.events[id]; ok {
			copied := *e
			result[id] = &copied
		}
	}
	return result, nil
}

func (m *mockEventRepo) add(id, organizerID string, startsAt time.Time) *model.Event {
	e := &model.Event{
		ID:          id,
		Name:        "Event " + id,
		Description: "A description",
		Date:        startsAt.Format("2006-01-02"),
		Time:        startsAt.Format("15:04"),
		Location:    "Somewhere",
		Category:    "Other",
		OrganizerID: organizerID,
		StartsAt:    startsAt,
	}
	m.events[id] = e
	return e
}

type mockSavedRepo struct {
	rows   []*model.SavedEvent
	nextID int
}

func newMockSavedRepo() *mockSavedRepo {
	return &mockSavedRepo{}
}

func (m *mockSavedRepo) Create(_ context.Context, userID, eventID string) (*model.SavedEvent, error) {
	for _, row := range m.rows {
		if row.UserID == userID && row.EventID == eventID {
			return nil, fmt.Errorf("%w: event already saved", database.ErrDuplicate)
		}
	}
	m.nextID++
	row := &model.SavedEvent{
		ID:      fmt.Sprintf("saved_event:%d", m.nextID),
		UserID:  userID,
		EventID: eventID,
		SavedOn: time.Now(),
	}
	m.rows = append(m.rows, row)
	copied := *row
	return &copied, nil
}

func (m *mockSavedRepo) Get(_ context.Context, userID, eventID string) (*model.SavedEvent, error) {
	for _, row := range m.rows {
		if row.UserID == userID && row.EventID == eventID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockSavedRepo) Delete(_ context.Context, userID, eventID string) error {
	kept := m.rows[:0]
	for _, row := range m.rows {
		if !(row.UserID == userID && row.EventID == eventID) {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return nil
}

func (m *mockSavedRepo) GetByUser(_ context.Context, userID string) ([]*model.SavedEvent, error) {
	// Most recently saved first
	var matched []*model.SavedEvent
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			copied := *m.rows[i]
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (m *mockSavedRepo) CountByUser(_ context.Context, userID string) (int, error) {
	count := 0
	for _, row := range m.rows {
		if row.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockSavedRepo) DeleteByEvent(_ context.Context, eventID string) error {
	kept := m.rows[:0]
	for _, row := range m.rows {
		if row.EventID != eventID {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return nil
}
