package handler

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/forgo/gather/api/internal/database"
	"github.com/forgo/gather/api/internal/middleware"
	"github.com/forgo/gather/api/internal/model"
	"github.com/forgo/gather/api/internal/service"
	"github.com/forgo/gather/api/pkg/jwt"
	"github.com/stretchr/testify/require"
)

// In-memory repositories backing the handler tests.

type memUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func (m *memUserRepo) Create(_ context.Context, user *model.User) error {
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

func (m *memUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByIDs(_ context.Context, ids []string) (map[string]*model.User, error) {
	result := map[string]*model.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			copied := *u
			result[id] = &copied
		}
	}
	return result, nil
}

type memEventRepo struct {
	events map[string]*model.Event
	nextID int
}

func (m *memEventRepo) Create(_ context.Context, event *model.Event) error {
	m.nextID++
	event.ID = fmt.Sprintf("event:%d", m.nextID)
	event.CreatedOn = time.Now()
	event.UpdatedOn = event.CreatedOn
	stored := *event
	m.events[event.ID] = &stored
	return nil
}

func (m *memEventRepo) Get(_ context.Context, eventID string) (*model.Event, error) {
	if e, ok := m.events[eventID]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, nil
}

func (m *memEventRepo) Update(_ context.Context, eventID string, updates map[string]interface{}) (*model.Event, error) {
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

func (m *memEventRepo) Delete(_ context.Context, eventID string) error {
	delete(m.events, eventID)
	return nil
}

func (m *memEventRepo) matching(filter model.EventFilter, now time.Time) []*model.Event {
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

func (m *memEventRepo) List(_ context.Context, filter model.EventFilter, now time.Time, offset, limit int) ([]*model.Event, error) {
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

func (m *memEventRepo) Count(_ context.Context, filter model.EventFilter, now time.Time) (int, error) {
	return len(m.matching(filter, now)), nil
}

func (m *memEventRepo) GetByOrganizer(_ context.Context, organizerID string) ([]*model.Event, error) {
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

func (m *memEventRepo) GetByIDs(_ context.Context, ids []string) (map[string]*model.Event, error) {
	result := map[string]*model.Event{}
	for _, id := range ids {
		if e, ok := m.events[id]; ok {
			copied := *e
			result[id] = &copied
		}
	}
	return result, nil
}

type memSavedRepo struct {
	rows   []*model.SavedEvent
	nextID int
}

func (m *memSavedRepo) Create(_ context.Context, userID, eventID string) (*model.SavedEvent, error) {
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

func (m *memSavedRepo) Get(_ context.Context, userID, eventID string) (*model.SavedEvent, error) {
	for _, row := range m.rows {
		if row.UserID == userID && row.EventID == eventID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memSavedRepo) Delete(_ context.Context, userID, eventID string) error {
	kept := m.rows[:0]
	for _, row := range m.rows {
		if !(row.UserID == userID && row.EventID == eventID) {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return nil
}

func (m *memSavedRepo) GetByUser(_ context.Context, userID string) ([]*model.SavedEvent, error) {
	var matched []*model.SavedEvent
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			copied := *m.rows[i]
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (m *memSavedRepo) CountByUser(_ context.Context, userID string) (int, error) {
	count := 0
	for _, row := range m.rows {
		if row.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *memSavedRepo) DeleteByEvent(_ context.Context, eventID string) error {
	kept := m.rows[:0]
	for _, row := range m.rows {
		if row.EventID != eventID {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return nil
}

// testAPI wires the full handler stack over in-memory repositories,
// mirroring the route table the server registers.
type testAPI struct {
	handler http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	jwtService := jwt.NewTestService(key, "gather-test", 15*time.Minute)

	userRepo := &memUserRepo{users: map[string]*model.User{}}
	eventRepo := &memEventRepo{events: map[string]*model.Event{}}
	savedRepo := &memSavedRepo{}

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:   userRepo,
		JWTService: jwtService,
	})
	eventService := service.NewEventService(service.EventServiceConfig{
		EventRepo: eventRepo,
		UserRepo:  userRepo,
		SavedRepo: savedRepo,
	})
	savedService := service.NewSavedEventService(service.SavedEventServiceConfig{
		SavedRepo: savedRepo,
		EventRepo: eventRepo,
		UserRepo:  userRepo,
	})

	authHandler := NewAuthHandler(authService, false)
	eventHandler := NewEventHandler(eventService)
	savedHandler := NewSavedEventHandler(savedService)

	authed := middleware.Auth(authService)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/auth/me", authed(http.HandlerFunc(authHandler.Me)))

	mux.HandleFunc("GET /api/events", eventHandler.List)
	mux.HandleFunc("GET /api/events/categories", eventHandler.Categories)
	mux.HandleFunc("GET /api/events/{id}", eventHandler.Get)
	mux.Handle("POST /api/events", authed(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("PUT /api/events/{id}", authed(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /api/events/{id}", authed(http.HandlerFunc(eventHandler.Delete)))
	mux.Handle("GET /api/events/user/my-events", authed(http.HandlerFunc(eventHandler.MyEvents)))
	mux.Handle("GET /api/events/user/stats", authed(http.HandlerFunc(eventHandler.Stats)))

	mux.Handle("GET /api/saved", authed(http.HandlerFunc(savedHandler.List)))
	mux.Handle("GET /api/saved/check/{eventId}", authed(http.HandlerFunc(savedHandler.Check)))
	mux.Handle("POST /api/saved/{eventId}", authed(http.HandlerFunc(savedHandler.Save)))
	mux.Handle("DELETE /api/saved/{eventId}", authed(http.HandlerFunc(savedHandler.Unsave)))

	return &testAPI{handler: mux}
}

// do executes a request, optionally authenticated with a session cookie
func (api *testAPI) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its token
func (api *testAPI) register(t *testing.T, name, email string) string {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":"secret1"}`, name, email)
	rec := api.do(http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c.Value
		}
	}
	t.Fatal("no session cookie set on register")
	return ""
}

// futureDate returns a date string far enough out to clear the lead time
func futureDate(t *testing.T) string {
	t.Helper()
	return time.Now().AddDate(0, 1, 0).Format("2006-01-02")
}
