package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createEventBody(t *testing.T, name string) string {
	t.Helper()
	return fmt.Sprintf(`{
		"name": %q,
		"description": "A description",
		"date": %q,
		"time": "19:30",
		"location": "Botanical Garden",
		"category": "Music"
	}`, name, futureDate(t))
}

// createEvent creates an event through the API and returns its ID
func createEvent(t *testing.T, api *testAPI, token, name string) string {
	t.Helper()

	rec := api.do(http.MethodPost, "/api/events", createEventBody(t, name), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec.Body.Bytes())
	data := body["data"].(map[string]interface{})
	return data["id"].(string)
}

func TestCreateEventEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ada", "ada@example.com")

	rec := api.do(http.MethodPost, "/api/events", createEventBody(t, "Garden Jazz Night"), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec.Body.Bytes())
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Garden Jazz Night", data["name"])
	organizer := data["organizer"].(map[string]interface{})
	assert.Equal(t, "Ada", organizer["name"])
}

func TestCreateEventRequiresAuth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/events", createEventBody(t, "No Auth"), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateEventValidation(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ada", "ada@example.com")

	rec := api.do(http.MethodPost, "/api/events",
		`{"name":"","description":"","date":"bad","time":"25:00","location":"","category":"Nope"}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["errors"])
}

func TestListEventsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ada", "ada@example.com")
	for i := 0; i < 15; i++ {
		createEvent(t, api, token, fmt.Sprintf("Event %02d", i))
	}

	rec := api.do(http.MethodGet, "/api/events?page=2&limit=10", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec.Body.Bytes())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(5), body["count"])
	assert.Equal(t, float64(15), body["total"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(2), body["pages"])
	assert.Len(t, body["data"], 5)
}

func TestListEventsBadPageParam(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/events?page=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/events?limit=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEventsSearch(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ada", "ada@example.com")
	createEvent(t, api, token, "Jazz in the Park")
	createEvent(t, api, token, "Go Meetup")

	rec := api.do(http.MethodGet, "/api/events?search=jazz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	assert.Equal(t, float64(1), body["total"])
}

func TestGetEventEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ada", "ada@example.com")
	eventID := createEvent(t, api, token, "Garden Jazz Night")

	rec := api.do(http.MethodGet, "/api/events/"+eventID, "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec.Body.Bytes())
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Garden Jazz Night", data["name"])
	assert.Equal(t, false, data["is_past"])

	rec = api.do(http.MethodGet, "/api/events/event:missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateEventEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ada", "ada@example.com")
	other := api.register(t, "Grace", "grace@example.com")
	eventID := createEvent(t, api, token, "Garden Jazz Night")

	// Someone else may not update
	rec := api.do(http.MethodPut, "/api/events/"+eventID, `{"name":"Hijacked"}`, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The organizer may
	rec = api.do(http.MethodPut, "/api/events/"+eventID, `{"name":"Renamed Night"}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec.Body.Bytes())
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Renamed Night", data["name"])

	// An empty update is rejected
	rec = api.do(http.MethodPut, "/api/events/"+eventID, `{}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEventEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ada", "ada@example.com")
	other := api.register(t, "Grace", "grace@example.com")
	eventID := createEvent(t, api, token, "Garden Jazz Night")

	rec := api.do(http.MethodDelete, "/api/events/"+eventID, "", other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodDelete, "/api/events/"+eventID, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec.Body.Bytes())
	assert.Equal(t, "Event deleted successfully", body["message"])

	rec = api.do(http.MethodGet, "/api/events/"+eventID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoriesEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/events/categories", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	categories := body["data"].([]interface{})
	assert.Len(t, categories, 12)
	assert.Contains(t, categories, "Music")
	assert.Contains(t, categories, "Other")
}

func TestMyEventsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ada", "ada@example.com")
	other := api.register(t, "Grace", "grace@example.com")
	createEvent(t, api, token, "Mine")
	createEvent(t, api, other, "Theirs")

	rec := api.do(http.MethodGet, "/api/events/user/my-events", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec.Body.Bytes())
	data := body["data"].(map[string]interface{})
	upcoming := data["upcoming"].([]interface{})
	require.Len(t, upcoming, 1)
	event := upcoming[0].(map[string]interface{})
	assert.Equal(t, "Mine", event["name"])
	assert.Len(t, data["past"], 0)
}

func TestStatsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ada", "ada@example.com")
	createEvent(t, api, token, "One")
	eventID := createEvent(t, api, token, "Two")

	rec := api.do(http.MethodPost, "/api/saved/"+eventID, "", token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/events/user/stats", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec.Body.Bytes())
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["createdCount"])
	assert.Equal(t, float64(2), data["upcomingCount"])
	assert.Equal(t, float64(0), data["pastCount"])
	assert.Equal(t, float64(1), data["savedCount"])
}
