package handler

import (
	"net/http"
	"strconv"

	"github.com/forgo/gather/api/internal/middleware"
	"github.com/forgo/gather/api/internal/model"
	"github.com/forgo/gather/api/internal/service"
)

// EventHandler handles event endpoints
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /api/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, ok := parseIntParam(q.Get("page"), 1)
	if !ok {
		WriteError(w, model.NewBadRequestError("page must be an integer"))
		return
	}
	limit, ok := parseIntParam(q.Get("limit"), 0)
	if !ok {
		WriteError(w, model.NewBadRequestError("limit must be an integer"))
		return
	}

	filter := model.EventFilter{
		Category:    q.Get("category"),
		Location:    q.Get("location"),
		Search:      q.Get("search"),
		IncludePast: q.Get("includePast") == "true",
	}

	result, err := h.eventService.List(r.Context(), filter, page, limit)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WritePage(w, result.Events, len(result.Events), result.Total, result.Page, result.Pages)
}

// Get handles GET /api/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteSuccess(w, http.StatusOK, event)
}

// Create handles POST /api/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	event, err := h.eventService.Create(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteSuccess(w, http.StatusCreated, event)
}

// Update handles PUT /api/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}
	if req.Empty() {
		WriteError(w, model.NewBadRequestError("No fields to update"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	event, err := h.eventService.Update(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteSuccess(w, http.StatusOK, event)
}

// Delete handles DELETE /api/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.eventService.Delete(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteMessage(w, http.StatusOK, "Event deleted successfully")
}

// MyEvents handles GET /api/events/user/my-events
func (h *EventHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	result, err := h.eventService.UserEvents(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteSuccess(w, http.StatusOK, result)
}

// Stats handles GET /api/events/user/stats
func (h *EventHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.eventService.Stats(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteSuccess(w, http.StatusOK, stats)
}

// Categories handles GET /api/events/categories
func (h *EventHandler) Categories(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, h.eventService.Categories())
}

// parseIntParam parses an optional integer query parameter. Empty input
// yields the fallback; non-integer input is reported to the caller.
func parseIntParam(raw string, fallback int) (int, bool) {
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
