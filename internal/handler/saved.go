package handler

import (
	"net/http"

	"github.com/forgo/gather/api/internal/middleware"
	"github.com/forgo/gather/api/internal/service"
)

// SavedEventHandler handles saved-event endpoints
type SavedEventHandler struct {
	savedService *service.SavedEventService
}

// NewSavedEventHandler creates a new saved event handler
func NewSavedEventHandler(savedService *service.SavedEventService) *SavedEventHandler {
	return &SavedEventHandler{savedService: savedService}
}

// checkResponse is the saved-check endpoint body
type checkResponse struct {
	Success bool `json:"success"`
	IsSaved bool `json:"isSaved"`
}

// Save handles POST /api/saved/{eventId}
func (h *SavedEventHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	saved, err := h.savedService.Save(r.Context(), userID, r.PathValue("eventId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCreated(w, "Event saved successfully", saved)
}

// Unsave handles DELETE /api/saved/{eventId}
func (h *SavedEventHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.savedService.Unsave(r.Context(), userID, r.PathValue("eventId")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteMessage(w, http.StatusOK, "Event removed from saved list")
}

// List handles GET /api/saved
func (h *SavedEventHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.savedService.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteSuccess(w, http.StatusOK, result)
}

// Check handles GET /api/saved/check/{eventId}
func (h *SavedEventHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	saved, err := h.savedService.IsSaved(r.Context(), userID, r.PathValue("eventId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, checkResponse{Success: true, IsSaved: saved})
}
