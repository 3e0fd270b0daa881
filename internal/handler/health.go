package handler

import (
	"net/http"

	"github.com/forgo/gather/api/internal/database"
)

// HealthHandler handles the health endpoint
type HealthHandler struct {
	db database.Database
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db database.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health handles GET /health. A failing database ping degrades the status
// but the endpoint itself still answers 200 so probes can tell the process
// is alive.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Database: "ok"}
	if err := h.db.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
	}

	WriteSuccess(w, http.StatusOK, resp)
}
