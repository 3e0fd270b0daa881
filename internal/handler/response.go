package handler

import (
	"encoding/json"
	"net/http"

	"github.com/forgo/gather/api/internal/model"
)

// successEnvelope is the success half of the response envelope
type successEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// pageEnvelope wraps a paginated collection
type pageEnvelope struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	Data    interface{} `json:"data"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteSuccess writes a successful data response
func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, successEnvelope{Success: true, Data: data})
}

// WriteMessage writes a successful response carrying only a message
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, successEnvelope{Success: true, Message: message})
}

// WriteCreated writes a 201 response with a message and the created data
func WriteCreated(w http.ResponseWriter, message string, data interface{}) {
	WriteJSON(w, http.StatusCreated, successEnvelope{Success: true, Message: message, Data: data})
}

// WritePage writes one page of a collection with pagination counters
func WritePage(w http.ResponseWriter, data interface{}, count, total, page, pages int) {
	WriteJSON(w, http.StatusOK, pageEnvelope{
		Success: true,
		Count:   count,
		Total:   total,
		Page:    page,
		Pages:   pages,
		Data:    data,
	})
}

// WriteError writes an error response
func WriteError(w http.ResponseWriter, err *model.APIError) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a JSON request body into the given struct
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
