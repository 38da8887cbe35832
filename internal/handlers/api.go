package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"admindash/internal/auth"
	"admindash/internal/service"
)

// API holds the services behind the HTTP surface.
type API struct {
	Auth      *service.AuthService
	Users     *service.UsersService
	Content   *service.ContentService
	Analytics *service.AnalyticsService
	Tokens    *auth.TokenManager
}

// envelope is the uniform response wrapper shared by every endpoint.
type envelope struct {
	Status     string              `json:"status"`
	Data       any                 `json:"data,omitempty"`
	Message    string              `json:"message,omitempty"`
	Pagination *service.Pagination `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Status: "success", Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Status: "success", Message: message})
}

func writePage(w http.ResponseWriter, data any, p service.Pagination) {
	writeJSON(w, http.StatusOK, envelope{Status: "success", Data: data, Pagination: &p})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Status: "error", Message: message})
}

// writeServiceError maps classified service errors onto the envelope and
// hides the details of anything unclassified behind a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if se, ok := err.(*service.Error); ok {
		writeError(w, se.Status, se.Message)
		return
	}
	slog.Error("internal error", "error", err)
	writeError(w, http.StatusInternalServerError, "Server error")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}
