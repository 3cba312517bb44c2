// internal/server/respond.go
package server

import (
	"encoding/json"
	"net/http"
)

// Envelope is the standard response body for all endpoints.
type Envelope struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// writeJSON writes v as application/json with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondOK writes a 200 envelope with data.
func respondOK(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, http.StatusOK, Envelope{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		RequestID:  requestID(r.Context()),
		Data:       data,
	})
}

// respondError writes an error envelope with the given status.
func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Error:      msg,
		RequestID:  requestID(r.Context()),
	})
}
