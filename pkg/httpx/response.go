package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/hatchery/hatchd/pkg/slogx"
)

// ErrorResponse is the JSON body for every error status. RequestID is only
// populated on internal errors so callers can quote it when reporting.
type ErrorResponse struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON writes a JSON response with the given status code. It sets the
// Content-Type header and disables caching; every endpoint here is dynamic
// and the auth responses must never be cached.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// Error writes a standard error body with the given status.
func Error(w http.ResponseWriter, code int, detail string) {
	WriteJSON(w, code, ErrorResponse{Detail: detail})
}

// Unauthorized writes a 401 with a WWW-Authenticate challenge.
func Unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	Error(w, http.StatusUnauthorized, detail)
}

// Internal writes a generic 500 carrying the request correlation id. The
// underlying error is for logs only and never reaches the caller.
func Internal(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Detail:    "An unexpected error occurred",
		RequestID: slogx.RequestIDFromContext(r.Context()),
	})
}
