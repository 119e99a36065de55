package webserver

import (
	"encoding/json"
	"errors"
	"net/http"
)

var (
	// ErrUnsupportedBackend is returned by New for a backend name that is not
	// built into this binary.
	ErrUnsupportedBackend = errors.New("webserver: unsupported backend")

	// ErrNotStarted is returned by HealthCheck before Start.
	ErrNotStarted = errors.New("webserver: not started")
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeNotFound    = "not_found"
	ErrCodeInternal    = "internal_error"
	ErrCodeRateLimited = "rate_limited"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// ErrorBody renders the structured error body for handlers that respond
// through a Responder instead of an http.ResponseWriter.
func ErrorBody(status int, code, message string) []byte {
	//nolint:errcheck // Error has only string and int fields
	body, _ := json.Marshal(Error{Status: status, Code: code, Message: message})
	return body
}
