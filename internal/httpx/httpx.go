// Package httpx carries the error taxonomy and JSON response helpers shared
// by every route. Handlers return *httpx.Error so the pipeline can map each
// failure class to exactly one status code and body shape.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Error is a request-terminating failure with a fixed HTTP mapping.
// Validation and auth errors are user-fixable and never retried; upstream and
// not-initialized errors are server-side and logged by the caller.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *Error) Error() string { return e.Message }

// Validation is malformed or out-of-range input (400).
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Auth is a missing, invalid or expired token (401).
func Auth(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// RateLimited is a quota rejection (429).
func RateLimited(msg string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Message: msg}
}

// Upstream is an unreachable or erroring collaborator (500).
func Upstream(msg string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg}
}

// NotInitialized is a startup failure surfaced on every call until restart (500).
func NotInitialized(msg string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg}
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes e as the uniform error body {"error": "..."}.
func WriteError(w http.ResponseWriter, e *Error) {
	WriteJSON(w, e.Status, e)
}
