// Package api holds the HTTP plumbing shared by every route package: the
// JSON response writers, the error taxonomy, and the middleware chain.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// WriteJSON marshals v as JSON and writes it to w with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// ErrorBody is the error shape every route returns: a message plus an
// optional remote detail payload.
type ErrorBody struct {
	Message string `json:"error"`
	Detail  any    `json:"detail,omitempty"`
}
