package models

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error body for all non-2xx API responses.
// Clients read only the detail string.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteError writes an ErrorResponse with the given status and request ID.
func WriteError(w http.ResponseWriter, status int, requestID, detail string) {
	w.Header().Set("Content-Type", "application/json")
	if requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Detail: detail})
}
