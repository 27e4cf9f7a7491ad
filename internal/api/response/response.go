// Package response provides utilities for HTTP response handling.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/tripcast/tripcast/internal/api/middleware"
	"github.com/tripcast/tripcast/internal/api/models"
)

// JSON writes a JSON response with the given status code.
// Includes the X-Request-Id header for correlation.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	requestID := middleware.GetRequestID(r.Context())
	if requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// BadRequest writes a 400 response with the given detail.
func BadRequest(w http.ResponseWriter, r *http.Request, detail string) {
	models.WriteError(w, http.StatusBadRequest, middleware.GetRequestID(r.Context()), detail)
}

// NotFound writes a 404 response with the given detail.
func NotFound(w http.ResponseWriter, r *http.Request, detail string) {
	models.WriteError(w, http.StatusNotFound, middleware.GetRequestID(r.Context()), detail)
}

// TooManyRequests writes a 429 response with the given detail.
func TooManyRequests(w http.ResponseWriter, r *http.Request, detail string) {
	models.WriteError(w, http.StatusTooManyRequests, middleware.GetRequestID(r.Context()), detail)
}

// InternalError writes a 500 response with the given detail.
func InternalError(w http.ResponseWriter, r *http.Request, detail string) {
	models.WriteError(w, http.StatusInternalServerError, middleware.GetRequestID(r.Context()), detail)
}

// ServiceUnavailable writes a 503 response with the given detail.
func ServiceUnavailable(w http.ResponseWriter, r *http.Request, detail string) {
	models.WriteError(w, http.StatusServiceUnavailable, middleware.GetRequestID(r.Context()), detail)
}
