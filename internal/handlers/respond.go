// Package handlers contains the HTTP handlers for the ScienceHeaven API.
// Handlers are grouped by concern (public, admin, auth) and receive their
// dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"scienceheaven/internal/apperror"
)

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeMessage emits the API error envelope.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps an error to its HTTP status through the apperror
// taxonomy. Anything outside the taxonomy is a storage-level failure:
// logged with detail, surfaced as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		writeMessage(w, statusFor(appErr), appErr.Message)
		return
	}

	slog.Error("request failed", "error", err)
	writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
}

func statusFor(e *apperror.AppError) int {
	switch {
	case errors.Is(e.Err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(e.Err, apperror.ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(e.Err, apperror.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(e.Err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(e.Err, apperror.ErrUploadRejected):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
