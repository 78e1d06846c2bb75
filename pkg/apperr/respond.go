package apperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"jsonshare/pkg/logger"
)

// WriteJSON writes v as a JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

// WriteError renders err as a JSON error response. Errors outside the
// taxonomy become a generic 500 so internals never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal("Internal server error")
	}
	WriteJSON(w, appErr.Status, appErr)
}
