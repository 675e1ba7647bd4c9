package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "virginia-ai/backend/internal/errors"
	"virginia-ai/backend/internal/turn"
)

// ErrorResponse is the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the generic success body for mutations that do not
// return a resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// respondWithError maps service-layer sentinel errors onto HTTP status codes
// and a consistent JSON error body. The detailed error is logged; the client
// sees the mapped message only.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		// Validation messages from the service layer are already
		// user-facing.
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, app_errors.ErrGateway):
		// A failed gateway turn surfaces as a model-authored apology.
		// Nothing was persisted; the client may resend the same prompt.
		statusCode = http.StatusBadGateway
		message = turn.ApologyText
	case errors.Is(err, app_errors.ErrStorage):
		statusCode = http.StatusInternalServerError
		message = "Saving or loading data failed. Please try again."
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
