package board

import (
	"encoding/json"
	"log"
	"net/http"

	"Agora/internal/core/boards"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// handleServiceError maps workflow errors to HTTP responses. ErrInvalidBoard
// is not an error to the user: it resolves to a home redirect and is handled
// by the individual handlers before this map is reached.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case err == boards.ErrNotFound:
		writeError(w, http.StatusNotFound, "NotFound", "Post or board not found")

	case err == boards.ErrForbidden:
		writeError(w, http.StatusForbidden, "Forbidden", "You are not allowed to do that")

	case err == boards.ErrStaleOrMissing:
		// Distinct from NotFound so the client can explain the edit race
		writeError(w, http.StatusConflict, "StaleOrMissing",
			"This post was removed while you were editing")

	case boards.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in board handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}

// writeJSON writes a 200 JSON response
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
