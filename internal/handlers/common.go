package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"quickbite-backend/internal/apperrors"

	"github.com/rs/zerolog/log"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondAppError maps a service error to its HTTP status. Unrecognized
// errors become an opaque 500 so internals never leak to clients.
func respondAppError(w http.ResponseWriter, err error) {
	var validationErr *apperrors.ValidationError
	var notFoundErr *apperrors.NotFoundError
	var authzErr *apperrors.AuthorizationError
	var unauthErr *apperrors.UnauthenticatedError
	var tooLargeErr *apperrors.PayloadTooLargeError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, validationErr.Message, http.StatusBadRequest)
	case errors.As(err, &unauthErr):
		respondError(w, unauthErr.Message, http.StatusUnauthorized)
	case errors.As(err, &authzErr):
		respondError(w, authzErr.Message, http.StatusForbidden)
	case errors.As(err, &notFoundErr):
		respondError(w, notFoundErr.Error(), http.StatusNotFound)
	case errors.As(err, &tooLargeErr):
		respondError(w, tooLargeErr.Message, http.StatusRequestEntityTooLarge)
	default:
		log.Error().Err(err).Msg("Unhandled error")
		respondError(w, "internal server error", http.StatusInternalServerError)
	}
}
