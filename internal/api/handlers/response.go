package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/neuromap-brasil/neuromap/internal/application/services"
	apperrors "github.com/neuromap-brasil/neuromap/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Int("status", statusCode).Msg("failed to encode JSON response")
	}
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError writes err with the status its type maps to and the
// localized message a person would see on the page.
func respondWithAppError(w http.ResponseWriter, msgs services.Messages, err error) {
	respondWithJSON(w, statusForError(err), map[string]string{
		"error": msgs.ErrorText(err),
		"type":  string(errorTypeOrInternal(err)),
	})
}

func statusForError(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypeMissingCredential, apperrors.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrorTypeResponseFormat, apperrors.ErrorTypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorTypeOrInternal(err error) apperrors.ErrorType {
	if t := apperrors.TypeOf(err); t != "" {
		return t
	}
	return apperrors.ErrorTypeInternal
}
