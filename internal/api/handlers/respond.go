package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSlot),
		errors.Is(err, domain.ErrInvalidTeam),
		errors.Is(err, domain.ErrInvalidHero),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrMalformedRecord):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrHeroUnavailable),
		errors.Is(err, domain.ErrDraftComplete),
		errors.Is(err, domain.ErrHeroExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrHeroNotFound),
		errors.Is(err, domain.ErrMatchNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs under op and answers with the mapped status. Internal
// errors get a generic message.
func writeError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.String("op", op), zap.Error(err))
		http.Error(w, "Internal server error", status)
		return
	}
	log.Debug("request rejected", zap.String("op", op), zap.Error(err))
	http.Error(w, err.Error(), status)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
