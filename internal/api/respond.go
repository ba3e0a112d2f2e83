// internal/api/respond.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "skillpulse/internal/errors"
)

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, map[string]string{"error": message})
}

// statusFor maps the service error taxonomy to HTTP statuses. Anything
// unclassified, including upstream failures, is a 500 with the upstream
// status embedded in the message.
func statusFor(err error) int {
	var (
		validationErr *apperrors.ValidationError
		authErr       *apperrors.AuthenticationError
		rateErr       *apperrors.RateLimitError
		quotaErr      *apperrors.QuotaExceededError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests
	case errors.As(err, &quotaErr):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
