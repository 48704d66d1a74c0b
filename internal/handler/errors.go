package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jsandin/tripplanner/backend/internal/domain"
	"github.com/jsandin/tripplanner/backend/internal/service"
	"github.com/jsandin/tripplanner/backend/internal/weather"
)

// errorDetail is the machine-readable error body: a stable code plus a
// human-readable message.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the envelope for every non-2xx JSON response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// respondError classifies err against the failure taxonomy and writes the
// matching status and body. The kind is never collapsed: each sentinel keeps
// its own status code so clients can drive retry behavior off it.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrAccessDenied):
		writeError(w, http.StatusForbidden, "access_denied", "you do not own this resource")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate_limited", "request budget exhausted, try again shortly")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	case errors.Is(err, weather.ErrMisconfigured):
		writeError(w, http.StatusServiceUnavailable, "misconfigured", "weather service is not configured")
	case errors.Is(err, weather.ErrUpstreamUnavailable):
		writeError(w, http.StatusBadGateway, "upstream_unavailable", "weather provider unavailable, retry later")
	case errors.Is(err, weather.ErrUpstreamRejected):
		writeError(w, http.StatusBadGateway, "upstream_rejected", unwrapMessage(err))
	case errors.Is(err, weather.ErrUpstreamDataInvalid):
		writeError(w, http.StatusBadGateway, "upstream_data_invalid", "weather provider returned invalid data")
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// writeError writes a JSON error envelope with the given status.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeJSON writes a JSON success body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestError rejects a request before it reaches the service layer
// (missing body, malformed JSON, bad path parameter).
func requestError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "service.TripService.Create: validation error: title is
// required" → "title is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, marker := range []string{"validation error: ", "rejected request: "} {
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	return msg
}
