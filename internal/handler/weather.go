package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// defaultForecastDays is how many days of forecast are requested when the
// client does not say. The provider caps what it can actually deliver; the
// response notes the cap when it applies.
const defaultForecastDays = 7

// GetForecast handles GET /api/weather/forecast/{destination}?days=N.
func (s *Server) GetForecast(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	destination, err := destinationParam(r)
	if err != nil {
		requestError(w, "invalid destination")
		return
	}

	days := defaultForecastDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 1 {
			requestError(w, "days must be a positive integer")
			return
		}
	}

	forecast, err := s.weather.Forecast(r.Context(), userID, destination, days)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, forecast)
}

// GetCurrentWeather handles GET /api/weather/current/{destination}.
func (s *Server) GetCurrentWeather(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	destination, err := destinationParam(r)
	if err != nil {
		requestError(w, "invalid destination")
		return
	}

	current, err := s.weather.Current(r.Context(), userID, destination)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, current)
}

// destinationParam decodes the destination path segment, which may carry
// percent-encoded spaces or commas ("New%20York", "Paris%2CFR").
func destinationParam(r *http.Request) (string, error) {
	return url.PathUnescape(chi.URLParam(r, "destination"))
}
