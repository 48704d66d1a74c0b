package handler

import (
	"fmt"
	"net/http"
)

// GetItinerary handles GET /api/itinerary/{tripID}. The day-by-day view is
// always returned; pass ?weather=true to align a forecast with the first
// days of the trip. A weather failure never fails the itinerary: the
// response carries a weather_error field instead.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	tripID, err := idParam(r, "tripID")
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	includeWeather := r.URL.Query().Get("weather") == "true"

	itinerary, err := s.itineraries.Build(r.Context(), tripID, userID, includeWeather)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itinerary)
}

// GetItineraryStats handles GET /api/itinerary/{tripID}/stats.
func (s *Server) GetItineraryStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	tripID, err := idParam(r, "tripID")
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	stats, err := s.itineraries.Stats(r.Context(), tripID, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
