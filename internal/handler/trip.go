package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jsandin/tripplanner/backend/internal/domain"
	"github.com/jsandin/tripplanner/backend/internal/middleware"
)

// dateLayout is the wire format for calendar dates throughout the API.
const dateLayout = "2006-01-02"

// createTripRequest is the body for POST /api/trips. Dates are ISO calendar
// dates; any time-of-day component is rejected.
type createTripRequest struct {
	Title       string `json:"title"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// updateTripRequest is the body for PUT /api/trips/{id}: a partial update
// where absent fields are left untouched.
type updateTripRequest struct {
	Title       *string `json:"title"`
	Destination *string `json:"destination"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body is required")
		return
	}

	trip, err := requestToTrip(req)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), userID, trip)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /api/trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	trips, err := s.trips.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /api/trips/{id}. The response embeds the trip's
// activities in storage order.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	tripID, err := idParam(r, "id")
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	trip, err := s.trips.GetWithActivities(r.Context(), tripID, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /api/trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	tripID, err := idParam(r, "id")
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	var req updateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body is required")
		return
	}

	patch, err := requestToTripPatch(req)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	updated, err := s.trips.Update(r.Context(), tripID, userID, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /api/trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	tripID, err := idParam(r, "id")
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), tripID, userID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// userFrom pulls the authenticated account ID set by the auth middleware.
func userFrom(r *http.Request) (uuid.UUID, bool) {
	return middleware.UserID(r.Context())
}

// idParam parses a UUID path parameter.
func idParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// requestToTrip converts a create body into a domain.Trip.
func requestToTrip(req createTripRequest) (domain.Trip, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("start_date must be a calendar date (YYYY-MM-DD)")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("end_date must be a calendar date (YYYY-MM-DD)")
	}
	return domain.Trip{
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

// requestToTripPatch converts an update body into a domain.TripPatch.
func requestToTripPatch(req updateTripRequest) (domain.TripPatch, error) {
	patch := domain.TripPatch{
		Title:       req.Title,
		Destination: req.Destination,
	}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return domain.TripPatch{}, fmt.Errorf("start_date must be a calendar date (YYYY-MM-DD)")
		}
		patch.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return domain.TripPatch{}, fmt.Errorf("end_date must be a calendar date (YYYY-MM-DD)")
		}
		patch.EndDate = &end
	}
	return patch, nil
}
