package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jsandin/tripplanner/backend/internal/domain"
)

// createActivityRequest is the body for POST /api/activities.
type createActivityRequest struct {
	TripID      string   `json:"trip_id"`
	DayNumber   int      `json:"day_number"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Time        *string  `json:"time"`
	Category    *string  `json:"category"`
	Location    *string  `json:"location"`
	Cost        *float64 `json:"cost"`
	Notes       *string  `json:"notes"`
}

// CreateActivity handles POST /api/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	var req createActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body is required")
		return
	}

	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		requestError(w, "trip_id must be a valid UUID")
		return
	}

	activity := domain.Activity{
		TripID:      tripID,
		DayNumber:   req.DayNumber,
		Title:       req.Title,
		Description: req.Description,
		Time:        req.Time,
		Category:    req.Category,
		Location:    req.Location,
		Cost:        req.Cost,
		Notes:       req.Notes,
	}

	created, err := s.activities.Create(r.Context(), userID, activity)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListActivitiesByDay handles GET /api/activities/trip/{tripID}/day/{day}.
func (s *Server) ListActivitiesByDay(w http.ResponseWriter, r *http.Request) {
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

	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		requestError(w, "day must be an integer")
		return
	}

	activities, err := s.activities.ListByDay(r.Context(), tripID, userID, day)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, activities)
}

// UpdateActivity handles PUT /api/activities/{id}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	activityID, err := idParam(r, "id")
	if err != nil {
		requestError(w, "invalid activity id")
		return
	}

	var patch domain.ActivityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		requestError(w, "request body is required")
		return
	}

	updated, err := s.activities.Update(r.Context(), activityID, userID, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// ToggleActivity handles PATCH /api/activities/{id}/toggle.
// The flip is atomic in storage; no request body is read.
func (s *Server) ToggleActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	activityID, err := idParam(r, "id")
	if err != nil {
		requestError(w, "invalid activity id")
		return
	}

	toggled, err := s.activities.ToggleCompleted(r.Context(), activityID, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toggled)
}

// DeleteActivity handles DELETE /api/activities/{id}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFrom(r)
	if !ok {
		respondError(w, fmt.Errorf("no authenticated user"))
		return
	}

	activityID, err := idParam(r, "id")
	if err != nil {
		requestError(w, "invalid activity id")
		return
	}

	if err := s.activities.Delete(r.Context(), activityID, userID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
