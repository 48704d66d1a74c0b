package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsandin/tripplanner/backend/internal/domain"
)

// ---- POST /api/activities --------------------------------------------------

func TestCreateActivity_201(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()
	fixture := activityFixture(tripID)
	activities := &mockActivityServicer{
		create: func(_ context.Context, gotUser uuid.UUID, activity domain.Activity) (domain.Activity, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, tripID, activity.TripID)
			assert.Equal(t, 2, activity.DayNumber)
			require.NotNil(t, activity.Cost)
			assert.InDelta(t, 42.50, *activity.Cost, 0.001)
			return fixture, nil
		},
	}
	router := newTestRouter(serverMocks{activities: activities})

	body := jsonBody(t, map[string]any{
		"trip_id":    tripID.String(),
		"day_number": 2,
		"title":      "Kaiseki dinner",
		"category":   "food",
		"cost":       42.50,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/activities", body)
	req.Header.Set("Authorization", authHeader(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.Activity
	decodeBody(t, rec.Body, &got)
	assert.Equal(t, fixture.ID, got.ID)
}

func TestCreateActivity_BadTripID_422(t *testing.T) {
	router := newTestRouter(serverMocks{})

	body := jsonBody(t, map[string]any{
		"trip_id":    "not-a-uuid",
		"day_number": 1,
		"title":      "X",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/activities", body)
	req.Header.Set("Authorization", authHeader(t, uuid.New()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateActivity_ForeignTrip_403(t *testing.T) {
	activities := &mockActivityServicer{
		create: func(_ context.Context, _ uuid.UUID, _ domain.Activity) (domain.Activity, error) {
			return domain.Activity{}, domain.ErrAccessDenied
		},
	}
	router := newTestRouter(serverMocks{activities: activities})

	body := jsonBody(t, map[string]any{
		"trip_id":    uuid.NewString(),
		"day_number": 1,
		"title":      "X",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/activities", body)
	req.Header.Set("Authorization", authHeader(t, uuid.New()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ---- GET /api/activities/trip/{tripID}/day/{day} ---------------------------

func TestListActivitiesByDay_200(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()
	activities := &mockActivityServicer{
		listByDay: func(_ context.Context, gotTrip, _ uuid.UUID, day int) ([]domain.Activity, error) {
			assert.Equal(t, tripID, gotTrip)
			assert.Equal(t, 3, day)
			return []domain.Activity{activityFixture(tripID)}, nil
		},
	}
	router := newTestRouter(serverMocks{activities: activities})

	req := httptest.NewRequest(http.MethodGet, "/api/activities/trip/"+tripID.String()+"/day/3", nil)
	req.Header.Set("Authorization", authHeader(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Activity
	decodeBody(t, rec.Body, &got)
	assert.Len(t, got, 1)
}

func TestListActivitiesByDay_BadDay_422(t *testing.T) {
	router := newTestRouter(serverMocks{})

	req := httptest.NewRequest(http.MethodGet, "/api/activities/trip/"+uuid.NewString()+"/day/three", nil)
	req.Header.Set("Authorization", authHeader(t, uuid.New()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- PUT /api/activities/{id} ----------------------------------------------

func TestUpdateActivity_200(t *testing.T) {
	userID := uuid.New()
	fixture := activityFixture(uuid.New())
	activities := &mockActivityServicer{
		update: func(_ context.Context, activityID, _ uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error) {
			assert.Equal(t, fixture.ID, activityID)
			require.NotNil(t, patch.Notes)
			assert.Equal(t, "reserve ahead", *patch.Notes)
			assert.Nil(t, patch.Title)
			return fixture, nil
		},
	}
	router := newTestRouter(serverMocks{activities: activities})

	body := jsonBody(t, map[string]any{"notes": "reserve ahead"})
	req := httptest.NewRequest(http.MethodPut, "/api/activities/"+fixture.ID.String(), body)
	req.Header.Set("Authorization", authHeader(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// ---- PATCH /api/activities/{id}/toggle -------------------------------------

func TestToggleActivity_200(t *testing.T) {
	userID := uuid.New()
	fixture := activityFixture(uuid.New())
	fixture.Completed = true
	activities := &mockActivityServicer{
		toggleCompleted: func(_ context.Context, activityID, _ uuid.UUID) (domain.Activity, error) {
			assert.Equal(t, fixture.ID, activityID)
			return fixture, nil
		},
	}
	router := newTestRouter(serverMocks{activities: activities})

	req := httptest.NewRequest(http.MethodPatch, "/api/activities/"+fixture.ID.String()+"/toggle", nil)
	req.Header.Set("Authorization", authHeader(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Activity
	decodeBody(t, rec.Body, &got)
	assert.True(t, got.Completed)
}

func TestToggleActivity_NotFound_404(t *testing.T) {
	activities := &mockActivityServicer{
		toggleCompleted: func(_ context.Context, _, _ uuid.UUID) (domain.Activity, error) {
			return domain.Activity{}, domain.ErrNotFound
		},
	}
	router := newTestRouter(serverMocks{activities: activities})

	req := httptest.NewRequest(http.MethodPatch, "/api/activities/"+uuid.NewString()+"/toggle", nil)
	req.Header.Set("Authorization", authHeader(t, uuid.New()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- DELETE /api/activities/{id} -------------------------------------------

func TestDeleteActivity_204(t *testing.T) {
	userID := uuid.New()
	fixture := activityFixture(uuid.New())
	activities := &mockActivityServicer{
		delete: func(_ context.Context, activityID, _ uuid.UUID) error {
			assert.Equal(t, fixture.ID, activityID)
			return nil
		},
	}
	router := newTestRouter(serverMocks{activities: activities})

	req := httptest.NewRequest(http.MethodDelete, "/api/activities/"+fixture.ID.String(), nil)
	req.Header.Set("Authorization", authHeader(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
