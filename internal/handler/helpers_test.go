package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jsandin/tripplanner/backend/internal/auth"
	"github.com/jsandin/tripplanner/backend/internal/domain"
	"github.com/jsandin/tripplanner/backend/internal/handler"
	"github.com/jsandin/tripplanner/backend/internal/service"
)

// The mocks below are hand-written test doubles for the servicer interfaces.
// Each method is a function field — set only the ones your test needs.

type mockUserServicer struct {
	register func(ctx context.Context, email, password, name string) (domain.User, error)
	login    func(ctx context.Context, email, password string) (domain.User, error)
}

func (m *mockUserServicer) Register(ctx context.Context, email, password, name string) (domain.User, error) {
	return m.register(ctx, email, password, name)
}
func (m *mockUserServicer) Login(ctx context.Context, email, password string) (domain.User, error) {
	return m.login(ctx, email, password)
}

type mockTripServicer struct {
	create            func(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	getWithActivities func(ctx context.Context, tripID, userID uuid.UUID) (service.TripWithActivities, error)
	list              func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	update            func(ctx context.Context, tripID, userID uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	delete            func(ctx context.Context, tripID, userID uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, userID, trip)
}
func (m *mockTripServicer) GetWithActivities(ctx context.Context, tripID, userID uuid.UUID) (service.TripWithActivities, error) {
	return m.getWithActivities(ctx, tripID, userID)
}
func (m *mockTripServicer) List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.list(ctx, userID)
}
func (m *mockTripServicer) Update(ctx context.Context, tripID, userID uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, tripID, userID, patch)
}
func (m *mockTripServicer) Delete(ctx context.Context, tripID, userID uuid.UUID) error {
	return m.delete(ctx, tripID, userID)
}

type mockActivityServicer struct {
	create          func(ctx context.Context, userID uuid.UUID, activity domain.Activity) (domain.Activity, error)
	listByDay       func(ctx context.Context, tripID, userID uuid.UUID, dayNumber int) ([]domain.Activity, error)
	update          func(ctx context.Context, activityID, userID uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error)
	toggleCompleted func(ctx context.Context, activityID, userID uuid.UUID) (domain.Activity, error)
	delete          func(ctx context.Context, activityID, userID uuid.UUID) error
}

func (m *mockActivityServicer) Create(ctx context.Context, userID uuid.UUID, activity domain.Activity) (domain.Activity, error) {
	return m.create(ctx, userID, activity)
}
func (m *mockActivityServicer) ListByDay(ctx context.Context, tripID, userID uuid.UUID, dayNumber int) ([]domain.Activity, error) {
	return m.listByDay(ctx, tripID, userID, dayNumber)
}
func (m *mockActivityServicer) Update(ctx context.Context, activityID, userID uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error) {
	return m.update(ctx, activityID, userID, patch)
}
func (m *mockActivityServicer) ToggleCompleted(ctx context.Context, activityID, userID uuid.UUID) (domain.Activity, error) {
	return m.toggleCompleted(ctx, activityID, userID)
}
func (m *mockActivityServicer) Delete(ctx context.Context, activityID, userID uuid.UUID) error {
	return m.delete(ctx, activityID, userID)
}

type mockItineraryServicer struct {
	build func(ctx context.Context, tripID, userID uuid.UUID, includeWeather bool) (domain.Itinerary, error)
	stats func(ctx context.Context, tripID, userID uuid.UUID) (domain.ActivityStats, error)
}

func (m *mockItineraryServicer) Build(ctx context.Context, tripID, userID uuid.UUID, includeWeather bool) (domain.Itinerary, error) {
	return m.build(ctx, tripID, userID, includeWeather)
}
func (m *mockItineraryServicer) Stats(ctx context.Context, tripID, userID uuid.UUID) (domain.ActivityStats, error) {
	return m.stats(ctx, tripID, userID)
}

type mockWeatherServicer struct {
	forecast func(ctx context.Context, userID uuid.UUID, destination string, days int) (domain.TripForecast, error)
	current  func(ctx context.Context, userID uuid.UUID, destination string) (domain.ForecastDay, error)
}

func (m *mockWeatherServicer) Forecast(ctx context.Context, userID uuid.UUID, destination string, days int) (domain.TripForecast, error) {
	return m.forecast(ctx, userID, destination, days)
}
func (m *mockWeatherServicer) Current(ctx context.Context, userID uuid.UUID, destination string) (domain.ForecastDay, error) {
	return m.current(ctx, userID, destination)
}

// compile-time checks: the mocks must satisfy the servicer interfaces.
var (
	_ handler.UserServicer      = (*mockUserServicer)(nil)
	_ handler.TripServicer      = (*mockTripServicer)(nil)
	_ handler.ActivityServicer  = (*mockActivityServicer)(nil)
	_ handler.ItineraryServicer = (*mockItineraryServicer)(nil)
	_ handler.WeatherServicer   = (*mockWeatherServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// testJWTs is shared across handler tests; the secret value is irrelevant as
// long as token generation and validation agree.
var testJWTs = auth.NewJWTService("handler-test-secret", "tripplanner-api")

// serverMocks bundles one mock per servicer so tests override just the
// methods they exercise.
type serverMocks struct {
	users       *mockUserServicer
	trips       *mockTripServicer
	activities  *mockActivityServicer
	itineraries *mockItineraryServicer
	weather     *mockWeatherServicer
}

// newTestRouter wires a Server with the given mocks into the real route
// tree, auth middleware included. This mirrors exactly how main.go wires it
// in production.
func newTestRouter(m serverMocks) http.Handler {
	if m.users == nil {
		m.users = &mockUserServicer{}
	}
	if m.trips == nil {
		m.trips = &mockTripServicer{}
	}
	if m.activities == nil {
		m.activities = &mockActivityServicer{}
	}
	if m.itineraries == nil {
		m.itineraries = &mockItineraryServicer{}
	}
	if m.weather == nil {
		m.weather = &mockWeatherServicer{}
	}
	srv := handler.NewServer(m.users, m.trips, m.activities, m.itineraries, m.weather, testJWTs)
	return srv.Router()
}

// authHeader returns a valid Authorization header value for the given account.
func authHeader(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := testJWTs.GenerateToken(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeBody unmarshals the response body into out.
func decodeBody(t *testing.T, body *bytes.Buffer, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body.Bytes(), out))
}

func tripFixture(userID uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       "Kyoto in Autumn",
		Destination: "Kyoto",
		StartDate:   time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 11, 4, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func activityFixture(tripID uuid.UUID) domain.Activity {
	return domain.Activity{
		ID:        uuid.New(),
		TripID:    tripID,
		DayNumber: 1,
		Title:     "Fushimi Inari hike",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}
