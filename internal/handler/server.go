// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server; methods are split into resource files
// (auth.go, trip.go, activity.go, itinerary.go, weather.go) but share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jsandin/tripplanner/backend/internal/auth"
	"github.com/jsandin/tripplanner/backend/internal/domain"
	"github.com/jsandin/tripplanner/backend/internal/middleware"
	"github.com/jsandin/tripplanner/backend/internal/service"
	"github.com/jsandin/tripplanner/backend/spec"
)

// The servicer interfaces below define exactly the business operations each
// handler depends on. Defining them here, in the consumer package, follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.

// UserServicer covers registration and login.
type UserServicer interface {
	Register(ctx context.Context, email, password, name string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
}

// TripServicer covers trip CRUD, all ownership-gated.
type TripServicer interface {
	Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	GetWithActivities(ctx context.Context, tripID, userID uuid.UUID) (service.TripWithActivities, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	Update(ctx context.Context, tripID, userID uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, tripID, userID uuid.UUID) error
}

// ActivityServicer covers activity CRUD and the completion toggle.
type ActivityServicer interface {
	Create(ctx context.Context, userID uuid.UUID, activity domain.Activity) (domain.Activity, error)
	ListByDay(ctx context.Context, tripID, userID uuid.UUID, dayNumber int) ([]domain.Activity, error)
	Update(ctx context.Context, activityID, userID uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error)
	ToggleCompleted(ctx context.Context, activityID, userID uuid.UUID) (domain.Activity, error)
	Delete(ctx context.Context, activityID, userID uuid.UUID) error
}

// ItineraryServicer covers the assembled itinerary and the stats view.
type ItineraryServicer interface {
	Build(ctx context.Context, tripID, userID uuid.UUID, includeWeather bool) (domain.Itinerary, error)
	Stats(ctx context.Context, tripID, userID uuid.UUID) (domain.ActivityStats, error)
}

// WeatherServicer covers the standalone forecast endpoints.
type WeatherServicer interface {
	Forecast(ctx context.Context, userID uuid.UUID, destination string, days int) (domain.TripForecast, error)
	Current(ctx context.Context, userID uuid.UUID, destination string) (domain.ForecastDay, error)
}

// Server holds every handler dependency. Methods live in resource-specific
// files but all operate on this struct.
type Server struct {
	users       UserServicer
	trips       TripServicer
	activities  ActivityServicer
	itineraries ItineraryServicer
	weather     WeatherServicer
	jwts        *auth.JWTService
}

// NewServer constructs the Server with all its dependencies.
func NewServer(users UserServicer, trips TripServicer, activities ActivityServicer, itineraries ItineraryServicer, weather WeatherServicer, jwts *auth.JWTService) *Server {
	return &Server{
		users:       users,
		trips:       trips,
		activities:  activities,
		itineraries: itineraries,
		weather:     weather,
		jwts:        jwts,
	}
}

// Router assembles the full route tree. Everything under /api except the
// auth endpoints sits behind the bearer-token middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.NewAuthHandler(s.jwts))

			r.Route("/trips", func(r chi.Router) {
				r.Get("/", s.ListTrips)
				r.Post("/", s.CreateTrip)
				r.Get("/{id}", s.GetTrip)
				r.Put("/{id}", s.UpdateTrip)
				r.Delete("/{id}", s.DeleteTrip)
			})

			r.Route("/activities", func(r chi.Router) {
				r.Post("/", s.CreateActivity)
				r.Get("/trip/{tripID}/day/{day}", s.ListActivitiesByDay)
				r.Put("/{id}", s.UpdateActivity)
				r.Patch("/{id}/toggle", s.ToggleActivity)
				r.Delete("/{id}", s.DeleteActivity)
			})

			r.Route("/itinerary", func(r chi.Router) {
				r.Get("/{tripID}", s.GetItinerary)
				r.Get("/{tripID}/stats", s.GetItineraryStats)
			})

			r.Route("/weather", func(r chi.Router) {
				r.Get("/forecast/{destination}", s.GetForecast)
				r.Get("/current/{destination}", s.GetCurrentWeather)
			})
		})
	})

	return r
}
