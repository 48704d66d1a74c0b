package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jsandin/tripplanner/backend/internal/domain"
	"github.com/jsandin/tripplanner/backend/internal/repo"
)

// Forecaster is the slice of the weather client the itinerary assembler
// depends on. Defined here, in the consumer package, so tests can inject a
// double without touching the real provider.
type Forecaster interface {
	ForecastForDestination(ctx context.Context, destination string, days int) (domain.TripForecast, error)
}

// WeatherBudget gates weather calls per caller identity before any provider
// traffic is issued.
type WeatherBudget interface {
	Allow(userID uuid.UUID) error
}

// ItineraryService computes the day-partitioned itinerary view and, when
// requested, overlays the destination forecast onto it.
type ItineraryService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
	forecaster Forecaster
	budget     WeatherBudget
}

// NewItineraryService constructs an ItineraryService. forecaster and budget
// may be nil only in tests that never request the weather overlay.
func NewItineraryService(trips repo.TripRepo, activities repo.ActivityRepo, forecaster Forecaster, budget WeatherBudget) *ItineraryService {
	return &ItineraryService{trips: trips, activities: activities, forecaster: forecaster, budget: budget}
}

// Build computes the full itinerary for an owned trip.
//
// The trip's span in days is derived from its inclusive date range at day
// granularity, minimum 1. Each activity is assigned to the day bucket
// matching its day_number; activities whose day_number falls outside
// [1, span] appear in no bucket but still count toward TotalActivities.
// Per-day and trip costs treat an absent cost as 0 and are rounded to cents
// at each rollup so the day sums and the trip total agree exactly.
//
// With includeWeather set, the destination forecast is fetched for the
// trip's span and aligned positionally: Forecast[i] overlays Days[i]. A
// weather failure of any kind — budget, provider, configuration — never
// fails the itinerary; it is downgraded to the WeatherError field.
//
// Ownership and not-found failures abort before any partitioning runs.
func (s *ItineraryService) Build(ctx context.Context, tripID, userID uuid.UUID, includeWeather bool) (domain.Itinerary, error) {
	trip, err := s.ownedTrip(ctx, tripID, userID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Build: %w", err)
	}

	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Build: %w", err)
	}

	itinerary := partition(trip, activities)

	if includeWeather {
		forecast, err := s.fetchWeather(ctx, trip, userID)
		if err != nil {
			itinerary.WeatherError = "weather unavailable: " + degradationReason(err)
		} else {
			itinerary.Weather = &forecast
		}
	}

	return itinerary, nil
}

// Stats returns the aggregate activity summary for an owned trip.
func (s *ItineraryService) Stats(ctx context.Context, tripID, userID uuid.UUID) (domain.ActivityStats, error) {
	if _, err := s.ownedTrip(ctx, tripID, userID); err != nil {
		return domain.ActivityStats{}, fmt.Errorf("service.ItineraryService.Stats: %w", err)
	}

	stats, err := s.activities.StatsByTripID(ctx, tripID)
	if err != nil {
		return domain.ActivityStats{}, fmt.Errorf("service.ItineraryService.Stats: %w", err)
	}
	return stats, nil
}

// partition is the day-partitioning engine: pure, deterministic, and fully
// recomputed on every request. Given the same trip and activity list it
// yields identical output.
func partition(trip domain.Trip, activities []domain.Activity) domain.Itinerary {
	span := trip.SpanDays()

	// Group once by day_number, preserving storage order within each day.
	byDay := make(map[int][]domain.Activity, span)
	for _, a := range activities {
		byDay[a.DayNumber] = append(byDay[a.DayNumber], a)
	}

	days := make([]domain.DayItinerary, 0, span)
	var totalCost float64
	for i := 1; i <= span; i++ {
		dayActivities := byDay[i]
		if dayActivities == nil {
			dayActivities = []domain.Activity{}
		}

		var dayCost float64
		for _, a := range dayActivities {
			dayCost += a.CostValue()
		}
		dayCost = domain.RoundCost(dayCost)
		totalCost += dayCost

		days = append(days, domain.DayItinerary{
			DayNumber:  i,
			Date:       trip.DateOfDay(i).Format("2006-01-02"),
			Activities: dayActivities,
			TotalCost:  dayCost,
		})
	}

	return domain.Itinerary{
		Trip:            trip,
		Days:            days,
		TotalActivities: len(activities),
		TotalCost:       domain.RoundCost(totalCost),
	}
}

// fetchWeather applies the local budget, then asks the provider for the
// trip's span. The budget check runs first so an exhausted caller never
// generates provider traffic.
func (s *ItineraryService) fetchWeather(ctx context.Context, trip domain.Trip, userID uuid.UUID) (domain.TripForecast, error) {
	if s.forecaster == nil {
		return domain.TripForecast{}, errors.New("weather not configured")
	}
	if s.budget != nil {
		if err := s.budget.Allow(userID); err != nil {
			return domain.TripForecast{}, err
		}
	}
	return s.forecaster.ForecastForDestination(ctx, trip.Destination, trip.SpanDays())
}

// ownedTrip is the ownership guard shared by Build and Stats.
func (s *ItineraryService) ownedTrip(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.UserID != userID {
		return domain.Trip{}, domain.ErrAccessDenied
	}
	return trip, nil
}

// degradationReason trims the wrapping prefixes off a weather-path error so
// the WeatherError field reads like a reason, not a stack trace.
func degradationReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return "request budget exhausted, try again shortly"
	case errors.Is(err, domain.ErrNotFound):
		return "destination could not be resolved"
	default:
		return err.Error()
	}
}
