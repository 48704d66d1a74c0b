package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jsandin/tripplanner/backend/internal/domain"
)

// WeatherClient is the full provider surface the standalone weather
// endpoints depend on.
type WeatherClient interface {
	Forecaster
	CurrentForDestination(ctx context.Context, destination string) (domain.ForecastDay, error)
}

// WeatherService fronts the provider client with the local request budget
// for the standalone weather endpoints. Unlike the itinerary overlay, a
// failure here is the whole response, so errors propagate with their kind
// intact.
type WeatherService struct {
	client WeatherClient
	budget WeatherBudget
}

// NewWeatherService constructs a WeatherService.
func NewWeatherService(client WeatherClient, budget WeatherBudget) *WeatherService {
	return &WeatherService{client: client, budget: budget}
}

// Forecast returns the multi-day forecast for a destination, budget permitting.
func (s *WeatherService) Forecast(ctx context.Context, userID uuid.UUID, destination string, days int) (domain.TripForecast, error) {
	if err := s.budget.Allow(userID); err != nil {
		return domain.TripForecast{}, fmt.Errorf("service.WeatherService.Forecast: %w", err)
	}

	forecast, err := s.client.ForecastForDestination(ctx, destination, days)
	if err != nil {
		return domain.TripForecast{}, fmt.Errorf("service.WeatherService.Forecast: %w", err)
	}
	return forecast, nil
}

// Current returns today's weather for a destination, budget permitting.
func (s *WeatherService) Current(ctx context.Context, userID uuid.UUID, destination string) (domain.ForecastDay, error) {
	if err := s.budget.Allow(userID); err != nil {
		return domain.ForecastDay{}, fmt.Errorf("service.WeatherService.Current: %w", err)
	}

	day, err := s.client.CurrentForDestination(ctx, destination)
	if err != nil {
		return domain.ForecastDay{}, fmt.Errorf("service.WeatherService.Current: %w", err)
	}
	return day, nil
}
