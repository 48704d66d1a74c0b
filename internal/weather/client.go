// Package weather implements the forecast client for the trip planner.
// It resolves a free-text destination to coordinates through the provider's
// geocoding API, fetches the 3-hourly forecast, and collapses it to one
// normalized sample per calendar day.
//
// The provider's free tier caps the forecast horizon at five days; requests
// for more succeed with fewer days and an explanatory note rather than
// failing.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker"

	"github.com/jsandin/tripplanner/backend/internal/domain"
)

// ProviderMaxDays is the provider-side forecast horizon (free tier: 5 days
// of 3-hourly samples). Callers may request more; the client silently
// truncates and attaches a note.
const ProviderMaxDays = 5

// callTimeout bounds each individual HTTP call to the provider.
const callTimeout = 10 * time.Second

const (
	defaultGeoBaseURL = "https://api.openweathermap.org/geo/1.0"
	defaultAPIBaseURL = "https://api.openweathermap.org/data/2.5"
)

// Config carries the client's dependencies. Zero-value fields fall back to
// production defaults; tests override BaseURLs with an httptest server.
type Config struct {
	// APIKey is the provider credential. An empty key does not prevent
	// construction — every call fails with ErrMisconfigured — so the rest
	// of the application can boot without weather.
	APIKey string

	GeoBaseURL string
	APIBaseURL string

	HTTPClient *http.Client
}

// Client talks to the weather provider. Safe for concurrent use.
type Client struct {
	apiKey     string
	geoBaseURL string
	apiBaseURL string
	httpClient *http.Client

	geoBreaker      *gobreaker.CircuitBreaker
	forecastBreaker *gobreaker.CircuitBreaker
}

// NewClient constructs a Client from cfg, applying defaults for unset fields.
func NewClient(cfg Config) *Client {
	if cfg.GeoBaseURL == "" {
		cfg.GeoBaseURL = defaultGeoBaseURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: callTimeout}
	}

	return &Client{
		apiKey:          cfg.APIKey,
		geoBaseURL:      strings.TrimRight(cfg.GeoBaseURL, "/"),
		apiBaseURL:      strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient:      cfg.HTTPClient,
		geoBreaker:      newBreaker("weather-geocode"),
		forecastBreaker: newBreaker("weather-forecast"),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// maxDestinationLen bounds the free-text destination before any network call.
const maxDestinationLen = 200

// Geocoding is the provider's resolution of a free-text place name.
type Geocoding struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// ForecastForDestination resolves the destination and returns up to
// min(days, ProviderMaxDays) daily forecast entries in ascending date order.
//
// Returns domain.ErrValidation for bad input before any network call,
// domain.ErrNotFound when the destination cannot be resolved, and the
// package's upstream sentinels for provider failures.
func (c *Client) ForecastForDestination(ctx context.Context, destination string, days int) (domain.TripForecast, error) {
	if err := validateRequest(destination, days); err != nil {
		return domain.TripForecast{}, err
	}
	if c.apiKey == "" {
		return domain.TripForecast{}, fmt.Errorf("weather.Client.ForecastForDestination: missing API key: %w", ErrMisconfigured)
	}

	geo, err := c.geocode(ctx, destination)
	if err != nil {
		return domain.TripForecast{}, fmt.Errorf("weather.Client.ForecastForDestination: %w", err)
	}

	forecast, err := c.fetchForecast(ctx, geo.Lat, geo.Lon, days)
	if err != nil {
		return domain.TripForecast{}, fmt.Errorf("weather.Client.ForecastForDestination: %w", err)
	}

	result := domain.TripForecast{
		City:     geo.Name,
		Country:  geo.Country,
		Forecast: forecast,
	}
	if days > ProviderMaxDays {
		result.Note = fmt.Sprintf("forecast limited to %d days (provider maximum)", ProviderMaxDays)
	}
	return result, nil
}

// CurrentForDestination returns today's weather for the destination.
func (c *Client) CurrentForDestination(ctx context.Context, destination string) (domain.ForecastDay, error) {
	if err := validateRequest(destination, 1); err != nil {
		return domain.ForecastDay{}, err
	}
	if c.apiKey == "" {
		return domain.ForecastDay{}, fmt.Errorf("weather.Client.CurrentForDestination: missing API key: %w", ErrMisconfigured)
	}

	geo, err := c.geocode(ctx, destination)
	if err != nil {
		return domain.ForecastDay{}, fmt.Errorf("weather.Client.CurrentForDestination: %w", err)
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", geo.Lat))
	q.Set("lon", fmt.Sprintf("%f", geo.Lon))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	var payload currentPayload
	if err := c.getJSON(ctx, c.forecastBreaker, c.apiBaseURL+"/weather?"+q.Encode(), &payload); err != nil {
		return domain.ForecastDay{}, fmt.Errorf("weather.Client.CurrentForDestination: %w", err)
	}

	day, err := normalizeCurrent(payload)
	if err != nil {
		return domain.ForecastDay{}, fmt.Errorf("weather.Client.CurrentForDestination: %w", err)
	}
	return day, nil
}

func validateRequest(destination string, days int) error {
	if strings.TrimSpace(destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if len(destination) > maxDestinationLen {
		return fmt.Errorf("%w: destination exceeds %d characters", domain.ErrValidation, maxDestinationLen)
	}
	if days < 1 {
		return fmt.Errorf("%w: days must be a positive integer", domain.ErrValidation)
	}
	return nil
}

// geocode resolves a place name to its first/best provider match.
func (c *Client) geocode(ctx context.Context, destination string) (Geocoding, error) {
	q := url.Values{}
	q.Set("q", destination)
	q.Set("limit", "1")
	q.Set("appid", c.apiKey)

	var matches []Geocoding
	if err := c.getJSON(ctx, c.geoBreaker, c.geoBaseURL+"/direct?"+q.Encode(), &matches); err != nil {
		return Geocoding{}, err
	}
	if len(matches) == 0 {
		return Geocoding{}, fmt.Errorf("no coordinates for %q: %w", destination, domain.ErrNotFound)
	}
	return matches[0], nil
}

// fetchForecast retrieves the 3-hourly forecast and collapses it to daily
// entries. The cnt parameter requests 8 samples per day, capped at the
// provider maximum of 40.
func (c *Client) fetchForecast(ctx context.Context, lat, lon float64, days int) ([]domain.ForecastDay, error) {
	cnt := days * 8
	if cnt > ProviderMaxDays*8 {
		cnt = ProviderMaxDays * 8
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("cnt", fmt.Sprintf("%d", cnt))

	var payload forecastPayload
	if err := c.getJSON(ctx, c.forecastBreaker, c.apiBaseURL+"/forecast?"+q.Encode(), &payload); err != nil {
		return nil, err
	}

	forecast, err := collapseDaily(payload.List)
	if err != nil {
		return nil, err
	}

	limit := days
	if limit > ProviderMaxDays {
		limit = ProviderMaxDays
	}
	if len(forecast) > limit {
		forecast = forecast[:limit]
	}
	return forecast, nil
}

// getJSON performs a GET with retry, per-call timeout, and the circuit
// breaker, decoding a 2xx JSON body into out. Retryable failures (timeouts,
// unreachable host, provider 429/5xx, open circuit) are retried with bounded
// exponential backoff; everything else fails immediately.
func (c *Client) getJSON(ctx context.Context, cb *gobreaker.CircuitBreaker, rawURL string, out any) error {
	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.getJSONOnce(ctx, cb, rawURL, out)
		if errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, domain.ErrRateLimited) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) getJSONOnce(ctx context.Context, cb *gobreaker.CircuitBreaker, rawURL string, out any) error {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	body, err := cb.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(callCtx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: provider returned %d", ErrUpstreamUnavailable, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, classifyStatus(resp)
		}

		var decoded json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, fmt.Errorf("%w: decode: %v", ErrUpstreamDataInvalid, err)
		}
		return decoded, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: circuit open", ErrUpstreamUnavailable)
		}
		if callCtx.Err() != nil && ctx.Err() == nil {
			return fmt.Errorf("%w: timeout", ErrUpstreamUnavailable)
		}
		return err
	}

	return json.Unmarshal(body.(json.RawMessage), out)
}

// classifyStatus maps non-200, non-5xx provider statuses onto the failure
// taxonomy, carrying the provider's own message where one is present.
func classifyStatus(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: credential rejected: %s", ErrMisconfigured, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, domain.ErrNotFound)
	case http.StatusTooManyRequests:
		return fmt.Errorf("provider rate limit: %w", domain.ErrRateLimited)
	default:
		return fmt.Errorf("%w: %d %s", ErrUpstreamRejected, resp.StatusCode, msg)
	}
}
