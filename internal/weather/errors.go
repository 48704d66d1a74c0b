package weather

import "errors"

// Sentinel errors for the provider-facing failure taxonomy. NotFound and
// RateLimited reuse the domain sentinels so handlers classify them the same
// way as storage failures; the four below are weather-specific.
var (
	// ErrMisconfigured means the provider credential is absent or rejected.
	// Operator-fixable; never retried automatically. Handlers map to 503.
	ErrMisconfigured = errors.New("weather provider misconfigured")

	// ErrUpstreamUnavailable covers timeouts, unreachable hosts, provider
	// 5xx responses, and an open circuit breaker. Retryable. Handlers map
	// to 502.
	ErrUpstreamUnavailable = errors.New("weather provider unavailable")

	// ErrUpstreamRejected covers provider 4xx responses other than 401/404/429.
	// Not retryable without changing the input. Handlers map to 502.
	ErrUpstreamRejected = errors.New("weather provider rejected request")

	// ErrUpstreamDataInvalid means the provider responded but every sample
	// failed to normalize. Handlers map to 502.
	ErrUpstreamDataInvalid = errors.New("weather provider returned invalid data")
)
