package weather

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jsandin/tripplanner/backend/internal/domain"
)

// Budget is the local admission-control layer in front of the provider: a
// token bucket per account plus a lower-frequency global bucket. Exhausting
// either fails fast with domain.ErrRateLimited before any provider traffic,
// so one account's retries cannot amplify into a provider-wide lockout.
//
// Safe for concurrent use.
type Budget struct {
	mu      sync.Mutex
	perUser map[uuid.UUID]*rate.Limiter
	global  *rate.Limiter

	userRate  rate.Limit
	userBurst int
}

// Per-account: 30 calls/min, burst 10. Global: 60 calls/min, burst 20.
const (
	userCallsPerMinute   = 30
	userBurst            = 10
	globalCallsPerMinute = 60
	globalBurst          = 20
)

// NewBudget constructs a Budget with the default rates.
func NewBudget() *Budget {
	return &Budget{
		perUser:   make(map[uuid.UUID]*rate.Limiter),
		global:    rate.NewLimiter(rate.Limit(globalCallsPerMinute)/60, globalBurst),
		userRate:  rate.Limit(userCallsPerMinute) / 60,
		userBurst: userBurst,
	}
}

// Allow consumes one token from the caller's bucket and the global bucket.
// Returns domain.ErrRateLimited when either is empty. The per-user token is
// taken first so a single caller hitting their own limit never drains the
// global bucket.
func (b *Budget) Allow(userID uuid.UUID) error {
	b.mu.Lock()
	limiter, ok := b.perUser[userID]
	if !ok {
		limiter = rate.NewLimiter(b.userRate, b.userBurst)
		b.perUser[userID] = limiter
	}
	b.mu.Unlock()

	if !limiter.Allow() {
		return fmt.Errorf("weather request budget exhausted for account: %w", domain.ErrRateLimited)
	}
	if !b.global.Allow() {
		return fmt.Errorf("global weather request budget exhausted: %w", domain.ErrRateLimited)
	}
	return nil
}
