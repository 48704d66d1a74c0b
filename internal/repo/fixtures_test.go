package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jsandin/tripplanner/backend/internal/domain"
	"github.com/jsandin/tripplanner/backend/internal/repo"
	"github.com/jsandin/tripplanner/backend/testutil"
)

// testRepos bundles all three repositories backed by one transaction, since
// trips need a user row and activities need a trip row to satisfy foreign keys.
type testRepos struct {
	users      repo.UserRepo
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// newTestRepos opens a transaction against the test database and returns
// repositories backed by that transaction. The transaction is automatically
// rolled back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; TestMain applies migrations.
func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return testRepos{
		users:      repo.NewUserRepo(tx),
		trips:      repo.NewTripRepo(tx),
		activities: repo.NewActivityRepo(tx),
	}
}

// createUser inserts a user with defaults and returns the persisted record.
func createUser(t *testing.T, r testRepos, email string) domain.User {
	t.Helper()
	u, err := r.users.Create(context.Background(), domain.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$10$fixturehashfixturehashfixturehashfixturehash",
	})
	require.NoError(t, err, "create user fixture")
	return u
}

// createTrip inserts a trip for the user with defaults and returns the
// persisted record. Callers needing specific dates can update afterwards.
func createTrip(t *testing.T, r testRepos, userID uuid.UUID) domain.Trip {
	t.Helper()
	trip, err := r.trips.Create(context.Background(), domain.Trip{
		UserID:      userID,
		Title:       "Tokyo Adventure",
		Destination: "Tokyo",
		StartDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err, "create trip fixture")
	return trip
}

// activityFixture returns a domain.Activity with sensible defaults.
// Callers can override individual fields after calling this function.
func activityFixture(tripID uuid.UUID) domain.Activity {
	timeOfDay := "09:00"
	category := domain.CategorySightseeing
	cost := 25.50
	return domain.Activity{
		TripID:    tripID,
		DayNumber: 1,
		Title:     "Visit Senso-ji Temple",
		Time:      &timeOfDay,
		Category:  &category,
		Cost:      &cost,
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }
