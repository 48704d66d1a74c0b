package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsandin/tripplanner/backend/internal/domain"
)

func TestActivityRepo_Create(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r, "acts@example.com")
	trip := createTrip(t, r, owner.ID)

	input := activityFixture(trip.ID)
	got, err := r.activities.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, trip.ID, got.TripID)
	assert.Equal(t, 1, got.DayNumber)
	assert.Equal(t, input.Title, got.Title)
	require.NotNil(t, got.Time)
	assert.Equal(t, "09:00", *got.Time)
	require.NotNil(t, got.Category)
	assert.Equal(t, domain.CategorySightseeing, *got.Category)
	require.NotNil(t, got.Cost)
	assert.InDelta(t, 25.50, *got.Cost, 0.001)
	assert.False(t, got.Completed, "completed should default to false")
}

func TestActivityRepo_Create_MinimalFields(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r, "acts@example.com")
	trip := createTrip(t, r, owner.ID)

	got, err := r.activities.Create(ctx, domain.Activity{
		TripID:    trip.ID,
		DayNumber: 2,
		Title:     "Free morning",
	})

	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.Time)
	assert.Nil(t, got.Category)
	assert.Nil(t, got.Location)
	assert.Nil(t, got.Cost, "absent cost should round-trip as NULL, not 0")
	assert.Nil(t, got.Notes)
}

func TestActivityRepo_ListByTripID_Ordering(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r, "acts@example.com")
	trip := createTrip(t, r, owner.ID)

	// Insert out of order: day 2 timed, day 1 untimed, day 1 timed.
	day2 := activityFixture(trip.ID)
	day2.DayNumber = 2
	day2.Title = "Day two"
	_, err := r.activities.Create(ctx, day2)
	require.NoError(t, err)

	untimed := domain.Activity{TripID: trip.ID, DayNumber: 1, Title: "Untimed"}
	_, err = r.activities.Create(ctx, untimed)
	require.NoError(t, err)

	timed := activityFixture(trip.ID)
	timed.Title = "Timed"
	_, err = r.activities.Create(ctx, timed)
	require.NoError(t, err)

	got, err := r.activities.ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 3)
	// day_number first, then time with NULLs last.
	assert.Equal(t, "Timed", got[0].Title)
	assert.Equal(t, "Untimed", got[1].Title)
	assert.Equal(t, "Day two", got[2].Title)
}

func TestActivityRepo_ListByTripAndDay(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r, "acts@example.com")
	trip := createTrip(t, r, owner.ID)

	day1 := activityFixture(trip.ID)
	_, err := r.activities.Create(ctx, day1)
	require.NoError(t, err)

	day3 := activityFixture(trip.ID)
	day3.DayNumber = 3
	_, err = r.activities.Create(ctx, day3)
	require.NoError(t, err)

	got, err := r.activities.ListByTripAndDay(ctx, trip.ID, 3)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].DayNumber)
}

func TestActivityRepo_Update(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r, "acts@example.com")
	trip := createTrip(t, r, owner.ID)
	created, err := r.activities.Create(ctx, activityFixture(trip.ID))
	require.NoError(t, err)

	got, err := r.activities.Update(ctx, created.ID, domain.ActivityPatch{
		DayNumber: intPtr(4),
		Cost:      floatPtr(99.99),
		Notes:     strPtr("bring cash"),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, got.DayNumber)
	require.NotNil(t, got.Cost)
	assert.InDelta(t, 99.99, *got.Cost, 0.001)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "bring cash", *got.Notes)
	// Untouched fields survive.
	assert.Equal(t, created.Title, got.Title)
	require.NotNil(t, got.Time)
	assert.Equal(t, "09:00", *got.Time)
}

func TestActivityRepo_Update_NotFound(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	_, err := r.activities.Update(ctx, uuid.New(), domain.ActivityPatch{Title: strPtr("ghost")})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityRepo_ToggleCompleted(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r, "acts@example.com")
	trip := createTrip(t, r, owner.ID)
	created, err := r.activities.Create(ctx, activityFixture(trip.ID))
	require.NoError(t, err)
	require.False(t, created.Completed)

	got, err := r.activities.ToggleCompleted(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	got, err = r.activities.ToggleCompleted(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed, "second toggle flips back")
}

func TestActivityRepo_Delete(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r, "acts@example.com")
	trip := createTrip(t, r, owner.ID)
	created, err := r.activities.Create(ctx, activityFixture(trip.ID))
	require.NoError(t, err)

	err = r.activities.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = r.activities.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityRepo_StatsByTripID(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r, "acts@example.com")
	trip := createTrip(t, r, owner.ID)

	a1 := activityFixture(trip.ID)
	a1.Cost = floatPtr(10.25)
	first, err := r.activities.Create(ctx, a1)
	require.NoError(t, err)

	a2 := activityFixture(trip.ID)
	a2.DayNumber = 2
	a2.Cost = floatPtr(5.50)
	_, err = r.activities.Create(ctx, a2)
	require.NoError(t, err)

	a3 := domain.Activity{TripID: trip.ID, DayNumber: 2, Title: "No cost"}
	_, err = r.activities.Create(ctx, a3)
	require.NoError(t, err)

	_, err = r.activities.ToggleCompleted(ctx, first.ID)
	require.NoError(t, err)

	got, err := r.activities.StatsByTripID(ctx, trip.ID)

	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalActivities)
	assert.Equal(t, 1, got.CompletedActivities)
	assert.InDelta(t, 15.75, got.TotalCost, 0.001)
	assert.Equal(t, 2, got.DaysWithActivities)
}

func TestActivityRepo_StatsByTripID_Empty(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	owner := createUser(t, r, "acts@example.com")
	trip := createTrip(t, r, owner.ID)

	got, err := r.activities.StatsByTripID(ctx, trip.ID)

	require.NoError(t, err)
	assert.Zero(t, got.TotalActivities)
	assert.Zero(t, got.CompletedActivities)
	assert.Zero(t, got.TotalCost)
	assert.Zero(t, got.DaysWithActivities)
}
