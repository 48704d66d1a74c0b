package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jsandin/tripplanner/backend/internal/domain"
	"github.com/jsandin/tripplanner/backend/internal/repo"
)

// ActivityService implements business logic for Activity operations.
// It holds both repos because ownership of an activity is derived by walking
// activity → trip → owner; there is no ownership column on activities.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// Create validates the activity, verifies the caller owns the parent trip,
// then persists. day_number is range-checked for positivity only — a value
// beyond the trip's span is stored as-is and simply never surfaces in the
// itinerary view.
func (s *ActivityService) Create(ctx context.Context, userID uuid.UUID, activity domain.Activity) (domain.Activity, error) {
	if err := s.guardTrip(ctx, activity.TripID, userID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	if err := validateActivity(activity); err != nil {
		return domain.Activity{}, err
	}

	result, err := s.activities.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// GetOwned resolves the activity and re-runs the trip ownership check on its
// parent: a missing activity is ErrNotFound, an activity under someone
// else's trip is ErrAccessDenied.
func (s *ActivityService) GetOwned(ctx context.Context, activityID, userID uuid.UUID) (domain.Activity, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.GetOwned: %w", err)
	}
	if err := s.guardTrip(ctx, activity.TripID, userID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.GetOwned: %w", err)
	}
	return activity, nil
}

// ListByDay returns the activities for one day of an owned trip, ordered by
// time with missing times last. Always returns a non-nil slice.
func (s *ActivityService) ListByDay(ctx context.Context, tripID, userID uuid.UUID, dayNumber int) ([]domain.Activity, error) {
	if dayNumber < 1 {
		return nil, fmt.Errorf("%w: day number must be at least 1", domain.ErrValidation)
	}
	if err := s.guardTrip(ctx, tripID, userID); err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}

	activities, err := s.activities.ListByTripAndDay(ctx, tripID, dayNumber)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}
	if activities == nil {
		return []domain.Activity{}, nil
	}
	return activities, nil
}

// Update applies a typed patch to an owned activity.
func (s *ActivityService) Update(ctx context.Context, activityID, userID uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error) {
	current, err := s.GetOwned(ctx, activityID, userID)
	if err != nil {
		return domain.Activity{}, err
	}

	if err := validateActivity(applyActivityPatch(current, patch)); err != nil {
		return domain.Activity{}, err
	}

	result, err := s.activities.Update(ctx, activityID, patch)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return result, nil
}

// ToggleCompleted atomically flips the completed flag of an owned activity.
// This is a dedicated operation, not a patch field, so two concurrent
// toggles can never write the same value.
func (s *ActivityService) ToggleCompleted(ctx context.Context, activityID, userID uuid.UUID) (domain.Activity, error) {
	if _, err := s.GetOwned(ctx, activityID, userID); err != nil {
		return domain.Activity{}, err
	}

	result, err := s.activities.ToggleCompleted(ctx, activityID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.ToggleCompleted: %w", err)
	}
	return result, nil
}

// Delete removes an owned activity.
func (s *ActivityService) Delete(ctx context.Context, activityID, userID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, activityID, userID); err != nil {
		return err
	}
	if err := s.activities.Delete(ctx, activityID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

// guardTrip is the parent-walk half of the ownership check.
func (s *ActivityService) guardTrip(ctx context.Context, tripID, userID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.UserID != userID {
		return domain.ErrAccessDenied
	}
	return nil
}

// applyActivityPatch returns the activity as it would look after the patch.
func applyActivityPatch(a domain.Activity, patch domain.ActivityPatch) domain.Activity {
	if patch.DayNumber != nil {
		a.DayNumber = *patch.DayNumber
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = patch.Description
	}
	if patch.Time != nil {
		a.Time = patch.Time
	}
	if patch.Category != nil {
		a.Category = patch.Category
	}
	if patch.Location != nil {
		a.Location = patch.Location
	}
	if patch.Cost != nil {
		a.Cost = patch.Cost
	}
	if patch.Notes != nil {
		a.Notes = patch.Notes
	}
	return a
}

// validateActivity enforces business rules common to Create and Update.
//   - Title must be non-empty (whitespace-only rejected).
//   - day_number must be at least 1. It is deliberately NOT checked against
//     the trip's span; see the itinerary exclusion rule.
//   - category, when present, must be one of the known categories.
//   - cost, when present, must be in [0, MaxActivityCost].
func validateActivity(a domain.Activity) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if a.DayNumber < 1 {
		return fmt.Errorf("%w: day_number must be at least 1", domain.ErrValidation)
	}
	if a.Category != nil && !domain.ValidCategory(*a.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, *a.Category)
	}
	if a.Cost != nil && (*a.Cost < 0 || *a.Cost > domain.MaxActivityCost) {
		return fmt.Errorf("%w: cost must be between 0 and %d", domain.ErrValidation, domain.MaxActivityCost)
	}
	return nil
}
