package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jsandin/tripplanner/backend/internal/domain"
	"github.com/jsandin/tripplanner/backend/internal/repo"
)

// TripService implements business logic for Trip operations. Every read and
// mutation passes through the ownership guard: a missing trip yields
// domain.ErrNotFound, an existing trip owned by someone else yields
// domain.ErrAccessDenied. The two are never conflated.
type TripService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, activities repo.ActivityRepo) *TripService {
	return &TripService{trips: trips, activities: activities}
}

// TripWithActivities is a trip plus its full activity list in storage order.
type TripWithActivities struct {
	domain.Trip
	Activities []domain.Activity `json:"activities"`
}

// Create validates and persists a new trip for the given owner.
func (s *TripService) Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	trip.UserID = userID
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetOwned returns the trip if it exists and belongs to userID.
// This is the ownership guard; activity operations reuse it via the parent walk.
func (s *TripService) GetOwned(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetOwned: %w", err)
	}
	if trip.UserID != userID {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetOwned: %w", domain.ErrAccessDenied)
	}
	return trip, nil
}

// GetWithActivities returns an owned trip with all its activities embedded.
// Always returns a non-nil activity slice so callers can safely range over it.
func (s *TripService) GetWithActivities(ctx context.Context, tripID, userID uuid.UUID) (TripWithActivities, error) {
	trip, err := s.GetOwned(ctx, tripID, userID)
	if err != nil {
		return TripWithActivities{}, err
	}

	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return TripWithActivities{}, fmt.Errorf("service.TripService.GetWithActivities: %w", err)
	}
	if activities == nil {
		activities = []domain.Activity{}
	}

	return TripWithActivities{Trip: trip, Activities: activities}, nil
}

// List returns all trips owned by the user, most recent start date first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.trips.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update applies a typed patch to an owned trip. The patched result must
// still satisfy the trip invariants (non-empty title/destination, end date
// not before start date).
func (s *TripService) Update(ctx context.Context, tripID, userID uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	current, err := s.GetOwned(ctx, tripID, userID)
	if err != nil {
		return domain.Trip{}, err
	}

	if err := validateTrip(applyTripPatch(current, patch)); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Update(ctx, tripID, patch)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an owned trip; its activities cascade in storage.
func (s *TripService) Delete(ctx context.Context, tripID, userID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, tripID, userID); err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// applyTripPatch returns the trip as it would look after the patch, for
// validating invariants that span patched and unpatched fields.
func applyTripPatch(trip domain.Trip, patch domain.TripPatch) domain.Trip {
	if patch.Title != nil {
		trip.Title = *patch.Title
	}
	if patch.Destination != nil {
		trip.Destination = *patch.Destination
	}
	if patch.StartDate != nil {
		trip.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		trip.EndDate = *patch.EndDate
	}
	return trip
}

// validateTrip enforces business rules common to Create and Update.
//   - Title and destination must be non-empty (whitespace-only rejected).
//   - Dates must be set and end_date must not be before start_date.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
