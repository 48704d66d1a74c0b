package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jsandin/tripplanner/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
//
// GetByID is deliberately NOT scoped by user: the service layer fetches the
// record first and compares owners itself, so that a missing trip and a
// foreign trip produce distinct errors (404 vs 403).
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByUserID returns all trips owned by the user, ordered by
	// start_date descending.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// Update applies the non-nil fields of the patch to an existing trip and
	// returns the updated record. Returns domain.ErrNotFound if no trip with
	// that ID exists. An empty patch returns the current record unchanged.
	Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)

	// Delete removes a trip by ID; owned activities cascade.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, title, destination, start_date, end_date, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, title, destination, start_date, end_date)
		VALUES (@user_id, @title, @destination, @start_date, @end_date)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"user_id":     trip.UserID,
		"title":       trip.Title,
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUserID: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByUserID: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUserID: rows: %w", err)
	}

	return trips, nil
}

// Update builds the SET clause from the patch's non-nil fields. Column names
// are fixed literals below; nothing caller-supplied is ever interpolated into
// the SQL text.
func (r *pgTripRepo) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	set := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"id": id}

	if patch.Title != nil {
		set = append(set, "title = @title")
		args["title"] = *patch.Title
	}
	if patch.Destination != nil {
		set = append(set, "destination = @destination")
		args["destination"] = *patch.Destination
	}
	if patch.StartDate != nil {
		set = append(set, "start_date = @start_date")
		args["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		set = append(set, "end_date = @end_date")
		args["end_date"] = *patch.EndDate
	}

	q := `
		UPDATE trips
		SET ` + strings.Join(set, ", ") + `
		WHERE id = @id
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and date conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		trip   domain.Trip
		id     pgtype.UUID
		userID pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
	)

	err := s.Scan(&id, &userID, &trip.Title, &trip.Destination, &start, &end, &trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	trip.ID = uuid.UUID(id.Bytes)
	trip.UserID = uuid.UUID(userID.Bytes)
	trip.StartDate = start.Time
	trip.EndDate = end.Time

	return trip, nil
}
