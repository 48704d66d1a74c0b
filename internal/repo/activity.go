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

// ActivityRepo defines the persistence operations for Activities.
//
// Reads are by primary key or by trip; ownership is derived in the service
// layer by walking activity → trip → user, so nothing here is user-scoped.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity by its UUID primary key.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// ListByTripID returns all activities for a trip ordered by day_number,
	// then time with NULLs last, then id. The itinerary computation relies
	// on this ordering being stable.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)

	// ListByTripAndDay returns the activities for one day of a trip, ordered
	// by time with NULLs last, then id.
	ListByTripAndDay(ctx context.Context, tripID uuid.UUID, dayNumber int) ([]domain.Activity, error)

	// Update applies the non-nil fields of the patch and returns the updated
	// record. Returns domain.ErrNotFound if the activity does not exist.
	// An empty patch returns the current record unchanged.
	Update(ctx context.Context, id uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error)

	// ToggleCompleted atomically flips the completed flag and returns the
	// updated record. Returns domain.ErrNotFound if the activity does not exist.
	ToggleCompleted(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// Delete removes an activity by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// StatsByTripID computes the aggregate activity summary for a trip in a
	// single query: total count, completed count, summed cost, and the number
	// of distinct days that have at least one activity.
	StatsByTripID(ctx context.Context, tripID uuid.UUID) (domain.ActivityStats, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `id, trip_id, day_number, title, description, time, category, location, cost, notes, completed, created_at, updated_at`

func (r *pgActivityRepo) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (trip_id, day_number, title, description, time, category, location, cost, notes)
		VALUES (@trip_id, @day_number, @title, @description, @time, @category, @location, @cost, @notes)
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"trip_id":     activity.TripID,
		"day_number":  activity.DayNumber,
		"title":       activity.Title,
		"description": activity.Description, // nil pointers become NULL
		"time":        activity.Time,
		"category":    activity.Category,
		"location":    activity.Location,
		"cost":        activity.Cost,
		"notes":       activity.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE trip_id = @trip_id
		ORDER BY day_number, time NULLS LAST, id`

	return r.list(ctx, "ListByTripID", q, pgx.NamedArgs{"trip_id": tripID})
}

func (r *pgActivityRepo) ListByTripAndDay(ctx context.Context, tripID uuid.UUID, dayNumber int) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE trip_id = @trip_id AND day_number = @day_number
		ORDER BY time NULLS LAST, id`

	return r.list(ctx, "ListByTripAndDay", q, pgx.NamedArgs{"trip_id": tripID, "day_number": dayNumber})
}

func (r *pgActivityRepo) list(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Activity, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.%s: scan: %w", op, err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.%s: rows: %w", op, err)
	}

	return activities, nil
}

// Update builds the SET clause from the patch's non-nil fields. Column names
// are fixed literals below; nothing caller-supplied is ever interpolated into
// the SQL text.
func (r *pgActivityRepo) Update(ctx context.Context, id uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	set := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"id": id}

	if patch.DayNumber != nil {
		set = append(set, "day_number = @day_number")
		args["day_number"] = *patch.DayNumber
	}
	if patch.Title != nil {
		set = append(set, "title = @title")
		args["title"] = *patch.Title
	}
	if patch.Description != nil {
		set = append(set, "description = @description")
		args["description"] = *patch.Description
	}
	if patch.Time != nil {
		set = append(set, "time = @time")
		args["time"] = *patch.Time
	}
	if patch.Category != nil {
		set = append(set, "category = @category")
		args["category"] = *patch.Category
	}
	if patch.Location != nil {
		set = append(set, "location = @location")
		args["location"] = *patch.Location
	}
	if patch.Cost != nil {
		set = append(set, "cost = @cost")
		args["cost"] = *patch.Cost
	}
	if patch.Notes != nil {
		set = append(set, "notes = @notes")
		args["notes"] = *patch.Notes
	}

	q := `
		UPDATE activities
		SET ` + strings.Join(set, ", ") + `
		WHERE id = @id
		RETURNING ` + activityColumns

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return result, nil
}

// ToggleCompleted flips the flag in a single statement so concurrent toggles
// never lose an update.
func (r *pgActivityRepo) ToggleCompleted(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET completed = NOT completed,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + activityColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.ToggleCompleted: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM activities WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgActivityRepo) StatsByTripID(ctx context.Context, tripID uuid.UUID) (domain.ActivityStats, error) {
	const q = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE completed),
			COALESCE(SUM(cost), 0),
			COUNT(DISTINCT day_number)
		FROM activities
		WHERE trip_id = @trip_id`

	var (
		stats domain.ActivityStats
		cost  pgtype.Numeric
	)
	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err := row.Scan(&stats.TotalActivities, &stats.CompletedActivities, &cost, &stats.DaysWithActivities); err != nil {
		return domain.ActivityStats{}, fmt.Errorf("repo.ActivityRepo.StatsByTripID: %w", err)
	}

	f, err := cost.Float64Value()
	if err != nil {
		return domain.ActivityStats{}, fmt.Errorf("repo.ActivityRepo.StatsByTripID: cost: %w", err)
	}
	stats.TotalCost = domain.RoundCost(f.Float64)

	return stats, nil
}

// scanActivity maps a single database row into a domain.Activity.
// Nullable columns scan into pointers; cost goes through pgtype.Numeric so a
// NULL stays nil instead of becoming 0.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a      domain.Activity
		id     pgtype.UUID
		tripID pgtype.UUID
		cost   pgtype.Numeric
	)

	err := s.Scan(&id, &tripID, &a.DayNumber, &a.Title, &a.Description, &a.Time,
		&a.Category, &a.Location, &cost, &a.Notes, &a.Completed, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)

	if cost.Valid {
		f, err := cost.Float64Value()
		if err != nil {
			return domain.Activity{}, err
		}
		v := f.Float64
		a.Cost = &v
	}

	return a, nil
}
