package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: a planned journey to a destination over an
// inclusive range of calendar dates. Activities belong to a trip.
// UserID identifies the owning account; every read and mutation is gated on it.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SpanDays returns the inclusive number of calendar days the trip covers.
// Time-of-day components are ignored; a trip with equal start and end dates
// spans exactly one day. Never returns less than 1.
func (t Trip) SpanDays() int {
	start := atMidnightUTC(t.StartDate)
	end := atMidnightUTC(t.EndDate)
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// DateOfDay returns the calendar date of the 1-indexed day number.
func (t Trip) DateOfDay(dayNumber int) time.Time {
	return atMidnightUTC(t.StartDate).AddDate(0, 0, dayNumber-1)
}

func atMidnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TripPatch lists exactly the mutable fields of a trip. Nil fields are left
// untouched. The repo maps each field to a fixed column name; caller-supplied
// names never reach SQL.
type TripPatch struct {
	Title       *string    `json:"title,omitempty"`
	Destination *string    `json:"destination,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p TripPatch) Empty() bool {
	return p.Title == nil && p.Destination == nil && p.StartDate == nil && p.EndDate == nil
}
