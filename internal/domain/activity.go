package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity categories. Free-form input is rejected by the service; NULL is
// allowed (uncategorized).
const (
	CategorySightseeing   = "sightseeing"
	CategoryFood          = "food"
	CategoryTransport     = "transport"
	CategoryAccommodation = "accommodation"
	CategoryEntertainment = "entertainment"
	CategoryShopping      = "shopping"
	CategoryOutdoor       = "outdoor"
	CategoryOther         = "other"
)

// Categories lists all valid activity categories.
var Categories = []string{
	CategorySightseeing,
	CategoryFood,
	CategoryTransport,
	CategoryAccommodation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryOutdoor,
	CategoryOther,
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// MaxActivityCost is the upper bound accepted for a single activity's cost.
const MaxActivityCost = 999999

// Activity is a single itinerary item attached to a trip day.
//
// DayNumber is 1-indexed and caller-supplied; storage does not validate it
// against the trip's span. The itinerary computation excludes activities
// whose day number falls outside [1, span] from every day bucket, but they
// remain retrievable and editable by ID.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	DayNumber   int       `json:"day_number"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Time        *string   `json:"time,omitempty"` // "HH:MM", local to the destination
	Category    *string   `json:"category,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Cost        *float64  `json:"cost,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CostValue returns the activity's cost, treating an absent cost as 0.
func (a Activity) CostValue() float64 {
	if a.Cost == nil {
		return 0
	}
	return *a.Cost
}

// ActivityPatch lists exactly the mutable fields of an activity. Nil fields
// are left untouched. Completed is deliberately absent: completion flips only
// through the dedicated toggle operation.
type ActivityPatch struct {
	DayNumber   *int     `json:"day_number,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Time        *string  `json:"time,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Cost        *float64 `json:"cost,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p ActivityPatch) Empty() bool {
	return p.DayNumber == nil && p.Title == nil && p.Description == nil &&
		p.Time == nil && p.Category == nil && p.Location == nil &&
		p.Cost == nil && p.Notes == nil
}
