package domain

import "math"

// DayItinerary is one calendar day of a trip: the 1-indexed day number, its
// concrete date, the activities scheduled for it (storage order preserved:
// day_number, time with nulls last, id), and the summed cost of those
// activities. Derived on every request, never persisted.
type DayItinerary struct {
	DayNumber  int        `json:"day_number"`
	Date       string     `json:"date"` // ISO calendar date, "2006-01-02"
	Activities []Activity `json:"activities"`
	TotalCost  float64    `json:"total_cost"`
}

// Itinerary is the assembled view of a trip: one DayItinerary per calendar
// day in the trip's span, plus trip-level rollups.
//
// TotalActivities counts every activity on the trip, including any whose
// day_number falls outside the span. TotalCost sums in-range day buckets
// only. Weather is nil when the overlay was not requested or could not be
// fetched; WeatherError carries the degradation reason in the latter case so
// callers can tell "no weather asked for" from "weather unavailable".
type Itinerary struct {
	Trip            Trip           `json:"trip"`
	Days            []DayItinerary `json:"days"`
	TotalActivities int            `json:"total_activities"`
	TotalCost       float64        `json:"total_cost"`
	Weather         *TripForecast  `json:"weather,omitempty"`
	WeatherError    string         `json:"weather_error,omitempty"`
}

// TripForecast is the weather overlay aligned positionally with the
// itinerary: Forecast[i] describes Days[i]. Note is set when the requested
// horizon exceeded the provider's maximum and fewer days came back.
type TripForecast struct {
	City     string        `json:"city"`
	Country  string        `json:"country"`
	Forecast []ForecastDay `json:"forecast"`
	Note     string        `json:"note,omitempty"`
}

// ForecastDay is one calendar day of provider weather, already collapsed
// from sub-daily samples and normalized. Temperatures are whole degrees
// Celsius; Rain and Snow default to 0 when the provider omits them.
type ForecastDay struct {
	Date        string  `json:"date"` // "2006-01-02"
	Temp        int     `json:"temp"`
	TempMin     int     `json:"temp_min"`
	TempMax     int     `json:"temp_max"`
	FeelsLike   int     `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
	Clouds      int     `json:"clouds"`
	Rain        float64 `json:"rain"`
	Snow        float64 `json:"snow"`
}

// ActivityStats is the per-trip activity summary view.
type ActivityStats struct {
	TotalActivities     int     `json:"total_activities"`
	CompletedActivities int     `json:"completed_activities"`
	TotalCost           float64 `json:"total_cost"`
	DaysWithActivities  int     `json:"days_with_activities"`
}

// RoundCost rounds a cost sum to whole cents. Applied at every rollup
// boundary so per-day sums and the trip total agree exactly.
func RoundCost(v float64) float64 {
	return math.Round(v*100) / 100
}
