package weather

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jsandin/tripplanner/backend/internal/domain"
)

// forecastPayload is the provider's 3-hourly forecast response, reduced to
// the fields this system consumes.
type forecastPayload struct {
	List []forecastSample `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

// forecastSample is one timestamped provider sample. DtTxt is
// "2006-01-02 15:04:05" in UTC.
type forecastSample struct {
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp      *float64 `json:"temp"`
		TempMin   *float64 `json:"temp_min"`
		TempMax   *float64 `json:"temp_max"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  int      `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Rain struct {
		ThreeH float64 `json:"3h"`
	} `json:"rain"`
	Snow struct {
		ThreeH float64 `json:"3h"`
	} `json:"snow"`
}

// currentPayload is the provider's current-weather response.
type currentPayload struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      *float64 `json:"temp"`
		TempMin   *float64 `json:"temp_min"`
		TempMax   *float64 `json:"temp_max"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  int      `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Rain struct {
		OneH float64 `json:"1h"`
	} `json:"rain"`
	Snow struct {
		OneH float64 `json:"1h"`
	} `json:"snow"`
}

// collapseDaily reduces the 3-hourly sample list to one sample per calendar
// date, preferring the sample nearest solar noon: an exact hour-12 match
// replaces whatever was seen for that date, otherwise the first sample seen
// for the date is kept. Samples that fail to normalize are dropped; if every
// sample drops, the whole call fails with ErrUpstreamDataInvalid.
//
// Output is ordered ascending by date, which for this provider is the order
// dates first appear in the list.
func collapseDaily(samples []forecastSample) ([]domain.ForecastDay, error) {
	chosen := make(map[string]forecastSample)
	var order []string

	for _, s := range samples {
		date, hour, ok := splitDtTxt(s.DtTxt)
		if !ok {
			continue
		}
		if _, seen := chosen[date]; !seen {
			chosen[date] = s
			order = append(order, date)
			continue
		}
		if hour == "12" {
			chosen[date] = s
		}
	}

	forecast := make([]domain.ForecastDay, 0, len(order))
	for _, date := range order {
		day, err := normalizeSample(date, chosen[date])
		if err != nil {
			continue
		}
		forecast = append(forecast, day)
	}

	if len(forecast) == 0 {
		return nil, fmt.Errorf("no usable forecast samples: %w", ErrUpstreamDataInvalid)
	}
	return forecast, nil
}

// splitDtTxt splits "2006-01-02 15:04:05" into its date and hour parts.
func splitDtTxt(dtTxt string) (date, hour string, ok bool) {
	parts := strings.SplitN(dtTxt, " ", 2)
	if len(parts) != 2 || len(parts[0]) != 10 || len(parts[1]) < 2 {
		return "", "", false
	}
	return parts[0], parts[1][:2], true
}

// normalizeSample converts one provider sample into a ForecastDay.
// Temperature fields are required; a sample missing any of them is invalid.
// Precipitation defaults to 0, the rest passes through.
func normalizeSample(date string, s forecastSample) (domain.ForecastDay, error) {
	if s.Main.Temp == nil || s.Main.TempMin == nil || s.Main.TempMax == nil || s.Main.FeelsLike == nil {
		return domain.ForecastDay{}, fmt.Errorf("sample for %s missing temperature fields: %w", date, ErrUpstreamDataInvalid)
	}
	if len(s.Weather) == 0 {
		return domain.ForecastDay{}, fmt.Errorf("sample for %s missing conditions: %w", date, ErrUpstreamDataInvalid)
	}

	return domain.ForecastDay{
		Date:        date,
		Temp:        roundDegrees(*s.Main.Temp),
		TempMin:     roundDegrees(*s.Main.TempMin),
		TempMax:     roundDegrees(*s.Main.TempMax),
		FeelsLike:   roundDegrees(*s.Main.FeelsLike),
		Humidity:    s.Main.Humidity,
		Description: s.Weather[0].Description,
		Icon:        s.Weather[0].Icon,
		WindSpeed:   s.Wind.Speed,
		Clouds:      s.Clouds.All,
		Rain:        s.Rain.ThreeH,
		Snow:        s.Snow.ThreeH,
	}, nil
}

// normalizeCurrent converts the current-weather payload into a ForecastDay
// dated today (UTC).
func normalizeCurrent(p currentPayload) (domain.ForecastDay, error) {
	if p.Main.Temp == nil || p.Main.TempMin == nil || p.Main.TempMax == nil || p.Main.FeelsLike == nil {
		return domain.ForecastDay{}, fmt.Errorf("current weather missing temperature fields: %w", ErrUpstreamDataInvalid)
	}
	if len(p.Weather) == 0 {
		return domain.ForecastDay{}, fmt.Errorf("current weather missing conditions: %w", ErrUpstreamDataInvalid)
	}

	return domain.ForecastDay{
		Date:        timeFromUnix(p.Dt),
		Temp:        roundDegrees(*p.Main.Temp),
		TempMin:     roundDegrees(*p.Main.TempMin),
		TempMax:     roundDegrees(*p.Main.TempMax),
		FeelsLike:   roundDegrees(*p.Main.FeelsLike),
		Humidity:    p.Main.Humidity,
		Description: p.Weather[0].Description,
		Icon:        p.Weather[0].Icon,
		WindSpeed:   p.Wind.Speed,
		Clouds:      p.Clouds.All,
		Rain:        p.Rain.OneH,
		Snow:        p.Snow.OneH,
	}, nil
}

func roundDegrees(v float64) int {
	return int(math.Round(v))
}

// timeFromUnix formats a provider unix timestamp as an ISO calendar date,
// falling back to today when the provider omits it.
func timeFromUnix(sec int64) string {
	if sec == 0 {
		return time.Now().UTC().Format("2006-01-02")
	}
	return time.Unix(sec, 0).UTC().Format("2006-01-02")
}
