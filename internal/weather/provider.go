package weather

import (
	"context"
	"errors"
	"fmt"
)

// ProviderDay is one day of a provider's multi-day forecast response,
// normalized to the fields the resolver consumes. Hours covers the full day;
// the resolver applies any window filtering itself.
type ProviderDay struct {
	Date      string // "YYYY-MM-DD"
	MaxTempC  float64
	MinTempC  float64
	Condition string
	Hours     []HourForecast
}

// ProviderForecast is a provider's response for a city: one entry per day,
// ordered by date ascending, anchored at the provider's "today".
type ProviderForecast struct {
	City string
	Days []ProviderDay
}

// Provider abstracts a multi-day forecast source (e.g. WeatherAPI.com).
type Provider interface {
	Name() string
	FetchForecast(ctx context.Context, city string, days int) (ProviderForecast, error)
}

// ErrDayNotFound is returned when the provider's response window does not
// contain the target date.
var ErrDayNotFound = errors.New("Forecast for target date not found.")

// StatusError reports a non-success HTTP status from the weather provider.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to retrieve weather data, status code %d.", e.Code)
}
