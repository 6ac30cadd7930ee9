package weather

import "time"

// HourForecast is a single hourly forecast entry for the target day.
type HourForecast struct {
	Time      string  `json:"time"` // "YYYY-MM-DD HH:MM", provider-local
	TempC     float64 `json:"temp_c"`
	Condition string  `json:"condition"`
}

// DayForecast is the forecast for exactly one calendar day. Hours is only
// populated when hourly detail was requested, in chronological order.
type DayForecast struct {
	Date      string         `json:"date"` // "YYYY-MM-DD"
	MaxTempC  float64        `json:"max_temp_c"`
	MinTempC  float64        `json:"min_temp_c"`
	Condition string         `json:"condition"`
	Hours     []HourForecast `json:"hours,omitempty"`
}

// ForecastResult is the resolver's final structured output: the resolved
// city and the forecast for the single day the question referred to.
type ForecastResult struct {
	City        string      `json:"city"`
	ForecastDay DayForecast `json:"forecast_day"`
}

// ResolvedQuery is the fully populated provider query derived from an
// extracted intent after all fallbacks have been applied. City and Hour are
// never absent here.
type ResolvedQuery struct {
	City         string
	Hour         int
	TargetDate   time.Time
	ForecastDays int
}
