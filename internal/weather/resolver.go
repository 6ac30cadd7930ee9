package weather

import (
	"context"
	"log"
	"time"

	"weatherinsight/internal/geoip"
	"weatherinsight/internal/intent"
)

// IntentExtractor is the structured-extraction capability the resolver
// consumes. Satisfied by *intent.Extractor; tests substitute a fixed stub.
type IntentExtractor interface {
	Extract(ctx context.Context, question string, today time.Time) (intent.Intent, error)
}

// Resolver orchestrates one question's forecast lookup: intent extraction,
// fallback resolution, the provider query, and filtering the multi-day
// response down to the target day and hour window.
type Resolver struct {
	extractor   IntentExtractor
	provider    Provider
	locator     geoip.Locator
	defaultCity string

	// Now is the clock used for "today" and the fallback hour. Defaults to
	// time.Now; tests override it for deterministic dates.
	Now func() time.Time
}

// NewResolver creates a Resolver. locator may be nil, in which case a
// missing city falls straight through to defaultCity.
func NewResolver(extractor IntentExtractor, provider Provider, locator geoip.Locator, defaultCity string) *Resolver {
	return &Resolver{
		extractor:   extractor,
		provider:    provider,
		locator:     locator,
		defaultCity: defaultCity,
		Now:         time.Now,
	}
}

// Resolve answers the question with the forecast for exactly the day it
// refers to. When includeHours is true, hourly entries within
// [hour-hoursBefore, hour+hoursAfter], clamped to [0,23], are attached.
//
// Failures of the extraction and geolocation capabilities degrade to
// defaults; provider failures are returned as typed errors (*StatusError,
// ErrDayNotFound) for the caller to map to user-facing text.
func (r *Resolver) Resolve(ctx context.Context, question string, includeHours bool, hoursBefore, hoursAfter int) (ForecastResult, error) {
	query := r.resolveQuery(ctx, question)

	forecast, err := r.provider.FetchForecast(ctx, query.City, query.ForecastDays)
	if err != nil {
		return ForecastResult{}, err
	}

	// The provider window is anchored at its own "today", so the target day
	// must be selected by date match, never by offset index.
	targetDate := intent.FormatDate(query.TargetDate)
	var selected *ProviderDay
	for i := range forecast.Days {
		if forecast.Days[i].Date == targetDate {
			selected = &forecast.Days[i]
			break
		}
	}
	if selected == nil {
		return ForecastResult{}, ErrDayNotFound
	}

	day := DayForecast{
		Date:      selected.Date,
		MaxTempC:  selected.MaxTempC,
		MinTempC:  selected.MinTempC,
		Condition: selected.Condition,
	}

	if includeHours {
		day.Hours = filterHours(selected.Hours, query.Hour, hoursBefore, hoursAfter)
	}

	city := query.City
	if forecast.City != "" {
		city = forecast.City
	}

	return ForecastResult{
		City:        city,
		ForecastDay: day,
	}, nil
}

// resolveQuery extracts the intent and applies the fallback chain so that
// every field of the resulting query is populated.
func (r *Resolver) resolveQuery(ctx context.Context, question string) ResolvedQuery {
	today := r.Now()

	extracted, err := r.extractor.Extract(ctx, question, today)
	if err != nil {
		log.Printf("intent extraction degraded to defaults: %v", err)
	}

	city := extracted.City
	if city == "" {
		city = r.lookupCity(ctx)
	}

	hour := (r.Now().Hour() + 2) % 24
	if extracted.Hour != nil {
		hour = *extracted.Hour
	}

	return ResolvedQuery{
		City:       city,
		Hour:       hour,
		TargetDate: extracted.TargetDate,
		// Recomputed here as a guard against drift between the extractor's
		// arithmetic and the date actually queried.
		ForecastDays: intent.ForecastDays(extracted.TargetDate, today),
	}
}

// lookupCity asks the geolocation capability for the caller's city; any
// failure falls back to the configured default.
func (r *Resolver) lookupCity(ctx context.Context) string {
	if r.locator == nil {
		return r.defaultCity
	}

	city, err := r.locator.CurrentCity(ctx)
	if err != nil {
		log.Printf("geolocation fallback failed, using %s: %v", r.defaultCity, err)
		return r.defaultCity
	}
	return city
}

// filterHours keeps entries whose hour of day lies in the inclusive window
// around hour. The window is clamped at the day's edges, never wrapped past
// midnight: a request near 23:00 truncates instead of rolling into the next
// day.
func filterHours(hours []HourForecast, hour, before, after int) []HourForecast {
	startHour := hour - before
	if startHour < 0 {
		startHour = 0
	}
	endHour := hour + after
	if endHour > 23 {
		endHour = 23
	}

	var kept []HourForecast
	for _, h := range hours {
		ts, err := time.Parse("2006-01-02 15:04", h.Time)
		if err != nil {
			continue
		}
		if hh := ts.Hour(); hh >= startHour && hh <= endHour {
			kept = append(kept, h)
		}
	}
	return kept
}
