package intent

import "time"

const dateLayout = "2006-01-02"

// ForecastDays returns how many forecast days must be requested from the
// weather provider so its response window, anchored at today, still contains
// the target date: (target - today) in days, plus one. The result is clamped
// to a minimum of 1, so a target date in the past degrades to a same-day
// query instead of an invalid request.
func ForecastDays(target, today time.Time) int {
	days := int(midnight(target).Sub(midnight(today)).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// midnight truncates t to the start of its calendar day in UTC.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
