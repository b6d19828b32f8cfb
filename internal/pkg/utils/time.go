package utils

import (
	"mawaid-service/internal/pkg/constvars"
	"time"
)

// CombineCivilDateTime turns a civil date string ("2006-01-02") and a civil
// clock string ("15:04") into an instant pinned to the given timezone.
func CombineCivilDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constvars.CivilDateTimeLayout, date+" "+clock, loc)
}

// CivilDayBounds returns the [start, next) instants of the civil day that
// contains t in the given timezone.
func CivilDayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	year, month, day := t.In(loc).Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
