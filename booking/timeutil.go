package booking

import (
	"fmt"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02 15:04"
)

// InvalidDate is what display formatting yields when there is nothing
// sensible to render.
const InvalidDate = "Invalid Date"

// FormatDate renders an instant in UTC using the given layout. A zero
// time renders as the InvalidDate sentinel.
func FormatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return InvalidDate
	}
	return t.UTC().Format(layout)
}

func FormatDateTime(t time.Time) string {
	return FormatDate(t, DateTimeLayout)
}

// CombineDateTime builds a UTC instant from a calendar date
// (YYYY-MM-DD) and a wall time (HH:MM).
func CombineDateTime(dateStr, timeStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, fmt.Sprintf("%s %s", dateStr, timeStr), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q (expected YYYY-MM-DD and HH:MM)", dateStr, timeStr)
	}
	return t, nil
}

// StartOfDay truncates an instant to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two instants fall on the same UTC calendar
// day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}
