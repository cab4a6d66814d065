package calendar

import (
	"fmt"
	"strings"
	"time"
)

// isoLayouts are the timestamp shapes accepted from clients and tools, most
// specific first.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISO parses an ISO-8601 date or datetime string. Offset-less values
// are interpreted in local time.
func ParseISO(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", value)
}

// StripZone drops timezone information, keeping the wall-clock reading of
// the original zone. Known limitation: events recorded in another timezone
// are compared against local business hours without conversion.
func StripZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
}

// dateOf truncates a time to midnight of its day.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
