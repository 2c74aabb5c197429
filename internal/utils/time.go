package utils

import (
	"fmt"
	"time"

	"github.com/daybook-app/daybook/internal/constants"
)

// Today returns today's date string (YYYY-MM-DD) in the system timezone.
func Today() string {
	return time.Now().Format(constants.DateFormat)
}

// TodayInTimezone returns today's date string (YYYY-MM-DD) in the specified
// timezone, so "today" follows the user's configured zone rather than the host's.
func TodayInTimezone(timezone string) (string, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc).Format(constants.DateFormat), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseDay parses a date string (YYYY-MM-DD) at midnight UTC.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(constants.DateFormat, day)
}

// ValidDay reports whether the string is a valid YYYY-MM-DD day.
func ValidDay(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}

// AddDays returns the day string n days after day (n may be negative).
// Invalid input is returned unchanged; callers validate at the boundary.
func AddDays(day string, n int) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat)
}

// DaysBetween returns the number of whole days from a to b (b - a).
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDay(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}
