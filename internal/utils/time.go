package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/potato/internal/constants"
)

// Clock returns the current instant. Tests substitute a fixed clock.
type Clock func() time.Time

// LocalDateString formats t as YYYY-MM-DD using the calendar fields of t's own
// location. It never converts to UTC first, so 23:30 in UTC-5 stays on the
// local day instead of rolling to the next one.
func LocalDateString(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// Today returns the calendar day of clock() in loc.
func Today(loc *time.Location, clock Clock) string {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return LocalDateString(clock().In(loc))
}

// ParseDate parses a YYYY-MM-DD string. The result is midnight UTC and only its
// calendar fields are meaningful.
func ParseDate(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", day, err)
	}
	return t, nil
}

// ValidateDate reports whether day is a well-formed YYYY-MM-DD calendar date.
func ValidateDate(day string) bool {
	_, err := ParseDate(day)
	return err == nil
}

// AddDays shifts a YYYY-MM-DD day by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDate(day)
	if err != nil {
		return "", err
	}
	return LocalDateString(t.AddDate(0, 0, n)), nil
}

// ResolveDate turns "", "today" or a YYYY-MM-DD string into a calendar day.
func ResolveDate(input, today string) (string, error) {
	if input == "" || input == "today" {
		return today, nil
	}
	if !ValidateDate(input) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", input)
	}
	return input, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
