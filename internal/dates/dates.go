// Package dates parses and normalizes the calendar dates used in task
// metadata, front matter and command-line flags. Task dates are whole days;
// times are only read from front matter datetimes.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the YYYY-MM-DD form of every date taskmark writes.
const DateLayout = "2006-01-02"

// datetimeLayouts are the offset-less datetime forms accepted from front
// matter, tried after RFC 3339.
var datetimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// IsValidDate reports whether s is exactly a real YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDateIn reads a YYYY-MM-DD date as midnight in loc (local time when
// loc is nil).
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	return time.ParseInLocation(DateLayout, s, orLocal(loc))
}

// ParseDatetimeIn reads an RFC 3339 datetime, or one of the offset-less
// layouts in loc.
func ParseDatetimeIn(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, s, orLocal(loc)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime: %q", s)
}

// ParseDateArg reads a date given on the command line: YYYY-MM-DD or a
// relative form (see RelativeDate), resolved against now. An empty
// argument is today.
func ParseDateArg(arg string, now time.Time) (time.Time, error) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	if arg == "" {
		return StartOfDay(now), nil
	}
	if day, ok := RelativeDate(arg, now); ok {
		return day, nil
	}
	day, err := ParseDateIn(arg, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, today, tomorrow, +3d or a weekday", arg)
	}
	return day, nil
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
