package dates

import "time"

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UTCNoon re-expresses t's calendar day as 12:00 UTC.
//
// Stored dates use this form so that reading them back as a plain date lands on
// the same calendar day in any timezone within twelve hours of UTC.
func UTCNoon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

// ToMillis converts t to epoch milliseconds.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds to a time in loc.
func FromMillis(ms int64, loc *time.Location) time.Time {
	return time.UnixMilli(ms).In(orLocal(loc))
}

// FormatMillis formats epoch milliseconds as YYYY-MM-DD in loc.
func FormatMillis(ms int64, loc *time.Location) string {
	return FromMillis(ms, loc).Format(DateLayout)
}

// DayMillis returns the epoch milliseconds of midnight of t's day in loc.
func DayMillis(t time.Time, loc *time.Location) int64 {
	return StartOfDay(t.In(orLocal(loc))).UnixMilli()
}

// AddMonthsClamped adds n months to t, keeping t's day of month.
// When the target month is shorter, the result is that month's last day.
func AddMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := DaysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysInMonth returns the number of days in month m of year y.
func DaysInMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween returns the whole calendar days from a to b (negative when b is earlier).
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
