package recurrence

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aidanlsb/taskmark/internal/dates"
)

// Unit is the step unit of a simple pattern.
type Unit int

const (
	Day Unit = iota
	Week
	Month
	Year
)

func (u Unit) String() string {
	switch u {
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	}
	return "day"
}

// Pattern is a parsed simple recurrence such as "every 2 weeks".
type Pattern struct {
	Interval int
	Unit     Unit
	// WhenDone is set by a trailing "when done": the next occurrence counts
	// from the current date rather than the task's dates.
	WhenDone bool
}

var (
	everyRe   = regexp.MustCompile(`^every\s+(?:(other)\s+|(\d+)\s*)?(day|week|month|year)s?$`)
	compactRe = regexp.MustCompile(`^(\d+)\s*([dwmy])$`)
	whenDone  = regexp.MustCompile(`\s*when\s+done$`)
)

var unitAliases = map[string]Unit{
	"daily":    Day,
	"weekly":   Week,
	"monthly":  Month,
	"yearly":   Year,
	"annually": Year,
}

var unitLetters = map[string]Unit{"d": Day, "w": Week, "m": Month, "y": Year}

var unitWords = map[string]Unit{"day": Day, "week": Week, "month": Month, "year": Year}

// ParsePattern parses "every [N|other] <day|week|month|year>[s]", the compact
// form "<N><d|w|m|y>", or one of daily/weekly/monthly/yearly. A missing
// interval defaults to 1.
func ParsePattern(expr string) (Pattern, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	var p Pattern
	if loc := whenDone.FindStringIndex(s); loc != nil {
		p.WhenDone = true
		s = strings.TrimSpace(s[:loc[0]])
	}
	s = strings.Join(strings.Fields(s), " ")

	if u, ok := unitAliases[s]; ok {
		p.Interval, p.Unit = 1, u
		return p, nil
	}

	if m := everyRe.FindStringSubmatch(s); m != nil {
		p.Interval = 1
		switch {
		case m[1] != "":
			p.Interval = 2
		case m[2] != "":
			n, err := strconv.Atoi(m[2])
			if err != nil || n < 1 {
				return Pattern{}, &ParseError{Input: expr, Reason: "interval must be a positive integer"}
			}
			p.Interval = n
		}
		p.Unit = unitWords[m[3]]
		return p, nil
	}

	if m := compactRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return Pattern{}, &ParseError{Input: expr, Reason: "interval must be a positive integer"}
		}
		p.Interval, p.Unit = n, unitLetters[m[2]]
		return p, nil
	}

	return Pattern{}, &ParseError{Input: expr, Reason: "unrecognized pattern"}
}

// Step returns base advanced by k intervals. Month and year steps keep base's
// day of month, clamped to the last day of shorter months.
func (p Pattern) Step(base time.Time, k int) time.Time {
	n := p.Interval * k
	switch p.Unit {
	case Week:
		return base.AddDate(0, 0, 7*n)
	case Month:
		return dates.AddMonthsClamped(base, n)
	case Year:
		return dates.AddMonthsClamped(base, 12*n)
	}
	return base.AddDate(0, 0, n)
}

// NextAfter returns the first date base + k*interval (k >= 1) that is after
// today. Both arguments are expected at local midnight.
func (p Pattern) NextAfter(base, today time.Time) time.Time {
	if p.Interval < 1 {
		p.Interval = 1
	}

	k := 1
	if p.Unit == Day || p.Unit == Week {
		step := p.Interval
		if p.Unit == Week {
			step *= 7
		}
		if diff := dates.DaysBetween(base, today); diff >= 0 {
			k = diff/step + 1
		}
	}

	next := p.Step(base, k)
	for !next.After(today) {
		k++
		next = p.Step(base, k)
	}
	return next
}
