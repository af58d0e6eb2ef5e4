package recurrence

import (
	"fmt"
	"strings"
	"time"

	cronlib "github.com/robfig/cron/v3"
	"github.com/teambition/rrule-go"
)

// ParseError reports a recurrence expression that could not be interpreted.
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recurrence %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("recurrence %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Rule is a structured repeat rule.
type Rule interface {
	// After returns the first occurrence after t (at or after t when
	// inclusive), or the zero time when the rule has no more occurrences.
	After(t time.Time, inclusive bool) time.Time
	String() string
}

// cronParser parses standard 5-field cron expressions (minute, hour, dom, month, dow)
// and @daily style descriptors.
var cronParser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor,
)

// ParseRule parses an RFC 5545 RRULE ("FREQ=WEEKLY;BYDAY=MO", optionally
// prefixed with "RRULE:") or a cron schedule. Occurrences of an RRULE are
// anchored at start.
func ParseRule(expr string, start time.Time) (Rule, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return nil, &ParseError{Input: expr, Reason: "empty expression"}
	}

	if strings.Contains(strings.ToUpper(s), "FREQ=") {
		return parseRRule(expr, s, start)
	}

	if strings.HasPrefix(s, "@") || len(strings.Fields(s)) == 5 {
		sched, err := cronParser.Parse(s)
		if err != nil {
			return nil, &ParseError{Input: expr, Reason: "invalid cron schedule", Err: err}
		}
		return cronRule{sched: sched, src: s}, nil
	}

	return nil, &ParseError{Input: expr, Reason: "not a structured rule"}
}

func parseRRule(expr, s string, start time.Time) (Rule, error) {
	s = strings.ToUpper(s)
	s = strings.TrimPrefix(s, "RRULE:")
	opt, err := rrule.StrToROption(s)
	if err != nil {
		return nil, &ParseError{Input: expr, Reason: "invalid RRULE", Err: err}
	}
	opt.Dtstart = start
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, &ParseError{Input: expr, Reason: "invalid RRULE", Err: err}
	}
	return rruleRule{r: r, src: s}, nil
}

type rruleRule struct {
	r   *rrule.RRule
	src string
}

func (x rruleRule) After(t time.Time, inclusive bool) time.Time {
	return x.r.After(t, inclusive)
}

func (x rruleRule) String() string { return x.src }

type cronRule struct {
	sched cronlib.Schedule
	src   string
}

func (x cronRule) After(t time.Time, inclusive bool) time.Time {
	if inclusive {
		t = t.Add(-time.Second)
	}
	return x.sched.Next(t)
}

func (x cronRule) String() string { return x.src }
