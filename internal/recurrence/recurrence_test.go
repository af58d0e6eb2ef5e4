package recurrence

import (
	"errors"
	"testing"
	"time"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testResolver(policy string, now time.Time) *Resolver {
	return &Resolver{
		Policy:   policy,
		Location: time.UTC,
		Now:      func() time.Time { return now },
	}
}

func TestParsePattern(t *testing.T) {
	tests := []struct {
		in       string
		interval int
		unit     Unit
		whenDone bool
	}{
		{"every day", 1, Day, false},
		{"every 2 weeks", 2, Week, false},
		{"Every 3 Months", 3, Month, false},
		{"every other year", 2, Year, false},
		{"every week when done", 1, Week, true},
		{"10d", 10, Day, false},
		{"2w", 2, Week, false},
		{"daily", 1, Day, false},
		{"monthly", 1, Month, false},
		{"annually", 1, Year, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParsePattern(tt.in)
			if err != nil {
				t.Fatalf("ParsePattern(%q) error: %v", tt.in, err)
			}
			if p.Interval != tt.interval || p.Unit != tt.unit || p.WhenDone != tt.whenDone {
				t.Errorf("ParsePattern(%q) = %+v", tt.in, p)
			}
		})
	}

	for _, in := range []string{"", "someday", "every 0 days", "0d", "every fortnight"} {
		_, err := ParsePattern(in)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParsePattern(%q) error = %v, want *ParseError", in, err)
		}
	}
}

func TestParseRule(t *testing.T) {
	start := date(2024, 1, 1)

	for _, in := range []string{"FREQ=WEEKLY;BYDAY=MO", "RRULE:FREQ=DAILY", "rrule:freq=monthly", "0 9 * * 1", "@daily"} {
		if _, err := ParseRule(in, start); err != nil {
			t.Errorf("ParseRule(%q) error: %v", in, err)
		}
	}

	for _, in := range []string{"every week", "FREQ=BOGUS", "61 * * * *", ""} {
		_, err := ParseRule(in, start)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseRule(%q) error = %v, want *ParseError", in, err)
		}
	}
}

func TestMonthEndRollback(t *testing.T) {
	tests := []struct {
		name  string
		base  time.Time
		today time.Time
		want  time.Time
	}{
		{"leap year", date(2024, 1, 31), date(2024, 2, 10), date(2024, 2, 29)},
		{"non-leap year", date(2023, 1, 31), date(2023, 2, 10), date(2023, 2, 28)},
		{"keeps day after short month", date(2024, 1, 31), date(2024, 3, 1), date(2024, 3, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testResolver(config.BaseDue, tt.today.Add(10*time.Hour))
			res := r.Resolve("every 1 month", model.TaskMetadata{DueDate: tt.base.UnixMilli()})
			if !res.Local.Equal(tt.want) {
				t.Errorf("next = %s, want %s", res.Local.Format(time.DateOnly), tt.want.Format(time.DateOnly))
			}
			if res.Method != MethodPattern {
				t.Errorf("Method = %q", res.Method)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	// Wednesday.
	now := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		policy string
		expr   string
		md     model.TaskMetadata
		want   time.Time
		method Method
	}{
		{"weekly from old due date", config.BaseDue, "every week", model.TaskMetadata{DueDate: date(2024, 1, 1).UnixMilli()}, date(2024, 3, 18), MethodPattern},
		{"future due date steps once", config.BaseDue, "every 3 days", model.TaskMetadata{DueDate: date(2024, 3, 20).UnixMilli()}, date(2024, 3, 23), MethodPattern},
		{"daily from today", config.BaseCurrent, "daily", model.TaskMetadata{}, date(2024, 3, 14), MethodPattern},
		{"compact form", config.BaseCurrent, "2w", model.TaskMetadata{}, date(2024, 3, 27), MethodPattern},
		{"when done ignores due", config.BaseDue, "every week when done", model.TaskMetadata{DueDate: date(2024, 1, 1).UnixMilli()}, date(2024, 3, 20), MethodPattern},
		{"scheduled policy", config.BaseScheduled, "every month", model.TaskMetadata{ScheduledDate: date(2024, 3, 5).UnixMilli()}, date(2024, 4, 5), MethodPattern},
		{"scheduled policy falls back to today", config.BaseScheduled, "every day", model.TaskMetadata{DueDate: date(2024, 1, 1).UnixMilli()}, date(2024, 3, 14), MethodPattern},
		{"unknown falls back to tomorrow", config.BaseDue, "someday", model.TaskMetadata{}, date(2024, 3, 14), MethodDefault},
		{"rrule weekly", config.BaseDue, "FREQ=WEEKLY;BYDAY=MO", model.TaskMetadata{DueDate: date(2024, 1, 1).UnixMilli()}, date(2024, 3, 18), MethodRule},
		{"rrule with prefix and interval", config.BaseDue, "RRULE:FREQ=DAILY;INTERVAL=2", model.TaskMetadata{DueDate: date(2024, 3, 10).UnixMilli()}, date(2024, 3, 14), MethodRule},
		{"exhausted rrule falls back", config.BaseDue, "FREQ=DAILY;COUNT=2", model.TaskMetadata{DueDate: date(2024, 1, 1).UnixMilli()}, date(2024, 3, 14), MethodDefault},
		{"cron weekly", config.BaseCurrent, "0 9 * * 1", model.TaskMetadata{}, date(2024, 3, 18), MethodRule},
		{"cron occurrence later today moves to tomorrow", config.BaseCurrent, "0 9 * * *", model.TaskMetadata{}, date(2024, 3, 14), MethodRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testResolver(tt.policy, now)
			res := r.Resolve(tt.expr, tt.md)
			if !res.Local.Equal(tt.want) {
				t.Errorf("next = %s, want %s", res.Local.Format(time.DateOnly), tt.want.Format(time.DateOnly))
			}
			if res.Method != tt.method {
				t.Errorf("Method = %q, want %q", res.Method, tt.method)
			}
			wantNoon := time.Date(tt.want.Year(), tt.want.Month(), tt.want.Day(), 12, 0, 0, 0, time.UTC)
			if !res.Date.Equal(wantNoon) {
				t.Errorf("Date = %s, want %s", res.Date, wantNoon)
			}
		})
	}
}

func TestResolveIsAlwaysAfterToday(t *testing.T) {
	exprs := []string{"every day", "every 2 weeks", "every month", "every year", "3d", "FREQ=MONTHLY;BYMONTHDAY=1", "30 23 * * *", "nonsense"}
	bases := []time.Time{date(2020, 2, 29), date(2024, 3, 13), date(2024, 12, 31), date(2030, 1, 1)}

	now := time.Date(2024, 3, 13, 23, 59, 0, 0, time.UTC)
	r := testResolver(config.BaseDue, now)
	today := date(2024, 3, 13)

	for _, expr := range exprs {
		for _, base := range bases {
			res := r.Resolve(expr, model.TaskMetadata{DueDate: base.UnixMilli()})
			if !res.Local.After(today) {
				t.Errorf("Resolve(%q, base %s) = %s, not after today", expr, base.Format(time.DateOnly), res.Local.Format(time.DateOnly))
			}
		}
	}
}

func TestResolveInTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// 2024-03-13 20:00 UTC is already 2024-03-14 in UTC+9.
	now := time.Date(2024, 3, 13, 20, 0, 0, 0, time.UTC)
	r := &Resolver{Policy: config.BaseCurrent, Location: loc, Now: func() time.Time { return now }}

	res := r.Resolve("every day", model.TaskMetadata{})
	if got := res.Date.Format(time.DateOnly); got != "2024-03-15" {
		t.Errorf("Date = %s, want 2024-03-15", got)
	}
	if res.Date.Hour() != 12 || res.Date.Location() != time.UTC {
		t.Errorf("Date not at UTC noon: %s", res.Date)
	}
}
