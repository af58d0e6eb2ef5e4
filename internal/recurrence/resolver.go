// Package recurrence computes the next occurrence of recurring tasks.
//
// A recurrence expression is tried, in order, as a structured rule (RRULE or
// cron), as a simple pattern ("every 2 weeks", "3d", "monthly"), and finally
// falls back to tomorrow. Resolution never fails.
package recurrence

import (
	"log/slog"
	"time"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/dates"
	"github.com/aidanlsb/taskmark/internal/model"
)

// Method names the step of the resolution chain that produced a date.
type Method string

const (
	MethodRule    Method = "rule"
	MethodPattern Method = "pattern"
	MethodDefault Method = "default"
)

// Resolution is the result of resolving a recurrence expression.
type Resolution struct {
	// Date is the next occurrence at 12:00 UTC of its calendar day.
	Date time.Time

	// Local is the next occurrence at local midnight.
	Local time.Time

	BaseDate time.Time
	Method   Method
}

// Millis returns Date as epoch milliseconds.
func (r Resolution) Millis() int64 {
	return r.Date.UnixMilli()
}

// Resolver resolves recurrence expressions for one configuration.
type Resolver struct {
	// Policy is the base-date policy: current, scheduled or due.
	Policy   string
	Location *time.Location

	// Now returns the current time. Defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// New creates a resolver from cfg.
func New(cfg config.Config) *Resolver {
	return &Resolver{
		Policy:   cfg.RecurrenceDateBase,
		Location: cfg.Location(),
		Now:      time.Now,
		Logger:   slog.Default(),
	}
}

func (r *Resolver) loc() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Today returns local midnight of the current day.
func (r *Resolver) Today() time.Time {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return dates.StartOfDay(now().In(r.loc()))
}

// BaseDate returns the base date for md under the configured policy,
// normalized to local midnight. A policy whose date is absent falls back to
// the current date.
func (r *Resolver) BaseDate(md model.TaskMetadata) time.Time {
	var ms int64
	switch r.Policy {
	case config.BaseScheduled:
		ms = md.ScheduledDate
	case config.BaseDue:
		ms = md.DueDate
	}
	if ms == 0 {
		return r.Today()
	}
	return dates.StartOfDay(dates.FromMillis(ms, r.loc()))
}

// Resolve returns the next occurrence of expr for a task with metadata md.
// The result is always after today.
func (r *Resolver) Resolve(expr string, md model.TaskMetadata) Resolution {
	base := r.BaseDate(md)
	if p, err := ParsePattern(expr); err == nil && p.WhenDone {
		base = r.Today()
	}
	return r.ResolveFrom(expr, base)
}

// ResolveFrom resolves expr against an explicit base date.
func (r *Resolver) ResolveFrom(expr string, base time.Time) Resolution {
	today := r.Today()
	base = dates.StartOfDay(base.In(r.loc()))

	next, err := r.nextByRule(expr, base, today)
	if err == nil {
		return r.result(next, base, MethodRule)
	}
	r.logger().Debug("recurrence rule not usable", "expr", expr, "error", err)

	p, err := ParsePattern(expr)
	if err == nil {
		return r.result(p.NextAfter(base, today), base, MethodPattern)
	}
	r.logger().Debug("recurrence pattern not usable", "expr", expr, "error", err)

	return r.result(today.AddDate(0, 0, 1), base, MethodDefault)
}

// nextByRule applies a structured rule. The first probe is strictly after
// max(base, today); when that occurrence still falls on today the rule is
// probed again from tomorrow.
func (r *Resolver) nextByRule(expr string, base, today time.Time) (time.Time, error) {
	rule, err := ParseRule(expr, base)
	if err != nil {
		return time.Time{}, err
	}

	probe := base
	if today.After(probe) {
		probe = today
	}
	next := rule.After(probe.Add(time.Second), false)
	if !next.IsZero() && dates.StartOfDay(next.In(r.loc())).After(today) {
		return next, nil
	}

	next = rule.After(today.AddDate(0, 0, 1), true)
	if next.IsZero() {
		return time.Time{}, &ParseError{Input: expr, Reason: "rule has no further occurrences"}
	}
	return next, nil
}

func (r *Resolver) result(next, base time.Time, method Method) Resolution {
	local := dates.StartOfDay(next.In(r.loc()))
	return Resolution{
		Date:     dates.UTCNoon(local),
		Local:    local,
		BaseDate: base,
		Method:   method,
	}
}
