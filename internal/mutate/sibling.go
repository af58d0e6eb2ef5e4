package mutate

import (
	"regexp"
	"strconv"
	"time"

	"github.com/aidanlsb/taskmark/internal/codec"
	"github.com/aidanlsb/taskmark/internal/dates"
	"github.com/aidanlsb/taskmark/internal/grammar"
	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/recurrence"
)

var numberedBulletRe = regexp.MustCompile(`^(\d+)([.)])$`)

// anchorFields is the order in which a date is chosen to carry the next
// occurrence.
var anchorFields = []model.Field{model.FieldDue, model.FieldScheduled, model.FieldStart}

// sibling builds the next occurrence of the completed recurring task l.
func (m *Mutator) sibling(l codec.Line, today time.Time) (recurrence.Resolution, string) {
	md := l.Metadata
	next := m.resolver.Resolve(md.Recurrence, md)
	loc := m.codec.Grammar().Location()

	out := md.Copy()
	out.CompletedDate = 0
	out.CancelledDate = 0
	out.ID = ""
	if out.CreatedDate != 0 {
		out.CreatedDate = today.UnixMilli()
	}

	anchored := false
	for _, f := range anchorFields {
		if !md.Has(f) {
			continue
		}
		old := dates.StartOfDay(dates.FromMillis(md.Date(f), loc))
		shift := dates.DaysBetween(old, next.Local)
		for _, g := range anchorFields {
			if md.Has(g) {
				d := dates.StartOfDay(dates.FromMillis(md.Date(g), loc))
				out.SetDate(g, d.AddDate(0, 0, shift).UnixMilli())
			}
		}
		anchored = true
		break
	}
	if !anchored {
		out.DueDate = next.Local.UnixMilli()
	}

	var extras []grammar.Token
	for _, t := range l.Extras {
		if !t.Known {
			extras = append(extras, t)
		}
	}
	tail := m.codec.EncodeWithExtras(out, extras, l.Raw)

	prefix := l.Indent + nextBullet(l.Bullet) + " [" + m.cfg.NotStartedMark() + "]"
	body := joinNonEmpty(l.Content, tail)
	if body == "" {
		return next, prefix
	}
	return next, prefix + " " + body
}

// nextBullet increments a numbered bullet ("3." becomes "4.").
func nextBullet(bullet string) string {
	mm := numberedBulletRe.FindStringSubmatch(bullet)
	if mm == nil {
		return bullet
	}
	n, err := strconv.Atoi(mm[1])
	if err != nil {
		return bullet
	}
	return strconv.Itoa(n+1) + mm[2]
}
