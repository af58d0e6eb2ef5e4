package derive

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aidanlsb/taskmark/internal/dates"
)

// toMillis coerces a frontmatter value to epoch milliseconds. Numbers are
// taken as milliseconds; strings may be dates or datetimes; YAML dates
// (decoded as UTC midnight) are re-read as that calendar day in loc.
func toMillis(v any, loc *time.Location) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("date %d out of range", x)
		}
		return int64(x), nil
	case float64:
		return int64(x), nil
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, loc).UnixMilli(), nil
		}
		return x.UnixMilli(), nil
	case string:
		s := strings.TrimSpace(x)
		if t, err := dates.ParseDateIn(s, loc); err == nil {
			return t.UnixMilli(), nil
		}
		if t, err := dates.ParseDatetimeIn(s, loc); err == nil {
			return t.UnixMilli(), nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		return 0, fmt.Errorf("invalid date %q", x)
	case nil:
		return 0, fmt.Errorf("empty date")
	}
	return 0, fmt.Errorf("unsupported date value %v (%T)", v, v)
}

// toPriority coerces a frontmatter priority. Numbers are clamped to 1..3;
// keywords urgent/high, medium/normal and low map to 3, 2 and 1.
func toPriority(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return clampPriority(x), nil
	case int64:
		return clampPriority(int(x)), nil
	case float64:
		return clampPriority(int(math.Round(x))), nil
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		switch s {
		case "urgent", "high", "highest":
			return 3, nil
		case "medium", "normal":
			return 2, nil
		case "low", "lowest":
			return 1, nil
		}
		if n, err := strconv.Atoi(s); err == nil {
			return clampPriority(n), nil
		}
		return 0, fmt.Errorf("invalid priority %q", x)
	}
	return 0, fmt.Errorf("unsupported priority value %v (%T)", v, v)
}

func clampPriority(n int) int {
	if n < 1 {
		return 1
	}
	if n > 3 {
		return 3
	}
	return n
}

// toBool interprets booleans and their common string spellings.
func toBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes", "done":
			return true, true
		case "false", "no":
			return false, true
		}
	}
	return false, false
}

// toString renders a scalar frontmatter value as text.
func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format(dates.DateLayout)
		}
		return x.Format(time.RFC3339)
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			if s := toString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

// toStrings renders a scalar or list value as a list of strings.
func toStrings(v any) []string {
	switch x := v.(type) {
	case []any:
		var out []string
		for _, item := range x {
			if s := toString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, p := range strings.FieldsFunc(x, func(r rune) bool { return r == ',' || r == ' ' }) {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	if s := toString(v); s != "" {
		return []string{s}
	}
	return nil
}
