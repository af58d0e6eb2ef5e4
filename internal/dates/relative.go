package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dayKeywords = map[string]int{
	"yesterday": -1,
	"today":     0,
	"tomorrow":  1,
}

var offsetRe = regexp.MustCompile(`^([+-])(\d{1,4})([dwmy])$`)

// RelativeDate resolves a relative date argument against now:
//   - today, tomorrow, yesterday
//   - a signed offset such as +3d, -1w, +2m or +1y
//   - a weekday name, meaning its next occurrence after today
//
// The result is midnight in now's location.
func RelativeDate(value string, now time.Time) (time.Time, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	today := StartOfDay(now)

	if days, ok := dayKeywords[v]; ok {
		return today.AddDate(0, 0, days), true
	}

	if m := offsetRe.FindStringSubmatch(v); m != nil {
		n, _ := strconv.Atoi(m[2])
		if m[1] == "-" {
			n = -n
		}
		switch m[3] {
		case "d":
			return today.AddDate(0, 0, n), true
		case "w":
			return today.AddDate(0, 0, 7*n), true
		case "m":
			return AddMonthsClamped(today, n), true
		default:
			return AddMonthsClamped(today, 12*n), true
		}
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if v == name || v == name[:3] {
			ahead := (int(wd) - int(today.Weekday()) + 7) % 7
			if ahead == 0 {
				ahead = 7
			}
			return today.AddDate(0, 0, ahead), true
		}
	}
	return time.Time{}, false
}
