package dates

import (
	"testing"
	"time"
)

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  string
	}{
		{"jan 31 to leap feb", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1, "2024-02-29"},
		{"jan 31 to feb", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 1, "2025-02-28"},
		{"jan 31 to mar keeps day", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 2, "2025-03-31"},
		{"mar 31 to apr", time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), 1, "2025-04-30"},
		{"leap day plus a year", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 12, "2025-02-28"},
		{"across year end", time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), 3, "2026-02-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonthsClamped(tt.start, tt.n).Format(DateLayout)
			if got != tt.want {
				t.Errorf("AddMonthsClamped(%s, %d) = %s, want %s", tt.start.Format(DateLayout), tt.n, got, tt.want)
			}
		})
	}
}

func TestUTCNoon(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	local := time.Date(2025, 3, 1, 0, 0, 0, 0, loc)
	got := UTCNoon(local)
	if got.Location() != time.UTC || got.Hour() != 12 || got.Format(DateLayout) != "2025-03-01" {
		t.Fatalf("UTCNoon(%v) = %v", local, got)
	}
}

func TestFormatMillisRoundTrip(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	d, err := ParseDateIn("2024-01-15", loc)
	if err != nil {
		t.Fatalf("ParseDateIn: %v", err)
	}
	if got := FormatMillis(ToMillis(d), loc); got != "2024-01-15" {
		t.Fatalf("FormatMillis = %s, want 2024-01-15", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 2, 28, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 28 {
		t.Fatalf("DaysBetween = %d, want 28", got)
	}
	if got := DaysBetween(b, a); got != -28 {
		t.Fatalf("DaysBetween reversed = %d, want -28", got)
	}
}
