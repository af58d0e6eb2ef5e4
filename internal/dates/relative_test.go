package dates

import (
	"testing"
	"time"
)

func TestRelativeDate(t *testing.T) {
	// Wednesday.
	now := time.Date(2026, time.March, 4, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{"today", "2026-03-04"},
		{" Tomorrow ", "2026-03-05"},
		{"yesterday", "2026-03-03"},
		{"+3d", "2026-03-07"},
		{"-1w", "2026-02-25"},
		{"+1m", "2026-04-04"},
		{"+1y", "2027-03-04"},
		{"friday", "2026-03-06"},
		{"mon", "2026-03-09"},
		{"wednesday", "2026-03-11"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := RelativeDate(tt.in, now)
			if !ok {
				t.Fatalf("RelativeDate(%q) not resolved", tt.in)
			}
			if s := got.Format(DateLayout); s != tt.want {
				t.Errorf("RelativeDate(%q) = %s, want %s", tt.in, s, tt.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("RelativeDate(%q) = %v, want midnight", tt.in, got)
			}
		})
	}
}

func TestRelativeDateMonthEnd(t *testing.T) {
	now := time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC)
	got, ok := RelativeDate("+1m", now)
	if !ok || got.Format(DateLayout) != "2024-02-29" {
		t.Errorf("RelativeDate(+1m) = %v, %v, want 2024-02-29", got, ok)
	}
}

func TestRelativeDateRejects(t *testing.T) {
	now := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"", "this-week", "3d", "+d", "+3q", "2026-03-04", "someday"} {
		if got, ok := RelativeDate(in, now); ok {
			t.Errorf("RelativeDate(%q) = %v, want rejection", in, got)
		}
	}
}
