package slugs

import "testing"

func TestComponentSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mobile App", "mobile-app"},
		{"Apollo.md", "apollo"},
		{"  Spaced   Out ", "spaced-out"},
		{"Café Plans", "cafe-plans"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ComponentSlug(tt.in); got != tt.want {
				t.Fatalf("ComponentSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTagSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"app", "app"},
		{"Work/Mobile App", "work/mobile-app"},
		{"/leading/", "leading"},
		{"a//b", "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := TagSlug(tt.in); got != tt.want {
				t.Fatalf("TagSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ship release", "Ship release"},
		{"Q3: plan/review", "Q3 plan review"},
		{"What? #urgent [[x]]", "What urgent x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FileName(tt.in); got != tt.want {
				t.Fatalf("FileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
