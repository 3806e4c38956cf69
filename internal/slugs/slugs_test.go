package slugs

import "testing"

func TestOrganSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"St. Mary Church", "st-mary-church"},
		{"Friesach", "friesach"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Burea Church.organ", "burea-church"},
		{"BAROQUE.ORGAN", "baroque"},
		{"Sankt Bavo, Haarlem", "sankt-bavo-haarlem"},
		{"!!!", "organ"},
		{"", "organ"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := OrganSlug(tt.in); got != tt.want {
				t.Fatalf("OrganSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("Test Church"); got != "test-church.organ" {
		t.Errorf("FileName = %q", got)
	}
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"bavo": true, "bavo-2": true}
	isTaken := func(s string) bool { return taken[s] }

	tests := []struct {
		base string
		want string
	}{
		{"haarlem", "haarlem"},
		{"bavo", "bavo-3"},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			if got := Unique(tt.base, isTaken); got != tt.want {
				t.Errorf("Unique(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}
