package sqlutil

import "testing"

func TestInClauseArgs(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		ph    string
		nargs int
	}{
		{"empty", nil, "NULL", 0},
		{"one", []string{"a"}, "?", 1},
		{"three", []string{"a", "b", "c"}, "?, ?, ?", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ph, args := InClauseArgs(tt.items)
			if ph != tt.ph {
				t.Errorf("placeholders = %q, want %q", ph, tt.ph)
			}
			if len(args) != tt.nargs {
				t.Errorf("len(args) = %d, want %d", len(args), tt.nargs)
			}
		})
	}
}
