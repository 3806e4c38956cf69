package odf

import (
	"testing"
)

func TestSkeleton(t *testing.T) {
	tests := []struct {
		name      string
		manuals   int
		pedals    bool
		wantFirst string
		wantTotal int
	}{
		{"manuals only", 2, false, "Great", 2},
		{"with pedal", 3, true, "Pedal", 4},
		{"beyond named", 7, false, "Great", 7},
		{"pedal only", 0, true, "Pedal", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Skeleton("St. Bavo", tt.manuals, tt.pedals)
			if o.NumberOfManuals() != tt.wantTotal {
				t.Fatalf("NumberOfManuals = %d, want %d", o.NumberOfManuals(), tt.wantTotal)
			}
			if got := o.ManualAt(0).Name; got != tt.wantFirst {
				t.Errorf("first manual = %q, want %q", got, tt.wantFirst)
			}

			data, err := Encode(o, SaveOptions{})
			if err != nil {
				t.Fatal(err)
			}
			back, log := mustParse(t, string(data))
			if back.NumberOfManuals() != tt.wantTotal || back.HasPedals() != tt.pedals {
				t.Errorf("reparsed manuals = %d pedals = %v", back.NumberOfManuals(), back.HasPedals())
			}
			if n := len(back.MainPanel().Manuals()); n != tt.wantTotal {
				t.Errorf("panel keyboards = %d, want %d", n, tt.wantTotal)
			}
			if tt.pedals && !back.MainPanel().Manuals()[0].IsPedal() {
				t.Error("first keyboard not drawn as pedal")
			}
			if len(log.Warnings()) != 0 {
				t.Errorf("skeleton produced warnings: %v", log.Warnings())
			}
		})
	}

	if got := Skeleton("X", 7, false).ManualAt(6).Name; got != "Manual 7" {
		t.Errorf("seventh manual = %q", got)
	}
}
