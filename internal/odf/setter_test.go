package odf

import (
	"testing"

	"github.com/aidanlsb/odfkit/internal/organ"
)

func TestClassifySetter(t *testing.T) {
	tests := []struct {
		typeName string
		want     SetterSpec
		known    bool
	}{
		{"GC", SetterSpec{Kind: SetterButton}, true},
		{"CrescendoOverride", SetterSpec{Kind: SetterButton}, true},
		{"PitchLabel", SetterSpec{Kind: SetterLabel}, true},
		{"Swell", SetterSpec{Kind: SetterSwell}, true},
		{"General07", SetterSpec{Kind: SetterGeneral, Number: 7}, true},
		{"Setter002Divisional010", SetterSpec{Kind: SetterDivisional, Manual: 2, Number: 10}, true},
		{"Setter001DivisionalPrevBank", SetterSpec{Kind: SetterDivisionalPrevBank, Manual: 1}, true},
		{"Setter000DivisionalNextBank", SetterSpec{Kind: SetterDivisionalNextBank}, true},
		{"Setter003DivisionalBank", SetterSpec{Kind: SetterDivisionalBank, Manual: 3}, true},
		{"General7", SetterSpec{Kind: SetterButton}, false},
		{"Frobnicate", SetterSpec{Kind: SetterButton}, false},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			got, known := ClassifySetter(tt.typeName)
			tt.want.Type = tt.typeName
			if got != tt.want || known != tt.known {
				t.Errorf("ClassifySetter(%q) = %+v, %v; want %+v, %v", tt.typeName, got, known, tt.want, tt.known)
			}
		})
	}
}

func TestNewSetterElement(t *testing.T) {
	o := organ.New()
	o.AddManual(organ.NewManual("Great"))
	m := o.MainPanel().Metrics()

	tests := []struct {
		typeName string
		kind     organ.Kind
		dangling int
	}{
		{"Set", organ.KindSetterButton, 0},
		{"TransposeLabel", organ.KindSetterLabel, 0},
		{"Swell", organ.KindEnclosure, 0},
		{"General03", organ.KindSetterGeneral, 0},
		{"Setter001Divisional002", organ.KindSetterDivisional, 0},
		{"Setter001DivisionalBank", organ.KindSetterLabel, 0},
		{"Mystery", organ.KindSetterButton, 1},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			log := organ.NewDiagnostics()
			e := newSetterElement(tt.typeName, "SetterElement001", o, m, log)
			if e == nil {
				t.Fatal("no element")
			}
			if e.Kind() != tt.kind {
				t.Errorf("kind = %v, want %v", e.Kind(), tt.kind)
			}
			if got := log.Count(organ.CodeDanglingReference); got != tt.dangling {
				t.Errorf("dangling = %d, want %d", got, tt.dangling)
			}
		})
	}

	t.Run("unknown manual", func(t *testing.T) {
		log := organ.NewDiagnostics()
		if e := newSetterElement("Setter004Divisional001", "SetterElement001", o, m, log); e != nil {
			t.Errorf("got %T, want nil", e)
		}
		if log.Count(organ.CodeDanglingReference) != 1 {
			t.Error("unknown manual not logged")
		}
	})
}
