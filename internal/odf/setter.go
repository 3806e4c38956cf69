package odf

import (
	"regexp"
	"slices"
	"strconv"

	"github.com/aidanlsb/odfkit/internal/organ"
)

// SetterKind classifies a setter element type name.
type SetterKind int

const (
	// SetterButton is a plain setter piston (Set, GC, CrescendoNext, ...).
	SetterButton SetterKind = iota
	// SetterLabel is a setter display (PitchLabel, GeneralLabel, ...).
	SetterLabel
	// SetterSwell is the crescendo pedal.
	SetterSwell
	// SetterDivisional recalls divisional Number of Manual.
	SetterDivisional
	// SetterDivisionalPrevBank and SetterDivisionalNextBank step the
	// divisional bank of Manual.
	SetterDivisionalPrevBank
	SetterDivisionalNextBank
	// SetterDivisionalBank is the bank display of Manual.
	SetterDivisionalBank
	// SetterGeneral recalls setter general Number.
	SetterGeneral
)

func (k SetterKind) String() string {
	switch k {
	case SetterButton:
		return "button"
	case SetterLabel:
		return "label"
	case SetterSwell:
		return "swell"
	case SetterDivisional:
		return "divisional"
	case SetterDivisionalPrevBank:
		return "divisional-prev-bank"
	case SetterDivisionalNextBank:
		return "divisional-next-bank"
	case SetterDivisionalBank:
		return "divisional-bank"
	case SetterGeneral:
		return "general"
	}
	return "unknown"
}

// SetterSpec is a parsed setter type name. Manual is the ODF manual number
// and Number the divisional or general number; both are 0 when the kind has
// none.
type SetterSpec struct {
	Kind   SetterKind
	Type   string
	Manual int
	Number int
}

var (
	setterDivisionalRe = regexp.MustCompile(`^Setter(\d{3})Divisional(\d{3})$`)
	setterBankStepRe   = regexp.MustCompile(`^Setter(\d{3})Divisional(Prev|Next)Bank$`)
	setterBankLabelRe  = regexp.MustCompile(`^Setter(\d{3})DivisionalBank$`)
	setterGeneralRe    = regexp.MustCompile(`^General(\d{2})$`)
)

var setterLabels = []string{
	"CrescendoLabel",
	"GeneralLabel",
	"PitchLabel",
	"SequencerLabel",
	"TemperamentLabel",
	"TransposeLabel",
}

var setterButtons = []string{
	"CrescendoA", "CrescendoB", "CrescendoC", "CrescendoD",
	"CrescendoPrev", "CrescendoNext", "CrescendoCurrent", "CrescendoOverride",
	"Current", "Prev", "Next", "Home", "GC", "Set",
	"L0", "L1", "L2", "L3", "L4", "L5", "L6", "L7", "L8", "L9",
	"M1", "M10", "M100", "P1", "P10", "P100",
	"Regular", "Scope", "Scoped", "Full", "Insert", "Delete",
	"PitchP1", "PitchP10", "PitchP100", "PitchM1", "PitchM10", "PitchM100",
	"TemperamentPrev", "TemperamentNext",
	"TransposeUp", "TransposeDown",
	"GeneralPrev", "GeneralNext", "Save",
}

// ClassifySetter parses a setter element type name. ok is false for names
// outside the known vocabulary; callers fall back to a plain setter button.
func ClassifySetter(typeName string) (sp SetterSpec, ok bool) {
	sp.Type = typeName

	if m := setterDivisionalRe.FindStringSubmatch(typeName); m != nil {
		sp.Kind = SetterDivisional
		sp.Manual = atoi(m[1])
		sp.Number = atoi(m[2])
		return sp, true
	}
	if m := setterBankStepRe.FindStringSubmatch(typeName); m != nil {
		sp.Kind = SetterDivisionalNextBank
		if m[2] == "Prev" {
			sp.Kind = SetterDivisionalPrevBank
		}
		sp.Manual = atoi(m[1])
		return sp, true
	}
	if m := setterBankLabelRe.FindStringSubmatch(typeName); m != nil {
		sp.Kind = SetterDivisionalBank
		sp.Manual = atoi(m[1])
		return sp, true
	}
	if m := setterGeneralRe.FindStringSubmatch(typeName); m != nil {
		sp.Kind = SetterGeneral
		sp.Number = atoi(m[1])
		return sp, true
	}

	switch {
	case typeName == "Swell":
		sp.Kind = SetterSwell
	case slices.Contains(setterLabels, typeName):
		sp.Kind = SetterLabel
	case slices.Contains(setterButtons, typeName):
		sp.Kind = SetterButton
	default:
		sp.Kind = SetterButton
		return sp, false
	}
	return sp, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// newSetterElement builds the element for a setter type name. Unknown names
// become plain setter buttons and are logged; manual-bound kinds need the
// manual to exist.
func newSetterElement(typeName, section string, o *organ.Organ, m *organ.DisplayMetrics, log *organ.Diagnostics) organ.Element {
	sp, known := ClassifySetter(typeName)
	if !known {
		log.Dangling(section, "unknown setter type %q kept as a setter button", typeName)
	}

	switch sp.Kind {
	case SetterSwell:
		return organ.NewGUIEnclosure(nil)
	case SetterLabel:
		return organ.NewGUISetterLabel(sp.Type)
	case SetterGeneral:
		return organ.NewGUISetterGeneral(sp.Number, m)
	case SetterDivisional, SetterDivisionalPrevBank, SetterDivisionalNextBank, SetterDivisionalBank:
		man := o.ManualByNumber(sp.Manual)
		if man == nil {
			log.Dangling(section, "%s references unknown manual %d", typeName, sp.Manual)
			return nil
		}
		switch sp.Kind {
		case SetterDivisionalBank:
			return organ.NewGUIDivisionalBankLabel(man)
		case SetterDivisionalPrevBank:
			return organ.NewGUISetterDivisional(man, 0, organ.BankPrev, m)
		case SetterDivisionalNextBank:
			return organ.NewGUISetterDivisional(man, 0, organ.BankNext, m)
		}
		return organ.NewGUISetterDivisional(man, sp.Number, organ.BankNone, m)
	}
	return organ.NewGUISetterButton(sp.Type, m)
}
