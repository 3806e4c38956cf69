package organ

import (
	"strings"
	"testing"

	"github.com/aidanlsb/odfkit/internal/ini"
)

func writeOrgan(t *testing.T, o *Organ) string {
	t.Helper()
	w := ini.NewWriter()
	o.Write(w, NewContext(o))
	return w.String()
}

func sectionLines(t *testing.T, out, name string) []string {
	t.Helper()
	var lines []string
	in := false
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "["):
			in = line == "["+name+"]"
		case in && line != "":
			lines = append(lines, line)
		}
	}
	if lines == nil {
		t.Fatalf("section [%s] not found in output:\n%s", name, out)
	}
	return lines
}

func TestManualNumbering(t *testing.T) {
	tests := []struct {
		name      string
		hasPedals bool
		wantFirst int
		wantLast  int
	}{
		{"with pedals", true, 0, 2},
		{"without pedals", false, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New()
			o.SetHasPedals(tt.hasPedals)
			a, b, c := NewManual("A"), NewManual("B"), NewManual("C")
			o.AddManual(a)
			o.AddManual(b)
			o.AddManual(c)

			if got := o.FirstManualNumber(); got != tt.wantFirst {
				t.Errorf("FirstManualNumber() = %d, want %d", got, tt.wantFirst)
			}
			if got := o.LastManualNumber(); got != tt.wantLast {
				t.Errorf("LastManualNumber() = %d, want %d", got, tt.wantLast)
			}
			if got := o.ManualByNumber(tt.wantFirst + 1); got != b {
				t.Errorf("ManualByNumber(%d) = %v, want B", tt.wantFirst+1, got)
			}
			if got := o.ManualNumber(NewManual("stray")); got != -1 {
				t.Errorf("ManualNumber(stray) = %d, want -1", got)
			}
		})
	}
}

func TestNumberOfManualsExcludesPedal(t *testing.T) {
	o := New()
	o.SetHasPedals(true)
	o.AddManual(NewManual("Pedal"))
	o.AddManual(NewManual("Great"))

	out := writeOrgan(t, o)
	if !strings.Contains(out, "NumberOfManuals=1\n") {
		t.Errorf("expected NumberOfManuals=1, got:\n%s", out)
	}
	if !strings.Contains(out, "[Manual000]") || !strings.Contains(out, "[Manual001]") {
		t.Errorf("expected Manual000 and Manual001 sections, got:\n%s", out)
	}
}

func TestStopsRenumberedInManualOrder(t *testing.T) {
	o := New()
	great, swell := NewManual("Great"), NewManual("Swell")
	o.AddManual(great)
	o.AddManual(swell)

	gs1, gs2 := NewStop("Principal 8"), NewStop("Octave 4")
	ss1 := NewStop("Gedackt 8")
	// Add out of order to make sure numbering follows manual order.
	swell.AddStop(ss1)
	great.AddStop(gs1)
	great.AddStop(gs2)

	if got := o.StopNumber(ss1); got != 3 {
		t.Errorf("StopNumber(swell stop) = %d, want 3", got)
	}

	out := writeOrgan(t, o)
	swellLines := sectionLines(t, out, "Manual002")
	if !containsLine(swellLines, "Stop001=003") {
		t.Errorf("swell should reference Stop003, got %v", swellLines)
	}
	if lines := sectionLines(t, out, "Stop003"); !containsLine(lines, "Name=Gedackt 8") {
		t.Errorf("Stop003 should be the swell stop, got %v", lines)
	}
}

func TestReorderingKeepsReferences(t *testing.T) {
	o := New()
	m := NewManual("Great")
	o.AddManual(m)
	t1, t2 := NewTremulant("Trem A"), NewTremulant("Trem B")
	o.AddTremulant(t1)
	o.AddTremulant(t2)
	m.AddTremulant(t2)

	o.RemoveTremulant(t1)
	if got := o.IndexOfTremulant(t2); got != 0 {
		t.Fatalf("IndexOfTremulant = %d, want 0", got)
	}
	out := writeOrgan(t, o)
	lines := sectionLines(t, out, "Manual001")
	if !containsLine(lines, "Tremulant001=001") {
		t.Errorf("manual should now reference Tremulant001, got %v", lines)
	}
	if !m.HasTremulant(t2) || m.HasTremulant(t1) {
		t.Errorf("manual tremulants = %v", m.Tremulants())
	}
}

func TestRemoveManualKeepsDivisionalCouplerTargets(t *testing.T) {
	o := New()
	a, b, c := NewManual("A"), NewManual("B"), NewManual("C")
	o.AddManual(a)
	o.AddManual(b)
	o.AddManual(c)
	dc := NewDivisionalCoupler("B link")
	o.AddDivisionalCoupler(dc)
	dc.AddManual(b)

	o.RemoveManual(a)

	if !dc.HasManual(b) {
		t.Error("divisional coupler lost manual B")
	}
	if dc.HasManual(c) || dc.HasManual(a) {
		t.Errorf("divisional coupler manuals = %v, want only B", dc.Manuals())
	}
	if got := o.IndexOfManual(b); got != 0 {
		t.Fatalf("IndexOfManual(B) = %d, want 0", got)
	}
	lines := sectionLines(t, writeOrgan(t, o), "DivisionalCoupler001")
	if !containsLine(lines, "NumberOfManuals=1") || !containsLine(lines, "Manual001=001") {
		t.Errorf("divisional coupler should reference Manual001, got %v", lines)
	}
}

func TestRemoveManualCascades(t *testing.T) {
	o := New()
	great, swell := NewManual("Great"), NewManual("Swell")
	o.AddManual(great)
	o.AddManual(swell)

	stop := NewStop("Trompette 8")
	swell.AddStop(stop)
	div := NewDivisional("Swell 1")
	swell.AddDivisional(div)
	div.SetStop(stop, true)

	coupler := NewCoupler("Swell to Great")
	great.AddCoupler(coupler)
	coupler.SetDestinationManual(swell)

	gen := NewGeneral("General 1")
	o.AddGeneral(gen)
	gen.SetStop(stop, true)

	dc := NewDivisionalCoupler("Sw/Gt")
	o.AddDivisionalCoupler(dc)
	dc.AddManual(great)
	dc.AddManual(swell)

	piston := NewReversiblePiston("Trompette")
	o.AddReversiblePiston(piston)
	piston.SetTarget(stop)

	extra := NewPanel("Swell Console")
	o.AddPanel(extra)
	extra.AddGUIElement(NewGUIManual(swell))
	extra.AddGUIElement(NewGUIStop(stop, &extra.DisplayMetrics))

	p := o.MainPanel()
	p.AddGUIElement(NewGUIManual(swell))
	p.AddGUIElement(NewGUIStop(stop, &p.DisplayMetrics))
	p.AddGUIElement(NewGUIDivisional(div, &p.DisplayMetrics))
	p.AddGUIElement(NewGUISetterDivisional(swell, 1, BankNone, &p.DisplayMetrics))
	keep := NewGUIManual(great)
	p.AddGUIElement(keep)

	o.RemoveManual(swell)

	if o.IndexOfManual(swell) != -1 {
		t.Fatal("swell still in organ")
	}
	if gen.HasStop(stop) {
		t.Error("general still references removed stop")
	}
	if dc.HasManual(swell) {
		t.Error("divisional coupler still references removed manual")
	}
	if piston.Target() != nil {
		t.Error("reversible piston still targets removed stop")
	}
	if coupler.DestinationManual() == swell {
		t.Error("coupler still points at removed manual")
	}
	for _, e := range []Entity{swell, stop, div} {
		if o.HasItemAsGUIElement(e) {
			t.Errorf("panel still shows %s", e.DisplayName())
		}
	}
	if got := p.GUIElements(); len(got) != 1 || got[0] != keep {
		t.Errorf("panel elements = %v, want only the Great keyboard", got)
	}
	if got := extra.GUIElements(); len(got) != 0 {
		t.Errorf("extra panel elements = %v, want none", got)
	}
}

func TestRemoveSwitchCascades(t *testing.T) {
	o := New()
	sw := NewSwitch("Ventil")
	o.AddSwitch(sw)
	m := NewManual("Great")
	o.AddManual(m)
	m.AddSwitch(sw)

	stop := NewStop("Mixture")
	m.AddStop(stop)
	stop.SetFunction(FunctionAnd)
	stop.AddSwitch(sw)

	trem := NewTremulant("Tremulant")
	o.AddTremulant(trem)
	trem.SetFunction(FunctionOr)
	trem.AddSwitch(sw)

	o.MainPanel().AddGUIElement(NewGUISwitch(sw, nil))

	o.RemoveSwitch(sw)

	if stop.HasSwitch(sw) || trem.HasSwitch(sw) || m.HasSwitch(sw) {
		t.Error("switch reference survived removal")
	}
	if o.MainPanel().NumberOfGUIElements() != 0 {
		t.Error("switch element survived removal")
	}
}

func TestCheckStructure(t *testing.T) {
	o := New()
	log := NewDiagnostics()
	o.CheckStructure(log)
	if got := len(log.Warnings()); got != 2 {
		t.Fatalf("got %d warnings, want 2: %v", got, log.Issues())
	}

	o.AddWindchestGroup(NewWindchestGroup("Main"))
	o.MainPanel().AddGUIElement(NewGUILabel("Title"))
	log = NewDiagnostics()
	o.CheckStructure(log)
	if got := log.Issues(); len(got) != 0 {
		t.Errorf("got %d issues for a complete organ: %v", len(got), got)
	}
}

func TestMainPanelCannotBeRemoved(t *testing.T) {
	o := New()
	extra := NewPanel("Pedal")
	o.AddPanel(extra)
	o.RemovePanel(o.MainPanel())
	if o.NumberOfPanels() != 2 {
		t.Fatalf("NumberOfPanels = %d, want 2", o.NumberOfPanels())
	}
	o.RemovePanel(extra)
	if o.NumberOfPanels() != 1 {
		t.Errorf("NumberOfPanels = %d, want 1", o.NumberOfPanels())
	}
}

func TestOnModified(t *testing.T) {
	o := New()
	calls := 0
	o.OnModified = func() { calls++ }
	o.AddEnclosure(NewEnclosure("Swell"))
	o.SetHasPedals(true)
	if calls != 2 {
		t.Errorf("OnModified called %d times, want 2", calls)
	}
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
