package organ

import (
	"strings"
	"testing"

	"github.com/aidanlsb/odfkit/internal/ini"
)

func section(t *testing.T, body string) ini.Section {
	t.Helper()
	f, err := ini.ParseString("[E]\n" + body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return f.Section("E")
}

func writeElement(e Element, o *Organ, m *DisplayMetrics) []string {
	w := ini.NewWriter()
	e.Write(w, NewContext(o), m)
	return w.Lines()
}

func TestButtonImageNumClamp(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		piston bool
		want   int
	}{
		{"out of range drawstop", "DispImageNum=999\n", false, 1},
		{"valid drawstop", "DispImageNum=7\n", false, 7},
		{"drawstop range on piston", "DispImageNum=7\n", true, 1},
		{"valid piston", "DispImageNum=5\n", true, 5},
		{"not a number", "DispImageNum=abc\n", false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultDisplayMetrics()
			b := NewGUISetterButton("Set", &m)
			b.SetDisplayAsPiston(tt.piston, &m)
			b.defaultPiston = tt.piston
			b.Read(section(t, tt.body), nil, &m)
			if got := b.ImageNum(); got != tt.want {
				t.Errorf("ImageNum() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSetDisplayAsPistonResizes(t *testing.T) {
	m := DefaultDisplayMetrics()

	t.Run("default size follows style", func(t *testing.T) {
		o := New()
		man := NewManual("Great")
		o.AddManual(man)
		stop := NewStop("Principal 8")
		man.AddStop(stop)
		e := NewGUIStop(stop, &m)

		e.SetDisplayAsPiston(true, &m)
		if e.Width() != m.PistonWidth || e.Height() != m.PistonHeight {
			t.Errorf("size = %dx%d, want %dx%d", e.Width(), e.Height(), m.PistonWidth, m.PistonHeight)
		}
		if _, _, w, h := e.MouseRect(); w != m.PistonWidth || h != m.PistonHeight {
			t.Errorf("mouse rect = %dx%d", w, h)
		}
		if e.MouseRadius() != 0 {
			t.Errorf("MouseRadius() = %d, want 0 for a piston", e.MouseRadius())
		}
		got := writeElement(e, o, &m)
		if !containsLine(got, "DisplayAsPiston=Y") {
			t.Errorf("Write() = %v, want DisplayAsPiston=Y", got)
		}
		for _, l := range got {
			if strings.HasPrefix(l, "Width=") || strings.HasPrefix(l, "Height=") {
				t.Errorf("Write() emitted %s for a default size", l)
			}
		}

		e.SetDisplayAsPiston(false, &m)
		if e.Width() != m.DrawstopWidth || e.Height() != m.DrawstopHeight {
			t.Errorf("size after switching back = %dx%d", e.Width(), e.Height())
		}
		if want := min(m.DrawstopWidth, m.DrawstopHeight) / 2; e.MouseRadius() != want {
			t.Errorf("MouseRadius() = %d, want %d", e.MouseRadius(), want)
		}
	})

	t.Run("explicit size kept", func(t *testing.T) {
		e := NewGUISetterButton("Set", &m)
		e.SetSize(60, 30, &m)
		e.SetDisplayAsPiston(false, &m)
		if e.Width() != 60 || e.Height() != 30 {
			t.Errorf("size = %dx%d, want 60x30", e.Width(), e.Height())
		}
	})
}

func TestButtonWriteOmitsDefaults(t *testing.T) {
	o := New()
	man := NewManual("Great")
	o.AddManual(man)
	stop := NewStop("Principal 8")
	man.AddStop(stop)

	m := DefaultDisplayMetrics()
	e := NewGUIStop(stop, &m)
	got := writeElement(e, o, &m)
	want := []string{"Type=Stop", "Manual=001", "Stop=001"}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("Write() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestButtonRoundTrip(t *testing.T) {
	o := New()
	sw := NewSwitch("Zimbelstern")
	o.AddSwitch(sw)

	m := DefaultDisplayMetrics()
	m.DrawstopRows = 4
	m.DrawstopCols = 4
	body := "DispLabelText=Zimbel\nDispDrawstopRow=3\nDispDrawstopCol=2\nDispImageNum=4\nPositionX=120\n"
	e := NewGUISwitch(sw, &m)
	e.Read(section(t, body), nil, &m)

	if e.LabelText(e.ElementName()) != "Zimbel" {
		t.Errorf("LabelText = %q", e.LabelText(e.ElementName()))
	}
	if e.DrawstopRow() != 3 || e.DrawstopCol() != 2 {
		t.Errorf("drawstop place = %d,%d", e.DrawstopRow(), e.DrawstopCol())
	}

	lines := writeElement(e, o, &m)
	for _, want := range []string{"Type=Switch", "Switch=001", "DispLabelText=Zimbel", "DispDrawstopRow=3", "DispDrawstopCol=2", "DispImageNum=4", "PositionX=120"} {
		if !containsLine(lines, want) {
			t.Errorf("missing %q in %v", want, lines)
		}
	}
	for _, l := range lines {
		if strings.HasPrefix(l, "PositionY=") || strings.HasPrefix(l, "Width=") {
			t.Errorf("default written: %q", l)
		}
	}
}

func TestDrawstopPlaceRejectsOutsideGrid(t *testing.T) {
	m := DefaultDisplayMetrics()
	e := NewGUISetterButton("GC", &m)
	e.Read(section(t, "DispDrawstopRow=50\nDispButtonCol=40\n"), nil, &m)
	if e.DrawstopRow() != 1 {
		t.Errorf("DrawstopRow = %d, want 1", e.DrawstopRow())
	}
	if e.ButtonCol() != 1 {
		t.Errorf("ButtonCol = %d, want 1", e.ButtonCol())
	}
}

func TestLabelDefaults(t *testing.T) {
	m := DefaultDisplayMetrics()
	l := NewGUILabel("Hauptwerk")
	l.Read(section(t, "Name=Hauptwerk\nDispImageNum=40\n"), nil, &m)
	if l.ImageNum() != 1 {
		t.Errorf("ImageNum = %d, want 1", l.ImageNum())
	}
	lines := writeElement(l, New(), &m)
	want := []string{"Type=Label", "Name=Hauptwerk"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("Write() = %v, want %v", lines, want)
	}
}

func TestEnclosureMouseDefaults(t *testing.T) {
	e := NewGUIEnclosure(NewEnclosure("Swell"))
	left, top, width, height := e.MouseRect()
	if left != 0 || top != 13 || width != 46 || height != 35 {
		t.Errorf("MouseRect = %d,%d,%d,%d", left, top, width, height)
	}
	start, end := e.MouseAxis()
	if start != 11 || end != 22 {
		t.Errorf("MouseAxis = %d,%d, want 11,22", start, end)
	}
}

func TestSwellSetterElement(t *testing.T) {
	e := NewGUIEnclosure(nil)
	if !e.IsSwell() || e.ElementName() != "Swell" {
		t.Fatalf("expected swell element, got %q", e.ElementName())
	}
	m := DefaultDisplayMetrics()
	lines := writeElement(e, New(), &m)
	if len(lines) != 1 || lines[0] != "Type=Swell" {
		t.Errorf("Write() = %v", lines)
	}
}

func TestSetterTypeNames(t *testing.T) {
	o := New()
	o.SetHasPedals(true)
	pedal, great := NewManual("Pedal"), NewManual("Great")
	o.AddManual(pedal)
	o.AddManual(great)

	tests := []struct {
		name string
		el   Element
		want string
	}{
		{"divisional", NewGUISetterDivisional(great, 3, BankNone, nil), "Setter001Divisional003"},
		{"prev bank", NewGUISetterDivisional(pedal, 0, BankPrev, nil), "Setter000DivisionalPrevBank"},
		{"next bank", NewGUISetterDivisional(great, 0, BankNext, nil), "Setter001DivisionalNextBank"},
		{"general", NewGUISetterGeneral(7, nil), "General07"},
		{"bank label", NewGUIDivisionalBankLabel(great), "Setter001DivisionalBank"},
		{"crescendo label", NewGUISetterLabel("CrescendoLabel"), "CrescendoLabel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.ElementName(); got != tt.want {
				t.Errorf("ElementName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestElementClonesAreIndependent(t *testing.T) {
	e := NewGUIEnclosure(NewEnclosure("Swell"))
	e.Bitmaps = []EnclosureBitmap{{Image: "a.bmp"}}
	c := e.Clone().(*GUIEnclosure)
	c.Bitmaps[0].Image = "b.bmp"
	if e.Bitmaps[0].Image != "a.bmp" {
		t.Error("clone shares bitmaps with original")
	}
}
