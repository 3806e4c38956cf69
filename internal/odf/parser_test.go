package odf

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/Southclaws/fault/ftag"

	"github.com/aidanlsb/odfkit/internal/organ"
	"github.com/aidanlsb/odfkit/internal/testutil"
)

func mustParse(t *testing.T, text string) (*organ.Organ, *organ.Diagnostics) {
	t.Helper()
	o, log, err := Parse(context.Background(), []byte(text), "", Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return o, log
}

func TestParseMinimalOrgan(t *testing.T) {
	o, log := mustParse(t, testutil.MinimalODF())

	if o.NumberOfManuals() != 1 {
		t.Fatalf("NumberOfManuals = %d, want 1", o.NumberOfManuals())
	}
	st := o.ManualAt(0).StopAt(0)
	if st == nil || st.Name != "Principal 8" {
		t.Fatalf("first stop = %+v, want Principal 8", st)
	}
	main := o.MainPanel()
	if main.NumberOfGUIElements() != 1 {
		t.Fatalf("main panel has %d elements, want 1", main.NumberOfGUIElements())
	}
	if got := main.GUIElementAt(0).ElementName(); got != "Principal 8" {
		t.Errorf("element name = %q, want Principal 8", got)
	}
	if len(log.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", log.Warnings())
	}
}

func TestParseMissingOrganSection(t *testing.T) {
	o, log, err := Parse(context.Background(), []byte("[Manual001]\nName=Great\n"), "", Options{})
	if o != nil {
		t.Fatal("expected no organ")
	}
	if !errors.Is(err, ErrNoOrganSection) {
		t.Fatalf("err = %v, want ErrNoOrganSection", err)
	}
	if ftag.Get(err) != ftag.InvalidArgument {
		t.Errorf("tag = %v, want InvalidArgument", ftag.Get(err))
	}
	if log.Count(organ.CodeFatalOpen) != 1 {
		t.Errorf("fatal issues = %d, want 1", log.Count(organ.CodeFatalOpen))
	}
}

func TestParseReportsPhases(t *testing.T) {
	var percents []int
	opts := Options{Observer: ObserverFunc(func(percent int, label string) {
		if label == "" {
			t.Errorf("phase %d has no label", percent)
		}
		percents = append(percents, percent)
	})}
	if _, _, err := Parse(context.Background(), []byte(testutil.MinimalODF()), "", opts); err != nil {
		t.Fatal(err)
	}

	want := []int{5, 10, 15, 20, 25, 30, 40, 50, 55, 60, 65, 70, 75, 80, 90, 100}
	if !slices.Equal(percents, want) {
		t.Errorf("phases = %v, want %v", percents, want)
	}
}

func TestParseCancellation(t *testing.T) {
	t.Run("before start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		o, _, err := Parse(ctx, []byte(testutil.MinimalODF()), "", Options{})
		if o != nil || !errors.Is(err, context.Canceled) {
			t.Fatalf("organ=%v err=%v, want nil organ and context.Canceled", o, err)
		}
	})

	t.Run("between phases", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		var last int
		opts := Options{Observer: ObserverFunc(func(percent int, _ string) {
			last = percent
			if percent == 40 {
				cancel()
			}
		})}
		o, _, err := Parse(ctx, []byte(testutil.MinimalODF()), "", opts)
		if o != nil {
			t.Fatal("cancelled parse returned an organ")
		}
		if ftag.Get(err) != ftag.Cancelled {
			t.Errorf("tag = %v, want Cancelled", ftag.Get(err))
		}
		if last != 40 {
			t.Errorf("last phase = %d, want 40", last)
		}
	})
}

func TestCouplerToLaterManual(t *testing.T) {
	o, _ := mustParse(t, `[Organ]
ChurchName=Test
HasPedals=N
NumberOfManuals=2
NumberOfWindchestGroups=1

[Panel000]
NumberOfGUIElements=0

[WindchestGroup001]
Name=Main

[Manual001]
Name=Choir
NumberOfCouplers=1
Coupler001=001

[Coupler001]
Name=Great to Choir
UnisonOff=N
DestinationManual=002
DestinationKeyshift=0

[Manual002]
Name=Great
`)

	choir, great := o.ManualByNumber(1), o.ManualByNumber(2)
	c := choir.CouplerAt(0)
	if c == nil {
		t.Fatal("coupler not read")
	}
	if c.DestinationManual() != great {
		t.Errorf("destination = %v, want Great", c.DestinationManual().Name)
	}
	if !c.IsIntermanual() {
		t.Error("coupler should be intermanual")
	}
}

func TestPedalNumbering(t *testing.T) {
	o, _ := mustParse(t, `[Organ]
ChurchName=Test
HasPedals=Y
NumberOfManuals=1

[Panel000]
NumberOfGUIElements=2

[Panel000Element001]
Type=Manual
Manual=000

[Panel000Element002]
Type=Manual
Manual=001

[Manual000]
Name=Pedal
NumberOfLogicalKeys=32
NumberOfAccessibleKeys=32

[Manual001]
Name=Great
`)

	if o.NumberOfManuals() != 2 {
		t.Fatalf("NumberOfManuals = %d, want 2 with the pedal", o.NumberOfManuals())
	}
	if o.ManualByNumber(0).Name != "Pedal" {
		t.Errorf("Manual000 = %q", o.ManualByNumber(0).Name)
	}
	kb := o.MainPanel().Manuals()
	if len(kb) != 2 || !kb[0].IsPedal() || kb[1].IsPedal() {
		t.Errorf("pedal flag not on the first keyboard only")
	}
}

func TestParseRecoversFromMissingSections(t *testing.T) {
	o, log := mustParse(t, `[Organ]
ChurchName=Test
HasPedals=N
NumberOfManuals=0
NumberOfEnclosures=2
NumberOfWindchestGroups=1

[Panel000]
NumberOfGUIElements=3

[Panel000Element001]
Type=Enclosure
Enclosure=001

[Panel000Element002]
Type=Switch
Switch=004

[Enclosure001]
Name=Swell Box

[WindchestGroup001]
Name=Main
NumberOfEnclosures=1
Enclosure001=001
`)

	if o.NumberOfEnclosures() != 1 {
		t.Errorf("enclosures = %d, want 1", o.NumberOfEnclosures())
	}
	if o.MainPanel().NumberOfGUIElements() != 1 {
		t.Errorf("elements = %d, want 1", o.MainPanel().NumberOfGUIElements())
	}
	// Enclosure002 and Panel000Element003 are missing.
	if got := log.Count(organ.CodeMalformedSection); got != 2 {
		t.Errorf("malformed sections = %d, want 2: %v", got, log.Issues())
	}
	if got := log.Count(organ.CodeDanglingReference); got != 1 {
		t.Errorf("dangling references = %d, want 1", got)
	}
}

func TestStructuralWarnings(t *testing.T) {
	_, log := mustParse(t, "[Organ]\nChurchName=Empty\n")
	if got := log.Count(organ.CodeStructural); got != 2 {
		t.Errorf("structural warnings = %d, want 2: %v", got, log.Issues())
	}
}

func TestDialectEquivalence(t *testing.T) {
	legacy, _ := mustParse(t, testutil.LegacyConsoleODF())
	modern, _ := mustParse(t, testutil.ModernConsoleODF())

	counts := func(o *organ.Organ) []int {
		return []int{
			o.NumberOfManuals(),
			o.ManualAt(0).NumberOfStops(),
			o.NumberOfWindchestGroups(),
			o.NumberOfPanels(),
			o.MainPanel().NumberOfImages(),
			o.MainPanel().NumberOfGUIElements(),
		}
	}
	if l, m := counts(legacy), counts(modern); !slices.Equal(l, m) {
		t.Fatalf("legacy counts %v != modern counts %v", l, m)
	}

	for i := range modern.MainPanel().NumberOfGUIElements() {
		l := legacy.MainPanel().GUIElementAt(i)
		m := modern.MainPanel().GUIElementAt(i)
		if l.Kind() != m.Kind() || l.ElementName() != m.ElementName() {
			t.Errorf("element %d: legacy %v %q, modern %v %q", i, l.Kind(), l.ElementName(), m.Kind(), m.ElementName())
		}
	}

	stop, ok := legacy.MainPanel().GUIElementAt(2).(*organ.GUIStop)
	if !ok {
		t.Fatalf("element 2 is %T, want *organ.GUIStop", legacy.MainPanel().GUIElementAt(2))
	}
	if stop.DrawstopRow() != 2 || stop.DrawstopCol() != 3 {
		t.Errorf("legacy stop placed at %d,%d, want 2,3", stop.DrawstopRow(), stop.DrawstopCol())
	}
	if legacy.MainPanel().DrawstopCols != 4 {
		t.Errorf("legacy metrics not read from [Organ]")
	}
}

func TestModernExtraPanel(t *testing.T) {
	text := strings.Replace(testutil.MinimalODF(), "NumberOfPanels=0", "NumberOfPanels=1", 1) + `
[Panel001]
Name=Stops
Group=Side
HasPedals=N
NumberOfGUIElements=1
NumberOfImages=0

[Panel001Element001]
Type=Stop
Manual=001
Stop=001
`
	o, _ := mustParse(t, text)
	if o.NumberOfPanels() != 2 {
		t.Fatalf("panels = %d, want 2", o.NumberOfPanels())
	}
	p := o.PanelAt(1)
	if p.Name != "Stops" || p.Group != "Side" {
		t.Errorf("panel = %q/%q", p.Name, p.Group)
	}

	st := o.ManualAt(0).StopAt(0)
	if !p.HasItemAsGUIElement(st) || !o.MainPanel().HasItemAsGUIElement(st) {
		t.Fatal("stop should be shown on both panels")
	}
	o.ManualAt(0).RemoveStop(st)
	if o.HasItemAsGUIElement(st) {
		t.Error("removing the stop left elements behind")
	}
}

func TestLegacyExtraPanel(t *testing.T) {
	text := strings.Replace(testutil.LegacyConsoleODF(), "NumberOfSetterElements=2", "NumberOfSetterElements=2\nNumberOfPanels=1", 1) + `
[Panel001]
Name=Registration
NumberOfStops=1
Stop001=001
Stop001Manual=001
NumberOfSetterElements=1

[Panel001Stop001]
DispDrawstopRow=1
DispDrawstopCol=2

[Panel001SetterElement001]
Type=Set
`
	o, log := mustParse(t, text)
	if o.NumberOfPanels() != 2 {
		t.Fatalf("panels = %d, want 2: %v", o.NumberOfPanels(), log.Issues())
	}
	p := o.PanelAt(1)
	if p.NumberOfGUIElements() != 2 {
		t.Fatalf("extra panel has %d elements, want 2", p.NumberOfGUIElements())
	}
	if _, ok := p.GUIElementAt(0).(*organ.GUIStop); !ok {
		t.Errorf("first element is %T", p.GUIElementAt(0))
	}
	if got := p.GUIElementAt(1).ElementName(); got != "Set" {
		t.Errorf("setter element = %q, want Set", got)
	}
}

func TestLoadResolvesImages(t *testing.T) {
	fix := testutil.NewTestOrgan(t).
		WithODF(testutil.ModernConsoleODF()).
		WithImage("images/wood.png", 120, 80).
		Build()

	o, _, err := Load(context.Background(), fix.ODFPath, Options{})
	if err != nil {
		t.Fatal(err)
	}
	img := o.MainPanel().Images()[0]
	if img.Width() != 120 || img.Height() != 80 {
		t.Errorf("image size = %dx%d, want 120x80", img.Width(), img.Height())
	}
	if !strings.HasSuffix(img.Image, "wood.png") || !strings.HasPrefix(img.Image, fix.Path) {
		t.Errorf("image path not resolved: %q", img.Image)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(context.Background(), t.TempDir()+"/missing.organ", Options{})
	if ftag.Get(err) != ftag.NotFound {
		t.Errorf("tag = %v, want NotFound (err: %v)", ftag.Get(err), err)
	}
}
