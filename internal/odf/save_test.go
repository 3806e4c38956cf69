package odf

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/aidanlsb/odfkit/internal/organ"
	"github.com/aidanlsb/odfkit/internal/testutil"
)

func mustEncode(t *testing.T, o *organ.Organ) []byte {
	t.Helper()
	data, err := Encode(o, SaveOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func TestEncodeIsStable(t *testing.T) {
	tests := []struct {
		name string
		odf  string
	}{
		{"minimal", testutil.MinimalODF()},
		{"modern console", testutil.ModernConsoleODF()},
		{"legacy console", testutil.LegacyConsoleODF()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := mustParse(t, tt.odf)
			first := mustEncode(t, o)

			again, _ := mustParse(t, string(first))
			second := mustEncode(t, again)

			if !bytes.Equal(first, second) {
				t.Errorf("second encode differs\nfirst:\n%s\nsecond:\n%s", first, second)
			}
		})
	}
}

func TestEncodeWritesModernDialect(t *testing.T) {
	o, _ := mustParse(t, testutil.LegacyConsoleODF())
	out := string(mustEncode(t, o))

	for _, want := range []string{
		"[Panel000]",
		"[Panel000Image001]",
		"[Panel000Element005]",
		"Type=Setter001Divisional001",
		"DispDrawstopCols=4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	for _, legacy := range []string{"[Label001]", "[SetterElement001]", "Displayed="} {
		if strings.Contains(out, legacy) {
			t.Errorf("output still contains legacy %q", legacy)
		}
	}

	reparsed, _ := mustParse(t, out)
	if reparsed.MainPanel().NumberOfGUIElements() != 5 {
		t.Errorf("reparsed main panel has %d elements, want 5", reparsed.MainPanel().NumberOfGUIElements())
	}
}

func TestEncodeRenumbersAfterRemoval(t *testing.T) {
	o, _ := mustParse(t, `[Organ]
ChurchName=Test
HasPedals=N
NumberOfManuals=1
NumberOfWindchestGroups=1

[Panel000]
NumberOfGUIElements=1

[Panel000Element001]
Type=Stop
Manual=001
Stop=002

[WindchestGroup001]
Name=Main

[Manual001]
Name=Great
NumberOfStops=2
Stop001=001
Stop002=002

[Stop001]
Name=Bourdon 16
WindchestGroup=001
NumberOfLogicalPipes=1

[Stop002]
Name=Octave 4
WindchestGroup=001
NumberOfLogicalPipes=1
`)
	great := o.ManualAt(0)
	great.RemoveStop(great.StopAt(0))

	out, _ := mustParse(t, string(mustEncode(t, o)))
	if out.ManualAt(0).NumberOfStops() != 1 {
		t.Fatalf("stops = %d, want 1", out.ManualAt(0).NumberOfStops())
	}
	if got := out.MainPanel().GUIElementAt(0).ElementName(); got != "Octave 4" {
		t.Errorf("element points at %q, want Octave 4", got)
	}
}

func TestSave(t *testing.T) {
	fix := testutil.NewTestOrgan(t).
		WithODF(testutil.ModernConsoleODF()).
		WithImage("images/wood.png", 64, 32).
		Build()
	ctx := context.Background()

	o, _, err := Load(ctx, fix.ODFPath, Options{})
	if err != nil {
		t.Fatal(err)
	}
	o.ChurchName = "Saved Church"

	if err := Save(o, fix.ODFPath, SaveOptions{BOM: true, Backup: true, Separator: `\`}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(fix.ODFPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("saved file has no BOM")
	}
	if !strings.Contains(string(raw), `Image=images\wood.png`) {
		t.Errorf("image reference not made relative:\n%s", raw)
	}
	if !fix.FileExists("test.organ.bak") {
		t.Error("backup not kept")
	}
	if !strings.Contains(fix.ReadFile("test.organ.bak"), "ChurchName=Test Church") {
		t.Error("backup does not hold the previous content")
	}

	again, _, err := Load(ctx, fix.ODFPath, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if again.ChurchName != "Saved Church" {
		t.Errorf("ChurchName = %q", again.ChurchName)
	}
	if img := again.MainPanel().Images()[0]; img.Width() != 64 {
		t.Errorf("image width = %d, want 64", img.Width())
	}
}
