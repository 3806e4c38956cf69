package odf

import (
	"testing"

	"github.com/aidanlsb/odfkit/internal/organ"
	"github.com/aidanlsb/odfkit/internal/testutil"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		odf  string
		want Dialect
	}{
		{"modern", testutil.ModernConsoleODF(), DialectModern},
		{"legacy", testutil.LegacyConsoleODF(), DialectLegacy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sniff([]byte(tt.odf))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Sniff = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	o, _ := mustParse(t, testutil.ModernConsoleODF())
	s := Summarize(o)

	want := Summary{
		ChurchName:      "Test Church",
		Manuals:         1,
		Stops:           1,
		Pipes:           1,
		WindchestGroups: 1,
		Panels:          1,
		Elements:        5,
		Images:          1,
	}
	if s != want {
		t.Errorf("Summarize =\n%+v\nwant\n%+v", s, want)
	}
}

func TestOutlines(t *testing.T) {
	o, log := mustParse(t, testutil.MinimalODF())
	log.Dangling("Extra", "synthetic notice")

	out := Outlines(o, log, organ.LevelWarning)
	if len(out.Manuals) != 1 || out.Manuals[0].Number != 1 || out.Manuals[0].Name != "Great" {
		t.Fatalf("manuals = %+v", out.Manuals)
	}
	if stops := out.Manuals[0].Stops; len(stops) != 1 || stops[0].Name != "Principal 8" || stops[0].Pipes != 1 {
		t.Errorf("stops = %+v", stops)
	}
	if len(out.Panels) != 1 || len(out.Panels[0].Elements) != 1 || out.Panels[0].Elements[0] != "Stop: Principal 8" {
		t.Errorf("panels = %+v", out.Panels)
	}
	if len(out.Issues) != 0 {
		t.Errorf("notices leaked into warning-level outline: %+v", out.Issues)
	}

	all := Outlines(o, log, organ.LevelNotice)
	if len(all.Issues) != 1 {
		t.Errorf("issues = %+v, want the synthetic notice", all.Issues)
	}
}
