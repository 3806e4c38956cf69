package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aidanlsb/odfkit/internal/organ"
)

func TestTableAlignment(t *testing.T) {
	tbl := NewTable(3)
	tbl.AlignRight(1)
	tbl.AddRow("Great", "12", "stops")
	tbl.AddRow("Pedal", "4")

	got := tbl.String()
	want := "Great  12  stops\nPedal   4  \n"
	if got != want {
		t.Errorf("table =\n%q\nwant\n%q", got, want)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len = %d", tbl.Len())
	}
	if NewTable(2).String() != "" {
		t.Error("empty table should render nothing")
	}
}

func TestListBullets(t *testing.T) {
	l := NewList()
	l.Add("Principal 8")
	l.SetBullet("-")
	l.Add("Octave 4")
	if got := l.String(); got != "  - Principal 8\n  - Octave 4\n" {
		t.Errorf("list = %q", got)
	}
}

func TestIssueLine(t *testing.T) {
	tests := []struct {
		name   string
		issue  organ.Issue
		symbol string
	}{
		{"error", organ.Issue{Level: organ.LevelError, Message: "no organ"}, SymbolError},
		{"warning", organ.Issue{Level: organ.LevelWarning, Section: "Stop001", Message: "missing"}, SymbolWarning},
		{"notice", organ.Issue{Level: organ.LevelNotice, Message: "dropped"}, SymbolInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IssueLine(tt.issue)
			if !strings.HasPrefix(got, tt.symbol+" ") {
				t.Errorf("IssueLine = %q, want prefix %q", got, tt.symbol)
			}
			if !strings.Contains(got, tt.issue.Message) {
				t.Errorf("IssueLine = %q lost the message", got)
			}
			if tt.issue.Section != "" && !strings.Contains(got, "["+tt.issue.Section+"]") {
				t.Errorf("IssueLine = %q lost the section", got)
			}
		})
	}
}

func TestIssueCounts(t *testing.T) {
	tests := []struct {
		warnings, notices int
		want              string
	}{
		{0, 0, ""},
		{1, 0, "(1 warning)"},
		{0, 3, "(3 notices)"},
		{2, 1, "(2 warnings, 1 notice)"},
	}
	for _, tt := range tests {
		if got := IssueCounts(tt.warnings, tt.notices); got != tt.want {
			t.Errorf("IssueCounts(%d, %d) = %q, want %q", tt.warnings, tt.notices, got, tt.want)
		}
	}
}

func TestProgressSilentWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressTo(&buf, "Loading")
	p.OnPhaseStart(40, "stops")
	p.OnPhaseStart(100, "done")
	p.Done()
	if buf.Len() != 0 {
		t.Errorf("non-terminal progress wrote %q", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Haarlem", 10, "Haarlem"},
		{"Sankt Bavokerk Haarlem", 10, "Sankt Bav…"},
		{"Haarlem", 0, "Haarlem"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestDisplayContextWidth(t *testing.T) {
	d := NewDisplayContextWithWidth(100)
	if d.AvailableWidth(70) != 30 {
		t.Errorf("AvailableWidth = %d", d.AvailableWidth(70))
	}
}
