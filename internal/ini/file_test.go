package ini

import (
	"strings"
	"testing"
)

func TestParseNormalizesValues(t *testing.T) {
	text := `; leading comment
[Organ]
ChurchName =  St. Anne   ; trailing note
HasPedals=Y
Empty=
NoEquals line
[Manual001]
Name=Great
Name=Hauptwerk
`
	f, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	organ := f.Section("Organ")
	if got := organ.String("ChurchName", ""); got != "St. Anne" {
		t.Errorf("ChurchName = %q, want %q", got, "St. Anne")
	}
	if !organ.Has("Empty") {
		t.Error("expected Empty key to be present")
	}
	if got := organ.String("Empty", "x"); got != "" {
		t.Errorf("Empty = %q, want empty string", got)
	}
	if organ.Has("NoEquals line") {
		t.Error("line without '=' must be ignored")
	}

	manual := f.Section("Manual001")
	if got := manual.String("Name", ""); got != "Hauptwerk" {
		t.Errorf("duplicate key should keep last value, got %q", got)
	}
	if keys := manual.Keys(); len(keys) != 1 {
		t.Errorf("expected a single Name key, got %v", keys)
	}

	if got := f.Groups(); strings.Join(got, ",") != "Organ,Manual001" {
		t.Errorf("Groups() = %v", got)
	}
}

func TestSectionTypedReads(t *testing.T) {
	f, err := ParseString(`[S]
Count=12
Neg=-3
Padded=007
Bad=twelve
Big=999
Yes=y
No=N
Maybe=perhaps
Ratio=1.5
`)
	if err != nil {
		t.Fatal(err)
	}
	s := f.Section("S")

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"in range", s.Int("Count", 0, 100, 5), 12},
		{"negative", s.Int("Neg", -10, 10, 0), -3},
		{"zero padded", s.Int("Padded", 0, 10, 0), 7},
		{"not a number", s.Int("Bad", 0, 100, 5), 5},
		{"out of range", s.Int("Big", 0, 100, 5), 5},
		{"missing", s.Int("Missing", 0, 100, 5), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}

	if !s.Bool("Yes", false) || s.Bool("No", true) {
		t.Error("Y/N booleans misread")
	}
	if !s.Bool("Maybe", true) {
		t.Error("invalid boolean should return default")
	}
	if got := s.Float("Ratio", 0, 2, 0); got != 1.5 {
		t.Errorf("Float = %v", got)
	}
	if got := s.Float("Ratio", 0, 1, 0.25); got != 0.25 {
		t.Errorf("out-of-range float should return default, got %v", got)
	}
	if _, ok := s.IntOK("Big", 0, 100); ok {
		t.Error("IntOK should reject out of range value")
	}
}

func TestMissingSectionFallsBack(t *testing.T) {
	var f *File
	s := f.Section("Nope")
	if s.Exists() || s.Has("x") {
		t.Fatal("nil file should not have sections")
	}
	if s.String("x", "d") != "d" || s.Int("x", 0, 1, 1) != 1 {
		t.Error("missing section should return defaults")
	}
}

func TestDecodeLatin1AndBOM(t *testing.T) {
	latin1 := []byte("[Organ]\nChurchName=Eglise St-Andr\xe9\n")
	f, err := Parse(latin1)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Section("Organ").String("ChurchName", ""); got != "Eglise St-André" {
		t.Errorf("latin1 decode = %q", got)
	}

	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("[Organ]\nChurchName=Dom\n")...)
	f, err = Parse(withBOM)
	if err != nil {
		t.Fatal(err)
	}
	if !f.HasGroup("Organ") {
		t.Error("BOM should be stripped before the first group header")
	}
}

func TestWriterAndEncode(t *testing.T) {
	w := NewWriter()
	w.Section("Organ")
	w.Set("ChurchName", "Dom")
	w.SetBool("HasPedals", true)
	w.Section("Manual001")
	w.SetIndex("Stop001", 4)
	w.SetIndex("Stop002", -12)
	w.SetFloat("Gain", -1.5)
	w.SetInt("NumberOfStops", 2)

	want := "[Organ]\nChurchName=Dom\nHasPedals=Y\n\n[Manual001]\nStop001=004\nStop002=-012\nGain=-1.5\nNumberOfStops=2\n"
	if got := w.String(); got != want {
		t.Errorf("writer output:\n%s\nwant:\n%s", got, want)
	}

	b, err := Encode(w.String(), true)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) < 3 || b[0] != 0xEF || b[1] != 0xBB || b[2] != 0xBF {
		t.Error("expected UTF-8 BOM prefix")
	}
}
