package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeRef(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{`images\stops\a.bmp`, "images/stops/a.bmp"},
		{`.\images\a.bmp`, "images/a.bmp"},
		{`images\\a.bmp`, "images/a.bmp"},
		{"images/a.bmp", "images/a.bmp"},
	}
	for _, tc := range tests {
		if got := NormalizeRef(tc.in); got != tc.want {
			t.Fatalf("NormalizeRef(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Images", "Stops"), 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "Images", "Stops", "Principal.bmp")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := New(dir)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"exact backslashes", `Images\Stops\Principal.bmp`, target},
		{"different case", `images\stops\principal.BMP`, target},
		{"missing file", `Images\Stops\Octave.bmp`, ""},
		{"directory is not a file", `Images\Stops`, ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := root.Resolve(tt.ref); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestRelative(t *testing.T) {
	dir := t.TempDir()
	root := New(dir)

	t.Run("inside root uses backslashes", func(t *testing.T) {
		got := root.Relative(filepath.Join(dir, "Images", "a.bmp"))
		if got != `Images\a.bmp` {
			t.Errorf("Relative = %q", got)
		}
	})

	t.Run("custom separator", func(t *testing.T) {
		r := &Root{Dir: dir, Separator: "/"}
		if got := r.Relative(filepath.Join(dir, "Images", "a.bmp")); got != "Images/a.bmp" {
			t.Errorf("Relative = %q", got)
		}
	})

	t.Run("outside root unchanged", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(dir), "elsewhere.bmp")
		if got := root.Relative(outside); got != outside {
			t.Errorf("Relative = %q, want %q", got, outside)
		}
	})

	t.Run("unresolved reference unchanged", func(t *testing.T) {
		if got := root.Relative(`Images\missing.bmp`); got != `Images\missing.bmp` {
			t.Errorf("Relative = %q", got)
		}
	})
}
