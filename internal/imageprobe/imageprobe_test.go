package imageprobe

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestDimensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stop.png")
	writePNG(t, path, 78, 69)

	p := New(0)
	for i := 0; i < 3; i++ {
		w, h, err := p.Dimensions(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w != 78 || h != 69 {
			t.Fatalf("Dimensions = %dx%d, want 78x69", w, h)
		}
	}
	hits, reads := p.Stats()
	if hits != 2 || reads != 1 {
		t.Errorf("hits=%d reads=%d, want 2 and 1", hits, reads)
	}
}

func TestDimensionsErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New(4)
	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.bmp")},
		{"not an image", bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := p.Dimensions(tt.path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
