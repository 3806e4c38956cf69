// Package testutil provides reusable fixtures for odfkit tests.
package testutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// TestOrgan is a temporary organ directory: one ODF plus any image files.
type TestOrgan struct {
	Path string
	// ODFPath is the absolute path of the organ definition once built.
	ODFPath string

	t       *testing.T
	odfName string
	odf     string
	files   map[string]string
	images  map[string][2]int
}

// NewTestOrgan creates a new test organ builder.
// Call Build() to create the actual directory.
func NewTestOrgan(t *testing.T) *TestOrgan {
	t.Helper()
	return &TestOrgan{
		t:       t,
		odfName: "test.organ",
		files:   make(map[string]string),
		images:  make(map[string][2]int),
	}
}

// WithODF sets the organ definition content.
func (o *TestOrgan) WithODF(content string) *TestOrgan {
	o.odf = content
	return o
}

// WithODFName changes the file name of the organ definition.
func (o *TestOrgan) WithODFName(name string) *TestOrgan {
	o.odfName = name
	return o
}

// WithFile adds a file relative to the organ directory.
func (o *TestOrgan) WithFile(path, content string) *TestOrgan {
	o.files[path] = content
	return o
}

// WithImage adds a PNG of the given size. The path is relative to the organ
// directory and uses '/' separators.
func (o *TestOrgan) WithImage(path string, width, height int) *TestOrgan {
	o.images[path] = [2]int{width, height}
	return o
}

// Build creates the directory and all configured files.
func (o *TestOrgan) Build() *TestOrgan {
	o.t.Helper()

	o.Path = o.t.TempDir()
	if o.odf != "" {
		o.writeFile(o.odfName, o.odf)
		o.ODFPath = filepath.Join(o.Path, o.odfName)
	}
	for path, content := range o.files {
		o.writeFile(path, content)
	}
	for path, size := range o.images {
		o.writeImage(path, size[0], size[1])
	}
	return o
}

func (o *TestOrgan) fullPath(relPath string) string {
	return filepath.Join(o.Path, filepath.FromSlash(relPath))
}

func (o *TestOrgan) mkdirFor(fullPath string) {
	o.t.Helper()
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		o.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
}

func (o *TestOrgan) writeFile(relPath, content string) {
	o.t.Helper()
	fullPath := o.fullPath(relPath)
	o.mkdirFor(fullPath)
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		o.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

func (o *TestOrgan) writeImage(relPath string, width, height int) {
	o.t.Helper()
	fullPath := o.fullPath(relPath)
	o.mkdirFor(fullPath)

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.Black)
	}
	f, err := os.Create(fullPath)
	if err != nil {
		o.t.Fatalf("failed to create image %s: %v", fullPath, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		o.t.Fatalf("failed to encode image %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the organ directory.
func (o *TestOrgan) ReadFile(relPath string) string {
	o.t.Helper()
	content, err := os.ReadFile(o.fullPath(relPath))
	if err != nil {
		o.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the organ directory.
func (o *TestOrgan) FileExists(relPath string) bool {
	o.t.Helper()
	_, err := os.Stat(o.fullPath(relPath))
	return err == nil
}
