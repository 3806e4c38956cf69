package organ

import (
	"fmt"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// PathResolver converts between organ-relative references stored in the file
// and absolute paths used at runtime.
type PathResolver interface {
	// Resolve returns the absolute path of ref when the file exists, or "".
	Resolve(ref string) string
	// Relative returns the organ-relative form of an absolute path.
	Relative(abs string) string
}

// ImageProber reports the pixel dimensions of an image file.
type ImageProber interface {
	Dimensions(path string) (width, height int, err error)
}

// Context carries the collaborators that reads and writes need. It replaces
// any global application state: entities only see what is passed here.
type Context struct {
	Organ  *Organ
	Log    *Diagnostics
	Paths  PathResolver
	Images ImageProber
}

// NewContext returns a context over o with a fresh diagnostics log.
func NewContext(o *Organ) *Context {
	return &Context{Organ: o, Log: NewDiagnostics()}
}

// resolve maps a stored reference to an absolute path when possible and
// otherwise keeps it verbatim.
func (c *Context) resolve(ref string) string {
	if ref == "" || c == nil || c.Paths == nil {
		return ref
	}
	if abs := c.Paths.Resolve(ref); abs != "" {
		return abs
	}
	return ref
}

// relative is the inverse of resolve, used at the serialization boundary.
func (c *Context) relative(path string) string {
	if path == "" || c == nil || c.Paths == nil {
		return path
	}
	return c.Paths.Relative(path)
}

// imageSize probes path; ok is false when there is no image or probing fails.
func (c *Context) imageSize(path string) (w, h int, ok bool) {
	if path == "" || c == nil || c.Images == nil {
		return 0, 0, false
	}
	w, h, err := c.Images.Dimensions(path)
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func (c *Context) log() *Diagnostics {
	if c == nil {
		return nil
	}
	return c.Log
}

func (c *Context) organ() *Organ {
	if c == nil || c.Organ == nil {
		return New()
	}
	return c.Organ
}

// Section name helpers.

func numbered(prefix string, n int) string {
	return prefix + ini.Num(n)
}

// ManualSection returns the group name for ODF manual number n.
func ManualSection(n int) string { return numbered("Manual", n) }

// PanelSection returns the group name for panel n (0 is the main panel).
func PanelSection(n int) string { return numbered("Panel", n) }

// PanelElementSection returns the group for element i (1-based) of panel n.
func PanelElementSection(panel, i int) string {
	return fmt.Sprintf("%sElement%s", PanelSection(panel), ini.Num(i))
}

// PanelImageSection returns the group for image i (1-based) of panel n.
func PanelImageSection(panel, i int) string {
	return fmt.Sprintf("%sImage%s", PanelSection(panel), ini.Num(i))
}
