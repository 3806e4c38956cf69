package organ

import "github.com/aidanlsb/odfkit/internal/ini"

// Kind identifies a panel element variant. The Type= string only exists at
// the file boundary.
type Kind int

const (
	KindManual Kind = iota
	KindEnclosure
	KindLabel
	KindStop
	KindCoupler
	KindDivisional
	KindGeneral
	KindSwitch
	KindReversiblePiston
	KindDivisionalCoupler
	KindTremulant
	KindSetterButton
	KindSetterDivisional
	KindSetterGeneral
	KindSetterLabel
)

var kindTypeNames = map[Kind]string{
	KindManual:            "Manual",
	KindEnclosure:         "Enclosure",
	KindLabel:             "Label",
	KindStop:              "Stop",
	KindCoupler:           "Coupler",
	KindDivisional:        "Divisional",
	KindGeneral:           "General",
	KindSwitch:            "Switch",
	KindReversiblePiston:  "ReversiblePiston",
	KindDivisionalCoupler: "DivisionalCoupler",
	KindTremulant:         "Tremulant",
}

// String returns the Type= value of the entity-backed kinds, or a generic
// name for setter kinds whose type string depends on the element.
func (k Kind) String() string {
	if s, ok := kindTypeNames[k]; ok {
		return s
	}
	switch k {
	case KindSetterButton:
		return "SetterButton"
	case KindSetterDivisional:
		return "SetterDivisional"
	case KindSetterGeneral:
		return "SetterGeneral"
	case KindSetterLabel:
		return "SetterLabel"
	}
	return "Unknown"
}

// KindForType maps a Type= value to an entity-backed kind. Setter types are
// not handled here.
func KindForType(typeName string) (Kind, bool) {
	for k, s := range kindTypeNames {
		if s == typeName {
			return k, true
		}
	}
	return 0, false
}

// Element is one item on a panel. The set of implementations is closed.
type Element interface {
	Kind() Kind
	// ElementName is the name shown for the element: the backing object's
	// name, or the setter type for setter elements.
	ElementName() string
	// References reports whether the element shows e.
	References(e Entity) bool
	// PositionX and PositionY return -1 when the element is laid out by the
	// panel grid.
	PositionX() int
	PositionY() int
	// Read loads the layout keys. Type and object references are resolved by
	// the caller that constructs the element.
	Read(s ini.Section, ctx *Context, m *DisplayMetrics)
	// Write emits Type, the object references, and the non-default layout keys.
	Write(w *ini.Writer, ctx *Context, m *DisplayMetrics)
	Clone() Element

	guiElement()
}

// position is the explicit placement shared by every element.
type position struct {
	x, y int
}

func newPosition() position { return position{x: -1, y: -1} }

// PositionX returns the explicit left coordinate, or -1.
func (p *position) PositionX() int { return p.x }

// PositionY returns the explicit top coordinate, or -1.
func (p *position) PositionY() int { return p.y }

// SetPosition places the element. -1 restores grid layout; other values
// outside the panel are ignored.
func (p *position) SetPosition(x, y int, m *DisplayMetrics) {
	if x == -1 || (x >= 0 && x <= m.ScreenSizeHoriz) {
		p.x = x
	}
	if y == -1 || (y >= 0 && y <= m.ScreenSizeVert) {
		p.y = y
	}
}

func (p *position) read(s ini.Section, m *DisplayMetrics) {
	p.x = s.Int("PositionX", 0, m.ScreenSizeHoriz, -1)
	p.y = s.Int("PositionY", 0, m.ScreenSizeVert, -1)
}

func (p *position) write(w *ini.Writer) {
	writeIntIfNot(w, "PositionX", p.x, -1)
	writeIntIfNot(w, "PositionY", p.y, -1)
}

// label holds the caption settings shared by buttons, enclosures and labels.
type label struct {
	Colour   Color
	FontSize FontSize
	FontName string
}

func (l *label) read(s ini.Section, defColour Color) {
	v, ok := s.Raw("DispLabelColour")
	l.Colour = readColor(v, ok, defColour)
	v, ok = s.Raw("DispLabelFontSize")
	l.FontSize = readFontSize(v, ok, NewFontSize(FontNormal))
	l.FontName = s.String("DispLabelFontName", "")
}

func (l *label) write(w *ini.Writer, defColour Color) {
	if l.Colour != defColour {
		w.Set("DispLabelColour", l.Colour.String())
	}
	if l.FontSize.Size() != FontNormal {
		w.Set("DispLabelFontSize", l.FontSize.String())
	}
	writeStringIfNot(w, "DispLabelFontName", l.FontName, "")
}

// rect is a rectangle relative to the element's origin.
type rect struct {
	Left, Top, Width, Height int
}

// readRect reads prefix{Left,Top,Width,Height} within an element of size
// w×h. Width and height default to the space left after the offset.
func readRect(s ini.Section, prefix string, w, h int) rect {
	var r rect
	r.Left = s.Int(prefix+"Left", 0, max(w-1, 0), 0)
	r.Top = s.Int(prefix+"Top", 0, max(h-1, 0), 0)
	r.Width = s.Int(prefix+"Width", 1, max(w-r.Left, 1), max(w-r.Left, 1))
	r.Height = s.Int(prefix+"Height", 1, max(h-r.Top, 1), max(h-r.Top, 1))
	return r
}

func writeRect(wr *ini.Writer, prefix string, r rect, w, h int) {
	writeIntIfNot(wr, prefix+"Left", r.Left, 0)
	writeIntIfNot(wr, prefix+"Top", r.Top, 0)
	writeIntIfNot(wr, prefix+"Width", r.Width, max(w-r.Left, 1))
	writeIntIfNot(wr, prefix+"Height", r.Height, max(h-r.Top, 1))
}

func defaultRect(w, h int) rect {
	return rect{Width: max(w, 1), Height: max(h, 1)}
}

// readPath reads an image or mask reference and resolves it.
func readPath(s ini.Section, key string, ctx *Context) string {
	return ctx.resolve(s.String(key, ""))
}

func writePath(w *ini.Writer, key, path string, ctx *Context) {
	writeStringIfNot(w, key, ctx.relative(path), "")
}

// bitmapSize probes path, falling back to def when no image can be read.
func bitmapSize(ctx *Context, path string, defW, defH int) (int, int) {
	if w, h, ok := ctx.imageSize(path); ok {
		return w, h
	}
	return defW, defH
}
