package organ

import (
	"slices"

	"github.com/aidanlsb/odfkit/internal/ini"
)

const (
	defaultEnclosureWidth  = 46
	defaultEnclosureHeight = 61
	enclosureMouseInset    = 13
	maxEnclosureBitmaps    = 128
	maxEnclosureStyle      = 4
)

// EnclosureBitmap is one frame of an enclosure animation.
type EnclosureBitmap struct {
	Image string
	Mask  string
}

// GUIEnclosure shows an enclosure pedal. An element with a nil Enclosure is
// the setter crescendo pedal, written as Type=Swell.
type GUIEnclosure struct {
	position
	Label     label
	Enclosure *Enclosure
	Bitmaps   []EnclosureBitmap

	// ForceWriteText keeps an explicit caption in the output.
	ForceWriteText bool

	text           string
	style          int
	width          int
	height         int
	tileOffsetX    int
	tileOffsetY    int
	mouseRect      rect
	mouseAxisStart int
	mouseAxisEnd   int
	textRect       rect
	textBreakWidth int
}

// NewGUIEnclosure returns an element for e (nil for the swell setter).
func NewGUIEnclosure(e *Enclosure) *GUIEnclosure {
	g := &GUIEnclosure{
		position:  newPosition(),
		Label:     label{Colour: NamedColor(ColorWhite), FontSize: NewFontSize(FontNormal)},
		Enclosure: e,
		style:     1,
		width:     defaultEnclosureWidth,
		height:    defaultEnclosureHeight,
	}
	g.resetRects()
	return g
}

func (*GUIEnclosure) guiElement() {}
func (*GUIEnclosure) Kind() Kind { return KindEnclosure }

// IsSwell reports whether the element is the setter swell pedal.
func (g *GUIEnclosure) IsSwell() bool { return g.Enclosure == nil }

func (g *GUIEnclosure) ElementName() string {
	if g.Enclosure == nil {
		return "Swell"
	}
	return g.Enclosure.Name
}

func (g *GUIEnclosure) References(e Entity) bool {
	return g.Enclosure != nil && e == Entity(g.Enclosure)
}

// Style returns the built-in drawing style.
func (g *GUIEnclosure) Style() int { return g.style }

// SetStyle ignores values outside 1..4.
func (g *GUIEnclosure) SetStyle(v int) {
	if v >= 1 && v <= maxEnclosureStyle {
		g.style = v
	}
}

// Width returns the drawn width.
func (g *GUIEnclosure) Width() int { return g.width }

// Height returns the drawn height.
func (g *GUIEnclosure) Height() int { return g.height }

// MouseRect returns the area that reacts to dragging.
func (g *GUIEnclosure) MouseRect() (left, top, width, height int) {
	r := g.mouseRect
	return r.Left, r.Top, r.Width, r.Height
}

// MouseAxis returns the start and end of the drag axis.
func (g *GUIEnclosure) MouseAxis() (start, end int) { return g.mouseAxisStart, g.mouseAxisEnd }

// TextBreakWidth returns the caption wrap width.
func (g *GUIEnclosure) TextBreakWidth() int { return g.textBreakWidth }

// LabelText returns the caption.
func (g *GUIEnclosure) LabelText() string {
	if g.text == "" && !g.ForceWriteText {
		return g.ElementName()
	}
	return g.text
}

// SetLabelText sets an explicit caption.
func (g *GUIEnclosure) SetLabelText(text string) {
	g.text = text
	g.ForceWriteText = true
}

// SetSize resizes the element and resets the derived rectangles.
func (g *GUIEnclosure) SetSize(w, h int, m *DisplayMetrics) {
	if w >= 1 && h >= 1 && w <= m.ScreenSizeHoriz && h <= m.ScreenSizeVert {
		g.width, g.height = w, h
		g.resetRects()
	}
}

func (g *GUIEnclosure) naturalSize(ctx *Context) (int, int) {
	if len(g.Bitmaps) == 0 {
		return defaultEnclosureWidth, defaultEnclosureHeight
	}
	return bitmapSize(ctx, g.Bitmaps[0].Image, defaultEnclosureWidth, defaultEnclosureHeight)
}

func (g *GUIEnclosure) defaultMouseTop() int {
	return min(enclosureMouseInset, max(g.height-1, 0))
}

func (g *GUIEnclosure) defaultMouseHeight() int {
	return max(min(g.height-2*enclosureMouseInset, g.height-g.mouseRect.Top), 1)
}

func (g *GUIEnclosure) defaultAxis() (int, int) {
	mh := g.mouseRect.Height
	return mh / 3, mh / 3 * 2
}

func (g *GUIEnclosure) resetRects() {
	g.tileOffsetX, g.tileOffsetY = 0, 0
	g.mouseRect = rect{Top: g.defaultMouseTop(), Width: max(g.width, 1)}
	g.mouseRect.Height = g.defaultMouseHeight()
	g.mouseAxisStart, g.mouseAxisEnd = g.defaultAxis()
	g.textRect = defaultRect(g.width, g.height)
	g.textBreakWidth = g.textRect.Width
}

// Read loads the layout keys.
func (g *GUIEnclosure) Read(s ini.Section, ctx *Context, m *DisplayMetrics) {
	g.Label.read(s, NamedColor(ColorWhite))
	g.text, g.ForceWriteText = s.Raw("DispLabelText")
	g.style = s.Int("EnclosureStyle", 1, maxEnclosureStyle, 1)

	g.Bitmaps = nil
	if n, ok := s.IntOK("BitmapCount", 1, maxEnclosureBitmaps); ok {
		for i := 1; i <= n; i++ {
			g.Bitmaps = append(g.Bitmaps, EnclosureBitmap{
				Image: readPath(s, numbered("Bitmap", i), ctx),
				Mask:  readPath(s, numbered("Mask", i), ctx),
			})
		}
	}
	g.position.read(s, m)

	nw, nh := g.naturalSize(ctx)
	g.width = s.Int("Width", 1, m.ScreenSizeHoriz, nw)
	g.height = s.Int("Height", 1, m.ScreenSizeVert, nh)
	g.tileOffsetX = s.Int("TileOffsetX", 0, max(g.width-1, 0), 0)
	g.tileOffsetY = s.Int("TileOffsetY", 0, max(g.height-1, 0), 0)

	g.mouseRect.Left = s.Int("MouseRectLeft", 0, max(g.width-1, 0), 0)
	g.mouseRect.Top = s.Int("MouseRectTop", 0, max(g.height-1, 0), g.defaultMouseTop())
	g.mouseRect.Width = s.Int("MouseRectWidth", 1, max(g.width-g.mouseRect.Left, 1), max(g.width-g.mouseRect.Left, 1))
	g.mouseRect.Height = s.Int("MouseRectHeight", 1, max(g.height-g.mouseRect.Top, 1), g.defaultMouseHeight())
	start, end := g.defaultAxis()
	g.mouseAxisStart = s.Int("MouseAxisStart", 0, g.mouseRect.Height, start)
	g.mouseAxisEnd = s.Int("MouseAxisEnd", g.mouseAxisStart, g.mouseRect.Height, max(end, g.mouseAxisStart))

	g.textRect = readRect(s, "TextRect", g.width, g.height)
	g.textBreakWidth = s.Int("TextBreakWidth", 0, g.textRect.Width, g.textRect.Width)
}

// Write emits Type, the enclosure reference, and the non-default layout keys.
func (g *GUIEnclosure) Write(w *ini.Writer, ctx *Context, _ *DisplayMetrics) {
	if g.Enclosure == nil {
		writeType(w, "Swell")
	} else {
		writeType(w, KindEnclosure.String())
		w.SetIndex("Enclosure", ctx.organ().IndexOfEnclosure(g.Enclosure)+1)
	}
	g.Label.write(w, NamedColor(ColorWhite))
	if g.ForceWriteText || (g.text != "" && g.text != g.ElementName()) {
		w.Set("DispLabelText", g.text)
	}
	writeIntIfNot(w, "EnclosureStyle", g.style, 1)
	if len(g.Bitmaps) > 0 {
		w.SetInt("BitmapCount", len(g.Bitmaps))
		for i, b := range g.Bitmaps {
			writePath(w, numbered("Bitmap", i+1), b.Image, ctx)
			writePath(w, numbered("Mask", i+1), b.Mask, ctx)
		}
	}
	g.position.write(w)

	nw, nh := g.naturalSize(ctx)
	writeIntIfNot(w, "Width", g.width, nw)
	writeIntIfNot(w, "Height", g.height, nh)
	writeIntIfNot(w, "TileOffsetX", g.tileOffsetX, 0)
	writeIntIfNot(w, "TileOffsetY", g.tileOffsetY, 0)

	writeIntIfNot(w, "MouseRectLeft", g.mouseRect.Left, 0)
	writeIntIfNot(w, "MouseRectTop", g.mouseRect.Top, g.defaultMouseTop())
	writeIntIfNot(w, "MouseRectWidth", g.mouseRect.Width, max(g.width-g.mouseRect.Left, 1))
	writeIntIfNot(w, "MouseRectHeight", g.mouseRect.Height, g.defaultMouseHeight())
	start, end := g.defaultAxis()
	writeIntIfNot(w, "MouseAxisStart", g.mouseAxisStart, start)
	writeIntIfNot(w, "MouseAxisEnd", g.mouseAxisEnd, max(end, g.mouseAxisStart))

	writeRect(w, "TextRect", g.textRect, g.width, g.height)
	writeIntIfNot(w, "TextBreakWidth", g.textBreakWidth, g.textRect.Width)
}

func (g *GUIEnclosure) Clone() Element {
	c := *g
	c.Bitmaps = slices.Clone(g.Bitmaps)
	return &c
}
