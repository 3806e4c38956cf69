package organ

import "github.com/aidanlsb/odfkit/internal/ini"

const (
	maxPistonImage   = 5
	maxDrawstopImage = 7
)

// GUIButton is the layout shared by every drawstop and piston element.
type GUIButton struct {
	position
	Label label

	KeyLabelOnLeft bool
	ImageOn        string
	ImageOff       string
	MaskOn         string
	MaskOff        string

	// ForceWriteText, ForceWriteWidth and ForceWriteHeight keep an explicit
	// value in the output even when it equals the computed default.
	ForceWriteText   bool
	ForceWriteWidth  bool
	ForceWriteHeight bool

	defaultPiston   bool
	displayAsPiston bool
	text            string
	imageNum        int
	drawstopRow     int
	drawstopCol     int
	buttonRow       int
	buttonCol       int
	width           int
	height          int
	tileOffsetX     int
	tileOffsetY     int
	mouseRect       rect
	mouseRadius     int
	textRect        rect
	textBreakWidth  int
}

func newGUIButton(piston bool, m *DisplayMetrics) GUIButton {
	b := GUIButton{
		position:        newPosition(),
		Label:           label{Colour: NamedColor(ColorDarkRed), FontSize: NewFontSize(FontNormal)},
		KeyLabelOnLeft:  true,
		defaultPiston:   piston,
		displayAsPiston: piston,
		imageNum:        1,
		drawstopRow:     1,
		drawstopCol:     1,
		buttonRow:       1,
		buttonCol:       1,
	}
	b.width, b.height = b.metricSize(m)
	b.resetRects()
	return b
}

func (b *GUIButton) metricSize(m *DisplayMetrics) (int, int) {
	if m == nil {
		d := DefaultDisplayMetrics()
		m = &d
	}
	if b.displayAsPiston {
		return m.PistonWidth, m.PistonHeight
	}
	return m.DrawstopWidth, m.DrawstopHeight
}

func (b *GUIButton) defaultRadius() int {
	if b.displayAsPiston {
		return 0
	}
	return min(b.mouseRect.Width, b.mouseRect.Height) / 2
}

func (b *GUIButton) resetRects() {
	b.tileOffsetX, b.tileOffsetY = 0, 0
	b.mouseRect = defaultRect(b.width, b.height)
	b.mouseRadius = b.defaultRadius()
	b.textRect = defaultRect(b.width, b.height)
	b.textBreakWidth = b.textRect.Width
}

// DisplayAsPiston reports whether the button is drawn as a piston.
func (b *GUIButton) DisplayAsPiston() bool { return b.displayAsPiston }

// SetDisplayAsPiston switches style; the image number is reset when it is
// not valid for the new style. A width or height still at the old style's
// metric size follows the new style, and the mouse and text rectangles are
// recomputed from the new size. Explicit and bitmap sizes are kept.
func (b *GUIButton) SetDisplayAsPiston(v bool, m *DisplayMetrics) {
	if v == b.displayAsPiston {
		return
	}
	oldW, oldH := b.metricSize(m)
	b.displayAsPiston = v
	if b.imageNum > b.maxImageNum() {
		b.imageNum = 1
	}

	newW, newH := b.metricSize(m)
	resized := false
	if !b.ForceWriteWidth && b.width == oldW {
		b.width = newW
		resized = true
	}
	if !b.ForceWriteHeight && b.height == oldH {
		b.height = newH
		resized = true
	}
	if resized {
		b.resetRects()
		return
	}
	b.mouseRadius = b.defaultRadius()
}

func (b *GUIButton) maxImageNum() int {
	if b.displayAsPiston {
		return maxPistonImage
	}
	return maxDrawstopImage
}

// ImageNum returns the built-in bitmap index.
func (b *GUIButton) ImageNum() int { return b.imageNum }

// SetImageNum ignores values outside 1..5 for pistons and 1..7 for drawstops.
func (b *GUIButton) SetImageNum(n int) {
	if n >= 1 && n <= b.maxImageNum() {
		b.imageNum = n
	}
}

// DrawstopRow returns the drawstop grid row.
func (b *GUIButton) DrawstopRow() int { return b.drawstopRow }

// DrawstopCol returns the drawstop grid column.
func (b *GUIButton) DrawstopCol() int { return b.drawstopCol }

// SetDrawstopPlace sets the grid cell; invalid cells are ignored.
func (b *GUIButton) SetDrawstopPlace(row, col int, m *DisplayMetrics) {
	if m.DrawstopRowValid(row) && m.DrawstopColValid(row, col) {
		b.drawstopRow, b.drawstopCol = row, col
	}
}

// ButtonRow returns the piston grid row.
func (b *GUIButton) ButtonRow() int { return b.buttonRow }

// ButtonCol returns the piston grid column.
func (b *GUIButton) ButtonCol() int { return b.buttonCol }

// SetButtonPlace sets the piston cell; invalid cells are ignored.
func (b *GUIButton) SetButtonPlace(row, col int, m *DisplayMetrics) {
	if m.ButtonRowValid(row) && m.ButtonColValid(col) {
		b.buttonRow, b.buttonCol = row, col
	}
}

// Width returns the drawn width.
func (b *GUIButton) Width() int { return b.width }

// Height returns the drawn height.
func (b *GUIButton) Height() int { return b.height }

// SetSize resizes the button and resets the derived rectangles. Values
// outside the panel are ignored.
func (b *GUIButton) SetSize(w, h int, m *DisplayMetrics) {
	if w < 1 || h < 1 || w > m.ScreenSizeHoriz || h > m.ScreenSizeVert {
		return
	}
	b.width, b.height = w, h
	b.ForceWriteWidth, b.ForceWriteHeight = true, true
	b.resetRects()
}

// MouseRect returns the clickable area.
func (b *GUIButton) MouseRect() (left, top, width, height int) {
	r := b.mouseRect
	return r.Left, r.Top, r.Width, r.Height
}

// MouseRadius returns the click radius; 0 means the whole rectangle.
func (b *GUIButton) MouseRadius() int { return b.mouseRadius }

// TextRect returns the caption area.
func (b *GUIButton) TextRect() (left, top, width, height int) {
	r := b.textRect
	return r.Left, r.Top, r.Width, r.Height
}

// TextBreakWidth returns the caption wrap width.
func (b *GUIButton) TextBreakWidth() int { return b.textBreakWidth }

// LabelText returns the caption; an unset caption shows name.
func (b *GUIButton) LabelText(name string) string {
	if b.text == "" && !b.ForceWriteText {
		return name
	}
	return b.text
}

// SetLabelText sets an explicit caption.
func (b *GUIButton) SetLabelText(text string) {
	b.text = text
	b.ForceWriteText = true
}

func (b *GUIButton) naturalSize(ctx *Context, m *DisplayMetrics) (int, int) {
	mw, mh := b.metricSize(m)
	path := b.ImageOff
	if path == "" {
		path = b.ImageOn
	}
	return bitmapSize(ctx, path, mw, mh)
}

// readButtonLayout loads the layout keys in dependency order: style, images,
// size, then the rectangles derived from the size.
func (b *GUIButton) readButtonLayout(s ini.Section, ctx *Context, m *DisplayMetrics) {
	b.Label.read(s, NamedColor(ColorDarkRed))
	b.text, b.ForceWriteText = s.Raw("DispLabelText")
	b.KeyLabelOnLeft = s.Bool("DispKeyLabelOnLeft", true)
	b.displayAsPiston = s.Bool("DisplayAsPiston", b.defaultPiston)
	b.imageNum = s.Int("DispImageNum", 1, b.maxImageNum(), 1)

	b.drawstopRow, b.drawstopCol = 1, 1
	if row, ok := s.IntOK("DispDrawstopRow", 1, 99+m.ExtraDrawstopRows); ok && m.DrawstopRowValid(row) {
		b.drawstopRow = row
	}
	if col, ok := s.IntOK("DispDrawstopCol", 1, 99); ok && m.DrawstopColValid(b.drawstopRow, col) {
		b.drawstopCol = col
	}
	b.buttonRow, b.buttonCol = 1, 1
	if row, ok := s.IntOK("DispButtonRow", 0, 99+m.ExtraButtonRows); ok && m.ButtonRowValid(row) {
		b.buttonRow = row
	}
	if col, ok := s.IntOK("DispButtonCol", 1, 99); ok && m.ButtonColValid(col) {
		b.buttonCol = col
	}

	b.ImageOn = readPath(s, "ImageOn", ctx)
	b.ImageOff = readPath(s, "ImageOff", ctx)
	b.MaskOn = readPath(s, "MaskOn", ctx)
	b.MaskOff = readPath(s, "MaskOff", ctx)
	b.position.read(s, m)

	nw, nh := b.naturalSize(ctx, m)
	b.width = s.Int("Width", 1, m.ScreenSizeHoriz, nw)
	b.height = s.Int("Height", 1, m.ScreenSizeVert, nh)
	b.ForceWriteWidth = s.Has("Width")
	b.ForceWriteHeight = s.Has("Height")
	b.tileOffsetX = s.Int("TileOffsetX", 0, max(b.width-1, 0), 0)
	b.tileOffsetY = s.Int("TileOffsetY", 0, max(b.height-1, 0), 0)

	b.mouseRect = readRect(s, "MouseRect", b.width, b.height)
	b.mouseRadius = s.Int("MouseRadius", 0, max(b.mouseRect.Width, b.mouseRect.Height), b.defaultRadius())
	b.textRect = readRect(s, "TextRect", b.width, b.height)
	b.textBreakWidth = s.Int("TextBreakWidth", 0, b.textRect.Width, b.textRect.Width)
}

func (b *GUIButton) writeButtonLayout(w *ini.Writer, ctx *Context, m *DisplayMetrics, name string) {
	b.Label.write(w, NamedColor(ColorDarkRed))
	if b.ForceWriteText || (b.text != "" && b.text != name) {
		w.Set("DispLabelText", b.text)
	}
	writeBoolIfNot(w, "DispKeyLabelOnLeft", b.KeyLabelOnLeft, true)
	writeBoolIfNot(w, "DisplayAsPiston", b.displayAsPiston, b.defaultPiston)
	writeIntIfNot(w, "DispImageNum", b.imageNum, 1)
	writeIntIfNot(w, "DispDrawstopRow", b.drawstopRow, 1)
	writeIntIfNot(w, "DispDrawstopCol", b.drawstopCol, 1)
	writeIntIfNot(w, "DispButtonRow", b.buttonRow, 1)
	writeIntIfNot(w, "DispButtonCol", b.buttonCol, 1)

	writePath(w, "ImageOn", b.ImageOn, ctx)
	writePath(w, "ImageOff", b.ImageOff, ctx)
	writePath(w, "MaskOn", b.MaskOn, ctx)
	writePath(w, "MaskOff", b.MaskOff, ctx)
	b.position.write(w)

	nw, nh := b.naturalSize(ctx, m)
	if b.ForceWriteWidth || b.width != nw {
		w.SetInt("Width", b.width)
	}
	if b.ForceWriteHeight || b.height != nh {
		w.SetInt("Height", b.height)
	}
	writeIntIfNot(w, "TileOffsetX", b.tileOffsetX, 0)
	writeIntIfNot(w, "TileOffsetY", b.tileOffsetY, 0)

	writeRect(w, "MouseRect", b.mouseRect, b.width, b.height)
	writeIntIfNot(w, "MouseRadius", b.mouseRadius, b.defaultRadius())
	writeRect(w, "TextRect", b.textRect, b.width, b.height)
	writeIntIfNot(w, "TextBreakWidth", b.textBreakWidth, b.textRect.Width)
}

func writeType(w *ini.Writer, typeName string) { w.Set("Type", typeName) }

// Entity-backed buttons.

// GUIStop shows a stop.
type GUIStop struct {
	GUIButton
	Stop *Stop
}

// NewGUIStop returns a drawstop element for s.
func NewGUIStop(s *Stop, m *DisplayMetrics) *GUIStop {
	return &GUIStop{GUIButton: newGUIButton(false, m), Stop: s}
}

func (*GUIStop) guiElement() {}
func (*GUIStop) Kind() Kind { return KindStop }
func (e *GUIStop) ElementName() string { return e.Stop.Name }

func (e *GUIStop) References(x Entity) bool {
	if m, ok := x.(*Manual); ok {
		return e.Stop.Owner() == m
	}
	return x == Entity(e.Stop)
}

func (e *GUIStop) Read(s ini.Section, ctx *Context, m *DisplayMetrics) {
	e.readButtonLayout(s, ctx, m)
}

func (e *GUIStop) Write(w *ini.Writer, ctx *Context, m *DisplayMetrics) {
	o := ctx.organ()
	writeType(w, KindStop.String())
	w.SetIndex("Manual", o.ManualNumber(e.Stop.Owner()))
	w.SetIndex("Stop", e.Stop.Owner().IndexOfStop(e.Stop)+1)
	e.writeButtonLayout(w, ctx, m, e.ElementName())
}

func (e *GUIStop) Clone() Element {
	c := *e
	return &c
}

// GUICoupler shows a coupler.
type GUICoupler struct {
	GUIButton
	Coupler *Coupler
}

// NewGUICoupler returns a drawstop element for c.
func NewGUICoupler(c *Coupler, m *DisplayMetrics) *GUICoupler {
	return &GUICoupler{GUIButton: newGUIButton(false, m), Coupler: c}
}

func (*GUICoupler) guiElement() {}
func (*GUICoupler) Kind() Kind { return KindCoupler }
func (e *GUICoupler) ElementName() string { return e.Coupler.Name }

func (e *GUICoupler) References(x Entity) bool {
	if m, ok := x.(*Manual); ok {
		return e.Coupler.Owner() == m
	}
	return x == Entity(e.Coupler)
}

func (e *GUICoupler) Read(s ini.Section, ctx *Context, m *DisplayMetrics) {
	e.readButtonLayout(s, ctx, m)
}

func (e *GUICoupler) Write(w *ini.Writer, ctx *Context, m *DisplayMetrics) {
	o := ctx.organ()
	writeType(w, KindCoupler.String())
	w.SetIndex("Manual", o.ManualNumber(e.Coupler.Owner()))
	w.SetIndex("Coupler", e.Coupler.Owner().IndexOfCoupler(e.Coupler)+1)
	e.writeButtonLayout(w, ctx, m, e.ElementName())
}

func (e *GUICoupler) Clone() Element {
	c := *e
	return &c
}

// GUIDivisional shows a divisional piston.
type GUIDivisional struct {
	GUIButton
	Divisional *Divisional
}

// NewGUIDivisional returns a piston element for d.
func NewGUIDivisional(d *Divisional, m *DisplayMetrics) *GUIDivisional {
	return &GUIDivisional{GUIButton: newGUIButton(true, m), Divisional: d}
}

func (*GUIDivisional) guiElement() {}
func (*GUIDivisional) Kind() Kind { return KindDivisional }
func (e *GUIDivisional) ElementName() string { return e.Divisional.Name }

func (e *GUIDivisional) References(x Entity) bool {
	if m, ok := x.(*Manual); ok {
		return e.Divisional.Owner() == m
	}
	return x == Entity(e.Divisional)
}

func (e *GUIDivisional) Read(s ini.Section, ctx *Context, m *DisplayMetrics) {
	e.readButtonLayout(s, ctx, m)
}

func (e *GUIDivisional) Write(w *ini.Writer, ctx *Context, m *DisplayMetrics) {
	o := ctx.organ()
	writeType(w, KindDivisional.String())
	w.SetIndex("Manual", o.ManualNumber(e.Divisional.Owner()))
	w.SetIndex("Divisional", e.Divisional.Owner().IndexOfDivisional(e.Divisional)+1)
	e.writeButtonLayout(w, ctx, m, e.ElementName())
}

func (e *GUIDivisional) Clone() Element {
	c := *e
	return &c
}

// organButton is the shape of the elements that reference one organ-level
// object by its 1-based index.
type organButton[T interface {
	Entity
	comparable
}] struct {
	GUIButton
	kind    Kind
	object  T
	indexOf func(*Organ, T) int
}

func (*organButton[T]) guiElement() {}
func (e *organButton[T]) Kind() Kind { return e.kind }
func (e *organButton[T]) ElementName() string { return e.object.DisplayName() }
func (e *organButton[T]) References(x Entity) bool { return x == Entity(e.object) }

func (e *organButton[T]) Read(s ini.Section, ctx *Context, m *DisplayMetrics) {
	e.readButtonLayout(s, ctx, m)
}

func (e *organButton[T]) Write(w *ini.Writer, ctx *Context, m *DisplayMetrics) {
	writeType(w, e.kind.String())
	w.SetIndex(e.kind.String(), e.indexOf(ctx.organ(), e.object)+1)
	e.writeButtonLayout(w, ctx, m, e.ElementName())
}

// GUIGeneral shows a general piston.
type GUIGeneral struct{ organButton[*General] }

// NewGUIGeneral returns a piston element for g.
func NewGUIGeneral(g *General, m *DisplayMetrics) *GUIGeneral {
	return &GUIGeneral{organButton[*General]{GUIButton: newGUIButton(true, m), kind: KindGeneral, object: g, indexOf: (*Organ).IndexOfGeneral}}
}

// General returns the shown general.
func (e *GUIGeneral) General() *General { return e.object }

func (e *GUIGeneral) Clone() Element {
	c := *e
	return &c
}

// GUISwitch shows a switch.
type GUISwitch struct{ organButton[*Switch] }

// NewGUISwitch returns a drawstop element for sw.
func NewGUISwitch(sw *Switch, m *DisplayMetrics) *GUISwitch {
	return &GUISwitch{organButton[*Switch]{GUIButton: newGUIButton(false, m), kind: KindSwitch, object: sw, indexOf: (*Organ).IndexOfSwitch}}
}

// Switch returns the shown switch.
func (e *GUISwitch) Switch() *Switch { return e.object }

func (e *GUISwitch) Clone() Element {
	c := *e
	return &c
}

// GUITremulant shows a tremulant.
type GUITremulant struct{ organButton[*Tremulant] }

// NewGUITremulant returns a drawstop element for t.
func NewGUITremulant(t *Tremulant, m *DisplayMetrics) *GUITremulant {
	return &GUITremulant{organButton[*Tremulant]{GUIButton: newGUIButton(false, m), kind: KindTremulant, object: t, indexOf: (*Organ).IndexOfTremulant}}
}

// Tremulant returns the shown tremulant.
func (e *GUITremulant) Tremulant() *Tremulant { return e.object }

func (e *GUITremulant) Clone() Element {
	c := *e
	return &c
}

// GUIReversiblePiston shows a reversible piston.
type GUIReversiblePiston struct{ organButton[*ReversiblePiston] }

// NewGUIReversiblePiston returns a piston element for p.
func NewGUIReversiblePiston(p *ReversiblePiston, m *DisplayMetrics) *GUIReversiblePiston {
	return &GUIReversiblePiston{organButton[*ReversiblePiston]{GUIButton: newGUIButton(true, m), kind: KindReversiblePiston, object: p, indexOf: (*Organ).IndexOfReversiblePiston}}
}

// ReversiblePiston returns the shown piston.
func (e *GUIReversiblePiston) ReversiblePiston() *ReversiblePiston { return e.object }

func (e *GUIReversiblePiston) Clone() Element {
	c := *e
	return &c
}

// GUIDivisionalCoupler shows a divisional coupler.
type GUIDivisionalCoupler struct{ organButton[*DivisionalCoupler] }

// NewGUIDivisionalCoupler returns a drawstop element for dc.
func NewGUIDivisionalCoupler(dc *DivisionalCoupler, m *DisplayMetrics) *GUIDivisionalCoupler {
	return &GUIDivisionalCoupler{organButton[*DivisionalCoupler]{GUIButton: newGUIButton(false, m), kind: KindDivisionalCoupler, object: dc, indexOf: (*Organ).IndexOfDivisionalCoupler}}
}

// DivisionalCoupler returns the shown divisional coupler.
func (e *GUIDivisionalCoupler) DivisionalCoupler() *DivisionalCoupler { return e.object }

func (e *GUIDivisionalCoupler) Clone() Element {
	c := *e
	return &c
}
