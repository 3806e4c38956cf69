package organ

import "github.com/aidanlsb/odfkit/internal/ini"

const (
	defaultLabelWidth  = 80
	defaultLabelHeight = 25
	maxLabelImage      = 12
)

// labelLayout is the placement of a text label. Labels are either placed
// freely (DispXpos/DispYpos) or attached to a drawstop column.
type labelLayout struct {
	position
	Label label

	FreeXPlacement             bool
	FreeYPlacement             bool
	DispAtTopOfDrawstopCol     bool
	DispSpanDrawstopColToRight bool
	Image                      string
	Mask                       string

	dispXpos       int
	dispYpos       int
	drawstopCol    int
	imageNum       int
	width          int
	height         int
	tileOffsetX    int
	tileOffsetY    int
	textRect       rect
	textBreakWidth int
}

func newLabelLayout() labelLayout {
	l := labelLayout{
		position:       newPosition(),
		Label:          label{Colour: NamedColor(ColorBlack), FontSize: NewFontSize(FontNormal)},
		FreeXPlacement: true,
		FreeYPlacement: true,
		drawstopCol:    1,
		imageNum:       1,
		width:          defaultLabelWidth,
		height:         defaultLabelHeight,
	}
	l.textRect = defaultRect(l.width, l.height)
	l.textBreakWidth = l.textRect.Width
	return l
}

func (l *labelLayout) defaultImageNum() int {
	if l.Image != "" {
		return 0
	}
	return 1
}

// DispPos returns the free placement coordinates.
func (l *labelLayout) DispPos() (x, y int) { return l.dispXpos, l.dispYpos }

// SetDispPos sets the free placement; coordinates outside the panel are ignored.
func (l *labelLayout) SetDispPos(x, y int, m *DisplayMetrics) {
	if x >= 0 && x <= m.ScreenSizeHoriz {
		l.dispXpos = x
	}
	if y >= 0 && y <= m.ScreenSizeVert {
		l.dispYpos = y
	}
}

// DrawstopCol returns the attached drawstop column.
func (l *labelLayout) DrawstopCol() int { return l.drawstopCol }

// SetDrawstopCol ignores columns outside the panel grid.
func (l *labelLayout) SetDrawstopCol(col int, m *DisplayMetrics) {
	if col >= 1 && col <= m.DrawstopCols {
		l.drawstopCol = col
	}
}

// ImageNum returns the built-in background (0 for none).
func (l *labelLayout) ImageNum() int { return l.imageNum }

// SetImageNum ignores values outside 0..12.
func (l *labelLayout) SetImageNum(n int) {
	if n >= 0 && n <= maxLabelImage {
		l.imageNum = n
	}
}

// Width returns the drawn width.
func (l *labelLayout) Width() int { return l.width }

// Height returns the drawn height.
func (l *labelLayout) Height() int { return l.height }

// TextBreakWidth returns the caption wrap width.
func (l *labelLayout) TextBreakWidth() int { return l.textBreakWidth }

func (l *labelLayout) naturalSize(ctx *Context) (int, int) {
	return bitmapSize(ctx, l.Image, defaultLabelWidth, defaultLabelHeight)
}

func (l *labelLayout) read(s ini.Section, ctx *Context, m *DisplayMetrics) {
	l.Label.read(s, NamedColor(ColorBlack))
	l.FreeXPlacement = s.Bool("FreeXPlacement", true)
	l.FreeYPlacement = s.Bool("FreeYPlacement", true)
	l.dispXpos = s.Int("DispXpos", 0, m.ScreenSizeHoriz, 0)
	l.dispYpos = s.Int("DispYpos", 0, m.ScreenSizeVert, 0)
	l.DispAtTopOfDrawstopCol = s.Bool("DispAtTopOfDrawstopCol", false)
	l.drawstopCol = s.Int("DispDrawstopCol", 1, m.DrawstopCols, 1)
	l.DispSpanDrawstopColToRight = s.Bool("DispSpanDrawstopColToRight", false)

	l.Image = readPath(s, "Image", ctx)
	l.Mask = readPath(s, "Mask", ctx)
	l.imageNum = s.Int("DispImageNum", 0, maxLabelImage, l.defaultImageNum())
	l.position.read(s, m)

	nw, nh := l.naturalSize(ctx)
	l.width = s.Int("Width", 1, m.ScreenSizeHoriz, nw)
	l.height = s.Int("Height", 1, m.ScreenSizeVert, nh)
	l.tileOffsetX = s.Int("TileOffsetX", 0, max(l.width-1, 0), 0)
	l.tileOffsetY = s.Int("TileOffsetY", 0, max(l.height-1, 0), 0)
	l.textRect = readRect(s, "TextRect", l.width, l.height)
	l.textBreakWidth = s.Int("TextBreakWidth", 0, l.textRect.Width, l.textRect.Width)
}

func (l *labelLayout) write(w *ini.Writer, ctx *Context) {
	writeBoolIfNot(w, "FreeXPlacement", l.FreeXPlacement, true)
	writeBoolIfNot(w, "FreeYPlacement", l.FreeYPlacement, true)
	writeIntIfNot(w, "DispXpos", l.dispXpos, 0)
	writeIntIfNot(w, "DispYpos", l.dispYpos, 0)
	writeBoolIfNot(w, "DispAtTopOfDrawstopCol", l.DispAtTopOfDrawstopCol, false)
	writeIntIfNot(w, "DispDrawstopCol", l.drawstopCol, 1)
	writeBoolIfNot(w, "DispSpanDrawstopColToRight", l.DispSpanDrawstopColToRight, false)
	l.Label.write(w, NamedColor(ColorBlack))

	writePath(w, "Image", l.Image, ctx)
	writePath(w, "Mask", l.Mask, ctx)
	writeIntIfNot(w, "DispImageNum", l.imageNum, l.defaultImageNum())
	l.position.write(w)

	nw, nh := l.naturalSize(ctx)
	writeIntIfNot(w, "Width", l.width, nw)
	writeIntIfNot(w, "Height", l.height, nh)
	writeIntIfNot(w, "TileOffsetX", l.tileOffsetX, 0)
	writeIntIfNot(w, "TileOffsetY", l.tileOffsetY, 0)
	writeRect(w, "TextRect", l.textRect, l.width, l.height)
	writeIntIfNot(w, "TextBreakWidth", l.textBreakWidth, l.textRect.Width)
}

// GUILabel is a free text label.
type GUILabel struct {
	labelLayout
	Text string
}

// NewGUILabel returns a label showing text.
func NewGUILabel(text string) *GUILabel {
	return &GUILabel{labelLayout: newLabelLayout(), Text: text}
}

func (*GUILabel) guiElement() {}
func (*GUILabel) Kind() Kind { return KindLabel }
func (e *GUILabel) ElementName() string { return e.Text }
func (*GUILabel) References(Entity) bool { return false }

// Read loads the label; its text is stored under Name.
func (e *GUILabel) Read(s ini.Section, ctx *Context, m *DisplayMetrics) {
	e.Text = s.String("Name", e.Text)
	e.labelLayout.read(s, ctx, m)
}

func (e *GUILabel) Write(w *ini.Writer, ctx *Context, _ *DisplayMetrics) {
	writeType(w, KindLabel.String())
	w.Set("Name", e.Text)
	e.labelLayout.write(w, ctx)
}

func (e *GUILabel) Clone() Element {
	c := *e
	return &c
}
