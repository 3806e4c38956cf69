package organ

import (
	"strconv"
	"strings"

	"github.com/aidanlsb/odfkit/internal/ini"
)

var (
	horizontalSizes = map[string]int{"SMALL": 800, "MEDIUM": 1007, "MEDIUM LARGE": 1263, "LARGE": 1583}
	verticalSizes   = map[string]int{"SMALL": 500, "MEDIUM": 663, "MEDIUM LARGE": 855, "LARGE": 1095}
)

const (
	minScreenSize = 100
	maxScreenSize = 4000
	maxWoodImage  = 64
)

// DisplayMetrics is the layout bundle of a panel: screen size, background
// images, fonts, and the drawstop/button grid that positions elements which
// have no explicit coordinates.
type DisplayMetrics struct {
	ScreenSizeHoriz int
	ScreenSizeVert  int

	DrawstopBackgroundImageNum      int
	ConsoleBackgroundImageNum       int
	KeyHorizBackgroundImageNum      int
	KeyVertBackgroundImageNum       int
	DrawstopInsetBackgroundImageNum int

	ControlLabelFont       string
	ShortcutKeyLabelFont   string
	ShortcutKeyLabelColour Color
	GroupLabelFont         string

	DrawstopCols                          int
	DrawstopRows                          int
	DrawstopColsOffset                    bool
	DrawstopOuterColOffsetUp              bool
	PairDrawstopCols                      bool
	ExtraDrawstopRows                     int
	ExtraDrawstopCols                     int
	ButtonCols                            int
	ExtraButtonRows                       int
	ExtraPedalButtonRow                   bool
	ExtraPedalButtonRowOffset             bool
	ExtraPedalButtonRowOffsetRight        bool
	ButtonsAboveManuals                   bool
	TrimAboveManuals                      bool
	TrimBelowManuals                      bool
	TrimAboveExtraRows                    bool
	ExtraDrawstopRowsAboveExtraButtonRows bool

	DrawstopWidth   int
	DrawstopHeight  int
	PistonWidth     int
	PistonHeight    int
	EnclosureWidth  int
	EnclosureHeight int
	PedalHeight     int
	PedalKeyWidth   int
	ManualHeight    int
	ManualKeyWidth  int
}

// DefaultDisplayMetrics returns the metrics of a freshly created panel.
func DefaultDisplayMetrics() DisplayMetrics {
	return DisplayMetrics{
		ScreenSizeHoriz:                 horizontalSizes["SMALL"],
		ScreenSizeVert:                  verticalSizes["SMALL"],
		DrawstopBackgroundImageNum:      1,
		ConsoleBackgroundImageNum:       1,
		KeyHorizBackgroundImageNum:      1,
		KeyVertBackgroundImageNum:       1,
		DrawstopInsetBackgroundImageNum: 1,
		ControlLabelFont:                "Arial",
		ShortcutKeyLabelFont:            "Arial",
		ShortcutKeyLabelColour:          NamedColor(ColorYellow),
		GroupLabelFont:                  "Arial",
		DrawstopCols:                    2,
		DrawstopRows:                    1,
		ButtonCols:                      1,
		DrawstopWidth:                   78,
		DrawstopHeight:                  69,
		PistonWidth:                     44,
		PistonHeight:                    40,
		EnclosureWidth:                  52,
		EnclosureHeight:                 63,
		PedalHeight:                     40,
		PedalKeyWidth:                   7,
		ManualHeight:                    32,
		ManualKeyWidth:                  12,
	}
}

func readScreenSize(s ini.Section, key string, names map[string]int, def int) int {
	v, ok := s.Raw(key)
	if !ok {
		return def
	}
	if n, ok := names[strings.ToUpper(v)]; ok {
		return n
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < minScreenSize || n > maxScreenSize {
		return def
	}
	return n
}

// Read loads the metrics from s; every invalid value keeps its default.
func (m *DisplayMetrics) Read(s ini.Section) {
	d := DefaultDisplayMetrics()

	m.ScreenSizeHoriz = readScreenSize(s, "DispScreenSizeHoriz", horizontalSizes, d.ScreenSizeHoriz)
	m.ScreenSizeVert = readScreenSize(s, "DispScreenSizeVert", verticalSizes, d.ScreenSizeVert)

	m.DrawstopBackgroundImageNum = s.Int("DispDrawstopBackgroundImageNum", 1, maxWoodImage, d.DrawstopBackgroundImageNum)
	m.ConsoleBackgroundImageNum = s.Int("DispConsoleBackgroundImageNum", 1, maxWoodImage, d.ConsoleBackgroundImageNum)
	m.KeyHorizBackgroundImageNum = s.Int("DispKeyHorizBackgroundImageNum", 1, maxWoodImage, d.KeyHorizBackgroundImageNum)
	m.KeyVertBackgroundImageNum = s.Int("DispKeyVertBackgroundImageNum", 1, maxWoodImage, d.KeyVertBackgroundImageNum)
	m.DrawstopInsetBackgroundImageNum = s.Int("DispDrawstopInsetBackgroundImageNum", 1, maxWoodImage, d.DrawstopInsetBackgroundImageNum)

	m.ControlLabelFont = s.String("DispControlLabelFont", d.ControlLabelFont)
	m.ShortcutKeyLabelFont = s.String("DispShortcutKeyLabelFont", d.ShortcutKeyLabelFont)
	colour, ok := s.Raw("DispShortcutKeyLabelColour")
	m.ShortcutKeyLabelColour = readColor(colour, ok, d.ShortcutKeyLabelColour)
	m.GroupLabelFont = s.String("DispGroupLabelFont", d.GroupLabelFont)

	m.DrawstopCols = s.Int("DispDrawstopCols", 2, 12, d.DrawstopCols)
	if m.DrawstopCols%2 != 0 {
		m.DrawstopCols = d.DrawstopCols
	}
	m.DrawstopRows = s.Int("DispDrawstopRows", 1, 20, d.DrawstopRows)
	m.DrawstopColsOffset = s.Bool("DispDrawstopColsOffset", d.DrawstopColsOffset)
	m.DrawstopOuterColOffsetUp = s.Bool("DispDrawstopOuterColOffsetUp", d.DrawstopOuterColOffsetUp)
	m.PairDrawstopCols = s.Bool("DispPairDrawstopCols", d.PairDrawstopCols)
	m.ExtraDrawstopRows = s.Int("DispExtraDrawstopRows", 0, 99, d.ExtraDrawstopRows)
	m.ExtraDrawstopCols = s.Int("DispExtraDrawstopCols", 0, 40, d.ExtraDrawstopCols)
	m.ButtonCols = s.Int("DispButtonCols", 1, 32, d.ButtonCols)
	m.ExtraButtonRows = s.Int("DispExtraButtonRows", 0, 99, d.ExtraButtonRows)
	m.ExtraPedalButtonRow = s.Bool("DispExtraPedalButtonRow", d.ExtraPedalButtonRow)
	m.ExtraPedalButtonRowOffset = s.Bool("DispExtraPedalButtonRowOffset", d.ExtraPedalButtonRowOffset)
	m.ExtraPedalButtonRowOffsetRight = s.Bool("DispExtraPedalButtonRowOffsetRight", d.ExtraPedalButtonRowOffsetRight)
	m.ButtonsAboveManuals = s.Bool("DispButtonsAboveManuals", d.ButtonsAboveManuals)
	m.TrimAboveManuals = s.Bool("DispTrimAboveManuals", d.TrimAboveManuals)
	m.TrimBelowManuals = s.Bool("DispTrimBelowManuals", d.TrimBelowManuals)
	m.TrimAboveExtraRows = s.Bool("DispTrimAboveExtraRows", d.TrimAboveExtraRows)
	m.ExtraDrawstopRowsAboveExtraButtonRows = s.Bool("DispExtraDrawstopRowsAboveExtraButtonRows", d.ExtraDrawstopRowsAboveExtraButtonRows)

	m.DrawstopWidth = s.Int("DispDrawstopWidth", 1, 500, d.DrawstopWidth)
	m.DrawstopHeight = s.Int("DispDrawstopHeight", 1, 500, d.DrawstopHeight)
	m.PistonWidth = s.Int("DispPistonWidth", 1, 500, d.PistonWidth)
	m.PistonHeight = s.Int("DispPistonHeight", 1, 500, d.PistonHeight)
	m.EnclosureWidth = s.Int("DispEnclosureWidth", 1, 500, d.EnclosureWidth)
	m.EnclosureHeight = s.Int("DispEnclosureHeight", 1, 500, d.EnclosureHeight)
	m.PedalHeight = s.Int("DispPedalHeight", 1, 500, d.PedalHeight)
	m.PedalKeyWidth = s.Int("DispPedalKeyWidth", 1, 500, d.PedalKeyWidth)
	m.ManualHeight = s.Int("DispManualHeight", 1, 500, d.ManualHeight)
	m.ManualKeyWidth = s.Int("DispManualKeyWidth", 1, 500, d.ManualKeyWidth)
}

// Write emits the mandatory keys always and the optional ones only when they
// differ from their defaults.
func (m *DisplayMetrics) Write(w *ini.Writer) {
	d := DefaultDisplayMetrics()

	w.SetInt("DispScreenSizeHoriz", m.ScreenSizeHoriz)
	w.SetInt("DispScreenSizeVert", m.ScreenSizeVert)
	w.SetInt("DispDrawstopBackgroundImageNum", m.DrawstopBackgroundImageNum)
	w.SetInt("DispConsoleBackgroundImageNum", m.ConsoleBackgroundImageNum)
	w.SetInt("DispKeyHorizBackgroundImageNum", m.KeyHorizBackgroundImageNum)
	w.SetInt("DispKeyVertBackgroundImageNum", m.KeyVertBackgroundImageNum)
	w.SetInt("DispDrawstopInsetBackgroundImageNum", m.DrawstopInsetBackgroundImageNum)
	w.Set("DispControlLabelFont", m.ControlLabelFont)
	w.Set("DispShortcutKeyLabelFont", m.ShortcutKeyLabelFont)
	w.Set("DispShortcutKeyLabelColour", m.ShortcutKeyLabelColour.String())
	w.Set("DispGroupLabelFont", m.GroupLabelFont)
	w.SetInt("DispDrawstopCols", m.DrawstopCols)
	w.SetInt("DispDrawstopRows", m.DrawstopRows)
	w.SetBool("DispDrawstopColsOffset", m.DrawstopColsOffset)
	if m.DrawstopOuterColOffsetUp != d.DrawstopOuterColOffsetUp {
		w.SetBool("DispDrawstopOuterColOffsetUp", m.DrawstopOuterColOffsetUp)
	}
	w.SetBool("DispPairDrawstopCols", m.PairDrawstopCols)
	w.SetInt("DispExtraDrawstopRows", m.ExtraDrawstopRows)
	w.SetInt("DispExtraDrawstopCols", m.ExtraDrawstopCols)
	w.SetInt("DispButtonCols", m.ButtonCols)
	w.SetInt("DispExtraButtonRows", m.ExtraButtonRows)
	w.SetBool("DispExtraPedalButtonRow", m.ExtraPedalButtonRow)
	if m.ExtraPedalButtonRowOffset != d.ExtraPedalButtonRowOffset {
		w.SetBool("DispExtraPedalButtonRowOffset", m.ExtraPedalButtonRowOffset)
	}
	if m.ExtraPedalButtonRowOffsetRight != d.ExtraPedalButtonRowOffsetRight {
		w.SetBool("DispExtraPedalButtonRowOffsetRight", m.ExtraPedalButtonRowOffsetRight)
	}
	w.SetBool("DispButtonsAboveManuals", m.ButtonsAboveManuals)
	w.SetBool("DispTrimAboveManuals", m.TrimAboveManuals)
	w.SetBool("DispTrimBelowManuals", m.TrimBelowManuals)
	w.SetBool("DispTrimAboveExtraRows", m.TrimAboveExtraRows)
	if m.ExtraDrawstopRowsAboveExtraButtonRows != d.ExtraDrawstopRowsAboveExtraButtonRows {
		w.SetBool("DispExtraDrawstopRowsAboveExtraButtonRows", m.ExtraDrawstopRowsAboveExtraButtonRows)
	}

	writeIntIfNot(w, "DispDrawstopWidth", m.DrawstopWidth, d.DrawstopWidth)
	writeIntIfNot(w, "DispDrawstopHeight", m.DrawstopHeight, d.DrawstopHeight)
	writeIntIfNot(w, "DispPistonWidth", m.PistonWidth, d.PistonWidth)
	writeIntIfNot(w, "DispPistonHeight", m.PistonHeight, d.PistonHeight)
	writeIntIfNot(w, "DispEnclosureWidth", m.EnclosureWidth, d.EnclosureWidth)
	writeIntIfNot(w, "DispEnclosureHeight", m.EnclosureHeight, d.EnclosureHeight)
	writeIntIfNot(w, "DispPedalHeight", m.PedalHeight, d.PedalHeight)
	writeIntIfNot(w, "DispPedalKeyWidth", m.PedalKeyWidth, d.PedalKeyWidth)
	writeIntIfNot(w, "DispManualHeight", m.ManualHeight, d.ManualHeight)
	writeIntIfNot(w, "DispManualKeyWidth", m.ManualKeyWidth, d.ManualKeyWidth)
}

// DrawstopRowValid reports whether row addresses the regular grid or one of
// the extra rows (numbered from 100).
func (m *DisplayMetrics) DrawstopRowValid(row int) bool {
	if row >= 1 && row <= m.DrawstopRows {
		return true
	}
	return row >= 100 && row <= 99+m.ExtraDrawstopRows
}

// DrawstopColValid reports whether col is a valid column for row.
func (m *DisplayMetrics) DrawstopColValid(row, col int) bool {
	if row >= 100 {
		return col >= 1 && col <= m.ExtraDrawstopCols
	}
	return col >= 1 && col <= m.DrawstopCols
}

// ButtonRowValid reports whether row is a valid piston row. Row 0 sits below
// the lowest manual; extra rows start at 100.
func (m *DisplayMetrics) ButtonRowValid(row int) bool {
	if row >= 0 && row <= 99 {
		return true
	}
	return row >= 100 && row <= 99+m.ExtraButtonRows
}

// ButtonColValid reports whether col is a valid piston column.
func (m *DisplayMetrics) ButtonColValid(col int) bool {
	return col >= 1 && col <= m.ButtonCols
}

// Helpers shared by every writer in the package.

func writeIntIfNot(w *ini.Writer, key string, v, def int) {
	if v != def {
		w.SetInt(key, v)
	}
}

func writeBoolIfNot(w *ini.Writer, key string, v, def bool) {
	if v != def {
		w.SetBool(key, v)
	}
}

func writeStringIfNot(w *ini.Writer, key, v, def string) {
	if v != def {
		w.Set(key, v)
	}
}

func writeFloatIfNot(w *ini.Writer, key string, v, def float64) {
	if v != def {
		w.SetFloat(key, v)
	}
}
