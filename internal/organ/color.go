package organ

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex renders the colour as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

type namedColor struct {
	name string
	rgb  RGB
}

// palette entry 0 is the custom slot; its RGB is unused.
var palette = []namedColor{
	{"", RGB{}},
	{"BLACK", RGB{0x00, 0x00, 0x00}},
	{"BLUE", RGB{0x00, 0x00, 0xFF}},
	{"DARK BLUE", RGB{0x00, 0x00, 0x80}},
	{"GREEN", RGB{0x00, 0xFF, 0x00}},
	{"DARK GREEN", RGB{0x00, 0x80, 0x00}},
	{"CYAN", RGB{0x00, 0xFF, 0xFF}},
	{"DARK CYAN", RGB{0x00, 0x80, 0x80}},
	{"RED", RGB{0xFF, 0x00, 0x00}},
	{"DARK RED", RGB{0x80, 0x00, 0x00}},
	{"MAGENTA", RGB{0xFF, 0x00, 0xFF}},
	{"DARK MAGENTA", RGB{0x80, 0x00, 0x80}},
	{"YELLOW", RGB{0xFF, 0xFF, 0x00}},
	{"DARK YELLOW", RGB{0x80, 0x80, 0x00}},
	{"LIGHT GREY", RGB{0xC0, 0xC0, 0xC0}},
	{"DARK GREY", RGB{0x80, 0x80, 0x80}},
	{"WHITE", RGB{0xFF, 0xFF, 0xFF}},
	{"BROWN", RGB{0xA5, 0x2A, 0x2A}},
}

// Palette indices used as defaults.
const (
	ColorCustom    = 0
	ColorBlack     = 1
	ColorDarkRed   = 9
	ColorYellow    = 12
	ColorWhite     = 16
	paletteEntries = 18
)

// Color is either a named palette entry or a custom RGB value (index 0).
type Color struct {
	index int
	rgb   RGB
}

// NamedColor returns the palette colour at index; out-of-range falls back to black.
func NamedColor(index int) Color {
	var c Color
	c.index = ColorBlack
	c.rgb = palette[ColorBlack].rgb
	c.SetIndex(index)
	return c
}

// CustomColor returns a colour for rgb, using the palette name when one matches.
func CustomColor(rgb RGB) Color {
	var c Color
	c.SetRGB(rgb)
	return c
}

// Index returns the palette index; 0 means custom.
func (c Color) Index() int { return c.index }

// RGB returns the effective colour.
func (c Color) RGB() RGB { return c.rgb }

// Name returns the palette name, or "" for custom colours.
func (c Color) Name() string { return palette[c.index].name }

// SetIndex selects a named entry. Index 0 and out-of-range values are ignored;
// use SetRGB for custom colours.
func (c *Color) SetIndex(index int) {
	if index <= ColorCustom || index >= paletteEntries {
		return
	}
	c.index = index
	c.rgb = palette[index].rgb
}

// SetRGB sets a raw colour. It snaps to a named entry when the value matches.
func (c *Color) SetRGB(rgb RGB) {
	c.rgb = rgb
	c.index = ColorCustom
	for i := 1; i < paletteEntries; i++ {
		if palette[i].rgb == rgb {
			c.index = i
			return
		}
	}
}

// String is the serialized form: the palette name or #RRGGBB.
func (c Color) String() string {
	if c.index != ColorCustom {
		return palette[c.index].name
	}
	return c.rgb.Hex()
}

// ParseColor accepts a palette name (case-insensitive) or #RRGGBB.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	for i := 1; i < paletteEntries; i++ {
		if palette[i].name == upper {
			return NamedColor(i), true
		}
	}

	if len(s) == 7 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return Color{}, false
		}
		rgb := RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
		// A hex value is a custom choice even if it equals a named colour.
		return Color{index: ColorCustom, rgb: rgb}, true
	}
	return Color{}, false
}

// readColor returns the colour stored at key, or def when missing or invalid.
func readColor(value string, present bool, def Color) Color {
	if !present {
		return def
	}
	if c, ok := ParseColor(value); ok {
		return c
	}
	return def
}
