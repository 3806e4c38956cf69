package organ

import (
	"strconv"
	"strings"
)

// Named font sizes.
const (
	FontSmall  = 6
	FontNormal = 7
	FontLarge  = 10

	minFontSize = 1
	maxFontSize = 50
)

// FontSize is a point size with optional SMALL/NORMAL/LARGE naming.
type FontSize struct {
	size int
}

// NewFontSize returns a font size; out-of-range values yield NORMAL.
func NewFontSize(size int) FontSize {
	f := FontSize{size: FontNormal}
	f.Set(size)
	return f
}

// Size returns the numeric point size.
func (f FontSize) Size() int {
	if f.size == 0 {
		return FontNormal
	}
	return f.size
}

// Set changes the size; out-of-range values are ignored.
func (f *FontSize) Set(size int) {
	if size < minFontSize || size > maxFontSize {
		return
	}
	f.size = size
}

// Name returns SMALL, NORMAL or LARGE, or "" for any other numeric value.
func (f FontSize) Name() string {
	switch f.Size() {
	case FontSmall:
		return "SMALL"
	case FontNormal:
		return "NORMAL"
	case FontLarge:
		return "LARGE"
	default:
		return ""
	}
}

// String is the serialized form.
func (f FontSize) String() string {
	if name := f.Name(); name != "" {
		return name
	}
	return strconv.Itoa(f.Size())
}

// ParseFontSize accepts a size name (case-insensitive) or a number in 1..50.
func ParseFontSize(s string) (FontSize, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SMALL":
		return FontSize{size: FontSmall}, true
	case "NORMAL":
		return FontSize{size: FontNormal}, true
	case "LARGE":
		return FontSize{size: FontLarge}, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < minFontSize || n > maxFontSize {
		return FontSize{}, false
	}
	return FontSize{size: n}, true
}

func readFontSize(value string, present bool, def FontSize) FontSize {
	if !present {
		return def
	}
	if f, ok := ParseFontSize(value); ok {
		return f
	}
	return def
}
