package ini

import (
	"strconv"
	"strings"
)

// Writer accumulates output lines (the LineSink). Keys are emitted in call
// order; nothing is reordered or deduplicated.
type Writer struct {
	lines []string
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// AddLine appends one raw line.
func (w *Writer) AddLine(line string) {
	w.lines = append(w.lines, line)
}

// Section starts a new group, separated from earlier output by a blank line.
func (w *Writer) Section(name string) {
	if len(w.lines) > 0 {
		w.lines = append(w.lines, "")
	}
	w.lines = append(w.lines, "["+name+"]")
}

// Set writes Key=Value.
func (w *Writer) Set(key, value string) {
	w.lines = append(w.lines, key+"="+value)
}

// SetInt writes an integer value.
func (w *Writer) SetInt(key string, v int) {
	w.Set(key, strconv.Itoa(v))
}

// SetIndex writes a zero-padded three digit reference (e.g. Stop001=004).
func (w *Writer) SetIndex(key string, v int) {
	w.Set(key, Num(v))
}

// SetBool writes Y or N.
func (w *Writer) SetBool(key string, v bool) {
	if v {
		w.Set(key, "Y")
		return
	}
	w.Set(key, "N")
}

// SetFloat writes a float with the shortest exact representation.
func (w *Writer) SetFloat(key string, v float64) {
	w.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
}

// Lines returns a copy of the accumulated lines.
func (w *Writer) Lines() []string {
	out := make([]string, len(w.lines))
	copy(out, w.lines)
	return out
}

// String joins all lines with newlines, with a trailing newline.
func (w *Writer) String() string {
	if len(w.lines) == 0 {
		return ""
	}
	return strings.Join(w.lines, "\n") + "\n"
}

// Bytes is String as a byte slice.
func (w *Writer) Bytes() []byte {
	return []byte(w.String())
}

// Num formats a 1-based ordinal the way section names and references use it.
// Negative values keep their sign (-004).
func Num(n int) string {
	if n < 0 {
		return "-" + pad3(-n)
	}
	return pad3(n)
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
