package organ

import "github.com/aidanlsb/odfkit/internal/ini"

// Switch is an organ-level drawstop with no sound of its own. Other drawstops
// reference switches as inputs of their logical function.
type Switch struct {
	Drawstop
}

// NewSwitch returns a switch with default settings.
func NewSwitch(name string) *Switch {
	return &Switch{Drawstop: newDrawstop(name)}
}

func (*Switch) entity() {}

// Read loads the switch. maxSwitch bounds which switches it may reference.
func (sw *Switch) Read(s ini.Section, ctx *Context, maxSwitch int) {
	sw.readDrawstop(s, ctx, maxSwitch)
}

// Write emits the switch keys.
func (sw *Switch) Write(w *ini.Writer, ctx *Context) {
	sw.writeDrawstop(w, ctx)
}

// Clone returns a copy sharing the same switch references.
func (sw *Switch) Clone() *Switch {
	return &Switch{Drawstop: sw.cloneDrawstop()}
}
