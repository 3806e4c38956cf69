package organ

import (
	"slices"
	"strings"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// Entity is a domain object that other objects can reference. Identity is
// the pointer; the 1-based number written to the file is computed from the
// owning collection at write time.
type Entity interface {
	DisplayName() string
	entity()
}

// Function is the logical combination a drawstop applies to its switches.
type Function int

const (
	FunctionInput Function = iota
	FunctionAnd
	FunctionNand
	FunctionNot
	FunctionNor
	FunctionOr
	FunctionXor
)

var functionNames = []string{"Input", "And", "Nand", "Not", "Nor", "Or", "Xor"}

func (f Function) String() string {
	if f < 0 || int(f) >= len(functionNames) {
		return functionNames[0]
	}
	return functionNames[f]
}

// ParseFunction accepts a function name, case-insensitively.
func ParseFunction(s string) (Function, bool) {
	for i, name := range functionNames {
		if strings.EqualFold(name, s) {
			return Function(i), true
		}
	}
	return FunctionInput, false
}

// Button holds the fields shared by everything that can be pressed on a
// console: drawstops and pistons alike.
type Button struct {
	Name string
	// Displayed is only meaningful in legacy files, where it puts the object
	// on the main panel.
	Displayed              bool
	DisplayInInvertedState bool

	shortcutKey              int
	stopControlMIDIKeyNumber int
	midiProgramChangeNumber  int
}

func newButton(name string) Button {
	return Button{Name: name, stopControlMIDIKeyNumber: -1}
}

// DisplayName returns the button name.
func (b *Button) DisplayName() string { return b.Name }

// ShortcutKey returns the keyboard shortcut code (0 for none).
func (b *Button) ShortcutKey() int { return b.shortcutKey }

// SetShortcutKey sets the shortcut; values outside 0..255 are ignored.
func (b *Button) SetShortcutKey(k int) {
	if k >= 0 && k <= 255 {
		b.shortcutKey = k
	}
}

// StopControlMIDIKeyNumber returns the controlling MIDI key (-1 for none).
func (b *Button) StopControlMIDIKeyNumber() int { return b.stopControlMIDIKeyNumber }

// SetStopControlMIDIKeyNumber sets the controlling key; values outside -1..127 are ignored.
func (b *Button) SetStopControlMIDIKeyNumber(n int) {
	if n >= -1 && n <= 127 {
		b.stopControlMIDIKeyNumber = n
	}
}

// MIDIProgramChangeNumber returns the program change number (0 for none).
func (b *Button) MIDIProgramChangeNumber() int { return b.midiProgramChangeNumber }

// SetMIDIProgramChangeNumber sets the program change; values outside 0..128 are ignored.
func (b *Button) SetMIDIProgramChangeNumber(n int) {
	if n >= 0 && n <= 128 {
		b.midiProgramChangeNumber = n
	}
}

func (b *Button) readButton(s ini.Section) {
	b.Name = s.String("Name", b.Name)
	b.Displayed = s.Bool("Displayed", false)
	b.DisplayInInvertedState = s.Bool("DisplayInInvertedState", false)
	b.shortcutKey = s.Int("ShortcutKey", 0, 255, 0)
	b.stopControlMIDIKeyNumber = s.Int("StopControlMIDIKeyNumber", -1, 127, -1)
	b.midiProgramChangeNumber = s.Int("MIDIProgramChangeNumber", 0, 128, 0)
}

func (b *Button) writeButton(w *ini.Writer) {
	w.Set("Name", b.Name)
	writeIntIfNot(w, "ShortcutKey", b.shortcutKey, 0)
	writeIntIfNot(w, "StopControlMIDIKeyNumber", b.stopControlMIDIKeyNumber, -1)
	writeIntIfNot(w, "MIDIProgramChangeNumber", b.midiProgramChangeNumber, 0)
	writeBoolIfNot(w, "DisplayInInvertedState", b.DisplayInInvertedState, false)
}

// Drawstop is a Button that latches and may be driven by a logical function
// of other switches.
type Drawstop struct {
	Button

	function         Function
	switches         []*Switch
	defaultToEngaged bool
	gcState          int

	StoreInDivisional bool
	StoreInGeneral    bool
}

func newDrawstop(name string) Drawstop {
	return Drawstop{
		Button:            newButton(name),
		StoreInDivisional: true,
		StoreInGeneral:    true,
	}
}

// Function returns the drawstop's logical function.
func (d *Drawstop) Function() Function { return d.function }

// SetFunction changes the function. Switching to Input drops every switch
// reference; switching away from Input clears DefaultToEngaged; switching to
// Not keeps at most the first reference.
func (d *Drawstop) SetFunction(f Function) {
	if f < FunctionInput || f > FunctionXor {
		return
	}
	switch {
	case f == FunctionInput:
		d.switches = nil
	case d.function == FunctionInput:
		d.defaultToEngaged = false
	}
	if f == FunctionNot && len(d.switches) > 1 {
		d.switches = d.switches[:1]
	}
	d.function = f
}

// DefaultToEngaged reports the initial state; always false for non-Input functions.
func (d *Drawstop) DefaultToEngaged() bool { return d.defaultToEngaged }

// SetDefaultToEngaged is ignored unless the function is Input.
func (d *Drawstop) SetDefaultToEngaged(v bool) {
	if d.function == FunctionInput {
		d.defaultToEngaged = v
	}
}

// GCState returns the general-cancel state: -1 untouched, 0 off, 1 on.
func (d *Drawstop) GCState() int { return d.gcState }

// SetGCState ignores values outside -1..1.
func (d *Drawstop) SetGCState(v int) {
	if v >= -1 && v <= 1 {
		d.gcState = v
	}
}

// Switches returns the referenced switches in order.
func (d *Drawstop) Switches() []*Switch { return slices.Clone(d.switches) }

// NumberOfSwitches returns how many switches drive this drawstop.
func (d *Drawstop) NumberOfSwitches() int { return len(d.switches) }

// HasSwitch reports whether s is referenced.
func (d *Drawstop) HasSwitch(s *Switch) bool { return slices.Contains(d.switches, s) }

// AddSwitch references s. It is refused for Input, for duplicates, and when a
// Not function already has its single input.
func (d *Drawstop) AddSwitch(s *Switch) bool {
	if s == nil || d.function == FunctionInput || d.HasSwitch(s) {
		return false
	}
	if d.function == FunctionNot && len(d.switches) >= 1 {
		return false
	}
	d.switches = append(d.switches, s)
	return true
}

// RemoveSwitch drops s.
func (d *Drawstop) RemoveSwitch(s *Switch) {
	d.switches = slices.DeleteFunc(d.switches, func(x *Switch) bool { return x == s })
}

// readDrawstop loads the button and function fields. Only switches numbered
// up to maxSwitch can be referenced; switches pass their own predecessors so
// no cycle can form.
func (d *Drawstop) readDrawstop(s ini.Section, ctx *Context, maxSwitch int) {
	d.readButton(s)

	d.function = FunctionInput
	if v, ok := s.Raw("Function"); ok {
		if f, ok := ParseFunction(v); ok {
			d.function = f
		}
	}

	d.switches = nil
	d.defaultToEngaged = false
	if d.function == FunctionInput {
		d.defaultToEngaged = s.Bool("DefaultToEngaged", false)
	} else {
		o := ctx.organ()
		limit := min(maxSwitch, o.NumberOfSwitches())
		count := s.Int("SwitchCount", 0, 999, 0)
		for i := 1; i <= count; i++ {
			n := s.Int(numbered("Switch", i), 1, 999, 0)
			sw := o.SwitchAt(n - 1)
			if n > limit || sw == nil {
				ctx.log().Dangling(s.Name(), "Switch%s references unknown switch %d", ini.Num(i), n)
				continue
			}
			d.AddSwitch(sw)
		}
	}

	d.gcState = s.Int("GCState", -1, 1, 0)
	d.StoreInDivisional = s.Bool("StoreInDivisional", true)
	d.StoreInGeneral = s.Bool("StoreInGeneral", true)
}

func (d *Drawstop) writeDrawstop(w *ini.Writer, ctx *Context) {
	d.writeButton(w)
	if d.function == FunctionInput {
		w.SetBool("DefaultToEngaged", d.defaultToEngaged)
	} else {
		o := ctx.organ()
		w.Set("Function", d.function.String())
		w.SetInt("SwitchCount", len(d.switches))
		for i, sw := range d.switches {
			w.SetIndex(numbered("Switch", i+1), o.IndexOfSwitch(sw)+1)
		}
	}
	writeIntIfNot(w, "GCState", d.gcState, 0)
	writeBoolIfNot(w, "StoreInDivisional", d.StoreInDivisional, true)
	writeBoolIfNot(w, "StoreInGeneral", d.StoreInGeneral, true)
}

func (d *Drawstop) forget(e Entity) {
	if sw, ok := e.(*Switch); ok {
		d.RemoveSwitch(sw)
	}
}

func (d *Drawstop) cloneDrawstop() Drawstop {
	c := *d
	c.switches = slices.Clone(d.switches)
	return c
}
