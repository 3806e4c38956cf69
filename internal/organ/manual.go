package organ

import (
	"slices"

	"github.com/aidanlsb/odfkit/internal/ini"
)

const (
	midiKeys            = 128
	defaultManualKeys   = 61
	defaultFirstMIDIKey = 36
	maxManualKeys       = 192
	maxAccessibleKeys   = 85
)

// Manual is a keyboard. It owns its stops, couplers and divisionals and
// references organ-level tremulants and switches.
type Manual struct {
	Name      string
	Displayed bool

	organ *Organ

	numberOfLogicalKeys                int
	firstAccessibleKeyLogicalKeyNumber int
	firstAccessibleKeyMIDINoteNumber   int
	numberOfAccessibleKeys             int
	midiInputNumber                    int
	keyMap                             [midiKeys]int

	stops       []*Stop
	couplers    []*Coupler
	divisionals []*Divisional
	tremulants  []*Tremulant
	switches    []*Switch
}

// NewManual returns a 61-note manual with an identity key map.
func NewManual(name string) *Manual {
	m := &Manual{
		Name:                               name,
		numberOfLogicalKeys:                defaultManualKeys,
		firstAccessibleKeyLogicalKeyNumber: 1,
		firstAccessibleKeyMIDINoteNumber:   defaultFirstMIDIKey,
		numberOfAccessibleKeys:             defaultManualKeys,
	}
	m.keyMap = identityKeyMap()
	return m
}

func identityKeyMap() [midiKeys]int {
	var km [midiKeys]int
	for i := range km {
		km[i] = i
	}
	return km
}

func (*Manual) entity() {}

// DisplayName returns the manual name.
func (m *Manual) DisplayName() string { return m.Name }

// NumberOfLogicalKeys returns the logical key count.
func (m *Manual) NumberOfLogicalKeys() int { return m.numberOfLogicalKeys }

// SetNumberOfLogicalKeys ignores values outside 1..192. The first accessible
// key is pulled back into range when needed.
func (m *Manual) SetNumberOfLogicalKeys(v int) {
	if v < 1 || v > maxManualKeys {
		return
	}
	m.numberOfLogicalKeys = v
	if m.firstAccessibleKeyLogicalKeyNumber > v {
		m.firstAccessibleKeyLogicalKeyNumber = 1
	}
}

// FirstAccessibleKeyLogicalKeyNumber returns the logical number of the first playable key.
func (m *Manual) FirstAccessibleKeyLogicalKeyNumber() int {
	return m.firstAccessibleKeyLogicalKeyNumber
}

// SetFirstAccessibleKeyLogicalKeyNumber ignores values outside 1..NumberOfLogicalKeys.
func (m *Manual) SetFirstAccessibleKeyLogicalKeyNumber(v int) {
	if v >= 1 && v <= m.numberOfLogicalKeys {
		m.firstAccessibleKeyLogicalKeyNumber = v
	}
}

// FirstAccessibleKeyMIDINoteNumber returns the MIDI note of the first playable key.
func (m *Manual) FirstAccessibleKeyMIDINoteNumber() int {
	return m.firstAccessibleKeyMIDINoteNumber
}

// SetFirstAccessibleKeyMIDINoteNumber ignores values outside 0..127.
func (m *Manual) SetFirstAccessibleKeyMIDINoteNumber(v int) {
	if v >= 0 && v < midiKeys {
		m.firstAccessibleKeyMIDINoteNumber = v
	}
}

// NumberOfAccessibleKeys returns how many keys are playable.
func (m *Manual) NumberOfAccessibleKeys() int { return m.numberOfAccessibleKeys }

// SetNumberOfAccessibleKeys ignores values outside 0..85.
func (m *Manual) SetNumberOfAccessibleKeys(v int) {
	if v >= 0 && v <= maxAccessibleKeys {
		m.numberOfAccessibleKeys = v
	}
}

// MIDIInputNumber returns the MIDI input assignment.
func (m *Manual) MIDIInputNumber() int { return m.midiInputNumber }

// SetMIDIInputNumber ignores values outside 0..200.
func (m *Manual) SetMIDIInputNumber(v int) {
	if v >= 0 && v <= 200 {
		m.midiInputNumber = v
	}
}

// MIDIKey returns the note that key is remapped to.
func (m *Manual) MIDIKey(key int) int {
	if key < 0 || key >= midiKeys {
		return key
	}
	return m.keyMap[key]
}

// SetMIDIKey remaps key to note. Both must be in 0..127.
func (m *Manual) SetMIDIKey(key, note int) {
	if key >= 0 && key < midiKeys && note >= 0 && note < midiKeys {
		m.keyMap[key] = note
	}
}

// RemappedKeys returns the keys whose mapping differs from identity, in
// ascending order.
func (m *Manual) RemappedKeys() []int {
	var keys []int
	identity := identityKeyMap()
	for k := range m.keyMap {
		if m.keyMap[k] != identity[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// Stops.

// Stops returns the owned stops in order.
func (m *Manual) Stops() []*Stop { return slices.Clone(m.stops) }

// NumberOfStops returns the stop count.
func (m *Manual) NumberOfStops() int {
	if m == nil {
		return 0
	}
	return len(m.stops)
}

// StopAt returns stop i (0-based) or nil.
func (m *Manual) StopAt(i int) *Stop {
	if m == nil || i < 0 || i >= len(m.stops) {
		return nil
	}
	return m.stops[i]
}

// IndexOfStop returns the 0-based position of s, or -1.
func (m *Manual) IndexOfStop(s *Stop) int {
	if m == nil {
		return -1
	}
	return slices.Index(m.stops, s)
}

// HasStop reports whether s belongs to the manual.
func (m *Manual) HasStop(s *Stop) bool { return m.IndexOfStop(s) >= 0 }

// AddStop takes ownership of s.
func (m *Manual) AddStop(s *Stop) {
	if s == nil || m.HasStop(s) {
		return
	}
	s.owner = m
	m.stops = append(m.stops, s)
}

// RemoveStop deletes s and every reference to it.
func (m *Manual) RemoveStop(s *Stop) {
	if !m.HasStop(s) {
		return
	}
	m.stops = slices.DeleteFunc(m.stops, func(x *Stop) bool { return x == s })
	m.broadcast(s)
	s.owner = nil
}

// Couplers.

// Couplers returns the owned couplers in order.
func (m *Manual) Couplers() []*Coupler { return slices.Clone(m.couplers) }

// NumberOfCouplers returns the coupler count.
func (m *Manual) NumberOfCouplers() int {
	if m == nil {
		return 0
	}
	return len(m.couplers)
}

// CouplerAt returns coupler i (0-based) or nil.
func (m *Manual) CouplerAt(i int) *Coupler {
	if m == nil || i < 0 || i >= len(m.couplers) {
		return nil
	}
	return m.couplers[i]
}

// IndexOfCoupler returns the 0-based position of c, or -1.
func (m *Manual) IndexOfCoupler(c *Coupler) int {
	if m == nil {
		return -1
	}
	return slices.Index(m.couplers, c)
}

// HasCoupler reports whether c belongs to the manual.
func (m *Manual) HasCoupler(c *Coupler) bool { return m.IndexOfCoupler(c) >= 0 }

// AddCoupler takes ownership of c.
func (m *Manual) AddCoupler(c *Coupler) {
	if c == nil || m.HasCoupler(c) {
		return
	}
	c.owner = m
	m.couplers = append(m.couplers, c)
}

// RemoveCoupler deletes c and every reference to it.
func (m *Manual) RemoveCoupler(c *Coupler) {
	if !m.HasCoupler(c) {
		return
	}
	m.couplers = slices.DeleteFunc(m.couplers, func(x *Coupler) bool { return x == c })
	m.broadcast(c)
	c.owner = nil
}

// Divisionals.

// Divisionals returns the owned divisionals in order.
func (m *Manual) Divisionals() []*Divisional { return slices.Clone(m.divisionals) }

// NumberOfDivisionals returns the divisional count.
func (m *Manual) NumberOfDivisionals() int {
	if m == nil {
		return 0
	}
	return len(m.divisionals)
}

// DivisionalAt returns divisional i (0-based) or nil.
func (m *Manual) DivisionalAt(i int) *Divisional {
	if m == nil || i < 0 || i >= len(m.divisionals) {
		return nil
	}
	return m.divisionals[i]
}

// IndexOfDivisional returns the 0-based position of d, or -1.
func (m *Manual) IndexOfDivisional(d *Divisional) int {
	if m == nil {
		return -1
	}
	return slices.Index(m.divisionals, d)
}

// HasDivisional reports whether d belongs to the manual.
func (m *Manual) HasDivisional(d *Divisional) bool { return m.IndexOfDivisional(d) >= 0 }

// AddDivisional takes ownership of d.
func (m *Manual) AddDivisional(d *Divisional) {
	if d == nil || m.HasDivisional(d) {
		return
	}
	d.owner = m
	m.divisionals = append(m.divisionals, d)
}

// RemoveDivisional deletes d and every reference to it.
func (m *Manual) RemoveDivisional(d *Divisional) {
	if !m.HasDivisional(d) {
		return
	}
	m.divisionals = slices.DeleteFunc(m.divisionals, func(x *Divisional) bool { return x == d })
	m.broadcast(d)
	d.owner = nil
}

// Tremulant and switch references.

// Tremulants returns the referenced tremulants.
func (m *Manual) Tremulants() []*Tremulant { return slices.Clone(m.tremulants) }

// NumberOfTremulants returns the tremulant reference count.
func (m *Manual) NumberOfTremulants() int { return len(m.tremulants) }

// TremulantAt returns tremulant reference i (0-based) or nil.
func (m *Manual) TremulantAt(i int) *Tremulant {
	if i < 0 || i >= len(m.tremulants) {
		return nil
	}
	return m.tremulants[i]
}

// HasTremulant reports whether t is referenced.
func (m *Manual) HasTremulant(t *Tremulant) bool { return slices.Contains(m.tremulants, t) }

// AddTremulant references t once.
func (m *Manual) AddTremulant(t *Tremulant) {
	if t != nil && !m.HasTremulant(t) {
		m.tremulants = append(m.tremulants, t)
	}
}

// RemoveTremulant drops the reference to t and from every owned divisional.
func (m *Manual) RemoveTremulant(t *Tremulant) { m.forget(t) }

// Switches returns the referenced switches.
func (m *Manual) Switches() []*Switch { return slices.Clone(m.switches) }

// NumberOfSwitches returns the switch reference count.
func (m *Manual) NumberOfSwitches() int { return len(m.switches) }

// SwitchAt returns switch reference i (0-based) or nil.
func (m *Manual) SwitchAt(i int) *Switch {
	if i < 0 || i >= len(m.switches) {
		return nil
	}
	return m.switches[i]
}

// HasSwitch reports whether sw is referenced.
func (m *Manual) HasSwitch(sw *Switch) bool { return slices.Contains(m.switches, sw) }

// AddSwitch references sw once.
func (m *Manual) AddSwitch(sw *Switch) {
	if sw != nil && !m.HasSwitch(sw) {
		m.switches = append(m.switches, sw)
	}
}

// RemoveSwitch drops sw from the manual, its stops, couplers and divisionals.
func (m *Manual) RemoveSwitch(sw *Switch) { m.forget(sw) }

// broadcast forwards the removal of an owned object to the whole organ, or
// to the manual's own objects when it is not attached to one.
func (m *Manual) broadcast(e Entity) {
	if m.organ != nil {
		m.organ.broadcastRemoval(e)
		return
	}
	m.forget(e)
}

func (m *Manual) forget(e Entity) {
	switch x := e.(type) {
	case *Tremulant:
		m.tremulants = slices.DeleteFunc(m.tremulants, func(y *Tremulant) bool { return y == x })
	case *Switch:
		m.switches = slices.DeleteFunc(m.switches, func(y *Switch) bool { return y == x })
	}
	for _, s := range m.stops {
		s.forget(e)
	}
	for _, c := range m.couplers {
		c.forget(e)
	}
	for _, d := range m.divisionals {
		d.forget(e)
	}
}

// Read is the first pass: scalar fields, the key map, tremulant and switch
// references, and the stops. Stop sections are looked up in f.
func (m *Manual) Read(f *ini.File, section string, ctx *Context) {
	o := ctx.organ()
	s := f.Section(section)
	m.Name = s.String("Name", m.Name)
	m.Displayed = s.Bool("Displayed", false)
	m.numberOfLogicalKeys = s.Int("NumberOfLogicalKeys", 1, maxManualKeys, defaultManualKeys)
	m.firstAccessibleKeyLogicalKeyNumber = s.Int("FirstAccessibleKeyLogicalKeyNumber", 1, m.numberOfLogicalKeys, 1)
	m.firstAccessibleKeyMIDINoteNumber = s.Int("FirstAccessibleKeyMIDINoteNumber", 0, midiKeys-1, defaultFirstMIDIKey)
	m.numberOfAccessibleKeys = s.Int("NumberOfAccessibleKeys", 0, maxAccessibleKeys, defaultManualKeys)
	m.midiInputNumber = s.Int("MIDIInputNumber", 0, 200, 0)

	m.keyMap = identityKeyMap()
	for k := range m.keyMap {
		m.keyMap[k] = s.Int("MIDIKey"+ini.Num(k), 0, midiKeys-1, k)
	}

	m.tremulants = nil
	n := s.Int("NumberOfTremulants", 0, 999, 0)
	for i := 1; i <= n; i++ {
		key := numbered("Tremulant", i)
		t := o.TremulantAt(s.Int(key, 1, 999, 0) - 1)
		if t == nil {
			ctx.log().Dangling(section, "%s references an unknown tremulant", key)
			continue
		}
		m.AddTremulant(t)
	}

	m.switches = nil
	n = s.Int("NumberOfSwitches", 0, 999, 0)
	for i := 1; i <= n; i++ {
		key := numbered("Switch", i)
		sw := o.SwitchAt(s.Int(key, 1, 999, 0) - 1)
		if sw == nil {
			ctx.log().Dangling(section, "%s references an unknown switch", key)
			continue
		}
		m.AddSwitch(sw)
	}

	m.stops = nil
	n = s.Int("NumberOfStops", 0, 999, 0)
	for i := 1; i <= n; i++ {
		key := numbered("Stop", i)
		child, ok := childSection(f, s, key, "Stop", ctx)
		if !ok {
			continue
		}
		st := NewStop("")
		st.Read(child, ctx)
		m.AddStop(st)
	}
}

// ReadCouplers is the second pass. It must run after every manual exists.
func (m *Manual) ReadCouplers(f *ini.File, section string, ctx *Context) {
	s := f.Section(section)
	m.couplers = nil
	n := s.Int("NumberOfCouplers", 0, 999, 0)
	for i := 1; i <= n; i++ {
		child, ok := childSection(f, s, numbered("Coupler", i), "Coupler", ctx)
		if !ok {
			continue
		}
		c := NewCoupler("")
		m.AddCoupler(c)
		c.Read(child, ctx)
	}
}

// ReadDivisionals is the third pass. It must run after every coupler exists.
func (m *Manual) ReadDivisionals(f *ini.File, section string, ctx *Context) {
	s := f.Section(section)
	m.divisionals = nil
	n := s.Int("NumberOfDivisionals", 0, 999, 0)
	for i := 1; i <= n; i++ {
		child, ok := childSection(f, s, numbered("Divisional", i), "Divisional", ctx)
		if !ok {
			continue
		}
		d := NewDivisional("")
		d.Read(child, ctx, m)
		m.AddDivisional(d)
	}
}

// childSection resolves a key such as Stop001=014 to the [Stop014] group,
// logging a malformed section when the number is invalid or the group is
// missing.
func childSection(f *ini.File, parent ini.Section, key, prefix string, ctx *Context) (ini.Section, bool) {
	n, ok := parent.IntOK(key, 1, 999)
	if !ok {
		ctx.log().Dangling(parent.Name(), "%s is not a valid %s number", key, prefix)
		return ini.Section{}, false
	}
	name := numbered(prefix, n)
	if !f.HasGroup(name) {
		ctx.log().MissingSection(name, parent.Name())
		return ini.Section{}, false
	}
	return f.Section(name), true
}

// Write emits the manual section. Stops, couplers and divisionals are
// referenced by the organ-wide numbers the organ assigns when writing.
func (m *Manual) Write(w *ini.Writer, ctx *Context) {
	o := ctx.organ()
	w.Set("Name", m.Name)
	w.SetInt("NumberOfLogicalKeys", m.numberOfLogicalKeys)
	w.SetInt("FirstAccessibleKeyLogicalKeyNumber", m.firstAccessibleKeyLogicalKeyNumber)
	w.SetInt("FirstAccessibleKeyMIDINoteNumber", m.firstAccessibleKeyMIDINoteNumber)
	w.SetInt("NumberOfAccessibleKeys", m.numberOfAccessibleKeys)
	writeIntIfNot(w, "MIDIInputNumber", m.midiInputNumber, 0)

	w.SetInt("NumberOfStops", len(m.stops))
	for i, s := range m.stops {
		w.SetIndex(numbered("Stop", i+1), o.StopNumber(s))
	}
	w.SetInt("NumberOfCouplers", len(m.couplers))
	for i, c := range m.couplers {
		w.SetIndex(numbered("Coupler", i+1), o.CouplerNumber(c))
	}
	w.SetInt("NumberOfDivisionals", len(m.divisionals))
	for i, d := range m.divisionals {
		w.SetIndex(numbered("Divisional", i+1), o.DivisionalNumber(d))
	}
	w.SetInt("NumberOfTremulants", len(m.tremulants))
	for i, t := range m.tremulants {
		w.SetIndex(numbered("Tremulant", i+1), o.IndexOfTremulant(t)+1)
	}
	w.SetInt("NumberOfSwitches", len(m.switches))
	for i, sw := range m.switches {
		w.SetIndex(numbered("Switch", i+1), o.IndexOfSwitch(sw)+1)
	}

	for _, k := range m.RemappedKeys() {
		w.SetInt("MIDIKey"+ini.Num(k), m.keyMap[k])
	}
}
