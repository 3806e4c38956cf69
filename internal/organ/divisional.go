package organ

import (
	"slices"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// Divisional is a combination stored on one manual. Stops and couplers are
// numbered within that manual; tremulants and switches are organ-wide.
type Divisional struct {
	Button
	Protected bool

	owner      *Manual
	stops      []Setting[*Stop]
	couplers   []Setting[*Coupler]
	tremulants []Setting[*Tremulant]
	switches   []Setting[*Switch]
}

// NewDivisional returns an empty divisional.
func NewDivisional(name string) *Divisional {
	return &Divisional{Button: newButton(name)}
}

func (*Divisional) entity() {}

// Owner returns the manual the divisional belongs to.
func (d *Divisional) Owner() *Manual { return d.owner }

// Stops returns the stored stop states.
func (d *Divisional) Stops() []Setting[*Stop] { return slices.Clone(d.stops) }

// Couplers returns the stored coupler states.
func (d *Divisional) Couplers() []Setting[*Coupler] { return slices.Clone(d.couplers) }

// Tremulants returns the stored tremulant states.
func (d *Divisional) Tremulants() []Setting[*Tremulant] { return slices.Clone(d.tremulants) }

// Switches returns the stored switch states.
func (d *Divisional) Switches() []Setting[*Switch] { return slices.Clone(d.switches) }

// SetStop stores s as engaged or disengaged. Stops of other manuals are refused.
func (d *Divisional) SetStop(s *Stop, engaged bool) bool {
	if s == nil || (d.owner != nil && !d.owner.HasStop(s)) {
		return false
	}
	d.stops = putSetting(d.stops, s, engaged)
	return true
}

// SetCoupler stores c. Couplers of other manuals are refused.
func (d *Divisional) SetCoupler(c *Coupler, engaged bool) bool {
	if c == nil || (d.owner != nil && !d.owner.HasCoupler(c)) {
		return false
	}
	d.couplers = putSetting(d.couplers, c, engaged)
	return true
}

// SetTremulant stores t.
func (d *Divisional) SetTremulant(t *Tremulant, engaged bool) {
	if t != nil {
		d.tremulants = putSetting(d.tremulants, t, engaged)
	}
}

// SetSwitch stores sw.
func (d *Divisional) SetSwitch(sw *Switch, engaged bool) {
	if sw != nil {
		d.switches = putSetting(d.switches, sw, engaged)
	}
}

// HasStop reports whether s is part of the combination.
func (d *Divisional) HasStop(s *Stop) bool { return hasSetting(d.stops, s) }

// HasCoupler reports whether c is part of the combination.
func (d *Divisional) HasCoupler(c *Coupler) bool { return hasSetting(d.couplers, c) }

// HasTremulant reports whether t is part of the combination.
func (d *Divisional) HasTremulant(t *Tremulant) bool { return hasSetting(d.tremulants, t) }

// HasSwitch reports whether sw is part of the combination.
func (d *Divisional) HasSwitch(sw *Switch) bool { return hasSetting(d.switches, sw) }

func (d *Divisional) forget(e Entity) {
	switch x := e.(type) {
	case *Stop:
		d.stops = dropSetting(d.stops, x)
	case *Coupler:
		d.couplers = dropSetting(d.couplers, x)
	case *Tremulant:
		d.tremulants = dropSetting(d.tremulants, x)
	case *Switch:
		d.switches = dropSetting(d.switches, x)
	}
}

// Read loads the divisional. The owning manual's stops and couplers must be
// complete.
func (d *Divisional) Read(s ini.Section, ctx *Context, m *Manual) {
	o := ctx.organ()
	d.owner = m
	d.readButton(s)
	d.Protected = s.Bool("Protected", false)

	d.stops = readSettings(s, ctx, "NumberOfStops", "Stop", m.NumberOfStops(), func(i int) (*Stop, bool) {
		x := m.StopAt(i)
		return x, x != nil
	})
	d.couplers = readSettings(s, ctx, "NumberOfCouplers", "Coupler", m.NumberOfCouplers(), func(i int) (*Coupler, bool) {
		x := m.CouplerAt(i)
		return x, x != nil
	})
	d.tremulants = readSettings(s, ctx, "NumberOfTremulants", "Tremulant", o.NumberOfTremulants(), func(i int) (*Tremulant, bool) {
		x := o.TremulantAt(i)
		return x, x != nil
	})
	d.switches = readSettings(s, ctx, "NumberOfSwitches", "Switch", o.NumberOfSwitches(), func(i int) (*Switch, bool) {
		x := o.SwitchAt(i)
		return x, x != nil
	})
}

// Write emits the divisional keys. The four counts are always written.
func (d *Divisional) Write(w *ini.Writer, ctx *Context) {
	o := ctx.organ()
	m := d.owner
	d.writeButton(w)
	writeBoolIfNot(w, "Protected", d.Protected, false)
	writeSettings(w, "NumberOfStops", "Stop", d.stops, m.IndexOfStop)
	writeSettings(w, "NumberOfCouplers", "Coupler", d.couplers, m.IndexOfCoupler)
	writeSettings(w, "NumberOfTremulants", "Tremulant", d.tremulants, o.IndexOfTremulant)
	writeSettings(w, "NumberOfSwitches", "Switch", d.switches, o.IndexOfSwitch)
}

// Clone returns a detached copy sharing the referenced objects.
func (d *Divisional) Clone() *Divisional {
	c := *d
	c.owner = nil
	c.stops = slices.Clone(d.stops)
	c.couplers = slices.Clone(d.couplers)
	c.tremulants = slices.Clone(d.tremulants)
	c.switches = slices.Clone(d.switches)
	return &c
}
