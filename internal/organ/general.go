package organ

import (
	"slices"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// General is an organ-wide combination. Stops and couplers are addressed by
// manual number plus their index within that manual.
type General struct {
	Button
	Protected bool

	stops              []Setting[*Stop]
	couplers           []Setting[*Coupler]
	tremulants         []Setting[*Tremulant]
	switches           []Setting[*Switch]
	divisionalCouplers []Setting[*DivisionalCoupler]
}

// NewGeneral returns an empty general.
func NewGeneral(name string) *General {
	return &General{Button: newButton(name)}
}

func (*General) entity() {}

// Stops returns the stored stop states.
func (g *General) Stops() []Setting[*Stop] { return slices.Clone(g.stops) }

// Couplers returns the stored coupler states.
func (g *General) Couplers() []Setting[*Coupler] { return slices.Clone(g.couplers) }

// Tremulants returns the stored tremulant states.
func (g *General) Tremulants() []Setting[*Tremulant] { return slices.Clone(g.tremulants) }

// Switches returns the stored switch states.
func (g *General) Switches() []Setting[*Switch] { return slices.Clone(g.switches) }

// DivisionalCouplers returns the stored divisional coupler states.
func (g *General) DivisionalCouplers() []Setting[*DivisionalCoupler] {
	return slices.Clone(g.divisionalCouplers)
}

// SetStop stores s.
func (g *General) SetStop(s *Stop, engaged bool) {
	if s != nil {
		g.stops = putSetting(g.stops, s, engaged)
	}
}

// SetCoupler stores c.
func (g *General) SetCoupler(c *Coupler, engaged bool) {
	if c != nil {
		g.couplers = putSetting(g.couplers, c, engaged)
	}
}

// SetTremulant stores t.
func (g *General) SetTremulant(t *Tremulant, engaged bool) {
	if t != nil {
		g.tremulants = putSetting(g.tremulants, t, engaged)
	}
}

// SetSwitch stores sw.
func (g *General) SetSwitch(sw *Switch, engaged bool) {
	if sw != nil {
		g.switches = putSetting(g.switches, sw, engaged)
	}
}

// SetDivisionalCoupler stores dc.
func (g *General) SetDivisionalCoupler(dc *DivisionalCoupler, engaged bool) {
	if dc != nil {
		g.divisionalCouplers = putSetting(g.divisionalCouplers, dc, engaged)
	}
}

// HasStop reports whether s is part of the combination.
func (g *General) HasStop(s *Stop) bool { return hasSetting(g.stops, s) }

// HasCoupler reports whether c is part of the combination.
func (g *General) HasCoupler(c *Coupler) bool { return hasSetting(g.couplers, c) }

// HasTremulant reports whether t is part of the combination.
func (g *General) HasTremulant(t *Tremulant) bool { return hasSetting(g.tremulants, t) }

// HasSwitch reports whether sw is part of the combination.
func (g *General) HasSwitch(sw *Switch) bool { return hasSetting(g.switches, sw) }

// HasDivisionalCoupler reports whether dc is part of the combination.
func (g *General) HasDivisionalCoupler(dc *DivisionalCoupler) bool {
	return hasSetting(g.divisionalCouplers, dc)
}

func (g *General) forget(e Entity) {
	switch x := e.(type) {
	case *Stop:
		g.stops = dropSetting(g.stops, x)
	case *Coupler:
		g.couplers = dropSetting(g.couplers, x)
	case *Tremulant:
		g.tremulants = dropSetting(g.tremulants, x)
	case *Switch:
		g.switches = dropSetting(g.switches, x)
	case *DivisionalCoupler:
		g.divisionalCouplers = dropSetting(g.divisionalCouplers, x)
	}
}

// readManualSettings reads the paired XManualNNN/XNNN lists used for stops and
// couplers.
func readManualSettings[T comparable](s ini.Section, ctx *Context, noun string, count func(*Manual) int, at func(*Manual, int) T) []Setting[T] {
	o := ctx.organ()
	var out []Setting[T]
	var zero T
	n := s.Int("NumberOf"+noun+"s", 0, 999, 0)
	for i := 1; i <= n; i++ {
		manKey := numbered(noun+"Manual", i)
		key := numbered(noun, i)
		num, ok := s.IntOK(manKey, o.FirstManualNumber(), o.LastManualNumber())
		m := o.ManualByNumber(num)
		if !ok || m == nil {
			ctx.log().Dangling(s.Name(), "%s references an unknown manual", manKey)
			continue
		}
		idx, engaged, ok := readSigned(s, key, count(m))
		if !ok {
			ctx.log().Dangling(s.Name(), "%s has an invalid reference", key)
			continue
		}
		x := at(m, idx)
		if x == zero {
			continue
		}
		out = putSetting(out, x, engaged)
	}
	return out
}

// Read loads the general. All manuals and divisional couplers must exist.
func (g *General) Read(s ini.Section, ctx *Context) {
	o := ctx.organ()
	g.readButton(s)
	g.Protected = s.Bool("Protected", false)

	g.stops = readManualSettings(s, ctx, "Stop", (*Manual).NumberOfStops, (*Manual).StopAt)
	g.couplers = readManualSettings(s, ctx, "Coupler", (*Manual).NumberOfCouplers, (*Manual).CouplerAt)
	g.tremulants = readSettings(s, ctx, "NumberOfTremulants", "Tremulant", o.NumberOfTremulants(), func(i int) (*Tremulant, bool) {
		x := o.TremulantAt(i)
		return x, x != nil
	})
	g.switches = readSettings(s, ctx, "NumberOfSwitches", "Switch", o.NumberOfSwitches(), func(i int) (*Switch, bool) {
		x := o.SwitchAt(i)
		return x, x != nil
	})
	g.divisionalCouplers = readSettings(s, ctx, "NumberOfDivisionalCouplers", "DivisionalCoupler", o.NumberOfDivisionalCouplers(), func(i int) (*DivisionalCoupler, bool) {
		x := o.DivisionalCouplerAt(i)
		return x, x != nil
	})
}

// Write emits the general keys.
func (g *General) Write(w *ini.Writer, ctx *Context) {
	o := ctx.organ()
	g.writeButton(w)
	writeBoolIfNot(w, "Protected", g.Protected, false)

	w.SetInt("NumberOfStops", len(g.stops))
	for i, st := range g.stops {
		m := st.Object.Owner()
		w.SetIndex(numbered("StopManual", i+1), o.ManualNumber(m))
		w.SetIndex(numbered("Stop", i+1), signed(m.IndexOfStop(st.Object)+1, st.Engaged))
	}
	w.SetInt("NumberOfCouplers", len(g.couplers))
	for i, st := range g.couplers {
		m := st.Object.Owner()
		w.SetIndex(numbered("CouplerManual", i+1), o.ManualNumber(m))
		w.SetIndex(numbered("Coupler", i+1), signed(m.IndexOfCoupler(st.Object)+1, st.Engaged))
	}
	writeSettings(w, "NumberOfTremulants", "Tremulant", g.tremulants, o.IndexOfTremulant)
	writeSettings(w, "NumberOfSwitches", "Switch", g.switches, o.IndexOfSwitch)
	writeSettings(w, "NumberOfDivisionalCouplers", "DivisionalCoupler", g.divisionalCouplers, o.IndexOfDivisionalCoupler)
}

// Clone returns a copy sharing the referenced objects.
func (g *General) Clone() *General {
	c := *g
	c.stops = slices.Clone(g.stops)
	c.couplers = slices.Clone(g.couplers)
	c.tremulants = slices.Clone(g.tremulants)
	c.switches = slices.Clone(g.switches)
	c.divisionalCouplers = slices.Clone(g.divisionalCouplers)
	return &c
}
