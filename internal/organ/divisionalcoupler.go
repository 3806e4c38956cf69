package organ

import (
	"slices"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// DivisionalCoupler makes a divisional on one manual trigger the divisional
// with the same number on the other listed manuals.
type DivisionalCoupler struct {
	Drawstop
	BiDirectionalCoupling bool

	manuals []*Manual
}

// NewDivisionalCoupler returns a divisional coupler with no manuals.
func NewDivisionalCoupler(name string) *DivisionalCoupler {
	return &DivisionalCoupler{Drawstop: newDrawstop(name)}
}

func (*DivisionalCoupler) entity() {}

// Manuals returns the coupled manuals in order.
func (dc *DivisionalCoupler) Manuals() []*Manual { return slices.Clone(dc.manuals) }

// AddManual references m once.
func (dc *DivisionalCoupler) AddManual(m *Manual) {
	if m != nil && !slices.Contains(dc.manuals, m) {
		dc.manuals = append(dc.manuals, m)
	}
}

// HasManual reports whether m is coupled.
func (dc *DivisionalCoupler) HasManual(m *Manual) bool { return slices.Contains(dc.manuals, m) }

// RemoveManual drops m.
func (dc *DivisionalCoupler) RemoveManual(m *Manual) {
	dc.manuals = slices.DeleteFunc(dc.manuals, func(x *Manual) bool { return x == m })
}

func (dc *DivisionalCoupler) forget(e Entity) {
	dc.Drawstop.forget(e)
	if m, ok := e.(*Manual); ok {
		dc.RemoveManual(m)
	}
}

// Read loads the divisional coupler.
func (dc *DivisionalCoupler) Read(s ini.Section, ctx *Context) {
	o := ctx.organ()
	dc.readDrawstop(s, ctx, o.NumberOfSwitches())
	dc.BiDirectionalCoupling = s.Bool("BiDirectionalCoupling", false)

	dc.manuals = nil
	n := s.Int("NumberOfManuals", 0, o.NumberOfManuals(), 0)
	for i := 1; i <= n; i++ {
		key := numbered("Manual", i)
		num, ok := s.IntOK(key, o.FirstManualNumber(), o.LastManualNumber())
		if !ok {
			ctx.log().Dangling(s.Name(), "%s references an unknown manual", key)
			continue
		}
		dc.AddManual(o.ManualByNumber(num))
	}
}

// Write emits the divisional coupler keys.
func (dc *DivisionalCoupler) Write(w *ini.Writer, ctx *Context) {
	o := ctx.organ()
	dc.writeDrawstop(w, ctx)
	w.SetBool("BiDirectionalCoupling", dc.BiDirectionalCoupling)
	w.SetInt("NumberOfManuals", len(dc.manuals))
	for i, m := range dc.manuals {
		w.SetIndex(numbered("Manual", i+1), o.ManualNumber(m))
	}
}

// Clone returns a copy sharing the manual references.
func (dc *DivisionalCoupler) Clone() *DivisionalCoupler {
	c := *dc
	c.Drawstop = dc.cloneDrawstop()
	c.manuals = slices.Clone(dc.manuals)
	return &c
}
