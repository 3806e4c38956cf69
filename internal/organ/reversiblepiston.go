package organ

import (
	"strings"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// ReversiblePiston toggles one stop, coupler, switch or tremulant.
type ReversiblePiston struct {
	Button

	target Entity
}

// NewReversiblePiston returns a piston without a target.
func NewReversiblePiston(name string) *ReversiblePiston {
	return &ReversiblePiston{Button: newButton(name)}
}

func (*ReversiblePiston) entity() {}

// Target returns the toggled object, or nil.
func (p *ReversiblePiston) Target() Entity { return p.target }

// SetTarget points the piston at a *Stop, *Coupler, *Switch or *Tremulant.
// Any other kind is ignored.
func (p *ReversiblePiston) SetTarget(e Entity) {
	switch e.(type) {
	case *Stop, *Coupler, *Switch, *Tremulant, nil:
		p.target = e
	}
}

// ObjectType returns the ODF object type of the target, or "".
func (p *ReversiblePiston) ObjectType() string {
	switch p.target.(type) {
	case *Stop:
		return "STOP"
	case *Coupler:
		return "COUPLER"
	case *Switch:
		return "SWITCH"
	case *Tremulant:
		return "TREMULANT"
	}
	return ""
}

func (p *ReversiblePiston) forget(e Entity) {
	if p.target == e {
		p.target = nil
	}
}

// Read loads the piston. Manuals and organ-level drawstops must exist.
func (p *ReversiblePiston) Read(s ini.Section, ctx *Context) {
	o := ctx.organ()
	p.readButton(s)
	p.target = nil

	objType := strings.ToUpper(s.String("ObjectType", ""))
	switch objType {
	case "STOP", "COUPLER":
		num, ok := s.IntOK("ManualNumber", o.FirstManualNumber(), o.LastManualNumber())
		m := o.ManualByNumber(num)
		if !ok || m == nil {
			ctx.log().Dangling(s.Name(), "ManualNumber references an unknown manual")
			return
		}
		if objType == "STOP" {
			if st := m.StopAt(s.Int("ObjectNumber", 1, m.NumberOfStops(), 0) - 1); st != nil {
				p.target = st
			}
		} else if c := m.CouplerAt(s.Int("ObjectNumber", 1, m.NumberOfCouplers(), 0) - 1); c != nil {
			p.target = c
		}
	case "SWITCH":
		if sw := o.SwitchAt(s.Int("ObjectNumber", 1, o.NumberOfSwitches(), 0) - 1); sw != nil {
			p.target = sw
		}
	case "TREMULANT":
		if t := o.TremulantAt(s.Int("ObjectNumber", 1, o.NumberOfTremulants(), 0) - 1); t != nil {
			p.target = t
		}
	case "":
		return
	default:
		ctx.log().Dangling(s.Name(), "unknown ObjectType %q", objType)
		return
	}
	if p.target == nil {
		ctx.log().Dangling(s.Name(), "ObjectNumber references a missing %s", strings.ToLower(objType))
	}
}

// Write emits the piston keys; the target block is omitted when unset.
func (p *ReversiblePiston) Write(w *ini.Writer, ctx *Context) {
	o := ctx.organ()
	p.writeButton(w)
	switch t := p.target.(type) {
	case *Stop:
		w.Set("ObjectType", p.ObjectType())
		w.SetIndex("ManualNumber", o.ManualNumber(t.Owner()))
		w.SetIndex("ObjectNumber", t.Owner().IndexOfStop(t)+1)
	case *Coupler:
		w.Set("ObjectType", p.ObjectType())
		w.SetIndex("ManualNumber", o.ManualNumber(t.Owner()))
		w.SetIndex("ObjectNumber", t.Owner().IndexOfCoupler(t)+1)
	case *Switch:
		w.Set("ObjectType", p.ObjectType())
		w.SetIndex("ObjectNumber", o.IndexOfSwitch(t)+1)
	case *Tremulant:
		w.Set("ObjectType", p.ObjectType())
		w.SetIndex("ObjectNumber", o.IndexOfTremulant(t)+1)
	}
}

// Clone returns a copy with the same target.
func (p *ReversiblePiston) Clone() *ReversiblePiston {
	c := *p
	return &c
}
