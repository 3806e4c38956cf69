package organ

import (
	"strings"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// CouplerType selects which keys of the source manual are coupled.
type CouplerType int

const (
	CouplerNormal CouplerType = iota
	CouplerBass
	CouplerMelody
)

var couplerTypeNames = []string{"Normal", "Bass", "Melody"}

func (t CouplerType) String() string {
	if t < 0 || int(t) >= len(couplerTypeNames) {
		return couplerTypeNames[0]
	}
	return couplerTypeNames[t]
}

// ParseCouplerType accepts a coupler type name, case-insensitively.
func ParseCouplerType(s string) (CouplerType, bool) {
	for i, name := range couplerTypeNames {
		if strings.EqualFold(name, s) {
			return CouplerType(i), true
		}
	}
	return CouplerNormal, false
}

const (
	defaultCouplerKeys = 127
	maxKeyshift        = 24
)

// Coupler connects the keys of its manual to another manual, or silences the
// manual's own unison when UnisonOff is set.
type Coupler struct {
	Drawstop

	UnisonOff   bool
	CouplerType CouplerType

	CoupleToSubsequentUnisonIntermanualCouplers   bool
	CoupleToSubsequentUpwardIntermanualCouplers   bool
	CoupleToSubsequentDownwardIntermanualCouplers bool
	CoupleToSubsequentUpwardIntramanualCouplers   bool
	CoupleToSubsequentDownwardIntramanualCouplers bool

	owner               *Manual
	destination         *Manual
	destinationKeyshift int
	firstMIDINoteNumber int
	numberOfKeys        int
}

// NewCoupler returns a unison coupler onto its own manual.
func NewCoupler(name string) *Coupler {
	return &Coupler{
		Drawstop:     newDrawstop(name),
		numberOfKeys: defaultCouplerKeys,
	}
}

func (*Coupler) entity() {}

// Owner returns the manual the coupler belongs to.
func (c *Coupler) Owner() *Manual { return c.owner }

// DestinationManual returns the coupled manual; a coupler without an explicit
// destination couples onto its own manual.
func (c *Coupler) DestinationManual() *Manual {
	if c.destination == nil {
		return c.owner
	}
	return c.destination
}

// SetDestinationManual sets the coupled manual.
func (c *Coupler) SetDestinationManual(m *Manual) { c.destination = m }

// DestinationKeyshift returns the transposition in semitones.
func (c *Coupler) DestinationKeyshift() int { return c.destinationKeyshift }

// SetDestinationKeyshift ignores values outside -24..24.
func (c *Coupler) SetDestinationKeyshift(v int) {
	if v >= -maxKeyshift && v <= maxKeyshift {
		c.destinationKeyshift = v
	}
}

// FirstMIDINoteNumber returns the first coupled MIDI note.
func (c *Coupler) FirstMIDINoteNumber() int { return c.firstMIDINoteNumber }

// SetFirstMIDINoteNumber ignores values outside 0..127.
func (c *Coupler) SetFirstMIDINoteNumber(v int) {
	if v >= 0 && v <= 127 {
		c.firstMIDINoteNumber = v
	}
}

// NumberOfKeys returns how many keys are coupled.
func (c *Coupler) NumberOfKeys() int { return c.numberOfKeys }

// SetNumberOfKeys ignores values outside 0..127.
func (c *Coupler) SetNumberOfKeys(v int) {
	if v >= 0 && v <= 127 {
		c.numberOfKeys = v
	}
}

// IsIntermanual reports whether the coupler reaches another manual.
func (c *Coupler) IsIntermanual() bool {
	return !c.UnisonOff && c.destination != nil && c.destination != c.owner
}

func (c *Coupler) forget(e Entity) {
	c.Drawstop.forget(e)
	if m, ok := e.(*Manual); ok && c.destination == m {
		c.destination = nil
	}
}

// Read loads the coupler. Every manual must already exist since the
// destination may be any of them.
func (c *Coupler) Read(s ini.Section, ctx *Context) {
	o := ctx.organ()
	c.readDrawstop(s, ctx, o.NumberOfSwitches())

	c.UnisonOff = s.Bool("UnisonOff", false)
	c.destination = nil
	c.destinationKeyshift = 0
	c.CoupleToSubsequentUnisonIntermanualCouplers = false
	c.CoupleToSubsequentUpwardIntermanualCouplers = false
	c.CoupleToSubsequentDownwardIntermanualCouplers = false
	c.CoupleToSubsequentUpwardIntramanualCouplers = false
	c.CoupleToSubsequentDownwardIntramanualCouplers = false
	if !c.UnisonOff {
		if n, ok := s.IntOK("DestinationManual", o.FirstManualNumber(), o.LastManualNumber()); ok {
			c.destination = o.ManualByNumber(n)
		} else if v, present := s.Raw("DestinationManual"); present {
			ctx.log().Dangling(s.Name(), "DestinationManual references unknown manual %s", v)
		}
		c.destinationKeyshift = s.Int("DestinationKeyshift", -maxKeyshift, maxKeyshift, 0)
		c.CoupleToSubsequentUnisonIntermanualCouplers = s.Bool("CoupleToSubsequentUnisonIntermanualCouplers", false)
		c.CoupleToSubsequentUpwardIntermanualCouplers = s.Bool("CoupleToSubsequentUpwardIntermanualCouplers", false)
		c.CoupleToSubsequentDownwardIntermanualCouplers = s.Bool("CoupleToSubsequentDownwardIntermanualCouplers", false)
		c.CoupleToSubsequentUpwardIntramanualCouplers = s.Bool("CoupleToSubsequentUpwardIntramanualCouplers", false)
		c.CoupleToSubsequentDownwardIntramanualCouplers = s.Bool("CoupleToSubsequentDownwardIntramanualCouplers", false)
	}

	c.CouplerType = CouplerNormal
	if t, ok := ParseCouplerType(s.String("CouplerType", "")); ok {
		c.CouplerType = t
	}
	c.firstMIDINoteNumber = s.Int("FirstMIDINoteNumber", 0, 127, 0)
	c.numberOfKeys = s.Int("NumberOfKeys", 0, 127, defaultCouplerKeys)
}

// Write emits the coupler keys. The destination block is mandatory unless
// the coupler is a unison-off.
func (c *Coupler) Write(w *ini.Writer, ctx *Context) {
	o := ctx.organ()
	c.writeDrawstop(w, ctx)
	w.SetBool("UnisonOff", c.UnisonOff)
	if !c.UnisonOff {
		if dest := c.DestinationManual(); dest != nil {
			w.SetIndex("DestinationManual", o.ManualNumber(dest))
		}
		w.SetInt("DestinationKeyshift", c.destinationKeyshift)
		w.SetBool("CoupleToSubsequentUnisonIntermanualCouplers", c.CoupleToSubsequentUnisonIntermanualCouplers)
		w.SetBool("CoupleToSubsequentUpwardIntermanualCouplers", c.CoupleToSubsequentUpwardIntermanualCouplers)
		w.SetBool("CoupleToSubsequentDownwardIntermanualCouplers", c.CoupleToSubsequentDownwardIntermanualCouplers)
		w.SetBool("CoupleToSubsequentUpwardIntramanualCouplers", c.CoupleToSubsequentUpwardIntramanualCouplers)
		w.SetBool("CoupleToSubsequentDownwardIntramanualCouplers", c.CoupleToSubsequentDownwardIntramanualCouplers)
	}
	if c.CouplerType != CouplerNormal {
		w.Set("CouplerType", c.CouplerType.String())
	}
	writeIntIfNot(w, "FirstMIDINoteNumber", c.firstMIDINoteNumber, 0)
	writeIntIfNot(w, "NumberOfKeys", c.numberOfKeys, defaultCouplerKeys)
}

// Clone returns a detached copy; it belongs to no manual until added.
func (c *Coupler) Clone() *Coupler {
	cp := *c
	cp.Drawstop = c.cloneDrawstop()
	cp.owner = nil
	return &cp
}
