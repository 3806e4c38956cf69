package organ

import (
	"strings"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// TremulantType selects how the tremulant is produced.
type TremulantType int

const (
	TremulantSynth TremulantType = iota
	TremulantWave
)

func (t TremulantType) String() string {
	if t == TremulantWave {
		return "Wave"
	}
	return "Synth"
}

const (
	defaultTremPeriod      = 160
	defaultTremStartRate   = 8
	defaultTremStopRate    = 8
	defaultTremAmpModDepth = 18
)

// Tremulant is an organ-level drawstop that modulates the wind.
type Tremulant struct {
	Drawstop

	Type        TremulantType
	period      int
	startRate   int
	stopRate    int
	ampModDepth int
}

// NewTremulant returns a synthesized tremulant with default parameters.
func NewTremulant(name string) *Tremulant {
	return &Tremulant{
		Drawstop:    newDrawstop(name),
		period:      defaultTremPeriod,
		startRate:   defaultTremStartRate,
		stopRate:    defaultTremStopRate,
		ampModDepth: defaultTremAmpModDepth,
	}
}

func (*Tremulant) entity() {}

// Period returns the modulation period in milliseconds.
func (t *Tremulant) Period() int { return t.period }

// SetPeriod ignores values outside 32..441000.
func (t *Tremulant) SetPeriod(v int) {
	if v >= 32 && v <= 441000 {
		t.period = v
	}
}

// StartRate returns the ramp-up rate.
func (t *Tremulant) StartRate() int { return t.startRate }

// SetStartRate ignores values outside 1..100.
func (t *Tremulant) SetStartRate(v int) {
	if v >= 1 && v <= 100 {
		t.startRate = v
	}
}

// StopRate returns the ramp-down rate.
func (t *Tremulant) StopRate() int { return t.stopRate }

// SetStopRate ignores values outside 1..100.
func (t *Tremulant) SetStopRate(v int) {
	if v >= 1 && v <= 100 {
		t.stopRate = v
	}
}

// AmpModDepth returns the amplitude modulation depth.
func (t *Tremulant) AmpModDepth() int { return t.ampModDepth }

// SetAmpModDepth ignores values outside 1..100.
func (t *Tremulant) SetAmpModDepth(v int) {
	if v >= 1 && v <= 100 {
		t.ampModDepth = v
	}
}

// Read loads the tremulant.
func (t *Tremulant) Read(s ini.Section, ctx *Context) {
	t.readDrawstop(s, ctx, ctx.organ().NumberOfSwitches())
	t.Type = TremulantSynth
	if strings.EqualFold(s.String("TremulantType", ""), "Wave") {
		t.Type = TremulantWave
	}
	t.period = s.Int("Period", 32, 441000, defaultTremPeriod)
	t.startRate = s.Int("StartRate", 1, 100, defaultTremStartRate)
	t.stopRate = s.Int("StopRate", 1, 100, defaultTremStopRate)
	t.ampModDepth = s.Int("AmpModDepth", 1, 100, defaultTremAmpModDepth)
}

// Write emits the tremulant keys. Wave tremulants carry no synthesis parameters.
func (t *Tremulant) Write(w *ini.Writer, ctx *Context) {
	t.writeDrawstop(w, ctx)
	if t.Type == TremulantWave {
		w.Set("TremulantType", t.Type.String())
		return
	}
	writeIntIfNot(w, "Period", t.period, defaultTremPeriod)
	writeIntIfNot(w, "StartRate", t.startRate, defaultTremStartRate)
	writeIntIfNot(w, "StopRate", t.stopRate, defaultTremStopRate)
	writeIntIfNot(w, "AmpModDepth", t.ampModDepth, defaultTremAmpModDepth)
}

// Clone returns a copy sharing the same switch references.
func (t *Tremulant) Clone() *Tremulant {
	c := *t
	c.Drawstop = t.cloneDrawstop()
	return &c
}
