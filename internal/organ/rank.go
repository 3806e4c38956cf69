package organ

import (
	"strings"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// Tuning is the set of level and pitch adjustments shared by the organ,
// ranks and individual pipes.
type Tuning struct {
	AmplitudeLevel float64
	Gain           float64
	PitchTuning    float64
	TrackerDelay   int
}

// DefaultTuning is the neutral tuning.
func DefaultTuning() Tuning {
	return Tuning{AmplitudeLevel: 100}
}

func (t *Tuning) read(s ini.Section, prefix string, def Tuning) {
	t.AmplitudeLevel = s.Float(prefix+"AmplitudeLevel", 0, 1000, def.AmplitudeLevel)
	t.Gain = s.Float(prefix+"Gain", -120, 40, def.Gain)
	t.PitchTuning = s.Float(prefix+"PitchTuning", -1800, 1800, def.PitchTuning)
	t.TrackerDelay = s.Int(prefix+"TrackerDelay", 0, 10000, def.TrackerDelay)
}

func (t *Tuning) write(w *ini.Writer, prefix string, def Tuning) {
	writeFloatIfNot(w, prefix+"AmplitudeLevel", t.AmplitudeLevel, def.AmplitudeLevel)
	writeFloatIfNot(w, prefix+"Gain", t.Gain, def.Gain)
	writeFloatIfNot(w, prefix+"PitchTuning", t.PitchTuning, def.PitchTuning)
	writeIntIfNot(w, prefix+"TrackerDelay", t.TrackerDelay, def.TrackerDelay)
}

const (
	defaultFirstMidiNote  = 36
	defaultHarmonicNumber = 8
	maxLogicalPipes       = 192
	maxCrossfade          = 3000
)

// Pipe is one logical pipe of a rank. Only its metadata is kept; samples are
// never loaded.
type Pipe struct {
	// Sample is a file path (absolute when it resolves), a REF:mmm:sss:ppp
	// reference to another pipe, or DUMMY.
	Sample string

	Percussive             bool
	Tuning                 Tuning
	HarmonicNumber         int
	PitchCorrection        float64
	LoopCrossfadeLength    int
	ReleaseCrossfadeLength int
	IsTremulant            int
}

func isFileSample(sample string) bool {
	upper := strings.ToUpper(sample)
	return sample != "" && upper != "DUMMY" && !strings.HasPrefix(upper, "REF:")
}

func (r *Rank) newPipe() *Pipe {
	return &Pipe{
		Sample:         "DUMMY",
		Percussive:     r.Percussive,
		Tuning:         DefaultTuning(),
		HarmonicNumber: r.harmonicNumber,
		IsTremulant:    -1,
	}
}

func (p *Pipe) read(s ini.Section, prefix string, r *Rank, ctx *Context) {
	p.Sample = s.String(prefix, "DUMMY")
	if isFileSample(p.Sample) {
		p.Sample = ctx.resolve(p.Sample)
	}
	p.Percussive = s.Bool(prefix+"Percussive", r.Percussive)
	p.Tuning.read(s, prefix, DefaultTuning())
	p.HarmonicNumber = s.Int(prefix+"HarmonicNumber", 1, 1024, r.harmonicNumber)
	p.PitchCorrection = s.Float(prefix+"PitchCorrection", -1800, 1800, 0)
	p.LoopCrossfadeLength = s.Int(prefix+"LoopCrossfadeLength", 0, maxCrossfade, 0)
	p.ReleaseCrossfadeLength = s.Int(prefix+"ReleaseCrossfadeLength", 0, maxCrossfade, 0)
	p.IsTremulant = s.Int(prefix+"IsTremulant", -1, 1, -1)

	if p.Percussive && p.ReleaseCrossfadeLength > 0 {
		ctx.log().Structural(s.Name(), "%sReleaseCrossfadeLength has no effect on a percussive pipe", prefix)
	}
}

func (p *Pipe) write(w *ini.Writer, prefix string, r *Rank, ctx *Context) {
	sample := p.Sample
	if isFileSample(sample) {
		sample = ctx.relative(sample)
	}
	w.Set(prefix, sample)
	writeBoolIfNot(w, prefix+"Percussive", p.Percussive, r.Percussive)
	p.Tuning.write(w, prefix, DefaultTuning())
	writeIntIfNot(w, prefix+"HarmonicNumber", p.HarmonicNumber, r.harmonicNumber)
	writeFloatIfNot(w, prefix+"PitchCorrection", p.PitchCorrection, 0)
	writeIntIfNot(w, prefix+"LoopCrossfadeLength", p.LoopCrossfadeLength, 0)
	writeIntIfNot(w, prefix+"ReleaseCrossfadeLength", p.ReleaseCrossfadeLength, 0)
	writeIntIfNot(w, prefix+"IsTremulant", p.IsTremulant, -1)
}

// Rank is a set of pipes sounding on one windchest group.
type Rank struct {
	Name       string
	Percussive bool
	Tuning     Tuning

	AcceptsRetuning bool

	firstMidiNoteNumber int
	harmonicNumber      int
	pitchCorrection     float64
	minVelocityVolume   float64
	maxVelocityVolume   float64
	windchest           *WindchestGroup
	pipes               []*Pipe
}

// NewRank returns a rank with pipes logical pipes, all DUMMY.
func NewRank(name string, pipes int) *Rank {
	r := &Rank{
		Name:                name,
		Tuning:              DefaultTuning(),
		AcceptsRetuning:     true,
		firstMidiNoteNumber: defaultFirstMidiNote,
		harmonicNumber:      defaultHarmonicNumber,
		minVelocityVolume:   100,
		maxVelocityVolume:   100,
	}
	r.SetNumberOfLogicalPipes(pipes)
	return r
}

func (*Rank) entity() {}

// DisplayName returns the rank name.
func (r *Rank) DisplayName() string { return r.Name }

// FirstMidiNoteNumber returns the MIDI note of the first pipe.
func (r *Rank) FirstMidiNoteNumber() int { return r.firstMidiNoteNumber }

// SetFirstMidiNoteNumber ignores values outside 0..256.
func (r *Rank) SetFirstMidiNoteNumber(v int) {
	if v >= 0 && v <= 256 {
		r.firstMidiNoteNumber = v
	}
}

// HarmonicNumber returns the harmonic number (8 = unison).
func (r *Rank) HarmonicNumber() int { return r.harmonicNumber }

// SetHarmonicNumber ignores values outside 1..1024.
func (r *Rank) SetHarmonicNumber(v int) {
	if v >= 1 && v <= 1024 {
		r.harmonicNumber = v
	}
}

// WindchestGroup returns the windchest the rank sounds on, or nil.
func (r *Rank) WindchestGroup() *WindchestGroup { return r.windchest }

// SetWindchestGroup assigns the windchest.
func (r *Rank) SetWindchestGroup(g *WindchestGroup) { r.windchest = g }

// NumberOfLogicalPipes returns the pipe count.
func (r *Rank) NumberOfLogicalPipes() int { return len(r.pipes) }

// SetNumberOfLogicalPipes grows or shrinks the pipe list; values outside
// 1..192 are ignored.
func (r *Rank) SetNumberOfLogicalPipes(n int) {
	if n < 1 || n > maxLogicalPipes {
		return
	}
	for len(r.pipes) < n {
		r.pipes = append(r.pipes, r.newPipe())
	}
	r.pipes = r.pipes[:n]
}

// PipeAt returns pipe i (0-based) or nil.
func (r *Rank) PipeAt(i int) *Pipe {
	if i < 0 || i >= len(r.pipes) {
		return nil
	}
	return r.pipes[i]
}

func (r *Rank) forget(e Entity) {
	if g, ok := e.(*WindchestGroup); ok && r.windchest == g {
		r.windchest = nil
	}
}

// Read loads the rank from s. Stops with an internal rank use the same keys
// inside their own section.
func (r *Rank) Read(s ini.Section, ctx *Context) {
	o := ctx.organ()
	r.Name = s.String("Name", r.Name)
	r.firstMidiNoteNumber = s.Int("FirstMidiNoteNumber", 0, 256, defaultFirstMidiNote)

	r.windchest = nil
	wc := s.Int("WindchestGroup", 1, 999, 0)
	if g := o.WindchestGroupAt(wc - 1); g != nil {
		r.windchest = g
	} else {
		ctx.log().Dangling(s.Name(), "WindchestGroup references unknown windchest group %d", wc)
	}

	r.Percussive = s.Bool("Percussive", false)
	r.Tuning.read(s, "", DefaultTuning())
	r.harmonicNumber = s.Int("HarmonicNumber", 1, 1024, defaultHarmonicNumber)
	r.pitchCorrection = s.Float("PitchCorrection", -1800, 1800, 0)
	r.minVelocityVolume = s.Float("MinVelocityVolume", 0, 1000, 100)
	r.maxVelocityVolume = s.Float("MaxVelocityVolume", 0, 1000, 100)
	r.AcceptsRetuning = s.Bool("AcceptsRetuning", true)

	r.pipes = nil
	n := s.Int("NumberOfLogicalPipes", 1, maxLogicalPipes, 1)
	for i := 1; i <= n; i++ {
		p := r.newPipe()
		p.read(s, numbered("Pipe", i), r, ctx)
		r.pipes = append(r.pipes, p)
	}
}

// Write emits the rank keys.
func (r *Rank) Write(w *ini.Writer, ctx *Context) {
	w.Set("Name", r.Name)
	r.writeBody(w, ctx)
}

// writeBody emits everything but the name, so a stop can embed its internal
// rank in its own section.
func (r *Rank) writeBody(w *ini.Writer, ctx *Context) {
	o := ctx.organ()
	writeIntIfNot(w, "FirstMidiNoteNumber", r.firstMidiNoteNumber, defaultFirstMidiNote)
	if r.windchest != nil {
		w.SetInt("WindchestGroup", o.IndexOfWindchestGroup(r.windchest)+1)
	}
	writeBoolIfNot(w, "Percussive", r.Percussive, false)
	r.Tuning.write(w, "", DefaultTuning())
	writeIntIfNot(w, "HarmonicNumber", r.harmonicNumber, defaultHarmonicNumber)
	writeFloatIfNot(w, "PitchCorrection", r.pitchCorrection, 0)
	writeFloatIfNot(w, "MinVelocityVolume", r.minVelocityVolume, 100)
	writeFloatIfNot(w, "MaxVelocityVolume", r.maxVelocityVolume, 100)
	writeBoolIfNot(w, "AcceptsRetuning", r.AcceptsRetuning, true)

	w.SetInt("NumberOfLogicalPipes", len(r.pipes))
	for i, p := range r.pipes {
		p.write(w, numbered("Pipe", i+1), r, ctx)
	}
}

// Clone returns a deep copy of the rank and its pipes.
func (r *Rank) Clone() *Rank {
	c := *r
	c.pipes = make([]*Pipe, len(r.pipes))
	for i, p := range r.pipes {
		pc := *p
		c.pipes[i] = &pc
	}
	return &c
}
