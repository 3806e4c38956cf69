package organ

import "github.com/aidanlsb/odfkit/internal/ini"

// Enclosure is a continuously variable swell box.
type Enclosure struct {
	Name      string
	Displayed bool

	ampMinimumLevel int
	midiInputNumber int
}

// NewEnclosure returns an enclosure with default levels.
func NewEnclosure(name string) *Enclosure {
	return &Enclosure{Name: name, ampMinimumLevel: 1}
}

func (*Enclosure) entity() {}

// DisplayName returns the enclosure name.
func (e *Enclosure) DisplayName() string { return e.Name }

// AmpMinimumLevel returns the level when fully closed, in percent.
func (e *Enclosure) AmpMinimumLevel() int { return e.ampMinimumLevel }

// SetAmpMinimumLevel ignores values outside 0..100.
func (e *Enclosure) SetAmpMinimumLevel(v int) {
	if v >= 0 && v <= 100 {
		e.ampMinimumLevel = v
	}
}

// MIDIInputNumber returns the MIDI input assignment.
func (e *Enclosure) MIDIInputNumber() int { return e.midiInputNumber }

// SetMIDIInputNumber ignores values outside 0..200.
func (e *Enclosure) SetMIDIInputNumber(v int) {
	if v >= 0 && v <= 200 {
		e.midiInputNumber = v
	}
}

// Read loads the enclosure.
func (e *Enclosure) Read(s ini.Section) {
	e.Name = s.String("Name", e.Name)
	e.Displayed = s.Bool("Displayed", false)
	e.ampMinimumLevel = s.Int("AmpMinimumLevel", 0, 100, 1)
	e.midiInputNumber = s.Int("MIDIInputNumber", 0, 200, 0)
}

// Write emits the enclosure keys.
func (e *Enclosure) Write(w *ini.Writer) {
	w.Set("Name", e.Name)
	writeIntIfNot(w, "AmpMinimumLevel", e.ampMinimumLevel, 1)
	writeIntIfNot(w, "MIDIInputNumber", e.midiInputNumber, 0)
}

// Clone returns an independent copy.
func (e *Enclosure) Clone() *Enclosure {
	c := *e
	return &c
}
