package organ

import (
	"slices"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// WindchestGroup ties ranks to the enclosures and tremulants that affect them.
type WindchestGroup struct {
	Name string

	enclosures []*Enclosure
	tremulants []*Tremulant
}

// NewWindchestGroup returns an empty windchest group.
func NewWindchestGroup(name string) *WindchestGroup {
	return &WindchestGroup{Name: name}
}

func (*WindchestGroup) entity() {}

// DisplayName returns the group name.
func (g *WindchestGroup) DisplayName() string { return g.Name }

// Enclosures returns the referenced enclosures.
func (g *WindchestGroup) Enclosures() []*Enclosure { return slices.Clone(g.enclosures) }

// Tremulants returns the referenced tremulants.
func (g *WindchestGroup) Tremulants() []*Tremulant { return slices.Clone(g.tremulants) }

// AddEnclosure references e once.
func (g *WindchestGroup) AddEnclosure(e *Enclosure) {
	if e != nil && !slices.Contains(g.enclosures, e) {
		g.enclosures = append(g.enclosures, e)
	}
}

// AddTremulant references t once.
func (g *WindchestGroup) AddTremulant(t *Tremulant) {
	if t != nil && !slices.Contains(g.tremulants, t) {
		g.tremulants = append(g.tremulants, t)
	}
}

// HasEnclosure reports whether e is referenced.
func (g *WindchestGroup) HasEnclosure(e *Enclosure) bool { return slices.Contains(g.enclosures, e) }

// HasTremulant reports whether t is referenced.
func (g *WindchestGroup) HasTremulant(t *Tremulant) bool { return slices.Contains(g.tremulants, t) }

func (g *WindchestGroup) forget(e Entity) {
	switch x := e.(type) {
	case *Enclosure:
		g.enclosures = slices.DeleteFunc(g.enclosures, func(y *Enclosure) bool { return y == x })
	case *Tremulant:
		g.tremulants = slices.DeleteFunc(g.tremulants, func(y *Tremulant) bool { return y == x })
	}
}

// Read loads the group; enclosures and tremulants must already exist.
func (g *WindchestGroup) Read(s ini.Section, ctx *Context) {
	o := ctx.organ()
	g.Name = s.String("Name", g.Name)

	g.enclosures = nil
	n := s.Int("NumberOfEnclosures", 0, 999, 0)
	for i := 1; i <= n; i++ {
		idx := s.Int(numbered("Enclosure", i), 1, 999, 0)
		if e := o.EnclosureAt(idx - 1); e != nil {
			g.AddEnclosure(e)
			continue
		}
		ctx.log().Dangling(s.Name(), "Enclosure%s references unknown enclosure %d", ini.Num(i), idx)
	}

	g.tremulants = nil
	n = s.Int("NumberOfTremulants", 0, 999, 0)
	for i := 1; i <= n; i++ {
		idx := s.Int(numbered("Tremulant", i), 1, 999, 0)
		if t := o.TremulantAt(idx - 1); t != nil {
			g.AddTremulant(t)
			continue
		}
		ctx.log().Dangling(s.Name(), "Tremulant%s references unknown tremulant %d", ini.Num(i), idx)
	}
}

// Write emits the group keys. The counts are always written.
func (g *WindchestGroup) Write(w *ini.Writer, ctx *Context) {
	o := ctx.organ()
	w.Set("Name", g.Name)
	w.SetInt("NumberOfEnclosures", len(g.enclosures))
	for i, e := range g.enclosures {
		w.SetIndex(numbered("Enclosure", i+1), o.IndexOfEnclosure(e)+1)
	}
	w.SetInt("NumberOfTremulants", len(g.tremulants))
	for i, t := range g.tremulants {
		w.SetIndex(numbered("Tremulant", i+1), o.IndexOfTremulant(t)+1)
	}
}

// Clone returns a copy sharing the same references.
func (g *WindchestGroup) Clone() *WindchestGroup {
	return &WindchestGroup{
		Name:       g.Name,
		enclosures: slices.Clone(g.enclosures),
		tremulants: slices.Clone(g.tremulants),
	}
}
