package organ

import (
	"slices"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// RankRef places a range of a rank's pipes under a stop.
type RankRef struct {
	Rank                     *Rank
	FirstPipeNumber          int
	PipeCount                int
	FirstAccessibleKeyNumber int
}

// Stop is a manual drawstop that sounds one or more ranks.
type Stop struct {
	Drawstop

	owner                               *Manual
	firstAccessiblePipeLogicalKeyNumber int
	numberOfAccessiblePipes             int
	ranks                               []RankRef

	// internal is set for stops that carry their pipes in their own section.
	internal *Rank
}

// NewStop returns a stop with no ranks.
func NewStop(name string) *Stop {
	return &Stop{
		Drawstop:                            newDrawstop(name),
		firstAccessiblePipeLogicalKeyNumber: 1,
		numberOfAccessiblePipes:             1,
	}
}

func (*Stop) entity() {}

// Owner returns the manual the stop belongs to.
func (s *Stop) Owner() *Manual { return s.owner }

// FirstAccessiblePipeLogicalKeyNumber returns the first key the stop sounds on.
func (s *Stop) FirstAccessiblePipeLogicalKeyNumber() int {
	return s.firstAccessiblePipeLogicalKeyNumber
}

// SetFirstAccessiblePipeLogicalKeyNumber ignores values outside 1..128.
func (s *Stop) SetFirstAccessiblePipeLogicalKeyNumber(v int) {
	if v >= 1 && v <= 128 {
		s.firstAccessiblePipeLogicalKeyNumber = v
	}
}

// NumberOfAccessiblePipes returns how many keys the stop sounds on.
func (s *Stop) NumberOfAccessiblePipes() int { return s.numberOfAccessiblePipes }

// SetNumberOfAccessiblePipes ignores values outside 1..192.
func (s *Stop) SetNumberOfAccessiblePipes(v int) {
	if v >= 1 && v <= maxLogicalPipes {
		s.numberOfAccessiblePipes = v
	}
}

// Ranks returns the rank references in order.
func (s *Stop) Ranks() []RankRef { return slices.Clone(s.ranks) }

// AddRank appends a reference covering all of r's pipes.
func (s *Stop) AddRank(r *Rank) {
	if r == nil {
		return
	}
	s.ranks = append(s.ranks, RankRef{
		Rank:                     r,
		FirstPipeNumber:          1,
		PipeCount:                r.NumberOfLogicalPipes(),
		FirstAccessibleKeyNumber: 1,
	})
}

// HasRank reports whether r is referenced.
func (s *Stop) HasRank(r *Rank) bool {
	return slices.ContainsFunc(s.ranks, func(ref RankRef) bool { return ref.Rank == r })
}

// RemoveRank drops every reference to r.
func (s *Stop) RemoveRank(r *Rank) {
	s.ranks = slices.DeleteFunc(s.ranks, func(ref RankRef) bool { return ref.Rank == r })
}

// InternalRank returns the rank embedded in the stop section, if any.
func (s *Stop) InternalRank() *Rank { return s.internal }

// SetInternalRank embeds r; passing nil switches back to rank references.
func (s *Stop) SetInternalRank(r *Rank) {
	s.internal = r
	if r != nil {
		s.ranks = nil
	}
}

func (s *Stop) forget(e Entity) {
	s.Drawstop.forget(e)
	switch x := e.(type) {
	case *Rank:
		s.RemoveRank(x)
	case *WindchestGroup:
		if s.internal != nil {
			s.internal.forget(x)
		}
	}
}

// Read loads the stop. Ranks must already exist.
func (s *Stop) Read(sec ini.Section, ctx *Context) {
	o := ctx.organ()
	s.readDrawstop(sec, ctx, o.NumberOfSwitches())

	s.firstAccessiblePipeLogicalKeyNumber = sec.Int("FirstAccessiblePipeLogicalKeyNumber", 1, 128, 1)
	s.numberOfAccessiblePipes = sec.Int("NumberOfAccessiblePipes", 1, maxLogicalPipes, 1)

	s.ranks = nil
	s.internal = nil
	if !sec.Has("NumberOfRanks") && sec.Has("NumberOfLogicalPipes") {
		r := NewRank(s.Name, 1)
		r.Read(sec, ctx)
		s.internal = r
		return
	}

	n := sec.Int("NumberOfRanks", 0, 999, 0)
	for i := 1; i <= n; i++ {
		key := numbered("Rank", i)
		idx := sec.Int(key, 1, 999, 0)
		r := o.RankAt(idx - 1)
		if r == nil {
			ctx.log().Dangling(sec.Name(), "%s references unknown rank %d", key, idx)
			continue
		}
		pipes := r.NumberOfLogicalPipes()
		ref := RankRef{Rank: r}
		ref.FirstPipeNumber = sec.Int(key+"FirstPipeNumber", 1, pipes, 1)
		remaining := pipes - ref.FirstPipeNumber + 1
		ref.PipeCount = sec.Int(key+"PipeCount", 0, remaining, remaining)
		ref.FirstAccessibleKeyNumber = sec.Int(key+"FirstAccessibleKeyNumber", 1, s.numberOfAccessiblePipes, 1)
		s.ranks = append(s.ranks, ref)
	}
}

// Write emits the stop keys. Rank references are written as organ rank numbers.
func (s *Stop) Write(w *ini.Writer, ctx *Context) {
	o := ctx.organ()
	s.writeDrawstop(w, ctx)
	writeIntIfNot(w, "FirstAccessiblePipeLogicalKeyNumber", s.firstAccessiblePipeLogicalKeyNumber, 1)
	w.SetInt("NumberOfAccessiblePipes", s.numberOfAccessiblePipes)

	if s.internal != nil {
		s.internal.writeBody(w, ctx)
		return
	}
	w.SetInt("NumberOfRanks", len(s.ranks))
	for i, ref := range s.ranks {
		key := numbered("Rank", i+1)
		pipes := ref.Rank.NumberOfLogicalPipes()
		w.SetIndex(key, o.IndexOfRank(ref.Rank)+1)
		writeIntIfNot(w, key+"FirstPipeNumber", ref.FirstPipeNumber, 1)
		writeIntIfNot(w, key+"PipeCount", ref.PipeCount, pipes-ref.FirstPipeNumber+1)
		writeIntIfNot(w, key+"FirstAccessibleKeyNumber", ref.FirstAccessibleKeyNumber, 1)
	}
}

// Clone returns a detached copy sharing rank and switch references. An
// internal rank is deep-copied.
func (s *Stop) Clone() *Stop {
	c := *s
	c.Drawstop = s.cloneDrawstop()
	c.owner = nil
	c.ranks = slices.Clone(s.ranks)
	if s.internal != nil {
		c.internal = s.internal.Clone()
	}
	return &c
}
