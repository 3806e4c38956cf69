package organ

import (
	"slices"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// Organ is the aggregate root. It owns every collection and is the only place
// where objects are added or removed, so removals can be broadcast to every
// holder of a reference.
type Organ struct {
	ChurchName       string
	ChurchAddress    string
	OrganBuilder     string
	OrganBuildDate   string
	OrganComments    string
	RecordingDetails string
	// InfoFilename is absolute at runtime when it resolves.
	InfoFilename string

	DivisionalsStoreIntermanualCouplers    bool
	DivisionalsStoreIntramanualCouplers    bool
	DivisionalsStoreTremulants             bool
	GeneralsStoreDivisionalCouplers        bool
	CombinationsStoreNonDisplayedDrawstops bool

	Tuning Tuning

	// OnModified, when set, is called after every structural change.
	OnModified func()

	hasPedals          bool
	manuals            []*Manual
	enclosures         []*Enclosure
	switches           []*Switch
	tremulants         []*Tremulant
	windchests         []*WindchestGroup
	ranks              []*Rank
	reversiblePistons  []*ReversiblePiston
	divisionalCouplers []*DivisionalCoupler
	generals           []*General
	panels             []*Panel
}

// New returns an empty organ with its main panel.
func New() *Organ {
	o := &Organ{
		DivisionalsStoreIntermanualCouplers: true,
		DivisionalsStoreIntramanualCouplers: true,
		DivisionalsStoreTremulants:          true,
		GeneralsStoreDivisionalCouplers:     true,
		Tuning:                              DefaultTuning(),
	}
	o.panels = []*Panel{NewPanel("Main Panel")}
	return o
}

func (o *Organ) modified() {
	if o.OnModified != nil {
		o.OnModified()
	}
}

func at[T any](list []T, i int) T {
	var zero T
	if i < 0 || i >= len(list) {
		return zero
	}
	return list[i]
}

// HasPedals reports whether the first manual is the pedal (Manual000).
func (o *Organ) HasPedals() bool { return o.hasPedals }

// SetHasPedals changes manual numbering and flags the main panel's first
// manual as the pedal.
func (o *Organ) SetHasPedals(v bool) {
	o.hasPedals = v
	o.MainPanel().SetHasPedals(v)
	o.modified()
}

// Manuals.

// Manuals returns the manuals in order.
func (o *Organ) Manuals() []*Manual { return slices.Clone(o.manuals) }

// NumberOfManuals returns the manual count, pedal included.
func (o *Organ) NumberOfManuals() int { return len(o.manuals) }

// ManualAt returns manual i (0-based) or nil.
func (o *Organ) ManualAt(i int) *Manual { return at(o.manuals, i) }

// IndexOfManual returns the 0-based position of m, or -1.
func (o *Organ) IndexOfManual(m *Manual) int { return slices.Index(o.manuals, m) }

// FirstManualNumber is 0 when the organ has pedals and 1 otherwise.
func (o *Organ) FirstManualNumber() int {
	if o.hasPedals {
		return 0
	}
	return 1
}

// LastManualNumber returns the ODF number of the last manual.
func (o *Organ) LastManualNumber() int { return o.FirstManualNumber() + len(o.manuals) - 1 }

// ManualNumber returns the ODF number of m, as used in Manual%03d.
func (o *Organ) ManualNumber(m *Manual) int {
	i := o.IndexOfManual(m)
	if i < 0 {
		return -1
	}
	return i + o.FirstManualNumber()
}

// ManualByNumber resolves an ODF manual number.
func (o *Organ) ManualByNumber(n int) *Manual { return o.ManualAt(n - o.FirstManualNumber()) }

// AddManual appends m.
func (o *Organ) AddManual(m *Manual) {
	if m == nil || slices.Contains(o.manuals, m) {
		return
	}
	m.organ = o
	o.manuals = append(o.manuals, m)
	o.modified()
}

// RemoveManual deletes m with its stops, couplers and divisionals, and every
// reference to any of them.
func (o *Organ) RemoveManual(m *Manual) {
	if !slices.Contains(o.manuals, m) {
		return
	}
	for _, s := range m.stops {
		o.broadcastRemoval(s)
	}
	for _, c := range m.couplers {
		o.broadcastRemoval(c)
	}
	for _, d := range m.divisionals {
		o.broadcastRemoval(d)
	}
	o.manuals = slices.DeleteFunc(o.manuals, func(x *Manual) bool { return x == m })
	o.broadcastRemoval(m)
	m.organ = nil
	o.modified()
}

// StopNumber returns the organ-wide 1-based number of s: stops are numbered
// in manual order, then in order within each manual. It is 0 for a stop not
// in the organ.
func (o *Organ) StopNumber(s *Stop) int {
	n := 0
	for _, m := range o.manuals {
		if i := m.IndexOfStop(s); i >= 0 {
			return n + i + 1
		}
		n += len(m.stops)
	}
	return 0
}

// CouplerNumber returns the organ-wide 1-based number of c, or 0.
func (o *Organ) CouplerNumber(c *Coupler) int {
	n := 0
	for _, m := range o.manuals {
		if i := m.IndexOfCoupler(c); i >= 0 {
			return n + i + 1
		}
		n += len(m.couplers)
	}
	return 0
}

// DivisionalNumber returns the organ-wide 1-based number of d, or 0.
func (o *Organ) DivisionalNumber(d *Divisional) int {
	n := 0
	for _, m := range o.manuals {
		if i := m.IndexOfDivisional(d); i >= 0 {
			return n + i + 1
		}
		n += len(m.divisionals)
	}
	return 0
}

// Enclosures.

// Enclosures returns the enclosures in order.
func (o *Organ) Enclosures() []*Enclosure { return slices.Clone(o.enclosures) }

// NumberOfEnclosures returns the enclosure count.
func (o *Organ) NumberOfEnclosures() int { return len(o.enclosures) }

// EnclosureAt returns enclosure i (0-based) or nil.
func (o *Organ) EnclosureAt(i int) *Enclosure { return at(o.enclosures, i) }

// IndexOfEnclosure returns the 0-based position of e, or -1.
func (o *Organ) IndexOfEnclosure(e *Enclosure) int { return slices.Index(o.enclosures, e) }

// AddEnclosure appends e.
func (o *Organ) AddEnclosure(e *Enclosure) {
	if e != nil && !slices.Contains(o.enclosures, e) {
		o.enclosures = append(o.enclosures, e)
		o.modified()
	}
}

// RemoveEnclosure deletes e and every reference to it.
func (o *Organ) RemoveEnclosure(e *Enclosure) {
	if slices.Contains(o.enclosures, e) {
		o.enclosures = slices.DeleteFunc(o.enclosures, func(x *Enclosure) bool { return x == e })
		o.broadcastRemoval(e)
		o.modified()
	}
}

// Switches.

// Switches returns the switches in order.
func (o *Organ) Switches() []*Switch { return slices.Clone(o.switches) }

// NumberOfSwitches returns the switch count.
func (o *Organ) NumberOfSwitches() int { return len(o.switches) }

// SwitchAt returns switch i (0-based) or nil.
func (o *Organ) SwitchAt(i int) *Switch { return at(o.switches, i) }

// IndexOfSwitch returns the 0-based position of sw, or -1.
func (o *Organ) IndexOfSwitch(sw *Switch) int { return slices.Index(o.switches, sw) }

// AddSwitch appends sw.
func (o *Organ) AddSwitch(sw *Switch) {
	if sw != nil && !slices.Contains(o.switches, sw) {
		o.switches = append(o.switches, sw)
		o.modified()
	}
}

// RemoveSwitch deletes sw and every reference to it.
func (o *Organ) RemoveSwitch(sw *Switch) {
	if slices.Contains(o.switches, sw) {
		o.switches = slices.DeleteFunc(o.switches, func(x *Switch) bool { return x == sw })
		o.broadcastRemoval(sw)
		o.modified()
	}
}

// Tremulants.

// Tremulants returns the tremulants in order.
func (o *Organ) Tremulants() []*Tremulant { return slices.Clone(o.tremulants) }

// NumberOfTremulants returns the tremulant count.
func (o *Organ) NumberOfTremulants() int { return len(o.tremulants) }

// TremulantAt returns tremulant i (0-based) or nil.
func (o *Organ) TremulantAt(i int) *Tremulant { return at(o.tremulants, i) }

// IndexOfTremulant returns the 0-based position of t, or -1.
func (o *Organ) IndexOfTremulant(t *Tremulant) int { return slices.Index(o.tremulants, t) }

// AddTremulant appends t.
func (o *Organ) AddTremulant(t *Tremulant) {
	if t != nil && !slices.Contains(o.tremulants, t) {
		o.tremulants = append(o.tremulants, t)
		o.modified()
	}
}

// RemoveTremulant deletes t and every reference to it.
func (o *Organ) RemoveTremulant(t *Tremulant) {
	if slices.Contains(o.tremulants, t) {
		o.tremulants = slices.DeleteFunc(o.tremulants, func(x *Tremulant) bool { return x == t })
		o.broadcastRemoval(t)
		o.modified()
	}
}

// Windchest groups.

// WindchestGroups returns the windchest groups in order.
func (o *Organ) WindchestGroups() []*WindchestGroup { return slices.Clone(o.windchests) }

// NumberOfWindchestGroups returns the windchest group count.
func (o *Organ) NumberOfWindchestGroups() int { return len(o.windchests) }

// WindchestGroupAt returns windchest group i (0-based) or nil.
func (o *Organ) WindchestGroupAt(i int) *WindchestGroup { return at(o.windchests, i) }

// IndexOfWindchestGroup returns the 0-based position of g, or -1.
func (o *Organ) IndexOfWindchestGroup(g *WindchestGroup) int { return slices.Index(o.windchests, g) }

// AddWindchestGroup appends g.
func (o *Organ) AddWindchestGroup(g *WindchestGroup) {
	if g != nil && !slices.Contains(o.windchests, g) {
		o.windchests = append(o.windchests, g)
		o.modified()
	}
}

// RemoveWindchestGroup deletes g and every reference to it.
func (o *Organ) RemoveWindchestGroup(g *WindchestGroup) {
	if slices.Contains(o.windchests, g) {
		o.windchests = slices.DeleteFunc(o.windchests, func(x *WindchestGroup) bool { return x == g })
		o.broadcastRemoval(g)
		o.modified()
	}
}

// Ranks.

// Ranks returns the ranks in order.
func (o *Organ) Ranks() []*Rank { return slices.Clone(o.ranks) }

// NumberOfRanks returns the rank count.
func (o *Organ) NumberOfRanks() int { return len(o.ranks) }

// RankAt returns rank i (0-based) or nil.
func (o *Organ) RankAt(i int) *Rank { return at(o.ranks, i) }

// IndexOfRank returns the 0-based position of r, or -1.
func (o *Organ) IndexOfRank(r *Rank) int { return slices.Index(o.ranks, r) }

// AddRank appends r.
func (o *Organ) AddRank(r *Rank) {
	if r != nil && !slices.Contains(o.ranks, r) {
		o.ranks = append(o.ranks, r)
		o.modified()
	}
}

// RemoveRank deletes r and every reference to it.
func (o *Organ) RemoveRank(r *Rank) {
	if slices.Contains(o.ranks, r) {
		o.ranks = slices.DeleteFunc(o.ranks, func(x *Rank) bool { return x == r })
		o.broadcastRemoval(r)
		o.modified()
	}
}

// Reversible pistons.

// ReversiblePistons returns the reversible pistons in order.
func (o *Organ) ReversiblePistons() []*ReversiblePiston { return slices.Clone(o.reversiblePistons) }

// NumberOfReversiblePistons returns the reversible piston count.
func (o *Organ) NumberOfReversiblePistons() int { return len(o.reversiblePistons) }

// ReversiblePistonAt returns reversible piston i (0-based) or nil.
func (o *Organ) ReversiblePistonAt(i int) *ReversiblePiston { return at(o.reversiblePistons, i) }

// IndexOfReversiblePiston returns the 0-based position of p, or -1.
func (o *Organ) IndexOfReversiblePiston(p *ReversiblePiston) int {
	return slices.Index(o.reversiblePistons, p)
}

// AddReversiblePiston appends p.
func (o *Organ) AddReversiblePiston(p *ReversiblePiston) {
	if p != nil && !slices.Contains(o.reversiblePistons, p) {
		o.reversiblePistons = append(o.reversiblePistons, p)
		o.modified()
	}
}

// RemoveReversiblePiston deletes p and its panel elements.
func (o *Organ) RemoveReversiblePiston(p *ReversiblePiston) {
	if slices.Contains(o.reversiblePistons, p) {
		o.reversiblePistons = slices.DeleteFunc(o.reversiblePistons, func(x *ReversiblePiston) bool { return x == p })
		o.broadcastRemoval(p)
		o.modified()
	}
}

// Divisional couplers.

// DivisionalCouplers returns the divisional couplers in order.
func (o *Organ) DivisionalCouplers() []*DivisionalCoupler { return slices.Clone(o.divisionalCouplers) }

// NumberOfDivisionalCouplers returns the divisional coupler count.
func (o *Organ) NumberOfDivisionalCouplers() int { return len(o.divisionalCouplers) }

// DivisionalCouplerAt returns divisional coupler i (0-based) or nil.
func (o *Organ) DivisionalCouplerAt(i int) *DivisionalCoupler { return at(o.divisionalCouplers, i) }

// IndexOfDivisionalCoupler returns the 0-based position of dc, or -1.
func (o *Organ) IndexOfDivisionalCoupler(dc *DivisionalCoupler) int {
	return slices.Index(o.divisionalCouplers, dc)
}

// AddDivisionalCoupler appends dc.
func (o *Organ) AddDivisionalCoupler(dc *DivisionalCoupler) {
	if dc != nil && !slices.Contains(o.divisionalCouplers, dc) {
		o.divisionalCouplers = append(o.divisionalCouplers, dc)
		o.modified()
	}
}

// RemoveDivisionalCoupler deletes dc and every reference to it.
func (o *Organ) RemoveDivisionalCoupler(dc *DivisionalCoupler) {
	if slices.Contains(o.divisionalCouplers, dc) {
		o.divisionalCouplers = slices.DeleteFunc(o.divisionalCouplers, func(x *DivisionalCoupler) bool { return x == dc })
		o.broadcastRemoval(dc)
		o.modified()
	}
}

// Generals.

// Generals returns the generals in order.
func (o *Organ) Generals() []*General { return slices.Clone(o.generals) }

// NumberOfGenerals returns the general count.
func (o *Organ) NumberOfGenerals() int { return len(o.generals) }

// GeneralAt returns general i (0-based) or nil.
func (o *Organ) GeneralAt(i int) *General { return at(o.generals, i) }

// IndexOfGeneral returns the 0-based position of g, or -1.
func (o *Organ) IndexOfGeneral(g *General) int { return slices.Index(o.generals, g) }

// AddGeneral appends g.
func (o *Organ) AddGeneral(g *General) {
	if g != nil && !slices.Contains(o.generals, g) {
		o.generals = append(o.generals, g)
		o.modified()
	}
}

// RemoveGeneral deletes g and its panel elements.
func (o *Organ) RemoveGeneral(g *General) {
	if slices.Contains(o.generals, g) {
		o.generals = slices.DeleteFunc(o.generals, func(x *General) bool { return x == g })
		o.broadcastRemoval(g)
		o.modified()
	}
}

// Panels.

// Panels returns the panels; index 0 is the main panel.
func (o *Organ) Panels() []*Panel { return slices.Clone(o.panels) }

// NumberOfPanels returns the panel count, main panel included.
func (o *Organ) NumberOfPanels() int { return len(o.panels) }

// PanelAt returns panel i or nil.
func (o *Organ) PanelAt(i int) *Panel { return at(o.panels, i) }

// MainPanel returns Panel000.
func (o *Organ) MainPanel() *Panel { return o.panels[0] }

// IndexOfPanel returns the position of p, or -1.
func (o *Organ) IndexOfPanel(p *Panel) int { return slices.Index(o.panels, p) }

// AddPanel appends p.
func (o *Organ) AddPanel(p *Panel) {
	if p != nil && !slices.Contains(o.panels, p) {
		o.panels = append(o.panels, p)
		o.modified()
	}
}

// RemovePanel deletes p. The main panel cannot be removed.
func (o *Organ) RemovePanel(p *Panel) {
	if i := o.IndexOfPanel(p); i > 0 {
		o.panels = slices.Delete(o.panels, i, i+1)
		o.modified()
	}
}

// HasItemAsGUIElement reports whether any panel shows e.
func (o *Organ) HasItemAsGUIElement(e Entity) bool {
	return slices.ContainsFunc(o.panels, func(p *Panel) bool { return p.HasItemAsGUIElement(e) })
}

// broadcastRemoval tells every holder of references that e is gone. Holders
// drop their references; panels drop the elements showing e.
func (o *Organ) broadcastRemoval(e Entity) {
	for _, m := range o.manuals {
		m.forget(e)
	}
	for _, sw := range o.switches {
		sw.forget(e)
	}
	for _, t := range o.tremulants {
		t.forget(e)
	}
	for _, g := range o.windchests {
		g.forget(e)
	}
	for _, r := range o.ranks {
		r.forget(e)
	}
	for _, p := range o.reversiblePistons {
		p.forget(e)
	}
	for _, dc := range o.divisionalCouplers {
		dc.forget(e)
	}
	for _, g := range o.generals {
		g.forget(e)
	}
	for _, p := range o.panels {
		p.RemoveItemFromPanel(e)
	}
}

// CheckStructure records warnings for organs that load but are unlikely to
// play: no windchest groups, or an empty main panel.
func (o *Organ) CheckStructure(log *Diagnostics) {
	if len(o.windchests) == 0 {
		log.Structural("Organ", "organ has no windchest groups")
	}
	if o.MainPanel().NumberOfGUIElements() == 0 {
		log.Structural(PanelSection(0), "main panel has no elements")
	}
}

// ReadGlobals loads the [Organ] scalar keys. Counts are handled by the parser.
func (o *Organ) ReadGlobals(s ini.Section, ctx *Context) {
	o.ChurchName = s.String("ChurchName", "")
	o.ChurchAddress = s.String("ChurchAddress", "")
	o.OrganBuilder = s.String("OrganBuilder", "")
	o.OrganBuildDate = s.String("OrganBuildDate", "")
	o.OrganComments = s.String("OrganComments", "")
	o.RecordingDetails = s.String("RecordingDetails", "")
	o.InfoFilename = ctx.resolve(s.String("InfoFilename", ""))
	o.hasPedals = s.Bool("HasPedals", false)
	o.DivisionalsStoreIntermanualCouplers = s.Bool("DivisionalsStoreIntermanualCouplers", true)
	o.DivisionalsStoreIntramanualCouplers = s.Bool("DivisionalsStoreIntramanualCouplers", true)
	o.DivisionalsStoreTremulants = s.Bool("DivisionalsStoreTremulants", true)
	o.GeneralsStoreDivisionalCouplers = s.Bool("GeneralsStoreDivisionalCouplers", true)
	o.CombinationsStoreNonDisplayedDrawstops = s.Bool("CombinationsStoreNonDisplayedDrawstops", false)
	o.Tuning.read(s, "", DefaultTuning())
	o.MainPanel().SetHasPedals(o.hasPedals)
}

func (o *Organ) writeGlobals(w *ini.Writer, ctx *Context) {
	w.Set("ChurchName", o.ChurchName)
	w.Set("ChurchAddress", o.ChurchAddress)
	writeStringIfNot(w, "OrganBuilder", o.OrganBuilder, "")
	writeStringIfNot(w, "OrganBuildDate", o.OrganBuildDate, "")
	writeStringIfNot(w, "OrganComments", o.OrganComments, "")
	writeStringIfNot(w, "RecordingDetails", o.RecordingDetails, "")
	writeStringIfNot(w, "InfoFilename", ctx.relative(o.InfoFilename), "")
	w.SetBool("HasPedals", o.hasPedals)

	w.SetInt("NumberOfManuals", len(o.manuals)-o.pedalCount())
	w.SetInt("NumberOfEnclosures", len(o.enclosures))
	w.SetInt("NumberOfSwitches", len(o.switches))
	w.SetInt("NumberOfTremulants", len(o.tremulants))
	w.SetInt("NumberOfWindchestGroups", len(o.windchests))
	w.SetInt("NumberOfRanks", len(o.ranks))
	w.SetInt("NumberOfReversiblePistons", len(o.reversiblePistons))
	w.SetInt("NumberOfDivisionalCouplers", len(o.divisionalCouplers))
	w.SetInt("NumberOfGenerals", len(o.generals))
	w.SetInt("NumberOfPanels", len(o.panels)-1)

	w.SetBool("DivisionalsStoreIntermanualCouplers", o.DivisionalsStoreIntermanualCouplers)
	w.SetBool("DivisionalsStoreIntramanualCouplers", o.DivisionalsStoreIntramanualCouplers)
	w.SetBool("DivisionalsStoreTremulants", o.DivisionalsStoreTremulants)
	w.SetBool("GeneralsStoreDivisionalCouplers", o.GeneralsStoreDivisionalCouplers)
	w.SetBool("CombinationsStoreNonDisplayedDrawstops", o.CombinationsStoreNonDisplayedDrawstops)
	o.Tuning.write(w, "", DefaultTuning())
}

// pedalCount is 1 when Manual000 is present. NumberOfManuals does not count it.
func (o *Organ) pedalCount() int {
	if o.hasPedals && len(o.manuals) > 0 {
		return 1
	}
	return 0
}

// Write emits the whole organ in the modern dialect. Sections are written in
// dependency order and every reference is renumbered from live positions.
func (o *Organ) Write(w *ini.Writer, ctx *Context) {
	if ctx == nil {
		ctx = NewContext(o)
	}
	if ctx.Organ == nil {
		ctx.Organ = o
	}

	w.Section("Organ")
	o.writeGlobals(w, ctx)

	for i, p := range o.panels {
		p.Write(w, i, ctx)
	}
	for i, e := range o.enclosures {
		w.Section(numbered("Enclosure", i+1))
		e.Write(w)
	}
	for i, sw := range o.switches {
		w.Section(numbered("Switch", i+1))
		sw.Write(w, ctx)
	}
	for i, t := range o.tremulants {
		w.Section(numbered("Tremulant", i+1))
		t.Write(w, ctx)
	}
	for i, g := range o.windchests {
		w.Section(numbered("WindchestGroup", i+1))
		g.Write(w, ctx)
	}
	for i, r := range o.ranks {
		w.Section(numbered("Rank", i+1))
		r.Write(w, ctx)
	}
	for _, m := range o.manuals {
		w.Section(ManualSection(o.ManualNumber(m)))
		m.Write(w, ctx)
	}
	for _, m := range o.manuals {
		for _, s := range m.stops {
			w.Section(numbered("Stop", o.StopNumber(s)))
			s.Write(w, ctx)
		}
	}
	for _, m := range o.manuals {
		for _, c := range m.couplers {
			w.Section(numbered("Coupler", o.CouplerNumber(c)))
			c.Write(w, ctx)
		}
	}
	for _, m := range o.manuals {
		for _, d := range m.divisionals {
			w.Section(numbered("Divisional", o.DivisionalNumber(d)))
			d.Write(w, ctx)
		}
	}
	for i, p := range o.reversiblePistons {
		w.Section(numbered("ReversiblePiston", i+1))
		p.Write(w, ctx)
	}
	for i, dc := range o.divisionalCouplers {
		w.Section(numbered("DivisionalCoupler", i+1))
		dc.Write(w, ctx)
	}
	for i, g := range o.generals {
		w.Section(numbered("General", i+1))
		g.Write(w, ctx)
	}
}
