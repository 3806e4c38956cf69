package odf

import (
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"github.com/aidanlsb/odfkit/internal/ini"
	"github.com/aidanlsb/odfkit/internal/organ"
)

// Sniff reports the dialect of an organ definition without parsing it.
func Sniff(data []byte) (Dialect, error) {
	f, err := ini.Parse(data)
	if err != nil {
		return DialectModern, fault.Wrap(err,
			fmsg.WithDesc("decode organ file", "The file is not readable text"),
			ftag.With(ftag.InvalidArgument))
	}
	return DetectDialect(f), nil
}

// Summary holds the entity counts of an organ.
type Summary struct {
	ChurchName         string `json:"church_name" yaml:"church_name"`
	HasPedals          bool   `json:"has_pedals" yaml:"has_pedals"`
	Manuals            int    `json:"manuals" yaml:"manuals"`
	Stops              int    `json:"stops" yaml:"stops"`
	Couplers           int    `json:"couplers" yaml:"couplers"`
	Divisionals        int    `json:"divisionals" yaml:"divisionals"`
	Ranks              int    `json:"ranks" yaml:"ranks"`
	Pipes              int    `json:"pipes" yaml:"pipes"`
	WindchestGroups    int    `json:"windchest_groups" yaml:"windchest_groups"`
	Enclosures         int    `json:"enclosures" yaml:"enclosures"`
	Tremulants         int    `json:"tremulants" yaml:"tremulants"`
	Switches           int    `json:"switches" yaml:"switches"`
	ReversiblePistons  int    `json:"reversible_pistons" yaml:"reversible_pistons"`
	DivisionalCouplers int    `json:"divisional_couplers" yaml:"divisional_couplers"`
	Generals           int    `json:"generals" yaml:"generals"`
	Panels             int    `json:"panels" yaml:"panels"`
	Elements           int    `json:"elements" yaml:"elements"`
	Images             int    `json:"images" yaml:"images"`
}

// Summarize counts the objects of o. Pipes include those of stop-internal
// ranks.
func Summarize(o *organ.Organ) Summary {
	s := Summary{
		ChurchName:         o.ChurchName,
		HasPedals:          o.HasPedals(),
		Manuals:            o.NumberOfManuals(),
		Ranks:              o.NumberOfRanks(),
		WindchestGroups:    o.NumberOfWindchestGroups(),
		Enclosures:         o.NumberOfEnclosures(),
		Tremulants:         o.NumberOfTremulants(),
		Switches:           o.NumberOfSwitches(),
		ReversiblePistons:  o.NumberOfReversiblePistons(),
		DivisionalCouplers: o.NumberOfDivisionalCouplers(),
		Generals:           o.NumberOfGenerals(),
		Panels:             o.NumberOfPanels(),
	}
	for _, r := range o.Ranks() {
		s.Pipes += r.NumberOfLogicalPipes()
	}
	for _, m := range o.Manuals() {
		s.Stops += m.NumberOfStops()
		s.Couplers += m.NumberOfCouplers()
		s.Divisionals += m.NumberOfDivisionals()
		for _, st := range m.Stops() {
			if r := st.InternalRank(); r != nil {
				s.Pipes += r.NumberOfLogicalPipes()
			}
		}
	}
	for _, p := range o.Panels() {
		s.Elements += p.NumberOfGUIElements()
		s.Images += p.NumberOfImages()
	}
	return s
}

// Outline is a nested, serializable view of an organ for dumps.
type Outline struct {
	Church   string          `json:"church" yaml:"church"`
	Address  string          `json:"address,omitempty" yaml:"address,omitempty"`
	Builder  string          `json:"builder,omitempty" yaml:"builder,omitempty"`
	Built    string          `json:"built,omitempty" yaml:"built,omitempty"`
	Manuals  []ManualOutline `json:"manuals" yaml:"manuals"`
	Ranks    []RankOutline   `json:"ranks,omitempty" yaml:"ranks,omitempty"`
	Generals []string        `json:"generals,omitempty" yaml:"generals,omitempty"`
	Panels   []PanelOutline  `json:"panels" yaml:"panels"`
	Summary  Summary         `json:"summary" yaml:"summary"`
	Issues   []IssueOutline  `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// ManualOutline lists a manual by its ODF number.
type ManualOutline struct {
	Number      int              `json:"number" yaml:"number"`
	Name        string           `json:"name" yaml:"name"`
	Keys        int              `json:"keys" yaml:"keys"`
	Stops       []StopOutline    `json:"stops,omitempty" yaml:"stops,omitempty"`
	Couplers    []CouplerOutline `json:"couplers,omitempty" yaml:"couplers,omitempty"`
	Divisionals []string         `json:"divisionals,omitempty" yaml:"divisionals,omitempty"`
}

// StopOutline names a stop and its ranks.
type StopOutline struct {
	Name  string   `json:"name" yaml:"name"`
	Ranks []string `json:"ranks,omitempty" yaml:"ranks,omitempty"`
	Pipes int      `json:"pipes,omitempty" yaml:"pipes,omitempty"`
}

// CouplerOutline names a coupler and its destination manual number.
type CouplerOutline struct {
	Name        string `json:"name" yaml:"name"`
	Destination int    `json:"destination" yaml:"destination"`
	Keyshift    int    `json:"keyshift,omitempty" yaml:"keyshift,omitempty"`
	UnisonOff   bool   `json:"unison_off,omitempty" yaml:"unison_off,omitempty"`
}

// RankOutline names a shared rank.
type RankOutline struct {
	Name      string `json:"name" yaml:"name"`
	Pipes     int    `json:"pipes" yaml:"pipes"`
	Windchest string `json:"windchest,omitempty" yaml:"windchest,omitempty"`
}

// PanelOutline lists panel elements by kind and name.
type PanelOutline struct {
	Name     string   `json:"name" yaml:"name"`
	Group    string   `json:"group,omitempty" yaml:"group,omitempty"`
	Images   int      `json:"images" yaml:"images"`
	Elements []string `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// IssueOutline is a diagnostic in dump form.
type IssueOutline struct {
	Level   string `json:"level" yaml:"level"`
	Code    string `json:"code" yaml:"code"`
	Section string `json:"section,omitempty" yaml:"section,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Outlines builds the dump view of o. Issues below minLevel are left out.
func Outlines(o *organ.Organ, log *organ.Diagnostics, minLevel organ.IssueLevel) Outline {
	out := Outline{
		Church:  o.ChurchName,
		Address: o.ChurchAddress,
		Builder: o.OrganBuilder,
		Built:   o.OrganBuildDate,
		Summary: Summarize(o),
	}

	for _, m := range o.Manuals() {
		mo := ManualOutline{
			Number: o.ManualNumber(m),
			Name:   m.Name,
			Keys:   m.NumberOfLogicalKeys(),
		}
		for _, st := range m.Stops() {
			so := StopOutline{Name: st.Name}
			for _, ref := range st.Ranks() {
				so.Ranks = append(so.Ranks, ref.Rank.Name)
			}
			if r := st.InternalRank(); r != nil {
				so.Pipes = r.NumberOfLogicalPipes()
			}
			mo.Stops = append(mo.Stops, so)
		}
		for _, c := range m.Couplers() {
			co := CouplerOutline{Name: c.Name, UnisonOff: c.UnisonOff}
			if !c.UnisonOff {
				co.Destination = o.ManualNumber(c.DestinationManual())
				co.Keyshift = c.DestinationKeyshift()
			}
			mo.Couplers = append(mo.Couplers, co)
		}
		for _, d := range m.Divisionals() {
			mo.Divisionals = append(mo.Divisionals, d.Name)
		}
		out.Manuals = append(out.Manuals, mo)
	}

	for _, r := range o.Ranks() {
		ro := RankOutline{Name: r.Name, Pipes: r.NumberOfLogicalPipes()}
		if g := r.WindchestGroup(); g != nil {
			ro.Windchest = g.Name
		}
		out.Ranks = append(out.Ranks, ro)
	}
	for _, g := range o.Generals() {
		out.Generals = append(out.Generals, g.Name)
	}

	for _, p := range o.Panels() {
		po := PanelOutline{Name: p.Name, Group: p.Group, Images: p.NumberOfImages()}
		for _, e := range p.GUIElements() {
			po.Elements = append(po.Elements, e.Kind().String()+": "+e.ElementName())
		}
		out.Panels = append(out.Panels, po)
	}

	for _, issue := range log.AtLeast(minLevel) {
		out.Issues = append(out.Issues, IssueOutline{
			Level:   issue.Level.String(),
			Code:    issue.Code,
			Section: issue.Section,
			Message: issue.Message,
		})
	}
	return out
}
