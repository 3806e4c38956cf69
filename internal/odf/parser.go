// Package odf reads and writes organ definition files.
//
// Parsing runs a fixed sequence of phases because references are numeric
// indices into collections read by earlier phases. The legacy and modern
// dialects differ only in where panel layout lives; a layoutSource chosen
// once per file hides that difference from the rest of the pipeline.
package odf

import (
	"context"
	"errors"
	"os"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"github.com/aidanlsb/odfkit/internal/imageprobe"
	"github.com/aidanlsb/odfkit/internal/ini"
	"github.com/aidanlsb/odfkit/internal/organ"
	"github.com/aidanlsb/odfkit/internal/paths"
)

// ErrNoOrganSection is returned when the file has no [Organ] group.
var ErrNoOrganSection = errors.New("no [Organ] section")

// Observer is notified at the start of every parse phase.
type Observer interface {
	OnPhaseStart(percent int, label string)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(percent int, label string)

// OnPhaseStart calls f.
func (f ObserverFunc) OnPhaseStart(percent int, label string) { f(percent, label) }

// Options configures Load and Parse. Zero values are valid.
type Options struct {
	Observer Observer
	// Paths resolves image and info file references. Load defaults it to
	// the directory of the file.
	Paths organ.PathResolver
	// Images probes bitmap sizes. Load defaults it to a fresh prober.
	Images organ.ImageProber
}

// Load reads and parses the organ definition at path.
func Load(ctx context.Context, path string, opts Options) (*organ.Organ, *organ.Diagnostics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := ftag.Internal
		if errors.Is(err, os.ErrNotExist) {
			kind = ftag.NotFound
		}
		return nil, nil, fault.Wrap(err,
			fmsg.WithDesc("read organ file", "Could not read "+path),
			ftag.With(kind))
	}
	if opts.Paths == nil {
		opts.Paths = paths.ForFile(path)
	}
	if opts.Images == nil {
		opts.Images = imageprobe.New(0)
	}
	return Parse(ctx, data, "", opts)
}

// Parse parses an organ definition held in memory. root is the organ
// directory used to resolve references when opts.Paths is nil; it may be
// empty.
//
// The organ is only returned when every phase completed. A missing [Organ]
// section or cancellation returns a nil organ together with the diagnostics
// collected so far.
func Parse(ctx context.Context, data []byte, root string, opts Options) (*organ.Organ, *organ.Diagnostics, error) {
	f, err := ini.Parse(data)
	if err != nil {
		return nil, nil, fault.Wrap(err,
			fmsg.WithDesc("decode organ file", "The file is not readable text"),
			ftag.With(ftag.InvalidArgument))
	}
	if opts.Paths == nil && root != "" {
		opts.Paths = paths.New(root)
	}
	return parseFile(ctx, f, opts)
}

func parseFile(ctx context.Context, f *ini.File, opts Options) (*organ.Organ, *organ.Diagnostics, error) {
	log := organ.NewDiagnostics()
	if !f.HasGroup("Organ") {
		log.Add(organ.Issue{
			Level:   organ.LevelError,
			Code:    organ.CodeFatalOpen,
			Section: "Organ",
			Message: "the file has no [Organ] section",
		})
		return nil, log, fault.Wrap(ErrNoOrganSection,
			fmsg.WithDesc("parse organ file", "This is not an organ definition file"),
			ftag.With(ftag.InvalidArgument))
	}

	o := organ.New()
	p := &parser{
		f:      f,
		o:      o,
		oc:     &organ.Context{Organ: o, Log: log, Paths: opts.Paths, Images: opts.Images},
		layout: layoutFor(f),
	}

	for _, ph := range pipeline {
		if err := ctx.Err(); err != nil {
			return nil, log, fault.Wrap(err,
				fmsg.With("parse cancelled at "+ph.label),
				ftag.With(ftag.Cancelled))
		}
		if opts.Observer != nil {
			opts.Observer.OnPhaseStart(ph.percent, ph.label)
		}
		ph.run(p)
	}
	if opts.Observer != nil {
		opts.Observer.OnPhaseStart(100, "done")
	}
	return o, log, nil
}

type parser struct {
	f      *ini.File
	o      *organ.Organ
	oc     *organ.Context
	layout layoutSource
}

type phase struct {
	percent int
	label   string
	run     func(*parser)
}

var pipeline = []phase{
	{5, "organ settings", (*parser).readGlobals},
	{10, "main panel layout", (*parser).readMainLayout},
	{15, "enclosures", (*parser).readEnclosures},
	{20, "switches", (*parser).readSwitches},
	{25, "tremulants", (*parser).readTremulants},
	{30, "windchest groups", (*parser).readWindchestGroups},
	{40, "ranks", (*parser).readRanks},
	{50, "manuals", (*parser).readManuals},
	{55, "couplers", (*parser).readCouplers},
	{60, "divisionals", (*parser).readDivisionals},
	{65, "reversible pistons", (*parser).readReversiblePistons},
	{70, "divisional couplers", (*parser).readDivisionalCouplers},
	{75, "generals", (*parser).readGenerals},
	{80, "setter elements", (*parser).readSetterElements},
	{90, "panels", (*parser).readPanels},
}

func (p *parser) log() *organ.Diagnostics { return p.oc.Log }

func (p *parser) organSection() ini.Section { return p.f.Section("Organ") }

// eachSection visits Prefix001..PrefixN where N is announced by countKey in
// [Organ]. Missing groups are logged and skipped.
func (p *parser) eachSection(countKey, prefix string, visit func(name string, s ini.Section)) {
	n := p.organSection().Int(countKey, 0, 999, 0)
	for i := 1; i <= n; i++ {
		name := prefix + ini.Num(i)
		if !p.f.HasGroup(name) {
			p.log().MissingSection(name, "Organ")
			continue
		}
		visit(name, p.f.Section(name))
	}
}

func (p *parser) readGlobals() {
	p.o.ReadGlobals(p.organSection(), p.oc)
}

func (p *parser) readMainLayout() {
	p.layout.readMain(p)
}

func (p *parser) readEnclosures() {
	p.eachSection("NumberOfEnclosures", "Enclosure", func(name string, s ini.Section) {
		e := organ.NewEnclosure("")
		e.Read(s)
		p.o.AddEnclosure(e)
		p.layout.displayed(p, e.Displayed, s, func(*organ.DisplayMetrics) organ.Element {
			return organ.NewGUIEnclosure(e)
		})
	})
}

func (p *parser) readSwitches() {
	n := 0
	p.eachSection("NumberOfSwitches", "Switch", func(name string, s ini.Section) {
		n++
		sw := organ.NewSwitch("")
		// A switch may only depend on the switches before it.
		sw.Read(s, p.oc, n-1)
		p.o.AddSwitch(sw)
		p.layout.displayed(p, sw.Displayed, s, func(m *organ.DisplayMetrics) organ.Element {
			return organ.NewGUISwitch(sw, m)
		})
	})
}

func (p *parser) readTremulants() {
	p.eachSection("NumberOfTremulants", "Tremulant", func(name string, s ini.Section) {
		t := organ.NewTremulant("")
		t.Read(s, p.oc)
		p.o.AddTremulant(t)
		p.layout.displayed(p, t.Displayed, s, func(m *organ.DisplayMetrics) organ.Element {
			return organ.NewGUITremulant(t, m)
		})
	})
}

func (p *parser) readWindchestGroups() {
	p.eachSection("NumberOfWindchestGroups", "WindchestGroup", func(name string, s ini.Section) {
		g := organ.NewWindchestGroup("")
		g.Read(s, p.oc)
		p.o.AddWindchestGroup(g)
	})
}

func (p *parser) readRanks() {
	p.eachSection("NumberOfRanks", "Rank", func(name string, s ini.Section) {
		r := organ.NewRank("", 1)
		r.Read(s, p.oc)
		p.o.AddRank(r)
	})
}

// manualSections returns the ODF manual numbers announced by [Organ].
func (p *parser) manualSections() []int {
	o := p.o
	last := p.organSection().Int("NumberOfManuals", 0, 16, 0)
	var out []int
	for n := o.FirstManualNumber(); n <= last; n++ {
		out = append(out, n)
	}
	return out
}

// readManuals is the first manual pass: scalars and stops. Every manual is
// created before couplers are read so a coupler can target a later one.
func (p *parser) readManuals() {
	for _, n := range p.manualSections() {
		name := organ.ManualSection(n)
		m := organ.NewManual("")
		p.o.AddManual(m)
		if !p.f.HasGroup(name) {
			p.log().MissingSection(name, "Organ")
			continue
		}
		m.Read(p.f, name, p.oc)
		s := p.f.Section(name)
		p.layout.displayed(p, m.Displayed, s, func(*organ.DisplayMetrics) organ.Element {
			return organ.NewGUIManual(m)
		})
		children := p.childSections(s, "Stop")
		for i, st := range m.Stops() {
			if i < len(children) {
				p.layout.displayed(p, st.Displayed, children[i], func(dm *organ.DisplayMetrics) organ.Element {
					return organ.NewGUIStop(st, dm)
				})
			}
		}
	}
}

func (p *parser) readCouplers() {
	for _, n := range p.manualSections() {
		name := organ.ManualSection(n)
		if !p.f.HasGroup(name) {
			continue
		}
		m := p.o.ManualByNumber(n)
		m.ReadCouplers(p.f, name, p.oc)
		children := p.childSections(p.f.Section(name), "Coupler")
		for i, c := range m.Couplers() {
			if i < len(children) {
				p.layout.displayed(p, c.Displayed, children[i], func(dm *organ.DisplayMetrics) organ.Element {
					return organ.NewGUICoupler(c, dm)
				})
			}
		}
	}
}

func (p *parser) readDivisionals() {
	for _, n := range p.manualSections() {
		name := organ.ManualSection(n)
		if !p.f.HasGroup(name) {
			continue
		}
		m := p.o.ManualByNumber(n)
		m.ReadDivisionals(p.f, name, p.oc)
		children := p.childSections(p.f.Section(name), "Divisional")
		for i, d := range m.Divisionals() {
			if i < len(children) {
				p.layout.displayed(p, d.Displayed, children[i], func(dm *organ.DisplayMetrics) organ.Element {
					return organ.NewGUIDivisional(d, dm)
				})
			}
		}
	}
}

// childSections mirrors the lookup the manual does for its stops, couplers
// and divisionals, so the i-th section matches the i-th object read.
func (p *parser) childSections(parent ini.Section, prefix string) []ini.Section {
	var out []ini.Section
	n := parent.Int("NumberOf"+plural(prefix), 0, 999, 0)
	for i := 1; i <= n; i++ {
		num, ok := parent.IntOK(prefix+ini.Num(i), 1, 999)
		if !ok {
			continue
		}
		if name := prefix + ini.Num(num); p.f.HasGroup(name) {
			out = append(out, p.f.Section(name))
		}
	}
	return out
}

func (p *parser) readReversiblePistons() {
	p.eachSection("NumberOfReversiblePistons", "ReversiblePiston", func(name string, s ini.Section) {
		rp := organ.NewReversiblePiston("")
		rp.Read(s, p.oc)
		p.o.AddReversiblePiston(rp)
		p.layout.displayed(p, rp.Displayed, s, func(m *organ.DisplayMetrics) organ.Element {
			return organ.NewGUIReversiblePiston(rp, m)
		})
	})
}

func (p *parser) readDivisionalCouplers() {
	p.eachSection("NumberOfDivisionalCouplers", "DivisionalCoupler", func(name string, s ini.Section) {
		dc := organ.NewDivisionalCoupler("")
		dc.Read(s, p.oc)
		p.o.AddDivisionalCoupler(dc)
		p.layout.displayed(p, dc.Displayed, s, func(m *organ.DisplayMetrics) organ.Element {
			return organ.NewGUIDivisionalCoupler(dc, m)
		})
	})
}

func (p *parser) readGenerals() {
	p.eachSection("NumberOfGenerals", "General", func(name string, s ini.Section) {
		g := organ.NewGeneral("")
		g.Read(s, p.oc)
		p.o.AddGeneral(g)
		p.layout.displayed(p, g.Displayed, s, func(m *organ.DisplayMetrics) organ.Element {
			return organ.NewGUIGeneral(g, m)
		})
	})
}

func (p *parser) readSetterElements() {
	p.layout.readSetterElements(p)
}

func (p *parser) readPanels() {
	p.layout.readPanels(p)
	for _, panel := range p.o.Panels() {
		panel.Refresh(p.oc)
	}
	p.o.CheckStructure(p.log())
}
