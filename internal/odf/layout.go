package odf

import (
	"strings"

	"github.com/aidanlsb/odfkit/internal/ini"
	"github.com/aidanlsb/odfkit/internal/organ"
)

// Dialect is the on-disk layout variant of an organ definition.
type Dialect int

const (
	// DialectModern keeps all layout in Panel%03d groups.
	DialectModern Dialect = iota
	// DialectLegacy keeps main panel metrics in [Organ], organ-level images,
	// labels and setter elements, and layout keys inside Displayed objects.
	DialectLegacy
)

func (d Dialect) String() string {
	if d == DialectLegacy {
		return "legacy"
	}
	return "modern"
}

// DetectDialect decides the dialect: a file is modern exactly when it has a
// [Panel000] group.
func DetectDialect(f *ini.File) Dialect {
	if f.HasGroup(organ.PanelSection(0)) {
		return DialectModern
	}
	return DialectLegacy
}

// layoutSource is where panel layout comes from. The pipeline calls it at
// fixed points and never checks the dialect itself.
type layoutSource interface {
	// readMain loads the main panel header and images before any object.
	readMain(p *parser)
	// displayed is called after each object that can appear on the main
	// panel is read. s is the object's own group.
	displayed(p *parser, shown bool, s ini.Section, build func(*organ.DisplayMetrics) organ.Element)
	// readSetterElements loads organ-level setter elements.
	readSetterElements(p *parser)
	// readPanels loads the remaining elements and the extra panels.
	readPanels(p *parser)
}

func layoutFor(f *ini.File) layoutSource {
	if DetectDialect(f) == DialectLegacy {
		return legacyLayout{}
	}
	return modernLayout{}
}

// elementRefs locates the numeric references of one element: object holds
// the object number, manual the ODF manual number for manual-local objects.
type elementRefs struct {
	s      ini.Section
	object string
	manual string
}

func (r elementRefs) index() int {
	n, _ := r.s.IntOK(r.object, 1, 999)
	return n - 1
}

func (p *parser) manualRef(s ini.Section, key string) *organ.Manual {
	n, ok := s.IntOK(key, p.o.FirstManualNumber(), p.o.LastManualNumber())
	if !ok {
		return nil
	}
	return p.o.ManualByNumber(n)
}

// buildElement constructs the element of an entity-backed kind. It returns
// nil and logs a dangling reference when the object does not exist.
func (p *parser) buildElement(kind organ.Kind, refs elementRefs, section string, m *organ.DisplayMetrics) organ.Element {
	o := p.o
	switch kind {
	case organ.KindLabel:
		return organ.NewGUILabel("")
	case organ.KindManual:
		if man := p.manualRef(refs.s, refs.object); man != nil {
			return organ.NewGUIManual(man)
		}
	case organ.KindEnclosure:
		if e := o.EnclosureAt(refs.index()); e != nil {
			return organ.NewGUIEnclosure(e)
		}
	case organ.KindStop:
		if man := p.manualRef(refs.s, refs.manual); man != nil {
			if st := man.StopAt(refs.index()); st != nil {
				return organ.NewGUIStop(st, m)
			}
		}
	case organ.KindCoupler:
		if man := p.manualRef(refs.s, refs.manual); man != nil {
			if c := man.CouplerAt(refs.index()); c != nil {
				return organ.NewGUICoupler(c, m)
			}
		}
	case organ.KindDivisional:
		if man := p.manualRef(refs.s, refs.manual); man != nil {
			if d := man.DivisionalAt(refs.index()); d != nil {
				return organ.NewGUIDivisional(d, m)
			}
		}
	case organ.KindGeneral:
		if g := o.GeneralAt(refs.index()); g != nil {
			return organ.NewGUIGeneral(g, m)
		}
	case organ.KindSwitch:
		if sw := o.SwitchAt(refs.index()); sw != nil {
			return organ.NewGUISwitch(sw, m)
		}
	case organ.KindTremulant:
		if t := o.TremulantAt(refs.index()); t != nil {
			return organ.NewGUITremulant(t, m)
		}
	case organ.KindReversiblePiston:
		if rp := o.ReversiblePistonAt(refs.index()); rp != nil {
			return organ.NewGUIReversiblePiston(rp, m)
		}
	case organ.KindDivisionalCoupler:
		if dc := o.DivisionalCouplerAt(refs.index()); dc != nil {
			return organ.NewGUIDivisionalCoupler(dc, m)
		}
	}
	p.log().Dangling(section, "%s element references a missing object", kind)
	return nil
}

// placeElement reads the layout of e from s and appends it to panel.
func (p *parser) placeElement(panel *organ.Panel, e organ.Element, s ini.Section) {
	if e == nil {
		return
	}
	e.Read(s, p.oc, panel.Metrics())
	panel.AddGUIElement(e)
}

// readImages loads count images from groups named by name(i).
func (p *parser) readImages(panel *organ.Panel, parent ini.Section, name func(i int) string) {
	n := parent.Int("NumberOfImages", 0, 999, 0)
	for i := 1; i <= n; i++ {
		group := name(i)
		if !p.f.HasGroup(group) {
			p.log().MissingSection(group, parent.Name())
			continue
		}
		img := &organ.Image{}
		img.Read(p.f.Section(group), panel.Metrics(), p.oc)
		panel.AddImage(img)
	}
}

// modernLayout reads Panel%03d groups with typed Panel%03dElement%03d groups.
type modernLayout struct{}

func (modernLayout) readMain(p *parser) {
	main := p.o.MainPanel()
	s := p.f.Section(organ.PanelSection(0))
	main.Read(s, p.oc)
	p.readImages(main, s, func(i int) string { return organ.PanelImageSection(0, i) })
}

func (modernLayout) displayed(*parser, bool, ini.Section, func(*organ.DisplayMetrics) organ.Element) {
}

func (modernLayout) readSetterElements(*parser) {}

func (modernLayout) readPanels(p *parser) {
	p.readModernElements(p.o.MainPanel(), 0)

	n := p.organSection().Int("NumberOfPanels", 0, 100, 0)
	for i := 1; i <= n; i++ {
		name := organ.PanelSection(i)
		if !p.f.HasGroup(name) {
			p.log().MissingSection(name, "Organ")
			continue
		}
		panel := organ.NewPanel("")
		s := p.f.Section(name)
		panel.Read(s, p.oc)
		p.readImages(panel, s, func(j int) string { return organ.PanelImageSection(i, j) })
		p.readModernElements(panel, i)
		p.o.AddPanel(panel)
	}
}

func (p *parser) readModernElements(panel *organ.Panel, index int) {
	parent := p.f.Section(organ.PanelSection(index))
	n := parent.Int("NumberOfGUIElements", 0, 999, 0)
	for i := 1; i <= n; i++ {
		name := organ.PanelElementSection(index, i)
		if !p.f.HasGroup(name) {
			p.log().MissingSection(name, parent.Name())
			continue
		}
		s := p.f.Section(name)
		p.placeElement(panel, p.typedElement(s, panel.Metrics()), s)
	}
}

// typedElement builds an element from its Type= key.
func (p *parser) typedElement(s ini.Section, m *organ.DisplayMetrics) organ.Element {
	typeName := s.String("Type", "")
	if typeName == "" {
		p.log().Add(organ.Issue{
			Level:   organ.LevelWarning,
			Code:    organ.CodeMalformedSection,
			Section: s.Name(),
			Message: "element has no Type",
		})
		return nil
	}
	if kind, ok := organ.KindForType(typeName); ok {
		return p.buildElement(kind, elementRefs{s: s, object: kind.String(), manual: "Manual"}, s.Name(), m)
	}
	return newSetterElement(typeName, s.Name(), p.o, m, p.log())
}

// legacyLayout reads files without [Panel000].
type legacyLayout struct{}

func (legacyLayout) readMain(p *parser) {
	main := p.o.MainPanel()
	s := p.organSection()
	main.Metrics().Read(s)
	p.readImages(main, s, func(i int) string { return "Image" + ini.Num(i) })

	n := s.Int("NumberOfLabels", 0, 999, 0)
	for i := 1; i <= n; i++ {
		name := "Label" + ini.Num(i)
		if !p.f.HasGroup(name) {
			p.log().MissingSection(name, "Organ")
			continue
		}
		p.placeElement(main, organ.NewGUILabel(""), p.f.Section(name))
	}
}

func (legacyLayout) displayed(p *parser, shown bool, s ini.Section, build func(*organ.DisplayMetrics) organ.Element) {
	if !shown {
		return
	}
	main := p.o.MainPanel()
	p.placeElement(main, build(main.Metrics()), s)
}

func (legacyLayout) readSetterElements(p *parser) {
	main := p.o.MainPanel()
	p.eachSection("NumberOfSetterElements", "SetterElement", func(name string, s ini.Section) {
		p.placeElement(main, p.setterElement(s, main.Metrics()), s)
	})
}

func (p *parser) setterElement(s ini.Section, m *organ.DisplayMetrics) organ.Element {
	typeName := s.String("Type", "")
	if typeName == "" {
		p.log().Add(organ.Issue{
			Level:   organ.LevelWarning,
			Code:    organ.CodeMalformedSection,
			Section: s.Name(),
			Message: "setter element has no Type",
		})
		return nil
	}
	return newSetterElement(typeName, s.Name(), p.o, m, p.log())
}

// legacyPanelKinds lists the per-kind element lists of a legacy extra
// panel, in the order they are placed.
var legacyPanelKinds = []organ.Kind{
	organ.KindManual,
	organ.KindEnclosure,
	organ.KindLabel,
	organ.KindStop,
	organ.KindCoupler,
	organ.KindDivisional,
	organ.KindGeneral,
	organ.KindSwitch,
	organ.KindTremulant,
	organ.KindReversiblePiston,
	organ.KindDivisionalCoupler,
}

func plural(prefix string) string {
	if strings.HasSuffix(prefix, "ch") {
		return prefix + "es"
	}
	return prefix + "s"
}

func (legacyLayout) readPanels(p *parser) {
	n := p.organSection().Int("NumberOfPanels", 0, 100, 0)
	for i := 1; i <= n; i++ {
		name := organ.PanelSection(i)
		if !p.f.HasGroup(name) {
			p.log().MissingSection(name, "Organ")
			continue
		}
		panel := organ.NewPanel("")
		s := p.f.Section(name)
		panel.Read(s, p.oc)
		p.readImages(panel, s, func(j int) string { return organ.PanelImageSection(i, j) })
		p.readLegacyPanelElements(panel, i, s)
		p.o.AddPanel(panel)
	}
}

// readLegacyPanelElements reads lists such as NumberOfStops/Stop001=002/
// Stop001Manual=001 whose layout is in [Panel001Stop001].
func (p *parser) readLegacyPanelElements(panel *organ.Panel, index int, s ini.Section) {
	m := panel.Metrics()
	for _, kind := range legacyPanelKinds {
		prefix := kind.String()
		count := s.Int("NumberOf"+plural(prefix), 0, 999, 0)
		for j := 1; j <= count; j++ {
			key := prefix + ini.Num(j)
			name := organ.PanelSection(index) + key
			if !p.f.HasGroup(name) {
				p.log().MissingSection(name, s.Name())
				continue
			}
			refs := elementRefs{s: s, object: key, manual: key + "Manual"}
			p.placeElement(panel, p.buildElement(kind, refs, name, m), p.f.Section(name))
		}
	}

	count := s.Int("NumberOfSetterElements", 0, 999, 0)
	for j := 1; j <= count; j++ {
		name := organ.PanelSection(index) + "SetterElement" + ini.Num(j)
		if !p.f.HasGroup(name) {
			p.log().MissingSection(name, s.Name())
			continue
		}
		ls := p.f.Section(name)
		p.placeElement(panel, p.setterElement(ls, m), ls)
	}
}
