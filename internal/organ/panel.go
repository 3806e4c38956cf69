package organ

import (
	"slices"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// Panel is one console screen. It owns its images and elements; element
// order is the order they are written and drawn in.
type Panel struct {
	Name  string
	Group string
	DisplayMetrics

	hasPedals bool
	images    []*Image
	elements  []Element

	manuals    []*GUIManual
	enclosures []*GUIEnclosure
}

// NewPanel returns an empty panel with default metrics.
func NewPanel(name string) *Panel {
	return &Panel{Name: name, DisplayMetrics: DefaultDisplayMetrics()}
}

// Metrics returns the panel's display metrics.
func (p *Panel) Metrics() *DisplayMetrics { return &p.DisplayMetrics }

// HasPedals reports whether the first keyboard is drawn as a pedalboard.
func (p *Panel) HasPedals() bool { return p.hasPedals }

// SetHasPedals changes the pedal flag and refreshes the keyboard cache.
func (p *Panel) SetHasPedals(v bool) {
	p.hasPedals = v
	p.updateCaches()
}

// IsPedal reports whether g is drawn as the pedalboard of this panel.
func (p *Panel) IsPedal(g *GUIManual) bool {
	return p.hasPedals && len(p.manuals) > 0 && p.manuals[0] == g
}

// Images returns the panel images in order.
func (p *Panel) Images() []*Image { return slices.Clone(p.images) }

// NumberOfImages returns the image count.
func (p *Panel) NumberOfImages() int { return len(p.images) }

// AddImage appends img.
func (p *Panel) AddImage(img *Image) {
	if img != nil {
		p.images = append(p.images, img)
	}
}

// RemoveImage deletes img.
func (p *Panel) RemoveImage(img *Image) {
	if i := slices.Index(p.images, img); i >= 0 {
		p.images = slices.Delete(p.images, i, i+1)
	}
}

// GUIElements returns the elements in order.
func (p *Panel) GUIElements() []Element { return slices.Clone(p.elements) }

// NumberOfGUIElements returns the element count.
func (p *Panel) NumberOfGUIElements() int { return len(p.elements) }

// GUIElementAt returns element i or nil.
func (p *Panel) GUIElementAt(i int) Element { return at(p.elements, i) }

// IndexOfGUIElement returns the position of e, or -1.
func (p *Panel) IndexOfGUIElement(e Element) int { return slices.Index(p.elements, e) }

// AddGUIElement appends e.
func (p *Panel) AddGUIElement(e Element) {
	if e == nil || slices.Contains(p.elements, e) {
		return
	}
	p.elements = append(p.elements, e)
	p.updateCaches()
}

// RemoveGUIElement deletes e.
func (p *Panel) RemoveGUIElement(e Element) {
	if i := p.IndexOfGUIElement(e); i >= 0 {
		p.elements = slices.Delete(p.elements, i, i+1)
		p.updateCaches()
	}
}

// MoveGUIElement moves e to position i, keeping the others in order.
func (p *Panel) MoveGUIElement(e Element, i int) {
	from := p.IndexOfGUIElement(e)
	if from < 0 || i < 0 || i >= len(p.elements) {
		return
	}
	p.elements = slices.Delete(p.elements, from, from+1)
	p.elements = slices.Insert(p.elements, i, e)
	p.updateCaches()
}

// Manuals returns the keyboards on the panel in element order.
func (p *Panel) Manuals() []*GUIManual { return slices.Clone(p.manuals) }

// Enclosures returns the enclosure pedals on the panel in element order.
func (p *Panel) Enclosures() []*GUIEnclosure { return slices.Clone(p.enclosures) }

func (p *Panel) updateCaches() {
	p.manuals = p.manuals[:0]
	p.enclosures = p.enclosures[:0]
	for _, e := range p.elements {
		switch g := e.(type) {
		case *GUIManual:
			p.manuals = append(p.manuals, g)
		case *GUIEnclosure:
			p.enclosures = append(p.enclosures, g)
		}
	}
	for i, g := range p.manuals {
		g.setPedal(p.hasPedals && i == 0)
	}
}

// Refresh recomputes the key model of every keyboard.
func (p *Panel) Refresh(ctx *Context) {
	for _, g := range p.manuals {
		g.UpdateKeyInfo(ctx, &p.DisplayMetrics)
	}
}

// HasItemAsGUIElement reports whether an element shows e.
func (p *Panel) HasItemAsGUIElement(e Entity) bool {
	return slices.ContainsFunc(p.elements, func(el Element) bool { return el.References(e) })
}

// RemoveItemFromPanel deletes every element that shows e.
func (p *Panel) RemoveItemFromPanel(e Entity) {
	n := len(p.elements)
	p.elements = slices.DeleteFunc(p.elements, func(el Element) bool { return el.References(e) })
	if len(p.elements) != n {
		p.updateCaches()
	}
}

// Read loads the panel keys and metrics. Images and elements are added by
// the caller.
func (p *Panel) Read(s ini.Section, ctx *Context) {
	p.Name = s.String("Name", p.Name)
	p.Group = s.String("Group", "")
	p.hasPedals = s.Bool("HasPedals", p.hasPedals)
	p.DisplayMetrics.Read(s)
	p.updateCaches()
}

// Write emits Panel<index> followed by its images and elements.
func (p *Panel) Write(w *ini.Writer, index int, ctx *Context) {
	w.Section(PanelSection(index))
	w.Set("Name", p.Name)
	if index > 0 {
		writeStringIfNot(w, "Group", p.Group, "")
		w.SetBool("HasPedals", p.hasPedals)
	}
	w.SetInt("NumberOfGUIElements", len(p.elements))
	w.SetInt("NumberOfImages", len(p.images))
	p.DisplayMetrics.Write(w)

	for i, img := range p.images {
		w.Section(PanelImageSection(index, i+1))
		img.Write(w, ctx)
	}
	for i, e := range p.elements {
		w.Section(PanelElementSection(index, i+1))
		e.Write(w, ctx, &p.DisplayMetrics)
	}
}

// Clone returns a deep copy with cloned images and elements.
func (p *Panel) Clone() *Panel {
	c := &Panel{Name: p.Name, Group: p.Group, DisplayMetrics: p.DisplayMetrics, hasPedals: p.hasPedals}
	for _, img := range p.images {
		c.images = append(c.images, img.Clone())
	}
	for _, e := range p.elements {
		c.elements = append(c.elements, e.Clone())
	}
	c.updateCaches()
	return c
}
