package organ

import (
	"maps"
	"slices"

	"github.com/aidanlsb/odfkit/internal/ini"
)

const (
	maxKeyWidth  = 500
	maxKeyOffset = 500
)

var pitchClasses = [12]string{"C", "Cis", "D", "Dis", "E", "F", "Fis", "G", "Gis", "A", "Ais", "B"}

// KeyTypes lists every key-type name a keyboard style can be keyed by:
// the twelve pitch classes, then the First and Last variants.
func KeyTypes() []string {
	out := make([]string, 0, 36)
	for _, prefix := range []string{"", "First", "Last"} {
		for _, pc := range pitchClasses {
			out = append(out, prefix+pc)
		}
	}
	return out
}

// IsNaturalNote reports whether MIDI note n is a white key.
func IsNaturalNote(n int) bool {
	pc := n % 12
	return (pc < 5 && pc%2 == 0) || (pc >= 5 && pc%2 == 1)
}

// KeyStyle overrides the drawing of a key type or a single key. Nil and
// empty fields inherit from the next tier.
type KeyStyle struct {
	ImageOn  string
	ImageOff string
	MaskOn   string
	MaskOff  string
	Width    *int
	Offset   *int
	YOffset  *int

	// Mouse rectangle overrides only apply to single keys.
	MouseRectLeft   *int
	MouseRectTop    *int
	MouseRectWidth  *int
	MouseRectHeight *int
}

func (k KeyStyle) empty() bool {
	return k == KeyStyle{}
}

// over returns k with unset fields taken from base.
func (k KeyStyle) over(base KeyStyle) KeyStyle {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	pickInt := func(a, b *int) *int {
		if a != nil {
			return a
		}
		return b
	}
	return KeyStyle{
		ImageOn:         pick(k.ImageOn, base.ImageOn),
		ImageOff:        pick(k.ImageOff, base.ImageOff),
		MaskOn:          pick(k.MaskOn, base.MaskOn),
		MaskOff:         pick(k.MaskOff, base.MaskOff),
		Width:           pickInt(k.Width, base.Width),
		Offset:          pickInt(k.Offset, base.Offset),
		YOffset:         pickInt(k.YOffset, base.YOffset),
		MouseRectLeft:   pickInt(k.MouseRectLeft, base.MouseRectLeft),
		MouseRectTop:    pickInt(k.MouseRectTop, base.MouseRectTop),
		MouseRectWidth:  pickInt(k.MouseRectWidth, base.MouseRectWidth),
		MouseRectHeight: pickInt(k.MouseRectHeight, base.MouseRectHeight),
	}
}

func (k KeyStyle) clone() KeyStyle {
	cp := func(p *int) *int {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	k.Width, k.Offset, k.YOffset = cp(k.Width), cp(k.Offset), cp(k.YOffset)
	k.MouseRectLeft, k.MouseRectTop = cp(k.MouseRectLeft), cp(k.MouseRectTop)
	k.MouseRectWidth, k.MouseRectHeight = cp(k.MouseRectWidth), cp(k.MouseRectHeight)
	return k
}

func readKeyStyle(s ini.Section, ctx *Context, imageOn, imageOff, maskOn, maskOff, width, offset, yoffset string) KeyStyle {
	optInt := func(key string, lo, hi int) *int {
		if v, ok := s.IntOK(key, lo, hi); ok {
			return &v
		}
		return nil
	}
	return KeyStyle{
		ImageOn:  readPath(s, imageOn, ctx),
		ImageOff: readPath(s, imageOff, ctx),
		MaskOn:   readPath(s, maskOn, ctx),
		MaskOff:  readPath(s, maskOff, ctx),
		Width:    optInt(width, 0, maxKeyWidth),
		Offset:   optInt(offset, -maxKeyOffset, maxKeyOffset),
		YOffset:  optInt(yoffset, -maxKeyOffset, maxKeyOffset),
	}
}

func writeKeyStyle(w *ini.Writer, ctx *Context, k KeyStyle, imageOn, imageOff, maskOn, maskOff, width, offset, yoffset string) {
	writePath(w, imageOn, k.ImageOn, ctx)
	writePath(w, imageOff, k.ImageOff, ctx)
	writePath(w, maskOn, k.MaskOn, ctx)
	writePath(w, maskOff, k.MaskOff, ctx)
	for _, f := range []struct {
		key string
		v   *int
	}{{width, k.Width}, {offset, k.Offset}, {yoffset, k.YOffset}} {
		if f.v != nil {
			w.SetInt(f.key, *f.v)
		}
	}
}

// KeyInfo is the computed drawing of one displayed key.
type KeyInfo struct {
	Note    int
	IsSharp bool
	// Image is the off-state image path, or a GO: built-in name.
	Image  string
	X      int
	Y      int
	Width  int
	Height int
}

// GUIManual draws a keyboard.
type GUIManual struct {
	position
	Manual *Manual

	DispKeyColourInverted bool
	DispKeyColourWooden   bool

	firstNote  int
	notes      []int
	typeStyles map[string]KeyStyle
	keyStyles  map[int]KeyStyle

	isPedal bool
	keys    []KeyInfo
	width   int
	height  int
}

// NewGUIManual returns a keyboard for man showing its accessible keys.
func NewGUIManual(man *Manual) *GUIManual {
	g := &GUIManual{
		position:   newPosition(),
		Manual:     man,
		typeStyles: map[string]KeyStyle{},
		keyStyles:  map[int]KeyStyle{},
	}
	g.firstNote = g.defaultFirstNote()
	g.notes = g.defaultNotes(g.defaultKeyCount())
	return g
}

func (*GUIManual) guiElement() {}
func (*GUIManual) Kind() Kind { return KindManual }
func (g *GUIManual) ElementName() string { return g.Manual.Name }

func (g *GUIManual) References(e Entity) bool { return e == Entity(g.Manual) }

// IsPedal reports whether the panel draws this keyboard as the pedalboard.
func (g *GUIManual) IsPedal() bool { return g.isPedal }

func (g *GUIManual) setPedal(v bool) { g.isPedal = v }

func (g *GUIManual) defaultFirstNote() int { return g.Manual.FirstAccessibleKeyMIDINoteNumber() }
func (g *GUIManual) defaultKeyCount() int { return g.Manual.NumberOfAccessibleKeys() }

func (g *GUIManual) defaultNotes(n int) []int {
	notes := make([]int, n)
	for i := range notes {
		notes[i] = g.defaultNote(i)
	}
	return notes
}

func (g *GUIManual) defaultNote(i int) int { return min(g.firstNote+i, midiKeys-1) }

// DisplayFirstNote returns the MIDI note of the leftmost drawn key.
func (g *GUIManual) DisplayFirstNote() int { return g.firstNote }

// SetDisplayFirstNote resets every displayed note that still followed the
// previous first note.
func (g *GUIManual) SetDisplayFirstNote(n int) {
	if n < 0 || n >= midiKeys {
		return
	}
	old := g.firstNote
	g.firstNote = n
	for i, note := range g.notes {
		if note == min(old+i, midiKeys-1) {
			g.notes[i] = g.defaultNote(i)
		}
	}
}

// DisplayKeys returns the number of drawn keys.
func (g *GUIManual) DisplayKeys() int { return len(g.notes) }

// SetDisplayKeys ignores counts outside 1..accessible keys.
func (g *GUIManual) SetDisplayKeys(n int) {
	if n < 1 || n > g.defaultKeyCount() {
		return
	}
	for len(g.notes) < n {
		g.notes = append(g.notes, g.defaultNote(len(g.notes)))
	}
	g.notes = g.notes[:n]
	for k := range g.keyStyles {
		if k > n {
			delete(g.keyStyles, k)
		}
	}
}

// DisplayKey returns the MIDI note drawn at key (1-based).
func (g *GUIManual) DisplayKey(key int) int {
	if key < 1 || key > len(g.notes) {
		return -1
	}
	return g.notes[key-1]
}

// SetDisplayKey remaps a drawn key to another note.
func (g *GUIManual) SetDisplayKey(key, note int) {
	if key >= 1 && key <= len(g.notes) && note >= 0 && note < midiKeys {
		g.notes[key-1] = note
	}
}

// TypeStyle returns the override for a key type such as "Cis" or "FirstC".
func (g *GUIManual) TypeStyle(keyType string) KeyStyle { return g.typeStyles[keyType] }

// SetTypeStyle replaces the override of a key type; an empty style clears it.
func (g *GUIManual) SetTypeStyle(keyType string, k KeyStyle) {
	if !slices.Contains(KeyTypes(), keyType) {
		return
	}
	k.MouseRectLeft, k.MouseRectTop, k.MouseRectWidth, k.MouseRectHeight = nil, nil, nil, nil
	if k.empty() {
		delete(g.typeStyles, keyType)
		return
	}
	g.typeStyles[keyType] = k
}

// KeyStyle returns the override of drawn key (1-based).
func (g *GUIManual) KeyStyle(key int) KeyStyle { return g.keyStyles[key] }

// SetKeyStyle replaces the override of drawn key (1-based).
func (g *GUIManual) SetKeyStyle(key int, k KeyStyle) {
	if key < 1 || key > len(g.notes) {
		return
	}
	if k.empty() {
		delete(g.keyStyles, key)
		return
	}
	g.keyStyles[key] = k
}

// keyType names the pitch class of note, with First/Last for the edges.
func keyType(note, i, count int) string {
	name := pitchClasses[note%12]
	switch {
	case i == 0:
		return "First" + name
	case i == count-1:
		return "Last" + name
	}
	return name
}

func (g *GUIManual) builtinImage(sharp bool) string {
	name := "GO:Keys/"
	if g.isPedal {
		name += "Pedal/"
	} else {
		name += "Manual/"
	}
	switch {
	case g.DispKeyColourWooden:
		name += "Wood"
	case sharp != g.DispKeyColourInverted:
		name += "Black"
	default:
		name += "White"
	}
	return name
}

// resolveStyle walks the override chain for drawn key i: the key's own
// override, then the First/Last type, then the pitch class.
func (g *GUIManual) resolveStyle(i int) KeyStyle {
	note := g.notes[i]
	t := keyType(note, i, len(g.notes))
	style := g.keyStyles[i+1].over(g.typeStyles[t])
	if pc := pitchClasses[note%12]; pc != t {
		style = style.over(g.typeStyles[pc])
	}
	return style
}

// UpdateKeyInfo recomputes the drawing model. It must be called after any
// change to colours, styles, note mapping or pedal status.
func (g *GUIManual) UpdateKeyInfo(ctx *Context, m *DisplayMetrics) {
	keyW, keyH := m.ManualKeyWidth, m.ManualHeight
	if g.isPedal {
		keyW, keyH = m.PedalKeyWidth, m.PedalHeight
	}

	g.keys = g.keys[:0]
	x, right := 0, 0
	for i, note := range g.notes {
		sharp := !IsNaturalNote(note)
		style := g.resolveStyle(i)

		info := KeyInfo{Note: note, IsSharp: sharp, Image: style.ImageOff, Height: keyH}
		if info.Image == "" {
			info.Image = g.builtinImage(sharp)
		}

		imgW := keyW
		advance := keyW
		if sharp {
			imgW = keyW * 2 / 3
			advance = 0
		}
		if w, h, ok := ctx.imageSize(style.ImageOff); ok {
			imgW, info.Height = w, h
		}
		offset := 0
		if sharp {
			offset = -imgW / 2
		}
		if style.Width != nil {
			advance = *style.Width
		}
		if style.Offset != nil {
			offset = *style.Offset
		}
		if style.YOffset != nil {
			info.Y = *style.YOffset
		}

		info.X = x + offset
		info.Width = imgW
		g.keys = append(g.keys, info)
		right = max(right, info.X+info.Width)
		x += advance
	}
	g.width = max(right, x)
	g.height = keyH
	for _, k := range g.keys {
		g.height = max(g.height, k.Y+k.Height)
	}
}

// Keys returns the model computed by the last UpdateKeyInfo.
func (g *GUIManual) Keys() []KeyInfo { return slices.Clone(g.keys) }

// Width returns the drawn width from the last UpdateKeyInfo.
func (g *GUIManual) Width() int { return g.width }

// Height returns the drawn height from the last UpdateKeyInfo.
func (g *GUIManual) Height() int { return g.height }

// Read loads the keyboard layout and refreshes the key model.
func (g *GUIManual) Read(s ini.Section, ctx *Context, m *DisplayMetrics) {
	g.position.read(s, m)
	g.DispKeyColourInverted = s.Bool("DispKeyColourInverted", false)
	g.DispKeyColourWooden = s.Bool("DispKeyColourWooden", false)
	g.firstNote = s.Int("DisplayFirstNote", 0, midiKeys-1, g.defaultFirstNote())

	n := s.Int("DisplayKeys", 1, g.defaultKeyCount(), g.defaultKeyCount())
	g.notes = make([]int, n)
	for i := range g.notes {
		g.notes[i] = s.Int(numbered("DisplayKey", i+1), 0, midiKeys-1, g.defaultNote(i))
	}

	g.typeStyles = map[string]KeyStyle{}
	for _, t := range KeyTypes() {
		k := readKeyStyle(s, ctx,
			"ImageOn_"+t, "ImageOff_"+t, "MaskOn_"+t, "MaskOff_"+t,
			"Width_"+t, "Offset_"+t, "YOffset_"+t)
		if !k.empty() {
			g.typeStyles[t] = k
		}
	}

	g.keyStyles = map[int]KeyStyle{}
	for i := 1; i <= n; i++ {
		p := numbered("Key", i)
		k := readKeyStyle(s, ctx,
			p+"ImageOn", p+"ImageOff", p+"MaskOn", p+"MaskOff",
			p+"Width", p+"Offset", p+"YOffset")
		for _, f := range []struct {
			key string
			dst **int
		}{
			{"MouseRectLeft", &k.MouseRectLeft},
			{"MouseRectTop", &k.MouseRectTop},
			{"MouseRectWidth", &k.MouseRectWidth},
			{"MouseRectHeight", &k.MouseRectHeight},
		} {
			if v, ok := s.IntOK(p+f.key, 0, maxKeyWidth); ok {
				*f.dst = &v
			}
		}
		if !k.empty() {
			g.keyStyles[i] = k
		}
	}
	g.UpdateKeyInfo(ctx, m)
}

// Write emits Type, the manual reference, and the non-default layout keys.
func (g *GUIManual) Write(w *ini.Writer, ctx *Context, _ *DisplayMetrics) {
	writeType(w, KindManual.String())
	w.SetIndex("Manual", ctx.organ().ManualNumber(g.Manual))
	g.position.write(w)
	writeBoolIfNot(w, "DispKeyColourInverted", g.DispKeyColourInverted, false)
	writeBoolIfNot(w, "DispKeyColourWooden", g.DispKeyColourWooden, false)
	writeIntIfNot(w, "DisplayFirstNote", g.firstNote, g.defaultFirstNote())
	writeIntIfNot(w, "DisplayKeys", len(g.notes), g.defaultKeyCount())
	for i, note := range g.notes {
		writeIntIfNot(w, numbered("DisplayKey", i+1), note, g.defaultNote(i))
	}

	for _, t := range KeyTypes() {
		if k, ok := g.typeStyles[t]; ok {
			writeKeyStyle(w, ctx, k,
				"ImageOn_"+t, "ImageOff_"+t, "MaskOn_"+t, "MaskOff_"+t,
				"Width_"+t, "Offset_"+t, "YOffset_"+t)
		}
	}

	for _, i := range slices.Sorted(maps.Keys(g.keyStyles)) {
		k := g.keyStyles[i]
		p := numbered("Key", i)
		writeKeyStyle(w, ctx, k,
			p+"ImageOn", p+"ImageOff", p+"MaskOn", p+"MaskOff",
			p+"Width", p+"Offset", p+"YOffset")
		for _, f := range []struct {
			key string
			v   *int
		}{
			{"MouseRectLeft", k.MouseRectLeft},
			{"MouseRectTop", k.MouseRectTop},
			{"MouseRectWidth", k.MouseRectWidth},
			{"MouseRectHeight", k.MouseRectHeight},
		} {
			if f.v != nil {
				w.SetInt(p+f.key, *f.v)
			}
		}
	}
}

func (g *GUIManual) Clone() Element {
	c := *g
	c.notes = slices.Clone(g.notes)
	c.keys = slices.Clone(g.keys)
	c.typeStyles = make(map[string]KeyStyle, len(g.typeStyles))
	for t, k := range g.typeStyles {
		c.typeStyles[t] = k.clone()
	}
	c.keyStyles = make(map[int]KeyStyle, len(g.keyStyles))
	for i, k := range g.keyStyles {
		c.keyStyles[i] = k.clone()
	}
	return &c
}
