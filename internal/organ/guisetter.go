package organ

import (
	"fmt"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// Setter elements drive the combination system rather than an organ object.

// GUISetterButton is a setter piston such as Set, GC or CrescendoNext.
type GUISetterButton struct {
	GUIButton
	TypeName string
}

// NewGUISetterButton returns a setter piston of the given type.
func NewGUISetterButton(typeName string, m *DisplayMetrics) *GUISetterButton {
	return &GUISetterButton{GUIButton: newGUIButton(true, m), TypeName: typeName}
}

func (*GUISetterButton) guiElement() {}
func (*GUISetterButton) Kind() Kind { return KindSetterButton }
func (e *GUISetterButton) ElementName() string { return e.TypeName }
func (*GUISetterButton) References(Entity) bool { return false }

func (e *GUISetterButton) Read(s ini.Section, ctx *Context, m *DisplayMetrics) {
	e.readButtonLayout(s, ctx, m)
}

func (e *GUISetterButton) Write(w *ini.Writer, ctx *Context, m *DisplayMetrics) {
	writeType(w, e.TypeName)
	e.writeButtonLayout(w, ctx, m, e.ElementName())
}

func (e *GUISetterButton) Clone() Element {
	c := *e
	return &c
}

// BankKind distinguishes the divisional setter pistons.
type BankKind int

const (
	// BankNone is a piston recalling divisional Number.
	BankNone BankKind = iota
	BankPrev
	BankNext
)

// GUISetterDivisional is a divisional setter piston of one manual.
type GUISetterDivisional struct {
	GUIButton
	Manual *Manual
	Number int
	Bank   BankKind
}

// NewGUISetterDivisional returns a divisional setter piston.
func NewGUISetterDivisional(man *Manual, number int, bank BankKind, m *DisplayMetrics) *GUISetterDivisional {
	return &GUISetterDivisional{GUIButton: newGUIButton(true, m), Manual: man, Number: number, Bank: bank}
}

func (*GUISetterDivisional) guiElement() {}
func (*GUISetterDivisional) Kind() Kind { return KindSetterDivisional }

// TypeName returns the Type= value, e.g. Setter002Divisional003.
func (e *GUISetterDivisional) TypeName() string {
	prefix := "Setter" + ini.Num(manualNumberOf(e.Manual)) + "Divisional"
	switch e.Bank {
	case BankPrev:
		return prefix + "PrevBank"
	case BankNext:
		return prefix + "NextBank"
	}
	return prefix + ini.Num(e.Number)
}

func (e *GUISetterDivisional) ElementName() string { return e.TypeName() }

func (e *GUISetterDivisional) References(x Entity) bool {
	return e.Manual != nil && x == Entity(e.Manual)
}

func (e *GUISetterDivisional) Read(s ini.Section, ctx *Context, m *DisplayMetrics) {
	e.readButtonLayout(s, ctx, m)
}

func (e *GUISetterDivisional) Write(w *ini.Writer, ctx *Context, m *DisplayMetrics) {
	writeType(w, e.TypeName())
	e.writeButtonLayout(w, ctx, m, e.ElementName())
}

func (e *GUISetterDivisional) Clone() Element {
	c := *e
	return &c
}

// GUISetterGeneral is a general setter piston (General01..General99).
type GUISetterGeneral struct {
	GUIButton
	Number int
}

// NewGUISetterGeneral returns a general setter piston.
func NewGUISetterGeneral(number int, m *DisplayMetrics) *GUISetterGeneral {
	return &GUISetterGeneral{GUIButton: newGUIButton(true, m), Number: number}
}

func (*GUISetterGeneral) guiElement() {}
func (*GUISetterGeneral) Kind() Kind { return KindSetterGeneral }
func (e *GUISetterGeneral) ElementName() string { return fmt.Sprintf("General%02d", e.Number) }
func (*GUISetterGeneral) References(Entity) bool { return false }

func (e *GUISetterGeneral) Read(s ini.Section, ctx *Context, m *DisplayMetrics) {
	e.readButtonLayout(s, ctx, m)
}

func (e *GUISetterGeneral) Write(w *ini.Writer, ctx *Context, m *DisplayMetrics) {
	writeType(w, e.ElementName())
	e.writeButtonLayout(w, ctx, m, e.ElementName())
}

func (e *GUISetterGeneral) Clone() Element {
	c := *e
	return &c
}

// GUISetterLabel is a setter display such as PitchLabel. The divisional bank
// display belongs to a manual and is written as Setter%03dDivisionalBank.
type GUISetterLabel struct {
	labelLayout
	TypeName string
	Manual   *Manual
}

// NewGUISetterLabel returns a setter display of the given type.
func NewGUISetterLabel(typeName string) *GUISetterLabel {
	return &GUISetterLabel{labelLayout: newLabelLayout(), TypeName: typeName}
}

// NewGUIDivisionalBankLabel returns the divisional bank display of man.
func NewGUIDivisionalBankLabel(man *Manual) *GUISetterLabel {
	return &GUISetterLabel{labelLayout: newLabelLayout(), Manual: man}
}

func (*GUISetterLabel) guiElement() {}
func (*GUISetterLabel) Kind() Kind { return KindSetterLabel }

func (e *GUISetterLabel) ElementName() string {
	if e.Manual != nil {
		return "Setter" + ini.Num(manualNumberOf(e.Manual)) + "DivisionalBank"
	}
	return e.TypeName
}

func (e *GUISetterLabel) References(x Entity) bool {
	return e.Manual != nil && x == Entity(e.Manual)
}

func (e *GUISetterLabel) Read(s ini.Section, ctx *Context, m *DisplayMetrics) {
	e.labelLayout.read(s, ctx, m)
}

func (e *GUISetterLabel) Write(w *ini.Writer, ctx *Context, _ *DisplayMetrics) {
	writeType(w, e.ElementName())
	e.labelLayout.write(w, ctx)
}

func (e *GUISetterLabel) Clone() Element {
	c := *e
	return &c
}

// manualNumberOf returns the ODF number of a manual attached to an organ.
func manualNumberOf(m *Manual) int {
	if m == nil || m.organ == nil {
		return 0
	}
	return m.organ.ManualNumber(m)
}
