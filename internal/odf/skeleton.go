package odf

import (
	"fmt"

	"github.com/aidanlsb/odfkit/internal/organ"
)

var manualNames = []string{"Great", "Swell", "Choir", "Solo", "Echo", "Bombarde"}

// Skeleton returns an organ with one windchest group and the given number
// of keyboards, the pedal not counted. Its main panel shows the church name
// and every keyboard.
func Skeleton(church string, manuals int, pedals bool) *organ.Organ {
	o := organ.New()
	o.ChurchName = church
	o.AddWindchestGroup(organ.NewWindchestGroup("Main"))
	if pedals {
		o.AddManual(organ.NewManual("Pedal"))
	}
	for i := 0; i < manuals; i++ {
		name := fmt.Sprintf("Manual %d", i+1)
		if i < len(manualNames) {
			name = manualNames[i]
		}
		o.AddManual(organ.NewManual(name))
	}

	main := o.MainPanel()
	main.Name = church
	main.AddGUIElement(organ.NewGUILabel(church))
	for _, m := range o.Manuals() {
		main.AddGUIElement(organ.NewGUIManual(m))
	}
	o.SetHasPedals(pedals)
	return o
}
