package overlay

import (
	"image/color"

	"tinygo.org/x/tinyfont"

	"lightglobe/globe/markers"
)

// Projector maps a visual to the screen pixel its label hangs above.
type Projector func(v *markers.Visual) (x, y int, ok bool)

// DrawLabels draws the name tag of every visible label whose font has
// loaded, centered above its projected point. It returns how many were drawn.
func DrawLabels(c Canvas, vs []*markers.Visual, project Projector) int {
	n := 0
	for _, v := range vs {
		if !v.Label.Visible || v.Label.Face == nil {
			continue
		}
		x, y, ok := project(v)
		if !ok {
			continue
		}
		drawLabel(c, v.Label.Face, x, y, v.Label.Text, v.Marker.Color)
		n++
	}
	return n
}

func drawLabel(c Canvas, face tinyfont.Fonter, x, y int, text string, fg color.RGBA) {
	_, w := tinyfont.LineWidth(face, text)
	h := int(face.GetYAdvance())
	const pad, gap = 2, 4

	left := x - int(w)/2 - pad
	top := y - gap - h - 2*pad
	c.FillRectangle(int16(left), int16(top), int16(int(w)+2*pad), int16(h+2*pad), colorLabelBG)
	if fg.A == 0 {
		fg = colorFG
	}
	tinyfont.WriteLine(c, face, int16(left+pad), int16(y-gap-pad), text, fg)
}
