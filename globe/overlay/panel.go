package overlay

import (
	"image"
	"image/color"

	"tinygo.org/x/tinyfont"

	"lightglobe/globe/markers"
)

var (
	colorPanelBG = color.RGBA{R: 0x08, G: 0x0c, B: 0x14, A: 0xff}
	colorFG      = color.RGBA{R: 0xe6, G: 0xf8, B: 0xff, A: 0xff}
	colorHoverBG = color.RGBA{R: 0x1c, G: 0x30, B: 0x48, A: 0xff}
	colorFocusBG = color.RGBA{R: 0xe6, G: 0xf8, B: 0xff, A: 0xff}
	colorFocusFG = color.RGBA{R: 0x08, G: 0x0c, B: 0x14, A: 0xff}
	colorLabelBG = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
)

const (
	defaultRowHeight = 12
	minPanelWidth    = 64
)

// Row is one list entry.
type Row struct {
	ID   string
	Text string
}

// RowsFrom lists visuals in the given order, which for Registry.Visuals is
// creation order.
func RowsFrom(vs []*markers.Visual) []Row {
	rows := make([]Row, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, Row{ID: v.Marker.ID, Text: v.Marker.DisplayName()})
	}
	return rows
}

// Panel is the clickable marker list anchored at its top-left corner.
type Panel struct {
	X, Y int16
	Pad  int16

	face  tinyfont.Fonter
	rows  []Row
	width int16
}

func NewPanel(x, y int16) *Panel {
	return &Panel{X: x, Y: y, Pad: 3, width: minPanelWidth}
}

// SetFace sets the list font. Until a face is set the list is laid out but
// not drawn.
func (p *Panel) SetFace(f tinyfont.Fonter) {
	p.face = f
	p.layout()
}

func (p *Panel) Face() tinyfont.Fonter { return p.face }

func (p *Panel) SetRows(rows []Row) {
	p.rows = append(p.rows[:0], rows...)
	p.layout()
}

func (p *Panel) Rows() []Row { return p.rows }

func (p *Panel) layout() {
	p.width = minPanelWidth
	if p.face == nil {
		return
	}
	for _, r := range p.rows {
		_, w := tinyfont.LineWidth(p.face, r.Text)
		if int16(w)+2*p.Pad > p.width {
			p.width = int16(w) + 2*p.Pad
		}
	}
}

func (p *Panel) rowHeight() int16 {
	if p.face == nil {
		return defaultRowHeight
	}
	return int16(p.face.GetYAdvance()) + p.Pad
}

// Bounds is the screen area covered by the list.
func (p *Panel) Bounds() image.Rectangle {
	rh := int(p.rowHeight())
	return image.Rect(int(p.X), int(p.Y), int(p.X)+int(p.width), int(p.Y)+rh*len(p.rows))
}

// HitTest returns the row under pixel (x, y).
func (p *Panel) HitTest(x, y int) (string, bool) {
	if !image.Pt(x, y).In(p.Bounds()) {
		return "", false
	}
	i := (y - int(p.Y)) / int(p.rowHeight())
	return p.rows[i].ID, true
}

// Draw paints the list. The focused row is inverted; the hovered row gets a
// lighter background.
func (p *Panel) Draw(c Canvas, hovered, focused string) {
	if p.face == nil || len(p.rows) == 0 {
		return
	}
	rh := p.rowHeight()
	c.FillRectangle(p.X, p.Y, p.width, rh*int16(len(p.rows)), colorPanelBG)
	for i, r := range p.rows {
		top := p.Y + int16(i)*rh
		fg := colorFG
		switch r.ID {
		case focused:
			c.FillRectangle(p.X, top, p.width, rh, colorFocusBG)
			fg = colorFocusFG
		case hovered:
			c.FillRectangle(p.X, top, p.width, rh, colorHoverBG)
		}
		// WriteLine takes the baseline.
		tinyfont.WriteLine(c, p.face, p.X+p.Pad, top+rh-p.Pad, r.Text, fg)
	}
}
