// Package overlay draws the marker list and the focused marker's label on
// top of the rendered globe.
package overlay

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// Canvas is what the overlay draws on: a tinyfont display that can also fill
// rectangles.
type Canvas interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Surface adapts an *image.RGBA to Canvas. Writes outside the image are
// dropped.
type Surface struct {
	img *image.RGBA
}

func NewSurface(img *image.RGBA) *Surface {
	return &Surface{img: img}
}

// SetImage retargets the surface, e.g. after a resize.
func (s *Surface) SetImage(img *image.RGBA) { s.img = img }

func (s *Surface) Size() (x, y int16) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (s *Surface) SetPixel(x, y int16, c color.RGBA) {
	if s.img == nil {
		return
	}
	b := s.img.Bounds()
	ix, iy := int(x), int(y)
	if ix < 0 || iy < 0 || ix >= b.Dx() || iy >= b.Dy() {
		return
	}
	off := iy*s.img.Stride + ix*4
	s.img.Pix[off+0] = c.R
	s.img.Pix[off+1] = c.G
	s.img.Pix[off+2] = c.B
	s.img.Pix[off+3] = 0xFF
}

func (s *Surface) Display() error { return nil }

func (s *Surface) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if s.img == nil {
		return nil
	}
	b := s.img.Bounds()
	x0 := clampInt(int(x), 0, b.Dx())
	y0 := clampInt(int(y), 0, b.Dy())
	x1 := clampInt(int(x)+int(width), 0, b.Dx())
	y1 := clampInt(int(y)+int(height), 0, b.Dy())
	for py := y0; py < y1; py++ {
		row := s.img.Pix[py*s.img.Stride:]
		for px := x0; px < x1; px++ {
			o := px * 4
			row[o+0] = c.R
			row[o+1] = c.G
			row[o+2] = c.B
			row[o+3] = 0xFF
		}
	}
	return nil
}

func (s *Surface) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
