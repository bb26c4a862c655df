package quarkgl

import "image/color"

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// FromRGBA converts an image/color value.
func FromRGBA(c color.RGBA) Color { return Color{R: c.R, G: c.G, B: c.B, A: c.A} }

// MulScalar scales the color channels by s clamped to 0..1.
func (c Color) MulScalar(s Scalar) Color {
	return c.Scale(Clamp01(s))
}

// Scale multiplies the color channels by s, saturating at 255.
// Values above 1 brighten the color.
func (c Color) Scale(s Scalar) Color {
	if s <= 0 {
		return Color{A: c.A}
	}
	mul := func(ch uint8) uint8 {
		v := float32(ch) * s
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// Lerp blends from c towards o by t in 0..1.
func (c Color) Lerp(o Color, t Scalar) Color {
	t = Clamp01(t)
	mix := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*t)
	}
	return Color{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B), A: mix(c.A, o.A)}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// ToRGBA returns the image/color form.
func (c Color) ToRGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A} }
