package quarkgl

import "math"

// OrbitController provides basic orbit/zoom interactions for a camera.
//
// It does not depend on any input system; callers feed it deltas.
type OrbitController struct {
	Target Vec3
	Yaw    Scalar
	Pitch  Scalar
	Radius Scalar

	MinRadius Scalar
	MaxRadius Scalar
}

// maxPitch keeps the orbit off the poles where the view basis degenerates.
const maxPitch = Scalar(1.5)

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.clampRadius(c.Radius)
	if r == 0 {
		r = Scalar(3)
	}

	m := Mat4Mul(Mat4RotateY(c.Yaw), Mat4RotateX(c.Pitch))
	p := Mat4MulV4(m, Vec4{X: 0, Y: 0, Z: r, W: 1})

	cam.Position = c.Target.Add(V3(p.X, p.Y, p.Z))
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

// SyncFrom recovers yaw, pitch and radius from the current camera pose so the
// next Apply continues from where another animator left the camera.
func (c *OrbitController) SyncFrom(cam Camera) {
	off := cam.Position.Sub(c.Target)
	r := Len(off)
	if r == 0 {
		return
	}
	c.Radius = c.clampRadius(r)
	c.Pitch = clampPitch(Scalar(-math.Asin(float64(off.Y / r))))
	c.Yaw = Scalar(math.Atan2(float64(off.X), float64(off.Z)))
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch Scalar) {
	c.Yaw += deltaYaw
	c.Pitch = clampPitch(c.Pitch + deltaPitch)
}

func (c *OrbitController) Zoom(delta Scalar) {
	c.Radius = c.clampRadius(c.Radius + delta)
}

func (c *OrbitController) clampRadius(r Scalar) Scalar {
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}
	return r
}

func clampPitch(p Scalar) Scalar {
	if p > maxPitch {
		return maxPitch
	}
	if p < -maxPitch {
		return -maxPitch
	}
	return p
}
