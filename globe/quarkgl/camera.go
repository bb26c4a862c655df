package quarkgl

// CameraType selects the projection.
type CameraType uint8

const (
	CameraPerspective CameraType = iota
	CameraOrtho
)

// Camera is a look-at camera. Zero FOVYRad, OrthoSize and Up fall back to
// 1 rad, 1 and +Y.
type Camera struct {
	Type CameraType

	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad   Scalar
	OrthoSize Scalar // half-height of the ortho volume

	Near, Far Scalar
}

func defaultCamera() Camera {
	return Camera{
		Type:      CameraPerspective,
		Position:  V3(0, 0, 3),
		Up:        V3(0, 1, 0),
		FOVYRad:   1,
		OrthoSize: 1,
		Near:      0.05,
		Far:       100,
	}
}

func (c Camera) View() Mat4 { return Mat4LookAt(c.Position, c.Target, c.up()) }

// Projection returns the projection matrix for a viewport of the given
// width/height ratio.
func (c Camera) Projection(aspect Scalar) Mat4 {
	if c.Type == CameraOrtho {
		hh := c.orthoSize()
		hw := hh * aspect
		return Mat4Ortho(-hw, hw, -hh, hh, c.Near, c.Far)
	}
	return Mat4Perspective(c.fovY(), aspect, c.Near, c.Far)
}

// LookAt re-aims the camera without moving it.
func (c *Camera) LookAt(target Vec3) { c.Target = target }

func (c Camera) up() Vec3 {
	if c.Up == (Vec3{}) {
		return V3(0, 1, 0)
	}
	return c.Up
}

func (c Camera) fovY() Scalar      { return orOne(c.FOVYRad) }
func (c Camera) orthoSize() Scalar { return orOne(c.OrthoSize) }

func orOne(v Scalar) Scalar {
	if v == 0 {
		return 1
	}
	return v
}
