package quarkgl

import "github.com/go-gl/mathgl/mgl32"

// Scalar is the numeric type of the engine.
type Scalar = float32

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z Scalar
}

// Vec4 is a homogeneous vector.
type Vec4 struct {
	X, Y, Z, W Scalar
}

// Mat4 is a column-major 4x4 matrix, m[col*4+row], laid out like mgl32.Mat4
// so the two convert freely.
type Mat4 [16]Scalar

func V3(x, y, z Scalar) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3   { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3   { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s Scalar) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Lerp interpolates from v to o by t.
func (v Vec3) Lerp(o Vec3, t Scalar) Vec3 { return v.Add(o.Sub(v).Mul(t)) }

func (v Vec3) gl() mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

func fromGL(v mgl32.Vec3) Vec3 { return Vec3{v[0], v[1], v[2]} }

func Dot(a, b Vec3) Scalar { return a.gl().Dot(b.gl()) }
func Cross(a, b Vec3) Vec3 { return fromGL(a.gl().Cross(b.gl())) }
func Len(v Vec3) Scalar    { return v.gl().Len() }

// Normalize returns v scaled to unit length; the zero vector stays zero.
func Normalize(v Vec3) Vec3 {
	l := Len(v)
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

func Clamp01(v Scalar) Scalar { return mgl32.Clamp(v, 0, 1) }

func Mat4Identity() Mat4 { return Mat4(mgl32.Ident4()) }

func Mat4Mul(a, b Mat4) Mat4 { return Mat4(mgl32.Mat4(a).Mul4(mgl32.Mat4(b))) }

func Mat4MulV4(m Mat4, v Vec4) Vec4 {
	r := mgl32.Mat4(m).Mul4x1(mgl32.Vec4{v.X, v.Y, v.Z, v.W})
	return Vec4{X: r[0], Y: r[1], Z: r[2], W: r[3]}
}

// Mat4MulPoint transforms a point (w=1).
func Mat4MulPoint(m Mat4, p Vec3) Vec3 {
	return fromGL(mgl32.TransformCoordinate(p.gl(), mgl32.Mat4(m)))
}

func Mat4Translate(v Vec3) Mat4 { return Mat4(mgl32.Translate3D(v.X, v.Y, v.Z)) }
func Mat4Scale(v Vec3) Mat4     { return Mat4(mgl32.Scale3D(v.X, v.Y, v.Z)) }

func Mat4RotateX(rad Scalar) Mat4 { return Mat4(mgl32.HomogRotate3DX(rad)) }
func Mat4RotateY(rad Scalar) Mat4 { return Mat4(mgl32.HomogRotate3DY(rad)) }
func Mat4RotateZ(rad Scalar) Mat4 { return Mat4(mgl32.HomogRotate3DZ(rad)) }

// Mat4LookAt builds a right-handed view matrix. A view direction parallel to
// up yields a degenerate but finite matrix.
func Mat4LookAt(eye, target, up Vec3) Mat4 {
	f := Normalize(target.Sub(eye))
	s := Normalize(Cross(f, up))
	u := Cross(s, f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-Dot(s, eye), -Dot(u, eye), Dot(f, eye), 1,
	}
}

func Mat4Perspective(fovYRad Scalar, aspect Scalar, zNear, zFar Scalar) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	return Mat4(mgl32.Perspective(fovYRad, aspect, zNear, zFar))
}

// Mat4Ortho treats empty ranges as unit ranges.
func Mat4Ortho(left, right, bottom, top, zNear, zFar Scalar) Mat4 {
	if right == left {
		right = left + 1
	}
	if top == bottom {
		top = bottom + 1
	}
	if zFar == zNear {
		zFar = zNear + 1
	}
	return Mat4(mgl32.Ortho(left, right, bottom, top, zNear, zFar))
}

// Mat4FromFloat64 narrows a column-major float64 matrix such as mgl64.Mat4.
func Mat4FromFloat64(m [16]float64) Mat4 {
	var out Mat4
	for i, v := range m {
		out[i] = Scalar(v)
	}
	return out
}
