package quarkgl

import (
	"math"
	"sort"
)

// Ray is a half-line in world space. Dir is expected to be normalized.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t Scalar) Vec3 { return r.Origin.Add(r.Dir.Mul(t)) }

// Hit is a ray/mesh intersection in world space.
type Hit struct {
	Mesh     int
	Point    Vec3
	Distance Scalar
}

// Ray builds a world-space ray through a point in normalized device
// coordinates (-1..1, +Y up), like a raycaster set from the camera.
func (c Camera) Ray(ndcX, ndcY Scalar, aspect Scalar) Ray {
	if aspect == 0 {
		aspect = 1
	}
	f := Normalize(c.Target.Sub(c.Position))
	s := Normalize(Cross(f, c.up()))
	u := Cross(s, f)

	if c.Type == CameraOrtho {
		size := c.orthoSize()
		origin := c.Position.Add(s.Mul(ndcX * size * aspect)).Add(u.Mul(ndcY * size))
		return Ray{Origin: origin, Dir: f}
	}

	tanHalf := Scalar(math.Tan(float64(c.fovY()) / 2))
	dir := f.Add(s.Mul(ndcX * tanHalf * aspect)).Add(u.Mul(ndcY * tanHalf))
	return Ray{Origin: c.Position, Dir: Normalize(dir)}
}

// IntersectRay intersects r with the triangles of mesh id and returns the
// hits sorted nearest first. Disabled, missing or non-triangle meshes yield
// no hits.
func (s *Scene) IntersectRay(r Ray, id int) []Hit {
	m := s.get(id)
	if m == nil || !m.Enabled || m.Primitive != PrimTriangles {
		return nil
	}
	var hits []Hit
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri, ok := m.triangle(i)
		if !ok {
			continue
		}
		a := Mat4MulPoint(m.Transform, tri[0].Pos)
		b := Mat4MulPoint(m.Transform, tri[1].Pos)
		c := Mat4MulPoint(m.Transform, tri[2].Pos)
		t, ok := intersectTriangle(r, a, b, c)
		if !ok {
			continue
		}
		hits = append(hits, Hit{Mesh: id, Point: r.At(t), Distance: t})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return dedupeHits(hits)
}

// dedupeHits drops hits at the same distance as their predecessor. One ray
// meets one point per distance, so these are a crossing through an edge or
// vertex shared by neighbouring triangles.
func dedupeHits(hits []Hit) []Hit {
	const eps = 1e-5
	out := hits[:0]
	for i, h := range hits {
		if i > 0 && h.Distance-out[len(out)-1].Distance <= eps {
			continue
		}
		out = append(out, h)
	}
	return out
}

// intersectTriangle is the Möller–Trumbore test; both faces count.
func intersectTriangle(r Ray, a, b, c Vec3) (Scalar, bool) {
	const eps = 1e-7
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := Cross(r.Dir, e2)
	det := Dot(e1, p)
	if det > -eps && det < eps {
		return 0, false
	}
	inv := 1 / det
	tv := r.Origin.Sub(a)
	u := Dot(tv, p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := Cross(tv, e1)
	v := Dot(r.Dir, q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := Dot(e2, q) * inv
	if t <= eps {
		return 0, false
	}
	return t, true
}

// ProjectPoint maps a world-space point to pixel coordinates on a w×h
// target. ok is false for points behind the camera.
func (s *Scene) ProjectPoint(p Vec3, w, h int) (x, y int, ok bool) {
	if s == nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	vp := Mat4Mul(s.Camera.Projection(Scalar(w)/Scalar(h)), s.Camera.View())
	sv, ok := toScreen(vp, p, w, h)
	return sv.x, sv.y, ok
}
