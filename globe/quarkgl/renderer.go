package quarkgl

// farDepth is the cleared depth value; projected depths live in [0,1].
const farDepth = 1e9

// minClipW rejects vertices on or behind the camera plane.
const minClipW = 1e-6

// Renderer is a fixed-pipeline software rasterizer. Reuse one across frames;
// the depth buffer grows to the largest target it has seen.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	zbuf []float32
	w, h int
}

// NewRenderer preallocates depth for a w×h target when depth is enabled.
// Zero sizes are fine; Render sizes the buffer per target.
func NewRenderer(w, h int, depth bool) *Renderer {
	r := &Renderer{Mode: RenderSolid, Depth: depth, ClearColor: RGB(0, 0, 0)}
	if depth {
		r.reset(w, h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

func (r *Renderer) reset(w, h int) {
	r.w, r.h = max(w, 0), max(h, 0)
	n := r.w * r.h
	if cap(r.zbuf) < n {
		r.zbuf = make([]float32, n)
	}
	r.zbuf = r.zbuf[:n]
	for i := range r.zbuf {
		r.zbuf[i] = farDepth
	}
}

// screenVert is a vertex after projection: pixel position, depth in NDC and
// the colour it carries into the fill.
type screenVert struct {
	x, y int
	z    float32
	c    Color
}

// frame is the per-mesh state shared by the primitive loops.
type frame struct {
	t    Target
	w, h int
	mvp  Mat4
}

func (f frame) vert(p Vec3) (screenVert, bool) {
	return toScreen(f.mvp, p, f.w, f.h)
}

// Render clears t and draws every enabled mesh of s into it.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)
	if r.Depth {
		r.reset(w, h)
	} else {
		r.zbuf = nil
	}

	vp := Mat4Mul(s.Camera.Projection(Scalar(w)/Scalar(h)), s.Camera.View())
	s.eachMesh(func(m *Mesh) {
		if m != nil && m.Enabled {
			r.drawMesh(t, w, h, vp, m, s.Light)
		}
	})
}

func (r *Renderer) drawMesh(t Target, w, h int, vp Mat4, m *Mesh, light Light) {
	if len(m.Vertices) == 0 {
		return
	}
	alpha := m.Uniform(UniformOpacity) * Scalar(m.Material.Opacity) / 255
	if alpha <= 0 {
		return
	}
	model := m.Transform
	if model == (Mat4{}) {
		model = Mat4Identity()
	}
	if th := m.Uniform(UniformThickness); th > 0 && th != 1 {
		model = Mat4Mul(model, Mat4Scale(V3(th, 1, th)))
	}
	f := frame{t: t, w: w, h: h, mvp: Mat4Mul(vp, model)}

	switch m.Primitive {
	case PrimPoints:
		r.drawPoints(f, m, alpha)
	case PrimLines:
		r.drawLines(f, m, alpha)
	default:
		r.drawTriangles(f, m, model, light, alpha)
	}
}

func (r *Renderer) drawTriangles(f frame, m *Mesh, model Mat4, light Light, alpha Scalar) {
	mat := m.Material
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri, ok := m.triangle(i)
		if !ok {
			continue
		}
		var sv [3]screenVert
		visible := true
		for k, v := range tri {
			sv[k], ok = f.vert(v.Pos)
			visible = visible && ok
			sv[k].c = v.Color
		}
		if !visible {
			continue
		}

		shade := Scalar(1)
		switch {
		case mat.Shade == ShadeEmissive:
			shade = m.Uniform(UniformGlow)
		case light.Mode == LightAmbientDirectional:
			n := faceNormal(
				Mat4MulPoint(model, tri[0].Pos),
				Mat4MulPoint(model, tri[1].Pos),
				Mat4MulPoint(model, tri[2].Pos),
			)
			shade = diffuse(light, n)
		}
		shade *= alpha

		if r.Mode == RenderWireframe {
			c := mat.BaseColor.Scale(shade)
			for k := range sv {
				r.line(f, sv[k], sv[(k+1)%3], c)
			}
			continue
		}
		if cross2(sv[0], sv[1], sv[2]) < 0 {
			if !mat.DoubleSided {
				continue
			}
			sv[1], sv[2] = sv[2], sv[1]
		}
		if mat.Shade == ShadeVertex {
			for k := range sv {
				sv[k].c = sv[k].c.Scale(shade)
			}
			r.fill(f, sv, nil)
			continue
		}
		flat := mat.BaseColor.Scale(shade)
		r.fill(f, sv, &flat)
	}
}

func (m *Mesh) triangle(i int) ([3]Vertex, bool) {
	var tri [3]Vertex
	for k := range tri {
		idx := int(m.Indices[i+k])
		if idx >= len(m.Vertices) {
			return tri, false
		}
		tri[k] = m.Vertices[idx]
	}
	return tri, true
}

func (r *Renderer) drawLines(f frame, m *Mesh, alpha Scalar) {
	c := m.Material.BaseColor.Scale(m.Uniform(UniformGlow) * alpha)
	for i := 0; i+1 < len(m.Indices); i += 2 {
		a, b := int(m.Indices[i]), int(m.Indices[i+1])
		if a >= len(m.Vertices) || b >= len(m.Vertices) {
			continue
		}
		sa, okA := f.vert(m.Vertices[a].Pos)
		sb, okB := f.vert(m.Vertices[b].Pos)
		if okA && okB {
			r.line(f, sa, sb, c)
		}
	}
}

func (r *Renderer) drawPoints(f frame, m *Mesh, alpha Scalar) {
	glow := m.Uniform(UniformGlow) * alpha
	for _, v := range m.Vertices {
		p, ok := f.vert(v.Pos)
		if !ok || p.x < 0 || p.y < 0 || p.x >= f.w || p.y >= f.h || !r.testDepth(p.x, p.y, p.z) {
			continue
		}
		c := v.Color
		if c == (Color{}) {
			c = m.Material.BaseColor
		}
		f.t.SetPixel(p.x, p.y, c.Scale(glow))
	}
}

// toScreen projects p through mvp onto a w×h pixel grid with y down.
func toScreen(mvp Mat4, p Vec3, w, h int) (screenVert, bool) {
	cp := Mat4MulV4(mvp, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if cp.W <= minClipW {
		return screenVert{}, false
	}
	inv := 1 / cp.W
	nx, ny := cp.X*inv, cp.Y*inv
	return screenVert{
		x: int((nx*0.5+0.5)*float32(w-1) + 0.5),
		y: int((0.5-ny*0.5)*float32(h-1) + 0.5),
		z: cp.Z * inv,
	}, true
}

func faceNormal(a, b, c Vec3) Vec3 { return Normalize(Cross(b.Sub(a), c.Sub(a))) }

func diffuse(l Light, n Vec3) Scalar {
	amb := Clamp01(l.Ambient)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	return Clamp01(amb + max(0, -Dot(n, ld))*Clamp01(l.DirAmount))
}

// testDepth maps NDC z to [0,1] and keeps the fragment if it is nearer than
// what the buffer holds.
func (r *Renderer) testDepth(x, y int, z float32) bool {
	if r.zbuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return false
	}
	d := Clamp01(z*0.5 + 0.5)
	i := y*r.w + x
	if d >= r.zbuf[i] {
		return false
	}
	r.zbuf[i] = d
	return true
}

// line is Bresenham with depth interpolated along the major axis.
func (r *Renderer) line(f frame, a, b screenVert, c Color) {
	dx, dy := abs(b.x-a.x), -abs(b.y-a.y)
	sx, sy := sign(b.x-a.x), sign(b.y-a.y)
	steps := max(dx, -dy)
	if steps > 4*f.w {
		return
	}
	x, y := a.x, a.y
	e := dx + dy
	for i := 0; ; i++ {
		z := a.z
		if steps > 0 {
			z += (b.z - a.z) * float32(i) / float32(steps)
		}
		if x >= 0 && y >= 0 && x < f.w && r.testDepth(x, y, z) {
			f.t.SetPixel(x, y, c)
		}
		if x == b.x && y == b.y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// fill rasterises a counter-clockwise triangle. A nil flat colour
// interpolates the vertex colours barycentrically.
func (r *Renderer) fill(f frame, v [3]screenVert, flat *Color) {
	x0 := max(0, min(v[0].x, v[1].x, v[2].x))
	x1 := min(f.w-1, max(v[0].x, v[1].x, v[2].x))
	y0 := max(0, min(v[0].y, v[1].y, v[2].y))
	y1 := min(f.h-1, max(v[0].y, v[1].y, v[2].y))
	area := cross2(v[0], v[1], v[2])
	if x0 > x1 || y0 > y1 || area == 0 {
		return
	}
	inv := 1 / float32(area)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := screenVert{x: x, y: y}
			w0, w1, w2 := cross2(v[1], v[2], p), cross2(v[2], v[0], p), cross2(v[0], v[1], p)
			if w0|w1|w2 < 0 {
				continue
			}
			b := [3]float32{float32(w0) * inv, float32(w1) * inv, float32(w2) * inv}
			if !r.testDepth(x, y, b[0]*v[0].z+b[1]*v[1].z+b[2]*v[2].z) {
				continue
			}
			if flat != nil {
				f.t.SetPixel(x, y, *flat)
				continue
			}
			f.t.SetPixel(x, y, blend3(b, v[0].c, v[1].c, v[2].c))
		}
	}
}

func blend3(b [3]float32, c0, c1, c2 Color) Color {
	ch := func(a0, a1, a2 uint8) uint8 {
		return uint8(min(255, max(0, b[0]*float32(a0)+b[1]*float32(a1)+b[2]*float32(a2))))
	}
	return Color{R: ch(c0.R, c1.R, c2.R), G: ch(c0.G, c1.G, c2.G), B: ch(c0.B, c1.B, c2.B), A: 0xFF}
}

// cross2 is the signed doubled area of (a, b, p); positive when p lies to the
// left of a→b in screen space.
func cross2(a, b, p screenVert) int {
	return (p.x-a.x)*(b.y-a.y) - (p.y-a.y)*(b.x-a.x)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
