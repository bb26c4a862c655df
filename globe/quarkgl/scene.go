package quarkgl

// Material describes how a mesh is coloured.
type Material struct {
	BaseColor Color
	Opacity   uint8 // 255 is opaque; 0 on AddMesh means opaque too
	Shade     ShadeMode

	// DoubleSided rasterises clockwise faces as well.
	DoubleSided bool
}

type ShadeMode uint8

const (
	// ShadeFlat lights BaseColor once per triangle.
	ShadeFlat ShadeMode = iota
	// ShadeVertex lights the interpolated vertex colours.
	ShadeVertex
	// ShadeEmissive skips lighting; UniformGlow scales BaseColor.
	ShadeEmissive
)

type Primitive uint8

const (
	PrimTriangles Primitive = iota
	PrimLines
	PrimPoints
)

// Uniform names a per-mesh scalar the renderer reads each frame. All
// uniforms start at 1.
type Uniform uint8

const (
	UniformGlow      Uniform = iota // emissive brightness
	UniformThickness                // local X/Z scale applied before Transform
	UniformOpacity                  // fade towards black

	uniformCount
)

type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

type Light struct {
	Mode      LightMode
	Ambient   Scalar
	Dir       Vec3 // direction the light travels
	DirAmount Scalar
}

type Vertex struct {
	Pos    Vec3
	Normal Vec3
	Color  Color
}

// Mesh is an indexed primitive list. Points may leave Indices empty.
type Mesh struct {
	Enabled   bool
	Primitive Primitive
	Vertices  []Vertex
	Indices   []uint16
	Transform Mat4
	Material  Material

	uniforms [uniformCount]Scalar
}

// Uniform returns the current value of u, or 0 for an unknown uniform.
func (m *Mesh) Uniform(u Uniform) Scalar {
	if u >= uniformCount {
		return 0
	}
	return m.uniforms[u]
}

type slot struct {
	mesh Mesh
	live bool
}

// Scene holds a camera, a light and a fixed number of mesh slots addressed
// by int handle. Handles stay valid until RemoveMesh.
type Scene struct {
	Camera Camera
	Light  Light

	slots []slot
}

// CreateScene returns a scene with room for capacity meshes.
func CreateScene(capacity int) *Scene {
	return &Scene{
		Camera: defaultCamera(),
		Light: Light{
			Mode:      LightAmbientDirectional,
			Ambient:   0.25,
			Dir:       Normalize(V3(1, 1, 1)),
			DirAmount: 0.75,
		},
		slots: make([]slot, max(capacity, 0)),
	}
}

// AddMesh stores m in the first free slot and returns its handle, or -1
// when the scene is full. Zero Transform, Opacity and BaseColor get
// defaults; the mesh starts enabled.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	for i := range s.slots {
		if s.slots[i].live {
			continue
		}
		if m.Transform == (Mat4{}) {
			m.Transform = Mat4Identity()
		}
		if m.Material.Opacity == 0 {
			m.Material.Opacity = 0xFF
		}
		if m.Material.BaseColor == (Color{}) {
			m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
		}
		for u := range m.uniforms {
			m.uniforms[u] = 1
		}
		m.Enabled = true
		s.slots[i] = slot{mesh: m, live: true}
		return i
	}
	return -1
}

func (s *Scene) RemoveMesh(id int) {
	if s.get(id) != nil {
		s.slots[id] = slot{}
	}
}

func (s *Scene) SetMeshEnabled(id int, on bool) {
	if m := s.get(id); m != nil {
		m.Enabled = on
	}
}

func (s *Scene) UpdateMeshTransform(id int, t Mat4) {
	if m := s.get(id); m != nil {
		m.Transform = t
	}
}

// UpdateMeshVertices swaps the vertex data and keeps the indices.
func (s *Scene) UpdateMeshVertices(id int, v []Vertex) {
	if m := s.get(id); m != nil {
		m.Vertices = v
	}
}

// SetUniform is a no-op for unknown handles or uniforms.
func (s *Scene) SetUniform(id int, u Uniform, v Scalar) {
	if m := s.get(id); m != nil && u < uniformCount {
		m.uniforms[u] = v
	}
}

// Mesh returns a copy of the mesh under id.
func (s *Scene) Mesh(id int) (Mesh, bool) {
	if m := s.get(id); m != nil {
		return *m, true
	}
	return Mesh{}, false
}

// Len counts live meshes.
func (s *Scene) Len() int {
	n := 0
	if s != nil {
		for _, sl := range s.slots {
			if sl.live {
				n++
			}
		}
	}
	return n
}

func (s *Scene) get(id int) *Mesh {
	if s == nil || id < 0 || id >= len(s.slots) || !s.slots[id].live {
		return nil
	}
	return &s.slots[id].mesh
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.slots {
		if s.slots[i].live {
			fn(&s.slots[i].mesh)
		}
	}
}
