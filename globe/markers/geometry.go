package markers

import (
	"math"

	"lightglobe/globe/quarkgl"
)

// cylinderMesh builds an open tube along +Y from y=0 to y=length. The base
// sits at the local origin so scaling Y grows the tube away from the surface.
func cylinderMesh(radius, length float32, segments int, c quarkgl.Color) quarkgl.Mesh {
	if segments < 3 {
		segments = 3
	}
	verts := make([]quarkgl.Vertex, 0, segments*2)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x := float32(math.Cos(a))
		z := float32(math.Sin(a))
		n := quarkgl.V3(x, 0, z)
		verts = append(verts,
			quarkgl.Vertex{Pos: quarkgl.V3(x*radius, 0, z*radius), Normal: n, Color: c},
			quarkgl.Vertex{Pos: quarkgl.V3(x*radius, length, z*radius), Normal: n, Color: c},
		)
	}
	idx := make([]uint16, 0, segments*6)
	for i := 0; i < segments; i++ {
		b0 := uint16(i * 2)
		t0 := b0 + 1
		b1 := uint16(((i + 1) % segments) * 2)
		t1 := b1 + 1
		idx = append(idx, b0, t0, b1, b1, t0, t1)
	}
	return quarkgl.Mesh{
		Primitive: quarkgl.PrimTriangles,
		Vertices:  verts,
		Indices:   idx,
		Material: quarkgl.Material{
			BaseColor:   c,
			Shade:       quarkgl.ShadeEmissive,
			DoubleSided: true,
		},
	}
}

// coneMesh builds a closed cone with its disc at y=0 and apex at y=height.
func coneMesh(radius, height float32, segments int, c quarkgl.Color) quarkgl.Mesh {
	if segments < 3 {
		segments = 3
	}
	verts := make([]quarkgl.Vertex, 0, segments+2)
	verts = append(verts,
		quarkgl.Vertex{Pos: quarkgl.V3(0, height, 0), Normal: quarkgl.V3(0, 1, 0), Color: c},
		quarkgl.Vertex{Pos: quarkgl.V3(0, 0, 0), Normal: quarkgl.V3(0, -1, 0), Color: c},
	)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x := float32(math.Cos(a))
		z := float32(math.Sin(a))
		verts = append(verts, quarkgl.Vertex{
			Pos:    quarkgl.V3(x*radius, 0, z*radius),
			Normal: quarkgl.Normalize(quarkgl.V3(x, radius/height, z)),
			Color:  c,
		})
	}
	const apex, center = 0, 1
	idx := make([]uint16, 0, segments*6)
	for i := 0; i < segments; i++ {
		r0 := uint16(2 + i)
		r1 := uint16(2 + (i+1)%segments)
		idx = append(idx, apex, r1, r0, center, r0, r1)
	}
	return quarkgl.Mesh{
		Primitive: quarkgl.PrimTriangles,
		Vertices:  verts,
		Indices:   idx,
		Material: quarkgl.Material{
			BaseColor:   c,
			Shade:       quarkgl.ShadeEmissive,
			DoubleSided: true,
		},
	}
}
