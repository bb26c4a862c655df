package scene

import (
	"image"
	"math"
	"math/rand"

	"lightglobe/globe/geo"
	"lightglobe/globe/quarkgl"
)

var (
	colorOcean = quarkgl.RGB(0x12, 0x3a, 0x6b)
	colorLand  = quarkgl.RGB(0x3d, 0x6b, 0x3a)
	colorIce   = quarkgl.RGB(0xe8, 0xee, 0xf2)
	colorCloud = quarkgl.RGB(0xf4, 0xf6, 0xf8)
	colorGlow  = quarkgl.RGB(0x4f, 0xa8, 0xff)
	colorStar  = quarkgl.RGB(0xff, 0xff, 0xff)
)

// sphereGrid returns the latitude/longitude of every grid vertex, row by row
// from the north pole. Rows hold slices+1 vertices so the seam has its own
// column on each side.
func sphereGrid(stacks, slices int) [][2]float64 {
	out := make([][2]float64, 0, (stacks+1)*(slices+1))
	for i := 0; i <= stacks; i++ {
		lat := 90 - 180*float64(i)/float64(stacks)
		for j := 0; j <= slices; j++ {
			lon := -180 + 360*float64(j)/float64(slices)
			out = append(out, [2]float64{lat, lon})
		}
	}
	return out
}

// sphereIndices winds each quad counter-clockwise seen from outside.
func sphereIndices(stacks, slices int) []uint16 {
	row := slices + 1
	idx := make([]uint16, 0, stacks*slices*6)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint16(i*row + j)
			b := a + uint16(row)
			c := a + 1
			d := b + 1
			idx = append(idx, a, b, c, c, b, d)
		}
	}
	return idx
}

// earthMesh builds the unit sphere with vertices placed by geo.Project, so
// texture texels and markers agree on where a coordinate lies.
func earthMesh(stacks, slices int, tex image.Image) quarkgl.Mesh {
	grid := sphereGrid(stacks, slices)
	verts := make([]quarkgl.Vertex, len(grid))
	for i, ll := range grid {
		d := geo.Project(ll[0], ll[1]).Direction
		p := quarkgl.V3(quarkgl.Scalar(d[0]), quarkgl.Scalar(d[1]), quarkgl.Scalar(d[2]))
		verts[i] = quarkgl.Vertex{Pos: p, Normal: p, Color: surfaceColor(tex, ll[0], ll[1])}
	}
	return quarkgl.Mesh{
		Primitive: quarkgl.PrimTriangles,
		Vertices:  verts,
		Indices:   sphereIndices(stacks, slices),
		Material:  quarkgl.Material{BaseColor: colorOcean, Shade: quarkgl.ShadeVertex},
	}
}

// recolor samples tex for every earth vertex.
func recolor(verts []quarkgl.Vertex, stacks, slices int, tex image.Image) []quarkgl.Vertex {
	grid := sphereGrid(stacks, slices)
	out := make([]quarkgl.Vertex, len(verts))
	copy(out, verts)
	for i := range out {
		if i >= len(grid) {
			break
		}
		out[i].Color = surfaceColor(tex, grid[i][0], grid[i][1])
	}
	return out
}

func surfaceColor(tex image.Image, lat, lon float64) quarkgl.Color {
	if tex != nil {
		return sample(tex, lat, lon)
	}
	return procedural(lat, lon)
}

// sample reads the nearest texel of an equirectangular image.
func sample(tex image.Image, lat, lon float64) quarkgl.Color {
	b := tex.Bounds()
	if b.Empty() {
		return procedural(lat, lon)
	}
	u, v := geo.TextureUV(lat, lon)
	x := b.Min.X + int(u*float64(b.Dx()))
	y := b.Min.Y + int(v*float64(b.Dy()))
	if x >= b.Max.X {
		x = b.Max.X - 1
	}
	if y >= b.Max.Y {
		y = b.Max.Y - 1
	}
	r, g, bl, _ := tex.At(x, y).RGBA()
	return quarkgl.RGB(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
}

// procedural paints ice caps and a few smooth land masses when no texture
// is available.
func procedural(lat, lon float64) quarkgl.Color {
	if math.Abs(lat) > 72 {
		return colorIce
	}
	la := lat * math.Pi / 180
	lo := lon * math.Pi / 180
	n := math.Sin(2*lo+0.6)*math.Cos(3*la) + 0.6*math.Sin(5*lo-1.3)*math.Sin(2*la+0.4)
	if n > 0.45 {
		return colorLand
	}
	return colorOcean
}

// cloudMesh keeps a random subset of sphere cells. The rest of the grid is
// never drawn.
func cloudMesh(stacks, slices int, cover float64, rng *rand.Rand) quarkgl.Mesh {
	grid := sphereGrid(stacks, slices)
	verts := make([]quarkgl.Vertex, len(grid))
	for i, ll := range grid {
		d := geo.Project(ll[0], ll[1]).Direction
		p := quarkgl.V3(quarkgl.Scalar(d[0]), quarkgl.Scalar(d[1]), quarkgl.Scalar(d[2]))
		verts[i] = quarkgl.Vertex{Pos: p, Normal: p, Color: colorCloud}
	}
	all := sphereIndices(stacks, slices)
	idx := make([]uint16, 0, len(all)/2)
	for q := 0; q+5 < len(all); q += 6 {
		if rng.Float64() < cover {
			idx = append(idx, all[q:q+6]...)
		}
	}
	return quarkgl.Mesh{
		Primitive: quarkgl.PrimTriangles,
		Vertices:  verts,
		Indices:   idx,
		Material:  quarkgl.Material{BaseColor: colorCloud, Opacity: 0xCC},
	}
}

// glowMesh is a lat/long line cage drawn additively brighter than the
// surface.
func glowMesh(stacks, slices int) quarkgl.Mesh {
	grid := sphereGrid(stacks, slices)
	verts := make([]quarkgl.Vertex, len(grid))
	for i, ll := range grid {
		d := geo.Project(ll[0], ll[1]).Direction
		verts[i] = quarkgl.Vertex{Pos: quarkgl.V3(quarkgl.Scalar(d[0]), quarkgl.Scalar(d[1]), quarkgl.Scalar(d[2]))}
	}
	row := slices + 1
	var idx []uint16
	for i := 1; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint16(i*row + j)
			idx = append(idx, a, a+1)
		}
	}
	for j := 0; j < slices; j += 2 {
		for i := 0; i < stacks; i++ {
			a := uint16(i*row + j)
			idx = append(idx, a, a+uint16(row))
		}
	}
	return quarkgl.Mesh{
		Primitive: quarkgl.PrimLines,
		Vertices:  verts,
		Indices:   idx,
		Material:  quarkgl.Material{BaseColor: colorGlow, Shade: quarkgl.ShadeEmissive},
	}
}

// starMesh scatters points in a shell between rMin and rMax.
func starMesh(n int, rMin, rMax float64, rng *rand.Rand) quarkgl.Mesh {
	verts := make([]quarkgl.Vertex, 0, n)
	for i := 0; i < n; i++ {
		// Uniform direction on the sphere.
		z := 2*rng.Float64() - 1
		a := 2 * math.Pi * rng.Float64()
		s := math.Sqrt(1 - z*z)
		r := rMin + (rMax-rMin)*rng.Float64()
		lum := 0.5 + 0.5*rng.Float64()
		verts = append(verts, quarkgl.Vertex{
			Pos:   quarkgl.V3(quarkgl.Scalar(r*s*math.Cos(a)), quarkgl.Scalar(r*s*math.Sin(a)), quarkgl.Scalar(r*z)),
			Color: colorStar.Scale(quarkgl.Scalar(lum)),
		})
	}
	return quarkgl.Mesh{
		Primitive: quarkgl.PrimPoints,
		Vertices:  verts,
		Material:  quarkgl.Material{BaseColor: colorStar, Shade: quarkgl.ShadeVertex},
	}
}
