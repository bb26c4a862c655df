package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightglobe/globe/ambient"
	"lightglobe/globe/geo"
	"lightglobe/globe/quarkgl"
)

func newGlobe(t *testing.T) *Globe {
	t.Helper()
	opts := DefaultOptions()
	opts.StarCount = 50
	g := New(opts, zerolog.Nop())
	g.Resize(64, 64)
	return g
}

func TestFrameRoundTrip(t *testing.T) {
	g := newGlobe(t)
	p := mgl64.Vec3{0.3, -0.5, 0.8}
	world := g.Frame().Mul4x1(p.Vec4(1)).Vec3()
	assert.Less(t, g.ToLocal(world).Sub(p).Len(), 1e-12)

	// The north pole leans towards +X under a negative Z tilt.
	north := g.Frame().Mul4x1(mgl64.Vec4{0, 1, 0, 1})
	assert.Greater(t, north[0], 0.3)
}

func TestHitSurfaceThroughCenter(t *testing.T) {
	g := newGlobe(t)
	local, ok := g.HitSurface(g.PickRay(0, 0))
	require.True(t, ok)
	assert.InDelta(t, 1.0, local.Len(), 0.02)

	// Facing +Z in world; back to globe-local through the tilt.
	want := g.ToLocal(mgl64.Vec3{0, 0, 1})
	assert.Less(t, local.Sub(want).Len(), 0.02)
}

func TestHitSurfaceMiss(t *testing.T) {
	g := newGlobe(t)
	_, ok := g.HitSurface(g.PickRay(0.95, 0.95))
	assert.False(t, ok)
}

func TestEarthVerticesFollowProjection(t *testing.T) {
	g := newGlobe(t)
	m, ok := g.Scene().Mesh(g.Earth())
	require.True(t, ok)

	row := g.opts.Slices + 1
	i := (g.opts.Stacks/2)*row + g.opts.Slices/4 // lat 0, lon -90
	d := geo.Project(0, -90).Direction
	v := m.Vertices[i].Pos
	assert.InDelta(t, d[0], v.X, 1e-6)
	assert.InDelta(t, d[1], v.Y, 1e-6)
	assert.InDelta(t, d[2], v.Z, 1e-6)
}

func TestApplyTextureSamplesEquirect(t *testing.T) {
	g := newGlobe(t)
	tex := image.NewRGBA(image.Rect(0, 0, 2, 1))
	tex.Set(0, 0, color.RGBA{R: 0xff, A: 0xff})
	tex.Set(1, 0, color.RGBA{B: 0xff, A: 0xff})
	g.ApplyTexture(tex)

	m, _ := g.Scene().Mesh(g.Earth())
	row := g.opts.Slices + 1
	west := m.Vertices[(g.opts.Stacks/2)*row+g.opts.Slices/4]
	east := m.Vertices[(g.opts.Stacks/2)*row+3*g.opts.Slices/4]
	assert.Equal(t, quarkgl.RGB(0xff, 0, 0), west.Color)
	assert.Equal(t, quarkgl.RGB(0, 0, 0xff), east.Color)
}

func TestSyncFadesStars(t *testing.T) {
	g := newGlobe(t)
	m, _ := g.Scene().Mesh(g.stars)
	assert.False(t, m.Enabled)

	g.Sync(ambient.Effects{StarOpacity: 0.5, CloudAngle: 0.1})
	m, _ = g.Scene().Mesh(g.stars)
	assert.True(t, m.Enabled)
	assert.InDelta(t, 0.5, m.Uniform(quarkgl.UniformOpacity), 1e-6)

	before, _ := g.Scene().Mesh(g.clouds)
	g.Sync(ambient.Effects{StarOpacity: 0.5, CloudAngle: 0.2})
	after, _ := g.Scene().Mesh(g.clouds)
	assert.NotEqual(t, before.Transform, after.Transform)
}

func TestRotateKeepsDistance(t *testing.T) {
	g := newGlobe(t)
	g.Rotate(0.4, 0.2)
	p := g.Camera().Position
	assert.InDelta(t, 5.0, quarkgl.Len(p), 1e-4)
	assert.NotEqual(t, quarkgl.Scalar(0), p.X)

	g.Zoom(-1)
	assert.InDelta(t, 4.0, quarkgl.Len(g.Camera().Position), 1e-4)
}

func TestProjectCenter(t *testing.T) {
	g := newGlobe(t)
	x, y, ok := g.Project(mgl64.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 32, x, 1)
	assert.InDelta(t, 32, y, 1)
}
