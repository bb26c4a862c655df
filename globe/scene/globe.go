// Package scene assembles the globe: earth, clouds, glow shell and stars,
// plus the camera rig the interaction layer drives.
package scene

import (
	"image"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"lightglobe/globe/ambient"
	"lightglobe/globe/quarkgl"
)

// Options configure the globe.
type Options struct {
	// TiltDeg is the axial tilt about Z.
	TiltDeg float64

	Stacks int
	Slices int

	CloudScale float64
	CloudCover float64
	GlowScale  float64

	StarCount  int
	StarRadius [2]float64

	FOVDeg   float64
	Distance float64

	// MarkerSlots reserves scene capacity for markers.
	MarkerSlots int
	Seed        int64
}

func DefaultOptions() Options {
	return Options{
		TiltDeg:     -23.4,
		Stacks:      24,
		Slices:      48,
		CloudScale:  1.003,
		CloudCover:  0.18,
		GlowScale:   1.01,
		StarCount:   2000,
		StarRadius:  [2]float64{25, 60},
		FOVDeg:      35,
		Distance:    5,
		MarkerSlots: 32,
		Seed:        1,
	}
}

// Globe is the scene context shared by the camera director and the
// interaction controller.
type Globe struct {
	opts Options
	log  zerolog.Logger

	scene *quarkgl.Scene
	orbit quarkgl.OrbitController

	frame   mgl64.Mat4
	inverse mgl64.Mat4

	earth, clouds, glow, stars int

	width, height int
}

// New builds the globe with the procedural surface. ApplyTexture swaps in an
// image once one has loaded.
func New(opts Options, log zerolog.Logger) *Globe {
	g := &Globe{
		opts:   opts,
		log:    log.With().Str("component", "scene").Logger(),
		scene:  quarkgl.CreateScene(4 + opts.MarkerSlots*2),
		frame:  mgl64.HomogRotate3DZ(mgl64.DegToRad(opts.TiltDeg)),
		width:  1,
		height: 1,
	}
	g.inverse = g.frame.Inv()

	cam := &g.scene.Camera
	cam.FOVYRad = quarkgl.Scalar(mgl64.DegToRad(opts.FOVDeg))
	cam.Near = 0.1
	cam.Far = quarkgl.Scalar(opts.StarRadius[1] * 2)
	cam.Position = quarkgl.V3(0, 0, quarkgl.Scalar(opts.Distance))
	cam.Target = quarkgl.Vec3{}

	// Sun from the upper left front.
	g.scene.Light = quarkgl.Light{
		Mode:      quarkgl.LightAmbientDirectional,
		Ambient:   0.35,
		Dir:       quarkgl.Normalize(quarkgl.V3(-2, 0.5, 1.5)),
		DirAmount: 0.75,
	}

	g.orbit = quarkgl.OrbitController{
		Radius:    quarkgl.Scalar(opts.Distance),
		MinRadius: 1.5,
		MaxRadius: quarkgl.Scalar(math.Max(12, opts.Distance)),
	}
	g.orbit.SyncFrom(*cam)

	rng := rand.New(rand.NewSource(opts.Seed))
	g.earth = g.scene.AddMesh(earthMesh(opts.Stacks, opts.Slices, nil))
	g.clouds = g.scene.AddMesh(cloudMesh(opts.Stacks, opts.Slices, opts.CloudCover, rng))
	g.glow = g.scene.AddMesh(glowMesh(opts.Stacks/2, opts.Slices/2))
	g.scene.SetUniform(g.glow, quarkgl.UniformOpacity, 0.35)
	g.stars = g.scene.AddMesh(starMesh(opts.StarCount, opts.StarRadius[0], opts.StarRadius[1], rng))
	g.scene.SetUniform(g.stars, quarkgl.UniformOpacity, 0)

	g.Sync(ambient.Effects{})
	return g
}

func (g *Globe) Scene() *quarkgl.Scene           { return g.scene }
func (g *Globe) Camera() *quarkgl.Camera         { return &g.scene.Camera }
func (g *Globe) Orbit() *quarkgl.OrbitController { return &g.orbit }

// Frame maps globe-local coordinates to world space.
func (g *Globe) Frame() mgl64.Mat4 { return g.frame }

// ToLocal maps a world-space point into globe-local coordinates.
func (g *Globe) ToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return g.inverse.Mul4x1(p.Vec4(1)).Vec3()
}

// Earth returns the surface mesh handle.
func (g *Globe) Earth() int { return g.earth }

// ApplyTexture recolors the surface from an equirectangular image.
func (g *Globe) ApplyTexture(tex image.Image) {
	m, ok := g.scene.Mesh(g.earth)
	if !ok || tex == nil {
		return
	}
	g.scene.UpdateMeshVertices(g.earth, recolor(m.Vertices, g.opts.Stacks, g.opts.Slices, tex))
	g.log.Info().Int("width", tex.Bounds().Dx()).Int("height", tex.Bounds().Dy()).Msg("surface texture applied")
}

// Resize records the viewport used for picking and label projection.
func (g *Globe) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	g.width, g.height = w, h
}

// Size returns the viewport size.
func (g *Globe) Size() (w, h int) { return g.width, g.height }

// Aspect returns the viewport width over height.
func (g *Globe) Aspect() quarkgl.Scalar {
	return quarkgl.Scalar(g.width) / quarkgl.Scalar(g.height)
}

// PickRay returns the world ray through a pointer position in normalized
// device coordinates.
func (g *Globe) PickRay(ndcX, ndcY float64) quarkgl.Ray {
	return g.scene.Camera.Ray(quarkgl.Scalar(ndcX), quarkgl.Scalar(ndcY), g.Aspect())
}

// HitSurface intersects r with the earth and returns the nearest hit in
// globe-local coordinates.
func (g *Globe) HitSurface(r quarkgl.Ray) (mgl64.Vec3, bool) {
	hits := g.scene.IntersectRay(r, g.earth)
	if len(hits) == 0 {
		return mgl64.Vec3{}, false
	}
	p := hits[0].Point
	return g.ToLocal(mgl64.Vec3{float64(p.X), float64(p.Y), float64(p.Z)}), true
}

// Project maps a world point to viewport pixels.
func (g *Globe) Project(p mgl64.Vec3) (x, y int, ok bool) {
	return g.scene.ProjectPoint(quarkgl.V3(quarkgl.Scalar(p[0]), quarkgl.Scalar(p[1]), quarkgl.Scalar(p[2])), g.width, g.height)
}

// Rotate turns the orbit camera by pointer deltas in radians.
func (g *Globe) Rotate(dYaw, dPitch float64) {
	g.orbit.Rotate(quarkgl.Scalar(dYaw), quarkgl.Scalar(dPitch))
	g.orbit.Apply(&g.scene.Camera)
}

// Zoom moves the orbit camera towards or away from the globe.
func (g *Globe) Zoom(delta float64) {
	g.orbit.Zoom(quarkgl.Scalar(delta))
	g.orbit.Apply(&g.scene.Camera)
}

// Sync applies the ambient drift and star fade.
func (g *Globe) Sync(fx ambient.Effects) {
	g.scene.UpdateMeshTransform(g.earth, quarkgl.Mat4FromFloat64(g.frame))

	s := g.opts.CloudScale
	clouds := g.frame.Mul4(mgl64.HomogRotate3DY(fx.CloudAngle)).Mul4(mgl64.Scale3D(s, s, s))
	g.scene.UpdateMeshTransform(g.clouds, quarkgl.Mat4FromFloat64(clouds))

	s = g.opts.GlowScale
	glow := g.frame.Mul4(mgl64.HomogRotate3DY(fx.GlowAngle)).Mul4(mgl64.Scale3D(s, s, s))
	g.scene.UpdateMeshTransform(g.glow, quarkgl.Mat4FromFloat64(glow))

	// Stars hang in world space, outside the tilted frame.
	g.scene.UpdateMeshTransform(g.stars, quarkgl.Mat4FromFloat64(mgl64.HomogRotate3DY(fx.StarAngle)))
	g.scene.SetUniform(g.stars, quarkgl.UniformOpacity, fx.StarOpacity)
	g.scene.SetMeshEnabled(g.stars, fx.StarOpacity > 0)
}
