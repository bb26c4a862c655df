package markers

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"

	"lightglobe/globe/anim"
	"lightglobe/globe/assets"
	"lightglobe/globe/geo"
	"lightglobe/globe/quarkgl"
)

var (
	// ErrDuplicateID is returned when two markers share an id.
	ErrDuplicateID = errors.New("duplicate marker id")
	// ErrEmptyID is returned for markers without an id.
	ErrEmptyID = errors.New("empty marker id")
	// ErrSceneFull is returned when the scene has no room for a marker.
	ErrSceneFull = errors.New("scene has no free mesh slots")
)

// SceneGraph is the part of the scene the registry writes to.
type SceneGraph interface {
	AddMesh(m quarkgl.Mesh) int
	RemoveMesh(id int)
	UpdateMeshTransform(id int, m quarkgl.Mat4)
	SetUniform(id int, u quarkgl.Uniform, v quarkgl.Scalar)
}

// Animator starts property tweens.
type Animator interface {
	Animate(prop *float32, target float32, opts anim.Options) anim.Handle
}

// FontSource resolves label fonts asynchronously; see assets.Loader.
type FontSource interface {
	RequestFont(key, name string)
}

// Options tune marker geometry and animation.
type Options struct {
	// SurfaceScale lifts markers off the unit sphere.
	SurfaceScale float64

	PillarLength  float32
	PillarRadius  float32
	BaseRadius    float32
	BaseHeight    float32
	Segments      int
	RiseDuration  time.Duration
	RestGlow      float32
	GlowPerLevel  float32
	ThickPerLevel float32
	LabelFont     string
}

// DefaultOptions returns the stock pillar look.
func DefaultOptions() Options {
	return Options{
		SurfaceScale:  1.015,
		PillarLength:  0.6,
		PillarRadius:  0.01,
		BaseRadius:    0.04,
		BaseHeight:    0.02,
		Segments:      8,
		RiseDuration:  2 * time.Second,
		RestGlow:      0.55,
		GlowPerLevel:  0.15,
		ThickPerLevel: 0.25,
		LabelFont:     assets.DefaultFont,
	}
}

// Registry creates markers once and keeps their visuals by id.
type Registry struct {
	scene SceneGraph
	anim  Animator
	fonts FontSource
	opts  Options
	log   zerolog.Logger

	byID  map[string]*Visual
	order []*Visual
}

// NewRegistry wires the registry to its collaborators. fonts may be nil, in
// which case markers are created without labels.
func NewRegistry(scene SceneGraph, a Animator, fonts FontSource, opts Options, log zerolog.Logger) *Registry {
	return &Registry{
		scene: scene,
		anim:  a,
		fonts: fonts,
		opts:  opts,
		log:   log.With().Str("component", "markers").Logger(),
		byID:  make(map[string]*Visual),
	}
}

// Create validates every marker, then adds the pillar and base meshes for
// each, starts the rise animation and requests the label font. On error no
// marker from this call is left in the scene.
func (r *Registry) Create(ms []Marker) (map[string]*Visual, error) {
	seen := make(map[string]bool, len(ms))
	for _, m := range ms {
		if m.ID == "" {
			return nil, ErrEmptyID
		}
		if seen[m.ID] || r.byID[m.ID] != nil {
			return nil, fmt.Errorf("marker %q: %w", m.ID, ErrDuplicateID)
		}
		seen[m.ID] = true
		if err := geo.Validate(m.Lat, m.Lon); err != nil {
			return nil, fmt.Errorf("marker %q: %w", m.ID, err)
		}
	}

	created := make([]*Visual, 0, len(ms))
	for _, m := range ms {
		v, err := r.place(m)
		if err != nil {
			for _, c := range created {
				r.scene.RemoveMesh(c.Pillar)
				r.scene.RemoveMesh(c.Base)
			}
			return nil, err
		}
		created = append(created, v)
	}

	out := make(map[string]*Visual, len(created))
	for _, v := range created {
		r.byID[v.Marker.ID] = v
		r.order = append(r.order, v)
		out[v.Marker.ID] = v

		r.anim.Animate(&v.Height, 1, anim.Options{
			Duration: r.opts.RiseDuration,
			Easing:   ease.OutQuad,
		})
		if r.fonts != nil {
			r.fonts.RequestFont(v.Marker.ID, r.opts.LabelFont)
		}
		r.log.Debug().Str("marker", v.Marker.ID).
			Float64("lat", v.Marker.Lat).Float64("lon", v.Marker.Lon).
			Msg("marker created")
	}
	return out, nil
}

func (r *Registry) place(m Marker) (*Visual, error) {
	p := geo.Project(m.Lat, m.Lon)
	c := quarkgl.FromRGBA(m.Color)
	if c.A == 0 {
		c.A = 0xFF
	}

	pillar := r.scene.AddMesh(cylinderMesh(r.opts.PillarRadius, r.opts.PillarLength, r.opts.Segments, c))
	if pillar < 0 {
		return nil, fmt.Errorf("marker %q pillar: %w", m.ID, ErrSceneFull)
	}
	base := r.scene.AddMesh(coneMesh(r.opts.BaseRadius, r.opts.BaseHeight, r.opts.Segments, c))
	if base < 0 {
		r.scene.RemoveMesh(pillar)
		return nil, fmt.Errorf("marker %q base: %w", m.ID, ErrSceneFull)
	}

	return &Visual{
		Marker:      m,
		Pillar:      pillar,
		Base:        base,
		Label:       Label{Text: m.DisplayName()},
		Anchor:      p.Direction,
		Position:    p.Surface(r.opts.SurfaceScale),
		Orientation: p.Orientation,
	}, nil
}

// Lookup returns the visual for id. Unknown and empty ids yield nil, false.
func (r *Registry) Lookup(id string) (*Visual, bool) {
	v, ok := r.byID[id]
	return v, ok
}

// Visuals returns the visuals in creation order.
func (r *Registry) Visuals() []*Visual {
	out := make([]*Visual, len(r.order))
	copy(out, r.order)
	return out
}

// Anchors returns the surface anchors in creation order.
func (r *Registry) Anchors() []Anchor {
	out := make([]Anchor, 0, len(r.order))
	for _, v := range r.order {
		out = append(out, Anchor{ID: v.Marker.ID, Point: v.Anchor})
	}
	return out
}

// Len returns the number of markers.
func (r *Registry) Len() int { return len(r.order) }

// ApplyFonts attaches loaded label faces. A failed load leaves the marker
// without a label and is only logged.
func (r *Registry) ApplyFonts(results []assets.FontResult) {
	for _, res := range results {
		v, ok := r.byID[res.Key]
		if !ok {
			continue
		}
		if res.Err != nil {
			r.log.Warn().Err(res.Err).Str("marker", res.Key).Msg("label font unavailable")
			continue
		}
		v.Label.Face = res.Face
	}
}

// Glow returns the glow uniform for a highlight level.
func (r *Registry) Glow(intensity float32) float32 {
	return r.opts.RestGlow + intensity*r.opts.GlowPerLevel
}

// Thickness returns the thickness uniform for a highlight level.
func (r *Registry) Thickness(intensity float32) float32 {
	return 1 + intensity*r.opts.ThickPerLevel
}

// Sync pushes every visual to the scene. frame places globe-local space in
// the world, e.g. the axial tilt.
func (r *Registry) Sync(frame mgl64.Mat4) {
	s := r.opts.SurfaceScale
	for _, v := range r.order {
		placed := frame.
			Mul4(mgl64.Translate3D(v.Position[0], v.Position[1], v.Position[2])).
			Mul4(v.Orientation.Mat4())

		h := float64(v.Height)
		if h < 1e-3 {
			h = 1e-3
		}
		r.scene.UpdateMeshTransform(v.Pillar, quarkgl.Mat4FromFloat64(placed.Mul4(mgl64.Scale3D(s, s*h, s))))
		r.scene.UpdateMeshTransform(v.Base, quarkgl.Mat4FromFloat64(placed.Mul4(mgl64.Scale3D(s, s, s))))

		glow := r.Glow(v.Intensity)
		r.scene.SetUniform(v.Pillar, quarkgl.UniformGlow, glow)
		r.scene.SetUniform(v.Pillar, quarkgl.UniformThickness, r.Thickness(v.Intensity))
		r.scene.SetUniform(v.Base, quarkgl.UniformGlow, glow)
	}
}

// WorldAnchor returns the marker's surface point in world space.
func WorldAnchor(frame mgl64.Mat4, v *Visual) mgl64.Vec3 {
	return frame.Mul4x1(v.Position.Vec4(1)).Vec3()
}
