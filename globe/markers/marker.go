// Package markers owns the geographic markers and their pillar renderables.
package markers

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"tinygo.org/x/tinyfont"
)

// Marker is a fixed point of interest. It is never mutated after creation.
type Marker struct {
	ID    string
	Name  string
	Lat   float64
	Lon   float64
	Color color.RGBA
}

// DisplayName returns Name, or ID when no name is set.
func (m Marker) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// Label is the marker's name tag. Face stays nil when the font never loaded;
// such a label is never drawn.
type Label struct {
	Text    string
	Face    tinyfont.Fonter
	Visible bool
}

// Visual is the mutable render state of one marker.
//
// Intensity and Height are animated in place by the scheduler and read by
// Registry.Sync.
type Visual struct {
	Marker Marker

	// Scene handles.
	Pillar int
	Base   int
	Label  Label

	// Anchor is the unit-sphere surface point used for hit testing.
	Anchor mgl64.Vec3
	// Position is Anchor lifted off the surface by the registry's scale.
	Position    mgl64.Vec3
	Orientation mgl64.Quat

	// Intensity is the highlight level: 0 at rest.
	Intensity float32
	// Height is the rise progress, 0 to 1.
	Height float32
}

// Anchor pairs a marker id with its unit-sphere surface point.
type Anchor struct {
	ID    string
	Point mgl64.Vec3
}
