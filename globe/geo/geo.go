// Package geo maps geographic coordinates onto the unit globe.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidCoordinate is returned for latitudes outside [-90, 90],
// longitudes outside [-180, 180] and non-finite values.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// up is the local axis of surface-mounted objects that gets aligned with the
// surface normal.
var up = mgl64.Vec3{0, 1, 0}

// Projection is the placement of a point on the unit sphere.
type Projection struct {
	// Direction is the unit vector from the globe center to the point.
	Direction mgl64.Vec3
	// Orientation rotates an object's local +Y onto Direction, so a cylinder
	// modelled along +Y stands radially outward.
	Orientation mgl64.Quat
}

// Project maps latitude/longitude in degrees onto the unit sphere.
//
// The +180° longitude offset lines the 0°/180° meridian up with the seam of
// the equirectangular globe texture; TextureUV uses the same convention and
// the two must change together.
func Project(lat, lon float64) Projection {
	phi := (90 - lat) * math.Pi / 180
	theta := (lon + 180) * math.Pi / 180

	dir := mgl64.Vec3{
		-math.Sin(phi) * math.Cos(theta),
		math.Cos(phi),
		math.Sin(phi) * math.Sin(theta),
	}
	return Projection{
		Direction:   dir,
		Orientation: orient(dir),
	}
}

// orient returns the shortest rotation taking local +Y onto dir. At the south
// pole the axis is arbitrary, which a rotationally symmetric pillar hides.
func orient(dir mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatBetweenVectors(up, dir.Normalize())
}

// Basis returns the orientation as a rotation-only 4x4 matrix.
func (p Projection) Basis() mgl64.Mat4 {
	return p.Orientation.Mat4()
}

// Surface returns the point at radius r along the projection direction.
func (p Projection) Surface(r float64) mgl64.Vec3 {
	return p.Direction.Mul(r)
}

// TextureUV returns equirectangular texture coordinates (0..1, v down) for a
// coordinate, matching the seam convention of Project.
func TextureUV(lat, lon float64) (u, v float64) {
	u = math.Mod((lon+180)/360, 1)
	if u < 0 {
		u++
	}
	v = (90 - lat) / 180
	return u, v
}

// Validate checks that lat/lon are finite and within range.
func Validate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v: %w", lat, ErrInvalidCoordinate)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v: %w", lon, ErrInvalidCoordinate)
	}
	return nil
}
