package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.Lessf(t, want.Sub(got).Len(), eps, "want %v, got %v", want, got)
}

func TestProjectNorthPole(t *testing.T) {
	assertVec(t, mgl64.Vec3{0, 1, 0}, Project(90, 0).Direction)
}

func TestProjectSouthPoleAnyLongitude(t *testing.T) {
	for _, lon := range []float64{-180, -95.7, 0, 42, 180} {
		assertVec(t, mgl64.Vec3{0, -1, 0}, Project(-90, lon).Direction)
	}
}

func TestProjectLongitudeWrap(t *testing.T) {
	assertVec(t, Project(0, -180).Direction, Project(0, 180).Direction)
}

func TestProjectEquatorPrimeMeridian(t *testing.T) {
	// theta = 180°: x = -sin(90°)cos(180°) = 1.
	assertVec(t, mgl64.Vec3{1, 0, 0}, Project(0, 0).Direction)
	// theta = 270°: z = sin(270°) = -1.
	assertVec(t, mgl64.Vec3{0, 0, -1}, Project(0, 90).Direction)
}

func TestProjectIsUnitLength(t *testing.T) {
	for _, c := range [][2]float64{{37.0902, -95.7129}, {35.8617, 104.1954}, {-25.2744, 133.7751}} {
		assert.InDelta(t, 1.0, Project(c[0], c[1]).Direction.Len(), eps)
	}
}

func TestProjectDeterministic(t *testing.T) {
	a := Project(61.524, 105.3188)
	b := Project(61.524, 105.3188)
	assert.Equal(t, a, b)
}

func TestOrientationStandsUpAlongNormal(t *testing.T) {
	for _, c := range [][2]float64{{90, 0}, {-90, 0}, {37.09, -95.71}, {-14.235, -51.9253}} {
		p := Project(c[0], c[1])
		got := p.Orientation.Rotate(mgl64.Vec3{0, 1, 0})
		assertVec(t, p.Direction, got)

		basisUp := p.Basis().Mul4x1(mgl64.Vec4{0, 1, 0, 0}).Vec3()
		assertVec(t, p.Direction, basisUp)
	}
}

func TestSurfaceScalesDirection(t *testing.T) {
	p := Project(10, 20)
	assert.InDelta(t, 1.015, p.Surface(1.015).Len(), eps)
}

func TestTextureUV(t *testing.T) {
	u, v := TextureUV(90, -180)
	assert.InDelta(t, 0.0, u, eps)
	assert.InDelta(t, 0.0, v, eps)

	u, v = TextureUV(0, 0)
	assert.InDelta(t, 0.5, u, eps)
	assert.InDelta(t, 0.5, v, eps)

	u, _ = TextureUV(0, 180)
	assert.InDelta(t, 0.0, u, eps, "180° wraps onto the seam")
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(37.09, -95.71))
	require.NoError(t, Validate(-90, 180))

	for _, c := range [][2]float64{{91, 0}, {-90.5, 0}, {0, 180.01}, {0, -181}, {math.NaN(), 0}, {0, math.Inf(1)}} {
		err := Validate(c[0], c[1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCoordinate))
	}
}
