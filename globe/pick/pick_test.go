package pick

import (
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightglobe/globe/anim"
	"lightglobe/globe/geo"
	"lightglobe/globe/markers"
	"lightglobe/globe/quarkgl"
)

func setup(t *testing.T) (*State, *markers.Registry, *anim.Scheduler) {
	t.Helper()
	sched := anim.NewScheduler()
	reg := markers.NewRegistry(quarkgl.CreateScene(16), sched, nil, markers.DefaultOptions(), zerolog.Nop())
	_, err := reg.Create([]markers.Marker{
		{ID: "USA", Lat: 37.0902, Lon: -95.7129, Color: color.RGBA{0xE6, 0xF8, 0xFF, 0xFF}},
		{ID: "China", Lat: 35.8617, Lon: 104.1954},
		{ID: "Brazil", Lat: -14.235, Lon: -51.9253},
	})
	require.NoError(t, err)
	sched.Advance(2 * time.Second) // finish the rise
	return NewState(reg, sched, DefaultLevels(), zerolog.Nop()), reg, sched
}

func intensity(reg *markers.Registry, id string) float32 {
	v, _ := reg.Lookup(id)
	return v.Intensity
}

func TestSetHoveredIsIdempotent(t *testing.T) {
	s, _, _ := setup(t)
	assert.True(t, s.SetHovered("USA"))
	n := s.Tweens()
	assert.False(t, s.SetHovered("USA"))
	assert.Equal(t, n, s.Tweens(), "no duplicate tween")
	assert.Equal(t, "USA", s.Hovered())
}

func TestHoverTweensUpAndBack(t *testing.T) {
	s, reg, sched := setup(t)
	s.SetHovered("USA")
	sched.Advance(time.Second)
	assert.Equal(t, float32(2), intensity(reg, "USA"))

	s.SetHovered("China")
	sched.Advance(150 * time.Millisecond)
	assert.Greater(t, intensity(reg, "USA"), float32(0))
	assert.Greater(t, intensity(reg, "China"), float32(0))

	sched.Advance(time.Second)
	assert.Equal(t, float32(0), intensity(reg, "USA"))
	assert.Equal(t, float32(2), intensity(reg, "China"))
}

func TestReplaceMidTweenCancelsPrevious(t *testing.T) {
	s, reg, sched := setup(t)
	s.SetHovered("USA")
	sched.Advance(100 * time.Millisecond)
	s.SetHovered("")
	assert.Equal(t, 1, sched.Len(), "one intensity tween on USA")

	sched.Advance(time.Second)
	assert.Equal(t, float32(0), intensity(reg, "USA"))
}

func TestFocusOverridesHover(t *testing.T) {
	s, reg, sched := setup(t)
	s.SetFocused("USA")
	s.SetHovered("USA")
	assert.Equal(t, float32(3), s.Level("USA"))
	sched.Advance(time.Second)
	assert.Equal(t, float32(3), intensity(reg, "USA"))

	s.SetHovered("")
	assert.Equal(t, float32(3), s.Level("USA"), "focus is sticky")
	sched.Advance(time.Second)
	assert.Equal(t, float32(3), intensity(reg, "USA"))

	s.SetFocused("")
	assert.Equal(t, float32(0), s.Level("USA"))
}

func TestFocusShowsLabel(t *testing.T) {
	s, reg, _ := setup(t)
	usa, _ := reg.Lookup("USA")
	china, _ := reg.Lookup("China")

	s.SetHovered("USA")
	assert.False(t, usa.Label.Visible, "hover never shows the label")

	s.SetFocused("USA")
	assert.True(t, usa.Label.Visible)
	s.SetFocused("China")
	assert.False(t, usa.Label.Visible)
	assert.True(t, china.Label.Visible)
	s.SetFocused("")
	assert.False(t, china.Label.Visible)
}

func TestUnknownIDClears(t *testing.T) {
	s, _, _ := setup(t)
	s.SetHovered("USA")
	s.SetFocused("China")

	assert.True(t, s.SetHovered("Atlantis"))
	assert.Equal(t, "", s.Hovered())
	assert.True(t, s.SetFocused("Atlantis"))
	assert.Equal(t, "", s.Focused())
	assert.False(t, s.SetFocused("Atlantis"))
}

func TestRandomSequencesKeepSingleSlots(t *testing.T) {
	s, reg, sched := setup(t)
	ids := []string{"", "USA", "China", "Brazil", "Atlantis"}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		id := ids[rng.Intn(len(ids))]
		if rng.Intn(2) == 0 {
			s.SetHovered(id)
		} else {
			s.SetFocused(id)
		}
		sched.Advance(time.Duration(rng.Intn(200)) * time.Millisecond)

		visible := 0
		for _, v := range reg.Visuals() {
			if v.Label.Visible {
				visible++
				assert.Equal(t, s.Focused(), v.Marker.ID)
			}
			assert.LessOrEqual(t, v.Intensity, float32(3))
			assert.GreaterOrEqual(t, v.Intensity, float32(0))
		}
		assert.LessOrEqual(t, visible, 1)
	}
	sched.Advance(time.Second)
	for _, v := range reg.Visuals() {
		assert.Equal(t, s.Level(v.Marker.ID), v.Intensity, v.Marker.ID)
	}
}

func TestNearest(t *testing.T) {
	usa := geo.Project(37.09, -95.71).Direction
	china := geo.Project(35.86, 104.19).Direction
	anchors := []markers.Anchor{{ID: "USA", Point: usa}, {ID: "China", Point: china}}

	id, ok := Nearest(usa.Mul(1.0001), anchors, DefaultThreshold)
	require.True(t, ok)
	assert.Equal(t, "USA", id)

	_, ok = Nearest(mgl64.Vec3{0, -1, 0}, anchors, DefaultThreshold)
	assert.False(t, ok, "south pole is far from both")

	_, ok = Nearest(usa, nil, DefaultThreshold)
	assert.False(t, ok)
}

func TestNearestPrefersCloser(t *testing.T) {
	a := mgl64.Vec3{1, 0, 0}
	b := mgl64.Vec3{0.9, 0.1, 0}
	id, ok := Nearest(mgl64.Vec3{0.92, 0.09, 0}, []markers.Anchor{{ID: "a", Point: a}, {ID: "b", Point: b}}, 0.5)
	require.True(t, ok)
	assert.Equal(t, "b", id)
}
