package ambient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Duration }

func (c *clock) now() time.Duration { return c.t }

func TestDebounceExpiresAfterWindow(t *testing.T) {
	c := &clock{}
	s := NewState(0, c.now)
	assert.Equal(t, DefaultWindow, s.Window())

	s.Mark()
	assert.True(t, s.Moving())

	c.t = 499 * time.Millisecond
	assert.False(t, s.Update())
	assert.True(t, s.Moving())

	c.t = 500 * time.Millisecond
	assert.True(t, s.Update())
	assert.False(t, s.Moving())
}

func TestDebounceRestartsOnMark(t *testing.T) {
	c := &clock{}
	transitions := 0
	s := NewState(500*time.Millisecond, c.now)
	s.OnChange = func(bool) { transitions++ }

	// Continuous movement every 100ms for two seconds.
	for i := 0; i < 20; i++ {
		c.t = time.Duration(i) * 100 * time.Millisecond
		s.Mark()
		s.Update()
		assert.True(t, s.Moving())
	}
	assert.Equal(t, 1, transitions, "no false resting transition while moving")

	last := c.t
	c.t = last + 500*time.Millisecond - time.Nanosecond
	assert.False(t, s.Update())
	assert.True(t, s.Moving(), "still moving just inside the window")

	c.t = last + 500*time.Millisecond
	assert.True(t, s.Update())
	assert.False(t, s.Moving(), "rests one window after the last mark")
	assert.Equal(t, 2, transitions)

	c.t += time.Second
	assert.False(t, s.Update())
	assert.Equal(t, 2, transitions, "exactly one fall for the burst")
}

func TestClearDropsImmediately(t *testing.T) {
	c := &clock{}
	s := NewState(time.Second, c.now)
	s.Mark()
	s.Clear()
	assert.False(t, s.Moving())
	assert.False(t, s.Update())
}

func TestEffectsStarOpacityClamped(t *testing.T) {
	var e Effects
	for i := 0; i < 30; i++ {
		e.Step(true)
	}
	assert.Equal(t, float32(1), e.StarOpacity)

	e.Step(false)
	assert.InDelta(t, 0.95, e.StarOpacity, 1e-6)
	for i := 0; i < 30; i++ {
		e.Step(false)
	}
	assert.Equal(t, float32(0), e.StarOpacity)
}

func TestEffectsDrift(t *testing.T) {
	var e Effects
	for i := 0; i < 100; i++ {
		e.Step(false)
	}
	assert.InDelta(t, 0.02, e.CloudAngle, 1e-9)
	assert.InDelta(t, 0.2, e.GlowAngle, 1e-9)
	assert.InDelta(t, -0.02, e.StarAngle, 1e-9)
}
