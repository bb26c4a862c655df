// Package camera flies the camera to markers.
package camera

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"

	"lightglobe/globe/anim"
	"lightglobe/globe/markers"
	"lightglobe/globe/quarkgl"
)

// Rig exposes the camera, its orbit controller and the globe frame.
type Rig interface {
	Camera() *quarkgl.Camera
	Orbit() *quarkgl.OrbitController
	Frame() mgl64.Mat4
}

// Motion receives camera activity; see ambient.State.
type Motion interface {
	Mark()
	Clear()
}

// Lookup resolves marker ids to visuals.
type Lookup interface {
	Lookup(id string) (*markers.Visual, bool)
}

// Options tune the fly-to.
type Options struct {
	// Scale multiplies the marker direction per axis to get the camera
	// position in globe-local space. A wide X and flat Y keep the globe
	// framed instead of looking straight down the radius.
	Scale    mgl64.Vec3
	Duration time.Duration
	Easing   ease.TweenFunc
}

func DefaultOptions() Options {
	return Options{
		Scale:    mgl64.Vec3{8, 3, 3},
		Duration: time.Second,
		Easing:   ease.InOutQuad,
	}
}

// Transition describes the current or last fly-to.
type Transition struct {
	MarkerID  string
	Start     mgl64.Vec3
	Target    mgl64.Vec3
	StartedAt time.Duration
	Duration  time.Duration
	Easing    ease.TweenFunc
	Active    bool
}

// Director runs at most one camera transition. A new Focus replaces the one
// in flight, starting from wherever the camera is at that moment.
type Director struct {
	rig     Rig
	markers Lookup
	anim    markers.Animator
	motion  Motion
	now     func() time.Duration
	opts    Options
	log     zerolog.Logger

	cur      Transition
	progress float32
	handle   anim.Handle
	count    int
}

func NewDirector(rig Rig, m Lookup, a markers.Animator, motion Motion, now func() time.Duration, opts Options, log zerolog.Logger) *Director {
	if opts.Easing == nil {
		opts.Easing = ease.InOutQuad
	}
	return &Director{
		rig:     rig,
		markers: m,
		anim:    a,
		motion:  motion,
		now:     now,
		opts:    opts,
		log:     log.With().Str("component", "camera").Logger(),
	}
}

// Target returns the world-space camera position for a marker.
func (d *Director) Target(id string) (mgl64.Vec3, bool) {
	v, ok := d.markers.Lookup(id)
	if !ok {
		return mgl64.Vec3{}, false
	}
	s := d.opts.Scale
	local := mgl64.Vec3{v.Anchor[0] * s[0], v.Anchor[1] * s[1], v.Anchor[2] * s[2]}
	return d.rig.Frame().Mul4x1(local.Vec4(1)).Vec3(), true
}

// Focus starts flying to the marker. Unknown ids are ignored and leave any
// running transition alone. It reports whether a transition started.
func (d *Director) Focus(id string) bool {
	target, ok := d.Target(id)
	if !ok {
		return false
	}
	d.Cancel()

	cam := d.rig.Camera()
	d.cur = Transition{
		MarkerID:  id,
		Start:     fromGL(cam.Position),
		Target:    target,
		StartedAt: d.now(),
		Duration:  d.opts.Duration,
		Easing:    d.opts.Easing,
		Active:    true,
	}
	d.count++
	d.log.Debug().Str("marker", id).Msg("camera transition")

	d.progress = 0
	d.handle = d.anim.Animate(&d.progress, 1, anim.Options{
		Duration:   d.opts.Duration,
		Easing:     d.opts.Easing,
		OnUpdate:   d.step,
		OnComplete: d.finish,
	})
	return true
}

func (d *Director) step(p float32) {
	cam := d.rig.Camera()
	pos := d.cur.Start.Add(d.cur.Target.Sub(d.cur.Start).Mul(float64(p)))
	cam.Position = toGL(pos)
	cam.LookAt(quarkgl.Vec3{})
	d.motion.Mark()
}

func (d *Director) finish() {
	d.cur.Active = false
	d.rig.Orbit().SyncFrom(*d.rig.Camera())
	d.motion.Clear()
}

// Cancel stops the running transition where it is. The orbit controller is
// synced so user input continues from the current pose.
func (d *Director) Cancel() {
	if !d.cur.Active {
		return
	}
	d.handle.Cancel()
	d.cur.Active = false
	d.rig.Orbit().SyncFrom(*d.rig.Camera())
}

// Active reports whether a transition is running.
func (d *Director) Active() bool { return d.cur.Active }

// Current returns the running or most recent transition.
func (d *Director) Current() Transition { return d.cur }

// Transitions counts transitions started.
func (d *Director) Transitions() int { return d.count }

func toGL(v mgl64.Vec3) quarkgl.Vec3 {
	return quarkgl.V3(quarkgl.Scalar(v[0]), quarkgl.Scalar(v[1]), quarkgl.Scalar(v[2]))
}

func fromGL(v quarkgl.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}
