// Package interact runs the per-frame globe update and routes pointer and
// list input into one hover/focus state machine.
package interact

import (
	"time"

	"github.com/rs/zerolog"

	"lightglobe/globe/ambient"
	"lightglobe/globe/anim"
	"lightglobe/globe/assets"
	"lightglobe/globe/camera"
	"lightglobe/globe/markers"
	"lightglobe/globe/pick"
	"lightglobe/globe/scene"
)

// Poller hands over finished asset loads; see assets.Loader.
type Poller interface {
	Poll() assets.Results
}

// Options tune interaction.
type Options struct {
	Levels    pick.Levels
	Camera    camera.Options
	Threshold float64
	Debounce  time.Duration
	// DragSpeed is radians of orbit per pixel of drag.
	DragSpeed float64
}

func DefaultOptions() Options {
	return Options{
		Levels:    pick.DefaultLevels(),
		Camera:    camera.DefaultOptions(),
		Threshold: pick.DefaultThreshold,
		Debounce:  ambient.DefaultWindow,
		DragSpeed: 0.005,
	}
}

type pointer struct {
	x, y  float64
	valid bool
}

// Controller owns the frame clock. All methods run on the frame goroutine;
// input handlers only record state that the next Tick acts on, apart from
// list and click selection which apply at once.
type Controller struct {
	globe  *scene.Globe
	reg    *markers.Registry
	sched  *anim.Scheduler
	assets Poller
	opts   Options
	log    zerolog.Logger

	pick *pick.State
	dir  *camera.Director
	amb  *ambient.State
	fx   ambient.Effects

	// OnFonts sees every batch of font results after the registry has
	// taken the label faces, so callers can pick up their own keys.
	OnFonts func([]assets.FontResult)

	clock   time.Duration
	pointer pointer
	// listHover is the list row under the pointer. While set, ray picking
	// leaves the hover alone.
	listHover string
}

// New wires the controller. assets may be nil.
func New(g *scene.Globe, reg *markers.Registry, sched *anim.Scheduler, assets Poller, opts Options, log zerolog.Logger) *Controller {
	c := &Controller{
		globe:  g,
		reg:    reg,
		sched:  sched,
		assets: assets,
		opts:   opts,
		log:    log.With().Str("component", "interact").Logger(),
	}
	c.amb = ambient.NewState(opts.Debounce, c.Clock)
	c.amb.OnChange = func(moving bool) {
		c.log.Trace().Bool("moving", moving).Dur("at", c.clock).Msg("ambient")
	}
	c.pick = pick.NewState(reg, sched, opts.Levels, log)
	c.dir = camera.NewDirector(g, reg, sched, c.amb, c.Clock, opts.Camera, log)
	return c
}

// Clock returns the time accumulated by Tick.
func (c *Controller) Clock() time.Duration { return c.clock }

func (c *Controller) Pick() *pick.State          { return c.pick }
func (c *Controller) Director() *camera.Director { return c.dir }
func (c *Controller) Ambient() *ambient.State    { return c.amb }
func (c *Controller) Effects() ambient.Effects   { return c.fx }

// Tick advances one frame.
func (c *Controller) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	c.clock += dt
	c.sched.Advance(dt)
	c.drainAssets()

	if c.listHover == "" {
		c.pick.SetHovered(c.rayHover())
	}

	c.amb.Update()
	c.fx.Step(c.amb.Moving())

	c.reg.Sync(c.globe.Frame())
	c.globe.Sync(c.fx)
}

func (c *Controller) drainAssets() {
	if c.assets == nil {
		return
	}
	r := c.assets.Poll()
	if len(r.Fonts) > 0 {
		c.reg.ApplyFonts(r.Fonts)
		if c.OnFonts != nil {
			c.OnFonts(r.Fonts)
		}
	}
	for _, t := range r.Textures {
		if t.Err != nil {
			c.log.Warn().Err(t.Err).Str("path", t.Path).Msg("surface texture unavailable, keeping procedural surface")
			continue
		}
		c.globe.ApplyTexture(t.Image)
	}
}

// rayHover returns the marker under the pointer, or "".
func (c *Controller) rayHover() string {
	if !c.pointer.valid {
		return ""
	}
	local, ok := c.globe.HitSurface(c.globe.PickRay(c.pointer.x, c.pointer.y))
	if !ok {
		return ""
	}
	id, _ := pick.Nearest(local, c.reg.Anchors(), c.opts.Threshold)
	return id
}

// PointerMoved records the pointer in normalized device coordinates
// (-1..1, +Y up).
func (c *Controller) PointerMoved(ndcX, ndcY float64) {
	c.pointer = pointer{x: ndcX, y: ndcY, valid: true}
}

// PointerLeft forgets the pointer, clearing ray hover on the next tick.
func (c *Controller) PointerLeft() {
	c.pointer.valid = false
}

// ListClick focuses a marker from the list: the camera flies there and the
// marker becomes the focused one.
func (c *Controller) ListClick(id string) {
	c.dir.Focus(id)
	c.pick.SetFocused(id)
}

// ListHover highlights a list row's marker directly. Leaving a row hands
// hover back to the pointer ray. An unknown id owns nothing: entering it
// releases any row that held the hover.
func (c *Controller) ListHover(id string, entering bool) {
	if _, ok := c.reg.Lookup(id); !ok {
		if entering && c.listHover != "" {
			c.listHover = ""
			c.pick.SetHovered(c.rayHover())
		}
		return
	}
	if entering {
		c.listHover = id
		c.pick.SetHovered(id)
		return
	}
	if c.listHover == id {
		c.listHover = ""
		c.pick.SetHovered("")
	}
}

// ClickScene focuses the marker under the pointer, if any.
func (c *Controller) ClickScene() bool {
	id := c.pick.Hovered()
	if id == "" || c.listHover != "" {
		return false
	}
	c.ListClick(id)
	return true
}

// ClearFocus drops the focus without moving the camera.
func (c *Controller) ClearFocus() {
	c.pick.SetFocused("")
}

// Drag orbits the camera by pixel deltas. User input wins over a running
// fly-to.
func (c *Controller) Drag(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	c.dir.Cancel()
	c.globe.Rotate(-dx*c.opts.DragSpeed, -dy*c.opts.DragSpeed)
	c.amb.Mark()
}

// Zoom moves the camera along its orbit radius.
func (c *Controller) Zoom(delta float64) {
	if delta == 0 {
		return
	}
	c.dir.Cancel()
	c.globe.Zoom(delta)
	c.amb.Mark()
}

// Resize updates the viewport used for picking.
func (c *Controller) Resize(w, h int) {
	c.globe.Resize(w, h)
}
