// Package app wires the host devices to the globe: input events become
// controller calls, and every step renders the scene plus its overlay into
// the framebuffer.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"lightglobe/globe/anim"
	"lightglobe/globe/assets"
	"lightglobe/globe/camera"
	"lightglobe/globe/catalog"
	"lightglobe/globe/interact"
	"lightglobe/globe/markers"
	"lightglobe/globe/overlay"
	"lightglobe/globe/pick"
	"lightglobe/globe/quarkgl"
	"lightglobe/globe/scene"
	"lightglobe/hal"
	"lightglobe/internal/config"
)

// overlayFontKey is the asset request key of the list font.
const overlayFontKey = "overlay"

const (
	keyOrbitStep = 24 // pixels of drag per arrow press
	keyZoomStep  = 0.5
	wheelZoom    = 0.4
)

// Core is the globe without a display: markers, scene and interaction.
// The window app and the terminal front-end both drive one.
type Core struct {
	Loader     *assets.Loader
	Scheduler  *anim.Scheduler
	Globe      *scene.Globe
	Registry   *markers.Registry
	Controller *interact.Controller
}

// NewCore loads the marker catalog, builds the scene and starts the label
// font and texture loads. fsys serves the catalog and texture files; nil
// means the OS filesystem.
func NewCore(cfg config.Config, fsys afero.Fs, log zerolog.Logger) (*Core, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	ms := catalog.Builtin()
	if cfg.Assets.Catalog != "" {
		loaded, err := catalog.LoadFile(fsys, cfg.Assets.Catalog)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		ms = loaded
	}

	c := &Core{
		Loader:    assets.NewLoader(fsys, log),
		Scheduler: anim.NewScheduler(),
	}
	c.Globe = scene.New(SceneOptions(cfg, len(ms)), log)
	c.Registry = markers.NewRegistry(c.Globe.Scene(), c.Scheduler, c.Loader, MarkerOptions(cfg), log)
	if _, err := c.Registry.Create(ms); err != nil {
		return nil, fmt.Errorf("create markers: %w", err)
	}
	c.Controller = interact.New(c.Globe, c.Registry, c.Scheduler, c.Loader, InteractOptions(cfg), log)
	if cfg.Assets.Texture != "" {
		c.Loader.RequestTexture(cfg.Assets.Texture)
	}
	return c, nil
}

// App is one running globe on a host display.
type App struct {
	*Core
	log zerolog.Logger

	fb  hal.Framebuffer
	kbd hal.Keyboard
	ptr hal.Pointer

	ctrl *interact.Controller

	renderer *quarkgl.Renderer
	target   quarkgl.RGBATarget
	surface  *overlay.Surface
	panel    *overlay.Panel

	w, h int

	// cursor is the keyboard-selected list row, -1 for none.
	cursor int
	// row is the list row under the pointer.
	row     string
	pressed bool
	dragged bool
}

// NewStep returns the constructor the hal runners expect.
func NewStep(cfg config.Config, fsys afero.Fs) func(hal.HAL) (hal.Step, error) {
	return func(h hal.HAL) (hal.Step, error) {
		a, err := New(h, cfg, fsys)
		if err != nil {
			return nil, err
		}
		return a.Step, nil
	}
}

// New builds the core and attaches it to the host display and input.
func New(h hal.HAL, cfg config.Config, fsys afero.Fs) (*App, error) {
	log := h.Logger()
	core, err := NewCore(cfg, fsys, log)
	if err != nil {
		return nil, err
	}

	a := &App{
		Core:     core,
		log:      log.With().Str("component", "app").Logger(),
		fb:       h.Display().Framebuffer(),
		kbd:      h.Input().Keyboard(),
		ptr:      h.Input().Pointer(),
		ctrl:     core.Controller,
		renderer: quarkgl.NewRenderer(0, 0, true),
		panel:    overlay.NewPanel(4, 4),
		cursor:   -1,
	}
	a.renderer.ClearColor = quarkgl.RGB(0x02, 0x03, 0x08)
	a.panel.SetRows(overlay.RowsFrom(a.Registry.Visuals()))
	a.ctrl.OnFonts = a.applyFonts
	a.Loader.RequestFont(overlayFontKey, cfg.Assets.ListFont)

	a.resize()
	a.log.Info().Int("markers", a.Registry.Len()).Int("width", a.w).Int("height", a.h).Msg("globe ready")
	return a, nil
}

// SceneOptions maps the config onto the globe scene.
func SceneOptions(cfg config.Config, markerCount int) scene.Options {
	o := scene.DefaultOptions()
	o.StarCount = cfg.Ambient.StarCount
	o.Seed = cfg.Ambient.Seed
	if cfg.Camera.Distance > 0 {
		o.Distance = cfg.Camera.Distance
	}
	o.MarkerSlots = max(markerCount, 1)
	return o
}

// MarkerOptions maps the config onto the marker registry.
func MarkerOptions(cfg config.Config) markers.Options {
	o := markers.DefaultOptions()
	if cfg.Markers.RiseDuration > 0 {
		o.RiseDuration = cfg.Markers.RiseDuration
	}
	if cfg.Markers.SurfaceScale > 0 {
		o.SurfaceScale = cfg.Markers.SurfaceScale
	}
	if cfg.Assets.LabelFont != "" {
		o.LabelFont = cfg.Assets.LabelFont
	}
	return o
}

// InteractOptions maps the config onto the interaction controller.
func InteractOptions(cfg config.Config) interact.Options {
	o := interact.DefaultOptions()
	o.Levels = pick.Levels{
		Hover:    cfg.Pick.HoverLevel,
		Focus:    cfg.Pick.FocusLevel,
		Duration: cfg.Pick.Duration,
	}
	o.Threshold = cfg.Pick.Threshold
	o.Debounce = cfg.Ambient.Debounce
	o.Camera = camera.DefaultOptions()
	o.Camera.Scale = mgl64.Vec3{cfg.Camera.ScaleX, cfg.Camera.ScaleY, cfg.Camera.ScaleZ}
	if cfg.Camera.Duration > 0 {
		o.Camera.Duration = cfg.Camera.Duration
	}
	if cfg.Camera.DragSpeed > 0 {
		o.DragSpeed = cfg.Camera.DragSpeed
	}
	return o
}

func (a *App) applyFonts(rs []assets.FontResult) {
	for _, r := range rs {
		if r.Key != overlayFontKey {
			continue
		}
		if r.Err != nil {
			a.log.Warn().Err(r.Err).Str("font", r.Name).Msg("list font unavailable, list hidden")
			continue
		}
		a.panel.SetFace(r.Face)
	}
}

// Panel exposes the marker list.
func (a *App) Panel() *overlay.Panel { return a.panel }

// Step handles pending input, advances the globe by dt and draws a frame.
func (a *App) Step(dt time.Duration) (err error) {
	defer a.recoverFrame(&err)

	a.resize()
	if err := a.handleKeys(); err != nil {
		return err
	}
	a.handlePointer()

	a.ctrl.Tick(dt)
	a.draw()
	return a.fb.Present()
}

func (a *App) resize() {
	w, h := a.fb.Width(), a.fb.Height()
	if w == a.w && h == a.h {
		return
	}
	a.w, a.h = w, h
	img := a.fb.Image()
	a.target.Img = img
	if a.surface == nil {
		a.surface = overlay.NewSurface(img)
	} else {
		a.surface.SetImage(img)
	}
	a.ctrl.Resize(w, h)
}

func (a *App) draw() {
	a.renderer.Render(&a.target, a.Globe.Scene())

	p := a.ctrl.Pick()
	a.panel.Draw(a.surface, p.Hovered(), p.Focused())
	frame := a.Globe.Frame()
	overlay.DrawLabels(a.surface, a.Registry.Visuals(), func(v *markers.Visual) (int, int, bool) {
		return a.Globe.Project(markers.WorldAnchor(frame, v))
	})
}

// ndc maps a framebuffer pixel to normalized device coordinates, the exact
// inverse of the renderer's viewport mapping.
func (a *App) ndc(x, y int) (float64, float64) {
	nx, ny := 0.0, 0.0
	if a.w > 1 {
		nx = float64(x)/float64(a.w-1)*2 - 1
	}
	if a.h > 1 {
		ny = 1 - float64(y)/float64(a.h-1)*2
	}
	return nx, ny
}
