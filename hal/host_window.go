//go:build cgo

package hal

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"lightglobe/internal/buildinfo"
)

// WindowConfig sizes the desktop window. Width and Height are framebuffer
// pixels; each is shown Scale times larger.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	Scale  int
	TPS    int
}

// errClosed ends RunGame when the app asks to quit.
var errClosed = errors.New("window closed")

// RunWindow opens a resizable desktop window that shows the framebuffer and
// forwards input. It blocks until the window closes.
func RunWindow(log zerolog.Logger, newApp func(HAL) (Step, error), cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	h := newHost(cfg.Width, cfg.Height, log)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step, scale: cfg.Scale, clock: newFrameClock(nil)}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.Width()*cfg.Scale, h.fb.Height()*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errClosed) {
		return err
	}
	return nil
}

type hostGame struct {
	h     *hostHAL
	step  Step
	scale int
	clock *frameClock

	// want is the framebuffer size implied by the window, applied on the
	// next Update.
	wantW, wantH int

	fbImg   *ebiten.Image
	scratch []byte
}

func (g *hostGame) Update() error {
	if g.wantW > 0 && g.h.fb.resize(g.wantW, g.wantH) {
		g.h.log.Debug().Int("width", g.wantW).Int("height", g.wantH).Msg("framebuffer resized")
	}
	g.h.kbd.poll()
	g.h.ptr.poll(g.h.fb.Width(), g.h.fb.Height())

	if err := g.step(g.clock.step()); err != nil {
		if errors.Is(err, ErrQuit) {
			return errClosed
		}
		return err
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	w, h := fb.Width(), fb.Height()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}
	g.scratch = fb.snapshot(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.wantW = max(outsideWidth/g.scale, 1)
	g.wantH = max(outsideHeight/g.scale, 1)
	return g.h.fb.Width(), g.h.fb.Height()
}
