package app

import (
	"image"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightglobe/globe/catalog"
	"lightglobe/hal"
	"lightglobe/internal/config"
)

type fakeFB struct {
	img      *image.RGBA
	presents int
	panicAt  int
}

func (f *fakeFB) Width() int              { return f.img.Bounds().Dx() }
func (f *fakeFB) Height() int             { return f.img.Bounds().Dy() }
func (f *fakeFB) Format() hal.PixelFormat { return hal.PixelFormatRGBA8888 }
func (f *fakeFB) StrideBytes() int        { return f.img.Stride }
func (f *fakeFB) Buffer() []byte          { return f.img.Pix }
func (f *fakeFB) Image() *image.RGBA      { return f.img }

func (f *fakeFB) ClearRGB(r, g, b uint8) {
	for i := 0; i+3 < len(f.img.Pix); i += 4 {
		f.img.Pix[i], f.img.Pix[i+1], f.img.Pix[i+2], f.img.Pix[i+3] = r, g, b, 0xFF
	}
}

func (f *fakeFB) Present() error {
	f.presents++
	if f.presents == f.panicAt {
		panic("display lost")
	}
	return nil
}

type fakeKeys chan hal.KeyEvent

func (k fakeKeys) Events() <-chan hal.KeyEvent { return k }

type fakePointer chan hal.PointerEvent

func (p fakePointer) Events() <-chan hal.PointerEvent { return p }

type fakeHAL struct {
	fb   *fakeFB
	keys fakeKeys
	ptr  fakePointer
}

func newFakeHAL(w, h int) *fakeHAL {
	return &fakeHAL{
		fb:   &fakeFB{img: image.NewRGBA(image.Rect(0, 0, w, h))},
		keys: make(fakeKeys, 16),
		ptr:  make(fakePointer, 16),
	}
}

func (h *fakeHAL) Logger() zerolog.Logger { return zerolog.Nop() }
func (h *fakeHAL) Display() hal.Display   { return h }
func (h *fakeHAL) Input() hal.Input       { return h }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return h.keys }
func (h *fakeHAL) Pointer() hal.Pointer         { return h.ptr }

const frame = 16 * time.Millisecond

func newApp(t *testing.T, cfg config.Config, fsys afero.Fs) (*App, *fakeHAL) {
	t.Helper()
	cfg.Ambient.StarCount = 200
	h := newFakeHAL(160, 120)
	a, err := New(h, cfg, fsys)
	require.NoError(t, err)
	// Let the fonts land so the list has its final layout.
	a.Loader.Wait()
	require.NoError(t, a.Step(frame))
	return a, h
}

func press(h *fakeHAL, e hal.KeyEvent) {
	e.Press = true
	h.keys <- e
}

func TestNewBuildsListInCatalogOrder(t *testing.T) {
	a, h := newApp(t, config.Default(), afero.NewMemMapFs())

	rows := a.Panel().Rows()
	want := catalog.Builtin()
	require.Len(t, rows, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, rows[i].ID)
	}
	assert.NotNil(t, a.Panel().Face())
	assert.Equal(t, 1, h.fb.presents)

	// The globe covers the middle of the frame.
	c := h.fb.img.RGBAAt(80, 60)
	assert.NotEqual(t, [3]uint8{0x02, 0x03, 0x08}, [3]uint8{c.R, c.G, c.B})
}

func TestKeyboardListNavigation(t *testing.T) {
	a, h := newApp(t, config.Default(), afero.NewMemMapFs())
	p := a.Controller.Pick()

	press(h, hal.KeyEvent{Code: hal.KeyDown})
	require.NoError(t, a.Step(frame))
	assert.Equal(t, "USA", p.Hovered())

	press(h, hal.KeyEvent{Code: hal.KeyDown})
	require.NoError(t, a.Step(frame))
	assert.Equal(t, "China", p.Hovered())

	press(h, hal.KeyEvent{Code: hal.KeyEnter})
	require.NoError(t, a.Step(frame))
	assert.Equal(t, "China", p.Focused())
	assert.True(t, a.Controller.Director().Active())

	press(h, hal.KeyEvent{Code: hal.KeyUp})
	press(h, hal.KeyEvent{Code: hal.KeyUp})
	require.NoError(t, a.Step(frame))
	assert.Equal(t, "Australia", p.Hovered(), "cursor wraps")

	press(h, hal.KeyEvent{Code: hal.KeyEscape})
	require.NoError(t, a.Step(frame))
	assert.Equal(t, "", p.Focused())
	assert.Equal(t, "", p.Hovered())
}

func TestQuitKey(t *testing.T) {
	a, h := newApp(t, config.Default(), afero.NewMemMapFs())
	press(h, hal.KeyEvent{Rune: 'q'})
	assert.ErrorIs(t, a.Step(frame), hal.ErrQuit)
}

func TestPointerOnListRow(t *testing.T) {
	a, h := newApp(t, config.Default(), afero.NewMemMapFs())
	p := a.Controller.Pick()

	b := a.Panel().Bounds()
	rowH := b.Dy() / len(a.Panel().Rows())
	x, y := b.Min.X+2, b.Min.Y+rowH+rowH/2

	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: x, Y: y}
	require.NoError(t, a.Step(frame))
	assert.Equal(t, "China", p.Hovered())

	h.ptr <- hal.PointerEvent{Kind: hal.PointerPress, X: x, Y: y}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerRelease, X: x, Y: y}
	require.NoError(t, a.Step(frame))
	assert.Equal(t, "China", p.Focused())

	h.ptr <- hal.PointerEvent{Kind: hal.PointerLeave}
	require.NoError(t, a.Step(frame))
	assert.Equal(t, "", p.Hovered())
	assert.Equal(t, "China", p.Focused())
}

func TestPointerOffListRestoresCursorHover(t *testing.T) {
	a, h := newApp(t, config.Default(), afero.NewMemMapFs())
	p := a.Controller.Pick()

	press(h, hal.KeyEvent{Code: hal.KeyDown})
	require.NoError(t, a.Step(frame))
	require.Equal(t, "USA", p.Hovered())

	b := a.Panel().Bounds()
	rowH := b.Dy() / len(a.Panel().Rows())
	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: b.Min.X + 2, Y: b.Min.Y + rowH + rowH/2}
	require.NoError(t, a.Step(frame))
	assert.Equal(t, "China", p.Hovered())

	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: 150, Y: 110}
	require.NoError(t, a.Step(frame))
	assert.Equal(t, "USA", p.Hovered(), "cursor row owns the hover again")

	press(h, hal.KeyEvent{Code: hal.KeyEnter})
	require.NoError(t, a.Step(frame))
	assert.Equal(t, "USA", p.Focused())

	h.ptr <- hal.PointerEvent{Kind: hal.PointerLeave}
	require.NoError(t, a.Step(frame))
	assert.Equal(t, "USA", p.Hovered())
}

func TestDragMarksMotionAndCancelsFlight(t *testing.T) {
	a, h := newApp(t, config.Default(), afero.NewMemMapFs())
	a.Controller.ListClick("Brazil")
	require.True(t, a.Controller.Director().Active())

	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: 120, Y: 100}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerPress, X: 120, Y: 100}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: 130, Y: 100, DX: 10}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerRelease, X: 130, Y: 100}
	require.NoError(t, a.Step(frame))

	assert.False(t, a.Controller.Director().Active())
	assert.True(t, a.Controller.Ambient().Moving())
	// A drag is not a click.
	assert.Equal(t, "Brazil", a.Controller.Pick().Focused())
}

func TestResizeFollowsFramebuffer(t *testing.T) {
	a, h := newApp(t, config.Default(), afero.NewMemMapFs())
	h.fb.img = image.NewRGBA(image.Rect(0, 0, 200, 100))
	require.NoError(t, a.Step(frame))

	w, hh := a.Globe.Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, hh)
	assert.Same(t, h.fb.img, a.target.Img)
}

func TestCatalogFromFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := `{"type": "FeatureCollection", "features": [
	  {"type": "Feature", "id": "NO", "geometry": {"type": "Point", "coordinates": [8.47, 60.47]}, "properties": {"name": "Norway"}}
	]}`
	require.NoError(t, afero.WriteFile(fsys, "m.geojson", []byte(doc), 0o644))

	cfg := config.Default()
	cfg.Assets.Catalog = "m.geojson"
	cfg.Assets.Texture = "missing.jpg"
	a, _ := newApp(t, cfg, fsys)

	rows := a.Panel().Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Norway", rows[0].Text)

	cfg.Assets.Catalog = "nope.geojson"
	_, err := New(newFakeHAL(32, 32), cfg, fsys)
	assert.Error(t, err)
}

func TestStepRecoversPanic(t *testing.T) {
	a, h := newApp(t, config.Default(), afero.NewMemMapFs())
	h.fb.panicAt = h.fb.presents + 1

	err := a.Step(frame)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "display lost")
	// The panic screen is drawn on white.
	assert.Equal(t, uint8(0xFF), h.fb.img.RGBAAt(159, 2).R)

	require.NoError(t, a.Step(frame))
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("héllo", 2)
	assert.Equal(t, "hé", p)
	assert.Equal(t, "llo", r)
	p, r = takeRunes("ab", 5)
	assert.Equal(t, "ab", p)
	assert.Empty(t, r)
}
