// Package hal is the only contact point between the globe and the host:
// a framebuffer to draw into, input devices to poll and a frame clock.
package hal

import (
	"errors"
	"image"
	"time"

	"github.com/rs/zerolog"
)

// ErrQuit is returned by a Step to end the run without an error.
var ErrQuit = errors.New("quit")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp, byte order r, g, b, a.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a resizable pixel buffer plus a "present" hook.
//
// Image shares its pixels with Buffer. Both are replaced on resize, so
// callers fetch them again whenever Width or Height change.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	Image() *image.RGBA
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyTab
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// KeyEvent is a keyboard event. Text input arrives with Code KeyUnknown and
// Rune set.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// PointerKind tells pointer events apart.
type PointerKind uint8

const (
	PointerMove PointerKind = iota + 1
	PointerLeave
	PointerPress
	PointerRelease
	PointerWheel
)

// PointerEvent is a mouse or touch event in framebuffer pixels. DX and DY are
// the motion since the previous move; Wheel is the vertical scroll amount.
type PointerEvent struct {
	Kind   PointerKind
	X, Y   int
	DX, DY int
	Wheel  float64
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Pointer provides pointer events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Display provides access to the framebuffer.
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices.
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// HAL bundles the host devices handed to the app.
type HAL interface {
	Logger() zerolog.Logger
	Display() Display
	Input() Input
}

// Step advances the app by one frame of dt.
type Step func(dt time.Duration) error
