package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu  sync.Mutex
	img *image.RGBA
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{img: image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))}
}

func (f *hostFramebuffer) Width() int          { return f.img.Bounds().Dx() }
func (f *hostFramebuffer) Height() int         { return f.img.Bounds().Dy() }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }
func (f *hostFramebuffer) StrideBytes() int    { return f.img.Stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.img.Pix }
func (f *hostFramebuffer) Image() *image.RGBA  { return f.img }
func (f *hostFramebuffer) Present() error      { return nil }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pix := f.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = 0xFF
	}
}

// resize reallocates the buffer and reports whether the size changed.
func (f *hostFramebuffer) resize(width, height int) bool {
	width, height = max(width, 1), max(height, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if width == f.img.Bounds().Dx() && height == f.img.Bounds().Dy() {
		return false
	}
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return true
}

func (f *hostFramebuffer) snapshot(dst []byte) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cap(dst) < len(f.img.Pix) {
		dst = make([]byte, len(f.img.Pix))
	}
	dst = dst[:len(f.img.Pix)]
	copy(dst, f.img.Pix)
	return dst
}
