package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"lightglobe/globe/overlay"
)

// recoverFrame turns a panic inside Step into an error, logs the stack and
// leaves a panic screen in the framebuffer.
func (a *App) recoverFrame(err *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := debug.Stack()
	a.log.Error().Interface("panic", v).Bytes("stack", stack).Msg("frame panic")
	a.drawPanic(v, stack)
	*err = fmt.Errorf("frame panic: %v", v)
}

func (a *App) drawPanic(v any, stack []byte) {
	img := a.fb.Image()
	if img == nil {
		return
	}
	a.fb.ClearRGB(255, 255, 255)

	font := &proggy.TinySZ8pt7b
	_, outbox := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outbox)
	fontHeight := int16(font.GetYAdvance())
	if fontWidth <= 0 || fontHeight <= 0 {
		_ = a.fb.Present()
		return
	}

	lines := []string{"lightglobe panic:", fmt.Sprintf("panic: %v", v), "stack:"}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	}

	d := overlay.NewSurface(img)
	fg := color.RGBA{A: 255}
	cols := max(int16(img.Bounds().Dx())/fontWidth, 1)
	maxH := int16(img.Bounds().Dy())

	y := fontHeight
	for _, line := range lines {
		for len(line) > 0 {
			if y > maxH {
				_ = a.fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font, 0, y, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = a.fb.Present()
}

// takeRunes splits s after n runes.
func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
