package app

import (
	"lightglobe/globe/quarkgl"
	"lightglobe/hal"
)

func (a *App) handleKeys() error {
	for {
		select {
		case e := <-a.kbd.Events():
			if err := a.key(e); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (a *App) key(e hal.KeyEvent) error {
	if !e.Press {
		return nil
	}
	switch e.Code {
	case hal.KeyUp:
		a.moveCursor(-1)
	case hal.KeyDown, hal.KeyTab:
		a.moveCursor(1)
	case hal.KeyHome:
		a.setCursor(0)
	case hal.KeyEnd:
		a.setCursor(len(a.panel.Rows()) - 1)
	case hal.KeyEnter:
		if id := a.cursorID(); id != "" {
			a.ctrl.ListClick(id)
		}
	case hal.KeyEscape:
		a.setCursor(-1)
		a.ctrl.ClearFocus()
	case hal.KeyLeft:
		a.ctrl.Drag(-keyOrbitStep, 0)
	case hal.KeyRight:
		a.ctrl.Drag(keyOrbitStep, 0)
	case hal.KeyPageUp:
		a.ctrl.Zoom(-keyZoomStep)
	case hal.KeyPageDown:
		a.ctrl.Zoom(keyZoomStep)
	case hal.KeyUnknown:
		switch e.Rune {
		case 'w':
			if a.renderer.Mode == quarkgl.RenderSolid {
				a.renderer.SetRenderMode(quarkgl.RenderWireframe)
			} else {
				a.renderer.SetRenderMode(quarkgl.RenderSolid)
			}
		case 'q':
			return hal.ErrQuit
		}
	}
	return nil
}

func (a *App) cursorID() string {
	rows := a.panel.Rows()
	if a.cursor < 0 || a.cursor >= len(rows) {
		return ""
	}
	return rows[a.cursor].ID
}

func (a *App) moveCursor(d int) {
	n := len(a.panel.Rows())
	if n == 0 {
		return
	}
	if a.cursor < 0 {
		if d > 0 {
			a.setCursor(0)
		} else {
			a.setCursor(n - 1)
		}
		return
	}
	a.setCursor((a.cursor + d + n) % n)
}

// setCursor moves the keyboard selection, which hovers its row like the
// pointer would.
func (a *App) setCursor(i int) {
	if old := a.cursorID(); old != "" {
		a.ctrl.ListHover(old, false)
	}
	a.cursor = i
	if id := a.cursorID(); id != "" {
		a.ctrl.ListHover(id, true)
	} else {
		a.cursor = -1
	}
}

func (a *App) handlePointer() {
	for {
		select {
		case e := <-a.ptr.Events():
			a.pointer(e)
		default:
			return
		}
	}
}

func (a *App) pointer(e hal.PointerEvent) {
	switch e.Kind {
	case hal.PointerMove:
		if a.pressed && a.row == "" {
			if e.DX != 0 || e.DY != 0 {
				a.dragged = true
				a.ctrl.Drag(float64(e.DX), float64(e.DY))
			}
		}
		row, _ := a.panel.HitTest(e.X, e.Y)
		a.setRow(row)
		if row != "" {
			a.ctrl.PointerLeft()
			return
		}
		a.ctrl.PointerMoved(a.ndc(e.X, e.Y))
	case hal.PointerLeave:
		a.setRow("")
		a.pressed = false
		a.ctrl.PointerLeft()
	case hal.PointerPress:
		a.pressed, a.dragged = true, false
	case hal.PointerRelease:
		if a.pressed && !a.dragged {
			if a.row != "" {
				a.ctrl.ListClick(a.row)
			} else {
				a.ctrl.ClickScene()
			}
		}
		a.pressed = false
	case hal.PointerWheel:
		a.ctrl.Zoom(-e.Wheel * wheelZoom)
	}
}

// setRow tracks the list row under the pointer. Once the pointer lets go
// of the list, the keyboard cursor's row takes the hover back.
func (a *App) setRow(id string) {
	if id == a.row {
		return
	}
	if a.row != "" {
		a.ctrl.ListHover(a.row, false)
	}
	a.row = id
	if id == "" {
		id = a.cursorID()
	}
	if id != "" {
		a.ctrl.ListHover(id, true)
	}
}
