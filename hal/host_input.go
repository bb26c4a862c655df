package hal

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(e KeyEvent) {
	select {
	case k.ch <- e:
	default:
	}
}

type hostPointer struct {
	ch chan PointerEvent

	x, y   int
	seen   bool
	inside bool
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(e PointerEvent) {
	select {
	case p.ch <- e:
	default:
	}
}

// moveTo turns an absolute cursor position into move and leave events.
func (p *hostPointer) moveTo(x, y, w, h int) {
	in := x >= 0 && y >= 0 && x < w && y < h
	if !in {
		if p.inside {
			p.inside = false
			p.emit(PointerEvent{Kind: PointerLeave, X: x, Y: y})
		}
		p.x, p.y, p.seen = x, y, true
		return
	}
	if p.inside && p.seen && x == p.x && y == p.y {
		return
	}
	e := PointerEvent{Kind: PointerMove, X: x, Y: y}
	if p.seen {
		e.DX, e.DY = x-p.x, y-p.y
	}
	p.x, p.y, p.seen, p.inside = x, y, true, true
	p.emit(e)
}
