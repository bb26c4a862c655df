// Package anim drives numeric properties towards targets over time.
//
// A Scheduler owns at most one tween per property. Starting a new tween on a
// property replaces the one already running there; the replaced tween's
// completion callback never fires.
package anim

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Options configure a single tween.
type Options struct {
	Duration time.Duration
	// Easing defaults to ease.Linear.
	Easing ease.TweenFunc

	// OnUpdate runs after every step that changed the property.
	OnUpdate func(v float32)
	// OnComplete runs once, after the final value has been written.
	OnComplete func()
}

type tween struct {
	id    uint64
	prop  *float32
	tw    *gween.Tween
	opts  Options
	alive bool
}

// Handle refers to a started tween.
type Handle struct {
	s  *Scheduler
	id uint64
}

// Cancel stops the tween without running OnComplete. The property keeps its
// current value. Cancelling a finished or replaced tween is a no-op.
func (h Handle) Cancel() {
	if h.s == nil {
		return
	}
	for p, t := range h.s.active {
		if t.id == h.id {
			t.alive = false
			delete(h.s.active, p)
			return
		}
	}
}

// Active reports whether the tween is still running.
func (h Handle) Active() bool {
	if h.s == nil {
		return false
	}
	for _, t := range h.s.active {
		if t.id == h.id {
			return true
		}
	}
	return false
}

// Scheduler advances tweens on the caller's goroutine. It is not safe for
// concurrent use.
type Scheduler struct {
	active  map[*float32]*tween
	order   []*tween
	nextID  uint64
	started uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{active: make(map[*float32]*tween)}
}

// Animate starts moving *prop from its current value to target.
//
// A zero or negative duration writes target immediately and runs both
// callbacks before returning.
func (s *Scheduler) Animate(prop *float32, target float32, opts Options) Handle {
	if prop == nil {
		return Handle{}
	}
	if old, ok := s.active[prop]; ok {
		old.alive = false
		delete(s.active, prop)
	}
	s.nextID++
	s.started++
	id := s.nextID

	if opts.Duration <= 0 {
		*prop = target
		if opts.OnUpdate != nil {
			opts.OnUpdate(target)
		}
		if opts.OnComplete != nil {
			opts.OnComplete()
		}
		return Handle{s: s, id: id}
	}

	easing := opts.Easing
	if easing == nil {
		easing = ease.Linear
	}
	t := &tween{
		id:    id,
		prop:  prop,
		tw:    gween.New(*prop, target, float32(opts.Duration.Seconds()), easing),
		opts:  opts,
		alive: true,
	}
	s.active[prop] = t
	s.order = append(s.order, t)
	return Handle{s: s, id: id}
}

// Advance steps every running tween by dt. Callbacks may start or cancel
// tweens; tweens started during Advance first move on the next call.
func (s *Scheduler) Advance(dt time.Duration) {
	if len(s.order) == 0 {
		return
	}
	step := float32(dt.Seconds())

	snapshot := s.order
	s.order = nil
	for _, t := range snapshot {
		if !t.alive {
			continue
		}
		v, done := t.tw.Update(step)
		*t.prop = v
		if t.opts.OnUpdate != nil {
			t.opts.OnUpdate(v)
		}
		if !t.alive {
			// Replaced from inside OnUpdate.
			continue
		}
		if !done {
			s.order = append(s.order, t)
			continue
		}
		t.alive = false
		delete(s.active, t.prop)
		if t.opts.OnComplete != nil {
			t.opts.OnComplete()
		}
	}
	s.compact()
}

// compact drops tweens that were cancelled or replaced by callbacks after
// they had been carried over.
func (s *Scheduler) compact() {
	out := s.order[:0]
	for _, t := range s.order {
		if t.alive {
			out = append(out, t)
		}
	}
	s.order = out
}

// Len returns the number of running tweens.
func (s *Scheduler) Len() int { return len(s.active) }

// Busy reports whether prop has a running tween.
func (s *Scheduler) Busy(prop *float32) bool {
	_, ok := s.active[prop]
	return ok
}

// Started counts tweens ever started, including immediate ones.
func (s *Scheduler) Started() uint64 { return s.started }
