// Package ambient tracks whether the camera is moving and drifts the
// background layers while it is.
package ambient

import "time"

// DefaultWindow is how long the moving flag survives the last movement.
const DefaultWindow = 500 * time.Millisecond

// State is a trailing-edge debounce over camera activity. The flag goes up
// on Mark and drops once no Mark has arrived for the window.
type State struct {
	window   time.Duration
	now      func() time.Duration
	moving   bool
	deadline time.Duration

	// OnChange observes flag transitions.
	OnChange func(moving bool)
}

// NewState returns a debounce reading time from now. A non-positive window
// selects DefaultWindow.
func NewState(window time.Duration, now func() time.Duration) *State {
	if window <= 0 {
		window = DefaultWindow
	}
	return &State{window: window, now: now}
}

// Mark records camera movement and restarts the window.
func (s *State) Mark() {
	s.deadline = s.now() + s.window
	s.set(true)
}

// Clear drops the flag at once, as on the end of a scripted camera move.
func (s *State) Clear() {
	s.deadline = 0
	s.set(false)
}

// Update expires the flag when the window has passed. It reports whether the
// flag changed.
func (s *State) Update() bool {
	if !s.moving || s.now() < s.deadline {
		return false
	}
	s.set(false)
	return true
}

func (s *State) Moving() bool { return s.moving }

// Window returns the debounce window.
func (s *State) Window() time.Duration { return s.window }

func (s *State) set(v bool) {
	if s.moving == v {
		return
	}
	s.moving = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}
