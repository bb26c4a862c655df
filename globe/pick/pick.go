// Package pick holds the hover and focus selection and the proximity rule
// that turns a globe hit point into a marker id.
package pick

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"

	"lightglobe/globe/anim"
	"lightglobe/globe/markers"
)

// DefaultThreshold is the hit distance on the unit sphere.
const DefaultThreshold = 0.5

// Lookup resolves marker ids to visuals.
type Lookup interface {
	Lookup(id string) (*markers.Visual, bool)
}

// Levels are the highlight intensities. Focus must not be below Hover so a
// focused marker stays distinct under the pointer.
type Levels struct {
	Hover    float32
	Focus    float32
	Duration time.Duration
}

func DefaultLevels() Levels {
	return Levels{Hover: 2, Focus: 3, Duration: 300 * time.Millisecond}
}

// State tracks at most one hovered and at most one focused marker. The empty
// id means none.
//
// A visual's rendered intensity is the hotter of its hover and focus levels.
// Every change retargets only the visuals whose level actually moved, and
// the scheduler replaces any tween already running on that intensity.
type State struct {
	markers Lookup
	anim    markers.Animator
	levels  Levels
	log     zerolog.Logger

	hovered string
	focused string

	targets map[string]float32
	tweens  int
}

func NewState(m Lookup, a markers.Animator, levels Levels, log zerolog.Logger) *State {
	if levels.Focus < levels.Hover {
		levels.Focus = levels.Hover
	}
	return &State{
		markers: m,
		anim:    a,
		levels:  levels,
		log:     log.With().Str("component", "pick").Logger(),
		targets: make(map[string]float32),
	}
}

func (s *State) Hovered() string { return s.hovered }
func (s *State) Focused() string { return s.focused }

// Tweens counts intensity tweens started so far.
func (s *State) Tweens() int { return s.tweens }

// SetHovered moves the hover to id. Unknown ids clear it. It reports whether
// the hovered marker changed.
func (s *State) SetHovered(id string) bool {
	id = s.known(id)
	if id == s.hovered {
		return false
	}
	prev := s.hovered
	s.hovered = id
	s.log.Debug().Str("from", prev).Str("to", id).Msg("hover")
	s.retarget(prev)
	s.retarget(id)
	return true
}

// SetFocused moves the focus to id and shows its label. Unknown ids clear
// it. It reports whether the focused marker changed.
func (s *State) SetFocused(id string) bool {
	id = s.known(id)
	if id == s.focused {
		return false
	}
	prev := s.focused
	s.focused = id
	s.log.Debug().Str("from", prev).Str("to", id).Msg("focus")

	if v, ok := s.markers.Lookup(prev); ok {
		v.Label.Visible = false
	}
	if v, ok := s.markers.Lookup(id); ok {
		v.Label.Visible = true
	}
	s.retarget(prev)
	s.retarget(id)
	return true
}

// Level returns the intensity id should settle at.
func (s *State) Level(id string) float32 {
	var l float32
	if id == "" {
		return 0
	}
	if id == s.hovered {
		l = s.levels.Hover
	}
	if id == s.focused && s.levels.Focus > l {
		l = s.levels.Focus
	}
	return l
}

func (s *State) retarget(id string) {
	v, ok := s.markers.Lookup(id)
	if !ok {
		return
	}
	want := s.Level(id)
	cur, seen := s.targets[id]
	if !seen {
		cur = v.Intensity
	}
	s.targets[id] = want
	if cur == want {
		return
	}
	s.tweens++
	s.anim.Animate(&v.Intensity, want, anim.Options{
		Duration: s.levels.Duration,
		Easing:   ease.OutQuad,
	})
}

func (s *State) known(id string) string {
	if id == "" {
		return ""
	}
	if _, ok := s.markers.Lookup(id); !ok {
		return ""
	}
	return id
}

// Nearest returns the anchor closest to p if it lies strictly within
// threshold. Distances are measured in globe-local units, so apparent
// marker size on screen plays no part.
func Nearest(p mgl64.Vec3, anchors []markers.Anchor, threshold float64) (string, bool) {
	best := ""
	bestDist := threshold
	for _, a := range anchors {
		d := a.Point.Sub(p).Len()
		if d < bestDist {
			best, bestDist = a.ID, d
		}
	}
	return best, best != ""
}
