package ambient

// Per-tick drift, in radians, and star opacity step.
const (
	CloudDrift  = 0.0002
	GlowDrift   = 0.002
	StarDrift   = -0.0002
	OpacityStep = 0.05
)

// Effects holds the ambient layer parameters that the scene reads each
// frame.
type Effects struct {
	// StarOpacity fades in while the camera moves and out when it rests.
	StarOpacity float32

	CloudAngle float64
	GlowAngle  float64
	StarAngle  float64
}

// Step advances the layers by one tick.
func (e *Effects) Step(moving bool) {
	if moving {
		e.StarOpacity += OpacityStep
	} else {
		e.StarOpacity -= OpacityStep
	}
	e.StarOpacity = clamp01(e.StarOpacity)

	e.CloudAngle += CloudDrift
	e.GlowAngle += GlowDrift
	e.StarAngle += StarDrift
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
