package timer

// Phase is one segment of a breathing cycle.
type Phase int

const (
	PhaseInhale Phase = iota
	PhaseHold
	PhaseExhale
)

// String returns the display key of the phase, also used as the i18n key.
func (p Phase) String() string {
	switch p {
	case PhaseInhale:
		return "Inhale"
	case PhaseHold:
		return "Hold"
	case PhaseExhale:
		return "Exhale"
	}
	return "Unknown"
}

// Shape is the outline the breathing figure morphs towards.
type Shape int

const (
	ShapeRoundedSquare Shape = iota
	ShapeCircle
)

// Roundness returns the corner radius as a fraction of the side length.
func (s Shape) Roundness() float64 {
	if s == ShapeCircle {
		return 0.5
	}
	return 0.25
}

// AnimationTarget is the pose the renderer eases towards during a phase.
type AnimationTarget struct {
	Scale           float64
	RotationDegrees float64
	Shape           Shape
}

var animationTargets = map[Phase]AnimationTarget{
	PhaseInhale: {Scale: 1.6, RotationDegrees: 0, Shape: ShapeRoundedSquare},
	PhaseHold:   {Scale: 1.6, RotationDegrees: 0, Shape: ShapeCircle},
	PhaseExhale: {Scale: 1.0, RotationDegrees: 45, Shape: ShapeRoundedSquare},
}

// AnimationTargetFor looks up the pose for a phase.
func AnimationTargetFor(p Phase) AnimationTarget {
	if t, ok := animationTargets[p]; ok {
		return t
	}
	return animationTargets[PhaseExhale]
}

// DerivePhase maps an elapsed second onto the phase it falls in.
func DerivePhase(elapsed int, d Durations) Phase {
	switch {
	case elapsed < d.Inhale:
		return PhaseInhale
	case elapsed < d.Inhale+d.Hold:
		return PhaseHold
	default:
		return PhaseExhale
	}
}

// RemainingSeconds counts the seconds left in phase p, including the current one.
func RemainingSeconds(elapsed int, p Phase, d Durations) int {
	switch p {
	case PhaseInhale:
		return d.Inhale - elapsed
	case PhaseHold:
		return d.Inhale + d.Hold - elapsed
	default:
		return d.Total() - elapsed
	}
}

// PhaseLength returns the configured length of p in seconds.
func PhaseLength(p Phase, d Durations) int {
	switch p {
	case PhaseInhale:
		return d.Inhale
	case PhaseHold:
		return d.Hold
	default:
		return d.Exhale
	}
}
