package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePhase_PartitionsCycle(t *testing.T) {
	for inhale := 1; inhale <= 10; inhale++ {
		for hold := 0; hold <= 8; hold++ {
			for exhale := 1; exhale <= 10; exhale++ {
				d := Durations{Inhale: inhale, Hold: hold, Exhale: exhale}
				counts := map[Phase]int{}
				prev := PhaseInhale
				for e := 0; e < d.Total(); e++ {
					p := DerivePhase(e, d)
					if p < prev {
						t.Fatalf("%+v: phase went backwards at elapsed %d", d, e)
					}
					prev = p
					counts[p]++

					r := RemainingSeconds(e, p, d)
					if r < 1 || r > PhaseLength(p, d) {
						t.Fatalf("%+v: remaining %d out of [1,%d] at elapsed %d", d, r, PhaseLength(p, d), e)
					}
				}
				assert.Equal(t, inhale, counts[PhaseInhale])
				assert.Equal(t, hold, counts[PhaseHold])
				assert.Equal(t, exhale, counts[PhaseExhale])
			}
		}
	}
}

func TestDerivePhase_FourTwoFour(t *testing.T) {
	d := Durations{Inhale: 4, Hold: 2, Exhale: 4}
	want := []struct {
		phase     Phase
		remaining int
	}{
		{PhaseInhale, 4}, {PhaseInhale, 3}, {PhaseInhale, 2}, {PhaseInhale, 1},
		{PhaseHold, 2}, {PhaseHold, 1},
		{PhaseExhale, 4}, {PhaseExhale, 3}, {PhaseExhale, 2}, {PhaseExhale, 1},
	}
	for elapsed, w := range want {
		p := DerivePhase(elapsed, d)
		assert.Equal(t, w.phase, p, "elapsed %d", elapsed)
		assert.Equal(t, w.remaining, RemainingSeconds(elapsed, p, d), "elapsed %d", elapsed)
	}
}

func TestDerivePhase_ZeroHoldSkipsHold(t *testing.T) {
	d := Durations{Inhale: 4, Hold: 0, Exhale: 4}
	for e := 0; e < d.Total(); e++ {
		assert.NotEqual(t, PhaseHold, DerivePhase(e, d), "elapsed %d", e)
	}
}

func TestAnimationTargetFor(t *testing.T) {
	tests := []struct {
		phase Phase
		want  AnimationTarget
	}{
		{PhaseInhale, AnimationTarget{Scale: 1.6, RotationDegrees: 0, Shape: ShapeRoundedSquare}},
		{PhaseHold, AnimationTarget{Scale: 1.6, RotationDegrees: 0, Shape: ShapeCircle}},
		{PhaseExhale, AnimationTarget{Scale: 1.0, RotationDegrees: 45, Shape: ShapeRoundedSquare}},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, AnimationTargetFor(tt.phase))
		})
	}
}

func TestShapeRoundness(t *testing.T) {
	assert.InDelta(t, 0.25, ShapeRoundedSquare.Roundness(), 1e-9)
	assert.InDelta(t, 0.5, ShapeCircle.Roundness(), 1e-9)
}

func TestPhaseLength(t *testing.T) {
	d := Durations{Inhale: 5, Hold: 3, Exhale: 7}
	assert.Equal(t, 5, PhaseLength(PhaseInhale, d))
	assert.Equal(t, 3, PhaseLength(PhaseHold, d))
	assert.Equal(t, 7, PhaseLength(PhaseExhale, d))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "4s", FormatSeconds(4))
	assert.Equal(t, "0s", FormatSeconds(0))
	assert.Equal(t, "0s", FormatSeconds(-2))
}
