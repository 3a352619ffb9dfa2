package ui

import (
	"testing"

	"Breathe/timer"

	"github.com/stretchr/testify/assert"
)

func TestStateFor(t *testing.T) {
	d := timer.Durations{Inhale: 4, Hold: 2, Exhale: 4}

	running := StateFor(timer.NewSnapshot(d, 0, true))
	assert.Equal(t, ShapeState{Scale: 1.6, Rotation: 0, Roundness: 0.25}, running)

	hold := StateFor(timer.NewSnapshot(d, 4, true))
	assert.Equal(t, ShapeState{Scale: 1.6, Rotation: 0, Roundness: 0.5}, hold)

	exhale := StateFor(timer.NewSnapshot(d, 7, true))
	assert.Equal(t, ShapeState{Scale: 1.0, Rotation: 45, Roundness: 0.25}, exhale)

	stopped := StateFor(timer.NewSnapshot(d, 4, false))
	assert.Equal(t, 1.0, stopped.Scale, "stopped figure stays at natural size")
	assert.Equal(t, 0.5, stopped.Roundness)
}

func TestShapeStateLerp(t *testing.T) {
	a := ShapeState{Scale: 1, Rotation: 45, Roundness: 0.25}
	b := ShapeState{Scale: 1.6, Rotation: 0, Roundness: 0.5}

	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.Equal(t, b, a.Lerp(b, 3), "progress is clamped")

	mid := a.Lerp(b, 0.5)
	assert.InDelta(t, 1.3, mid.Scale, 1e-9)
	assert.InDelta(t, 22.5, mid.Rotation, 1e-9)
	assert.InDelta(t, 0.375, mid.Roundness, 1e-9)
}

func TestCoverage_Centre(t *testing.T) {
	alpha, _ := Coverage(100, 100, 200, 200, RestingState)
	assert.Equal(t, 1.0, alpha)
}

func TestCoverage_FarCorner(t *testing.T) {
	alpha, _ := Coverage(0, 0, 200, 200, RestingState)
	assert.Equal(t, 0.0, alpha)
}

func TestCoverage_CircleCutsCorners(t *testing.T) {
	// side = 0.32 * 400 = 128, so the square spans 136..264.
	square := ShapeState{Scale: 1, Roundness: 0}
	circle := ShapeState{Scale: 1, Roundness: 0.5}

	alpha, _ := Coverage(140, 140, 400, 400, square)
	assert.Equal(t, 1.0, alpha)
	alpha, _ = Coverage(140, 140, 400, 400, circle)
	assert.Equal(t, 0.0, alpha)
}

func TestCoverage_RotationReachesDiagonal(t *testing.T) {
	// A point straight above the centre, beyond the half side but within the
	// half diagonal, is only covered once the square is turned 45 degrees.
	flat := ShapeState{Scale: 1, Rotation: 0, Roundness: 0}
	turned := ShapeState{Scale: 1, Rotation: 45, Roundness: 0}

	alpha, _ := Coverage(200, 120, 400, 400, flat)
	assert.Equal(t, 0.0, alpha)
	alpha, _ = Coverage(200, 120, 400, 400, turned)
	assert.Equal(t, 1.0, alpha)
}

func TestCoverage_ScaleGrowsFigure(t *testing.T) {
	small := ShapeState{Scale: 1, Roundness: 0.25}
	big := ShapeState{Scale: 1.6, Roundness: 0.25}

	alpha, _ := Coverage(200, 120, 400, 400, small)
	assert.Equal(t, 0.0, alpha)
	alpha, _ = Coverage(200, 120, 400, 400, big)
	assert.Equal(t, 1.0, alpha)
}

func TestCoverage_GradientRunsCornerToCorner(t *testing.T) {
	square := ShapeState{Scale: 1, Roundness: 0}
	_, topLeft := Coverage(137, 137, 400, 400, square)
	_, bottomRight := Coverage(262, 262, 400, 400, square)
	assert.Less(t, topLeft, 0.05)
	assert.Greater(t, bottomRight, 0.95)
}

func TestBuildPalette(t *testing.T) {
	p := buildPalette(gradientStops, 16)
	assert.Len(t, p, 16)
	// emerald-400 and indigo-400 end points
	assert.Equal(t, uint8(0x34), p[0].R)
	assert.Equal(t, uint8(0xd3), p[0].G)
	assert.Equal(t, uint8(0x81), p[15].R)
	assert.Equal(t, uint8(0xf8), p[15].B)
	for _, c := range p {
		assert.Equal(t, uint8(0xff), c.A)
	}
}

func TestRenderIcon(t *testing.T) {
	img := RenderIcon(64)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, uint8(0xff), img.NRGBAAt(32, 32).A)
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)

	res, err := IconResource(32)
	assert.NoError(t, err)
	assert.Equal(t, "icon.png", res.Name())
	assert.NotEmpty(t, res.Content())
}
