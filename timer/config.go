package timer

import (
	"errors"
	"fmt"
	"image/color"
	"time"
)

// TickInterval is the cadence at which a running clock advances.
const TickInterval = time.Second

// UI constants
const (
	FontSizeTitle  float32 = 28.0
	FontSizePhase  float32 = 30.0 // Phase text
	FontSizeFooter float32 = 18.0

	// Dimensions
	SidebarWidth  = 320
	WindowWidth   = 960
	WindowHeight  = 600
	ShapeBaseSide = 0.32 // fraction of the shorter side of the stage
	SliderGap     = 5

	SidebarSlide = 500 * time.Millisecond
)

// Ambient particles drifting behind the breathing shape.
const (
	ParticleCount   = 20
	ParticleSize    = 8
	ParticleRise    = 50 // px at the top of a bob
	ParticleDrift   = 15 // max sideways px either way
	ParticlePeriod  = 4 * time.Second
	ParticleJitter  = 3 * time.Second // added at random to ParticlePeriod
	ParticleStagger = 200 * time.Millisecond
	ParticleSeed    = 7

	ParticleMinAlpha = 0.3
	ParticleMaxAlpha = 0.7
)

var (
	// SidebarColor is the translucent backdrop behind the sliders.
	SidebarColor = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xb3}
	// StageTop and StageBottom are the stage background gradient stops.
	StageTop    = color.NRGBA{R: 0x0f, G: 0x2a, B: 0x2e, A: 0xff}
	StageBottom = color.NRGBA{R: 0x1e, G: 0x1b, B: 0x4b, A: 0xff}
)

var (
	ErrInhaleTooShort = errors.New("inhale must be at least 1 second")
	ErrHoldNegative   = errors.New("hold must not be negative")
	ErrExhaleTooShort = errors.New("exhale must be at least 1 second")
)

// Durations are the configured phase lengths in whole seconds.
type Durations struct {
	Inhale int `yaml:"inhale"`
	Hold   int `yaml:"hold"`
	Exhale int `yaml:"exhale"`
}

// DefaultDurations is the 4-2-4 pattern the widget starts with.
var DefaultDurations = Durations{Inhale: 4, Hold: 2, Exhale: 4}

// Total returns the length of one full cycle.
func (d Durations) Total() int {
	return d.Inhale + d.Hold + d.Exhale
}

// Validate reports the first violated invariant, if any.
func (d Durations) Validate() error {
	switch {
	case d.Inhale < 1:
		return fmt.Errorf("%w: got %d", ErrInhaleTooShort, d.Inhale)
	case d.Hold < 0:
		return fmt.Errorf("%w: got %d", ErrHoldNegative, d.Hold)
	case d.Exhale < 1:
		return fmt.Errorf("%w: got %d", ErrExhaleTooShort, d.Exhale)
	}
	return nil
}

// Range is an inclusive integer slider range.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Clamp pins v into r.
func (r Range) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Bounds holds the slider ranges for each phase.
type Bounds struct {
	Inhale Range `yaml:"inhale"`
	Hold   Range `yaml:"hold"`
	Exhale Range `yaml:"exhale"`
}

// DefaultBounds mirrors the slider limits of the breathing sidebar.
var DefaultBounds = Bounds{
	Inhale: Range{Min: 2, Max: 10},
	Hold:   Range{Min: 0, Max: 8},
	Exhale: Range{Min: 2, Max: 10},
}

// Clamp pins every duration into its slider range.
func (b Bounds) Clamp(d Durations) Durations {
	return Durations{
		Inhale: b.Inhale.Clamp(d.Inhale),
		Hold:   b.Hold.Clamp(d.Hold),
		Exhale: b.Exhale.Clamp(d.Exhale),
	}
}

// Validate checks that every range is ordered and keeps the duration invariants.
func (b Bounds) Validate() error {
	for _, r := range []struct {
		name string
		rng  Range
	}{{"inhale", b.Inhale}, {"hold", b.Hold}, {"exhale", b.Exhale}} {
		if r.rng.Min > r.rng.Max {
			return fmt.Errorf("%s range %d..%d is empty", r.name, r.rng.Min, r.rng.Max)
		}
	}
	return Durations{Inhale: b.Inhale.Min, Hold: b.Hold.Min, Exhale: b.Exhale.Min}.Validate()
}
