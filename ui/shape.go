package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"
	"time"

	"Breathe/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/lucasb-eyer/go-colorful"
)

// gradientStops run top-left to bottom-right across the figure.
var gradientStops = []string{"#34d399", "#38bdf8", "#818cf8"}

const paletteSize = 256

// ShapeState is the pose of the breathing figure at one instant.
type ShapeState struct {
	Scale     float64
	Rotation  float64 // degrees
	Roundness float64 // corner radius / side, 0.5 is a circle
}

// RestingState is the pose shown before the first snapshot arrives.
var RestingState = ShapeState{Scale: 1, Rotation: 0, Roundness: timer.ShapeRoundedSquare.Roundness()}

// StateFor converts a snapshot into the pose to ease towards. A stopped
// clock keeps the figure at its natural size.
func StateFor(s timer.Snapshot) ShapeState {
	scale := s.Target.Scale
	if !s.Running {
		scale = 1
	}
	return ShapeState{
		Scale:     scale,
		Rotation:  s.Target.RotationDegrees,
		Roundness: s.Target.Shape.Roundness(),
	}
}

// Lerp interpolates between two poses, p in [0,1].
func (a ShapeState) Lerp(b ShapeState, p float64) ShapeState {
	p = clamp01(p)
	return ShapeState{
		Scale:     a.Scale + (b.Scale-a.Scale)*p,
		Rotation:  a.Rotation + (b.Rotation-a.Rotation)*p,
		Roundness: a.Roundness + (b.Roundness-a.Roundness)*p,
	}
}

// Coverage reports how much of pixel (x, y) in a w×h stage the figure covers,
// from 0 (outside) to 1 (inside), and the gradient position under it.
func Coverage(x, y, w, h int, st ShapeState) (alpha, gradient float64) {
	side := timer.ShapeBaseSide * float64(min(w, h)) * st.Scale
	if side <= 0 {
		return 0, 0
	}
	half := side / 2
	px := float64(x) + 0.5 - float64(w)/2
	py := float64(y) + 0.5 - float64(h)/2

	// Rotate the sample into the figure's frame.
	rad := -st.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	lx := px*cos - py*sin
	ly := px*sin + py*cos

	r := clamp01(st.Roundness/0.5) * half
	qx := math.Abs(lx) - (half - r)
	qy := math.Abs(ly) - (half - r)
	outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
	inside := math.Min(math.Max(qx, qy), 0)
	dist := outside + inside - r

	alpha = clamp01(0.5 - dist)
	gradient = clamp01((lx + ly + side) / (2 * side))
	return alpha, gradient
}

// BreathingShape draws the animated figure on a raster.
type BreathingShape struct {
	widget.BaseWidget

	mu      sync.RWMutex
	state   ShapeState
	anim    *fyne.Animation
	raster  *canvas.Raster
	palette []color.NRGBA
}

// NewBreathingShape creates the figure at its resting pose.
func NewBreathingShape() *BreathingShape {
	s := &BreathingShape{state: RestingState, palette: buildPalette(gradientStops, paletteSize)}
	s.raster = canvas.NewRasterWithPixels(s.pixel)
	s.ExtendBaseWidget(s)
	return s
}

func (s *BreathingShape) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.raster)
}

// State returns the current pose.
func (s *BreathingShape) State() ShapeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetState jumps to a pose, cancelling any running animation.
func (s *BreathingShape) SetState(st ShapeState) {
	s.stopAnimation()
	s.setState(st)
}

// AnimateTo eases from the current pose to target over d. Must be called on
// the UI goroutine.
func (s *BreathingShape) AnimateTo(target ShapeState, d time.Duration) {
	s.stopAnimation()
	if d <= 0 {
		s.setState(target)
		return
	}
	from := s.State()
	anim := fyne.NewAnimation(d, func(p float32) {
		s.setState(from.Lerp(target, float64(p)))
	})
	anim.Curve = fyne.AnimationEaseInOut
	s.mu.Lock()
	s.anim = anim
	s.mu.Unlock()
	anim.Start()
}

func (s *BreathingShape) stopAnimation() {
	s.mu.Lock()
	anim := s.anim
	s.anim = nil
	s.mu.Unlock()
	if anim != nil {
		anim.Stop()
	}
}

func (s *BreathingShape) setState(st ShapeState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.raster.Refresh()
}

func (s *BreathingShape) pixel(x, y, w, h int) color.Color {
	st := s.State()
	alpha, g := Coverage(x, y, w, h, st)
	if alpha <= 0 {
		return color.Transparent
	}
	c := s.palette[int(g*float64(len(s.palette)-1))]
	c.A = uint8(float64(c.A) * alpha)
	return c
}

// iconState fills most of a square icon with the resting figure.
var iconState = ShapeState{Scale: 2.5, Rotation: 0, Roundness: timer.ShapeRoundedSquare.Roundness()}

// RenderIcon draws the figure on a transparent size×size image.
func RenderIcon(size int) *image.NRGBA {
	palette := buildPalette(gradientStops, paletteSize)
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			alpha, g := Coverage(x, y, size, size, iconState)
			if alpha <= 0 {
				continue
			}
			c := palette[int(g*float64(len(palette)-1))]
			c.A = uint8(float64(c.A) * alpha)
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// IconResource encodes RenderIcon as a PNG application icon.
func IconResource(size int) (fyne.Resource, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, RenderIcon(size)); err != nil {
		return nil, err
	}
	return fyne.NewStaticResource("icon.png", buf.Bytes()), nil
}

// buildPalette blends the hex stops in Lab space into n colours.
func buildPalette(stops []string, n int) []color.NRGBA {
	cols := make([]colorful.Color, len(stops))
	for i, hex := range stops {
		c, err := colorful.Hex(hex)
		if err != nil {
			c = colorful.Color{R: 1, G: 1, B: 1}
		}
		cols[i] = c
	}
	out := make([]color.NRGBA, n)
	if len(cols) == 1 {
		r, g, b := cols[0].RGB255()
		for i := range out {
			out[i] = color.NRGBA{R: r, G: g, B: b, A: 0xff}
		}
		return out
	}
	segments := float64(len(cols) - 1)
	for i := range out {
		t := float64(i) / float64(n-1) * segments
		seg := int(t)
		if seg >= len(cols)-1 {
			seg = len(cols) - 2
		}
		c := cols[seg].BlendLab(cols[seg+1], t-float64(seg)).Clamped()
		r, g, b := c.RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
