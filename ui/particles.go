package ui

import (
	"image/color"
	"math/rand/v2"
	"sync"
	"time"

	"Breathe/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// particle is one bobbing dot. baseX and baseY are fractions of the stage.
type particle struct {
	dot          *canvas.Circle
	baseX, baseY float32
	drift        float32
	period       time.Duration
	delay        time.Duration

	progress float32
	anim     *fyne.Animation
	wait     *time.Timer
}

// position places the dot for progress f, 0 at rest and 1 at the top of a bob.
func (pt *particle) position(size fyne.Size, f float32) fyne.Position {
	half := float32(timer.ParticleSize) / 2
	return fyne.NewPos(
		pt.baseX*size.Width-half+pt.drift*f,
		pt.baseY*size.Height-half-timer.ParticleRise*f,
	)
}

// Particles is the ambient layer of small white dots behind the figure. The
// dots animate while the widget has a renderer.
type Particles struct {
	widget.BaseWidget

	mu      sync.Mutex
	parts   []*particle
	running bool
	size    fyne.Size
}

// NewParticles scatters timer.ParticleCount dots. The layout is seeded so
// every launch looks the same.
func NewParticles() *Particles {
	rng := rand.New(rand.NewPCG(timer.ParticleSeed, timer.ParticleSeed))
	p := &Particles{}
	for i := 0; i < timer.ParticleCount; i++ {
		dot := canvas.NewCircle(particleColor(timer.ParticleMinAlpha))
		dot.Resize(fyne.NewSquareSize(timer.ParticleSize))
		p.parts = append(p.parts, &particle{
			dot:    dot,
			baseX:  0.1 + 0.8*rng.Float32(),
			baseY:  0.15 + 0.75*rng.Float32(),
			drift:  (rng.Float32()*2 - 1) * timer.ParticleDrift,
			period: timer.ParticlePeriod + time.Duration(rng.Int64N(int64(timer.ParticleJitter))),
			delay:  time.Duration(i) * timer.ParticleStagger,
		})
	}
	p.ExtendBaseWidget(p)
	return p
}

// Dots returns the circles in drawing order.
func (p *Particles) Dots() []*canvas.Circle {
	dots := make([]*canvas.Circle, len(p.parts))
	for i, pt := range p.parts {
		dots[i] = pt.dot
	}
	return dots
}

// Running reports whether the dots are animating.
func (p *Particles) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Start begins the looping bob of every dot, each one timer.ParticleStagger
// after the previous.
func (p *Particles) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	var now []*fyne.Animation
	for _, pt := range p.parts {
		anim := p.newAnimation(pt)
		pt.anim = anim
		if pt.delay <= 0 {
			now = append(now, anim)
			continue
		}
		pt.wait = time.AfterFunc(pt.delay, func() {
			fyne.Do(func() {
				p.mu.Lock()
				current := p.running && pt.anim == anim
				p.mu.Unlock()
				if current {
					anim.Start()
				}
			})
		})
	}
	p.mu.Unlock()

	// Outside the lock: a driver may tick synchronously from Start.
	for _, anim := range now {
		anim.Start()
	}
}

// Stop halts every dot where it is and cancels pending starts.
func (p *Particles) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	var anims []*fyne.Animation
	for _, pt := range p.parts {
		if pt.wait != nil {
			pt.wait.Stop()
			pt.wait = nil
		}
		if pt.anim != nil {
			anims = append(anims, pt.anim)
			pt.anim = nil
		}
	}
	p.mu.Unlock()

	for _, anim := range anims {
		anim.Stop()
	}
}

// newAnimation runs half a period up and reverses back down, forever.
func (p *Particles) newAnimation(pt *particle) *fyne.Animation {
	anim := fyne.NewAnimation(pt.period/2, func(f float32) {
		p.step(pt, f)
	})
	anim.AutoReverse = true
	anim.RepeatCount = fyne.AnimationRepeatForever
	anim.Curve = fyne.AnimationEaseInOut
	return anim
}

func (p *Particles) step(pt *particle, f float32) {
	p.mu.Lock()
	pt.progress = f
	size := p.size
	p.mu.Unlock()

	pt.dot.FillColor = particleColor(timer.ParticleMinAlpha + (timer.ParticleMaxAlpha-timer.ParticleMinAlpha)*float64(f))
	pt.dot.Move(pt.position(size, f))
	pt.dot.Refresh()
}

func (p *Particles) CreateRenderer() fyne.WidgetRenderer {
	objects := make([]fyne.CanvasObject, len(p.parts))
	for i, pt := range p.parts {
		objects[i] = pt.dot
	}
	p.Start()
	return &particlesRenderer{p: p, objects: objects}
}

type particlesRenderer struct {
	p       *Particles
	objects []fyne.CanvasObject
}

func (r *particlesRenderer) Layout(size fyne.Size) {
	r.p.mu.Lock()
	r.p.size = size
	r.p.mu.Unlock()
	for _, pt := range r.p.parts {
		r.p.mu.Lock()
		f := pt.progress
		r.p.mu.Unlock()
		pt.dot.Move(pt.position(size, f))
	}
}

func (r *particlesRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (r *particlesRenderer) Refresh() {
	for _, o := range r.objects {
		canvas.Refresh(o)
	}
}

func (r *particlesRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *particlesRenderer) Destroy() {
	r.p.Stop()
}

// particleColor is white at 40% scaled by the pulse opacity.
func particleColor(opacity float64) color.NRGBA {
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: uint8(0.4 * clamp01(opacity) * 0xff)}
}
