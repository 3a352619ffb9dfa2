package ui

import (
	"fmt"
	"image/color"
	"time"

	"Breathe/control"
	"Breathe/i18n"
	"Breathe/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type App interface {
	EnqueueCommand(cmd control.Command)
	HandleKeyRune(rune)
	ShowInfoDialog(title string, minSize fyne.Size)
}

// PhaseSlider is one labelled duration slider in the sidebar.
type PhaseSlider struct {
	Phase  timer.Phase
	Label  *widget.Label
	Slider *widget.Slider
	value  int
}

func newPhaseSlider(p timer.Phase, r timer.Range, value int, onChange func()) *PhaseSlider {
	ps := &PhaseSlider{Phase: p, value: r.Clamp(value)}
	ps.Label = widget.NewLabelWithStyle(ps.labelText(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ps.Slider = widget.NewSlider(float64(r.Min), float64(r.Max))
	ps.Slider.Step = 1
	ps.Slider.Value = float64(ps.value)
	ps.Slider.OnChanged = func(f float64) {
		v := r.Clamp(int(f + 0.5))
		if v == ps.value {
			return
		}
		ps.value = v
		ps.Label.SetText(ps.labelText())
		onChange()
	}
	return ps
}

func (ps *PhaseSlider) labelText() string {
	return fmt.Sprintf("%s: %s", i18n.T(ps.Phase.String()), timer.FormatSeconds(ps.value))
}

// Value returns the slider position in whole seconds.
func (ps *PhaseSlider) Value() int {
	return ps.value
}

// View holds the widgets of the main window and renders clock snapshots.
type View struct {
	app App

	Sidebar             fyne.CanvasObject
	ToggleSidebarButton *widget.Button
	StartStopButton     *widget.Button
	Inhale, Hold        *PhaseSlider
	Exhale              *PhaseSlider
	PhaseText           *canvas.Text
	Shape               *BreathingShape
	Particles           *Particles
	Stage               *TappableContainer
	Content             fyne.CanvasObject

	split       *fyne.Container
	slide       *slideLayout
	backdrop    *canvas.Rectangle
	sidebarAnim *fyne.Animation
	sidebarOpen bool
	lastTarget  ShapeState
	hasTarget   bool
}

// NewView builds the sidebar and the stage. The sliders start at d, pinned
// into bounds.
func NewView(a App, bounds timer.Bounds, d timer.Durations, sidebarOpen bool) *View {
	v := &View{app: a, sidebarOpen: true, slide: &slideLayout{width: timer.SidebarWidth}}

	onChange := func() {
		a.EnqueueCommand(control.Command{Type: control.CmdSetDurations, Durations: v.Durations()})
	}
	v.Inhale = newPhaseSlider(timer.PhaseInhale, bounds.Inhale, d.Inhale, onChange)
	v.Hold = newPhaseSlider(timer.PhaseHold, bounds.Hold, d.Hold, onChange)
	v.Exhale = newPhaseSlider(timer.PhaseExhale, bounds.Exhale, d.Exhale, onChange)

	v.StartStopButton = widget.NewButtonWithIcon(i18n.T("Start"), theme.MediaPlayIcon(), func() {
		a.EnqueueCommand(control.Command{Type: control.CmdToggle})
	})
	v.StartStopButton.Importance = widget.HighImportance

	v.Sidebar = v.buildSidebar()

	v.ToggleSidebarButton = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), v.ToggleSidebar)
	v.ToggleSidebarButton.Importance = widget.LowImportance

	v.Shape = NewBreathingShape()
	v.Particles = NewParticles()
	v.PhaseText = canvas.NewText("", color.White)
	v.PhaseText.TextStyle.Bold = true
	v.PhaseText.TextSize = timer.FontSizePhase
	v.PhaseText.Alignment = fyne.TextAlignCenter
	v.PhaseText.Hide()

	v.Stage = v.buildStage()

	v.split = container.NewBorder(nil, nil, v.Sidebar, nil, v.Stage)
	overlay := container.NewVBox(container.NewHBox(v.ToggleSidebarButton, layout.NewSpacer()))
	v.Content = container.NewStack(v.split, container.NewPadded(overlay))

	if !sidebarOpen {
		v.sidebarOpen = false
		v.setSidebarWidth(0)
		v.Sidebar.Hide()
		v.ToggleSidebarButton.SetIcon(theme.NavigateNextIcon())
	}
	return v
}

func (v *View) buildSidebar() fyne.CanvasObject {
	title := canvas.NewText(i18n.T("Breathe your Break"), color.White)
	title.TextStyle.Bold = true
	title.TextSize = timer.FontSizeTitle

	gap := func() fyne.CanvasObject {
		r := canvas.NewRectangle(color.Transparent)
		r.SetMinSize(fyne.NewSize(0, timer.SliderGap))
		return r
	}

	controls := container.NewVBox(
		container.NewCenter(title),
		gap(),
		v.Inhale.Label, v.Inhale.Slider, gap(),
		v.Hold.Label, v.Hold.Slider, gap(),
		v.Exhale.Label, v.Exhale.Slider, gap(),
		v.StartStopButton,
	)

	footer := canvas.NewText(i18n.T("Find your calm 🌿"), color.White)
	footer.TextStyle = fyne.TextStyle{Bold: true, Italic: true}
	footer.TextSize = timer.FontSizeFooter
	footer.Alignment = fyne.TextAlignCenter

	v.backdrop = canvas.NewRectangle(timer.SidebarColor)

	// Leave room for the toggle button above the title.
	top := canvas.NewRectangle(color.Transparent)
	top.SetMinSize(fyne.NewSize(0, 36))

	body := container.NewBorder(container.NewVBox(top, controls), footer, nil, nil)
	panel := container.NewStack(v.backdrop, container.NewPadded(body))
	return container.New(v.slide, panel)
}

func (v *View) buildStage() *TappableContainer {
	background := canvas.NewLinearGradient(timer.StageTop, timer.StageBottom, 135)

	bottomGap := canvas.NewRectangle(color.Transparent)
	bottomGap.SetMinSize(fyne.NewSize(0, 60))
	text := container.NewVBox(layout.NewSpacer(), v.PhaseText, bottomGap)

	stage := container.NewStack(background, v.Particles, v.Shape, text)
	return NewTappableContainer(stage,
		func() {
			v.app.EnqueueCommand(control.Command{Type: control.CmdToggle})
		},
		func(*fyne.PointEvent) {
			v.app.EnqueueCommand(control.Command{Type: control.CmdReset})
		})
}

// Durations returns the durations currently selected on the sliders.
func (v *View) Durations() timer.Durations {
	return timer.Durations{Inhale: v.Inhale.Value(), Hold: v.Hold.Value(), Exhale: v.Exhale.Value()}
}

// SetDurations moves the sliders, e.g. after the config file changed. Moved
// sliders report the change like a user drag would.
func (v *View) SetDurations(d timer.Durations) {
	v.Inhale.Slider.SetValue(float64(d.Inhale))
	v.Hold.Slider.SetValue(float64(d.Hold))
	v.Exhale.Slider.SetValue(float64(d.Exhale))
}

// SidebarOpen reports whether the sliders are visible.
func (v *View) SidebarOpen() bool {
	return v.sidebarOpen
}

// SidebarWidth returns the visible width of the sidebar, which eases
// between 0 and timer.SidebarWidth while toggling.
func (v *View) SidebarWidth() float32 {
	return v.slide.width
}

// ToggleSidebar slides the sliders in or out. Must be called on the UI
// goroutine.
func (v *View) ToggleSidebar() {
	v.sidebarOpen = !v.sidebarOpen
	if v.sidebarAnim != nil {
		v.sidebarAnim.Stop()
	}

	from, to := v.slide.width, float32(0)
	open := v.sidebarOpen
	if open {
		to = timer.SidebarWidth
		v.Sidebar.Show()
		v.ToggleSidebarButton.SetIcon(theme.NavigateBackIcon())
	} else {
		v.ToggleSidebarButton.SetIcon(theme.NavigateNextIcon())
	}

	anim := fyne.NewAnimation(timer.SidebarSlide, func(p float32) {
		v.setSidebarWidth(from + (to-from)*p)
		if p >= 1 && !open && !v.sidebarOpen {
			v.Sidebar.Hide()
			v.split.Refresh()
		}
	})
	anim.Curve = fyne.AnimationEaseInOut
	v.sidebarAnim = anim
	anim.Start()
}

// setSidebarWidth reveals w pixels of the sidebar and fades its backdrop
// with it.
func (v *View) setSidebarWidth(w float32) {
	v.slide.width = w
	c := timer.SidebarColor
	c.A = uint8(float32(c.A) * w / timer.SidebarWidth)
	v.backdrop.FillColor = c
	v.backdrop.Refresh()
	if v.split != nil {
		v.split.Refresh()
	}
}

// slideLayout shows the rightmost width pixels of a timer.SidebarWidth wide
// panel, sliding the rest off the left edge.
type slideLayout struct {
	width float32
}

func (l *slideLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	h := float32(0)
	for _, o := range objects {
		h = max(h, o.MinSize().Height)
	}
	return fyne.NewSize(l.width, h)
}

func (l *slideLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Resize(fyne.NewSize(timer.SidebarWidth, size.Height))
		o.Move(fyne.NewPos(l.width-timer.SidebarWidth, 0))
	}
}

// Render applies a snapshot. It must run on the UI goroutine; use
// UpdateDisplay from elsewhere.
func (v *View) Render(s timer.Snapshot) {
	if s.Running {
		v.StartStopButton.SetText(i18n.T("Stop"))
		v.StartStopButton.SetIcon(theme.MediaStopIcon())
		v.PhaseText.Text = fmt.Sprintf("%s (%s)", i18n.T(s.Phase.String()), timer.FormatSeconds(s.Remaining))
		v.PhaseText.Show()
	} else {
		v.StartStopButton.SetText(i18n.T("Start"))
		v.StartStopButton.SetIcon(theme.MediaPlayIcon())
		v.PhaseText.Hide()
	}
	v.PhaseText.Refresh()

	// Ticks inside a phase keep the same target and must not restart the easing.
	target := StateFor(s)
	if v.hasTarget && target == v.lastTarget {
		return
	}
	if !v.hasTarget {
		v.Shape.SetState(target)
	} else {
		v.Shape.AnimateTo(target, time.Duration(s.TransitionSeconds)*time.Second)
	}
	v.lastTarget, v.hasTarget = target, true
}

// UpdateDisplay schedules Render on the UI goroutine.
func (v *View) UpdateDisplay(s timer.Snapshot) {
	fyne.Do(func() {
		v.Render(s)
	})
}

// CreateMainWindow builds the window around the view.
func CreateMainWindow(a App, fyneApp fyne.App, v *View, size fyne.Size) fyne.Window {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = i18n.T("Breathe your Break")
	}
	w := fyneApp.NewWindow(title)
	w.Canvas().SetOnTypedRune(a.HandleKeyRune)
	w.SetContent(v.Content)
	w.Resize(size)
	return w
}

type TappableContainer struct {
	widget.BaseWidget
	Content           fyne.CanvasObject
	OnTappedPrimary   func()
	OnTappedSecondary func(e *fyne.PointEvent)
}

func NewTappableContainer(c fyne.CanvasObject, onP func(), onS func(e *fyne.PointEvent)) *TappableContainer {
	t := &TappableContainer{
		Content:           c,
		OnTappedPrimary:   onP,
		OnTappedSecondary: onS,
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TappableContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.Content)
}

func (t *TappableContainer) Tapped(_ *fyne.PointEvent) {
	if t.OnTappedPrimary != nil {
		t.OnTappedPrimary()
	}
}

func (t *TappableContainer) TappedSecondary(e *fyne.PointEvent) {
	if t.OnTappedSecondary != nil {
		t.OnTappedSecondary(e)
	}
}
