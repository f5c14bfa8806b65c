package overlay

import (
	"context"
	"image/color"
	"time"

	"respira/internal/core/model"
	"respira/internal/core/session"
	"respira/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Controls are the user verbs the window triggers.
type Controls interface {
	Toggle()
	Reset()
}

var (
	backgroundColor = color.NRGBA{R: 16, G: 36, B: 43, A: 255}
	circleColor     = color.NRGBA{R: 42, G: 140, B: 130, A: 255}
	ringColor       = color.NRGBA{R: 155, G: 231, B: 216, A: 120}
	textColor       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	mutedColor      = color.NRGBA{R: 190, G: 214, B: 210, A: 255}
)

// Window shows the running session: a breathing circle, the current phase
// and the session countdown.
type Window struct {
	window       fyne.Window
	controls     Controls
	engine       *animation.Engine
	circle       *canvas.Circle
	circleLayout *circleLayout
	stage        *fyne.Container
	titleLabel   *canvas.Text
	phaseLabel   *canvas.Text
	countLabel   *canvas.Text
	sessionLabel *canvas.Text
	progress     *widget.ProgressBar
	playButton   *widget.Button
	resetButton  *widget.Button
	cancelCtx    context.CancelFunc
	last         session.Snapshot
}

// New creates the session window. The window starts hidden.
func New(app fyne.App, controls Controls) *Window {
	window := app.NewWindow("Respira")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	circle := canvas.NewCircle(circleColor)
	ring := canvas.NewCircle(color.Transparent)
	ring.StrokeColor = ringColor
	ring.StrokeWidth = 3

	titleLabel := newText("", 18, mutedColor, false)
	phaseLabel := newText("Ready", 28, textColor, true)
	countLabel := newText("", 40, textColor, true)
	sessionLabel := newText("", 16, mutedColor, false)

	overlay := &Window{
		window:       window,
		controls:     controls,
		circle:       circle,
		circleLayout: &circleLayout{scale: animation.DefaultConfig().MinScale},
		titleLabel:   titleLabel,
		phaseLabel:   phaseLabel,
		countLabel:   countLabel,
		sessionLabel: sessionLabel,
		progress:     widget.NewProgressBar(),
	}
	overlay.engine = animation.New(animation.DefaultConfig(), overlay.setScale)

	overlay.playButton = widget.NewButton("Start", func() {
		if overlay.controls != nil {
			overlay.controls.Toggle()
		}
	})
	overlay.resetButton = widget.NewButton("Reset", func() {
		if overlay.controls != nil {
			overlay.controls.Reset()
		}
	})

	overlay.stage = container.New(overlay.circleLayout, ring, circle)
	labels := container.NewVBox(container.NewCenter(phaseLabel), container.NewCenter(countLabel))
	body := container.NewStack(overlay.stage, container.NewCenter(labels))
	footer := container.NewVBox(
		container.NewCenter(sessionLabel),
		overlay.progress,
		container.NewGridWithColumns(2, overlay.playButton, overlay.resetButton),
	)
	content := container.NewBorder(container.NewCenter(titleLabel), footer, nil, nil, body)
	window.SetContent(container.NewStack(canvas.NewRectangle(backgroundColor), container.NewPadded(content)))
	window.Resize(fyne.NewSize(360, 480))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return overlay
}

// Show displays the window.
func (overlay *Window) Show() {
	overlay.window.Show()
	overlay.window.RequestFocus()
}

// Hide hides the window without touching the session.
func (overlay *Window) Hide() {
	overlay.window.Hide()
}

// Update schedules Render on the UI goroutine. It is safe to use as a store
// listener.
func (overlay *Window) Update(snapshot session.Snapshot) {
	fyne.Do(func() {
		overlay.Render(snapshot)
	})
}

// Render redraws the window for snapshot. It must run on the UI goroutine.
func (overlay *Window) Render(snapshot session.Snapshot) {
	previous := overlay.last
	overlay.last = snapshot

	overlay.titleLabel.Text = snapshot.Config.Title()
	overlay.phaseLabel.Text = PhaseText(snapshot)
	overlay.countLabel.Text = CountText(snapshot)
	overlay.sessionLabel.Text = SessionText(snapshot)
	overlay.titleLabel.Refresh()
	overlay.phaseLabel.Refresh()
	overlay.countLabel.Refresh()
	overlay.sessionLabel.Refresh()

	overlay.progress.SetValue(snapshot.Progress())
	overlay.playButton.SetText(PlayLabel(snapshot.Session.Status))
	if snapshot.Session.Status == session.StatusPreparing {
		overlay.playButton.Disable()
	} else {
		overlay.playButton.Enable()
	}

	overlay.animate(previous, snapshot)
}

func (overlay *Window) animate(previous, snapshot session.Snapshot) {
	switch snapshot.Session.Status {
	case session.StatusRunning:
		resumed := previous.Session.Status != session.StatusRunning
		if resumed || previous.Phase != snapshot.Phase {
			overlay.startPhase(snapshot.Phase, snapshot.RemainingPhaseSeconds)
		}
	case session.StatusPaused:
		overlay.stopEngine()
	default:
		overlay.stopEngine()
		overlay.engine.Rest()
	}
}

func (overlay *Window) startPhase(phase model.Phase, seconds int) {
	overlay.stopEngine()
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancelCtx = cancel
	overlay.engine.Animate(ctx, phase, time.Duration(seconds)*time.Second)
}

func (overlay *Window) stopEngine() {
	if overlay.cancelCtx != nil {
		overlay.cancelCtx()
		overlay.cancelCtx = nil
	}
	overlay.engine.Stop()
}

func (overlay *Window) setScale(scale float32) {
	fyne.Do(func() {
		overlay.circleLayout.scale = scale
		overlay.stage.Refresh()
	})
}

func newText(text string, size float32, fill color.Color, bold bool) *canvas.Text {
	label := canvas.NewText(text, fill)
	label.Alignment = fyne.TextAlignCenter
	label.TextSize = size
	label.TextStyle = fyne.TextStyle{Bold: bold}
	return label
}

// circleLayout centers its objects as squares. The first object is the outer
// ring at full size, the rest are scaled.
type circleLayout struct {
	scale float32
}

func (layout *circleLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	side *= 0.9

	for index, object := range objects {
		diameter := side
		if index > 0 {
			diameter = side * layout.scale
		}
		object.Resize(fyne.NewSize(diameter, diameter))
		object.Move(fyne.NewPos((size.Width-diameter)/2, (size.Height-diameter)/2))
	}
}

func (layout *circleLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(200, 200)
}
