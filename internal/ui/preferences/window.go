package preferences

import (
	"respira/internal/core/model"
	"respira/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const lockedMessage = "Pause or reset the session to change settings."

// Target is the store the window edits.
type Target interface {
	State() session.Snapshot
	Limits() model.Limits
	UpdateConfig(edit func(*model.Config)) bool
}

type volumeControl struct {
	check  *widget.Check
	slider *widget.Slider
}

func newVolumeControl(label string) volumeControl {
	slider := widget.NewSlider(0, 10)
	slider.Step = 1
	return volumeControl{check: widget.NewCheck(label, nil), slider: slider}
}

func (control volumeControl) set(enabled bool, volume float64) {
	control.check.SetChecked(enabled)
	control.slider.SetValue(float64(model.StepFromVolume(volume)))
}

func (control volumeControl) volume() float64 {
	return model.VolumeStep(int(control.slider.Value))
}

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	target   Target
	presets  *model.PresetBook
	preset   string
	status   *widget.Label
	selector *widget.Select

	inhale      *widget.Entry
	holdIn      *widget.Entry
	exhale      *widget.Entry
	holdOut     *widget.Entry
	preparation *widget.Entry
	minutes     *widget.Entry

	audio      volumeControl
	countdown  volumeControl
	sessionEnd volumeControl
	phases     volumeControl
	phaseLevel map[model.Phase]*widget.Slider
}

// New creates a preferences window.
func New(app fyne.App, target Target, presets *model.PresetBook) *Window {
	window := app.NewWindow("Respira Settings")

	prefs := &Window{
		window:      window,
		target:      target,
		presets:     presets,
		status:      widget.NewLabel(""),
		inhale:      widget.NewEntry(),
		holdIn:      widget.NewEntry(),
		exhale:      widget.NewEntry(),
		holdOut:     widget.NewEntry(),
		preparation: widget.NewEntry(),
		minutes:     widget.NewEntry(),
		audio:       newVolumeControl("Sound"),
		countdown:   newVolumeControl("Countdown"),
		sessionEnd:  newVolumeControl("Session end"),
		phases:      newVolumeControl("Phase changes"),
		phaseLevel:  make(map[model.Phase]*widget.Slider),
	}
	prefs.status.Wrapping = fyne.TextWrapWord

	names := make([]string, 0)
	for _, preset := range presets.All() {
		names = append(names, preset.Name)
	}
	prefs.selector = widget.NewSelect(names, prefs.handlePreset)
	prefs.selector.PlaceHolder = model.CustomPresetName

	pattern := container.NewVBox(
		widget.NewLabelWithStyle("Pattern", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Preset"), prefs.selector),
		container.NewHBox(widget.NewLabel("Inhale"), prefs.inhale, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Hold"), prefs.holdIn, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Exhale"), prefs.exhale, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Hold"), prefs.holdOut, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Get ready"), prefs.preparation, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Session"), prefs.minutes, widget.NewLabel("min")),
	)

	sound := container.NewVBox(
		widget.NewLabelWithStyle("Sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.audio.check, prefs.audio.slider,
		prefs.countdown.check, prefs.countdown.slider,
		prefs.phases.check,
	)
	for _, phase := range model.Phases {
		slider := widget.NewSlider(0, 10)
		slider.Step = 1
		prefs.phaseLevel[phase] = slider
		sound.Add(container.NewBorder(nil, nil, widget.NewLabel(phaseLabel(phase)), nil, slider))
	}
	sound.Add(prefs.sessionEnd.check)
	sound.Add(prefs.sessionEnd.slider)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewVBox(prefs.status, container.NewHBox(saveButton, layout.NewSpacer(), cancelButton))

	form := container.NewVScroll(container.NewVBox(pattern, widget.NewSeparator(), sound))
	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 560))

	prefs.Reload()
	return prefs
}

// Show refreshes the values from the store and displays the window.
func (prefs *Window) Show() {
	prefs.Reload()
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Reload replaces the window values with the current config.
func (prefs *Window) Reload() {
	config := prefs.target.State().Config
	prefs.setFields(FieldsFromConfig(config))
	prefs.preset = config.PresetName
	prefs.status.SetText("")
	if _, ok := prefs.lookupPreset(config.PresetName); ok {
		prefs.selector.Selected = config.PresetName
	} else {
		prefs.selector.Selected = ""
	}
	prefs.selector.Refresh()

	audio := config.Audio
	prefs.audio.set(audio.Enabled, audio.Volume)
	prefs.countdown.set(audio.Countdown.Enabled, audio.Countdown.Volume)
	prefs.sessionEnd.set(audio.SessionEnd.Enabled, audio.SessionEnd.Volume)
	prefs.phases.check.SetChecked(audio.Phases.Enabled)
	for phase, slider := range prefs.phaseLevel {
		slider.SetValue(float64(model.StepFromVolume(audio.Phases.Volume(phase))))
	}
}

func (prefs *Window) handlePreset(name string) {
	preset, ok := prefs.lookupPreset(name)
	if !ok {
		return
	}
	config := preset.Apply(prefs.target.State().Config, prefs.target.Limits())
	prefs.setFields(FieldsFromConfig(config))
	prefs.preset = preset.Name
}

func (prefs *Window) handleSave() {
	fields := prefs.fields()
	audio := prefs.audioConfig()
	selected, hasPreset := prefs.lookupPreset(prefs.preset)

	ok := prefs.target.UpdateConfig(func(config *model.Config) {
		*config = fields.Apply(*config)
		if hasPreset && selected.Pattern() == config.Pattern() {
			config.PresetName = selected.Name
		}
		config.Audio = audio
	})
	if !ok {
		prefs.status.SetText(lockedMessage)
		return
	}
	prefs.window.Hide()
}

func (prefs *Window) lookupPreset(name string) (model.Preset, bool) {
	for _, preset := range prefs.presets.All() {
		if preset.Name == name {
			return preset, true
		}
	}
	return model.Preset{}, false
}

func (prefs *Window) audioConfig() model.AudioConfig {
	audio := model.AudioConfig{
		Enabled:    prefs.audio.check.Checked,
		Volume:     prefs.audio.volume(),
		Countdown:  model.CueSettings{Enabled: prefs.countdown.check.Checked, Volume: prefs.countdown.volume()},
		SessionEnd: model.CueSettings{Enabled: prefs.sessionEnd.check.Checked, Volume: prefs.sessionEnd.volume()},
	}
	audio.Phases.Enabled = prefs.phases.check.Checked
	for phase, slider := range prefs.phaseLevel {
		audio.Phases.SetVolume(phase, model.VolumeStep(int(slider.Value)))
	}
	return audio
}

func (prefs *Window) fields() Fields {
	return Fields{
		Inhale:          prefs.inhale.Text,
		HoldAfterInhale: prefs.holdIn.Text,
		Exhale:          prefs.exhale.Text,
		HoldAfterExhale: prefs.holdOut.Text,
		Preparation:     prefs.preparation.Text,
		Minutes:         prefs.minutes.Text,
	}
}

func (prefs *Window) setFields(fields Fields) {
	prefs.inhale.SetText(fields.Inhale)
	prefs.holdIn.SetText(fields.HoldAfterInhale)
	prefs.exhale.SetText(fields.Exhale)
	prefs.holdOut.SetText(fields.HoldAfterExhale)
	prefs.preparation.SetText(fields.Preparation)
	prefs.minutes.SetText(fields.Minutes)
}

func phaseLabel(phase model.Phase) string {
	switch phase {
	case model.PhaseHoldAfterInhale:
		return "Hold (full)"
	case model.PhaseHoldAfterExhale:
		return "Hold (empty)"
	default:
		return phase.Label()
	}
}
