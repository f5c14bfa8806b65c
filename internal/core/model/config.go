package model

import "fmt"

// Phase identifies one segment of a breathing cycle.
type Phase string

const (
	PhaseNone            Phase = ""
	PhaseInhale          Phase = "inhale"
	PhaseHoldAfterInhale Phase = "holdAfterInhale"
	PhaseExhale          Phase = "exhale"
	PhaseHoldAfterExhale Phase = "holdAfterExhale"
)

// Phases lists the four phases in canonical cycle order.
var Phases = []Phase{PhaseInhale, PhaseHoldAfterInhale, PhaseExhale, PhaseHoldAfterExhale}

// Label returns a human readable name for the phase.
func (phase Phase) Label() string {
	switch phase {
	case PhaseInhale:
		return "Inhale"
	case PhaseHoldAfterInhale, PhaseHoldAfterExhale:
		return "Hold"
	case PhaseExhale:
		return "Exhale"
	default:
		return ""
	}
}

// Config holds the breathing pattern, session length and audio preferences.
// All durations are whole seconds.
type Config struct {
	Inhale          int
	HoldAfterInhale int
	Exhale          int
	HoldAfterExhale int
	Preparation     int
	Session         int
	PresetName      string
	Audio           AudioConfig
}

// DefaultConfig returns the settings used when nothing has been saved yet.
func DefaultConfig() Config {
	return Config{
		Inhale:          2,
		HoldAfterInhale: 2,
		Exhale:          2,
		HoldAfterExhale: 2,
		Preparation:     4,
		Session:         300,
		PresetName:      CustomPresetName,
		Audio:           DefaultAudioConfig(),
	}
}

// Duration returns the configured length of a phase in seconds.
func (config Config) Duration(phase Phase) int {
	switch phase {
	case PhaseInhale:
		return config.Inhale
	case PhaseHoldAfterInhale:
		return config.HoldAfterInhale
	case PhaseExhale:
		return config.Exhale
	case PhaseHoldAfterExhale:
		return config.HoldAfterExhale
	default:
		return 0
	}
}

// SetDuration sets the length of a phase. The value is not clamped here;
// callers write through Clamp.
func (config *Config) SetDuration(phase Phase, seconds int) {
	switch phase {
	case PhaseInhale:
		config.Inhale = seconds
	case PhaseHoldAfterInhale:
		config.HoldAfterInhale = seconds
	case PhaseExhale:
		config.Exhale = seconds
	case PhaseHoldAfterExhale:
		config.HoldAfterExhale = seconds
	}
}

// Pattern formats the cycle as inhale-hold-exhale-hold.
func (config Config) Pattern() string {
	return fmt.Sprintf("%d-%d-%d-%d", config.Inhale, config.HoldAfterInhale, config.Exhale, config.HoldAfterExhale)
}

// Title is the session heading, e.g. "Calm 4-4-6-4".
func (config Config) Title() string {
	name := config.PresetName
	if name == "" {
		name = CustomPresetName
	}
	return name + " " + config.Pattern()
}

// Clamp returns a copy with every field forced into its allowed range.
func (config Config) Clamp(limits Limits) Config {
	config.Inhale = limits.Inhale.Clamp(config.Inhale)
	config.HoldAfterInhale = limits.HoldAfterInhale.Clamp(config.HoldAfterInhale)
	config.Exhale = limits.Exhale.Clamp(config.Exhale)
	config.HoldAfterExhale = limits.HoldAfterExhale.Clamp(config.HoldAfterExhale)
	config.Preparation = limits.Preparation.Clamp(config.Preparation)
	config.Session = limits.Session.Clamp(config.Session)
	config.Audio = config.Audio.Clamp()
	return config
}
