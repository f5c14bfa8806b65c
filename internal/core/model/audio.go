package model

// CueSettings toggles and scales one category of cues.
type CueSettings struct {
	Enabled bool
	Volume  float64
}

// PhaseCues holds per-phase volumes for phase start cues.
type PhaseCues struct {
	Enabled         bool
	Inhale          float64
	HoldAfterInhale float64
	Exhale          float64
	HoldAfterExhale float64
}

// Volume returns the volume configured for a phase.
func (cues PhaseCues) Volume(phase Phase) float64 {
	switch phase {
	case PhaseInhale:
		return cues.Inhale
	case PhaseHoldAfterInhale:
		return cues.HoldAfterInhale
	case PhaseExhale:
		return cues.Exhale
	case PhaseHoldAfterExhale:
		return cues.HoldAfterExhale
	default:
		return 0
	}
}

// SetVolume sets the volume for a phase.
func (cues *PhaseCues) SetVolume(phase Phase, volume float64) {
	switch phase {
	case PhaseInhale:
		cues.Inhale = volume
	case PhaseHoldAfterInhale:
		cues.HoldAfterInhale = volume
	case PhaseExhale:
		cues.Exhale = volume
	case PhaseHoldAfterExhale:
		cues.HoldAfterExhale = volume
	}
}

// AudioConfig contains the audio preferences. Volumes are in [0,1].
type AudioConfig struct {
	Enabled    bool
	Volume     float64
	Countdown  CueSettings
	Phases     PhaseCues
	SessionEnd CueSettings
}

// DefaultAudioConfig mirrors the defaults of the volume panel.
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{
		Enabled:   true,
		Volume:    1,
		Countdown: CueSettings{Enabled: true, Volume: 0.6},
		Phases: PhaseCues{
			Enabled:         true,
			Inhale:          0.7,
			HoldAfterInhale: 0.3,
			Exhale:          0.7,
			HoldAfterExhale: 0.3,
		},
		SessionEnd: CueSettings{Enabled: true, Volume: 1},
	}
}

// Clamp returns a copy with every volume forced into [0,1].
func (audio AudioConfig) Clamp() AudioConfig {
	audio.Volume = clampVolume(audio.Volume)
	audio.Countdown.Volume = clampVolume(audio.Countdown.Volume)
	audio.SessionEnd.Volume = clampVolume(audio.SessionEnd.Volume)
	for _, phase := range Phases {
		audio.Phases.SetVolume(phase, clampVolume(audio.Phases.Volume(phase)))
	}
	return audio
}

// VolumeStep converts a 0..10 panel step into a volume.
func VolumeStep(step int) float64 {
	return float64(Range{Min: 0, Max: 10}.Clamp(step)) / 10
}

// StepFromVolume converts a volume into the nearest 0..10 panel step.
func StepFromVolume(volume float64) int {
	return int(clampVolume(volume)*10 + 0.5)
}
