package model

import "math"

// MaxBreathSeconds bounds every single phase.
const MaxBreathSeconds = 45

// Range is an inclusive integer range.
type Range struct {
	Min int
	Max int
}

// Clamp forces value into the range.
func (value Range) Clamp(n int) int {
	if n < value.Min {
		return value.Min
	}
	if n > value.Max {
		return value.Max
	}
	return n
}

// Limits bounds every duration field of Config.
type Limits struct {
	Inhale          Range
	HoldAfterInhale Range
	Exhale          Range
	HoldAfterExhale Range
	Preparation     Range
	Session         Range
}

// DefaultLimits returns the bounds used by the configuration screens.
func DefaultLimits() Limits {
	return Limits{
		Inhale:          Range{Min: 1, Max: MaxBreathSeconds},
		HoldAfterInhale: Range{Min: 0, Max: MaxBreathSeconds},
		Exhale:          Range{Min: 1, Max: MaxBreathSeconds},
		HoldAfterExhale: Range{Min: 0, Max: MaxBreathSeconds},
		Preparation:     Range{Min: 1, Max: 10},
		Session:         Range{Min: 60, Max: 60 * 60},
	}
}

// Phase returns the range for a phase duration.
func (limits Limits) Phase(phase Phase) Range {
	switch phase {
	case PhaseInhale:
		return limits.Inhale
	case PhaseHoldAfterInhale:
		return limits.HoldAfterInhale
	case PhaseExhale:
		return limits.Exhale
	case PhaseHoldAfterExhale:
		return limits.HoldAfterExhale
	default:
		return Range{}
	}
}

func clampVolume(volume float64) float64 {
	if math.IsNaN(volume) || volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}
