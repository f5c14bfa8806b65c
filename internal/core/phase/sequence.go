// Package phase derives the breathing cycle from a configuration.
package phase

import "respira/internal/core/model"

// Sequence returns the ordered cycle for config. Inhale and Exhale are always
// present; each hold is included only when its duration is nonzero.
func Sequence(config model.Config) []model.Phase {
	sequence := make([]model.Phase, 0, len(model.Phases))
	for _, phase := range model.Phases {
		if included(config, phase) {
			sequence = append(sequence, phase)
		}
	}
	return sequence
}

// First returns the phase a running session starts with.
func First(config model.Config) model.Phase {
	return Sequence(config)[0]
}

// Next returns the phase that follows current, wrapping at the end of the
// cycle. The position is derived from current alone. When current has been
// dropped from the cycle, the next included phase in canonical order is used.
func Next(config model.Config, current model.Phase) model.Phase {
	start := canonicalIndex(current)
	if start < 0 {
		return First(config)
	}
	count := len(model.Phases)
	for offset := 1; offset <= count; offset++ {
		candidate := model.Phases[(start+offset)%count]
		if included(config, candidate) {
			return candidate
		}
	}
	return First(config)
}

func included(config model.Config, phase model.Phase) bool {
	switch phase {
	case model.PhaseInhale, model.PhaseExhale:
		return true
	default:
		return config.Duration(phase) > 0
	}
}

func canonicalIndex(phase model.Phase) int {
	for index, candidate := range model.Phases {
		if candidate == phase {
			return index
		}
	}
	return -1
}
