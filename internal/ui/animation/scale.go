package animation

import "respira/internal/core/model"

// TargetScale returns where the circle should end up for phase.
func TargetScale(config Config, phase model.Phase, current float32) float32 {
	switch phase {
	case model.PhaseInhale:
		return config.MaxScale
	case model.PhaseExhale:
		return config.MinScale
	default:
		return current
	}
}

// Interpolate eases between from and to. progress is clamped to [0,1].
func Interpolate(from, to, progress float32) float32 {
	if progress <= 0 {
		return from
	}
	if progress >= 1 {
		return to
	}
	eased := progress * progress * (3 - 2*progress)
	return from + (to-from)*eased
}
