// Package cue decides whether, and how loudly, a timing event is announced.
package cue

import (
	"fmt"
	"math"

	"respira/internal/core/model"
)

// Kind is the category of a cue event.
type Kind string

const (
	KindCountdown  Kind = "countdown"
	KindPhaseStart Kind = "phase"
	KindSessionEnd Kind = "sessionEnd"
)

// Event is a timing event that may produce a cue.
type Event struct {
	Kind  Kind
	Phase model.Phase
	Count int
}

// CountdownTick is the preparation countdown reaching n.
func CountdownTick(n int) Event {
	return Event{Kind: KindCountdown, Count: n}
}

// PhaseStart is the beginning of phase.
func PhaseStart(phase model.Phase) Event {
	return Event{Kind: KindPhaseStart, Phase: phase}
}

// SessionEnd is the end of the session.
func SessionEnd() Event {
	return Event{Kind: KindSessionEnd}
}

// Key returns the cue identifier handed to the player.
func (event Event) Key() string {
	if event.Kind == KindPhaseStart {
		return fmt.Sprintf("%s:%s", KindPhaseStart, event.Phase)
	}
	return string(event.Kind)
}

// Player plays a cue. Implementations must not block and swallow their own
// failures.
type Player interface {
	PlayCue(key string, volume float64)
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(key string, volume float64)

// PlayCue calls fn.
func (fn PlayerFunc) PlayCue(key string, volume float64) {
	fn(key, volume)
}

// Dispatcher turns events into player calls.
type Dispatcher struct {
	player Player
}

// NewDispatcher creates a dispatcher that delegates to player.
func NewDispatcher(player Player) *Dispatcher {
	return &Dispatcher{player: player}
}

// Dispatch requests a cue for event unless it is muted.
func (dispatcher *Dispatcher) Dispatch(event Event, audio model.AudioConfig) {
	volume, ok := Volume(event, audio)
	if !ok || dispatcher.player == nil {
		return
	}
	dispatcher.player.PlayCue(event.Key(), volume)
}

// Volume returns the effective volume for event, or false when the cue is
// disabled or silent.
func Volume(event Event, audio model.AudioConfig) (float64, bool) {
	if !audio.Enabled {
		return 0, false
	}

	var category float64
	switch event.Kind {
	case KindCountdown:
		if !audio.Countdown.Enabled {
			return 0, false
		}
		category = audio.Countdown.Volume
	case KindPhaseStart:
		if !audio.Phases.Enabled {
			return 0, false
		}
		category = audio.Phases.Volume(event.Phase)
	case KindSessionEnd:
		if !audio.SessionEnd.Enabled {
			return 0, false
		}
		category = audio.SessionEnd.Volume
	default:
		return 0, false
	}

	volume := clamp01(clamp01(audio.Volume) * clamp01(category))
	if volume <= 0 {
		return 0, false
	}
	return volume, true
}

func clamp01(value float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
