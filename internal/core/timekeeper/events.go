package timekeeper

import (
	"respira/internal/core/cue"
	"respira/internal/core/model"
)

// Loop identifies which repeating task is active.
type Loop string

const (
	LoopNone        Loop = "none"
	LoopPreparation Loop = "preparation"
	LoopRunning     Loop = "running"
)

// CueSink receives cue events after the state change they belong to has been
// applied. *cue.Dispatcher satisfies it.
type CueSink interface {
	Dispatch(event cue.Event, audio model.AudioConfig)
}

type noCues struct{}

func (noCues) Dispatch(cue.Event, model.AudioConfig) {}

// countdownCues is how many final preparation seconds are announced.
const countdownCues = 3

// countdownValue returns the number announced before a preparation tick that
// starts at remaining, or false when the tick is not announced.
func countdownValue(remaining int) (int, bool) {
	value := remaining - 1
	if value < 1 || value > countdownCues {
		return 0, false
	}
	return value, true
}
