// Package session holds the observable state of the single breathing session.
package session

import "respira/internal/core/model"

// Status is the lifecycle state of a session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPreparing Status = "preparing"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusFinished  Status = "finished"
)

var allowedTransitions = map[Status][]Status{
	StatusIdle:      {StatusPreparing},
	StatusPreparing: {StatusRunning},
	StatusRunning:   {StatusPaused, StatusFinished},
	StatusPaused:    {StatusRunning, StatusIdle},
	StatusFinished:  {StatusIdle},
}

// CanTransition reports whether from → to is in the legality table.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Active reports whether a session is in progress.
func (status Status) Active() bool {
	return status == StatusPreparing || status == StatusRunning || status == StatusPaused
}

// State is the session part of a snapshot.
type State struct {
	Status                      Status
	TotalSeconds                int
	RemainingSeconds            int
	RemainingPreparationSeconds int
}

// Snapshot is an immutable copy of everything observers need to render.
type Snapshot struct {
	Phase                 model.Phase
	RemainingPhaseSeconds int
	Session               State
	Config                model.Config
}

// ElapsedSeconds returns how much of the session has been breathed through.
func (snapshot Snapshot) ElapsedSeconds() int {
	elapsed := snapshot.Session.TotalSeconds - snapshot.Session.RemainingSeconds
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Progress returns the completed fraction of the session in [0,1].
func (snapshot Snapshot) Progress() float64 {
	if snapshot.Session.TotalSeconds <= 0 {
		return 0
	}
	progress := float64(snapshot.ElapsedSeconds()) / float64(snapshot.Session.TotalSeconds)
	if progress > 1 {
		return 1
	}
	return progress
}
