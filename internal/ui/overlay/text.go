package overlay

import (
	"fmt"

	"respira/internal/core/session"
)

// PhaseText returns the large instruction shown in the circle.
func PhaseText(snapshot session.Snapshot) string {
	switch snapshot.Session.Status {
	case session.StatusPreparing:
		return "Get ready"
	case session.StatusPaused:
		return "Paused"
	case session.StatusFinished:
		return "Well done"
	case session.StatusRunning:
		return snapshot.Phase.Label()
	default:
		return "Ready"
	}
}

// CountText returns the seconds shown under the instruction.
func CountText(snapshot session.Snapshot) string {
	switch snapshot.Session.Status {
	case session.StatusPreparing:
		return fmt.Sprintf("%d", snapshot.Session.RemainingPreparationSeconds)
	case session.StatusRunning, session.StatusPaused:
		return fmt.Sprintf("%d", snapshot.RemainingPhaseSeconds)
	default:
		return ""
	}
}

// SessionText describes the session as a whole.
func SessionText(snapshot session.Snapshot) string {
	switch snapshot.Session.Status {
	case session.StatusPreparing:
		return fmt.Sprintf("Starting in %ds", snapshot.Session.RemainingPreparationSeconds)
	case session.StatusFinished:
		return "Session finished"
	case session.StatusIdle:
		return "Session " + FormatClock(snapshot.Session.TotalSeconds)
	default:
		return "Time left " + FormatClock(snapshot.Session.RemainingSeconds)
	}
}

// PlayLabel is the caption of the play/pause button.
func PlayLabel(status session.Status) string {
	switch status {
	case session.StatusRunning:
		return "Pause"
	case session.StatusPaused:
		return "Resume"
	case session.StatusFinished:
		return "Again"
	default:
		return "Start"
	}
}

// FormatClock formats seconds as mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
