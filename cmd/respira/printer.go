package main

import (
	"fmt"
	"io"

	"respira/internal/core/model"
	"respira/internal/core/session"
)

// linePrinter writes one line for every change a listener would render:
// status changes, countdown seconds and phase starts.
type linePrinter struct {
	out     io.Writer
	status  session.Status
	phase   model.Phase
	prepped int
	started bool
}

func (printer *linePrinter) print(snapshot session.Snapshot) {
	status := snapshot.Session.Status
	statusChanged := !printer.started || status != printer.status
	printer.started = true
	printer.status = status

	switch status {
	case session.StatusIdle:
		if statusChanged {
			fmt.Fprintf(printer.out, "%s · %s\n", snapshot.Config.Title(), clock(snapshot.Session.TotalSeconds))
		}
		printer.phase = model.PhaseNone
	case session.StatusPreparing:
		remaining := snapshot.Session.RemainingPreparationSeconds
		if statusChanged || remaining != printer.prepped {
			fmt.Fprintf(printer.out, "Get ready %d\n", remaining)
		}
		printer.prepped = remaining
	case session.StatusRunning:
		if snapshot.Phase != model.PhaseNone && (statusChanged || snapshot.Phase != printer.phase) {
			fmt.Fprintf(printer.out, "%-6s %2ds  %s left\n", snapshot.Phase.Label(), snapshot.RemainingPhaseSeconds, clock(snapshot.Session.RemainingSeconds))
		}
		printer.phase = snapshot.Phase
	case session.StatusPaused:
		fmt.Fprintln(printer.out, "Paused")
	case session.StatusFinished:
		if statusChanged {
			fmt.Fprintf(printer.out, "Session finished · %s\n", clock(snapshot.Session.TotalSeconds))
		}
		printer.phase = model.PhaseNone
	}
}

func clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
