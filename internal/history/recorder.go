package history

import (
	"log/slog"
	"sync"
	"time"

	"respira/internal/core/session"
)

// Sink receives finished entries. *Journal satisfies it.
type Sink interface {
	Insert(entry Entry) (Entry, error)
}

// Recorder turns store snapshots into journal entries. Only sessions that
// reached the running state are recorded.
type Recorder struct {
	sink   Sink
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	current *Entry
}

// NewRecorder creates a recorder writing to sink.
func NewRecorder(sink Sink, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{sink: sink, logger: logger, now: time.Now}
}

// Attach subscribes the recorder to store and returns the unsubscribe func.
func (recorder *Recorder) Attach(store *session.Store) func() {
	return store.Subscribe(recorder.Observe)
}

// Observe handles one snapshot.
func (recorder *Recorder) Observe(snapshot session.Snapshot) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	switch snapshot.Session.Status {
	case session.StatusRunning, session.StatusPaused:
		if recorder.current == nil {
			recorder.current = &Entry{
				PresetName:     snapshot.Config.PresetName,
				Pattern:        snapshot.Config.Pattern(),
				PlannedSeconds: snapshot.Session.TotalSeconds,
				StartedAt:      recorder.now(),
			}
		}
		recorder.current.ElapsedSeconds = snapshot.ElapsedSeconds()
	case session.StatusFinished:
		if recorder.current != nil {
			recorder.current.ElapsedSeconds = recorder.current.PlannedSeconds
			recorder.closeLocked(OutcomeCompleted)
		}
	case session.StatusIdle, session.StatusPreparing:
		if recorder.current != nil {
			recorder.closeLocked(OutcomeAbandoned)
		}
	}
}

func (recorder *Recorder) closeLocked(outcome Outcome) {
	entry := *recorder.current
	recorder.current = nil
	entry.Outcome = outcome
	entry.EndedAt = recorder.now()

	if _, err := recorder.sink.Insert(entry); err != nil {
		recorder.logger.Warn("record session failed", "outcome", outcome, "error", err)
		return
	}
	recorder.logger.Debug("session recorded", "outcome", outcome, "elapsed", entry.ElapsedSeconds)
}
