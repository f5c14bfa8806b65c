package history

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"respira/internal/core/model"
	"respira/internal/core/session"
)

func setupJournal(t *testing.T) *Journal {
	t.Helper()
	journal, err := Open(filepath.Join(t.TempDir(), "history", "history.db"))
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}
	t.Cleanup(func() { journal.Close() })
	return journal
}

func TestJournal(t *testing.T) {
	journal := setupJournal(t)
	base := time.Unix(1_700_000_000, 0)

	t.Run("Insert assigns an id", func(t *testing.T) {
		entry, err := journal.Insert(Entry{
			PresetName:     "Calm",
			Pattern:        "4-4-6-4",
			PlannedSeconds: 300,
			ElapsedSeconds: 300,
			Outcome:        OutcomeCompleted,
			StartedAt:      base,
			EndedAt:        base.Add(5 * time.Minute),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.ID == "" {
			t.Fatal("expected a generated id")
		}
	})

	t.Run("List returns newest first", func(t *testing.T) {
		_, err := journal.Insert(Entry{
			ID:             "later",
			PresetName:     "Focus",
			Pattern:        "4-2-4-2",
			PlannedSeconds: 240,
			ElapsedSeconds: 30,
			Outcome:        OutcomeAbandoned,
			StartedAt:      base.Add(time.Hour),
			EndedAt:        base.Add(time.Hour + 30*time.Second),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := journal.List(0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		first := entries[0]
		if first.ID != "later" || first.Outcome != OutcomeAbandoned || first.ElapsedSeconds != 30 {
			t.Fatalf("unexpected first entry: %+v", first)
		}
		if !first.StartedAt.Equal(base.Add(time.Hour)) {
			t.Fatalf("started at %v", first.StartedAt)
		}

		limited, err := journal.List(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(limited) != 1 || limited[0].ID != "later" {
			t.Fatalf("limit not applied: %+v", limited)
		}
	})

	t.Run("Stats totals", func(t *testing.T) {
		stats, err := journal.Stats()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := Stats{Sessions: 2, Completed: 1, ElapsedSeconds: 330}
		if stats != want {
			t.Fatalf("stats = %+v, want %+v", stats, want)
		}
	})
}

func TestJournalEmptyStats(t *testing.T) {
	stats, err := setupJournal(t).Stats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats != (Stats{}) {
		t.Fatalf("stats = %+v", stats)
	}
}

type memorySink struct {
	entries []Entry
	err     error
}

func (sink *memorySink) Insert(entry Entry) (Entry, error) {
	if sink.err != nil {
		return entry, sink.err
	}
	sink.entries = append(sink.entries, entry)
	return entry, nil
}

func newRecordedStore(t *testing.T, sink Sink) *session.Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewStore(model.DefaultConfig(), session.WithLogger(logger))
	recorder := NewRecorder(sink, logger)
	clock := time.Unix(1_700_000_000, 0)
	recorder.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	t.Cleanup(recorder.Attach(store))
	return store
}

func runSeconds(store *session.Store, seconds int) {
	store.Start()
	for store.State().Session.Status == session.StatusPreparing {
		store.TickPreparation()
	}
	store.EnterPhase(model.PhaseInhale)
	for i := 0; i < seconds; i++ {
		store.TickRunning(model.PhaseInhale, 1)
	}
}

func TestRecorderAbandonedSession(t *testing.T) {
	sink := &memorySink{}
	store := newRecordedStore(t, sink)

	runSeconds(store, 3)
	store.Pause()
	store.Reset()

	if len(sink.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(sink.entries))
	}
	entry := sink.entries[0]
	if entry.Outcome != OutcomeAbandoned || entry.ElapsedSeconds != 3 || entry.PlannedSeconds != 300 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Pattern != "2-2-2-2" || entry.PresetName != model.CustomPresetName {
		t.Fatalf("unexpected labels: %+v", entry)
	}
	if !entry.EndedAt.After(entry.StartedAt) {
		t.Fatalf("ended %v before started %v", entry.EndedAt, entry.StartedAt)
	}
}

func TestRecorderCompletedSession(t *testing.T) {
	sink := &memorySink{}
	store := newRecordedStore(t, sink)

	runSeconds(store, 10)
	store.Finish()
	store.Reset()

	if len(sink.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(sink.entries))
	}
	if entry := sink.entries[0]; entry.Outcome != OutcomeCompleted || entry.ElapsedSeconds != 300 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestRecorderSkipsSessionsThatNeverRan(t *testing.T) {
	sink := &memorySink{}
	store := newRecordedStore(t, sink)

	store.Start()
	store.TickPreparation()
	store.Reset()

	if len(sink.entries) != 0 {
		t.Fatalf("expected no entries, got %+v", sink.entries)
	}
}

func TestRecorderSinkErrorIsSwallowed(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	store := newRecordedStore(t, sink)

	runSeconds(store, 1)
	store.Finish()

	if store.State().Session.Status != session.StatusFinished {
		t.Fatal("store should still finish")
	}
}

func TestRecorderWritesToJournal(t *testing.T) {
	journal := setupJournal(t)
	store := newRecordedStore(t, journal)

	runSeconds(store, 2)
	store.Finish()

	entries, err := journal.List(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Outcome != OutcomeCompleted {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
