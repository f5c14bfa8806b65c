package session

import (
	"log/slog"
	"sync"

	"respira/internal/core/model"
)

// Persister saves configuration after it changes.
type Persister interface {
	Save(config model.Config) error
}

// Listener receives a snapshot after every successful mutation.
type Listener func(Snapshot)

// Option configures a Store.
type Option func(*Store)

// WithPersister saves the config after every successful config write.
func WithPersister(persister Persister) Option {
	return func(store *Store) {
		store.persister = persister
	}
}

// WithLogger sets the logger used for ignored operations and save failures.
func WithLogger(logger *slog.Logger) Option {
	return func(store *Store) {
		if logger != nil {
			store.logger = logger
		}
	}
}

// WithLimits overrides the bounds applied to every config write.
func WithLimits(limits model.Limits) Option {
	return func(store *Store) {
		store.limits = limits
	}
}

// Store is the single writer of session state. Operations that request a
// transition outside the legality table are no-ops and return false.
//
// Listeners are invoked synchronously and in mutation order. A listener must
// not call a mutating operation of the same store from inside the callback.
type Store struct {
	mu        sync.Mutex
	deliverMu sync.Mutex
	state     Snapshot
	listeners map[int]Listener
	order     []int
	nextID    int
	persister Persister
	logger    *slog.Logger
	limits    model.Limits
}

// NewStore creates an idle store for config.
func NewStore(config model.Config, options ...Option) *Store {
	store := &Store{
		listeners: make(map[int]Listener),
		logger:    slog.Default(),
		limits:    model.DefaultLimits(),
	}
	for _, option := range options {
		option(store)
	}

	config = config.Clamp(store.limits)
	store.state = Snapshot{
		Config: config,
		Session: State{
			Status:                      StatusIdle,
			TotalSeconds:                config.Session,
			RemainingSeconds:            config.Session,
			RemainingPreparationSeconds: config.Preparation,
		},
	}
	return store
}

// State returns the current snapshot.
func (store *Store) State() Snapshot {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state
}

// Limits returns the bounds applied to config writes.
func (store *Store) Limits() model.Limits {
	return store.limits
}

// Subscribe registers listener, calls it with the current snapshot and
// returns a function that removes it.
func (store *Store) Subscribe(listener Listener) func() {
	store.deliverMu.Lock()
	defer store.deliverMu.Unlock()

	store.mu.Lock()
	id := store.nextID
	store.nextID++
	store.listeners[id] = listener
	store.order = append(store.order, id)
	current := store.state
	store.mu.Unlock()

	listener(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			store.mu.Lock()
			defer store.mu.Unlock()
			delete(store.listeners, id)
			for index, candidate := range store.order {
				if candidate == id {
					store.order = append(store.order[:index], store.order[index+1:]...)
					break
				}
			}
		})
	}
}

// Start moves Idle to Preparing. From Finished it resets implicitly first.
func (store *Store) Start() bool {
	return store.mutate("start", func(next *Snapshot) bool {
		status := next.Session.Status
		if status == StatusFinished {
			status = StatusIdle
		}
		if !CanTransition(status, StatusPreparing) {
			return false
		}
		next.Session = State{
			Status:                      StatusPreparing,
			TotalSeconds:                next.Config.Session,
			RemainingSeconds:            next.Config.Session,
			RemainingPreparationSeconds: next.Config.Preparation,
		}
		clearPhase(next)
		return true
	})
}

// Pause moves Running to Paused. Stopping the tick loop is the caller's job.
func (store *Store) Pause() bool {
	return store.transition("pause", StatusPaused)
}

// Resume moves Paused to Running. Restarting the tick loop is the caller's job.
func (store *Store) Resume() bool {
	return store.transition("resume", StatusRunning)
}

// Finish ends an active session.
func (store *Store) Finish() bool {
	return store.mutate("finish", func(next *Snapshot) bool {
		if !next.Session.Status.Active() {
			return false
		}
		next.Session.Status = StatusFinished
		next.Session.RemainingSeconds = 0
		next.Session.RemainingPreparationSeconds = next.Config.Preparation
		clearPhase(next)
		return true
	})
}

// Reset forces the session back to Idle from any status.
func (store *Store) Reset() bool {
	return store.mutate("reset", func(next *Snapshot) bool {
		next.Session = State{
			Status:                      StatusIdle,
			TotalSeconds:                next.Config.Session,
			RemainingSeconds:            next.Config.Session,
			RemainingPreparationSeconds: next.Config.Preparation,
		}
		clearPhase(next)
		return true
	})
}

// TickPreparation counts the preparation down by one second. When the count
// would reach zero the session moves to Running instead.
func (store *Store) TickPreparation() bool {
	return store.mutate("tick preparation", func(next *Snapshot) bool {
		if next.Session.Status != StatusPreparing {
			return false
		}
		if next.Session.RemainingPreparationSeconds <= 1 {
			next.Session.RemainingPreparationSeconds = 0
			next.Session.Status = StatusRunning
			return true
		}
		next.Session.RemainingPreparationSeconds--
		return true
	})
}

// EnterPhase starts phase with its configured duration.
func (store *Store) EnterPhase(phase model.Phase) bool {
	return store.mutate("enter phase", func(next *Snapshot) bool {
		if next.Session.Status != StatusRunning || phase == model.PhaseNone {
			return false
		}
		next.Phase = phase
		next.RemainingPhaseSeconds = next.Config.Duration(phase)
		return true
	})
}

// TickRunning consumes one second of the session and sets the phase state
// that results from it.
func (store *Store) TickRunning(phase model.Phase, phaseRemaining int) bool {
	return store.mutate("tick running", func(next *Snapshot) bool {
		if next.Session.Status != StatusRunning || phase == model.PhaseNone {
			return false
		}
		next.Session.RemainingSeconds = decrement(next.Session.RemainingSeconds)
		next.Phase = phase
		if phaseRemaining < 0 {
			phaseRemaining = 0
		}
		next.RemainingPhaseSeconds = phaseRemaining
		return true
	})
}

// UpdateConfig edits the configuration. Edits are rejected while a session
// is preparing or running. The result is clamped and then persisted.
func (store *Store) UpdateConfig(edit func(*model.Config)) bool {
	return store.writeConfig("update config", func(config model.Config) model.Config {
		edit(&config)
		return config
	})
}

// ApplyPreset replaces the pattern and session length with preset.
func (store *Store) ApplyPreset(preset model.Preset) bool {
	return store.writeConfig("apply preset", func(config model.Config) model.Config {
		return preset.Apply(config, store.limits)
	})
}

func (store *Store) writeConfig(name string, edit func(model.Config) model.Config) bool {
	var saved model.Config
	ok := store.mutate(name, func(next *Snapshot) bool {
		status := next.Session.Status
		if status == StatusPreparing || status == StatusRunning {
			return false
		}
		next.Config = edit(next.Config).Clamp(store.limits)
		switch status {
		case StatusIdle:
			next.Session.TotalSeconds = next.Config.Session
			next.Session.RemainingSeconds = next.Config.Session
			next.Session.RemainingPreparationSeconds = next.Config.Preparation
		case StatusFinished:
			next.Session.TotalSeconds = next.Config.Session
			next.Session.RemainingPreparationSeconds = next.Config.Preparation
		}
		saved = next.Config
		return true
	})
	if ok && store.persister != nil {
		if err := store.persister.Save(saved); err != nil {
			store.logger.Warn("save config failed", "error", err)
		}
	}
	return ok
}

func (store *Store) transition(name string, to Status) bool {
	return store.mutate(name, func(next *Snapshot) bool {
		if !CanTransition(next.Session.Status, to) {
			return false
		}
		next.Session.Status = to
		return true
	})
}

func (store *Store) mutate(name string, apply func(*Snapshot) bool) bool {
	store.deliverMu.Lock()
	defer store.deliverMu.Unlock()

	store.mu.Lock()
	next := store.state
	if !apply(&next) {
		status := store.state.Session.Status
		store.mu.Unlock()
		store.logger.Debug("session operation ignored", "op", name, "status", status)
		return false
	}
	store.state = next
	listeners := make([]Listener, 0, len(store.order))
	for _, id := range store.order {
		listeners = append(listeners, store.listeners[id])
	}
	store.mu.Unlock()

	for _, listener := range listeners {
		listener(next)
	}
	return true
}

func clearPhase(snapshot *Snapshot) {
	snapshot.Phase = model.PhaseNone
	snapshot.RemainingPhaseSeconds = 0
}

func decrement(value int) int {
	if value <= 0 {
		return 0
	}
	return value - 1
}
