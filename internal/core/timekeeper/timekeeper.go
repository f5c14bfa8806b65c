package timekeeper

import (
	"log/slog"
	"sync"
	"time"

	"respira/internal/core/cue"
	"respira/internal/core/phase"
	"respira/internal/core/session"
)

// Config contains runtime options for TimeKeeper.
type Config struct {
	Interval time.Duration
	Clock    Clock
	Logger   *slog.Logger
}

// TimeKeeper drives a breathing session. It owns the only repeating task
// and advances the store once per interval. Besides the identity of that task
// it keeps no session state of its own.
type TimeKeeper struct {
	mu         sync.Mutex
	store      *session.Store
	cues       CueSink
	options    Config
	loop       Loop
	cancel     func()
	generation uint64
}

// New creates a TimeKeeper for store. cues may be nil.
func New(store *session.Store, cues CueSink, options Config) *TimeKeeper {
	if options.Interval <= 0 {
		options.Interval = time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if cues == nil {
		cues = noCues{}
	}

	return &TimeKeeper{
		store:   store,
		cues:    cues,
		options: options,
		loop:    LoopNone,
	}
}

// Store returns the store the keeper drives.
func (keeper *TimeKeeper) Store() *session.Store {
	return keeper.store
}

// Play starts a new session from Idle or Finished, or resumes a paused one.
// It does nothing while a session is preparing or running.
func (keeper *TimeKeeper) Play() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	switch keeper.store.State().Session.Status {
	case session.StatusIdle, session.StatusFinished:
		if keeper.store.Start() {
			keeper.startLoopLocked(LoopPreparation)
		}
	case session.StatusPaused:
		if keeper.store.Resume() {
			keeper.startLoopLocked(LoopRunning)
		}
	}
}

// Pause freezes a running session. It does nothing in any other status.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	if keeper.store.State().Session.Status != session.StatusRunning {
		return
	}
	keeper.stopLoopLocked()
	keeper.store.Pause()
}

// Toggle pauses a running session and plays otherwise. Preparation cannot
// be interrupted by Toggle.
func (keeper *TimeKeeper) Toggle() {
	switch keeper.store.State().Session.Status {
	case session.StatusRunning:
		keeper.Pause()
	case session.StatusPreparing:
	default:
		keeper.Play()
	}
}

// Reset abandons the current session and returns to Idle.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	keeper.stopLoopLocked()
	keeper.store.Reset()
}

// Close stops the active loop without touching the session.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	keeper.stopLoopLocked()
}

// Active reports which loop is running.
func (keeper *TimeKeeper) Active() Loop {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.loop
}

func (keeper *TimeKeeper) startLoopLocked(loop Loop) {
	keeper.stopLoopLocked()

	generation := keeper.generation
	keeper.loop = loop
	keeper.cancel = keeper.options.Clock.Every(keeper.options.Interval, func() {
		keeper.tick(generation)
	})
	keeper.options.Logger.Debug("tick loop started", "loop", loop)
}

func (keeper *TimeKeeper) stopLoopLocked() {
	if keeper.cancel != nil {
		keeper.cancel()
		keeper.cancel = nil
		keeper.options.Logger.Debug("tick loop stopped", "loop", keeper.loop)
	}
	keeper.generation++
	keeper.loop = LoopNone
}

func (keeper *TimeKeeper) tick(generation uint64) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	// A tick already in flight when its loop was cancelled.
	if generation != keeper.generation {
		return
	}

	switch keeper.loop {
	case LoopPreparation:
		keeper.advancePreparationLocked()
	case LoopRunning:
		keeper.advanceRunningLocked()
	}
}

func (keeper *TimeKeeper) advancePreparationLocked() {
	state := keeper.store.State()
	if state.Session.Status != session.StatusPreparing {
		keeper.stopLoopLocked()
		return
	}

	if count, ok := countdownValue(state.Session.RemainingPreparationSeconds); ok {
		keeper.cues.Dispatch(cue.CountdownTick(count), state.Config.Audio)
	}

	keeper.store.TickPreparation()

	state = keeper.store.State()
	if state.Session.Status != session.StatusRunning {
		return
	}

	keeper.startLoopLocked(LoopRunning)
	first := phase.First(state.Config)
	keeper.store.EnterPhase(first)
	keeper.cues.Dispatch(cue.PhaseStart(first), state.Config.Audio)
}

func (keeper *TimeKeeper) advanceRunningLocked() {
	state := keeper.store.State()
	if state.Session.Status != session.StatusRunning {
		keeper.stopLoopLocked()
		return
	}

	if state.Session.RemainingSeconds <= 1 {
		keeper.stopLoopLocked()
		keeper.store.Finish()
		keeper.cues.Dispatch(cue.SessionEnd(), state.Config.Audio)
		return
	}

	if state.RemainingPhaseSeconds > 1 {
		keeper.store.TickRunning(state.Phase, state.RemainingPhaseSeconds-1)
		return
	}

	next := phase.Next(state.Config, state.Phase)
	keeper.store.TickRunning(next, state.Config.Duration(next))
	keeper.cues.Dispatch(cue.PhaseStart(next), state.Config.Audio)
}
