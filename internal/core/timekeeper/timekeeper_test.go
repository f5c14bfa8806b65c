package timekeeper

import (
	"sync"
	"testing"
	"time"

	"respira/internal/core/cue"
	"respira/internal/core/model"
	"respira/internal/core/session"
)

type cueRecorder struct {
	mu     sync.Mutex
	events []cue.Event
}

func (rec *cueRecorder) Dispatch(event cue.Event, _ model.AudioConfig) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.events = append(rec.events, event)
}

func (rec *cueRecorder) take() []cue.Event {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	events := rec.events
	rec.events = nil
	return events
}

func testLimits() model.Limits {
	limits := model.DefaultLimits()
	limits.Session = model.Range{Min: 1, Max: 3600}
	return limits
}

type fixture struct {
	store  *session.Store
	keeper *TimeKeeper
	clock  *ManualClock
	cues   *cueRecorder
}

func newFixture(t *testing.T, config model.Config) *fixture {
	t.Helper()
	store := session.NewStore(config, session.WithLimits(testLimits()))
	clock := NewManualClock()
	cues := &cueRecorder{}
	keeper := New(store, cues, Config{Clock: clock})
	t.Cleanup(keeper.Close)
	return &fixture{store: store, keeper: keeper, clock: clock, cues: cues}
}

func breathing(inhale, holdIn, exhale, holdOut, prep, total int) model.Config {
	config := model.DefaultConfig()
	config.Inhale = inhale
	config.HoldAfterInhale = holdIn
	config.Exhale = exhale
	config.HoldAfterExhale = holdOut
	config.Preparation = prep
	config.Session = total
	return config
}

// toRunning plays and ticks through the preparation countdown.
func (fx *fixture) toRunning(t *testing.T) {
	t.Helper()
	fx.keeper.Play()
	for i := 0; i < 20 && fx.store.State().Session.Status == session.StatusPreparing; i++ {
		fx.clock.Advance()
	}
	if status := fx.store.State().Session.Status; status != session.StatusRunning {
		t.Fatalf("status = %s, want running", status)
	}
}

func TestPlayStartsPreparationLoop(t *testing.T) {
	fx := newFixture(t, breathing(4, 4, 6, 4, 4, 300))
	fx.keeper.Play()

	if status := fx.store.State().Session.Status; status != session.StatusPreparing {
		t.Fatalf("status = %s, want preparing", status)
	}
	if fx.keeper.Active() != LoopPreparation {
		t.Fatalf("loop = %s, want preparation", fx.keeper.Active())
	}
	if fx.clock.Active() != 1 {
		t.Fatalf("expected 1 timer, got %d", fx.clock.Active())
	}
}

func TestPreparationCountdownCues(t *testing.T) {
	fx := newFixture(t, breathing(4, 4, 6, 4, 4, 300))
	fx.keeper.Play()

	fx.clock.AdvanceN(3)
	got := fx.cues.take()
	want := []cue.Event{cue.CountdownTick(3), cue.CountdownTick(2), cue.CountdownTick(1)}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("cue %d = %+v, want %+v", index, got[index], want[index])
		}
	}
	if remaining := fx.store.State().Session.RemainingPreparationSeconds; remaining != 1 {
		t.Fatalf("remaining preparation = %d, want 1", remaining)
	}

	fx.clock.Advance()
	state := fx.store.State()
	if state.Session.Status != session.StatusRunning {
		t.Fatalf("status = %s, want running", state.Session.Status)
	}
	if state.Phase != model.PhaseInhale || state.RemainingPhaseSeconds != 4 {
		t.Fatalf("phase = %q/%d, want inhale/4", state.Phase, state.RemainingPhaseSeconds)
	}
	if got := fx.cues.take(); len(got) != 1 || got[0] != cue.PhaseStart(model.PhaseInhale) {
		t.Fatalf("expected a single inhale cue, got %v", got)
	}
	if fx.keeper.Active() != LoopRunning || fx.clock.Active() != 1 {
		t.Fatalf("expected exactly the running loop, got %s with %d timers", fx.keeper.Active(), fx.clock.Active())
	}
	if state.Session.RemainingSeconds != 300 {
		t.Fatalf("preparation must not consume session time, remaining = %d", state.Session.RemainingSeconds)
	}
}

func TestShortPreparationHasNoCountdownCue(t *testing.T) {
	fx := newFixture(t, breathing(4, 0, 4, 0, 1, 300))
	fx.keeper.Play()
	fx.clock.Advance()

	got := fx.cues.take()
	if len(got) != 1 || got[0].Kind != cue.KindPhaseStart {
		t.Fatalf("expected only the phase cue, got %v", got)
	}
}

func TestPhaseBoundaryAdvancesOnce(t *testing.T) {
	fx := newFixture(t, breathing(1, 0, 3, 0, 1, 300))
	fx.toRunning(t)
	fx.cues.take()

	state := fx.store.State()
	if state.Phase != model.PhaseInhale || state.RemainingPhaseSeconds != 1 {
		t.Fatalf("setup: phase = %q/%d", state.Phase, state.RemainingPhaseSeconds)
	}

	fx.clock.Advance()
	state = fx.store.State()
	if state.Phase != model.PhaseExhale || state.RemainingPhaseSeconds != 3 {
		t.Fatalf("phase = %q/%d, want exhale/3", state.Phase, state.RemainingPhaseSeconds)
	}
	if got := fx.cues.take(); len(got) != 1 || got[0] != cue.PhaseStart(model.PhaseExhale) {
		t.Fatalf("expected exactly one exhale cue, got %v", got)
	}

	fx.clock.AdvanceN(2)
	if got := fx.cues.take(); len(got) != 0 {
		t.Fatalf("no cue expected inside a phase, got %v", got)
	}
	if remaining := fx.store.State().RemainingPhaseSeconds; remaining != 1 {
		t.Fatalf("remaining phase = %d, want 1", remaining)
	}

	fx.clock.Advance()
	if phase := fx.store.State().Phase; phase != model.PhaseInhale {
		t.Fatalf("cycle should wrap to inhale, got %q", phase)
	}
}

func TestFullCycleOrder(t *testing.T) {
	fx := newFixture(t, breathing(1, 1, 1, 1, 1, 300))
	fx.toRunning(t)

	var phases []model.Phase
	phases = append(phases, fx.store.State().Phase)
	for i := 0; i < 4; i++ {
		fx.clock.Advance()
		phases = append(phases, fx.store.State().Phase)
	}
	want := []model.Phase{
		model.PhaseInhale,
		model.PhaseHoldAfterInhale,
		model.PhaseExhale,
		model.PhaseHoldAfterExhale,
		model.PhaseInhale,
	}
	for index := range want {
		if phases[index] != want[index] {
			t.Fatalf("phases = %v, want %v", phases, want)
		}
	}
}

func TestSessionEndsOnLastSecond(t *testing.T) {
	fx := newFixture(t, breathing(4, 0, 4, 0, 1, 3))
	fx.toRunning(t)
	fx.cues.take()

	fx.clock.AdvanceN(2)
	if remaining := fx.store.State().Session.RemainingSeconds; remaining != 1 {
		t.Fatalf("remaining = %d, want 1", remaining)
	}

	fx.clock.Advance()
	state := fx.store.State()
	if state.Session.Status != session.StatusFinished {
		t.Fatalf("status = %s, want finished", state.Session.Status)
	}
	if state.Session.RemainingSeconds != 0 || state.Phase != model.PhaseNone {
		t.Fatalf("unexpected finished state: %+v", state)
	}
	if got := fx.cues.take(); len(got) != 1 || got[0] != cue.SessionEnd() {
		t.Fatalf("expected exactly one session end cue, got %v", got)
	}
	if fx.keeper.Active() != LoopNone || fx.clock.Active() != 0 {
		t.Fatalf("loop should be stopped, got %s with %d timers", fx.keeper.Active(), fx.clock.Active())
	}

	fx.clock.AdvanceN(3)
	if got := fx.cues.take(); len(got) != 0 {
		t.Fatalf("no cues after finish, got %v", got)
	}
}

func TestPauseResumeKeepsPhaseTime(t *testing.T) {
	fx := newFixture(t, breathing(6, 0, 6, 0, 1, 300))
	fx.toRunning(t)
	fx.clock.AdvanceN(2)

	before := fx.store.State()
	if before.RemainingPhaseSeconds != 4 {
		t.Fatalf("setup: remaining phase = %d", before.RemainingPhaseSeconds)
	}

	fx.keeper.Pause()
	if status := fx.store.State().Session.Status; status != session.StatusPaused {
		t.Fatalf("status = %s, want paused", status)
	}
	if fx.clock.Active() != 0 {
		t.Fatalf("pause must cancel the timer, %d left", fx.clock.Active())
	}
	paused := fx.store.State()
	fx.clock.AdvanceN(5)
	if fx.store.State() != paused || paused.RemainingPhaseSeconds != 4 {
		t.Fatal("paused session must not advance")
	}

	fx.keeper.Play()
	if fx.keeper.Active() != LoopRunning {
		t.Fatalf("resume should start the running loop, got %s", fx.keeper.Active())
	}
	fx.clock.Advance()
	after := fx.store.State()
	if after.RemainingPhaseSeconds != 3 {
		t.Fatalf("remaining phase = %d, want 3", after.RemainingPhaseSeconds)
	}
	if after.Session.RemainingSeconds != before.Session.RemainingSeconds-1 {
		t.Fatalf("session remaining = %d, want %d", after.Session.RemainingSeconds, before.Session.RemainingSeconds-1)
	}
}

func TestPauseOutsideRunningIsIgnored(t *testing.T) {
	fx := newFixture(t, breathing(4, 0, 4, 0, 3, 300))
	fx.keeper.Pause()
	if status := fx.store.State().Session.Status; status != session.StatusIdle {
		t.Fatalf("status = %s, want idle", status)
	}

	fx.keeper.Play()
	fx.keeper.Pause()
	if fx.keeper.Active() != LoopPreparation {
		t.Fatalf("pause during preparation must keep the countdown, loop = %s", fx.keeper.Active())
	}
	fx.keeper.Toggle()
	if fx.keeper.Active() != LoopPreparation {
		t.Fatalf("toggle during preparation must keep the countdown, loop = %s", fx.keeper.Active())
	}
}

func TestPlayTwiceIsIdempotent(t *testing.T) {
	fx := newFixture(t, breathing(4, 0, 4, 0, 1, 300))
	fx.toRunning(t)

	notifications := 0
	unsubscribe := fx.store.Subscribe(func(session.Snapshot) { notifications++ })
	defer unsubscribe()
	notifications = 0

	fx.keeper.Play()
	fx.keeper.Play()
	if notifications != 0 {
		t.Fatalf("play while running must not mutate, got %d notifications", notifications)
	}
	if fx.clock.Active() != 1 {
		t.Fatalf("expected a single timer, got %d", fx.clock.Active())
	}
}

func TestResetStopsEverything(t *testing.T) {
	fx := newFixture(t, breathing(4, 0, 4, 0, 1, 300))
	fx.toRunning(t)
	fx.clock.AdvanceN(5)

	fx.keeper.Reset()
	state := fx.store.State()
	if state.Session.Status != session.StatusIdle || state.Session.RemainingSeconds != 300 {
		t.Fatalf("unexpected state after reset: %+v", state.Session)
	}
	if fx.keeper.Active() != LoopNone || fx.clock.Active() != 0 {
		t.Fatal("reset must cancel the loop")
	}

	fx.keeper.Play()
	if status := fx.store.State().Session.Status; status != session.StatusPreparing {
		t.Fatalf("play after reset: status = %s", status)
	}
}

func TestPlayAfterFinishStartsAgain(t *testing.T) {
	fx := newFixture(t, breathing(4, 0, 4, 0, 1, 2))
	fx.toRunning(t)
	fx.clock.AdvanceN(2)
	if status := fx.store.State().Session.Status; status != session.StatusFinished {
		t.Fatalf("setup: status = %s", status)
	}

	fx.keeper.Toggle()
	state := fx.store.State()
	if state.Session.Status != session.StatusPreparing || state.Session.RemainingSeconds != 2 {
		t.Fatalf("unexpected state: %+v", state.Session)
	}
}

func TestMutedSessionDispatchesNothing(t *testing.T) {
	config := breathing(1, 1, 1, 1, 4, 20)
	config.Audio.Enabled = false

	store := session.NewStore(config, session.WithLimits(testLimits()))
	clock := NewManualClock()
	var played []string
	dispatcher := cue.NewDispatcher(cue.PlayerFunc(func(key string, _ float64) {
		played = append(played, key)
	}))
	keeper := New(store, dispatcher, Config{Clock: clock})
	defer keeper.Close()

	keeper.Play()
	clock.AdvanceN(40)
	if status := store.State().Session.Status; status != session.StatusFinished {
		t.Fatalf("status = %s, want finished", status)
	}
	if len(played) != 0 {
		t.Fatalf("expected no cues, got %v", played)
	}
}

// leakyClock keeps cancelled tasks so a late tick can be simulated.
type leakyClock struct {
	tasks []func()
}

func (clock *leakyClock) Every(_ time.Duration, fn func()) func() {
	clock.tasks = append(clock.tasks, fn)
	return func() {}
}

func TestLateTickFromCancelledLoopIsDropped(t *testing.T) {
	store := session.NewStore(breathing(5, 0, 5, 0, 1, 300), session.WithLimits(testLimits()))
	clock := &leakyClock{}
	keeper := New(store, nil, Config{Clock: clock})

	keeper.Play()
	clock.tasks[0]()
	if status := store.State().Session.Status; status != session.StatusRunning {
		t.Fatalf("status = %s, want running", status)
	}
	running := clock.tasks[1]
	running()

	keeper.Pause()
	paused := store.State()
	running()
	clock.tasks[0]()
	if store.State() != paused {
		t.Fatal("ticks from cancelled loops must not change state")
	}
}

func TestSystemClockDrivesSession(t *testing.T) {
	store := session.NewStore(breathing(1, 0, 1, 0, 1, 3), session.WithLimits(testLimits()))
	keeper := New(store, nil, Config{Interval: 5 * time.Millisecond})
	defer keeper.Close()

	done := make(chan struct{})
	var once sync.Once
	unsubscribe := store.Subscribe(func(snapshot session.Snapshot) {
		if snapshot.Session.Status == session.StatusFinished {
			once.Do(func() { close(done) })
		}
	})
	defer unsubscribe()

	keeper.Play()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("session did not finish, state = %+v", store.State())
	}
	if keeper.Active() != LoopNone {
		t.Fatalf("loop = %s after finish", keeper.Active())
	}
}
