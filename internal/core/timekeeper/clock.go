package timekeeper

import (
	"sync"
	"time"
)

// Clock starts repeating tasks. The returned cancel function stops the task;
// it must be safe to call more than once and from inside fn.
type Clock interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// SystemClock runs tasks on a time.Ticker.
type SystemClock struct{}

// Every calls fn on its own goroutine once per interval until cancelled.
func (SystemClock) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	stopCh := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stopCh)
		})
	}
}

// ManualClock fires tasks only when Advance is called.
type ManualClock struct {
	mu     sync.Mutex
	tasks  map[int]func()
	order  []int
	nextID int
}

// NewManualClock creates a clock with no tasks.
func NewManualClock() *ManualClock {
	return &ManualClock{tasks: make(map[int]func())}
}

// Every registers fn. The interval is ignored; each Advance is one interval.
func (clock *ManualClock) Every(_ time.Duration, fn func()) func() {
	clock.mu.Lock()
	id := clock.nextID
	clock.nextID++
	clock.tasks[id] = fn
	clock.order = append(clock.order, id)
	clock.mu.Unlock()

	return func() {
		clock.mu.Lock()
		defer clock.mu.Unlock()
		delete(clock.tasks, id)
	}
}

// Advance fires every task registered before the call, once, in
// registration order. Tasks cancelled by an earlier task in the same
// Advance are skipped.
func (clock *ManualClock) Advance() {
	clock.mu.Lock()
	ids := append([]int(nil), clock.order...)
	clock.mu.Unlock()

	for _, id := range ids {
		clock.mu.Lock()
		fn, ok := clock.tasks[id]
		clock.mu.Unlock()
		if ok {
			fn()
		}
	}
	clock.compact()
}

// AdvanceN calls Advance n times.
func (clock *ManualClock) AdvanceN(n int) {
	for i := 0; i < n; i++ {
		clock.Advance()
	}
}

// Active returns the number of live tasks.
func (clock *ManualClock) Active() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.tasks)
}

func (clock *ManualClock) compact() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	live := clock.order[:0]
	for _, id := range clock.order {
		if _, ok := clock.tasks[id]; ok {
			live = append(live, id)
		}
	}
	clock.order = live
}
