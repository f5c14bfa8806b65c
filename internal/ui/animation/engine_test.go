package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"respira/internal/core/model"
)

func TestTargetScale(t *testing.T) {
	config := Config{MinScale: 0.5, MaxScale: 1}
	tests := []struct {
		phase model.Phase
		want  float32
	}{
		{model.PhaseInhale, 1},
		{model.PhaseExhale, 0.5},
		{model.PhaseHoldAfterInhale, 0.7},
		{model.PhaseHoldAfterExhale, 0.7},
		{model.PhaseNone, 0.7},
	}
	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			if got := TargetScale(config, tt.phase, 0.7); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInterpolate(t *testing.T) {
	if got := Interpolate(0, 1, -1); got != 0 {
		t.Fatalf("below range: %v", got)
	}
	if got := Interpolate(0, 1, 2); got != 1 {
		t.Fatalf("above range: %v", got)
	}
	if got := Interpolate(0, 1, 0.5); got != 0.5 {
		t.Fatalf("midpoint: %v", got)
	}
	if got := Interpolate(1, 0.5, 0.25); got >= 1 || got <= 0.5 {
		t.Fatalf("shrinking midpoint out of range: %v", got)
	}
}

type scaleRecorder struct {
	mu     sync.Mutex
	scales []float32
	last   chan float32
}

func newScaleRecorder() *scaleRecorder {
	return &scaleRecorder{last: make(chan float32, 1024)}
}

func (recorder *scaleRecorder) update(scale float32) {
	recorder.mu.Lock()
	recorder.scales = append(recorder.scales, scale)
	recorder.mu.Unlock()
	recorder.last <- scale
}

func TestAnimateReachesTarget(t *testing.T) {
	recorder := newScaleRecorder()
	engine := New(Config{FrameInterval: time.Millisecond, MinScale: 0.5, MaxScale: 1}, recorder.update)

	engine.Animate(context.Background(), model.PhaseInhale, 5*time.Millisecond)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case scale := <-recorder.last:
			if scale == 1 {
				if engine.Current() != 1 {
					t.Fatalf("current = %v", engine.Current())
				}
				return
			}
		case <-deadline:
			t.Fatal("animation never reached the inhale target")
		}
	}
}

func TestStopFreezesScale(t *testing.T) {
	recorder := newScaleRecorder()
	engine := New(Config{FrameInterval: time.Hour, MinScale: 0.5, MaxScale: 1}, recorder.update)

	engine.Animate(context.Background(), model.PhaseInhale, 2*time.Hour)
	engine.Stop()

	if engine.Current() != 0.5 {
		t.Fatalf("current = %v", engine.Current())
	}
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if len(recorder.scales) != 0 {
		t.Fatalf("unexpected updates: %v", recorder.scales)
	}
}

func TestRestReturnsToMinimum(t *testing.T) {
	recorder := newScaleRecorder()
	engine := New(Config{FrameInterval: time.Millisecond, MinScale: 0.5, MaxScale: 1}, recorder.update)

	engine.Animate(context.Background(), model.PhaseInhale, time.Millisecond)
	select {
	case <-recorder.last:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame rendered")
	}

	engine.Rest()
	if engine.Current() != 0.5 {
		t.Fatalf("current = %v", engine.Current())
	}
}
