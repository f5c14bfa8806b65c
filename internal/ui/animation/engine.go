package animation

import (
	"context"
	"sync"
	"time"

	"respira/internal/core/model"
)

// Config contains breath circle animation values.
type Config struct {
	FrameInterval time.Duration
	MinScale      float32
	MaxScale      float32
}

// Engine animates the breath circle. The circle grows while inhaling,
// shrinks while exhaling and stays put during holds.
type Engine struct {
	mu          sync.Mutex
	config      Config
	updateScale func(float32)
	current     float32
	cancel      context.CancelFunc
}

// New creates a new animation engine resting at the minimum scale.
func New(config Config, updateScale func(float32)) *Engine {
	return &Engine{
		config:      config,
		updateScale: updateScale,
		current:     config.MinScale,
	}
}

// Animate moves the circle toward the target of phase over duration.
func (engine *Engine) Animate(ctx context.Context, phase model.Phase, duration time.Duration) {
	engine.mu.Lock()
	from := engine.current
	engine.mu.Unlock()

	to := TargetScale(engine.config, phase, from)
	frames := frameCount(duration, engine.config.FrameInterval)

	engine.start(ctx, func(runCtx context.Context) {
		for frame := 1; frame <= frames; frame++ {
			if !sleepWithContext(runCtx, engine.config.FrameInterval) {
				return
			}
			progress := float32(frame) / float32(frames)
			engine.set(runCtx, Interpolate(from, to, progress))
		}
	})
}

// Rest stops any animation and returns the circle to its minimum scale.
func (engine *Engine) Rest() {
	engine.Stop()
	engine.mu.Lock()
	engine.current = engine.config.MinScale
	engine.mu.Unlock()
	engine.updateScale(engine.config.MinScale)
}

// Stop terminates any active animation and keeps the current scale.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// Current returns the last scale sent to the view.
func (engine *Engine) Current() float32 {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.current
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

func (engine *Engine) set(ctx context.Context, scale float32) {
	engine.mu.Lock()
	if ctx.Err() != nil {
		engine.mu.Unlock()
		return
	}
	engine.current = scale
	engine.mu.Unlock()
	engine.updateScale(scale)
}

func frameCount(duration, interval time.Duration) int {
	if interval <= 0 || duration <= interval {
		return 1
	}
	return int(duration / interval)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
