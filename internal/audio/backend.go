// Package audio plays cue sounds without blocking the tick loop.
package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Backend produces the actual sound for a cue key.
type Backend interface {
	Play(ctx context.Context, key string, volume float64) error
}

// LogBackend records cues in the log instead of playing them.
type LogBackend struct {
	Logger *slog.Logger
}

// Play logs the cue.
func (backend LogBackend) Play(_ context.Context, key string, volume float64) error {
	logger := backend.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("cue", "key", key, "volume", volume)
	return nil
}

// BellBackend rings the terminal bell. Countdown ticks ring once, phase
// starts twice and the session end three times.
type BellBackend struct {
	Out io.Writer
	Gap time.Duration

	mu sync.Mutex
}

// NewBellBackend writes bells to out.
func NewBellBackend(out io.Writer) *BellBackend {
	return &BellBackend{Out: out, Gap: 150 * time.Millisecond}
}

// Play rings the bell for key. Silent volumes are skipped.
func (backend *BellBackend) Play(ctx context.Context, key string, volume float64) error {
	if volume <= 0 {
		return nil
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()

	rings := bellCount(key)
	for i := 0; i < rings; i++ {
		if i > 0 && backend.Gap > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backend.Gap):
			}
		}
		if _, err := io.WriteString(backend.Out, "\a"); err != nil {
			return fmt.Errorf("write bell: %w", err)
		}
	}
	return nil
}

func bellCount(key string) int {
	switch {
	case key == "sessionEnd":
		return 3
	case strings.HasPrefix(key, "phase:"):
		return 2
	default:
		return 1
	}
}
