package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultQueueSize   = 8
	defaultPlayTimeout = 2 * time.Second
)

type request struct {
	key    string
	volume float64
}

// QueueConfig contains runtime options for Queue.
type QueueConfig struct {
	Size        int
	PlayTimeout time.Duration
	Logger      *slog.Logger
}

// Queue hands cues to a Backend on a single worker goroutine. PlayCue never
// blocks: when the queue is full the cue is dropped.
type Queue struct {
	backend Backend
	options QueueConfig
	ctx     context.Context
	cancel  context.CancelFunc
	pending chan request
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewQueue starts a worker for backend.
func NewQueue(backend Backend, options QueueConfig) *Queue {
	if options.Size <= 0 {
		options.Size = defaultQueueSize
	}
	if options.PlayTimeout <= 0 {
		options.PlayTimeout = defaultPlayTimeout
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	queue := &Queue{
		backend: backend,
		options: options,
		ctx:     ctx,
		cancel:  cancel,
		pending: make(chan request, options.Size),
		done:    make(chan struct{}),
	}
	go queue.run()
	return queue
}

// PlayCue enqueues a cue.
func (queue *Queue) PlayCue(key string, volume float64) {
	queue.mu.RLock()
	defer queue.mu.RUnlock()
	if queue.closed {
		return
	}

	select {
	case queue.pending <- request{key: key, volume: volume}:
	default:
		queue.options.Logger.Warn("cue dropped, audio queue full", "key", key)
	}
}

// Close stops the worker after the cue in progress and discards the rest.
func (queue *Queue) Close() {
	queue.mu.Lock()
	if queue.closed {
		queue.mu.Unlock()
		<-queue.done
		return
	}
	queue.closed = true
	close(queue.pending)
	queue.mu.Unlock()

	queue.cancel()
	<-queue.done
}

func (queue *Queue) run() {
	defer close(queue.done)
	for next := range queue.pending {
		if queue.ctx.Err() != nil {
			continue
		}
		if err := queue.play(next); err != nil {
			queue.options.Logger.Warn("play cue failed", "key", next.key, "error", err)
		}
	}
}

func (queue *Queue) play(next request) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("backend panic: %v", recovered)
		}
	}()

	ctx, cancel := context.WithTimeout(queue.ctx, queue.options.PlayTimeout)
	defer cancel()
	return queue.backend.Play(ctx, next.key, next.volume)
}
