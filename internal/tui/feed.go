package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"respira/internal/core/session"
)

// snapshotMsg carries the latest store snapshot into Update.
type snapshotMsg session.Snapshot

// feedClosedMsg is delivered once the feed is closed.
type feedClosedMsg struct{}

// Feed moves snapshots from store listeners into the program. Publish never
// blocks: only the newest snapshot is kept until the program picks it up.
type Feed struct {
	mu      sync.Mutex
	latest  session.Snapshot
	pending bool
	notify  chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Publish stores snapshot. It is safe to use as a store listener.
func (feed *Feed) Publish(snapshot session.Snapshot) {
	feed.mu.Lock()
	feed.latest = snapshot
	feed.pending = true
	feed.mu.Unlock()

	select {
	case feed.notify <- struct{}{}:
	default:
	}
}

// Close wakes a pending Wait with feedClosedMsg.
func (feed *Feed) Close() {
	feed.once.Do(func() {
		close(feed.done)
	})
}

// Wait returns a command that blocks until a snapshot is published.
func (feed *Feed) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			if snapshot, ok := feed.take(); ok {
				return snapshotMsg(snapshot)
			}
			select {
			case <-feed.notify:
			case <-feed.done:
				return feedClosedMsg{}
			}
		}
	}
}

func (feed *Feed) take() (session.Snapshot, bool) {
	feed.mu.Lock()
	defer feed.mu.Unlock()
	if !feed.pending {
		return session.Snapshot{}, false
	}
	feed.pending = false
	return feed.latest, true
}
