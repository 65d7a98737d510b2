// Package events provides an in-process publish/subscribe hub that backs
// the Server-Sent Events stream. Content mutations publish here and every
// connected client receives the change notification, replacing the old
// poll-every-few-seconds approach.
package events

import (
	"sync"
	"time"
)

// Event is one change notification pushed to connected clients.
type Event struct {
	// Type is the SSE event name, e.g. "section.updated", "settings.reset".
	Type string `json:"type"`
	// Section is the content section key, empty for non-section events.
	Section string `json:"section,omitempty"`
	// At is when the change happened.
	At time.Time `json:"at"`
}

// Hub fans events out to subscribers. Safe for concurrent use.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function. The caller must call unsubscribe when done or the
// subscription leaks.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	// Buffered so one slow client cannot stall Publish; overflow drops.
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, unsubscribe
}

// Publish delivers ev to every current subscriber. Subscribers whose
// buffers are full miss the event; clients reconcile on reconnect by
// re-fetching, so a dropped notification is not a correctness problem.
func (h *Hub) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount reports the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
