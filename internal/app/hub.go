package app

import (
	"sync"

	"exam-paper-service/internal/domain"
)

// Hub fans question events out to every live subscriber. Best effort only:
// no persistence, no replay, and a subscriber that reconnects after an event
// must resynchronize with a full read. Events reach each subscriber in
// publish order; nothing is guaranteed across independent exams.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan domain.QuestionEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan domain.QuestionEvent]struct{})}
}

// Subscribe registers a live connection. The caller must invoke the returned
// cancel function to avoid leaks.
func (h *Hub) Subscribe() (<-chan domain.QuestionEvent, func()) {
	ch := make(chan domain.QuestionEvent, 16)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// SubscriberCount reports how many live subscriptions are registered.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Publish delivers the event to every current subscriber without blocking.
// A slow subscriber loses its oldest pending event rather than stalling the
// publishing caller. Publish never fails.
func (h *Hub) Publish(event domain.QuestionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- event
		}
	}
}
