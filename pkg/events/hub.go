package events

import (
	"encoding/json"
	"sync"
)

// subscriberBuffer bounds how far an SSE consumer may fall behind before
// events are dropped for it. Every event is a full-state hint (the GUI
// re-fetches /status anyway), so dropping is safe.
const subscriberBuffer = 8

// EventHub fans daemon events out to SSE subscribers. A nil hub is valid
// and drops everything, so publishers never need to guard against one.
type EventHub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewEventHub() *EventHub { return &EventHub{subs: make(map[chan Event]struct{})} }

func (h *EventHub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe closes the channel so a ranging consumer terminates. Calling
// it twice for the same channel is a no-op.
func (h *EventHub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish marshals the payload once and offers it to every subscriber
// without blocking. A subscriber with a full buffer misses the event.
func (h *EventHub) Publish(name string, payload any) {
	if h == nil {
		return
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := Event{Name: name, Data: b}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}
