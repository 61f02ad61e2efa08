// Package notify fans transient toast notifications out to subscribers
// (the admin UI listens over SSE). Delivery is fire-and-forget: a subscriber
// that falls behind misses events rather than blocking the publisher.
package notify

import (
	"sync"

	"github.com/meridian/fund-console/internal/types"
)

// subscriberBuffer bounds each subscriber's channel. Toasts are advisory;
// dropping under backpressure is acceptable.
const subscriberBuffer = 16

// Hub distributes toasts to any number of subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[chan types.Toast]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan types.Toast]struct{})}
}

// Publish sends a toast to every current subscriber without blocking.
func (h *Hub) Publish(t types.Toast) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- t:
		default:
		}
	}
}

// Subscribe returns a channel of toasts and a cancel function. The channel is
// closed on cancel.
func (h *Hub) Subscribe() (<-chan types.Toast, func()) {
	ch := make(chan types.Toast, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Info publishes an informational toast.
func (h *Hub) Info(msg string) { h.Publish(types.Toast{Severity: types.ToastInfo, Message: msg}) }

// Success publishes a success toast.
func (h *Hub) Success(msg string) {
	h.Publish(types.Toast{Severity: types.ToastSuccess, Message: msg})
}

// Warn publishes a warning toast.
func (h *Hub) Warn(msg string) { h.Publish(types.Toast{Severity: types.ToastWarning, Message: msg}) }

// Error publishes an error toast.
func (h *Hub) Error(msg string) { h.Publish(types.Toast{Severity: types.ToastError, Message: msg}) }
