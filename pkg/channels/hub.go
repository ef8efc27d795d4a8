package channels

import (
	"sync"
	"sync/atomic"
	"time"
)

type subscriber[T any] struct {
	ch      chan T
	timeout time.Duration
	dropped atomic.Int32
}

// Hub broadcasts published messages to a changing set of subscribers.
//
// Each subscriber owns a buffered channel. Messages that do not fit (or do
// not fit within the subscriber's timeout) are dropped for that subscriber
// only. Hub is safe for concurrent use.
type Hub[T any] struct {
	mu     sync.Mutex
	subs   map[uint64]*subscriber[T]
	nextID uint64
	closed bool
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[uint64]*subscriber[T])}
}

// Subscribe returns a channel receiving every message published from now on,
// in non-blocking mode, and a function that unsubscribes and closes it.
func (h *Hub[T]) Subscribe(buffer int) (<-chan T, func()) {
	return h.SubscribeWithTimeout(buffer, 0)
}

// SubscribeWithTimeout is like Subscribe but waits up to timeout for room
// in the channel before dropping a message.
func (h *Hub[T]) SubscribeWithTimeout(buffer int, timeout time.Duration) (<-chan T, func()) {
	sub := &subscriber[T]{
		ch:      make(chan T, buffer),
		timeout: timeout,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = sub

	var once sync.Once

	return sub.ch, func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub[T]) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(sub.ch)
	}
}

// Publish sends msg to every subscriber. It returns the number of
// subscribers that dropped it.
func (h *Hub[T]) Publish(msg T) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	dropped := 0
	for _, sub := range h.subs {
		if err := send(sub.ch, msg, sub.timeout); err != nil {
			sub.dropped.Add(1)
			dropped++
		}
	}

	return dropped
}

// Len returns the number of active subscribers.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs)
}

// Dropped returns the total number of messages dropped across active subscribers.
func (h *Hub[T]) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	total := 0
	for _, sub := range h.subs {
		total += int(sub.dropped.Load())
	}

	return total
}

// Close closes every subscriber channel. Later subscriptions receive an
// already closed channel and later publishes are no-ops.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.ch)
	}
}
