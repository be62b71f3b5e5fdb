// Package eventbus is a small in-process publish/subscribe bus.
package eventbus

import (
	"sync"
	"sync/atomic"
)

// DefaultBuffer is the channel capacity given to each subscriber.
const DefaultBuffer = 16

// EventBus publishes values of type T to every subscriber.
type EventBus[T any] interface {
	Publish(T)
	Subscribe() <-chan T
	Unsubscribe(<-chan T)
	Close()
}

// Bus is the default EventBus implementation using fan-out channels.
// Publishing never blocks: a subscriber whose buffer is full misses the
// event and the drop is counted.
type Bus[T any] struct {
	mu      sync.RWMutex
	subs    []chan T
	buffer  int
	closed  bool
	dropped atomic.Uint64
}

// New creates a bus whose subscribers get buffer slots each. A non-positive
// buffer selects DefaultBuffer.
func New[T any](buffer int) *Bus[T] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Bus[T]{buffer: buffer}
}

// Publish sends the event to all subscribers.
func (b *Bus[T]) Publish(e T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.dropped.Add(1)
		}
	}
}

// Subscribe registers a subscriber and returns its channel. Subscribing to a
// closed bus returns a closed channel.
func (b *Bus[T]) Subscribe() <-chan T {
	ch := make(chan T, b.buffer)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus[T]) Unsubscribe(sub <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Dropped returns how many deliveries were skipped because a subscriber was
// not keeping up.
func (b *Bus[T]) Dropped() uint64 { return b.dropped.Load() }

// Close closes all subscriber channels. Later publishes are ignored.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
