// Package events carries process-wide notifications from the transport
// layer to interested state holders. Subscribers register explicitly on a
// Bus passed in at construction; there are no hidden global listeners.
package events

import (
	"sync"
)

// NetworkError is published when a request got no response at all.
type NetworkError struct {
	Message string
}

// Bus is a minimal in-process publish/subscribe channel. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	mu           sync.Mutex
	unauthorized []func()
	network      []func(NetworkError)
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// OnUnauthorized registers a handler for auth failures (HTTP 401).
func (b *Bus) OnUnauthorized(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unauthorized = append(b.unauthorized, fn)
}

// OnNetworkError registers a handler for transport failures.
func (b *Bus) OnNetworkError(fn func(NetworkError)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.network = append(b.network, fn)
}

// PublishUnauthorized notifies all unauthorized handlers.
func (b *Bus) PublishUnauthorized() {
	b.mu.Lock()
	handlers := make([]func(), len(b.unauthorized))
	copy(handlers, b.unauthorized)
	b.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

// PublishNetworkError notifies all network-error handlers.
func (b *Bus) PublishNetworkError(ev NetworkError) {
	b.mu.Lock()
	handlers := make([]func(NetworkError), len(b.network))
	copy(handlers, b.network)
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}
