// Package event provides a simple synchronous/async event dispatcher.
//
// Async handlers run on a shared bounded worker pool so bursty emitters
// cannot spawn unbounded goroutines.
package event

import (
	"sync"

	"github.com/bistrohq/bistro/pkg/workerpool"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}

	// asyncPool bounds concurrent async handler execution.
	asyncPool = workerpool.New(16)
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	mu.RLock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	mu.RUnlock()

	for _, h := range hs {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners without waiting for them.
// Handlers run on the shared pool; when the pool is saturated the handler
// falls back to its own goroutine so no event is dropped.
func FireAsync(event string, payload interface{}) {
	mu.RLock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	mu.RUnlock()

	for _, h := range hs {
		h := h
		if err := asyncPool.Submit(func() { h(payload) }); err != nil {
			go h(payload)
		}
	}
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}
