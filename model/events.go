package model

import "sync"

// Handler receives a lifecycle notification's arguments.
type Handler func(args ...any)

// emitter is the handler registry shared by Record and Collection.
type emitter struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// On registers a handler for the named event.
func (e *emitter) On(event string, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handlers == nil {
		e.handlers = make(map[string][]Handler)
	}
	e.handlers[event] = append(e.handlers[event], h)
}

// Emit invokes all handlers registered for the named event, in registration
// order. Fire-and-forget: handler return values and panics are the caller's
// concern.
func (e *emitter) Emit(event string, args ...any) {
	e.mu.RLock()
	hs := make([]Handler, len(e.handlers[event]))
	copy(hs, e.handlers[event])
	e.mu.RUnlock()

	for _, h := range hs {
		h(args...)
	}
}
