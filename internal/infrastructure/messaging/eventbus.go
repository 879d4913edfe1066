// Package messaging implements a synchronous in-memory event bus. Every
// mutation in the hub runs on a single logical thread, so handlers are
// dispatched inline; the bus exists to decouple who reacts from who acts,
// not to add concurrency.
package messaging

import (
	"fmt"
	"sync"

	"github.com/merit-hub/merit-cafe-hub/internal/domain/shared"
	"github.com/merit-hub/merit-cafe-hub/pkg/logger"
)

// EventBus dispatches domain events to subscribed handlers.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[shared.EventType][]shared.EventHandler
	log      *logger.Logger
}

// NewEventBus creates an event bus.
func NewEventBus(log *logger.Logger) *EventBus {
	if log == nil {
		log = logger.Default()
	}
	return &EventBus{
		handlers: make(map[shared.EventType][]shared.EventHandler),
		log:      log.With(logger.String("component", "eventbus")),
	}
}

// Subscribe registers a handler for an event type.
func (b *EventBus) Subscribe(eventType shared.EventType, handler shared.EventHandler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish dispatches the event to all subscribed handlers, inline and in
// subscription order. A panicking handler is recovered and logged; it never
// takes down the mutation that published the event.
func (b *EventBus) Publish(event shared.Event) {
	if event == nil {
		return
	}

	b.mu.RLock()
	handlers := make([]shared.EventHandler, len(b.handlers[event.EventType()]))
	copy(handlers, b.handlers[event.EventType()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.dispatch(event, handler)
	}
}

func (b *EventBus) dispatch(event shared.Event, handler shared.EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked",
				logger.String("event", string(event.EventType())),
				logger.Err(fmt.Errorf("%v", r)))
		}
	}()
	handler(event)
}
