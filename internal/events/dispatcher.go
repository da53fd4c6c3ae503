package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Handler consumes a published event. Handlers must treat the incident
// snapshot as read-only.
type Handler func(context.Context, Event) error

// Dispatcher decouples event producers from consumers.
type Dispatcher interface {
	// Publish hands the event to subscribed handlers and returns without
	// waiting for them to run.
	Publish(ctx context.Context, event Event)
	// Subscribe registers a handler for the given kind. Handlers for one
	// event run in subscription order.
	Subscribe(kind Kind, handler Handler)
}

// asyncDispatcher runs each event's handlers on a dedicated goroutine,
// sequentially in subscription order.
type asyncDispatcher struct {
	mu        sync.RWMutex
	listeners map[Kind][]Handler
	wg        sync.WaitGroup
	logger    *zap.Logger

	closeMu sync.Mutex
	closed  bool
}

// NewAsyncDispatcher creates a dispatcher instance.
func NewAsyncDispatcher(logger *zap.Logger) *asyncDispatcher {
	return &asyncDispatcher{
		listeners: make(map[Kind][]Handler),
		logger:    logger,
	}
}

// Publish snapshots the current subscriber list and returns immediately.
// Handlers run detached from the caller's context so a cancelled request
// cannot abort notification delivery of an already-committed mutation.
func (d *asyncDispatcher) Publish(ctx context.Context, event Event) {
	d.mu.RLock()
	handlers := append([]Handler{}, d.listeners[event.Kind]...)
	d.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	d.closeMu.Lock()
	if d.closed {
		d.closeMu.Unlock()
		d.logger.Warn("dispatcher closed, dropping event",
			zap.String("kind", string(event.Kind)),
			zap.String("incident_id", event.Incident.ID))
		return
	}
	d.wg.Add(1)
	d.closeMu.Unlock()

	detached := context.WithoutCancel(ctx)
	go func() {
		defer d.wg.Done()
		for _, handler := range handlers {
			d.invoke(detached, handler, event)
		}
	}()
}

// Subscribe registers a handler for the given event kind.
func (d *asyncDispatcher) Subscribe(kind Kind, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[kind] = append(d.listeners[kind], handler)
}

// Close stops accepting events and waits for in-flight handlers.
func (d *asyncDispatcher) Close() {
	d.closeMu.Lock()
	d.closed = true
	d.closeMu.Unlock()
	d.wg.Wait()
}

func (d *asyncDispatcher) invoke(ctx context.Context, handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event handler panicked",
				zap.String("kind", string(event.Kind)),
				zap.String("incident_id", event.Incident.ID),
				zap.Any("panic", r))
		}
	}()
	if err := handler(ctx, event); err != nil {
		d.logger.Error("event handler failed",
			zap.String("kind", string(event.Kind)),
			zap.String("incident_id", event.Incident.ID),
			zap.Error(err))
	}
}
