package event

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/extpoint/extpoint/extension/types"
	"github.com/extpoint/extpoint/logging/logger"
)

// FailureHook receives the recovered value when a handler panics during
// dispatch. The failed handler never aborts delivery to the remaining
// handlers of the same emission.
type FailureHook func(eventName string, recovered any)

// registration is one handler entry in a per-event list
type registration struct {
	id      uint64
	handler types.Handler
}

// Bus is a per-instance event bus. Dispatch is synchronous and preserves
// registration order: handlers registered for the exact event name run
// first, then handlers registered for the wildcard name "*". The dispatch
// list is snapshotted when Emit is called, so a handler registered during
// dispatch does not receive the in-flight emission.
type Bus struct {
	subscribers map[string][]registration
	nextID      uint64
	closed      bool
	source      string
	onFailure   FailureHook
	mu          sync.RWMutex
	metrics     struct {
		published        atomic.Int64
		delivered        atomic.Int64
		failed           atomic.Int64
		lastEventTime    atomic.Value
		totalSubscribers atomic.Int32
	}
}

// Option configures a Bus
type Option func(*Bus)

// WithSource sets the source recorded on every event envelope
func WithSource(source string) Option {
	return func(b *Bus) {
		b.source = source
	}
}

// WithFailureHook sets the hook invoked when a handler panics
func WithFailureHook(hook FailureHook) Option {
	return func(b *Bus) {
		b.onFailure = hook
	}
}

// NewBus creates a new event bus
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		subscribers: make(map[string][]registration),
		source:      "extension",
	}
	b.metrics.lastEventTime.Store(time.Time{})

	for _, opt := range opts {
		opt(b)
	}
	return b
}

// On appends a handler to the list for eventName and returns a token for
// later removal. Registering the same handler twice yields two distinct
// registrations and two deliveries per emission. A nil handler or empty
// event name is a no-op.
func (b *Bus) On(eventName string, handler types.Handler) types.Subscription {
	if eventName == "" || handler == nil {
		return types.Subscription{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return types.Subscription{}
	}

	b.nextID++
	b.subscribers[eventName] = append(b.subscribers[eventName], registration{
		id:      b.nextID,
		handler: handler,
	})
	b.metrics.totalSubscribers.Add(1)

	return types.Subscription{Event: eventName, ID: b.nextID}
}

// Off removes the registration identified by sub. Removing an unknown or
// already-removed subscription is a no-op, not an error.
func (b *Bus) Off(sub types.Subscription) {
	if !sub.Valid() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	regs, exists := b.subscribers[sub.Event]
	if !exists {
		return
	}

	for i, reg := range regs {
		if reg.id == sub.ID {
			b.subscribers[sub.Event] = append(regs[:i], regs[i+1:]...)
			b.metrics.totalSubscribers.Add(-1)
			return
		}
	}
}

// Emit delivers an event synchronously, in registration order, to every
// handler registered for eventName and then to every wildcard handler.
// Wildcard handlers see the event name in the envelope's EventType field.
// Emit on a closed bus is a no-op.
func (b *Bus) Emit(eventName string, data any) {
	if eventName == "" || eventName == types.Wildcard {
		return
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	exact := snapshot(b.subscribers[eventName])
	wild := snapshot(b.subscribers[types.Wildcard])
	source := b.source
	b.mu.RUnlock()

	if len(exact) == 0 && len(wild) == 0 {
		return
	}

	now := time.Now()
	b.metrics.published.Add(1)
	b.metrics.lastEventTime.Store(now)

	eventData := types.EventData{
		Time:      now,
		Source:    source,
		EventType: eventName,
		Data:      data,
	}

	for _, reg := range exact {
		b.invoke(eventName, reg, eventData)
	}
	for _, reg := range wild {
		b.invoke(eventName, reg, eventData)
	}
}

// invoke runs one handler with panic isolation
func (b *Bus) invoke(eventName string, reg registration, data types.EventData) {
	defer func() {
		if r := recover(); r != nil {
			b.metrics.failed.Add(1)
			if b.onFailure != nil {
				b.onFailure(eventName, r)
			} else {
				logger.Errorf(nil, "panic in event handler for %s: %v", eventName, r)
			}
		}
	}()

	reg.handler(data)
	b.metrics.delivered.Add(1)
}

// Close removes all handlers and marks the bus closed. Subsequent Emit
// and On calls are no-ops. Close is idempotent.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	b.subscribers = make(map[string][]registration)
	b.metrics.totalSubscribers.Store(0)
}

// Closed reports whether the bus has been closed
func (b *Bus) Closed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// GetMetrics returns event bus metrics
func (b *Bus) GetMetrics() map[string]any {
	lastEventTime := b.metrics.lastEventTime.Load().(time.Time)
	return map[string]any{
		"published_events": b.metrics.published.Load(),
		"delivered_events": b.metrics.delivered.Load(),
		"failed_events":    b.metrics.failed.Load(),
		"last_event_time":  lastEventTime,
		"total":            b.metrics.totalSubscribers.Load(),
		"failure_rate":     b.calculateFailureRate(),
	}
}

// calculateFailureRate calculates the failure rate percentage
func (b *Bus) calculateFailureRate() float64 {
	delivered := b.metrics.delivered.Load()
	failed := b.metrics.failed.Load()
	total := delivered + failed
	if total == 0 {
		return 0.0
	}

	return (float64(failed) / float64(total)) * 100.0
}

// snapshot copies a registration list for lock-free iteration
func snapshot(regs []registration) []registration {
	if len(regs) == 0 {
		return nil
	}
	out := make([]registration, len(regs))
	copy(out, regs)
	return out
}
