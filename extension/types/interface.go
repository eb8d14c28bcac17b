package types

import "context"

// EventBusInterface defines the interface for per-instance event bus operations
type EventBusInterface interface {
	On(eventName string, handler Handler) Subscription
	Off(sub Subscription)
	Emit(eventName string, data any)
	Close()
	GetMetrics() map[string]any
}

// SettingsAccessor exposes the host settings store to a running extension
type SettingsAccessor interface {
	GetValue(ctx context.Context, module, category, key string) (string, error)
	SetValue(ctx context.Context, module, category, key, value string) error
	EnsureValue(ctx context.Context, module, category, key, fallback string) (string, error)
}

// Cleanup is the optional disposer returned by an entry point. It is
// invoked exactly once at teardown. A disposer that performs asynchronous
// work blocks until that work is finished or ctx is done.
type Cleanup func(ctx context.Context) error

// Context is the activation context handed to an entry point. Data holds
// the initial payload for the extension point; the host never mutates it
// after mount.
type Context struct {
	// Point is the extension point identifier this instance renders into
	Point string
	// Data is the initial data snapshot, validated against the point's contract
	Data any
	// Bus is the instance's private event bus
	Bus EventBusInterface
	// Settings is the host settings store, nil when not configured
	Settings SettingsAccessor
}

// On registers a handler on the instance bus
func (c *Context) On(eventName string, handler Handler) Subscription {
	return c.Bus.On(eventName, handler)
}

// Off removes a previous registration from the instance bus
func (c *Context) Off(sub Subscription) {
	c.Bus.Off(sub)
}

// Emit publishes an event on the instance bus
func (c *Context) Emit(eventName string, data any) {
	c.Bus.Emit(eventName, data)
}

// EntryPoint is the callable that activates an extension at one extension
// point. It may return a Cleanup to run at teardown; a nil Cleanup means
// no teardown work is needed.
type EntryPoint func(ctx *Context) (Cleanup, error)
