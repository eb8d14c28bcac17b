package lifecycle

import (
	"sync"
	"time"

	"github.com/extpoint/extpoint/extension/contract"
	"github.com/extpoint/extpoint/extension/event"
	"github.com/extpoint/extpoint/extension/types"
)

// Instance is one running activation of an entry point at one extension
// point. It owns a private event bus constructed at mount time and
// discarded at destroy time.
type Instance struct {
	id        string
	meta      types.Metadata
	contract  contract.Contract
	bus       *event.Bus
	cleanup   types.Cleanup
	mountedAt time.Time

	mu          sync.RWMutex
	status      string
	destroyOnce sync.Once
}

// ID returns the unique instance identifier
func (i *Instance) ID() string {
	return i.id
}

// Point returns the extension point this instance renders into
func (i *Instance) Point() string {
	return i.contract.Point
}

// Metadata returns the entry point metadata
func (i *Instance) Metadata() types.Metadata {
	return i.meta
}

// Status returns the current lifecycle status
func (i *Instance) Status() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.status
}

func (i *Instance) setStatus(status string) {
	i.mu.Lock()
	i.status = status
	i.mu.Unlock()
}

// MountedAt returns the mount timestamp
func (i *Instance) MountedAt() time.Time {
	return i.mountedAt
}

// Bus returns the instance's event bus
func (i *Instance) Bus() *event.Bus {
	return i.bus
}

// GetMetrics returns the instance's bus metrics
func (i *Instance) GetMetrics() map[string]any {
	return i.bus.GetMetrics()
}
