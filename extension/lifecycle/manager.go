package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/extpoint/extpoint/config"
	"github.com/extpoint/extpoint/extension/contract"
	"github.com/extpoint/extpoint/extension/event"
	"github.com/extpoint/extpoint/extension/registry"
	"github.com/extpoint/extpoint/extension/types"
	"github.com/extpoint/extpoint/logging/logger"
	"github.com/extpoint/extpoint/nanoid"
)

// Failure stages reported to the failure hook
const (
	StageMount   = "mount"
	StageHandler = "handler"
	StageCleanup = "cleanup"
)

// Failure is one reported error from an otherwise-independent operation.
// Failures never abort dispatch to other handlers or teardown of other
// instances; the host decides how to surface them.
type Failure struct {
	Stage    string    `json:"stage"`
	Point    string    `json:"point"`
	Instance string    `json:"instance"`
	Err      error     `json:"-"`
	Time     time.Time `json:"time"`
}

// FailureHook receives every reported failure
type FailureHook func(Failure)

// Manager owns the activation and teardown of extension instances
type Manager struct {
	conf      *config.Config
	mu        sync.RWMutex
	instances map[string]*Instance
	hostBus   *event.Bus
	settings  types.SettingsAccessor
	onFailure FailureHook

	mountTimeout   time.Duration
	cleanupTimeout time.Duration

	metrics struct {
		mounted   atomic.Int64
		destroyed atomic.Int64
		failed    atomic.Int64
	}
}

// Option configures a Manager
type Option func(*Manager)

// WithFailureHook sets the hook invoked for every reported failure.
// The default hook logs the failure.
func WithFailureHook(hook FailureHook) Option {
	return func(m *Manager) {
		m.onFailure = hook
	}
}

// WithSettings injects the host settings store exposed to entry points
func WithSettings(settings types.SettingsAccessor) Option {
	return func(m *Manager) {
		m.settings = settings
	}
}

// NewManager creates a new lifecycle manager
func NewManager(conf *config.Config, opts ...Option) *Manager {
	if conf == nil {
		conf = config.Default()
	}

	m := &Manager{
		conf:           conf,
		instances:      make(map[string]*Instance),
		hostBus:        event.NewBus(event.WithSource(conf.Extension.HostSource)),
		mountTimeout:   parseDuration(conf.Extension.MountTimeout, 30*time.Second),
		cleanupTimeout: parseDuration(conf.Extension.CleanupTimeout, 30*time.Second),
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetConfig returns the manager's config
func (m *Manager) GetConfig() *config.Config {
	return m.conf
}

// Events returns the manager-level bus carrying instance lifecycle
// notifications (exts.instance.mounted, exts.instance.destroyed).
func (m *Manager) Events() *event.Bus {
	return m.hostBus
}

// Mount invokes an entry point with the initial data for an extension
// point and returns the running instance. The initial data is validated
// against the point's registered contract before the entry point runs.
// An entry point that returns an error or panics leaves no instance
// behind and no cleanup registered.
func (m *Manager) Mount(point string, entry types.EntryPoint, initialData any) (*Instance, error) {
	return m.MountWithMetadata(point, types.Metadata{Point: point}, entry, initialData)
}

// MountWithMetadata mounts an entry point carrying explicit metadata
func (m *Manager) MountWithMetadata(point string, meta types.Metadata, entry types.EntryPoint, initialData any) (*Instance, error) {
	if entry == nil {
		return nil, fmt.Errorf("entry point is required")
	}

	c, ok := contract.Lookup(point)
	if !ok {
		return nil, fmt.Errorf("unknown extension point %s", point)
	}

	if err := c.ValidateData(initialData); err != nil {
		return nil, err
	}

	inst := &Instance{
		id:        nanoid.PrimaryKey(),
		meta:      meta,
		contract:  c,
		status:    types.StatusLoaded,
		mountedAt: time.Now(),
	}
	inst.bus = event.NewBus(event.WithFailureHook(func(eventName string, recovered any) {
		m.reportFailure(Failure{
			Stage:    StageHandler,
			Point:    point,
			Instance: inst.id,
			Err:      fmt.Errorf("handler for %s panicked: %v", eventName, recovered),
			Time:     time.Now(),
		})
	}))

	ectx := &types.Context{
		Point:    point,
		Data:     initialData,
		Bus:      inst.bus,
		Settings: m.settings,
	}

	cleanup, err := m.runEntry(inst.id, entry, ectx)
	if err != nil {
		inst.bus.Close()
		inst.setStatus(types.StatusError)
		m.metrics.failed.Add(1)
		m.reportFailure(Failure{
			Stage:    StageMount,
			Point:    point,
			Instance: inst.id,
			Err:      err,
			Time:     time.Now(),
		})
		return nil, fmt.Errorf("mount at point %s failed: %w", point, err)
	}

	inst.cleanup = cleanup
	inst.setStatus(types.StatusRunning)

	m.mu.Lock()
	m.instances[inst.id] = inst
	m.mu.Unlock()
	m.metrics.mounted.Add(1)

	m.hostBus.Emit("exts.instance.mounted", map[string]any{
		"instance": inst.id,
		"point":    point,
		"metadata": meta,
	})
	logger.Debugf(nil, "mounted instance %s at point %s", inst.id, point)

	return inst, nil
}

// MountRegistered mounts every entry point registered for a point via the
// global registry. Activation failures are reported per entry and do not
// prevent the remaining entries from mounting.
func (m *Manager) MountRegistered(point string, initialData any) ([]*Instance, error) {
	entries := registry.GetByPoint(point)
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entry points registered for %s", point)
	}

	instances := make([]*Instance, 0, len(entries))
	for _, e := range entries {
		inst, err := m.MountWithMetadata(point, e.Metadata, e.Entry, initialData)
		if err != nil {
			logger.Errorf(nil, "failed to mount %s at point %s: %v", e.Metadata.Name, point, err)
			continue
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// entryResult carries the outcome of one entry point invocation
type entryResult struct {
	cleanup types.Cleanup
	err     error
}

// runEntry invokes an entry point with panic recovery and a mount timeout
func (m *Manager) runEntry(instanceID string, entry types.EntryPoint, ectx *types.Context) (types.Cleanup, error) {
	ctx, cancel := context.WithTimeout(context.Background(), m.mountTimeout)
	defer cancel()

	done := make(chan entryResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- entryResult{err: fmt.Errorf("entry point panic: %v", r)}
			}
		}()
		cleanup, err := entry(ectx)
		done <- entryResult{cleanup: cleanup, err: err}
	}()

	select {
	case res := <-done:
		return res.cleanup, res.err
	case <-ctx.Done():
		// The entry goroutine may still finish after the deadline. Reclaim
		// any disposer it returns so its resources are released.
		go func() {
			res := <-done
			if res.err != nil || res.cleanup == nil {
				return
			}
			if err := m.runCleanup(res.cleanup); err != nil {
				m.reportFailure(Failure{
					Stage:    StageCleanup,
					Point:    ectx.Point,
					Instance: instanceID,
					Err:      fmt.Errorf("cleanup after mount timeout: %w", err),
					Time:     time.Now(),
				})
			}
		}()
		return nil, fmt.Errorf("entry point timeout after %v", m.mountTimeout)
	}
}

// EmitTo dispatches a host event into an instance after validating it
// against the point's inbound contract. Dispatch into a destroyed
// instance is rejected.
func (m *Manager) EmitTo(inst *Instance, eventName string, data any) error {
	if inst == nil {
		return fmt.Errorf("instance is required")
	}
	if inst.Status() != types.StatusRunning {
		return fmt.Errorf("instance %s is not running", inst.id)
	}

	if err := inst.contract.ValidateInbound(eventName, data); err != nil {
		return err
	}

	inst.bus.Emit(eventName, data)
	return nil
}

// Destroy tears down an instance: all handlers are removed first, so no
// further events reach the half-destroyed instance, then the captured
// cleanup runs exactly once under the cleanup timeout. Calling Destroy
// again is a no-op. A cleanup failure is reported and returned, but the
// instance still transitions to destroyed.
func (m *Manager) Destroy(inst *Instance) error {
	if inst == nil {
		return nil
	}

	var cleanupErr error

	inst.destroyOnce.Do(func() {
		point := inst.contract.Point

		inst.bus.Close()

		if inst.cleanup != nil {
			cleanupErr = m.runCleanup(inst.cleanup)
			if cleanupErr != nil {
				m.reportFailure(Failure{
					Stage:    StageCleanup,
					Point:    point,
					Instance: inst.id,
					Err:      cleanupErr,
					Time:     time.Now(),
				})
			}
		}

		inst.setStatus(types.StatusDestroyed)

		m.mu.Lock()
		delete(m.instances, inst.id)
		m.mu.Unlock()
		m.metrics.destroyed.Add(1)

		m.hostBus.Emit("exts.instance.destroyed", map[string]any{
			"instance": inst.id,
			"point":    point,
		})
		logger.Debugf(nil, "destroyed instance %s at point %s", inst.id, point)
	})

	return cleanupErr
}

// runCleanup awaits a disposer with panic recovery and a timeout
func (m *Manager) runCleanup(cleanup types.Cleanup) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.cleanupTimeout)
	defer cancel()

	done := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("cleanup panic: %v", r)
			}
		}()
		done <- cleanup(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("cleanup timeout after %v", m.cleanupTimeout)
	}
}

// GetInstance returns a running instance by ID
func (m *Manager) GetInstance(id string) (*Instance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inst, exists := m.instances[id]
	return inst, exists
}

// ListInstances returns all live instances
func (m *Manager) ListInstances() map[string]*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	instances := make(map[string]*Instance, len(m.instances))
	for id, inst := range m.instances {
		instances[id] = inst
	}
	return instances
}

// GetStatus returns the status of all live instances
func (m *Manager) GetStatus() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := make(map[string]string, len(m.instances))
	for id, inst := range m.instances {
		status[id] = inst.Status()
	}
	return status
}

// GetMetrics returns manager-level metrics
func (m *Manager) GetMetrics() map[string]any {
	m.mu.RLock()
	live := len(m.instances)
	m.mu.RUnlock()

	return map[string]any{
		"mounted":        m.metrics.mounted.Load(),
		"destroyed":      m.metrics.destroyed.Load(),
		"mount_failures": m.metrics.failed.Load(),
		"live_instances": live,
	}
}

// Cleanup destroys all live instances and closes the manager bus
func (m *Manager) Cleanup() {
	m.mu.RLock()
	instances := make([]*Instance, 0, len(m.instances))
	for _, inst := range m.instances {
		instances = append(instances, inst)
	}
	m.mu.RUnlock()

	for _, inst := range instances {
		if err := m.Destroy(inst); err != nil {
			logger.Errorf(nil, "failed to cleanup instance %s: %v", inst.ID(), err)
		}
	}

	m.hostBus.Close()
}

// reportFailure delivers a failure to the hook, or logs it by default
func (m *Manager) reportFailure(f Failure) {
	if m.onFailure != nil {
		m.onFailure(f)
		return
	}
	logger.Errorf(nil, "extension %s failure at point %s (instance %s): %v", f.Stage, f.Point, f.Instance, f.Err)
}

// parseDuration parses a config duration with a fallback
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}
