package registry

import (
	"sync"

	"github.com/extpoint/extpoint/extension/types"
)

// Entry represents one registered entry point
type Entry struct {
	Metadata types.Metadata
	Entry    types.EntryPoint
}

var (
	// entryRegistry stores registered entry points grouped by extension point
	entryRegistry = make(map[string][]Entry)
	// mutex protects concurrent access to registry
	mutex = &sync.RWMutex{}
)

// Register registers an entry point for an extension point. Extensions
// call this from init(); the host mounts registered entries through the
// lifecycle manager.
func Register(point string, meta types.Metadata, entry types.EntryPoint) {
	if point == "" || entry == nil {
		return
	}

	mutex.Lock()
	defer mutex.Unlock()

	meta.Point = point
	entryRegistry[point] = append(entryRegistry[point], Entry{
		Metadata: meta,
		Entry:    entry,
	})
}

// GetByPoint returns the entry points registered for a point, in
// registration order
func GetByPoint(point string) []Entry {
	mutex.RLock()
	defer mutex.RUnlock()

	entries := entryRegistry[point]
	result := make([]Entry, len(entries))
	copy(result, entries)
	return result
}

// GetAll returns all registered entry points grouped by point
func GetAll() map[string][]Entry {
	mutex.RLock()
	defer mutex.RUnlock()

	result := make(map[string][]Entry, len(entryRegistry))
	for point, entries := range entryRegistry {
		copied := make([]Entry, len(entries))
		copy(copied, entries)
		result[point] = copied
	}
	return result
}

// ClearRegistry clears the registry (mainly for testing)
func ClearRegistry() {
	mutex.Lock()
	defer mutex.Unlock()
	entryRegistry = make(map[string][]Entry)
}
