package contract

import (
	"fmt"
	"sort"
	"sync"
)

// Contract describes the data and event surface of one extension point.
// Data, Inbound and Outbound hold prototype values; payloads exchanged at
// runtime must be of the same concrete type and pass struct validation.
// A nil prototype means the payload is unconstrained.
type Contract struct {
	// Point is the unique extension point identifier
	Point string `json:"point"`
	// Description is a human readable summary of the location
	Description string `json:"description,omitempty"`
	// Data is the prototype of the initial data payload
	Data any `json:"-"`
	// Inbound maps event names the extension may listen to onto payload prototypes
	Inbound map[string]any `json:"-"`
	// Outbound maps event names the extension may emit onto payload prototypes
	Outbound map[string]any `json:"-"`
}

var (
	// contractRegistry stores all registered extension point contracts
	contractRegistry = make(map[string]Contract)
	// mutex protects concurrent access to registry
	mutex = &sync.RWMutex{}
)

// Register registers an extension point contract. Contracts are defined
// once per integration location; registering a duplicate point is an error.
func Register(c Contract) error {
	if c.Point == "" {
		return fmt.Errorf("contract point identifier is required")
	}

	mutex.Lock()
	defer mutex.Unlock()

	if _, exists := contractRegistry[c.Point]; exists {
		return fmt.Errorf("contract for point %s already registered", c.Point)
	}

	contractRegistry[c.Point] = c
	return nil
}

// MustRegister registers a contract and panics on conflict. Intended for
// package init of the built-in catalog.
func MustRegister(c Contract) {
	if err := Register(c); err != nil {
		panic(err)
	}
}

// Lookup returns the contract registered for a point
func Lookup(point string) (Contract, bool) {
	mutex.RLock()
	defer mutex.RUnlock()

	c, exists := contractRegistry[point]
	return c, exists
}

// Points returns all registered point identifiers, sorted
func Points() []string {
	mutex.RLock()
	defer mutex.RUnlock()

	points := make([]string, 0, len(contractRegistry))
	for point := range contractRegistry {
		points = append(points, point)
	}
	sort.Strings(points)
	return points
}

// Contracts returns a copy of the full registry
func Contracts() map[string]Contract {
	mutex.RLock()
	defer mutex.RUnlock()

	result := make(map[string]Contract, len(contractRegistry))
	for point, c := range contractRegistry {
		result[point] = c
	}
	return result
}

// ClearRegistry clears the registry (mainly for testing)
func ClearRegistry() {
	mutex.Lock()
	defer mutex.Unlock()
	contractRegistry = make(map[string]Contract)
}
