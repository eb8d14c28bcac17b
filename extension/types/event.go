package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wildcard is the event name that matches every emitted event
const Wildcard = "*"

// EventData is the envelope delivered to every handler
type EventData struct {
	Time      time.Time `json:"time"`
	Source    string    `json:"source"`
	EventType string    `json:"event_type"`
	Data      any       `json:"data"`
}

// Handler handles a single event delivery
type Handler func(EventData)

// Subscription identifies one handler registration on a bus.
// Go functions are not comparable, so removal goes through the token
// returned by On rather than the handler value itself.
type Subscription struct {
	Event string
	ID    uint64
}

// Valid reports whether the subscription refers to a real registration
func (s Subscription) Valid() bool {
	return s.ID != 0
}

// EventPayload normalizes an event payload into a map. It accepts the
// raw Data value or a whole EventData envelope, unwraps it, and decodes
// JSON text or structured values as needed. Hosts use this to read the
// map payloads carried by manager lifecycle events. A nil payload
// yields an empty map.
func EventPayload(data any) (map[string]any, error) {
	switch v := data.(type) {
	case nil:
		return map[string]any{}, nil
	case EventData:
		return EventPayload(v.Data)
	case *EventData:
		if v == nil {
			return map[string]any{}, nil
		}
		return EventPayload(v.Data)
	case map[string]any:
		return v, nil
	case string:
		return decodePayload([]byte(v))
	case []byte:
		return decodePayload(v)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("payload is not map shaped: %w", err)
	}
	return decodePayload(raw)
}

func decodePayload(raw []byte) (map[string]any, error) {
	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("payload is not map shaped: %w", err)
	}
	return result, nil
}

// Field reads a typed value from a normalized payload. The zero value
// of T is returned when the key is absent, nil, or holds another type.
func Field[T any](payload map[string]any, key string) T {
	var zero T
	return FieldOr(payload, key, zero)
}

// FieldOr reads a typed value from a normalized payload with a fallback
func FieldOr[T any](payload map[string]any, key string, fallback T) T {
	value, exists := payload[key]
	if !exists || value == nil {
		return fallback
	}

	typed, ok := value.(T)
	if !ok {
		return fallback
	}
	return typed
}
