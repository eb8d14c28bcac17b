package types

import (
	"testing"
	"time"
)

func TestEventPayload(t *testing.T) {
	payload, err := EventPayload(nil)
	if err != nil {
		t.Fatalf("nil payload errored: %v", err)
	}
	if len(payload) != 0 {
		t.Errorf("expected empty map for nil payload, got %v", payload)
	}

	payload, err = EventPayload(map[string]any{"instance": "abc"})
	if err != nil {
		t.Fatalf("map payload errored: %v", err)
	}
	if payload["instance"] != "abc" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestEventPayload_UnwrapsEnvelope(t *testing.T) {
	e := EventData{
		Time:      time.Now(),
		EventType: "exts.instance.mounted",
		Data:      map[string]any{"point": "panel:item-sidebar"},
	}

	payload, err := EventPayload(e)
	if err != nil {
		t.Fatalf("envelope payload errored: %v", err)
	}
	if payload["point"] != "panel:item-sidebar" {
		t.Errorf("unexpected payload: %v", payload)
	}

	payload, err = EventPayload(&e)
	if err != nil {
		t.Fatalf("envelope pointer errored: %v", err)
	}
	if payload["point"] != "panel:item-sidebar" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestEventPayload_DecodesJSON(t *testing.T) {
	payload, err := EventPayload(`{"height": 320}`)
	if err != nil {
		t.Fatalf("JSON string errored: %v", err)
	}
	if payload["height"] != float64(320) {
		t.Errorf("unexpected payload: %v", payload)
	}

	payload, err = EventPayload([]byte(`{"level": "info"}`))
	if err != nil {
		t.Fatalf("JSON bytes errored: %v", err)
	}
	if payload["level"] != "info" {
		t.Errorf("unexpected payload: %v", payload)
	}

	type notify struct {
		Message string `json:"message"`
	}
	payload, err = EventPayload(notify{Message: "saved"})
	if err != nil {
		t.Fatalf("struct payload errored: %v", err)
	}
	if payload["message"] != "saved" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestEventPayload_NotMapShaped(t *testing.T) {
	if _, err := EventPayload(42); err == nil {
		t.Error("scalar payload accepted as map")
	}
	if _, err := EventPayload("not json"); err == nil {
		t.Error("non-JSON string accepted as map")
	}
}

func TestField(t *testing.T) {
	payload := map[string]any{
		"instance": "abc",
		"height":   float64(320),
		"missing":  nil,
	}

	if got := Field[string](payload, "instance"); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
	if got := Field[string](payload, "absent"); got != "" {
		t.Errorf("expected zero value for absent key, got %q", got)
	}
	if got := Field[string](payload, "missing"); got != "" {
		t.Errorf("expected zero value for nil value, got %q", got)
	}
	if got := Field[string](payload, "height"); got != "" {
		t.Errorf("expected zero value on type mismatch, got %q", got)
	}

	if got := FieldOr(payload, "height", float64(0)); got != 320 {
		t.Errorf("expected 320, got %v", got)
	}
	if got := FieldOr(payload, "absent", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}
