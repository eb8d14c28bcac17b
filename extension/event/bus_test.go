package event

import (
	"testing"

	"github.com/extpoint/extpoint/extension/types"
)

func TestBus_EmitOrder(t *testing.T) {
	b := NewBus()

	var got []string
	b.On("set", func(e types.EventData) {
		got = append(got, "first")
	})
	b.On("set", func(e types.EventData) {
		got = append(got, "second")
	})

	b.Emit("set", nil)

	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("expected handlers in registration order, got %v", got)
	}
}

func TestBus_EmitPayload(t *testing.T) {
	b := NewBus()

	var recorded []any
	b.On("set", func(e types.EventData) {
		recorded = append(recorded, e.Data)
	})

	b.Emit("set", 42)

	if len(recorded) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(recorded))
	}
	if recorded[0] != 42 {
		t.Errorf("expected payload 42, got %v", recorded[0])
	}
	if b.GetMetrics()["delivered_events"].(int64) != 1 {
		t.Errorf("expected 1 delivered event in metrics")
	}
}

func TestBus_DuplicateHandler(t *testing.T) {
	b := NewBus()

	count := 0
	h := func(e types.EventData) { count++ }
	b.On("tick", h)
	b.On("tick", h)

	b.Emit("tick", nil)

	if count != 2 {
		t.Errorf("expected duplicate registration to deliver twice, got %d", count)
	}
}

func TestBus_Off(t *testing.T) {
	b := NewBus()

	count := 0
	sub := b.On("tick", func(e types.EventData) { count++ })

	b.Emit("tick", nil)
	b.Off(sub)
	b.Emit("tick", nil)

	if count != 1 {
		t.Errorf("expected 1 delivery after Off, got %d", count)
	}

	// Removing again must be a no-op
	b.Off(sub)
	b.Off(types.Subscription{Event: "tick", ID: 999})
}

func TestBus_OffRemovesSingleRegistration(t *testing.T) {
	b := NewBus()

	count := 0
	h := func(e types.EventData) { count++ }
	first := b.On("tick", h)
	b.On("tick", h)

	b.Off(first)
	b.Emit("tick", nil)

	if count != 1 {
		t.Errorf("expected the second registration to survive, got %d deliveries", count)
	}
}

func TestBus_Wildcard(t *testing.T) {
	b := NewBus()

	var names []string
	var exactRan bool
	b.On("set", func(e types.EventData) { exactRan = true })
	b.On(types.Wildcard, func(e types.EventData) {
		names = append(names, e.EventType)
	})

	b.Emit("set", 1)
	b.Emit("other", 2)

	if !exactRan {
		t.Error("exact handler did not run")
	}
	if len(names) != 2 || names[0] != "set" || names[1] != "other" {
		t.Errorf("wildcard handler expected [set other], got %v", names)
	}
}

func TestBus_ExactBeforeWildcard(t *testing.T) {
	b := NewBus()

	var order []string
	b.On(types.Wildcard, func(e types.EventData) { order = append(order, "wildcard") })
	b.On("set", func(e types.EventData) { order = append(order, "exact") })

	b.Emit("set", nil)

	if len(order) != 2 || order[0] != "exact" || order[1] != "wildcard" {
		t.Errorf("expected exact handler before wildcard, got %v", order)
	}
}

func TestBus_HandlerPanicIsolated(t *testing.T) {
	var failedEvent string
	b := NewBus(WithFailureHook(func(eventName string, recovered any) {
		failedEvent = eventName
	}))

	ran := false
	b.On("boom", func(e types.EventData) { panic("handler failure") })
	b.On("boom", func(e types.EventData) { ran = true })

	b.Emit("boom", nil)

	if !ran {
		t.Error("handler after the panicking one did not run")
	}
	if failedEvent != "boom" {
		t.Errorf("failure hook expected event boom, got %q", failedEvent)
	}
	if b.GetMetrics()["failed_events"].(int64) != 1 {
		t.Error("expected 1 failed event in metrics")
	}
}

func TestBus_RegisterDuringDispatch(t *testing.T) {
	b := NewBus()

	lateRan := 0
	b.On("tick", func(e types.EventData) {
		b.On("tick", func(e types.EventData) { lateRan++ })
	})

	b.Emit("tick", nil)
	if lateRan != 0 {
		t.Error("handler registered during dispatch received the in-flight event")
	}

	b.Emit("tick", nil)
	if lateRan != 1 {
		t.Errorf("late handler expected on next emission, got %d", lateRan)
	}
}

func TestBus_Close(t *testing.T) {
	b := NewBus()

	count := 0
	b.On("tick", func(e types.EventData) { count++ })

	b.Close()
	b.Emit("tick", nil)

	if count != 0 {
		t.Errorf("expected no deliveries after Close, got %d", count)
	}
	if sub := b.On("tick", func(e types.EventData) {}); sub.Valid() {
		t.Error("On after Close returned a valid subscription")
	}

	// Close is idempotent
	b.Close()
}

func TestBus_EmitWildcardNameRejected(t *testing.T) {
	b := NewBus()

	count := 0
	b.On(types.Wildcard, func(e types.EventData) { count++ })

	b.Emit(types.Wildcard, nil)

	if count != 0 {
		t.Errorf("emitting the wildcard name itself must be a no-op, got %d deliveries", count)
	}
}
