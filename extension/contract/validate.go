package contract

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateData checks an initial data payload against the contract's data
// prototype. Called once at mount time; the bus never re-validates.
func (c Contract) ValidateData(data any) error {
	if err := validatePayload(c.Data, data); err != nil {
		return fmt.Errorf("point %s: invalid initial data: %w", c.Point, err)
	}
	return nil
}

// ValidateInbound checks a host-emitted event against the contract's
// inbound event set
func (c Contract) ValidateInbound(eventName string, payload any) error {
	proto, ok := c.Inbound[eventName]
	if !ok {
		return fmt.Errorf("point %s: event %s is not in the inbound contract", c.Point, eventName)
	}
	if err := validatePayload(proto, payload); err != nil {
		return fmt.Errorf("point %s: invalid payload for inbound event %s: %w", c.Point, eventName, err)
	}
	return nil
}

// ValidateOutbound checks an extension-emitted event against the
// contract's outbound event set. The bus dispatches extension emissions
// without consulting the contract; a host that consumes outbound events
// calls this before acting on them.
func (c Contract) ValidateOutbound(eventName string, payload any) error {
	proto, ok := c.Outbound[eventName]
	if !ok {
		return fmt.Errorf("point %s: event %s is not in the outbound contract", c.Point, eventName)
	}
	if err := validatePayload(proto, payload); err != nil {
		return fmt.Errorf("point %s: invalid payload for outbound event %s: %w", c.Point, eventName, err)
	}
	return nil
}

// validatePayload compares the payload's concrete type against the
// prototype and runs struct validation when the payload is a struct.
// A nil prototype accepts any payload.
func validatePayload(proto, payload any) error {
	if proto == nil {
		return nil
	}

	if payload == nil {
		return fmt.Errorf("payload is required, expected %T", proto)
	}

	protoType := derefType(reflect.TypeOf(proto))
	payloadType := derefType(reflect.TypeOf(payload))

	if protoType != payloadType {
		return fmt.Errorf("payload type %s does not match contract type %s", payloadType, protoType)
	}

	if protoType.Kind() == reflect.Struct {
		if err := validate.Struct(payload); err != nil {
			return err
		}
	}

	return nil
}

// derefType unwraps pointer types so *T and T satisfy the same contract
func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
