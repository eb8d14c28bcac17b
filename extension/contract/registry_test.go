package contract

import (
	"strings"
	"testing"
)

type testData struct {
	Name string `validate:"required"`
	Size int    `validate:"gte=0"`
}

type testPayload struct {
	Value int `validate:"gt=0"`
}

func testContract(point string) Contract {
	return Contract{
		Point: point,
		Data:  testData{},
		Inbound: map[string]any{
			"set": testPayload{},
			"raw": nil,
		},
		Outbound: map[string]any{
			"done": testPayload{},
		},
	}
}

func TestRegister_Duplicate(t *testing.T) {
	c := testContract("test:duplicate")
	if err := Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Register(c); err == nil {
		t.Error("expected error registering duplicate point")
	}
}

func TestRegister_EmptyPoint(t *testing.T) {
	if err := Register(Contract{}); err == nil {
		t.Error("expected error for empty point identifier")
	}
}

func TestLookup(t *testing.T) {
	MustRegister(testContract("test:lookup"))

	if _, ok := Lookup("test:lookup"); !ok {
		t.Error("registered contract not found")
	}
	if _, ok := Lookup("test:missing"); ok {
		t.Error("lookup of unregistered point succeeded")
	}
}

func TestBuiltinCatalog(t *testing.T) {
	for _, point := range []string{PointItemSidebar, PointMainToolbar, PointAdminSettings} {
		if _, ok := Lookup(point); !ok {
			t.Errorf("built-in point %s not registered", point)
		}
	}
}

func TestValidateData(t *testing.T) {
	c := testContract("test:validate-data")

	if err := c.ValidateData(testData{Name: "a", Size: 1}); err != nil {
		t.Errorf("valid data rejected: %v", err)
	}
	if err := c.ValidateData(&testData{Name: "a"}); err != nil {
		t.Errorf("pointer to valid data rejected: %v", err)
	}
	if err := c.ValidateData(nil); err == nil {
		t.Error("nil data accepted against a typed contract")
	}
	if err := c.ValidateData("wrong type"); err == nil {
		t.Error("mismatched type accepted")
	}
	if err := c.ValidateData(testData{Size: -1}); err == nil {
		t.Error("data failing struct validation accepted")
	}
}

func TestValidateData_NilPrototype(t *testing.T) {
	c := Contract{Point: "test:any-data"}
	if err := c.ValidateData(map[string]any{"anything": true}); err != nil {
		t.Errorf("nil prototype must accept any payload: %v", err)
	}
}

func TestValidateInbound(t *testing.T) {
	c := testContract("test:validate-inbound")

	if err := c.ValidateInbound("set", testPayload{Value: 1}); err != nil {
		t.Errorf("valid inbound payload rejected: %v", err)
	}
	if err := c.ValidateInbound("set", testPayload{Value: 0}); err == nil {
		t.Error("payload failing validation accepted")
	}
	if err := c.ValidateInbound("raw", 123); err != nil {
		t.Errorf("unconstrained inbound event rejected payload: %v", err)
	}

	err := c.ValidateInbound("unknown", nil)
	if err == nil {
		t.Fatal("unknown inbound event accepted")
	}
	if !strings.Contains(err.Error(), "not in the inbound contract") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateOutbound(t *testing.T) {
	c := testContract("test:validate-outbound")

	if err := c.ValidateOutbound("done", testPayload{Value: 2}); err != nil {
		t.Errorf("valid outbound payload rejected: %v", err)
	}
	if err := c.ValidateOutbound("set", testPayload{Value: 2}); err == nil {
		t.Error("inbound-only event accepted as outbound")
	}
}
