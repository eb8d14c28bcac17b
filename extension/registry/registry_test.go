package registry

import (
	"testing"

	"github.com/extpoint/extpoint/extension/types"
)

func noopEntry(ctx *types.Context) (types.Cleanup, error) {
	return nil, nil
}

func TestRegisterAndGet(t *testing.T) {
	ClearRegistry()
	defer ClearRegistry()

	Register("panel:a", types.Metadata{Name: "one"}, noopEntry)
	Register("panel:a", types.Metadata{Name: "two"}, noopEntry)
	Register("panel:b", types.Metadata{Name: "three"}, noopEntry)

	entries := GetByPoint("panel:a")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Metadata.Name != "one" || entries[1].Metadata.Name != "two" {
		t.Errorf("registration order not preserved: %+v", entries)
	}
	if entries[0].Metadata.Point != "panel:a" {
		t.Errorf("point not stamped onto metadata: %+v", entries[0].Metadata)
	}

	all := GetAll()
	if len(all) != 2 {
		t.Errorf("expected 2 points, got %d", len(all))
	}
}

func TestRegister_Invalid(t *testing.T) {
	ClearRegistry()
	defer ClearRegistry()

	Register("", types.Metadata{}, noopEntry)
	Register("panel:x", types.Metadata{}, nil)

	if len(GetAll()) != 0 {
		t.Error("invalid registrations were stored")
	}
}

func TestGetByPoint_Empty(t *testing.T) {
	ClearRegistry()
	if entries := GetByPoint("panel:none"); len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
