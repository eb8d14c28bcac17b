package templates

import "fmt"

// TestTemplate renders the test skeleton for a new extension
func TestTemplate(name, point string) string {
	return fmt.Sprintf(`package %s

import (
	"testing"

	"github.com/extpoint/extpoint/extension/event"
	"github.com/extpoint/extpoint/extension/types"
)

func TestEntry(t *testing.T) {
	bus := event.NewBus()
	defer bus.Close()

	cleanup, err := Entry(&types.Context{
		Point: "%s",
		Bus:   bus,
	})
	if err != nil {
		t.Fatalf("entry failed: %%v", err)
	}

	if cleanup != nil {
		if err := cleanup(t.Context()); err != nil {
			t.Errorf("cleanup failed: %%v", err)
		}
	}
}
`, name, point)
}
