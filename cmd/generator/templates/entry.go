package templates

import "fmt"

// EntryTemplate renders the entry point skeleton for a new extension
func EntryTemplate(name, point string) string {
	return fmt.Sprintf(`package %s

import (
	"context"

	"github.com/extpoint/extpoint/extension/registry"
	"github.com/extpoint/extpoint/extension/types"
)

var (
	name    = "%s"
	desc    = "%s extension"
	version = "1.0.0"
	point   = "%s"
)

func init() {
	registry.Register(point, types.Metadata{
		Name:        name,
		Version:     version,
		Description: desc,
	}, Entry)
}

// Entry activates the extension at its extension point
func Entry(ctx *types.Context) (types.Cleanup, error) {
	// Register event handlers here, e.g.:
	//
	//	ctx.On("item.changed", func(e types.EventData) {
	//		...
	//	})

	return func(ctx context.Context) error {
		// Release resources acquired above
		return nil
	}, nil
}
`, name, name, name, point)
}
