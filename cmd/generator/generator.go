package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/extpoint/extpoint/cmd/generator/templates"
	"github.com/extpoint/extpoint/extension/contract"
)

// Options defines generation options
type Options struct {
	Name       string
	Point      string // Extension point the entry point targets
	OutputPath string // Generated code output path
	WithTest   bool
}

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Generate generates an extension package skeleton
func Generate(opts *Options) error {
	if !namePattern.MatchString(opts.Name) {
		return fmt.Errorf("invalid name: %s", opts.Name)
	}
	if _, ok := contract.Lookup(opts.Point); !ok {
		return fmt.Errorf("unknown extension point: %s", opts.Point)
	}

	// Determine output path
	if opts.OutputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %v", err)
		}
		opts.OutputPath = cwd
	}

	basePath := filepath.Join(opts.OutputPath, opts.Name)
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return fmt.Errorf("failed to create package directory: %v", err)
	}

	files := map[string]string{
		"entry.go": templates.EntryTemplate(opts.Name, opts.Point),
	}
	if opts.WithTest {
		files["entry_test.go"] = templates.TestTemplate(opts.Name, opts.Point)
	}

	for name, content := range files {
		target := filepath.Join(basePath, name)
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("file already exists: %s", target)
		}
		if err := os.WriteFile(target, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %v", target, err)
		}
	}

	return nil
}
