package commands

import (
	"fmt"

	"github.com/extpoint/extpoint/cmd/generator"

	"github.com/spf13/cobra"
)

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	opts := &generator.Options{}

	cmd := &cobra.Command{
		Use:     "create [name]",
		Aliases: []string{"c"},
		Short:   "Create a new extension package skeleton",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]

			// Get flags
			opts.Point, _ = cmd.Flags().GetString("point")
			opts.OutputPath, _ = cmd.Flags().GetString("path")
			opts.WithTest, _ = cmd.Flags().GetBool("with-test")

			if err := generator.Generate(opts); err != nil {
				return err
			}

			fmt.Printf("extension %s created for point %s\n", opts.Name, opts.Point)
			return nil
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&opts.Point, "point", "P", "panel:item-sidebar", "extension point to target")
	cmd.Flags().StringVarP(&opts.OutputPath, "path", "p", "", "output path (defaults to current directory)")
	cmd.Flags().BoolVar(&opts.WithTest, "with-test", false, "generate test file")

	return cmd
}
